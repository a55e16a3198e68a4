package services

import (
	"context"
	"errors"
	"fmt"

	"gb-more-from-widget/block"
	"gb-more-from-widget/cmd/api/dto"
	"gb-more-from-widget/cmd/api/trace"
	"gb-more-from-widget/logger"
	"gb-more-from-widget/models"
)

// ActionCategories returns the category options of the block inspector.
const ActionCategories = "gbmf_categories"

var (
	ErrUnknownAction = errors.New("unknown ajax action")
	ErrInvalidNonce  = errors.New("invalid or expired nonce")
)

type NonceVerifier interface {
	VerifyNonce(token, action string) bool
}

type CategoryLister interface {
	List(ctx context.Context) ([]models.Category, error)
}

// AjaxService dispatches admin-ajax actions issued by the editor script.
// Every action requires a nonce created for block.NonceAction.
type AjaxService struct {
	nonces     NonceVerifier
	categories CategoryLister
}

func NewAjaxService(nonces NonceVerifier, categories CategoryLister) *AjaxService {
	return &AjaxService{nonces: nonces, categories: categories}
}

func (s *AjaxService) Handle(ctx context.Context, action, nonce string) (any, error) {
	if action != ActionCategories {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	if !s.nonces.VerifyNonce(nonce, block.NonceAction) {
		return nil, ErrInvalidNonce
	}
	return s.listCategories(ctx)
}

func (s *AjaxService) listCategories(ctx context.Context) ([]dto.CategoryDTO, error) {
	requestID, spanID := trace.NextSpanID(ctx)
	cats, err := s.categories.List(ctx)
	if err != nil {
		logger.ErrorWithFields("category query failed", logger.Fields{
			"request_id": requestID,
			"span_id":    spanID,
			"error":      err.Error(),
		})
		return nil, err
	}
	logger.DebugWithFields("categories listed", logger.Fields{
		"request_id": requestID,
		"span_id":    spanID,
		"count":      len(cats),
	})
	out := make([]dto.CategoryDTO, 0, len(cats))
	for _, c := range cats {
		out = append(out, dto.CategoryDTO{ID: c.ID, Name: c.Name, Slug: c.Slug})
	}
	return out, nil
}
