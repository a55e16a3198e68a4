package services

import (
	"context"
	"encoding/json"

	"gb-more-from-widget/cmd/api/dto"
	"gb-more-from-widget/cmd/api/trace"
	"gb-more-from-widget/host"
	"gb-more-from-widget/logger"
)

// BlockRegistry is the part of the host the block endpoints need.
type BlockRegistry interface {
	List() []host.RegisteredBlock
	RenderBlock(ctx context.Context, name string, raw map[string]any) (string, error)
}

// BlockService lists and server-side renders registered blocks.
type BlockService struct {
	registry BlockRegistry
}

func NewBlockService(registry BlockRegistry) *BlockService {
	return &BlockService{registry: registry}
}

func (s *BlockService) ListTypes() ([]dto.BlockTypeDTO, error) {
	blocks := s.registry.List()
	out := make([]dto.BlockTypeDTO, 0, len(blocks))
	for _, b := range blocks {
		attrs, err := json.Marshal(b.Attributes)
		if err != nil {
			return nil, err
		}
		out = append(out, dto.BlockTypeDTO{
			Name:       b.Name,
			Attributes: attrs,
			IsDynamic:  b.Dynamic,
		})
	}
	return out, nil
}

// Render renders the block named namespace/name with raw attributes.
// host.ErrBlockNotFound is returned for unknown names.
func (s *BlockService) Render(ctx context.Context, name string, attrs map[string]any) (dto.RenderResponseDTO, error) {
	requestID, spanID := trace.NextSpanID(ctx)
	rendered, err := s.registry.RenderBlock(ctx, name, attrs)
	if err != nil {
		logger.WarnWithFields("block render failed", logger.Fields{
			"request_id": requestID,
			"span_id":    spanID,
			"block":      name,
			"error":      err.Error(),
		})
		return dto.RenderResponseDTO{}, err
	}
	logger.DebugWithFields("block rendered", logger.Fields{
		"request_id": requestID,
		"span_id":    spanID,
		"block":      name,
		"bytes":      len(rendered),
	})
	return dto.RenderResponseDTO{Rendered: rendered}, nil
}
