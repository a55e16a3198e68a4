package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gb-more-from-widget/cmd/api/dto"
	"gb-more-from-widget/cmd/api/services"
)

// AdminAjaxHandler godoc
// @Summary      Editor ajax endpoint
// @Description  Dispatches editor actions. Requires the nonce handed to the editor script.
// @Tags         ajax
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        action  formData  string  true  "Action name"  example(gbmf_categories)
// @Param        nonce   formData  string  true  "gbmfObject.ajax_nonce"
// @Success      200  {object}  dto.AjaxResponseDTO
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      403  {object}  dto.ErrorResponseDTO
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /admin-ajax [post]
func AdminAjaxHandler(svc *services.AjaxService) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, err := svc.Handle(c.Request.Context(), c.PostForm("action"), c.PostForm("nonce"))
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUnknownAction):
				c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "unknown_action"})
			case errors.Is(err, services.ErrInvalidNonce):
				c.JSON(http.StatusForbidden, dto.ErrorResponseDTO{Error: "invalid_nonce"})
			default:
				c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: err.Error()})
			}
			return
		}
		c.JSON(http.StatusOK, dto.AjaxResponseDTO{Success: true, Data: data})
	}
}
