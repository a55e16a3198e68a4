package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gb-more-from-widget/cmd/api/dto"
	"gb-more-from-widget/cmd/api/services"
)

// GetAssetsHandler godoc
// @Summary      Block assets
// @Description  Scripts, styles and inline data the blocks enqueue for a page context
// @Tags         assets
// @Produce      json
// @Param        context  query  string  false  "editor or public (default public)"
// @Param        post_id  query  string  false  "Post being edited"
// @Success      200  {object}  dto.AssetsDTO
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /api/v1/assets [get]
func GetAssetsHandler(svc *services.AssetService) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := svc.Manifest(c.Query("context"), c.Query("post_id"))
		if err != nil {
			if errors.Is(err, services.ErrInvalidAssetContext) {
				c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "invalid_context"})
				return
			}
			c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: err.Error()})
			return
		}
		c.JSON(http.StatusOK, out)
	}
}
