package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"gb-more-from-widget/cmd/api/dto"
	"gb-more-from-widget/cmd/api/services"
	"gb-more-from-widget/host"
)

// ListBlockTypesHandler godoc
// @Summary      List block types
// @Description  Registered block types with their attribute schemas
// @Tags         blocks
// @Produce      json
// @Success      200  {array}   dto.BlockTypeDTO
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /api/v1/block-types [get]
func ListBlockTypesHandler(svc *services.BlockService) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := svc.ListTypes()
		if err != nil {
			c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: err.Error()})
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// RenderBlockHandler godoc
// @Summary      Render a block
// @Description  Server-side renders a dynamic block. GET reads attributes from the
// @Description  "attributes" query parameter as JSON, POST from the request body.
// @Tags         blocks
// @Accept       json
// @Produce      json
// @Param        namespace   path   string  true   "Block namespace"  example(gb)
// @Param        name        path   string  true   "Block name"       example(more-from-widget)
// @Param        attributes  query  string  false  "Attributes as JSON (GET)"
// @Param        body        body   dto.RenderRequestDTO  false  "Attributes (POST)"
// @Success      200  {object}  dto.RenderResponseDTO
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /api/v1/block-renderer/{namespace}/{name} [get]
// @Router       /api/v1/block-renderer/{namespace}/{name} [post]
func RenderBlockHandler(svc *services.BlockService) gin.HandlerFunc {
	return func(c *gin.Context) {
		attrs, err := bindAttributes(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "invalid_attributes"})
			return
		}

		name := c.Param("namespace") + "/" + c.Param("name")
		out, err := svc.Render(c.Request.Context(), name, attrs)
		if err != nil {
			switch {
			case errors.Is(err, host.ErrBlockNotFound):
				c.JSON(http.StatusNotFound, dto.ErrorResponseDTO{Error: "block_not_found"})
			case errors.Is(err, host.ErrMissingRender):
				c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "block_not_dynamic"})
			default:
				c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: err.Error()})
			}
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// bindAttributes 는 POST body 또는 GET attributes 쿼리(JSON)에서 속성을 읽는다.
// 숫자는 json.Number 로 유지한다.
func bindAttributes(c *gin.Context) (map[string]any, error) {
	var raw []byte
	if c.Request.Method == http.MethodPost {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			return nil, err
		}
		if len(body) == 0 {
			return map[string]any{}, nil
		}
		var req struct {
			Attributes json.RawMessage `json:"attributes"`
		}
		if err := json.Unmarshal(body, &req); err != nil {
			return nil, err
		}
		raw = req.Attributes
	} else {
		raw = []byte(c.Query("attributes"))
	}

	attrs := map[string]any{}
	if len(raw) == 0 || string(raw) == "null" {
		return attrs, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&attrs); err != nil {
		return nil, err
	}
	return attrs, nil
}
