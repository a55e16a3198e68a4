package dto

import "encoding/json"

// BlockTypeDTO describes a registered block type. Attributes is the schema
// object keyed by attribute name.
type BlockTypeDTO struct {
	Name       string          `json:"name" example:"gb/more-from-widget"`
	Attributes json.RawMessage `json:"attributes" swaggertype:"object"`
	IsDynamic  bool            `json:"is_dynamic"`
}

// RenderRequestDTO is the POST body of the block renderer.
type RenderRequestDTO struct {
	Attributes map[string]any `json:"attributes"`
}

// RenderResponseDTO carries rendered block markup.
type RenderResponseDTO struct {
	Rendered string `json:"rendered"`
}
