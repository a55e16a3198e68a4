package dto

// CategoryDTO is a category option offered by the editor.
type CategoryDTO struct {
	ID   int64  `json:"id" example:"5"`
	Name string `json:"name" example:"Engineering"`
	Slug string `json:"slug" example:"engineering"`
}

// AjaxResponseDTO wraps admin-ajax results the way the editor script expects.
type AjaxResponseDTO struct {
	Success bool `json:"success"`
	Data    any  `json:"data" swaggertype:"object"`
}
