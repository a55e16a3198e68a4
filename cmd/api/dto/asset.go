package dto

// AssetDTO is one enqueued script or stylesheet.
type AssetDTO struct {
	Handle string   `json:"handle" example:"gbmf-js"`
	URL    string   `json:"url"`
	Deps   []string `json:"deps"`
}

// InlineDataDTO is a global object injected before a script.
type InlineDataDTO struct {
	Handle     string `json:"handle" example:"gbmf-js"`
	ObjectName string `json:"object_name" example:"gbmfObject"`
	Data       any    `json:"data" swaggertype:"object"`
}

// AssetsDTO is the asset manifest of one page context along with the
// ready-to-embed tags.
type AssetsDTO struct {
	Context string          `json:"context" example:"editor"`
	Styles  []AssetDTO      `json:"styles"`
	Scripts []AssetDTO      `json:"scripts"`
	Data    []InlineDataDTO `json:"data"`
	Tags    string          `json:"tags"`
}
