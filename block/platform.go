package block

import (
	"context"
	"time"
)

// ContentItem is a read-only snapshot of a published post as handed out by
// the host.
type ContentItem struct {
	ID           string
	Title        string
	Permalink    string
	PublishedAt  time.Time
	ThumbnailURL string
}

// ContentQuery mirrors the host's post query arguments.
type ContentQuery struct {
	CategoryID      int64
	Limit           int
	IgnoreSticky    bool
	SuppressFilters bool
}

// RenderCallback renders a block from attributes that already carry schema
// defaults.
type RenderCallback func(ctx context.Context, attrs map[string]any) string

// BlockType is what gets registered with the host block registry.
type BlockType struct {
	Attributes     Schema
	RenderCallback RenderCallback
}

// Platform is the part of the host the controller depends on.
type Platform interface {
	RegisterBlockType(name string, bt BlockType) error
	QueryContent(ctx context.Context, q ContentQuery) ([]ContentItem, error)
	AdminAjaxURL() string
	AssetURL(rel string) string
	CreateNonce(action string) (string, error)
}

// AssetPipeline receives scripts and styles for the page being built.
// Implementations are request scoped.
type AssetPipeline interface {
	EnqueueScript(handle, src string, deps []string, version string)
	EnqueueStyle(handle, src string, deps []string, version string)
	InjectScriptData(handle, objectName string, data any)
}
