package host

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"sync"

	"gb-more-from-widget/block"
)

var (
	ErrInvalidBlockName = errors.New("block name must be namespace/name")
	ErrDuplicateBlock   = errors.New("block type already registered")
	ErrBlockNotFound    = errors.New("block type not found")
	ErrMissingRender    = errors.New("block type has no render callback")
)

var blockNamePattern = regexp.MustCompile(`^[a-z0-9-]+/[a-z0-9-]+$`)

// RegisteredBlock is a block type as listed by the registry.
type RegisteredBlock struct {
	Name       string       `json:"name"`
	Attributes block.Schema `json:"attributes"`
	Dynamic    bool         `json:"is_dynamic"`
}

// BlockRegistry holds block types registered at startup. Reads are safe from
// concurrent request handlers.
type BlockRegistry struct {
	mu    sync.RWMutex
	types map[string]block.BlockType
}

func NewBlockRegistry() *BlockRegistry {
	return &BlockRegistry{types: map[string]block.BlockType{}}
}

// RegisterBlockType adds a block type under name.
func (r *BlockRegistry) RegisterBlockType(name string, bt block.BlockType) error {
	if !blockNamePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidBlockName, name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.types[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateBlock, name)
	}
	r.types[name] = bt
	return nil
}

// Lookup returns the block type registered under name.
func (r *BlockRegistry) Lookup(name string) (block.BlockType, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	bt, ok := r.types[name]
	return bt, ok
}

// List returns registered block types sorted by name.
func (r *BlockRegistry) List() []RegisteredBlock {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]RegisteredBlock, 0, len(r.types))
	for name, bt := range r.types {
		out = append(out, RegisteredBlock{
			Name:       name,
			Attributes: bt.Attributes,
			Dynamic:    bt.RenderCallback != nil,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// RenderBlock fills schema defaults into raw and runs the render callback.
func (r *BlockRegistry) RenderBlock(ctx context.Context, name string, raw map[string]any) (string, error) {
	bt, ok := r.Lookup(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrBlockNotFound, name)
	}
	if bt.RenderCallback == nil {
		return "", fmt.Errorf("%w: %s", ErrMissingRender, name)
	}
	return bt.RenderCallback(ctx, bt.Attributes.WithDefaults(raw)), nil
}
