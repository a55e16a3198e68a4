package block

import (
	"context"
	"errors"
	"html/template"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gb-more-from-widget/logger"
)

// Name is the registered block type name.
const Name = "gb/more-from-widget"

const (
	EditorScriptHandle = "gbmf-js"
	EditorStyleHandle  = "gbmf-editor-style"
	StyleHandle        = "gbmf-style"

	// ScriptObjectName is the global the editor script reads its settings from.
	ScriptObjectName = "gbmfObject"
	NonceAction      = "gbmf_nonce"

	editorScriptPath = "assets/js/block.build.js"
	editorStylePath  = "assets/css/editor.css"
	stylePath        = "assets/css/style.css"

	// isoDateLayout matches the "c" date format of the legacy block.
	isoDateLayout = "2006-01-02T15:04:05-07:00"
)

// Render outcomes reported to a RenderObserver.
const (
	OutcomeRendered = "rendered"
	OutcomeEmpty    = "empty"
	OutcomeInvalid  = "invalid"
	OutcomeError    = "error"
)

// RenderObserver receives the outcome and duration of every Build.
type RenderObserver interface {
	ObserveRender(block, outcome string, d time.Duration)
}

var (
	// ErrInvalidAttribute reports a missing or non-numeric category.
	ErrInvalidAttribute = errors.New("invalid block attribute")
	// ErrEmptyResult reports that the category has no matching posts.
	ErrEmptyResult = errors.New("no related content")
)

// ScriptData is what the editor script receives as gbmfObject.
type ScriptData struct {
	AjaxURL   string `json:"ajax_url"`
	AjaxNonce string `json:"ajax_nonce"`
	PostID    string `json:"post_id"`
}

type controllerOptions struct {
	assetDir     string
	defaultTitle string
	dateLayout   string
	location     *time.Location
	escapeTitle  bool
	observer     RenderObserver
}

// Option configures a Controller.
type Option func(*controllerOptions)

// WithAssetDir sets the directory asset versions are read from.
func WithAssetDir(dir string) Option {
	return func(o *controllerOptions) {
		if dir != "" {
			o.assetDir = dir
		}
	}
}

// WithDefaultTitle overrides the schema default of the title attribute.
func WithDefaultTitle(title string) Option {
	return func(o *controllerOptions) {
		if title != "" {
			o.defaultTitle = title
		}
	}
}

// WithDateFormat sets the Go time layout used for the visible post date.
func WithDateFormat(layout string) Option {
	return func(o *controllerOptions) {
		if layout != "" {
			o.dateLayout = layout
		}
	}
}

// WithLocation sets the timezone dates are rendered in.
func WithLocation(loc *time.Location) Option {
	return func(o *controllerOptions) {
		if loc != nil {
			o.location = loc
		}
	}
}

// WithEscapedTitle escapes the heading text. Without it the heading is
// written verbatim, as the legacy block did.
func WithEscapedTitle(escape bool) Option {
	return func(o *controllerOptions) {
		o.escapeTitle = escape
	}
}

// WithObserver reports render outcomes to obs.
func WithObserver(obs RenderObserver) Option {
	return func(o *controllerOptions) {
		o.observer = obs
	}
}

// Controller registers and renders the "More From" block.
type Controller struct {
	platform Platform
	schema   Schema
	opts     controllerOptions
}

func NewController(p Platform, opts ...Option) *Controller {
	settings := controllerOptions{
		assetDir:     ".",
		defaultTitle: "More From",
		dateLayout:   "January 2, 2006",
		location:     time.UTC,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&settings)
		}
	}
	return &Controller{
		platform: p,
		schema:   NewSchema(settings.defaultTitle),
		opts:     settings,
	}
}

// Schema returns the attribute schema the block registers with.
func (c *Controller) Schema() Schema {
	return c.schema
}

// Register registers the block type and its render callback with the host.
func (c *Controller) Register() error {
	return c.platform.RegisterBlockType(Name, BlockType{
		Attributes: c.schema,
		RenderCallback: func(ctx context.Context, raw map[string]any) string {
			return c.Render(ctx, ParseAttributes(raw, c.schema))
		},
	})
}

// RegisterAssets enqueues the block's scripts and styles. The editor context
// also receives gbmfObject with the ajax endpoint, a fresh nonce and postID.
func (c *Controller) RegisterAssets(assets AssetPipeline, forEditor bool, postID string) {
	if !forEditor {
		assets.EnqueueStyle(StyleHandle, c.platform.AssetURL(stylePath), []string{"wp-blocks"}, c.assetVersion(stylePath))
		return
	}

	assets.EnqueueScript(
		EditorScriptHandle,
		c.platform.AssetURL(editorScriptPath),
		[]string{"wp-blocks", "wp-i18n", "wp-element", "moment"},
		c.assetVersion(editorScriptPath),
	)

	nonce, err := c.platform.CreateNonce(NonceAction)
	if err != nil {
		logger.ErrorWithFields("failed to create editor nonce", logger.Fields{
			"block": Name,
			"error": err.Error(),
		})
	}
	assets.InjectScriptData(EditorScriptHandle, ScriptObjectName, ScriptData{
		AjaxURL:   c.platform.AdminAjaxURL(),
		AjaxNonce: nonce,
		PostID:    postID,
	})

	assets.EnqueueStyle(
		EditorStyleHandle,
		c.platform.AssetURL(editorStylePath),
		[]string{"wp-edit-blocks"},
		c.assetVersion(editorStylePath),
	)
}

// assetVersion returns the file modification time in unix seconds, or "" when
// the file cannot be read.
func (c *Controller) assetVersion(rel string) string {
	info, err := os.Stat(filepath.Join(c.opts.assetDir, filepath.FromSlash(rel)))
	if err != nil {
		logger.WarnWithFields("asset version unavailable", logger.Fields{
			"asset": rel,
			"error": err.Error(),
		})
		return ""
	}
	return strconv.FormatInt(info.ModTime().Unix(), 10)
}

// QueryRelated returns up to limit posts of the given category in host order.
// ok is false for an invalid category, a failed query or no posts.
func (c *Controller) QueryRelated(ctx context.Context, category string, limit int) ([]ContentItem, bool) {
	id, valid := CategoryID(category)
	if !valid {
		return nil, false
	}

	items, err := c.platform.QueryContent(ctx, ContentQuery{
		CategoryID:      id,
		Limit:           limit,
		IgnoreSticky:    true,
		SuppressFilters: false,
	})
	if err != nil {
		logger.ErrorWithFields("related content query failed", logger.Fields{
			"category_id": id,
			"limit":       limit,
			"error":       err.Error(),
		})
		return nil, false
	}
	if len(items) == 0 {
		return nil, false
	}
	return items, true
}

// Render returns the block markup, or "" when the category is invalid.
func (c *Controller) Render(ctx context.Context, attrs Attributes) string {
	out, _ := c.Build(ctx, attrs)
	return out
}

// Build renders like Render and also reports why a render came out empty:
// ErrInvalidAttribute (no markup at all) or ErrEmptyResult (an empty list).
func (c *Controller) Build(ctx context.Context, attrs Attributes) (out string, err error) {
	if c.opts.observer != nil {
		start := time.Now()
		defer func() {
			c.opts.observer.ObserveRender(Name, outcome(err), time.Since(start))
		}()
	}
	return c.build(ctx, attrs)
}

func outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeRendered
	case errors.Is(err, ErrEmptyResult):
		return OutcomeEmpty
	case errors.Is(err, ErrInvalidAttribute):
		return OutcomeInvalid
	default:
		return OutcomeError
	}
}

func (c *Controller) build(ctx context.Context, attrs Attributes) (string, error) {
	if _, ok := CategoryID(attrs.Category); !ok {
		return "", ErrInvalidAttribute
	}

	items, found := c.QueryRelated(ctx, attrs.Category, attrs.PostsToShow)

	view := blockView{
		ListClass: listClass(attrs.Layout, attrs.Columns),
		Items:     make([]listItemView, 0, len(items)),
	}
	if attrs.Title != "" {
		if c.opts.escapeTitle {
			view.Heading = template.HTML(template.HTMLEscapeString(attrs.Title))
		} else {
			view.Heading = template.HTML(attrs.Title)
		}
	}

	for _, item := range items {
		li := listItemView{
			Permalink: item.Permalink,
			Title:     item.Title,
		}
		if attrs.DisplayPostThumbnail && item.ThumbnailURL != "" {
			li.Thumbnail = item.ThumbnailURL
		}
		if attrs.DisplayPostDate {
			published := item.PublishedAt.In(c.opts.location)
			li.ShowDate = true
			li.DateTime = published.Format(isoDateLayout)
			li.DateDisplay = published.Format(c.opts.dateLayout)
		}
		view.Items = append(view.Items, li)
	}

	out, err := renderMarkup(view)
	if err != nil {
		logger.ErrorWithFields("failed to render block markup", logger.Fields{
			"block": Name,
			"error": err.Error(),
		})
		return "", err
	}
	if !found {
		return out, ErrEmptyResult
	}
	return out, nil
}
