package block

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

const (
	LayoutList = "list"
	LayoutGrid = "grid"

	defaultPostsToShow = 3
	defaultColumns     = 3
)

// Attributes are the per-instance settings of a "More From" block.
type Attributes struct {
	Title                string  `json:"title"`
	Category             string  `json:"category"`
	PostsToShow          int     `json:"postsToShow"`
	DisplayPostDate      bool    `json:"displayPostDate"`
	Layout               string  `json:"layout"`
	Columns              float64 `json:"columns"`
	DisplayPostThumbnail bool    `json:"displayPostThumbnail"`
}

// AttributeType names the JSON type of a schema entry.
type AttributeType string

const (
	TypeString  AttributeType = "string"
	TypeNumber  AttributeType = "number"
	TypeBoolean AttributeType = "boolean"
)

// AttributeDef describes a single attribute of a block type.
type AttributeDef struct {
	Name    string
	Type    AttributeType
	Default any
}

// Schema is an ordered attribute schema.
type Schema []AttributeDef

// NewSchema returns the attribute schema of the "More From" block.
func NewSchema(defaultTitle string) Schema {
	return Schema{
		{Name: "title", Type: TypeString, Default: defaultTitle},
		{Name: "category", Type: TypeString, Default: ""},
		{Name: "postsToShow", Type: TypeNumber, Default: defaultPostsToShow},
		{Name: "displayPostDate", Type: TypeBoolean, Default: false},
		{Name: "layout", Type: TypeString, Default: LayoutList},
		{Name: "columns", Type: TypeNumber, Default: defaultColumns},
		{Name: "displayPostThumbnail", Type: TypeBoolean, Default: false},
	}
}

// WithDefaults returns a copy of raw where every attribute missing from raw
// takes its schema default. Keys unknown to the schema are kept.
func (s Schema) WithDefaults(raw map[string]any) map[string]any {
	out := make(map[string]any, len(s)+len(raw))
	for _, def := range s {
		out[def.Name] = def.Default
	}
	for k, v := range raw {
		if v == nil {
			continue
		}
		out[k] = v
	}
	return out
}

// MarshalJSON encodes the schema the way block registries describe it:
// {"title": {"type": "string", "default": "More From"}, ...}
func (s Schema) MarshalJSON() ([]byte, error) {
	var b strings.Builder
	b.WriteByte('{')
	for i, def := range s {
		if i > 0 {
			b.WriteByte(',')
		}
		name, err := json.Marshal(def.Name)
		if err != nil {
			return nil, err
		}
		body, err := json.Marshal(struct {
			Type    AttributeType `json:"type"`
			Default any           `json:"default"`
		}{def.Type, def.Default})
		if err != nil {
			return nil, err
		}
		b.Write(name)
		b.WriteByte(':')
		b.Write(body)
	}
	b.WriteByte('}')
	return []byte(b.String()), nil
}

// ParseAttributes coerces a loosely typed attribute map into Attributes,
// filling schema defaults for anything missing.
func ParseAttributes(raw map[string]any, schema Schema) Attributes {
	m := schema.WithDefaults(raw)

	a := Attributes{
		Title:                toString(m["title"]),
		Category:             toString(m["category"]),
		PostsToShow:          toInt(m["postsToShow"], defaultPostsToShow),
		DisplayPostDate:      toBool(m["displayPostDate"]),
		Layout:               toString(m["layout"]),
		Columns:              toFloat(m["columns"], defaultColumns),
		DisplayPostThumbnail: toBool(m["displayPostThumbnail"]),
	}
	if a.PostsToShow < 0 {
		a.PostsToShow = 0
	}
	return a
}

func toString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		if t {
			return "1"
		}
		return ""
	default:
		return ""
	}
}

func toInt(v any, fallback int) int {
	switch t := v.(type) {
	case int:
		return t
	case int64:
		return int(t)
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return fallback
		}
		return int(t)
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return int(n)
		}
		if f, err := t.Float64(); err == nil {
			return int(f)
		}
	case string:
		if n, ok := numericValue(t); ok {
			return int(n)
		}
	}
	return fallback
}

// toFloat keeps fractional values; columns is printed as given.
func toFloat(v any, fallback float64) float64 {
	var f float64
	switch t := v.(type) {
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case float64:
		f = t
	case json.Number:
		n, err := t.Float64()
		if err != nil {
			return fallback
		}
		f = n
	case string:
		n, ok := numericValue(t)
		if !ok {
			return fallback
		}
		f = n
	default:
		return fallback
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fallback
	}
	return f
}

func toBool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(t))
		return err == nil && b
	case float64:
		return t != 0
	case int:
		return t != 0
	case json.Number:
		f, err := t.Float64()
		return err == nil && f != 0
	}
	return false
}
