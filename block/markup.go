package block

import (
	"bytes"
	"html/template"
	"strconv"
)

// Whitespace is significant: each <li> opens and closes with a newline, nothing
// else is emitted between tags.
const blockTemplate = `<div class="wp-block-gb-more-from-widget">` +
	`{{if .Heading}}<h3 class="more-from-title">{{.Heading}}</h3>{{end}}` +
	`<ul class="{{.ListClass}}">` +
	`{{range .Items}}<li>{{"\n"}}` +
	`{{if .Thumbnail}}<img src="{{.Thumbnail}}" />{{end}}` +
	`<a href="{{.Permalink}}">{{.Title}}</a>` +
	`{{if .ShowDate}}<time datetime="{{.DateTime}}" class="post-date">{{.DateDisplay}}</time>{{end}}` +
	`</li>{{"\n"}}{{end}}` +
	`</ul></div>`

var markupTemplate = template.Must(template.New("more-from").Parse(blockTemplate))

type listItemView struct {
	Thumbnail   string
	Permalink   string
	Title       string
	ShowDate    bool
	DateTime    string
	DateDisplay string
}

type blockView struct {
	Heading   template.HTML
	ListClass string
	Items     []listItemView
}

// listClass prints columns as given; the schema default is applied by
// ParseAttributes only when the attribute is absent.
func listClass(layout string, columns float64) string {
	class := "is-list"
	if layout == LayoutGrid {
		class = "is-grid"
	}
	return class + " columns-" + strconv.FormatFloat(columns, 'f', -1, 64)
}

func renderMarkup(v blockView) (string, error) {
	var buf bytes.Buffer
	if err := markupTemplate.Execute(&buf, v); err != nil {
		return "", err
	}
	return buf.String(), nil
}
