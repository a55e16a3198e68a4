package host

import (
	"bytes"
	"html/template"
	"net/url"
	"regexp"
)

// Asset is an enqueued script or stylesheet.
type Asset struct {
	Handle  string   `json:"handle"`
	Src     string   `json:"src"`
	Deps    []string `json:"deps"`
	Version string   `json:"version,omitempty"`
}

// URL returns Src with the version appended as ?ver=.
func (a Asset) URL() string {
	if a.Version == "" {
		return a.Src
	}
	u, err := url.Parse(a.Src)
	if err != nil {
		return a.Src
	}
	q := u.Query()
	q.Set("ver", a.Version)
	u.RawQuery = q.Encode()
	return u.String()
}

// InlineData is a JSON object exposed to a script as a global variable.
type InlineData struct {
	Handle     string `json:"handle"`
	ObjectName string `json:"object_name"`
	Data       any    `json:"data"`
}

// Manifest is the resolved, dependency-ordered asset list of a page.
type Manifest struct {
	Styles  []Asset      `json:"styles"`
	Scripts []Asset      `json:"scripts"`
	Data    []InlineData `json:"data"`
}

var jsIdentifier = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// AssetQueue collects the assets of a single page render. It is not safe for
// concurrent use; create one per request.
type AssetQueue struct {
	scripts []Asset
	styles  []Asset
	data    []InlineData
}

func NewAssetQueue() *AssetQueue {
	return &AssetQueue{}
}

func (q *AssetQueue) EnqueueScript(handle, src string, deps []string, version string) {
	if indexOf(q.scripts, handle) >= 0 {
		return
	}
	q.scripts = append(q.scripts, Asset{Handle: handle, Src: src, Deps: deps, Version: version})
}

func (q *AssetQueue) EnqueueStyle(handle, src string, deps []string, version string) {
	if indexOf(q.styles, handle) >= 0 {
		return
	}
	q.styles = append(q.styles, Asset{Handle: handle, Src: src, Deps: deps, Version: version})
}

// InjectScriptData attaches data to an enqueued (or later enqueued) script.
// Object names that are not valid JS identifiers are dropped.
func (q *AssetQueue) InjectScriptData(handle, objectName string, data any) {
	if !jsIdentifier.MatchString(objectName) {
		return
	}
	for i, d := range q.data {
		if d.Handle == handle && d.ObjectName == objectName {
			q.data[i].Data = data
			return
		}
	}
	q.data = append(q.data, InlineData{Handle: handle, ObjectName: objectName, Data: data})
}

// Manifest orders each asset after the enqueued assets it depends on.
// Dependencies that were never enqueued are provided by the page shell.
func (q *AssetQueue) Manifest() Manifest {
	m := Manifest{
		Styles:  resolve(q.styles),
		Scripts: resolve(q.scripts),
	}
	for _, d := range q.data {
		if indexOf(q.scripts, d.Handle) >= 0 {
			m.Data = append(m.Data, d)
		}
	}
	return m
}

func indexOf(assets []Asset, handle string) int {
	for i, a := range assets {
		if a.Handle == handle {
			return i
		}
	}
	return -1
}

func resolve(assets []Asset) []Asset {
	out := make([]Asset, 0, len(assets))
	done := make(map[string]bool, len(assets))
	visiting := make(map[string]bool)

	var visit func(a Asset)
	visit = func(a Asset) {
		if done[a.Handle] || visiting[a.Handle] {
			return
		}
		visiting[a.Handle] = true
		for _, dep := range a.Deps {
			if i := indexOf(assets, dep); i >= 0 {
				visit(assets[i])
			}
		}
		visiting[a.Handle] = false
		done[a.Handle] = true
		out = append(out, a)
	}
	for _, a := range assets {
		visit(a)
	}
	return out
}

const assetTagsTemplate = `{{range .Styles}}<link rel="stylesheet" id="{{.Handle}}-css" href="{{.URL}}" media="all" />
{{end}}{{range .Scripts}}{{range .Inline}}<script id="{{.Handle}}-js-extra">var {{.Name}} = {{.Data}};</script>
{{end}}<script src="{{.URL}}" id="{{.Handle}}-js"></script>
{{end}}`

var assetTags = template.Must(template.New("assets").Parse(assetTagsTemplate))

type inlineView struct {
	Handle string
	Name   template.JS
	Data   any
}

type scriptView struct {
	Handle string
	URL    string
	Inline []inlineView
}

type styleView struct {
	Handle string
	URL    string
}

// HTML renders <link> and <script> tags for the manifest. Inline data is
// written right before the script it belongs to.
func (m Manifest) HTML() (template.HTML, error) {
	view := struct {
		Styles  []styleView
		Scripts []scriptView
	}{}
	for _, s := range m.Styles {
		view.Styles = append(view.Styles, styleView{Handle: s.Handle, URL: s.URL()})
	}
	for _, s := range m.Scripts {
		sv := scriptView{Handle: s.Handle, URL: s.URL()}
		for _, d := range m.Data {
			if d.Handle == s.Handle {
				// object names are validated on injection
				sv.Inline = append(sv.Inline, inlineView{Handle: d.Handle, Name: template.JS(d.ObjectName), Data: d.Data})
			}
		}
		view.Scripts = append(view.Scripts, sv)
	}

	var buf bytes.Buffer
	if err := assetTags.Execute(&buf, view); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
