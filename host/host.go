package host

import (
	"net/url"
	"strings"

	"gb-more-from-widget/block"
)

// Host wires the registry, content source and nonce issuer into the
// block.Platform contract.
type Host struct {
	*BlockRegistry
	*ContentSource
	*NonceIssuer

	siteURL       string
	adminAjaxPath string
	assetBaseURL  string
}

var _ block.Platform = (*Host)(nil)

type Config struct {
	SiteURL       string
	AdminAjaxPath string
	AssetBaseURL  string
}

func New(cfg Config, content *ContentSource, nonces *NonceIssuer) *Host {
	return &Host{
		BlockRegistry: NewBlockRegistry(),
		ContentSource: content,
		NonceIssuer:   nonces,
		siteURL:       strings.TrimRight(cfg.SiteURL, "/"),
		adminAjaxPath: cfg.AdminAjaxPath,
		assetBaseURL:  cfg.AssetBaseURL,
	}
}

// AdminAjaxURL returns the absolute URL of the ajax endpoint.
func (h *Host) AdminAjaxURL() string {
	return join(h.siteURL, h.adminAjaxPath)
}

// AssetURL returns the public URL of a file in the plugin asset tree.
func (h *Host) AssetURL(rel string) string {
	base := h.assetBaseURL
	if base == "" {
		base = h.siteURL
	}
	return join(base, rel)
}

func join(base, rel string) string {
	if u, err := url.Parse(rel); err == nil && u.IsAbs() {
		return rel
	}
	if base == "" {
		return "/" + strings.TrimLeft(rel, "/")
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(rel, "/")
}
