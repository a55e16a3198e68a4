package services

import (
	"errors"

	"gb-more-from-widget/block"
	"gb-more-from-widget/cmd/api/dto"
	"gb-more-from-widget/host"
)

const (
	AssetContextEditor = "editor"
	AssetContextPublic = "public"
)

var ErrInvalidAssetContext = errors.New("asset context must be editor or public")

// AssetRegistrar enqueues the assets of a block for one page context.
type AssetRegistrar interface {
	RegisterAssets(assets block.AssetPipeline, forEditor bool, postID string)
}

// AssetService builds per-request asset manifests from registered blocks.
type AssetService struct {
	registrars []AssetRegistrar
}

func NewAssetService(registrars ...AssetRegistrar) *AssetService {
	return &AssetService{registrars: registrars}
}

// Manifest 는 요청마다 새 AssetQueue 를 만들어 등록된 블록의 자산을 모은다.
func (s *AssetService) Manifest(assetContext, postID string) (dto.AssetsDTO, error) {
	if assetContext == "" {
		assetContext = AssetContextPublic
	}
	if assetContext != AssetContextEditor && assetContext != AssetContextPublic {
		return dto.AssetsDTO{}, ErrInvalidAssetContext
	}

	q := host.NewAssetQueue()
	for _, r := range s.registrars {
		r.RegisterAssets(q, assetContext == AssetContextEditor, postID)
	}
	m := q.Manifest()

	tags, err := m.HTML()
	if err != nil {
		return dto.AssetsDTO{}, err
	}

	out := dto.AssetsDTO{
		Context: assetContext,
		Styles:  mapAssets(m.Styles),
		Scripts: mapAssets(m.Scripts),
		Data:    make([]dto.InlineDataDTO, 0, len(m.Data)),
		Tags:    string(tags),
	}
	for _, d := range m.Data {
		out.Data = append(out.Data, dto.InlineDataDTO{Handle: d.Handle, ObjectName: d.ObjectName, Data: d.Data})
	}
	return out, nil
}

func mapAssets(assets []host.Asset) []dto.AssetDTO {
	out := make([]dto.AssetDTO, 0, len(assets))
	for _, a := range assets {
		deps := a.Deps
		if deps == nil {
			deps = []string{}
		}
		out = append(out, dto.AssetDTO{Handle: a.Handle, URL: a.URL(), Deps: deps})
	}
	return out
}
