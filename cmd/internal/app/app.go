package app

import (
	"go.mongodb.org/mongo-driver/mongo"

	"gb-more-from-widget/block"
	"gb-more-from-widget/config"
	"gb-more-from-widget/host"
	"gb-more-from-widget/repositories"
)

// App 는 API 서버와 CLI 가 공유하는 블록 호스트 구성이다.
type App struct {
	Host       *host.Host
	Controller *block.Controller
	Posts      *repositories.PostRepository
	Categories *repositories.CategoryRepository
}

// New wires repositories, the host platform and the block controller from
// cfg, and registers the block type. extra options are appended after the
// ones derived from cfg.
func New(cfg config.AppConfig, database *mongo.Database, extra ...block.Option) (*App, error) {
	nonces, err := host.NewNonceIssuer(cfg.Nonce.Secret, cfg.Nonce.TTL)
	if err != nil {
		return nil, err
	}

	posts := repositories.NewPostRepository(database)
	categories := repositories.NewCategoryRepository(database)

	h := host.New(host.Config{
		SiteURL:       cfg.Site.URL,
		AdminAjaxPath: cfg.Site.AdminAjaxPath,
		AssetBaseURL:  cfg.Assets.BaseURL,
	}, host.NewContentSource(posts, cfg.Site.URL), nonces)

	opts := append([]block.Option{
		block.WithAssetDir(cfg.Assets.Dir),
		block.WithDefaultTitle(cfg.Block.DefaultTitle),
		block.WithDateFormat(cfg.Site.DateFormat),
		block.WithLocation(cfg.Site.Location()),
		block.WithEscapedTitle(cfg.Block.EscapeTitle),
	}, extra...)
	controller := block.NewController(h, opts...)
	if err := controller.Register(); err != nil {
		return nil, err
	}

	return &App{
		Host:       h,
		Controller: controller,
		Posts:      posts,
		Categories: categories,
	}, nil
}
