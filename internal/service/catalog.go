package service

import (
	"github.com/notaryweb/internal/db"
	"github.com/notaryweb/internal/render"
	"github.com/notaryweb/internal/resource"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type (
	BannerService        = resource.Service[db.Banner, *db.Banner, BannerInput]
	OfficeServiceService = resource.Service[db.OfficeService, *db.OfficeService, OfficeServiceInput]
	LinkService          = resource.Service[db.Link, *db.Link, LinkInput]
	NewsService          = resource.Service[db.News, *db.News, NewsInput]
	PageService          = resource.Service[db.Page, *db.Page, PageInput]
	ReviewImageService   = resource.Service[db.ReviewImage, *db.ReviewImage, ReviewImageInput]
	AnnouncementService  = resource.Service[db.Announcement, *db.Announcement, AnnouncementInput]
)

// Dependencies 汇总内容服务共享的协作者，均可为空。
type Dependencies struct {
	Cache    resource.Cache
	Logger   *zap.Logger
	Recorder resource.MutationRecorder
}

// Catalog 持有每一种可在后台管理的内容资源的服务实例。
type Catalog struct {
	Banners       *BannerService
	Services      *OfficeServiceService
	Links         *LinkService
	News          *NewsService
	Pages         *PageService
	ReviewImages  *ReviewImageService
	Announcements *AnnouncementService
}

// NewCatalog instantiates the generic resource module once per content type.
func NewCatalog(gdb *gorm.DB, deps Dependencies) *Catalog {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &Catalog{
		Banners: resource.NewService[db.Banner, *db.Banner, BannerInput](
			resource.Definition{Name: "banners", Singular: "banner"},
			resource.NewStore[db.Banner](gdb, "banners"),
			options[db.Banner](deps, log, nil),
		),
		Services: resource.NewService[db.OfficeService, *db.OfficeService, OfficeServiceInput](
			resource.Definition{Name: "services", Singular: "service"},
			resource.NewStore[db.OfficeService](gdb, "services"),
			options(deps, log, func(item *db.OfficeService) {
				item.DescriptionHTML = renderOrLog(log, "services", item.ID, item.Description)
			}),
		),
		Links: resource.NewService[db.Link, *db.Link, LinkInput](
			resource.Definition{Name: "links", Singular: "link"},
			resource.NewStore[db.Link](gdb, "links"),
			options[db.Link](deps, log, nil),
		),
		News: resource.NewService[db.News, *db.News, NewsInput](
			resource.Definition{Name: "news", Singular: "news"},
			resource.NewStore[db.News](gdb, "news"),
			options(deps, log, func(item *db.News) {
				item.ContentHTML = renderOrLog(log, "news", item.ID, item.Content)
			}),
		),
		Pages: resource.NewService[db.Page, *db.Page, PageInput](
			resource.Definition{Name: "pages", Singular: "page"},
			resource.NewStore[db.Page](gdb, "pages"),
			options(deps, log, func(item *db.Page) {
				item.ContentHTML = renderOrLog(log, "pages", item.ID, item.Content)
			}),
		),
		ReviewImages: resource.NewService[db.ReviewImage, *db.ReviewImage, ReviewImageInput](
			resource.Definition{Name: "review-images", Singular: "reviewImage"},
			resource.NewStore[db.ReviewImage](gdb, "review images"),
			options[db.ReviewImage](deps, log, nil),
		),
		Announcements: resource.NewService[db.Announcement, *db.Announcement, AnnouncementInput](
			resource.Definition{Name: "announcements", Singular: "announcement"},
			resource.NewStore[db.Announcement](gdb, "announcements"),
			options[db.Announcement](deps, log, nil),
		),
	}
}

func options[T any](deps Dependencies, log *zap.Logger, hook func(*T)) resource.Options[T] {
	return resource.Options[T]{
		Cache:      deps.Cache,
		Logger:     log,
		Recorder:   deps.Recorder,
		PublicHook: hook,
	}
}

func renderOrLog(log *zap.Logger, resourceName string, id uint, markdown string) string {
	html, err := render.Markdown(markdown)
	if err != nil {
		log.Warn("render markdown failed", zap.String("resource", resourceName), zap.Uint("id", id), zap.Error(err))
		return ""
	}
	return html
}
