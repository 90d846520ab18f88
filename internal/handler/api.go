package handler

import (
	"time"

	"github.com/notaryweb/internal/mail"
	"github.com/notaryweb/internal/resource"
	"github.com/notaryweb/internal/service"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Dependencies 汇总处理器所需的协作者，由 main 显式创建并传入。
type Dependencies struct {
	DB          *gorm.DB
	Logger      *zap.Logger
	Cache       resource.Cache
	Recorder    resource.MutationRecorder
	Mailer      mail.Sender
	UploadDir   string
	UploadURL   string
	MaxUploadMB int
	SessionTTL  time.Duration
}

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db             *gorm.DB
	catalog        *service.Catalog
	auth           *service.AuthService
	contact        *service.ContactService
	log            *zap.Logger
	uploadDir      string
	uploadURL      string
	maxUploadBytes int64
	sessionTTL     time.Duration
	now            func() time.Time
}

// NewAPI constructs a handler set with shared services.
func NewAPI(deps Dependencies) *API {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	mailer := deps.Mailer
	if mailer == nil {
		mailer = mail.NewLogSender(log)
	}

	uploadDir := deps.UploadDir
	if uploadDir == "" {
		uploadDir = "web/static/uploads"
	}
	uploadURL := deps.UploadURL
	if uploadURL == "" {
		uploadURL = "/static/uploads"
	}
	maxUploadMB := deps.MaxUploadMB
	if maxUploadMB <= 0 {
		maxUploadMB = 8
	}
	sessionTTL := deps.SessionTTL
	if sessionTTL <= 0 {
		sessionTTL = 12 * time.Hour
	}

	return &API{
		db: deps.DB,
		catalog: service.NewCatalog(deps.DB, service.Dependencies{
			Cache:    deps.Cache,
			Logger:   log,
			Recorder: deps.Recorder,
		}),
		auth:           service.NewAuthService(deps.DB),
		contact:        service.NewContactService(mailer),
		log:            log,
		uploadDir:      uploadDir,
		uploadURL:      uploadURL,
		maxUploadBytes: int64(maxUploadMB) << 20,
		sessionTTL:     sessionTTL,
		now:            time.Now,
	}
}

// Resources returns one route set per content type.
func (a *API) Resources() []ResourceRoutes {
	return []ResourceRoutes{
		NewResourceHandler(a.catalog.Banners, a.log, LookupNone, false),
		NewResourceHandler(a.catalog.Services, a.log, LookupNone, false),
		NewResourceHandler(a.catalog.Links, a.log, LookupNone, false),
		NewResourceHandler(a.catalog.News, a.log, LookupByID, true),
		NewResourceHandler(a.catalog.Pages, a.log, LookupBySlug, false),
		NewResourceHandler(a.catalog.ReviewImages, a.log, LookupNone, false),
		NewResourceHandler(a.catalog.Announcements, a.log, LookupNone, false),
	}
}
