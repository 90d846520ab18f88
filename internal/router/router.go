package router

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/notaryweb/internal/config"
	"github.com/notaryweb/internal/handler"
	"github.com/notaryweb/internal/metrics"
	"github.com/notaryweb/internal/middleware"
	"go.uber.org/zap"
)

const sessionName = "notary_session"

// Options 路由所需的依赖
type Options struct {
	API           *handler.API
	Logger        *zap.Logger
	Metrics       *metrics.Metrics
	Session       config.SessionConfig
	UploadDir     string
	UploadURLPath string
}

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(opts Options) *gin.Engine {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := gin.New()
	r.Use(middleware.Recovery(log), middleware.Logger(log))
	if opts.Metrics != nil {
		r.Use(middleware.Metrics(opts.Metrics))
		r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}

	// 配置会话中间件
	store := cookie.NewStore([]byte(opts.Session.Secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(opts.Session.TTL.Seconds()),
		HttpOnly: true,
		Secure:   opts.Session.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionName, store))

	// 上传文件服务
	if opts.UploadDir != "" && opts.UploadURLPath != "" {
		r.Static(opts.UploadURLPath, opts.UploadDir)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	api := opts.API
	r.GET("/healthz", api.Health)
	r.POST("/contact", api.SubmitContact)

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", api.Login)
		authGroup.POST("/logout", api.Logout)
		authGroup.GET("/me", api.Me)
	}

	resources := api.Resources()
	for _, res := range resources {
		res.RegisterPublic(r)
	}

	// 需要认证的后台路由
	admin := r.Group("/admin")
	admin.Use(api.AuthRequired())
	{
		admin.POST("/uploads", api.UploadImage)
		for _, res := range resources {
			res.RegisterAdmin(admin)
		}
	}

	return r
}
