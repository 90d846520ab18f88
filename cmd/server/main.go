package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/notaryweb/internal/cache"
	"github.com/notaryweb/internal/config"
	"github.com/notaryweb/internal/db"
	"github.com/notaryweb/internal/handler"
	"github.com/notaryweb/internal/logger"
	"github.com/notaryweb/internal/mail"
	"github.com/notaryweb/internal/metrics"
	"github.com/notaryweb/internal/resource"
	"github.com/notaryweb/internal/router"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	gin.SetMode(cfg.GinMode)

	if cfg.Session.UsesDefaultSecret() {
		if gin.Mode() == gin.ReleaseMode {
			zlog.Error("SESSION_SECRET is not set; admin sessions are signed with the public development key")
		} else {
			zlog.Warn("SESSION_SECRET is not set, using development key")
		}
	}

	// 初始化数据库
	gdb, err := db.Open(cfg.Database)
	if err != nil {
		zlog.Fatal("failed to initialize database", zap.Error(err))
	}
	defer db.Close(gdb)

	if err := db.EnsureUser(gdb, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		zlog.Fatal("failed to ensure admin user", zap.Error(err))
	}

	// Redis 未配置时不启用缓存
	var contentCache resource.Cache = resource.NopCache{}
	if cfg.Redis.Addr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		client, err := cache.NewRedisClient(ctx, cfg.Redis)
		cancel()
		if err != nil {
			zlog.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer client.Close()
		contentCache = cache.NewRedisCache(client, cfg.Redis.TTL, zlog)
	}

	m := metrics.New()
	api := handler.NewAPI(handler.Dependencies{
		DB:          gdb,
		Logger:      zlog,
		Cache:       contentCache,
		Recorder:    m,
		Mailer:      mail.NewSender(cfg.SMTP, zlog),
		UploadDir:   cfg.UploadDir,
		UploadURL:   cfg.UploadURLPath,
		MaxUploadMB: cfg.MaxUploadMB,
		SessionTTL:  cfg.Session.TTL,
	})

	r := router.SetupRouter(router.Options{
		API:           api,
		Logger:        zlog,
		Metrics:       m,
		Session:       cfg.Session,
		UploadDir:     cfg.UploadDir,
		UploadURLPath: cfg.UploadURLPath,
	})

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 启动服务器（非阻塞）
	go func() {
		zlog.Info("server starting", zap.String("addr", cfg.ListenAddr), zap.String("database", cfg.Database.Driver))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("failed to run server", zap.Error(err))
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		zlog.Error("server forced to shutdown", zap.Error(err))
		return
	}

	zlog.Info("server exited")
}
