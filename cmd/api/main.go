package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"agri-connect/internal/ai"
	"agri-connect/internal/core/auth"
	"agri-connect/internal/core/cache"
	"agri-connect/internal/core/config"
	"agri-connect/internal/core/logger"
	"agri-connect/internal/core/server"
	"agri-connect/internal/storage"
	"agri-connect/internal/store"
	"agri-connect/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))

	log, cleanup := logger.Build(logger.Options{
		Level:       cfg.Log.Level,
		JSON:        cfg.Log.JSON,
		AddCaller:   true,
		Development: !cfg.Log.JSON,
		Rotate: logger.FileRotate{
			Enable:     cfg.Log.Rotate.Enable,
			Filename:   cfg.Log.Rotate.Filename,
			MaxSizeMB:  cfg.Log.Rotate.MaxSizeMB,
			MaxBackups: cfg.Log.Rotate.MaxBackups,
			MaxAgeDays: cfg.Log.Rotate.MaxAgeDays,
			Compress:   cfg.Log.Rotate.Compress,
		},
	})
	defer cleanup()
	undo := logger.RedirectStdLog(log, zapcore.InfoLevel)
	defer undo()

	if cfg.App.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	// redis 可选：配了地址才建连接，给内容缓存和 redis 快照驱动共用
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			log.Warn("redis unreachable, content cache disabled", zap.Error(err))
			rdb = nil
		}
		cancel()
	}

	snap := buildSnapshotter(cfg, rdb, log)

	loadCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	st := store.Open(loadCtx, snap, log)
	cancel()

	var contentCache *cache.Cache
	if rdb != nil {
		contentCache = cache.New(rdb)
	}
	aic := ai.New(ai.Options{
		APIKey:     cfg.Gemini.APIKey,
		BaseURL:    cfg.Gemini.BaseURL,
		Model:      cfg.Gemini.Model,
		TimeoutSec: cfg.Gemini.TimeoutSec,
		Logger:     log,
		Cache:      contentCache,
	})
	if !aic.Configured() {
		log.Warn("gemini api key not set, content generation runs on offline fallbacks")
	}

	jwter := &auth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    time.Duration(cfg.JWT.AccessTokenTTLMin) * time.Minute,
	}

	r := router.NewAPIEngine(log, st, aic, jwter)

	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)

	host4human := cfg.App.HTTP.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.HTTP.Port)
	log.Info("marketplace api starting",
		zap.String("addr", addr),
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
		zap.String("api_v1", baseURL+"/api/v1"),
		zap.String("storage", cfg.Storage.Driver),
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("marketplace api start FAILED", zap.Error(err))
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	_ = srv.Shutdown(ctx)
	log.Info("marketplace api stopped gracefully")
}

func buildSnapshotter(cfg *config.Config, rdb *redis.Client, log *zap.Logger) storage.Snapshotter {
	switch cfg.Storage.Driver {
	case "redis":
		if rdb == nil {
			log.Warn("storage.driver=redis but redis unavailable, falling back to file snapshots")
			return storage.NewFile(cfg.Storage.Path)
		}
		return storage.NewRedis(rdb, cfg.Storage.Key)
	default:
		return storage.NewFile(cfg.Storage.Path)
	}
}
