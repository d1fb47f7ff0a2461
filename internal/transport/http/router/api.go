package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"agri-connect/internal/ai"
	"agri-connect/internal/core/auth"
	"agri-connect/internal/core/server"
	"agri-connect/internal/store"
	mdw "agri-connect/internal/transport/http/middleware"
)

func NewAPIEngine(l *zap.Logger, st *store.Store, aic *ai.Client, jwter *auth.JWTer) *gin.Engine {
	r := server.NewEngine(l)

	// 中间件
	r.Use(
		mdw.RequestID(),
		mdw.RateLimitPerIP(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(60*time.Second), // 内容生成是最慢的一路
		mdw.Recovery(l),
		mdw.Metrics(),
		mdw.AccessLog(l),
	)

	// 健康检查 + prometheus 抓取口
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// /api/v1 下：pub 公共，priv 过 JWT 闸门
	api := r.Group("/api/v1")
	priv := api.Group("")
	priv.Use(mdw.AuthJWT(jwter, ""))

	reg := &Registry{}
	reg.Register(
		&SessionModule{Store: st, JWT: jwter},
		&CatalogModule{Store: st},
		&CartModule{Store: st},
		&OrderModule{Store: st},
		&WishlistModule{Store: st},
		&NewsModule{Store: st, AI: aic},
		&AssistantModule{Store: st, AI: aic},
	)
	reg.MountAll(api, priv)

	return r
}
