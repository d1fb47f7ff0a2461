package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"agri-connect/internal/ai"
	"agri-connect/internal/domain"
	"agri-connect/internal/store"
	httpez "agri-connect/internal/transport/http/ez"
)

// NewsModule 农业资讯。刷新是整体替换：生成结果非空才换，
// 失败/为空保留旧列表，接口照样返回 200
type NewsModule struct {
	Store *store.Store
	AI    *ai.Client
}

func (m *NewsModule) Mount(pub, _ *gin.RouterGroup) {
	ez := httpez.New(pub)

	httpez.RegisterAction(ez, m.Store, httpez.Action[struct{}, []domain.NewsItem]{
		Method: http.MethodGet,
		Path:   "/news",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, st *store.Store, _ *struct{}) ([]domain.NewsItem, error) {
			return st.News(), nil
		},
	})

	httpez.RegisterAction(ez, m.Store, httpez.Action[struct{}, []domain.NewsItem]{
		Method: http.MethodPost,
		Path:   "/news/refresh",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, st *store.Store, _ *struct{}) ([]domain.NewsItem, error) {
			items, _ := st.RefreshNews(c.Request.Context(), m.AI)
			return items, nil
		},
	})
}
