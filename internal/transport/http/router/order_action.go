package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"agri-connect/internal/domain"
	"agri-connect/internal/store"
	httpez "agri-connect/internal/transport/http/ez"
)

// OrderModule 结账与订单查询
type OrderModule struct {
	Store *store.Store
}

func (m *OrderModule) Mount(_, priv *gin.RouterGroup) {
	ez := httpez.New(priv)

	// /checkout：购物车一次性转订单。没有幂等键，连点两次就是两单
	httpez.RegisterAction(ez, m.Store, httpez.Action[struct{}, domain.Order]{
		Method: http.MethodPost,
		Path:   "/checkout",
		Binder: httpez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, st *store.Store, _ *struct{}) (domain.Order, error) {
			return st.Checkout()
		},
	})

	// 订单存储不分用户，读侧按当前会话过滤
	httpez.RegisterAction(ez, m.Store, httpez.Action[struct{}, []domain.Order]{
		Method: http.MethodGet,
		Path:   "/orders",
		Binder: httpez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, st *store.Store, _ *struct{}) ([]domain.Order, error) {
			orders := st.OrdersForCurrentUser()
			if orders == nil {
				orders = []domain.Order{}
			}
			return orders, nil
		},
	})
}
