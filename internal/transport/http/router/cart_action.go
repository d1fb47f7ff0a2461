package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"agri-connect/internal/domain"
	"agri-connect/internal/store"
	httpez "agri-connect/internal/transport/http/ez"
)

// CartModule 购物车整条链路都要求登录
type CartModule struct {
	Store *store.Store
}

func (m *CartModule) Mount(_, priv *gin.RouterGroup) {
	ez := httpez.New(priv)

	httpez.RegisterAction(ez, m.Store, httpez.Action[struct{}, []domain.CartItem]{
		Method: http.MethodGet,
		Path:   "/cart",
		Binder: httpez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, st *store.Store, _ *struct{}) ([]domain.CartItem, error) {
			return st.Cart(), nil
		},
	})

	type addIn struct {
		ProductID string `json:"productId" binding:"required"`
		Quantity  int    `json:"quantity"  binding:"required,gt=0"`
	}
	httpez.RegisterAction(ez, m.Store, httpez.Action[addIn, []domain.CartItem]{
		Method: http.MethodPost,
		Path:   "/cart/items",
		Binder: httpez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, st *store.Store, in *addIn) ([]domain.CartItem, error) {
			return st.AddToCart(in.ProductID, in.Quantity)
		},
	})

	httpez.RegisterAction(ez, m.Store, httpez.Action[struct{}, []domain.CartItem]{
		Method: http.MethodDelete,
		Path:   "/cart/items/:id",
		Binder: httpez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, st *store.Store, _ *struct{}) ([]domain.CartItem, error) {
			return st.RemoveFromCart(c.Param("id")), nil
		},
	})

	httpez.RegisterAction(ez, m.Store, httpez.Action[struct{}, gin.H]{
		Method: http.MethodDelete,
		Path:   "/cart",
		Binder: httpez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, st *store.Store, _ *struct{}) (gin.H, error) {
			st.ClearCart()
			return gin.H{}, nil
		},
	})
}
