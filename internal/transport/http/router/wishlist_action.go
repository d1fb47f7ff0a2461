package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"agri-connect/internal/store"
	httpez "agri-connect/internal/transport/http/ez"
)

type WishlistModule struct {
	Store *store.Store
}

func (m *WishlistModule) Mount(_, priv *gin.RouterGroup) {
	ez := httpez.New(priv)

	httpez.RegisterAction(ez, m.Store, httpez.Action[struct{}, []string]{
		Method: http.MethodGet,
		Path:   "/wishlist",
		Binder: httpez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, st *store.Store, _ *struct{}) ([]string, error) {
			ids := st.Wishlist()
			if ids == nil {
				ids = []string{}
			}
			return ids, nil
		},
	})

	// 开关语义：在单里就移除，不在就加入
	httpez.RegisterAction(ez, m.Store, httpez.Action[struct{}, gin.H]{
		Method: http.MethodPost,
		Path:   "/wishlist/:id/toggle",
		Binder: httpez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, st *store.Store, _ *struct{}) (gin.H, error) {
			in, err := st.ToggleWishlist(c.Param("id"))
			if err != nil {
				return nil, err
			}
			return gin.H{"productId": c.Param("id"), "inWishlist": in}, nil
		},
	})
}
