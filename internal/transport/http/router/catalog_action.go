package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"agri-connect/internal/domain"
	"agri-connect/internal/store"
	httpez "agri-connect/internal/transport/http/ez"
)

// CatalogModule 商品目录：公开浏览/检索，上架限农户，
// 改/删不校验归属（文档化的原版行为）
type CatalogModule struct {
	Store *store.Store
}

func (m *CatalogModule) Mount(pub, priv *gin.RouterGroup) {
	ezPub := httpez.New(pub)
	ezPriv := httpez.New(priv)

	type searchQ struct {
		Q        string `form:"q"`
		Category string `form:"category"`
	}
	httpez.RegisterAction(ezPub, m.Store, httpez.Action[searchQ, []domain.Product]{
		Method: http.MethodGet,
		Path:   "/products",
		Binder: httpez.BindQuery,
		Handler: func(c *gin.Context, st *store.Store, in *searchQ) ([]domain.Product, error) {
			return st.SearchProducts(in.Q, in.Category), nil
		},
	})

	ezPub.GET("/products/:id", func(c *gin.Context) (any, error) {
		p, ok := m.Store.ProductByID(c.Param("id"))
		if !ok {
			return nil, store.ErrProductNotFound
		}
		return p, nil
	})

	// 农户主页：资料 + 货架
	ezPub.GET("/farmers/:id", func(c *gin.Context) (any, error) {
		f, ok := m.Store.FarmerByID(c.Param("id"))
		if !ok {
			return nil, httpez.NotFound("farmer not found")
		}
		return gin.H{
			"farmer":   f,
			"products": m.Store.ProductsByFarmer(f.ID),
		}, nil
	})

	type productIn struct {
		Name        string  `json:"name"        binding:"required,max=128"`
		Category    string  `json:"category"    binding:"required,max=64"`
		Description string  `json:"description" binding:"max=2048"`
		Price       float64 `json:"price"       binding:"gte=0"`
		Unit        string  `json:"unit"        binding:"required,max=32"`
		Stock       int     `json:"stock"       binding:"gte=0"`
		Image       string  `json:"image"       binding:"max=512"`
	}
	httpez.RegisterAction(ezPriv, m.Store, httpez.Action[productIn, domain.Product]{
		Method: http.MethodPost,
		Path:   "/products",
		Binder: httpez.BindJSON,
		Auth:   true,
		Roles:  []string{"farmer"},
		Handler: func(c *gin.Context, st *store.Store, in *productIn) (domain.Product, error) {
			return st.AddProduct(store.ProductInput{
				Name:        in.Name,
				Category:    in.Category,
				Description: in.Description,
				Price:       in.Price,
				Unit:        in.Unit,
				Stock:       in.Stock,
				Image:       in.Image,
			})
		},
	})

	httpez.RegisterAction(ezPriv, m.Store, httpez.Action[domain.ProductUpdate, domain.Product]{
		Method: http.MethodPut,
		Path:   "/products/:id",
		Binder: httpez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, st *store.Store, in *domain.ProductUpdate) (domain.Product, error) {
			return st.UpdateProduct(c.Param("id"), *in)
		},
	})

	httpez.RegisterAction(ezPriv, m.Store, httpez.Action[struct{}, gin.H]{
		Method: http.MethodDelete,
		Path:   "/products/:id",
		Binder: httpez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, st *store.Store, _ *struct{}) (gin.H, error) {
			if err := st.DeleteProduct(c.Param("id")); err != nil {
				return nil, err
			}
			return gin.H{"deleted": c.Param("id")}, nil
		},
	})
}
