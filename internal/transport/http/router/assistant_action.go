package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"agri-connect/internal/ai"
	"agri-connect/internal/domain"
	"agri-connect/internal/store"
	httpez "agri-connect/internal/transport/http/ez"
)

// AssistantModule 生成式辅助内容：文案、菜谱、按菜谱配货、农事顾问。
// 这些结果只回给调用方，不进聚合（资讯除外，在 NewsModule）。
type AssistantModule struct {
	Store *store.Store
	AI    *ai.Client
}

func (m *AssistantModule) Mount(_, priv *gin.RouterGroup) {
	ez := httpez.New(priv)

	type describeIn struct {
		Name        string `json:"name"        binding:"required,max=128"`
		Category    string `json:"category"    binding:"required,max=64"`
		KeyFeatures string `json:"keyFeatures" binding:"max=512"`
	}
	// 上架页的"AI 生成文案"按钮
	httpez.RegisterAction(ez, m.Store, httpez.Action[describeIn, gin.H]{
		Method: http.MethodPost,
		Path:   "/assistant/describe",
		Binder: httpez.BindJSON,
		Auth:   true,
		Roles:  []string{"farmer"},
		Handler: func(c *gin.Context, st *store.Store, in *describeIn) (gin.H, error) {
			text := m.AI.ProductDescription(c.Request.Context(), in.Name, in.Category, in.KeyFeatures)
			return gin.H{"description": text}, nil
		},
	})

	type recipesIn struct {
		Ingredients []string `json:"ingredients" binding:"required,min=1"`
	}
	httpez.RegisterAction(ez, m.Store, httpez.Action[recipesIn, []ai.Recipe]{
		Method: http.MethodPost,
		Path:   "/assistant/recipes",
		Binder: httpez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, st *store.Store, in *recipesIn) ([]ai.Recipe, error) {
			recipes := m.AI.RecipesFromIngredients(c.Request.Context(), in.Ingredients)
			if recipes == nil {
				recipes = []ai.Recipe{}
			}
			return recipes, nil
		},
	})

	type recommendIn struct {
		Meal string `json:"meal" binding:"required,max=256"`
	}
	// 想做某道菜 → 从在售目录里挑出合适的食材商品
	httpez.RegisterAction(ez, m.Store, httpez.Action[recommendIn, gin.H]{
		Method: http.MethodPost,
		Path:   "/assistant/recommend",
		Binder: httpez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, st *store.Store, in *recommendIn) (gin.H, error) {
			catalog := st.SearchProducts("", "")
			inventory := make([]ai.SimpleProduct, 0, len(catalog))
			for _, p := range catalog {
				inventory = append(inventory, ai.SimpleProduct{
					ID: p.ID, Name: p.Name, Category: p.Category, Description: p.Description,
				})
			}
			ids := m.AI.RecommendProducts(c.Request.Context(), in.Meal, inventory)

			products := make([]domain.Product, 0, len(ids))
			for _, id := range ids {
				if p, ok := st.ProductByID(id); ok {
					products = append(products, p)
				}
			}
			return gin.H{"productIds": ids, "products": products}, nil
		},
	})

	type adviceIn struct {
		Location string `json:"location" binding:"required,max=128"`
		Details  string `json:"details"  binding:"max=1024"`
		Season   string `json:"season"   binding:"required,max=64"`
	}
	// 顾问报告按 token 里的角色分流：农户出农艺策略，消费者出时令食养指南
	httpez.RegisterAction(ez, m.Store, httpez.Action[adviceIn, gin.H]{
		Method: http.MethodPost,
		Path:   "/assistant/advice",
		Binder: httpez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, st *store.Store, in *adviceIn) (gin.H, error) {
			report := m.AI.AdvisorReport(c.Request.Context(), c.GetString("role"), ai.AdvisorInput{
				Location: in.Location,
				Details:  in.Details,
				Season:   in.Season,
			})
			return gin.H{"report": report}, nil
		},
	})
}
