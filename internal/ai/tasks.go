package ai

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"go.uber.org/zap"

	"agri-connect/internal/core/cache"
	"agri-connect/internal/store"
)

// Recipe 菜谱建议（只进组件态，不进聚合）
type Recipe struct {
	Title        string   `json:"title"`
	Time         string   `json:"time"`
	Difficulty   string   `json:"difficulty"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
}

// SimpleProduct 喂给模型的精简库存行，省 token
type SimpleProduct struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// AdvisorInput 顾问报告的上下文
type AdvisorInput struct {
	Location string
	Details  string
	Season   string
}

// ProductDescription 生成两句以内的商品营销文案。
// 没配 key 时拼一句兜底文案；调用失败时给固定的失败提示，不向外抛错。
func (c *Client) ProductDescription(ctx context.Context, name, category, keyFeatures string) string {
	if !c.Configured() {
		return fmt.Sprintf("A high-quality %s in the %s category. %s", name, category, keyFeatures)
	}
	prompt := fmt.Sprintf(`Write a short, appealing marketing description (max 2 sentences) for a farm product.
Product Name: %s
Category: %s
Key Features: %s

Tone: Fresh, organic, appetizing.`, name, category, keyFeatures)

	text, err := c.generate(ctx, prompt)
	if err != nil {
		c.log.Warn("description generation failed", zap.Error(err))
		return "Could not generate description at this time."
	}
	return strings.TrimSpace(text)
}

// RecipesFromIngredients 按食材出 3 份菜谱。出错返回空切片。
func (c *Client) RecipesFromIngredients(ctx context.Context, ingredients []string) []Recipe {
	if len(ingredients) == 0 {
		return nil
	}
	if !c.Configured() {
		return fallbackRecipes(ingredients)
	}
	prompt := fmt.Sprintf(
		`Suggest 3 creative recipes using some or all of these ingredients: %s. Assume standard pantry items are available. Return a JSON array of objects with keys title, time, difficulty, ingredients, instructions.`,
		strings.Join(ingredients, ", "))

	key := "ai:recipes:" + hashKey(strings.Join(ingredients, ","))
	out, err := cachedJSON[[]Recipe](ctx, c, key, 10*time.Minute, prompt)
	if err != nil {
		c.log.Warn("recipe generation failed", zap.Error(err))
		return nil
	}
	return out
}

// FarmingNews 实现 store.NewsSource。没配 key 时返回当天日期的固定四条。
func (c *Client) FarmingNews(ctx context.Context) ([]store.NewsDraft, error) {
	if !c.Configured() {
		return fallbackNews(time.Now()), nil
	}
	prompt := `Generate 4 realistic, interesting news articles about modern agriculture, farming technology, or sustainable practices.
Use today's date or recent dates.
Return a JSON array of objects with keys title, summary, date (YYYY-MM-DD), category.`

	out, err := cachedJSON[[]store.NewsDraft](ctx, c, "ai:news", 5*time.Minute, prompt)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RecommendProducts 根据想做的菜从库存里挑合适的商品 id。
// 没配 key 或失败都给空结果。
func (c *Client) RecommendProducts(ctx context.Context, mealQuery string, inventory []SimpleProduct) []string {
	if !c.Configured() {
		c.log.Warn("api key missing, returning empty recommendation")
		return nil
	}
	inv := new(strings.Builder)
	for _, p := range inventory {
		fmt.Fprintf(inv, `{"id":%q,"name":%q,"category":%q,"description":%q},`, p.ID, p.Name, p.Category, p.Description)
	}
	prompt := fmt.Sprintf(`You are an intelligent shopping assistant for a farm-to-table marketplace.

User Query: "I want to cook: %s"

Available Inventory (JSON):
[%s]

Task: Identify which products from the inventory are suitable ingredients for the user's meal.
Return a JSON object with a property "productIds" which is an array of strings (the IDs of the matching products).
Only select products that are strictly relevant.`, mealQuery, strings.TrimSuffix(inv.String(), ","))

	out, err := generateJSON[struct {
		ProductIDs []string `json:"productIds"`
	}](ctx, c, prompt)
	if err != nil {
		c.log.Warn("shopping assistant failed", zap.Error(err))
		return nil
	}
	return out.ProductIDs
}

// AdvisorReport 按角色出 Markdown 报告：农户给农艺策略，消费者给时令食养指南
func (c *Client) AdvisorReport(ctx context.Context, role string, in AdvisorInput) string {
	if !c.Configured() {
		return "API Key missing. Cannot generate expert advice."
	}

	var prompt string
	if role == "farmer" {
		prompt = fmt.Sprintf(`Act as an expert Agronomist and Agricultural Strategist.

Context:
- Location: %s
- Current Season/Month: %s
- Farm Details/Soil Type: %s

Task: Provide a detailed strategic plan for this farmer.
1. Recommend specific crops to plant NOW based on the location and soil.
2. Analyze potential pests or diseases to watch out for in this region/season.
3. Suggest one innovative sustainable practice relevant to these details.
4. Provide a brief market outlook for the recommended crops.

Format the response in clean Markdown with headers.`, in.Location, in.Season, in.Details)
	} else {
		prompt = fmt.Sprintf(`Act as a Senior Nutritionist and Farm-to-Table Chef.

Context:
- Location: %s
- Current Season/Month: %s
- User Preferences: %s

Task: Provide a comprehensive seasonal eating guide.
1. List the "Superfoods of the Season" available locally in this region right now.
2. Explain the specific nutritional benefits of these items.
3. Provide tips on how to select the freshest version of these produce items.
4. Suggest a simple preservation technique (canning, freezing, drying) for one of these items.

Format the response in clean Markdown with headers.`, in.Location, in.Season, in.Details)
	}

	key := fmt.Sprintf("ai:advice:%s:%s", role, hashKey(in.Location+"|"+in.Season+"|"+in.Details))
	out, err := cachedText(ctx, c, key, 10*time.Minute, prompt)
	if err != nil {
		c.log.Warn("advisor generation failed", zap.Error(err))
		return "An error occurred while generating advice. Please try again later."
	}
	return out
}

// cachedJSON 有缓存就走 GetOrLoadJSON（redis + single-flight 合并并发重复请求），
// 没缓存直接打一次 API
func cachedJSON[T any](ctx context.Context, c *Client, key string, ttl time.Duration, prompt string) (T, error) {
	if c.cache == nil {
		return generateJSON[T](ctx, c, prompt)
	}
	out, err := cache.GetOrLoadJSON[T](c.cache, ctx, key, ttl, func(ctx context.Context) (*T, error) {
		v, err := generateJSON[T](ctx, c, prompt)
		if err != nil {
			return nil, err
		}
		return &v, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	if out == nil {
		var zero T
		return zero, nil
	}
	return *out, nil
}

func cachedText(ctx context.Context, c *Client, key string, ttl time.Duration, prompt string) (string, error) {
	if c.cache == nil {
		return c.generate(ctx, prompt)
	}
	b, err := c.cache.GetOrLoad(ctx, key, ttl, func(ctx context.Context) ([]byte, error) {
		text, err := c.generate(ctx, prompt)
		if err != nil {
			return nil, err
		}
		return []byte(text), nil
	})
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func hashKey(s string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(strings.ToLower(s)))
	return fmt.Sprintf("%x", h.Sum64())
}
