package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGemini 伪造 generateContent 端点，每次用固定文本应答
func fakeGemini(t *testing.T, reply string) (*httptest.Server, *int) {
	t.Helper()
	calls := new(int)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, ":generateContent")
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		var req genRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotEmpty(t, req.Contents)
		require.NotEmpty(t, req.Contents[0].Parts)

		resp := genResponse{}
		resp.Candidates = []struct {
			Content genContent `json:"content"`
		}{{Content: genContent{Parts: []genPart{{Text: reply}}}}}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv, calls
}

func testClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	return New(Options{APIKey: "test-key", BaseURL: srv.URL, Model: "gemini-1.5-flash"})
}

func TestProductDescription(t *testing.T) {
	srv, _ := fakeGemini(t, "  Sun-ripened and bursting with flavor.\n")
	c := testClient(t, srv)

	got := c.ProductDescription(context.Background(), "Tomatoes", "Vegetables", "organic")
	assert.Equal(t, "Sun-ripened and bursting with flavor.", got)
}

func TestProductDescriptionFallbacks(t *testing.T) {
	// 没配 key：拼兜底文案
	c := New(Options{})
	got := c.ProductDescription(context.Background(), "Tomatoes", "Vegetables", "organic")
	assert.Equal(t, "A high-quality Tomatoes in the Vegetables category. organic", got)

	// 上游挂了：固定失败提示，不抛错
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"code":500,"message":"boom"}}`))
	}))
	defer srv.Close()
	c = testClient(t, srv)
	got = c.ProductDescription(context.Background(), "Tomatoes", "Vegetables", "organic")
	assert.Equal(t, "Could not generate description at this time.", got)
}

func TestFarmingNewsParsesFencedJSON(t *testing.T) {
	reply := "```json\n[{\"title\":\"T1\",\"summary\":\"S1\",\"date\":\"2026-09-01\",\"category\":\"Tech\"}]\n```"
	srv, _ := fakeGemini(t, reply)
	c := testClient(t, srv)

	drafts, err := c.FarmingNews(context.Background())
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, "T1", drafts[0].Title)
	assert.Equal(t, "Tech", drafts[0].Category)
}

func TestFarmingNewsOfflineFallback(t *testing.T) {
	c := New(Options{}) // 没 key
	drafts, err := c.FarmingNews(context.Background())
	require.NoError(t, err)
	require.Len(t, drafts, 4)
	for _, d := range drafts {
		assert.NotEmpty(t, d.Title)
		assert.NotEmpty(t, d.Date)
	}
}

func TestFarmingNewsBadJSONIsAnError(t *testing.T) {
	srv, _ := fakeGemini(t, "sorry, I can only reply in prose")
	c := testClient(t, srv)

	_, err := c.FarmingNews(context.Background())
	assert.Error(t, err)
}

func TestRecipesFromIngredients(t *testing.T) {
	reply := `[{"title":"Tomato Soup","time":"30 mins","difficulty":"Easy","ingredients":["Tomatoes"],"instructions":["Simmer."]}]`
	srv, _ := fakeGemini(t, reply)
	c := testClient(t, srv)

	got := c.RecipesFromIngredients(context.Background(), []string{"Tomatoes"})
	require.Len(t, got, 1)
	assert.Equal(t, "Tomato Soup", got[0].Title)
}

func TestRecipesEdgeCases(t *testing.T) {
	srv, calls := fakeGemini(t, "[]")
	c := testClient(t, srv)

	// 没食材直接空，不打 API
	assert.Nil(t, c.RecipesFromIngredients(context.Background(), nil))
	assert.Zero(t, *calls)

	// 没 key 走兜底的两份菜谱
	offline := New(Options{})
	got := offline.RecipesFromIngredients(context.Background(), []string{"Spinach", "Apples"})
	require.Len(t, got, 2)
	assert.Equal(t, "Farm Fresh Salad", got[0].Title)
	assert.Contains(t, got[0].Ingredients, "Spinach")
	assert.Contains(t, got[1].Ingredients, "Garlic")
}

func TestRecommendProducts(t *testing.T) {
	srv, _ := fakeGemini(t, `{"productIds":["p1","p2"]}`)
	c := testClient(t, srv)

	ids := c.RecommendProducts(context.Background(), "tomato salad", []SimpleProduct{
		{ID: "p1", Name: "Tomatoes", Category: "Vegetables", Description: "fresh"},
		{ID: "p2", Name: "Spinach", Category: "Vegetables", Description: "crisp"},
	})
	assert.Equal(t, []string{"p1", "p2"}, ids)

	// 没 key：空推荐
	assert.Nil(t, New(Options{}).RecommendProducts(context.Background(), "soup", nil))
}

func TestAdvisorReport(t *testing.T) {
	srv, _ := fakeGemini(t, "# Crop Plan\nPlant winter wheat.")
	c := testClient(t, srv)

	got := c.AdvisorReport(context.Background(), "farmer", AdvisorInput{Location: "Valley", Season: "Autumn", Details: "loam"})
	assert.True(t, strings.HasPrefix(got, "# Crop Plan"))

	// 没 key：固定提示
	offline := New(Options{})
	assert.Equal(t,
		"API Key missing. Cannot generate expert advice.",
		offline.AdvisorReport(context.Background(), "customer", AdvisorInput{Location: "Valley", Season: "Autumn"}))
}

func TestStripFences(t *testing.T) {
	tests := []struct{ in, want string }{
		{"plain", "plain"},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n[1,2]\n```", "[1,2]"},
		{"  ```json\n[]\n```  ", "[]"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, stripFences(tt.in), tt.in)
	}
}
