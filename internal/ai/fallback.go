package ai

import (
	"time"

	"agri-connect/internal/store"
)

// 没配 key 时的兜底内容，与线上内容同构，保证页面总有东西可渲染

func fallbackRecipes(ingredients []string) []Recipe {
	base := append([]string(nil), ingredients...)
	return []Recipe{
		{
			Title:       "Farm Fresh Salad",
			Time:        "15 mins",
			Difficulty:  "Easy",
			Ingredients: append(append([]string(nil), base...), "Olive Oil", "Lemon"),
			Instructions: []string{
				"Wash all vegetables.",
				"Chop into bite-sized pieces.",
				"Toss with olive oil and lemon.",
				"Season with salt and pepper.",
			},
		},
		{
			Title:       "Roasted Vegetable Medley",
			Time:        "45 mins",
			Difficulty:  "Medium",
			Ingredients: append(append([]string(nil), base...), "Herbs", "Garlic"),
			Instructions: []string{
				"Preheat oven to 400°F (200°C).",
				"Cut vegetables evenly.",
				"Toss with oil and herbs.",
				"Roast for 30-40 minutes until tender.",
			},
		},
	}
}

func fallbackNews(now time.Time) []store.NewsDraft {
	today := now.Format("2006-01-02")
	return []store.NewsDraft{
		{
			Title:    "AI Forecasts Record Wheat Yields",
			Summary:  "New predictive models suggest a bumper crop this season due to favorable weather patterns.",
			Date:     today,
			Category: "Technology",
		},
		{
			Title:    "Sustainable Irrigation Breakthrough",
			Summary:  "New drip systems reduce water usage by 40% while maintaining yield.",
			Date:     today,
			Category: "Sustainability",
		},
		{
			Title:    "Local Markets See Surge in Demand",
			Summary:  "Consumers are increasingly turning to local farmers for fresh produce.",
			Date:     today,
			Category: "Market Trends",
		},
		{
			Title:    "Vertical Farming Expansion",
			Summary:  "Urban centers are adopting vertical farming to reduce transport costs.",
			Date:     today,
			Category: "Innovation",
		},
	}
}
