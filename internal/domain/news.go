package domain

type NewsItem struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Summary  string `json:"summary"`
	Date     string `json:"date"` // YYYY-MM-DD
	Category string `json:"category,omitempty"`
}
