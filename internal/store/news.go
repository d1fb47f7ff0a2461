package store

import (
	"context"

	"go.uber.org/zap"

	"agri-connect/internal/domain"
)

// NewsDraft 外部生成的资讯条目，id 由本地分配，不信任来源给的
type NewsDraft struct {
	Title    string `json:"title"`
	Summary  string `json:"summary"`
	Date     string `json:"date"`
	Category string `json:"category"`
}

// NewsSource 资讯后端（内容生成客户端实现）
type NewsSource interface {
	FarmingNews(ctx context.Context) ([]NewsDraft, error)
}

// RefreshNews 拉一批新资讯整体替换旧列表（不合并）。
// 拉取在锁外进行；结果为空或出错时保留旧列表。
func (s *Store) RefreshNews(ctx context.Context, src NewsSource) ([]domain.NewsItem, error) {
	drafts, err := src.FarmingNews(ctx)
	if err != nil {
		s.log.Warn("news refresh failed, keeping previous list", zap.Error(err))
		return s.News(), err
	}
	if len(drafts) == 0 {
		return s.News(), nil
	}

	items := make([]domain.NewsItem, 0, len(drafts))
	for _, d := range drafts {
		items = append(items, domain.NewsItem{
			ID:       s.newID(),
			Title:    d.Title,
			Summary:  d.Summary,
			Date:     d.Date,
			Category: d.Category,
		})
	}
	_ = s.update("refresh_news", func(st *domain.State) error {
		st.News = items
		return nil
	})
	return append([]domain.NewsItem(nil), items...), nil
}

func (s *Store) News() []domain.NewsItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.NewsItem(nil), s.state.News...)
}
