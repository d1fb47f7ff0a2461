package store

import (
	"strings"

	"agri-connect/internal/domain"
)

// ProductInput 上架商品时的表单字段；farmerId/farmerName/sold 由 store 盖章
type ProductInput struct {
	Name        string
	Category    string
	Description string
	Price       float64
	Unit        string
	Stock       int
	Image       string
}

// AddProduct 仅限农户。新品 sold 从 0 计
func (s *Store) AddProduct(in ProductInput) (domain.Product, error) {
	var out domain.Product
	err := s.update("add_product", func(st *domain.State) error {
		if st.CurrentUser == nil {
			return ErrNoSession
		}
		if st.CurrentUser.Role != domain.RoleFarmer {
			return ErrNotFarmer
		}
		p := domain.Product{
			ID:          s.newID(),
			FarmerID:    st.CurrentUser.ID,
			FarmerName:  st.CurrentUser.Name,
			Name:        in.Name,
			Category:    in.Category,
			Description: in.Description,
			Price:       in.Price,
			Unit:        in.Unit,
			Stock:       in.Stock,
			Sold:        0,
			Image:       in.Image,
		}
		st.Products = append(st.Products, p)
		out = p
		return nil
	})
	return out, err
}

// UpdateProduct 不校验归属：任何登录用户都能改任何商品。
// 原版如此，按文档化行为保留（见 DESIGN.md）。
func (s *Store) UpdateProduct(id string, upd domain.ProductUpdate) (domain.Product, error) {
	var out domain.Product
	err := s.update("update_product", func(st *domain.State) error {
		for i := range st.Products {
			if st.Products[i].ID == id {
				upd.Apply(&st.Products[i])
				out = st.Products[i]
				return nil
			}
		}
		return ErrProductNotFound
	})
	return out, err
}

func (s *Store) DeleteProduct(id string) error {
	return s.update("delete_product", func(st *domain.State) error {
		for i := range st.Products {
			if st.Products[i].ID == id {
				st.Products = append(st.Products[:i], st.Products[i+1:]...)
				return nil
			}
		}
		return ErrProductNotFound
	})
}

func (s *Store) ProductByID(id string) (domain.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.state.Products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

// SearchProducts 名称/描述大小写不敏感的子串匹配，与可选的类目精确过滤
// 取交集；结果保持目录插入顺序，不做相关性排序。两个条件都为空返回全量。
func (s *Store) SearchProducts(query, category string) []domain.Product {
	q := strings.ToLower(strings.TrimSpace(query))

	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Product, 0, len(s.state.Products))
	for _, p := range s.state.Products {
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) {
			continue
		}
		if category != "" && p.Category != category {
			continue
		}
		out = append(out, p)
	}
	return out
}

// ProductsByFarmer 农户的货架（面板页用）
func (s *Store) ProductsByFarmer(farmerID string) []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Product
	for _, p := range s.state.Products {
		if p.FarmerID == farmerID {
			out = append(out, p)
		}
	}
	return out
}
