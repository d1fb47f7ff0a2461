package store

import "agri-connect/internal/domain"

// AddToCart 同一商品只保留一行：已有则累加数量，否则以当前目录里的
// 商品快照新开一行。之后目录改价不回写已有行。
func (s *Store) AddToCart(productID string, quantity int) ([]domain.CartItem, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	var out []domain.CartItem
	err := s.update("add_to_cart", func(st *domain.State) error {
		var prod *domain.Product
		for i := range st.Products {
			if st.Products[i].ID == productID {
				prod = &st.Products[i]
				break
			}
		}
		if prod == nil {
			return ErrProductNotFound
		}
		merged := false
		for i := range st.Cart {
			if st.Cart[i].ID == productID {
				st.Cart[i].Quantity += quantity
				merged = true
				break
			}
		}
		if !merged {
			st.Cart = append(st.Cart, domain.CartItem{Product: *prod, Quantity: quantity})
		}
		out = append([]domain.CartItem(nil), st.Cart...)
		return nil
	})
	return out, err
}

// RemoveFromCart 不存在时不报错，保持原版的宽松语义
func (s *Store) RemoveFromCart(productID string) []domain.CartItem {
	var out []domain.CartItem
	_ = s.update("remove_from_cart", func(st *domain.State) error {
		for i := range st.Cart {
			if st.Cart[i].ID == productID {
				st.Cart = append(st.Cart[:i], st.Cart[i+1:]...)
				break
			}
		}
		out = append([]domain.CartItem(nil), st.Cart...)
		return nil
	})
	return out
}

func (s *Store) ClearCart() {
	_ = s.update("clear_cart", func(st *domain.State) error {
		st.Cart = nil
		return nil
	})
}

func (s *Store) Cart() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.CartItem(nil), s.state.Cart...)
}
