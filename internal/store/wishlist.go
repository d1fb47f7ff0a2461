package store

import "agri-connect/internal/domain"

// ToggleWishlist 在心愿单里就移除，不在就加入。返回切换后是否在单中。
// 只要求有会话，不限角色（是否展示心愿单入口由前端按角色把关）。
func (s *Store) ToggleWishlist(productID string) (bool, error) {
	var in bool
	err := s.update("toggle_wishlist", func(st *domain.State) error {
		if st.CurrentUser == nil {
			return ErrNoSession
		}
		for i, id := range st.Wishlist {
			if id == productID {
				st.Wishlist = append(st.Wishlist[:i], st.Wishlist[i+1:]...)
				in = false
				return nil
			}
		}
		st.Wishlist = append(st.Wishlist, productID)
		in = true
		return nil
	})
	return in, err
}

func (s *Store) Wishlist() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.state.Wishlist...)
}
