package store

import (
	"strings"

	"agri-connect/internal/domain"
)

// Login 名册上 (email, role) 精确匹配则采用既有身份，
// 否则用邮箱 @ 前缀当显示名就地造一个新身份。永远成功。
func (s *Store) Login(email string, role domain.Role) (domain.User, bool) {
	email = strings.TrimSpace(email)

	var u domain.User
	isNew := true
	for _, r := range Roster {
		if r.Email == email && r.Role == role {
			u = r.Clone()
			isNew = false
			break
		}
	}
	if isNew {
		name := email
		if at := strings.IndexByte(email, '@'); at > 0 {
			name = email[:at]
		}
		u = domain.User{ID: s.newID(), Name: name, Email: email, Role: role}
	}

	_ = s.update("login", func(st *domain.State) error {
		adopted := u.Clone()
		st.CurrentUser = &adopted
		return nil
	})
	return u, isNew
}

// Register 不查重，直接创建并采用新身份
func (s *Store) Register(name, email string, role domain.Role) domain.User {
	u := domain.User{
		ID:    s.newID(),
		Name:  strings.TrimSpace(name),
		Email: strings.TrimSpace(email),
		Role:  role,
	}
	_ = s.update("register", func(st *domain.State) error {
		adopted := u.Clone()
		st.CurrentUser = &adopted
		return nil
	})
	return u
}

// Logout 一次原子更新里清掉会话、购物车、心愿单；订单和目录保留
func (s *Store) Logout() {
	_ = s.update("logout", func(st *domain.State) error {
		st.CurrentUser = nil
		st.Cart = nil
		st.Wishlist = nil
		return nil
	})
}

func (s *Store) UpdateProfile(p domain.ProfileUpdate) (domain.User, error) {
	var out domain.User
	err := s.update("update_profile", func(st *domain.State) error {
		if st.CurrentUser == nil {
			return ErrNoSession
		}
		p.Apply(st.CurrentUser)
		out = st.CurrentUser.Clone()
		return nil
	})
	return out, err
}

// CurrentUser 当前会话用户；第二个返回值表示是否已登录
func (s *Store) CurrentUser() (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.CurrentUser == nil {
		return domain.User{}, false
	}
	return s.state.CurrentUser.Clone(), true
}

// FarmerByID 名册优先，其次当前会话用户（自证身份）
func (s *Store) FarmerByID(id string) (domain.User, bool) {
	for _, r := range Roster {
		if r.ID == id && r.Role == domain.RoleFarmer {
			return r.Clone(), true
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if u := s.state.CurrentUser; u != nil && u.ID == id && u.Role == domain.RoleFarmer {
		return u.Clone(), true
	}
	return domain.User{}, false
}
