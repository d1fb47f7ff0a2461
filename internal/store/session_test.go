package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agri-connect/internal/domain"
)

func TestLoginRosterHit(t *testing.T) {
	s := newTestStore(t)

	u, isNew := s.Login("farmer@test.com", domain.RoleFarmer)
	assert.False(t, isNew)
	assert.Equal(t, "f1", u.ID)
	assert.Equal(t, "John Farmer", u.Name)

	cur, ok := s.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, u.ID, cur.ID)
}

func TestLoginSynthesizesOnMiss(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		role     domain.Role
		wantName string
	}{
		{"unknown email", "alice@example.com", domain.RoleCustomer, "alice"},
		{"roster email wrong role", "farmer@test.com", domain.RoleCustomer, "farmer"},
		{"no at sign", "bob", domain.RoleFarmer, "bob"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			u, isNew := s.Login(tt.email, tt.role)
			assert.True(t, isNew, "login must never fail, it synthesizes instead")
			assert.NotEmpty(t, u.ID)
			assert.Equal(t, tt.wantName, u.Name)
			assert.Equal(t, tt.role, u.Role)
		})
	}
}

func TestRegisterAdoptsIdentity(t *testing.T) {
	s := newTestStore(t)

	u := s.Register("Carol Grower", "carol@farm.example", domain.RoleFarmer)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, domain.RoleFarmer, u.Role)

	cur, ok := s.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "Carol Grower", cur.Name)

	// 不查重：同邮箱再注册一样成功，拿到新 id
	u2 := s.Register("Carol Again", "carol@farm.example", domain.RoleFarmer)
	assert.NotEqual(t, u.ID, u2.ID)
}

func TestLogoutClearsSessionScopedState(t *testing.T) {
	s := newTestStore(t)
	loginCustomer(t, s)

	_, err := s.AddToCart("p1", 1)
	require.NoError(t, err)
	_, err = s.Checkout()
	require.NoError(t, err)
	_, err = s.AddToCart("p2", 1)
	require.NoError(t, err)
	_, err = s.ToggleWishlist("p3")
	require.NoError(t, err)

	s.Logout()

	_, ok := s.CurrentUser()
	assert.False(t, ok)
	assert.Empty(t, s.Cart())
	assert.Empty(t, s.Wishlist())

	// 订单和目录留着
	snap := s.Snapshot()
	assert.Len(t, snap.Orders, 1)
	assert.Len(t, snap.Products, 4)
}

func TestUpdateProfile(t *testing.T) {
	s := newTestStore(t)

	_, err := s.UpdateProfile(domain.ProfileUpdate{})
	assert.ErrorIs(t, err, ErrNoSession)

	loginFarmer(t, s)
	bio := "Family farm since 1982"
	loc := "Green Valley"
	certs := []string{"Organic", "Fair Trade"}
	u, err := s.UpdateProfile(domain.ProfileUpdate{Bio: &bio, Location: &loc, Certifications: &certs})
	require.NoError(t, err)
	assert.Equal(t, bio, u.Bio)
	assert.Equal(t, loc, u.Location)
	assert.Equal(t, certs, u.Certifications)

	// 部分更新：没给的字段不动
	phone := "555-0101"
	u, err = s.UpdateProfile(domain.ProfileUpdate{PhoneNumber: &phone})
	require.NoError(t, err)
	assert.Equal(t, bio, u.Bio)
	assert.Equal(t, phone, u.PhoneNumber)
}

func TestFarmerByID(t *testing.T) {
	s := newTestStore(t)

	f, ok := s.FarmerByID("f1")
	require.True(t, ok)
	assert.Equal(t, "John Farmer", f.Name)

	// 名册里的消费者不算农户
	_, ok = s.FarmerByID("c1")
	assert.False(t, ok)

	// 当前会话的自注册农户能查到自己
	u := s.Register("New Farmer", "new@farm.example", domain.RoleFarmer)
	got, ok := s.FarmerByID(u.ID)
	require.True(t, ok)
	assert.Equal(t, u.ID, got.ID)

	_, ok = s.FarmerByID("ghost")
	assert.False(t, ok)
}
