package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agri-connect/internal/domain"
)

func TestAddProductRoleGated(t *testing.T) {
	s := newTestStore(t)
	in := ProductInput{Name: "Carrots", Category: "Vegetables", Price: 1.80, Unit: "kg", Stock: 40}

	// 匿名
	_, err := s.AddProduct(in)
	assert.ErrorIs(t, err, ErrNoSession)
	assert.Len(t, s.SearchProducts("", ""), 4)

	// 消费者
	loginCustomer(t, s)
	_, err = s.AddProduct(in)
	assert.ErrorIs(t, err, ErrNotFarmer)
	assert.Len(t, s.SearchProducts("", ""), 4, "catalog must stay unchanged")
}

func TestAddProductStampsOwnership(t *testing.T) {
	s := newTestStore(t)
	u := loginFarmer(t, s)

	p, err := s.AddProduct(ProductInput{
		Name: "Carrots", Category: "Vegetables", Description: "Crunchy",
		Price: 1.80, Unit: "kg", Stock: 40, Image: "img",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, u.ID, p.FarmerID)
	assert.Equal(t, u.Name, p.FarmerName)
	assert.Zero(t, p.Sold)

	// 追加到目录尾部（插入顺序）
	all := s.SearchProducts("", "")
	require.Len(t, all, 5)
	assert.Equal(t, p.ID, all[4].ID)
}

func TestUpdateProduct(t *testing.T) {
	s := newTestStore(t)
	loginFarmer(t, s)

	price := 4.00
	desc := "Even fresher"
	p, err := s.UpdateProduct("p1", domain.ProductUpdate{Price: &price, Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, 4.00, p.Price)
	assert.Equal(t, desc, p.Description)
	assert.Equal(t, "Organic Tomatoes", p.Name, "unset fields keep their value")

	_, err = s.UpdateProduct("nope", domain.ProductUpdate{Price: &price})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

// 改/删不校验归属：别的农户的商品一样能动（原版行为，文档化保留）
func TestUpdateProductNoOwnershipCheck(t *testing.T) {
	s := newTestStore(t)
	loginFarmer(t, s) // f1

	price := 0.99
	p, err := s.UpdateProduct("p3", domain.ProductUpdate{Price: &price}) // p3 属于 f2
	require.NoError(t, err)
	assert.Equal(t, 0.99, p.Price)

	require.NoError(t, s.DeleteProduct("p4")) // p4 也属于 f2
}

func TestDeleteProduct(t *testing.T) {
	s := newTestStore(t)
	loginFarmer(t, s)

	require.NoError(t, s.DeleteProduct("p2"))
	_, ok := s.ProductByID("p2")
	assert.False(t, ok)
	assert.Len(t, s.SearchProducts("", ""), 3)

	assert.ErrorIs(t, s.DeleteProduct("p2"), ErrProductNotFound)
}

func TestSearchProducts(t *testing.T) {
	s := newTestStore(t)

	tests := []struct {
		name     string
		q        string
		category string
		wantIDs  []string
	}{
		{"empty filters return all in insertion order", "", "", []string{"p1", "p2", "p3", "p4"}},
		{"name substring, case-insensitive", "toma", "", []string{"p1"}},
		{"description substring", "apiary", "", []string{"p4"}},
		{"query uppercase", "SPINACH", "", []string{"p2"}},
		{"category exact", "", "Vegetables", []string{"p1", "p2"}},
		{"query AND category", "fresh", "Vegetables", []string{"p1", "p2"}},
		{"query AND category excludes other categories", "sweet", "Vegetables", nil},
		{"category is exact, not substring", "", "Veg", nil},
		{"no match", "durian", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.SearchProducts(tt.q, tt.category)
			var ids []string
			for _, p := range got {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestProductsByFarmer(t *testing.T) {
	s := newTestStore(t)
	got := s.ProductsByFarmer("f2")
	require.Len(t, got, 2)
	assert.Equal(t, "p3", got[0].ID)
	assert.Equal(t, "p4", got[1].ID)
	assert.Empty(t, s.ProductsByFarmer("ghost"))
}
