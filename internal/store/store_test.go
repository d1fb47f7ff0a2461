package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"agri-connect/internal/domain"
	"agri-connect/internal/storage"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(Seed(), nil, zap.NewNop())
}

func loginCustomer(t *testing.T, s *Store) domain.User {
	t.Helper()
	u, isNew := s.Login("customer@test.com", domain.RoleCustomer)
	require.False(t, isNew)
	require.Equal(t, "c1", u.ID)
	return u
}

func loginFarmer(t *testing.T, s *Store) domain.User {
	t.Helper()
	u, isNew := s.Login("farmer@test.com", domain.RoleFarmer)
	require.False(t, isNew)
	require.Equal(t, "f1", u.ID)
	return u
}

func TestAddToCartMergesLines(t *testing.T) {
	s := newTestStore(t)
	loginCustomer(t, s)

	cart, err := s.AddToCart("p1", 2)
	require.NoError(t, err)
	require.Len(t, cart, 1)

	cart, err = s.AddToCart("p1", 3)
	require.NoError(t, err)
	require.Len(t, cart, 1, "re-adding the same product must merge, not duplicate")
	assert.Equal(t, 5, cart[0].Quantity)
	assert.Equal(t, "p1", cart[0].ID)
}

func TestAddToCartValidation(t *testing.T) {
	s := newTestStore(t)

	_, err := s.AddToCart("p1", 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = s.AddToCart("p1", -2)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = s.AddToCart("nope", 1)
	assert.ErrorIs(t, err, ErrProductNotFound)

	assert.Empty(t, s.Cart())
}

func TestCartSnapshotFrozenAtAddTime(t *testing.T) {
	s := newTestStore(t)
	loginFarmer(t, s)
	_, err := s.AddToCart("p1", 1)
	require.NoError(t, err)

	newPrice := 99.0
	_, err = s.UpdateProduct("p1", domain.ProductUpdate{Price: &newPrice})
	require.NoError(t, err)

	cart := s.Cart()
	require.Len(t, cart, 1)
	assert.Equal(t, 3.50, cart[0].Price, "catalog edits must not propagate to existing cart lines")
}

// 规格里的具体场景：p1 stock=100 sold=25 price=3.50，
// 加购 2 再加购 3，结账后总额 17.50、stock 95、sold 30、购物车空
func TestCheckoutConcreteScenario(t *testing.T) {
	s := newTestStore(t)
	u := loginCustomer(t, s)

	_, err := s.AddToCart("p1", 2)
	require.NoError(t, err)
	_, err = s.AddToCart("p1", 3)
	require.NoError(t, err)

	order, err := s.Checkout()
	require.NoError(t, err)

	assert.Equal(t, u.ID, order.CustomerID)
	assert.Equal(t, 17.50, order.TotalAmount)
	assert.Equal(t, domain.OrderProcessing, order.Status)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 5, order.Items[0].Quantity)

	p1, ok := s.ProductByID("p1")
	require.True(t, ok)
	assert.Equal(t, 95, p1.Stock)
	assert.Equal(t, 30, p1.Sold)

	assert.Empty(t, s.Cart())
}

func TestCheckoutConservation(t *testing.T) {
	s := newTestStore(t)
	loginCustomer(t, s)

	before := map[string]domain.Product{}
	for _, p := range s.SearchProducts("", "") {
		before[p.ID] = p
	}

	_, err := s.AddToCart("p1", 4)
	require.NoError(t, err)
	_, err = s.AddToCart("p3", 2)
	require.NoError(t, err)

	order, err := s.Checkout()
	require.NoError(t, err)

	// 总额 = Σ 行价 × 数量
	sum := 0.0
	for _, it := range order.Items {
		sum += it.Price * float64(it.Quantity)
	}
	assert.Equal(t, sum, order.TotalAmount)

	// 每个购物车行：stock 恰减 qty，sold 恰增 qty；未涉及的商品原样
	qty := map[string]int{"p1": 4, "p3": 2}
	for _, p := range s.SearchProducts("", "") {
		if q, ok := qty[p.ID]; ok {
			assert.Equal(t, before[p.ID].Stock-q, p.Stock, p.ID)
			assert.Equal(t, before[p.ID].Sold+q, p.Sold, p.ID)
		} else {
			assert.Equal(t, before[p.ID], p, "untouched product changed: "+p.ID)
		}
	}
}

func TestCheckoutPreconditions(t *testing.T) {
	s := newTestStore(t)

	// 未登录
	_, err := s.Checkout()
	assert.ErrorIs(t, err, ErrNoSession)

	// 空购物车
	loginCustomer(t, s)
	_, err = s.Checkout()
	assert.ErrorIs(t, err, ErrEmptyCart)

	// 正常结账后购物车已清空，再结一次不会出第二单
	_, err = s.AddToCart("p2", 1)
	require.NoError(t, err)
	_, err = s.Checkout()
	require.NoError(t, err)

	_, err = s.Checkout()
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Len(t, s.OrdersForCurrentUser(), 1)

	p2, _ := s.ProductByID("p2")
	assert.Equal(t, 49, p2.Stock, "failed checkout must not touch stock")
}

func TestCheckoutOrdersMostRecentFirst(t *testing.T) {
	s := newTestStore(t)
	loginCustomer(t, s)

	_, err := s.AddToCart("p1", 1)
	require.NoError(t, err)
	first, err := s.Checkout()
	require.NoError(t, err)

	_, err = s.AddToCart("p2", 1)
	require.NoError(t, err)
	second, err := s.Checkout()
	require.NoError(t, err)

	orders := s.OrdersForCurrentUser()
	require.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID)
	assert.Equal(t, first.ID, orders[1].ID)
}

func TestOrderImmutability(t *testing.T) {
	s := newTestStore(t)
	loginCustomer(t, s)

	_, err := s.AddToCart("p1", 2)
	require.NoError(t, err)
	order, err := s.Checkout()
	require.NoError(t, err)

	// 事后改购物车和目录
	_, err = s.AddToCart("p1", 7)
	require.NoError(t, err)
	newPrice := 1.0
	_, err = s.UpdateProduct("p1", domain.ProductUpdate{Price: &newPrice})
	require.NoError(t, err)

	// 改调用方拿到的返回值也不能影响存量订单
	order.Items[0].Quantity = 999

	got := s.OrdersForCurrentUser()
	require.Len(t, got, 1)
	assert.Equal(t, 7.0, got[0].TotalAmount)
	require.Len(t, got[0].Items, 1)
	assert.Equal(t, 2, got[0].Items[0].Quantity)
	assert.Equal(t, 3.50, got[0].Items[0].Price)
}

// 不做库存下限校验：超卖打成负数是文档化行为
func TestCheckoutAllowsNegativeStock(t *testing.T) {
	s := newTestStore(t)
	loginCustomer(t, s)

	_, err := s.AddToCart("p4", 31) // p4 stock=30
	require.NoError(t, err)
	_, err = s.Checkout()
	require.NoError(t, err)

	p4, _ := s.ProductByID("p4")
	assert.Equal(t, -1, p4.Stock)
	assert.Equal(t, 36, p4.Sold)
}

func TestWishlistToggleIsItsOwnInverse(t *testing.T) {
	s := newTestStore(t)
	loginCustomer(t, s)

	in, err := s.ToggleWishlist("p1")
	require.NoError(t, err)
	assert.True(t, in)
	assert.Equal(t, []string{"p1"}, s.Wishlist())

	in, err = s.ToggleWishlist("p1")
	require.NoError(t, err)
	assert.False(t, in)
	assert.Empty(t, s.Wishlist())
}

func TestWishlistRequiresSession(t *testing.T) {
	s := newTestStore(t)
	_, err := s.ToggleWishlist("p1")
	assert.ErrorIs(t, err, ErrNoSession)
	assert.Empty(t, s.Wishlist())
}

func TestSnapshotIsolation(t *testing.T) {
	s := newTestStore(t)
	snap := s.Snapshot()
	snap.Products[0].Stock = -777
	snap.Wishlist = append(snap.Wishlist, "junk")

	p1, _ := s.ProductByID("p1")
	assert.Equal(t, 100, p1.Stock)
	assert.Empty(t, s.Wishlist())
}

// ---- 落盘行为 ----

type countingSnap struct {
	saves int
	last  domain.State
}

func (c *countingSnap) Save(_ context.Context, s domain.State) error {
	c.saves++
	c.last = s
	return nil
}

func (c *countingSnap) Load(_ context.Context) (domain.State, error) {
	return domain.State{}, storage.ErrNotFound
}

func TestEveryMutationPersistsWholeAggregate(t *testing.T) {
	snap := &countingSnap{}
	s := New(Seed(), snap, zap.NewNop())

	loginCustomer(t, s)
	require.Equal(t, 1, snap.saves)

	_, err := s.AddToCart("p1", 2)
	require.NoError(t, err)
	require.Equal(t, 2, snap.saves)

	// 结账的 2–5 步对外是一次状态迁移：恰好一次落盘，
	// 且写下去的快照里订单已建、库存已扣、购物车已空
	_, err = s.Checkout()
	require.NoError(t, err)
	require.Equal(t, 3, snap.saves)
	assert.Len(t, snap.last.Orders, 1)
	assert.Empty(t, snap.last.Cart)
	assert.Equal(t, 98, snap.last.Products[0].Stock)
}

func TestFailedMutationPersistsNothing(t *testing.T) {
	snap := &countingSnap{}
	s := New(Seed(), snap, zap.NewNop())

	_, err := s.Checkout()
	require.ErrorIs(t, err, ErrNoSession)
	assert.Zero(t, snap.saves)
}

func TestOpenFallsBackToSeed(t *testing.T) {
	s := Open(context.Background(), &countingSnap{}, zap.NewNop())
	assert.Len(t, s.SearchProducts("", ""), 4)
	assert.Len(t, s.News(), 2)
	_, ok := s.CurrentUser()
	assert.False(t, ok)
}
