package store

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"agri-connect/internal/domain"
)

var (
	ordersTotal = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "checkout_orders_total", Help: "Count of orders created"},
	)
	orderAmount = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "checkout_order_amount",
			Help:    "Order total amount distribution",
			Buckets: []float64{5, 10, 25, 50, 100, 250, 500},
		},
	)
)

func init() { prometheus.MustRegister(ordersTotal, orderAmount) }

// Checkout 把非空购物车一次性转成订单：
//  1. 按行价 × 数量求总额（行价是加购快照价，不回读目录）
//  2. 生成订单：新 id、当前用户、购物车深拷贝、总额、当前时刻、Processing
//  3. 目录里有对应行的商品 stock -= 数量、sold += 数量
//  4. 新订单插到订单列表头部（最新在前）
//  5. 清空购物车
//
// 1–5 在一次更新内完成，外部看不到中间态。不做库存下限校验，
// 超卖会把 stock 打成负数（文档化行为，见 DESIGN.md）。
func (s *Store) Checkout() (domain.Order, error) {
	var out domain.Order
	err := s.update("checkout", func(st *domain.State) error {
		if st.CurrentUser == nil {
			return ErrNoSession
		}
		if len(st.Cart) == 0 {
			return ErrEmptyCart
		}

		total := 0.0
		for _, it := range st.Cart {
			total += it.Price * float64(it.Quantity)
		}

		items := make([]domain.CartItem, len(st.Cart))
		copy(items, st.Cart)
		order := domain.Order{
			ID:          s.newID(),
			CustomerID:  st.CurrentUser.ID,
			Items:       items,
			TotalAmount: total,
			Date:        s.now(),
			Status:      domain.OrderProcessing,
		}

		for i := range st.Products {
			for _, it := range st.Cart {
				if st.Products[i].ID == it.ID {
					st.Products[i].Stock -= it.Quantity
					st.Products[i].Sold += it.Quantity
					break
				}
			}
		}

		st.Orders = append([]domain.Order{order}, st.Orders...)
		st.Cart = nil
		out = order.Clone()
		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}

	ordersTotal.Inc()
	orderAmount.Observe(out.TotalAmount)
	s.log.Info("checkout completed",
		zap.String("order_id", out.ID),
		zap.String("customer_id", out.CustomerID),
		zap.Int("lines", len(out.Items)),
		zap.Float64("total", out.TotalAmount),
	)
	return out, nil
}

// OrdersForCurrentUser 存储层订单不分用户，读侧按当前会话过滤；
// 未登录返回空
func (s *Store) OrdersForCurrentUser() []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.CurrentUser == nil {
		return nil
	}
	var out []domain.Order
	for _, o := range s.state.Orders {
		if o.CustomerID == s.state.CurrentUser.ID {
			out = append(out, o.Clone())
		}
	}
	return out
}
