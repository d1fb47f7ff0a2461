package domain

import "time"

type OrderStatus string

const (
	OrderProcessing OrderStatus = "Processing"
	OrderShipped    OrderStatus = "Shipped"
	OrderDelivered  OrderStatus = "Delivered"
)

// Order 结账时一次性生成，之后不再改动
type Order struct {
	ID          string      `json:"id"`
	CustomerID  string      `json:"customerId"`
	Items       []CartItem  `json:"items"` // 结账瞬间购物车的深拷贝
	TotalAmount float64     `json:"totalAmount"`
	Date        time.Time   `json:"date"`
	Status      OrderStatus `json:"status"`
}

func (o Order) Clone() Order {
	items := make([]CartItem, len(o.Items))
	copy(items, o.Items)
	o.Items = items
	return o
}
