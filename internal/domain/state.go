package domain

// State 是唯一的持久化聚合：当前会话 + 目录 + 订单 + 购物车 + 资讯 + 心愿单。
// 每次变更整体落一次盘，读取时整体信任上次写入的结构。
type State struct {
	CurrentUser *User      `json:"currentUser"`
	Products    []Product  `json:"products"`
	Orders      []Order    `json:"orders"`
	Cart        []CartItem `json:"cart"`
	News        []NewsItem `json:"news"`
	Wishlist    []string   `json:"wishlist"` // product id 集合
}

// Clone 深拷贝，保证快照语义：外部拿到的 State 改不动 store 内部的那份
func (s State) Clone() State {
	out := State{
		Products: make([]Product, len(s.Products)),
		Orders:   make([]Order, 0, len(s.Orders)),
		Cart:     make([]CartItem, len(s.Cart)),
		News:     make([]NewsItem, len(s.News)),
		Wishlist: append([]string(nil), s.Wishlist...),
	}
	copy(out.Products, s.Products)
	copy(out.Cart, s.Cart)
	copy(out.News, s.News)
	for _, o := range s.Orders {
		out.Orders = append(out.Orders, o.Clone())
	}
	if s.CurrentUser != nil {
		u := s.CurrentUser.Clone()
		out.CurrentUser = &u
	}
	return out
}
