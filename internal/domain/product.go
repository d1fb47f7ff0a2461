package domain

type Product struct {
	ID          string  `json:"id"`
	FarmerID    string  `json:"farmerId"`
	FarmerName  string  `json:"farmerName"` // 冗余存储，省一次查询
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Unit        string  `json:"unit"` // kg / piece / bundle / jar
	Stock       int     `json:"stock"`
	Sold        int     `json:"sold"`
	Image       string  `json:"image"`
}

// ProductUpdate 部分更新；Stock/Sold 只能走 checkout 改动之外的显式编辑
type ProductUpdate struct {
	Name        *string  `json:"name,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Unit        *string  `json:"unit,omitempty"`
	Stock       *int     `json:"stock,omitempty"`
	Image       *string  `json:"image,omitempty"`
}

func (p ProductUpdate) Apply(prod *Product) {
	if p.Name != nil {
		prod.Name = *p.Name
	}
	if p.Category != nil {
		prod.Category = *p.Category
	}
	if p.Description != nil {
		prod.Description = *p.Description
	}
	if p.Price != nil {
		prod.Price = *p.Price
	}
	if p.Unit != nil {
		prod.Unit = *p.Unit
	}
	if p.Stock != nil {
		prod.Stock = *p.Stock
	}
	if p.Image != nil {
		prod.Image = *p.Image
	}
}

// CartItem 是加购瞬间的商品快照 + 数量。之后目录里的改价/改描述
// 不会回写到已有购物车行，这是约定行为而非缺陷。
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}
