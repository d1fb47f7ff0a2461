package store

import "agri-connect/internal/domain"

// Roster 固定演示账号。login 先查这里，查不到就地造一个新身份。
// 与聚合分开存放：账号名册不落盘。
var Roster = []domain.User{
	{ID: "f1", Name: "John Farmer", Email: "farmer@test.com", Role: domain.RoleFarmer},
	{ID: "c1", Name: "Jane Customer", Email: "customer@test.com", Role: domain.RoleCustomer},
}

// Seed 首次启动（还没有快照）时的初始聚合
func Seed() domain.State {
	return domain.State{
		Products: []domain.Product{
			{
				ID: "p1", FarmerID: "f1", FarmerName: "Green Valley Farms",
				Name: "Organic Tomatoes", Category: "Vegetables",
				Description: "Fresh, vine-ripened organic tomatoes harvested this morning.",
				Price:       3.50, Unit: "kg", Stock: 100, Sold: 25,
				Image: "https://picsum.photos/400/300?random=1",
			},
			{
				ID: "p2", FarmerID: "f1", FarmerName: "Green Valley Farms",
				Name: "Fresh Spinach", Category: "Vegetables",
				Description: "Crisp and healthy spinach leaves, pesticide-free.",
				Price:       2.00, Unit: "bundle", Stock: 50, Sold: 10,
				Image: "https://picsum.photos/400/300?random=2",
			},
			{
				ID: "p3", FarmerID: "f2", FarmerName: "Sunny Side Orchard",
				Name: "Honeycrisp Apples", Category: "Fruits",
				Description: "Sweet and crunchy apples, perfect for snacking.",
				Price:       4.20, Unit: "kg", Stock: 200, Sold: 45,
				Image: "https://picsum.photos/400/300?random=3",
			},
			{
				ID: "p4", FarmerID: "f2", FarmerName: "Sunny Side Orchard",
				Name: "Raw Honey", Category: "Pantry",
				Description: "Pure, unprocessed honey from our local apiary.",
				Price:       12.00, Unit: "jar", Stock: 30, Sold: 5,
				Image: "https://picsum.photos/400/300?random=4",
			},
		},
		News: []domain.NewsItem{
			{
				ID: "n1", Title: "Seasonal Harvest Festival",
				Summary: "Join us this weekend for the annual harvest celebration with local farmers.",
				Date:    "2023-10-15",
			},
			{
				ID: "n2", Title: "New Organic Certification",
				Summary: "Three more local farms have received their official organic certification.",
				Date:    "2023-10-10",
			},
		},
	}
}
