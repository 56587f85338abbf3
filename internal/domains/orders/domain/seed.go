package domain

// SeedOrders returns the registry loaded on a fresh installation, in display order.
func SeedOrders() []*Order {
	return []*Order{
		{ID: 1, Reference: "#833raew", Status: StatusOnTheWay, CustomerName: "Mohamed Salah",
			CustomerAddress: "Cairo, Nasr City, Street 233", CustomerPhone: "0123334456",
			Note: "Please deliver to the main gate", Position: 1},
		{ID: 2, Reference: "#745mnop", Status: StatusUpcoming, CustomerName: "Mohamed Ali",
			CustomerAddress: "Cairo, Nasr City, Street 536", CustomerPhone: "0112010666",
			Note: NoNote, Position: 2},
		{ID: 3, Reference: "#621abcd", Status: StatusUpcoming, CustomerName: "Omar Said",
			CustomerAddress: "Cairo, Nasr City, Street 333", CustomerPhone: "0123456789",
			Note: "Call before arriving", Position: 3},
	}
}
