package store

import "superapp-api/models"

// DefaultUsers are the accounts every fresh install starts with.
func DefaultUsers() []models.User {
	return []models.User{
		{UID: "admin-001", Name: "Ivan Admin", Email: "arteagamartinivan@gmail.com", Password: "24072212", Role: models.RoleAdmin},
		{UID: "user-001", Name: "Usuario Demo", Email: "usuario@gmail.com", Password: "123456", Role: models.RoleCustomer},
		{UID: "vendor-001", Name: "Dueño Burger", Email: "burger@domi.com", Password: "123", Role: models.RoleVendor, BusinessName: "Burgers Domi"},
	}
}

// DefaultProducts is the demo catalog of the seeded vendor.
func DefaultProducts() []models.Product {
	return []models.Product{
		{ID: "p1", VendorID: "vendor-001", Name: "Hamburguesa Triple", Price: 4500, Category: "food", Emoji: "🍔"},
		{ID: "p2", VendorID: "vendor-001", Name: "Papas Fritas XL", Price: 2500, Category: "food", Emoji: "🍟"},
	}
}
