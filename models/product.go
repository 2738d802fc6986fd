package models

type Product struct {
	ID       string  `json:"id"`
	VendorID string  `json:"vendorId"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
	Emoji    string  `json:"emoji"`
}
