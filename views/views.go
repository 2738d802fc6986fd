// Package views derives the role-scoped data sets shown to each user. Every
// function is pure and recomputed from the current collections on each read.
package views

import (
	"fmt"

	"superapp-api/models"
)

// OrdersForClient returns the customer's orders that are not yet delivered.
func OrdersForClient(orders []models.Order, uid string) []models.Order {
	return filter(orders, func(o models.Order) bool {
		return o.ClientID == uid && o.Status != models.StatusDelivered
	})
}

// OrdersForVendor returns every order placed against the vendor, any status.
func OrdersForVendor(orders []models.Order, uid string) []models.Order {
	return filter(orders, func(o models.Order) bool { return o.VendorID == uid })
}

// Pool returns the orders waiting for a partner.
func Pool(orders []models.Order) []models.Order {
	return filter(orders, func(o models.Order) bool { return o.Status == models.StatusPending })
}

// ActiveForPartner returns the partner's order in progress, if any.
func ActiveForPartner(orders []models.Order, uid string) (models.Order, bool) {
	if uid == "" {
		return models.Order{}, false
	}
	for _, o := range orders {
		if o.PartnerID == uid && o.Status != models.StatusDelivered {
			return o, true
		}
	}
	return models.Order{}, false
}

// DeliveredByPartner counts the orders the partner has completed.
func DeliveredByPartner(orders []models.Order, uid string) int {
	n := 0
	for _, o := range orders {
		if o.PartnerID == uid && o.Status == models.StatusDelivered {
			n++
		}
	}
	return n
}

// Catalog returns the products owned by a vendor.
func Catalog(products []models.Product, vendorUID string) []models.Product {
	out := make([]models.Product, 0)
	for _, p := range products {
		if p.VendorID == vendorUID {
			out = append(out, p)
		}
	}
	return out
}

// ProductsInCategory returns the products listed under a category.
func ProductsInCategory(products []models.Product, category string) []models.Product {
	out := make([]models.Product, 0)
	for _, p := range products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// StatusSummary counts orders per status.
func StatusSummary(orders []models.Order) map[models.OrderStatus]int {
	summary := map[models.OrderStatus]int{}
	for _, o := range orders {
		summary[o.Status]++
	}
	return summary
}

func filter(orders []models.Order, keep func(models.Order) bool) []models.Order {
	out := make([]models.Order, 0)
	for _, o := range orders {
		if keep(o) {
			out = append(out, o)
		}
	}
	return out
}

// NoPopularItem is reported when there are no orders.
const NoPopularItem = "N/A"

// popularThreshold is the order count above which the admin is told what sells most.
const popularThreshold = 5

type AdminStats struct {
	TotalRev    float64  `json:"totalRev"`
	OrderCount  int      `json:"orderCount"`
	UserCount   int      `json:"userCount"`
	MostPopular string   `json:"mostPopular"`
	Recs        []string `json:"recs"`
}

// Stats aggregates revenue and popularity over every order.
func Stats(orders []models.Order, users []models.User) AdminStats {
	var total float64
	for _, o := range orders {
		total += o.TotalNum
	}

	popular := MostPopular(orders)

	var recs []string
	if len(orders) > popularThreshold {
		recs = append(recs, fmt.Sprintf("🔥 Top seller: %s. Suggest vendors raise stock.", popular))
	}
	vendors := 0
	for _, u := range users {
		if u.Role == models.RoleVendor {
			vendors++
		}
	}
	if vendors == 0 {
		recs = append(recs, "🏬 Opportunity: no vendors yet. Onboard new businesses.")
	}
	if len(recs) == 0 {
		recs = append(recs, "📈 System steady. Monitoring orders.")
	}

	return AdminStats{
		TotalRev:    total,
		OrderCount:  len(orders),
		UserCount:   len(users),
		MostPopular: popular,
		Recs:        recs,
	}
}

// MostPopular returns the most frequent item. Ties go to the item seen first
// while walking the list.
func MostPopular(orders []models.Order) string {
	counts := map[string]int{}
	var order []string
	for _, o := range orders {
		if _, seen := counts[o.Item]; !seen {
			order = append(order, o.Item)
		}
		counts[o.Item]++
	}
	best, bestCount := NoPopularItem, 0
	for _, item := range order {
		if counts[item] > bestCount {
			best, bestCount = item, counts[item]
		}
	}
	return best
}
