package views

import (
	"testing"

	"superapp-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOrders() []models.Order {
	return []models.Order{
		{ID: "o5", ClientID: "c1", VendorID: "v1", Item: "Hamburguesa Triple", Status: models.StatusPending, TotalNum: 4500},
		{ID: "o4", ClientID: "c1", Item: models.TaxiItem, Type: models.TypeTaxi, Status: models.StatusAccepted, PartnerID: "p1"},
		{ID: "o3", ClientID: "c2", VendorID: "v1", Item: "Hamburguesa Triple", Status: models.StatusDelivered, PartnerID: "p1", TotalNum: 4500},
		{ID: "o2", ClientID: "c1", VendorID: "v2", Item: "Papas Fritas XL", Status: models.StatusDelivered, PartnerID: "p2", TotalNum: 2500},
		{ID: "o1", ClientID: "c2", Item: models.TaxiItem, Type: models.TypeTaxi, Status: models.StatusPending},
	}
}

func ids(orders []models.Order) []string {
	out := make([]string, len(orders))
	for i, o := range orders {
		out[i] = o.ID
	}
	return out
}

func TestOrdersForClientExcludesDelivered(t *testing.T) {
	got := OrdersForClient(sampleOrders(), "c1")
	assert.Equal(t, []string{"o5", "o4"}, ids(got))
	for _, o := range got {
		assert.NotEqual(t, models.StatusDelivered, o.Status)
	}
}

func TestOrdersForVendorKeepsAllStatuses(t *testing.T) {
	assert.Equal(t, []string{"o5", "o3"}, ids(OrdersForVendor(sampleOrders(), "v1")))
	assert.Empty(t, OrdersForVendor(sampleOrders(), "nobody"))
}

func TestPool(t *testing.T) {
	assert.Equal(t, []string{"o5", "o1"}, ids(Pool(sampleOrders())))
}

func TestActiveForPartner(t *testing.T) {
	o, ok := ActiveForPartner(sampleOrders(), "p1")
	require.True(t, ok)
	assert.Equal(t, "o4", o.ID)

	_, ok = ActiveForPartner(sampleOrders(), "p2")
	assert.False(t, ok, "delivered orders are not active")

	_, ok = ActiveForPartner(sampleOrders(), "")
	assert.False(t, ok)
}

func TestDeliveredByPartner(t *testing.T) {
	assert.Equal(t, 1, DeliveredByPartner(sampleOrders(), "p1"))
	assert.Equal(t, 0, DeliveredByPartner(sampleOrders(), "p3"))
}

func TestCatalogAndCategory(t *testing.T) {
	products := []models.Product{
		{ID: "a", VendorID: "v1", Category: "food"},
		{ID: "b", VendorID: "v2", Category: "market"},
		{ID: "c", VendorID: "v1", Category: "market"},
	}
	assert.Len(t, Catalog(products, "v1"), 2)
	assert.Len(t, ProductsInCategory(products, "market"), 2)
	assert.NotNil(t, ProductsInCategory(products, "pets"))
}

func TestStatusSummary(t *testing.T) {
	summary := StatusSummary(sampleOrders())
	assert.Equal(t, 2, summary[models.StatusPending])
	assert.Equal(t, 2, summary[models.StatusDelivered])
	assert.Equal(t, 1, summary[models.StatusAccepted])
}

func TestMostPopularMajority(t *testing.T) {
	var orders []models.Order
	for i := 0; i < 2; i++ {
		orders = append(orders, models.Order{Item: "Viaje Taxi"})
	}
	for i := 0; i < 3; i++ {
		orders = append(orders, models.Order{Item: "Hamburguesa Triple"})
	}
	assert.Equal(t, "Hamburguesa Triple", MostPopular(orders))
}

func TestMostPopularTieGoesToFirstSeen(t *testing.T) {
	orders := []models.Order{{Item: "B"}, {Item: "A"}, {Item: "A"}, {Item: "B"}}
	assert.Equal(t, "B", MostPopular(orders))
	assert.Equal(t, NoPopularItem, MostPopular(nil))
}

func TestStatsRevenueAndCounts(t *testing.T) {
	users := []models.User{{Role: models.RoleAdmin}, {Role: models.RoleVendor}}
	stats := Stats(sampleOrders(), users)
	assert.Equal(t, 11500.0, stats.TotalRev)
	assert.Equal(t, 5, stats.OrderCount)
	assert.Equal(t, 2, stats.UserCount)
	assert.Equal(t, "Hamburguesa Triple", stats.MostPopular)
	require.Len(t, stats.Recs, 1)
	assert.Contains(t, stats.Recs[0], "steady")
}

func TestStatsRecommendations(t *testing.T) {
	orders := append(sampleOrders(), models.Order{Item: "Hamburguesa Triple"})
	stats := Stats(orders, []models.User{{Role: models.RoleCustomer}})
	require.Len(t, stats.Recs, 2)
	assert.Contains(t, stats.Recs[0], "Hamburguesa Triple")
	assert.Contains(t, stats.Recs[1], "no vendors")
}
