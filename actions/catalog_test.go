package actions

import (
	"context"
	"testing"

	"superapp-api/views"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddProduct(t *testing.T) {
	ctx := context.Background()
	s, st := newTestService(t)
	vendor, _ := s.User("vendor-001")

	p, err := s.AddProduct(ctx, vendor, ProductInput{Name: "Alfajor", Price: price(0), Category: "market"})
	require.NoError(t, err)
	assert.Equal(t, "🛒", p.Emoji)
	assert.Equal(t, vendor.UID, p.VendorID)
	assert.Len(t, views.Catalog(st.Snapshot().Products, vendor.UID), 3)

	_, err = s.AddProduct(ctx, vendor, ProductInput{Name: "Sin precio", Category: "food"})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = s.AddProduct(ctx, vendor, ProductInput{Name: "Negativo", Price: price(-1), Category: "food"})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = s.AddProduct(ctx, vendor, ProductInput{Name: "Viaje", Price: price(10), Category: "taxi"})
	assert.ErrorIs(t, err, ErrValidation)

	customer, _ := s.User("user-001")
	_, err = s.AddProduct(ctx, customer, ProductInput{Name: "x", Price: price(1), Category: "food"})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpdatePriceIsScopedToOwner(t *testing.T) {
	ctx := context.Background()
	s, st := newTestService(t)
	owner, _ := s.User("vendor-001")
	other := register(t, s, "Otro", "otro@x.com", "vendor")

	_, err := s.UpdatePrice(ctx, other, "p1", 1)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = s.UpdatePrice(ctx, owner, "p1", -5)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = s.UpdatePrice(ctx, owner, "missing", 5)
	assert.ErrorIs(t, err, ErrNotFound)

	p, err := s.UpdatePrice(ctx, owner, "p1", 5000)
	require.NoError(t, err)
	assert.Equal(t, 5000.0, p.Price)
	assert.Equal(t, 5000.0, st.Snapshot().Products[0].Price)
}
