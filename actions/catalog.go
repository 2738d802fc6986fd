package actions

import (
	"context"
	"fmt"

	"superapp-api/models"
	"superapp-api/store"

	"github.com/sirupsen/logrus"
)

type ProductInput struct {
	Name     string   `json:"name" validate:"required"`
	Price    *float64 `json:"price" validate:"required,gte=0"`
	Category string   `json:"category" validate:"required"`
}

// AddProduct lists a new product in the vendor's catalog.
func (s *Service) AddProduct(ctx context.Context, vendor models.User, in ProductInput) (models.Product, error) {
	if vendor.Role != models.RoleVendor {
		return models.Product{}, fmt.Errorf("add product: %w", ErrForbidden)
	}
	if err := s.check(in); err != nil {
		return models.Product{}, err
	}
	if _, ok := models.FindCategory(in.Category); !ok || in.Category == models.CategoryTaxi {
		return models.Product{}, fmt.Errorf("%w: category %q does not hold products", ErrValidation, in.Category)
	}

	var p models.Product
	err := s.store.Update(ctx, func(tx *store.Tx) error {
		p = models.Product{
			ID:       newProductID(tx),
			VendorID: vendor.UID,
			Name:     in.Name,
			Price:    *in.Price,
			Category: in.Category,
			Emoji:    models.CategoryEmoji(in.Category),
		}
		tx.AppendProduct(p)
		return nil
	})
	if err != nil {
		return models.Product{}, err
	}
	s.log.WithFields(logrus.Fields{"product_id": p.ID, "vendor": vendor.UID}).Info("product added")
	return p, nil
}

// UpdatePrice changes the price of one of the vendor's own products.
func (s *Service) UpdatePrice(ctx context.Context, vendor models.User, productID string, price float64) (models.Product, error) {
	if vendor.Role != models.RoleVendor {
		return models.Product{}, fmt.Errorf("update price: %w", ErrForbidden)
	}
	if err := s.validate.Var(price, "gte=0"); err != nil {
		return models.Product{}, fmt.Errorf("%w: price must be >= 0", ErrValidation)
	}

	var p models.Product
	err := s.store.Update(ctx, func(tx *store.Tx) error {
		i, ok := tx.FindProduct(productID)
		if !ok {
			return fmt.Errorf("product %s: %w", productID, ErrNotFound)
		}
		p = tx.Products()[i]
		if p.VendorID != vendor.UID {
			return fmt.Errorf("product %s belongs to another vendor: %w", productID, ErrForbidden)
		}
		p.Price = price
		tx.PutProduct(i, p)
		return nil
	})
	if err != nil {
		return models.Product{}, err
	}
	s.log.WithFields(logrus.Fields{"product_id": p.ID, "price": price}).Info("product price updated")
	return p, nil
}
