package actions

import (
	"context"
	"fmt"
	"strconv"

	"superapp-api/models"
	"superapp-api/statemachine"
	"superapp-api/store"
	"superapp-api/views"

	"github.com/sirupsen/logrus"
)

// CheckoutInput is a checkout draft plus the note the customer must leave
// for the partner.
type CheckoutInput struct {
	ProductID string          `json:"productId"`
	Item      string          `json:"item" validate:"required"`
	Price     float64         `json:"price" validate:"gte=0"`
	Taxi      bool            `json:"taxi"`
	Note      string          `json:"note" validate:"required"`
	Location  models.Location `json:"location"`
}

// PlaceOrder turns a checkout draft into a pending order at the head of the list.
// Non-taxi drafts must name a catalog product; its name and price are used.
func (s *Service) PlaceOrder(ctx context.Context, client models.User, in CheckoutInput) (models.Order, error) {
	if client.Role != models.RoleCustomer {
		return models.Order{}, fmt.Errorf("place order: %w", ErrForbidden)
	}
	if in.Taxi {
		in.Item, in.Price, in.ProductID = models.TaxiItem, 0, ""
	}
	if err := s.check(in); err != nil {
		return models.Order{}, err
	}

	var order models.Order
	err := s.store.Update(ctx, func(tx *store.Tx) error {
		now := s.now()
		order = models.Order{
			ID:          newOrderID(tx),
			ClientID:    client.UID,
			ClientName:  client.Name,
			Item:        in.Item,
			Type:        models.TypeDelivery,
			Status:      models.StatusPending,
			AddressNote: in.Note,
			Payment:     models.PaymentCash,
			Total:       "$" + strconv.FormatFloat(in.Price, 'f', -1, 64),
			TotalNum:    in.Price,
			Location:    in.Location,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if in.Taxi {
			order.Type = models.TypeTaxi
			order.Total = models.TaxiTotal
		} else {
			p, ok := CatalogItem(tx.Products(), in.ProductID, in.Item)
			if !ok {
				return fmt.Errorf("%w: %q is not in the catalog", ErrValidation, in.Item)
			}
			order.Item = p.Name
			order.VendorID = p.VendorID
			order.Total = "$" + strconv.FormatFloat(p.Price, 'f', -1, 64)
			order.TotalNum = p.Price
		}
		tx.PrependOrder(order)
		return nil
	})
	if err != nil {
		return models.Order{}, err
	}
	s.log.WithFields(logrus.Fields{
		"order_id": order.ID,
		"client":   client.UID,
		"type":     order.Type,
		"total":    order.TotalNum,
	}).Info("order placed")
	return order, nil
}

// CatalogItem resolves a checkout draft to a catalog product, by id first and
// then by the first product with the same name. Name and price always come
// from the catalog.
func CatalogItem(products []models.Product, productID, item string) (models.Product, bool) {
	if productID != "" {
		for _, p := range products {
			if p.ID == productID {
				return p, true
			}
		}
	}
	for _, p := range products {
		if p.Name == item {
			return p, true
		}
	}
	return models.Product{}, false
}

// Accept binds a pending order to the partner. The check and the binding
// happen in one store update, so exactly one of several racing partners wins.
func (s *Service) Accept(ctx context.Context, partner models.User, orderID string) (models.Order, error) {
	return s.transition(ctx, partner, orderID, models.StatusAccepted)
}

// Advance moves the partner's order one step forward.
func (s *Service) Advance(ctx context.Context, partner models.User, orderID string) (models.Order, error) {
	return s.transition(ctx, partner, orderID, "")
}

// AdvanceTo moves the partner's order to a named status, which must be the next step.
func (s *Service) AdvanceTo(ctx context.Context, partner models.User, orderID string, to models.OrderStatus) (models.Order, error) {
	if to == models.StatusAccepted {
		return models.Order{}, fmt.Errorf("%w: use accept to claim an order", ErrInvalidTransition)
	}
	return s.transition(ctx, partner, orderID, to)
}

func (s *Service) transition(ctx context.Context, partner models.User, orderID string, to models.OrderStatus) (models.Order, error) {
	if partner.Role != models.RoleDelivery {
		return models.Order{}, fmt.Errorf("change order status: %w", ErrForbidden)
	}

	var (
		order models.Order
		from  models.OrderStatus
	)
	err := s.store.Update(ctx, func(tx *store.Tx) error {
		i, ok := tx.FindOrder(orderID)
		if !ok {
			return fmt.Errorf("order %s: %w", orderID, ErrNotFound)
		}
		order = tx.Orders()[i]
		from = order.Status

		target := to
		if target == "" {
			if order.Status == models.StatusPending {
				return fmt.Errorf("%w: order %s must be accepted first", ErrInvalidTransition, orderID)
			}
			next, ok := statemachine.Next(order.Status)
			if !ok {
				return fmt.Errorf("%w: order %s is %s", ErrInvalidTransition, orderID, order.Status)
			}
			target = next
		}

		if target == models.StatusAccepted {
			if order.PartnerID != "" {
				return fmt.Errorf("order %s: %w", orderID, ErrAlreadyClaimed)
			}
			if err := statemachine.CanTransition(order.Status, target, partner.Role); err != nil {
				return err
			}
			if active, busy := views.ActiveForPartner(tx.Orders(), partner.UID); busy {
				return fmt.Errorf("%w: %s", ErrPartnerBusy, active.ID)
			}
			order.PartnerID = partner.UID
			order.PartnerName = partner.Name
		} else {
			if order.PartnerID != "" && order.PartnerID != partner.UID {
				return fmt.Errorf("order %s: %w", orderID, ErrNotAssigned)
			}
			if err := statemachine.CanTransition(order.Status, target, partner.Role); err != nil {
				return err
			}
		}

		order.Status = target
		order.UpdatedAt = stamp(order.UpdatedAt, s.now())
		tx.PutOrder(i, order)
		return nil
	})
	if err != nil {
		return models.Order{}, err
	}
	s.log.WithFields(logrus.Fields{
		"order_id": order.ID,
		"from":     from,
		"to":       order.Status,
		"partner":  partner.UID,
	}).Info("order status changed")
	return order, nil
}
