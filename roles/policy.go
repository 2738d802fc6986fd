// Package roles decides, per role, which views a user may reach, which
// actions are offered there and which slice of the data is visible.
package roles

import (
	"superapp-api/models"
	"superapp-api/statemachine"
	"superapp-api/store"
	"superapp-api/views"
)

type View string

const (
	ViewAuth           View = "auth"
	ViewDashboard      View = "dashboard"
	ViewCategory       View = "category"
	ViewCheckout       View = "checkout"
	ViewLocationPicker View = "location_picker"
	ViewAdmin          View = "admin"
	ViewVendorConfig   View = "vendor_config"
)

type Action string

const (
	ActionLogout          Action = "logout"
	ActionSelectCategory  Action = "select_category"
	ActionStartCheckout   Action = "start_checkout"
	ActionPlaceOrder      Action = "place_order"
	ActionSearchLocation  Action = "search_location"
	ActionConfirmLocation Action = "confirm_location"
	ActionToggleOnline    Action = "toggle_online"
	ActionAcceptOrder     Action = "accept_order"
	ActionAdvanceOrder    Action = "advance_order"
	ActionAddProduct      Action = "add_product"
	ActionEditPrice       Action = "edit_price"
	ActionResetPassword   Action = "reset_password"
)

// Visible is the data subset a screen shows. Fields a role never sees stay empty.
type Visible struct {
	Categories  []models.Category          `json:"categories,omitempty"`
	Products    []models.Product           `json:"products,omitempty"`
	Orders      []models.Order             `json:"orders,omitempty"`
	Pool        []models.Order             `json:"pool,omitempty"`
	ActiveOrder *models.Order              `json:"activeOrder,omitempty"`
	NextStatus  models.OrderStatus         `json:"nextStatus,omitempty"`
	Delivered   int                        `json:"delivered,omitempty"`
	Summary     map[models.OrderStatus]int `json:"summary,omitempty"`
	Stats       *views.AdminStats          `json:"stats,omitempty"`
	Users       []models.User              `json:"users,omitempty"`
}

// Policy holds every rule of one role.
type Policy interface {
	Role() models.UserRole
	Home() View
	Views() []View
	// Reachable reports whether the session may switch to v right now.
	Reachable(s Session, v View) bool
	// Actions lists what the session can do in its current view.
	Actions(s Session, snap store.Snapshot) []Action
	Visible(s Session, snap store.Snapshot) Visible
}

type customerPolicy struct{}

func (customerPolicy) Role() models.UserRole { return models.RoleCustomer }
func (customerPolicy) Home() View            { return ViewDashboard }
func (customerPolicy) Views() []View {
	return []View{ViewDashboard, ViewCategory, ViewCheckout, ViewLocationPicker}
}

func (customerPolicy) Reachable(s Session, v View) bool {
	switch v {
	case ViewDashboard, ViewLocationPicker:
		return true
	case ViewCategory:
		return s.Category != ""
	case ViewCheckout:
		return s.Draft != nil
	}
	return false
}

func (customerPolicy) Actions(s Session, _ store.Snapshot) []Action {
	switch s.View {
	case ViewDashboard:
		return []Action{ActionSelectCategory}
	case ViewCategory:
		return []Action{ActionSelectCategory, ActionStartCheckout}
	case ViewCheckout:
		return []Action{ActionPlaceOrder, ActionSelectCategory}
	case ViewLocationPicker:
		return []Action{ActionSearchLocation, ActionConfirmLocation}
	}
	return nil
}

func (customerPolicy) Visible(s Session, snap store.Snapshot) Visible {
	switch s.View {
	case ViewDashboard:
		return Visible{
			Categories: models.Categories,
			Orders:     views.OrdersForClient(snap.Orders, s.User.UID),
		}
	case ViewCategory:
		if s.Category == models.CategoryTaxi {
			return Visible{}
		}
		return Visible{Products: views.ProductsInCategory(snap.Products, s.Category)}
	}
	return Visible{}
}

type deliveryPolicy struct{}

func (deliveryPolicy) Role() models.UserRole { return models.RoleDelivery }
func (deliveryPolicy) Home() View            { return ViewDashboard }
func (deliveryPolicy) Views() []View         { return []View{ViewDashboard} }

func (deliveryPolicy) Reachable(_ Session, v View) bool { return v == ViewDashboard }

func (deliveryPolicy) Actions(s Session, snap store.Snapshot) []Action {
	actions := []Action{ActionToggleOnline}
	if _, busy := views.ActiveForPartner(snap.Orders, s.User.UID); busy {
		return append(actions, ActionAdvanceOrder)
	}
	if s.Online {
		actions = append(actions, ActionAcceptOrder)
	}
	return actions
}

func (deliveryPolicy) Visible(s Session, snap store.Snapshot) Visible {
	v := Visible{Delivered: views.DeliveredByPartner(snap.Orders, s.User.UID)}
	if active, ok := views.ActiveForPartner(snap.Orders, s.User.UID); ok {
		v.ActiveOrder = &active
		v.NextStatus, _ = statemachine.Next(active.Status)
		return v
	}
	if s.Online {
		v.Pool = views.Pool(snap.Orders)
	}
	return v
}

type vendorPolicy struct{}

func (vendorPolicy) Role() models.UserRole { return models.RoleVendor }
func (vendorPolicy) Home() View            { return ViewDashboard }
func (vendorPolicy) Views() []View         { return []View{ViewDashboard, ViewVendorConfig} }

func (vendorPolicy) Reachable(_ Session, v View) bool {
	return v == ViewDashboard || v == ViewVendorConfig
}

func (vendorPolicy) Actions(s Session, _ store.Snapshot) []Action {
	if s.View == ViewVendorConfig {
		return []Action{ActionAddProduct, ActionEditPrice}
	}
	return nil
}

func (vendorPolicy) Visible(s Session, snap store.Snapshot) Visible {
	if s.View == ViewVendorConfig {
		return Visible{Products: views.Catalog(snap.Products, s.User.UID)}
	}
	orders := views.OrdersForVendor(snap.Orders, s.User.UID)
	return Visible{Orders: orders, Summary: views.StatusSummary(orders)}
}

type adminPolicy struct{}

func (adminPolicy) Role() models.UserRole { return models.RoleAdmin }
func (adminPolicy) Home() View            { return ViewAdmin }
func (adminPolicy) Views() []View         { return []View{ViewAdmin} }

func (adminPolicy) Reachable(_ Session, v View) bool { return v == ViewAdmin }

func (adminPolicy) Actions(Session, store.Snapshot) []Action {
	return []Action{ActionResetPassword}
}

func (adminPolicy) Visible(_ Session, snap store.Snapshot) Visible {
	stats := views.Stats(snap.Orders, snap.Users)
	users := make([]models.User, len(snap.Users))
	for i, u := range snap.Users {
		users[i] = u.Public()
	}
	return Visible{Stats: &stats, Users: users}
}

// Policies returns one policy per role.
func Policies() []Policy {
	return []Policy{customerPolicy{}, deliveryPolicy{}, vendorPolicy{}, adminPolicy{}}
}
