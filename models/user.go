package models

// UserRole defines allowed roles in the system
type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleDelivery UserRole = "delivery"
	RoleVendor   UserRole = "vendor"
	RoleAdmin    UserRole = "admin"
)

// Roles lists every role in display order.
var Roles = []UserRole{RoleCustomer, RoleDelivery, RoleVendor, RoleAdmin}

// Valid reports whether r is one of the known roles.
func (r UserRole) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// User is a registered account. Passwords are compared in plaintext; the
// credential check is a demo gate, not a security boundary.
type User struct {
	UID          string   `json:"uid"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Password     string   `json:"password,omitempty"`
	Role         UserRole `json:"role"`
	Phone        string   `json:"phone,omitempty"`
	BusinessName string   `json:"businessName,omitempty"`
}

// Public returns a copy of the user safe to hand to API clients.
func (u User) Public() User {
	u.Password = ""
	return u
}
