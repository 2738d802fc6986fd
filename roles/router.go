package roles

import (
	"errors"
	"fmt"
	"sync"

	"superapp-api/models"
	"superapp-api/store"
)

var (
	ErrNoSession         = errors.New("no active session")
	ErrViewNotAllowed    = errors.New("view not reachable")
	ErrActionNotAllowed  = errors.New("action not available")
	ErrUnknownCategory   = errors.New("unknown category")
	errMissingRolePolicy = errors.New("no policy for role")
)

// Draft is the item a customer is about to order. It is never persisted.
type Draft struct {
	ProductID string  `json:"productId,omitempty"`
	Item      string  `json:"item"`
	Price     float64 `json:"price"`
	Taxi      bool    `json:"taxi"`
}

// Session is the per-user UI state: where the user is and what they picked.
type Session struct {
	User     models.User     `json:"user"`
	View     View            `json:"view"`
	Category string          `json:"category,omitempty"`
	Draft    *Draft          `json:"draft,omitempty"`
	Location models.Location `json:"location"`
	Online   bool            `json:"online"`
}

func (s Session) copy() Session {
	if s.Draft != nil {
		d := *s.Draft
		s.Draft = &d
	}
	return s
}

// Screen is everything a client needs to draw the current view.
type Screen struct {
	Session
	Views   []View   `json:"views"`
	Actions []Action `json:"actions"`
	Data    Visible  `json:"data"`
}

// Router keeps one session per authenticated user and applies the role
// policies to it.
type Router struct {
	mu       sync.Mutex
	policies map[models.UserRole]Policy
	sessions map[string]*Session
}

func NewRouter() *Router {
	r := &Router{
		policies: map[models.UserRole]Policy{},
		sessions: map[string]*Session{},
	}
	for _, p := range Policies() {
		r.policies[p.Role()] = p
	}
	return r
}

func (r *Router) Policy(role models.UserRole) (Policy, error) {
	p, ok := r.policies[role]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errMissingRolePolicy, role)
	}
	return p, nil
}

// Start opens a fresh session on the role's home view, replacing any old one.
func (r *Router) Start(u models.User) (Session, error) {
	p, err := r.Policy(u.Role)
	if err != nil {
		return Session{}, err
	}
	s := &Session{User: u.Public(), View: p.Home(), Location: models.DefaultLocation}
	r.mu.Lock()
	r.sessions[u.UID] = s
	r.mu.Unlock()
	return s.copy(), nil
}

// Ensure returns the user's session, starting one if the process has none.
func (r *Router) Ensure(u models.User) (Session, error) {
	r.mu.Lock()
	s, ok := r.sessions[u.UID]
	r.mu.Unlock()
	if ok {
		return s.copy(), nil
	}
	return r.Start(u)
}

// End drops the session; the user is back on the auth view.
func (r *Router) End(uid string) {
	r.mu.Lock()
	delete(r.sessions, uid)
	r.mu.Unlock()
}

func (r *Router) Get(uid string) (Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[uid]
	if !ok {
		return Session{View: ViewAuth}, ErrNoSession
	}
	return s.copy(), nil
}

func (r *Router) with(uid string, fn func(s *Session, p Policy) error) (Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[uid]
	if !ok {
		return Session{View: ViewAuth}, ErrNoSession
	}
	p, err := r.Policy(s.User.Role)
	if err != nil {
		return Session{}, err
	}
	if err := fn(s, p); err != nil {
		return s.copy(), err
	}
	return s.copy(), nil
}

// Navigate switches the session to v if the role allows it from the current state.
func (r *Router) Navigate(uid string, v View) (Session, error) {
	return r.with(uid, func(s *Session, p Policy) error {
		if !p.Reachable(*s, v) {
			return fmt.Errorf("%w: %s cannot open %s", ErrViewNotAllowed, p.Role(), v)
		}
		s.View = v
		return nil
	})
}

// Allow checks that a is offered on the session's current screen.
func (r *Router) Allow(uid string, a Action, snap store.Snapshot) error {
	if a == ActionLogout {
		_, err := r.Get(uid)
		return err
	}
	_, err := r.with(uid, func(s *Session, p Policy) error {
		for _, offered := range p.Actions(*s, snap) {
			if offered == a {
				return nil
			}
		}
		return fmt.Errorf("%w: %s on %s", ErrActionNotAllowed, a, s.View)
	})
	return err
}

// Render builds the screen for the session's current view.
func (r *Router) Render(uid string, snap store.Snapshot) (Screen, error) {
	var sc Screen
	_, err := r.with(uid, func(s *Session, p Policy) error {
		sc.Session = s.copy()
		for _, v := range p.Views() {
			if p.Reachable(*s, v) {
				sc.Views = append(sc.Views, v)
			}
		}
		sc.Actions = append(p.Actions(*s, snap), ActionLogout)
		sc.Data = p.Visible(*s, snap)
		return nil
	})
	return sc, err
}

// SelectCategory opens a category and drops any draft from a previous one.
func (r *Router) SelectCategory(uid, categoryID string) (Session, error) {
	if _, ok := models.FindCategory(categoryID); !ok {
		return Session{}, fmt.Errorf("%w: %s", ErrUnknownCategory, categoryID)
	}
	return r.with(uid, func(s *Session, _ Policy) error {
		s.Category = categoryID
		s.Draft = nil
		s.View = ViewCategory
		return nil
	})
}

// StartCheckout stores the draft and moves to the checkout view.
func (r *Router) StartCheckout(uid string, d Draft) (Session, error) {
	return r.with(uid, func(s *Session, _ Policy) error {
		s.Draft = &d
		s.View = ViewCheckout
		return nil
	})
}

// FinishCheckout clears the draft after the order was placed.
func (r *Router) FinishCheckout(uid string) (Session, error) {
	return r.with(uid, func(s *Session, _ Policy) error {
		s.Draft = nil
		s.View = ViewDashboard
		return nil
	})
}

// SetLocation confirms a map pin and returns to the dashboard.
func (r *Router) SetLocation(uid string, loc models.Location) (Session, error) {
	return r.with(uid, func(s *Session, _ Policy) error {
		s.Location = loc
		s.View = ViewDashboard
		return nil
	})
}

// SetOnline toggles whether a partner sees the pool. Session-local only.
func (r *Router) SetOnline(uid string, online bool) (Session, error) {
	return r.with(uid, func(s *Session, _ Policy) error {
		s.Online = online
		return nil
	})
}
