package store

import (
	"context"
	"sync"

	"superapp-api/models"
)

// Collection names a persisted slot.
type Collection string

const (
	CollectionSession  Collection = "session-user"
	CollectionOrders   Collection = "order-list"
	CollectionUsers    Collection = "registered-users"
	CollectionProducts Collection = "product-catalog"
)

// AllCollections is the fixed slot order used for loading and change reports.
var AllCollections = []Collection{CollectionSession, CollectionOrders, CollectionUsers, CollectionProducts}

// Snapshot is a copy of the four collections at one point in time.
// Orders are kept most-recent-first.
type Snapshot struct {
	Users    []models.User
	Products []models.Product
	Orders   []models.Order
	Session  *models.User
}

func (s Snapshot) clone() Snapshot {
	out := Snapshot{
		Users:    append([]models.User(nil), s.Users...),
		Products: append([]models.Product(nil), s.Products...),
		Orders:   append([]models.Order(nil), s.Orders...),
	}
	if s.Session != nil {
		u := *s.Session
		out.Session = &u
	}
	return out
}

// Change tells subscribers which collections an update replaced.
type Change struct {
	Collections []Collection
	Snapshot    Snapshot
}

// Has reports whether c was replaced.
func (ch Change) Has(c Collection) bool {
	for _, x := range ch.Collections {
		if x == c {
			return true
		}
	}
	return false
}

type Subscriber interface {
	OnChange(ctx context.Context, ch Change)
}

// SubscriberFunc adapts a function to Subscriber.
type SubscriberFunc func(ctx context.Context, ch Change)

func (f SubscriberFunc) OnChange(ctx context.Context, ch Change) { f(ctx, ch) }

// Store is the application-state container. All mutation goes through
// Update, which applies one change at a time and then notifies subscribers
// while still holding the lock, so they observe changes in commit order.
type Store struct {
	mu   sync.RWMutex
	snap Snapshot
	subs []Subscriber
}

func New(snap Snapshot) *Store {
	return &Store{snap: snap.clone()}
}

func (s *Store) Subscribe(sub Subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, sub)
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.clone()
}

// Update runs fn against a working copy. If fn returns an error nothing is
// applied; otherwise the copy replaces the current state.
func (s *Store) Update(ctx context.Context, fn func(tx *Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &Tx{snap: s.snap.clone(), dirty: map[Collection]bool{}}
	if err := fn(tx); err != nil {
		return err
	}
	if len(tx.dirty) == 0 {
		return nil
	}
	s.snap = tx.snap
	ch := Change{Collections: tx.changed(), Snapshot: s.snap.clone()}
	for _, sub := range s.subs {
		sub.OnChange(ctx, ch)
	}
	return nil
}

// Tx is the mutable view handed to an Update callback.
type Tx struct {
	snap  Snapshot
	dirty map[Collection]bool
}

func (tx *Tx) mark(c Collection) { tx.dirty[c] = true }

func (tx *Tx) changed() []Collection {
	var out []Collection
	for _, c := range AllCollections {
		if tx.dirty[c] {
			out = append(out, c)
		}
	}
	return out
}

func (tx *Tx) Snapshot() Snapshot { return tx.snap }

func (tx *Tx) Users() []models.User       { return tx.snap.Users }
func (tx *Tx) Products() []models.Product { return tx.snap.Products }
func (tx *Tx) Orders() []models.Order     { return tx.snap.Orders }
func (tx *Tx) Session() *models.User      { return tx.snap.Session }

func (tx *Tx) FindUser(uid string) (int, bool) {
	for i, u := range tx.snap.Users {
		if u.UID == uid {
			return i, true
		}
	}
	return -1, false
}

func (tx *Tx) FindUserByEmail(email string) (int, bool) {
	for i, u := range tx.snap.Users {
		if u.Email == email {
			return i, true
		}
	}
	return -1, false
}

func (tx *Tx) FindProduct(id string) (int, bool) {
	for i, p := range tx.snap.Products {
		if p.ID == id {
			return i, true
		}
	}
	return -1, false
}

func (tx *Tx) FindOrder(id string) (int, bool) {
	for i, o := range tx.snap.Orders {
		if o.ID == id {
			return i, true
		}
	}
	return -1, false
}

func (tx *Tx) AppendUser(u models.User) {
	tx.snap.Users = append(tx.snap.Users, u)
	tx.mark(CollectionUsers)
}

func (tx *Tx) PutUser(i int, u models.User) {
	tx.snap.Users[i] = u
	tx.mark(CollectionUsers)
}

func (tx *Tx) AppendProduct(p models.Product) {
	tx.snap.Products = append(tx.snap.Products, p)
	tx.mark(CollectionProducts)
}

func (tx *Tx) PutProduct(i int, p models.Product) {
	tx.snap.Products[i] = p
	tx.mark(CollectionProducts)
}

// PrependOrder puts o at the head of the list.
func (tx *Tx) PrependOrder(o models.Order) {
	tx.snap.Orders = append([]models.Order{o}, tx.snap.Orders...)
	tx.mark(CollectionOrders)
}

func (tx *Tx) PutOrder(i int, o models.Order) {
	tx.snap.Orders[i] = o
	tx.mark(CollectionOrders)
}

func (tx *Tx) SetSession(u *models.User) {
	if u != nil {
		cp := *u
		u = &cp
	}
	tx.snap.Session = u
	tx.mark(CollectionSession)
}
