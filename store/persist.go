package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"superapp-api/models"

	"github.com/sirupsen/logrus"
)

// ErrCorruptSlot is returned by Load when a persisted value cannot be decoded.
var ErrCorruptSlot = errors.New("corrupt persisted slot")

// Load restores the four collections from kv. Users and products that were
// never persisted are seeded with the defaults and written back.
func Load(ctx context.Context, kv KV) (Snapshot, error) {
	var snap Snapshot

	if err := loadSlot(ctx, kv, CollectionUsers, &snap.Users, DefaultUsers); err != nil {
		return Snapshot{}, err
	}
	if err := loadSlot(ctx, kv, CollectionProducts, &snap.Products, DefaultProducts); err != nil {
		return Snapshot{}, err
	}
	if err := loadSlot(ctx, kv, CollectionOrders, &snap.Orders, nil); err != nil {
		return Snapshot{}, err
	}

	raw, ok, err := kv.Get(ctx, string(CollectionSession))
	if err != nil {
		return Snapshot{}, fmt.Errorf("read %s: %w", CollectionSession, err)
	}
	if ok {
		var u models.User
		if err := json.Unmarshal(raw, &u); err != nil {
			return Snapshot{}, fmt.Errorf("%w: %s: %v", ErrCorruptSlot, CollectionSession, err)
		}
		snap.Session = &u
	}
	return snap, nil
}

func loadSlot[T any](ctx context.Context, kv KV, c Collection, dst *[]T, seed func() []T) error {
	raw, ok, err := kv.Get(ctx, string(c))
	if err != nil {
		return fmt.Errorf("read %s: %w", c, err)
	}
	if ok {
		if err := json.Unmarshal(raw, dst); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrCorruptSlot, c, err)
		}
		return nil
	}
	if seed == nil {
		*dst = nil
		return nil
	}
	*dst = seed()
	return writeSlot(ctx, kv, c, *dst)
}

func writeSlot(ctx context.Context, kv KV, c Collection, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c, err)
	}
	if err := kv.Put(ctx, string(c), raw); err != nil {
		return fmt.Errorf("write %s: %w", c, err)
	}
	return nil
}

// Reset removes every slot so the next Load starts from the seed.
func Reset(ctx context.Context, kv KV) error {
	for _, c := range AllCollections {
		if err := kv.Delete(ctx, string(c)); err != nil {
			return fmt.Errorf("delete %s: %w", c, err)
		}
	}
	return nil
}

// Persister mirrors changed collections into kv, one whole slot per
// collection touched by the update.
type Persister struct {
	kv  KV
	log logrus.FieldLogger
}

func NewPersister(kv KV, log logrus.FieldLogger) *Persister {
	return &Persister{kv: kv, log: log}
}

func (p *Persister) OnChange(ctx context.Context, ch Change) {
	for _, c := range ch.Collections {
		if err := p.save(ctx, c, ch.Snapshot); err != nil {
			p.log.WithError(err).WithField("slot", c).Error("persist collection")
			continue
		}
		p.log.WithField("slot", c).Debug("collection persisted")
	}
}

func (p *Persister) save(ctx context.Context, c Collection, snap Snapshot) error {
	switch c {
	case CollectionUsers:
		return writeSlot(ctx, p.kv, c, snap.Users)
	case CollectionProducts:
		return writeSlot(ctx, p.kv, c, snap.Products)
	case CollectionOrders:
		return writeSlot(ctx, p.kv, c, snap.Orders)
	case CollectionSession:
		if snap.Session == nil {
			return p.kv.Delete(ctx, string(c))
		}
		return writeSlot(ctx, p.kv, c, snap.Session)
	}
	return fmt.Errorf("unknown collection %q", c)
}

// Open loads the state from kv and returns a store whose changes are
// persisted back to it.
func Open(ctx context.Context, kv KV, log logrus.FieldLogger) (*Store, error) {
	snap, err := Load(ctx, kv)
	if err != nil {
		return nil, err
	}
	s := New(snap)
	s.Subscribe(NewPersister(kv, log))
	log.WithFields(logrus.Fields{
		"users":    len(snap.Users),
		"products": len(snap.Products),
		"orders":   len(snap.Orders),
	}).Info("entity store loaded")
	return s, nil
}
