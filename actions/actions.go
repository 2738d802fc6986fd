// Package actions holds every state-changing operation of the app. Each
// action validates its input, then applies one atomic store update.
package actions

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"superapp-api/models"
	"superapp-api/store"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Service struct {
	store     *store.Store
	validate  *validator.Validate
	log       logrus.FieldLogger
	now       func() time.Time
	authDelay time.Duration
}

type Option func(*Service)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithAuthDelay adds a simulated network delay to login and registration.
func WithAuthDelay(d time.Duration) Option {
	return func(s *Service) { s.authDelay = d }
}

func New(st *store.Store, log logrus.FieldLogger, opts ...Option) *Service {
	s := &Service{
		store:    st,
		validate: NewValidator(),
		log:      log,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewValidator returns a validator that reports fields by their JSON names.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

func (s *Service) check(in any) error {
	err := s.validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	msgs := make([]string, len(verrs))
	for i, fe := range verrs {
		if fe.Tag() == "required" {
			msgs[i] = fe.Field() + " is required"
		} else {
			msgs[i] = fmt.Sprintf("%s must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param())
		}
	}
	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(msgs, "; "))
}

// User returns the registered user with the given uid.
func (s *Service) User(uid string) (models.User, error) {
	for _, u := range s.store.Snapshot().Users {
		if u.UID == uid {
			return u, nil
		}
	}
	return models.User{}, fmt.Errorf("user %s: %w", uid, ErrNotFound)
}

// stamp returns a timestamp strictly after prev.
func stamp(prev, now time.Time) time.Time {
	if !now.After(prev) {
		return prev.Add(time.Millisecond)
	}
	return now
}

func shortID(n int) string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:n]
}

func newOrderID(tx *store.Tx) string {
	for {
		id := "ORD-" + strings.ToUpper(shortID(5))
		if _, taken := tx.FindOrder(id); !taken {
			return id
		}
	}
}

func newProductID(tx *store.Tx) string {
	for {
		id := "p-" + shortID(8)
		if _, taken := tx.FindProduct(id); !taken {
			return id
		}
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
