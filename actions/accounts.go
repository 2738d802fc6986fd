package actions

import (
	"context"
	"fmt"

	"superapp-api/models"
	"superapp-api/store"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const defaultUserName = "User"

type RegisterInput struct {
	Name         string          `json:"name"`
	Email        string          `json:"email" validate:"required"`
	Password     string          `json:"password" validate:"required"`
	Role         models.UserRole `json:"role"`
	Phone        string          `json:"phone"`
	BusinessName string          `json:"businessName"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Register appends a new user when the email is free and makes it the
// current session.
func (s *Service) Register(ctx context.Context, in RegisterInput) (models.User, error) {
	if in.Role == "" {
		in.Role = models.RoleCustomer
	}
	if err := s.check(in); err != nil {
		return models.User{}, err
	}
	if !in.Role.Valid() {
		return models.User{}, fmt.Errorf("%w: unknown role %q", ErrValidation, in.Role)
	}
	if in.Role == models.RoleAdmin {
		return models.User{}, fmt.Errorf("%w: admin accounts cannot be self-registered", ErrValidation)
	}
	if in.Name == "" {
		in.Name = defaultUserName
	}
	if err := sleepCtx(ctx, s.authDelay); err != nil {
		return models.User{}, err
	}

	user := models.User{
		UID:          uuid.NewString(),
		Name:         in.Name,
		Email:        in.Email,
		Password:     in.Password,
		Role:         in.Role,
		Phone:        in.Phone,
		BusinessName: in.BusinessName,
	}
	err := s.store.Update(ctx, func(tx *store.Tx) error {
		if _, taken := tx.FindUserByEmail(in.Email); taken {
			return fmt.Errorf("%s: %w", in.Email, ErrDuplicateEmail)
		}
		tx.AppendUser(user)
		tx.SetSession(&user)
		return nil
	})
	if err != nil {
		return models.User{}, err
	}
	s.log.WithFields(logrus.Fields{"uid": user.UID, "role": user.Role}).Info("user registered")
	return user, nil
}

// Login matches email and password against the registered users.
func (s *Service) Login(ctx context.Context, in LoginInput) (models.User, error) {
	if err := s.check(in); err != nil {
		return models.User{}, err
	}
	if err := sleepCtx(ctx, s.authDelay); err != nil {
		return models.User{}, err
	}

	var found models.User
	err := s.store.Update(ctx, func(tx *store.Tx) error {
		i, ok := tx.FindUserByEmail(in.Email)
		if !ok || tx.Users()[i].Password != in.Password {
			return ErrInvalidCredentials
		}
		found = tx.Users()[i]
		tx.SetSession(&found)
		return nil
	})
	if err != nil {
		return models.User{}, err
	}
	s.log.WithField("uid", found.UID).Info("user logged in")
	return found, nil
}

// Logout forgets the persisted session user when it is uid. Another user's
// later login is left alone.
func (s *Service) Logout(ctx context.Context, uid string) error {
	return s.store.Update(ctx, func(tx *store.Tx) error {
		if tx.Session() == nil || tx.Session().UID != uid {
			return nil
		}
		tx.SetSession(nil)
		return nil
	})
}

// ResetPassword lets an admin overwrite any user's password.
func (s *Service) ResetPassword(ctx context.Context, admin models.User, uid, password string) (models.User, error) {
	if admin.Role != models.RoleAdmin {
		return models.User{}, fmt.Errorf("reset password: %w", ErrForbidden)
	}
	if password == "" {
		return models.User{}, fmt.Errorf("%w: password is required", ErrValidation)
	}
	var updated models.User
	err := s.store.Update(ctx, func(tx *store.Tx) error {
		i, ok := tx.FindUser(uid)
		if !ok {
			return fmt.Errorf("user %s: %w", uid, ErrNotFound)
		}
		updated = tx.Users()[i]
		updated.Password = password
		tx.PutUser(i, updated)
		return nil
	})
	if err != nil {
		return models.User{}, err
	}
	s.log.WithFields(logrus.Fields{"uid": uid, "by": admin.UID}).Info("password reset by admin")
	return updated, nil
}
