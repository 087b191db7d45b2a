package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rizki31/whatsapp-voucher-bot/internal/config"
	"github.com/rizki31/whatsapp-voucher-bot/internal/domain"
	"github.com/rizki31/whatsapp-voucher-bot/internal/store"
)

type UserService struct {
	store *store.Store
}

func NewUserService(s *store.Store) *UserService {
	return &UserService{store: s}
}

// Register creates a new user record. The phone must carry the 62 country
// prefix and must not already be registered. The whole check-and-append
// runs inside a single store update, so two near-simultaneous commands
// cannot both register the same phone.
func (s *UserService) Register(ctx context.Context, phone, name string) (*domain.User, error) {
	var created domain.User
	err := s.store.Update(func(snap *store.Snapshot) error {
		if !strings.HasPrefix(phone, "62") {
			return domain.ErrInvalidPhone
		}
		for _, u := range snap.Users {
			if u.Phone == phone {
				return domain.ErrUserExists
			}
		}

		userID, err := generateUniqueUserID(snap.Users)
		if err != nil {
			return err
		}
		created = domain.User{
			Phone:          phone,
			Name:           name,
			UserID:         userID,
			IsAdmin:        false,
			RegisteredDate: time.Now().Format(domain.DateLayout),
		}
		snap.Users = append(snap.Users, created)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *UserService) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	var found *domain.User
	err := s.store.View(func(snap *store.Snapshot) error {
		for _, u := range snap.Users {
			if u.Phone == phone {
				match := u
				found = &match
				return nil
			}
		}
		return domain.ErrUserNotFound
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// generateUniqueUserID draws random IDs until one is free among the loaded
// users. Vouchers reference users by this ID, so a duplicate would silently
// merge two users' vouchers.
func generateUniqueUserID(users []domain.User) (string, error) {
	for i := 0; i < config.UserIDAttempts; i++ {
		code, err := randomCode(config.UserIDLength)
		if err != nil {
			return "", err
		}
		id := config.UserIDPrefix + code
		taken := false
		for _, u := range users {
			if u.UserID == id {
				taken = true
				break
			}
		}
		if !taken {
			return id, nil
		}
	}
	return "", fmt.Errorf("failed to generate unique user id after %d attempts", config.UserIDAttempts)
}
