package service

import (
	"context"
	"strings"
	"time"

	"github.com/rizki31/whatsapp-voucher-bot/internal/domain"
	"github.com/rizki31/whatsapp-voucher-bot/internal/store"
)

type VoucherService struct {
	store *store.Store
}

func NewVoucherService(s *store.Store) *VoucherService {
	return &VoucherService{store: s}
}

// Create adds a new unassigned voucher. Codes are stored upper-cased and
// must be unique case-insensitively.
func (s *VoucherService) Create(ctx context.Context, code, value, expiry string) (*domain.Voucher, error) {
	code = strings.ToUpper(strings.TrimSpace(code))

	var created domain.Voucher
	err := s.store.Update(func(snap *store.Snapshot) error {
		for _, v := range snap.Vouchers {
			if strings.EqualFold(v.Code, code) {
				return domain.ErrVoucherExists
			}
		}
		created = domain.Voucher{
			Code:        code,
			Value:       value,
			Expiry:      expiry,
			Redeemed:    false,
			CreatedDate: time.Now().Format(domain.DateLayout),
		}
		snap.Vouchers = append(snap.Vouchers, created)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// ListActive returns the caller's unredeemed vouchers in storage order.
// Expiry is advisory and not checked here.
func (s *VoucherService) ListActive(ctx context.Context, userID string) ([]domain.Voucher, error) {
	var active []domain.Voucher
	err := s.store.View(func(snap *store.Snapshot) error {
		for _, v := range snap.Vouchers {
			if v.UserID == userID && !v.Redeemed {
				active = append(active, v)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return active, nil
}

// Redeem marks the voucher consumed and returns it together with a fresh
// receipt token. The lookup requires code, owner and unredeemed state to
// match at once; a missing, foreign or already-redeemed code all yield the
// same ErrVoucherNotRedeemable, so the reply leaks nothing about other
// users' vouchers. Find-and-mark runs inside one store update, so of two
// concurrent redemptions of the same code exactly one succeeds.
func (s *VoucherService) Redeem(ctx context.Context, code, userID string) (*domain.Voucher, string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))

	var redeemed domain.Voucher
	err := s.store.Update(func(snap *store.Snapshot) error {
		for i, v := range snap.Vouchers {
			if v.Code == code && v.UserID == userID && !v.Redeemed {
				snap.Vouchers[i].Redeemed = true
				snap.Vouchers[i].RedeemedDate = time.Now().Format(domain.DateLayout)
				redeemed = snap.Vouchers[i]
				return nil
			}
		}
		return domain.ErrVoucherNotRedeemable
	})
	if err != nil {
		return nil, "", err
	}

	token, err := generateRedeemToken()
	if err != nil {
		return nil, "", err
	}
	return &redeemed, token, nil
}
