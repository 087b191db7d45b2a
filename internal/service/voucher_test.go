package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rizki31/whatsapp-voucher-bot/internal/domain"
	"github.com/rizki31/whatsapp-voucher-bot/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedVoucher appends a voucher record directly, bypassing the service, so
// tests can control ownership and redeemed state.
func seedVoucher(t *testing.T, st *store.Store, v domain.Voucher) {
	t.Helper()
	require.NoError(t, st.Update(func(snap *store.Snapshot) error {
		snap.Vouchers = append(snap.Vouchers, v)
		return nil
	}))
}

func TestVoucherService_Create(t *testing.T) {
	s := NewVoucherService(newTestStore(t))

	voucher, err := s.Create(context.Background(), "diskon10", "10000", "2025-12-31")

	require.NoError(t, err)
	assert.Equal(t, "DISKON10", voucher.Code)
	assert.Equal(t, "10000", voucher.Value)
	assert.Equal(t, "2025-12-31", voucher.Expiry)
	assert.Empty(t, voucher.UserID)
	assert.False(t, voucher.Redeemed)
	assert.Equal(t, time.Now().Format(domain.DateLayout), voucher.CreatedDate)
}

func TestVoucherService_Create_DuplicateCodeCaseInsensitive(t *testing.T) {
	st := newTestStore(t)
	s := NewVoucherService(st)

	_, err := s.Create(context.Background(), "DISKON10", "10000", "2025-12-31")
	require.NoError(t, err)

	_, err = s.Create(context.Background(), "diskon10", "5000", "2026-01-31")
	assert.ErrorIs(t, err, domain.ErrVoucherExists)

	err = st.View(func(snap *store.Snapshot) error {
		assert.Len(t, snap.Vouchers, 1)
		return nil
	})
	assert.NoError(t, err)
}

func TestVoucherService_ListActive(t *testing.T) {
	st := newTestStore(t)
	s := NewVoucherService(st)

	seedVoucher(t, st, domain.Voucher{Code: "MINE1", Value: "a", Expiry: "2025-12-31", UserID: "U0001", CreatedDate: "2025-01-01"})
	seedVoucher(t, st, domain.Voucher{Code: "THEIRS", Value: "b", Expiry: "2025-12-31", UserID: "U0002", CreatedDate: "2025-01-01"})
	seedVoucher(t, st, domain.Voucher{Code: "USED", Value: "c", Expiry: "2025-12-31", UserID: "U0001", Redeemed: true, CreatedDate: "2025-01-01", RedeemedDate: "2025-02-01"})
	seedVoucher(t, st, domain.Voucher{Code: "MINE2", Value: "d", Expiry: "2025-12-31", UserID: "U0001", CreatedDate: "2025-01-02"})
	seedVoucher(t, st, domain.Voucher{Code: "NOBODY", Value: "e", Expiry: "2025-12-31", CreatedDate: "2025-01-02"})

	active, err := s.ListActive(context.Background(), "U0001")

	require.NoError(t, err)
	require.Len(t, active, 2)
	// Storage order, not re-sorted.
	assert.Equal(t, "MINE1", active[0].Code)
	assert.Equal(t, "MINE2", active[1].Code)
}

func TestVoucherService_Redeem(t *testing.T) {
	st := newTestStore(t)
	s := NewVoucherService(st)
	seedVoucher(t, st, domain.Voucher{Code: "DISKON10", Value: "10000", Expiry: "2025-12-31", UserID: "U0001", CreatedDate: "2025-01-01"})

	voucher, token, err := s.Redeem(context.Background(), "diskon10", "U0001")

	require.NoError(t, err)
	assert.Equal(t, "DISKON10", voucher.Code)
	assert.True(t, voucher.Redeemed)
	assert.Equal(t, time.Now().Format(domain.DateLayout), voucher.RedeemedDate)
	assert.Regexp(t, `^[A-Z0-9]{6}$`, token)

	err = st.View(func(snap *store.Snapshot) error {
		require.Len(t, snap.Vouchers, 1)
		assert.True(t, snap.Vouchers[0].Redeemed)
		assert.NotEmpty(t, snap.Vouchers[0].RedeemedDate)
		return nil
	})
	assert.NoError(t, err)
}

func TestVoucherService_Redeem_Twice(t *testing.T) {
	st := newTestStore(t)
	s := NewVoucherService(st)
	seedVoucher(t, st, domain.Voucher{Code: "DISKON10", Value: "10000", Expiry: "2025-12-31", UserID: "U0001", CreatedDate: "2025-01-01"})

	_, _, err := s.Redeem(context.Background(), "DISKON10", "U0001")
	require.NoError(t, err)

	_, _, err = s.Redeem(context.Background(), "DISKON10", "U0001")
	assert.ErrorIs(t, err, domain.ErrVoucherNotRedeemable)
}

func TestVoucherService_Redeem_ForeignVoucher(t *testing.T) {
	st := newTestStore(t)
	s := NewVoucherService(st)
	seedVoucher(t, st, domain.Voucher{Code: "DISKON10", Value: "10000", Expiry: "2025-12-31", UserID: "U0001", CreatedDate: "2025-01-01"})

	// Someone else's voucher is indistinguishable from a missing one.
	_, _, err := s.Redeem(context.Background(), "DISKON10", "U0002")
	assert.ErrorIs(t, err, domain.ErrVoucherNotRedeemable)

	_, _, err = s.Redeem(context.Background(), "NOSUCH", "U0001")
	assert.ErrorIs(t, err, domain.ErrVoucherNotRedeemable)
}

func TestVoucherService_Redeem_Concurrent(t *testing.T) {
	st := newTestStore(t)
	s := NewVoucherService(st)
	seedVoucher(t, st, domain.Voucher{Code: "DISKON10", Value: "10000", Expiry: "2025-12-31", UserID: "U0001", CreatedDate: "2025-01-01"})

	const attempts = 8
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, errs[i] = s.Redeem(context.Background(), "DISKON10", "U0001")
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
		} else {
			assert.ErrorIs(t, err, domain.ErrVoucherNotRedeemable)
		}
	}
	assert.Equal(t, 1, successes)
}
