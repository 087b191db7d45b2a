package domain

import "errors"

var (
	ErrInvalidPhone         = errors.New("phone must start with country code 62")
	ErrUserExists           = errors.New("user already registered")
	ErrUserNotFound         = errors.New("user not found")
	ErrVoucherExists        = errors.New("voucher code already exists")
	ErrVoucherNotRedeemable = errors.New("voucher not found or already redeemed")
)
