package domain

// Voucher is a single-use benefit code. UserID references the owning
// User.UserID; an empty UserID means the voucher is unassigned. The
// reference is by value only, an orphaned UserID is permitted and simply
// makes the voucher unreachable.
type Voucher struct {
	Code         string
	Value        string
	Expiry       string
	UserID       string
	Redeemed     bool
	CreatedDate  string
	RedeemedDate string
}
