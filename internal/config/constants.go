package config

const (
	// User ID generation
	UserIDPrefix   = "U"
	UserIDLength   = 4
	UserIDAttempts = 10

	// Redemption receipt token
	RedeemTokenLength = 6

	// Charset for generated identifiers and tokens
	CodeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)
