package service

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/rizki31/whatsapp-voucher-bot/internal/config"
)

func randomCode(length int) (string, error) {
	code := make([]byte, length)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(config.CodeCharset))))
		if err != nil {
			return "", fmt.Errorf("random int: %w", err)
		}
		code[i] = config.CodeCharset[n.Int64()]
	}
	return string(code), nil
}

// generateRedeemToken produces the one-time receipt token shown after a
// successful redemption. It is a display artifact only: never persisted
// and never checked against future input.
func generateRedeemToken() (string, error) {
	return randomCode(config.RedeemTokenLength)
}
