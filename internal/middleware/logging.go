package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/rizki31/whatsapp-voucher-bot/internal/whatsapp"
)

// Logging returns middleware that logs message processing time.
func Logging() whatsapp.Middleware {
	return func(next whatsapp.HandlerFunc) whatsapp.HandlerFunc {
		return func(ctx context.Context, sender, text string) string {
			start := time.Now()

			reply := next(ctx, sender, text)

			slog.Debug("message processed",
				"sender", sender,
				"replied", reply != "",
				"duration", time.Since(start),
			)
			return reply
		}
	}
}
