package middleware

import (
	"context"
	"log/slog"
	"runtime/debug"

	"github.com/rizki31/whatsapp-voucher-bot/internal/whatsapp"
)

const genericErrorReply = "⚠️ Terjadi kesalahan. Silakan coba lagi."

// Recover returns middleware that recovers from panics so a single bad
// command never takes down the message loop. The sender still gets the
// generic failure reply.
func Recover() whatsapp.Middleware {
	return func(next whatsapp.HandlerFunc) whatsapp.HandlerFunc {
		return func(ctx context.Context, sender, text string) (reply string) {
			defer func() {
				if r := recover(); r != nil {
					slog.Error("panic recovered in handler",
						"panic", r,
						"stack", string(debug.Stack()),
					)
					reply = genericErrorReply
				}
			}()
			return next(ctx, sender, text)
		}
	}
}
