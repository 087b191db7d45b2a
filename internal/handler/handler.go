package handler

import (
	"context"
	"strings"

	"github.com/rizki31/whatsapp-voucher-bot/internal/config"
	"github.com/rizki31/whatsapp-voucher-bot/internal/domain"
	"github.com/rizki31/whatsapp-voucher-bot/internal/service"
)

const replyGenericError = "⚠️ Terjadi kesalahan. Silakan coba lagi."

// Handler interprets inbound message text and routes it to the matching
// command. The returned reply is sent back to the sender; an empty reply
// means no message is sent.
type Handler struct {
	cfg            *config.Config
	userService    *service.UserService
	voucherService *service.VoucherService
}

// Deps contains all dependencies required to construct a Handler.
type Deps struct {
	Cfg            *config.Config
	UserService    *service.UserService
	VoucherService *service.VoucherService
}

// New creates a new Handler from the provided dependencies.
func New(deps Deps) *Handler {
	return &Handler{
		cfg:            deps.Cfg,
		userService:    deps.UserService,
		voucherService: deps.VoucherService,
	}
}

// Handle classifies one inbound line. Admin commands are checked first and
// do not require the admin to be a registered user. Everything else needs
// a user record matching the sender's phone; unknown text from a
// registered sender is a silent no-op.
func (h *Handler) Handle(ctx context.Context, sender, text string) string {
	parts := strings.Fields(text)
	keyword := ""
	if len(parts) > 0 {
		keyword = strings.ToLower(parts[0])
	}

	if h.cfg.IsAdmin(sender) {
		switch keyword {
		case "!tambahuser":
			return h.handleAddUser(ctx, parts)
		case "!tambahvoucher":
			return h.handleAddVoucher(ctx, parts)
		}
	}

	user, err := h.userService.FindByPhone(ctx, sender)
	if err != nil {
		if err == domain.ErrUserNotFound {
			if h.cfg.IsAdmin(sender) {
				// Registered-user commands need a user record, which the
				// admin is not required to have.
				return ""
			}
			return "❌ Anda belum terdaftar. Hubungi admin untuk mendaftar."
		}
		return replyGenericError
	}

	switch keyword {
	case "voucher":
		if len(parts) == 1 {
			return h.handleListVouchers(ctx, user)
		}
	case "redeem":
		return h.handleRedeem(ctx, user, parts)
	}

	return ""
}
