package handler

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rizki31/whatsapp-voucher-bot/internal/domain"
)

// handleListVouchers answers the exact command `voucher` with the caller's
// unredeemed vouchers.
func (h *Handler) handleListVouchers(ctx context.Context, user *domain.User) string {
	vouchers, err := h.voucherService.ListActive(ctx, user.UserID)
	if err != nil {
		slog.Error("list vouchers", "user_id", user.UserID, "error", err)
		return replyGenericError
	}

	if len(vouchers) == 0 {
		return "📭 Anda tidak memiliki voucher aktif."
	}

	var sb strings.Builder
	sb.WriteString("🎟️ *DAFTAR VOUCHER ANDA(silahkan pilih salah satu)*\n\n")
	for _, v := range vouchers {
		sb.WriteString(fmt.Sprintf("➤ *%s*: %s\n", v.Code, v.Value))
		sb.WriteString(fmt.Sprintf("   📅 Berlaku hingga: %s\n\n", v.Expiry))
	}
	sb.WriteString("Ketik *redeem KODE_VOUCHER* untuk menukarkan.")
	return sb.String()
}

// handleRedeem processes `redeem <kode>`.
func (h *Handler) handleRedeem(ctx context.Context, user *domain.User, parts []string) string {
	if len(parts) < 2 {
		return "Gunakan: redeem <kode_voucher>"
	}

	voucher, token, err := h.voucherService.Redeem(ctx, parts[1], user.UserID)
	if err != nil {
		switch err {
		case domain.ErrVoucherNotRedeemable:
			return "❌ Voucher tidak valid/sudah digunakan."
		default:
			slog.Error("redeem voucher", "code", parts[1], "user_id", user.UserID, "error", err)
			return replyGenericError
		}
	}

	return fmt.Sprintf(
		"✅ *Voucher berhasil ditukarkan!*\n\n"+
			"🎉 %s\n"+
			"🛒 Kode redeem: *%s*\n"+
			"📅 Berlaku hingga: %s",
		voucher.Value, token, voucher.Expiry)
}
