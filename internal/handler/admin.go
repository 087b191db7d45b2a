package handler

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rizki31/whatsapp-voucher-bot/internal/domain"
)

// handleAddUser processes `!tambahuser <nomor> <nama>`. The remaining
// tokens form the display name.
func (h *Handler) handleAddUser(ctx context.Context, parts []string) string {
	if len(parts) < 3 {
		return "Gunakan: !tambahuser <nomor> <nama>"
	}

	phone := parts[1]
	name := strings.Join(parts[2:], " ")

	user, err := h.userService.Register(ctx, phone, name)
	if err != nil {
		switch err {
		case domain.ErrInvalidPhone:
			return "❌ Format nomor salah. Gunakan 62xxxxxxxxxx"
		case domain.ErrUserExists:
			return "❌ User sudah terdaftar"
		default:
			slog.Error("register user", "phone", phone, "error", err)
			return replyGenericError
		}
	}

	return fmt.Sprintf("✅ User %s (%s) berhasil ditambahkan!", user.Name, user.Phone)
}

// handleAddVoucher processes `!tambahvoucher <kode> <nilai> <expiry>`.
func (h *Handler) handleAddVoucher(ctx context.Context, parts []string) string {
	if len(parts) < 4 {
		return "Gunakan: !tambahvoucher <kode> <nilai> <expiry>"
	}

	voucher, err := h.voucherService.Create(ctx, parts[1], parts[2], parts[3])
	if err != nil {
		switch err {
		case domain.ErrVoucherExists:
			return "❌ Kode voucher sudah ada"
		default:
			slog.Error("create voucher", "code", parts[1], "error", err)
			return replyGenericError
		}
	}

	return fmt.Sprintf("✅ Voucher %s berhasil dibuat!\nNilai: %s\nExpiry: %s",
		voucher.Code, voucher.Value, voucher.Expiry)
}
