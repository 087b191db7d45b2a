package store

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/rizki31/whatsapp-voucher-bot/internal/domain"
	"github.com/xuri/excelize/v2"
)

const (
	defaultSheet  = "Sheet1"
	usersSheet    = "users"
	vouchersSheet = "vouchers"
)

var (
	userHeader    = []string{"phone", "name", "userId", "isAdmin", "registeredDate"}
	voucherHeader = []string{"code", "value", "expiry", "userId", "redeemed", "createdDate", "redeemedDate"}
)

// dataRows returns the data rows of a sheet, each padded to width so that
// trailing empty cells dropped by the reader do not shift fields.
func dataRows(f *excelize.File, sheet string) [][]string {
	rows, err := f.GetRows(sheet)
	if err != nil {
		slog.Warn("sheet not readable, treating as empty", "sheet", sheet, "error", err)
		return nil
	}
	if len(rows) <= 1 {
		return nil
	}

	width := len(userHeader)
	if sheet == vouchersSheet {
		width = len(voucherHeader)
	}
	out := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		for len(row) < width {
			row = append(row, "")
		}
		out = append(out, row)
	}
	return out
}

func decodeUser(row []string) (domain.User, bool) {
	if row[0] == "" {
		return domain.User{}, false
	}
	isAdmin, _ := strconv.ParseBool(row[3])
	return domain.User{
		Phone:          row[0],
		Name:           row[1],
		UserID:         row[2],
		IsAdmin:        isAdmin,
		RegisteredDate: row[4],
	}, true
}

func decodeVoucher(row []string) (domain.Voucher, bool) {
	if row[0] == "" {
		return domain.Voucher{}, false
	}
	redeemed, _ := strconv.ParseBool(row[4])
	return domain.Voucher{
		Code:         row[0],
		Value:        row[1],
		Expiry:       row[2],
		UserID:       row[3],
		Redeemed:     redeemed,
		CreatedDate:  row[5],
		RedeemedDate: row[6],
	}, true
}

func writeUsers(f *excelize.File, users []domain.User) error {
	if _, err := f.NewSheet(usersSheet); err != nil {
		return fmt.Errorf("create users sheet: %w", err)
	}
	if err := writeRow(f, usersSheet, 1, userHeader); err != nil {
		return err
	}
	for i, u := range users {
		row := []string{u.Phone, u.Name, u.UserID, strconv.FormatBool(u.IsAdmin), u.RegisteredDate}
		if err := writeRow(f, usersSheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeVouchers(f *excelize.File, vouchers []domain.Voucher) error {
	if _, err := f.NewSheet(vouchersSheet); err != nil {
		return fmt.Errorf("create vouchers sheet: %w", err)
	}
	if err := writeRow(f, vouchersSheet, 1, voucherHeader); err != nil {
		return err
	}
	for i, v := range vouchers {
		row := []string{v.Code, v.Value, v.Expiry, v.UserID, strconv.FormatBool(v.Redeemed), v.CreatedDate, v.RedeemedDate}
		if err := writeRow(f, vouchersSheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

// writeRow writes every cell as a string so phone numbers and codes keep
// their exact text form through a round trip.
func writeRow(f *excelize.File, sheet string, rowNum int, cells []string) error {
	values := make([]interface{}, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", rowNum), &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, rowNum, err)
	}
	return nil
}
