package adapters

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"claims-dashboard/internal/core/logger"
	"claims-dashboard/internal/features/claims/domain"

	"go.uber.org/zap"
)

// Column layout of the claims registry sheet:
// 0: claim number, 1: status, 2: recorded-at timestamp, 3: email,
// 4: claim date, 5: account number, 6: service, 7: company,
// 8: needs replacement, 9: estimated delivery, 10: claim origin,
// 11: provider name, 12: warehouse, 13: description, 14: reason.
const (
	colClaimNumber = iota
	colStatus
	colRecordedAt
	colEmail
	colClaimDate
	colAccountNumber
	colService
	colCompany
	colNeedsReplacement
	colEstimatedDelivery
	colClaimOrigin
	colProviderName
	colWarehouse
	colDescription
	colReason
)

// The configured range starts at sheet row 2, below the header.
const sheetRowOffset = 2

var (
	errEmptyRow       = errors.New("row is empty")
	errBadClaimNumber = errors.New("claim number is not an integer")
)

// now is swapped in tests to pin default timestamps.
var now = time.Now

// MapRows converts raw sheet rows into normalized claims, preserving row
// order. Empty rows are dropped silently; rows without a parseable integer
// claim number are dropped and logged with their sheet position, since an
// invalid number would collide as a record key. Returns the claims and the
// number of dropped non-empty rows.
func MapRows(rows [][]string) ([]domain.Claim, int) {
	claims := make([]domain.Claim, 0, len(rows))
	dropped := 0

	for i, row := range rows {
		claim, err := mapRow(row)
		if err != nil {
			if !errors.Is(err, errEmptyRow) {
				dropped++
				logger.Get().Warn("Dropping malformed sheet row",
					zap.Int("sheet_row", i+sheetRowOffset),
					zap.Error(err),
				)
			}
			continue
		}
		claims = append(claims, claim)
	}

	return claims, dropped
}

// mapRow extracts one claim from a raw row, applying per-field defaulting.
// Defaulting is independent per field.
func mapRow(row []string) (domain.Claim, error) {
	empty := true
	for _, c := range row {
		if c != "" {
			empty = false
			break
		}
	}
	if len(row) == 0 || empty {
		return domain.Claim{}, errEmptyRow
	}

	number, err := strconv.Atoi(strings.TrimSpace(cell(row, colClaimNumber)))
	if err != nil {
		return domain.Claim{}, errBadClaimNumber
	}

	return domain.Claim{
		ClaimNumber:       number,
		Status:            domain.ParseStatus(cell(row, colStatus)),
		RecordedAt:        orDefault(cell(row, colRecordedAt), now().UTC().Format(time.RFC3339)),
		CustomerEmail:     orDefault(cell(row, colEmail), domain.DefaultNA),
		ClaimDate:         orDefault(cell(row, colClaimDate), now().UTC().Format("2006-01-02")),
		AccountNumber:     orDefault(cell(row, colAccountNumber), domain.DefaultNA),
		Service:           orDefault(cell(row, colService), domain.DefaultNA),
		Company:           orDefault(cell(row, colCompany), domain.DefaultNA),
		NeedsReplacement:  parseNeedsReplacement(cell(row, colNeedsReplacement)),
		EstimatedDelivery: cell(row, colEstimatedDelivery),
		ClaimOrigin:       orDefault(cell(row, colClaimOrigin), domain.DefaultNA),
		ProviderName:      orDefault(cell(row, colProviderName), domain.DefaultNA),
		Warehouse:         orDefault(cell(row, colWarehouse), domain.DefaultNA),
		Description:       orDefault(cell(row, colDescription), domain.DefaultDescription),
		Reason:            orDefault(cell(row, colReason), domain.DefaultReason),
	}, nil
}

// parseNeedsReplacement is true only for "SI" or "SÍ" after uppercasing.
// The accent variant is an explicit dual check, not generic normalization.
func parseNeedsReplacement(raw string) bool {
	upper := strings.ToUpper(raw)
	return upper == "SI" || upper == "SÍ"
}

// cell reads a column tolerantly: columns beyond the row's length are empty.
func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return row[i]
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
