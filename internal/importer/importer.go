package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	enc "github.com/MrJamesThe3rd/pocket/internal/encoding"
	"github.com/MrJamesThe3rd/pocket/internal/ledger"
)

var ErrUnknownFormat = errors.New("no matching statement format found")

// Parser reads statement CSV files and produces ledger entries. It
// auto-detects the format by matching column headers against known
// profiles and decodes legacy charsets to UTF-8 first.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]ledger.CreateParams, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	profile, cols, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, ErrUnknownFormat
	}

	return parseRows(profile, cols, rows[headerIdx+1:], headerIdx)
}

// colIndex maps column names to their index in the row.
type colIndex map[string]int

// detectProfile scans rows for a header that matches a known profile.
// Returns the matched profile, column index map, and header row index.
func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.TrimSpace(cell)
			if name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows turns data rows into signed ledger entries; debits are negative.
// Rows without a parseable date or a non-zero amount (footers, balances)
// are skipped. Errors name the 1-based line of the statement.
func parseRows(p *Profile, cols colIndex, rows [][]string, headerIdx int) ([]ledger.CreateParams, error) {
	dateIdx := cols[p.DateCol]
	descIdx := cols[p.DescCol]

	var out []ledger.CreateParams

	for i, row := range rows {
		rowNum := headerIdx + i + 2

		date, ok := parseDate(row, dateIdx, p.DateLayout)
		if !ok {
			continue
		}

		desc := cellValue(row, descIdx)
		if desc == "" {
			return nil, fmt.Errorf("row %d: missing description", rowNum)
		}

		amount, ok := rowAmount(p, cols, row)
		if !ok {
			continue
		}

		out = append(out, ledger.CreateParams{
			Amount: amount,
			Title:  desc,
			Date:   date,
		})
	}

	return out, nil
}

func parseDate(row []string, idx int, layout string) (time.Time, bool) {
	s := cellValue(row, idx)
	if s == "" {
		return time.Time{}, false
	}

	t, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, false
	}

	return t, true
}

func rowAmount(p *Profile, cols colIndex, row []string) (decimal.Decimal, bool) {
	switch p.AmountMode {
	case amountSingle:
		return nonZero(cellValue(row, cols[p.AmountCol]), p.Numbers)
	case amountSplit:
		if d, ok := nonZero(cellValue(row, cols[p.DebitCol]), p.Numbers); ok {
			return d.Abs().Neg(), true
		}

		if d, ok := nonZero(cellValue(row, cols[p.CreditCol]), p.Numbers); ok {
			return d.Abs(), true
		}
	}

	return decimal.Decimal{}, false
}

func nonZero(s string, style numberStyle) (decimal.Decimal, bool) {
	if s == "" {
		return decimal.Decimal{}, false
	}

	d, err := parseAmount(s, style)
	if err != nil || d.IsZero() {
		return decimal.Decimal{}, false
	}

	return d, true
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
