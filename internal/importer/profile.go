package importer

// amountMode determines how amounts are extracted from a row.
type amountMode int

const (
	// amountSingle means one signed column (e.g. "Montante" with value "-10,00").
	amountSingle amountMode = iota
	// amountSplit means separate debit and credit columns (e.g. "Débito"/"Crédito").
	amountSplit
)

// numberStyle is the decimal convention of the amount columns.
type numberStyle int

const (
	// numberPlain is "1234.56".
	numberPlain numberStyle = iota
	// numberEuropean is "1.234,56".
	numberEuropean
)

// Profile describes the column layout of a statement CSV.
// Adding a new format is just adding a new Profile to the profiles slice.
type Profile struct {
	Name       string
	DateCol    string
	DateLayout string
	DescCol    string
	AmountMode amountMode
	Numbers    numberStyle
	AmountCol  string // used when AmountMode == amountSingle
	DebitCol   string // used when AmountMode == amountSplit
	CreditCol  string // used when AmountMode == amountSplit
}

// requiredCols returns the column names that must be present for this profile to match.
func (p Profile) requiredCols() []string {
	cols := []string{p.DateCol, p.DescCol}

	switch p.AmountMode {
	case amountSingle:
		cols = append(cols, p.AmountCol)
	case amountSplit:
		cols = append(cols, p.DebitCol, p.CreditCol)
	}

	return cols
}

// profiles is the ordered list of statement formats tried during auto-detection.
// More specific profiles should come first to avoid false matches.
var profiles = []Profile{
	{
		Name:       "pocket",
		DateCol:    "Date",
		DateLayout: "2006-01-02",
		DescCol:    "Title",
		AmountMode: amountSingle,
		Numbers:    numberPlain,
		AmountCol:  "Amount EUR",
	},
	{
		Name:       "cartão",
		DateCol:    "Data",
		DateLayout: "02-01-2006",
		DescCol:    "Descrição",
		AmountMode: amountSplit,
		Numbers:    numberEuropean,
		DebitCol:   "Débito",
		CreditCol:  "Crédito",
	},
	{
		Name:       "conta",
		DateCol:    "Data mov.",
		DateLayout: "02-01-2006",
		DescCol:    "Descrição",
		AmountMode: amountSingle,
		Numbers:    numberEuropean,
		AmountCol:  "Montante",
	},
}
