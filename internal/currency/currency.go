package currency

import (
	"errors"
	"fmt"
	"strings"

	xcurrency "golang.org/x/text/currency"
)

// Code identifies one of the two display currencies the app supports.
type Code string

const (
	EUR Code = "EUR"
	NGN Code = "NGN"
)

// Base is the currency every ledger amount is recorded in.
const Base = EUR

var ErrUnsupported = errors.New("unsupported currency")

// Codes lists the supported currencies, base first.
func Codes() []Code {
	return []Code{EUR, NGN}
}

// Other returns the alternate currency of the pair.
func (c Code) Other() Code {
	if c == NGN {
		return EUR
	}

	return NGN
}

func (c Code) String() string {
	return string(c)
}

// ParseCode validates s as an ISO 4217 code and checks it is one we display.
func ParseCode(s string) (Code, error) {
	unit, err := xcurrency.ParseISO(strings.ToUpper(strings.TrimSpace(s)))
	if err != nil {
		return "", fmt.Errorf("parsing currency %q: %w", s, err)
	}

	code := Code(unit.String())
	for _, c := range Codes() {
		if c == code {
			return code, nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrUnsupported, code)
}
