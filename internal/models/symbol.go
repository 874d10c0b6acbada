package models

import (
	"fmt"
	"strings"

	"github.com/bobmcallan/stockpulse/internal/common"
)

// MaxSymbolLength bounds accepted ticker symbols.
const MaxSymbolLength = 10

// NormalizeSymbol trims and upper-cases raw. Blank, over-long or symbols
// with characters outside A-Z, 0-9, '.' and '-' are ErrInvalidInput.
func NormalizeSymbol(raw string) (string, error) {
	sym := strings.ToUpper(strings.TrimSpace(raw))
	if sym == "" {
		return "", fmt.Errorf("%w: symbol is required", common.ErrInvalidInput)
	}
	if len(sym) > MaxSymbolLength {
		return "", fmt.Errorf("%w: symbol %q exceeds %d characters", common.ErrInvalidInput, sym, MaxSymbolLength)
	}
	for _, r := range sym {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') && r != '.' && r != '-' {
			return "", fmt.Errorf("%w: symbol %q contains invalid character %q", common.ErrInvalidInput, sym, r)
		}
	}
	return sym, nil
}
