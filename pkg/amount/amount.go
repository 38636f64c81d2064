// Package amount converts between raw on-chain integer amounts and
// human-readable decimal strings. Every chain reports balances and fees as
// integers in the asset's smallest unit; the decimals value of the asset
// decides where the point goes.
package amount

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// FromRaw converts a raw integer amount into a decimal string using the
// asset's decimal precision. FromRaw(9_000_000, 6) == "9".
func FromRaw(raw *big.Int, decimals int32) string {
	if raw == nil {
		return Zero()
	}
	return decimal.NewFromBigInt(raw, -decimals).String()
}

// ToRaw converts a decimal string back into the raw integer amount. The value
// must not carry more fractional digits than the asset supports.
func ToRaw(value string, decimals int32) (*big.Int, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return nil, fmt.Errorf("invalid decimal amount %q: %w", value, err)
	}

	shifted := d.Shift(decimals)
	if !shifted.IsInteger() {
		return nil, fmt.Errorf("amount %q exceeds %d decimal places", value, decimals)
	}

	return shifted.BigInt(), nil
}

// Zero returns the decimal zero value. Used for holdings the account never
// opted into.
func Zero() string {
	return decimal.Zero.String()
}
