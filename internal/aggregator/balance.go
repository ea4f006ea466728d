package aggregator

import (
	"strings"

	sdkmath "cosmossdk.io/math"
	"github.com/shopspring/decimal"
)

// BalanceDecimals is the chain's fixed balance precision: 1 PHA = 10^12 units.
const BalanceDecimals = 12

// divisionPrecision is the number of decimal places kept by every ratio.
const divisionPrecision = 32

// si prefixes as used by the chain's balance formatter, indexed from 10^-24.
var siPrefixes = []string{"y", "z", "a", "f", "p", "n", "µ", "m", "", "k", "M", "B", "T", "P", "E", "Z", "Y"}

const siUnitIndex = 8

// ToHuman scales a raw balance down by 10^12 without rounding.
func ToHuman(raw sdkmath.Int) decimal.Decimal {
	if raw.IsNil() {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(raw.BigInt(), -BalanceDecimals)
}

// FormatBalance renders a raw balance the way the chain's formatter does with
// the unit suffix and spaces removed: four truncated decimals and an SI
// prefix, e.g. "1.2340k" for 1234 PHA and "500.0000m" for 0.5 PHA.
func FormatBalance(raw sdkmath.Int) string {
	if raw.IsNil() || raw.IsZero() {
		return "0"
	}

	text := raw.String()
	sign := ""
	if strings.HasPrefix(text, "-") {
		sign = "-"
		text = text[1:]
	}

	// the smallest index reachable with 12 decimals is p, so mid is at least 1
	siIndex := min(siUnitIndex-1+ceilDiv(len(text)-BalanceDecimals, 3), len(siPrefixes)-1)
	power := (siIndex - siUnitIndex) * 3

	mid := len(text) - (BalanceDecimals + power)
	pre := text[:mid]
	post := text[mid:] + "0000"
	post = post[:4]

	return sign + groupThousands(pre) + "." + post + siPrefixes[siIndex]
}

func ceilDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a > 0) == (b > 0) {
		q++
	}
	return q
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

func divOrZero(a, b decimal.Decimal) decimal.Decimal {
	if b.IsZero() {
		return decimal.Zero
	}
	return a.DivRound(b, divisionPrecision)
}

// StakeSupplyRatio is the share of the available token supply that is staked.
// A non-positive supply yields zero.
func StakeSupplyRatio(stakeSum, supply decimal.Decimal) decimal.Decimal {
	if supply.Sign() <= 0 {
		return decimal.Zero
	}
	return stakeSum.DivRound(supply, divisionPrecision)
}
