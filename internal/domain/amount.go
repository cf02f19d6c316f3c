package domain

import (
	"fmt"
	"math"
	"math/big"
	"math/bits"
	"strconv"

	"github.com/shopspring/decimal"
)

// Amount is an unsigned 128-bit quantity of the smallest unit of an asset.
// All arithmetic is checked; callers decide what an overflow means.
type Amount struct {
	hi, lo uint64
}

// MaxAmount is the largest representable Amount (2^128 - 1).
var MaxAmount = Amount{hi: math.MaxUint64, lo: math.MaxUint64}

var maxUint64Big = new(big.Int).SetUint64(math.MaxUint64)

// NewAmount returns an Amount holding v.
func NewAmount(v uint64) Amount {
	return Amount{lo: v}
}

// ParseAmount parses a base-10 unsigned integer string.
func ParseAmount(s string) (Amount, error) {
	if s == "" {
		return Amount{}, fmt.Errorf("%w: empty amount", ErrInvalidAmount)
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return Amount{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
		}
	}
	if len(s) <= 19 {
		v, err := strconv.ParseUint(s, 10, 64)
		if err == nil {
			return NewAmount(v), nil
		}
	}
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Amount{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return AmountFromBig(n)
}

// MustParseAmount is ParseAmount for constants and tests.
func MustParseAmount(s string) Amount {
	a, err := ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return a
}

// AmountFromBig converts a non-negative big.Int of at most 128 bits.
func AmountFromBig(n *big.Int) (Amount, error) {
	if n.Sign() < 0 || n.BitLen() > 128 {
		return Amount{}, fmt.Errorf("%w: %s out of range", ErrInvalidAmount, n.String())
	}
	lo := new(big.Int).And(n, maxUint64Big).Uint64()
	hi := new(big.Int).Rsh(n, 64).Uint64()
	return Amount{hi: hi, lo: lo}, nil
}

// Big returns the value as a newly allocated big.Int.
func (a Amount) Big() *big.Int {
	n := new(big.Int).SetUint64(a.hi)
	n.Lsh(n, 64)
	return n.Or(n, new(big.Int).SetUint64(a.lo))
}

// IsZero reports whether a == 0.
func (a Amount) IsZero() bool {
	return a.hi == 0 && a.lo == 0
}

// Cmp returns -1, 0 or +1 comparing a with b.
func (a Amount) Cmp(b Amount) int {
	switch {
	case a.hi < b.hi:
		return -1
	case a.hi > b.hi:
		return 1
	case a.lo < b.lo:
		return -1
	case a.lo > b.lo:
		return 1
	}
	return 0
}

// Add returns a+b and false if the sum overflows 128 bits.
func (a Amount) Add(b Amount) (Amount, bool) {
	lo, carry := bits.Add64(a.lo, b.lo, 0)
	hi, carry := bits.Add64(a.hi, b.hi, carry)
	return Amount{hi: hi, lo: lo}, carry == 0
}

// Sub returns a-b and false if b > a.
func (a Amount) Sub(b Amount) (Amount, bool) {
	lo, borrow := bits.Sub64(a.lo, b.lo, 0)
	hi, borrow := bits.Sub64(a.hi, b.hi, borrow)
	return Amount{hi: hi, lo: lo}, borrow == 0
}

// MulUint64 returns a*m and false if the product overflows 128 bits.
func (a Amount) MulUint64(m uint64) (Amount, bool) {
	carryLo, lo := bits.Mul64(a.lo, m)
	overflow, hiLo := bits.Mul64(a.hi, m)
	hi, carry := bits.Add64(hiLo, carryLo, 0)
	return Amount{hi: hi, lo: lo}, overflow == 0 && carry == 0
}

func (a Amount) String() string {
	if a.hi == 0 {
		return strconv.FormatUint(a.lo, 10)
	}
	return a.Big().String()
}

// Decimal scales the amount down by the asset's decimals for display.
func (a Amount) Decimal(decimals int32) decimal.Decimal {
	return decimal.NewFromBigInt(a.Big(), -decimals)
}

// MarshalJSON encodes the amount as a decimal string so no precision is lost
// in JSON number handling.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(a.String())), nil
}

// UnmarshalJSON accepts either a quoted decimal string or a bare integer.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		unq, err := strconv.Unquote(s)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidAmount, err)
		}
		s = unq
	}
	parsed, err := ParseAmount(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
