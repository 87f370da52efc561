// Package frac implements exact rational numbers for note lengths and onsets.
package frac

import (
	"fmt"
	"math"
	"math/big"
	"math/bits"
	"strings"

	"github.com/pkg/errors"
)

// Frac is a normalized fraction. The zero value is 0.
type Frac struct {
	num int64
	den int64
}

var (
	Zero = Frac{0, 1}
	One  = Frac{1, 1}
)

// Parsed values are bounded so that sums and products of note lengths stay
// exact in int64.
const (
	MaxDen   = 1 << 20
	MaxWhole = 1 << 20
)

var (
	ErrParse = errors.New("frac: invalid fraction")
	ErrRange = errors.New("frac: fraction out of range")
)

func gcd(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// New returns num/den in lowest terms. It panics if den is zero.
func New(num, den int64) Frac {
	if den == 0 {
		panic("frac: zero denominator")
	}
	if den < 0 {
		num, den = -num, -den
	}
	if num == 0 {
		return Frac{0, 1}
	}
	g := gcd(num, den)
	return Frac{num / g, den / g}
}

// Int returns n/1.
func Int(n int64) Frac {
	return Frac{n, 1}
}

func (f Frac) norm() Frac {
	if f.den == 0 {
		return Frac{0, 1}
	}
	return f
}

func (f Frac) Num() int64 { return f.norm().num }
func (f Frac) Den() int64 { return f.norm().den }

// mul multiplies a and b, reporting whether the product fits in int64.
func mul(a, b int64) (int64, bool) {
	neg := (a < 0) != (b < 0)
	hi, lo := bits.Mul64(abs(a), abs(b))
	if hi != 0 || lo > math.MaxInt64 {
		return 0, false
	}
	if neg {
		return -int64(lo), true
	}
	return int64(lo), true
}

func abs(a int64) uint64 {
	if a < 0 {
		return uint64(-a)
	}
	return uint64(a)
}

// fromBig converts r. When r does not fit it is truncated to the finest
// power-of-two denominator that keeps the numerator in int64.
func fromBig(r *big.Rat) Frac {
	if r.Num().IsInt64() && r.Denom().IsInt64() {
		return New(r.Num().Int64(), r.Denom().Int64())
	}
	whole := new(big.Int).Quo(new(big.Int).Abs(r.Num()), r.Denom())
	shift := 62 - whole.BitLen()
	if shift < 0 {
		if r.Sign() < 0 {
			return Int(math.MinInt64 + 1)
		}
		return Int(math.MaxInt64)
	}
	scaled := new(big.Int).Lsh(r.Num(), uint(shift))
	scaled.Quo(scaled, r.Denom())
	return New(scaled.Int64(), int64(1)<<shift)
}

func (f Frac) rat() *big.Rat {
	f = f.norm()
	return big.NewRat(f.num, f.den)
}

// Add works over the least common denominator. Results that overflow int64
// are computed exactly and then rounded by fromBig.
func (f Frac) Add(g Frac) Frac {
	f, g = f.norm(), g.norm()
	k := gcd(f.den, g.den)
	fs, gs := g.den/k, f.den/k
	den, ok1 := mul(f.den, fs)
	a, ok2 := mul(f.num, fs)
	b, ok3 := mul(g.num, gs)
	sum := a + b
	overflow := (a > 0 && b > 0 && sum < 0) || (a < 0 && b < 0 && sum >= 0)
	if ok1 && ok2 && ok3 && !overflow {
		return New(sum, den)
	}
	return fromBig(new(big.Rat).Add(f.rat(), g.rat()))
}

func (f Frac) Sub(g Frac) Frac {
	return f.Add(g.Neg())
}

// Mul cross-reduces before multiplying; see Add for overflow.
func (f Frac) Mul(g Frac) Frac {
	f, g = f.norm(), g.norm()
	if f.num == 0 || g.num == 0 {
		return Zero
	}
	a, b := gcd(f.num, g.den), gcd(g.num, f.den)
	num, ok1 := mul(f.num/a, g.num/b)
	den, ok2 := mul(f.den/b, g.den/a)
	if ok1 && ok2 {
		return New(num, den)
	}
	return fromBig(new(big.Rat).Mul(f.rat(), g.rat()))
}

// Div panics when g is zero.
func (f Frac) Div(g Frac) Frac {
	g = g.norm()
	switch {
	case g.num == 0:
		panic("frac: division by zero")
	case g.num < 0:
		return f.Mul(Frac{-g.den, -g.num})
	}
	return f.Mul(Frac{g.den, g.num})
}

func (f Frac) Neg() Frac {
	f = f.norm()
	return Frac{-f.num, f.den}
}

func (f Frac) Abs() Frac {
	if f.Sign() < 0 {
		return f.Neg()
	}
	return f.norm()
}

// Cmp returns -1, 0 or +1.
func (f Frac) Cmp(g Frac) int {
	f, g = f.norm(), g.norm()
	l, ok1 := mul(f.num, g.den)
	r, ok2 := mul(g.num, f.den)
	if !ok1 || !ok2 {
		return f.rat().Cmp(g.rat())
	}
	switch {
	case l < r:
		return -1
	case l > r:
		return 1
	}
	return 0
}

func (f Frac) Eq(g Frac) bool   { return f.Cmp(g) == 0 }
func (f Frac) Less(g Frac) bool { return f.Cmp(g) < 0 }
func (f Frac) LessEq(g Frac) bool {
	return f.Cmp(g) <= 0
}

func (f Frac) Sign() int {
	f = f.norm()
	switch {
	case f.num < 0:
		return -1
	case f.num > 0:
		return 1
	}
	return 0
}

func (f Frac) IsZero() bool { return f.norm().num == 0 }

func Min(a, b Frac) Frac {
	if b.Less(a) {
		return b
	}
	return a
}

func Max(a, b Frac) Frac {
	if a.Less(b) {
		return b
	}
	return a
}

// Round snaps f to the nearest multiple of 1/den, ties rounding up.
func (f Frac) Round(den int64) Frac {
	f = f.norm()
	scaled := f.num * den
	q := scaled / f.den
	r := scaled % f.den
	if r < 0 {
		q--
		r += f.den
	}
	if 2*r >= f.den {
		q++
	}
	return New(q, den)
}

func (f Frac) Float64() float64 {
	f = f.norm()
	return float64(f.num) / float64(f.den)
}

func (f Frac) String() string {
	f = f.norm()
	if f.den == 1 {
		return fmt.Sprintf("%d", f.num)
	}
	return fmt.Sprintf("%d/%d", f.num, f.den)
}

// Parse accepts "n/d", integers and finite decimals such as "0.375". The
// reduced denominator may not exceed MaxDen nor the magnitude MaxWhole.
func Parse(s string) (Frac, error) {
	s = strings.TrimSpace(s)
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return Zero, errors.Wrapf(ErrParse, "%q", s)
	}
	if r.Denom().Cmp(big.NewInt(MaxDen)) > 0 || new(big.Rat).Abs(r).Cmp(big.NewRat(MaxWhole, 1)) > 0 {
		return Zero, errors.Wrapf(ErrRange, "%q", s)
	}
	return New(r.Num().Int64(), r.Denom().Int64()), nil
}

// MustParse is Parse for literals in tests and tables.
func MustParse(s string) Frac {
	f, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return f
}

func (f Frac) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

func (f *Frac) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// UnmarshalJSON also accepts bare JSON numbers.
func (f *Frac) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	return f.UnmarshalText([]byte(s))
}
