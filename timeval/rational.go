package timeval

// Rational is the dense Time instantiation: an exact fraction num/den,
// used where sub-integer arrival/cost windows matter. The zero value is
// a valid zero time: a Den of 0 is read as 1, so generic code that
// starts from Zero[Rational]() behaves correctly. Infinite marks the
// saturating sentinel; when Infinite is set, Num/Den are ignored.
type Rational struct {
	Num      int64
	Den      int64
	Infinite bool
}

// den returns the effective denominator, mapping the zero value's 0 to 1.
func (r Rational) den() int64 {
	if r.Den == 0 {
		return 1
	}
	return r.Den
}

// NewRational builds a reduced Rational equal to num/den. den must be > 0.
func NewRational(num, den int64) Rational {
	if den <= 0 {
		panic("timeval: Rational denominator must be positive")
	}
	g := gcd(abs64(num), den)
	if g == 0 {
		g = 1
	}
	return Rational{Num: num / g, Den: den / g}
}

// RationalFromInt lifts a whole number into Rational.
func RationalFromInt(n int64) Rational {
	return Rational{Num: n, Den: 1}
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func abs64(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

// Add returns r+other, saturating once either side is infinite.
func (r Rational) Add(other Rational) Rational {
	if r.Infinite || other.Infinite {
		return Rational{Infinite: true}
	}
	return NewRational(r.Num*other.den()+other.Num*r.den(), r.den()*other.den())
}

// Sub returns r-other. Callers are responsible for clamping negative
// results where the domain requires non-negative durations.
func (r Rational) Sub(other Rational) Rational {
	if r.Infinite {
		return Rational{Infinite: true}
	}
	return NewRational(r.Num*other.den()-other.Num*r.den(), r.den()*other.den())
}

// Compare returns -1, 0, or +1 as r is less than, equal to, or greater than other.
func (r Rational) Compare(other Rational) int {
	if r.Infinite && other.Infinite {
		return 0
	}
	if r.Infinite {
		return 1
	}
	if other.Infinite {
		return -1
	}
	lhs := r.Num * other.den()
	rhs := other.Num * r.den()
	switch {
	case lhs < rhs:
		return -1
	case lhs > rhs:
		return 1
	default:
		return 0
	}
}

// Infinity returns the saturating infinity sentinel for Rational.
func (r Rational) Infinity() Rational {
	return Rational{Infinite: true}
}
