package model

import "fmt"

// Rational is an exact fraction of quarter notes. It is a value type so
// scores built from it stay immutable and comparable with ==; durations
// must never go through floating point (triplets and dots have to sum
// exactly against the bar total).
type Rational struct {
	Num int64 `json:"num"`
	Den int64 `json:"den"`
}

func NewRational(num, den int64) Rational {
	if den == 0 {
		panic("model: rational with zero denominator")
	}
	return Rational{num, den}.reduce()
}

func (r Rational) reduce() Rational {
	if r.Den < 0 {
		r.Num, r.Den = -r.Num, -r.Den
	}
	g := gcd(abs(r.Num), r.Den)
	if g > 1 {
		r.Num /= g
		r.Den /= g
	}
	if r.Num == 0 {
		r.Den = 1
	}
	return r
}

func (r Rational) Add(o Rational) Rational {
	return NewRational(r.Num*o.Den+o.Num*r.Den, r.Den*o.Den)
}

func (r Rational) Mul(o Rational) Rational {
	return NewRational(r.Num*o.Num, r.Den*o.Den)
}

func (r Rational) Equal(o Rational) bool {
	return r.reduce() == o.reduce()
}

func (r Rational) IsZero() bool {
	return r.Num == 0
}

func (r Rational) String() string {
	return fmt.Sprintf("%d/%d", r.Num, r.Den)
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
