package valueobjects

import (
	"errors"
	"fmt"
	"math"
)

// maxYuan bounds amounts well inside int64 fen.
const maxYuan = 1e13

var ErrAmountOutOfRange = errors.New("amount is not a finite value within range")

// Money is an amount of CNY held in fen so arithmetic stays exact.
type Money struct {
	fen int64
}

func NewMoney(fen int64) Money {
	return Money{fen: fen}
}

// MoneyFromYuan rounds to the nearest fen. NaN, infinities and magnitudes
// above maxYuan are rejected.
func MoneyFromYuan(yuan float64) (Money, error) {
	if math.IsNaN(yuan) || math.IsInf(yuan, 0) || math.Abs(yuan) > maxYuan {
		return Money{}, fmt.Errorf("%w: %v", ErrAmountOutOfRange, yuan)
	}
	return Money{fen: int64(math.Round(yuan * 100))}, nil
}

func (m Money) Fen() int64 { return m.fen }

func (m Money) Yuan() float64 { return float64(m.fen) / 100 }

func (m Money) IsNegative() bool { return m.fen < 0 }
func (m Money) IsZero() bool     { return m.fen == 0 }

func (m Money) Add(o Money) Money { return Money{fen: m.fen + o.fen} }
func (m Money) Sub(o Money) Money { return Money{fen: m.fen - o.fen} }

func (m Money) GreaterThan(o Money) bool { return m.fen > o.fen }

func (m Money) String() string {
	return fmt.Sprintf("%.2f", m.Yuan())
}
