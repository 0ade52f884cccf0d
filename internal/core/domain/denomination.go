package domain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// DenominationSet is an immutable, strictly descending sequence of currency unit values
// accepted by the machine. The smallest unit is always 1, so every non-negative whole
// amount can be broken down without remainder.
type DenominationSet struct {
	values []int64
}

// DefaultDenominationValues is the note/coin set the machine ships with.
var DefaultDenominationValues = []int64{100, 50, 20, 10, 5, 1}

// NewDenominationSet validates and builds a DenominationSet.
func NewDenominationSet(values ...int64) (DenominationSet, error) {
	if len(values) == 0 {
		return DenominationSet{}, fmt.Errorf("denomination set cannot be empty")
	}
	for i, v := range values {
		if v <= 0 {
			return DenominationSet{}, fmt.Errorf("denomination %d must be positive", v)
		}
		if i > 0 && v >= values[i-1] {
			return DenominationSet{}, fmt.Errorf("denominations must be strictly descending, got %d after %d", v, values[i-1])
		}
	}
	if values[len(values)-1] != 1 {
		return DenominationSet{}, fmt.Errorf("smallest denomination must be 1, got %d", values[len(values)-1])
	}
	if err := checkGreedyOptimal(values); err != nil {
		return DenominationSet{}, err
	}
	cp := make([]int64, len(values))
	copy(cp, values)
	return DenominationSet{values: cp}, nil
}

// checkGreedyOptimal rejects sets where taking the largest note first can use more notes
// than necessary, e.g. {25, 10, 1} pays 30 as 1x25, 5x1 instead of 3x10. If greedy is ever
// beaten, the smallest such amount is below the sum of the two largest denominations,
// so only those amounts are compared against a minimum-count table.
func checkGreedyOptimal(values []int64) error {
	if len(values) < 3 {
		return nil
	}
	limit := values[0] + values[1]
	minCount := make([]int64, limit)
	for amount := int64(1); amount < limit; amount++ {
		best := amount
		for _, d := range values {
			if d <= amount && minCount[amount-d]+1 < best {
				best = minCount[amount-d] + 1
			}
		}
		minCount[amount] = best

		var greedy int64
		remaining := amount
		for _, d := range values {
			greedy += remaining / d
			remaining %= d
		}
		if greedy > best {
			return fmt.Errorf("denomination set %v does not always give the fewest notes: %d needs %d, greedy gives %d", values, amount, best, greedy)
		}
	}
	return nil
}

// DefaultDenominations returns the standard 100, 50, 20, 10, 5, 1 set.
func DefaultDenominations() DenominationSet {
	set, err := NewDenominationSet(DefaultDenominationValues...)
	if err != nil {
		panic(err)
	}
	return set
}

// ParseDenominationSet parses a comma separated list such as "100,50,20,10,5,1".
func ParseDenominationSet(raw string) (DenominationSet, error) {
	parts := strings.Split(raw, ",")
	values := make([]int64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return DenominationSet{}, fmt.Errorf("invalid denomination %q: %w", p, err)
		}
		values = append(values, v)
	}
	return NewDenominationSet(values...)
}

// Values returns a copy of the denominations, largest first.
func (s DenominationSet) Values() []int64 {
	cp := make([]int64, len(s.values))
	copy(cp, s.values)
	return cp
}

// Contains reports whether d is one of the accepted denominations.
func (s DenominationSet) Contains(d int64) bool {
	for _, v := range s.values {
		if v == d {
			return true
		}
	}
	return false
}

// Len returns the number of denominations in the set.
func (s DenominationSet) Len() int {
	return len(s.values)
}

// ComputeChange breaks amount down greedily, largest denomination first.
// The amount is rounded to a whole unit (banker's rounding) before the breakdown;
// fractional currency is not representable in notes. Zero or negative amounts
// produce an empty breakdown.
func (s DenominationSet) ComputeChange(amount decimal.Decimal) Breakdown {
	remaining := amount.RoundBank(0).IntPart()
	breakdown := Breakdown{}
	if remaining <= 0 {
		return breakdown
	}
	for _, d := range s.values {
		count := remaining / d
		if count > 0 {
			breakdown = append(breakdown, DenominationCount{Denomination: d, Count: count})
			remaining -= count * d
		}
	}
	return breakdown
}

// DenominationCount is one line of a Breakdown.
type DenominationCount struct {
	Denomination int64 `json:"denomination"`
	Count        int64 `json:"count"`
}

// Breakdown is an ordered mapping from denomination to count. Order is significant:
// it is the order entries were produced in, descending denomination for both the
// change engine and parsed inserted cash.
type Breakdown []DenominationCount

// Total returns sum(denomination * count).
func (b Breakdown) Total() decimal.Decimal {
	total := decimal.Zero
	for _, dc := range b {
		total = total.Add(decimal.NewFromInt(dc.Denomination).Mul(decimal.NewFromInt(dc.Count)))
	}
	return total
}

// Count returns the count recorded for denomination d, 0 if absent.
func (b Breakdown) Count(d int64) int64 {
	for _, dc := range b {
		if dc.Denomination == d {
			return dc.Count
		}
	}
	return 0
}

// IsEmpty reports whether the breakdown has no positive counts.
func (b Breakdown) IsEmpty() bool {
	for _, dc := range b {
		if dc.Count > 0 {
			return false
		}
	}
	return true
}

// Format renders the breakdown, see FormatBreakdown.
func (b Breakdown) Format() string {
	return FormatBreakdown(b)
}

// FormatBreakdown renders "<count>x<denomination>" entries joined by ", ", skipping
// zero counts. An empty or all-zero breakdown renders as "None".
func FormatBreakdown(b Breakdown) string {
	parts := make([]string, 0, len(b))
	for _, dc := range b {
		if dc.Count == 0 {
			continue
		}
		parts = append(parts, fmt.Sprintf("%dx%d", dc.Count, dc.Denomination))
	}
	if len(parts) == 0 {
		return "None"
	}
	return strings.Join(parts, ", ")
}
