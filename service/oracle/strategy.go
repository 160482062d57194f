package oracle

import (
	"fmt"
	"sort"

	"keeper/core"
	"keeper/pkg/fixed"
)

// Strategy reduce accepted prices into one, prices is never empty
type Strategy func(prices []fixed.Number) (fixed.Number, error)

// Average arithmetic mean, rounded down
func Average(prices []fixed.Number) (fixed.Number, error) {
	sum := fixed.Zero()
	for _, p := range prices {
		var err error
		if sum, err = sum.Add(p); err != nil {
			return fixed.Zero(), fmt.Errorf("%w: %v", core.ErrArithmeticOverflow, err)
		}
	}

	return sum.DivInt(uint64(len(prices)))
}

// Median middle price, mean of the two middle prices if the count is even
func Median(prices []fixed.Number) (fixed.Number, error) {
	sorted := make([]fixed.Number, len(prices))
	copy(sorted, prices)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].LessThan(sorted[j])
	})

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid], nil
	}

	return Average(sorted[mid-1 : mid+1])
}

// StrategyByName average or median
func StrategyByName(name string) (Strategy, error) {
	switch name {
	case "", "average":
		return Average, nil
	case "median":
		return Median, nil
	default:
		return nil, fmt.Errorf("unknown aggregation strategy %q", name)
	}
}
