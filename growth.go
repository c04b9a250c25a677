package vector

import (
	"fmt"
	"strings"
)

// GrowthPolicy decides the capacity of the next growth step.
//
// Grow receives the current capacity and the minimum capacity the pending
// insertion needs, and returns the new capacity. Results below required are
// raised to required.
type GrowthPolicy interface {
	Grow(capacity, required int) int
}

// GrowthFunc adapts an ordinary function to the GrowthPolicy interface.
type GrowthFunc func(capacity, required int) int

// Grow calls f(capacity, required).
func (f GrowthFunc) Grow(capacity, required int) int {
	return f(capacity, required)
}

type growByOne struct{}

func (growByOne) Grow(capacity, required int) int {
	return max(capacity+1, required)
}

func (growByOne) String() string { return "one" }

type growDoubling struct{}

func (growDoubling) Grow(capacity, required int) int {
	return max(capacity*2, required, 1)
}

func (growDoubling) String() string { return "double" }

type growByBlock struct {
	block int
}

func (g growByBlock) Grow(capacity, required int) int {
	n := max(capacity+1, required)
	if rem := n % g.block; rem != 0 {
		n += g.block - rem
	}
	return n
}

func (g growByBlock) String() string { return fmt.Sprintf("block(%d)", g.block) }

// GrowByOne adds exactly one slot per growth step. It keeps capacity tight at
// the cost of one reallocation per append once reserved space is used up.
// It is the default policy.
func GrowByOne() GrowthPolicy { return growByOne{} }

// GrowDoubling doubles capacity on every growth step, giving amortized O(1)
// appends.
func GrowDoubling() GrowthPolicy { return growDoubling{} }

// GrowByBlock rounds every growth step up to a multiple of block slots.
// A block below 1 is treated as 1.
func GrowByBlock(block int) GrowthPolicy {
	if block < 1 {
		block = 1
	}
	return growByBlock{block: block}
}

// GrowthPolicyNames lists the names accepted by ParseGrowthPolicy.
var GrowthPolicyNames = []string{"one", "double", "block"}

// ParseGrowthPolicy maps a policy name to a GrowthPolicy. The block size is
// only used by "block". An empty name selects GrowByOne.
func ParseGrowthPolicy(name string, block int) (GrowthPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "one":
		return GrowByOne(), nil
	case "double":
		return GrowDoubling(), nil
	case "block":
		if block < 1 {
			return nil, fmt.Errorf("vector: block growth needs a block size >= 1, got %d", block)
		}
		return GrowByBlock(block), nil
	default:
		return nil, fmt.Errorf("vector: unknown growth policy %q", name)
	}
}

// PolicyName returns the name of p, or "custom" when p has none.
func PolicyName(p GrowthPolicy) string {
	if s, ok := p.(fmt.Stringer); ok {
		return s.String()
	}
	return "custom"
}
