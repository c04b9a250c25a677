package bench

import (
	"errors"
	"fmt"

	"github.com/pavanmanishd/vector"
)

// Op names a workload operation.
type Op string

const (
	OpAppend        Op = "append"         // Count appends
	OpInsertFront   Op = "insert_front"   // Count inserts at index 0
	OpRemoveOrdered Op = "remove_ordered" // Count order-preserving removals from the front
	OpSwapErase     Op = "swap_erase"     // Count swap-erase removals from the front
	OpRemoveRange   Op = "remove_range"   // one removal of Count elements from the middle
	OpPop           Op = "pop"            // Count pops from the back
	OpReserve       Op = "reserve"        // one reservation of Count extra slots
	OpFit           Op = "fit"
	OpClear         Op = "clear"
)

// Ops lists every known operation.
var Ops = []Op{
	OpAppend, OpInsertFront, OpRemoveOrdered, OpSwapErase,
	OpRemoveRange, OpPop, OpReserve, OpFit, OpClear,
}

func (o Op) valid() bool {
	for _, known := range Ops {
		if o == known {
			return true
		}
	}
	return false
}

// apply runs s against v and returns how many units of work completed.
// Removals stop early once the vector is empty. An allocation failure ends
// the step and is returned with the partial count.
func apply(v *vector.Vector[int64], s Step, next *int64) (int, error) {
	switch s.Op {
	case OpAppend, OpInsertFront:
		for i := 0; i < s.Count; i++ {
			var err error
			if s.Op == OpAppend {
				err = v.Append(*next)
			} else {
				err = v.InsertAt(0, *next)
			}
			if err != nil {
				return i, err
			}
			*next++
		}
		return s.Count, nil

	case OpRemoveOrdered, OpSwapErase:
		done := 0
		for done < s.Count && v.Len() > 0 {
			if err := v.RemoveAt(0, s.Op == OpRemoveOrdered); err != nil {
				return done, err
			}
			done++
		}
		return done, nil

	case OpRemoveRange:
		n := min(s.Count, v.Len())
		if n == 0 {
			return 0, nil
		}
		from := (v.Len() - n) / 2
		if err := v.RemoveRange(from, from+n-1); err != nil {
			return 0, err
		}
		return n, nil

	case OpPop:
		done := 0
		for done < s.Count {
			if _, err := v.Pop(); err != nil {
				if errors.Is(err, vector.ErrEmpty) {
					break
				}
				return done, err
			}
			done++
		}
		return done, nil

	case OpReserve:
		if err := v.Reserve(s.Count); err != nil {
			return 0, err
		}
		return s.Count, nil

	case OpFit:
		if err := v.Fit(); err != nil {
			return 0, err
		}
		return 1, nil

	case OpClear:
		n := v.Len()
		v.Clear()
		return n, nil
	}
	return 0, fmt.Errorf("bench: unknown op %q", s.Op)
}
