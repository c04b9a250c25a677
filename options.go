package vector

import "go.uber.org/zap"

// Option configures a Vector at construction.
type Option[T any] func(*settings[T])

type settings[T any] struct {
	alloc    Allocator[T]
	growth   GrowthPolicy
	logger   *zap.Logger
	capacity int
	traits   *Traits[T]
	edits    []func(*Traits[T])
}

// WithAllocator sets the allocator the vector draws its buffer from.
// The default is a HeapAllocator without a limit.
func WithAllocator[T any](a Allocator[T]) Option[T] {
	return func(s *settings[T]) { s.alloc = a }
}

// WithGrowth sets the growth policy. The default is GrowByOne.
func WithGrowth[T any](p GrowthPolicy) Option[T] {
	return func(s *settings[T]) { s.growth = p }
}

// WithLogger sets the logger used for growth, shrink and allocation
// failure events. The default discards everything.
func WithLogger[T any](l *zap.Logger) Option[T] {
	return func(s *settings[T]) { s.logger = l }
}

// WithCapacity pre-sizes the buffer. If the allocation fails the vector
// starts with capacity 0.
func WithCapacity[T any](n int) Option[T] {
	return func(s *settings[T]) { s.capacity = n }
}

// WithTraits replaces the resolved traits wholesale.
func WithTraits[T any](tr Traits[T]) Option[T] {
	return func(s *settings[T]) { s.traits = &tr }
}

// WithDestructor installs a teardown hook and selects Invoke. Unless a copy
// or move hook is also present, relocation switches to a retiring move.
func WithDestructor[T any](fn func(*T)) Option[T] {
	return func(s *settings[T]) {
		s.edits = append(s.edits, func(tr *Traits[T]) {
			tr.Destructor = Invoke
			tr.Destroy = fn
			if tr.Relocation == BitwiseCopy {
				tr.Relocation = ConstructorMove
				tr.Move = retire[T]
			}
		})
	}
}

// WithCopy installs a copy hook and selects ConstructorCopy relocation.
func WithCopy[T any](fn func(dst, src *T)) Option[T] {
	return func(s *settings[T]) {
		s.edits = append(s.edits, func(tr *Traits[T]) {
			tr.Relocation = ConstructorCopy
			tr.Copy = fn
		})
	}
}

// WithMove installs a move hook and selects ConstructorMove relocation.
func WithMove[T any](fn func(dst, src *T)) Option[T] {
	return func(s *settings[T]) {
		s.edits = append(s.edits, func(tr *Traits[T]) {
			tr.Relocation = ConstructorMove
			tr.Move = fn
		})
	}
}

// WithEqual installs the comparator used by IndexOf, Contains, Remove and
// Lookup.
func WithEqual[T any](fn func(a, b *T) bool) Option[T] {
	return func(s *settings[T]) {
		s.edits = append(s.edits, func(tr *Traits[T]) { tr.Equal = fn })
	}
}
