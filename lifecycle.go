package vector

import (
	"fmt"
	"reflect"
)

// Destroyer is implemented by element types whose values own resources that
// must be released when the element leaves the vector.
type Destroyer interface {
	Destroy()
}

// Copier is implemented by element types that need logic to duplicate a
// value, such as a deep copy of an owned buffer or a reference count bump.
// CopyTo initialises dst as an independent copy of the receiver.
type Copier[T any] interface {
	CopyTo(dst *T)
}

// Mover is implemented by element types that need logic to change address.
// MoveTo transfers the receiver's state into dst; afterwards the receiver
// needs no teardown.
type Mover[T any] interface {
	MoveTo(dst *T)
}

// Equaler is implemented by element types with their own notion of equality.
type Equaler[T any] interface {
	Equal(other *T) bool
}

// DestructorPolicy tells the vector whether removing an element must run
// teardown logic.
type DestructorPolicy uint8

const (
	// Skip means the element type has nothing to tear down.
	Skip DestructorPolicy = iota
	// Invoke runs the destroy hook exactly once per element, when it is
	// removed, cleared or the vector is reset.
	Invoke
)

func (p DestructorPolicy) String() string {
	switch p {
	case Skip:
		return "skip"
	case Invoke:
		return "invoke"
	default:
		return fmt.Sprintf("DestructorPolicy(%d)", uint8(p))
	}
}

// RelocationPolicy tells the vector how to move an element to another slot.
type RelocationPolicy uint8

const (
	// BitwiseCopy relocates by raw memory copy. Only valid for element
	// types that own nothing a duplicate would double-own.
	BitwiseCopy RelocationPolicy = iota
	// ConstructorCopy relocates through the copy hook and then tears down
	// the source.
	ConstructorCopy
	// ConstructorMove relocates through the move hook; the source is
	// retired without teardown.
	ConstructorMove
)

func (p RelocationPolicy) String() string {
	switch p {
	case BitwiseCopy:
		return "bitwise"
	case ConstructorCopy:
		return "copy"
	case ConstructorMove:
		return "move"
	default:
		return fmt.Sprintf("RelocationPolicy(%d)", uint8(p))
	}
}

// Traits is the per-element-type lifecycle description a vector dispatches
// on. It is resolved once when the vector is set up; operations only read
// the resolved policies and hooks.
type Traits[T any] struct {
	Destructor DestructorPolicy
	Relocation RelocationPolicy

	Destroy func(v *T)
	Copy    func(dst, src *T)
	Move    func(dst, src *T)
	Equal   func(a, b *T) bool
}

// ResolveTraits inspects T's method set and picks the cheapest policies it
// allows. Destroyer selects Invoke. Mover selects ConstructorMove, otherwise
// Copier selects ConstructorCopy, otherwise BitwiseCopy. A Destroyer with
// neither hook is relocated by a retiring move: the bytes are copied and the
// source slot is zeroed without teardown, so only one live copy exists.
func ResolveTraits[T any]() Traits[T] {
	var tr Traits[T]
	p := any(new(T))

	if _, ok := p.(Destroyer); ok {
		tr.Destructor = Invoke
		tr.Destroy = func(v *T) { any(v).(Destroyer).Destroy() }
	}

	_, canMove := p.(Mover[T])
	_, canCopy := p.(Copier[T])
	switch {
	case canMove:
		tr.Relocation = ConstructorMove
		tr.Move = func(dst, src *T) { any(src).(Mover[T]).MoveTo(dst) }
	case canCopy:
		tr.Relocation = ConstructorCopy
	case tr.Destructor == Invoke:
		tr.Relocation = ConstructorMove
		tr.Move = retire[T]
	}
	if canCopy {
		tr.Copy = func(dst, src *T) { any(src).(Copier[T]).CopyTo(dst) }
	}

	if _, ok := p.(Equaler[T]); ok {
		tr.Equal = func(a, b *T) bool { return any(a).(Equaler[T]).Equal(b) }
	} else if t := reflect.TypeFor[T](); t.Comparable() {
		if hasInterface(t) {
			tr.Equal = dynamicEqual[T]
		} else {
			tr.Equal = func(a, b *T) bool { return any(*a) == any(*b) }
		}
	}
	return tr
}

// uncomparable carries the runtime panic raised when == meets dynamic
// values that cannot be compared. find turns it into ErrNoEquality.
type uncomparable struct{ cause any }

// dynamicEqual is == for types holding interfaces, whose dynamic values may
// turn out not to be comparable.
func dynamicEqual[T any](a, b *T) (eq bool) {
	defer func() {
		if r := recover(); r != nil {
			panic(uncomparable{cause: r})
		}
	}()
	return any(*a) == any(*b)
}

// hasInterface reports whether t holds an interface value anywhere in its
// layout.
func hasInterface(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Interface:
		return true
	case reflect.Array:
		return t.Len() > 0 && hasInterface(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if hasInterface(t.Field(i).Type) {
				return true
			}
		}
	}
	return false
}

// Validate rejects policy combinations the vector cannot honour.
func (tr Traits[T]) Validate() error {
	if tr.Destructor == Invoke && tr.Destroy == nil {
		return fmt.Errorf("%w: invoke destructor without a destroy hook", ErrUnsafeTraits)
	}
	switch tr.Relocation {
	case BitwiseCopy:
		if tr.Destructor == Invoke {
			return fmt.Errorf("%w: bitwise relocation of an element with teardown", ErrUnsafeTraits)
		}
	case ConstructorCopy:
		if tr.Copy == nil {
			return fmt.Errorf("%w: copy relocation without a copy hook", ErrUnsafeTraits)
		}
	case ConstructorMove:
		if tr.Move == nil {
			return fmt.Errorf("%w: move relocation without a move hook", ErrUnsafeTraits)
		}
	default:
		return fmt.Errorf("%w: unknown relocation policy %v", ErrUnsafeTraits, tr.Relocation)
	}
	return nil
}

// retire is the move used for types with teardown but no move hook.
func retire[T any](dst, src *T) {
	*dst = *src
	var zero T
	*src = zero
}

// teardown runs the destroy hook over buf and zeroes it.
func (tr *Traits[T]) teardown(buf []T) {
	if tr.Destructor == Invoke {
		for i := range buf {
			tr.Destroy(&buf[i])
		}
	}
	clear(buf)
}

// construct places v into the empty slot dst. The vector takes ownership of
// v for bitwise and move relocation; copy relocation stores an independent
// copy and leaves v with the caller.
func (tr *Traits[T]) construct(dst *T, v *T) {
	switch tr.Relocation {
	case ConstructorCopy:
		tr.Copy(dst, v)
	case ConstructorMove:
		tr.Move(dst, v)
	default:
		*dst = *v
	}
}

// relocate moves the live value at src into the empty slot dst and leaves
// src zeroed.
func (tr *Traits[T]) relocate(dst, src *T) {
	switch tr.Relocation {
	case ConstructorCopy:
		tr.Copy(dst, src)
		if tr.Destructor == Invoke {
			tr.Destroy(src)
		}
	case ConstructorMove:
		tr.Move(dst, src)
	default:
		*dst = *src
	}
	var zero T
	*src = zero
}

// shift relocates buf[from:from+n] to buf[to:to+n]. The ranges may overlap;
// slots left behind are zeroed.
func (tr *Traits[T]) shift(buf []T, to, from, n int) {
	if n <= 0 || to == from {
		return
	}
	if tr.Relocation == BitwiseCopy {
		copy(buf[to:to+n], buf[from:from+n])
		if to < from {
			clear(buf[max(to+n, from) : from+n])
		} else {
			clear(buf[from:min(from+n, to)])
		}
		return
	}
	if to < from {
		for k := 0; k < n; k++ {
			tr.relocate(&buf[to+k], &buf[from+k])
		}
		return
	}
	for k := n - 1; k >= 0; k-- {
		tr.relocate(&buf[to+k], &buf[from+k])
	}
}

// transfer relocates every element of src into the empty dst.
func (tr *Traits[T]) transfer(dst, src []T) {
	if tr.Relocation == BitwiseCopy {
		copy(dst, src)
		clear(src)
		return
	}
	for i := range src {
		tr.relocate(&dst[i], &src[i])
	}
}

// take moves the value at src out to the caller and leaves src zeroed.
func (tr *Traits[T]) take(src *T) T {
	var out T
	tr.relocate(&out, src)
	return out
}
