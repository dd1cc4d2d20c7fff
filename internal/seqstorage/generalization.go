package seqstorage

import (
	"github.com/inoxlang/seqstore/internal/seqkind"
)

var (
	_ = []Generalizer{ListGeneralization{}, NoGeneralization{}}
)

// A Generalizer decides the kind a storage is generalized to before an incompatible value is
// stored into it. If ok is false the storage is not generalized and the write fails with the
// error of the scalar path.
type Generalizer interface {
	Generalize(s *Storage, v Value) (target seqkind.Kind, ok bool)
}

// ListGeneralization always generalizes, to Object if no numeric kind fits.
type ListGeneralization struct{}

func (ListGeneralization) Generalize(s *Storage, v Value) (seqkind.Kind, bool) {
	return PromotionTarget(s, v), true
}

// NoGeneralization never generalizes, it is used by fixed-kind sequences such as bytearrays.
type NoGeneralization struct{}

func (NoGeneralization) Generalize(s *Storage, v Value) (seqkind.Kind, bool) {
	return s.kind, false
}

// PromotionTarget returns the smallest kind that can hold the elements of s and v.
// An empty storage takes the kind of v. Long elements are only converted to floating values if
// the conversion is exact for all of them.
func PromotionTarget(s *Storage, v Value) seqkind.Kind {
	if s.length == 0 {
		return seqkind.KindOf(v)
	}

	target := seqkind.Generalize(s.kind, v)
	if target == seqkind.Double && s.kind == seqkind.Long && !longsExactAsDoubles(s) {
		return seqkind.Object
	}
	return target
}

func longsExactAsDoubles(s *Storage) bool {
	for i := 0; i < s.length; i++ {
		v, err := s.load(i)
		if err != nil {
			return false
		}
		if n, ok := v.(int64); !ok || !seqkind.ExactFloat64(n) {
			return false
		}
	}
	return true
}

// Generalized returns a storage of kind target, in the same location as s, holding the
// elements of s converted to target. The capacity of s is kept.
func Generalized(s *Storage, target seqkind.Kind) (*Storage, error) {
	if target == s.kind {
		return s, nil
	}

	values, err := Values(s)
	if err != nil {
		return nil, err
	}

	generalized, err := newManaged(target, values, s.Capacity(), true)
	if err != nil {
		return nil, err
	}

	logger.Debug().Str("from", s.kind.String()).Str("to", target.String()).Int("length", s.length).Msg("storage generalized")

	if s.native != nil {
		return newNative(s.native.mem, generalized.fullArray(), s.length), nil
	}
	return generalized, nil
}

// ensureAccepts returns s or a generalization of s that accepts v.
func ensureAccepts(s *Storage, v Value, gen Generalizer) (*Storage, error) {
	if seqkind.Accepts(s.kind, v) {
		return s, nil
	}
	if gen == nil {
		return s, nil
	}

	target, ok := gen.Generalize(s, v)
	if !ok || target == s.kind {
		return s, nil
	}
	return Generalized(s, target)
}

// ensureAcceptsAll is ensureAccepts for several values, the values are considered in order as
// if they were stored one by one. Integral values accepted before a generalization to Double are
// converted by the caller, s is generalized to Object instead if one of them is not exact.
func ensureAcceptsAll(s *Storage, values []Value, gen Generalizer) (*Storage, error) {
	target := s
	for _, v := range values {
		next, err := ensureAccepts(target, v, gen)
		if err != nil {
			discard(target, s)
			return s, err
		}
		if next != target {
			discard(target, s)
			target = next
		}
	}

	if target == s || target.kind != seqkind.Double {
		return target, nil
	}

	for _, v := range values {
		if n, ok := seqkind.AsInt64(v); ok && !seqkind.ExactFloat64(n) {
			generalized, err := Generalized(s, seqkind.Object)
			discard(target, s)
			if err != nil {
				return s, err
			}
			return generalized, nil
		}
	}
	return target, nil
}

// JoinTarget returns the kind the operands of a concatenation are generalized to by callers
// that concatenate storages of different kinds.
func JoinTarget(left, right *Storage) seqkind.Kind {
	switch {
	case left.length == 0:
		return right.kind
	case right.length == 0:
		return left.kind
	}

	target := seqkind.Join(left.kind, right.kind)
	if target == seqkind.Double {
		if (left.kind == seqkind.Long && !longsExactAsDoubles(left)) || (right.kind == seqkind.Long && !longsExactAsDoubles(right)) {
			return seqkind.Object
		}
	}
	return target
}
