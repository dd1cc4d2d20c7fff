package seqstorage

// A Slice is a slice key, a nil bound is omitted.
type Slice struct {
	Start, Stop, Step *int
}

// Bound returns a pointer to i, it is used to build Slice keys.
func Bound(i int) *int {
	return &i
}

func NewSlice(start, stop, step int) Slice {
	return Slice{Start: Bound(start), Stop: Bound(stop), Step: Bound(step)}
}

// SliceInfo describes a slice resolved against a concrete length: the slice contains Length
// elements at Start, Start+Step, ... Stop is exclusive and can be -1 when Step is negative.
type SliceInfo struct {
	Start, Stop, Step, Length int
}

// Indices resolves the slice against length, omitted and out of range bounds are clamped.
func (s Slice) Indices(length int) (SliceInfo, error) {
	step := 1
	if s.Step != nil {
		step = *s.Step
		if step == 0 {
			return SliceInfo{}, newError(ValueError, S_SLICE_STEP_ZERO)
		}
	}

	lower, upper := 0, length
	if step < 0 {
		lower, upper = -1, length-1
	}

	clamp := func(bound *int, defaultValue int) int {
		if bound == nil {
			return defaultValue
		}
		i := *bound
		if i < 0 {
			i += length
			if i < lower {
				i = lower
			}
		} else if i > upper {
			i = upper
		}
		return i
	}

	var start, stop int
	if step < 0 {
		start, stop = clamp(s.Start, upper), clamp(s.Stop, lower)
	} else {
		start, stop = clamp(s.Start, lower), clamp(s.Stop, upper)
	}

	return SliceInfo{Start: start, Stop: stop, Step: step, Length: sliceLength(start, stop, step)}, nil
}

func sliceLength(start, stop, step int) int {
	switch {
	case step > 0 && start < stop:
		return (stop-start-1)/step + 1
	case step < 0 && stop < start:
		return (start-stop-1)/(-step) + 1
	}
	return 0
}

// NewSliceInfo returns the SliceInfo for already resolved start, stop and step.
func NewSliceInfo(start, stop, step int) SliceInfo {
	return SliceInfo{Start: start, Stop: stop, Step: step, Length: sliceLength(start, stop, step)}
}
