package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/inoxlang/seqstore/internal/seqkind"
	"github.com/inoxlang/seqstore/internal/seqstorage"
	"github.com/inoxlang/seqstore/internal/sequence"
)

const (
	LIST_TYPE      = "list"
	TUPLE_TYPE     = "tuple"
	BYTES_TYPE     = "bytes"
	BYTEARRAY_TYPE = "bytearray"

	EVAL_USAGE = "eval [-type list|tuple|bytes|bytearray] [-native] <JSON array> [operation arguments...]..."
)

var (
	// number of arguments of each operation.
	EVAL_OPERATION_ARITIES = map[string]int{
		"get":     1,
		"set":     2,
		"del":     1,
		"append":  1,
		"extend":  1,
		"insert":  2,
		"pop":     1,
		"reverse": 0,
		"clear":   0,
		"repeat":  1,
		"concat":  1,
		"equal":   1,
		"count":   1,
		"find":    1,
	}
	EVAL_OPERATIONS = []string{"get", "set", "del", "append", "extend", "insert", "pop", "reverse", "clear", "repeat", "concat", "equal", "count", "find"}

	ErrUnknownOperation     = errors.New("unknown operation")
	ErrMissingArguments     = errors.New("missing arguments")
	ErrUnsupportedOperation = errors.New("operation not supported by the sequence type")
	ErrUnknownSequenceType  = errors.New("unknown sequence type")
)

type Value = seqkind.Value

type evalSequence interface {
	sequence.Sequence
	GetItem(key Value) (Value, error)
	Kind() seqkind.Kind
	Values() ([]Value, error)
	Release() error
}

// byteSearcher is implemented by Bytes and ByteArray.
type byteSearcher interface {
	Count(sub Value) (int, error)
	Find(sub Value) (int, error)
}

type mutableSequence interface {
	evalSequence
	SetItem(key Value, value Value) error
	DelItem(key Value) error
	Append(v Value) error
	Extend(iterable Value) error
	Insert(index int, v Value) error
	Pop(index Value) (Value, error)
	Clear() error
	Reverse() error
}

// sequenceState is the JSON representation of a sequence printed by the eval subcommand.
type sequenceState struct {
	Type     string  `json:"type"`
	Kind     string  `json:"kind"`
	Location string  `json:"location"`
	Values   []Value `json:"values"`
}

type operationResult struct {
	Operation string `json:"op"`
	Result    any    `json:"result"`
}

type evaluation struct {
	sequenceType string
	native       bool
	mem          seqstorage.Memory
	current      evalSequence
	outW         io.Writer
}

func evalSubCommand(args []string, mem seqstorage.Memory, outW, errW io.Writer) int {
	flags := flag.NewFlagSet(EVAL_SUBCMD, flag.ContinueOnError)
	flags.SetOutput(errW)

	var sequenceType string
	var native bool

	flags.StringVar(&sequenceType, "type", LIST_TYPE, "type of the sequence: list, tuple, bytes or bytearray")
	flags.BoolVar(&native, "native", false, "store the sequence in native memory")

	if slices.Contains(args, "-h") || slices.Contains(args, "--help") {
		showHelp(flags, EVAL_USAGE, outW)
		return 0
	}

	if err := flags.Parse(args); err != nil {
		return ERROR_STATUS_CODE
	}

	if flags.NArg() == 0 {
		fmt.Fprintln(errW, "missing JSON array")
		showHelp(flags, EVAL_USAGE, errW)
		return ERROR_STATUS_CODE
	}

	e := &evaluation{
		sequenceType: sequenceType,
		native:       native,
		mem:          mem,
		outW:         outW,
	}

	if err := e.run(flags.Arg(0), flags.Args()[1:]); err != nil {
		fmt.Fprintln(errW, err)
		return ERROR_STATUS_CODE
	}
	return 0
}

func (e *evaluation) run(initialValues string, operationArgs []string) error {
	seq, err := e.newSequence(initialValues)
	if err != nil {
		return err
	}
	e.current = seq
	defer func() {
		e.current.Release()
	}()

	for len(operationArgs) > 0 {
		operation := operationArgs[0]
		arity, ok := EVAL_OPERATION_ARITIES[operation]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownOperation, operation)
		}

		if len(operationArgs)-1 < arity {
			return fmt.Errorf("%w: %s expects %d argument(s)", ErrMissingArguments, operation, arity)
		}

		if err := e.apply(operation, operationArgs[1:arity+1]); err != nil {
			return fmt.Errorf("%s: %w", operation, err)
		}
		operationArgs = operationArgs[arity+1:]
	}

	state, err := e.state(e.current)
	if err != nil {
		return err
	}
	return e.print(state)
}

func (e *evaluation) apply(operation string, args []string) error {
	switch operation {
	case "get":
		key, err := parseKey(args[0])
		if err != nil {
			return err
		}
		v, err := e.current.GetItem(key)
		if err != nil {
			return err
		}
		if seq, ok := v.(evalSequence); ok {
			defer seq.Release()
			state, err := e.state(seq)
			if err != nil {
				return err
			}
			v = state
		}
		return e.print(operationResult{Operation: operation, Result: v})
	case "repeat":
		times, err := strconv.Atoi(args[0])
		if err != nil {
			return err
		}
		return e.replace(repeat(e.current, times))
	case "concat":
		operand, err := e.newSequence(args[0])
		if err != nil {
			return err
		}
		defer operand.Release()
		return e.replace(concat(e.current, operand))
	case "equal":
		operand, err := e.newSequence(args[0])
		if err != nil {
			return err
		}
		defer operand.Release()
		return e.print(operationResult{Operation: operation, Result: e.current.Equal(operand)})
	case "count", "find":
		searcher, ok := e.current.(byteSearcher)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnsupportedOperation, e.sequenceType)
		}

		sub, err := decodeJSON(args[0])
		if err != nil {
			return err
		}
		if _, isArray := sub.([]any); isArray {
			operand, err := e.newSequence(args[0])
			if err != nil {
				return err
			}
			defer operand.Release()
			sub = operand
		}

		var result int
		if operation == "count" {
			result, err = searcher.Count(sub)
		} else {
			result, err = searcher.Find(sub)
		}
		if err != nil {
			return err
		}
		return e.print(operationResult{Operation: operation, Result: result})
	}

	mutable, ok := e.current.(mutableSequence)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedOperation, e.sequenceType)
	}

	switch operation {
	case "set":
		key, err := parseKey(args[0])
		if err != nil {
			return err
		}
		v, err := decodeJSON(args[1])
		if err != nil {
			return err
		}
		return mutable.SetItem(key, v)
	case "del":
		key, err := parseKey(args[0])
		if err != nil {
			return err
		}
		return mutable.DelItem(key)
	case "append":
		v, err := decodeJSON(args[0])
		if err != nil {
			return err
		}
		return mutable.Append(v)
	case "extend":
		values, err := decodeJSONArray(args[0])
		if err != nil {
			return err
		}
		return mutable.Extend(values)
	case "insert":
		index, err := strconv.Atoi(args[0])
		if err != nil {
			return err
		}
		v, err := decodeJSON(args[1])
		if err != nil {
			return err
		}
		return mutable.Insert(index, v)
	case "pop":
		index, err := strconv.Atoi(args[0])
		if err != nil {
			return err
		}
		v, err := mutable.Pop(index)
		if err != nil {
			return err
		}
		return e.print(operationResult{Operation: operation, Result: v})
	case "reverse":
		return mutable.Reverse()
	case "clear":
		return mutable.Clear()
	}
	return fmt.Errorf("%w: %s", ErrUnknownOperation, operation)
}

// replace makes seq the current sequence and releases the previous one.
func (e *evaluation) replace(seq evalSequence, err error) error {
	if err != nil {
		return err
	}
	if e.native {
		sequence.Materialize(seq, e.mem)
	}
	e.current.Release()
	e.current = seq
	return nil
}

func (e *evaluation) newSequence(jsonArray string) (evalSequence, error) {
	values, err := decodeJSONArray(jsonArray)
	if err != nil {
		return nil, err
	}

	var seq evalSequence

	switch e.sequenceType {
	case LIST_TYPE:
		seq = sequence.NewList(values...)
	case TUPLE_TYPE:
		seq = sequence.NewTuple(values...)
	case BYTES_TYPE, BYTEARRAY_TYPE:
		b := make([]byte, len(values))
		for i, v := range values {
			b[i], err = seqstorage.CastToByte(v)
			if err != nil {
				return nil, err
			}
		}
		if e.sequenceType == BYTES_TYPE {
			seq = sequence.NewBytes(b)
		} else {
			seq = sequence.NewByteArray(b)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownSequenceType, e.sequenceType)
	}

	if e.native {
		sequence.Materialize(seq, e.mem)
	}
	return seq, nil
}

func (e *evaluation) state(seq evalSequence) (sequenceState, error) {
	values, err := seq.Values()
	if err != nil {
		return sequenceState{}, err
	}
	return sequenceState{
		Type:     e.sequenceType,
		Kind:     seq.Kind().String(),
		Location: seq.Storage().Location().String(),
		Values:   values,
	}, nil
}

func (e *evaluation) print(v any) error {
	encoded, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(e.outW, "%s\n", encoded)
	return err
}

func repeat(seq evalSequence, times int) (evalSequence, error) {
	switch s := seq.(type) {
	case *sequence.List:
		return nilIfError(s.Repeat(times))
	case *sequence.Tuple:
		return nilIfError(s.Repeat(times))
	case *sequence.Bytes:
		return nilIfError(s.Repeat(times))
	case *sequence.ByteArray:
		return nilIfError(s.Repeat(times))
	}
	return nil, fmt.Errorf("%w: %T", ErrUnsupportedOperation, seq)
}

func concat(seq evalSequence, operand evalSequence) (evalSequence, error) {
	switch s := seq.(type) {
	case *sequence.List:
		return nilIfError(s.Concat(operand))
	case *sequence.Tuple:
		return nilIfError(s.Concat(operand.(*sequence.Tuple)))
	case *sequence.Bytes:
		return nilIfError(s.Concat(operand))
	case *sequence.ByteArray:
		return nilIfError(s.Concat(operand))
	}
	return nil, fmt.Errorf("%w: %T", ErrUnsupportedOperation, seq)
}

// nilIfError converts the typed result of an operation to an evalSequence, a nil interface is
// returned if the operation failed.
func nilIfError[S evalSequence](seq S, err error) (evalSequence, error) {
	if err != nil {
		return nil, err
	}
	return seq, nil
}

// parseKey parses an index (-1) or a slice (start:stop:step, bounds can be omitted).
func parseKey(s string) (Value, error) {
	if !strings.Contains(s, ":") {
		return strconv.Atoi(s)
	}

	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return nil, fmt.Errorf("invalid slice: %q", s)
	}

	var bounds [3]*int
	for i, part := range parts {
		if part == "" {
			continue
		}
		bound, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid slice bound: %q", part)
		}
		bounds[i] = seqstorage.Bound(bound)
	}
	return seqstorage.Slice{Start: bounds[0], Stop: bounds[1], Step: bounds[2]}, nil
}

func decodeJSON(s string) (Value, error) {
	decoder := json.NewDecoder(bytes.NewReader([]byte(s)))
	decoder.UseNumber()

	var v any
	if err := decoder.Decode(&v); err != nil {
		return nil, fmt.Errorf("invalid JSON value: %w", err)
	}
	return fromJSON(v), nil
}

func decodeJSONArray(s string) ([]Value, error) {
	v, err := decodeJSON(s)
	if err != nil {
		return nil, err
	}
	values, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("a JSON array is expected, not %s", s)
	}
	return values, nil
}

// fromJSON converts the numbers in a decoded JSON value to ints (or int64s if they do not fit)
// and float64s.
func fromJSON(v any) Value {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			if int64(int(i)) == i {
				return int(i)
			}
			return i
		}
		f, _ := val.Float64()
		return f
	case []any:
		for i, e := range val {
			val[i] = fromJSON(e)
		}
		return val
	case map[string]any:
		for k, e := range val {
			val[k] = fromJSON(e)
		}
		return val
	}
	return v
}
