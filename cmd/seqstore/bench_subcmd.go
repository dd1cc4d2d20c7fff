package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"runtime"
	"slices"

	"github.com/inoxlang/seqstore/internal/seqkind"
	"github.com/inoxlang/seqstore/internal/seqstorage"
	"github.com/inoxlang/seqstore/internal/sequence"
	"github.com/rs/zerolog"
	"github.com/tidwall/lotsa"
)

const (
	BENCH_USAGE         = "bench [-kind byte|int|long|double|object] [-n operations] [-threads count] [-native]"
	DEFAULT_BENCH_OPS   = 1_000_000
	BENCH_READ_INTERVAL = 16
)

func benchSubCommand(args []string, mem seqstorage.Memory, logger zerolog.Logger, outW, errW io.Writer) int {
	flags := flag.NewFlagSet(BENCH_SUBCMD, flag.ContinueOnError)
	flags.SetOutput(errW)

	var kindName string
	var ops int
	var threads int
	var native bool

	flags.StringVar(&kindName, "kind", "int", "kind of the stored elements")
	flags.IntVar(&ops, "n", DEFAULT_BENCH_OPS, "number of operations")
	flags.IntVar(&threads, "threads", runtime.GOMAXPROCS(0), "number of goroutines, each goroutine has its own list")
	flags.BoolVar(&native, "native", false, "store the lists in native memory")

	if slices.Contains(args, "-h") || slices.Contains(args, "--help") {
		showHelp(flags, BENCH_USAGE, outW)
		return 0
	}

	if err := flags.Parse(args); err != nil {
		return ERROR_STATUS_CODE
	}

	kind, err := seqkind.ParseKind(kindName)
	if err != nil {
		fmt.Fprintln(errW, err)
		return ERROR_STATUS_CODE
	}
	if ops <= 0 || threads <= 0 {
		fmt.Fprintln(errW, "the number of operations and the number of threads should be positive")
		return ERROR_STATUS_CODE
	}

	lists := make([]*sequence.List, threads)
	for i := range lists {
		lists[i] = sequence.NewListWithKind(kind, 0)
		if native {
			sequence.Materialize(lists[i], mem)
		}
	}
	defer func() {
		for _, list := range lists {
			list.Release()
		}
	}()

	logger.Debug().Str("kind", kind.String()).Int("ops", ops).Int("threads", threads).Bool("native", native).Msg("starting benchmark")

	lotsa.Output = outW
	fmt.Fprintf(outW, "append + get (%s, %s): ", kind, locationName(native))

	failures := make([]error, threads)

	lotsa.Ops(ops, threads, func(i, thread int) {
		if failures[thread] != nil {
			return
		}
		list := lists[thread]

		if err := list.Append(benchElement(kind, i)); err != nil {
			failures[thread] = err
			return
		}
		if i%BENCH_READ_INTERVAL == 0 {
			if _, err := list.GetItem(-1); err != nil {
				failures[thread] = err
			}
		}
	})

	if err := errors.Join(failures...); err != nil {
		fmt.Fprintln(errW, err)
		return ERROR_STATUS_CODE
	}
	return 0
}

// benchElement returns an element accepted by a storage of the given kind.
func benchElement(kind seqkind.Kind, i int) seqkind.Value {
	switch kind {
	case seqkind.Byte:
		return i % 256
	case seqkind.Int:
		return int32(i)
	case seqkind.Long:
		return int64(i) << 32
	case seqkind.Double:
		return float64(i) / 2
	default:
		return fmt.Sprint(i)
	}
}

func locationName(native bool) string {
	if native {
		return seqstorage.Foreign.String()
	}
	return seqstorage.Managed.String()
}
