package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/inoxlang/seqstore/internal/seqstorage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runMain(t *testing.T, args ...string) (statusCode int, out string, errOut string) {
	t.Helper()
	outW := &bytes.Buffer{}
	errW := &bytes.Buffer{}
	statusCode = _main(append([]string{COMMAND_NAME}, args...), outW, errW)
	return statusCode, outW.String(), errW.String()
}

func outputLines(out string) []string {
	return strings.Split(strings.TrimSpace(out), "\n")
}

func TestCommand(t *testing.T) {

	t.Run("help", func(t *testing.T) {
		statusCode, out, _ := runMain(t, "help")
		assert.Zero(t, statusCode)
		assert.Contains(t, out, EVAL_SUBCMD)
		assert.Contains(t, out, BENCH_SUBCMD)
	})

	t.Run("unknown command", func(t *testing.T) {
		statusCode, _, errOut := runMain(t, "evaluate")
		assert.Equal(t, ERROR_STATUS_CODE, statusCode)
		assert.Contains(t, errOut, "unknown command 'evaluate'")
	})

	t.Run("subcommand help", func(t *testing.T) {
		statusCode, out, _ := runMain(t, "help", "eval")
		assert.Zero(t, statusCode)
		assert.Contains(t, out, EVAL_USAGE)
	})
}

func TestEvalSubcommand(t *testing.T) {

	t.Run("list promotion", func(t *testing.T) {
		statusCode, out, errOut := runMain(t, "eval", "[1, 2]", "append", "1000", "append", "0.5")
		require.Zero(t, statusCode, errOut)
		assert.JSONEq(t, `{"type":"list","kind":"double","location":"managed","values":[1,2,1000,0.5]}`, out)
	})

	t.Run("native list", func(t *testing.T) {
		statusCode, out, errOut := runMain(t, "eval", "-native", "[1, 2, 3]", "get", "-1", "get", "::-1", "del", "0")
		require.Zero(t, statusCode, errOut)

		lines := outputLines(out)
		require.Len(t, lines, 3)
		assert.JSONEq(t, `{"op":"get","result":3}`, lines[0])
		assert.JSONEq(t, `{"op":"get","result":{"type":"list","kind":"byte","location":"foreign","values":[3,2,1]}}`, lines[1])
		assert.JSONEq(t, `{"type":"list","kind":"byte","location":"foreign","values":[2,3]}`, lines[2])
	})

	t.Run("concat and equal", func(t *testing.T) {
		statusCode, out, errOut := runMain(t, "eval", "-type", "tuple", `[1]`, "concat", `["a"]`, "equal", `[1, "a"]`)
		require.Zero(t, statusCode, errOut)

		lines := outputLines(out)
		require.Len(t, lines, 2)
		assert.JSONEq(t, `{"op":"equal","result":true}`, lines[0])
		assert.JSONEq(t, `{"type":"tuple","kind":"object","location":"managed","values":[1,"a"]}`, lines[1])
	})

	t.Run("repeat", func(t *testing.T) {
		statusCode, out, errOut := runMain(t, "eval", "-type", "bytes", "-native", `[0, 255]`, "repeat", "2")
		require.Zero(t, statusCode, errOut)
		assert.JSONEq(t, `{"type":"bytes","kind":"byte","location":"foreign","values":[0,255,0,255]}`, out)
	})

	t.Run("byte search", func(t *testing.T) {
		statusCode, out, errOut := runMain(t, "eval", "-type", "bytes", "-native", `[1, 2, 1, 2]`, "count", `[1, 2]`, "find", "2", "find", "3")
		require.Zero(t, statusCode, errOut)

		lines := outputLines(out)
		require.Len(t, lines, 4)
		assert.JSONEq(t, `{"op":"count","result":2}`, lines[0])
		assert.JSONEq(t, `{"op":"find","result":1}`, lines[1])
		assert.JSONEq(t, `{"op":"find","result":-1}`, lines[2])

		statusCode, _, errOut = runMain(t, "eval", `[1]`, "count", "1")
		assert.Equal(t, ERROR_STATUS_CODE, statusCode)
		assert.Contains(t, errOut, ErrUnsupportedOperation.Error())
	})

	t.Run("bytearray rejects out of range bytes", func(t *testing.T) {
		statusCode, _, errOut := runMain(t, "eval", "-type", "bytearray", `[1]`, "append", "300")
		assert.Equal(t, ERROR_STATUS_CODE, statusCode)
		assert.Contains(t, errOut, "ValueError")
	})

	t.Run("mutation of an immutable sequence", func(t *testing.T) {
		statusCode, _, errOut := runMain(t, "eval", "-type", "tuple", `[1]`, "append", "2")
		assert.Equal(t, ERROR_STATUS_CODE, statusCode)
		assert.Contains(t, errOut, ErrUnsupportedOperation.Error())
	})

	t.Run("missing arguments", func(t *testing.T) {
		statusCode, _, errOut := runMain(t, "eval", `[1]`, "insert", "0")
		assert.Equal(t, ERROR_STATUS_CODE, statusCode)
		assert.Contains(t, errOut, ErrMissingArguments.Error())
	})
}

func TestBenchSubcommand(t *testing.T) {
	statusCode, out, errOut := runMain(t, "bench", "-kind", "long", "-n", "1000", "-threads", "2", "-native")
	require.Zero(t, statusCode, errOut)
	assert.Contains(t, out, "ops")

	statusCode, _, errOut = runMain(t, "bench", "-kind", "short")
	assert.Equal(t, ERROR_STATUS_CODE, statusCode)
	assert.NotEmpty(t, errOut)
}

func TestParseKey(t *testing.T) {
	t.Parallel()

	key, err := parseKey("-2")
	require.NoError(t, err)
	assert.Equal(t, -2, key)

	key, err = parseKey("1::2")
	require.NoError(t, err)
	assert.Equal(t, seqstorage.Slice{Start: seqstorage.Bound(1), Step: seqstorage.Bound(2)}, key)

	_, err = parseKey("1:2:3:4")
	assert.Error(t, err)

	_, err = parseKey("a")
	assert.Error(t, err)
}
