package main

import (
	"flag"
	"fmt"
	"io"
	"strings"
)

const (
	EVAL_SUBCMD                  = "eval"
	BENCH_SUBCMD                 = "bench"
	INSTALL_COMPLETIONS_SUBCMD   = "install-completions"
	UNINSTALL_COMPLETIONS_SUBCMD = "uninstall-completions"
	HELP_SUBCMD                  = "help"
)

var (
	SUBCOMMANDS = []string{
		EVAL_SUBCMD, BENCH_SUBCMD, INSTALL_COMPLETIONS_SUBCMD, UNINSTALL_COMPLETIONS_SUBCMD, HELP_SUBCMD,
	}

	HELP_SUBCMD_EQUIVALENTS = []string{"--help", "-help", "-h"}

	SUBCOMMAND_DESCRIPTIONS = [][2]string{
		{EVAL_SUBCMD, "create a sequence from a JSON array and apply operations to it"},
		{BENCH_SUBCMD, "measure the throughput of storage operations"},
		{INSTALL_COMPLETIONS_SUBCMD, "install CLI completions by adding the completion command to the detected rc file (supported shells are bash, zsh and fish)"},
		{UNINSTALL_COMPLETIONS_SUBCMD, "uninstall CLI completions by removing the completion command from the detected rc file"},
		{HELP_SUBCMD, "show the general help or command-specific help"},
	}

	SEQSTORE_CMD_HELP = "commands:\n"
)

func init() {
	maxLen := 0
	for _, desc := range SUBCOMMAND_DESCRIPTIONS {
		maxLen = max(maxLen, len(desc[0]))
	}

	buf := &strings.Builder{}
	buf.WriteString(SEQSTORE_CMD_HELP)
	for _, desc := range SUBCOMMAND_DESCRIPTIONS {
		fmt.Fprintf(buf, "  %s%s  %s\n", desc[0], strings.Repeat(" ", maxLen-len(desc[0])), desc[1])
	}
	SEQSTORE_CMD_HELP = buf.String()
}

func showHelp(flags *flag.FlagSet, usage string, outW io.Writer) {
	fmt.Fprintf(outW, "usage: %s %s\n\n", COMMAND_NAME, usage)
	flags.SetOutput(outW)
	flags.PrintDefaults()
}
