package main

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/inoxlang/seqstore/internal/config"
	"github.com/inoxlang/seqstore/internal/nativemem"
	"github.com/inoxlang/seqstore/internal/seqstorage"
	"github.com/inoxlang/seqstore/internal/utils"
	"github.com/posener/complete/v2/install"
)

const (
	ERROR_STATUS_CODE = 1
	COMMAND_NAME      = "seqstore"
)

func main() {
	//handle completions
	cmd.Complete(COMMAND_NAME)

	statusCode := _main(os.Args, os.Stdout, os.Stderr)
	if statusCode != 0 {
		os.Exit(statusCode)
	}
}

func _main(args []string, outW io.Writer, errW io.Writer) (statusCode int) {
	if len(args) == 1 {
		fmt.Fprint(outW, SEQSTORE_CMD_HELP)
		return
	}

	mainSubCommand := args[1]
	mainSubCommandArgs := args[2:]

	//help <subcommand> is equivalent to <subcommand> -h
	if mainSubCommand == HELP_SUBCMD && len(mainSubCommandArgs) > 0 && slices.Contains(SUBCOMMANDS, mainSubCommandArgs[0]) {
		mainSubCommand = mainSubCommandArgs[0]
		mainSubCommandArgs = []string{"-h"}
	}

	if !slices.Contains(SUBCOMMANDS, mainSubCommand) && !slices.Contains(HELP_SUBCMD_EQUIVALENTS, mainSubCommand) {
		fmt.Fprintf(errW, "unknown command '%s'\n%s", mainSubCommand, SEQSTORE_CMD_HELP)
		return ERROR_STATUS_CODE
	}

	switch mainSubCommand {
	case HELP_SUBCMD, "--help", "-help", "-h":
		fmt.Fprint(outW, SEQSTORE_CMD_HELP)
		return
	case INSTALL_COMPLETIONS_SUBCMD:
		err := install.Install(COMMAND_NAME)
		if err != nil {
			fmt.Fprintln(errW, err)
			return ERROR_STATUS_CODE
		}
		fmt.Fprintln(outW, "installed")
		return
	case UNINSTALL_COMPLETIONS_SUBCMD:
		err := install.Uninstall(COMMAND_NAME)
		if err != nil {
			fmt.Fprintln(errW, err)
			return ERROR_STATUS_CODE
		}
		fmt.Fprintln(outW, "uninstalled")
		return
	}

	conf, err := config.Load()
	if err != nil {
		fmt.Fprintln(errW, err)
		return ERROR_STATUS_CODE
	}

	logger := conf.NewLogger(errW)
	seqstorage.SetLogger(logger)

	arena := nativemem.NewArena(conf.ArenaConfig(logger))
	defer func() {
		if err := arena.Close(); err != nil {
			logger.Err(err).Msg("failed to close the native arena")
		}
	}()

	//native allocation failures are reported as panics
	defer func() {
		if e := recover(); e != nil {
			err := utils.ConvertPanicValueToError(e)
			fmt.Fprintln(errW, err)
			statusCode = ERROR_STATUS_CODE
		}
	}()

	switch mainSubCommand {
	case EVAL_SUBCMD:
		return evalSubCommand(mainSubCommandArgs, arena, outW, errW)
	case BENCH_SUBCMD:
		return benchSubCommand(mainSubCommandArgs, arena, logger, outW, errW)
	}

	fmt.Fprintf(errW, "subcommand '%s' is not handled\n", mainSubCommand)
	return ERROR_STATUS_CODE
}
