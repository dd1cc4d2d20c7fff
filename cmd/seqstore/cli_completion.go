package main

import (
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

var (
	predictSequenceType = predict.Set{LIST_TYPE, TUPLE_TYPE, BYTES_TYPE, BYTEARRAY_TYPE}
	predictKind         = predict.Set{"byte", "int", "long", "double", "object"}

	cmd = &complete.Command{
		Sub: map[string]*complete.Command{
			EVAL_SUBCMD: {
				Flags: map[string]complete.Predictor{
					"type":   predictSequenceType,
					"native": predict.Nothing,
				},
				Args: predict.Set(EVAL_OPERATIONS),
			},
			BENCH_SUBCMD: {
				Flags: map[string]complete.Predictor{
					"kind":    predictKind,
					"n":       predict.Nothing,
					"threads": predict.Nothing,
					"native":  predict.Nothing,
				},
			},
			INSTALL_COMPLETIONS_SUBCMD:   {},
			UNINSTALL_COMPLETIONS_SUBCMD: {},
			HELP_SUBCMD: {
				Args: predict.Set(SUBCOMMANDS),
			},
		},
	}
)
