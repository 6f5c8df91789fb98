/*
 * Copyright (c) 2024-present Sigma-Soft, Ltd.
 */

package main

import (
	_ "embed"
	"os"

	"github.com/untillpro/goutils/cobrau"
)

//go:embed version
var version string

func main() {
	if err := execRootCmd(os.Args, version); err != nil {
		os.Exit(1)
	}
}

func execRootCmd(args []string, ver string) error {
	version = ver
	rootCmd := cobrau.PrepareRootCmd(
		"dxftool",
		"Drawing interchange file utility",
		args,
		version,
		newInfoCmd(),
		newConvertCmd(),
		newAuditCmd(),
	)
	return cobrau.ExecCommandAndCatchInterrupt(rootCmd)
}
