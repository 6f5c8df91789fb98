/*
 * Copyright (c) 2024-present Sigma-Soft, Ltd.
 */

package main

import (
	"github.com/spf13/cobra"
	"github.com/untillpro/goutils/logger"

	"github.com/voedger/dxf/pkg/dxfio"
)

var (
	convertOutput string
	convertBinary bool
)

func newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <file>",
		Short: "Rewrite a drawing file, text or binary encoded",
		Args:  cobra.ExactArgs(1),
		RunE:  convert,
	}

	cmd.PersistentFlags().StringVarP(&convertOutput, "output", "o", "", "Path to the rewritten file")
	cmd.PersistentFlags().BoolVar(&convertBinary, "binary", false, "Produce the binary layout")
	if err := cmd.MarkPersistentFlagRequired("output"); err != nil {
		logger.Error(err.Error())
		return nil
	}

	return cmd
}

func convert(cmd *cobra.Command, args []string) error {
	doc, err := dxfio.Open(args[0])
	if err != nil {
		return err
	}
	if err := dxfio.SaveFile(convertOutput, doc, convertBinary); err != nil {
		return err
	}
	logger.Info("converted ", args[0], " to ", convertOutput)
	return nil
}
