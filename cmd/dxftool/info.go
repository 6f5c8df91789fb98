/*
 * Copyright (c) 2024-present Sigma-Soft, Ltd.
 */

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/voedger/dxf/pkg/dxfio"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <file>",
		Short: "Print a summary of a drawing file",
		Args:  cobra.ExactArgs(1),
		RunE:  info,
	}
}

func info(cmd *cobra.Command, args []string) error {
	doc, err := dxfio.Open(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, c := range doc.Comments {
		fmt.Fprintln(out, "//", c)
	}
	fmt.Fprintln(out, "objects:  ", doc.AddedCount())
	fmt.Fprintln(out, "handles:  ", doc.NumHandles())
	fmt.Fprintln(out, "entities: ", len(doc.Entities()))

	for _, t := range []struct {
		name  string
		count int
	}{
		{"layers", len(doc.Layers.Names())},
		{"linetypes", len(doc.Linetypes.Names())},
		{"text styles", len(doc.TextStyles.Names())},
		{"dim styles", len(doc.DimensionStyles.Names())},
		{"blocks", len(doc.Blocks.Names())},
		{"layouts", len(doc.Layouts.Names())},
	} {
		fmt.Fprintf(out, "%-12s%d\n", t.name+":", t.count)
	}

	fmt.Fprintln(out, "active layout:", doc.ActiveLayout().Name())
	return nil
}
