/*
 * Copyright (c) 2024-present Sigma-Soft, Ltd.
 */

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/voedger/dxf/pkg/drawing"
	"github.com/voedger/dxf/pkg/dxfio"
)

var auditUnused bool

func newAuditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit <file>",
		Short: "Report table resources and their reference counts",
		Args:  cobra.ExactArgs(1),
		RunE:  audit,
	}

	cmd.PersistentFlags().BoolVar(&auditUnused, "unused", false, "List unreferenced resources only")

	return cmd
}

func audit(cmd *cobra.Command, args []string) error {
	doc, err := dxfio.Open(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	auditTable(out, doc.Layers)
	auditTable(out, doc.Linetypes)
	auditTable(out, doc.TextStyles)
	auditTable(out, doc.DimensionStyles)
	auditTable(out, doc.MLineStyles)
	auditTable(out, doc.ApplicationRegistries)
	auditTable(out, doc.Blocks)
	return nil
}

func auditTable[T interface {
	drawing.TableObject
	comparable
}](out io.Writer, t *drawing.Table[T]) {
	for _, name := range t.Names() {
		refs := len(t.References(name))
		if auditUnused && refs > 0 {
			continue
		}
		fmt.Fprintf(out, "%-12s %-24s %d\n", t.Name(), name, refs)
	}
}
