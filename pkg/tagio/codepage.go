/*
 * Copyright (c) 2024-present Sigma-Soft, Ltd.
 */

package tagio

import (
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// codepages maps $DWGCODEPAGE header values to their character set.
// Files carrying a codepage outside this map are read as UTF-8.
var codepages = map[string]encoding.Encoding{
	"ansi_1250": charmap.Windows1250,
	"ansi_1251": charmap.Windows1251,
	"ansi_1252": charmap.Windows1252,
	"ansi_1253": charmap.Windows1253,
	"ansi_1254": charmap.Windows1254,
	"ansi_1255": charmap.Windows1255,
	"ansi_1256": charmap.Windows1256,
	"ansi_1257": charmap.Windows1257,
	"ansi_1258": charmap.Windows1258,
	"ansi_874":  charmap.Windows874,
}

// Codepage resolves a $DWGCODEPAGE header value («ANSI_1252», …) to its
// encoding.
func Codepage(name string) (encoding.Encoding, error) {
	if e, ok := codepages[strings.ToLower(name)]; ok {
		return e, nil
	}
	return nil, ErrCodepage("«%s»", name)
}
