/*
 * Copyright (c) 2024-present Sigma-Soft, Ltd.
 */

package tagio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func Test_KindOf(t *testing.T) {
	require := require.New(t)

	tests := []struct {
		code int
		kind Kind
	}{
		{0, KindString},
		{2, KindString},
		{5, KindString},
		{10, KindDouble},
		{40, KindDouble},
		{62, KindInt16},
		{70, KindInt16},
		{90, KindInt32},
		{105, KindString},
		{160, KindInt64},
		{210, KindDouble},
		{280, KindInt16},
		{290, KindBool},
		{310, KindChunk},
		{330, KindString},
		{420, KindInt32},
		{999, KindString},
		{1000, KindString},
		{1040, KindDouble},
		{1070, KindInt16},
		{1071, KindInt32},
	}
	for _, tt := range tests {
		require.Equal(tt.kind, KindOf(tt.code), "code %d", tt.code)
	}
}

func Test_TextReader(t *testing.T) {
	require := require.New(t)

	t.Run("must read two-line records", func(t *testing.T) {
		r, err := NewReader(strings.NewReader("0\nSECTION\n2\nHEADER\n0\nENDSEC\n"), nil)
		require.NoError(err)

		want := []Tag{
			{0, "SECTION"},
			{2, "HEADER"},
			{0, "ENDSEC"},
		}
		for _, w := range want {
			require.True(r.Next())
			require.Equal(w, r.Tag())
		}
		require.False(r.Next())
		require.NoError(r.Err())
	})

	t.Run("must type values by group code", func(t *testing.T) {
		r, err := NewReader(strings.NewReader("10\n1.5\n70\n  7\n90\n-42\n290\n1\n"), nil)
		require.NoError(err)

		require.True(r.Next())
		require.Equal(1.5, r.Tag().AsFloat())
		require.True(r.Next())
		require.Equal(int16(7), r.Tag().Value)
		require.True(r.Next())
		require.Equal(int32(-42), r.Tag().Value)
		require.True(r.Next())
		require.Equal(true, r.Tag().Value)
		require.False(r.Next())
	})

	t.Run("must keep leading value spaces and skip blank code lines", func(t *testing.T) {
		r, err := NewReader(strings.NewReader("1\n  indented\n\n0\nEOF\n"), nil)
		require.NoError(err)

		require.True(r.Next())
		require.Equal("  indented", r.Tag().AsString())
		require.True(r.Next())
		require.Equal("EOF", r.Tag().AsString())
	})

	t.Run("must accept carriage returns and missing final newline", func(t *testing.T) {
		r, err := NewReader(strings.NewReader("0\r\nLINE\r\n8\r\nWalls"), nil)
		require.NoError(err)

		require.True(r.Next())
		require.Equal(Tag{0, "LINE"}, r.Tag())
		require.True(r.Next())
		require.Equal(Tag{8, "Walls"}, r.Tag())
		require.False(r.Next())
		require.NoError(r.Err())
	})

	t.Run("must fail on malformed records", func(t *testing.T) {
		r, _ := NewReader(strings.NewReader("zero\nSECTION\n"), nil)
		require.False(r.Next())
		require.ErrorIs(r.Err(), ErrMalformedError)

		r, _ = NewReader(strings.NewReader("10\nnot-a-number\n"), nil)
		require.False(r.Next())
		require.ErrorIs(r.Err(), ErrMalformedError)
	})

	t.Run("must decode codepage strings", func(t *testing.T) {
		// «Ä» in ANSI_1252
		r, err := NewReader(strings.NewReader("2\n\xc4\n"), charmap.Windows1252)
		require.NoError(err)

		require.True(r.Next())
		require.Equal("Ä", r.Tag().AsString())
	})
}

func Test_Codepage(t *testing.T) {
	require := require.New(t)

	enc, err := Codepage("ANSI_1252")
	require.NoError(err)
	require.Equal(charmap.Windows1252, enc)

	enc, err = Codepage("ansi_1251")
	require.NoError(err)
	require.Equal(charmap.Windows1251, enc)

	_, err = Codepage("EBCDIC")
	require.ErrorIs(err, ErrCodepageError)
}

func Test_TextWriter(t *testing.T) {
	require := require.New(t)

	buf := new(bytes.Buffer)
	w := NewTextWriter(buf, nil)

	for _, tag := range []Tag{
		{0, "LINE"},
		{8, "Walls"},
		{10, 1.5},
		{70, int16(7)},
		{310, []byte{0xDE, 0xAD}},
	} {
		require.NoError(w.Write(tag))
	}
	require.NoError(w.Flush())

	require.Equal(
		"  0\r\nLINE\r\n  8\r\nWalls\r\n 10\r\n1.5\r\n 70\r\n7\r\n310\r\nDEAD\r\n",
		buf.String())
}

func Test_Binary_RoundTrip(t *testing.T) {
	require := require.New(t)

	want := []Tag{
		{0, "SECTION"},
		{2, "ENTITIES"},
		{10, 1.25},
		{62, int16(256)},
		{90, int32(1 << 20)},
		{160, int64(1) << 40},
		{290, true},
		{310, []byte{1, 2, 3}},
		{0, "EOF"},
	}

	buf := new(bytes.Buffer)
	w := NewBinaryWriter(buf)
	for _, tag := range want {
		require.NoError(w.Write(tag))
	}
	require.NoError(w.Flush())

	require.True(IsBinary(buf.Bytes()))

	r, err := NewReader(bytes.NewReader(buf.Bytes()), nil)
	require.NoError(err)

	var got []Tag
	for r.Next() {
		got = append(got, r.Tag())
	}
	require.NoError(r.Err())
	require.Equal(want, got)
}

func Test_Binary_Truncated(t *testing.T) {
	require := require.New(t)

	buf := new(bytes.Buffer)
	w := NewBinaryWriter(buf)
	require.NoError(w.Write(Tag{10, 1.0}))
	require.NoError(w.Flush())

	r, err := NewReader(bytes.NewReader(buf.Bytes()[:buf.Len()-4]), nil)
	require.NoError(err)
	require.False(r.Next())
	require.Error(r.Err())
}
