/*
 * Copyright (c) 2024-present Sigma-Soft, Ltd.
 */

package tagio

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strconv"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// Writer pushes tags to a stream. Flush must be called once after the
// last Write.
type Writer interface {
	Write(t Tag) error
	Flush() error
}

// NewTextWriter builds a writer producing two-line records. String
// values are encoded with enc when given.
func NewTextWriter(w io.Writer, enc encoding.Encoding) Writer {
	if enc != nil {
		w = transform.NewWriter(w, enc.NewEncoder())
	}
	return &textWriter{w: bufio.NewWriter(w)}
}

type textWriter struct {
	w *bufio.Writer
}

func (tw *textWriter) Write(t Tag) error {
	if _, err := fmt.Fprintf(tw.w, "%3d\r\n", t.Code); err != nil {
		return err
	}
	_, err := tw.w.WriteString(formatTextValue(t) + "\r\n")
	return err
}

func formatTextValue(t Tag) string {
	switch v := t.Value.(type) {
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []byte:
		const hex = "0123456789ABCDEF"
		out := make([]byte, 0, len(v)*2)
		for _, b := range v {
			out = append(out, hex[b>>4], hex[b&0x0F])
		}
		return string(out)
	}
	return t.AsString()
}

func (tw *textWriter) Flush() error { return tw.w.Flush() }

// NewBinaryWriter builds a writer producing the binary layout, sentinel
// included.
func NewBinaryWriter(w io.Writer) Writer {
	bw := &binaryWriter{w: bufio.NewWriter(w)}
	_, bw.err = bw.w.WriteString(BinarySentinel)
	return bw
}

type binaryWriter struct {
	w   *bufio.Writer
	err error
}

func (bw *binaryWriter) Write(t Tag) error {
	if bw.err != nil {
		return bw.err
	}
	if err := binary.Write(bw.w, binary.LittleEndian, int16(t.Code)); err != nil {
		bw.err = err
		return err
	}
	bw.err = bw.writeValue(t)
	return bw.err
}

func (bw *binaryWriter) writeValue(t Tag) error {
	switch KindOf(t.Code) {
	case KindDouble:
		return binary.Write(bw.w, binary.LittleEndian, math.Float64bits(t.AsFloat()))
	case KindInt16:
		return binary.Write(bw.w, binary.LittleEndian, int16(t.AsInt()))
	case KindInt32:
		return binary.Write(bw.w, binary.LittleEndian, int32(t.AsInt()))
	case KindInt64:
		return binary.Write(bw.w, binary.LittleEndian, t.AsInt64())
	case KindBool:
		b := byte(0)
		if t.AsBool() {
			b = 1
		}
		return bw.w.WriteByte(b)
	case KindChunk:
		chunk, _ := t.Value.([]byte)
		if len(chunk) > math.MaxUint8 {
			return ErrMalformed("group %d chunk is %d bytes, max %d", t.Code, len(chunk), math.MaxUint8)
		}
		if err := bw.w.WriteByte(byte(len(chunk))); err != nil {
			return err
		}
		_, err := bw.w.Write(chunk)
		return err
	}
	if _, err := bw.w.WriteString(t.AsString()); err != nil {
		return err
	}
	return bw.w.WriteByte(0)
}

func (bw *binaryWriter) Flush() error {
	if bw.err != nil {
		return bw.err
	}
	return bw.w.Flush()
}
