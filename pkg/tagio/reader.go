/*
 * Copyright (c) 2024-present Sigma-Soft, Ltd.
 */

package tagio

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// BinarySentinel opens every binary DXF stream.
const BinarySentinel = "AutoCAD Binary DXF\r\n\x1a\x00"

// Reader pulls tags from a stream, one per Next call.
//
//	r, err := tagio.NewReader(stream, nil)
//	for r.Next() {
//	    tag := r.Tag()
//	    …
//	}
//	if err := r.Err(); err != nil { … }
type Reader interface {
	// Next advances to the next tag. Returns false at end of stream or
	// on the first error.
	Next() bool
	// Tag returns the tag read by the last successful Next.
	Tag() Tag
	// Err returns the first error hit by Next, nil at a clean end of
	// stream.
	Err() error
}

// NewReader sniffs the stream and builds the matching reader: a binary
// reader when the stream opens with the binary sentinel, a text reader
// otherwise. Text string values are decoded with enc when given.
func NewReader(r io.Reader, enc encoding.Encoding) (Reader, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(len(BinarySentinel))
	if (err == nil) && IsBinary(head) {
		if _, err := br.Discard(len(BinarySentinel)); err != nil {
			return nil, err
		}
		return newBinaryReader(br), nil
	}
	return newTextReader(br, enc), nil
}

// IsBinary reports whether head opens with the binary DXF sentinel.
func IsBinary(head []byte) bool {
	return bytes.HasPrefix(head, []byte(BinarySentinel))
}

// textReader reads two-line records: a group code line followed by a
// value line. Blank code lines are skipped; leading spaces of a value
// are preserved.
type textReader struct {
	r   *bufio.Reader
	tag Tag
	err error
}

func newTextReader(r *bufio.Reader, enc encoding.Encoding) *textReader {
	if enc != nil {
		r = bufio.NewReader(transform.NewReader(r, enc.NewDecoder()))
	}
	return &textReader{r: r}
}

func (tr *textReader) Next() bool {
	if tr.err != nil {
		return false
	}

	codeLine, err := tr.r.ReadString('\n')
	if err != nil {
		if (err != io.EOF) || (strings.TrimSpace(codeLine) != "") {
			tr.err = err
		}
		return false
	}
	codeStr := strings.TrimSpace(codeLine)
	if codeStr == "" {
		return tr.Next()
	}
	code, err := strconv.Atoi(codeStr)
	if err != nil {
		tr.err = ErrMalformed("group code line «%s»", codeStr)
		return false
	}

	valueLine, err := tr.r.ReadString('\n')
	if (err != nil) && (err != io.EOF) {
		tr.err = err
		return false
	}
	value := strings.TrimRight(valueLine, "\r\n")

	tr.tag, tr.err = parseTextValue(code, value)
	return tr.err == nil
}

func parseTextValue(code int, value string) (Tag, error) {
	switch KindOf(code) {
	case KindDouble:
		f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return Tag{}, ErrMalformed("group %d value «%s» is not a double", code, value)
		}
		return Tag{code, f}, nil
	case KindInt16:
		i, err := strconv.ParseInt(strings.TrimSpace(value), 10, 16)
		if err != nil {
			return Tag{}, ErrMalformed("group %d value «%s» is not an int16", code, value)
		}
		return Tag{code, int16(i)}, nil
	case KindInt32:
		i, err := strconv.ParseInt(strings.TrimSpace(value), 10, 32)
		if err != nil {
			return Tag{}, ErrMalformed("group %d value «%s» is not an int32", code, value)
		}
		return Tag{code, int32(i)}, nil
	case KindInt64:
		i, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return Tag{}, ErrMalformed("group %d value «%s» is not an int64", code, value)
		}
		return Tag{code, i}, nil
	case KindBool:
		i, err := strconv.ParseInt(strings.TrimSpace(value), 10, 8)
		if err != nil {
			return Tag{}, ErrMalformed("group %d value «%s» is not a bool", code, value)
		}
		return Tag{code, i != 0}, nil
	case KindChunk:
		chunk := make([]byte, 0, len(value)/2)
		for i := 0; i+1 < len(value); i += 2 {
			b, err := strconv.ParseUint(value[i:i+2], 16, 8)
			if err != nil {
				return Tag{}, ErrMalformed("group %d chunk «%s»", code, value)
			}
			chunk = append(chunk, byte(b))
		}
		return Tag{code, chunk}, nil
	}
	return Tag{code, value}, nil
}

func (tr *textReader) Tag() Tag { return tr.tag }

func (tr *textReader) Err() error { return tr.err }

// binaryReader reads the post-sentinel binary layout: two-byte little
// endian group codes, values typed per group code.
type binaryReader struct {
	r   *bufio.Reader
	tag Tag
	err error
}

func newBinaryReader(r *bufio.Reader) *binaryReader {
	return &binaryReader{r: r}
}

func (br *binaryReader) Next() bool {
	if br.err != nil {
		return false
	}

	var code int16
	if err := binary.Read(br.r, binary.LittleEndian, &code); err != nil {
		if err != io.EOF {
			br.err = err
		}
		return false
	}

	value, err := br.readValue(int(code))
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		br.err = err
		return false
	}
	br.tag = Tag{Code: int(code), Value: value}
	return true
}

func (br *binaryReader) readValue(code int) (any, error) {
	switch KindOf(code) {
	case KindDouble:
		var bits uint64
		if err := binary.Read(br.r, binary.LittleEndian, &bits); err != nil {
			return nil, err
		}
		return math.Float64frombits(bits), nil
	case KindInt16:
		var v int16
		err := binary.Read(br.r, binary.LittleEndian, &v)
		return v, err
	case KindInt32:
		var v int32
		err := binary.Read(br.r, binary.LittleEndian, &v)
		return v, err
	case KindInt64:
		var v int64
		err := binary.Read(br.r, binary.LittleEndian, &v)
		return v, err
	case KindBool:
		b, err := br.r.ReadByte()
		return b != 0, err
	case KindChunk:
		n, err := br.r.ReadByte()
		if err != nil {
			return nil, err
		}
		chunk := make([]byte, n)
		if _, err := io.ReadFull(br.r, chunk); err != nil {
			return nil, err
		}
		return chunk, nil
	}
	s, err := br.r.ReadString(0)
	if err != nil {
		return nil, err
	}
	return s[:len(s)-1], nil
}

func (br *binaryReader) Tag() Tag { return br.tag }

func (br *binaryReader) Err() error { return br.err }
