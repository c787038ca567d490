// Package encoding normalizes statement files to UTF-8 before parsing.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	xenc "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// sniffLen is how much of the input is inspected before choosing a decoder.
const sniffLen = 4096

// Charset is a detected source encoding.
type Charset string

const (
	UTF8        Charset = "UTF-8"
	UTF8BOM     Charset = "UTF-8-BOM"
	UTF16LE     Charset = "UTF-16LE"
	UTF16BE     Charset = "UTF-16BE"
	Windows1252 Charset = "windows-1252"
	ISO88599    Charset = "ISO-8859-9"
)

var boms = []struct {
	prefix  []byte
	charset Charset
}{
	{[]byte{0xEF, 0xBB, 0xBF}, UTF8BOM},
	{[]byte{0xFF, 0xFE}, UTF16LE},
	{[]byte{0xFE, 0xFF}, UTF16BE},
}

// Detect guesses the charset of buf. A byte-order mark wins, then strict
// UTF-8 validity, then chardet. Anything chardet cannot place is treated
// as Windows-1252, the usual encoding of bank exports.
func Detect(buf []byte) Charset {
	for _, b := range boms {
		if bytes.HasPrefix(buf, b.prefix) {
			return b.charset
		}
	}

	if utf8.Valid(buf) {
		return UTF8
	}

	result, err := chardet.NewTextDetector().DetectBest(buf)
	if err != nil {
		return Windows1252
	}

	switch result.Charset {
	case "UTF-8":
		return UTF8
	case "ISO-8859-9":
		return ISO88599
	default:
		return Windows1252
	}
}

func (c Charset) decoder() *xenc.Decoder {
	switch c {
	case UTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
	case UTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()
	case Windows1252:
		return charmap.Windows1252.NewDecoder()
	case ISO88599:
		return charmap.ISO8859_9.NewDecoder()
	default:
		return nil
	}
}

// NewUTF8Reader wraps r so that reads yield UTF-8 regardless of the
// source charset. A UTF-8 byte-order mark is dropped.
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReaderSize(r, sniffLen)

	buf, err := br.Peek(sniffLen)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("peek: %w", err)
	}

	charset := Detect(buf)

	if charset == UTF8BOM {
		_, _ = br.Discard(3)
		return br, nil
	}

	if dec := charset.decoder(); dec != nil {
		return transform.NewReader(br, dec), nil
	}

	return br, nil
}
