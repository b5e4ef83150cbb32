package outline

import (
	"fmt"
	"unicode/utf16"
	"unicode/utf8"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	"go.lsp.dev/protocol"
)

// Encoding is the code unit used to count columns in protocol positions.
type Encoding string

const (
	// EncodingUTF8 counts columns in bytes, the unit tree-sitter reports.
	EncodingUTF8 Encoding = "utf-8"
	// EncodingUTF16 counts columns in UTF-16 code units.
	EncodingUTF16 Encoding = "utf-16"
)

// ParseEncoding validates an encoding name from configuration.
func ParseEncoding(s string) (Encoding, error) {
	switch Encoding(s) {
	case EncodingUTF8, EncodingUTF16:
		return Encoding(s), nil
	case "":
		return EncodingUTF8, nil
	default:
		return "", fmt.Errorf("unsupported position encoding %q", s)
	}
}

// Mapper translates tree coordinates into protocol coordinates. Rows are
// copied unchanged; columns are converted to the configured code unit.
type Mapper struct {
	enc Encoding
}

// NewMapper returns a Mapper for enc. An empty encoding means utf-8.
func NewMapper(enc Encoding) Mapper {
	if enc == "" {
		enc = EncodingUTF8
	}
	return Mapper{enc: enc}
}

// Encoding returns the column unit of the mapper.
func (m Mapper) Encoding() Encoding { return m.enc }

// Position converts point, located at byteOffset in source, into a protocol
// position. byteOffset is only consulted for utf-16 columns.
func (m Mapper) Position(source []byte, byteOffset uint, point tree_sitter.Point) protocol.Position {
	pos := protocol.Position{
		Line:      uint32(point.Row),
		Character: uint32(point.Column),
	}
	if m.enc != EncodingUTF16 {
		return pos
	}
	if point.Column > byteOffset || byteOffset > uint(len(source)) {
		return pos
	}
	lineStart := byteOffset - point.Column
	pos.Character = uint32(utf16Len(source[lineStart:byteOffset]))
	return pos
}

// Range converts the full span of node into a protocol range.
func (m Mapper) Range(source []byte, node *tree_sitter.Node) protocol.Range {
	return protocol.Range{
		Start: m.Position(source, node.StartByte(), node.StartPosition()),
		End:   m.Position(source, node.EndByte(), node.EndPosition()),
	}
}

// Text returns the exact text between start and end in source. It fails with
// *DecodeError when the span is out of bounds or splits a character.
func Text(source []byte, start, end uint) (string, error) {
	if start > end || end > uint(len(source)) {
		return "", &DecodeError{Start: start, End: end, Len: len(source)}
	}
	span := source[start:end]
	if !utf8.Valid(span) {
		return "", &DecodeError{Start: start, End: end, Len: len(source)}
	}
	return string(span), nil
}

func utf16Len(b []byte) int {
	n := 0
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		b = b[size:]
		if l := utf16.RuneLen(r); l > 0 {
			n += l
		} else {
			n++
		}
	}
	return n
}
