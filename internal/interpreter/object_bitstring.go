package interpreter

import (
	"bytes"
	"sync"
	"unicode"
	"unicode/utf8"
)

// Bitstring is a sequence of bits. It keeps a text view when built from a
// string and materializes the byte view from it lazily. Bytes are stored
// most significant bit first; unused trailing bits of the last byte are zero.
type Bitstring struct {
	text     *string
	once     sync.Once
	bytes    []byte
	bitCount int
}

func (b *Bitstring) Type() TermType { return BITSTRING_TERM }

func NewBitstring(text string) *Bitstring {
	return &Bitstring{text: &text, bitCount: len(text) * 8}
}

func NewBitstringFromBytes(data []byte) *Bitstring {
	bs := &Bitstring{bytes: append([]byte(nil), data...), bitCount: len(data) * 8}
	return bs
}

// NewBitstringFromBits takes the first bitCount bits of data.
func NewBitstringFromBits(data []byte, bitCount int) *Bitstring {
	n := (bitCount + 7) / 8
	buf := make([]byte, n)
	copy(buf, data)
	if rem := bitCount % 8; rem != 0 {
		buf[n-1] &= byte(0xFF << (8 - rem))
	}
	bs := &Bitstring{bytes: buf, bitCount: bitCount}
	return bs
}

func (b *Bitstring) maybeSetBytesFromText() {
	b.once.Do(func() {
		if b.text != nil {
			b.bytes = []byte(*b.text)
		}
	})
}

func (b *Bitstring) BitCount() int { return b.bitCount }

func (b *Bitstring) ByteCount() int { return (b.bitCount + 7) / 8 }

// LeftoverBitCount is the number of meaningful bits in the last byte when
// the bitstring is not byte aligned, zero otherwise.
func (b *Bitstring) LeftoverBitCount() int { return b.bitCount % 8 }

func (b *Bitstring) IsBinary() bool { return b.bitCount%8 == 0 }

// Bytes returns the byte view. The slice must not be modified.
func (b *Bitstring) Bytes() []byte {
	b.maybeSetBytesFromText()
	return b.bytes
}

func (b *Bitstring) ByteAt(i int) byte {
	return b.Bytes()[i]
}

// Text returns the text view when the bitstring is byte aligned valid UTF-8.
func (b *Bitstring) Text() (string, bool) {
	if b.text != nil {
		return *b.text, true
	}
	if !b.IsBinary() || !utf8.Valid(b.bytes) {
		return "", false
	}
	return string(b.bytes), true
}

// IsPrintableText reports whether the bitstring renders as quoted text.
func (b *Bitstring) IsPrintableText() bool {
	text, ok := b.Text()
	if !ok || !utf8.ValidString(text) {
		return false
	}
	for _, r := range text {
		if !isPrintableRune(r) {
			return false
		}
	}
	return true
}

func isPrintableRune(r rune) bool {
	switch r {
	case '\n', '\r', '\t', '\v', '\b', '\f', '\a', 0x1b:
		return true
	}
	return unicode.IsPrint(r)
}

// Take returns the bits [offset, offset+width) as a new bitstring.
func (b *Bitstring) Take(offset, width int) *Bitstring {
	src := b.Bytes()
	if offset%8 == 0 {
		start := offset / 8
		end := start + (width+7)/8
		return NewBitstringFromBits(src[start:end], width)
	}

	dst := make([]byte, (width+7)/8)
	for i := 0; i < width; i++ {
		pos := offset + i
		if src[pos/8]&(0x80>>(pos%8)) != 0 {
			dst[i/8] |= 0x80 >> (i % 8)
		}
	}
	return NewBitstringFromBits(dst, width)
}

func (b *Bitstring) equals(other *Bitstring) bool {
	if b.text != nil && other.text != nil && *b.text == *other.text {
		return true
	}
	if b.bitCount != other.bitCount {
		return false
	}
	return bytes.Equal(b.Bytes(), other.Bytes())
}
