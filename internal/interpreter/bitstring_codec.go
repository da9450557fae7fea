package interpreter

import (
	"math"
	"math/big"

	"github.com/funvibe/funbit/pkg/funbit"
)

const (
	endiannessBig    = "big"
	endiannessLittle = "little"
	endiannessNative = "native"
)

func segmentEndianness(seg Segment) string {
	switch seg.Endianness {
	case "":
		return endiannessBig
	case endiannessNative:
		return funbit.GetNativeEndianness()
	}
	return seg.Endianness
}

func segmentType(seg Segment) string {
	if seg.Type == "" {
		return SegmentInteger
	}
	return seg.Type
}

func isUTFSegment(seg Segment) bool {
	switch seg.Type {
	case SegmentUTF8, SegmentUTF16, SegmentUTF32:
		return true
	}
	return false
}

func segmentUnit(seg Segment) int {
	if seg.Unit != 0 {
		return seg.Unit
	}
	if segmentType(seg) == SegmentBinary {
		return 8
	}
	return 1
}

// segmentBitCount computes the width of a segment in bits.
func segmentBitCount(seg Segment) (int, error) {
	if seg.Size != nil {
		return *seg.Size * segmentUnit(seg), nil
	}

	switch segmentType(seg) {
	case SegmentInteger:
		return 8, nil
	case SegmentFloat:
		return 64, nil
	}

	if bs, ok := seg.Value.(*Bitstring); ok {
		return bs.BitCount(), nil
	}
	return 0, newInterpreterError("bitstring segments of type %s without size are supported only for literal values", segmentType(seg))
}

// toFunbit converts a bitstring to funbit storage.
func toFunbit(b *Bitstring) (*funbit.BitString, error) {
	if b.BitCount() == 0 {
		return funbit.NewBitString(), nil
	}
	if b.IsBinary() {
		return funbit.NewBitStringFromBytes(b.Bytes()), nil
	}

	data := b.Bytes()
	whole := b.BitCount() / 8
	leftover := b.LeftoverBitCount()

	builder := funbit.NewBuilder()
	if whole > 0 {
		funbit.AddBinary(builder, data[:whole])
	}
	funbit.AddInteger(builder, int64(data[whole]>>(8-leftover)), funbit.WithSize(uint(leftover)))
	return funbit.Build(builder)
}

func fromFunbit(fb *funbit.BitString) *Bitstring {
	return NewBitstringFromBits(fb.ToBytes(), int(fb.Length()))
}

// bitstringFromSegments encodes literal segments into a bitstring.
func bitstringFromSegments(segments []Segment) (*Bitstring, error) {
	builder := funbit.NewBuilder()
	total := 0

	for _, seg := range segments {
		piece, err := encodeSegment(seg)
		if err != nil {
			return nil, err
		}
		if piece.BitCount() == 0 {
			continue
		}
		fb, err := toFunbit(piece)
		if err != nil {
			return nil, err
		}
		funbit.AddBitstring(builder, fb)
		total += piece.BitCount()
	}

	if total == 0 {
		return NewBitstringFromBytes(nil), nil
	}

	fb, err := funbit.Build(builder)
	if err != nil {
		return nil, newInterpreterError("cannot build bitstring: %v", err)
	}
	return fromFunbit(fb), nil
}

func encodeSegment(seg Segment) (*Bitstring, error) {
	if isUTFSegment(seg) {
		return nil, newInterpreterError("bitstring segments with utf* type modifiers are not yet implemented")
	}

	bitCount, err := segmentBitCount(seg)
	if err != nil {
		return nil, err
	}

	switch segmentType(seg) {
	case SegmentInteger:
		return encodeIntegerSegment(seg, bitCount)
	case SegmentFloat:
		return encodeFloatSegment(seg, bitCount)
	case SegmentBinary, SegmentBitstring:
		value, ok := seg.Value.(*Bitstring)
		if !ok {
			return nil, RaiseArgumentError(BuildArgumentErrorMsg(1, "not a bitstring: "+Inspect(seg.Value)))
		}
		if value.BitCount() < bitCount {
			return nil, RaiseArgumentError(BuildArgumentErrorMsg(1, "the bitstring is shorter than the segment size"))
		}
		if value.BitCount() == bitCount {
			return value, nil
		}
		return value.Take(0, bitCount), nil
	}

	return nil, newInterpreterError("unknown bitstring segment type: %s", seg.Type)
}

func encodeIntegerSegment(seg Segment, bitCount int) (*Bitstring, error) {
	value, ok := seg.Value.(*Integer)
	if !ok {
		return nil, RaiseArgumentError(BuildArgumentErrorMsg(1, "not an integer: "+Inspect(seg.Value)))
	}
	if bitCount == 0 {
		return NewBitstringFromBytes(nil), nil
	}

	// Two's complement truncation to the segment width
	modulus := new(big.Int).Lsh(bigOne, uint(bitCount))
	masked := new(big.Int).Mod(value.Value, modulus)

	endianness := segmentEndianness(seg)
	if endianness == endiannessLittle && bitCount%8 != 0 {
		return encodeLittlePartialInteger(masked, bitCount), nil
	}
	if bitCount > 63 {
		return encodeBigIntegerSegment(masked, bitCount, endianness), nil
	}

	builder := funbit.NewBuilder()
	funbit.AddInteger(builder, masked.Int64(),
		funbit.WithSize(uint(bitCount)),
		funbit.WithEndianness(endianness))
	fb, err := funbit.Build(builder)
	if err != nil {
		return nil, newInterpreterError("cannot encode integer segment: %v", err)
	}
	return fromFunbit(fb), nil
}

// encodeBigIntegerSegment handles widths beyond int64.
func encodeBigIntegerSegment(value *big.Int, bitCount int, endianness string) *Bitstring {
	byteCount := (bitCount + 7) / 8
	pad := byteCount*8 - bitCount

	shifted := new(big.Int).Lsh(value, uint(pad))
	data := shifted.FillBytes(make([]byte, byteCount))

	if endianness == endiannessLittle {
		reverseBytes(data)
	}
	return NewBitstringFromBits(data, bitCount)
}

// encodeLittlePartialInteger writes the low-order bytes first and the
// remaining bitCount%8 high bits last.
func encodeLittlePartialInteger(value *big.Int, bitCount int) *Bitstring {
	whole := bitCount / 8
	data := make([]byte, whole+1)
	rest := new(big.Int).Set(value)
	lowByte := new(big.Int)
	for i := 0; i < whole; i++ {
		data[i] = byte(lowByte.And(rest, byteMask).Uint64())
		rest.Rsh(rest, 8)
	}
	data[whole] = byte(rest.Uint64()) << (8 - bitCount%8)
	return NewBitstringFromBits(data, bitCount)
}

func encodeFloatSegment(seg Segment, bitCount int) (*Bitstring, error) {
	var value float64
	switch v := seg.Value.(type) {
	case *Float:
		value = v.Value
	case *Integer:
		value, _ = new(big.Float).SetInt(v.Value).Float64()
	default:
		return nil, RaiseArgumentError(BuildArgumentErrorMsg(1, "not a number: "+Inspect(seg.Value)))
	}

	if bitCount != 16 && bitCount != 32 && bitCount != 64 {
		return nil, RaiseArgumentError(BuildArgumentErrorMsg(1, "invalid float segment size"))
	}

	builder := funbit.NewBuilder()
	funbit.AddFloat(builder, value,
		funbit.WithSize(uint(bitCount)),
		funbit.WithEndianness(segmentEndianness(seg)))
	fb, err := funbit.Build(builder)
	if err != nil {
		return nil, newInterpreterError("cannot encode float segment: %v", err)
	}
	return fromFunbit(fb), nil
}

// decodeSegmentChunk decodes a chunk taken from a subject according to the
// segment's type, signedness and endianness. It reports false when the chunk
// does not hold a valid value of that type.
func decodeSegmentChunk(seg Segment, chunk *Bitstring) (Term, bool) {
	switch segmentType(seg) {
	case SegmentFloat:
		return decodeFloatChunk(seg, chunk)
	case SegmentBinary, SegmentBitstring:
		return chunk, true
	}
	return decodeIntegerChunk(seg, chunk)
}

func decodeIntegerChunk(seg Segment, chunk *Bitstring) (Term, bool) {
	bitCount := chunk.BitCount()
	if bitCount == 0 {
		return NewInteger(0), true
	}
	if bitCount%8 != 0 && segmentEndianness(seg) == endiannessLittle {
		return decodeLittlePartialInteger(seg, chunk), true
	}
	if bitCount > 63 && !(bitCount == 64 && seg.Signed) {
		return decodeBigIntegerChunk(seg, chunk), true
	}

	fb, err := toFunbit(chunk)
	if err != nil {
		return nil, false
	}

	var value int
	matcher := funbit.NewMatcher()
	funbit.Integer(matcher, &value,
		funbit.WithSize(uint(bitCount)),
		funbit.WithSigned(seg.Signed),
		funbit.WithEndianness(segmentEndianness(seg)))
	if _, err := funbit.Match(matcher, fb); err != nil {
		return nil, false
	}
	return NewInteger(int64(value)), true
}

func decodeBigIntegerChunk(seg Segment, chunk *Bitstring) Term {
	bitCount := chunk.BitCount()
	data := append([]byte(nil), chunk.Bytes()...)
	pad := len(data)*8 - bitCount

	if segmentEndianness(seg) == endiannessLittle {
		reverseBytes(data)
	}

	value := new(big.Int).SetBytes(data)
	value.Rsh(value, uint(pad))
	return &Integer{Value: signExtend(value, bitCount, seg.Signed)}
}

func decodeLittlePartialInteger(seg Segment, chunk *Bitstring) Term {
	bitCount := chunk.BitCount()
	whole := bitCount / 8
	data := chunk.Bytes()

	value := big.NewInt(int64(data[whole] >> (8 - bitCount%8)))
	for i := whole - 1; i >= 0; i-- {
		value.Lsh(value, 8)
		value.Or(value, big.NewInt(int64(data[i])))
	}
	return &Integer{Value: signExtend(value, bitCount, seg.Signed)}
}

var byteMask = big.NewInt(0xFF)

func signExtend(value *big.Int, bitCount int, signed bool) *big.Int {
	if signed && value.Bit(bitCount-1) == 1 {
		value.Sub(value, new(big.Int).Lsh(bigOne, uint(bitCount)))
	}
	return value
}

func decodeFloatChunk(seg Segment, chunk *Bitstring) (Term, bool) {
	fb, err := toFunbit(chunk)
	if err != nil {
		return nil, false
	}

	var value float64
	matcher := funbit.NewMatcher()
	funbit.Float(matcher, &value,
		funbit.WithSize(uint(chunk.BitCount())),
		funbit.WithEndianness(segmentEndianness(seg)))
	if _, err := funbit.Match(matcher, fb); err != nil {
		return nil, false
	}
	// NaN and infinities are not float terms
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return nil, false
	}
	return NewFloat(value), true
}

// concatBitstrings joins bitstrings in order.
func concatBitstrings(items []*Bitstring) (*Bitstring, error) {
	segments := make([]Segment, len(items))
	for i, item := range items {
		segments[i] = Segment{Value: item, Type: SegmentBitstring}
	}
	return bitstringFromSegments(segments)
}

func reverseBytes(data []byte) {
	for i, j := 0, len(data)-1; i < j; i, j = i+1, j-1 {
		data[i], data[j] = data[j], data[i]
	}
}
