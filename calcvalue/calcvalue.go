// Package calcvalue implements the on-disk wrapper format for a calculated
// column's stored value: a fixed-size opaque header, a little-endian
// length prefix, the encoded payload, and a fixed trailer. See numeric.go
// for the NUMERIC type's specialized inner layout.
package calcvalue

import (
	"encoding/binary"
	"math"
	"unicode/utf16"

	jerrors "github.com/gordthompson/jackcess-go/errors"
	"github.com/gordthompson/jackcess-go/temporal"
	"github.com/gordthompson/jackcess-go/value"
)

// prefixLen is the opaque leading portion of the wrapper header; its
// semantics are undocumented upstream, so it is preserved verbatim on
// read and zero-filled on fresh creation rather than interpreted.
const prefixLen = 16

// lenFieldSize is the byte width of the little-endian dataLen field that
// follows the opaque prefix.
const lenFieldSize = 4

// trailerLen pads the wrapper so its total fixed overhead (prefix + dataLen
// field + trailer, not counting the payload) is 23 bytes.
const trailerLen = 23 - prefixLen - lenFieldSize

// headerLen is the number of bytes preceding the payload.
const headerLen = prefixLen + lenFieldSize

// ColumnType identifies which on-disk payload shape a calculated column
// uses. Unlike value.Kind, it distinguishes BOOLEAN from LONG: both are
// VBA LONG(-1)/LONG(0) at the value layer, but a calculated BOOLEAN is
// wrapped as a single 0xFF/0x00 byte rather than a 4-byte integer.
type ColumnType int

const (
	TypeBoolean ColumnType = iota
	TypeLong
	TypeDouble
	TypeNumeric
	TypeText
	TypeDateTime
)

// Decoded is a calculated value read back off disk, paired with the opaque
// prefix bytes so a caller re-encoding the same row can round-trip them.
type Decoded struct {
	Value  value.Value
	Prefix [prefixLen]byte
}

// Decode strips the wrapper around data and decodes its payload as colType.
// cfg supplies the rendering format for a TypeDateTime result.
func Decode(data []byte, colType ColumnType, cfg temporal.Config) (Decoded, error) {
	if len(data) < headerLen {
		return Decoded{}, jerrors.NewCorruptState("calculated value wrapper shorter than header (%d bytes)", len(data))
	}
	var prefix [prefixLen]byte
	copy(prefix[:], data[:prefixLen])

	dataLen := int(binary.LittleEndian.Uint32(data[prefixLen:headerLen]))
	remaining := len(data) - headerLen
	if dataLen > remaining {
		dataLen = remaining
	}
	payload := data[headerLen : headerLen+dataLen]

	v, err := decodePayload(payload, colType, cfg)
	if err != nil {
		return Decoded{}, err
	}
	return Decoded{Value: v, Prefix: prefix}, nil
}

// Encode wraps v as a calculated column's on-disk representation: prefix
// (copied from preservePrefix, typically the bytes a prior Decode
// returned, or the zero value for a newly created row), dataLen, the
// type-specific payload, and a zero trailer.
func Encode(v value.Value, colType ColumnType, preservePrefix [prefixLen]byte, maxScale int32) ([]byte, error) {
	payload, err := encodePayload(v, colType, maxScale)
	if err != nil {
		return nil, err
	}
	out := make([]byte, headerLen+len(payload)+trailerLen)
	copy(out[:prefixLen], preservePrefix[:])
	binary.LittleEndian.PutUint32(out[prefixLen:headerLen], uint32(len(payload)))
	copy(out[headerLen:], payload)
	return out, nil
}

func decodePayload(payload []byte, colType ColumnType, cfg temporal.Config) (value.Value, error) {
	switch colType {
	case TypeBoolean:
		return decodeBoolean(payload)
	case TypeLong:
		return decodeLong(payload)
	case TypeDouble:
		return decodeDouble(payload)
	case TypeNumeric:
		d, err := DecodeNumeric(payload)
		if err != nil {
			return value.Value{}, err
		}
		return value.BigDec(d), nil
	case TypeText:
		return decodeText(payload)
	case TypeDateTime:
		return decodeDateTime(payload, cfg)
	default:
		return value.Value{}, jerrors.NewCorruptState("unknown calculated column type %d", colType)
	}
}

func encodePayload(v value.Value, colType ColumnType, maxScale int32) ([]byte, error) {
	switch colType {
	case TypeBoolean:
		return encodeBoolean(v)
	case TypeLong:
		return encodeLong(v)
	case TypeDouble:
		return encodeDouble(v)
	case TypeNumeric:
		d, err := v.AsBigDecimal()
		if err != nil {
			return nil, err
		}
		return EncodeNumeric(d, maxScale)
	case TypeText:
		return encodeText(v)
	case TypeDateTime:
		return encodeDateTime(v)
	default:
		return nil, jerrors.NewCorruptState("unknown calculated column type %d", colType)
	}
}

// decodeBoolean reads the single 0xFF/0x00 byte a calculated BOOLEAN always
// carries; unlike an ordinary column, this bit never lives in the row's
// null-mask.
func decodeBoolean(payload []byte) (value.Value, error) {
	if len(payload) < 1 {
		return value.Value{}, jerrors.NewCorruptState("calculated boolean payload is empty")
	}
	return value.FromBool(payload[0] != 0x00), nil
}

func encodeBoolean(v value.Value) ([]byte, error) {
	b, err := v.AsBoolean()
	if err != nil {
		return nil, err
	}
	if b {
		return []byte{0xFF}, nil
	}
	return []byte{0x00}, nil
}

func decodeLong(payload []byte) (value.Value, error) {
	if len(payload) < 4 {
		return value.Value{}, jerrors.NewCorruptState("calculated long payload shorter than 4 bytes")
	}
	return value.Long(int32(binary.LittleEndian.Uint32(payload))), nil
}

func encodeLong(v value.Value) ([]byte, error) {
	n, err := v.AsLong()
	if err != nil {
		return nil, err
	}
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, uint32(n))
	return buf, nil
}

func decodeDouble(payload []byte) (value.Value, error) {
	if len(payload) < 8 {
		return value.Value{}, jerrors.NewCorruptState("calculated double payload shorter than 8 bytes")
	}
	bits := binary.LittleEndian.Uint64(payload)
	return value.Double(math.Float64frombits(bits)), nil
}

func encodeDouble(v value.Value) ([]byte, error) {
	f, err := v.AsDouble()
	if err != nil {
		return nil, err
	}
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, math.Float64bits(f))
	return buf, nil
}

func decodeDateTime(payload []byte, cfg temporal.Config) (value.Value, error) {
	if len(payload) < 8 {
		return value.Value{}, jerrors.NewCorruptState("calculated date-time payload shorter than 8 bytes")
	}
	bits := binary.LittleEndian.Uint64(payload)
	dd := temporal.DateDouble(math.Float64frombits(bits))
	return value.DateTime(dd, cfg), nil
}

func encodeDateTime(v value.Value) ([]byte, error) {
	var dd temporal.DateDouble
	if v.IsTemporal() {
		dd = v.DateDoubleValue()
	} else {
		f, err := v.AsDouble()
		if err != nil {
			return nil, err
		}
		dd = temporal.DateDouble(f)
	}
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, math.Float64bits(float64(dd)))
	return buf, nil
}

// decodeText decodes a calculated TEXT payload, stored as UTF-16LE like
// every other Jet text field.
func decodeText(payload []byte) (value.Value, error) {
	if len(payload)%2 != 0 {
		return value.Value{}, jerrors.NewCorruptState("calculated text payload has odd byte length %d", len(payload))
	}
	units := make([]uint16, len(payload)/2)
	for i := range units {
		units[i] = binary.LittleEndian.Uint16(payload[i*2:])
	}
	return value.String(string(utf16.Decode(units))), nil
}

func encodeText(v value.Value) ([]byte, error) {
	s := v.AsString()
	units := utf16.Encode([]rune(s))
	buf := make([]byte, len(units)*2)
	for i, u := range units {
		binary.LittleEndian.PutUint16(buf[i*2:], u)
	}
	return buf, nil
}
