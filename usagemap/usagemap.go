// Package usagemap implements the per-table page-usage map: a bitmap of
// which pages belong to a table (or the free-space pool), stored either
// inline in a declaration row or, once it outgrows that row, spread across
// dedicated reference pages. See inline.go and reference.go for the dual
// representation and iterator.go for mutation-stable traversal.
package usagemap

import (
	"encoding/binary"

	jerrors "github.com/gordthompson/jackcess-go/errors"
	"github.com/gordthompson/jackcess-go/internal/jetformat"
	"github.com/gordthompson/jackcess-go/internal/pagechannel"
)

// typeTag values for the first byte of a usage map's declaration row.
const (
	typeTagInline    byte = 0x00
	typeTagReference byte = 0x01
)

// RowStorage gives a UsageMap access to the bytes of its declaration row,
// which lives inside a host page whose layout (other columns, null masks,
// row directory) is owned by the embedding application's row marshaller.
type RowStorage interface {
	// Row returns the current bytes of the declaration row. The slice is
	// read-only; mutate via SetRow.
	Row() []byte

	// SetRow replaces the declaration row's bytes (same length as Row's
	// current return or shorter/longer as needed for a representation
	// change) and persists the owning host page.
	SetRow(data []byte) error
}

// variant is the representation-specific half of a UsageMap: the inline and
// reference backing stores share the bit-set and page-range state on
// UsageMap itself, and differ in how a membership change is persisted and,
// for inline, how an out-of-range add/remove triggers a shift or promotion.
type variant interface {
	add(u *UsageMap, page uint32) error
	remove(u *UsageMap, page uint32) error
}

// UsageMap is the in-memory view of a single page-usage bitmap, backed by
// either an inline row field or a vector of reference pages.
type UsageMap struct {
	format  jetformat.JetFormat
	channel pagechannel.PageChannel
	row     RowStorage

	variant variant

	startPage uint32
	endPage   uint32
	// assumeOutOfRangeBitsOn is true for free-space maps: pages outside
	// [startPage, endPage) read as already a member.
	assumeOutOfRangeBitsOn bool

	pages    *pageSet
	modCount uint64
}

// Open constructs a UsageMap from an already-read declaration row, branching
// on the leading type tag to build an inline or reference variant and
// populating the in-memory bit set from the current on-disk payload.
func Open(format jetformat.JetFormat, channel pagechannel.PageChannel, row RowStorage, assumeOutOfRangeBitsOn bool) (*UsageMap, error) {
	data := row.Row()
	if len(data) < 1 {
		return nil, jerrors.NewCorruptState("usage map row is empty")
	}

	u := &UsageMap{
		format:                 format,
		channel:                channel,
		row:                    row,
		assumeOutOfRangeBitsOn: assumeOutOfRangeBitsOn,
		pages:                  newPageSet(),
	}

	switch data[0] {
	case typeTagInline:
		if err := u.initInline(data); err != nil {
			return nil, err
		}
	case typeTagReference:
		if err := u.initReference(data); err != nil {
			return nil, err
		}
	default:
		return nil, jerrors.NewCorruptState("unknown usage map type tag 0x%02x", data[0])
	}
	return u, nil
}

// StartPage returns the first page number this map's current representation
// can address.
func (u *UsageMap) StartPage() uint32 { return u.startPage }

// EndPage returns the exclusive upper bound of pages this map's current
// representation can address.
func (u *UsageMap) EndPage() uint32 { return u.endPage }

// ModCount returns the current modification counter, incremented by every
// successful Add or Remove.
func (u *UsageMap) ModCount() uint64 { return u.modCount }

// Contains reports whether page is a member of this usage map, honoring
// assumeOutOfRangeBitsOn for pages outside the current representation range.
func (u *UsageMap) Contains(page uint32) bool {
	if page < u.startPage || page >= u.endPage {
		return u.assumeOutOfRangeBitsOn
	}
	return u.pages.contains(page)
}

// Add marks page as a member. It fails with CorruptState if page is already
// a member (a redundant add), matching the on-disk protocol's "on == add"
// check — except for an inline map with assumeOutOfRangeBitsOn set, where
// adding an already-implicitly-on out-of-range page is a silent no-op.
func (u *UsageMap) Add(page uint32) error {
	return u.variant.add(u, page)
}

// Remove clears page's membership. It fails with CorruptState if page is
// not currently a member, subject to the same out-of-range exceptions as
// Add.
func (u *UsageMap) Remove(page uint32) error {
	return u.variant.remove(u, page)
}

// setBitInMemory updates the in-memory mirror and bumps modCount; callers
// persist the corresponding on-disk byte separately, before or after this
// call.
func (u *UsageMap) setBitInMemory(page uint32, on bool) {
	if on {
		u.pages.add(page)
	} else {
		u.pages.remove(page)
	}
	u.modCount++
}

func readUint32LE(b []byte) uint32 {
	return binary.LittleEndian.Uint32(b)
}

func writeUint32LE(b []byte, v uint32) {
	binary.LittleEndian.PutUint32(b, v)
}

// byteAndMask returns the byte offset within a bit-array payload and the
// bitmask for bit position i within that byte (bit 0 = LSB of byte 0).
func byteAndMask(i uint32) (int, byte) {
	return int(i / 8), 1 << (i % 8)
}
