package usagemap

import (
	jerrors "github.com/gordthompson/jackcess-go/errors"
	"github.com/gordthompson/jackcess-go/internal/jetformat"
)

// referenceRowHeaderLen is the number of row bytes preceding the pointer
// vector: 1-byte type tag + 4 format-private bytes.
const referenceRowHeaderLen = 5

// referenceVariant is the paged representation: the declaration row holds a
// vector of page pointers, each referencing a dedicated USAGE_MAP page whose
// payload is itself a bitmap chunk.
type referenceVariant struct {
	pointers   []uint32 // 0 means "no chunk allocated yet"
	chunkBytes int      // bytes of bitmap payload per referenced page
}

// pointerCount returns N = L/4 + 1, the number of pointer slots a reference
// map's declaration row holds.
func pointerCount(format jetformat.JetFormat) int {
	L := format.UsageMapInlineBytes() * 8
	return L/4 + 1
}

// newReferenceVariant builds an empty referenceVariant (all pointers
// unallocated) and the declaration row length it needs.
func newReferenceVariant(format jetformat.JetFormat) (*referenceVariant, int) {
	n := pointerCount(format)
	rv := &referenceVariant{
		pointers:   make([]uint32, n),
		chunkBytes: format.PageSize() - jetformat.UsageMapPageHeaderSize,
	}
	return rv, referenceRowHeaderLen + n*4
}

// capacity returns N*M, the total number of pages a fully-grown reference
// map can address.
func (rv *referenceVariant) capacity() uint32 {
	return uint32(len(rv.pointers) * rv.chunkBytes * 8)
}

func (u *UsageMap) initReference(data []byte) error {
	rv, rowLen := newReferenceVariant(u.format)
	if len(data) < rowLen {
		return jerrors.NewCorruptState("reference usage map row too short: have %d bytes, need %d", len(data), rowLen)
	}
	off := referenceRowHeaderLen
	for k := range rv.pointers {
		rv.pointers[k] = readUint32LE(data[off : off+4])
		off += 4
	}
	u.variant = rv
	u.startPage = 0
	u.endPage = rv.capacity()

	chunkPages := rv.chunkBytes * 8
	buf := make([]byte, u.format.PageSize())
	for k, ptr := range rv.pointers {
		if ptr == 0 {
			continue
		}
		if err := u.channel.ReadPage(ptr, buf); err != nil {
			return jerrors.NewIO("ReadPage", ptr, err)
		}
		if buf[0] != byte(jetformat.PageTypeUsageMap) {
			return jerrors.NewCorruptState("page %d has type marker 0x%02x, want usage map marker 0x%02x", ptr, buf[0], byte(jetformat.PageTypeUsageMap))
		}
		base := uint32(k * chunkPages)
		payload := buf[jetformat.UsageMapPageHeaderSize:]
		for i := 0; i < chunkPages; i++ {
			byteOff, mask := byteAndMask(uint32(i))
			if payload[byteOff]&mask != 0 {
				u.pages.add(base + uint32(i))
			}
		}
	}
	return nil
}

func (rv *referenceVariant) add(u *UsageMap, page uint32) error {
	if page >= u.endPage {
		return jerrors.NewOutOfRange("usage map", "page %d exceeds reference map capacity (endPage=%d)", page, u.endPage)
	}
	if u.pages.contains(page) {
		return jerrors.NewCorruptState("page %d is already present in usage map", page)
	}
	return u.setReferenceBit(rv, page, true)
}

func (rv *referenceVariant) remove(u *UsageMap, page uint32) error {
	if page >= u.endPage {
		return jerrors.NewOutOfRange("usage map", "page %d exceeds reference map capacity (endPage=%d)", page, u.endPage)
	}
	if !u.pages.contains(page) {
		return jerrors.NewCorruptState("page %d is not present in usage map", page)
	}
	return u.setReferenceBit(rv, page, false)
}

// setReferenceBit updates the bit for page within its pointer's chunk page,
// lazily allocating the chunk page on first use, then updates the in-memory
// mirror.
func (u *UsageMap) setReferenceBit(rv *referenceVariant, page uint32, on bool) error {
	chunkPages := rv.chunkBytes * 8
	k := int(page) / chunkPages
	within := uint32(int(page) % chunkPages)

	ptr := rv.pointers[k]
	if ptr == 0 {
		newPtr, err := u.channel.AllocatePage()
		if err != nil {
			return jerrors.NewIO("AllocatePage", 0, err)
		}
		header := make([]byte, u.format.PageSize())
		header[0] = byte(jetformat.PageTypeUsageMap)
		if err := u.channel.WritePage(newPtr, header); err != nil {
			return jerrors.NewIO("WritePage", newPtr, err)
		}
		rv.pointers[k] = newPtr
		ptr = newPtr
		if err := u.writeReferencePointer(rv, k); err != nil {
			return err
		}
	}

	buf := make([]byte, u.format.PageSize())
	if err := u.channel.ReadPage(ptr, buf); err != nil {
		return jerrors.NewIO("ReadPage", ptr, err)
	}
	byteOff, mask := byteAndMask(within)
	payloadOff := jetformat.UsageMapPageHeaderSize + byteOff
	if on {
		buf[payloadOff] |= mask
	} else {
		buf[payloadOff] &^= mask
	}
	if err := u.channel.WritePage(ptr, buf); err != nil {
		return jerrors.NewIO("WritePage", ptr, err)
	}
	u.setBitInMemory(page, on)
	return nil
}

// writeReferencePointer persists a newly-allocated chunk page's number into
// slot k of the declaration row's pointer vector.
func (u *UsageMap) writeReferencePointer(rv *referenceVariant, k int) error {
	data := append([]byte(nil), u.row.Row()...)
	off := referenceRowHeaderLen + k*4
	writeUint32LE(data[off:off+4], rv.pointers[k])
	if err := u.row.SetRow(data); err != nil {
		return jerrors.Wrap(err, "usage map: write reference pointer")
	}
	return nil
}
