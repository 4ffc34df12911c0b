package usagemap

import (
	jerrors "github.com/gordthompson/jackcess-go/errors"
)

// inlineRowHeaderLen is the number of row bytes preceding the inline bitmap
// payload: 1-byte type tag + 4-byte little-endian startPage.
const inlineRowHeaderLen = 5

// inlineVariant is the compact representation: the bitmap lives directly in
// the declaration row, good for tables whose pages all sit within one
// inlineBytes*8-page window.
type inlineVariant struct {
	inlineBytes int
}

func (u *UsageMap) initInline(data []byte) error {
	inlineBytes := u.format.UsageMapInlineBytes()
	if len(data) < inlineRowHeaderLen+inlineBytes {
		return jerrors.NewCorruptState("inline usage map row too short: have %d bytes, need %d", len(data), inlineRowHeaderLen+inlineBytes)
	}
	startPage := readUint32LE(data[1:5])
	u.startPage = startPage
	u.endPage = startPage + uint32(inlineBytes*8)
	u.variant = &inlineVariant{inlineBytes: inlineBytes}

	payload := data[inlineRowHeaderLen : inlineRowHeaderLen+inlineBytes]
	for i := 0; i < inlineBytes*8; i++ {
		byteOff, mask := byteAndMask(uint32(i))
		if payload[byteOff]&mask != 0 {
			u.pages.add(startPage + uint32(i))
		}
	}
	return nil
}

func (v *inlineVariant) add(u *UsageMap, page uint32) error {
	if page >= u.startPage && page < u.endPage {
		if u.pages.contains(page) {
			return jerrors.NewCorruptState("page %d is already present in usage map", page)
		}
		return u.writeInlineBit(v, page, true)
	}
	if u.assumeOutOfRangeBitsOn {
		// Out-of-range pages already read as "on"; nothing to persist.
		return nil
	}
	return u.inlineAddOutOfRange(v, page)
}

func (v *inlineVariant) remove(u *UsageMap, page uint32) error {
	if page >= u.startPage && page < u.endPage {
		if !u.pages.contains(page) {
			return jerrors.NewCorruptState("page %d is not present in usage map", page)
		}
		return u.writeInlineBit(v, page, false)
	}
	if u.assumeOutOfRangeBitsOn {
		return u.inlineRemoveOutOfRange(v, page)
	}
	return jerrors.NewCorruptState("page %d is not present in usage map", page)
}

// writeInlineBit flips page's bit in the declaration row's payload, persists
// the row, and updates the in-memory mirror. page must be within
// [startPage, endPage).
func (u *UsageMap) writeInlineBit(v *inlineVariant, page uint32, on bool) error {
	data := append([]byte(nil), u.row.Row()...)
	byteOff, mask := byteAndMask(page - u.startPage)
	off := inlineRowHeaderLen + byteOff
	if on {
		data[off] |= mask
	} else {
		data[off] &^= mask
	}
	if err := u.row.SetRow(data); err != nil {
		return jerrors.Wrap(err, "usage map: write inline row")
	}
	u.setBitInMemory(page, on)
	return nil
}

// zeroAndSetStart rewrites the declaration row with a zeroed payload and a
// new startPage, clearing the in-memory mirror to match. It is the first
// step of both the shift-for-add and shift-for-remove protocols.
func (u *UsageMap) zeroAndSetStart(v *inlineVariant, newStart uint32) error {
	data := append([]byte(nil), u.row.Row()...)
	for i := 0; i < v.inlineBytes; i++ {
		data[inlineRowHeaderLen+i] = 0
	}
	writeUint32LE(data[1:5], newStart)
	if err := u.row.SetRow(data); err != nil {
		return jerrors.Wrap(err, "usage map: shift inline row")
	}
	u.startPage = newStart
	u.endPage = newStart + uint32(v.inlineBytes*8)
	u.pages.clear()
	return nil
}

// inlineAddOutOfRange handles an Add for a page outside the current inline
// window when out-of-range pages read as absent: shift the window if the
// tentative range spanning both the existing pages and the new one still
// fits inline, else promote to the reference representation.
func (u *UsageMap) inlineAddOutOfRange(v *inlineVariant, page uint32) error {
	first, hasFirst := u.pages.min()
	last, hasLast := u.pages.max()
	if !hasFirst || !hasLast {
		first, last = page, page
	}
	newMin, newMax := first, last
	if page < newMin {
		newMin = page
	}
	if page > newMax {
		newMax = page
	}
	width := uint64(newMax-newMin) + 1
	L := uint64(v.inlineBytes) * 8

	if width < L {
		oldPages := u.pages.sorted()
		if err := u.zeroAndSetStart(v, newMin); err != nil {
			return err
		}
		for _, p := range oldPages {
			if err := u.writeInlineBit(v, p, true); err != nil {
				return err
			}
		}
		return u.writeInlineBit(v, page, true)
	}
	return u.promoteToReference(v, page)
}

// inlineRemoveOutOfRange handles a Remove for a page outside the current
// inline window when out-of-range pages read as present (so removing one
// is an observable change, not a no-op).
func (u *UsageMap) inlineRemoveOutOfRange(v *inlineVariant, page uint32) error {
	first, hasFirst := u.pages.min()
	last, hasLast := u.pages.max()
	empty := !hasFirst && !hasLast

	if !empty && page < first {
		// Older than anything we track; the implicit-on history for it
		// cannot be recovered, so the remove is silently dropped.
		return nil
	}

	L := uint32(v.inlineBytes * 8)
	var newStart uint32
	switch {
	case empty:
		newStart = page
	case page-first+1 >= L:
		newStart = first + (page - L + 1)
	default:
		newStart = first
	}

	oldPages := u.pages.sorted()
	if err := u.zeroAndSetStart(v, newStart); err != nil {
		return err
	}

	if empty {
		if err := u.fillInlineAllOn(v); err != nil {
			return err
		}
	} else {
		for _, p := range oldPages {
			if err := u.writeInlineBit(v, p, true); err != nil {
				return err
			}
		}
		for p := last + 1; p < u.endPage; p++ {
			if !u.pages.contains(p) {
				if err := u.writeInlineBit(v, p, true); err != nil {
					return err
				}
			}
		}
	}
	return u.writeInlineBit(v, page, false)
}

// fillInlineAllOn sets every payload byte to 0xFF and every page in the
// current window to a member, used when a remove arrives against an empty
// map under assumeOutOfRangeBitsOn.
func (u *UsageMap) fillInlineAllOn(v *inlineVariant) error {
	data := append([]byte(nil), u.row.Row()...)
	for i := 0; i < v.inlineBytes; i++ {
		data[inlineRowHeaderLen+i] = 0xFF
	}
	if err := u.row.SetRow(data); err != nil {
		return jerrors.Wrap(err, "usage map: fill inline row")
	}
	for p := u.startPage; p < u.endPage; p++ {
		u.pages.add(p)
	}
	u.modCount++
	return nil
}

// promoteToReference rewrites the declaration row as a reference map,
// preserving every currently-set page, then adds the page that triggered
// the promotion.
func (u *UsageMap) promoteToReference(v *inlineVariant, newPage uint32) error {
	oldPages := u.pages.sorted()

	rv, rowLen := newReferenceVariant(u.format)
	data := make([]byte, rowLen)
	data[0] = typeTagReference
	if err := u.row.SetRow(data); err != nil {
		return jerrors.Wrap(err, "usage map: promote to reference")
	}

	u.variant = rv
	u.startPage = 0
	u.endPage = rv.capacity()
	u.pages.clear()

	for _, p := range oldPages {
		if err := rv.add(u, p); err != nil {
			return err
		}
	}
	return rv.add(u, newPage)
}
