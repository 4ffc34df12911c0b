package usagemap

import (
	"testing"

	"github.com/gordthompson/jackcess-go/internal/jetformat"
	"github.com/gordthompson/jackcess-go/internal/pagechannel"
)

// memRow is a RowStorage test double: a single in-memory byte slice with no
// host page of its own.
type memRow struct {
	data []byte
}

func (r *memRow) Row() []byte { return r.data }

func (r *memRow) SetRow(data []byte) error {
	r.data = append([]byte(nil), data...)
	return nil
}

func newInlineRow(format jetformat.JetFormat, startPage uint32) *memRow {
	data := make([]byte, inlineRowHeaderLen+format.UsageMapInlineBytes())
	data[0] = typeTagInline
	writeUint32LE(data[1:5], startPage)
	return &memRow{data: data}
}

func testFormat() jetformat.Format {
	return jetformat.Format{PageSizeBytes: 4096, InlineBytes: 8, CalculatedColumns: true}
}

func TestInlineAddContainsRemove(t *testing.T) {
	format := testFormat()
	channel := pagechannel.NewMemoryChannel(format.PageSize())
	row := newInlineRow(format, 10)

	u, err := Open(format, channel, row, false)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if u.StartPage() != 10 || u.EndPage() != 10+uint32(format.UsageMapInlineBytes()*8) {
		t.Fatalf("unexpected range [%d,%d)", u.StartPage(), u.EndPage())
	}

	for _, p := range []uint32{10, 11, 15, 20} {
		if err := u.Add(p); err != nil {
			t.Fatalf("Add(%d): %v", p, err)
		}
	}
	for _, p := range []uint32{10, 11, 15, 20} {
		if !u.Contains(p) {
			t.Errorf("Contains(%d) = false, want true", p)
		}
	}
	if u.Contains(12) {
		t.Errorf("Contains(12) = true, want false")
	}

	if err := u.Remove(11); err != nil {
		t.Fatalf("Remove(11): %v", err)
	}
	if u.Contains(11) {
		t.Errorf("Contains(11) after Remove = true, want false")
	}

	// Redundant add/remove must fail with CorruptState.
	if err := u.Add(10); err == nil {
		t.Errorf("Add(10) on already-present page: got nil error, want CorruptState")
	}
	if err := u.Remove(11); err == nil {
		t.Errorf("Remove(11) on already-absent page: got nil error, want CorruptState")
	}
}

func TestInlineRoundTripsFromDisk(t *testing.T) {
	format := testFormat()
	channel := pagechannel.NewMemoryChannel(format.PageSize())
	row := newInlineRow(format, 0)

	u, err := Open(format, channel, row, false)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	want := []uint32{0, 3, 7, 63}
	for _, p := range want {
		if err := u.Add(p); err != nil {
			t.Fatalf("Add(%d): %v", p, err)
		}
	}

	// Reopen from the same backing row bytes and check the bit set
	// reconstructs identically.
	u2, err := Open(format, channel, row, false)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	for _, p := range want {
		if !u2.Contains(p) {
			t.Errorf("reopened map missing page %d", p)
		}
	}
}

func TestInlineShiftOnOutOfRangeAdd(t *testing.T) {
	format := testFormat()
	channel := pagechannel.NewMemoryChannel(format.PageSize())
	row := newInlineRow(format, 100)
	L := format.UsageMapInlineBytes() * 8 // 64

	u, err := Open(format, channel, row, false)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	// Cluster the tracked pages near the high end of the window so a
	// shift that slides the window forward can still keep them in range
	// alongside a new page just past the old endPage.
	if err := u.Add(160); err != nil {
		t.Fatalf("Add(160): %v", err)
	}
	if err := u.Add(161); err != nil {
		t.Fatalf("Add(161): %v", err)
	}

	target := uint32(100 + L + 36) // beyond endPage (164), but within L of 160
	if err := u.Add(target); err != nil {
		t.Fatalf("Add(%d): %v", target, err)
	}
	if _, ok := u.variant.(*inlineVariant); !ok {
		t.Fatalf("map promoted to reference when shift should have sufficed")
	}
	for _, p := range []uint32{160, 161, target} {
		if !u.Contains(p) {
			t.Errorf("Contains(%d) = false after shift, want true", p)
		}
	}
}

func TestInlinePromotesWhenShiftWouldNotFit(t *testing.T) {
	format := testFormat()
	channel := pagechannel.NewMemoryChannel(format.PageSize())
	row := newInlineRow(format, 0)
	L := format.UsageMapInlineBytes() * 8

	u, err := Open(format, channel, row, false)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := u.Add(0); err != nil {
		t.Fatalf("Add(0): %v", err)
	}

	// A page far beyond L away forces promotion: the tentative range
	// would be wider than the inline window can hold.
	far := uint32(L * 10)
	if err := u.Add(far); err != nil {
		t.Fatalf("Add(%d): %v", far, err)
	}
	if _, ok := u.variant.(*referenceVariant); !ok {
		t.Fatalf("map did not promote to reference on out-of-range add")
	}
	if !u.Contains(0) || !u.Contains(far) {
		t.Errorf("promoted map lost a page: contains(0)=%v contains(%d)=%v", u.Contains(0), far, u.Contains(far))
	}
}

func TestInlineOutOfRangeWithAssumeOn(t *testing.T) {
	format := testFormat()
	channel := pagechannel.NewMemoryChannel(format.PageSize())
	row := newInlineRow(format, 0)

	u, err := Open(format, channel, row, true)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	// Out-of-range pages already read as present.
	if !u.Contains(1000) {
		t.Errorf("Contains(1000) = false, want true under assumeOutOfRangeBitsOn")
	}
	// Adding an out-of-range page is a silent no-op.
	if err := u.Add(1000); err != nil {
		t.Errorf("Add(1000) under assumeOutOfRangeBitsOn: %v, want nil", err)
	}

	// Removing an out-of-range page triggers the shift-and-fill protocol.
	if err := u.Remove(1000); err != nil {
		t.Fatalf("Remove(1000): %v", err)
	}
	if u.Contains(1000) {
		t.Errorf("Contains(1000) = true after Remove, want false")
	}
	// Every other page in the new window is now explicitly on, since
	// assumeOutOfRangeBitsOn treated them as such before the shift.
	if !u.Contains(u.StartPage() + 1) {
		t.Errorf("Contains(startPage+1) = false after shift-remove, want true")
	}
}

func TestReferenceGrowsAndPersists(t *testing.T) {
	format := testFormat()
	channel := pagechannel.NewMemoryChannel(format.PageSize())
	rowLen := referenceRowHeaderLen + pointerCount(format)*4
	data := make([]byte, rowLen)
	data[0] = typeTagReference
	row := &memRow{data: data}

	u, err := Open(format, channel, row, false)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	chunkPages := (format.PageSize() - jetformat.UsageMapPageHeaderSize) * 8

	// pointerCount(format) == 17 here (InlineBytes=8 -> L=64, L/4+1=17), so
	// slot indices run 0..16: exercise the first, second, and last slot.
	pages := []uint32{0, uint32(chunkPages + 5), uint32(chunkPages*2 + 1), uint32(16 * chunkPages)}
	for _, p := range pages {
		if err := u.Add(p); err != nil {
			t.Fatalf("Add(%d): %v", p, err)
		}
	}
	before := channel.PageCount()
	if before < 5 { // header + 4 allocated chunk pages (slots 0, 1, 2, 16)
		t.Fatalf("expected chunk pages to be allocated, got %d total pages", before)
	}

	u2, err := Open(format, channel, row, false)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	for _, p := range pages {
		if !u2.Contains(p) {
			t.Errorf("reopened reference map missing page %d", p)
		}
	}

	if err := u2.Remove(pages[0]); err != nil {
		t.Fatalf("Remove(%d): %v", pages[0], err)
	}
	if u2.Contains(pages[0]) {
		t.Errorf("Contains(%d) = true after Remove, want false", pages[0])
	}
}

func TestForwardAndReverseIteration(t *testing.T) {
	format := testFormat()
	channel := pagechannel.NewMemoryChannel(format.PageSize())
	row := newInlineRow(format, 0)

	u, err := Open(format, channel, row, false)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	want := []uint32{1, 2, 5, 10, 20}
	for _, p := range want {
		if err := u.Add(p); err != nil {
			t.Fatalf("Add(%d): %v", p, err)
		}
	}

	fwd := Forward(u)
	var got []uint32
	for fwd.HasNext() {
		got = append(got, fwd.Next())
	}
	if len(got) != len(want) {
		t.Fatalf("forward iteration returned %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("forward[%d] = %d, want %d", i, got[i], want[i])
		}
	}

	rev := Reverse(u)
	var gotRev []uint32
	for rev.HasNext() {
		gotRev = append(gotRev, rev.Next())
	}
	for i := range gotRev {
		if gotRev[i] != want[len(want)-1-i] {
			t.Errorf("reverse[%d] = %d, want %d", i, gotRev[i], want[len(want)-1-i])
		}
	}
}

func TestIteratorStableAcrossMutation(t *testing.T) {
	format := testFormat()
	channel := pagechannel.NewMemoryChannel(format.PageSize())
	row := newInlineRow(format, 0)

	u, err := Open(format, channel, row, false)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	for _, p := range []uint32{1, 2, 3} {
		if err := u.Add(p); err != nil {
			t.Fatalf("Add(%d): %v", p, err)
		}
	}

	it := Forward(u)
	first := it.Next() // 1
	if first != 1 {
		t.Fatalf("first = %d, want 1", first)
	}

	// Mutate between Next calls: remove an already-returned page, add a
	// page beyond the last-returned position.
	if err := u.Remove(1); err != nil {
		t.Fatalf("Remove(1): %v", err)
	}
	if err := u.Add(4); err != nil {
		t.Fatalf("Add(4): %v", err)
	}

	var rest []uint32
	for it.HasNext() {
		rest = append(rest, it.Next())
	}
	wantRest := []uint32{2, 3, 4}
	if len(rest) != len(wantRest) {
		t.Fatalf("rest = %v, want %v", rest, wantRest)
	}
	for i := range wantRest {
		if rest[i] != wantRest[i] {
			t.Errorf("rest[%d] = %d, want %d", i, rest[i], wantRest[i])
		}
	}
}
