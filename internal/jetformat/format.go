// Package jetformat declares the file-format constants a Jet/MDB page reader
// supplies to the usage-map and calculated-value codecs. The format itself —
// parsing .mdb vs .accdb headers, page checksums, row marshalling — lives
// outside this module; callers implement JetFormat against their own reader.
package jetformat

// UsageMapPageType identifies which on-page layout a usage-map page uses.
type UsageMapPageType byte

const (
	// PageTypeUsageMap marks a page holding bitmap payload referenced by a
	// reference usage map's pointer vector.
	PageTypeUsageMap UsageMapPageType = 0x02
	// PageTypeData marks an ordinary data page.
	PageTypeData UsageMapPageType = 0x01
)

// UsageMapPageHeaderSize is the fixed 4-byte header every USAGE_MAP page
// carries before its bitmap payload, constant across Jet3 and Jet4.
const UsageMapPageHeaderSize = 4

// JetFormat describes the page-level constants that differ between the Jet3
// (.mdb) and Jet4/ACE (.accdb) file formats. Implementations are supplied by
// the embedding application's page-reader layer.
type JetFormat interface {
	// PageSize is the fixed byte length of every page in the database
	// (2048 for Jet3, 4096 for Jet4/ACE).
	PageSize() int

	// UsageMapInlineBytes is the byte length (L/8 in spec terms) of the
	// inline representation's fixed-size bitmap field. The real constant
	// this mirrors (USAGE_MAP_TABLE_BYTE_LENGTH) is 64 bytes (512 bits) in
	// both Jet3 and Jet4.
	UsageMapInlineBytes() int

	// SupportsCalculatedColumns reports whether this format version allows
	// calculated columns, and therefore CalculatedValue-wrapped data.
	SupportsCalculatedColumns() bool
}

// Format is a reference JetFormat implementation; it also serves as the
// fixture format for this module's own tests.
type Format struct {
	PageSizeBytes     int
	InlineBytes       int
	CalculatedColumns bool
}

var _ JetFormat = Format{}

func (f Format) PageSize() int                  { return f.PageSizeBytes }
func (f Format) UsageMapInlineBytes() int        { return f.InlineBytes }
func (f Format) SupportsCalculatedColumns() bool { return f.CalculatedColumns }

// JetFormat4 is the accdb-era constant set: 4096-byte pages, calculated
// column support.
var JetFormat4 = Format{
	PageSizeBytes:     4096,
	InlineBytes:       64,
	CalculatedColumns: true,
}

// JetFormat3 is the mdb-era constant set: 2048-byte pages, no calculated
// columns.
var JetFormat3 = Format{
	PageSizeBytes:     2048,
	InlineBytes:       64,
	CalculatedColumns: false,
}
