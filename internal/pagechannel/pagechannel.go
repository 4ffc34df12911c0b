// Package pagechannel declares the page I/O boundary that usagemap and
// calcvalue read and write through, plus an in-memory implementation used
// by this module's own tests. A real embedding application backs PageChannel
// with its own file-backed pager (locking, journaling, caching); none of
// that lives here.
package pagechannel

import (
	"sync"

	jerrors "github.com/gordthompson/jackcess-go/errors"
)

// PageChannel reads and writes whole pages by page number. Page 0 is the
// database header page; callers of this module never touch it directly.
// Implementations need not be safe for concurrent use — this module's
// components assume single-threaded, cooperative access, matching the
// concurrency model the embedding database engine provides.
type PageChannel interface {
	// ReadPage copies the full contents of page pageNum into dst, which
	// must be exactly PageSize() bytes long.
	ReadPage(pageNum uint32, dst []byte) error

	// WritePage writes the full contents of src, which must be exactly
	// PageSize() bytes long, to page pageNum. The page must already exist;
	// use AllocatePage to create a new one.
	WritePage(pageNum uint32, src []byte) error

	// AllocatePage reserves a new page and returns its page number. The
	// page's initial contents are unspecified until first written.
	AllocatePage() (uint32, error)

	// PageSize returns the fixed page length this channel was configured
	// with.
	PageSize() int
}

// MemoryChannel is an in-memory PageChannel backed by a page-number-indexed
// map of byte slices. It never touches a file and is meant for tests and
// for embedding applications building their database purely in memory.
type MemoryChannel struct {
	mu       sync.Mutex
	pageSize int
	pages    map[uint32][]byte
	next     uint32
}

var _ PageChannel = (*MemoryChannel)(nil)

// NewMemoryChannel creates an empty MemoryChannel with the given page size.
// Page 0 is pre-allocated, matching a real database's header page.
func NewMemoryChannel(pageSize int) *MemoryChannel {
	c := &MemoryChannel{
		pageSize: pageSize,
		pages:    make(map[uint32][]byte),
		next:     1,
	}
	c.pages[0] = make([]byte, pageSize)
	return c
}

func (c *MemoryChannel) PageSize() int {
	return c.pageSize
}

func (c *MemoryChannel) ReadPage(pageNum uint32, dst []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(dst) != c.pageSize {
		return jerrors.NewArgument("ReadPage", "dst length %d does not match page size %d", len(dst), c.pageSize)
	}
	src, ok := c.pages[pageNum]
	if !ok {
		return jerrors.NewIO("ReadPage", pageNum, jerrors.ErrIOFailure)
	}
	copy(dst, src)
	return nil
}

func (c *MemoryChannel) WritePage(pageNum uint32, src []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(src) != c.pageSize {
		return jerrors.NewArgument("WritePage", "src length %d does not match page size %d", len(src), c.pageSize)
	}
	page, ok := c.pages[pageNum]
	if !ok {
		return jerrors.NewIO("WritePage", pageNum, jerrors.ErrIOFailure)
	}
	copy(page, src)
	return nil
}

func (c *MemoryChannel) AllocatePage() (uint32, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	pageNum := c.next
	c.next++
	c.pages[pageNum] = make([]byte, c.pageSize)
	return pageNum, nil
}

// PageCount returns the number of pages currently allocated, including the
// header page. Test-only helper.
func (c *MemoryChannel) PageCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pages)
}
