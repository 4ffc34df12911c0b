package usagemap

const invalidPage uint32 = 0xFFFFFFFF

// Iterator walks the pages currently in a UsageMap in ascending (forward)
// or descending (reverse) order. It stays usable across mutations made
// through the same UsageMap between HasNext and Next: a stale cursor is
// recomputed from the last page actually returned: already-returned pages
// are never returned again, and pages still in the map after a mutation
// are eventually visited.
type Iterator struct {
	u        *UsageMap
	reverse  bool
	prevPage uint32 // last page returned; invalidPage before the first Next
	nextPage uint32 // next page to return as of the last refresh, or invalidPage if none
}

// Forward returns an Iterator over u's pages in ascending order.
func Forward(u *UsageMap) *Iterator {
	return &Iterator{u: u, reverse: false, prevPage: invalidPage, nextPage: invalidPage}
}

// Reverse returns an Iterator over u's pages in descending order.
func Reverse(u *UsageMap) *Iterator {
	return &Iterator{u: u, reverse: true, prevPage: invalidPage, nextPage: invalidPage}
}

// HasNext reports whether Next would return a page.
func (it *Iterator) HasNext() bool {
	it.refresh()
	return it.nextPage != invalidPage
}

// Next returns the next page in iteration order and advances the cursor. It
// panics if called when HasNext is false, a standard Java-style iterator
// convention: callers must check HasNext before each Next.
func (it *Iterator) Next() uint32 {
	it.refresh()
	if it.nextPage == invalidPage {
		panic("usagemap: Next called with no more pages")
	}
	page := it.nextPage
	it.prevPage = page
	it.nextPage = invalidPage
	return page
}

// refresh recomputes nextPage from prevPage against the live set.
// Recomputing on every call, rather than caching across mutations, is what
// gives the "already-returned pages never repeat, newly-visible pages are
// eventually seen" guarantee regardless of what changed in between.
func (it *Iterator) refresh() {
	if it.reverse {
		it.nextPage = it.predecessor(it.prevPage)
	} else {
		it.nextPage = it.successor(it.prevPage)
	}
}

// successor returns the smallest member page strictly greater than after
// (or the smallest member overall if after is invalidPage), or invalidPage
// if none exists.
func (it *Iterator) successor(after uint32) uint32 {
	found := false
	var best uint32
	for p := range it.u.pages.members {
		if after != invalidPage && p <= after {
			continue
		}
		if !found || p < best {
			best = p
			found = true
		}
	}
	if !found {
		return invalidPage
	}
	return best
}

// predecessor returns the largest member page strictly less than before
// (or the largest member overall if before is invalidPage), or invalidPage
// if none exists.
func (it *Iterator) predecessor(before uint32) uint32 {
	found := false
	var best uint32
	for p := range it.u.pages.members {
		if before != invalidPage && p >= before {
			continue
		}
		if !found || p > best {
			best = p
			found = true
		}
	}
	if !found {
		return invalidPage
	}
	return best
}
