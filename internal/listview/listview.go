package listview

import "strings"

const (
	itemsPerPage = 10
	visibleCount = 5
)

// MatchFunc reports whether an item matches a search term. The term is
// already lower-cased and trimmed; implementations only need to check
// their entity's searchable fields.
type MatchFunc[T any] func(item T, term string) bool

// View owns a fetched collection, a free-text filter and a page window.
// It is the in-memory state behind every paginated table in the console;
// the backend stays the source of truth and callers replace the items
// wholesale after each reload.
type View[T any] struct {
	items    []T
	filtered []T
	term     string
	page     int
	pages    int
	match    MatchFunc[T]
}

// New builds an empty view. An empty view still reports one page.
func New[T any](match MatchFunc[T]) *View[T] {
	return &View[T]{match: match, page: 1, pages: 1}
}

// SetItems replaces the collection and recomputes the window.
func (v *View[T]) SetItems(items []T) {
	v.items = items
	v.recompute()
}

// Items returns the unfiltered collection.
func (v *View[T]) Items() []T {
	return v.items
}

// SetSearchTerm filters with a case-insensitive substring match. The
// current page is kept (not reset to 1) so searching does not lose the
// admin's place, but recompute clamps it into the shrunken range.
func (v *View[T]) SetSearchTerm(term string) {
	v.term = strings.ToLower(strings.TrimSpace(term))
	v.recompute()
}

// SearchTerm returns the active (normalized) search term.
func (v *View[T]) SearchTerm() string {
	return v.term
}

// Filtered returns every item matching the active search term.
func (v *View[T]) Filtered() []T {
	return v.filtered
}

// Page returns the visible slice: at most itemsPerPage entries of the
// filtered collection, contiguous, for the current page.
func (v *View[T]) Page() []T {
	start := (v.page - 1) * itemsPerPage
	if start >= len(v.filtered) {
		return nil
	}
	end := start + itemsPerPage
	if end > len(v.filtered) {
		end = len(v.filtered)
	}
	return v.filtered[start:end]
}

// CurrentPage returns the 1-based page index.
func (v *View[T]) CurrentPage() int {
	return v.page
}

// TotalPages is ceil(filtered/itemsPerPage), never below 1.
func (v *View[T]) TotalPages() int {
	return v.pages
}

// GoToPage moves to page n; out-of-range values are ignored.
func (v *View[T]) GoToPage(n int) {
	if n < 1 || n > v.pages {
		return
	}
	v.page = n
}

// NextPage advances one page when not already on the last.
func (v *View[T]) NextPage() {
	if v.page < v.pages {
		v.page++
	}
}

// PrevPage steps back one page when not already on the first.
func (v *View[T]) PrevPage() {
	if v.page > 1 {
		v.page--
	}
}

// VisiblePages returns the pagination bar window: at most visibleCount
// page numbers, aligned to blocks of five starting at page 1.
func (v *View[T]) VisiblePages() []int {
	start := (v.page-1)/visibleCount*visibleCount + 1
	end := start + visibleCount - 1
	if end > v.pages {
		end = v.pages
	}

	pages := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}
	return pages
}

func (v *View[T]) recompute() {
	if v.term == "" {
		v.filtered = v.items
	} else {
		v.filtered = v.filtered[:0:0]
		for _, item := range v.items {
			if v.match(item, v.term) {
				v.filtered = append(v.filtered, item)
			}
		}
	}

	v.pages = (len(v.filtered) + itemsPerPage - 1) / itemsPerPage
	if v.pages < 1 {
		v.pages = 1
	}

	// Clamp instead of trusting the old index: a filter change can leave
	// the current page past the end, which would render an empty table.
	if v.page > v.pages {
		v.page = v.pages
	}
	if v.page < 1 {
		v.page = 1
	}
}
