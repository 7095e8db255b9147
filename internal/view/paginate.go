package view

// PageSize is the fixed transaction-table page size.
const PageSize = 10

// windowSize is how many page numbers the pager shows at once.
const windowSize = 5

// Page is one slice of a filtered result plus everything the pager
// control needs.
type Page struct {
	Items      []int // indices into the filtered slice; see Paginate
	Number     int
	TotalPages int
	TotalItems int
	Window     []int
	HasPrev    bool
	HasNext    bool
}

// Paginate clamps the requested page into [1, totalPages] and returns the
// page descriptor. totalPages is never 0: an empty set still has one
// (empty) page. Items holds the half-open index range [Start, End) as
// explicit indices so callers can slice whatever parallel data they hold.
func Paginate(itemCount, requested int) Page {
	totalPages := (itemCount + PageSize - 1) / PageSize
	if totalPages < 1 {
		totalPages = 1
	}
	n := requested
	if n < 1 {
		n = 1
	}
	if n > totalPages {
		n = totalPages
	}

	start := (n - 1) * PageSize
	end := start + PageSize
	if end > itemCount {
		end = itemCount
	}
	items := make([]int, 0, PageSize)
	for i := start; i < end; i++ {
		items = append(items, i)
	}

	return Page{
		Items:      items,
		Number:     n,
		TotalPages: totalPages,
		TotalItems: itemCount,
		Window:     pageWindow(n, totalPages),
		HasPrev:    n > 1,
		HasNext:    n < totalPages,
	}
}

// pageWindow returns up to windowSize page numbers centered on current,
// shifted to stay inside [1, total].
func pageWindow(current, total int) []int {
	first := current - windowSize/2
	if first < 1 {
		first = 1
	}
	last := first + windowSize - 1
	if last > total {
		last = total
		first = last - windowSize + 1
		if first < 1 {
			first = 1
		}
	}
	window := make([]int, 0, windowSize)
	for p := first; p <= last; p++ {
		window = append(window, p)
	}
	return window
}
