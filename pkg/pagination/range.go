package pagination

const DefaultMaxVisible = 5

// Ellipsis marks a gap in a page range.
const Ellipsis = 0

// Range lists the page numbers to offer around current, at most maxVisible
// of them plus the first and last page, with Ellipsis where pages are
// skipped.
func Range(current, totalPages, maxVisible int) []int {
	if totalPages <= 0 {
		return []int{}
	}
	if maxVisible <= 0 {
		maxVisible = DefaultMaxVisible
	}
	if totalPages <= maxVisible {
		pages := make([]int, totalPages)
		for i := range pages {
			pages[i] = i + 1
		}
		return pages
	}

	half := maxVisible / 2
	start := max(1, current-half)
	end := min(totalPages, current+half)
	if current <= half {
		end = maxVisible
	}
	if current >= totalPages-half {
		start = totalPages - maxVisible + 1
	}

	pages := make([]int, 0, maxVisible+4)
	if start > 1 {
		pages = append(pages, 1)
		if start > 2 {
			pages = append(pages, Ellipsis)
		}
	}
	for i := start; i <= end; i++ {
		pages = append(pages, i)
	}
	if end < totalPages {
		if end < totalPages-1 {
			pages = append(pages, Ellipsis)
		}
		pages = append(pages, totalPages)
	}
	return pages
}
