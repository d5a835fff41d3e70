package ranking

// DefaultLimit is the page size used when none or an invalid one is given
const DefaultLimit = 100

// Pagination describes the slice returned by Paginate
type Pagination struct {
	Total       int
	CurrentPage int
	TotalPages  int
}

// PageCount is ceil(total/limit) for limit > 0, computed without overflow
func PageCount(total, limit int64) int64 {
	pages := total / limit
	if total%limit != 0 {
		pages++
	}
	return pages
}

// Paginate slices an already ordered sequence. page is 1-based; page < 1 is
// read as 1 and limit < 1 as DefaultLimit. Pages past the end are empty.
func Paginate[T any](items []T, page, limit int) ([]T, Pagination) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}

	total := len(items)
	p := Pagination{
		Total:       total,
		CurrentPage: page,
		TotalPages:  int(PageCount(int64(total), int64(limit))),
	}

	// page <= TotalPages keeps (page-1)*limit below total
	if page > p.TotalPages {
		return []T{}, p
	}

	skip := (page - 1) * limit
	end := total
	if limit < total-skip {
		end = skip + limit
	}

	return items[skip:end], p
}
