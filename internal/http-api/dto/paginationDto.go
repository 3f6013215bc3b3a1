package dto

// Pagination mirrors the feed pagination block: total count, page size,
// current and last page, plus the 1-based positions of the first and last
// items on the page (null when the page is empty).
type Pagination struct {
	Total       int64  `json:"total"`
	PerPage     int    `json:"per_page"`
	CurrentPage int    `json:"current_page"`
	LastPage    int    `json:"last_page"`
	From        *int64 `json:"from"`
	To          *int64 `json:"to"`
}

// NewPagination computes the pagination block for a page of itemCount items.
func NewPagination(total int64, perPage, page, itemCount int) Pagination {
	lastPage := int(total) / perPage
	if int(total)%perPage != 0 || lastPage == 0 {
		lastPage++
	}

	p := Pagination{
		Total:       total,
		PerPage:     perPage,
		CurrentPage: page,
		LastPage:    lastPage,
	}
	if itemCount > 0 {
		from := int64(page-1)*int64(perPage) + 1
		to := from + int64(itemCount) - 1
		p.From = &from
		p.To = &to
	}
	return p
}
