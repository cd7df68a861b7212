package pagination

import (
	"github.com/aresapparel/apparel-backend/pkg/types"
)

const (
	// DefaultPerPage matches the storefront's product grid page size.
	DefaultPerPage = 12
	// MaxPerPage caps how many rows any paginated query can request.
	MaxPerPage = 100
)

// Params holds offset pagination inputs from controllers.
type Params struct {
	Page    int
	PerPage int
}

// Normalize clamps page and per-page values into their allowed ranges.
func Normalize(p Params) Params {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PerPage <= 0 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	return p
}

// Offset returns the row offset for the normalized params.
func (p Params) Offset() int {
	n := Normalize(p)
	return (n.Page - 1) * n.PerPage
}

// Meta builds the response metadata for a page of `total` matching rows.
func Meta(p Params, total int64) types.PageMeta {
	n := Normalize(p)

	lastPage := int((total + int64(n.PerPage) - 1) / int64(n.PerPage))
	if lastPage < 1 {
		lastPage = 1
	}

	from := 0
	to := 0
	if total > 0 && n.Page <= lastPage {
		from = (n.Page-1)*n.PerPage + 1
		to = n.Page * n.PerPage
		if int64(to) > total {
			to = int(total)
		}
	}

	return types.PageMeta{
		CurrentPage: n.Page,
		LastPage:    lastPage,
		PerPage:     n.PerPage,
		Total:       total,
		From:        from,
		To:          to,
	}
}
