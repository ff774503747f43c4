package pagination

import "math"

const (
	// DefaultPageSize is the standard page size when one is not provided.
	DefaultPageSize = 6
	// MaxPageSize caps how many rows any page query can request.
	MaxPageSize = 50
)

// Params holds page pagination inputs from controllers or services.
type Params struct {
	PageNumber int
	PageSize   int
}

// MetaData describes the page that was actually served.
type MetaData struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	PageSize    int `json:"pageSize"`
	TotalCount  int `json:"totalCount"`
}

// Normalize clamps the page number and size to their allowed ranges.
func (p Params) Normalize() Params {
	out := p
	if out.PageNumber <= 0 {
		out.PageNumber = 1
	}
	if out.PageSize <= 0 {
		out.PageSize = DefaultPageSize
	}
	if out.PageSize > MaxPageSize {
		out.PageSize = MaxPageSize
	}
	return out
}

// Offset converts the normalized params into a SQL offset.
func (p Params) Offset() int {
	n := p.Normalize()
	return (n.PageNumber - 1) * n.PageSize
}

// NewMetaData computes the page description for a total row count.
func NewMetaData(params Params, totalCount int) MetaData {
	n := params.Normalize()
	totalPages := 0
	if totalCount > 0 {
		totalPages = int(math.Ceil(float64(totalCount) / float64(n.PageSize)))
	}
	return MetaData{
		CurrentPage: n.PageNumber,
		TotalPages:  totalPages,
		PageSize:    n.PageSize,
		TotalCount:  totalCount,
	}
}
