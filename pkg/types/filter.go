package types

// Filter representa los parámetros de consulta para filtrar y paginar.
//
//	/api/v1/ordenes?search=monitor&sort=-created_at&filter[estado]=pendiente&limit=20&page=2
type Filter struct {
	Search    string            `json:"search,omitempty"`
	Filters   map[string]string `json:"filters,omitempty"`
	SortBy    string            `json:"sort_by,omitempty"`
	SortOrder string            `json:"sort_order,omitempty"`
	Limit     uint64            `json:"limit"`
	Offset    uint64            `json:"offset"`
	Page      uint64            `json:"page"`
}

// Get devuelve el filtro key o "" si no está presente.
func (f Filter) Get(key string) string {
	if f.Filters == nil {
		return ""
	}
	return f.Filters[key]
}

type Pagination struct {
	TotalCount uint64 `json:"total_count"`
	Page       uint64 `json:"page"`
	Limit      uint64 `json:"limit"`
	TotalPages uint64 `json:"total_pages"`
}

func NewPagination(total, page, limit uint64) Pagination {
	p := Pagination{TotalCount: total, Page: page, Limit: limit}
	if limit > 0 {
		p.TotalPages = (total + limit - 1) / limit
	}
	return p
}
