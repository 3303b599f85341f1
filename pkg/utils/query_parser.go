package utils

import (
	"net/url"
	"strconv"
	"strings"

	"clinical-service/pkg/types"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// ParseFilterFromQuery lee search, sort, filter[...], limit, offset y page.
// page solo se considera cuando no se envió offset.
func ParseFilterFromQuery(query url.Values) types.Filter {
	f := types.Filter{
		Filters:   make(map[string]string),
		Limit:     DefaultLimit,
		Page:      1,
		SortBy:    "created_at",
		SortOrder: "desc",
	}

	for key, values := range query {
		if strings.HasPrefix(key, "filter[") && strings.HasSuffix(key, "]") && len(values) > 0 {
			if v := strings.TrimSpace(values[0]); v != "" {
				f.Filters[key[7:len(key)-1]] = v
			}
		}
	}

	if l, err := strconv.ParseUint(query.Get("limit"), 10, 64); err == nil && l > 0 {
		f.Limit = min(l, MaxLimit)
	}

	if o, err := strconv.ParseUint(query.Get("offset"), 10, 64); err == nil {
		f.Offset = o
		f.Page = o/f.Limit + 1
	} else if p, err := strconv.ParseUint(query.Get("page"), 10, 64); err == nil && p > 0 {
		f.Page = p
		f.Offset = (p - 1) * f.Limit
	}

	f.Search = strings.TrimSpace(query.Get("search"))

	if sort := query.Get("sort"); sort != "" {
		if strings.HasPrefix(sort, "-") {
			f.SortOrder = "desc"
			f.SortBy = sort[1:]
		} else {
			f.SortOrder = "asc"
			f.SortBy = sort
		}
	}
	return f
}
