package controlplane

import (
	"net/url"
	"strconv"
)

const (
	// DefaultPageSize is used when a find call carries no explicit limit.
	DefaultPageSize = 20

	// MaxPageSize is the largest page a list endpoint will serve.
	MaxPageSize = 100
)

// PagingFilter is implemented by find filters that contribute query
// parameters to paging links.
type PagingFilter interface {
	// QueryParams returns a map containing url query params.
	QueryParams() map[string][]string
}

// PagingLinks represents paging links of a list of resources.
type PagingLinks struct {
	Prev string `json:"prev,omitempty"`
	Self string `json:"self"`
	Next string `json:"next,omitempty"`
}

// FindOptions represents options passed to all find methods with multiple results.
type FindOptions struct {
	Limit      int
	Offset     int
	SortBy     string
	Descending bool
}

// QueryParams returns a map containing url query params.
func (f FindOptions) QueryParams() map[string][]string {
	qp := url.Values{
		"descending": {strconv.FormatBool(f.Descending)},
		"offset":     {strconv.Itoa(f.Offset)},
	}

	if f.Limit > 0 {
		qp.Set("limit", strconv.Itoa(f.Limit))
	}

	if f.SortBy != "" {
		qp.Set("sortBy", f.SortBy)
	}

	return qp
}
