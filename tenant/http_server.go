package tenant

import (
	"net/http"
	"net/url"
	"strconv"

	controlplane "github.com/ITlusions/ITL.ControlPlane.SDK-sub001"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kit/platform"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kit/platform/errors"
	"github.com/go-chi/chi"
)

// decodeIDParam parses the chi URL parameter name as a platform ID.
func decodeIDParam(r *http.Request, name string) (platform.ID, error) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		return platform.InvalidID(), &errors.Error{
			Code: errors.EInvalid,
			Msg:  "url missing " + name,
		}
	}

	id, err := platform.IDFromString(raw)
	if err != nil {
		return platform.InvalidID(), &errors.Error{
			Code: errors.EInvalid,
			Msg:  "invalid " + name,
			Err:  err,
		}
	}
	return *id, nil
}

// decodeFindOptions extracts paging options from query parameters. The limit
// is clamped to the maximum page size.
func decodeFindOptions(r *http.Request) (controlplane.FindOptions, error) {
	opts := controlplane.FindOptions{Limit: controlplane.DefaultPageSize}
	qp := r.URL.Query()

	if v := qp.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 {
			return opts, &errors.Error{
				Code: errors.EInvalid,
				Msg:  "limit must be a positive integer",
			}
		}
		if limit > controlplane.MaxPageSize {
			limit = controlplane.MaxPageSize
		}
		opts.Limit = limit
	}

	if v := qp.Get("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil || offset < 0 {
			return opts, &errors.Error{
				Code: errors.EInvalid,
				Msg:  "offset must be a non-negative integer",
			}
		}
		opts.Offset = offset
	}

	if v := qp.Get("sortBy"); v != "" {
		opts.SortBy = v
	}

	if v := qp.Get("descending"); v != "" {
		descending, err := strconv.ParseBool(v)
		if err != nil {
			return opts, &errors.Error{
				Code: errors.EInvalid,
				Msg:  "descending must be a boolean",
			}
		}
		opts.Descending = descending
	}

	return opts, nil
}

// newPagingLinks constructs prev/self/next links for a list response.
func newPagingLinks(basePath string, opts controlplane.FindOptions, f controlplane.PagingFilter, num int) *controlplane.PagingLinks {
	u := func(o controlplane.FindOptions) string {
		values := url.Values(o.QueryParams())
		if f != nil {
			for k, vs := range f.QueryParams() {
				for _, v := range vs {
					values[k] = append(values[k], v)
				}
			}
		}
		return basePath + "?" + values.Encode()
	}

	links := &controlplane.PagingLinks{
		Self: u(opts),
	}

	if opts.Offset > 0 {
		prev := opts
		prev.Offset -= opts.Limit
		if prev.Offset < 0 {
			prev.Offset = 0
		}
		links.Prev = u(prev)
	}

	if opts.Limit > 0 && num >= opts.Limit {
		next := opts
		next.Offset += opts.Limit
		links.Next = u(next)
	}

	return links
}
