package api

import (
	"net/url"
	"time"

	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// DateRangeParams holds the optional start_date / end_date query parameters.
type DateRangeParams struct {
	StartDate *openapi_types.Date `form:"start_date,omitempty" json:"start_date,omitempty"`
	EndDate   *openapi_types.Date `form:"end_date,omitempty" json:"end_date,omitempty"`
}

// BindDateRange parses start_date and end_date (YYYY-MM-DD) from the query.
// Missing or empty parameters yield zero times.
func BindDateRange(q url.Values) (start, end time.Time, err error) {
	var params DateRangeParams

	// 空文字はフォームの未入力として扱う
	q = dropEmpty(q, "start_date", "end_date")

	if err := runtime.BindQueryParameter("form", true, false, "start_date", q, &params.StartDate); err != nil {
		return time.Time{}, time.Time{}, err
	}
	if err := runtime.BindQueryParameter("form", true, false, "end_date", q, &params.EndDate); err != nil {
		return time.Time{}, time.Time{}, err
	}
	if params.StartDate != nil {
		start = params.StartDate.Time
	}
	if params.EndDate != nil {
		end = params.EndDate.Time
	}
	return start, end, nil
}

func dropEmpty(q url.Values, keys ...string) url.Values {
	out := url.Values{}
	for k, v := range q {
		out[k] = v
	}
	for _, k := range keys {
		if out.Get(k) == "" {
			out.Del(k)
		}
	}
	return out
}
