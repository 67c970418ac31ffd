package handler

import (
	"time"

	"github.com/cakebro/bakery-api/pkg/pagination"
)

// parseDateParam parses a YYYY-MM-DD query parameter into a local midnight
// timestamp. endOfDay pushes the result to 23:59:59 so to-date filters stay
// inclusive.
func parseDateParam(value string, endOfDay bool) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		t = t.AddDate(0, 0, 1).Add(-time.Second)
	}
	return &t, nil
}

// pageParams builds validated pagination parameters from query values
func pageParams(page, perPage int) *pagination.PaginationParams {
	params := &pagination.PaginationParams{Page: page, PerPage: perPage}
	params.Validate()
	return params
}
