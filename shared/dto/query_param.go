package dto

import (
	"net/http"
	"strconv"
	"strings"

	"solireserve/shared/constant"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

// QueryParams carries paging and ordering of list endpoints. SortBy is only applied by the
// repository when it names a mapped column.
type QueryParams struct {
	Page    int    `json:"page"     validate:"omitempty,min=1"`
	Limit   int    `json:"limit"    validate:"omitempty,min=1,max=100"`
	SortBy  string `json:"sort_by"  validate:"omitempty"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=ASC DESC"`
}

// FromRequest reads page, limit, sort_by and sort_dir. Missing or invalid values fall back
// to page 1, ten rows, newest first; limit is capped at constant.MaxValueLimit.
func (q *QueryParams) FromRequest(r *http.Request) {
	query := r.URL.Query()

	q.Page = positiveInt(query.Get(constant.RequestParamPage), constant.DefaultValuePage)
	q.Limit = min(positiveInt(query.Get(constant.RequestParamLimit), constant.DefaultValueLimit), constant.MaxValueLimit)
	q.SortBy = constant.DefaultValueSortBy
	q.SortDir = constant.DefaultValueSortDir

	if sortBy := strings.TrimSpace(query.Get(constant.RequestParamSortBy)); sortBy != "" {
		q.SortBy = sortBy
	}

	switch dir := strings.ToUpper(query.Get(constant.RequestParamSortDir)); dir {
	case SortDirAsc, SortDirDesc:
		q.SortDir = dir
	}
}

// Offset is the number of rows skipped before the current page.
func (q QueryParams) Offset() int {
	if q.Page <= 1 || q.Limit <= 0 {
		return 0
	}

	return (q.Page - 1) * q.Limit
}

func positiveInt(raw string, fallback int) int {
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}

	return value
}
