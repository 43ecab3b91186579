// Package query implements the list filter chain shared by expenses and
// incomes: label match, date range, search, sort and pagination.
package query

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/pagination"
)

// DateLayout is the wire format of start_date and end_date.
const DateLayout = "2006-01-02"

// Sort fields accepted by sort_by.
const (
	SortByDate   = "date"
	SortByAmount = "amount"
)

// Params are the named list parameters after parsing. Zero values mean
// "not supplied".
type Params struct {
	Label     string
	StartDate *time.Time
	EndDate   *time.Time
	Search    string
	SortBy    string
	Desc      bool
	Page      pagination.PageRequest
}

// ParseParams reads list parameters from a query string. labelKey names the
// classification parameter ("category" for expenses, "source" for incomes).
// Validation failures are returned before any store access happens.
func ParseParams(values url.Values, labelKey string) (Params, error) {
	p := Params{
		Label:  strings.TrimSpace(values.Get(labelKey)),
		Search: strings.TrimSpace(values.Get("search")),
		SortBy: SortByDate,
		Desc:   true,
	}

	var err error
	if p.StartDate, err = parseDate(values.Get("start_date")); err != nil {
		return Params{}, err
	}
	if p.EndDate, err = parseDate(values.Get("end_date")); err != nil {
		return Params{}, err
	}

	if raw := strings.TrimSpace(values.Get("sort_by")); raw != "" {
		switch strings.ToLower(raw) {
		case SortByDate, SortByAmount:
			p.SortBy = strings.ToLower(raw)
		default:
			return Params{}, apperrors.WithMessage(apperrors.ErrInvalidSortField, "Invalid sort field: "+raw)
		}
	}

	switch order := strings.ToLower(strings.TrimSpace(values.Get("order"))); order {
	case "", "desc":
	case "asc":
		p.Desc = false
	default:
		return Params{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "order must be asc or desc")
	}

	if p.Page.Page, err = parsePositive(values.Get("page"), "page"); err != nil {
		return Params{}, err
	}
	if p.Page.PageSize, err = parsePositive(values.Get("page_size"), "page_size"); err != nil {
		return Params{}, err
	}
	p.Page.Defaults()

	return p, nil
}

// ParseDateRange reads only start_date and end_date. Used by the summary,
// analysis and export endpoints.
func ParseDateRange(values url.Values) (Params, error) {
	var p Params
	var err error
	if p.StartDate, err = parseDate(values.Get("start_date")); err != nil {
		return Params{}, err
	}
	if p.EndDate, err = parseDate(values.Get("end_date")); err != nil {
		return Params{}, err
	}
	p.SortBy = SortByDate
	return p, nil
}

func parseDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidDate, err)
	}
	return &t, nil
}

func parsePositive(raw, name string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, name+" must be a positive integer")
	}
	return n, nil
}
