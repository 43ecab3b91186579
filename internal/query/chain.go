package query

import (
	"slices"
	"strings"

	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// Apply runs the full chain and returns one page. The input slice is never
// reordered or modified.
func Apply[T models.Entry](items []T, p Params) pagination.PageResponse[T] {
	return pagination.Slice(Filter(items, p), p.Page)
}

// Filter runs every step except pagination.
func Filter[T models.Entry](items []T, p Params) []T {
	out := ByLabel(items, p.Label)
	out = ByDateRange(out, p)
	out = BySearch(out, p.Search)
	return Sort(out, p.SortBy, p.Desc)
}

// ByLabel keeps entries whose label equals label ignoring case.
// An empty label keeps everything.
func ByLabel[T models.Entry](items []T, label string) []T {
	if label == "" {
		return items
	}
	return keep(items, func(e T) bool {
		return strings.EqualFold(e.Label(), label)
	})
}

// ByDateRange keeps entries dated within the inclusive [StartDate, EndDate]
// range. Either bound may be absent.
func ByDateRange[T models.Entry](items []T, p Params) []T {
	if p.StartDate == nil && p.EndDate == nil {
		return items
	}
	return keep(items, func(e T) bool {
		d := models.DateOf(e.GetDate())
		if p.StartDate != nil && d.Before(models.DateOf(*p.StartDate)) {
			return false
		}
		if p.EndDate != nil && d.After(models.DateOf(*p.EndDate)) {
			return false
		}
		return true
	})
}

// BySearch keeps entries whose description or label contains term ignoring case.
func BySearch[T models.Entry](items []T, term string) []T {
	if term == "" {
		return items
	}
	needle := strings.ToLower(term)
	return keep(items, func(e T) bool {
		return strings.Contains(strings.ToLower(e.GetDescription()), needle) ||
			strings.Contains(strings.ToLower(e.Label()), needle)
	})
}

// Sort returns a sorted copy. Equal keys fall back to creation time, then ID,
// in the same direction, so paging is stable across requests.
func Sort[T models.Entry](items []T, field string, desc bool) []T {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b T) int {
		c := compareField(a, b, field)
		if c == 0 {
			c = a.GetCreatedAt().Compare(b.GetCreatedAt())
		}
		if c == 0 {
			c = strings.Compare(a.GetID(), b.GetID())
		}
		if desc {
			return -c
		}
		return c
	})
	return out
}

func compareField[T models.Entry](a, b T, field string) int {
	if field == SortByAmount {
		return a.GetAmount().Cmp(b.GetAmount())
	}
	return models.DateOf(a.GetDate()).Compare(models.DateOf(b.GetDate()))
}

func keep[T any](items []T, pred func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if pred(it) {
			out = append(out, it)
		}
	}
	return out
}
