package model

import (
	"sort"
	"time"
)

type Filter string

const (
	FilterAll          Filter = "All"
	FilterPending      Filter = "Pending"
	FilterCompleted    Filter = "Completed"
	FilterDueToday     Filter = "DueToday"
	FilterHighPriority Filter = "HighPriority"
)

// Filters lists the selectable filters in display order.
var Filters = []Filter{FilterAll, FilterPending, FilterCompleted, FilterDueToday, FilterHighPriority}

func (f Filter) IsValid() bool {
	switch f {
	case FilterAll, FilterPending, FilterCompleted, FilterDueToday, FilterHighPriority:
		return true
	default:
		return false
	}
}

type Sort string

const (
	SortCreatedNewestFirst Sort = "CreatedNewestFirst"
	SortCreatedOldestFirst Sort = "CreatedOldestFirst"
	SortDueSoonestFirst    Sort = "DueSoonestFirst"
	SortDueLatestFirst     Sort = "DueLatestFirst"
	SortPriorityHighFirst  Sort = "PriorityHighFirst"
)

// Sorts lists the selectable sort orders in display order.
var Sorts = []Sort{SortCreatedNewestFirst, SortCreatedOldestFirst, SortDueSoonestFirst, SortDueLatestFirst, SortPriorityHighFirst}

func (s Sort) IsValid() bool {
	switch s {
	case SortCreatedNewestFirst, SortCreatedOldestFirst, SortDueSoonestFirst, SortDueLatestFirst, SortPriorityHighFirst:
		return true
	default:
		return false
	}
}

// farFuture stands in for a missing due date in due-date sorts, so undated
// tasks land last in soonest-first order and first in latest-first order.
var farFuture = time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC)

// FilterTasks returns the subset of tasks matching the filter. The input is
// not mutated. DueToday compares calendar dates in now's location.
func FilterTasks(tasks []Task, f Filter, now time.Time) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if matchesFilter(t, f, now) {
			out = append(out, t)
		}
	}
	return out
}

func matchesFilter(t Task, f Filter, now time.Time) bool {
	switch f {
	case FilterPending:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	case FilterDueToday:
		if t.Completed {
			return false
		}
		due, ok := t.DueTime()
		if !ok {
			return false
		}
		dueLocal := due.In(now.Location())
		y1, m1, d1 := dueLocal.Date()
		y2, m2, d2 := now.Date()
		return y1 == y2 && m1 == m2 && d1 == d2
	case FilterHighPriority:
		return !t.Completed && t.Priority == PriorityHigh
	default:
		return true
	}
}

// SortTasks returns a sorted copy. For due-date and priority sorts,
// completed tasks always order after incomplete ones regardless of
// direction.
func SortTasks(tasks []Task, s Sort) []Task {
	out := make([]Task, len(tasks))
	copy(out, tasks)

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch s {
		case SortCreatedNewestFirst:
			return createdKey(a).After(createdKey(b))
		case SortCreatedOldestFirst:
			return createdKey(a).Before(createdKey(b))
		case SortDueSoonestFirst:
			if a.Completed != b.Completed {
				return !a.Completed
			}
			return dueKey(a).Before(dueKey(b))
		case SortDueLatestFirst:
			if a.Completed != b.Completed {
				return !a.Completed
			}
			return dueKey(a).After(dueKey(b))
		case SortPriorityHighFirst:
			if a.Completed != b.Completed {
				return !a.Completed
			}
			if ra, rb := a.Priority.Rank(), b.Priority.Rank(); ra != rb {
				return ra < rb
			}
			return dueKey(a).Before(dueKey(b))
		default:
			return false
		}
	})
	return out
}

func createdKey(t Task) time.Time {
	if created, ok := t.CreatedTime(); ok {
		return created
	}
	return time.Time{}
}

func dueKey(t Task) time.Time {
	if due, ok := t.DueTime(); ok {
		return due
	}
	return farFuture
}
