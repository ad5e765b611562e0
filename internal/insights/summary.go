// Package insights derives summaries, learning paths and recommendations
// from the catalog and a learner's progress records.
package insights

import (
	"math"

	"github.com/abhisek/lessonhub/internal/catalog"
	"github.com/abhisek/lessonhub/internal/progress"
)

// CategoryCount is the completion tally for one category.
type CategoryCount struct {
	Category  catalog.Category
	Completed int
	Total     int
}

// Summary holds the data displayed on the stats screen.
type Summary struct {
	Total      int
	Completed  int
	InProgress int
	NotStarted int
	// Percent is Completed/Total*100 rounded to one decimal.
	Percent    float64
	ByCategory []CategoryCount
}

// Summarize counts progress against the catalog. Records for lesson ids
// the catalog does not know are ignored.
func Summarize(cat *catalog.Catalog, records map[string]progress.Record) Summary {
	counts := make(map[catalog.Category]*CategoryCount)
	var order []catalog.Category

	var s Summary
	for _, l := range cat.All() {
		s.Total++
		cc, ok := counts[l.Category]
		if !ok {
			cc = &CategoryCount{Category: l.Category}
			counts[l.Category] = cc
			order = append(order, l.Category)
		}
		cc.Total++

		switch records[l.ID].Status {
		case progress.Completed:
			s.Completed++
			cc.Completed++
		case progress.InProgress:
			s.InProgress++
		}
	}
	s.NotStarted = s.Total - s.Completed - s.InProgress

	if s.Total > 0 {
		s.Percent = math.Round(float64(s.Completed)/float64(s.Total)*1000) / 10
	}

	for _, c := range catalog.AllCategories() {
		if cc, ok := counts[c]; ok {
			s.ByCategory = append(s.ByCategory, *cc)
			delete(counts, c)
		}
	}
	// Categories outside the known set keep first-seen order.
	for _, c := range order {
		if cc, ok := counts[c]; ok {
			s.ByCategory = append(s.ByCategory, *cc)
		}
	}
	return s
}
