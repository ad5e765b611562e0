package insights

import (
	"github.com/abhisek/lessonhub/internal/catalog"
	"github.com/abhisek/lessonhub/internal/progress"
)

// Path splits the catalog into learning path sections, each in catalog
// order.
type Path struct {
	Completed  []catalog.Lesson
	InProgress []catalog.Lesson
	UpNext     []catalog.Lesson
}

// BuildPath places every catalog lesson in exactly one section.
func BuildPath(cat *catalog.Catalog, records map[string]progress.Record) Path {
	var p Path
	for _, l := range cat.All() {
		switch records[l.ID].Status {
		case progress.Completed:
			p.Completed = append(p.Completed, l)
		case progress.InProgress:
			p.InProgress = append(p.InProgress, l)
		default:
			p.UpNext = append(p.UpNext, l)
		}
	}
	return p
}
