package catalog

import "strings"

// Predicate decides whether a lesson passes one filter criterion.
type Predicate func(Lesson) bool

// Filter is the multi-criteria lesson filter used by the library views.
// Zero-valued fields are unset and match every lesson.
type Filter struct {
	Query      string
	Tool       string
	Category   Category
	Difficulty Difficulty
}

// IsZero reports whether no criterion is set.
func (f Filter) IsZero() bool {
	return f == Filter{}
}

// Predicates returns one predicate per set criterion. A lesson passes the
// filter iff it passes all of them, in any order.
func (f Filter) Predicates() []Predicate {
	var preds []Predicate
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		preds = append(preds, func(l Lesson) bool { return matchesQuery(l, q) })
	}
	if f.Tool != "" {
		tool := f.Tool
		preds = append(preds, func(l Lesson) bool { return l.ToolName == tool })
	}
	if f.Category != "" {
		cat := f.Category
		preds = append(preds, func(l Lesson) bool { return l.Category == cat })
	}
	if f.Difficulty != "" {
		diff := f.Difficulty
		preds = append(preds, func(l Lesson) bool { return l.Difficulty == diff })
	}
	return preds
}

// Matches reports whether l passes every set criterion.
func (f Filter) Matches(l Lesson) bool {
	return And(f.Predicates()...)(l)
}

// Apply recomputes the filtered lesson list from scratch.
func (c *Catalog) Apply(f Filter) []Lesson {
	return c.Where(f.Predicates()...)
}

// Where returns lessons passing every predicate, in catalog order.
func (c *Catalog) Where(preds ...Predicate) []Lesson {
	match := And(preds...)
	result := make([]Lesson, 0)
	for _, l := range c.lessons {
		if match(l) {
			result = append(result, l.clone())
		}
	}
	return result
}

// And combines predicates with logical AND. With no predicates it matches
// everything.
func And(preds ...Predicate) Predicate {
	return func(l Lesson) bool {
		for _, p := range preds {
			if !p(l) {
				return false
			}
		}
		return true
	}
}
