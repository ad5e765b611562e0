package catalog

import (
	"strings"
	"sync"
)

// Catalog holds the lesson set with precomputed indices. It is read-only
// after New returns, so it is safe for concurrent use.
type Catalog struct {
	lessons      []Lesson
	byID         map[string]int
	byTool       map[string][]int
	byCategory   map[Category][]int
	byDifficulty map[Difficulty][]int
	tools        []string
	categories   []Category
	tags         []string
}

// New validates lessons and builds a catalog over them. The input slice is
// copied; later changes to it are not observed.
func New(lessons []Lesson) (*Catalog, error) {
	if err := validateLessons(lessons); err != nil {
		return nil, err
	}
	return build(lessons), nil
}

// build constructs every index in a single pass over the lessons,
// preserving insertion order everywhere.
func build(lessons []Lesson) *Catalog {
	c := &Catalog{
		lessons:      make([]Lesson, len(lessons)),
		byID:         make(map[string]int, len(lessons)),
		byTool:       make(map[string][]int),
		byCategory:   make(map[Category][]int),
		byDifficulty: make(map[Difficulty][]int),
	}

	seenTag := make(map[string]bool)
	for i, l := range lessons {
		c.lessons[i] = l.clone()
		c.byID[l.ID] = i

		if _, ok := c.byTool[l.ToolName]; !ok {
			c.tools = append(c.tools, l.ToolName)
		}
		c.byTool[l.ToolName] = append(c.byTool[l.ToolName], i)

		if _, ok := c.byCategory[l.Category]; !ok {
			c.categories = append(c.categories, l.Category)
		}
		c.byCategory[l.Category] = append(c.byCategory[l.Category], i)

		c.byDifficulty[l.Difficulty] = append(c.byDifficulty[l.Difficulty], i)

		for _, t := range l.Tags {
			if !seenTag[t] {
				seenTag[t] = true
				c.tags = append(c.tags, t)
			}
		}
	}
	return c
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the compiled-in catalog. The seed data is validated by
// tests, so a failure here is a programming error.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := New(seedLessons)
		if err != nil {
			panic("catalog: invalid seed data: " + err.Error())
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Len returns the number of lessons.
func (c *Catalog) Len() int {
	return len(c.lessons)
}

// All returns every lesson in catalog order.
func (c *Catalog) All() []Lesson {
	out := make([]Lesson, len(c.lessons))
	for i, l := range c.lessons {
		out[i] = l.clone()
	}
	return out
}

// Lesson returns the lesson with the given id. The boolean is false when no
// such lesson exists.
func (c *Catalog) Lesson(id string) (Lesson, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Lesson{}, false
	}
	return c.lessons[i].clone(), true
}

// ByTool returns lessons whose tool name matches exactly (case-sensitive).
func (c *Catalog) ByTool(toolName string) []Lesson {
	return c.collect(c.byTool[toolName])
}

// ByCategory returns lessons in the given category.
func (c *Catalog) ByCategory(category Category) []Lesson {
	return c.collect(c.byCategory[category])
}

// ByDifficulty returns lessons at the given difficulty.
func (c *Catalog) ByDifficulty(difficulty Difficulty) []Lesson {
	return c.collect(c.byDifficulty[difficulty])
}

// Search returns lessons matching query as a case-insensitive substring of
// the title, summary or tool name, or as a substring of any tag. An empty
// query matches every lesson. Results keep catalog order.
func (c *Catalog) Search(query string) []Lesson {
	q := strings.ToLower(query)
	result := make([]Lesson, 0)
	for _, l := range c.lessons {
		if matchesQuery(l, q) {
			result = append(result, l.clone())
		}
	}
	return result
}

// matchesQuery expects q to be lowercased already. Tags are stored
// lowercase and compared without case folding.
func matchesQuery(l Lesson, q string) bool {
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(l.Title), q) ||
		strings.Contains(strings.ToLower(l.Summary), q) ||
		strings.Contains(strings.ToLower(l.ToolName), q) {
		return true
	}
	for _, t := range l.Tags {
		if strings.Contains(t, q) {
			return true
		}
	}
	return false
}

// Tools returns the distinct tool names in first-seen order.
func (c *Catalog) Tools() []string {
	return append([]string(nil), c.tools...)
}

// Categories returns the distinct categories in first-seen order.
func (c *Catalog) Categories() []Category {
	return append([]Category(nil), c.categories...)
}

// Tags returns the distinct tags in first-seen order.
func (c *Catalog) Tags() []string {
	return append([]string(nil), c.tags...)
}

func (c *Catalog) collect(idx []int) []Lesson {
	out := make([]Lesson, 0, len(idx))
	for _, i := range idx {
		out = append(out, c.lessons[i].clone())
	}
	return out
}
