package catalog

// Category groups lessons by the kind of work they support.
type Category string

const (
	CategoryAutomation    Category = "automation"
	CategoryCoding        Category = "coding"
	CategoryCommunication Category = "communication"
	CategoryBestPractices Category = "best-practices"
	CategoryWorkflow      Category = "workflow"
)

// AllCategories returns every category in display order.
func AllCategories() []Category {
	return []Category{
		CategoryAutomation,
		CategoryCoding,
		CategoryCommunication,
		CategoryBestPractices,
		CategoryWorkflow,
	}
}

// DisplayName returns a human-readable label for the category.
func (c Category) DisplayName() string {
	switch c {
	case CategoryAutomation:
		return "Automation"
	case CategoryCoding:
		return "Coding"
	case CategoryCommunication:
		return "Communication"
	case CategoryBestPractices:
		return "Best Practices"
	case CategoryWorkflow:
		return "Workflow"
	default:
		return string(c)
	}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range AllCategories() {
		if c == known {
			return true
		}
	}
	return false
}

// Difficulty is the expected experience level for a lesson.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// AllDifficulties returns every difficulty from easiest to hardest.
func AllDifficulties() []Difficulty {
	return []Difficulty{DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced}
}

// DisplayName returns a human-readable label for the difficulty.
func (d Difficulty) DisplayName() string {
	switch d {
	case DifficultyBeginner:
		return "Beginner"
	case DifficultyIntermediate:
		return "Intermediate"
	case DifficultyAdvanced:
		return "Advanced"
	default:
		return string(d)
	}
}

// Valid reports whether d is one of the known difficulties.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// ExternalCourse links a lesson to the longer course it was adapted from.
type ExternalCourse struct {
	Name string `json:"name" validate:"required"`
	URL  string `json:"url" validate:"required,url"`
}

// Lesson is a single catalog entry. Lessons are never mutated once the
// catalog is built.
type Lesson struct {
	ID               string          `json:"id" validate:"required"`
	Title            string          `json:"title" validate:"required"`
	Summary          string          `json:"summary" validate:"required"`
	Content          string          `json:"content" validate:"required"`
	ToolName         string          `json:"toolName" validate:"required"`
	Category         Category        `json:"category" validate:"required,oneof=automation coding communication best-practices workflow"`
	Difficulty       Difficulty      `json:"difficulty" validate:"required,oneof=beginner intermediate advanced"`
	Tags             []string        `json:"tags" validate:"dive,required,lowercase"`
	EstimatedMinutes int             `json:"estimatedMinutes" validate:"gt=0"`
	CreatedAt        string          `json:"createdAt" validate:"required,datetime=2006-01-02"`
	Course           *ExternalCourse `json:"course,omitempty" validate:"omitempty"`
}

// HasTag reports whether the lesson carries exactly the given tag.
func (l Lesson) HasTag(tag string) bool {
	for _, t := range l.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// clone returns a deep copy so callers cannot reach catalog-owned slices.
func (l Lesson) clone() Lesson {
	out := l
	if l.Tags != nil {
		out.Tags = append([]string(nil), l.Tags...)
	}
	if l.Course != nil {
		c := *l.Course
		out.Course = &c
	}
	return out
}
