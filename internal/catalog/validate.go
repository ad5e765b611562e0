package catalog

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ValidateLesson checks a single lesson's field constraints.
func ValidateLesson(l Lesson) error {
	if err := structValidator().Struct(l); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("lesson %q: %s: %w", l.ID, strings.Join(msgs, "; "), err)
		}
		return fmt.Errorf("lesson %q: %w", l.ID, err)
	}
	return nil
}

// validateLessons checks every lesson and the uniqueness of ids.
// Returns a combined error describing all problems found, or nil if valid.
func validateLessons(lessons []Lesson) error {
	var errs []error

	seen := make(map[string]bool, len(lessons))
	for _, l := range lessons {
		if err := ValidateLesson(l); err != nil {
			errs = append(errs, err)
		}
		if seen[l.ID] {
			errs = append(errs, fmt.Errorf("duplicate lesson ID: %q", l.ID))
		}
		seen[l.ID] = true
	}

	return errors.Join(errs...)
}
