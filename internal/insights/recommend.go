package insights

import (
	"math"
	"sort"
	"time"

	"github.com/abhisek/lessonhub/internal/catalog"
	"github.com/abhisek/lessonhub/internal/progress"
)

// Scoring weights.
const (
	baseScore       = 0.5
	inProgressBoost = 0.5
	beginnerBoost   = 0.3
	advancedBoost   = 0.2
	newLessonBoost  = 0.3
	fewCompleted    = 3
	manyCompleted   = 10
	newLessonWindow = 7 * 24 * time.Hour
)

// DefaultLimit is the number of recommendations shown when none is asked for.
const DefaultLimit = 5

// Recommendation is a scored suggestion with the reasons behind the score.
type Recommendation struct {
	Lesson  catalog.Lesson
	Score   float64
	Reasons []string
}

// Recommend scores every lesson that is not completed and returns the top
// limit, highest score first. Ties keep catalog order. limit <= 0 returns
// all candidates.
func Recommend(cat *catalog.Catalog, records map[string]progress.Record, now time.Time, limit int) []Recommendation {
	completed := 0
	for _, l := range cat.All() {
		if records[l.ID].Status == progress.Completed {
			completed++
		}
	}

	var recs []Recommendation
	for _, l := range cat.All() {
		status := records[l.ID].Status
		if status == progress.Completed {
			continue
		}

		score := baseScore
		var reasons []string

		if status == progress.InProgress {
			score += inProgressBoost
			reasons = append(reasons, "You started this lesson, pick up where you left off")
		}
		if completed < fewCompleted && l.Difficulty == catalog.DifficultyBeginner {
			score += beginnerBoost
			reasons = append(reasons, "Good starting point")
		}
		if completed > manyCompleted && l.Difficulty == catalog.DifficultyAdvanced {
			score += advancedBoost
			reasons = append(reasons, "A step up for experienced learners")
		}
		if isNew(l, now) {
			score += newLessonBoost
			reasons = append(reasons, "New this week")
		}
		if len(reasons) == 0 {
			reasons = append(reasons, "Recommended for your team")
		}

		recs = append(recs, Recommendation{
			Lesson:  l,
			Score:   math.Round(score*100) / 100,
			Reasons: reasons,
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Score > recs[j].Score
	})

	if limit > 0 && len(recs) > limit {
		recs = recs[:limit]
	}
	return recs
}

// isNew reports whether the lesson was created less than a week before now.
// CreatedAt is read as midnight in now's location.
func isNew(l catalog.Lesson, now time.Time) bool {
	created, err := time.ParseInLocation("2006-01-02", l.CreatedAt, now.Location())
	if err != nil {
		return false
	}
	return created.After(now.Add(-newLessonWindow))
}
