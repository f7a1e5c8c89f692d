// ABOUTME: PersonalRecord and BodyMetric models for progress tracking.
// ABOUTME: Both are simple dated samples keyed by store-assigned IDs.
package models

import "time"

// PersonalRecord is a best recorded weight/reps pairing for one exercise.
type PersonalRecord struct {
	ID         int64     `json:"id" yaml:"id"`
	ExerciseID int64     `json:"exerciseId" yaml:"exercise_id"`
	Weight     float64   `json:"weight" yaml:"weight"`
	Reps       int       `json:"reps" yaml:"reps"`
	Date       time.Time `json:"date" yaml:"date"`
}

// NewPersonalRecord creates an unsaved record dated now.
func NewPersonalRecord(exerciseID int64, weight float64, reps int) *PersonalRecord {
	return &PersonalRecord{
		ExerciseID: exerciseID,
		Weight:     weight,
		Reps:       reps,
		Date:       time.Now(),
	}
}

// WithDate sets a custom date.
func (p *PersonalRecord) WithDate(t time.Time) *PersonalRecord {
	p.Date = t
	return p
}

// Beats reports whether p is a better lift than other: heavier wins, equal
// weight falls back to more reps.
func (p *PersonalRecord) Beats(other *PersonalRecord) bool {
	if other == nil {
		return true
	}
	if p.Weight != other.Weight {
		return p.Weight > other.Weight
	}
	return p.Reps > other.Reps
}

// BodyMetric is a user-entered body-composition sample.
type BodyMetric struct {
	ID      int64     `json:"id" yaml:"id"`
	Date    time.Time `json:"date" yaml:"date"`
	Weight  float64   `json:"weight" yaml:"weight"`
	BodyFat *float64  `json:"bodyFat,omitempty" yaml:"body_fat,omitempty"`
}

// NewBodyMetric creates an unsaved sample dated now.
func NewBodyMetric(weight float64) *BodyMetric {
	return &BodyMetric{
		Date:   time.Now(),
		Weight: weight,
	}
}

// WithBodyFat sets the optional body fat percentage.
func (b *BodyMetric) WithBodyFat(pct float64) *BodyMetric {
	b.BodyFat = &pct
	return b
}

// WithDate sets a custom date.
func (b *BodyMetric) WithDate(t time.Time) *BodyMetric {
	b.Date = t
	return b
}
