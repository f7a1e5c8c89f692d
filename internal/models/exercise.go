// ABOUTME: Exercise model and Category enum for the exercise catalog.
// ABOUTME: Includes input validation applied before an exercise is stored.
package models

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Category groups exercises by training day.
type Category string

const (
	CategoryPush Category = "Push"
	CategoryPull Category = "Pull"
	CategoryLegs Category = "Legs"
	CategoryCore Category = "Core"
)

// AllCategories lists every valid category in display order.
var AllCategories = []Category{CategoryPush, CategoryPull, CategoryLegs, CategoryCore}

// Field length limits for user-entered exercises.
const (
	MaxExerciseNameLen = 100
	MaxMuscleGroupLen  = 50
	MaxEquipmentLen    = 50
)

// IsValidCategory checks if a string is exactly one of the four categories.
func IsValidCategory(s string) bool {
	for _, c := range AllCategories {
		if string(c) == s {
			return true
		}
	}
	return false
}

// ParseCategory matches a category name case-insensitively ("legs" -> Legs).
func ParseCategory(s string) (Category, error) {
	for _, c := range AllCategories {
		if strings.EqualFold(string(c), strings.TrimSpace(s)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category: %s (use Push, Pull, Legs, or Core)", s)
}

// Exercise is a catalog entry. It is never modified after creation.
type Exercise struct {
	ID          int64    `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Category    Category `json:"category" yaml:"category"`
	MuscleGroup string   `json:"muscleGroup" yaml:"muscle_group"`
	Equipment   string   `json:"equipment" yaml:"equipment"`
}

// NewExercise creates an unsaved Exercise. The store assigns the ID.
func NewExercise(name string, category Category, muscleGroup, equipment string) *Exercise {
	return &Exercise{
		Name:        strings.TrimSpace(name),
		Category:    category,
		MuscleGroup: strings.TrimSpace(muscleGroup),
		Equipment:   strings.TrimSpace(equipment),
	}
}

// ValidationError reports a single invalid input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Validate checks the exercise the same way the add-exercise form does.
func (e *Exercise) Validate() error {
	if err := checkText("name", e.Name, "Exercise name is required", MaxExerciseNameLen); err != nil {
		return err
	}
	if !IsValidCategory(string(e.Category)) {
		return &ValidationError{Field: "category", Message: "must be one of Push, Pull, Legs, Core"}
	}
	if err := checkText("muscle group", e.MuscleGroup, "Muscle group is required", MaxMuscleGroupLen); err != nil {
		return err
	}
	return checkText("equipment", e.Equipment, "Equipment is required", MaxEquipmentLen)
}

func checkText(field, value, requiredMsg string, maxLen int) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field, Message: requiredMsg}
	}
	if utf8.RuneCountInString(value) > maxLen {
		return &ValidationError{Field: field, Message: fmt.Sprintf("must be at most %d characters", maxLen)}
	}
	return nil
}
