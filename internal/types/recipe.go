// Package types provides type definitions for structured data used throughout the recipe-crawler system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Difficulty values accepted in an extracted recipe.
const (
	DifficultyVeryEasy = "매우 쉬움"
	DifficultyEasy     = "쉬움"
	DifficultyNormal   = "보통"
	DifficultyHard     = "어려움"
	DifficultyVeryHard = "매우 어려움"
)

// CookingTimeUnknown is stored when the model could not determine a cooking time.
const CookingTimeUnknown = "정보 없음"

// Difficulties lists the closed difficulty enumeration in ascending order.
var Difficulties = []string{
	DifficultyVeryEasy,
	DifficultyEasy,
	DifficultyNormal,
	DifficultyHard,
	DifficultyVeryHard,
}

// IsValidDifficulty reports whether d is a member of the difficulty enumeration.
func IsValidDifficulty(d string) bool {
	for _, v := range Difficulties {
		if v == d {
			return true
		}
	}
	return false
}

// Ingredient is a single ingredient line of a recipe.
// The validate tags describe a "valid" ingredient for counting purposes.
type Ingredient struct {
	Name     string `json:"name" validate:"min=2"`
	Quantity string `json:"quantity" validate:"required"`
}

// RecipeStep is one ordered instruction. StartTime and EndTime are set by
// caption alignment and are omitted when the video had no captions.
type RecipeStep struct {
	Step        int      `json:"step"`
	Instruction string   `json:"instruction" validate:"min=10"`
	StartTime   *float64 `json:"start_time,omitempty"`
	EndTime     *float64 `json:"end_time,omitempty"`
}

// HasTiming reports whether the step carries an aligned time range.
func (s RecipeStep) HasTiming() bool {
	return s.StartTime != nil && s.EndTime != nil
}

// ExtractedRecipe is the validated, normalized output of an extraction cycle.
type ExtractedRecipe struct {
	DishName    string       `json:"dish_name"`
	Category    string       `json:"category"`
	Ingredients []Ingredient `json:"ingredients"`
	Recipe      []RecipeStep `json:"recipe"`
	Difficulty  string       `json:"difficulty"`
	CookingTime string       `json:"cooking_time"`
}
