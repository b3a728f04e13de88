package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidDifficulty(t *testing.T) {
	for _, d := range Difficulties {
		assert.True(t, IsValidDifficulty(d), d)
	}
	assert.False(t, IsValidDifficulty(""))
	assert.False(t, IsValidDifficulty("easy"))
	assert.False(t, IsValidDifficulty("쉬움 "))
}

func TestRecipeStep_TimingOmittedWhenUnset(t *testing.T) {
	step := RecipeStep{Step: 1, Instruction: "양념을 넣고 볶는다"}

	jsonBytes, err := json.Marshal(step)
	require.NoError(t, err)
	assert.NotContains(t, string(jsonBytes), "start_time")
	assert.NotContains(t, string(jsonBytes), "end_time")
	assert.False(t, step.HasTiming())
}

func TestRecipeStep_TimingMarshaled(t *testing.T) {
	start, end := 12.5, 40.0
	step := RecipeStep{Step: 2, Instruction: "끓인다", StartTime: &start, EndTime: &end}

	jsonBytes, err := json.Marshal(step)
	require.NoError(t, err)
	assert.Contains(t, string(jsonBytes), `"start_time":12.5`)
	assert.Contains(t, string(jsonBytes), `"end_time":40`)
	assert.True(t, step.HasTiming())
}

func TestExtractedRecipe_JSONFieldNames(t *testing.T) {
	recipe := ExtractedRecipe{
		DishName:    "김치찌개",
		Category:    "김치찌개",
		Ingredients: []Ingredient{{Name: "김치", Quantity: "200g"}},
		Recipe:      []RecipeStep{{Step: 1, Instruction: "김치를 볶는다"}},
		Difficulty:  DifficultyEasy,
		CookingTime: "30분",
	}

	jsonBytes, err := json.Marshal(recipe)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(jsonBytes, &decoded))
	for _, key := range []string{"dish_name", "category", "ingredients", "recipe", "difficulty", "cooking_time"} {
		assert.Contains(t, decoded, key)
	}
}
