package schemas

import (
	"testing"

	rootschemas "github.com/jonathan/recipe-crawler/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recipeResponse() map[string]any {
	return map[string]any{
		"dish_name": "고추장찌개", "category": "찌개",
		"ingredients":  []any{map[string]any{"name": "고추장", "quantity": 2}},
		"recipe":       []any{map[string]any{"step": 1, "instruction": "물을 끓인다"}},
		"difficulty":   "쉬움",
		"cooking_time": "30분",
	}
}

func TestValidate_Valid(t *testing.T) {
	assert.NoError(t, Validate(rootschemas.RecipeResponse, recipeResponse()))
}

func TestValidate_MissingField(t *testing.T) {
	doc := recipeResponse()
	delete(doc, "category")

	err := Validate(rootschemas.RecipeResponse, doc)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	assert.Equal(t, "(root)", validationErr.First().Field)
	assert.Contains(t, validationErr.Error(), "category")
}

func TestValidate_WrongType(t *testing.T) {
	doc := recipeResponse()
	doc["dish_name"] = 42

	err := Validate(rootschemas.RecipeResponse, doc)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	assert.Equal(t, "dish_name", validationErr.First().Field)
}

func TestValidate_UnknownSchema(t *testing.T) {
	err := Validate("missing.schema.json", map[string]any{})
	require.Error(t, err)

	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Contains(t, err.Error(), "missing.schema.json")
}

func TestValidate_CachesCompiledSchema(t *testing.T) {
	doc := map[string]any{
		"dish_name": "a", "category": "b", "ingredients": []any{}, "recipe": []any{},
		"difficulty": "", "cooking_time": "",
	}
	require.NoError(t, Validate(rootschemas.RecipeResponse, doc))
	require.NoError(t, Validate(rootschemas.RecipeResponse, doc))

	compiledMu.Lock()
	defer compiledMu.Unlock()
	assert.Contains(t, compiled, rootschemas.RecipeResponse)
}

func TestValidationError_FirstOnEmpty(t *testing.T) {
	ve := &ValidationError{}
	assert.Equal(t, FieldError{}, ve.First())
}
