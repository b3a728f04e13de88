package validation

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/recipe-crawler/internal/schemas"
	"github.com/jonathan/recipe-crawler/internal/types"
	rootschemas "github.com/jonathan/recipe-crawler/schemas"
)

// Minimum counts and lengths applied by the strict policy.
const (
	MinNameLength      = 2
	MinValidIngredient = 2
	MinValidSteps      = 2
)

// RequiredFields lists the top-level fields in the order they are checked.
var RequiredFields = []string{"dish_name", "category", "ingredients", "recipe", "difficulty", "cooking_time"}

// Result is the outcome of validating one model response.
// Recipe is set only when Accepted is true; Reason only when it is false.
type Result struct {
	Recipe   *types.ExtractedRecipe
	Accepted bool
	Reason   string
}

// Err returns the rejection as a *ValidationError, or nil when accepted.
func (r Result) Err() error {
	if r.Accepted {
		return nil
	}
	return &ValidationError{Reason: r.Reason}
}

// Validator applies the strict recipe policy. It is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator.
func New() *Validator {
	return &Validator{validate: validator.New()}
}

func reject(reason string) Result {
	return Result{Reason: reason}
}

// Validate checks obj rule by rule and stops at the first failure. Accepted
// recipes come back normalized: category and ingredient names without
// spaces, step numbers filled in, difficulty and cooking time defaulted.
func (v *Validator) Validate(obj map[string]any) Result {
	if obj == nil {
		return reject("No data extracted")
	}

	for _, field := range RequiredFields {
		if _, ok := obj[field]; !ok {
			return reject("Missing field: " + field)
		}
	}

	if err := schemas.Validate(rootschemas.RecipeResponse, obj); err != nil {
		var verr *schemas.ValidationError
		if errors.As(err, &verr) {
			first := verr.First()
			return reject(fmt.Sprintf("Schema violation: %s: %s", first.Field, first.Message))
		}
		return reject(fmt.Sprintf("Schema violation: %v", err))
	}

	dishName := strings.TrimSpace(stringValue(obj["dish_name"]))
	if utf8.RuneCountInString(dishName) < MinNameLength {
		return reject("Dish name too short or empty")
	}

	category := strings.TrimSpace(stringValue(obj["category"]))
	if utf8.RuneCountInString(category) < MinNameLength {
		return reject("Category name too short or empty")
	}

	ingredients, validIngredients := v.ingredients(obj["ingredients"])
	if validIngredients < MinValidIngredient {
		return reject(fmt.Sprintf("Too few valid ingredients: %d", validIngredients))
	}

	steps, validSteps := v.steps(obj["recipe"])
	if validSteps < MinValidSteps {
		return reject(fmt.Sprintf("Too few valid recipe steps: %d", validSteps))
	}

	difficulty := strings.TrimSpace(stringValue(obj["difficulty"]))
	if !types.IsValidDifficulty(difficulty) {
		difficulty = types.DifficultyNormal
	}

	cookingTime := strings.TrimSpace(stringValue(obj["cooking_time"]))
	if cookingTime == "" {
		cookingTime = types.CookingTimeUnknown
	}

	return Result{
		Accepted: true,
		Recipe: &types.ExtractedRecipe{
			DishName:    dishName,
			Category:    NormalizeCategory(category),
			Ingredients: ingredients,
			Recipe:      steps,
			Difficulty:  difficulty,
			CookingTime: cookingTime,
		},
	}
}

// ingredients normalizes every entry, drops those whose name ends up
// empty, and counts the entries that pass the Ingredient struct tags.
func (v *Validator) ingredients(raw any) ([]types.Ingredient, int) {
	items, _ := raw.([]any)

	out := make([]types.Ingredient, 0, len(items))
	valid := 0
	for _, item := range items {
		entry, _ := item.(map[string]any)
		ingredient := types.Ingredient{
			Name:     NormalizeIngredientName(stringValue(entry["name"])),
			Quantity: strings.TrimSpace(stringValue(entry["quantity"])),
		}
		if ingredient.Name == "" {
			continue
		}
		if v.validate.Struct(ingredient) == nil {
			valid++
		}
		out = append(out, ingredient)
	}
	return out, valid
}

// steps keeps entries with an instruction in order, filling a missing or
// zero step number with the 1-based position.
func (v *Validator) steps(raw any) ([]types.RecipeStep, int) {
	items, _ := raw.([]any)

	out := make([]types.RecipeStep, 0, len(items))
	valid := 0
	for _, item := range items {
		entry, _ := item.(map[string]any)
		step := types.RecipeStep{
			Step:        intValue(entry["step"]),
			Instruction: strings.TrimSpace(stringValue(entry["instruction"])),
		}
		if step.Instruction == "" {
			continue
		}
		if step.Step <= 0 {
			step.Step = len(out) + 1
		}
		if v.validate.Struct(step) == nil {
			valid++
		}
		out = append(out, step)
	}
	return out, valid
}

// stringValue renders JSON scalars as text; nil and containers become "".
func stringValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

func intValue(value any) int {
	switch v := value.(type) {
	case float64:
		if v == math.Trunc(v) {
			return int(v)
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return 0
}
