package interpret

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/poiesic/banquet/ai"
	"github.com/poiesic/banquet/ai/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInterpreter(t *testing.T) {
	t.Run("valid configuration", func(t *testing.T) {
		interp, err := NewInterpreter(mock.NewMockCompleter("{}"))
		require.NoError(t, err)
		assert.NotNil(t, interp)
	})

	t.Run("nil completer", func(t *testing.T) {
		_, err := NewInterpreter(nil)
		assert.Equal(t, ErrCompleterRequired, err)
	})

	t.Run("invalid timeout", func(t *testing.T) {
		_, err := NewInterpreter(mock.NewMockCompleter("{}"), WithTimeout(0))
		assert.Equal(t, ErrInvalidTimeout, err)
	})

	t.Run("custom timeout", func(t *testing.T) {
		interp, err := NewInterpreter(mock.NewMockCompleter("{}"), WithTimeout(2*time.Second))
		require.NoError(t, err)
		assert.NotNil(t, interp)
	})
}

func TestExtractParameters(t *testing.T) {
	ctx := context.Background()

	t.Run("extracts all fields", func(t *testing.T) {
		completer := mock.NewMockCompleter(`{
			"budget_max": 3000,
			"capacity_min": 150,
			"location": "Austin",
			"food_type": "seafood",
			"event_type": "wedding",
			"venue_type": "rooftop"
		}`)
		interp, err := NewInterpreter(completer)
		require.NoError(t, err)

		params := interp.ExtractParameters(ctx, "seafood catering under $3000 for 150 guests")
		require.NotNil(t, params)
		require.NotNil(t, params.BudgetMax)
		assert.Equal(t, 3000.0, *params.BudgetMax)
		require.NotNil(t, params.CapacityMin)
		assert.Equal(t, 150, *params.CapacityMin)
		assert.Equal(t, "austin", *params.Location)
		assert.Equal(t, "seafood", *params.FoodType)
		assert.Equal(t, "wedding", *params.EventType)
		assert.Equal(t, "rooftop", *params.VenueType)
	})

	t.Run("uses JSON mode at temperature zero", func(t *testing.T) {
		completer := mock.NewMockCompleter(`{"budget_max": null, "capacity_min": null, "location": null, "food_type": null, "event_type": null, "venue_type": null}`)
		interp, err := NewInterpreter(completer)
		require.NoError(t, err)

		interp.ExtractParameters(ctx, "a party")
		opts := completer.LastOptions()
		assert.True(t, opts.JSONMode)
		assert.Zero(t, opts.Temperature)
	})

	t.Run("null fields stay nil", func(t *testing.T) {
		completer := mock.NewMockCompleter(`{"budget_max": null, "capacity_min": 80, "location": null, "food_type": null, "event_type": null, "venue_type": null}`)
		interp, err := NewInterpreter(completer)
		require.NoError(t, err)

		params := interp.ExtractParameters(ctx, "venue for 80 people")
		assert.Nil(t, params.BudgetMax)
		require.NotNil(t, params.CapacityMin)
		assert.Equal(t, 80, *params.CapacityMin)
		assert.Nil(t, params.FoodType)
	})

	t.Run("completer failure returns all-nil params", func(t *testing.T) {
		completer := mock.NewMockCompleter("")
		completer.Err = errors.New("connection refused")
		interp, err := NewInterpreter(completer)
		require.NoError(t, err)

		params := interp.ExtractParameters(ctx, "seafood catering")
		require.NotNil(t, params)
		assert.True(t, params.IsEmpty())
	})

	t.Run("malformed JSON returns all-nil params", func(t *testing.T) {
		completer := mock.NewMockCompleter("I think the budget is about $3000, hope that helps!")
		interp, err := NewInterpreter(completer)
		require.NoError(t, err)

		params := interp.ExtractParameters(ctx, "seafood catering under $3000")
		require.NotNil(t, params)
		assert.True(t, params.IsEmpty())
	})

	t.Run("strips markdown fences", func(t *testing.T) {
		completer := mock.NewMockCompleter("```json\n{\"budget_max\": 2500, \"capacity_min\": null, \"location\": null, \"food_type\": null, \"event_type\": null, \"venue_type\": null}\n```")
		interp, err := NewInterpreter(completer)
		require.NoError(t, err)

		params := interp.ExtractParameters(ctx, "something under $2500")
		require.NotNil(t, params.BudgetMax)
		assert.Equal(t, 2500.0, *params.BudgetMax)
	})

	t.Run("drops non-positive numbers and empty strings", func(t *testing.T) {
		completer := mock.NewMockCompleter(`{"budget_max": -100, "capacity_min": 0, "location": "", "food_type": "  ", "event_type": "null", "venue_type": null}`)
		interp, err := NewInterpreter(completer)
		require.NoError(t, err)

		params := interp.ExtractParameters(ctx, "a party")
		assert.True(t, params.IsEmpty())
	})
}

func TestExpandQuery(t *testing.T) {
	ctx := context.Background()

	t.Run("appends expansion terms", func(t *testing.T) {
		completer := mock.NewMockCompleter("terrace skyline ceremony reception outdoor panoramic elegant celebration")
		interp, err := NewInterpreter(completer)
		require.NoError(t, err)

		expanded := interp.ExpandQuery(ctx, "rooftop wedding venue")
		assert.Equal(t, "rooftop wedding venue terrace skyline ceremony reception outdoor panoramic elegant celebration", expanded)
	})

	t.Run("caps the number of terms", func(t *testing.T) {
		completer := mock.NewMockCompleter("a b c d e f g h i j k l m n o p")
		interp, err := NewInterpreter(completer)
		require.NoError(t, err)

		expanded := interp.ExpandQuery(ctx, "query")
		assert.Equal(t, "query a b c d e f g h i j k l", expanded)
	})

	t.Run("failure returns original query", func(t *testing.T) {
		completer := mock.NewMockCompleter("")
		completer.Err = errors.New("timeout")
		interp, err := NewInterpreter(completer)
		require.NoError(t, err)

		assert.Equal(t, "rooftop wedding venue", interp.ExpandQuery(ctx, "rooftop wedding venue"))
	})

	t.Run("empty response returns original query", func(t *testing.T) {
		completer := mock.NewMockCompleter("   ")
		interp, err := NewInterpreter(completer)
		require.NoError(t, err)

		assert.Equal(t, "rooftop wedding venue", interp.ExpandQuery(ctx, "rooftop wedding venue"))
	})
}

func TestGenerateVariants(t *testing.T) {
	ctx := context.Background()

	t.Run("returns three variants", func(t *testing.T) {
		completer := mock.NewMockCompleter(`["affordable seafood event catering", "seafood caterer large party", "budget ocean fare catering"]`)
		interp, err := NewInterpreter(completer)
		require.NoError(t, err)

		variants := interp.GenerateVariants(ctx, "seafood catering under $3000")
		require.Len(t, variants, 3)
		assert.Equal(t, "affordable seafood event catering", string(variants[0]))
	})

	t.Run("caps at three variants", func(t *testing.T) {
		completer := mock.NewMockCompleter(`["one two three", "four five six", "seven eight nine", "ten eleven twelve"]`)
		interp, err := NewInterpreter(completer)
		require.NoError(t, err)

		variants := interp.GenerateVariants(ctx, "query")
		assert.Len(t, variants, 3)
	})

	t.Run("failure returns single-element fallback", func(t *testing.T) {
		completer := mock.NewMockCompleter("")
		completer.Err = errors.New("timeout")
		interp, err := NewInterpreter(completer)
		require.NoError(t, err)

		variants := interp.GenerateVariants(ctx, "seafood catering")
		require.Len(t, variants, 1)
		assert.Equal(t, "seafood catering", string(variants[0]))
	})

	t.Run("malformed JSON returns fallback", func(t *testing.T) {
		completer := mock.NewMockCompleter("here are some ideas: seafood party")
		interp, err := NewInterpreter(completer)
		require.NoError(t, err)

		variants := interp.GenerateVariants(ctx, "seafood catering")
		require.Len(t, variants, 1)
		assert.Equal(t, "seafood catering", string(variants[0]))
	})

	t.Run("blank phrasings are dropped", func(t *testing.T) {
		completer := mock.NewMockCompleter(`["", "seafood caterer large party", "   "]`)
		interp, err := NewInterpreter(completer)
		require.NoError(t, err)

		variants := interp.GenerateVariants(ctx, "seafood catering")
		require.Len(t, variants, 1)
		assert.Equal(t, "seafood caterer large party", string(variants[0]))
	})
}

func TestOperationsAreIndependent(t *testing.T) {
	// Each operation issues exactly one completion call.
	completer := mock.NewMockCompleter(`{"budget_max": null, "capacity_min": null, "location": null, "food_type": null, "event_type": null, "venue_type": null}`)
	interp, err := NewInterpreter(completer)
	require.NoError(t, err)

	ctx := context.Background()
	interp.ExtractParameters(ctx, "a")
	assert.Equal(t, 1, completer.CallCount())
	interp.ExpandQuery(ctx, "a")
	assert.Equal(t, 2, completer.CallCount())
	interp.GenerateVariants(ctx, "a")
	assert.Equal(t, 3, completer.CallCount())
}

func TestRepairJSON(t *testing.T) {
	t.Run("fixes missing opening quote on key", func(t *testing.T) {
		repaired := repairJSON(`{budget_max": 3000}`)
		assert.Equal(t, `{"budget_max": 3000}`, repaired)
	})

	t.Run("valid JSON unchanged", func(t *testing.T) {
		in := `{"budget_max": 3000, "food_type": "seafood"}`
		assert.Equal(t, in, repairJSON(in))
	})
}

var _ ai.TextCompleter = (*mock.MockCompleter)(nil)
