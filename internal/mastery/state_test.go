package mastery_test

import (
	"encoding/json"
	"testing"

	"github.com/avelar/memora/internal/mastery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_RoundTrip(t *testing.T) {
	states := []mastery.State{
		mastery.Unseen, mastery.Exposed, mastery.Fragile,
		mastery.Developing, mastery.Solid, mastery.Mastered, mastery.Misconceived,
	}
	for _, s := range states {
		parsed, err := mastery.ParseState(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := mastery.ParseState("expert")
	assert.Error(t, err)
}

func TestState_Rank(t *testing.T) {
	assert.Less(t, mastery.Unseen.Rank(), mastery.Exposed.Rank())
	assert.Less(t, mastery.Solid.Rank(), mastery.Mastered.Rank())
	assert.Equal(t, -1, mastery.Misconceived.Rank(), "misconceived sits outside the linear order")
	assert.False(t, mastery.Misconceived.Linear())
	assert.True(t, mastery.Mastered.Linear())
}

func TestState_Meta(t *testing.T) {
	meta := mastery.Mastered.Meta()
	assert.Equal(t, "Mastered", meta.Label)
	assert.Equal(t, "state-mastered", meta.ColorToken)
	assert.Equal(t, 100, meta.Progress)

	// Misconceived shows near-zero progress regardless of stability.
	assert.Equal(t, 5, mastery.Misconceived.Meta().Progress)
	assert.Equal(t, mastery.Meta{}, mastery.State(42).Meta())
}

func TestState_JSON(t *testing.T) {
	data, err := json.Marshal(mastery.Fragile)
	require.NoError(t, err)
	assert.Equal(t, `"fragile"`, string(data))

	var s mastery.State
	require.NoError(t, json.Unmarshal([]byte(`"misconceived"`), &s))
	assert.Equal(t, mastery.Misconceived, s)

	assert.Error(t, json.Unmarshal([]byte(`"expert"`), &s))
}
