package srs_test

import (
	"encoding/json"
	"testing"

	"github.com/avelar/memora/internal/srs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRating(t *testing.T) {
	tests := []struct {
		input string
		want  srs.Rating
	}{
		{"again", srs.Again},
		{"hard", srs.Hard},
		{"good", srs.Good},
		{"easy", srs.Easy},
	}
	for _, tt := range tests {
		r, err := srs.ParseRating(tt.input)
		require.NoError(t, err)
		assert.Equal(t, tt.want, r)
		assert.Equal(t, tt.input, r.String())
	}

	_, err := srs.ParseRating("perfect")
	assert.ErrorIs(t, err, srs.ErrInvalidRating)

	_, err = srs.ParseRating("")
	assert.ErrorIs(t, err, srs.ErrInvalidRating)
}

func TestRating_Success(t *testing.T) {
	assert.False(t, srs.Again.Success())
	assert.True(t, srs.Hard.Success())
	assert.True(t, srs.Good.Success())
	assert.True(t, srs.Easy.Success())
	assert.False(t, srs.Rating(0).Success(), "invalid ratings never count as success")
}

func TestRating_JSON(t *testing.T) {
	data, err := json.Marshal(srs.Good)
	require.NoError(t, err)
	assert.Equal(t, `"good"`, string(data))

	var r srs.Rating
	require.NoError(t, json.Unmarshal([]byte(`"again"`), &r))
	assert.Equal(t, srs.Again, r)

	assert.Error(t, json.Unmarshal([]byte(`"perfect"`), &r))
	assert.Error(t, json.Unmarshal([]byte(`3`), &r), "numeric ratings are not accepted on the wire")

	_, err = json.Marshal(srs.Rating(9))
	assert.Error(t, err)
}
