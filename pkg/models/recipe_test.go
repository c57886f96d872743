package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScrapedRecipe_ServingsForms(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    StringOrNumber
	}{
		{name: "quoted", payload: `{"servings": "serves 4"}`, want: "serves 4"},
		{name: "integer", payload: `{"servings": 4}`, want: "4"},
		{name: "fractional", payload: `{"servings": 4.5}`, want: "4.5"},
		{name: "absent", payload: `{}`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var raw ScrapedRecipe
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &raw))
			assert.Equal(t, tt.want, raw.ServingsRaw)
		})
	}
}

func TestScrapedRecipe_ServingsRejectsNonScalar(t *testing.T) {
	var raw ScrapedRecipe
	assert.Error(t, json.Unmarshal([]byte(`{"servings": [4]}`), &raw))
}
