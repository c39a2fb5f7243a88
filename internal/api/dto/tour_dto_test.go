package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/tour-service/internal/domain"
)

func TestProject_NilSelectionReturnsItems(t *testing.T) {
	items := []TourResponse{{ID: "t1", Name: "Forest Hiker"}}
	result := Project(items, nil)
	assert.Equal(t, items, result)
}

func TestProject_PrunesUnselectedFields(t *testing.T) {
	items := []TourResponse{
		NewTourResponse(&domain.Tour{
			ID:         "t1",
			Name:       "Forest Hiker",
			Price:      397,
			Difficulty: domain.DifficultyEasy,
		}),
	}

	result := Project(items, []string{"name", "price"})
	raw, err := json.Marshal(result)
	require.NoError(t, err)

	var projected []map[string]any
	require.NoError(t, json.Unmarshal(raw, &projected))
	require.Len(t, projected, 1)

	assert.Equal(t, map[string]any{
		"id":    "t1",
		"name":  "Forest Hiker",
		"price": float64(397),
	}, projected[0])
}

func TestProject_AlwaysKeepsID(t *testing.T) {
	items := []TourResponse{{ID: "t1", Name: "Forest Hiker"}}

	result := Project(items, []string{"name"})
	raw, err := json.Marshal(result)
	require.NoError(t, err)

	var projected []map[string]any
	require.NoError(t, json.Unmarshal(raw, &projected))
	require.Len(t, projected, 1)
	assert.Contains(t, projected[0], "id")
	assert.NotContains(t, projected[0], "price")
}
