package service

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/tour-service/internal/domain"
	"github.com/spec-kit/tour-service/internal/repository"
	apperrors "github.com/spec-kit/tour-service/pkg/util"
)

func TestTourService_ListForwardsFeaturesAndProjection(t *testing.T) {
	tours := new(mockTourRepo)
	tours.On("List", mock.Anything, mock.AnythingOfType("*repository.QueryFeatures")).
		Return([]domain.Tour{{ID: "t1", Name: "Forest Hiker"}}, nil)

	svc := NewTourService(tours)

	params, err := url.ParseQuery("fields=name,price&limit=5")
	require.NoError(t, err)

	result, fields, err := svc.List(context.Background(), params)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, []string{"id", "name", "price"}, fields)

	features := tours.Calls[0].Arguments.Get(1).(*repository.QueryFeatures)
	sql, _ := features.Build()
	assert.Contains(t, sql, "LIMIT 5")
}

func TestTourService_CreateValidation(t *testing.T) {
	tours := new(mockTourRepo)
	svc := NewTourService(tours)

	_, err := svc.Create(context.Background(), TourCreateInput{})
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, http.StatusBadRequest, domainErr.HTTPStatus)
	assert.Contains(t, domainErr.Message, "A tour must have a name")
	assert.Contains(t, domainErr.Message, "A tour must have a price")
	assert.Contains(t, domainErr.Message, "Difficulty is either: easy, medium, difficult")

	tours.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTourService_CreateDefaultsRating(t *testing.T) {
	tours := new(mockTourRepo)
	tours.On("Create", mock.Anything, mock.AnythingOfType("*domain.Tour")).Return(nil)

	svc := NewTourService(tours)

	tour, err := svc.Create(context.Background(), TourCreateInput{
		Name:         "The Forest Hiker",
		Duration:     5,
		MaxGroupSize: 25,
		Difficulty:   domain.DifficultyEasy,
		Price:        397,
	})
	require.NoError(t, err)
	assert.Equal(t, 4.5, tour.RatingsAverage)
}

func TestTourService_GetNotFound(t *testing.T) {
	tours := new(mockTourRepo)
	tours.On("GetByID", mock.Anything, "missing").Return(nil, pgx.ErrNoRows)

	svc := NewTourService(tours)

	_, err := svc.Get(context.Background(), "missing")
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, http.StatusNotFound, domainErr.HTTPStatus)
	assert.Equal(t, "No tour found with that ID", domainErr.Message)
}

func TestTourService_UpdateAppliesPartialFields(t *testing.T) {
	existing := &domain.Tour{
		ID:           "t1",
		Name:         "The Forest Hiker",
		Duration:     5,
		MaxGroupSize: 25,
		Difficulty:   domain.DifficultyEasy,
		Price:        397,
	}
	tours := new(mockTourRepo)
	tours.On("GetByID", mock.Anything, "t1").Return(existing, nil)
	tours.On("Update", mock.Anything, existing).Return(nil)

	svc := NewTourService(tours)

	newPrice := 450.0
	tour, err := svc.Update(context.Background(), "t1", TourUpdateInput{Price: &newPrice})
	require.NoError(t, err)
	assert.Equal(t, 450.0, tour.Price)
	assert.Equal(t, "The Forest Hiker", tour.Name)
}

func TestTourService_UpdateRejectsBadDifficulty(t *testing.T) {
	tours := new(mockTourRepo)
	tours.On("GetByID", mock.Anything, "t1").Return(&domain.Tour{ID: "t1"}, nil)

	svc := NewTourService(tours)

	bad := domain.Difficulty("impossible")
	_, err := svc.Update(context.Background(), "t1", TourUpdateInput{Difficulty: &bad})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Difficulty is either: easy, medium, difficult")
	tours.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestTourService_DeleteNotFound(t *testing.T) {
	tours := new(mockTourRepo)
	tours.On("Delete", mock.Anything, "missing").Return(pgx.ErrNoRows)

	svc := NewTourService(tours)

	err := svc.Delete(context.Background(), "missing")
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, http.StatusNotFound, domainErr.HTTPStatus)
}
