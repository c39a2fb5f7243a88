package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/spec-kit/tour-service/internal/domain"
	"github.com/spec-kit/tour-service/internal/repository"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) Update(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) GetByResetToken(ctx context.Context, digest string) (*domain.User, error) {
	args := m.Called(ctx, digest)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]domain.User)
	return users, args.Error(1)
}

type mockTourRepo struct {
	mock.Mock
}

func (m *mockTourRepo) Create(ctx context.Context, tour *domain.Tour) error {
	return m.Called(ctx, tour).Error(0)
}

func (m *mockTourRepo) Update(ctx context.Context, tour *domain.Tour) error {
	return m.Called(ctx, tour).Error(0)
}

func (m *mockTourRepo) GetByID(ctx context.Context, id string) (*domain.Tour, error) {
	args := m.Called(ctx, id)
	tour, _ := args.Get(0).(*domain.Tour)
	return tour, args.Error(1)
}

func (m *mockTourRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockTourRepo) List(ctx context.Context, features *repository.QueryFeatures) ([]domain.Tour, error) {
	args := m.Called(ctx, features)
	tours, _ := args.Get(0).([]domain.Tour)
	return tours, args.Error(1)
}

func (m *mockTourRepo) Stats(ctx context.Context) ([]domain.TourStats, error) {
	args := m.Called(ctx)
	stats, _ := args.Get(0).([]domain.TourStats)
	return stats, args.Error(1)
}

func (m *mockTourRepo) MonthlyPlan(ctx context.Context, year int) ([]domain.MonthlyPlanEntry, error) {
	args := m.Called(ctx, year)
	plan, _ := args.Get(0).([]domain.MonthlyPlanEntry)
	return plan, args.Error(1)
}

type mockReviewRepo struct {
	mock.Mock
}

func (m *mockReviewRepo) Create(ctx context.Context, review *domain.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *mockReviewRepo) GetByID(ctx context.Context, id string) (*domain.Review, error) {
	args := m.Called(ctx, id)
	review, _ := args.Get(0).(*domain.Review)
	return review, args.Error(1)
}

func (m *mockReviewRepo) List(ctx context.Context) ([]domain.Review, error) {
	args := m.Called(ctx)
	reviews, _ := args.Get(0).([]domain.Review)
	return reviews, args.Error(1)
}

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) SendPasswordReset(ctx context.Context, to, name, resetURL string) error {
	return m.Called(ctx, to, name, resetURL).Error(0)
}

func (m *mockMailer) SendWelcome(ctx context.Context, to, name string) error {
	return m.Called(ctx, to, name).Error(0)
}
