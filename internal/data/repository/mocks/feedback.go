package mocks

import (
	"context"

	"mess-review/internal/data/entity"

	"github.com/google/uuid"
)

// MockRatingRepository is a mock implementation of repository.RatingRepository.
type MockRatingRepository struct {
	CreateFunc                  func(ctx context.Context, rating *entity.Rating) error
	FindByIDFunc                func(ctx context.Context, id uuid.UUID) (*entity.Rating, error)
	DeleteFunc                  func(ctx context.Context, id uuid.UUID) error
	FindByTargetFunc            func(ctx context.Context, target entity.Target) ([]*entity.Rating, error)
	FindPublicByTargetFunc      func(ctx context.Context, target entity.Target) ([]*entity.Rating, error)
	FindByAuthorAndTargetFunc   func(ctx context.Context, userID uuid.UUID, target entity.Target) ([]*entity.Rating, error)
	DeleteByTargetFunc          func(ctx context.Context, target entity.Target) (int64, error)
	DeleteByOutletFoodItemsFunc func(ctx context.Context, outletID uuid.UUID) (int64, error)
}

func (m *MockRatingRepository) Create(ctx context.Context, rating *entity.Rating) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, rating)
	}
	return errNotImplemented
}

func (m *MockRatingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Rating, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, errNotImplemented
}

func (m *MockRatingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return errNotImplemented
}

func (m *MockRatingRepository) FindByTarget(ctx context.Context, target entity.Target) ([]*entity.Rating, error) {
	if m.FindByTargetFunc != nil {
		return m.FindByTargetFunc(ctx, target)
	}
	return nil, errNotImplemented
}

func (m *MockRatingRepository) FindPublicByTarget(ctx context.Context, target entity.Target) ([]*entity.Rating, error) {
	if m.FindPublicByTargetFunc != nil {
		return m.FindPublicByTargetFunc(ctx, target)
	}
	return nil, errNotImplemented
}

func (m *MockRatingRepository) FindByAuthorAndTarget(ctx context.Context, userID uuid.UUID, target entity.Target) ([]*entity.Rating, error) {
	if m.FindByAuthorAndTargetFunc != nil {
		return m.FindByAuthorAndTargetFunc(ctx, userID, target)
	}
	return nil, errNotImplemented
}

func (m *MockRatingRepository) DeleteByTarget(ctx context.Context, target entity.Target) (int64, error) {
	if m.DeleteByTargetFunc != nil {
		return m.DeleteByTargetFunc(ctx, target)
	}
	return 0, errNotImplemented
}

func (m *MockRatingRepository) DeleteByOutletFoodItems(ctx context.Context, outletID uuid.UUID) (int64, error) {
	if m.DeleteByOutletFoodItemsFunc != nil {
		return m.DeleteByOutletFoodItemsFunc(ctx, outletID)
	}
	return 0, errNotImplemented
}

// MockComplaintRepository is a mock implementation of repository.ComplaintRepository.
type MockComplaintRepository struct {
	CreateFunc           func(ctx context.Context, complaint *entity.Complaint) error
	FindByIDFunc         func(ctx context.Context, id uuid.UUID) (*entity.Complaint, error)
	FindAllFunc          func(ctx context.Context) ([]*entity.Complaint, error)
	FindByOutletIDFunc   func(ctx context.Context, outletID uuid.UUID) ([]*entity.Complaint, error)
	MarkResolvedFunc     func(ctx context.Context, id uuid.UUID) error
	DeleteFunc           func(ctx context.Context, id uuid.UUID) error
	DeleteByOutletIDFunc func(ctx context.Context, outletID uuid.UUID) (int64, error)
}

func (m *MockComplaintRepository) Create(ctx context.Context, complaint *entity.Complaint) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, complaint)
	}
	return errNotImplemented
}

func (m *MockComplaintRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Complaint, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, errNotImplemented
}

func (m *MockComplaintRepository) FindAll(ctx context.Context) ([]*entity.Complaint, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return nil, errNotImplemented
}

func (m *MockComplaintRepository) FindByOutletID(ctx context.Context, outletID uuid.UUID) ([]*entity.Complaint, error) {
	if m.FindByOutletIDFunc != nil {
		return m.FindByOutletIDFunc(ctx, outletID)
	}
	return nil, errNotImplemented
}

func (m *MockComplaintRepository) MarkResolved(ctx context.Context, id uuid.UUID) error {
	if m.MarkResolvedFunc != nil {
		return m.MarkResolvedFunc(ctx, id)
	}
	return errNotImplemented
}

func (m *MockComplaintRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return errNotImplemented
}

func (m *MockComplaintRepository) DeleteByOutletID(ctx context.Context, outletID uuid.UUID) (int64, error) {
	if m.DeleteByOutletIDFunc != nil {
		return m.DeleteByOutletIDFunc(ctx, outletID)
	}
	return 0, errNotImplemented
}
