package mocks

import (
	"context"

	"mess-review/internal/data/entity"

	"github.com/google/uuid"
)

// MockOutletRepository is a mock implementation of repository.OutletRepository.
type MockOutletRepository struct {
	CreateFunc            func(ctx context.Context, outlet *entity.Outlet) error
	FindByIDFunc          func(ctx context.Context, id uuid.UUID) (*entity.Outlet, error)
	FindByIDForUpdateFunc func(ctx context.Context, id uuid.UUID) (*entity.Outlet, error)
	FindAllFunc           func(ctx context.Context, typeFilter *entity.OutletType) ([]*entity.Outlet, error)
	FindTopRatedFunc      func(ctx context.Context, limit int) ([]*entity.Outlet, error)
	CountAllFunc          func(ctx context.Context) (int64, error)
	UpdateFunc            func(ctx context.Context, outlet *entity.Outlet) error
	UpdateRatingFunc      func(ctx context.Context, id uuid.UUID, average float64, total int) error
	DeleteFunc            func(ctx context.Context, id uuid.UUID) error
}

func (m *MockOutletRepository) Create(ctx context.Context, outlet *entity.Outlet) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, outlet)
	}
	return errNotImplemented
}

func (m *MockOutletRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Outlet, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, errNotImplemented
}

func (m *MockOutletRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Outlet, error) {
	if m.FindByIDForUpdateFunc != nil {
		return m.FindByIDForUpdateFunc(ctx, id)
	}
	return nil, errNotImplemented
}

func (m *MockOutletRepository) FindAll(ctx context.Context, typeFilter *entity.OutletType) ([]*entity.Outlet, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx, typeFilter)
	}
	return nil, errNotImplemented
}

func (m *MockOutletRepository) FindTopRated(ctx context.Context, limit int) ([]*entity.Outlet, error) {
	if m.FindTopRatedFunc != nil {
		return m.FindTopRatedFunc(ctx, limit)
	}
	return nil, errNotImplemented
}

func (m *MockOutletRepository) CountAll(ctx context.Context) (int64, error) {
	if m.CountAllFunc != nil {
		return m.CountAllFunc(ctx)
	}
	return 0, errNotImplemented
}

func (m *MockOutletRepository) Update(ctx context.Context, outlet *entity.Outlet) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, outlet)
	}
	return errNotImplemented
}

func (m *MockOutletRepository) UpdateRating(ctx context.Context, id uuid.UUID, average float64, total int) error {
	if m.UpdateRatingFunc != nil {
		return m.UpdateRatingFunc(ctx, id, average, total)
	}
	return errNotImplemented
}

func (m *MockOutletRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return errNotImplemented
}

// MockFoodItemRepository is a mock implementation of repository.FoodItemRepository.
type MockFoodItemRepository struct {
	CreateFunc            func(ctx context.Context, item *entity.FoodItem) error
	FindByIDFunc          func(ctx context.Context, id uuid.UUID) (*entity.FoodItem, error)
	FindByIDForUpdateFunc func(ctx context.Context, id uuid.UUID) (*entity.FoodItem, error)
	FindByOutletIDFunc    func(ctx context.Context, outletID uuid.UUID) ([]*entity.FoodItem, error)
	UpdateRatingFunc      func(ctx context.Context, id uuid.UUID, average float64, total int) error
	DeleteFunc            func(ctx context.Context, id uuid.UUID) error
	DeleteByOutletIDFunc  func(ctx context.Context, outletID uuid.UUID) (int64, error)
}

func (m *MockFoodItemRepository) Create(ctx context.Context, item *entity.FoodItem) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, item)
	}
	return errNotImplemented
}

func (m *MockFoodItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.FoodItem, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, errNotImplemented
}

func (m *MockFoodItemRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.FoodItem, error) {
	if m.FindByIDForUpdateFunc != nil {
		return m.FindByIDForUpdateFunc(ctx, id)
	}
	return nil, errNotImplemented
}

func (m *MockFoodItemRepository) FindByOutletID(ctx context.Context, outletID uuid.UUID) ([]*entity.FoodItem, error) {
	if m.FindByOutletIDFunc != nil {
		return m.FindByOutletIDFunc(ctx, outletID)
	}
	return nil, errNotImplemented
}

func (m *MockFoodItemRepository) UpdateRating(ctx context.Context, id uuid.UUID, average float64, total int) error {
	if m.UpdateRatingFunc != nil {
		return m.UpdateRatingFunc(ctx, id, average, total)
	}
	return errNotImplemented
}

func (m *MockFoodItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return errNotImplemented
}

func (m *MockFoodItemRepository) DeleteByOutletID(ctx context.Context, outletID uuid.UUID) (int64, error) {
	if m.DeleteByOutletIDFunc != nil {
		return m.DeleteByOutletIDFunc(ctx, outletID)
	}
	return 0, errNotImplemented
}
