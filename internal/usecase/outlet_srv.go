package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"mess-review/internal/data/entity"
	"mess-review/internal/data/repository"
	"mess-review/internal/dto/request"
	"mess-review/internal/dto/response"
	"mess-review/pkg/cache"
	"mess-review/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultTopRatedLimit = 10

type OutletService interface {
	GetOutlets(ctx context.Context, outletType string) ([]response.OutletResponse, error)
	GetOutletsByType(ctx context.Context, outletType string) ([]response.OutletResponse, error)
	GetTopRatedOutlets(ctx context.Context, limit int) ([]response.OutletResponse, error)
	GetOutletByID(ctx context.Context, outletID string) (*response.OutletResponse, error)
	GetFoodItems(ctx context.Context, outletID string) ([]response.FoodItemResponse, error)
	GetFoodItemByID(ctx context.Context, foodItemID string) (*response.FoodItemResponse, error)

	// Admin
	CreateOutlet(ctx context.Context, req *request.OutletRequest) (*response.OutletResponse, error)
	UpdateOutlet(ctx context.Context, outletID string, req *request.OutletUpdateRequest) (*response.OutletResponse, error)
	DeleteOutlet(ctx context.Context, outletID string) error
	CreateFoodItem(ctx context.Context, outletID string, req *request.FoodItemRequest) (*response.FoodItemResponse, error)
	DeleteFoodItem(ctx context.Context, foodItemID string) error
}

type outletService struct {
	repo  *repository.Repository
	cache *cache.Cache
	log   *zap.Logger
}

func NewOutletService(repo *repository.Repository, feedCache *cache.Cache, log *zap.Logger) OutletService {
	return &outletService{
		repo:  repo,
		cache: feedCache,
		log:   log.With(zap.String("service", "outlet")),
	}
}

func parseOutletType(raw string) (entity.OutletType, error) {
	t := entity.OutletType(strings.ToUpper(strings.TrimSpace(raw)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: unknown outlet type %q", ErrValidation, raw)
	}
	return t, nil
}

func (s *outletService) GetOutlets(ctx context.Context, outletType string) ([]response.OutletResponse, error) {
	var filter *entity.OutletType
	if strings.TrimSpace(outletType) != "" {
		t, err := parseOutletType(outletType)
		if err != nil {
			return nil, err
		}
		filter = &t
	}

	outlets, err := s.repo.Outlet.FindAll(ctx, filter)
	if err != nil {
		s.log.Error("Failed to get outlets", zap.Error(err), zap.String("type", outletType))
		return nil, fmt.Errorf("get outlets: %w", err)
	}

	return response.OutletsToResponse(outlets), nil
}

func (s *outletService) GetOutletsByType(ctx context.Context, outletType string) ([]response.OutletResponse, error) {
	if _, err := parseOutletType(outletType); err != nil {
		return nil, err
	}
	return s.GetOutlets(ctx, outletType)
}

func (s *outletService) GetTopRatedOutlets(ctx context.Context, limit int) ([]response.OutletResponse, error) {
	if limit <= 0 {
		limit = defaultTopRatedLimit
	}

	outlets, err := s.repo.Outlet.FindTopRated(ctx, limit)
	if err != nil {
		s.log.Error("Failed to get top rated outlets", zap.Error(err))
		return nil, fmt.Errorf("get top rated outlets: %w", err)
	}

	return response.OutletsToResponse(outlets), nil
}

func (s *outletService) GetOutletByID(ctx context.Context, outletID string) (*response.OutletResponse, error) {
	id, err := parseID("outlet", outletID)
	if err != nil {
		return nil, err
	}

	outlet, err := s.findOutlet(ctx, id)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.FoodItem.FindByOutletID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get food items", zap.Error(err), zap.String("outlet_id", outletID))
		return nil, fmt.Errorf("get food items: %w", err)
	}
	outlet.FoodItems = items

	resp := response.OutletToResponse(outlet)
	return &resp, nil
}

func (s *outletService) GetFoodItems(ctx context.Context, outletID string) ([]response.FoodItemResponse, error) {
	id, err := parseID("outlet", outletID)
	if err != nil {
		return nil, err
	}

	if _, err := s.findOutlet(ctx, id); err != nil {
		return nil, err
	}

	items, err := s.repo.FoodItem.FindByOutletID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get food items", zap.Error(err), zap.String("outlet_id", outletID))
		return nil, fmt.Errorf("get food items: %w", err)
	}

	return response.FoodItemsToResponse(items), nil
}

func (s *outletService) GetFoodItemByID(ctx context.Context, foodItemID string) (*response.FoodItemResponse, error) {
	id, err := parseID("food item", foodItemID)
	if err != nil {
		return nil, err
	}

	item, err := s.repo.FoodItem.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get food item", zap.Error(err), zap.String("food_item_id", foodItemID))
		return nil, fmt.Errorf("get food item: %w", err)
	}
	if item == nil {
		return nil, fmt.Errorf("%w: food item %s", ErrNotFound, foodItemID)
	}

	resp := response.FoodItemToResponse(item)
	return &resp, nil
}

func (s *outletService) CreateOutlet(ctx context.Context, req *request.OutletRequest) (*response.OutletResponse, error) {
	if err := validate(req); err != nil {
		s.log.Warn("Create outlet validation failed", zap.Error(err))
		return nil, err
	}

	now := utils.Now()
	outlet := &entity.Outlet{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:        strings.TrimSpace(req.Name),
		Type:        entity.OutletType(req.Type),
		Description: req.Description,
	}

	if err := s.repo.Outlet.Create(ctx, outlet); err != nil {
		s.log.Error("Failed to create outlet", zap.Error(err), zap.String("name", outlet.Name))
		return nil, fmt.Errorf("create outlet: %w", err)
	}

	s.log.Info("Outlet created",
		zap.String("outlet_id", outlet.ID.String()),
		zap.String("name", outlet.Name),
		zap.String("type", string(outlet.Type)),
	)

	resp := response.OutletToResponse(outlet)
	return &resp, nil
}

func (s *outletService) UpdateOutlet(ctx context.Context, outletID string, req *request.OutletUpdateRequest) (*response.OutletResponse, error) {
	if err := validate(req); err != nil {
		s.log.Warn("Update outlet validation failed", zap.Error(err))
		return nil, err
	}

	id, err := parseID("outlet", outletID)
	if err != nil {
		return nil, err
	}

	outlet, err := s.findOutlet(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		outlet.Name = strings.TrimSpace(*req.Name)
	}
	if req.Type != nil {
		outlet.Type = entity.OutletType(*req.Type)
	}
	if req.Description != nil {
		outlet.Description = req.Description
	}
	outlet.UpdatedAt = utils.Now()

	if err := s.repo.Outlet.Update(ctx, outlet); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: outlet %s", ErrNotFound, outletID)
		}
		s.log.Error("Failed to update outlet", zap.Error(err), zap.String("outlet_id", outletID))
		return nil, fmt.Errorf("update outlet: %w", err)
	}

	s.log.Info("Outlet updated", zap.String("outlet_id", outletID))

	resp := response.OutletToResponse(outlet)
	return &resp, nil
}

// DeleteOutlet removes the outlet together with its ratings, the ratings of
// its food items, its complaints and its food items.
func (s *outletService) DeleteOutlet(ctx context.Context, outletID string) error {
	id, err := parseID("outlet", outletID)
	if err != nil {
		return err
	}

	var removed struct {
		outletRatings, itemRatings, complaints, items int64
	}
	err = s.repo.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		outlet, err := s.repo.Outlet.FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if outlet == nil {
			return fmt.Errorf("%w: outlet %s", ErrNotFound, outletID)
		}

		if removed.outletRatings, err = s.repo.Rating.DeleteByTarget(ctx, entity.OutletTarget(id)); err != nil {
			return err
		}
		if removed.itemRatings, err = s.repo.Rating.DeleteByOutletFoodItems(ctx, id); err != nil {
			return err
		}
		if removed.complaints, err = s.repo.Complaint.DeleteByOutletID(ctx, id); err != nil {
			return err
		}
		if removed.items, err = s.repo.FoodItem.DeleteByOutletID(ctx, id); err != nil {
			return err
		}
		return s.repo.Outlet.Delete(ctx, id)
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: outlet %s", ErrNotFound, outletID)
		}
		if !errors.Is(err, ErrNotFound) {
			s.log.Error("Failed to delete outlet", zap.Error(err), zap.String("outlet_id", outletID))
		}
		return err
	}

	if s.cache != nil {
		s.cache.Delete(outletFeedKey(id))
	}

	s.log.Info("Outlet deleted",
		zap.String("outlet_id", outletID),
		zap.Int64("outlet_ratings", removed.outletRatings),
		zap.Int64("food_item_ratings", removed.itemRatings),
		zap.Int64("complaints", removed.complaints),
		zap.Int64("food_items", removed.items),
	)
	return nil
}

func (s *outletService) CreateFoodItem(ctx context.Context, outletID string, req *request.FoodItemRequest) (*response.FoodItemResponse, error) {
	if err := validate(req); err != nil {
		s.log.Warn("Create food item validation failed", zap.Error(err))
		return nil, err
	}

	id, err := parseID("outlet", outletID)
	if err != nil {
		return nil, err
	}

	if _, err := s.findOutlet(ctx, id); err != nil {
		return nil, err
	}

	now := utils.Now()
	item := &entity.FoodItem{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		OutletID:    id,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
	}

	if err := s.repo.FoodItem.Create(ctx, item); err != nil {
		s.log.Error("Failed to create food item", zap.Error(err), zap.String("outlet_id", outletID))
		return nil, fmt.Errorf("create food item: %w", err)
	}

	s.log.Info("Food item created",
		zap.String("food_item_id", item.ID.String()),
		zap.String("outlet_id", outletID),
		zap.String("name", item.Name),
	)

	resp := response.FoodItemToResponse(item)
	return &resp, nil
}

func (s *outletService) DeleteFoodItem(ctx context.Context, foodItemID string) error {
	id, err := parseID("food item", foodItemID)
	if err != nil {
		return err
	}

	var (
		outletID uuid.UUID
		ratings  int64
	)
	err = s.repo.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		item, err := s.repo.FoodItem.FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if item == nil {
			return fmt.Errorf("%w: food item %s", ErrNotFound, foodItemID)
		}
		outletID = item.OutletID

		if ratings, err = s.repo.Rating.DeleteByTarget(ctx, entity.FoodItemTarget(id)); err != nil {
			return err
		}
		return s.repo.FoodItem.Delete(ctx, id)
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: food item %s", ErrNotFound, foodItemID)
		}
		if !errors.Is(err, ErrNotFound) {
			s.log.Error("Failed to delete food item", zap.Error(err), zap.String("food_item_id", foodItemID))
		}
		return err
	}

	if s.cache != nil {
		s.cache.Delete(outletFeedKey(outletID))
	}

	s.log.Info("Food item deleted",
		zap.String("food_item_id", foodItemID),
		zap.Int64("ratings", ratings),
	)
	return nil
}

func (s *outletService) findOutlet(ctx context.Context, id uuid.UUID) (*entity.Outlet, error) {
	outlet, err := s.repo.Outlet.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get outlet", zap.Error(err), zap.String("outlet_id", id.String()))
		return nil, fmt.Errorf("get outlet: %w", err)
	}
	if outlet == nil {
		return nil, fmt.Errorf("%w: outlet %s", ErrNotFound, id)
	}
	return outlet, nil
}
