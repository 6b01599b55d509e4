package usecase

import (
	"context"
	"fmt"
	"strings"

	"mess-review/internal/data/entity"
	"mess-review/internal/data/repository"
	"mess-review/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type seedFoodItem struct {
	name, description string
}

type seedOutlet struct {
	name        string
	outletType  entity.OutletType
	description string
	items       []seedFoodItem
}

var messMenu = []seedFoodItem{
	{"Rajma Rasila", "Delicious kidney beans curry"},
	{"Macroni Salad", "Fresh macaroni salad"},
	{"Paneer Lababdar", "Rich and creamy paneer curry"},
	{"Veg Kofta", "Vegetable dumplings in gravy"},
	{"Madrasi Aloo", "Spicy South Indian style potatoes"},
}

var defaultOutlets = []seedOutlet{
	{
		name:        "Malviya Mess",
		outletType:  entity.OutletTypeMess,
		description: "Main mess for students at BITS Pilani",
		items:       messMenu,
	},
	{
		name:        "Srinivasa Ramanujan Mess",
		outletType:  entity.OutletTypeMess,
		description: "Ramanujan mess serving quality food",
		items:       messMenu,
	},
	{
		name:        "Looters Truck",
		outletType:  entity.OutletTypeRestaurant,
		description: "Popular food truck near campus",
		items: []seedFoodItem{
			{"Chicken Pizza", "Delicious chicken pizza with fresh toppings"},
			{"Chicken Popcorn", "Crispy fried chicken popcorn"},
			{"Chicken Burger", "Juicy chicken burger with special sauce"},
			{"Cold Coffee", "Refreshing cold coffee"},
			{"Lemon Tea", "Hot lemon tea"},
		},
	},
}

// Seeder fills an empty database with the campus outlets and the admin account.
type Seeder struct {
	repo   *repository.Repository
	config utils.SeedConfig
	log    *zap.Logger
}

func NewSeeder(repo *repository.Repository, config utils.SeedConfig, log *zap.Logger) *Seeder {
	return &Seeder{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "seed")),
	}
}

// Seed is idempotent: outlets are only created when none exist and the admin
// only when its email is unused.
func (s *Seeder) Seed(ctx context.Context) error {
	if !s.config.Enabled {
		s.log.Debug("Seeding disabled")
		return nil
	}

	if err := s.seedOutlets(ctx); err != nil {
		return fmt.Errorf("seed outlets: %w", err)
	}
	if err := s.seedAdmin(ctx); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	return nil
}

func (s *Seeder) seedOutlets(ctx context.Context) error {
	count, err := s.repo.Outlet.CountAll(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	var items int
	err = s.repo.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		for _, so := range defaultOutlets {
			now := utils.Now()
			description := so.description
			outlet := &entity.Outlet{
				BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
				Name:         so.name,
				Type:         so.outletType,
				Description:  &description,
			}
			if err := s.repo.Outlet.Create(ctx, outlet); err != nil {
				return err
			}

			for _, si := range so.items {
				itemDescription := si.description
				item := &entity.FoodItem{
					BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
					OutletID:     outlet.ID,
					Name:         si.name,
					Description:  &itemDescription,
				}
				if err := s.repo.FoodItem.Create(ctx, item); err != nil {
					return err
				}
				items++
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info("Database seeded with outlets",
		zap.Int("outlets", len(defaultOutlets)),
		zap.Int("food_items", items),
	)
	return nil
}

func (s *Seeder) seedAdmin(ctx context.Context) error {
	email := strings.ToLower(strings.TrimSpace(s.config.AdminEmail))
	if email == "" {
		return nil
	}

	existing, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	if s.config.AdminPassword == "" {
		s.log.Warn("Admin account not seeded, SEED_ADMIN_PASSWORD is empty", zap.String("email", email))
		return nil
	}

	hash, err := utils.HashPassword(s.config.AdminPassword)
	if err != nil {
		return err
	}

	now := utils.Now()
	admin := &entity.User{
		BaseNoDelete:  entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:          "Admin",
		Email:         email,
		PasswordHash:  hash,
		Role:          entity.RoleAdmin,
		Provider:      entity.ProviderLocal,
		EmailVerified: true,
		IsActive:      true,
	}
	if err := s.repo.User.Create(ctx, admin); err != nil {
		return err
	}

	s.log.Info("Admin account created", zap.String("email", email))
	return nil
}
