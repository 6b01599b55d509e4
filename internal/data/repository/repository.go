package repository

import (
	"errors"

	"mess-review/pkg/database"

	"go.uber.org/zap"
)

// ErrNotFound is returned by mutating operations whose target row is absent.
// Lookups return nil, nil instead.
var ErrNotFound = errors.New("record not found")

type Repository struct {
	Tx        database.Transactor
	User      UserRepository
	Session   SessionRepository
	Outlet    OutletRepository
	FoodItem  FoodItemRepository
	Rating    RatingRepository
	Complaint ComplaintRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Tx:        database.NewTransactor(db),
		User:      NewUserRepository(db, log),
		Session:   NewSessionRepository(db, log),
		Outlet:    NewOutletRepository(db, log),
		FoodItem:  NewFoodItemRepository(db, log),
		Rating:    NewRatingRepository(db, log),
		Complaint: NewComplaintRepository(db, log),
	}
}
