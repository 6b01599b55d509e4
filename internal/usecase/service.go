package usecase

import (
	"mess-review/internal/data/repository"
	"mess-review/pkg/cache"
	"mess-review/pkg/mailer"
	"mess-review/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth      AuthService
	OAuth     OAuthService
	User      UserService
	Outlet    OutletService
	Rating    RatingService
	Complaint ComplaintService
	Seeder    *Seeder
}

func NewService(repo *repository.Repository, config *utils.Config, feedCache *cache.Cache, sender mailer.Sender, log *zap.Logger) *Service {
	return &Service{
		Auth:      NewAuthService(repo, config, log),
		OAuth:     NewOAuthService(repo, config, log),
		User:      NewUserService(repo, log),
		Outlet:    NewOutletService(repo, feedCache, log),
		Rating:    NewRatingService(repo, feedCache, log),
		Complaint: NewComplaintService(repo, config, sender, log),
		Seeder:    NewSeeder(repo, config.Seed, log),
	}
}
