package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"mess-review/internal/data/entity"
	"mess-review/internal/data/repository"
	"mess-review/internal/data/repository/mocks"

	"github.com/google/uuid"
)

// memStore backs the repository mocks with maps so service tests can assert
// on state rather than on call sequences.
type memStore struct {
	mu         sync.Mutex
	users      map[uuid.UUID]*entity.User
	outlets    map[uuid.UUID]*entity.Outlet
	foodItems  map[uuid.UUID]*entity.FoodItem
	ratings    map[uuid.UUID]*entity.Rating
	complaints map[uuid.UUID]*entity.Complaint
	sessions   []*entity.Session

	tx        *mocks.MockTransactor
	user      *mocks.MockUserRepository
	session   *mocks.MockSessionRepository
	outlet    *mocks.MockOutletRepository
	foodItem  *mocks.MockFoodItemRepository
	rating    *mocks.MockRatingRepository
	complaint *mocks.MockComplaintRepository
}

func newMemStore() *memStore {
	s := &memStore{
		users:      map[uuid.UUID]*entity.User{},
		outlets:    map[uuid.UUID]*entity.Outlet{},
		foodItems:  map[uuid.UUID]*entity.FoodItem{},
		ratings:    map[uuid.UUID]*entity.Rating{},
		complaints: map[uuid.UUID]*entity.Complaint{},
		tx:         &mocks.MockTransactor{},
	}

	s.user = &mocks.MockUserRepository{
		CreateFunc: func(_ context.Context, u *entity.User) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.users[u.ID] = u
			return nil
		},
		FindByIDFunc: func(_ context.Context, id uuid.UUID) (*entity.User, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			return s.users[id], nil
		},
		FindByEmailFunc: func(_ context.Context, email string) (*entity.User, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			for _, u := range s.users {
				if u.Email == email {
					return u, nil
				}
			}
			return nil, nil
		},
		UpdateFunc: func(_ context.Context, u *entity.User) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.users[u.ID] = u
			return nil
		},
	}

	s.session = &mocks.MockSessionRepository{
		CreateFunc: func(_ context.Context, sess *entity.Session) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.sessions = append(s.sessions, sess)
			return nil
		},
		RevokeAllUserSessionsFunc: func(_ context.Context, userID uuid.UUID) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			now := time.Now()
			for _, sess := range s.sessions {
				if sess.UserID == userID && sess.RevokedAt == nil {
					sess.RevokedAt = &now
				}
			}
			return nil
		},
	}

	findOutlet := func(_ context.Context, id uuid.UUID) (*entity.Outlet, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.outlets[id], nil
	}
	s.outlet = &mocks.MockOutletRepository{
		CreateFunc: func(_ context.Context, o *entity.Outlet) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.outlets[o.ID] = o
			return nil
		},
		FindByIDFunc:          findOutlet,
		FindByIDForUpdateFunc: findOutlet,
		CountAllFunc: func(_ context.Context) (int64, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			return int64(len(s.outlets)), nil
		},
		UpdateRatingFunc: func(_ context.Context, id uuid.UUID, average float64, total int) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			o, ok := s.outlets[id]
			if !ok {
				return repository.ErrNotFound
			}
			o.AverageRating, o.TotalRatings = average, total
			return nil
		},
		DeleteFunc: func(_ context.Context, id uuid.UUID) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			if _, ok := s.outlets[id]; !ok {
				return repository.ErrNotFound
			}
			delete(s.outlets, id)
			return nil
		},
	}

	findFoodItem := func(_ context.Context, id uuid.UUID) (*entity.FoodItem, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.foodItems[id], nil
	}
	s.foodItem = &mocks.MockFoodItemRepository{
		CreateFunc: func(_ context.Context, item *entity.FoodItem) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.foodItems[item.ID] = item
			return nil
		},
		FindByIDFunc:          findFoodItem,
		FindByIDForUpdateFunc: findFoodItem,
		FindByOutletIDFunc: func(_ context.Context, outletID uuid.UUID) ([]*entity.FoodItem, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			var out []*entity.FoodItem
			for _, item := range s.foodItems {
				if item.OutletID == outletID {
					out = append(out, item)
				}
			}
			sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
			return out, nil
		},
		UpdateRatingFunc: func(_ context.Context, id uuid.UUID, average float64, total int) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			item, ok := s.foodItems[id]
			if !ok {
				return repository.ErrNotFound
			}
			item.AverageRating, item.TotalRatings = average, total
			return nil
		},
		DeleteFunc: func(_ context.Context, id uuid.UUID) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.foodItems, id)
			return nil
		},
		DeleteByOutletIDFunc: func(_ context.Context, outletID uuid.UUID) (int64, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			var n int64
			for id, item := range s.foodItems {
				if item.OutletID == outletID {
					delete(s.foodItems, id)
					n++
				}
			}
			return n, nil
		},
	}

	s.rating = &mocks.MockRatingRepository{
		CreateFunc: func(_ context.Context, r *entity.Rating) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.ratings[r.ID] = r
			return nil
		},
		FindByIDFunc: func(_ context.Context, id uuid.UUID) (*entity.Rating, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			return s.ratings[id], nil
		},
		DeleteFunc: func(_ context.Context, id uuid.UUID) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			if _, ok := s.ratings[id]; !ok {
				return repository.ErrNotFound
			}
			delete(s.ratings, id)
			return nil
		},
		FindByTargetFunc: func(_ context.Context, target entity.Target) ([]*entity.Rating, error) {
			return s.ratingsFor(target, false), nil
		},
		FindPublicByTargetFunc: func(_ context.Context, target entity.Target) ([]*entity.Rating, error) {
			return s.ratingsFor(target, true), nil
		},
		DeleteByTargetFunc: func(_ context.Context, target entity.Target) (int64, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			var n int64
			for id, r := range s.ratings {
				if r.Target == target {
					delete(s.ratings, id)
					n++
				}
			}
			return n, nil
		},
		DeleteByOutletFoodItemsFunc: func(_ context.Context, outletID uuid.UUID) (int64, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			var n int64
			for id, r := range s.ratings {
				if item, ok := s.foodItems[r.Target.ID]; ok && r.Target.IsFoodItem() && item.OutletID == outletID {
					delete(s.ratings, id)
					n++
				}
			}
			return n, nil
		},
	}

	s.complaint = &mocks.MockComplaintRepository{
		CreateFunc: func(_ context.Context, c *entity.Complaint) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.complaints[c.ID] = c
			return nil
		},
		DeleteByOutletIDFunc: func(_ context.Context, outletID uuid.UUID) (int64, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			var n int64
			for id, c := range s.complaints {
				if c.OutletID == outletID {
					delete(s.complaints, id)
					n++
				}
			}
			return n, nil
		},
	}

	return s
}

func (s *memStore) repo() *repository.Repository {
	return &repository.Repository{
		Tx:        s.tx,
		User:      s.user,
		Session:   s.session,
		Outlet:    s.outlet,
		FoodItem:  s.foodItem,
		Rating:    s.rating,
		Complaint: s.complaint,
	}
}

// ratingsFor mirrors the repository ordering: newest first, then id descending.
func (s *memStore) ratingsFor(target entity.Target, publicOnly bool) []*entity.Rating {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []*entity.Rating{}
	for _, r := range s.ratings {
		if r.Target != target {
			continue
		}
		if publicOnly && !r.IsPublicReview() {
			continue
		}
		out = append(out, r)
	}
	return mergeByRecency(out)
}

func (s *memStore) addUser(name, email string, role entity.UserRole) *entity.User {
	u := &entity.User{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: time.Now()},
		Name:         name,
		Email:        email,
		Role:         role,
		Provider:     entity.ProviderLocal,
		IsActive:     true,
	}
	s.users[u.ID] = u
	return u
}

func (s *memStore) addOutlet(name string) *entity.Outlet {
	o := &entity.Outlet{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: time.Now()},
		Name:         name,
		Type:         entity.OutletTypeMess,
	}
	s.outlets[o.ID] = o
	return o
}

func (s *memStore) addFoodItem(outlet *entity.Outlet, name string) *entity.FoodItem {
	item := &entity.FoodItem{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: time.Now()},
		OutletID:     outlet.ID,
		Name:         name,
	}
	s.foodItems[item.ID] = item
	return item
}

func (s *memStore) addRating(author *entity.User, target entity.Target, stars int, text string, anonymous bool, createdAt time.Time) *entity.Rating {
	r := &entity.Rating{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: createdAt, UpdatedAt: createdAt},
		UserID:       author.ID,
		Target:       target,
		Stars:        stars,
		IsAnonymous:  anonymous,
		AuthorName:   author.Name,
	}
	if text != "" {
		r.ReviewText = &text
	}
	if item, ok := s.foodItems[target.ID]; ok && target.IsFoodItem() {
		name := item.Name
		r.FoodItemName = &name
	}
	s.ratings[r.ID] = r
	return r
}

func ptr[T any](v T) *T {
	return &v
}
