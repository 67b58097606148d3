package stores

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/loopstackhq/loopstack-backend/internal/users"
	"github.com/loopstackhq/loopstack-backend/pkg/db/models"
	"github.com/loopstackhq/loopstack-backend/pkg/enums"
	pkgerrors "github.com/loopstackhq/loopstack-backend/pkg/errors"
)

type storeRepository interface {
	FindByOwner(ctx context.Context, ownerID uuid.UUID) (*models.Store, error)
	FindSocialLinks(ctx context.Context, storeID uuid.UUID) (*models.SocialLinks, error)
}

type usersRepository interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
}

// Service exposes the public storefront pages for a store, addressed by the
// owner's username.
type Service interface {
	Details(ctx context.Context, username string) (*DetailsDTO, error)
	About(ctx context.Context, username string) (*AboutPageDTO, error)
	Contact(ctx context.Context, username string) (*ContactPageDTO, error)
	SocialLinks(ctx context.Context, username string) (*SocialLinksPageDTO, error)
}

type service struct {
	repo  storeRepository
	users usersRepository
	now   func() time.Time
}

// Option adjusts service construction.
type Option func(*service)

// WithClock overrides the wall clock, used by the business-hours status.
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService builds a store pages service with the provided repositories.
func NewService(repo storeRepository, usersRepo usersRepository, opts ...Option) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("store repository required")
	}
	if usersRepo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	s := &service{repo: repo, users: usersRepo, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// resolveStore maps a raw username path segment to the owning user and their
// store, applying the shared visibility rules.
func (s *service) resolveStore(ctx context.Context, username string) (*models.User, *models.Store, error) {
	if !users.ValidUsername(username) {
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid username format")
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup user")
	}
	if user.Status != enums.UserStatusActive {
		return nil, nil, pkgerrors.New(pkgerrors.CodeForbidden, "user account is not active")
	}

	store, err := s.repo.FindByOwner(ctx, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found for this user")
		}
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
	}
	return user, store, nil
}

func (s *service) Details(ctx context.Context, username string) (*DetailsDTO, error) {
	_, store, err := s.resolveStore(ctx, username)
	if err != nil {
		return nil, err
	}
	return &DetailsDTO{
		StoreName: store.DisplayName,
		StoreLogo: store.LogoURL,
	}, nil
}

func (s *service) About(ctx context.Context, username string) (*AboutPageDTO, error) {
	user, store, err := s.resolveStore(ctx, username)
	if err != nil {
		return nil, err
	}
	if store.AboutUs == nil || store.AboutUs.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "about us information not available for this store")
	}
	return &AboutPageDTO{
		Store:    headerFromModel(store),
		Username: user.Username,
		AboutUs:  *store.AboutUs,
	}, nil
}

func (s *service) Contact(ctx context.Context, username string) (*ContactPageDTO, error) {
	user, store, err := s.resolveStore(ctx, username)
	if err != nil {
		return nil, err
	}

	now := s.now()
	current := currentStatus(store.BusinessHours, now)
	status := StoreStatusDTO{Current: current}
	if !current.IsOpen {
		status.NextOpening = nextOpening(store.BusinessHours, now)
	}

	return &ContactPageDTO{
		Store:         headerFromModel(store),
		Username:      user.Username,
		Contact:       store.Contact,
		BusinessHours: store.BusinessHours,
		QuickHelp:     store.QuickHelp,
		StoreStatus:   status,
	}, nil
}

func (s *service) SocialLinks(ctx context.Context, username string) (*SocialLinksPageDTO, error) {
	user, store, err := s.resolveStore(ctx, username)
	if err != nil {
		return nil, err
	}

	page := &SocialLinksPageDTO{
		Store:       headerFromModel(store),
		Username:    user.Username,
		SocialLinks: []SocialLinkDTO{},
	}

	row, err := s.repo.FindSocialLinks(ctx, store.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return page, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load social links")
	}
	page.SocialLinks = formatSocialLinks(row.Links)
	return page, nil
}
