package intake

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/market-notifier/internal/model"
)

//go:generate mockgen -source=service.go -destination=../../mocks/service/intake/mock.go -package=mocks

var (
	ErrInvalidChange    = errors.New("invalid content change")
	ErrMissingCompany   = errors.New("company id is required for earnings and dividends")
	ErrMissingIndicator = errors.New("indicator base name and country are required")
)

type subscriberRepository interface {
	ByCompany(ctx context.Context, companyID int64) ([]int64, error)
	ByIndicator(ctx context.Context, baseName, country string) ([]int64, error)
}

type notificationCreator interface {
	CreateNotification(ctx context.Context, userID int64, change model.ContentChange) (model.Notification, error)
}

// Result summarizes one handled content change.
type Result struct {
	Subscribers int `json:"subscribers"`
	Created     int `json:"created"`
}

// Service turns content changes into notifications for every subscriber of the content.
type Service struct {
	subscribers subscriberRepository
	creator     notificationCreator
	validator   *validator.Validate
}

// NewService creates a new intake service.
func NewService(subscribers subscriberRepository, creator notificationCreator, v *validator.Validate) *Service {
	return &Service{subscribers: subscribers, creator: creator, validator: v}
}

// Handle resolves the subscribers of the changed content and creates a notification for each.
// A failure for one subscriber does not stop the others.
func (s *Service) Handle(ctx context.Context, change model.ContentChange) (Result, error) {
	if err := s.validator.Struct(change); err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrInvalidChange, err)
	}

	userIDs, err := s.resolve(ctx, change)
	if err != nil {
		return Result{}, err
	}

	res := Result{Subscribers: len(userIDs)}
	var errs []error

	for _, userID := range userIDs {
		n, err := s.creator.CreateNotification(ctx, userID, change)
		if n.ID != uuid.Nil {
			res.Created++
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("user %d: %w", userID, err))
		}
	}

	zlog.Logger.Info().
		Str("content_type", string(change.ContentType)).
		Int64("content_id", change.ContentID).
		Int("subscribers", res.Subscribers).
		Int("created", res.Created).
		Msg("content change handled")

	return res, errors.Join(errs...)
}

func (s *Service) resolve(ctx context.Context, change model.ContentChange) ([]int64, error) {
	switch change.ContentType {
	case model.ContentEarnings, model.ContentDividend:
		if change.CompanyID <= 0 {
			return nil, ErrMissingCompany
		}

		ids, err := s.subscribers.ByCompany(ctx, change.CompanyID)
		if err != nil {
			return nil, fmt.Errorf("resolve company subscribers: %w", err)
		}
		return ids, nil

	case model.ContentIndicator:
		if change.Current == nil || change.Current.BaseName == "" || change.Current.Country == "" {
			return nil, ErrMissingIndicator
		}

		ids, err := s.subscribers.ByIndicator(ctx, change.Current.BaseName, change.Current.Country)
		if err != nil {
			return nil, fmt.Errorf("resolve indicator subscribers: %w", err)
		}
		return ids, nil
	}

	return nil, fmt.Errorf("%w: unknown content type %q", ErrInvalidChange, change.ContentType)
}
