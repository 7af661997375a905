package service

import (
	"context"
	"errors"

	"placely/internal/bookings/repository"
	"placely/internal/bookings/validator"
	placeserrors "placely/internal/places/errors"
	placesrepo "placely/internal/places/repository"
	"placely/pkg/config"
	apperrors "placely/pkg/errors"
	"placely/pkg/events"
	"placely/pkg/model"
	"placely/pkg/sanitizer"
)

// EventBookingCreated is published after a booking is persisted.
const EventBookingCreated = "booking.created"

type BookingService interface {
	Create(ctx context.Context, callerID string, booking *model.Booking) (*model.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]*model.BookingWithPlace, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	places    placesrepo.PlaceRepository
	validator *validator.BookingValidator
	publisher events.Publisher
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	places placesrepo.PlaceRepository,
	validator *validator.BookingValidator,
	publisher events.Publisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		places:    places,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

// Create stores a booking for the caller. The user is always taken from the
// session, never from the payload, and the referenced place must exist.
func (s *bookingService) Create(ctx context.Context, callerID string, booking *model.Booking) (*model.Booking, error) {
	booking.ID = ""
	booking.UserID = callerID
	booking.Name = sanitizer.NormalizeName(booking.Name)
	booking.Phone = sanitizer.NormalizePhone(booking.Phone)

	if err := s.validator.ValidateCreate(booking); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return nil, apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
	}

	if _, err := s.places.FindByID(ctx, booking.PlaceID); err != nil {
		if errors.Is(err, placeserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Place", booking.PlaceID)
		}
		if errors.Is(err, placeserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid place ID format")
		}
		s.cfg.Log.Error("Failed to verify place", "place", booking.PlaceID, "error", err)
		return nil, apperrors.Internal("Failed to verify place", err)
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		s.cfg.Log.Error("Failed to create booking", "error", err)
		return nil, apperrors.Internal("Failed to create booking", err)
	}

	// The booking is committed at this point; a publish failure is logged
	// and never surfaced to the caller.
	if err := s.publisher.Publish(ctx, EventBookingCreated, booking.PlaceID, booking); err != nil {
		s.cfg.Log.Error("Failed to publish booking event", "booking", booking.ID, "error", err)
	}

	s.cfg.Log.Info("Booking created", "id", booking.ID, "place", booking.PlaceID, "user", booking.UserID)
	return booking, nil
}

// ListByUser returns the caller's bookings with each place reference
// resolved to its full document. A booking whose place has since vanished
// is returned with a nil place rather than dropped.
func (s *bookingService) ListByUser(ctx context.Context, userID string) ([]*model.BookingWithPlace, error) {
	bookings, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings", "user", userID, "error", err)
		return nil, apperrors.Internal("Failed to list bookings", err)
	}

	resolved := make([]*model.BookingWithPlace, 0, len(bookings))
	placeCache := make(map[string]*model.Place)

	for _, booking := range bookings {
		place, seen := placeCache[booking.PlaceID]
		if !seen {
			place, err = s.places.FindByID(ctx, booking.PlaceID)
			if err != nil {
				if !errors.Is(err, placeserrors.ErrNotFound) && !errors.Is(err, placeserrors.ErrInvalidID) {
					s.cfg.Log.Error("Failed to resolve place", "place", booking.PlaceID, "error", err)
					return nil, apperrors.Internal("Failed to resolve place", err)
				}
				place = nil
			}
			placeCache[booking.PlaceID] = place
		}

		resolved = append(resolved, &model.BookingWithPlace{
			Booking: *booking,
			Place:   place,
		})
	}

	return resolved, nil
}
