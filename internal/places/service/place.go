package service

import (
	"context"
	"errors"

	placeserrors "placely/internal/places/errors"
	"placely/internal/places/repository"
	"placely/internal/places/validator"
	"placely/pkg/config"
	apperrors "placely/pkg/errors"
	"placely/pkg/model"
	"placely/pkg/sanitizer"
)

type PlaceService interface {
	Create(ctx context.Context, ownerID string, place *model.Place) (*model.Place, error)
	GetByID(ctx context.Context, id string) (*model.Place, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*model.Place, error)
	ListAll(ctx context.Context) ([]*model.Place, error)
	Update(ctx context.Context, callerID string, update *model.PlaceUpdate) (*model.Place, error)
}

type placeService struct {
	repo      repository.PlaceRepository
	validator *validator.PlaceValidator
	cfg       *config.Config
}

func NewPlaceService(
	repo repository.PlaceRepository,
	validator *validator.PlaceValidator,
	cfg *config.Config,
) PlaceService {
	return &placeService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

// Create stores a new place owned by the caller. Any owner supplied in
// the payload is discarded.
func (s *placeService) Create(ctx context.Context, ownerID string, place *model.Place) (*model.Place, error) {
	s.sanitizePlace(place)
	place.ID = ""
	place.Owner = ownerID

	if err := s.validator.ValidateCreate(place); err != nil {
		s.cfg.Log.Warn("Place validation failed", "error", err)
		return nil, apperrors.Validation("Place validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Create(ctx, place); err != nil {
		s.cfg.Log.Error("Failed to create place", "error", err)
		return nil, apperrors.Internal("Failed to create place", err)
	}

	s.cfg.Log.Info("Place created", "id", place.ID, "owner", place.Owner)
	return place, nil
}

func (s *placeService) GetByID(ctx context.Context, id string) (*model.Place, error) {
	place, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapLookupError(id, err)
	}
	return place, nil
}

func (s *placeService) ListByOwner(ctx context.Context, ownerID string) ([]*model.Place, error) {
	places, err := s.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		s.cfg.Log.Error("Failed to list places by owner", "owner", ownerID, "error", err)
		return nil, apperrors.Internal("Failed to list places", err)
	}
	return places, nil
}

func (s *placeService) ListAll(ctx context.Context) ([]*model.Place, error) {
	places, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list places", "error", err)
		return nil, apperrors.Internal("Failed to list places", err)
	}
	return places, nil
}

// Update replaces the mutable attributes of a place. The stored record is
// loaded first so ownership can be checked against the caller; a mismatch
// is a hard Forbidden, never a silent success.
func (s *placeService) Update(ctx context.Context, callerID string, update *model.PlaceUpdate) (*model.Place, error) {
	s.sanitizeUpdate(update)

	if err := s.validator.ValidateUpdate(update); err != nil {
		s.cfg.Log.Warn("Place update validation failed", "error", err)
		return nil, apperrors.Validation("Place update validation failed", map[string]any{"error": err.Error()})
	}

	stored, err := s.repo.FindByID(ctx, update.ID)
	if err != nil {
		return nil, s.mapLookupError(update.ID, err)
	}

	if stored.Owner != callerID {
		s.cfg.Log.Warn("Rejected place update by non-owner", "place", stored.ID, "caller", callerID)
		return nil, apperrors.Forbidden("only the owner may update this place")
	}

	stored.Title = update.Title
	stored.Address = update.Address
	stored.Photos = update.Photos
	stored.Description = update.Description
	stored.Perks = update.Perks
	stored.ExtraInfo = update.ExtraInfo
	stored.CheckIn = update.CheckIn
	stored.CheckOut = update.CheckOut
	stored.MaxGuests = update.MaxGuests
	stored.Price = update.Price

	if err := s.repo.Replace(ctx, stored); err != nil {
		if errors.Is(err, placeserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Place", update.ID)
		}
		s.cfg.Log.Error("Failed to update place", "id", update.ID, "error", err)
		return nil, apperrors.Internal("Failed to update place", err)
	}

	s.cfg.Log.Info("Place updated", "id", stored.ID, "owner", stored.Owner)
	return stored, nil
}

func (s *placeService) mapLookupError(id string, err error) error {
	if errors.Is(err, placeserrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Place", id)
	}
	if errors.Is(err, placeserrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid place ID format")
	}
	s.cfg.Log.Error("Failed to retrieve place", "id", id, "error", err)
	return apperrors.Internal("Failed to retrieve place", err)
}

func (s *placeService) sanitizePlace(place *model.Place) {
	place.Title = sanitizer.NormalizeTitle(place.Title)
	place.Address = sanitizer.NormalizeAddress(place.Address)
	place.Description = sanitizer.NormalizeText(place.Description)
	place.ExtraInfo = sanitizer.NormalizeText(place.ExtraInfo)
	place.Perks = sanitizer.NormalizePerks(place.Perks)
	place.Photos = sanitizer.NormalizePhotoRefs(place.Photos)
}

func (s *placeService) sanitizeUpdate(update *model.PlaceUpdate) {
	update.Title = sanitizer.NormalizeTitle(update.Title)
	update.Address = sanitizer.NormalizeAddress(update.Address)
	update.Description = sanitizer.NormalizeText(update.Description)
	update.ExtraInfo = sanitizer.NormalizeText(update.ExtraInfo)
	update.Perks = sanitizer.NormalizePerks(update.Perks)
	update.Photos = sanitizer.NormalizePhotoRefs(update.Photos)
}
