package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/annazecevic/catalog-service/domain"
	"github.com/annazecevic/catalog-service/dto"
	"github.com/annazecevic/catalog-service/logger"
	"github.com/annazecevic/catalog-service/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	defaultRating  = 5
	defaultCountry = "Unknown"
)

var dateLayouts = []string{time.RFC3339, "2006-01-02"}

type AlbumService interface {
	ListAlbums(ctx context.Context, q dto.ListAlbumsQuery) ([]*domain.Album, error)
	SearchAlbums(ctx context.Context, q dto.SearchAlbumsQuery) ([]*domain.Album, error)
	AddAlbum(ctx context.Context, req *dto.AddAlbumRequest) (*domain.Album, error)
	UpdateAlbum(ctx context.Context, id string, req *dto.UpdateAlbumRequest) (*domain.Album, error)
	DeleteAlbum(ctx context.Context, id string) error
}

type albumService struct {
	repo repository.AlbumRepository
}

func NewAlbumService(repo repository.AlbumRepository) AlbumService {
	return &albumService{repo: repo}
}

func (s *albumService) ListAlbums(ctx context.Context, q dto.ListAlbumsQuery) ([]*domain.Album, error) {
	limit, err := parsePaginationParam("limit", q.Limit)
	if err != nil {
		return nil, err
	}
	offset, err := parsePaginationParam("offset", q.Offset)
	if err != nil {
		return nil, err
	}
	return s.repo.FindAll(ctx, limit, offset)
}

func (s *albumService) SearchAlbums(ctx context.Context, q dto.SearchAlbumsQuery) ([]*domain.Album, error) {
	filter, err := parseSearchQuery(q)
	if err != nil {
		logger.Warn(logger.EventValidationFailure, "Rejected search query", logger.Fields("error", err.Error()))
		return nil, err
	}

	albums, err := s.repo.Search(ctx, filter)
	if err != nil {
		return nil, err
	}

	if len(albums) == 0 {
		return nil, domain.ErrNoMatches
	}
	return albums, nil
}

func (s *albumService) AddAlbum(ctx context.Context, req *dto.AddAlbumRequest) (*domain.Album, error) {
	album, err := validateAlbum(req)
	if err != nil {
		logger.Warn(logger.EventValidationFailure, "Rejected album payload", logger.Fields(
			"title", req.Title,
			"error", err.Error(),
		))
		return nil, err
	}

	created, err := s.repo.Insert(ctx, album)
	if err != nil {
		return nil, err
	}

	logger.Info(logger.EventGeneral, "Album created", logger.Fields(
		"id", created.ID.Hex(),
		"title", created.Title,
	))
	return created, nil
}

func (s *albumService) UpdateAlbum(ctx context.Context, id string, req *dto.UpdateAlbumRequest) (*domain.Album, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.NewValidationError("invalid ID format")
	}

	updates, err := buildUpdates(req)
	if err != nil {
		logger.Warn(logger.EventValidationFailure, "Rejected album update", logger.Fields(
			"id", id,
			"error", err.Error(),
		))
		return nil, err
	}

	updated, err := s.repo.UpdateByID(ctx, oid, updates)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrAlbumNotFound
		}
		return nil, err
	}

	logger.Info(logger.EventGeneral, "Album updated", logger.Fields("id", id))
	return updated, nil
}

func (s *albumService) DeleteAlbum(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.NewValidationError("invalid ID format")
	}

	if err := s.repo.DeleteByID(ctx, oid); err != nil {
		if err == mongo.ErrNoDocuments {
			return domain.ErrAlbumNotFound
		}
		return err
	}

	logger.Info(logger.EventGeneral, "Album deleted", logger.Fields("id", id))
	return nil
}

// validateAlbum checks the candidate payload and produces the normalized
// record. The rating range check runs before defaulting so an out-of-range
// value is never silently replaced.
func validateAlbum(req *dto.AddAlbumRequest) (*domain.Album, error) {
	if req.Rating != nil && (*req.Rating < 0 || *req.Rating > 10) {
		return nil, domain.NewValidationError("rating must be between 0 and 10")
	}

	if strings.TrimSpace(req.Title) == "" {
		return nil, domain.NewValidationError("title is required")
	}
	if strings.TrimSpace(req.Artist) == "" {
		return nil, domain.NewValidationError("artist is required")
	}
	if strings.TrimSpace(req.Genre) == "" {
		return nil, domain.NewValidationError("genre is required")
	}
	if strings.TrimSpace(req.ReleaseDate) == "" {
		return nil, domain.NewValidationError("releaseDate is required")
	}
	if req.Duration == nil {
		return nil, domain.NewValidationError("duration is required")
	}

	releaseDate, err := parseDate(req.ReleaseDate)
	if err != nil {
		return nil, domain.NewValidationError("invalid releaseDate, expected RFC 3339 or YYYY-MM-DD")
	}

	country := strings.TrimSpace(req.CountryOfOrigin)
	if country == "" {
		country = defaultCountry
	}

	// an explicit rating of 0 is legal and kept; only an absent rating
	// falls back to the default
	rating := float64(defaultRating)
	if req.Rating != nil {
		rating = *req.Rating
	}

	return &domain.Album{
		Title:           req.Title,
		Artist:          req.Artist,
		Genre:           req.Genre,
		ReleaseDate:     releaseDate,
		Duration:        *req.Duration,
		CountryOfOrigin: country,
		Rating:          rating,
	}, nil
}

func buildUpdates(req *dto.UpdateAlbumRequest) (map[string]interface{}, error) {
	if req.Rating != nil && (*req.Rating < 0 || *req.Rating > 10) {
		return nil, domain.NewValidationError("rating must be between 0 and 10")
	}

	updates := make(map[string]interface{})

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, domain.NewValidationError("title must not be empty")
		}
		updates["title"] = *req.Title
	}
	if req.Artist != nil {
		if strings.TrimSpace(*req.Artist) == "" {
			return nil, domain.NewValidationError("artist must not be empty")
		}
		updates["artist"] = *req.Artist
	}
	if req.Genre != nil {
		if strings.TrimSpace(*req.Genre) == "" {
			return nil, domain.NewValidationError("genre must not be empty")
		}
		updates["genre"] = *req.Genre
	}
	if req.ReleaseDate != nil {
		releaseDate, err := parseDate(*req.ReleaseDate)
		if err != nil {
			return nil, domain.NewValidationError("invalid releaseDate, expected RFC 3339 or YYYY-MM-DD")
		}
		updates["release_date"] = releaseDate
	}
	if req.Duration != nil {
		updates["duration"] = *req.Duration
	}
	if req.CountryOfOrigin != nil {
		country := strings.TrimSpace(*req.CountryOfOrigin)
		if country == "" {
			country = defaultCountry
		}
		updates["country_of_origin"] = country
	}
	if req.Rating != nil {
		updates["rating"] = *req.Rating
	}

	if len(updates) == 0 {
		return nil, domain.NewValidationError("no fields to update")
	}
	return updates, nil
}

// parseSearchQuery coerces the raw query parameters into a typed filter.
// Malformed values are rejected here so garbage never reaches the store.
func parseSearchQuery(q dto.SearchAlbumsQuery) (domain.AlbumFilter, error) {
	var filter domain.AlbumFilter

	if q.ID != "" {
		oid, err := primitive.ObjectIDFromHex(q.ID)
		if err != nil {
			return filter, domain.NewValidationError("invalid ID format")
		}
		filter.ID = &oid
	}
	if q.Title != "" {
		filter.Title = &q.Title
	}
	if q.Artist != "" {
		filter.Artist = &q.Artist
	}
	if q.Genre != "" {
		filter.Genre = &q.Genre
	}
	if q.CountryOfOrigin != "" {
		filter.CountryOfOrigin = &q.CountryOfOrigin
	}
	if q.ReleaseDate != "" {
		releaseDate, err := parseDate(q.ReleaseDate)
		if err != nil {
			return filter, domain.NewValidationError("invalid releaseDate, expected RFC 3339 or YYYY-MM-DD")
		}
		filter.ReleaseDate = &releaseDate
	}
	if q.Duration != "" {
		duration, err := strconv.ParseFloat(q.Duration, 64)
		if err != nil {
			return filter, domain.NewValidationError("invalid duration, expected a number")
		}
		filter.Duration = &duration
	}
	if q.Rating != "" {
		rating, err := strconv.ParseFloat(q.Rating, 64)
		if err != nil {
			return filter, domain.NewValidationError("invalid rating, expected a number")
		}
		filter.Rating = &rating
	}

	return filter, nil
}

func parseDate(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func parsePaginationParam(name, value string) (int64, error) {
	if value == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil || n < 0 {
		return 0, domain.NewValidationError("invalid " + name + ", expected a non-negative integer")
	}
	return n, nil
}
