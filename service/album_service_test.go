package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/annazecevic/catalog-service/domain"
	"github.com/annazecevic/catalog-service/dto"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type mockRepo struct {
	FindAllResp   []*domain.Album
	FindAllErr    error
	FindAllCalled bool
	LastLimit     int64
	LastOffset    int64

	SearchResp   []*domain.Album
	SearchErr    error
	SearchCalled bool
	LastFilter   domain.AlbumFilter

	InsertErr    error
	InsertCalled bool
	LastInserted *domain.Album

	UpdateResp  *domain.Album
	UpdateErr   error
	LastUpdates map[string]interface{}

	DeleteErr error
}

func (m *mockRepo) FindAll(ctx context.Context, limit, offset int64) ([]*domain.Album, error) {
	m.FindAllCalled = true
	m.LastLimit = limit
	m.LastOffset = offset
	return m.FindAllResp, m.FindAllErr
}

func (m *mockRepo) Search(ctx context.Context, filter domain.AlbumFilter) ([]*domain.Album, error) {
	m.SearchCalled = true
	m.LastFilter = filter
	return m.SearchResp, m.SearchErr
}

func (m *mockRepo) Insert(ctx context.Context, album *domain.Album) (*domain.Album, error) {
	m.InsertCalled = true
	m.LastInserted = album
	if m.InsertErr != nil {
		return nil, m.InsertErr
	}
	album.ID = primitive.NewObjectID()
	return album, nil
}

func (m *mockRepo) UpdateByID(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*domain.Album, error) {
	m.LastUpdates = updates
	if m.UpdateErr != nil {
		return nil, m.UpdateErr
	}
	return m.UpdateResp, nil
}

func (m *mockRepo) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	return m.DeleteErr
}

func floatPtr(f float64) *float64 { return &f }

func validAddRequest() *dto.AddAlbumRequest {
	return &dto.AddAlbumRequest{
		Title:       "Thriller",
		Artist:      "Michael Jackson",
		Genre:       "Pop",
		ReleaseDate: "1982-11-30",
		Duration:    floatPtr(42),
	}
}

func TestAddAlbumKeepsSubmittedRating(t *testing.T) {
	repo := &mockRepo{}
	svc := NewAlbumService(repo)

	req := validAddRequest()
	req.Rating = floatPtr(7)

	album, err := svc.AddAlbum(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if album.Rating != 7 {
		t.Fatalf("expected rating 7, got %v", album.Rating)
	}
}

func TestAddAlbumRejectsOutOfRangeRating(t *testing.T) {
	for _, rating := range []float64{-1, 11} {
		repo := &mockRepo{}
		svc := NewAlbumService(repo)

		req := validAddRequest()
		req.Rating = floatPtr(rating)

		_, err := svc.AddAlbum(context.Background(), req)
		var verr *domain.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("rating %v: expected validation error, got %v", rating, err)
		}
		if repo.InsertCalled {
			t.Fatalf("rating %v: nothing should be persisted on validation failure", rating)
		}
	}
}

func TestAddAlbumDefaultsCountryOfOrigin(t *testing.T) {
	repo := &mockRepo{}
	svc := NewAlbumService(repo)

	album, err := svc.AddAlbum(context.Background(), validAddRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if album.CountryOfOrigin != "Unknown" {
		t.Fatalf("expected countryOfOrigin Unknown, got %q", album.CountryOfOrigin)
	}
}

func TestAddAlbumDefaultsMissingRating(t *testing.T) {
	repo := &mockRepo{}
	svc := NewAlbumService(repo)

	album, err := svc.AddAlbum(context.Background(), validAddRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if album.Rating != 5 {
		t.Fatalf("expected default rating 5, got %v", album.Rating)
	}
}

func TestAddAlbumKeepsExplicitZeroRating(t *testing.T) {
	repo := &mockRepo{}
	svc := NewAlbumService(repo)

	req := validAddRequest()
	req.Rating = floatPtr(0)

	album, err := svc.AddAlbum(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if album.Rating != 0 {
		t.Fatalf("explicit zero rating should be kept, got %v", album.Rating)
	}
}

func TestAddAlbumRequiresTitle(t *testing.T) {
	repo := &mockRepo{}
	svc := NewAlbumService(repo)

	req := validAddRequest()
	req.Title = "   "

	_, err := svc.AddAlbum(context.Background(), req)
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error for blank title, got %v", err)
	}
}

func TestAddAlbumRejectsUnparseableReleaseDate(t *testing.T) {
	repo := &mockRepo{}
	svc := NewAlbumService(repo)

	req := validAddRequest()
	req.ReleaseDate = "not-a-date"

	_, err := svc.AddAlbum(context.Background(), req)
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error for bad releaseDate, got %v", err)
	}
	if repo.InsertCalled {
		t.Fatalf("nothing should be persisted for a bad releaseDate")
	}
}

func TestSearchInvalidIDSkipsStorage(t *testing.T) {
	repo := &mockRepo{}
	svc := NewAlbumService(repo)

	_, err := svc.SearchAlbums(context.Background(), dto.SearchAlbumsQuery{ID: "not-an-object-id"})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if verr.Reason != "invalid ID format" {
		t.Fatalf("expected invalid ID format, got %q", verr.Reason)
	}
	if repo.SearchCalled {
		t.Fatalf("storage must not be queried for a malformed id")
	}
}

func TestSearchRejectsUnparseableDuration(t *testing.T) {
	repo := &mockRepo{}
	svc := NewAlbumService(repo)

	_, err := svc.SearchAlbums(context.Background(), dto.SearchAlbumsQuery{Duration: "forty-two"})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if repo.SearchCalled {
		t.Fatalf("storage must not be queried for an unparseable duration")
	}
}

func TestSearchCoercesParameters(t *testing.T) {
	repo := &mockRepo{SearchResp: []*domain.Album{{Title: "Abbey Road"}}}
	svc := NewAlbumService(repo)

	_, err := svc.SearchAlbums(context.Background(), dto.SearchAlbumsQuery{
		Title:       "abbey",
		Duration:    "42",
		ReleaseDate: "1969-09-26",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f := repo.LastFilter
	if f.Title == nil || *f.Title != "abbey" {
		t.Fatalf("expected title filter abbey, got %v", f.Title)
	}
	if f.Duration == nil || *f.Duration != 42 {
		t.Fatalf("expected duration filter 42, got %v", f.Duration)
	}
	want := time.Date(1969, 9, 26, 0, 0, 0, 0, time.UTC)
	if f.ReleaseDate == nil || !f.ReleaseDate.Equal(want) {
		t.Fatalf("expected releaseDate %v, got %v", want, f.ReleaseDate)
	}
	if f.Artist != nil || f.Genre != nil || f.Rating != nil || f.CountryOfOrigin != nil || f.ID != nil {
		t.Fatalf("unset parameters must not constrain the filter: %+v", f)
	}
}

func TestSearchEmptyQueryReturnsWholeCollection(t *testing.T) {
	repo := &mockRepo{SearchResp: []*domain.Album{{Title: "A"}, {Title: "B"}}}
	svc := NewAlbumService(repo)

	albums, err := svc.SearchAlbums(context.Background(), dto.SearchAlbumsQuery{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !repo.LastFilter.IsEmpty() {
		t.Fatalf("expected unconstrained filter, got %+v", repo.LastFilter)
	}
	if len(albums) != 2 {
		t.Fatalf("expected 2 albums, got %d", len(albums))
	}
}

func TestSearchNoMatchesReturnsNotFound(t *testing.T) {
	repo := &mockRepo{SearchResp: []*domain.Album{}}
	svc := NewAlbumService(repo)

	_, err := svc.SearchAlbums(context.Background(), dto.SearchAlbumsQuery{Artist: "nobody"})
	if !errors.Is(err, domain.ErrNoMatches) {
		t.Fatalf("expected ErrNoMatches, got %v", err)
	}
}

func TestUpdateNonexistentAlbum(t *testing.T) {
	repo := &mockRepo{UpdateErr: mongo.ErrNoDocuments}
	svc := NewAlbumService(repo)

	title := "New Title"
	_, err := svc.UpdateAlbum(context.Background(), primitive.NewObjectID().Hex(), &dto.UpdateAlbumRequest{Title: &title})
	if !errors.Is(err, domain.ErrAlbumNotFound) {
		t.Fatalf("expected ErrAlbumNotFound, got %v", err)
	}
}

func TestUpdateInvalidID(t *testing.T) {
	repo := &mockRepo{}
	svc := NewAlbumService(repo)

	title := "New Title"
	_, err := svc.UpdateAlbum(context.Background(), "bogus", &dto.UpdateAlbumRequest{Title: &title})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateRejectsOutOfRangeRating(t *testing.T) {
	repo := &mockRepo{}
	svc := NewAlbumService(repo)

	_, err := svc.UpdateAlbum(context.Background(), primitive.NewObjectID().Hex(), &dto.UpdateAlbumRequest{Rating: floatPtr(11)})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateWithoutFields(t *testing.T) {
	repo := &mockRepo{}
	svc := NewAlbumService(repo)

	_, err := svc.UpdateAlbum(context.Background(), primitive.NewObjectID().Hex(), &dto.UpdateAlbumRequest{})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error for empty update, got %v", err)
	}
}

func TestDeleteMissingAlbum(t *testing.T) {
	repo := &mockRepo{DeleteErr: mongo.ErrNoDocuments}
	svc := NewAlbumService(repo)

	err := svc.DeleteAlbum(context.Background(), primitive.NewObjectID().Hex())
	if !errors.Is(err, domain.ErrAlbumNotFound) {
		t.Fatalf("expected ErrAlbumNotFound, got %v", err)
	}
}

func TestDeleteInvalidID(t *testing.T) {
	repo := &mockRepo{}
	svc := NewAlbumService(repo)

	err := svc.DeleteAlbum(context.Background(), "bogus")
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestListAlbumsRejectsBadPagination(t *testing.T) {
	repo := &mockRepo{}
	svc := NewAlbumService(repo)

	_, err := svc.ListAlbums(context.Background(), dto.ListAlbumsQuery{Limit: "-3"})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if repo.FindAllCalled {
		t.Fatalf("storage must not be queried for bad pagination")
	}
}

func TestListAlbumsPassesPagination(t *testing.T) {
	repo := &mockRepo{FindAllResp: []*domain.Album{}}
	svc := NewAlbumService(repo)

	_, err := svc.ListAlbums(context.Background(), dto.ListAlbumsQuery{Limit: "10", Offset: "20"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.LastLimit != 10 || repo.LastOffset != 20 {
		t.Fatalf("expected limit 10 offset 20, got %d %d", repo.LastLimit, repo.LastOffset)
	}
}
