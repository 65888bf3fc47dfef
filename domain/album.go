package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Album is the single persisted entity: one music-album record.
// The ID is assigned by MongoDB on insert and never changes.
type Album struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title           string             `bson:"title" json:"title"`
	Artist          string             `bson:"artist" json:"artist"`
	Genre           string             `bson:"genre" json:"genre"`
	ReleaseDate     time.Time          `bson:"release_date" json:"releaseDate"`
	Duration        float64            `bson:"duration" json:"duration"`
	CountryOfOrigin string             `bson:"country_of_origin" json:"countryOfOrigin"`
	Rating          float64            `bson:"rating" json:"rating"`
}

// AlbumFilter is the typed, already-coerced form of the search parameters.
// A nil field means no constraint on that field; set fields are AND-combined.
type AlbumFilter struct {
	ID              *primitive.ObjectID
	Title           *string
	Artist          *string
	Genre           *string
	CountryOfOrigin *string
	ReleaseDate     *time.Time
	Duration        *float64
	Rating          *float64
}

func (f AlbumFilter) IsEmpty() bool {
	return f.ID == nil && f.Title == nil && f.Artist == nil && f.Genre == nil &&
		f.CountryOfOrigin == nil && f.ReleaseDate == nil && f.Duration == nil && f.Rating == nil
}
