package dto

// AddAlbumRequest carries a candidate album. Duration and Rating are pointers
// so that an explicit zero is distinguishable from an omitted field.
type AddAlbumRequest struct {
	Title           string   `json:"title"`
	Artist          string   `json:"artist"`
	Genre           string   `json:"genre"`
	ReleaseDate     string   `json:"releaseDate"`
	Duration        *float64 `json:"duration"`
	CountryOfOrigin string   `json:"countryOfOrigin"`
	Rating          *float64 `json:"rating"`
}

// UpdateAlbumRequest is a partial update; nil fields are left untouched.
type UpdateAlbumRequest struct {
	Title           *string  `json:"title"`
	Artist          *string  `json:"artist"`
	Genre           *string  `json:"genre"`
	ReleaseDate     *string  `json:"releaseDate"`
	Duration        *float64 `json:"duration"`
	CountryOfOrigin *string  `json:"countryOfOrigin"`
	Rating          *float64 `json:"rating"`
}

// SearchAlbumsQuery holds the raw, untyped query parameters of /api/search.
// The service coerces each into its typed form or rejects the request.
type SearchAlbumsQuery struct {
	ID              string `form:"id"`
	Title           string `form:"title"`
	Artist          string `form:"artist"`
	Genre           string `form:"genre"`
	ReleaseDate     string `form:"releaseDate"`
	Duration        string `form:"duration"`
	Rating          string `form:"rating"`
	CountryOfOrigin string `form:"countryOfOrigin"`
}

// ListAlbumsQuery holds optional pagination for /api/getall. Both fields
// default to an unpaginated full scan.
type ListAlbumsQuery struct {
	Limit  string `form:"limit"`
	Offset string `form:"offset"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
