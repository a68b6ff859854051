package movies

import "movie-api/internal/domain/movies"

// ---------- requests

type CreateMovieRequest struct {
	Title       string  `json:"title" binding:"required"`
	ReleaseYear *int    `json:"release_year"`
	Genre       string  `json:"genre" binding:"required"`
	MPAARating  *string `json:"mpaa_rating"`
	PosterImage *string `json:"poster_image"`
}

func (r CreateMovieRequest) toMovie() movies.Movie {
	return movies.Movie{
		Title:       r.Title,
		ReleaseYear: r.ReleaseYear,
		Genre:       r.Genre,
		MPAARating:  r.MPAARating,
		PosterImage: r.PosterImage,
	}
}

// UpdateMovieRequest fields left out of the body (or sent as null) are not changed.
type UpdateMovieRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1"`
	ReleaseYear *int    `json:"release_year"`
	Genre       *string `json:"genre" binding:"omitempty,min=1"`
	MPAARating  *string `json:"mpaa_rating"`
	PosterImage *string `json:"poster_image"`
}

func (r UpdateMovieRequest) toPatch() movies.Patch {
	return movies.Patch{
		Title:       r.Title,
		ReleaseYear: r.ReleaseYear,
		Genre:       r.Genre,
		MPAARating:  r.MPAARating,
		PosterImage: r.PosterImage,
	}
}

// ---------- errors

type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

type ValidationErrorResponse struct {
	Error  string       `json:"error"`
	Fields []FieldError `json:"fields"`
}
