package movies

import "movie-api/internal/domain/movies"

// MovieDTO is the wire form of a movie. Field order is part of the contract.
type MovieDTO struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	ReleaseYear *int    `json:"release_year"`
	Genre       string  `json:"genre"`
	MPAARating  *string `json:"mpaa_rating"`
	PosterImage *string `json:"poster_image"`
}

func toMovieDTO(m movies.Movie) MovieDTO {
	return MovieDTO{
		ID:          m.ID,
		Title:       m.Title,
		ReleaseYear: m.ReleaseYear,
		Genre:       m.Genre,
		MPAARating:  m.MPAARating,
		PosterImage: m.PosterImage,
	}
}

func toMovieDTOs(list []movies.Movie) []MovieDTO {
	out := make([]MovieDTO, 0, len(list))
	for _, m := range list {
		out = append(out, toMovieDTO(m))
	}
	return out
}
