package movies

type Movie struct {
	ID          uint    `gorm:"primaryKey;autoIncrement"`
	Title       string  `gorm:"type:text;not null;uniqueIndex:idx_movies_title"`
	ReleaseYear *int    `gorm:"column:release_year"`
	Genre       string  `gorm:"type:text;not null"`
	MPAARating  *string `gorm:"column:mpaa_rating;type:text"`
	PosterImage *string `gorm:"column:poster_image;type:text;uniqueIndex:idx_movies_poster_image"`
}

func (Movie) TableName() string {
	return "movies"
}

// Patch holds the mutable fields of a Movie. A nil field means "leave as is".
type Patch struct {
	Title       *string
	ReleaseYear *int
	Genre       *string
	MPAARating  *string
	PosterImage *string
}

// Apply copies every set field of p onto m. ID is never touched.
func (p Patch) Apply(m *Movie) {
	if p.Title != nil {
		m.Title = *p.Title
	}
	if p.ReleaseYear != nil {
		year := *p.ReleaseYear
		m.ReleaseYear = &year
	}
	if p.Genre != nil {
		m.Genre = *p.Genre
	}
	if p.MPAARating != nil {
		rating := *p.MPAARating
		m.MPAARating = &rating
	}
	if p.PosterImage != nil {
		poster := *p.PosterImage
		m.PosterImage = &poster
	}
}

// Empty reports whether p would change nothing.
func (p Patch) Empty() bool {
	return p.Title == nil && p.ReleaseYear == nil && p.Genre == nil &&
		p.MPAARating == nil && p.PosterImage == nil
}
