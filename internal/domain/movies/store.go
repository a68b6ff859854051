package movies

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when no movie has the requested id.
	ErrNotFound = errors.New("movie not found")

	// ErrConflict is returned when a title or poster image is already taken.
	ErrConflict = errors.New("movie already exists")
)

// Store persists movies. The *gorm.DB must be opened with TranslateError
// so unique violations come back as gorm.ErrDuplicatedKey.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, m *Movie) error {
	m.ID = 0
	return translate(s.db.WithContext(ctx).Create(m).Error)
}

// List returns every movie in insertion order.
func (s *Store) List(ctx context.Context) ([]Movie, error) {
	var out []Movie
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) Find(ctx context.Context, id uint) (*Movie, error) {
	var m Movie
	if err := s.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, translate(err)
	}
	return &m, nil
}

// Update applies p to the movie with the given id and returns the saved row.
func (s *Store) Update(ctx context.Context, id uint, p Patch) (*Movie, error) {
	var m Movie
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&m, id).Error; err != nil {
			return err
		}
		if p.Empty() {
			return nil
		}
		p.Apply(&m)
		return tx.Save(&m).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return &m, nil
}

func (s *Store) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&Movie{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Ping checks that the underlying connection pool is reachable.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrConflict
	default:
		return err
	}
}
