package movies

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"movie-api/internal/domain/movies"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const deletedMessage = "The movie you selected for deletion is gone"

type Store interface {
	Create(ctx context.Context, m *movies.Movie) error
	List(ctx context.Context) ([]movies.Movie, error)
	Find(ctx context.Context, id uint) (*movies.Movie, error)
	Update(ctx context.Context, id uint, p movies.Patch) (*movies.Movie, error)
	Delete(ctx context.Context, id uint) error
}

type Handler struct {
	store Store
	log   zerolog.Logger
}

func NewHandler(store Store, log zerolog.Logger) *Handler {
	return &Handler{store: store, log: log.With().Str("handler", "movies").Logger()}
}

// ------------------------------
// POST /movie/add
// ------------------------------
func (h *Handler) Add(c *gin.Context) {
	var req CreateMovieRequest
	if !bindJSON(c, &req) {
		return
	}

	m := req.toMovie()
	if err := h.store.Create(c.Request.Context(), &m); err != nil {
		h.storeError(c, err, "Failed to create movie")
		return
	}

	c.JSON(http.StatusCreated, toMovieDTO(m))
}

// ------------------------------
// GET /movie/get
// ------------------------------
func (h *Handler) List(c *gin.Context) {
	list, err := h.store.List(c.Request.Context())
	if err != nil {
		h.storeError(c, err, "Failed to load movies")
		return
	}

	c.JSON(http.StatusOK, toMovieDTOs(list))
}

// ------------------------------
// GET /movie/get/:id  -> movie or null
// ------------------------------
func (h *Handler) Get(c *gin.Context) {
	id, ok := movieID(c)
	if !ok {
		return
	}

	m, err := h.store.Find(c.Request.Context(), id)
	if errors.Is(err, movies.ErrNotFound) {
		c.JSON(http.StatusOK, nil)
		return
	}
	if err != nil {
		h.storeError(c, err, "Failed to load movie")
		return
	}

	c.JSON(http.StatusOK, toMovieDTO(*m))
}

// ------------------------------
// DELETE /movie/delete/:id
// ------------------------------
func (h *Handler) Delete(c *gin.Context) {
	id, ok := movieID(c)
	if !ok {
		return
	}

	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		h.storeError(c, err, "Failed to delete movie")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": deletedMessage})
}

// ------------------------------
// PUT /movie/update/:id  (partial update)
// ------------------------------
func (h *Handler) Update(c *gin.Context) {
	id, ok := movieID(c)
	if !ok {
		return
	}

	var req UpdateMovieRequest
	if !bindJSON(c, &req) {
		return
	}

	m, err := h.store.Update(c.Request.Context(), id, req.toPatch())
	if err != nil {
		h.storeError(c, err, "Failed to update movie")
		return
	}

	c.JSON(http.StatusOK, toMovieDTO(*m))
}

// RequireMovieID aborts with 400 when the :id path parameter is not a valid id.
func RequireMovieID() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := movieID(c); !ok {
			c.Abort()
			return
		}
		c.Next()
	}
}

func movieID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, strconv.IntSize)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid movie id"})
		return 0, false
	}
	return uint(id), true
}

func bindJSON(c *gin.Context, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}

	if fields := bindingFieldErrors(err); len(fields) > 0 {
		c.JSON(http.StatusBadRequest, ValidationErrorResponse{Error: "Validation failed", Fields: fields})
		return false
	}

	c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed JSON"})
	return false
}

func (h *Handler) storeError(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, movies.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Movie not found"})
	case errors.Is(err, movies.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "A movie with this title or poster image already exists"})
	default:
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg(msg)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	}
}
