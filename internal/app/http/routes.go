package routes

import (
	"context"
	"net/http"
	"time"

	moviesapi "movie-api/internal/api/movies"
	"movie-api/internal/app/http/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type Deps struct {
	Movies      *moviesapi.Handler
	DB          Pinger
	Log         zerolog.Logger
	CORSOrigins []string
}

// NewRouter builds the gin engine with global middleware and every route.
func NewRouter(d Deps) *gin.Engine {
	moviesapi.UseJSONFieldNames()

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(d.Log))
	r.Use(gin.Recovery())
	r.Use(cors.New(corsConfig(d.CORSOrigins)))

	RegisterRoutes(r, d)
	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}

	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	return cfg
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.GET("/health", health(d.DB))

	requireJSON := middleware.RequireJSON()
	rejectMarkup := middleware.RejectMarkup()

	// the id is checked before the body on update
	movie := r.Group("/movie")
	movie.POST("/add", requireJSON, rejectMarkup, d.Movies.Add)
	movie.GET("/get", d.Movies.List)
	movie.GET("/get/:id", d.Movies.Get)
	movie.DELETE("/delete/:id", d.Movies.Delete)
	movie.PUT("/update/:id", moviesapi.RequireMovieID(), requireJSON, rejectMarkup, d.Movies.Update)
}

func health(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
