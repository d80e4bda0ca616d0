package routes

import (
	"github.com/L-1ngg/movie-system/config"
	"github.com/L-1ngg/movie-system/controllers"
	"github.com/L-1ngg/movie-system/middlewares"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB, cfg *config.Config) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	// Uploaded covers, photos and avatars
	r.Static("/static", cfg.UploadDir)

	admin := middlewares.AdminMiddleware()
	auth := middlewares.AuthMiddleware()

	movies := r.Group("/movies")
	{
		movies.GET("", controllers.ListMovies(db))
		movies.GET("/genres/", controllers.ListGenres(db))
		movies.GET("/:id", controllers.GetMovie(db))
		movies.GET("/:id/comments", controllers.ListComments(db))

		movies.POST("", admin, controllers.CreateMovie(db))
		movies.PUT("/:id", admin, controllers.UpdateMovie(db))
		movies.DELETE("/:id", admin, controllers.DeleteMovie(db))
		movies.POST("/:id/cover", admin, controllers.UploadMovieCover(db, cfg.UploadDir))

		movies.POST("/:id/comments", auth, controllers.CreateComment(db))
		movies.POST("/:id/ratings", auth, controllers.RateMovie(db))
		movies.DELETE("/:id/ratings", auth, controllers.DeleteRating(db))
	}

	actors := r.Group("/actors")
	{
		actors.GET("", controllers.ListActors(db))
		actors.GET("/:id", controllers.GetActor(db))
		actors.POST("", admin, controllers.CreateActor(db))
		actors.PUT("/:id", admin, controllers.UpdateActor(db))
		actors.DELETE("/:id", admin, controllers.DeleteActor(db))
		actors.POST("/:id/photo", admin, controllers.UploadActorPhoto(db, cfg.UploadDir))
	}

	directors := r.Group("/directors")
	{
		directors.GET("", controllers.ListDirectors(db))
		directors.GET("/:id", controllers.GetDirector(db))
		directors.POST("", admin, controllers.CreateDirector(db))
		directors.PUT("/:id", admin, controllers.UpdateDirector(db))
		directors.DELETE("/:id", admin, controllers.DeleteDirector(db))
		directors.POST("/:id/photo", admin, controllers.UploadDirectorPhoto(db, cfg.UploadDir))
	}

	users := r.Group("/users")
	{
		users.POST("/register", controllers.Register(db))
		users.POST("/login/token", controllers.LoginToken(db))

		me := users.Group("/me", auth)
		{
			me.GET("", controllers.Me(db))
			me.PUT("", controllers.UpdateMe(db))
			me.PUT("/password", controllers.UpdatePassword(db))
			me.POST("/avatar", controllers.UploadAvatar(db, cfg.UploadDir))
		}

		users.PUT("/:id", admin, controllers.AdminUpdateUser(db))
		users.DELETE("/:id", admin, controllers.AdminDeleteUser(db))
	}

	comments := r.Group("/comments", auth)
	{
		comments.PUT("/:id", controllers.UpdateComment(db))
		comments.DELETE("/:id", controllers.DeleteComment(db))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{"error": "page not found"})
	})

	return r
}
