package store

import (
	"sort"
	"strings"

	"github.com/L-1ngg/movie-system/models"
	"gorm.io/gorm"
)

// Sort keys accepted by SearchMovies. Anything else falls back to
// rating descending.
const (
	SortReleaseYearDesc = "release_year_desc"
	SortRatingDesc      = "rating_desc"
)

// MovieFilter holds the optional search criteria for SearchMovies.
// All filters are combined with AND.
type MovieFilter struct {
	Search    string
	Genre     string
	Year      int
	MinRating *float64
	SortBy    string
	Skip      int
	Limit     int
}

// MovieCreate is the admin payload for a new movie. ActorIDs and
// DirectorIDs are pointers so that an omitted list can be told apart
// from an explicit empty one.
type MovieCreate struct {
	Title       string  `json:"title" binding:"required"`
	ReleaseYear int     `json:"release_year"`
	Duration    int     `json:"duration"`
	Genre       string  `json:"genre"`
	Language    string  `json:"language"`
	Country     string  `json:"country"`
	Synopsis    string  `json:"synopsis"`
	ActorIDs    *[]uint `json:"actor_ids"`
	DirectorIDs *[]uint `json:"director_ids"`
}

// MovieUpdate is a partial update: nil fields are left untouched.
type MovieUpdate struct {
	Title       *string `json:"title"`
	ReleaseYear *int    `json:"release_year"`
	Duration    *int    `json:"duration"`
	Genre       *string `json:"genre"`
	Language    *string `json:"language"`
	Country     *string `json:"country"`
	Synopsis    *string `json:"synopsis"`
	ActorIDs    *[]uint `json:"actor_ids"`
	DirectorIDs *[]uint `json:"director_ids"`
}

// SearchMovies returns the movies matching every supplied filter,
// sorted and paginated. The search term matches the title or the name
// of any associated actor or director; the EXISTS subqueries keep each
// movie in the result at most once no matter how many of its people
// match. Ordering always ends with "id ASC" so pagination is stable.
func SearchMovies(db *gorm.DB, f MovieFilter) ([]models.Movie, error) {
	query := db.Model(&models.Movie{})

	if f.Search != "" {
		pattern := "%" + strings.ToLower(f.Search) + "%"
		query = query.Where(`LOWER(movies.title) LIKE ?
			OR EXISTS (
				SELECT 1 FROM movie_actors
				JOIN actors ON actors.id = movie_actors.actor_id
				WHERE movie_actors.movie_id = movies.id AND LOWER(actors.name) LIKE ?)
			OR EXISTS (
				SELECT 1 FROM movie_directors
				JOIN directors ON directors.id = movie_directors.director_id
				WHERE movie_directors.movie_id = movies.id AND LOWER(directors.name) LIKE ?)`,
			pattern, pattern, pattern)
	}

	if f.Genre != "" {
		query = query.Where("LOWER(movies.genre) LIKE ?", "%"+strings.ToLower(f.Genre)+"%")
	}

	if f.Year != 0 {
		query = query.Where("movies.release_year = ?", f.Year)
	}

	if f.MinRating != nil {
		query = query.Where("movies.average_rating >= ?", *f.MinRating)
	}

	switch f.SortBy {
	case SortReleaseYearDesc:
		query = query.Order("movies.release_year DESC, movies.id ASC")
	default:
		query = query.Order("movies.average_rating DESC, movies.id ASC")
	}

	if f.Skip > 0 {
		query = query.Offset(f.Skip)
	}
	query = query.Limit(f.Limit)

	movies := []models.Movie{}
	err := query.Preload("Actors").Preload("Directors").Find(&movies).Error
	return movies, err
}

// GetMovie returns one movie with its actors and directors, or
// gorm.ErrRecordNotFound.
func GetMovie(db *gorm.DB, id uint) (*models.Movie, error) {
	var movie models.Movie
	if err := db.Preload("Actors").Preload("Directors").First(&movie, id).Error; err != nil {
		return nil, err
	}
	return &movie, nil
}

// FindActorsByIDs resolves an identifier list to the actors that
// actually exist. Unknown IDs are silently dropped.
func FindActorsByIDs(db *gorm.DB, ids []uint) ([]models.Actor, error) {
	actors := []models.Actor{}
	if len(ids) == 0 {
		return actors, nil
	}
	err := db.Where("id IN ?", ids).Find(&actors).Error
	return actors, err
}

// FindDirectorsByIDs resolves an identifier list to the directors that
// actually exist. Unknown IDs are silently dropped.
func FindDirectorsByIDs(db *gorm.DB, ids []uint) ([]models.Director, error) {
	directors := []models.Director{}
	if len(ids) == 0 {
		return directors, nil
	}
	err := db.Where("id IN ?", ids).Find(&directors).Error
	return directors, err
}

// reconcileAssociations replaces the movie's actor and director sets so
// they match the desired ID lists exactly. A nil list leaves the
// corresponding set untouched; an empty one clears it.
func reconcileAssociations(tx *gorm.DB, movie *models.Movie, actorIDs, directorIDs *[]uint) error {
	if actorIDs != nil {
		actors, err := FindActorsByIDs(tx, *actorIDs)
		if err != nil {
			return err
		}
		if err := tx.Model(movie).Association("Actors").Replace(&actors); err != nil {
			return err
		}
	}
	if directorIDs != nil {
		directors, err := FindDirectorsByIDs(tx, *directorIDs)
		if err != nil {
			return err
		}
		if err := tx.Model(movie).Association("Directors").Replace(&directors); err != nil {
			return err
		}
	}
	return nil
}

// CreateMovie inserts the movie and installs its association sets in a
// single transaction.
func CreateMovie(db *gorm.DB, in MovieCreate) (*models.Movie, error) {
	movie := models.Movie{
		Title:       in.Title,
		ReleaseYear: in.ReleaseYear,
		Duration:    in.Duration,
		Genre:       in.Genre,
		Language:    in.Language,
		Country:     in.Country,
		Synopsis:    in.Synopsis,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&movie).Error; err != nil {
			return err
		}
		return reconcileAssociations(tx, &movie, in.ActorIDs, in.DirectorIDs)
	})
	if err != nil {
		return nil, err
	}
	return GetMovie(db, movie.ID)
}

// UpdateMovie applies a partial update and, when ID lists are present,
// replaces the association sets. Everything runs in one transaction so
// no partial replacement is ever visible.
func UpdateMovie(db *gorm.DB, id uint, in MovieUpdate) (*models.Movie, error) {
	var movie models.Movie

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&movie, id).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{}
		if in.Title != nil {
			updates["title"] = *in.Title
		}
		if in.ReleaseYear != nil {
			updates["release_year"] = *in.ReleaseYear
		}
		if in.Duration != nil {
			updates["duration"] = *in.Duration
		}
		if in.Genre != nil {
			updates["genre"] = *in.Genre
		}
		if in.Language != nil {
			updates["language"] = *in.Language
		}
		if in.Country != nil {
			updates["country"] = *in.Country
		}
		if in.Synopsis != nil {
			updates["synopsis"] = *in.Synopsis
		}
		if len(updates) > 0 {
			if err := tx.Model(&movie).Updates(updates).Error; err != nil {
				return err
			}
		}

		return reconcileAssociations(tx, &movie, in.ActorIDs, in.DirectorIDs)
	})
	if err != nil {
		return nil, err
	}
	return GetMovie(db, id)
}

// UpdateMovieCover stores the new cover URL and returns the refreshed
// movie.
func UpdateMovieCover(db *gorm.DB, id uint, coverURL string) (*models.Movie, error) {
	var movie models.Movie
	if err := db.First(&movie, id).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&movie).Update("cover_url", coverURL).Error; err != nil {
		return nil, err
	}
	return GetMovie(db, id)
}

// DeleteMovie removes the movie together with its join rows, comments
// and ratings, and returns the deleted record. The dependent rows are
// removed inside the same transaction so the cascade holds regardless
// of what the underlying engine enforces.
func DeleteMovie(db *gorm.DB, id uint) (*models.Movie, error) {
	movie, err := GetMovie(db, id)
	if err != nil {
		return nil, err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(movie).Association("Actors").Clear(); err != nil {
			return err
		}
		if err := tx.Model(movie).Association("Directors").Clear(); err != nil {
			return err
		}
		if err := tx.Where("movie_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("movie_id = ?", id).Delete(&models.Rating{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Movie{}, id).Error
	})
	if err != nil {
		return nil, err
	}
	return movie, nil
}

// DistinctGenres splits every movie's genre field on "/" and returns
// the trimmed, de-duplicated tokens in lexicographic order. Computed
// fresh on every call.
func DistinctGenres(db *gorm.DB) ([]string, error) {
	var fields []string
	err := db.Model(&models.Movie{}).
		Where("genre IS NOT NULL AND genre <> ''").
		Pluck("genre", &fields).Error
	if err != nil {
		return nil, err
	}

	seen := map[string]struct{}{}
	genres := []string{}
	for _, field := range fields {
		for _, token := range strings.Split(field, "/") {
			token = strings.TrimSpace(token)
			if token == "" {
				continue
			}
			if _, ok := seen[token]; ok {
				continue
			}
			seen[token] = struct{}{}
			genres = append(genres, token)
		}
	}
	sort.Strings(genres)
	return genres, nil
}
