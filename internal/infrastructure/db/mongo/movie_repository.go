package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Mukta-28/Movie-Review-Project/internal/core/domain"
)

const collectionMovies = "movies"

// MovieRepository keeps a lower-cased copy of the title under a unique index
// to enforce case-insensitive title uniqueness.
type MovieRepository struct {
	col     *mongo.Collection
	ids     *IDGenerator
	reviews *ReviewRepository
}

func NewMovieRepository(db *mongo.Database, ids *IDGenerator, reviews *ReviewRepository) *MovieRepository {
	return &MovieRepository{col: db.Collection(collectionMovies), ids: ids, reviews: reviews}
}

type movieDoc struct {
	ID          int64     `bson:"_id"`
	Title       string    `bson:"title"`
	TitleKey    string    `bson:"title_key"`
	Description string    `bson:"description"`
	Genre       string    `bson:"genre"`
	ReleaseDate string    `bson:"release_date,omitempty"`
	PosterURL   string    `bson:"poster_url"`
	CreatedAt   time.Time `bson:"created_at"`
}

func newMovieDoc(m *domain.Movie) movieDoc {
	return movieDoc{
		ID:          m.ID,
		Title:       m.Title,
		TitleKey:    strings.ToLower(m.Title),
		Description: m.Description,
		Genre:       m.Genre,
		ReleaseDate: m.ReleaseDate,
		PosterURL:   m.PosterURL,
		CreatedAt:   m.CreatedAt,
	}
}

func (d movieDoc) toDomain() *domain.Movie {
	return &domain.Movie{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Genre:       d.Genre,
		ReleaseDate: d.ReleaseDate,
		PosterURL:   d.PosterURL,
		CreatedAt:   d.CreatedAt.UTC(),
	}
}

func (r *MovieRepository) Create(ctx context.Context, m *domain.Movie) (*domain.Movie, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := newMovieDoc(m)
	doc.ID = r.ids.Next()
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrMovieExists
		}
		return nil, fmt.Errorf("insert movie: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *MovieRepository) FindByID(ctx context.Context, id int64) (*domain.Movie, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MovieRepository) FindByTitle(ctx context.Context, title string) (*domain.Movie, error) {
	return r.findOne(ctx, bson.M{"title_key": strings.ToLower(title)})
}

func (r *MovieRepository) List(ctx context.Context) ([]*domain.Movie, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	var docs []movieDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode movies: %w", err)
	}

	movies := make([]*domain.Movie, 0, len(docs))
	for _, d := range docs {
		movies = append(movies, d.toDomain())
	}
	return movies, nil
}

func (r *MovieRepository) Update(ctx context.Context, m *domain.Movie) (*domain.Movie, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := newMovieDoc(m)
	res, err := r.col.UpdateByID(ctx, m.ID, bson.M{"$set": bson.M{
		"title":        doc.Title,
		"title_key":    doc.TitleKey,
		"description":  doc.Description,
		"genre":        doc.Genre,
		"release_date": doc.ReleaseDate,
		"poster_url":   doc.PosterURL,
	}})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrMovieExists
		}
		return nil, fmt.Errorf("update movie: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrMovieNotFound
	}
	return doc.toDomain(), nil
}

// Delete refuses to remove a movie that still has reviews. MongoDB has no
// foreign keys, so the reference check is done here.
func (r *MovieRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.reviews.col.CountDocuments(ctx, bson.M{"movie_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return fmt.Errorf("count movie reviews: %w", err)
	}
	if n > 0 {
		return domain.ErrMovieInUse
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete movie: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrMovieNotFound
	}
	return nil
}

func (r *MovieRepository) findOne(ctx context.Context, filter bson.M) (*domain.Movie, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc movieDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMovieNotFound
		}
		return nil, fmt.Errorf("find movie: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *MovieRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "title_key", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
