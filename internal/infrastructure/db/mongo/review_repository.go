package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Mukta-28/Movie-Review-Project/internal/core/domain"
)

const (
	collectionReviews  = "reviews"
	collectionFeedback = "feedback"
)

type ReviewRepository struct {
	col *mongo.Collection
	ids *IDGenerator
}

func NewReviewRepository(db *mongo.Database, ids *IDGenerator) *ReviewRepository {
	return &ReviewRepository{col: db.Collection(collectionReviews), ids: ids}
}

type reviewDoc struct {
	ID        int64     `bson:"_id"`
	MovieID   int64     `bson:"movie_id"`
	UserID    int64     `bson:"user_id"`
	UserName  string    `bson:"user_name"`
	Rating    float64   `bson:"rating"`
	Comment   string    `bson:"comment"`
	CreatedAt time.Time `bson:"created_at"`
}

func (d reviewDoc) toDomain() *domain.Review {
	return &domain.Review{
		ID:        d.ID,
		MovieID:   d.MovieID,
		UserID:    d.UserID,
		UserName:  d.UserName,
		Rating:    d.Rating,
		Comment:   d.Comment,
		CreatedAt: d.CreatedAt.UTC(),
	}
}

func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) (*domain.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := reviewDoc{
		ID:        r.ids.Next(),
		MovieID:   rv.MovieID,
		UserID:    rv.UserID,
		UserName:  rv.UserName,
		Rating:    rv.Rating,
		Comment:   rv.Comment,
		CreatedAt: rv.CreatedAt,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert review: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ReviewRepository) FindByID(ctx context.Context, id int64) (*domain.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc reviewDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrReviewNotFound
		}
		return nil, fmt.Errorf("find review: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ReviewRepository) List(ctx context.Context) ([]*domain.Review, error) {
	return r.find(ctx, bson.M{})
}

func (r *ReviewRepository) FindByMovieID(ctx context.Context, movieID int64) ([]*domain.Review, error) {
	return r.find(ctx, bson.M{"movie_id": movieID})
}

func (r *ReviewRepository) FindByUserID(ctx context.Context, userID int64) ([]*domain.Review, error) {
	return r.find(ctx, bson.M{"user_id": userID})
}

func (r *ReviewRepository) DeleteByMovieID(ctx context.Context, movieID int64) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteMany(ctx, bson.M{"movie_id": movieID})
	if err != nil {
		return 0, fmt.Errorf("delete movie reviews: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrReviewNotFound
	}
	return nil
}

// CountByRating groups the reviews of a movie by rating, highest first.
func (r *ReviewRepository) CountByRating(ctx context.Context, movieID int64) ([]domain.RatingCount, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"movie_id": movieID}}},
		{{Key: "$group", Value: bson.M{"_id": "$rating", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: -1}}}},
	}
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate ratings: %w", err)
	}

	var rows []struct {
		Rating float64 `bson:"_id"`
		Count  int64   `bson:"count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode ratings: %w", err)
	}

	counts := make([]domain.RatingCount, 0, len(rows))
	for _, row := range rows {
		counts = append(counts, domain.RatingCount{Rating: row.Rating, Count: row.Count})
	}
	return counts, nil
}

func (r *ReviewRepository) find(ctx context.Context, filter bson.M) ([]*domain.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find reviews: %w", err)
	}
	var docs []reviewDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode reviews: %w", err)
	}

	reviews := make([]*domain.Review, 0, len(docs))
	for _, d := range docs {
		reviews = append(reviews, d.toDomain())
	}
	return reviews, nil
}

func (r *ReviewRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "movie_id", Value: 1}, {Key: "rating", Value: -1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

type FeedbackRepository struct {
	col *mongo.Collection
	ids *IDGenerator
}

func NewFeedbackRepository(db *mongo.Database, ids *IDGenerator) *FeedbackRepository {
	return &FeedbackRepository{col: db.Collection(collectionFeedback), ids: ids}
}

func (r *FeedbackRepository) Create(ctx context.Context, f *domain.Feedback) (*domain.Feedback, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	stored := *f
	stored.ID = r.ids.Next()
	_, err := r.col.InsertOne(ctx, bson.M{
		"_id":        stored.ID,
		"name":       stored.Name,
		"email":      stored.Email,
		"message":    stored.Message,
		"created_at": stored.CreatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("insert feedback: %w", err)
	}
	return &stored, nil
}
