package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultTimeout = 10 * time.Second

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect establishes a MongoDB client, verifies connectivity with a ping, and
// returns both the client and the selected database. A default timeout is
// applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, client.Database(cfg.Database), nil
}

// IDGenerator hands out the int64 document ids. Documents use snowflake ids
// instead of ObjectIDs so every store exposes the same numeric ids.
type IDGenerator struct {
	node *snowflake.Node
}

// NewIDGenerator returns a generator for the given node (0..1023). Each API
// instance sharing a database needs its own node number.
func NewIDGenerator(node int64) (*IDGenerator, error) {
	n, err := snowflake.NewNode(node)
	if err != nil {
		return nil, fmt.Errorf("snowflake node %d: %w", node, err)
	}
	return &IDGenerator{node: n}, nil
}

func (g *IDGenerator) Next() int64 {
	return g.node.Generate().Int64()
}

// Store groups the repositories sharing one database.
type Store struct {
	Users    *UserRepository
	Movies   *MovieRepository
	Reviews  *ReviewRepository
	Feedback *FeedbackRepository

	db *mongo.Database
}

func NewStore(db *mongo.Database, ids *IDGenerator) *Store {
	reviews := NewReviewRepository(db, ids)
	return &Store{
		Users:    NewUserRepository(db, ids),
		Movies:   NewMovieRepository(db, ids, reviews),
		Reviews:  reviews,
		Feedback: NewFeedbackRepository(db, ids),
		db:       db,
	}
}

// EnsureIndexes creates the indexes every repository relies on.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	if err := s.Users.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("user indexes: %w", err)
	}
	if err := s.Movies.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("movie indexes: %w", err)
	}
	if err := s.Reviews.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("review indexes: %w", err)
	}
	return nil
}

// Ping lets the store act as a readiness check.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Client().Ping(ctx, nil)
}
