package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/custodia-labs/libris-cli/internal/core/domain"
	"github.com/custodia-labs/libris-cli/internal/core/ports/driven"
	"github.com/custodia-labs/libris-cli/internal/logger"
)

// Verify interface compliance.
var _ driven.BookStore = (*Store)(nil)

// bookDocument is the stored shape of a book.
type bookDocument struct {
	ID     primitive.ObjectID `bson:"_id,omitempty"`
	Title  string             `bson:"title"`
	Author string             `bson:"author"`
	Genre  string             `bson:"genre"`
	Stock  int                `bson:"stock"`
}

func fromBook(b domain.Book) bookDocument {
	return bookDocument{
		Title:  b.Title,
		Author: b.Author,
		Genre:  b.Genre,
		Stock:  b.Stock,
	}
}

func (d bookDocument) toBook() domain.Book {
	return domain.Book{
		ID:     d.ID.Hex(),
		Title:  d.Title,
		Author: d.Author,
		Genre:  d.Genre,
		Stock:  d.Stock,
	}
}

// Store is a MongoDB-backed BookStore.
type Store struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewStore connects to the server described by settings and verifies the
// connection with a ping bounded by settings.ConnectTimeout.
func NewStore(ctx context.Context, settings domain.StoreSettings) (*Store, error) {
	opts := options.Client().ApplyURI(settings.URI)
	if settings.ConnectTimeout > 0 {
		opts.SetConnectTimeout(settings.ConnectTimeout).
			SetServerSelectionTimeout(settings.ConnectTimeout)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", settings.URI, err)
	}

	pingCtx := ctx
	if settings.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, settings.ConnectTimeout)
		defer cancel()
	}
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("pinging %s: %w", settings.URI, err)
	}

	logger.Debug("connected to mongo %s (%s.%s)", settings.URI, settings.Database, settings.Collection)
	coll := client.Database(settings.Database).Collection(settings.Collection)
	return newStore(client, coll), nil
}

func newStore(client *mongo.Client, coll *mongo.Collection) *Store {
	return &Store{client: client, coll: coll}
}

// Insert stores a new book document and returns its ObjectID hex.
func (s *Store) Insert(ctx context.Context, book domain.Book) (string, error) {
	res, err := s.coll.InsertOne(ctx, fromBook(book))
	if err != nil {
		return "", fmt.Errorf("inserting book: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex(), nil
	}
	return fmt.Sprint(res.InsertedID), nil
}

// Find returns books whose field exactly equals value.
func (s *Store) Find(ctx context.Context, field domain.BookField, value string) ([]domain.Book, error) {
	if !field.IsValid() {
		return []domain.Book{}, nil
	}
	return s.query(ctx, bson.D{{Key: field.String(), Value: value}}, nil)
}

// SetStock sets stock on the first document with the given title. It reports
// whether a document matched, even when the stored value was already equal.
func (s *Store) SetStock(ctx context.Context, title string, stock int) (bool, error) {
	res, err := s.coll.UpdateOne(ctx,
		bson.D{{Key: "title", Value: title}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "stock", Value: stock}}}},
	)
	if err != nil {
		return false, fmt.Errorf("updating stock: %w", err)
	}
	return res.MatchedCount > 0, nil
}

// DeleteByTitle removes the first document with the given title.
func (s *Store) DeleteByTitle(ctx context.Context, title string) (bool, error) {
	res, err := s.coll.DeleteOne(ctx, bson.D{{Key: "title", Value: title}})
	if err != nil {
		return false, fmt.Errorf("deleting book: %w", err)
	}
	return res.DeletedCount > 0, nil
}

// List returns every book sorted by title ascending.
func (s *Store) List(ctx context.Context) ([]domain.Book, error) {
	return s.query(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "title", Value: 1}}))
}

// Ping checks the server is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if s.client == nil {
		return domain.ErrStoreUnavailable
	}
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	if err := s.client.Disconnect(ctx); err != nil && !errors.Is(err, mongo.ErrClientDisconnected) {
		return fmt.Errorf("disconnecting: %w", err)
	}
	return nil
}

func (s *Store) query(ctx context.Context, filter bson.D, opts *options.FindOptions) ([]domain.Book, error) {
	var findOpts []*options.FindOptions
	if opts != nil {
		findOpts = append(findOpts, opts)
	}

	cursor, err := s.coll.Find(ctx, filter, findOpts...)
	if err != nil {
		return nil, fmt.Errorf("querying books: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []bookDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decoding books: %w", err)
	}

	books := make([]domain.Book, 0, len(docs))
	for _, d := range docs {
		books = append(books, d.toBook())
	}
	return books, nil
}
