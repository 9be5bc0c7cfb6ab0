// Package docstore reads engagement targets kept in the MongoDB document
// store. It never writes to the document store.
package docstore

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/heartmarshall/eventhub-backend/internal/config"
	"github.com/heartmarshall/eventhub-backend/internal/domain"
)

const excerptLength = 200

// Client owns the MongoDB connection.
type Client struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect opens a MongoDB connection and verifies it with a ping.
func Connect(ctx context.Context, cfg config.DocStoreConfig) (*Client, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("docstore: connect: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("docstore: ping: %w", err)
	}

	return &Client{client: client, db: client.Database(cfg.Database)}, nil
}

// Collection returns a read-only view over the named collection.
func (c *Client) Collection(name string) *Collection {
	return &Collection{coll: c.db.Collection(name)}
}

// Ping checks the connection.
func (c *Client) Ping(ctx context.Context) error {
	return c.client.Ping(ctx, readpref.Primary())
}

// Disconnect closes the connection.
func (c *Client) Disconnect(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

// Collection answers existence and summary lookups for one collection.
// Ids are matched as ObjectID hex when they parse as one and as plain strings
// otherwise.
type Collection struct {
	coll *mongo.Collection
}

// Exists reports whether a document with id exists.
func (c *Collection) Exists(ctx context.Context, id string) (bool, error) {
	n, err := c.coll.CountDocuments(ctx, idFilter(id), options.Count().SetLimit(1))
	if err != nil {
		return false, classify(c.coll.Name(), id, err)
	}
	return n > 0, nil
}

// GetSummary returns display metadata of a document. A missing document
// fails with domain.ErrTargetNotFound.
func (c *Collection) GetSummary(ctx context.Context, id string) (*domain.DocumentSummary, error) {
	var doc summaryDoc
	err := c.coll.FindOne(ctx, idFilter(id),
		options.FindOne().SetProjection(bson.M{
			"title": 1, "name": 1, "author_id": 1, "content": 1, "description": 1, "created_at": 1,
		}),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%s %s: %w", c.coll.Name(), id, domain.ErrTargetNotFound)
	}
	if err != nil {
		return nil, classify(c.coll.Name(), id, err)
	}

	return doc.toDomain(id), nil
}

func idFilter(id string) bson.M {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return bson.M{"_id": bson.M{"$in": bson.A{oid, id}}}
	}
	return bson.M{"_id": id}
}

// classify maps driver failures onto the domain's external dependency errors.
func classify(collection, id string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || mongo.IsTimeout(err) {
		return fmt.Errorf("%s %s: %w: %w", collection, id, domain.ErrExternalCheckTimeout, err)
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%s %s: %w: %w", collection, id, domain.ErrExternalDependency, err)
}

type summaryDoc struct {
	Title       string    `bson:"title"`
	Name        string    `bson:"name"`
	AuthorID    any       `bson:"author_id"`
	Content     string    `bson:"content"`
	Description string    `bson:"description"`
	CreatedAt   time.Time `bson:"created_at"`
}

func (d summaryDoc) toDomain(id string) *domain.DocumentSummary {
	title := d.Title
	if title == "" {
		title = d.Name
	}
	body := d.Content
	if body == "" {
		body = d.Description
	}

	return &domain.DocumentSummary{
		ID:        id,
		Title:     title,
		AuthorID:  formatID(d.AuthorID),
		Excerpt:   excerpt(body),
		CreatedAt: d.CreatedAt,
	}
}

func formatID(v any) string {
	switch id := v.(type) {
	case nil:
		return ""
	case primitive.ObjectID:
		return id.Hex()
	case string:
		return id
	default:
		return fmt.Sprint(id)
	}
}

func excerpt(s string) string {
	if utf8.RuneCountInString(s) <= excerptLength {
		return s
	}
	runes := []rune(s)
	return string(runes[:excerptLength]) + "…"
}
