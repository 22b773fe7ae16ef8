// Package store publishes relation graphs to MongoDB so that graphs from
// many hosts and runs can be queried together.
//
// Each graph of a run becomes one document keyed by "<runID>/<name>":
//
//	{
//	  "_id": "5f0c.../Depends",
//	  "run_id": "5f0c...",
//	  "host": "web1",
//	  "name": "Depends",
//	  "nodes": ["libc6", "bash"],
//	  "edges": [{"from": "libc6", "to": "bash"}],
//	  "created_at": ISODate(...)
//	}
package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/aptgraph/pkg/errors"
	"github.com/matzehuels/aptgraph/pkg/graph"
)

// Defaults for database and collection names.
const (
	DefaultDatabase   = "aptgraph"
	DefaultCollection = "graphs"
)

// MongoConfig configures a MongoSink.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
	RunID      string
	Host       string
}

// Document is the stored form of one graph.
type Document struct {
	ID        string         `bson:"_id"`
	RunID     string         `bson:"run_id"`
	Host      string         `bson:"host,omitempty"`
	Name      string         `bson:"name"`
	Nodes     []string       `bson:"nodes"`
	Edges     []DocumentEdge `bson:"edges"`
	CreatedAt time.Time      `bson:"created_at"`
}

// DocumentEdge is one stored edge.
type DocumentEdge struct {
	From string `bson:"from"`
	To   string `bson:"to"`
}

// NewDocument converts g into its stored form.
func NewDocument(runID, host string, g *graph.Graph, now time.Time) Document {
	doc := Document{
		ID:        runID + "/" + g.Name(),
		RunID:     runID,
		Host:      host,
		Name:      g.Name(),
		Nodes:     g.Nodes(),
		Edges:     make([]DocumentEdge, 0, g.EdgeCount()),
		CreatedAt: now.UTC(),
	}
	if doc.Nodes == nil {
		doc.Nodes = []string{}
	}
	for _, e := range g.Edges() {
		doc.Edges = append(doc.Edges, DocumentEdge{From: e.From, To: e.To})
	}
	return doc
}

// MongoSink is a [graph.Sink] that upserts graphs into a collection.
// Render is a no-op.
type MongoSink struct {
	client *mongo.Client
	coll   *mongo.Collection
	runID  string
	host   string
	now    func() time.Time
}

// NewMongoSink connects to MongoDB and verifies the connection.
func NewMongoSink(ctx context.Context, cfg MongoConfig) (*MongoSink, error) {
	if cfg.URI == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "mongo uri is empty")
	}
	if cfg.Database == "" {
		cfg.Database = DefaultDatabase
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultCollection
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "connect to mongo")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "ping mongo")
	}

	return &MongoSink{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
		runID:  cfg.RunID,
		host:   cfg.Host,
		now:    time.Now,
	}, nil
}

// Persist upserts the document for g.
func (s *MongoSink) Persist(ctx context.Context, _ string, g *graph.Graph) error {
	doc := NewDocument(s.runID, s.host, g, s.now())
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "store %s", doc.ID)
	}
	return nil
}

// Render does nothing; documents carry no images.
func (s *MongoSink) Render(context.Context, string, *graph.Graph) error { return nil }

// Close disconnects from MongoDB.
func (s *MongoSink) Close(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnect mongo: %w", err)
	}
	return nil
}

var _ graph.Sink = (*MongoSink)(nil)
