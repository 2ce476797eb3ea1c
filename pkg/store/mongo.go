package store

import (
	"context"
	stderrors "errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/matzehuels/stackchart/pkg/config"
	"github.com/matzehuels/stackchart/pkg/errors"
)

// CollectionName is the collection holding chart records.
const CollectionName = "charts"

// Collection is the subset of *mongo.Collection used by [MongoStore].
type Collection interface {
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) *mongo.SingleResult
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
	DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error)
}

// mongoRecord is the stored document. The definition is kept as a JSON
// string: BSON would turn temporal keys into DateTime values and cannot
// hold label functions.
type mongoRecord struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	Type      string    `bson:"type"`
	Body      string    `bson:"body"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func (m mongoRecord) record() *Record {
	return &Record{
		ID:        m.ID,
		Name:      m.Name,
		Type:      m.Type,
		Body:      []byte(m.Body),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// MongoStore keeps records in a MongoDB collection.
type MongoStore struct {
	client *mongo.Client
	coll   Collection
}

// NewMongoStore connects to uri and uses the charts collection of database db.
func NewMongoStore(ctx context.Context, uri, db string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "connect mongodb")
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "ping mongodb")
	}
	return &MongoStore{client: client, coll: client.Database(db).Collection(CollectionName)}, nil
}

// NewMongoStoreWithCollection wraps an existing collection.
func NewMongoStoreWithCollection(coll Collection) *MongoStore {
	return &MongoStore{coll: coll}
}

func (s *MongoStore) Create(ctx context.Context, def *config.Definition) (*Record, error) {
	rec, err := newRecord(NewID(), def, time.Now().UTC().Truncate(time.Millisecond))
	if err != nil {
		return nil, err
	}
	doc := mongoRecord{
		ID:        rec.ID,
		Name:      rec.Name,
		Type:      rec.Type,
		Body:      string(rec.Body),
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "insert chart")
	}
	return rec, nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (*Record, error) {
	if err := errors.ValidateID(id); err != nil {
		return nil, err
	}
	var doc mongoRecord
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return nil, NotFound(id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "find chart")
	}
	return doc.record(), nil
}

func (s *MongoStore) Update(ctx context.Context, id string, def *config.Definition) (*Record, error) {
	if err := errors.ValidateID(id); err != nil {
		return nil, err
	}
	rec, err := newRecord(id, def, time.Now().UTC().Truncate(time.Millisecond))
	if err != nil {
		return nil, err
	}
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"name":       rec.Name,
		"type":       rec.Type,
		"body":       string(rec.Body),
		"updated_at": rec.UpdatedAt,
	}})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "update chart")
	}
	if res.MatchedCount == 0 {
		return nil, NotFound(id)
	}
	return s.Get(ctx, id)
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	if err := errors.ValidateID(id); err != nil {
		return err
	}
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "delete chart")
	}
	if res.DeletedCount == 0 {
		return NotFound(id)
	}
	return nil
}

func (s *MongoStore) List(ctx context.Context) ([]Record, error) {
	cur, err := s.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "list charts")
	}
	var docs []mongoRecord
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode charts")
	}
	out := make([]Record, len(docs))
	for i, d := range docs {
		out[i] = *d.record()
	}
	return out, nil
}

// Close disconnects the client, if the store owns one.
func (s *MongoStore) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(context.Background())
}

var _ Store = (*MongoStore)(nil)
