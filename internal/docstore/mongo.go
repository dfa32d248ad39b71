package docstore

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore implements Store on a single Mongo database. Each logical
// collection maps 1:1 to a Mongo collection.
type MongoStore struct {
	db *mongo.Database
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{db: db}
}

func (s *MongoStore) Get(ctx context.Context, collection, key string) (Document, error) {
	var raw bson.M
	err := s.db.Collection(collection).FindOne(ctx, bson.M{"_id": key}).Decode(&raw)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return normalizeDocument(raw), nil
}

func (s *MongoStore) Put(ctx context.Context, collection, key string, doc Document) error {
	replacement := bson.M{}
	for k, v := range doc {
		if k == "_id" {
			continue
		}
		replacement[k] = v
	}
	replacement["_id"] = key

	opts := options.Replace().SetUpsert(true)
	_, err := s.db.Collection(collection).ReplaceOne(ctx, bson.M{"_id": key}, replacement, opts)
	return err
}

func (s *MongoStore) Append(ctx context.Context, collection string, doc Document) (string, error) {
	insert := bson.M{}
	for k, v := range doc {
		if k == "_id" {
			continue
		}
		insert[k] = v
	}

	res, err := s.db.Collection(collection).InsertOne(ctx, insert)
	if err != nil {
		return "", err
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Sprintf("%v", res.InsertedID), nil
	}
	return oid.Hex(), nil
}

func (s *MongoStore) Query(ctx context.Context, collection string, preds []Predicate, orderBy string, descending bool, limit int64) ([]Document, error) {
	filter, err := buildFilter(preds)
	if err != nil {
		return nil, err
	}

	opts := options.Find()
	if orderBy != "" {
		dir := 1
		if descending {
			dir = -1
		}
		opts.SetSort(bson.D{{Key: orderBy, Value: dir}})
	}
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := s.db.Collection(collection).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []Document
	for cursor.Next(ctx) {
		var raw bson.M
		if err := cursor.Decode(&raw); err != nil {
			return nil, err
		}
		docs = append(docs, normalizeDocument(raw))
	}
	return docs, cursor.Err()
}

// buildFilter ANDs the predicates into a single bson filter. Range
// operators on the same field merge into one clause so startDate and
// endDate can both constrain "timestamp".
func buildFilter(preds []Predicate) (bson.M, error) {
	filter := bson.M{}
	for _, p := range preds {
		switch p.Op {
		case OpEqual:
			filter[p.Field] = p.Value
		case OpGreaterEq, OpLessEq:
			op := "$gte"
			if p.Op == OpLessEq {
				op = "$lte"
			}
			clause, ok := filter[p.Field].(bson.M)
			if !ok {
				clause = bson.M{}
				filter[p.Field] = clause
			}
			clause[op] = p.Value
		default:
			return nil, fmt.Errorf("docstore: unsupported operator %q", p.Op)
		}
	}
	return filter, nil
}

// normalizeDocument converts bson decode artifacts back to native Go
// values: datetimes to UTC time.Time (loss-free at second granularity),
// ObjectIDs to hex, nested documents and arrays recursively.
func normalizeDocument(raw bson.M) Document {
	doc := make(Document, len(raw))
	for k, v := range raw {
		doc[k] = normalizeValue(v)
	}
	return doc
}

func normalizeValue(v any) any {
	switch val := v.(type) {
	case primitive.DateTime:
		return val.Time().UTC()
	case primitive.ObjectID:
		return val.Hex()
	case bson.M:
		return normalizeDocument(val)
	case primitive.A:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalizeValue(item)
		}
		return out
	default:
		return v
	}
}
