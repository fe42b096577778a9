package db

import (
	"context"

	blogapp "github.com/avatarmh/thinkful-U7-blog-app-mongoose-tests"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	NoProjection = bson.M{}
	NoSort       = []string{}
	NoSkip       = 0
	NoLimit      = 0
)

// Insert inserts the specified item into the specified collection.
func Insert(ctx context.Context, collection string, item any) error {
	_, err := blogapp.GetEnvironment().DB().Collection(collection).InsertOne(ctx, item)
	return errors.Wrap(err, "inserting document")
}

// InsertMany inserts the specified items into the specified collection.
func InsertMany(ctx context.Context, collection string, items ...any) error {
	if len(items) == 0 {
		return nil
	}

	_, err := blogapp.GetEnvironment().DB().Collection(collection).InsertMany(ctx, items)
	return errors.Wrap(err, "inserting documents")
}

// FindOneQContext runs a Q query against the given collection,
// applying the result to "out". Returns ErrNotFound when the query
// matches no documents.
func FindOneQContext(ctx context.Context, collection string, q Q, out any) error {
	opts := options.FindOne()
	if q.projection != nil {
		opts = opts.SetProjection(q.projection)
	}
	if len(q.sort) > 0 {
		opts = opts.SetSort(sortSpec(q.sort))
	}
	if q.skip > 0 {
		opts = opts.SetSkip(int64(q.skip))
	}

	err := blogapp.GetEnvironment().DB().Collection(collection).FindOne(ctx, q.filter, opts).Decode(out)
	if err == mongo.ErrNoDocuments {
		return ErrNotFound
	}

	return errors.Wrap(err, "finding document")
}

// FindAllQ runs a Q query against the given collection, applying the
// results to "out", which must be a pointer to a slice.
func FindAllQ(ctx context.Context, collection string, q Q, out any) error {
	opts := options.Find()
	if q.projection != nil {
		opts = opts.SetProjection(q.projection)
	}
	if len(q.sort) > 0 {
		opts = opts.SetSort(sortSpec(q.sort))
	}
	if q.skip > 0 {
		opts = opts.SetSkip(int64(q.skip))
	}
	if q.limit > 0 {
		opts = opts.SetLimit(int64(q.limit))
	}

	cursor, err := blogapp.GetEnvironment().DB().Collection(collection).Find(ctx, q.filter, opts)
	if err != nil {
		return errors.Wrap(err, "finding documents")
	}

	return errors.Wrap(cursor.All(ctx, out), "decoding documents")
}

// UpdateIdContext updates one _id-matching document in the
// collection, returning ErrNotFound when no document matches the id.
func UpdateIdContext(ctx context.Context, collection string, id, update any) error {
	res, err := blogapp.GetEnvironment().DB().Collection(collection).UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id}},
		update,
	)
	if err != nil {
		return errors.Wrap(err, "updating document")
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

// RemoveIdContext removes the _id-matching document from the
// collection, returning ErrNotFound when no document matches the id.
func RemoveIdContext(ctx context.Context, collection string, id any) error {
	res, err := blogapp.GetEnvironment().DB().Collection(collection).DeleteOne(ctx,
		bson.D{{Key: "_id", Value: id}},
	)
	if err != nil {
		return errors.Wrap(err, "deleting document")
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}

	return nil
}

// RemoveAll removes all items matching the query from the specified
// collection.
func RemoveAll(ctx context.Context, collection string, query any) error {
	_, err := blogapp.GetEnvironment().DB().Collection(collection).DeleteMany(ctx, query)
	return errors.Wrap(err, "deleting documents")
}

// Count runs a count with the specified query against the collection.
func Count(ctx context.Context, collection string, query any) (int, error) {
	res, err := blogapp.GetEnvironment().DB().Collection(collection).CountDocuments(ctx, query)
	return int(res), errors.Wrap(err, "counting documents")
}

// CountQ runs a Q count query against the given collection.
func CountQ(ctx context.Context, collection string, q Q) (int, error) {
	return Count(ctx, collection, q.filter)
}

// CreateCollections ensures that all the given collections are
// created, returning an error immediately if creating any one of them
// fails.
func CreateCollections(ctx context.Context, collections ...string) error {
	const namespaceExistsErrCode = 48
	for _, collection := range collections {
		err := blogapp.GetEnvironment().DB().CreateCollection(ctx, collection)
		if err == nil {
			continue
		}
		// If the collection already exists, this does not count as an error.
		if mongoErr, ok := errors.Cause(err).(mongo.CommandError); ok && mongoErr.HasErrorCode(namespaceExistsErrCode) {
			continue
		}
		return errors.Wrapf(err, "creating collection '%s'", collection)
	}

	return nil
}

// ClearCollections clears all documents from all the specified
// collections, returning an error immediately if clearing any one of
// them fails.
func ClearCollections(ctx context.Context, collections ...string) error {
	for _, collection := range collections {
		_, err := blogapp.GetEnvironment().DB().Collection(collection).DeleteMany(ctx, bson.M{})
		if err != nil {
			return errors.Wrapf(err, "clearing collection '%s'", collection)
		}
	}

	return nil
}

// DropCollections drops the specified collections, returning an error
// immediately if dropping any one of them fails.
func DropCollections(ctx context.Context, collections ...string) error {
	for _, collection := range collections {
		if err := blogapp.GetEnvironment().DB().Collection(collection).Drop(ctx); err != nil {
			return errors.Wrapf(err, "dropping collection '%s'", collection)
		}
	}

	return nil
}
