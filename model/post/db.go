package post

import (
	"context"
	"time"

	"github.com/avatarmh/thinkful-U7-blog-app-mongoose-tests/db"
	"github.com/mongodb/anser/bsonutil"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	IdKey      = bsonutil.MustHaveTag(Post{}, "Id")
	TitleKey   = bsonutil.MustHaveTag(Post{}, "Title")
	ContentKey = bsonutil.MustHaveTag(Post{}, "Content")
	AuthorKey  = bsonutil.MustHaveTag(Post{}, "Author")
	CreatedKey = bsonutil.MustHaveTag(Post{}, "Created")

	AuthorFirstNameKey = bsonutil.GetDottedKeyName(AuthorKey, bsonutil.MustHaveTag(Author{}, "FirstName"))
	AuthorLastNameKey  = bsonutil.GetDottedKeyName(AuthorKey, bsonutil.MustHaveTag(Author{}, "LastName"))
)

// ById returns a query that contains an _id selector for the given id.
func ById(id primitive.ObjectID) db.Q {
	return db.Query(bson.M{IdKey: id})
}

// FindOne gets one post for the given query, or nil if no post
// matches.
func FindOne(ctx context.Context, query db.Q) (*Post, error) {
	p := &Post{}
	err := db.FindOneQContext(ctx, Collection, query, p)
	if db.ResultsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "finding post")
	}

	return p, nil
}

// FindOneId gets the post with the given id, or nil if it does not
// exist.
func FindOneId(ctx context.Context, id primitive.ObjectID) (*Post, error) {
	return FindOne(ctx, ById(id))
}

// Find gets every post matching the given query.
func Find(ctx context.Context, query db.Q) ([]Post, error) {
	posts := []Post{}
	if err := db.FindAllQ(ctx, Collection, query, &posts); err != nil {
		return nil, errors.Wrap(err, "finding posts")
	}

	return posts, nil
}

// FindAll gets every post, sorted by id so that a single snapshot read
// is stable.
func FindAll(ctx context.Context) ([]Post, error) {
	return Find(ctx, db.Query(bson.M{}).Sort([]string{IdKey}))
}

// InsertMany validates and bulk-inserts the given posts, assigning
// ids and creation times to any that lack them, and returns the slice
// with those fields filled in.
func InsertMany(ctx context.Context, posts []Post) ([]Post, error) {
	if len(posts) == 0 {
		return posts, nil
	}

	docs := make([]any, 0, len(posts))
	for i := range posts {
		p := &posts[i]
		if err := p.Validate(); err != nil {
			return nil, errors.Wrapf(err, "invalid post at index %d", i)
		}
		if p.Id.IsZero() {
			p.Id = primitive.NewObjectID()
		}
		if p.Created.IsZero() {
			p.Created = time.Now().UTC().Truncate(time.Millisecond)
		}
		docs = append(docs, p)
	}

	if err := db.InsertMany(ctx, Collection, docs...); err != nil {
		return nil, errors.Wrap(err, "inserting posts")
	}

	return posts, nil
}

// Patch carries the replaceable fields of a post for UpdateOneId.
// Only fields that are set are applied; the id and creation time of
// the stored post are never touched.
type Patch struct {
	Title   *string
	Content *string
	Author  *Author
}

// UpdateOneId applies the set fields of the patch to the post with
// the given id, returning db.ErrNotFound when no such post exists.
func UpdateOneId(ctx context.Context, id primitive.ObjectID, patch Patch) error {
	set := bson.M{}
	if patch.Title != nil {
		set[TitleKey] = *patch.Title
	}
	if patch.Content != nil {
		set[ContentKey] = *patch.Content
	}
	if patch.Author != nil {
		set[AuthorKey] = *patch.Author
	}

	if len(set) == 0 {
		// Nothing to apply, but the caller still needs the
		// not-found signal for a missing id.
		existing, err := FindOneId(ctx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return db.ErrNotFound
		}
		return nil
	}

	return db.UpdateIdContext(ctx, Collection, id, bson.M{"$set": set})
}

// RemoveOneId deletes the post with the given id, returning
// db.ErrNotFound when no such post exists.
func RemoveOneId(ctx context.Context, id primitive.ObjectID) error {
	return db.RemoveIdContext(ctx, Collection, id)
}

// Count returns the number of posts in the collection.
func Count(ctx context.Context) (int, error) {
	return db.Count(ctx, Collection, bson.M{})
}
