package post

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/avatarmh/thinkful-U7-blog-app-mongoose-tests/db"
	"github.com/mongodb/grip"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const Collection = "posts"

// Author is always stored as the first/last name pair; only the API
// representation flattens it to a display string.
type Author struct {
	FirstName string `bson:"first_name" json:"firstName"`
	LastName  string `bson:"last_name" json:"lastName"`
}

// Display returns the single-string form of the author's name.
func (a Author) Display() string {
	return strings.TrimSpace(fmt.Sprintf("%s %s", a.FirstName, a.LastName))
}

// Post is a single blog post document. Id and Created are assigned by
// the store on insert and are never altered by updates.
type Post struct {
	Id      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title   string             `bson:"title" json:"title"`
	Content string             `bson:"content" json:"content"`
	Author  Author             `bson:"author" json:"author"`
	Created time.Time          `bson:"created" json:"created"`
}

// Validate checks that every required field is present.
func (p *Post) Validate() error {
	catcher := grip.NewBasicCatcher()
	catcher.NewWhen(p.Title == "", "title must be specified")
	catcher.NewWhen(p.Content == "", "content must be specified")
	catcher.NewWhen(p.Author.FirstName == "", "author first name must be specified")
	catcher.NewWhen(p.Author.LastName == "", "author last name must be specified")

	return catcher.Resolve()
}

// Insert validates the post, assigns its id and creation time if they
// are unset, and writes it to the database. Mongo stores times at
// millisecond precision, so Created is truncated to keep the in-memory
// document equal to what a later read returns.
func (p *Post) Insert(ctx context.Context) error {
	if err := p.Validate(); err != nil {
		return errors.Wrap(err, "invalid post")
	}

	if p.Id.IsZero() {
		p.Id = primitive.NewObjectID()
	}
	if p.Created.IsZero() {
		p.Created = time.Now().UTC().Truncate(time.Millisecond)
	}

	return errors.Wrap(db.Insert(ctx, Collection, p), "inserting post")
}
