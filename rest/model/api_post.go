package model

import (
	"time"

	"github.com/avatarmh/thinkful-U7-blog-app-mongoose-tests/model/post"
	"github.com/evergreen-ci/utility"
	"github.com/pkg/errors"
)

// APIPost is the model returned by the API whenever posts are
// fetched. The stored author pair is flattened into a single display
// string; every stored field maps to exactly one key here.
type APIPost struct {
	Id      *string    `json:"id"`
	Title   *string    `json:"title"`
	Content *string    `json:"content"`
	Author  *string    `json:"author"`
	Created *time.Time `json:"created"`
}

// BuildFromService converts from the service-level post to an APIPost.
func (apiPost *APIPost) BuildFromService(h interface{}) error {
	var p post.Post
	switch v := h.(type) {
	case post.Post:
		p = v
	case *post.Post:
		p = *v
	default:
		return errors.Errorf("programmatic error: expected post but got type %T", h)
	}

	apiPost.Id = utility.ToStringPtr(p.Id.Hex())
	apiPost.Title = utility.ToStringPtr(p.Title)
	apiPost.Content = utility.ToStringPtr(p.Content)
	apiPost.Author = utility.ToStringPtr(p.Author.Display())
	apiPost.Created = ToTimePtr(p.Created)

	return nil
}

// APIAuthor is the author name pair as clients submit it.
type APIAuthor struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

// APIPostInput is the request body for creating or replacing a post.
// Id and Created are server-assigned: Created is always ignored on
// input, and Id is only read to cross-check the URL on updates.
type APIPostInput struct {
	Id      *string    `json:"id"`
	Title   *string    `json:"title"`
	Content *string    `json:"content"`
	Author  *APIAuthor `json:"author"`
	Created *time.Time `json:"created"`
}

// MissingFields returns the names of the required fields that are
// absent from the input, in a stable order.
func (in *APIPostInput) MissingFields() []string {
	missing := []string{}
	if utility.FromStringPtr(in.Title) == "" {
		missing = append(missing, "title")
	}
	if utility.FromStringPtr(in.Content) == "" {
		missing = append(missing, "content")
	}
	if in.Author == nil || utility.FromStringPtr(in.Author.FirstName) == "" {
		missing = append(missing, "author.firstName")
	}
	if in.Author == nil || utility.FromStringPtr(in.Author.LastName) == "" {
		missing = append(missing, "author.lastName")
	}

	return missing
}

// ToService converts the input to a service-level post. The id and
// creation time are left unset for the store to assign.
func (in *APIPostInput) ToService() post.Post {
	p := post.Post{
		Title:   utility.FromStringPtr(in.Title),
		Content: utility.FromStringPtr(in.Content),
	}
	if in.Author != nil {
		p.Author = post.Author{
			FirstName: utility.FromStringPtr(in.Author.FirstName),
			LastName:  utility.FromStringPtr(in.Author.LastName),
		}
	}

	return p
}

// ToTimePtr returns a pointer to the given time, or nil for the zero
// time.
func ToTimePtr(t time.Time) *time.Time {
	if utility.IsZeroTime(t) {
		return nil
	}

	return &t
}
