package route

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/avatarmh/thinkful-U7-blog-app-mongoose-tests/db"
	"github.com/avatarmh/thinkful-U7-blog-app-mongoose-tests/model/post"
	"github.com/avatarmh/thinkful-U7-blog-app-mongoose-tests/rest/model"
	"github.com/evergreen-ci/gimlet"
	"github.com/evergreen-ci/utility"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

////////////////////////////////////////////////
//
// GET /posts

type postsGetHandler struct{}

func makeFetchPosts() gimlet.RouteHandler {
	return &postsGetHandler{}
}

func (h *postsGetHandler) Factory() gimlet.RouteHandler {
	return &postsGetHandler{}
}

func (h *postsGetHandler) Parse(ctx context.Context, r *http.Request) error {
	return nil
}

func (h *postsGetHandler) Run(ctx context.Context) gimlet.Responder {
	posts, err := post.FindAll(ctx)
	if err != nil {
		grip.Error(message.WrapError(err, message.Fields{
			"message": "finding posts",
			"route":   "/posts",
			"method":  http.MethodGet,
		}))
		return gimlet.MakeJSONInternalErrorResponder(errors.New("finding posts"))
	}

	apiPosts := make([]model.APIPost, 0, len(posts))
	for i := range posts {
		apiPost := model.APIPost{}
		if err := apiPost.BuildFromService(posts[i]); err != nil {
			return gimlet.MakeJSONInternalErrorResponder(errors.Wrap(err, "converting post to API model"))
		}
		apiPosts = append(apiPosts, apiPost)
	}

	return gimlet.NewJSONResponse(apiPosts)
}

////////////////////////////////////////////////
//
// GET /posts/{post_id}

type postGetByIdHandler struct {
	postId primitive.ObjectID
}

func makeFetchPostById() gimlet.RouteHandler {
	return &postGetByIdHandler{}
}

func (h *postGetByIdHandler) Factory() gimlet.RouteHandler {
	return &postGetByIdHandler{}
}

func (h *postGetByIdHandler) Parse(ctx context.Context, r *http.Request) error {
	var err error
	h.postId, err = parsePostId(r)

	return err
}

func (h *postGetByIdHandler) Run(ctx context.Context) gimlet.Responder {
	p, err := post.FindOneId(ctx, h.postId)
	if err != nil {
		grip.Error(message.WrapError(err, message.Fields{
			"message": "finding post",
			"route":   "/posts/{post_id}",
			"post_id": h.postId.Hex(),
		}))
		return gimlet.MakeJSONInternalErrorResponder(errors.New("finding post"))
	}
	if p == nil {
		return gimlet.MakeJSONErrorResponder(gimlet.ErrorResponse{
			StatusCode: http.StatusNotFound,
			Message:    fmt.Sprintf("post '%s' not found", h.postId.Hex()),
		})
	}

	apiPost := model.APIPost{}
	if err := apiPost.BuildFromService(p); err != nil {
		return gimlet.MakeJSONInternalErrorResponder(errors.Wrap(err, "converting post to API model"))
	}

	return gimlet.NewJSONResponse(apiPost)
}

////////////////////////////////////////////////
//
// POST /posts

type postCreateHandler struct {
	input model.APIPostInput
}

func makeCreatePost() gimlet.RouteHandler {
	return &postCreateHandler{}
}

func (h *postCreateHandler) Factory() gimlet.RouteHandler {
	return &postCreateHandler{}
}

// Parse reads the JSON payload and validates that every required
// field is present.
func (h *postCreateHandler) Parse(ctx context.Context, r *http.Request) error {
	if err := utility.ReadJSON(r.Body, &h.input); err != nil {
		return errors.Wrap(err, "reading post from JSON request body")
	}

	if missing := h.input.MissingFields(); len(missing) > 0 {
		return gimlet.ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    fmt.Sprintf("missing required fields: %s", strings.Join(missing, ", ")),
		}
	}

	return nil
}

func (h *postCreateHandler) Run(ctx context.Context) gimlet.Responder {
	p := h.input.ToService()
	if err := p.Insert(ctx); err != nil {
		grip.Error(message.WrapError(err, message.Fields{
			"message": "inserting post",
			"route":   "/posts",
			"method":  http.MethodPost,
		}))
		return gimlet.MakeJSONInternalErrorResponder(errors.New("inserting post"))
	}

	apiPost := model.APIPost{}
	if err := apiPost.BuildFromService(p); err != nil {
		return gimlet.MakeJSONInternalErrorResponder(errors.Wrap(err, "converting post to API model"))
	}

	responder := gimlet.NewJSONResponse(apiPost)
	if err := responder.SetStatus(http.StatusCreated); err != nil {
		return gimlet.MakeJSONInternalErrorResponder(errors.Wrapf(err, "setting HTTP status code to %d", http.StatusCreated))
	}

	return responder
}

////////////////////////////////////////////////
//
// PUT /posts/{post_id}

type postReplaceHandler struct {
	postId primitive.ObjectID
	input  model.APIPostInput
}

func makeReplacePost() gimlet.RouteHandler {
	return &postReplaceHandler{}
}

func (h *postReplaceHandler) Factory() gimlet.RouteHandler {
	return &postReplaceHandler{}
}

// Parse reads the replacement body and requires that its id match the
// id in the URL.
func (h *postReplaceHandler) Parse(ctx context.Context, r *http.Request) error {
	var err error
	if h.postId, err = parsePostId(r); err != nil {
		return err
	}

	if err := utility.ReadJSON(r.Body, &h.input); err != nil {
		return errors.Wrap(err, "reading post from JSON request body")
	}

	if bodyId := utility.FromStringPtr(h.input.Id); bodyId != h.postId.Hex() {
		return gimlet.ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    fmt.Sprintf("post id '%s' in body must match id '%s' in URL", bodyId, h.postId.Hex()),
		}
	}

	if missing := h.input.MissingFields(); len(missing) > 0 {
		return gimlet.ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    fmt.Sprintf("missing required fields: %s", strings.Join(missing, ", ")),
		}
	}

	return nil
}

func (h *postReplaceHandler) Run(ctx context.Context) gimlet.Responder {
	patch := post.Patch{
		Title:   h.input.Title,
		Content: h.input.Content,
	}
	if h.input.Author != nil {
		author := post.Author{
			FirstName: utility.FromStringPtr(h.input.Author.FirstName),
			LastName:  utility.FromStringPtr(h.input.Author.LastName),
		}
		patch.Author = &author
	}

	err := post.UpdateOneId(ctx, h.postId, patch)
	if db.ResultsNotFound(err) {
		return gimlet.MakeJSONErrorResponder(gimlet.ErrorResponse{
			StatusCode: http.StatusNotFound,
			Message:    fmt.Sprintf("post '%s' not found", h.postId.Hex()),
		})
	}
	if err != nil {
		grip.Error(message.WrapError(err, message.Fields{
			"message": "updating post",
			"route":   "/posts/{post_id}",
			"post_id": h.postId.Hex(),
		}))
		return gimlet.MakeJSONInternalErrorResponder(errors.New("updating post"))
	}

	responder := gimlet.NewJSONResponse(struct{}{})
	if err := responder.SetStatus(http.StatusNoContent); err != nil {
		return gimlet.MakeJSONInternalErrorResponder(errors.Wrapf(err, "setting HTTP status code to %d", http.StatusNoContent))
	}

	return responder
}

////////////////////////////////////////////////
//
// DELETE /posts/{post_id}

type postDeleteHandler struct {
	postId primitive.ObjectID
}

func makeDeletePost() gimlet.RouteHandler {
	return &postDeleteHandler{}
}

func (h *postDeleteHandler) Factory() gimlet.RouteHandler {
	return &postDeleteHandler{}
}

func (h *postDeleteHandler) Parse(ctx context.Context, r *http.Request) error {
	var err error
	h.postId, err = parsePostId(r)

	return err
}

// Run deletes the post. Deleting an id that does not exist is a 404,
// not a no-op, matching the store's non-idempotent delete contract.
func (h *postDeleteHandler) Run(ctx context.Context) gimlet.Responder {
	err := post.RemoveOneId(ctx, h.postId)
	if db.ResultsNotFound(err) {
		return gimlet.MakeJSONErrorResponder(gimlet.ErrorResponse{
			StatusCode: http.StatusNotFound,
			Message:    fmt.Sprintf("post '%s' not found", h.postId.Hex()),
		})
	}
	if err != nil {
		grip.Error(message.WrapError(err, message.Fields{
			"message": "deleting post",
			"route":   "/posts/{post_id}",
			"post_id": h.postId.Hex(),
		}))
		return gimlet.MakeJSONInternalErrorResponder(errors.New("deleting post"))
	}

	responder := gimlet.NewJSONResponse(struct{}{})
	if err := responder.SetStatus(http.StatusNoContent); err != nil {
		return gimlet.MakeJSONInternalErrorResponder(errors.Wrapf(err, "setting HTTP status code to %d", http.StatusNoContent))
	}

	return responder
}

// parsePostId reads the post_id path parameter and rejects ids that
// are not valid object id hex as client errors.
func parsePostId(r *http.Request) (primitive.ObjectID, error) {
	id := gimlet.GetVars(r)["post_id"]
	postId, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, gimlet.ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    fmt.Sprintf("invalid post id '%s'", id),
		}
	}

	return postId, nil
}
