package route

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/avatarmh/thinkful-U7-blog-app-mongoose-tests/db"
	"github.com/avatarmh/thinkful-U7-blog-app-mongoose-tests/model/post"
	"github.com/avatarmh/thinkful-U7-blog-app-mongoose-tests/rest/model"
	"github.com/avatarmh/thinkful-U7-blog-app-mongoose-tests/testutil"
	"github.com/evergreen-ci/gimlet"
	"github.com/evergreen-ci/utility"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type postRouteSuite struct {
	suite.Suite
	ctx    context.Context
	cancel context.CancelFunc
	posts  []post.Post
}

func TestPostRouteSuite(t *testing.T) {
	suite.Run(t, new(postRouteSuite))
}

func (s *postRouteSuite) SetupSuite() {
	testutil.ConfigureIntegrationTest(s.T())
	testutil.Setup()
}

func (s *postRouteSuite) SetupTest() {
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.Require().NoError(db.ClearCollections(s.ctx, post.Collection))

	posts := []post.Post{}
	for i := 0; i < 3; i++ {
		posts = append(posts, post.Post{
			Title:   fmt.Sprintf("title-%s", utility.RandomString()),
			Content: fmt.Sprintf("content-%s", utility.RandomString()),
			Author:  post.Author{FirstName: "Ada", LastName: "Lovelace"},
		})
	}

	var err error
	s.posts, err = post.InsertMany(s.ctx, posts)
	s.Require().NoError(err)
}

func (s *postRouteSuite) TearDownTest() {
	s.NoError(db.ClearCollections(s.ctx, post.Collection))
	s.cancel()
}

func (s *postRouteSuite) requestWithId(method, id string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	r := httptest.NewRequest(method, fmt.Sprintf("/posts/%s", id), &buf)

	return gimlet.SetURLVars(r, map[string]string{"post_id": id})
}

func (s *postRouteSuite) TestFetchPostsReturnsAll() {
	handler := makeFetchPosts()
	s.NoError(handler.Parse(s.ctx, httptest.NewRequest(http.MethodGet, "/posts", nil)))

	resp := handler.Run(s.ctx)
	s.Require().NotNil(resp)
	s.Equal(http.StatusOK, resp.Status())

	apiPosts, ok := resp.Data().([]model.APIPost)
	s.Require().True(ok)
	s.Len(apiPosts, len(s.posts))
}

func (s *postRouteSuite) TestFetchPostByIdParseRejectsBadId() {
	handler := makeFetchPostById()
	err := handler.Parse(s.ctx, s.requestWithId(http.MethodGet, "not-a-hex-id", nil))
	s.Require().Error(err)

	errResp, ok := err.(gimlet.ErrorResponse)
	s.Require().True(ok)
	s.Equal(http.StatusBadRequest, errResp.StatusCode)
}

func (s *postRouteSuite) TestFetchPostByIdNotFound() {
	handler := makeFetchPostById()
	s.NoError(handler.Parse(s.ctx, s.requestWithId(http.MethodGet, primitive.NewObjectID().Hex(), nil)))

	resp := handler.Run(s.ctx)
	s.Require().NotNil(resp)
	s.Equal(http.StatusNotFound, resp.Status())
}

func (s *postRouteSuite) TestFetchPostByIdSucceeds() {
	handler := makeFetchPostById()
	s.NoError(handler.Parse(s.ctx, s.requestWithId(http.MethodGet, s.posts[0].Id.Hex(), nil)))

	resp := handler.Run(s.ctx)
	s.Require().NotNil(resp)
	s.Equal(http.StatusOK, resp.Status())

	apiPost, ok := resp.Data().(model.APIPost)
	s.Require().True(ok)
	s.Equal(s.posts[0].Id.Hex(), utility.FromStringPtr(apiPost.Id))
	s.Equal(s.posts[0].Title, utility.FromStringPtr(apiPost.Title))
	s.Equal("Ada Lovelace", utility.FromStringPtr(apiPost.Author))
}

func (s *postRouteSuite) TestCreatePostParseRejectsMissingFields() {
	handler := makeCreatePost()
	body := bytes.NewBufferString(`{"title": "only a title"}`)
	err := handler.Parse(s.ctx, httptest.NewRequest(http.MethodPost, "/posts", body))
	s.Require().Error(err)

	errResp, ok := err.(gimlet.ErrorResponse)
	s.Require().True(ok)
	s.Equal(http.StatusBadRequest, errResp.StatusCode)
	s.Contains(errResp.Message, "content")
	s.Contains(errResp.Message, "author.firstName")
	s.Contains(errResp.Message, "author.lastName")
}

func (s *postRouteSuite) TestCreatePostSucceeds() {
	input := model.APIPostInput{
		Title:   utility.ToStringPtr("a new title"),
		Content: utility.ToStringPtr("new content"),
		Author: &model.APIAuthor{
			FirstName: utility.ToStringPtr("Grace"),
			LastName:  utility.ToStringPtr("Hopper"),
		},
	}
	var buf bytes.Buffer
	s.Require().NoError(json.NewEncoder(&buf).Encode(input))

	handler := makeCreatePost()
	s.Require().NoError(handler.Parse(s.ctx, httptest.NewRequest(http.MethodPost, "/posts", &buf)))

	resp := handler.Run(s.ctx)
	s.Require().NotNil(resp)
	s.Equal(http.StatusCreated, resp.Status())

	apiPost, ok := resp.Data().(model.APIPost)
	s.Require().True(ok)
	s.NotEmpty(utility.FromStringPtr(apiPost.Id))
	s.Equal("Grace Hopper", utility.FromStringPtr(apiPost.Author))
	s.Require().NotNil(apiPost.Created)

	count, err := post.Count(s.ctx)
	s.Require().NoError(err)
	s.Equal(len(s.posts)+1, count)
}

func (s *postRouteSuite) TestReplacePostParseRejectsIdMismatch() {
	target := s.posts[0]
	input := model.APIPostInput{
		Id:      utility.ToStringPtr(primitive.NewObjectID().Hex()),
		Title:   utility.ToStringPtr("replaced title"),
		Content: utility.ToStringPtr("replaced content"),
		Author: &model.APIAuthor{
			FirstName: utility.ToStringPtr("Grace"),
			LastName:  utility.ToStringPtr("Hopper"),
		},
	}

	handler := makeReplacePost()
	err := handler.Parse(s.ctx, s.requestWithId(http.MethodPut, target.Id.Hex(), input))
	s.Require().Error(err)

	errResp, ok := err.(gimlet.ErrorResponse)
	s.Require().True(ok)
	s.Equal(http.StatusBadRequest, errResp.StatusCode)
}

func (s *postRouteSuite) TestReplacePostSucceeds() {
	target := s.posts[0]
	input := model.APIPostInput{
		Id:      utility.ToStringPtr(target.Id.Hex()),
		Title:   utility.ToStringPtr("replaced title"),
		Content: utility.ToStringPtr("replaced content"),
		Author: &model.APIAuthor{
			FirstName: utility.ToStringPtr("Grace"),
			LastName:  utility.ToStringPtr("Hopper"),
		},
	}

	handler := makeReplacePost()
	s.Require().NoError(handler.Parse(s.ctx, s.requestWithId(http.MethodPut, target.Id.Hex(), input)))

	resp := handler.Run(s.ctx)
	s.Require().NotNil(resp)
	s.Equal(http.StatusNoContent, resp.Status())

	found, err := post.FindOneId(s.ctx, target.Id)
	s.Require().NoError(err)
	s.Require().NotNil(found)
	s.Equal("replaced title", found.Title)
	s.Equal("replaced content", found.Content)
	s.Equal("Grace Hopper", found.Author.Display())
	s.True(target.Created.Equal(found.Created))
}

func (s *postRouteSuite) TestReplacePostNotFound() {
	id := primitive.NewObjectID()
	input := model.APIPostInput{
		Id:      utility.ToStringPtr(id.Hex()),
		Title:   utility.ToStringPtr("replaced title"),
		Content: utility.ToStringPtr("replaced content"),
		Author: &model.APIAuthor{
			FirstName: utility.ToStringPtr("Grace"),
			LastName:  utility.ToStringPtr("Hopper"),
		},
	}

	handler := makeReplacePost()
	s.Require().NoError(handler.Parse(s.ctx, s.requestWithId(http.MethodPut, id.Hex(), input)))

	resp := handler.Run(s.ctx)
	s.Require().NotNil(resp)
	s.Equal(http.StatusNotFound, resp.Status())
}

func (s *postRouteSuite) TestDeletePostSucceeds() {
	target := s.posts[1]

	handler := makeDeletePost()
	s.Require().NoError(handler.Parse(s.ctx, s.requestWithId(http.MethodDelete, target.Id.Hex(), nil)))

	resp := handler.Run(s.ctx)
	s.Require().NotNil(resp)
	s.Equal(http.StatusNoContent, resp.Status())

	found, err := post.FindOneId(s.ctx, target.Id)
	s.Require().NoError(err)
	s.Nil(found)

	resp = handler.Run(s.ctx)
	s.Require().NotNil(resp)
	s.Equal(http.StatusNotFound, resp.Status())
}
