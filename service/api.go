package service

import (
	"net/http"

	blogapp "github.com/avatarmh/thinkful-U7-blog-app-mongoose-tests"
	"github.com/avatarmh/thinkful-U7-blog-app-mongoose-tests/rest/route"
	"github.com/evergreen-ci/gimlet"
	"github.com/pkg/errors"
)

// APIServer holds the REST API of the blog post service.
type APIServer struct {
	Settings blogapp.Settings
}

// NewAPIServer returns an APIServer initialized with the given
// settings.
func NewAPIServer(settings *blogapp.Settings) (*APIServer, error) {
	if err := settings.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid settings")
	}

	return &APIServer{Settings: *settings}, nil
}

// Handler returns the root http.Handler for the API with panic
// recovery and request logging attached.
func (as *APIServer) Handler() (http.Handler, error) {
	app := gimlet.NewApp()
	app.ResetMiddleware()
	app.AddMiddleware(gimlet.MakeRecoveryLogger())
	app.AddMiddleware(gimlet.NewAppLogger())

	route.AttachHandler(app)

	return app.Handler()
}
