package route

import (
	"github.com/evergreen-ci/gimlet"
)

// AttachHandler attaches the REST routes to the given app. Routes are
// mounted at the unversioned root, so the post collection lives at
// /posts.
func AttachHandler(app *gimlet.APIApp) *gimlet.APIApp {
	app.SetDefaultVersion(0)

	app.AddRoute("/posts").Version(0).Get().RouteHandler(makeFetchPosts())
	app.AddRoute("/posts").Version(0).Post().RouteHandler(makeCreatePost())
	app.AddRoute("/posts/{post_id}").Version(0).Get().RouteHandler(makeFetchPostById())
	app.AddRoute("/posts/{post_id}").Version(0).Put().RouteHandler(makeReplacePost())
	app.AddRoute("/posts/{post_id}").Version(0).Delete().RouteHandler(makeDeletePost())

	return app
}
