package service

import (
	"fmt"
	"net"
	"net/http/httptest"

	blogapp "github.com/avatarmh/thinkful-U7-blog-app-mongoose-tests"
	"github.com/avatarmh/thinkful-U7-blog-app-mongoose-tests/testutil"
	"github.com/mongodb/grip"
	"github.com/pkg/errors"
)

type TestServer struct {
	URL string
	net.Listener
	*APIServer
	ts *httptest.Server
}

func (s *TestServer) Close() {
	grip.Noticeln("closing test server:", s.URL)

	grip.Error(s.Listener.Close())
	s.ts.CloseClientConnections()
	s.ts.Close()
}

// CreateTestServer starts the API on a fresh local port and returns a
// handle the caller must Close. The global environment must already be
// initialized.
func CreateTestServer(settings *blogapp.Settings) (*TestServer, error) {
	port := testutil.NextPort()

	as, err := NewAPIServer(settings)
	if err != nil {
		return nil, errors.Wrap(err, "creating API server")
	}

	handler, err := as.Handler()
	if err != nil {
		return nil, errors.Wrap(err, "getting API handler")
	}

	server := httptest.NewUnstartedServer(handler)

	addr := fmt.Sprintf(":%d", port)
	l, err := GetListener(addr)
	if err != nil {
		return nil, err
	}
	server.Listener = l
	go server.Start()

	ts := &TestServer{
		URL:       fmt.Sprintf("http://localhost%s", addr),
		Listener:  l,
		APIServer: as,
		ts:        server,
	}
	grip.Infoln("started test server:", ts.URL)

	return ts, nil
}
