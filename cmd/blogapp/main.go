package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	blogapp "github.com/avatarmh/thinkful-U7-blog-app-mongoose-tests"
	"github.com/avatarmh/thinkful-U7-blog-app-mongoose-tests/service"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/level"
	"github.com/mongodb/grip/message"
	"github.com/mongodb/grip/send"
	"github.com/pkg/errors"
)

// shutdownTimeout is the duration to wait until killing active
// requests and stopping the server.
const shutdownTimeout = 10 * time.Second

func main() {
	sender := send.MakeNative()
	grip.EmergencyFatal(sender.SetLevel(send.LevelInfo{Default: level.Info, Threshold: level.Debug}))
	grip.SetName("blogapp")
	grip.EmergencyFatal(grip.SetSender(sender))

	settings, err := blogapp.NewSettings()
	grip.EmergencyFatal(errors.Wrap(err, "getting settings"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	env, err := blogapp.NewEnvironment(ctx, settings)
	grip.EmergencyFatal(errors.Wrap(err, "connecting to the database"))
	blogapp.SetEnvironment(env)

	as, err := service.NewAPIServer(settings)
	grip.EmergencyFatal(errors.Wrap(err, "creating API server"))

	handler, err := as.Handler()
	grip.EmergencyFatal(errors.Wrap(err, "getting API handler"))

	srv := service.GetServer(fmt.Sprintf(":%d", settings.Api.Port), handler)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			grip.EmergencyFatal(errors.Wrap(err, "serving API"))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	grip.Info(message.Fields{
		"message": "shutting down",
		"signal":  sig.String(),
	})

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, shutdownTimeout)
	defer shutdownCancel()

	grip.Error(message.WrapError(srv.Shutdown(shutdownCtx), "shutting down HTTP server"))
	grip.Error(message.WrapError(env.Close(shutdownCtx), "closing database connection"))
}
