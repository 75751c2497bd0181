package app

import (
	"io"

	"github.com/oshokin/admin-client/internal/api/user"
	"github.com/oshokin/admin-client/internal/config"
	"github.com/oshokin/admin-client/internal/request"
	"github.com/oshokin/admin-client/internal/session"
	"github.com/oshokin/admin-client/internal/ui"
)

// Streams are the terminal the commands talk to.
type Streams struct {
	In  io.Reader
	Out io.Writer
}

// client bundles the collaborators of a single command run.
type client struct {
	out        io.Writer
	store      *session.Store
	dispatcher *request.DispatcherImpl
	users      user.Service
}

func newClient(cfg *config.Config, streams Streams) (*client, error) {
	backend := session.NewConfigBackend(cfg)
	store := session.NewStore(cfg.AuthToken, backend, backend)
	terminal := ui.NewTerminal(streams.In, streams.Out, cfg.AssumeYes)

	dispatcher, err := request.NewDispatcher(cfg, store, terminal, store)
	if err != nil {
		return nil, err
	}

	return &client{
		out:        streams.Out,
		store:      store,
		dispatcher: dispatcher,
		users:      user.NewService(dispatcher),
	}, nil
}

// close cancels what is still in flight and waits for the logout dialog, if any.
func (c *client) close() {
	c.dispatcher.Close()
}
