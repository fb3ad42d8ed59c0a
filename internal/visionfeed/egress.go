package visionfeed

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// Egress abstracts pushing analysis text back to the bridge.
type Egress interface {
	PushText(ctx context.Context, room, text string) error
}

// NewEgress selects the push transport. Dryrun swallows pushes and logs
// them instead, for exercising live rooms without posting.
func NewEgress(dryrun bool, c *Client, logger *zap.Logger) Egress {
	if logger == nil {
		logger = zap.NewNop()
	}
	if dryrun {
		return &dryrunEgress{logger: logger}
	}
	return &httpEgress{c: c}
}

// httpEgress delegates to Client.
type httpEgress struct{ c *Client }

func (h *httpEgress) PushText(ctx context.Context, room, text string) error {
	if h == nil || h.c == nil {
		return errors.New("http egress not available")
	}
	return h.c.PushText(ctx, room, text)
}

type dryrunEgress struct{ logger *zap.Logger }

func (d *dryrunEgress) PushText(ctx context.Context, room, text string) error {
	d.logger.Info("egress_dryrun", zap.String("room", room), zap.Int("bytes", len(text)))
	return nil
}
