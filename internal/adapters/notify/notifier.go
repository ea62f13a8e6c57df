package notify

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Channel is one delivery target. Send must respect ctx; network failures
// come back as errors, never panics.
type Channel interface {
	Name() string
	Send(ctx context.Context, message string) error
}

// Notifier fans a message out to every configured channel. Delivery counts as
// a success if at least one channel accepts it; failures are logged and
// degraded to false, so a down bot or mail server never blocks an order.
type Notifier struct {
	channels []Channel
}

func New(channels ...Channel) *Notifier {
	return &Notifier{channels: channels}
}

func (n *Notifier) Notify(ctx context.Context, message string) bool {
	delivered := false
	for _, ch := range n.channels {
		if err := ch.Send(ctx, message); err != nil {
			log.Warn().Err(err).Str("channel", ch.Name()).Msg("notification failed")
			continue
		}
		delivered = true
	}
	return delivered
}
