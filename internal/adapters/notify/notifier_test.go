package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubChannel struct {
	name string
	err  error
	sent []string
}

func (c *stubChannel) Name() string { return c.name }

func (c *stubChannel) Send(_ context.Context, message string) error {
	if c.err != nil {
		return c.err
	}
	c.sent = append(c.sent, message)
	return nil
}

func TestNotify(t *testing.T) {
	ctx := context.Background()

	t.Run("one healthy channel is enough", func(t *testing.T) {
		tg := &stubChannel{name: "telegram", err: errors.New("bot token revoked")}
		mail := &stubChannel{name: "email"}

		assert.True(t, New(tg, mail).Notify(ctx, "yangi buyurtma"))
		assert.Equal(t, []string{"yangi buyurtma"}, mail.sent)
	})

	t.Run("all channels down", func(t *testing.T) {
		tg := &stubChannel{name: "telegram", err: errors.New("timeout")}
		mail := &stubChannel{name: "email", err: errors.New("smtp refused")}

		assert.False(t, New(tg, mail).Notify(ctx, "yangi buyurtma"))
	})

	t.Run("no channels configured", func(t *testing.T) {
		assert.False(t, New().Notify(ctx, "yangi buyurtma"))
	})

	t.Run("failure does not stop the fan-out", func(t *testing.T) {
		first := &stubChannel{name: "telegram", err: errors.New("down")}
		second := &stubChannel{name: "email"}
		third := &stubChannel{name: "backup"}

		assert.True(t, New(first, second, third).Notify(ctx, "msg"))
		assert.Len(t, second.sent, 1)
		assert.Len(t, third.sent, 1)
	})
}
