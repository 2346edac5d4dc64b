package changefeed

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	appLog "github.com/FlintShadey/huddleuptime/internal/log"
)

// Channel is the Postgres NOTIFY channel written by the availability trigger.
const Channel = "user_availability_changes"

const (
	minBackoff = time.Second
	maxBackoff = 30 * time.Second
)

// PgListener holds one pooled connection in LISTEN mode and hands every
// notification payload to a callback. It reconnects with backoff when the
// connection drops.
type PgListener struct {
	pool    *pgxpool.Pool
	channel string
	onEvent func(payload string)

	// OnListen, when set, runs after every successful LISTEN, including
	// reconnects. Notifications sent while disconnected are lost, so this is
	// where callers resynchronise.
	OnListen func()
}

func NewPgListener(pool *pgxpool.Pool, channel string, onEvent func(payload string)) *PgListener {
	if channel == "" {
		channel = Channel
	}
	return &PgListener{pool: pool, channel: channel, onEvent: onEvent}
}

// Run blocks until ctx is done.
func (l *PgListener) Run(ctx context.Context) error {
	backoff := minBackoff
	for {
		listened, err := l.listen(ctx)
		if ctx.Err() != nil {
			return nil
		}
		var wait time.Duration
		wait, backoff = nextBackoff(backoff, listened)
		appLog.Error("changefeed listener disconnected", err, "channel", l.channel, "retry_in", wait.String())

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(wait):
		}
	}
}

// nextBackoff returns how long to wait before reconnecting and the delay to
// use after that. A connection that reached LISTEN starts over at minBackoff.
func nextBackoff(cur time.Duration, listened bool) (wait, next time.Duration) {
	if listened {
		cur = minBackoff
	}
	return cur, min(cur*2, maxBackoff)
}

// listen reports whether LISTEN succeeded before the connection ended.
func (l *PgListener) listen(ctx context.Context) (bool, error) {
	if l.pool == nil {
		return false, errors.New("changefeed: nil pool")
	}
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return false, err
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{l.channel}.Sanitize()); err != nil {
		return false, err
	}
	appLog.Info("changefeed listening", "channel", l.channel)
	if l.OnListen != nil {
		l.OnListen()
	}

	for {
		n, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return true, err
		}
		l.onEvent(n.Payload)
	}
}
