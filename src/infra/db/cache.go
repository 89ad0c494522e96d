package db

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"roombooking/src/core/domain"
	"roombooking/src/infra/config"
	"roombooking/src/infra/logger"
)

// Event is a connection lifecycle notification.
type Event string

const (
	EventConnected    Event = "connected"
	EventError        Event = "error"
	EventDisconnected Event = "disconnected"
)

// Observer receives lifecycle events. It must not block; its outcome never
// affects the cache.
type Observer func(event Event, err error)

// ErrClosed is returned to callers whose establishment attempt was overtaken
// by Close. The pool it produced is closed rather than published.
var ErrClosed = errors.New("connection cache closed during establishment")

// DialFunc establishes a new pool.
type DialFunc func(ctx context.Context) (*Postgres, error)

// Cache hands out one shared *Postgres for the life of the process.
//
// State moves none -> connecting -> ready. Concurrent callers that find no
// ready handle share a single establishment attempt; if it fails, nothing is
// cached and the next call dials again. Close bumps the epoch so that an
// attempt still in flight discards its pool instead of publishing it.
type Cache struct {
	dial    DialFunc
	timeout time.Duration
	observe Observer

	ready  atomic.Pointer[Postgres]
	flight singleflight.Group

	mu    sync.Mutex // guards epoch and publishing to ready
	epoch uint64
}

// NewCache returns a cache that dials cfg and, when cfg.Migrate is set,
// applies the embedded migrations before publishing the pool.
// Nothing is dialed until the first Get.
func NewCache(cfg config.DatabaseConfig, log *slog.Logger) *Cache {
	log = logger.WithComponent(log, "db")
	dial := func(ctx context.Context) (*Postgres, error) {
		pg, err := Dial(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		if cfg.Migrate {
			if err := Migrate(ctx, pg); err != nil {
				pg.Close()
				return nil, err
			}
		}
		return pg, nil
	}
	return NewCacheWithDialer(dial, cfg.ConnectTimeout, LogObserver(log))
}

// NewCacheWithDialer builds a cache around an arbitrary dialer. A
// non-positive timeout leaves the attempt unbounded. observe may be nil.
func NewCacheWithDialer(dial DialFunc, timeout time.Duration, observe Observer) *Cache {
	return &Cache{dial: dial, timeout: timeout, observe: observe}
}

// Get returns the live handle, establishing it if needed. Failures are
// reported as domain connection errors.
//
// The establishment attempt is detached from ctx: a caller that gives up
// stops waiting, but the attempt carries on for the other callers until it
// succeeds or its own timeout expires.
func (c *Cache) Get(ctx context.Context) (*Postgres, error) {
	if pg := c.ready.Load(); pg != nil {
		return pg, nil
	}

	c.mu.Lock()
	epoch := c.epoch
	c.mu.Unlock()

	ch := c.flight.DoChan(strconv.FormatUint(epoch, 10), func() (any, error) {
		// A caller may have arrived just after the previous attempt published.
		if pg := c.ready.Load(); pg != nil {
			return pg, nil
		}

		attemptCtx := context.WithoutCancel(ctx)
		if c.timeout > 0 {
			var cancel context.CancelFunc
			attemptCtx, cancel = context.WithTimeout(attemptCtx, c.timeout)
			defer cancel()
		}

		pg, err := c.dial(attemptCtx)
		if err != nil {
			c.notify(EventError, err)
			return nil, err
		}

		c.mu.Lock()
		if c.epoch != epoch {
			c.mu.Unlock()
			pg.Close()
			return nil, ErrClosed
		}
		c.ready.Store(pg)
		c.mu.Unlock()

		c.notify(EventConnected, nil)
		return pg, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, domain.NewConnectionError(res.Err)
		}
		return res.Val.(*Postgres), nil
	case <-ctx.Done():
		return nil, domain.NewConnectionError(ctx.Err())
	}
}

// Health pings the database through the cache.
func (c *Cache) Health(ctx context.Context) error {
	pg, err := c.Get(ctx)
	if err != nil {
		return err
	}
	return pg.Health(ctx)
}

// Close releases the pool if one was established. An attempt in flight
// closes its pool when it finishes. A later Get dials again.
func (c *Cache) Close() {
	c.mu.Lock()
	c.epoch++
	pg := c.ready.Swap(nil)
	c.mu.Unlock()

	if pg != nil {
		pg.Close()
		c.notify(EventDisconnected, nil)
	}
}

func (c *Cache) notify(event Event, err error) {
	if c.observe != nil {
		c.observe(event, err)
	}
}

// LogObserver reports lifecycle events to log.
func LogObserver(log *slog.Logger) Observer {
	return func(event Event, err error) {
		switch event {
		case EventConnected:
			logger.Info(log, "database connected")
		case EventError:
			logger.Error(log, "database connection error", "error", err)
		case EventDisconnected:
			logger.Info(log, "database disconnected")
		}
	}
}
