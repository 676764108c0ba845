package session

import (
	"context"
	"time"

	"go.uber.org/zap"

	"mobilecare/pkg/metrics"
)

const (
	DefaultTTL           = 12 * time.Hour
	DefaultCheckInterval = 60 * time.Second
)

// Guard enforces a hard ceiling on how long a stored credential stays
// usable locally, independent of the backend token's own expiry. It is
// a usability timeout, not a security boundary: a tampered loginTime
// only shifts when the wipe happens, the backend still rejects a dead
// token.
type Guard struct {
	store  Store
	logger *zap.Logger

	TTL      time.Duration
	Interval time.Duration

	// OnExpired is called after the store has been wiped, so the shell
	// can react (the route gate turns every protected request into a
	// sign-in redirect from that point on).
	OnExpired func()

	now func() time.Time
}

func NewGuard(store Store, logger *zap.Logger) *Guard {
	return &Guard{
		store:    store,
		logger:   logger,
		TTL:      DefaultTTL,
		Interval: DefaultCheckInterval,
		now:      time.Now,
	}
}

// Run checks once immediately, then on every tick until ctx is
// cancelled. The ticker is stopped on teardown.
func (g *Guard) Run(ctx context.Context) {
	g.Check()

	ticker := time.NewTicker(g.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			g.Check()
		}
	}
}

// Check evicts the local session once the TTL has elapsed. Without a
// stored login time there is no session to expire and the check is a
// no-op.
func (g *Guard) Check() {
	loginTime := g.store.LoginTime()
	if loginTime.IsZero() {
		return
	}

	elapsed := g.now().Sub(loginTime)
	if elapsed <= g.TTL {
		return
	}

	fields := []zap.Field{
		zap.Duration("elapsed", elapsed),
		zap.Duration("ttl", g.TTL),
	}
	if exp, err := TokenExpiry(g.store.Token()); err == nil {
		fields = append(fields, zap.Time("backend_token_expiry", exp))
	}

	if err := g.store.Clear(); err != nil {
		g.logger.Error("Failed to clear expired session", zap.Error(err))
		return
	}

	metrics.IncrementSessionEviction()
	g.logger.Info("Local session expired, state wiped", fields...)

	if g.OnExpired != nil {
		g.OnExpired()
	}
}
