// Package portal is the application facade the UI talks to. It combines the
// service layer, the session manager, simulated latency, and user-facing
// notifications into one surface. Every operation returns a Deferred that
// resolves off the calling goroutine.
package portal

import (
	"context"
	"fmt"
	"time"

	"staffportal/internal/async"
	"staffportal/internal/core"
	"staffportal/internal/notify"
	"staffportal/internal/session"
	"staffportal/pkg/domain"

	"go.uber.org/zap"
)

// Portal is the top-level application surface.
type Portal struct {
	svc      *core.Service
	sessions *session.Manager
	delays   async.Delays
	sink     notify.Sink
	logger   *zap.Logger
}

// Option configures a Portal.
type Option func(*Portal)

// WithDelays overrides the simulated latency profile.
func WithDelays(d async.Delays) Option {
	return func(p *Portal) { p.delays = d }
}

// WithSink attaches the notification sink.
func WithSink(s notify.Sink) Option {
	return func(p *Portal) { p.sink = s }
}

// WithLogger attaches a logger for operation-level events.
func WithLogger(l *zap.Logger) Option {
	return func(p *Portal) { p.logger = l }
}

// New constructs a portal over the supplied service and session manager.
func New(svc *core.Service, sessions *session.Manager, opts ...Option) *Portal {
	p := &Portal{
		svc:      svc,
		sessions: sessions,
		delays:   async.DefaultDelays(),
		sink:     notify.NopSink{},
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Sessions exposes the session manager for navigation guards.
func (p *Portal) Sessions() *session.Manager { return p.sessions }

// Service exposes the underlying service layer.
func (p *Portal) Service() *core.Service { return p.svc }

func (p *Portal) requireAuth() error {
	if !p.sessions.Authenticated() {
		return domain.AuthError{Reason: "not signed in"}
	}
	return nil
}

func (p *Portal) requireCap(cap domain.Capability) error {
	if err := p.requireAuth(); err != nil {
		return err
	}
	if !p.sessions.Can(cap) {
		return domain.AuthError{Reason: fmt.Sprintf("missing capability %s", cap)}
	}
	return nil
}

func (p *Portal) notifySuccess(message string) {
	p.sink.Notify(notify.Notification{Level: notify.LevelSuccess, Message: message, At: time.Now()})
}

func (p *Portal) notifyError(message string, err error) {
	p.sink.Notify(notify.Notification{
		Level:   notify.LevelError,
		Message: fmt.Sprintf("%s: %v", message, err),
		At:      time.Now(),
	})
}

func (p *Portal) notifyWarnings(res domain.Result) {
	for _, v := range res.Violations {
		if v.Severity == domain.SeverityBlock {
			continue
		}
		p.sink.Notify(notify.Notification{
			Level:   notify.LevelInfo,
			Message: fmt.Sprintf("%s: %s", v.Rule, v.Message),
			At:      time.Now(),
		})
	}
}

// outcome reports a completed write to the sink and the log.
func (p *Portal) outcome(op, success string, res domain.Result, err error) {
	if err != nil {
		p.logger.Warn(op+" failed", zap.Error(err))
		p.notifyError(success, err)
		return
	}
	p.logger.Info(op, zap.Int("violations", len(res.Violations)))
	p.notifyWarnings(res)
	p.notifySuccess(success)
}

// runGet wraps a single-record read with the get latency class.
func runGet[T any](p *Portal, ctx context.Context, fn func(ctx context.Context) (T, error)) *async.Deferred[T] {
	if err := p.requireAuth(); err != nil {
		var zero T
		return async.Resolved(zero, err)
	}
	return async.Run(ctx, p.delays.Get, fn)
}

// runList wraps a collection read with the list latency class.
func runList[T any](p *Portal, ctx context.Context, fn func(ctx context.Context) (T, error)) *async.Deferred[T] {
	if err := p.requireAuth(); err != nil {
		var zero T
		return async.Resolved(zero, err)
	}
	return async.Run(ctx, p.delays.List, fn)
}

// runWrite wraps a mutation with the write latency class, capability gating,
// and outcome notification.
func runWrite[T any](p *Portal, ctx context.Context, cap domain.Capability, op, success string, fn func(ctx context.Context) (T, domain.Result, error)) *async.Deferred[T] {
	var gateErr error
	if cap == "" {
		gateErr = p.requireAuth()
	} else {
		gateErr = p.requireCap(cap)
	}
	if gateErr != nil {
		var zero T
		return async.Resolved(zero, gateErr)
	}
	return async.Run(ctx, p.delays.Write, func(ctx context.Context) (T, error) {
		v, res, err := fn(ctx)
		p.outcome(op, success, res, err)
		return v, err
	})
}
