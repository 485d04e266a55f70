package transport

import (
	"context"
	"errors"
	"time"

	"barangayconnect/internal/common"
	"barangayconnect/internal/logging"
)

// Selector normalizes the two strategies behind one Transporter. The native
// path is preferred when present; failures that neither reached the backend
// nor signalled a definitive unreachable condition fall back to the web path,
// so a broken bridge degrades the app instead of breaking it.
type Selector struct {
	native Transporter
	web    Transporter
	log    logging.Logger
}

// NewSelector wires the chosen strategies. native may be nil (browser
// context); web must not be.
func NewSelector(native, web Transporter, log logging.Logger) *Selector {
	return &Selector{native: native, web: web, log: log}
}

// Detect performs capability detection once at startup: a configured bridge
// address selects the native strategy, otherwise the client runs web-only.
func Detect(bridgeAddr string, timeout time.Duration, tokenFn func() string, log logging.Logger) (*Selector, error) {
	web := NewHTTPTransporter(timeout, tokenFn)

	if bridgeAddr == "" {
		return NewSelector(nil, web, log), nil
	}

	native, err := NewBridgeTransporter(bridgeAddr)
	if err != nil {
		return nil, err
	}
	return NewSelector(native, web, log), nil
}

// Native reports whether the native strategy is active.
func (s *Selector) Native() bool {
	return s.native != nil
}

func (s *Selector) Execute(ctx context.Context, method, url string, body any, opts Options) (*Response, error) {
	if s.native == nil {
		return s.web.Execute(ctx, method, url, body, opts)
	}

	resp, err := s.native.Execute(ctx, method, url, body, opts)
	if err == nil {
		return resp, nil
	}

	// The bridge reached the backend and got a business error: final.
	var backendErr *common.BackendError
	if errors.As(err, &backendErr) {
		return nil, err
	}

	// A definitive unreachable signal is final too; retrying over the web
	// path would only stall the caller against the same dead network.
	if errors.Is(err, common.ErrUnreachable) {
		return nil, err
	}

	s.log.Warn(ctx, "native transport failed, falling back to web", "error", err)
	return s.web.Execute(ctx, method, url, body, opts)
}

func (s *Selector) Close() error {
	if s.native != nil {
		if err := s.native.Close(); err != nil {
			return err
		}
	}
	return s.web.Close()
}
