package paths

import (
	"context"
	"fmt"

	"github.com/katalvlaran/pipenet"
	"github.com/katalvlaran/pipenet/network"
)

var (
	// ErrNetworkNil is returned when a nil *network.Network is passed to Enumerate.
	ErrNetworkNil = fmt.Errorf("paths: network is nil: %w", pipenet.ErrInvalidConfiguration)

	// ErrSupplyNotFound indicates that no segment starts or ends at the supply node.
	ErrSupplyNotFound = fmt.Errorf("paths: supply node not found: %w", pipenet.ErrInvalidConfiguration)

	// ErrExitNotFound indicates that no segment starts or ends at the exit node.
	ErrExitNotFound = fmt.Errorf("paths: exit node not found: %w", pipenet.ErrInvalidConfiguration)

	// ErrDeadEnd indicates a node other than the exit with no outgoing segment.
	ErrDeadEnd = fmt.Errorf("paths: node has no outgoing segment: %w", pipenet.ErrInvalidConfiguration)

	// ErrTooManyPaths indicates that MaxPaths was exceeded.
	ErrTooManyPaths = fmt.Errorf("paths: path limit exceeded: %w", pipenet.ErrInvalidConfiguration)
)

// Option configures Enumerate.
type Option func(*Options)

// Options holds the enumeration parameters.
type Options struct {
	// Ctx allows cancellation; defaults to context.Background().
	Ctx context.Context

	// OnPath, if non-nil, is called once per completed path in output order.
	// Returning an error aborts enumeration.
	OnPath func(p network.FlowPath) error

	// MaxPaths, if positive, caps the number of paths. Default 0 (no limit).
	MaxPaths int
}

// DefaultOptions returns Options with a background context, no hook and no limit.
func DefaultOptions() Options {
	return Options{Ctx: context.Background()}
}

// WithContext sets the cancellation context. A nil ctx is ignored.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnPath installs fn as the completed-path hook.
func WithOnPath(fn func(p network.FlowPath) error) Option {
	return func(o *Options) { o.OnPath = fn }
}

// WithMaxPaths limits the number of enumerated paths.
func WithMaxPaths(n int) Option {
	return func(o *Options) { o.MaxPaths = n }
}
