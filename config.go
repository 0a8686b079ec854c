package liveness

import (
	"go.uber.org/zap"

	"github.com/nk-go/liveness/varset"
)

// Config holds the recognised options for Analyze. The zero Config is
// not valid on its own — use defaultConfig or set ExitLive, so there is
// always a representation-carrying VarSet whose FromSlice builds gen,
// kill and live-in/out.
type Config[V varset.Variable[V]] struct {
	// ExitLive is the live set assumed at the exit of any block with no
	// successors. Defaults to empty.
	ExitLive varset.Set[V]

	// Logger receives sweep- and store-level diagnostics. Defaults to a
	// no-op sink.
	Logger *zap.SugaredLogger

	// CollectMaxLiveSet enables tracking of the largest live-in set seen
	// across all blocks and sweeps, surfaced on Result via
	// MaxLiveSetSize. Purely diagnostic; never changes analysis results.
	CollectMaxLiveSet bool

	// DebugAnnotate is a switch callers can use to decide whether to
	// invoke the debug package's PrettyPrint/Annotate. It is not recorded
	// on Result: neither Analyze nor the debug package reads it, so those
	// functions work whether or not it is set.
	DebugAnnotate bool
}

// Option configures a Config.
type Option[V varset.Variable[V]] func(*Config[V])

// WithExitLive sets the live set assumed at procedure exit, for blocks
// with no successors. It also fixes the VarSet representation (sorted
// slice vs. bitset-over-universe) every block's gen/kill/live-in will be
// built in, since its FromSlice is used as the factory throughout
// Analyze.
func WithExitLive[V varset.Variable[V]](exitLive varset.Set[V]) Option[V] {
	return func(c *Config[V]) { c.ExitLive = exitLive }
}

// WithLogger sets the diagnostic logger.
func WithLogger[V varset.Variable[V]](logger *zap.SugaredLogger) Option[V] {
	return func(c *Config[V]) { c.Logger = logger }
}

// WithMaxLiveSetTracking enables peak live-in-set-size instrumentation.
func WithMaxLiveSetTracking[V varset.Variable[V]]() Option[V] {
	return func(c *Config[V]) { c.CollectMaxLiveSet = true }
}

// WithDebugAnnotate sets Config.DebugAnnotate. It changes nothing in
// what Analyze computes or returns.
func WithDebugAnnotate[V varset.Variable[V]]() Option[V] {
	return func(c *Config[V]) { c.DebugAnnotate = true }
}

func defaultConfig[V varset.Variable[V]]() *Config[V] {
	return &Config[V]{
		ExitLive: varset.Empty[V](),
		Logger:   zap.NewNop().Sugar(),
	}
}
