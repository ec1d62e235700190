// Package controller holds the page controllers. Each one owns the local
// state of a single view, issues API calls, and feeds results through the
// derived-state helpers. Controllers are driven sequentially by their page;
// they are not safe for concurrent use.
package controller

import "errors"

// ErrClosed is returned when a call arrives after Close. A closed controller
// discards in-flight results instead of writing stale state.
var ErrClosed = errors.New("controller is closed")

// guard is the unmounted flag shared by all controllers. In-flight calls are
// never cancelled; their results are simply dropped once the page is gone.
type guard struct {
	closed bool
}

// Close marks the controller unmounted. Every state write checks the flag
// first.
func (g *guard) Close() { g.closed = true }

func (g *guard) open() bool { return !g.closed }
