// Package lifecycle holds values shared by startup and shutdown hooks.
package lifecycle

import "time"

// DefaultTimeout bounds every fx OnStart/OnStop hook.
const DefaultTimeout = 10 * time.Second
