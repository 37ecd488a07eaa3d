package logging

import "log/slog"

// Component returns a logger scoped to the named subsystem, attached as a
// structured "component" attribute on every record. Call sites use this
// instead of the package-level default logger directly, so log lines from
// chunk, store, index, search, and embed are distinguishable.
func Component(name string) *slog.Logger {
	return slog.Default().With(slog.String("component", name))
}
