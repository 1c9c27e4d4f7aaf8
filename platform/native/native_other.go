//go:build !linux && !windows

package native

import "log/slog"

func Open(*slog.Logger) (*Backend, error) {
	return nil, ErrUnsupported
}
