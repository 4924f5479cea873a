//go:build !(linux || darwin || freebsd || netbsd || openbsd)

package terminal

import (
	"fmt"
	"runtime"

	"github.com/retroenv/chip8vm/internal/host"
	"github.com/retroenv/retrogolib/log"
)

// New returns host.ErrUnavailable, raw terminal mode is not supported on this platform.
func New(_ *log.Logger) (host.Host, error) {
	return nil, fmt.Errorf("%w: terminal host is not supported on %s", host.ErrUnavailable, runtime.GOOS)
}
