// Package lock enforces one catalog session per user at a time.
package lock

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrAlreadyRunning is returned when another session holds the lock.
var ErrAlreadyRunning = errors.New("another instance is already running")

// Guard is a held session lock. Release must be called on every exit path;
// deferring it right after Acquire is the expected usage.
type Guard interface {
	Release() error
}

type fileGuard struct {
	lock    *flock.Flock
	session string
	logger  *zap.Logger
}

// DefaultPath returns the per-user lock file location.
func DefaultPath() string {
	return filepath.Join(os.TempDir(), fmt.Sprintf("animes-%d.lock", os.Getuid()))
}

// Acquire takes the session lock, failing with ErrAlreadyRunning if another
// process holds it. The check happens before any catalog access.
func Acquire(path string, logger *zap.Logger) (Guard, error) {
	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire session lock: %w", err)
	}
	if !ok {
		return nil, ErrAlreadyRunning
	}

	session := uuid.NewString()
	contents := fmt.Sprintf("pid=%d session=%s\n", os.Getpid(), session)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		fl.Unlock()
		return nil, fmt.Errorf("write session lock: %w", err)
	}
	return &fileGuard{lock: fl, session: session, logger: logger}, nil
}

// Release drops the lock. If the lock file disappeared while the session was
// running, the mutual-exclusion guarantee was compromised; that is surfaced
// as a warning, not an error, and the session still completes.
func (g *fileGuard) Release() error {
	if _, err := os.Stat(g.lock.Path()); errors.Is(err, fs.ErrNotExist) {
		g.logger.Warn("session lock file was removed while the session was running; "+
			"another instance may have run concurrently",
			zap.String("path", g.lock.Path()),
			zap.String("session", g.session))
		g.lock.Unlock()
		return nil
	}
	if err := g.lock.Unlock(); err != nil {
		return fmt.Errorf("release session lock: %w", err)
	}
	os.Remove(g.lock.Path())
	return nil
}
