package logsink

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// EpochPath returns prefix + unix seconds of t + ".log". The prefix is
// concatenated as-is, so "logs/" yields "logs/1700000000.log".
func EpochPath(prefix string, t time.Time) string {
	return prefix + strconv.FormatInt(t.Unix(), 10) + ".log"
}

// EnsureDir creates dir and its parents if it does not exist yet.
func EnsureDir(dir string) error {
	if dir == "" {
		return nil
	}
	if _, err := os.Stat(dir); err == nil {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %q: %w", dir, err)
	}
	return nil
}

func OpenAppend(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
}
