package utils

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// WaitTerminate delivers SIGINT, SIGTERM and SIGQUIT.
func WaitTerminate() <-chan os.Signal {
	c := make(chan os.Signal, 3)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	return c
}

// RedirectFile makes the descriptor of from refer to to, e.g. stderr to a log file.
func RedirectFile(from, to *os.File) error {
	if err := syscall.Dup2(int(to.Fd()), int(from.Fd())); err != nil {
		return fmt.Errorf("redirect fd %d to %s: %w", from.Fd(), to.Name(), err)
	}
	return nil
}

// OpenLogFile opens path for appending, creating it if needed.
func OpenLogFile(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}
