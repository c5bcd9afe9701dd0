package sse

import (
	"log/slog"
	"time"
)

// KeepAliveWriter is the part of Writer the keep-alive loop needs
type KeepAliveWriter interface {
	WriteKeepAlive() error
}

// KeepAlive pings a stream on a fixed interval until stopped or a write fails
type KeepAlive struct {
	interval time.Duration
	done     chan struct{}
	stopped  chan struct{}
}

// NewKeepAlive creates a keep-alive loop; call Start to run it
func NewKeepAlive(interval time.Duration) *KeepAlive {
	return &KeepAlive{
		interval: interval,
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
}

// Start runs the loop in a goroutine. The returned channel closes when the
// loop ends, which after a failed write means the client is gone.
func (k *KeepAlive) Start(writer KeepAliveWriter, logger *slog.Logger) <-chan struct{} {
	go func() {
		defer close(k.stopped)
		ticker := time.NewTicker(k.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := writer.WriteKeepAlive(); err != nil {
					logger.Debug("keep-alive write failed, stopping", "error", err)
					return
				}
			case <-k.done:
				return
			}
		}
	}()
	return k.stopped
}

// Stop ends the loop and waits for its last write to finish, so the
// response can be released afterwards. Call only after Start; repeat calls
// are no-ops.
func (k *KeepAlive) Stop() {
	select {
	case <-k.done:
	default:
		close(k.done)
	}
	<-k.stopped
}
