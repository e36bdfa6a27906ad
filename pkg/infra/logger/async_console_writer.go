package logger

import (
	"io"
	"sync"

	"github.com/NeuralTrust/TrustImage/pkg/infra/prometheus"
	"github.com/sirupsen/logrus"
)

// AsyncConsoleHook mirrors entries to out from a background goroutine so a
// slow terminal never blocks a moderation worker.
type AsyncConsoleHook struct {
	out   io.Writer
	lines chan []byte
	done  chan struct{}
	wg    sync.WaitGroup
	once  sync.Once
}

func NewAsyncConsoleHook(out io.Writer, bufferSize int) *AsyncConsoleHook {
	hook := &AsyncConsoleHook{
		out:   out,
		lines: make(chan []byte, bufferSize),
		done:  make(chan struct{}),
	}
	hook.wg.Add(1)
	go hook.run()
	return hook
}

func (h *AsyncConsoleHook) Fire(entry *logrus.Entry) error {
	line, err := entry.Logger.Formatter.Format(entry)
	if err != nil {
		return err
	}
	select {
	case h.lines <- line:
	default:
		prometheus.LogLinesDropped.WithLabelValues("console").Inc()
	}
	return nil
}

func (h *AsyncConsoleHook) run() {
	defer h.wg.Done()
	for {
		select {
		case line := <-h.lines:
			_, _ = h.out.Write(line)
		case <-h.done:
			for {
				select {
				case line := <-h.lines:
					_, _ = h.out.Write(line)
				default:
					return
				}
			}
		}
	}
}

// Close writes out whatever is still queued.
func (h *AsyncConsoleHook) Close() error {
	h.once.Do(func() {
		close(h.done)
		h.wg.Wait()
	})
	return nil
}

func (h *AsyncConsoleHook) Levels() []logrus.Level {
	return logrus.AllLevels
}
