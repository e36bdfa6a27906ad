package logger

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/NeuralTrust/TrustImage/pkg/infra/prometheus"
)

const (
	fileQueueSize     = 1000
	fileFlushInterval = 2 * time.Second
)

// AsyncFileWriter queues lines for a background goroutine that writes them
// through a buffer. Lines arriving while the queue is full or after Close are
// dropped and counted. Close drains the queue before closing the file.
type AsyncFileWriter struct {
	writer  *bufio.Writer
	file    *os.File
	lines   chan []byte
	done    chan struct{}
	stopped chan struct{}
	once    sync.Once
}

func NewAsyncFileWriter(logFile string, bufferSize int) (*AsyncFileWriter, error) {
	file, err := os.OpenFile(filepath.Clean(logFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, err
	}

	aw := &AsyncFileWriter{
		writer:  bufio.NewWriterSize(file, bufferSize),
		file:    file,
		lines:   make(chan []byte, fileQueueSize),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go aw.run()
	return aw, nil
}

func (aw *AsyncFileWriter) Write(p []byte) (int, error) {
	select {
	case <-aw.done:
		prometheus.LogLinesDropped.WithLabelValues("file").Inc()
		return len(p), nil
	default:
	}
	select {
	case aw.lines <- append([]byte(nil), p...):
	default:
		prometheus.LogLinesDropped.WithLabelValues("file").Inc()
	}
	return len(p), nil
}

func (aw *AsyncFileWriter) run() {
	defer close(aw.stopped)
	ticker := time.NewTicker(fileFlushInterval)
	defer ticker.Stop()
	for {
		select {
		case line := <-aw.lines:
			aw.write(line)
		case <-ticker.C:
			_ = aw.writer.Flush()
		case <-aw.done:
			for {
				select {
				case line := <-aw.lines:
					aw.write(line)
				default:
					_ = aw.writer.Flush()
					return
				}
			}
		}
	}
}

func (aw *AsyncFileWriter) write(line []byte) {
	if _, err := aw.writer.Write(line); err != nil {
		fmt.Fprintln(os.Stderr, "error writing log data to file", err)
	}
}

// Close flushes every queued line and closes the file. Safe to call twice.
func (aw *AsyncFileWriter) Close() error {
	var err error
	aw.once.Do(func() {
		close(aw.done)
		<-aw.stopped
		err = aw.file.Close()
	})
	return err
}
