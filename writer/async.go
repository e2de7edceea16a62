package writer

import (
	"sync"

	"github.com/garaekz/chompchamps/internal/share"
)

// AsyncWriter provides an asynchronous, buffered writer decorator.
// It wraps another writer and performs writes in a separate goroutine.
type AsyncWriter struct {
	underlyingWriter share.Writer
	logCh            chan *share.Entry
	errCh            chan error
	doneCh           chan struct{}
	wg               sync.WaitGroup
}

// NewAsyncWriter creates a new asynchronous writer.
func NewAsyncWriter(underlying share.Writer, bufferSize int) *AsyncWriter {
	aw := &AsyncWriter{
		underlyingWriter: underlying,
		logCh:            make(chan *share.Entry, bufferSize),
		errCh:            make(chan error, 1),
		doneCh:           make(chan struct{}),
	}

	aw.wg.Add(1) // Add for the run goroutine itself
	go aw.run()

	return aw
}

// Write sends a log entry to the buffer.
// It blocks while the buffer is full.
func (aw *AsyncWriter) Write(entry *share.Entry) error {
	aw.wg.Add(1) // Increment WaitGroup for each message sent
	select {
	case aw.logCh <- entry:
		return nil
	case <-aw.doneCh:
		// Writer is closed, drop the log and decrement wg
		aw.wg.Done()
		return nil
	}
}

// Close flushes the buffer and stops the writer.
func (aw *AsyncWriter) Close() error {
	close(aw.logCh)
	aw.wg.Wait() // Wait for all messages to be processed
	close(aw.doneCh)
	return aw.underlyingWriter.Close()
}

// Errors returns a channel for receiving write errors.
func (aw *AsyncWriter) Errors() <-chan error {
	return aw.errCh
}

// Flush calls the wrapped writer's Flush, if it has one. It does not wait
// for entries still queued in the buffer; only Close waits for those.
func (aw *AsyncWriter) Flush() {
	if flusher, ok := aw.underlyingWriter.(interface{ Flush() }); ok {
		flusher.Flush()
	}
}

// run is the background goroutine that performs writes.
func (aw *AsyncWriter) run() {
	for entry := range aw.logCh {
		if err := aw.underlyingWriter.Write(entry); err != nil {
			select {
			case aw.errCh <- err:
			default:
				// Error channel is full, drop the error
			}
		}
		aw.wg.Done() // Decrement WaitGroup after writing
	}
	aw.wg.Done() // Decrement for the run goroutine itself when logCh is closed
}
