// Package sink holds the ResultSink and TelemetrySink implementations used by a growth run.
package sink

import (
	"bufio"
	"io"
	"os"
	"sync"

	"github.com/pkg/errors"

	"github.com/2x3systems/clusters/clusters"
	"github.com/2x3systems/clusters/libclusters/graph"
)

// PairsWriter writes one line per graph: either its edges as whitespace-separated vertex index
// pairs ("0 1 0 2") or its graph6 encoding.
type PairsWriter struct {
	mu     sync.Mutex
	out    *bufio.Writer
	closer io.Closer
	graph6 bool
	line   []byte
}

// NewPairsWriter returns a PairsWriter writing to w in the given format (clusters.FormatPairs or clusters.FormatGraph6).
func NewPairsWriter(w io.Writer, format string) (*PairsWriter, error) {
	pw := &PairsWriter{
		out:  bufio.NewWriterSize(w, 64*1024),
		line: make([]byte, 0, 256),
	}
	switch format {
	case clusters.FormatPairs, "":
	case clusters.FormatGraph6:
		pw.graph6 = true
	default:
		return nil, errors.Wrapf(clusters.ErrBadConfig, "unknown output format %q", format)
	}
	return pw, nil
}

// OpenPairsFile opens pathname for appending (creating it if needed) and returns a PairsWriter over it.
func OpenPairsFile(pathname, format string) (*PairsWriter, error) {
	file, err := os.OpenFile(pathname, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %q", pathname)
	}
	pw, err := NewPairsWriter(file, format)
	if err != nil {
		file.Close()
		return nil, err
	}
	pw.closer = file
	return pw, nil
}

// AppendUnique writes each graph of U on its own line and flushes.
func (pw *PairsWriter) AppendUnique(N int, U []*graph.Graph) error {
	pw.mu.Lock()
	defer pw.mu.Unlock()

	for _, X := range U {
		if pw.graph6 {
			pw.line = append(pw.line[:0], X.Graph6()...)
		} else {
			pw.line = X.AppendEdgePairs(pw.line[:0])
		}
		pw.line = append(pw.line, '\n')
		if _, err := pw.out.Write(pw.line); err != nil {
			return err
		}
	}
	return pw.out.Flush()
}

// Close flushes pending output and closes the underlying file, if any.
func (pw *PairsWriter) Close() error {
	pw.mu.Lock()
	defer pw.mu.Unlock()

	err := pw.out.Flush()
	if pw.closer != nil {
		if cerr := pw.closer.Close(); err == nil {
			err = cerr
		}
		pw.closer = nil
	}
	return err
}
