package clusters

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/2x3systems/clusters/libclusters/graph"
)

// GraphStream carries graphs through a channel.  Ownership of a Graph travels with it.
//
// A GraphStream is also a ResultSink, so a run can stream its unique graphs to a consumer.
type GraphStream struct {
	Outlet chan *graph.Graph

	closeOnce   sync.Once
	abandonOnce sync.Once
	abandoned   chan struct{}
	err         error
}

func NewGraphStream() *GraphStream {
	return &GraphStream{
		Outlet:    make(chan *graph.Graph, 1),
		abandoned: make(chan struct{}),
	}
}

// AppendUnique pushes each graph of U into Outlet, blocking until the consumer takes it.
func (stream *GraphStream) AppendUnique(N int, U []*graph.Graph) error {
	for _, X := range U {
		select {
		case <-stream.abandoned:
			return ErrStreamClosed
		default:
		}
		select {
		case stream.Outlet <- X:
		case <-stream.abandoned:
			return ErrStreamClosed
		}
	}
	return nil
}

// CloseWithError closes Outlet.  err (which may be nil) is returned by Err() once Outlet is drained.
func (stream *GraphStream) CloseWithError(err error) {
	stream.closeOnce.Do(func() {
		stream.err = err
		close(stream.Outlet)
	})
}

// Close closes Outlet without an error.
func (stream *GraphStream) Close() {
	stream.CloseWithError(nil)
}

// Abandon signals the producer that no more graphs will be read; pending AppendUnique calls return ErrStreamClosed.
func (stream *GraphStream) Abandon() {
	stream.abandonOnce.Do(func() {
		close(stream.abandoned)
	})
}

// Err returns the error the stream was closed with.  Only valid after Outlet has been closed.
func (stream *GraphStream) Err() error {
	return stream.err
}

// PullAll drains the stream and returns how many graphs were received.
func (stream *GraphStream) PullAll() int {
	count := 0
	for range stream.Outlet {
		count++
	}
	return count
}

// PrintOpts specifies how graphs are printed by GraphStream.Print.
type PrintOpts struct {
	Label  string // Prefix label
	Graph6 bool   // If set, prints the graph6 encoding instead of edge pairs
}

// Print writes one line per graph to out and forwards each graph to the returned stream.
//
// If the returned stream is abandoned, Print abandons this stream and drains it without printing.
func (stream *GraphStream) Print(out io.Writer, opts PrintOpts) *GraphStream {
	next := NewGraphStream()

	go func() {
		buf := strings.Builder{}
		buf.Grow(256)

		var werr error
		count := 0
		abandoned := false
		for X := range stream.Outlet {
			if abandoned {
				continue
			}
			if len(opts.Label) > 0 {
				buf.WriteString(opts.Label)
				buf.WriteByte(',')
			}
			count++
			fmt.Fprintf(&buf, "%06d,v=%d,e=%d,", count, X.NumVertices(), X.NumEdges())
			if opts.Graph6 {
				buf.WriteString(X.Graph6())
			} else {
				buf.WriteString(X.String())
			}
			buf.WriteByte('\n')
			if werr == nil {
				_, werr = io.WriteString(out, buf.String())
			}
			buf.Reset()

			select {
			case next.Outlet <- X:
			case <-next.abandoned:
				abandoned = true
				stream.Abandon()
			}
		}
		if werr == nil {
			werr = stream.Err()
		}
		next.CloseWithError(werr)
	}()

	return next
}
