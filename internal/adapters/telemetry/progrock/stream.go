package progrock

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"github.com/vito/progrock"
	"go.sortd.dev/envboot/internal/ui/output"
)

// streamKey addresses the line buffer of one vertex stream.
type streamKey struct {
	vertex string
	stream progrock.LogStream
}

// StreamWriter renders progrock status updates as linear, chronological
// console output with step-name prefixes. Step lifecycle messages go to
// stderr; vertex log data is forwarded line-buffered to the stream it was
// written on, so process output (pip's progress and error reporting) reaches
// the terminal as it happens.
type StreamWriter struct {
	stdout io.Writer
	stderr io.Writer
	out    *termenv.Output

	mu      sync.Mutex
	names   map[string]string
	started map[string]time.Time
	done    map[string]bool
	buffers map[streamKey]*bytes.Buffer
}

// NewStreamWriter creates a StreamWriter over the given streams.
func NewStreamWriter(stdout, stderr io.Writer) *StreamWriter {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	return &StreamWriter{
		stdout:  stdout,
		stderr:  stderr,
		out:     termenv.NewOutput(stderr, termenv.WithProfile(output.ColorProfile())),
		names:   make(map[string]string),
		started: make(map[string]time.Time),
		done:    make(map[string]bool),
		buffers: make(map[streamKey]*bytes.Buffer),
	}
}

// WriteStatus renders one status update. Recorder heartbeats re-send
// vertexes, so lifecycle transitions are deduplicated by vertex id.
func (w *StreamWriter) WriteStatus(update *progrock.StatusUpdate) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, v := range update.Vertexes {
		if _, seen := w.names[v.Id]; !seen {
			w.names[v.Id] = v.Name
			w.started[v.Id] = time.Now()
			prefix := w.out.String(fmt.Sprintf("[%s]", v.Name)).Faint().String()
			_, _ = fmt.Fprintf(w.stderr, "%s Starting...\n", prefix)
		}
	}

	for _, log := range update.Logs {
		w.writeLogLocked(log)
	}

	// Completions render after logs so a step's last output lands before
	// its status line.
	for _, v := range update.Vertexes {
		if v.Completed != nil && !w.done[v.Id] {
			w.done[v.Id] = true
			w.flushVertexLocked(v.Id)
			w.printCompletionLocked(v)
		}
	}

	return nil
}

// Close flushes any buffered partial lines.
func (w *StreamWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for key := range w.buffers {
		w.flushKeyLocked(key)
	}
	return nil
}

func (w *StreamWriter) printCompletionLocked(v *progrock.Vertex) {
	duration := time.Since(w.started[v.Id]).Round(time.Millisecond)
	prefix := fmt.Sprintf("[%s]", w.names[v.Id])

	if v.Error != nil {
		symbol := w.out.String("✗").Foreground(termenv.ANSIRed).String()
		_, _ = fmt.Fprintf(w.stderr, "%s %s Failed after %v: %s\n", prefix, symbol, duration, *v.Error)
		return
	}
	symbol := w.out.String("✓").Foreground(termenv.ANSIGreen).String()
	_, _ = fmt.Fprintf(w.stderr, "%s %s Completed in %v\n", prefix, symbol, duration)
}

func (w *StreamWriter) writeLogLocked(log *progrock.VertexLog) {
	key := streamKey{vertex: log.Vertex, stream: log.Stream}
	buf, ok := w.buffers[key]
	if !ok {
		buf = new(bytes.Buffer)
		w.buffers[key] = buf
	}
	buf.Write(log.Data)

	for {
		line, err := buf.ReadBytes('\n')
		if err != nil {
			// Incomplete line, keep it for the next update.
			if len(line) > 0 {
				rest := new(bytes.Buffer)
				rest.Write(line)
				w.buffers[key] = rest
			}
			break
		}
		w.printLineLocked(key, line)
	}
}

func (w *StreamWriter) flushVertexLocked(vertexID string) {
	for _, stream := range []progrock.LogStream{progrock.LogStream_STDOUT, progrock.LogStream_STDERR} {
		w.flushKeyLocked(streamKey{vertex: vertexID, stream: stream})
	}
}

func (w *StreamWriter) flushKeyLocked(key streamKey) {
	buf, ok := w.buffers[key]
	if !ok || buf.Len() == 0 {
		return
	}
	w.printLineLocked(key, buf.Bytes())
	buf.Reset()
}

func (w *StreamWriter) printLineLocked(key streamKey, line []byte) {
	line = bytes.TrimSuffix(line, []byte("\n"))
	line = bytes.TrimSuffix(line, []byte("\r"))
	if len(line) == 0 {
		return
	}

	dst := w.stdout
	if key.stream == progrock.LogStream_STDERR {
		dst = w.stderr
	}

	prefix := w.out.String(fmt.Sprintf("[%s]", w.names[key.vertex])).Faint().String()
	_, _ = fmt.Fprintf(dst, "%s %s\n", prefix, line)
}
