// Package outputpump drains a wrapped process's stdout/stderr pipes,
// decodes whatever byte encoding the child happens to be writing, and
// forwards each non-empty line to the Logger tagged as a wrapped-process
// line (spec.md §4.2, component C2).
package outputpump

import (
	"io"
	"strings"
	"sync"

	"github.com/ferama/wsw/internal/logs"
)

// Sink is the subset of *logs.Logger an OutputPump needs. Defined as an
// interface so tests can substitute a recording fake.
type Sink interface {
	Info(msg string, wrapped bool)
	Warning(msg string, wrapped bool)
	Error(msg string, wrapped bool)
}

const readBufferSize = 4096

// Run drains r until EOF, decoding each read buffer with the ladder in
// decode.go and emitting one record per non-empty line at level. It
// returns when r reaches EOF or a non-EOF read error, which happens once
// the child exits and its pipe handles are closed. Callers run this in
// its own goroutine per pipe and use wg to join before the next
// Supervisor iteration.
func Run(r io.Reader, sink Sink, level logs.Level, wg *sync.WaitGroup) {
	if wg != nil {
		defer wg.Done()
	}

	var carry strings.Builder
	buf := make([]byte, readBufferSize)

	emit := func(line string) {
		if line == "" {
			return
		}
		switch level {
		case logs.LevelWarning:
			sink.Warning(line, true)
		default:
			sink.Info(line, true)
		}
	}

	for {
		n, err := r.Read(buf)
		if n > 0 {
			chunk := buf[:n]
			text, ok := decode(chunk)
			if !ok {
				sink.Error(hexDump(chunk), true)
			} else {
				carry.WriteString(text)
				lines := strings.Split(carry.String(), "\n")
				carry.Reset()
				for i, ln := range lines {
					if i == len(lines)-1 {
						carry.WriteString(ln)
						continue
					}
					emit(strings.TrimRight(ln, "\r"))
				}
			}
		}
		if err != nil {
			if remaining := strings.TrimRight(carry.String(), "\r"); remaining != "" {
				emit(remaining)
			}
			return
		}
	}
}
