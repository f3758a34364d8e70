package logs

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/natefinch/lumberjack"
)

// queueDepth bounds the in-memory queue between producers (Supervisor,
// OutputPump) and the single file-writer goroutine. A stalled disk must
// never block a producer, so enqueue drops the oldest record rather than
// growing unbounded or blocking.
const queueDepth = 1024

// Logger is the process-wide sink described in spec.md §4.3: a console
// writer and a rotating file writer, fed through a bounded queue so a
// stalled disk can never block a caller.
type Logger struct {
	prefix   string
	rotation Rotation
	maxFiles int
	dir      string
	dirOK    bool

	console *os.File

	queue chan Record
	done  chan struct{}
	wg    sync.WaitGroup

	mu           sync.Mutex
	file         *lumberjack.Logger
	currentStamp string
}

// resolveLogDir implements spec.md §4.3's directory fallback chain:
// PROGRAMDATA/wsw/logs when set and writable, else <exe_dir>/logs, else
// ./logs. Grounded on original_source/src/pkg/logs.rs get_log_dir.
func resolveLogDir() (dir string, ok bool) {
	if programData := os.Getenv("PROGRAMDATA"); programData != "" {
		dir = filepath.Join(programData, "wsw", "logs")
		if err := os.MkdirAll(dir, 0o755); err == nil {
			return dir, true
		}
	}

	if exe, err := os.Executable(); err == nil {
		dir = filepath.Join(filepath.Dir(exe), "logs")
		if err := os.MkdirAll(dir, 0o755); err == nil {
			return dir, true
		}
	}

	dir = "logs"
	if err := os.MkdirAll(dir, 0o755); err == nil {
		return dir, true
	}
	return "", false
}

// New initializes a Logger for the given service prefix (the file-name
// prefix, typically the SCM service name). If the log directory cannot be
// created the Logger still initializes with console-only output and
// emits a single bootstrap error to stderr, per spec.md §4.3's failure
// policy. The returned Close func is the drop-guard: it flushes the
// queue and stops the writer goroutine; calling it again is a no-op.
func New(prefix string, rotation Rotation, maxFiles int) (*Logger, func()) {
	dir, ok := resolveLogDir()
	l := &Logger{
		prefix:   prefix,
		rotation: rotation,
		maxFiles: maxFiles,
		dir:      dir,
		dirOK:    ok,
		console:  os.Stderr,
		queue:    make(chan Record, queueDepth),
		done:     make(chan struct{}),
	}
	if !ok {
		fmt.Fprintln(os.Stderr, "wsw: could not create log directory, continuing with console-only logging")
	}

	l.wg.Add(1)
	go l.run()

	return l, l.close
}

// Info enqueues an informational record. Never blocks.
func (l *Logger) Info(msg string, wrapped bool) { l.enqueue(LevelInfo, msg, wrapped) }

// Warning enqueues a warning record. Never blocks.
func (l *Logger) Warning(msg string, wrapped bool) { l.enqueue(LevelWarning, msg, wrapped) }

// Error enqueues an error record. Never blocks.
func (l *Logger) Error(msg string, wrapped bool) { l.enqueue(LevelError, msg, wrapped) }

func (l *Logger) enqueue(level Level, msg string, wrapped bool) {
	rec := Record{Time: time.Now(), Level: level, Message: msg, Wrapped: wrapped}
	select {
	case l.queue <- rec:
	default:
		// Queue full: drop the oldest record to make room rather than
		// block the caller. A stalled disk must never hang the
		// Supervisor or an OutputPump.
		select {
		case <-l.queue:
		default:
		}
		select {
		case l.queue <- rec:
		default:
		}
	}
}

func (l *Logger) run() {
	defer l.wg.Done()
	for {
		select {
		case rec := <-l.queue:
			l.write(rec)
		case <-l.done:
			// Drain whatever is left before exiting.
			for {
				select {
				case rec := <-l.queue:
					l.write(rec)
				default:
					return
				}
			}
		}
	}
}

func (l *Logger) write(rec Record) {
	line := rec.Format()
	fmt.Fprintln(l.console, line)

	if !l.dirOK {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	stamp := l.rotation.stamp(rec.Time)
	if l.file == nil {
		l.file = &lumberjack.Logger{
			Filename: filepath.Join(l.dir, l.rotation.logFileName(l.prefix, stamp)),
		}
		l.currentStamp = stamp
	} else if stamp != l.currentStamp {
		_ = l.file.Close()
		l.file.Filename = filepath.Join(l.dir, l.rotation.logFileName(l.prefix, stamp))
		l.currentStamp = stamp
		pruneOldFiles(l.dir, l.prefix, l.rotation, l.maxFiles, listDirNames, os.Remove)
	}

	fmt.Fprintln(l.file, line)
}

func listDirNames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

func (l *Logger) close() {
	select {
	case <-l.done:
		return // already closed
	default:
		close(l.done)
	}
	l.wg.Wait()

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		_ = l.file.Close()
	}
}
