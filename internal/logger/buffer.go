package logger

import (
	"sync"
	"time"

	"go.uber.org/zap/zapcore"
)

// Entry is a single captured log line for the TUI logs view.
type Entry struct {
	Time    time.Time
	Level   zapcore.Level
	Message string
	Fields  map[string]interface{}
}

// LogBuffer is a fixed-size thread-safe ring of recent log entries. When full
// the oldest entry is overwritten; the rotated log file keeps full history.
type LogBuffer struct {
	mu      sync.Mutex
	entries []Entry
	next    int
	wrapped bool
	notify  func(Entry)
}

// NewLogBuffer creates a ring buffer holding up to size entries.
func NewLogBuffer(size int) *LogBuffer {
	if size <= 0 {
		size = 256
	}
	return &LogBuffer{entries: make([]Entry, size)}
}

// SetNotify registers a callback invoked after every Add, outside the buffer
// lock. The callback must not block.
func (b *LogBuffer) SetNotify(fn func(Entry)) {
	b.mu.Lock()
	b.notify = fn
	b.mu.Unlock()
}

// Add appends an entry, overwriting the oldest once the ring is full.
func (b *LogBuffer) Add(entry Entry) {
	b.mu.Lock()
	b.entries[b.next] = entry
	b.next = (b.next + 1) % len(b.entries)
	if b.next == 0 {
		b.wrapped = true
	}
	notify := b.notify
	b.mu.Unlock()

	if notify != nil {
		notify(entry)
	}
}

// Recent returns up to limit entries, oldest first. limit <= 0 returns all.
func (b *LogBuffer) Recent(limit int) []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()

	count := b.next
	start := 0
	if b.wrapped {
		count = len(b.entries)
		start = b.next
	}
	if limit > 0 && limit < count {
		start = (start + count - limit) % len(b.entries)
		count = limit
	}

	out := make([]Entry, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, b.entries[(start+i)%len(b.entries)])
	}
	return out
}

// Len returns the number of entries currently held.
func (b *LogBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.wrapped {
		return len(b.entries)
	}
	return b.next
}

// bufferCore is a zapcore.Core that mirrors log entries into a LogBuffer.
type bufferCore struct {
	buffer *LogBuffer
	level  zapcore.LevelEnabler
	fields []zapcore.Field
}

func newBufferCore(buffer *LogBuffer, level zapcore.LevelEnabler) zapcore.Core {
	return &bufferCore{buffer: buffer, level: level}
}

func (c *bufferCore) Enabled(level zapcore.Level) bool {
	return c.level.Enabled(level)
}

func (c *bufferCore) With(fields []zapcore.Field) zapcore.Core {
	clone := &bufferCore{buffer: c.buffer, level: c.level}
	clone.fields = append(append([]zapcore.Field{}, c.fields...), fields...)
	return clone
}

func (c *bufferCore) Check(entry zapcore.Entry, checked *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return checked.AddCore(entry, c)
	}
	return checked
}

func (c *bufferCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	enc := zapcore.NewMapObjectEncoder()
	for _, f := range c.fields {
		f.AddTo(enc)
	}
	for _, f := range fields {
		f.AddTo(enc)
	}

	c.buffer.Add(Entry{
		Time:    entry.Time,
		Level:   entry.Level,
		Message: entry.Message,
		Fields:  enc.Fields,
	})
	return nil
}

func (c *bufferCore) Sync() error {
	return nil
}
