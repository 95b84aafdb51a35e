package stats

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

const ringSize = 60

// Reader is the read side of a Collector, used by presenters.
type Reader interface {
	Snapshot() Snapshot
	RollingSpeed(seconds int) float64
	ETA() time.Duration
}

// ReadTicker is a Reader that presenters also drive once per second.
type ReadTicker interface {
	Reader
	Tick()
	SparklineData(n int) []float64
}

// Collector tracks restore progress using lock-free atomic counters.
//
// bytesDone advances by an operation's declared size once the operation
// reaches a terminal outcome, whatever that outcome is. It only ever grows,
// so it is safe to render as a progress bar against bytesTotal.
type Collector struct {
	filesCopied     atomic.Int64
	filesConflicted atomic.Int64
	filesFailed     atomic.Int64
	bytesCopied     atomic.Int64
	bytesDone       atomic.Int64
	dirsCreated     atomic.Int64
	bytesTotal      atomic.Int64
	filesTotal      atomic.Int64
	startTime       time.Time

	// Ring buffer: written only by Tick(), never by workers.
	mu         sync.Mutex
	throughput [ringSize]int64 // bytesDone delta per second
	ringIdx    int
	ringCount  int
	lastBytes  int64
}

// NewCollector creates a Collector with startTime set to now.
func NewCollector() *Collector {
	return &Collector{startTime: time.Now()}
}

// SetTotals records plan totals (called once before copying starts).
func (c *Collector) SetTotals(files, bytes int64) {
	c.filesTotal.Store(files)
	c.bytesTotal.Store(bytes)
}

// Snapshot is a point-in-time read of all counters.
type Snapshot struct {
	FilesCopied     int64
	FilesConflicted int64
	FilesFailed     int64
	BytesCopied     int64
	BytesDone       int64
	DirsCreated     int64
	BytesTotal      int64
	FilesTotal      int64
	Elapsed         time.Duration
}

// FilesDone is the number of operations that reached a terminal outcome.
func (s Snapshot) FilesDone() int64 {
	return s.FilesCopied + s.FilesConflicted + s.FilesFailed
}

func (c *Collector) AddFilesCopied(n int64)     { c.filesCopied.Add(n) }
func (c *Collector) AddFilesConflicted(n int64) { c.filesConflicted.Add(n) }
func (c *Collector) AddFilesFailed(n int64)     { c.filesFailed.Add(n) }
func (c *Collector) AddBytesCopied(n int64)     { c.bytesCopied.Add(n) }
func (c *Collector) AddBytesDone(n int64)       { c.bytesDone.Add(n) }
func (c *Collector) AddDirsCreated(n int64)     { c.dirsCreated.Add(n) }

// BytesDone returns the monotonic progress counter.
func (c *Collector) BytesDone() int64 { return c.bytesDone.Load() }

// Snapshot returns a point-in-time read of all counters.
func (c *Collector) Snapshot() Snapshot {
	return Snapshot{
		FilesCopied:     c.filesCopied.Load(),
		FilesConflicted: c.filesConflicted.Load(),
		FilesFailed:     c.filesFailed.Load(),
		BytesCopied:     c.bytesCopied.Load(),
		BytesDone:       c.bytesDone.Load(),
		DirsCreated:     c.dirsCreated.Load(),
		BytesTotal:      c.bytesTotal.Load(),
		FilesTotal:      c.filesTotal.Load(),
		Elapsed:         c.Elapsed(),
	}
}

// Tick snapshots the progress delta into the ring buffer. Called 1/sec by a presenter.
func (c *Collector) Tick() {
	current := c.bytesDone.Load()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.throughput[c.ringIdx] = current - c.lastBytes
	c.lastBytes = current
	c.ringIdx = (c.ringIdx + 1) % ringSize
	if c.ringCount < ringSize {
		c.ringCount++
	}
}

// RollingSpeed returns average bytes/sec over the last n seconds of samples.
func (c *Collector) RollingSpeed(seconds int) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := min(seconds, c.ringCount)
	if count <= 0 {
		return 0
	}
	var sum int64
	for i := range count {
		idx := (c.ringIdx - 1 - i + ringSize) % ringSize
		sum += c.throughput[idx]
	}
	return float64(sum) / float64(count)
}

// SparklineData returns up to n per-second byte deltas, oldest first.
func (c *Collector) SparklineData(n int) []float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := min(n, c.ringCount)
	out := make([]float64, count)
	for i := range count {
		idx := (c.ringIdx - count + i + ringSize) % ringSize
		out[i] = float64(c.throughput[idx])
	}
	return out
}

// ETA estimates remaining time based on rolling speed and remaining bytes.
func (c *Collector) ETA() time.Duration {
	speed := c.RollingSpeed(10)
	if speed <= 0 {
		return 0
	}
	remaining := c.bytesTotal.Load() - c.bytesDone.Load()
	if remaining <= 0 {
		return 0
	}
	return time.Duration(float64(remaining)/speed) * time.Second
}

// Elapsed returns time since collector creation.
func (c *Collector) Elapsed() time.Duration {
	return time.Since(c.startTime)
}

func (s Snapshot) String() string {
	return fmt.Sprintf(
		"copied=%d conflicts=%d failed=%d bytes=%d done=%d/%d dirs=%d",
		s.FilesCopied, s.FilesConflicted, s.FilesFailed,
		s.BytesCopied, s.BytesDone, s.BytesTotal, s.DirsCreated,
	)
}

// FormatBytes returns a human-readable byte count.
func FormatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
