package spinner

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// syncBuffer is a goroutine-safe writer for capturing spinner output.
type syncBuffer struct {
	mu sync.Mutex
	sb strings.Builder
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sb.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sb.String()
}

func TestSpinner_WritesAndClears(t *testing.T) {
	buf := &syncBuffer{}

	stop := Start(buf, "Setting up...")
	time.Sleep(200 * time.Millisecond)
	stop()

	out := buf.String()
	assert.Contains(t, out, "Setting up...")
	// The final write blanks the line.
	assert.True(t, strings.HasSuffix(out, "\r"))
}

func TestSpinner_StopIsIdempotent(t *testing.T) {
	buf := &syncBuffer{}
	stop := Start(buf, "working")
	stop()
	assert.NotPanics(t, stop)
}
