package notify

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDeduper_SuppressesBurst(t *testing.T) {
	rec := &Recorder{}
	d := NewDeduper(rec, time.Hour)

	assert.True(t, d.Error("Server error. Please try again later"))
	assert.False(t, d.Error("Server error. Please try again later"))
	assert.False(t, d.Error("Server error. Please try again later"))

	assert.Equal(t, 1, rec.Count(KindError))
}

func TestDeduper_KindIsPartOfKey(t *testing.T) {
	rec := &Recorder{}
	d := NewDeduper(rec, time.Hour)

	d.Info("Saved")
	d.Success("Saved")

	assert.Len(t, rec.All(), 2)
}

func TestDeduper_WindowExpires(t *testing.T) {
	rec := &Recorder{}
	d := NewDeduper(rec, 20*time.Millisecond)

	d.Success("Added to favorites")
	assert.Eventually(t, func() bool {
		return d.Success("Added to favorites")
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, 2, rec.Count(KindSuccess))
}

func TestDeduper_ConcurrentCallers(t *testing.T) {
	rec := &Recorder{}
	d := NewDeduper(rec, time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.Error("Unable to connect")
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, rec.Count(KindError))
}

func TestDeduper_DefaultWindow(t *testing.T) {
	d := NewDeduper(&Recorder{}, 0)
	assert.Equal(t, DefaultWindow, d.window)
}

func TestWriterSink(t *testing.T) {
	var buf bytes.Buffer
	s := WriterSink{W: &buf}

	s.Notify(KindSuccess, "Added to favorites")
	s.Notify(KindError, "Server error")

	assert.Equal(t, "✓ Added to favorites\n✗ Server error\n", buf.String())
}

func TestRecorder_Reset(t *testing.T) {
	rec := &Recorder{}
	rec.Notify(KindInfo, "a")
	rec.Reset()
	assert.Empty(t, rec.All())
}
