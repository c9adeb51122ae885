package utils

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSpinner(t *testing.T) {
	assert := assert.New(t)

	var buf bytes.Buffer
	s := NewSpinner("working", time.Millisecond, false)
	s.SetWriter(&buf)

	s.Start()
	s.Start()
	time.Sleep(20 * time.Millisecond)
	s.StopWithMsg("done")
	s.Stop()

	out := buf.String()
	assert.Contains(out, "working")
	assert.True(strings.HasSuffix(out, "done"))
	assert.Equal(1, strings.Count(out, "done"))

	// The spinner can be restarted once stopped.
	buf.Reset()
	s.Start()
	s.Stop()
	assert.Contains(buf.String(), "done")
}

func TestSpinner_Cursor(t *testing.T) {
	var buf bytes.Buffer
	s := NewSpinner("", time.Millisecond, true)
	s.SetWriter(&buf)

	s.Start()
	s.Stop()
	if strings.Contains(buf.String(), "\033[?25l") {
		assert.Contains(t, buf.String(), "\033[?25h")
	}
}

func TestSpinner_RestartDuringStop(t *testing.T) {
	s := NewSpinner("", 20*time.Millisecond, false)
	s.SetWriter(io.Discard)

	for i := 0; i < 10; i++ {
		s.Start()
		stopped := make(chan struct{})
		go func() {
			s.Stop()
			close(stopped)
		}()
		time.Sleep(5 * time.Millisecond)
		// Restarting while the previous goroutine sleeps must not hide its stop signal.
		s.Start()

		select {
		case <-stopped:
		case <-time.After(2 * time.Second):
			t.Fatalf("Stop did not return (iteration %d)", i)
		}
		s.Stop()
	}
}
