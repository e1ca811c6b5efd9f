package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLogUseCaseObserver_EmitsOneLinePerCall(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(&buf)

	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name:     "shift",
		Duration: 3 * time.Millisecond,
		Success:  true,
		Fields:   map[string]any{"project": "proj-1"},
	})

	out := buf.String()
	assert.Contains(t, out, "use case completed")
	assert.Contains(t, out, "use_case=shift")
	assert.Contains(t, out, "project=proj-1")
	assert.Contains(t, out, "level=INFO")
}

func TestLogUseCaseObserver_FailureLogsAtErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(&buf)

	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name:    "recompute",
		Success: false,
		Err:     errors.New("rule exploded"),
	})

	out := buf.String()
	assert.Contains(t, out, "use case failed")
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "rule exploded")
}

func TestNewLogUseCaseObserver_NilWriterIsNoop(t *testing.T) {
	obs := NewLogUseCaseObserver(nil)
	assert.IsType(t, NoopUseCaseObserver{}, obs)
}
