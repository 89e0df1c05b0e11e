package errors

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

type failingCloser struct{}

func (failingCloser) Close() error { return fmt.Errorf("already closed") }

type okCloser struct{ closed bool }

func (c *okCloser) Close() error {
	c.closed = true
	return nil
}

func TestDeferClose_LogsFailure(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	DeferClose(logger, failingCloser{}, "close failed")

	if !strings.Contains(buf.String(), "close failed") {
		t.Errorf("expected close error to be logged, got %q", buf.String())
	}
}

func TestDeferClose_SilentOnSuccess(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	c := &okCloser{}
	DeferClose(logger, c, "close failed")

	if !c.closed {
		t.Error("expected closer to be closed")
	}
	if buf.Len() != 0 {
		t.Errorf("expected no log output, got %q", buf.String())
	}
}

func TestDeferClose_NilCloser(t *testing.T) {
	DeferClose(zerolog.Nop(), nil, "close failed")
}
