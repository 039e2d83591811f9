package recovery

import (
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithErrCallback(t *testing.T) {
	callback := func(err error, stack []byte, w http.ResponseWriter, r *http.Request) {}
	o := newOptions(WithErrCallback(callback))

	assert.NotNil(t, o.errCallback)
	assert.True(t, o.errCallbackOverride)
}

func TestWithErrCallback_nil(t *testing.T) {
	o := newOptions(WithErrCallback(nil))

	assert.Nil(t, o.errCallback)
}

func TestWithBrokenPipeCallback(t *testing.T) {
	callback := func(err error, stack []byte, w http.ResponseWriter, r *http.Request) {}
	o := newOptions(WithBrokenPipeCallback(callback))

	assert.NotNil(t, o.brokenPipeCallback)
}

func TestWithLogCallback(t *testing.T) {
	callback := func(err error, stack []byte, brokenPipe bool) {}
	o := newOptions(WithLogCallback(callback))

	assert.NotNil(t, o.logCallback)
}

func TestWithLogger(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	o := newOptions(WithLogger(logger))

	assert.Same(t, logger, o.logger)
}

func TestWithLogPrefix(t *testing.T) {
	o := newOptions(WithLogPrefix("PREFIX"))

	assert.Equal(t, "PREFIX", o.logPrefix)
	assert.Equal(t, "PREFIX message", addPrefix(o, "message"))
}

func TestNewOptionsDefaults(t *testing.T) {
	o := newOptions()

	assert.Same(t, slog.Default(), o.logger)
	assert.NotNil(t, o.errCallback)
	assert.Nil(t, o.brokenPipeCallback)
	assert.Empty(t, o.logPrefix)
	assert.NotNil(t, o.logCallback)
}
