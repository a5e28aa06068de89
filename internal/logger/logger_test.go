package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestUILogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewUILoggerTo(&buf)
	l.Logf("pasting to %s\n", "dpaste")
	l.Log("done\n")
	l.Log("again")
	assert.Equal(t, "pasting to dpaste\ndone\nagain\n", buf.String())
}

func TestWith_PlainLoggerGetsFormattedFields(t *testing.T) {
	var buf bytes.Buffer
	With(NewUILoggerTo(&buf), "backend loaded", "name", "dpaste", "source", "builtin:dpaste")
	assert.Equal(t, "backend loaded name=dpaste source=builtin:dpaste\n", buf.String())
}

func TestWith_ZapLoggerGetsStructuredFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	With(NewZapLogger(zap.New(core)), "backend loaded", "name", "dpaste")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "backend loaded", entry.Message)
	assert.Equal(t, "dpaste", entry.ContextMap()["name"])
}

func TestNewDiagnostics_QuietByDefault(t *testing.T) {
	l, err := NewDiagnostics(false)
	require.NoError(t, err)
	l.Logf("dropped %d", 1)
	l.Log("dropped")
}
