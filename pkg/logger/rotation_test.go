package logger

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/natefinch/lumberjack.v2"
)

func TestNewRotationWriter_Size(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	w, err := NewRotationWriter(&RotationConfig{Type: RotationBySize, MaxSize: 10, MaxBackups: 2}, path)
	require.NoError(t, err)

	lj, ok := w.(*lumberjack.Logger)
	require.True(t, ok)
	assert.Equal(t, path, lj.Filename)
	assert.Equal(t, 10, lj.MaxSize)
	assert.Equal(t, 2, lj.MaxBackups)
}

func TestNewRotationWriter_Time(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	w, err := NewRotationWriter(&RotationConfig{Type: RotationByTime, RotationTime: "1h", MaxAgeTime: "bogus"}, path)
	require.NoError(t, err)

	n, err := w.Write([]byte("line\n"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestParseDurationOr(t *testing.T) {
	assert.Equal(t, time.Hour, parseDurationOr("1h", time.Minute))
	assert.Equal(t, time.Minute, parseDurationOr("", time.Minute))
	assert.Equal(t, time.Minute, parseDurationOr("-1h", time.Minute))
}
