package envconfig

import (
	"log/slog"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/conv2d/internal/logutil"
)

func TestDefaults(t *testing.T) {
	t.Setenv("CONV2D_DEBUG", "")
	t.Setenv("CONV2D_NUM_THREADS", "")
	t.Setenv("CONV2D_MIN_CHUNK", "")
	t.Setenv("CONV2D_SEQUENTIAL", "")
	LoadConfig()

	assert.False(t, Debug)
	assert.Equal(t, runtime.NumCPU(), NumThreads)
	assert.Equal(t, 4, MinChunk)
	assert.False(t, Sequential)
}

func TestConfig(t *testing.T) {
	t.Setenv("CONV2D_DEBUG", "")
	LoadConfig()
	require.False(t, Debug)

	t.Setenv("CONV2D_DEBUG", "false")
	LoadConfig()
	require.False(t, Debug)

	t.Setenv("CONV2D_DEBUG", "1")
	LoadConfig()
	require.True(t, Debug)

	t.Setenv("CONV2D_DEBUG", "yes please")
	LoadConfig()
	require.True(t, Debug)
}

func TestLogLevel(t *testing.T) {
	tests := []struct {
		value string
		want  slog.Level
	}{
		{"", slog.LevelInfo},
		{"false", slog.LevelInfo},
		{"0", slog.LevelInfo},
		{"1", slog.LevelDebug},
		{"true", slog.LevelDebug},
		{"2", logutil.LevelTrace},
		{"3", logutil.LevelTrace},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("CONV2D_DEBUG", tt.value)
			LoadConfig()
			assert.Equal(t, tt.want, LogLevel)
		})
	}
}

func TestNumericSettings(t *testing.T) {
	tests := []struct {
		name       string
		threads    string
		chunk      string
		wantThread int
		wantChunk  int
	}{
		{"explicit", "3", "16", 3, 16},
		{"quoted", "\"2\"", " '8' ", 2, 8},
		{"invalid ignored", "many", "-1", runtime.NumCPU(), 4},
		{"zero ignored", "0", "0", runtime.NumCPU(), 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CONV2D_NUM_THREADS", tt.threads)
			t.Setenv("CONV2D_MIN_CHUNK", tt.chunk)
			LoadConfig()
			assert.Equal(t, tt.wantThread, NumThreads)
			assert.Equal(t, tt.wantChunk, MinChunk)
		})
	}
}

func TestSequential(t *testing.T) {
	t.Setenv("CONV2D_SEQUENTIAL", "true")
	LoadConfig()
	assert.True(t, Sequential)

	t.Setenv("CONV2D_SEQUENTIAL", "nonsense")
	LoadConfig()
	assert.False(t, Sequential)
}

func TestValues(t *testing.T) {
	t.Setenv("CONV2D_NUM_THREADS", "7")
	LoadConfig()

	vals := Values()
	assert.Equal(t, "7", vals["CONV2D_NUM_THREADS"])
	assert.Len(t, vals, len(AsMap()))
	for name, v := range AsMap() {
		assert.Equal(t, name, v.Name)
		assert.NotEmpty(t, v.Description, name)
	}
}
