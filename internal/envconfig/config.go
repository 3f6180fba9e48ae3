// Package envconfig reads the CONV2D_* environment variables that tune the CPU
// backend and the command line tool.
package envconfig

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/born-ml/conv2d/internal/logutil"
)

var (
	// Set via CONV2D_DEBUG in the environment
	Debug bool
	// LogLevel is derived from CONV2D_DEBUG: Info when unset, Debug for any
	// true value and TRACE for a level of 2 or more.
	LogLevel slog.Level
	// Set via CONV2D_NUM_THREADS in the environment
	NumThreads int
	// Set via CONV2D_MIN_CHUNK in the environment
	MinChunk int
	// Set via CONV2D_SEQUENTIAL in the environment
	Sequential bool
)

// EnvVar is one documented setting and its current value.
type EnvVar struct {
	Name        string
	Value       any
	Description string
}

// AsMap returns every setting keyed by variable name.
func AsMap() map[string]EnvVar {
	return map[string]EnvVar{
		"CONV2D_DEBUG":       {"CONV2D_DEBUG", Debug, "Show additional debug information (e.g. CONV2D_DEBUG=1, or 2 for per-call kernel traces)"},
		"CONV2D_NUM_THREADS": {"CONV2D_NUM_THREADS", NumThreads, "Maximum number of kernel worker goroutines (default: number of CPUs)"},
		"CONV2D_MIN_CHUNK":   {"CONV2D_MIN_CHUNK", MinChunk, "Minimum rows of work per goroutine (default 4)"},
		"CONV2D_SEQUENTIAL":  {"CONV2D_SEQUENTIAL", Sequential, "Run kernels on the calling goroutine only"},
	}
}

// Values returns the current value of every setting formatted as a string.
func Values() map[string]string {
	vals := make(map[string]string)
	for k, v := range AsMap() {
		vals[k] = fmt.Sprintf("%v", v.Value)
	}
	return vals
}

// Clean quotes and spaces from the value
func clean(key string) string {
	return strings.Trim(os.Getenv(key), "\"' ")
}

func init() {
	LoadConfig()
}

// LoadConfig resets every setting to its default and re-reads the environment.
func LoadConfig() {
	Debug = false
	LogLevel = slog.LevelInfo
	NumThreads = runtime.NumCPU()
	MinChunk = 4
	Sequential = false

	if debug := clean("CONV2D_DEBUG"); debug != "" {
		if n, err := strconv.Atoi(debug); err == nil && n >= 2 {
			Debug = true
			LogLevel = logutil.LevelTrace
		} else if d, err := strconv.ParseBool(debug); err == nil {
			Debug = d
		} else {
			Debug = true
		}
		if Debug && LogLevel == slog.LevelInfo {
			LogLevel = slog.LevelDebug
		}
	}

	if seq := clean("CONV2D_SEQUENTIAL"); seq != "" {
		s, err := strconv.ParseBool(seq)
		if err == nil {
			Sequential = s
		}
	}

	if onp := clean("CONV2D_NUM_THREADS"); onp != "" {
		np, err := strconv.Atoi(onp)
		if err != nil || np <= 0 {
			slog.Error("invalid setting, ignoring", "CONV2D_NUM_THREADS", onp, "error", err)
		} else {
			NumThreads = np
		}
	}

	if mc := clean("CONV2D_MIN_CHUNK"); mc != "" {
		m, err := strconv.Atoi(mc)
		if err != nil || m <= 0 {
			slog.Error("invalid setting, ignoring", "CONV2D_MIN_CHUNK", mc, "error", err)
		} else {
			MinChunk = m
		}
	}
}
