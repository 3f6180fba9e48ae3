// Package cpu implements the CPU backend: direct 2D convolution and its
// gradients, executed on a bounded goroutine pool.
package cpu

import (
	"log/slog"

	"github.com/born-ml/conv2d/internal/envconfig"
	"github.com/born-ml/conv2d/internal/parallel"
	"github.com/born-ml/conv2d/internal/tensor"
)

// Verify that CPUBackend implements tensor.Backend.
var _ tensor.Backend = (*CPUBackend)(nil)

// CPUBackend implements the convolution entry points on CPU.
type CPUBackend struct {
	device   tensor.Device
	parallel parallel.Config
}

// New creates a CPU backend configured from the CONV2D_* environment.
func New() *CPUBackend {
	cfg := parallel.Config{
		Enabled:      !envconfig.Sequential && envconfig.NumThreads > 1,
		NumWorkers:   envconfig.NumThreads,
		MinChunkSize: envconfig.MinChunk,
	}
	return NewWithConfig(cfg)
}

// NewWithConfig creates a CPU backend with an explicit parallel configuration.
func NewWithConfig(cfg parallel.Config) *CPUBackend {
	slog.Debug("cpu backend",
		"parallel", cfg.Enabled,
		"workers", cfg.NumWorkers,
		"min_chunk", cfg.MinChunkSize,
		"host", parallel.Describe())

	return &CPUBackend{
		device:   tensor.CPU,
		parallel: cfg,
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// ParallelConfig returns the worker pool configuration used by the kernels.
func (cpu *CPUBackend) ParallelConfig() parallel.Config {
	return cpu.parallel
}
