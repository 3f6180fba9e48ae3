package parallel

import (
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/sys/cpu"
)

// CPUFeatures lists the SIMD extensions detected on the host CPU.
func CPUFeatures() []string {
	var features []string
	add := func(ok bool, name string) {
		if ok {
			features = append(features, name)
		}
	}

	switch runtime.GOARCH {
	case "amd64", "386":
		add(cpu.X86.HasSSE41 || cpu.X86.HasSSE42, "sse4")
		add(cpu.X86.HasAVX, "avx")
		add(cpu.X86.HasAVX2, "avx2")
		add(cpu.X86.HasFMA, "fma")
		add(cpu.X86.HasAVX512F, "avx512f")
	case "arm64":
		add(cpu.ARM64.HasASIMD, "asimd")
		add(cpu.ARM64.HasFP, "fp")
		add(cpu.ARM64.HasFPHP, "fphp")
		add(cpu.ARM64.HasSVE, "sve")
	}
	return features
}

// Describe returns a one-line summary of the host: architecture, logical CPUs
// and detected SIMD extensions.
func Describe() string {
	features := CPUFeatures()
	if len(features) == 0 {
		features = []string{"none"}
	}
	return fmt.Sprintf("%s cpus=%d simd=%s", runtime.GOARCH, runtime.NumCPU(), strings.Join(features, ","))
}
