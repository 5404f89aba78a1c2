package observability

import (
	"os"

	"github.com/shirou/gopsutil/process"
)

// ProcessStats is the footprint of the running process.
type ProcessStats struct {
	RSS        uint64
	CPUPercent float64
}

// SelfStats reads resident memory and CPU usage of the current process.
func SelfStats() (ProcessStats, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return ProcessStats{}, err
	}
	memInfo, err := p.MemoryInfo()
	if err != nil {
		return ProcessStats{}, err
	}
	cpuPercent, err := p.CPUPercent()
	if err != nil {
		return ProcessStats{}, err
	}
	return ProcessStats{RSS: memInfo.RSS, CPUPercent: cpuPercent}, nil
}
