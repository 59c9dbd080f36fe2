// Package sysinfo produces the CPU, memory, process and disk reports shown by
// the cpu, mem, ps and disk commands.
package sysinfo

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"
)

// DefaultSampleInterval is how long CPU usage is sampled for.
const DefaultSampleInterval = 500 * time.Millisecond

// Options configures a Reporter.
type Options struct {
	SampleInterval time.Duration
	// DiskPath is the mount point reported by Disk; empty means the root of
	// the current volume.
	DiskPath string
	Logger   zerolog.Logger
}

// Reporter reads live host statistics.
type Reporter struct {
	interval time.Duration
	diskPath string
	log      zerolog.Logger
}

// NewReporter creates a reporter.
func NewReporter(opts Options) *Reporter {
	if opts.SampleInterval <= 0 {
		opts.SampleInterval = DefaultSampleInterval
	}
	if opts.DiskPath == "" {
		wd, _ := os.Getwd()
		opts.DiskPath = filepath.VolumeName(wd) + string(filepath.Separator)
	}
	return &Reporter{
		interval: opts.SampleInterval,
		diskPath: opts.DiskPath,
		log:      opts.Logger.With().Str("component", "sysinfo").Logger(),
	}
}

// CPU reports core count, overall and per-core usage, frequency and load.
func (r *Reporter) CPU(ctx context.Context) (string, error) {
	perCPU, err := cpu.PercentWithContext(ctx, r.interval, true)
	if err != nil {
		return "", fmt.Errorf("sampling cpu usage: %w", err)
	}

	stats := CPUStats{PerCPU: perCPU}
	if n, err := cpu.CountsWithContext(ctx, true); err == nil {
		stats.Cores = n
	} else {
		stats.Cores = len(perCPU)
	}
	if infos, err := cpu.InfoWithContext(ctx); err == nil && len(infos) > 0 {
		stats.MHz = infos[0].Mhz
	}
	if avg, err := load.AvgWithContext(ctx); err == nil {
		stats.Load = &LoadAverage{One: avg.Load1, Five: avg.Load5, Fifteen: avg.Load15}
	} else {
		r.log.Debug().Err(err).Msg("load average unavailable")
	}

	return FormatCPU(stats), nil
}

// Memory reports virtual and swap memory.
func (r *Reporter) Memory(ctx context.Context) (string, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return "", fmt.Errorf("reading virtual memory: %w", err)
	}

	stats := MemoryStats{
		Total:       vm.Total,
		Available:   vm.Available,
		Used:        vm.Used,
		Free:        vm.Free,
		UsedPercent: vm.UsedPercent,
	}
	if sw, err := mem.SwapMemoryWithContext(ctx); err == nil {
		stats.SwapTotal, stats.SwapUsed, stats.SwapFree = sw.Total, sw.Used, sw.Free
		stats.SwapPercent = sw.UsedPercent
	} else {
		r.log.Debug().Err(err).Msg("swap information unavailable")
	}

	return FormatMemory(stats), nil
}

// Processes reports the busiest limit processes; limit 0 lists every process.
func (r *Reporter) Processes(ctx context.Context, limit int) (string, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return "", fmt.Errorf("listing processes: %w", err)
	}

	rows := make([]ProcessRow, 0, len(procs))
	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil {
			// Exited or not ours to inspect.
			continue
		}
		row := ProcessRow{PID: p.Pid, Name: name}
		if v, err := p.CPUPercentWithContext(ctx); err == nil {
			row.CPU = v
		}
		if v, err := p.MemoryPercentWithContext(ctx); err == nil {
			row.Memory = float64(v)
		}
		if st, err := p.StatusWithContext(ctx); err == nil && len(st) > 0 {
			row.Status = st[0]
		}
		rows = append(rows, row)
	}

	r.log.Debug().Int("processes", len(rows)).Int("limit", limit).Msg("collected processes")
	return FormatProcesses(rows, limit), nil
}

// Disk reports usage of the configured volume and cumulative I/O.
func (r *Reporter) Disk(ctx context.Context) (string, error) {
	u, err := disk.UsageWithContext(ctx, r.diskPath)
	if err != nil {
		return "", fmt.Errorf("reading disk usage of %s: %w", r.diskPath, err)
	}

	stats := DiskStats{Path: r.diskPath, Total: u.Total, Used: u.Used, Free: u.Free}
	if counters, err := disk.IOCountersWithContext(ctx); err == nil && len(counters) > 0 {
		io := &DiskIO{}
		for _, c := range counters {
			io.Reads += c.ReadCount
			io.Writes += c.WriteCount
			io.ReadBytes += c.ReadBytes
			io.WriteBytes += c.WriteBytes
		}
		stats.IO = io
	}

	return FormatDisk(stats), nil
}
