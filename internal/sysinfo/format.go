package sysinfo

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
)

const barWidth = 50

// LoadAverage is the 1, 5 and 15 minute run-queue average.
type LoadAverage struct {
	One, Five, Fifteen float64
}

type CPUStats struct {
	Cores  int
	PerCPU []float64
	MHz    float64
	Load   *LoadAverage
}

type MemoryStats struct {
	Total, Available, Used, Free uint64
	UsedPercent                  float64

	SwapTotal, SwapUsed, SwapFree uint64
	SwapPercent                   float64
}

type ProcessRow struct {
	PID    int32
	Name   string
	CPU    float64
	Memory float64
	Status string
}

type DiskIO struct {
	Reads, Writes         uint64
	ReadBytes, WriteBytes uint64
}

type DiskStats struct {
	Path              string
	Total, Used, Free uint64
	IO                *DiskIO
}

func FormatCPU(s CPUStats) string {
	var overall float64
	for _, v := range s.PerCPU {
		overall += v
	}
	if len(s.PerCPU) > 0 {
		overall /= float64(len(s.PerCPU))
	}

	lines := []string{
		"=== CPU Information ===",
		fmt.Sprintf("CPU Cores: %d", s.Cores),
		fmt.Sprintf("Overall CPU Usage: %.1f%%", overall),
	}
	if s.MHz > 0 {
		lines = append(lines, fmt.Sprintf("Current Frequency: %.2f MHz", s.MHz))
	}
	if s.Load != nil {
		lines = append(lines, fmt.Sprintf("Load Average: %.2f, %.2f, %.2f", s.Load.One, s.Load.Five, s.Load.Fifteen))
	} else {
		lines = append(lines, "Load Average: Not available on this system")
	}

	lines = append(lines, "", "Per-CPU Usage:")
	for i, v := range s.PerCPU {
		lines = append(lines, fmt.Sprintf("  CPU %d: %6.1f%%", i, v))
	}
	return strings.Join(lines, "\n")
}

func FormatMemory(s MemoryStats) string {
	lines := []string{
		"=== Memory Information ===",
		"Virtual Memory:",
		"  Total: " + humanize.IBytes(s.Total),
		"  Available: " + humanize.IBytes(s.Available),
		fmt.Sprintf("  Used: %s (%.1f%%)", humanize.IBytes(s.Used), s.UsedPercent),
		"  Free: " + humanize.IBytes(s.Free),
		"",
		"Swap Memory:",
	}
	if s.SwapTotal > 0 {
		lines = append(lines,
			"  Total: "+humanize.IBytes(s.SwapTotal),
			fmt.Sprintf("  Used: %s (%.1f%%)", humanize.IBytes(s.SwapUsed), s.SwapPercent),
			"  Free: "+humanize.IBytes(s.SwapFree),
		)
	} else {
		lines = append(lines, "  No swap memory configured")
	}

	lines = append(lines, "", "Memory Usage Bar:", "  "+usageBar(s.UsedPercent))
	return strings.Join(lines, "\n")
}

// FormatProcesses sorts rows by CPU usage, busiest first, and keeps the top
// limit of them. A limit of zero keeps every row.
func FormatProcesses(rows []ProcessRow, limit int) string {
	rows = append([]ProcessRow(nil), rows...)
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].CPU > rows[j].CPU })

	truncated := limit > 0 && len(rows) > limit
	if truncated {
		rows = rows[:limit]
	}

	lines := []string{
		"=== Running Processes ===",
		fmt.Sprintf("%-8s %-20s %-8s %-10s %-12s", "PID", "Name", "CPU%", "Memory%", "Status"),
		strings.Repeat("-", 70),
	}
	for _, p := range rows {
		lines = append(lines, fmt.Sprintf("%-8d %-20s %-8.1f %-10.1f %-12s",
			p.PID, clip(p.Name, 19), p.CPU, p.Memory, clip(p.Status, 11)))
	}
	if truncated {
		lines = append(lines, "",
			fmt.Sprintf("... showing top %d processes by CPU usage", limit),
			"Use 'ps -a' to show all processes")
	}
	return strings.Join(lines, "\n")
}

func FormatDisk(s DiskStats) string {
	var usedPct, freePct float64
	if s.Total > 0 {
		usedPct = float64(s.Used) / float64(s.Total) * 100
		freePct = float64(s.Free) / float64(s.Total) * 100
	}

	lines := []string{
		fmt.Sprintf("=== Disk Usage (%s) ===", s.Path),
		"Total Space: " + humanize.IBytes(s.Total),
		fmt.Sprintf("Used Space: %s (%.1f%%)", humanize.IBytes(s.Used), usedPct),
		fmt.Sprintf("Free Space: %s (%.1f%%)", humanize.IBytes(s.Free), freePct),
		"",
		"Disk Usage Bar:",
		usageBar(usedPct),
	}
	if s.IO != nil {
		lines = append(lines, "",
			"Disk I/O:",
			fmt.Sprintf("  Reads: %d (%s)", s.IO.Reads, humanize.IBytes(s.IO.ReadBytes)),
			fmt.Sprintf("  Writes: %d (%s)", s.IO.Writes, humanize.IBytes(s.IO.WriteBytes)),
		)
	}
	return strings.Join(lines, "\n")
}

func usageBar(percent float64) string {
	used := int(percent / 100 * barWidth)
	if used < 0 {
		used = 0
	}
	if used > barWidth {
		used = barWidth
	}
	return fmt.Sprintf("[%s%s] %.1f%%", strings.Repeat("█", used), strings.Repeat("░", barWidth-used), percent)
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
