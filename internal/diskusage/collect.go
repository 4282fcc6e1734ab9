package diskusage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mvln/mvln/internal/execx"
)

// Collector queries devices for filesystem usage.
type Collector struct {
	runner   execx.Runner
	log      *slog.Logger
	timeout  time.Duration
	reserved float64
}

// NewCollector creates a Collector. timeout bounds each external command;
// reserved is the fraction of the root and home filesystems charged as
// used on top of what df reports.
func NewCollector(runner execx.Runner, log *slog.Logger, timeout time.Duration, reserved float64) *Collector {
	return &Collector{
		runner:   runner,
		log:      log,
		timeout:  timeout,
		reserved: reserved,
	}
}

// Collect queries the devices selected by mode. One report per device, in
// a stable order: local first, then adb devices as enumerated.
func (c *Collector) Collect(ctx context.Context, mode Mode) []Report {
	var reports []Report
	if mode == ModeLocal || mode == ModeBoth {
		reports = append(reports, c.collectLocal(ctx))
	}
	if mode == ModeADB || mode == ModeBoth {
		reports = append(reports, c.collectADB(ctx)...)
	}
	return reports
}

func (c *Collector) collectLocal(ctx context.Context) Report {
	host, err := os.Hostname()
	if err != nil {
		host = "localhost"
	}
	report := Report{Label: host}

	c.log.Debug("querying local filesystems")
	res := c.runner.Run(ctx, c.timeout, "df")
	if failure := c.commandFailure(res); failure != "" {
		report.Err = failure
		return report
	}

	lines := splitLines(res.Stdout)
	if len(lines) > 0 {
		lines = lines[1:] // df header
	}
	report.Partitions, report.Err = parseDF(lines, c.reserved)
	return report
}

// collectADB enumerates adb devices and queries them concurrently. When
// enumeration fails or comes back empty there is nothing to report per
// device, just a bare notice.
func (c *Collector) collectADB(ctx context.Context) []Report {
	res := c.runner.Run(ctx, c.timeout, "adb", "devices")
	serials := parseDevices(res.Stdout)
	if res.ExitCode != 0 || len(serials) == 0 {
		c.log.Debug("no adb devices", "exit_code", res.ExitCode)
		return []Report{{Err: "No Android device connected"}}
	}

	reports := make([]Report, len(serials))
	g, ctx := errgroup.WithContext(ctx)
	for i, serial := range serials {
		i, serial := i, serial
		g.Go(func() error {
			reports[i] = c.deviceReport(ctx, serial)
			return nil
		})
	}
	_ = g.Wait()
	return reports
}

func (c *Collector) deviceReport(ctx context.Context, serial string) Report {
	report := Report{Label: serial + " (adb device)"}

	c.log.Debug("querying adb device", "serial", serial)
	res := c.runner.Run(ctx, c.timeout, "adb", "-s", serial, "shell", "df")
	if failure := c.commandFailure(res); failure != "" {
		report.Err = failure
		return report
	}

	lines := filterStorageLines(splitLines(res.Stdout))
	report.Partitions, report.Err = parseDF(lines, c.reserved)
	return report
}

// commandFailure maps a failed command result to its report text, empty
// for success. Timeouts are reported as such rather than by exit code.
func (c *Collector) commandFailure(res execx.Result) string {
	if res.TimedOut {
		return fmt.Sprintf("timeout of %ds is reached", int(c.timeout.Seconds()))
	}
	if res.ExitCode != 0 {
		return fmt.Sprintf("command exited with return code %d", res.ExitCode)
	}
	return ""
}
