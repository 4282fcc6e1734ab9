package cli

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mvln/mvln/internal/diskusage"
	"github.com/mvln/mvln/internal/execx"
)

var (
	duWidth   int
	duTimeout int
)

// duCmd reports disk usage for the local machine and adb devices.
var duCmd = &cobra.Command{
	Use:   "du [local|adb|both]",
	Short: "Show disk usage for the local machine and adb devices",
	Long: `du reports per-partition disk usage as a horizontal bar, for the local
machine, for Android devices reachable over adb, or both. Bars need at
least 100 columns; narrower output lists the numbers only.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := newLogger(cfg)

		modeArg := cfg.Usage.Mode
		if len(args) == 1 {
			modeArg = args[0]
		}
		mode, err := diskusage.ParseMode(modeArg)
		if err != nil {
			return err
		}

		timeout := cfg.Usage.TimeoutSeconds
		if cmd.Flags().Changed("timeout") {
			timeout = duTimeout
		}

		collector := diskusage.NewCollector(execx.NewOSRunner(), log,
			time.Duration(timeout)*time.Second, cfg.Usage.RootReserved)
		reports := collector.Collect(cmd.Context(), mode)

		out := cmd.OutOrStdout()
		if jsonOutput {
			return outputJSON(out, reports)
		}
		width := duWidth
		if !cmd.Flags().Changed("width") {
			width = terminalWidth()
		}
		diskusage.Render(out, diskusage.RenderConfig{Width: width}, reports)
		return nil
	},
}

// terminalWidth returns the width of the terminal on stdout, or zero when
// stdout is not a terminal. The renderer falls back to its own default.
func terminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 0
	}
	return w
}

func init() {
	duCmd.Flags().IntVar(&duWidth, "width", 0, "Render width in columns (default: terminal width)")
	duCmd.Flags().IntVar(&duTimeout, "timeout", 2, "Seconds to wait for df and adb")
}
