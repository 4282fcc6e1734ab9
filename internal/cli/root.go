package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mvln/mvln/internal/engine"
	"github.com/mvln/mvln/internal/planner"
)

var (
	// Global flags
	jsonOutput bool
	verbose    bool
	configPath string

	// Move flags
	moveDepth  int
	moveDryRun bool
	moveYes    bool
)

// rootCmd is the root command for mvln. The move itself lives here; the
// tool's other operations are subcommands.
var rootCmd = &cobra.Command{
	Use:     "mvln <target> <destination> [search-dir]",
	Version: "dev",
	Short:   "Move a file or directory and fix the symlinks that point at it",
	Long: `mvln renames a file or directory and rewrites every symlink that still
points at the old location.

Candidate links are discovered by walking a search directory (the current
directory by default) down to a configurable depth. Relative link text stays
relative and absolute text stays absolute, and links that merely share the
target's name without resolving to it are left untouched. The planned
rewrites are shown before anything changes.`,
	Args:          cobra.RangeArgs(2, 3),
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := newLogger(cfg)
		eng := newEngine(log)

		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}

		depth := cfg.Move.Depth
		if cmd.Flags().Changed("depth") {
			depth = moveDepth
		}
		searchDir := "."
		if len(args) == 3 {
			searchDir = args[2]
		}

		plan, err := eng.Plan(&engine.MoveRequest{
			CWD:         cwd,
			Target:      args[0],
			Destination: args[1],
			SearchDir:   searchDir,
			MaxDepth:    depth,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			if err := outputJSON(out, plan); err != nil {
				return err
			}
		} else {
			printPlan(out, plan)
		}
		if moveDryRun {
			return nil
		}

		// The prompt goes to stderr so stdout stays parseable.
		if !moveYes && !Confirm(cmd.InOrStdin(), cmd.ErrOrStderr(), "Proceed?") {
			fmt.Fprintln(out, "Aborted")
			return nil
		}

		result, err := eng.Commit(plan)
		if err != nil {
			return err
		}
		if jsonOutput {
			return outputJSON(out, result)
		}
		printResult(plan, result)
		return nil
	},
}

// printPlan writes the pending rename and each link rewrite, one link per
// block: the link's location, then its old and new text.
func printPlan(w io.Writer, plan *planner.MovePlan) {
	fmt.Fprintf(w, "Rename: %s -> %s\n", plan.Target.Location, plan.Destination)
	if plan.Target.IsLink {
		fmt.Fprintf(w, "link: %s:\n", plan.Target.Location)
		fmt.Fprintf(w, "\t\t %s -> %s\n", plan.Target.RawText, plan.TargetNewText)
	}
	if !plan.HasRewrites() {
		fmt.Fprintln(w, "No links to fix")
		return
	}
	for _, rw := range plan.Rewrites {
		fmt.Fprintf(w, "link: %s:\n", rw.Location)
		fmt.Fprintf(w, "\t\t %s -> %s\n", rw.OldText, rw.NewText)
	}
}

func printResult(plan *planner.MovePlan, result *engine.CommitResult) {
	if result.TargetMoved {
		PrintSuccess(fmt.Sprintf("Moved %s -> %s", plan.Target.Location, plan.Destination))
	} else {
		PrintWarning("Target was already at the destination")
	}
	PrintLabelValue("Relinked", PrintCount(result.Relinked, "link", "links"))
	if result.Skipped > 0 {
		PrintLabelValue("Skipped", PrintCount(result.Skipped, "link", "links"))
	}
}

func SetVersion(v string) {
	if v == "" {
		return
	}
	rootCmd.Version = v
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")

	rootCmd.Flags().IntVarP(&moveDepth, "depth", "d", 5, "Max directory depth searched for links")
	rootCmd.Flags().BoolVar(&moveDryRun, "dry-run", false, "Show the plan without moving anything")
	rootCmd.Flags().BoolVarP(&moveYes, "yes", "y", false, "Skip the confirmation prompt")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the mvln version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintln(os.Stdout, rootCmd.Version)
		},
	}
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(duCmd)
}

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}
