package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"morningquest/internal/ui"
)

const Version = "0.1.0"

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	dataDir    string
	dbPath     string
	logLevel   string
	profile    string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:           "mq",
		Short:         "Morning Quest: beat the clock to the front door",
		Long:          "Morning Quest times a child's morning routine against a fixed departure time and rewards on-time departures with stamps, medals and ranks.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "Config file (default $MQ_CONFIG or ~/.config/morningquest/config.yaml)")
	pf.StringVar(&flags.dataDir, "data-dir", "", "Data directory (default ~/.morningquest)")
	pf.StringVar(&flags.dbPath, "db", "", "SQLite database path (overrides config)")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level (debug|info|warn|error)")
	pf.StringVarP(&flags.profile, "profile", "p", "child1", "Profile key")

	cmd.AddCommand(
		newStartCmd(flags),
		newDoCmd(flags),
		newDepartCmd(flags),
		newAbandonCmd(flags),
		newAckCmd(flags),
		newStatusCmd(flags),
		newTasksCmd(flags),
		newNameCmd(flags),
		newDepartTimeCmd(flags),
		newGenerateCmd(flags),
		newLogsCmd(flags),
		newStampsCmd(flags),
		newProfilesCmd(flags),
		newBoardCmd(flags),
	)

	return cmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+describeErr(err)))
		os.Exit(1)
	}
}
