package root

import (
	"github.com/spf13/cobra"

	"morningquest/internal/tui"
)

func newBoardCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Open the live run board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, cleanup, err := openSession(ctx, flags)
			if err != nil {
				return err
			}
			defer cleanup()

			return tui.RunBoard(ctx, s.svc, s.key, cmd.OutOrStdout())
		},
	}
}
