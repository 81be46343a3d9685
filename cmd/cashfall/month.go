package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mossfell/cashfall/internal/cli"
	"github.com/mossfell/cashfall/internal/model"
)

func monthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "month",
		Short: "Show or change the viewed month",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the viewed month",
		RunE: func(cmd *cobra.Command, _ []string) error {
			mgr, cleanup, err := initSession(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			fmt.Println(cli.FormatTitle("Viewing " + mgr.State().Month.String())) //nolint:forbidigo // User-facing output
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <YYYY-MM>",
		Short: "Jump to a specific month",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token := model.ParseMonth(args[0])
			if token.IsZero() {
				return fmt.Errorf("invalid month %q, expected YYYY-MM", args[0])
			}
			return shiftMonth(cmd, func(model.MonthToken) model.MonthToken { return token })
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "next",
		Short: "Advance the viewed month by one",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return shiftMonth(cmd, func(m model.MonthToken) model.MonthToken { return m.Add(1) })
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "prev",
		Short: "Go back one month",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return shiftMonth(cmd, func(m model.MonthToken) model.MonthToken { return m.Add(-1) })
		},
	})

	return cmd
}

// shiftMonth changes only the viewed month. Completion flags are keyed per
// month, so nothing resets; revisiting a month shows it exactly as left.
func shiftMonth(cmd *cobra.Command, next func(model.MonthToken) model.MonthToken) error {
	mgr, cleanup, err := initSession(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	mgr.Mutate(func(s *model.AllocationState) {
		s.Month = next(s.Month)
	})
	fmt.Println(cli.FormatSuccess("Now viewing " + mgr.State().Month.String())) //nolint:forbidigo // User-facing output
	return nil
}
