package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mossfell/cashfall/internal/cli"
	"github.com/mossfell/cashfall/internal/engine"
	"github.com/mossfell/cashfall/internal/model"
	"github.com/mossfell/cashfall/internal/transfers"
	"github.com/mossfell/cashfall/internal/waterfall"
)

func planCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Show the full monthly transfer checklist",
		RunE: func(cmd *cobra.Command, _ []string) error {
			mgr, cleanup, err := initSession(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			state := mgr.State()
			r := waterfall.Compute(state.WorkingCapital)
			s := engine.Compute(state.CashFlow, state.Month, state.SuggestedBusinessInflow)

			fmt.Println(cli.FormatTitle("🗓  Transfer plan for " + state.Month.String())) //nolint:forbidigo // User-facing output

			fmt.Println(cli.BoldStyle.Render("Working capital")) //nolint:forbidigo // User-facing output
			fmt.Println(cli.RenderChecklist(state.Month, model.ToolCapital, transfers.CapitalInstructions(r), state.TransferDone)) //nolint:forbidigo // User-facing output
			fmt.Println()                                        //nolint:forbidigo // User-facing output

			fmt.Println(cli.BoldStyle.Render("Cash flow")) //nolint:forbidigo // User-facing output
			fmt.Println(cli.RenderChecklist(state.Month, model.ToolCashFlow, transfers.CashFlowInstructions(s), state.TransferDone)) //nolint:forbidigo // User-facing output

			if saveErr := mgr.LastSaveErr(); saveErr != nil {
				fmt.Println(cli.FormatError("Last save failed; changes retry on next edit")) //nolint:forbidigo // User-facing output
			}
			return nil
		},
	}
}
