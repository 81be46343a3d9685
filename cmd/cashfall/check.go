package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mossfell/cashfall/internal/cli"
	"github.com/mossfell/cashfall/internal/model"
	"github.com/mossfell/cashfall/internal/transfers"
)

func checkCmd() *cobra.Command {
	var all, undo bool
	cmd := &cobra.Command{
		Use:   "check <tool> [step]",
		Short: "Mark transfer steps done for the viewed month",
		Long: `Mark a transfer step as executed. Tools are "capital" and "cashflow";
steps are the keys shown by 'cashfall plan'. Completion is tracked per
month and is purely advisory — it never changes the money math.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tool := model.Tool(args[0])
			steps := transfers.StepKeys(tool)
			if steps == nil {
				return fmt.Errorf("unknown tool %q, expected %q or %q", args[0], model.ToolCapital, model.ToolCashFlow)
			}

			if !all && len(args) < 2 {
				return fmt.Errorf("provide a step or --all")
			}

			mgr, cleanup, err := initSession(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			if all {
				mgr.Mutate(func(s *model.AllocationState) {
					s.TransferDone.MarkAll(s.Month, tool, steps)
				})
				fmt.Println(cli.FormatSuccess("All steps marked done")) //nolint:forbidigo // User-facing output
				return nil
			}

			step := model.StepKey(args[1])
			if !knownStep(steps, step) {
				return fmt.Errorf("unknown step %q for tool %q", args[1], tool)
			}

			mgr.Mutate(func(s *model.AllocationState) {
				s.TransferDone.Set(s.Month, tool, step, !undo)
			})

			state := mgr.State()
			done := state.TransferDone.CountDone(state.Month, tool, steps)
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("%s: %d of %d done", tool, done, len(steps)))) //nolint:forbidigo // User-facing output
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "mark every step for the tool")
	cmd.Flags().BoolVar(&undo, "undo", false, "uncheck instead of check")
	return cmd
}

func knownStep(steps []model.StepKey, step model.StepKey) bool {
	for _, s := range steps {
		if s == step {
			return true
		}
	}
	return false
}
