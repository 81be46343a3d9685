package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mossfell/cashfall/internal/cli"
	"github.com/mossfell/cashfall/internal/model"
)

func needsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "needs",
		Short: "Track upcoming large expenses",
	}

	cmd.AddCommand(needsListCmd())
	cmd.AddCommand(needsAddCmd())
	cmd.AddCommand(needsEditCmd())
	cmd.AddCommand(needsPaidCmd())
	cmd.AddCommand(needsReopenCmd())
	cmd.AddCommand(needsRemoveCmd())
	return cmd
}

func needsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all needs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			mgr, cleanup, err := initSession(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			state := mgr.State()
			fmt.Println(cli.FormatTitle("📋 Needs — viewing " + state.Month.String()))    //nolint:forbidigo // User-facing output
			fmt.Println(cli.RenderNeeds(state.CashFlow.Needs, state.Month))               //nolint:forbidigo // User-facing output
			return nil
		},
	}
}

func needsAddCmd() *cobra.Command {
	var name, target, due string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a need",
		RunE: func(cmd *cobra.Command, _ []string) error {
			mgr, cleanup, err := initSession(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			dueMonth := model.MonthToken{}
			if due != "" {
				dueMonth = model.ParseMonth(due)
				if dueMonth.IsZero() {
					return fmt.Errorf("invalid due month %q, expected YYYY-MM", due)
				}
			}

			var id string
			mgr.Mutate(func(s *model.AllocationState) {
				need := s.CashFlow.AddNeed(s.Month)
				need.Name = name
				need.TargetAmount = model.MoneyText(target).Value()
				if !dueMonth.IsZero() {
					need.DueMonth = dueMonth
				}
				id = need.ID
			})
			fmt.Println(cli.FormatSuccess("Added need " + id[:8])) //nolint:forbidigo // User-facing output
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "what the expense is for")
	cmd.Flags().StringVar(&target, "target", "0", "target amount")
	cmd.Flags().StringVar(&due, "due", "", "due month YYYY-MM (default: month after the viewed one)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func needsEditCmd() *cobra.Command {
	var name, target, due, funded string
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a need's fields",
		Long: `Edit any field of a need. The funded amount is normally advanced by
'cashfall fund', but a manual override is always permitted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var dueMonth model.MonthToken
			if cmd.Flags().Changed("due") {
				dueMonth = model.ParseMonth(due)
				if dueMonth.IsZero() {
					return fmt.Errorf("invalid due month %q, expected YYYY-MM", due)
				}
			}
			return mutateNeed(cmd, args[0], func(need *model.Need) error {
				if cmd.Flags().Changed("name") {
					need.Name = name
				}
				if cmd.Flags().Changed("target") {
					need.TargetAmount = model.MoneyText(target).Value()
				}
				if cmd.Flags().Changed("funded") {
					need.FundedAmount = model.MoneyText(funded).Value()
				}
				if !dueMonth.IsZero() {
					need.DueMonth = dueMonth
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&target, "target", "", "new target amount")
	cmd.Flags().StringVar(&due, "due", "", "new due month YYYY-MM")
	cmd.Flags().StringVar(&funded, "funded", "", "override the funded amount")
	return cmd
}

func needsPaidCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "paid <id>",
		Short: "Mark a need as paid this month",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutateNeedInState(cmd, args[0], func(s *model.AllocationState, need *model.Need) error {
				need.MarkPaid(s.Month)
				return nil
			})
		},
	}
}

func needsReopenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reopen <id>",
		Short: "Reopen a paid need",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutateNeed(cmd, args[0], func(need *model.Need) error {
				need.Reopen()
				return nil
			})
		},
	}
}

func needsRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Permanently delete a need",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, cleanup, err := initSession(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			var removed bool
			mgr.Mutate(func(s *model.AllocationState) {
				if need := findNeed(&s.CashFlow, args[0]); need != nil {
					removed = s.CashFlow.RemoveNeed(need.ID)
				}
			})
			if !removed {
				return fmt.Errorf("no need matching %q", args[0])
			}
			fmt.Println(cli.FormatSuccess("Removed")) //nolint:forbidigo // User-facing output
			return nil
		},
	}
}

func mutateNeed(cmd *cobra.Command, id string, fn func(*model.Need) error) error {
	return mutateNeedInState(cmd, id, func(_ *model.AllocationState, need *model.Need) error {
		return fn(need)
	})
}

func mutateNeedInState(cmd *cobra.Command, id string, fn func(*model.AllocationState, *model.Need) error) error {
	mgr, cleanup, err := initSession(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	var found bool
	var fnErr error
	mgr.Mutate(func(s *model.AllocationState) {
		need := findNeed(&s.CashFlow, id)
		if need == nil {
			return
		}
		found = true
		fnErr = fn(s, need)
	})
	if !found {
		return fmt.Errorf("no need matching %q", id)
	}
	if fnErr != nil {
		return fnErr
	}
	fmt.Println(cli.FormatSuccess("Updated")) //nolint:forbidigo // User-facing output
	return nil
}

// findNeed matches a need by full ID or unambiguous prefix.
func findNeed(c *model.CashFlowInputs, id string) *model.Need {
	if need := c.Need(id); need != nil {
		return need
	}
	var match *model.Need
	for i := range c.Needs {
		if len(id) >= 4 && len(c.Needs[i].ID) >= len(id) && c.Needs[i].ID[:len(id)] == id {
			if match != nil {
				return nil // ambiguous
			}
			match = &c.Needs[i]
		}
	}
	return match
}
