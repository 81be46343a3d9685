package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mossfell/cashfall/internal/cli"
	"github.com/mossfell/cashfall/internal/engine"
	"github.com/mossfell/cashfall/internal/model"
	"github.com/mossfell/cashfall/internal/money"
)

var cashflowFields = map[string]func(*model.CashFlowInputs) *model.MoneyText{
	"business-inflow":   func(c *model.CashFlowInputs) *model.MoneyText { return &c.BusinessInflow },
	"other-inflow":      func(c *model.CashFlowInputs) *model.MoneyText { return &c.OtherInflow },
	"giving-dollar":     func(c *model.CashFlowInputs) *model.MoneyText { return &c.GivingDollar },
	"lifestyle-monthly": func(c *model.CashFlowInputs) *model.MoneyText { return &c.LifestyleMonthly },
}

func cashflowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cashflow",
		Short: "Monthly cash-flow allocation",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show inputs and the computed allocation",
		RunE:  runCashflowShow,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <field> <value>",
		Short: "Set a cash-flow input",
		Long: `Set one of the cash-flow inputs. Fields:
  ` + strings.Join(cashflowFieldNames(), ", ") + `

giving-mode takes "percent" or "dollar"; giving-percent clamps to 0-100.
Leave business-inflow unset to use the working-capital suggestion.`,
		Args: cobra.ExactArgs(2),
		RunE: runCashflowSet,
	})

	return cmd
}

func runCashflowShow(cmd *cobra.Command, _ []string) error {
	mgr, cleanup, err := initSession(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	mgr.Mutate(func(s *model.AllocationState) {
		s.ActiveTool = model.ToolCashFlow
	})

	state := mgr.State()
	c := state.CashFlow

	fmt.Println(cli.FormatTitle("💧 Cash Flow — " + state.Month.String())) //nolint:forbidigo // User-facing output
	if c.BusinessInflow.IsSet() {
		fmt.Println(cli.RenderMoneyField("Business inflow", c.BusinessInflow)) //nolint:forbidigo // User-facing output
	} else {
		fmt.Printf("%-22s %s (suggested by working capital)\n", "Business inflow:", //nolint:forbidigo // User-facing output
			money.FormatCurrency(state.SuggestedBusinessInflow))
	}
	fmt.Println(cli.RenderMoneyField("W2/other inflow", c.OtherInflow)) //nolint:forbidigo // User-facing output
	if c.GivingMode == model.GivingFixedDollar {
		fmt.Println(cli.RenderMoneyField("Giving (fixed)", c.GivingDollar)) //nolint:forbidigo // User-facing output
	} else {
		fmt.Printf("%-22s %.1f%% of inflow\n", "Giving:", c.GivingPercent) //nolint:forbidigo // User-facing output
	}
	fmt.Println(cli.RenderMoneyField("Lifestyle monthly", c.LifestyleMonthly)) //nolint:forbidigo // User-facing output
	fmt.Println()                                                              //nolint:forbidigo // User-facing output

	summary := engine.Compute(c, state.Month, state.SuggestedBusinessInflow)
	fmt.Println(cli.RenderCashFlowSummary(summary)) //nolint:forbidigo // User-facing output
	return nil
}

func runCashflowSet(cmd *cobra.Command, args []string) error {
	name, value := args[0], args[1]

	mgr, cleanup, err := initSession(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	switch name {
	case "giving-mode":
		mode := model.GivingMode(value)
		if mode != model.GivingPercentOfInflow && mode != model.GivingFixedDollar {
			return fmt.Errorf("giving-mode must be %q or %q", model.GivingPercentOfInflow, model.GivingFixedDollar)
		}
		mgr.Mutate(func(s *model.AllocationState) {
			s.CashFlow.GivingMode = mode
		})
	case "giving-percent":
		mgr.Mutate(func(s *model.AllocationState) {
			s.CashFlow.GivingPercent = money.ClampPercent(value)
		})
	default:
		field, ok := cashflowFields[name]
		if !ok {
			return fmt.Errorf("unknown field %q, expected one of: %s", name, strings.Join(cashflowFieldNames(), ", "))
		}
		mgr.Mutate(func(s *model.AllocationState) {
			*field(&s.CashFlow) = model.MoneyText(value)
		})
	}

	fmt.Println(cli.FormatSuccess(name + " updated")) //nolint:forbidigo // User-facing output
	return nil
}

func cashflowFieldNames() []string {
	names := make([]string, 0, len(cashflowFields)+2)
	for name := range cashflowFields {
		names = append(names, name)
	}
	names = append(names, "giving-mode", "giving-percent")
	return sortedStrings(names)
}

func sortedStrings(s []string) []string {
	sort.Strings(s)
	return s
}
