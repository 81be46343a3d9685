package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mossfell/cashfall/internal/cli"
	"github.com/mossfell/cashfall/internal/model"
	"github.com/mossfell/cashfall/internal/waterfall"
)

// capitalFields maps the settable working-capital field names to their
// slots. Values are stored verbatim; computation normalizes.
var capitalFields = map[string]func(*model.WorkingCapitalInputs) *model.MoneyText{
	"operating-expenses":  func(w *model.WorkingCapitalInputs) *model.MoneyText { return &w.OperatingExpenses },
	"inventory-cost":      func(w *model.WorkingCapitalInputs) *model.MoneyText { return &w.InventoryCost },
	"days-per-month":      func(w *model.WorkingCapitalInputs) *model.MoneyText { return &w.DaysPerMonth },
	"avg-collection-days": func(w *model.WorkingCapitalInputs) *model.MoneyText { return &w.AvgCollectionDays },
	"business-checking":   func(w *model.WorkingCapitalInputs) *model.MoneyText { return &w.BusinessChecking },
	"reserve-balance":     func(w *model.WorkingCapitalInputs) *model.MoneyText { return &w.ReserveBalance },
	"buffer-days":         func(w *model.WorkingCapitalInputs) *model.MoneyText { return &w.BufferDays },
	"reserve-days":        func(w *model.WorkingCapitalInputs) *model.MoneyText { return &w.ReserveDays },
}

func capitalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "capital",
		Short: "Business working-capital waterfall",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show inputs and the computed waterfall",
		RunE:  runCapitalShow,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <field> <value>",
		Short: "Set a working-capital input",
		Long: `Set one of the working-capital inputs. Fields:
  ` + strings.Join(capitalFieldNames(), ", "),
		Args: cobra.ExactArgs(2),
		RunE: runCapitalSet,
	})

	return cmd
}

func runCapitalShow(cmd *cobra.Command, _ []string) error {
	mgr, cleanup, err := initSession(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	mgr.Mutate(func(s *model.AllocationState) {
		s.ActiveTool = model.ToolCapital
	})

	state := mgr.State()
	w := state.WorkingCapital

	fmt.Println(cli.FormatTitle("💼 Working Capital — " + state.Month.String())) //nolint:forbidigo // User-facing output
	fmt.Println(cli.RenderMoneyField("Operating expenses/mo", w.OperatingExpenses)) //nolint:forbidigo // User-facing output
	fmt.Println(cli.RenderMoneyField("Inventory cost/mo", w.InventoryCost))         //nolint:forbidigo // User-facing output
	fmt.Println(cli.RenderCountField("Days per month", w.DaysPerMonth))             //nolint:forbidigo // User-facing output
	fmt.Println(cli.RenderMoneyField("Business checking", w.BusinessChecking))      //nolint:forbidigo // User-facing output
	fmt.Println(cli.RenderMoneyField("Reserve balance", w.ReserveBalance))          //nolint:forbidigo // User-facing output
	fmt.Println(cli.RenderCountField("Buffer days", w.BufferDays))                  //nolint:forbidigo // User-facing output
	fmt.Println(cli.RenderCountField("Reserve days", w.ReserveDays))                //nolint:forbidigo // User-facing output
	// Informational only; not part of any goal formula.
	fmt.Println(cli.RenderCountField("Avg collection days", w.AvgCollectionDays)) //nolint:forbidigo // User-facing output
	fmt.Println()                                                                 //nolint:forbidigo // User-facing output
	fmt.Println(cli.RenderCapitalSummary(waterfall.Compute(w)))                   //nolint:forbidigo // User-facing output
	return nil
}

func runCapitalSet(cmd *cobra.Command, args []string) error {
	field, ok := capitalFields[args[0]]
	if !ok {
		return fmt.Errorf("unknown field %q, expected one of: %s", args[0], strings.Join(capitalFieldNames(), ", "))
	}

	mgr, cleanup, err := initSession(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	mgr.Mutate(func(s *model.AllocationState) {
		*field(&s.WorkingCapital) = model.MoneyText(args[1])
	})
	fmt.Println(cli.FormatSuccess(args[0] + " updated")) //nolint:forbidigo // User-facing output
	return nil
}

func capitalFieldNames() []string {
	names := make([]string, 0, len(capitalFields))
	for name := range capitalFields {
		names = append(names, name)
	}
	return sortedStrings(names)
}
