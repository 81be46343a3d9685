package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mossfell/cashfall/internal/cli"
	"github.com/mossfell/cashfall/internal/engine"
	"github.com/mossfell/cashfall/internal/model"
	"github.com/mossfell/cashfall/internal/money"
)

func fundCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fund",
		Short: "Apply this month's allocation to the needs list",
		Long: `Distribute this month's needs allocation across open needs due within
the next six months, earliest due first. Funding is explicit: nothing moves
until you run this command.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mgr, cleanup, err := initSession(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			var funded float64
			mgr.Mutate(func(s *model.AllocationState) {
				funded = engine.Fund(&s.CashFlow, s.Month, s.SuggestedBusinessInflow)
			})

			if funded == 0 {
				fmt.Println(cli.FormatWarning("Nothing to fund: no allocation or no needs in window")) //nolint:forbidigo // User-facing output
				return nil
			}
			fmt.Println(cli.FormatSuccess("Allocated " + money.FormatCurrency(funded) + " across needs")) //nolint:forbidigo // User-facing output

			state := mgr.State()
			fmt.Println(cli.RenderNeeds(state.CashFlow.Needs, state.Month)) //nolint:forbidigo // User-facing output
			return nil
		},
	}
}
