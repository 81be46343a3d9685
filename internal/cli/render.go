package cli

import (
	"fmt"
	"strings"

	"github.com/mossfell/cashfall/internal/engine"
	"github.com/mossfell/cashfall/internal/model"
	"github.com/mossfell/cashfall/internal/money"
	"github.com/mossfell/cashfall/internal/transfers"
	"github.com/mossfell/cashfall/internal/waterfall"
)

// emphasisStyle maps instruction emphasis to a style.
func emphasisStyle(e transfers.Emphasis) func(string) string {
	switch e {
	case transfers.EmphasisGood:
		return func(s string) string { return SuccessStyle.Render(s) }
	case transfers.EmphasisBad:
		return func(s string) string { return ErrorStyle.Render(s) }
	default:
		return func(s string) string { return s }
	}
}

// RenderChecklist renders one tool's transfer checklist for a month, with
// done markers from the completion map.
func RenderChecklist(month model.MonthToken, tool model.Tool, instructions []transfers.Instruction, done model.TransferDone) string {
	var b strings.Builder
	for i, inst := range instructions {
		marker := "[ ]"
		if done.Done(month, tool, inst.Step) {
			marker = SuccessStyle.Render("[x]")
		}
		line := fmt.Sprintf("%s %d. %s → %s  %s  (%s)",
			marker, i+1, inst.Source, inst.Destination,
			emphasisStyle(inst.Emphasis)(money.FormatCurrency(inst.Amount)),
			inst.Purpose)
		b.WriteString(line)
		b.WriteString("\n")
	}
	steps := transfers.StepKeys(tool)
	b.WriteString(SubtleStyle.Render(fmt.Sprintf("%d of %d done", done.CountDone(month, tool, steps), len(steps))))
	return b.String()
}

// RenderMoneyField renders a labeled input, flagging unset fields as
// needing attention (they compute as 0 until filled in).
func RenderMoneyField(label string, v model.MoneyText) string {
	if !v.IsSet() {
		return fmt.Sprintf("%-22s %s", label+":", WarningStyle.Render("needs attention"))
	}
	return fmt.Sprintf("%-22s %s", label+":", money.FormatCurrency(v.Value()))
}

// RenderCountField renders a labeled day-count input, flagging unset
// fields the same way RenderMoneyField does.
func RenderCountField(label string, v model.MoneyText) string {
	if !v.IsSet() {
		return fmt.Sprintf("%-22s %s", label+":", WarningStyle.Render("needs attention"))
	}
	return fmt.Sprintf("%-22s %g", label+":", v.Value())
}

// RenderCapitalSummary renders the working-capital waterfall readout.
func RenderCapitalSummary(r waterfall.Result) string {
	deltaStyle := func(v float64) string {
		if v < 0 {
			return ErrorStyle.Render(money.FormatCurrency(v))
		}
		return SuccessStyle.Render(money.FormatCurrency(v))
	}

	lines := []string{
		fmt.Sprintf("%-22s %s", "Per-day spend:", money.FormatCurrency(r.PerDaySpend)),
		fmt.Sprintf("%-22s %s", "Working capital goal:", money.FormatCurrency(r.WorkingCapitalGoal)),
		fmt.Sprintf("%-22s %s", "Reserve goal:", money.FormatCurrency(r.ReserveGoal)),
		fmt.Sprintf("%-22s %s", "Business delta:", deltaStyle(r.BusinessDelta)),
		fmt.Sprintf("%-22s %s", "Reserve delta:", deltaStyle(r.ReserveDelta)),
		fmt.Sprintf("%-22s %s", "Move to reserve:", money.FormatCurrency(r.MoveToReserve)),
		fmt.Sprintf("%-22s %s", "Move to family office:", money.FormatCurrency(r.MoveToFamilyOffice)),
	}
	return strings.Join(lines, "\n")
}

// RenderCashFlowSummary renders the monthly allocation readout.
func RenderCashFlowSummary(s engine.Summary) string {
	excess := money.FormatCurrency(s.Excess)
	if s.Excess < 0 {
		excess = ErrorStyle.Render(excess + "  (deficit)")
	} else {
		excess = SuccessStyle.Render(excess)
	}

	lines := []string{
		fmt.Sprintf("%-26s %s", "Total inflow:", money.FormatCurrency(s.TotalInflow)),
		fmt.Sprintf("%-26s %s", "Giving transfer:", money.FormatCurrency(s.GivingTransfer)),
		fmt.Sprintf("%-26s %s", "Lifestyle transfer:", money.FormatCurrency(s.LifestyleTransfer)),
		fmt.Sprintf("%-26s %s", "Emergency minimum:", money.FormatCurrency(s.EmergencyMinimum)),
		fmt.Sprintf("%-26s %s", "Lifestyle target:", money.FormatCurrency(s.LifestyleTarget)),
		fmt.Sprintf("%-26s %s", "Reserved for open needs:", money.FormatCurrency(s.TotalReservedOpen)),
		fmt.Sprintf("%-26s %s", "Needs due in window:", money.FormatCurrency(s.RemainingNeedsInWindow)),
		fmt.Sprintf("%-26s %s", "Available after required:", money.FormatCurrency(s.AvailableAfterRequired)),
		fmt.Sprintf("%-26s %s", "Allocated to needs:", money.FormatCurrency(s.AllocatedToNeeds)),
		fmt.Sprintf("%-26s %s", "Excess:", excess),
	}
	return strings.Join(lines, "\n")
}

// RenderNeeds renders the needs list for a viewed month. In-window needs
// render normally; paid and out-of-window needs are dimmed but still shown.
func RenderNeeds(needs []model.Need, view model.MonthToken) string {
	if len(needs) == 0 {
		return SubtleStyle.Render("No needs tracked.")
	}

	var b strings.Builder
	for _, need := range needs {
		line := fmt.Sprintf("%-10s %-24s due %s  %s of %s",
			shortID(need.ID), need.Name, need.DueMonth,
			money.FormatCurrency(need.FundedAmount), money.FormatCurrency(need.TargetAmount))
		switch {
		case need.Status == model.NeedStatusPaid:
			line = SubtleStyle.Render(line + "  (paid " + need.PaidMonth.String() + ")")
		case !need.InWindow(view):
			line = SubtleStyle.Render(line + "  (out of window)")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
