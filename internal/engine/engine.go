// Package engine implements the monthly cash-flow allocation: inflow,
// giving and lifestyle transfers, the six-month needs window, and the
// greedy earliest-due-first funding action.
package engine

import (
	"math"
	"sort"

	"github.com/mossfell/cashfall/internal/model"
)

// Lifestyle balance targets are fixed multiples of the monthly lifestyle
// draw, not independently configurable.
const (
	emergencyMinimumMonths = 1
	lifestyleTargetMonths  = 2
)

// Summary is one pure recompute of the cash-flow numbers for a viewed
// month. Excess is deliberately unclamped: a negative value is the
// user-visible deficit signal.
type Summary struct {
	TotalInflow            float64
	GivingTransfer         float64
	LifestyleTransfer      float64
	EmergencyMinimum       float64
	LifestyleTarget        float64
	TotalReservedOpen      float64
	RemainingNeedsInWindow float64
	AvailableAfterRequired float64
	AllocatedToNeeds       float64
	Excess                 float64
}

// Compute derives the summary. suggestedInflow is the working-capital
// waterfall's hand-off; it is used only while the user has not entered a
// business inflow of their own.
func Compute(in model.CashFlowInputs, view model.MonthToken, suggestedInflow float64) Summary {
	businessInflow := suggestedInflow
	if in.BusinessInflow.IsSet() {
		businessInflow = in.BusinessInflow.Value()
	}
	totalInflow := businessInflow + in.OtherInflow.Value()

	// Dollar-mode giving is capped at inflow so giving can never exceed
	// available cash; percent mode needs no cap since the rate is clamped
	// to 100.
	var giving float64
	if in.GivingMode == model.GivingFixedDollar {
		giving = math.Min(in.GivingDollar.Value(), totalInflow)
	} else {
		giving = in.GivingPercent / 100 * totalInflow
	}

	lifestyle := in.LifestyleMonthly.Value()

	var reservedOpen, remainingInWindow float64
	for _, need := range in.Needs {
		if need.Status == model.NeedStatusOpen {
			reservedOpen += need.FundedAmount
		}
		if need.InWindow(view) {
			remainingInWindow += need.RemainingGap()
		}
	}

	available := totalInflow - giving - lifestyle
	allocated := math.Max(0, math.Min(available, remainingInWindow))

	return Summary{
		TotalInflow:            totalInflow,
		GivingTransfer:         giving,
		LifestyleTransfer:      lifestyle,
		EmergencyMinimum:       emergencyMinimumMonths * lifestyle,
		LifestyleTarget:        lifestyleTargetMonths * lifestyle,
		TotalReservedOpen:      reservedOpen,
		RemainingNeedsInWindow: remainingInWindow,
		AvailableAfterRequired: available,
		AllocatedToNeeds:       allocated,
		Excess:                 available - allocated,
	}
}

// Fund applies this month's allocation to the needs list in place and
// returns the total amount applied. Needs are walked earliest due first
// (stable on ties, so list order breaks them) with a depletable pool; a
// closer deadline is always filled before a farther one sees anything.
// Out-of-window and paid needs are never touched.
func Fund(in *model.CashFlowInputs, view model.MonthToken, suggestedInflow float64) float64 {
	summary := Compute(*in, view, suggestedInflow)
	pool := summary.AllocatedToNeeds

	order := make([]int, len(in.Needs))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return model.MonthDiff(in.Needs[order[a]].DueMonth, in.Needs[order[b]].DueMonth) > 0
	})

	funded := 0.0
	for _, i := range order {
		if pool <= 0 {
			break
		}
		need := &in.Needs[i]
		if !need.InWindow(view) {
			continue
		}
		add := math.Min(need.RemainingGap(), pool)
		need.FundedAmount += add
		pool -= add
		funded += add
	}
	return funded
}
