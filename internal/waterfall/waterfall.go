// Package waterfall computes the business working-capital waterfall: burn
// rate, buffer and reserve goals, and how much surplus business cash can
// move onward this month.
package waterfall

import (
	"math"

	"github.com/mossfell/cashfall/internal/model"
)

// Result holds one recompute of the working-capital waterfall. Deltas are
// signed point-in-time readings against the goals, not post-transfer
// balances.
type Result struct {
	PerDaySpend        float64
	WorkingCapitalGoal float64
	ReserveGoal        float64
	BusinessDelta      float64
	ReserveDelta       float64
	MoveToReserve      float64
	MoveToFamilyOffice float64
}

// Compute derives the waterfall from the current inputs. The ordering rule
// is strict: the business checking buffer is funded before the reserve sees
// a cent, and the reserve is topped up before anything moves on to the
// family office. With the business below its own buffer, nothing moves at
// all, whatever the reserve shortfall.
func Compute(in model.WorkingCapitalInputs) Result {
	monthlySpend := in.OperatingExpenses.Value() + in.InventoryCost.Value()

	perDay := 0.0
	if days := in.DaysPerMonth.Value(); days > 0 {
		perDay = monthlySpend / days
	}

	workingCapitalGoal := perDay * in.BufferDays.Value()
	reserveGoal := perDay * in.ReserveDays.Value()

	businessDelta := in.BusinessChecking.Value() - workingCapitalGoal
	available := math.Max(0, businessDelta)

	reserveShortfall := math.Max(0, reserveGoal-in.ReserveBalance.Value())
	moveToReserve := math.Min(available, reserveShortfall)
	moveToFamilyOffice := math.Max(0, available-moveToReserve)

	return Result{
		PerDaySpend:        perDay,
		WorkingCapitalGoal: workingCapitalGoal,
		ReserveGoal:        reserveGoal,
		BusinessDelta:      businessDelta,
		ReserveDelta:       in.ReserveBalance.Value() - reserveGoal,
		MoveToReserve:      moveToReserve,
		MoveToFamilyOffice: moveToFamilyOffice,
	}
}

// SuggestedInflow is the family-office transfer rounded to whole dollars;
// it becomes the cash-flow tool's suggested business inflow.
func (r Result) SuggestedInflow() float64 {
	return math.Round(r.MoveToFamilyOffice)
}
