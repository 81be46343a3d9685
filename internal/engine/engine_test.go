package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mossfell/cashfall/internal/model"
)

func view(t *testing.T) model.MonthToken {
	t.Helper()
	return model.ParseMonth("2026-08")
}

func openNeed(name, due string, target, funded float64) model.Need {
	need := model.NewNeed(model.ParseMonth(due))
	need.Name = name
	need.TargetAmount = target
	need.FundedAmount = funded
	return need
}

func TestCompute_GivingModes(t *testing.T) {
	tests := []struct {
		name       string
		in         model.CashFlowInputs
		wantInflow float64
		wantGiving float64
	}{
		{
			name: "percent of inflow",
			in: model.CashFlowInputs{
				BusinessInflow: "40,000",
				OtherInflow:    "10,000",
				GivingMode:     model.GivingPercentOfInflow,
				GivingPercent:  10,
			},
			wantInflow: 50000,
			wantGiving: 5000,
		},
		{
			name: "fixed dollar within inflow",
			in: model.CashFlowInputs{
				BusinessInflow: "40,000",
				GivingMode:     model.GivingFixedDollar,
				GivingDollar:   "2,500",
			},
			wantInflow: 40000,
			wantGiving: 2500,
		},
		{
			name: "fixed dollar capped at inflow",
			in: model.CashFlowInputs{
				BusinessInflow: "5,000",
				GivingMode:     model.GivingFixedDollar,
				GivingDollar:   "8,000",
			},
			wantInflow: 5000,
			wantGiving: 5000,
		},
		{
			name: "hundred percent giving consumes inflow exactly",
			in: model.CashFlowInputs{
				BusinessInflow: "5,000",
				GivingMode:     model.GivingPercentOfInflow,
				GivingPercent:  100,
			},
			wantInflow: 5000,
			wantGiving: 5000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.in, view(t), 0)
			assert.InDelta(t, tt.wantInflow, got.TotalInflow, 1e-6)
			assert.InDelta(t, tt.wantGiving, got.GivingTransfer, 1e-6)
		})
	}
}

func TestCompute_SuggestedInflowHandOff(t *testing.T) {
	in := model.CashFlowInputs{GivingMode: model.GivingPercentOfInflow}

	t.Run("unset business inflow uses the suggestion", func(t *testing.T) {
		got := Compute(in, view(t), 35000)
		assert.InDelta(t, 35000.0, got.TotalInflow, 1e-6)
	})

	t.Run("explicit business inflow overrides the suggestion", func(t *testing.T) {
		override := in
		override.BusinessInflow = "20,000"
		got := Compute(override, view(t), 35000)
		assert.InDelta(t, 20000.0, got.TotalInflow, 1e-6)
	})
}

func TestCompute_LifestyleTargets(t *testing.T) {
	in := model.CashFlowInputs{
		BusinessInflow:   "30,000",
		GivingMode:       model.GivingPercentOfInflow,
		LifestyleMonthly: "9,000",
	}
	got := Compute(in, view(t), 0)

	assert.InDelta(t, 9000.0, got.LifestyleTransfer, 1e-6)
	assert.InDelta(t, 9000.0, got.EmergencyMinimum, 1e-6)
	assert.InDelta(t, 18000.0, got.LifestyleTarget, 1e-6)
}

func TestCompute_WindowAndExcess(t *testing.T) {
	in := model.CashFlowInputs{
		BusinessInflow:   "20,000",
		GivingMode:       model.GivingPercentOfInflow,
		GivingPercent:    10,
		LifestyleMonthly: "8,000",
		Needs: []model.Need{
			openNeed("in window", "2026-10", 5000, 0),
			openNeed("due this month", "2026-08", 2000, 500),
			openNeed("past due", "2026-07", 9000, 0),
			openNeed("beyond window", "2027-03", 9000, 0),
		},
	}

	got := Compute(in, view(t), 0)

	// 5000 + (2000-500); past-due and beyond-window needs are excluded.
	assert.InDelta(t, 6500.0, got.RemainingNeedsInWindow, 1e-6)
	// 20000 - 2000 giving - 8000 lifestyle.
	assert.InDelta(t, 10000.0, got.AvailableAfterRequired, 1e-6)
	assert.InDelta(t, 6500.0, got.AllocatedToNeeds, 1e-6)
	assert.InDelta(t, 3500.0, got.Excess, 1e-6)
}

func TestCompute_NegativeExcessIsNotClamped(t *testing.T) {
	in := model.CashFlowInputs{
		BusinessInflow:   "5,000",
		GivingMode:       model.GivingPercentOfInflow,
		GivingPercent:    10,
		LifestyleMonthly: "8,000",
	}
	got := Compute(in, view(t), 0)

	assert.InDelta(t, -3500.0, got.AvailableAfterRequired, 1e-6)
	assert.InDelta(t, 0.0, got.AllocatedToNeeds, 1e-6)
	assert.InDelta(t, -3500.0, got.Excess, 1e-6, "deficit signal must stay visible")
}

func TestCompute_PaidNeedsLeaveOpenSets(t *testing.T) {
	needs := []model.Need{
		openNeed("kept", "2026-10", 5000, 1000),
		openNeed("paid off", "2026-09", 3000, 3000),
	}
	needs[1].MarkPaid(view(t))

	in := model.CashFlowInputs{
		BusinessInflow: "50,000",
		GivingMode:     model.GivingPercentOfInflow,
		Needs:          needs,
	}
	got := Compute(in, view(t), 0)

	assert.InDelta(t, 1000.0, got.TotalReservedOpen, 1e-6, "paid need drops out of the open reserve")
	assert.InDelta(t, 4000.0, got.RemainingNeedsInWindow, 1e-6)

	needs[1].Reopen()
	got = Compute(in, view(t), 0)
	assert.InDelta(t, 4000.0, got.TotalReservedOpen, 1e-6, "reopening restores funded history")
	assert.InDelta(t, 4000.0, got.RemainingNeedsInWindow, 1e-6, "fully funded need has no gap")
}

func TestFund_GreedyEarliestDueFirst(t *testing.T) {
	in := &model.CashFlowInputs{
		BusinessInflow:   "14,000",
		GivingMode:       model.GivingPercentOfInflow,
		GivingPercent:    0,
		LifestyleMonthly: "10,000",
		Needs: []model.Need{
			openNeed("later", "2026-11", 5000, 0),
			openNeed("sooner", "2026-09", 3000, 0),
		},
	}

	// Pool is 14000 - 10000 = 4000.
	funded := Fund(in, view(t), 0)

	assert.InDelta(t, 4000.0, funded, 1e-6, "pool fully exhausted")
	sooner := in.Needs[1]
	later := in.Needs[0]
	assert.InDelta(t, 3000.0, sooner.FundedAmount, 1e-6, "closer deadline filled first")
	assert.InDelta(t, 1000.0, later.FundedAmount, 1e-6, "remainder to the farther need")
}

func TestFund_TieBrokenByListOrder(t *testing.T) {
	in := &model.CashFlowInputs{
		BusinessInflow: "1,000",
		GivingMode:     model.GivingPercentOfInflow,
		Needs: []model.Need{
			openNeed("first listed", "2026-09", 800, 0),
			openNeed("second listed", "2026-09", 800, 0),
		},
	}

	Fund(in, view(t), 0)

	assert.InDelta(t, 800.0, in.Needs[0].FundedAmount, 1e-6)
	assert.InDelta(t, 200.0, in.Needs[1].FundedAmount, 1e-6)
}

func TestFund_SkipsOutOfWindowNeeds(t *testing.T) {
	in := &model.CashFlowInputs{
		BusinessInflow: "10,000",
		GivingMode:     model.GivingPercentOfInflow,
		Needs: []model.Need{
			openNeed("past due", "2026-05", 4000, 0),
			openNeed("far future", "2027-06", 4000, 0),
			openNeed("in window", "2026-12", 4000, 0),
		},
	}

	funded := Fund(in, view(t), 0)

	require.InDelta(t, 4000.0, funded, 1e-6)
	assert.InDelta(t, 0.0, in.Needs[0].FundedAmount, 1e-6, "past-due need untouched even with cash left")
	assert.InDelta(t, 0.0, in.Needs[1].FundedAmount, 1e-6, "beyond-window need untouched")
	assert.InDelta(t, 4000.0, in.Needs[2].FundedAmount, 1e-6)
}

func TestFund_NoPoolNoMutation(t *testing.T) {
	in := &model.CashFlowInputs{
		BusinessInflow:   "8,000",
		GivingMode:       model.GivingPercentOfInflow,
		LifestyleMonthly: "8,000",
		Needs: []model.Need{
			openNeed("waiting", "2026-09", 5000, 250),
		},
	}

	funded := Fund(in, view(t), 0)

	assert.InDelta(t, 0.0, funded, 1e-6)
	assert.InDelta(t, 250.0, in.Needs[0].FundedAmount, 1e-6)
}

func TestFund_IsIdempotentOnceTargetsMet(t *testing.T) {
	in := &model.CashFlowInputs{
		BusinessInflow: "50,000",
		GivingMode:     model.GivingPercentOfInflow,
		Needs: []model.Need{
			openNeed("small", "2026-09", 1200, 0),
		},
	}

	first := Fund(in, view(t), 0)
	second := Fund(in, view(t), 0)

	assert.InDelta(t, 1200.0, first, 1e-6)
	assert.InDelta(t, 0.0, second, 1e-6, "no gap left, nothing more moves")
	assert.InDelta(t, 1200.0, in.Needs[0].FundedAmount, 1e-6)
}
