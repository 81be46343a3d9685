package transfers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mossfell/cashfall/internal/engine"
	"github.com/mossfell/cashfall/internal/model"
	"github.com/mossfell/cashfall/internal/waterfall"
)

func TestCashFlowInstructions_FixedOrder(t *testing.T) {
	instructions := CashFlowInstructions(engine.Summary{
		GivingTransfer:    2000,
		LifestyleTransfer: 8000,
		AllocatedToNeeds:  3000,
		Excess:            1500,
	})

	require.Len(t, instructions, 4)
	assert.Equal(t, StepGiving, instructions[0].Step)
	assert.Equal(t, StepLifestyle, instructions[1].Step)
	assert.Equal(t, StepNeedsReserve, instructions[2].Step)
	assert.Equal(t, StepWealth, instructions[3].Step)

	assert.Equal(t, AccountGiving, instructions[0].Destination)
	assert.Equal(t, AccountWealthCreation, instructions[3].Destination)
	assert.Equal(t, EmphasisGood, instructions[3].Emphasis)
}

func TestCashFlowInstructions_DeficitEmphasis(t *testing.T) {
	instructions := CashFlowInstructions(engine.Summary{Excess: -500})
	assert.Equal(t, EmphasisBad, instructions[3].Emphasis)
	assert.InDelta(t, -500.0, instructions[3].Amount, 1e-9, "deficit rendered, not clamped")
}

func TestCapitalInstructions(t *testing.T) {
	t.Run("healthy business", func(t *testing.T) {
		instructions := CapitalInstructions(waterfall.Result{
			BusinessDelta:      42500,
			MoveToReserve:      7500,
			MoveToFamilyOffice: 35000,
		})

		require.Len(t, instructions, 2)
		assert.Equal(t, StepCapitalReserve, instructions[0].Step)
		assert.Equal(t, AccountReserve, instructions[0].Destination)
		assert.Equal(t, EmphasisGood, instructions[0].Emphasis)
		assert.Equal(t, StepCapitalFamilyOffice, instructions[1].Step)
		assert.InDelta(t, 35000.0, instructions[1].Amount, 1e-9)
	})

	t.Run("business below buffer flags shortfall", func(t *testing.T) {
		instructions := CapitalInstructions(waterfall.Result{BusinessDelta: -32500})

		assert.InDelta(t, 0.0, instructions[0].Amount, 1e-9)
		assert.InDelta(t, 0.0, instructions[1].Amount, 1e-9)
		assert.Equal(t, EmphasisBad, instructions[1].Emphasis)
	})
}

func TestStepKeys(t *testing.T) {
	assert.Len(t, StepKeys(model.ToolCapital), 2)
	assert.Len(t, StepKeys(model.ToolCashFlow), 4)
	assert.Nil(t, StepKeys(model.Tool("bogus")))
}

func TestCompletionTracking(t *testing.T) {
	done := model.TransferDone{}
	aug := model.ParseMonth("2026-08")
	sep := model.ParseMonth("2026-09")
	steps := StepKeys(model.ToolCashFlow)

	done.Set(aug, model.ToolCashFlow, StepGiving, true)
	assert.True(t, done.Done(aug, model.ToolCashFlow, StepGiving))
	assert.Equal(t, 1, done.CountDone(aug, model.ToolCashFlow, steps))

	t.Run("completion does not leak across months", func(t *testing.T) {
		assert.False(t, done.Done(sep, model.ToolCashFlow, StepGiving))
		assert.Equal(t, 0, done.CountDone(sep, model.ToolCashFlow, steps))
	})

	t.Run("completion does not leak across tools", func(t *testing.T) {
		assert.Equal(t, 0, done.CountDone(aug, model.ToolCapital, StepKeys(model.ToolCapital)))
	})

	t.Run("mark all covers the whole step set", func(t *testing.T) {
		done.MarkAll(sep, model.ToolCashFlow, steps)
		assert.Equal(t, len(steps), done.CountDone(sep, model.ToolCashFlow, steps))
		// August untouched by September's mark-all.
		assert.Equal(t, 1, done.CountDone(aug, model.ToolCashFlow, steps))
	})

	t.Run("unchecking is reversible", func(t *testing.T) {
		done.Set(aug, model.ToolCashFlow, StepGiving, false)
		assert.False(t, done.Done(aug, model.ToolCashFlow, StepGiving))
	})
}
