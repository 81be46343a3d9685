// Package transfers turns engine output into the ordered checklist of bank
// transfers the user executes by hand, and defines the stable step-key sets
// completion tracking is checked against.
package transfers

import (
	"github.com/mossfell/cashfall/internal/engine"
	"github.com/mossfell/cashfall/internal/model"
	"github.com/mossfell/cashfall/internal/waterfall"
)

// Emphasis hints how an instruction should be rendered.
type Emphasis string

// Emphasis levels.
const (
	EmphasisGood    Emphasis = "good"
	EmphasisBad     Emphasis = "bad"
	EmphasisNeutral Emphasis = "default"
)

// Account labels. These are advisory names on instructions; no real bank
// integration exists.
const (
	AccountBusinessChecking = "Business Checking"
	AccountReserve          = "Reserve"
	AccountFamilyOffice     = "Family Office"
	AccountGiving           = "Giving"
	AccountLifestyle        = "Lifestyle"
	AccountNeedsReserve     = "Needs Reserve"
	AccountWealthCreation   = "Wealth Creation"
)

// Step keys per tool. These sets are the single source of truth for
// mark-all and count-done, so a new step cannot silently escape tracking.
const (
	StepCapitalReserve      model.StepKey = "move-to-reserve"
	StepCapitalFamilyOffice model.StepKey = "move-to-family-office"

	StepGiving       model.StepKey = "giving"
	StepLifestyle    model.StepKey = "lifestyle"
	StepNeedsReserve model.StepKey = "needs-reserve"
	StepWealth       model.StepKey = "wealth-creation"
)

var (
	capitalSteps  = []model.StepKey{StepCapitalReserve, StepCapitalFamilyOffice}
	cashFlowSteps = []model.StepKey{StepGiving, StepLifestyle, StepNeedsReserve, StepWealth}
)

// StepKeys enumerates the known steps for a tool, in checklist order.
func StepKeys(tool model.Tool) []model.StepKey {
	switch tool {
	case model.ToolCapital:
		return capitalSteps
	case model.ToolCashFlow:
		return cashFlowSteps
	default:
		return nil
	}
}

// Instruction is one row of the transfer checklist.
type Instruction struct {
	Step        model.StepKey
	Source      string
	Destination string
	Amount      float64
	Purpose     string
	Emphasis    Emphasis
}

// CapitalInstructions builds the working-capital checklist. When the
// business is below its own buffer both amounts are zero and the shortfall
// is flagged on the family-office row.
func CapitalInstructions(r waterfall.Result) []Instruction {
	reserveEmphasis := EmphasisNeutral
	if r.MoveToReserve > 0 {
		reserveEmphasis = EmphasisGood
	}
	familyEmphasis := EmphasisNeutral
	switch {
	case r.BusinessDelta < 0:
		familyEmphasis = EmphasisBad
	case r.MoveToFamilyOffice > 0:
		familyEmphasis = EmphasisGood
	}

	return []Instruction{
		{
			Step:        StepCapitalReserve,
			Source:      AccountBusinessChecking,
			Destination: AccountReserve,
			Amount:      r.MoveToReserve,
			Purpose:     "Top up the business reserve",
			Emphasis:    reserveEmphasis,
		},
		{
			Step:        StepCapitalFamilyOffice,
			Source:      AccountBusinessChecking,
			Destination: AccountFamilyOffice,
			Amount:      r.MoveToFamilyOffice,
			Purpose:     "Surplus after buffer and reserve",
			Emphasis:    familyEmphasis,
		},
	}
}

// CashFlowInstructions builds the monthly checklist in fixed order: giving,
// lifestyle, needs reserve, wealth creation. The needs-reserve row is an
// internal earmark, not an outbound transfer.
func CashFlowInstructions(s engine.Summary) []Instruction {
	excessEmphasis := EmphasisGood
	if s.Excess < 0 {
		excessEmphasis = EmphasisBad
	}

	return []Instruction{
		{
			Step:        StepGiving,
			Source:      AccountFamilyOffice,
			Destination: AccountGiving,
			Amount:      s.GivingTransfer,
			Purpose:     "Giving transfer",
			Emphasis:    EmphasisGood,
		},
		{
			Step:        StepLifestyle,
			Source:      AccountFamilyOffice,
			Destination: AccountLifestyle,
			Amount:      s.LifestyleTransfer,
			Purpose:     "Monthly lifestyle draw",
			Emphasis:    EmphasisNeutral,
		},
		{
			Step:        StepNeedsReserve,
			Source:      AccountFamilyOffice,
			Destination: AccountNeedsReserve,
			Amount:      s.AllocatedToNeeds,
			Purpose:     "Earmark for upcoming needs (stays in account)",
			Emphasis:    EmphasisNeutral,
		},
		{
			Step:        StepWealth,
			Source:      AccountFamilyOffice,
			Destination: AccountWealthCreation,
			Amount:      s.Excess,
			Purpose:     "Excess to wealth creation",
			Emphasis:    excessEmphasis,
		},
	}
}

// ForTool dispatches to the right builder for a tool.
func ForTool(tool model.Tool, r waterfall.Result, s engine.Summary) []Instruction {
	if tool == model.ToolCapital {
		return CapitalInstructions(r)
	}
	return CashFlowInstructions(s)
}
