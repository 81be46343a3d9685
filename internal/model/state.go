package model

import (
	"encoding/json"

	"github.com/mossfell/cashfall/internal/money"
)

// Tool names the two allocation tools.
type Tool string

// Tools.
const (
	ToolCapital  Tool = "capital"
	ToolCashFlow Tool = "cashflow"
)

// StepKey names one transfer step within a tool's checklist.
type StepKey string

// StepDone tracks completion per step.
type StepDone map[StepKey]bool

// ToolDone tracks completion per tool.
type ToolDone map[Tool]StepDone

// TransferDone tracks transfer-checklist completion independently per
// viewed month, so checking off January never leaks into February. Flags
// are advisory bookkeeping only and never feed the money math.
type TransferDone map[MonthToken]ToolDone

// Done reports whether a step is checked off.
func (t TransferDone) Done(month MonthToken, tool Tool, step StepKey) bool {
	return t[month][tool][step]
}

// Set records completion for one step.
func (t TransferDone) Set(month MonthToken, tool Tool, step StepKey, done bool) {
	if t[month] == nil {
		t[month] = ToolDone{}
	}
	if t[month][tool] == nil {
		t[month][tool] = StepDone{}
	}
	t[month][tool][step] = done
}

// MarkAll sets every given step for one tool/month in a single batch.
func (t TransferDone) MarkAll(month MonthToken, tool Tool, steps []StepKey) {
	for _, step := range steps {
		t.Set(month, tool, step, true)
	}
}

// CountDone counts how many of the given steps are checked off.
func (t TransferDone) CountDone(month MonthToken, tool Tool, steps []StepKey) int {
	count := 0
	for _, step := range steps {
		if t.Done(month, tool, step) {
			count++
		}
	}
	return count
}

// AllocationState is the root aggregate: everything one user's dashboard
// persists, as a single document. SuggestedBusinessInflow is derived from
// the working-capital waterfall and cached here for hand-off to the
// cash-flow tool.
type AllocationState struct {
	Month                   MonthToken           `json:"month"`
	ActiveTool              Tool                 `json:"activeTool"`
	SuggestedBusinessInflow float64              `json:"suggestedBusinessIn"`
	TransferDone            TransferDone         `json:"transferDone"`
	WorkingCapital          WorkingCapitalInputs `json:"workingCapital"`
	CashFlow                CashFlowInputs       `json:"cashflow"`
}

// DefaultState provides the explicit default for every field, viewed at the
// given month. Loading always starts from here so new fields pick up sane
// values on old documents.
func DefaultState(now MonthToken) *AllocationState {
	return &AllocationState{
		Month:        now,
		ActiveTool:   ToolCapital,
		TransferDone: TransferDone{},
		CashFlow: CashFlowInputs{
			GivingMode:    GivingPercentOfInflow,
			GivingPercent: 10,
			Needs:         []Need{},
		},
	}
}

// LoadState merges a persisted document over DefaultState(now): fields
// present in the document win, missing fields keep their defaults, and
// unknown fields are ignored. A document that fails to parse entirely
// yields the defaults, matching the first-time-user path.
func LoadState(raw []byte, now MonthToken) *AllocationState {
	state := DefaultState(now)
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, state)
	}
	state.normalize(now)
	return state
}

// normalize re-establishes invariants a hand-edited or stale document may
// have broken.
func (s *AllocationState) normalize(now MonthToken) {
	if s.Month.IsZero() {
		s.Month = now
	}
	if s.ActiveTool != ToolCapital && s.ActiveTool != ToolCashFlow {
		s.ActiveTool = ToolCapital
	}
	if s.TransferDone == nil {
		s.TransferDone = TransferDone{}
	}
	if s.CashFlow.GivingMode != GivingFixedDollar {
		s.CashFlow.GivingMode = GivingPercentOfInflow
	}
	s.CashFlow.GivingPercent = money.ClampPercentValue(s.CashFlow.GivingPercent)
	if s.CashFlow.Needs == nil {
		s.CashFlow.Needs = []Need{}
	}
	for i := range s.CashFlow.Needs {
		if s.CashFlow.Needs[i].Status != NeedStatusPaid {
			s.CashFlow.Needs[i].Status = NeedStatusOpen
		}
	}
}

// Encode serializes the state to its persisted document form.
func (s *AllocationState) Encode() ([]byte, error) {
	return json.Marshal(s)
}
