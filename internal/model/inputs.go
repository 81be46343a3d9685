package model

import (
	"strings"

	"github.com/mossfell/cashfall/internal/money"
)

// MoneyText is a user-entered amount kept verbatim. The raw text is what
// persists and renders back to the user; computation always goes through
// Value, which normalizes anything unparsable to 0.
type MoneyText string

// Value normalizes the text for computation.
func (m MoneyText) Value() float64 {
	return money.Normalize(string(m))
}

// IsSet reports whether the user has entered anything at all. Unset fields
// compute as 0 but render as needing attention.
func (m MoneyText) IsSet() bool {
	return strings.TrimSpace(string(m)) != ""
}

// GivingMode selects how the giving transfer is sized.
type GivingMode string

// Giving modes.
const (
	GivingPercentOfInflow GivingMode = "percent"
	GivingFixedDollar     GivingMode = "dollar"
)

// WorkingCapitalInputs feed the business working-capital waterfall.
// AvgCollectionDays is collected for reference only; it does not enter any
// goal formula.
type WorkingCapitalInputs struct {
	OperatingExpenses MoneyText `json:"operatingExpenses"`
	InventoryCost     MoneyText `json:"inventoryCost"`
	DaysPerMonth      MoneyText `json:"daysPerMonth"`
	AvgCollectionDays MoneyText `json:"avgCollectionDays"`
	BusinessChecking  MoneyText `json:"businessChecking"`
	ReserveBalance    MoneyText `json:"reserveBalance"`
	BufferDays        MoneyText `json:"bufferDays"`
	ReserveDays       MoneyText `json:"reserveDays"`
}

// CashFlowInputs feed the monthly cash-flow allocation engine.
type CashFlowInputs struct {
	BusinessInflow   MoneyText  `json:"businessInflow"`
	OtherInflow      MoneyText  `json:"w2OrOtherInflow"`
	GivingMode       GivingMode `json:"givingMode"`
	GivingPercent    float64    `json:"givingPercent"`
	GivingDollar     MoneyText  `json:"givingDollarAmount"`
	LifestyleMonthly MoneyText  `json:"lifestyleMonthlyAmount"`
	Needs            []Need     `json:"needs"`
}

// AddNeed appends a fresh need due the month after the viewed month and
// returns a pointer to it for further editing.
func (c *CashFlowInputs) AddNeed(view MonthToken) *Need {
	c.Needs = append(c.Needs, NewNeed(view.Add(1)))
	return &c.Needs[len(c.Needs)-1]
}

// Need finds a need by ID, or nil.
func (c *CashFlowInputs) Need(id string) *Need {
	for i := range c.Needs {
		if c.Needs[i].ID == id {
			return &c.Needs[i]
		}
	}
	return nil
}

// RemoveNeed permanently deletes a need. This is the only way a need ever
// leaves the list.
func (c *CashFlowInputs) RemoveNeed(id string) bool {
	for i := range c.Needs {
		if c.Needs[i].ID == id {
			c.Needs = append(c.Needs[:i], c.Needs[i+1:]...)
			return true
		}
	}
	return false
}
