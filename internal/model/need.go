package model

import (
	"math"

	"github.com/google/uuid"
)

// NeedStatus tracks whether a need is still being saved for or has been
// paid out.
type NeedStatus string

// Need statuses.
const (
	NeedStatusOpen NeedStatus = "open"
	NeedStatusPaid NeedStatus = "paid"
)

// NeedWindowMonths is how far ahead (inclusive of the viewed month) a need
// may be due and still compete for this month's allocation.
const NeedWindowMonths = 5

// Need is a discrete future expense with a target amount and due month,
// tracked until paid. Needs are only ever removed by explicit user action.
type Need struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	TargetAmount float64    `json:"targetAmount"`
	DueMonth     MonthToken `json:"dueMonth"`
	FundedAmount float64    `json:"fundedAmount"`
	Status       NeedStatus `json:"status"`
	PaidMonth    MonthToken `json:"paidMonth,omitempty"`
}

// NewNeed creates an open, unfunded need due the given month.
func NewNeed(due MonthToken) Need {
	return Need{
		ID:       uuid.NewString(),
		DueMonth: due,
		Status:   NeedStatusOpen,
	}
}

// RemainingGap is how much is still needed to hit the target; never
// negative even when a need is overfunded.
func (n Need) RemainingGap() float64 {
	return math.Max(0, n.TargetAmount-n.FundedAmount)
}

// InWindow reports whether the need is open and due between the viewed
// month and NeedWindowMonths ahead. Past-due open needs fall out of the
// window; they still display but no longer compete for funds.
func (n Need) InWindow(view MonthToken) bool {
	if n.Status != NeedStatusOpen {
		return false
	}
	d := MonthDiff(view, n.DueMonth)
	return d >= 0 && d <= NeedWindowMonths
}

// MarkPaid closes the need, recording the month it was paid in. The funded
// amount is left untouched so history stays queryable.
func (n *Need) MarkPaid(view MonthToken) {
	n.Status = NeedStatusPaid
	n.PaidMonth = view
}

// Reopen reverses MarkPaid, clearing the paid month.
func (n *Need) Reopen() {
	n.Status = NeedStatusOpen
	n.PaidMonth = MonthToken{}
}
