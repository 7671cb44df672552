package model

import "time"

// LeaseStage identifies where a conversation is in the lease-drafting
// sub-flow. Exactly one stage is active at a time; Idle means no lease
// collection is in progress.
type LeaseStage string

const (
	LeaseStageIdle        LeaseStage = "idle"
	LeaseStageAwaitName   LeaseStage = "await_name"
	LeaseStageAwaitPlan   LeaseStage = "await_plan"
	LeaseStageAwaitUnit   LeaseStage = "await_unit"
	LeaseStageAwaitMoveIn LeaseStage = "await_move_in"
	LeaseStageAwaitTerm   LeaseStage = "await_term"
)

// PlanOption is one floor plan presented to the user during lease
// collection, addressable by its 1-based index or by name substring.
type PlanOption struct {
	Index        int    `json:"index"`
	Name         string `json:"name"`
	Rent         string `json:"rent,omitempty"`
	Beds         string `json:"beds,omitempty"`
	Baths        string `json:"baths,omitempty"`
	Availability string `json:"availability,omitempty"`
	Deposit      string `json:"deposit,omitempty"`
	PerPerson    bool   `json:"per_person,omitempty"`
}

// UnitOption is one unit within the selected plan, addressable only by its
// 1-based index.
type UnitOption struct {
	Index        int    `json:"index"`
	Number       string `json:"number,omitempty"`
	Rent         string `json:"rent,omitempty"`
	SquareFeet   string `json:"square_feet,omitempty"`
	Availability string `json:"availability,omitempty"`
}

// DurationBounds is the allowed lease term range in months for the
// selected unit.
type DurationBounds struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// LeaseSession is the in-progress lease collection state attached to a
// conversation. It is reset atomically when the flow finishes or aborts.
type LeaseSession struct {
	Stage        LeaseStage     `json:"stage"`
	Listing      *Listing       `json:"listing,omitempty"`
	TenantName   string         `json:"tenant_name,omitempty"`
	PlanOptions  []PlanOption   `json:"plan_options,omitempty"`
	ChosenPlan   *PlanOption    `json:"chosen_plan,omitempty"`
	UnitOptions  []UnitOption   `json:"unit_options,omitempty"`
	ChosenUnit   *UnitOption    `json:"chosen_unit,omitempty"`
	MoveInDate   string         `json:"move_in_date,omitempty"`
	Bounds       DurationBounds `json:"bounds"`
	TermMonths   int            `json:"term_months,omitempty"`
	Overrides    Preferences    `json:"overrides"`
	ScheduledFor string         `json:"scheduled_for,omitempty"`
}

// Active reports whether lease collection is in progress.
func (s *LeaseSession) Active() bool {
	return s != nil && s.Stage != "" && s.Stage != LeaseStageIdle
}

// Reset returns the session to idle and clears all collected fields.
func (s *LeaseSession) Reset() {
	*s = LeaseSession{Stage: LeaseStageIdle}
}

// ComplianceIssue is one finding from the lease compliance check.
type ComplianceIssue struct {
	Severity string `json:"severity"`
	Code     string `json:"code"`
	Message  string `json:"message"`
}

// ComplianceReport summarizes compliance findings for a drafted lease.
type ComplianceReport struct {
	State    string            `json:"state,omitempty"`
	Issues   []ComplianceIssue `json:"issues,omitempty"`
	Warnings []ComplianceIssue `json:"warnings,omitempty"`
}

// Clean reports whether the lease had no blocking issues.
func (r ComplianceReport) Clean() bool { return len(r.Issues) == 0 }

// LeaseDraft is a persisted lease document plus its inputs and
// compliance result.
type LeaseDraft struct {
	ID             string           `json:"id"`
	ConversationID string           `json:"conversation_id"`
	ListingTitle   string           `json:"listing_title,omitempty"`
	ListingURL     string           `json:"listing_url,omitempty"`
	TenantName     string           `json:"tenant_name"`
	LandlordName   string           `json:"landlord_name"`
	MonthlyRent    string           `json:"monthly_rent"`
	StartDate      string           `json:"start_date"`
	EndDate        string           `json:"end_date"`
	TermMonths     int              `json:"term_months"`
	Document       string           `json:"document"`
	Compliance     ComplianceReport `json:"compliance"`
	CreatedAt      time.Time        `json:"created_at"`
}
