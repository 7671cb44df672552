package lease

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/aptiva-ai/rental-platform/internal/model"
)

// StepResult is the outcome of one lease-flow turn. When Done is true the
// flow has collected everything and Inputs holds the resolved draft
// inputs; otherwise Reply is the next prompt and the session stays
// pending.
type StepResult struct {
	Reply  string
	Done   bool
	Inputs Inputs
}

var nameIntroRE = regexp.MustCompile(`(?i)(?:my name is|i am|i'm|this is)\s+(.+)`)

// extractTenantName pulls a name from "my name is X" style phrasing,
// falling back to the raw utterance.
func extractTenantName(input string) string {
	trimmed := strings.TrimSpace(input)
	if m := nameIntroRE.FindStringSubmatch(trimmed); m != nil {
		trimmed = strings.TrimSpace(m[1])
	}
	trimmed = strings.Trim(trimmed, ".!,")
	return NormalizeResidentName(trimmed)
}

// Begin starts a lease flow for the given listing and advances past any
// stage already satisfied by known preferences. One flow per conversation:
// callers must not Begin while a session is active.
func Begin(sess *model.LeaseSession, listing *model.Listing, prefs model.Preferences) StepResult {
	sess.Reset()
	sess.Listing = listing
	sess.Overrides = model.Preferences{}
	sess.PlanOptions = DerivePlanOptions(listing)
	sess.Bounds = DeriveDurationBounds(listing)

	if prefs.TenantName != nil && strings.TrimSpace(*prefs.TenantName) != "" {
		sess.TenantName = NormalizeResidentName(*prefs.TenantName)
	}
	if prefs.LeaseStartDate != nil {
		if _, err := time.Parse("2006-01-02", *prefs.LeaseStartDate); err == nil {
			sess.MoveInDate = *prefs.LeaseStartDate
		}
	}
	if prefs.LeaseDurationMonths != nil {
		m := *prefs.LeaseDurationMonths
		if m >= sess.Bounds.Min && m <= sess.Bounds.Max {
			sess.TermMonths = m
		}
	}

	return next(sess, prefs)
}

// Step processes one user message while the flow is pending. Invalid
// input re-prompts and stays in the current stage.
func Step(sess *model.LeaseSession, message string, prefs model.Preferences, now time.Time) StepResult {
	switch sess.Stage {
	case model.LeaseStageAwaitName:
		name := extractTenantName(message)
		if name == "" {
			return StepResult{Reply: "I didn't catch a name there. What is the tenant's full legal name?"}
		}
		sess.TenantName = name
		return next(sess, prefs)

	case model.LeaseStageAwaitPlan:
		chosen := MatchPlan(sess.PlanOptions, message)
		if chosen == nil {
			return StepResult{Reply: "I couldn't match that to one of the floor plans. Please pick by number or name.\n\n" + renderPlanOptions(sess.PlanOptions)}
		}
		sess.ChosenPlan = chosen
		sess.UnitOptions = DeriveUnitOptions(sess.Listing, chosen.Name)
		return next(sess, prefs)

	case model.LeaseStageAwaitUnit:
		chosen := MatchUnit(sess.UnitOptions, message)
		if chosen == nil {
			return StepResult{Reply: "Please pick a unit by its number.\n\n" + renderUnitOptions(sess.UnitOptions)}
		}
		sess.ChosenUnit = chosen
		return next(sess, prefs)

	case model.LeaseStageAwaitMoveIn:
		t, err := ParseMoveInDate(message, now)
		if err != nil {
			return StepResult{Reply: "I couldn't read that as a date. Try a format like 2026-09-01, 09/01/2026, or September 1."}
		}
		sess.MoveInDate = t.Format("2006-01-02")
		return next(sess, prefs)

	case model.LeaseStageAwaitTerm:
		months, err := ParseDuration(message, sess.Bounds)
		if err != nil {
			if sess.Bounds.Min == sess.Bounds.Max {
				return StepResult{Reply: fmt.Sprintf("This unit offers a %d-month lease. Reply with %d, or \"all\" to take it.", sess.Bounds.Min, sess.Bounds.Min)}
			}
			return StepResult{Reply: fmt.Sprintf("Lease terms for this unit run %d to %d months. How many months would you like?", sess.Bounds.Min, sess.Bounds.Max)}
		}
		sess.TermMonths = months
		return next(sess, prefs)
	}

	return StepResult{Reply: "Something went wrong with the lease flow. Say \"lease draft\" to start over."}
}

// next advances to the first unsatisfied stage, auto-selecting when a
// listing exposes exactly one plan or unit, and finalizes when everything
// is collected.
func next(sess *model.LeaseSession, prefs model.Preferences) StepResult {
	if sess.TenantName == "" {
		sess.Stage = model.LeaseStageAwaitName
		return StepResult{Reply: "Happy to put a lease draft together. What is the tenant's full legal name?"}
	}

	if sess.ChosenPlan == nil {
		switch len(sess.PlanOptions) {
		case 0:
		case 1:
			sess.ChosenPlan = &sess.PlanOptions[0]
			sess.UnitOptions = DeriveUnitOptions(sess.Listing, sess.ChosenPlan.Name)
		default:
			sess.Stage = model.LeaseStageAwaitPlan
			return StepResult{Reply: "Which floor plan would you like?\n\n" + renderPlanOptions(sess.PlanOptions)}
		}
	}

	if sess.ChosenUnit == nil && len(sess.UnitOptions) > 1 {
		sess.Stage = model.LeaseStageAwaitUnit
		return StepResult{Reply: "Which unit?\n\n" + renderUnitOptions(sess.UnitOptions)}
	}
	if sess.ChosenUnit == nil && len(sess.UnitOptions) == 1 {
		sess.ChosenUnit = &sess.UnitOptions[0]
	}

	if sess.MoveInDate == "" {
		sess.Stage = model.LeaseStageAwaitMoveIn
		return StepResult{Reply: "When would you like to move in? A date like 2026-09-01 or September 1 works."}
	}

	if sess.TermMonths == 0 {
		sess.Stage = model.LeaseStageAwaitTerm
		if sess.Bounds.Min == sess.Bounds.Max {
			return StepResult{Reply: fmt.Sprintf("This unit offers a %d-month lease. Reply with %d, or \"all\" to take it.", sess.Bounds.Min, sess.Bounds.Min)}
		}
		return StepResult{Reply: fmt.Sprintf("How many months would you like the lease to run? This unit offers %d to %d months (\"all\" takes the full term).", sess.Bounds.Min, sess.Bounds.Max)}
	}

	return StepResult{Done: true, Inputs: finalize(sess, prefs)}
}

// finalize merges collected selections into draft inputs. The unit's
// price overrides the plan rent when present.
func finalize(sess *model.LeaseSession, prefs model.Preferences) Inputs {
	overrides := sess.Overrides
	overrides.TenantName = model.StringPtr(sess.TenantName)
	overrides.LeaseStartDate = model.StringPtr(sess.MoveInDate)
	overrides.LeaseDurationMonths = model.IntPtr(sess.TermMonths)

	in := InferInputs(prefs, sess.Listing, overrides)

	if plan := sess.ChosenPlan; plan != nil {
		in.SelectedPlanName = plan.Name
		detailParts := []string{plan.Beds, plan.Baths}
		if plan.PerPerson {
			detailParts = append(detailParts, "rent quoted per person")
		}
		in.SelectedPlanDetails = joinNonEmpty(detailParts, ", ")
		in.SelectedPlanAvailability = plan.Availability
		in.SelectedPlanDeposit = plan.Deposit
		if rents := parseRentNumbers(plan.Rent); len(rents) > 0 {
			in.MonthlyRent = rents[0]
		}
	}
	if unit := sess.ChosenUnit; unit != nil {
		in.SelectedUnitLabel = unit.Number
		in.SelectedUnitSqft = unit.SquareFeet
		in.SelectedUnitAvailability = unit.Availability
		if rents := parseRentNumbers(unit.Rent); len(rents) > 0 {
			in.SelectedUnitPrice = rents[0]
			in.MonthlyRent = rents[0]
		}
	}
	return in
}

func renderPlanOptions(options []model.PlanOption) string {
	var b strings.Builder
	for _, opt := range options {
		fmt.Fprintf(&b, "%d. %s", opt.Index, opt.Name)
		rent := opt.Rent
		if opt.PerPerson && rent != "" {
			rent += " per person"
		}
		deposit := opt.Deposit
		if deposit != "" {
			deposit = "deposit " + deposit
		}
		details := joinNonEmpty([]string{rent, opt.Beds, opt.Baths, opt.Availability, deposit}, ", ")
		if details != "" {
			fmt.Fprintf(&b, " (%s)", details)
		}
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderUnitOptions(options []model.UnitOption) string {
	var b strings.Builder
	for _, opt := range options {
		label := opt.Number
		if label == "" {
			label = fmt.Sprintf("Unit %d", opt.Index)
		}
		fmt.Fprintf(&b, "%d. %s", opt.Index, label)
		details := joinNonEmpty([]string{opt.Rent, sqftLabel(opt.SquareFeet), opt.Availability}, ", ")
		if details != "" {
			fmt.Fprintf(&b, " (%s)", details)
		}
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

func sqftLabel(sqft string) string {
	if sqft == "" {
		return ""
	}
	return sqft + " sq ft"
}
