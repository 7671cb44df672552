package lease

import (
	"fmt"
	"strings"

	"github.com/aptiva-ai/rental-platform/internal/model"
)

// StateRules are simplified per-state heuristics for quick validation,
// not legal advice. Zero values mean no rule for that state.
type StateRules struct {
	SecurityDepositMaxMonths int
	LateFeeCapPct            float64
	PetRentCap               int
}

// DefaultStateRules covers the states the assistant validates against.
var DefaultStateRules = map[string]StateRules{
	"CA": {SecurityDepositMaxMonths: 2, LateFeeCapPct: 5, PetRentCap: 75},
	"NY": {SecurityDepositMaxMonths: 1, LateFeeCapPct: 5, PetRentCap: 50},
	"MA": {SecurityDepositMaxMonths: 1, LateFeeCapPct: 5},
}

// CheckCompliance validates a generated draft against state rules and the
// mandatory section list. It is idempotent: checking the same inputs and
// draft again yields the same report.
func CheckCompliance(in Inputs, draftText string) model.ComplianceReport {
	return CheckComplianceWith(DefaultStateRules, in, draftText)
}

// CheckComplianceWith is CheckCompliance with an injected rule table.
func CheckComplianceWith(rules map[string]StateRules, in Inputs, draftText string) model.ComplianceReport {
	state := strings.ToUpper(strings.TrimSpace(in.State))
	report := model.ComplianceReport{State: state}

	issue := func(code, msg string) {
		report.Issues = append(report.Issues, model.ComplianceIssue{
			Severity: "issue", Code: code, Message: msg,
		})
	}
	warning := func(code, msg string) {
		report.Warnings = append(report.Warnings, model.ComplianceIssue{
			Severity: "warning", Code: code, Message: msg,
		})
	}

	if stateRules, ok := rules[state]; ok {
		if m := stateRules.SecurityDepositMaxMonths; m > 0 && in.MonthlyRent > 0 {
			deposit := in.Deposit()
			if deposit > in.MonthlyRent*m {
				issue("deposit_cap", fmt.Sprintf(
					"Security deposit %s exceeds %d month(s) of rent allowed in %s.",
					formatDollars(deposit), m, state))
			}
		}
		if cap := stateRules.LateFeeCapPct; cap > 0 && in.MonthlyRent > 0 {
			totalLateFee := in.LateFeeInitial + in.LateFeeDaily
			capValue := float64(in.MonthlyRent) * cap / 100
			if float64(totalLateFee) > capValue {
				warning("late_fee", fmt.Sprintf(
					"Combined late fees ($%d) exceed %.0f%% of monthly rent ($%.2f) referenced by %s guidance.",
					totalLateFee, cap, capValue, state))
			}
		}
		if cap := stateRules.PetRentCap; cap > 0 && in.PetRent > cap {
			warning("pet_rent", fmt.Sprintf(
				"Monthly pet rent $%d is above the suggested cap ($%d) for %s.",
				in.PetRent, cap, state))
		}
	}

	if in.RentCap != nil && in.MonthlyRent > 0 && in.MonthlyRent > *in.RentCap {
		issue("rent_cap", fmt.Sprintf(
			"Monthly rent %s exceeds the configured rent cap (%s).",
			formatDollars(in.MonthlyRent), formatDollars(*in.RentCap)))
	}

	for _, section := range MandatorySections {
		if !strings.Contains(draftText, section) {
			issue("missing_section", fmt.Sprintf("Mandatory clause '%s' missing from draft.", section))
		}
	}

	if in.MonthlyRent == 0 {
		warning("rent_tbd", "Monthly rent is set to TBD. Update before sending to tenants.")
	}
	if in.PropertyAddress == "" || in.PropertyAddress == "TBD" || in.City == "" || in.State == "" {
		warning("address_incomplete", "Property address is incomplete.")
	}

	return report
}
