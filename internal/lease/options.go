package lease

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/aptiva-ai/rental-platform/internal/model"
)

const (
	maxPlanOptions = 8
	maxUnitOptions = 10
)

// DerivePlanOptions lists a listing's floor plans as numbered options,
// capped at eight.
func DerivePlanOptions(listing *model.Listing) []model.PlanOption {
	if listing == nil {
		return nil
	}
	var opts []model.PlanOption
	for _, plan := range listing.FloorPlans {
		if plan.Name == "" && plan.Rent == "" {
			continue
		}
		opts = append(opts, model.PlanOption{
			Index:        len(opts) + 1,
			Name:         plan.Name,
			Rent:         plan.Rent,
			Beds:         plan.Beds,
			Baths:        plan.Baths,
			Availability: plan.Availability,
			Deposit:      plan.Deposit,
			PerPerson:    plan.PricePerPerson,
		})
		if len(opts) == maxPlanOptions {
			break
		}
	}
	return opts
}

// DeriveUnitOptions lists the units of the named plan as numbered
// options, capped at ten.
func DeriveUnitOptions(listing *model.Listing, planName string) []model.UnitOption {
	if listing == nil {
		return nil
	}
	var opts []model.UnitOption
	for _, plan := range listing.FloorPlans {
		if plan.Name != planName {
			continue
		}
		for _, unit := range plan.Units {
			opts = append(opts, model.UnitOption{
				Index:        len(opts) + 1,
				Number:       unit.Number,
				Rent:         unit.Rent,
				SquareFeet:   unit.SquareFeet,
				Availability: unit.Availability,
			})
			if len(opts) == maxUnitOptions {
				break
			}
		}
		break
	}
	return opts
}

var trailingDigitRE = regexp.MustCompile(`(\d+)\s*$`)

func trailingNumber(input string) (int, bool) {
	m := trailingDigitRE.FindStringSubmatch(strings.TrimSpace(input))
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// MatchPlan resolves the user's reply to a plan option, first by trailing
// digit, then by case-insensitive name substring.
func MatchPlan(options []model.PlanOption, input string) *model.PlanOption {
	if n, ok := trailingNumber(input); ok {
		for i := range options {
			if options[i].Index == n {
				return &options[i]
			}
		}
	}
	lowered := strings.ToLower(strings.TrimSpace(input))
	if lowered == "" {
		return nil
	}
	for i := range options {
		name := strings.ToLower(options[i].Name)
		if name != "" && (strings.Contains(lowered, name) || strings.Contains(name, lowered)) {
			return &options[i]
		}
	}
	return nil
}

// MatchUnit resolves the user's reply to a unit option by trailing digit
// only. Unit labels are not matched by name.
func MatchUnit(options []model.UnitOption, input string) *model.UnitOption {
	n, ok := trailingNumber(input)
	if !ok {
		return nil
	}
	for i := range options {
		if options[i].Index == n {
			return &options[i]
		}
	}
	return nil
}
