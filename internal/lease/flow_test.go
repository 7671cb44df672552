package lease

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aptiva-ai/rental-platform/internal/model"
)

func multiPlanListing() *model.Listing {
	return &model.Listing{
		Title:    "Riverbend Commons",
		Location: "88 River Rd, Austin, TX",
		URL:      "https://www.apartments.com/riverbend-commons-austin-tx/xyz789/",
		FloorPlans: []model.FloorPlan{
			{Name: "S1", Rent: "$1,100", Beds: "Studio", Baths: "1 bath"},
			{
				Name: "B2", Rent: "$1,600", Beds: "2 beds", Baths: "2 baths",
				Units: []model.Unit{
					{Number: "101", Rent: "$1,600", SquareFeet: "940"},
					{Number: "408", Rent: "$1,650", SquareFeet: "960"},
				},
			},
		},
	}
}

func TestBeginAsksForNameFirst(t *testing.T) {
	var sess model.LeaseSession
	res := Begin(&sess, multiPlanListing(), model.Preferences{})

	assert.False(t, res.Done)
	assert.Contains(t, res.Reply, "full legal name")
	assert.Equal(t, model.LeaseStageAwaitName, sess.Stage)
	assert.Len(t, sess.PlanOptions, 2)
}

func TestBeginSkipsStagesSatisfiedByPreferences(t *testing.T) {
	var sess model.LeaseSession
	prefs := model.Preferences{
		TenantName:     model.StringPtr("dana whitfield"),
		LeaseStartDate: model.StringPtr("2026-11-01"),
	}
	res := Begin(&sess, multiPlanListing(), prefs)

	assert.False(t, res.Done)
	assert.Equal(t, "Dana Whitfield", sess.TenantName)
	assert.Equal(t, "2026-11-01", sess.MoveInDate)
	assert.Equal(t, model.LeaseStageAwaitPlan, sess.Stage)
	assert.Contains(t, res.Reply, "Which floor plan")
}

func TestStepFullFlow(t *testing.T) {
	var sess model.LeaseSession
	now := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)

	Begin(&sess, multiPlanListing(), model.Preferences{})

	res := Step(&sess, "Dana Whitfield", model.Preferences{}, now)
	assert.Contains(t, res.Reply, "1. S1")
	assert.Contains(t, res.Reply, "2. B2")

	res = Step(&sess, "the B2 please", model.Preferences{}, now)
	assert.Contains(t, res.Reply, "Which unit?")
	assert.Contains(t, res.Reply, "1. 101")
	assert.Contains(t, res.Reply, "2. 408")

	res = Step(&sess, "2", model.Preferences{}, now)
	assert.Contains(t, res.Reply, "When would you like to move in?")

	res = Step(&sess, "we'd move September 1", model.Preferences{}, now)
	require.False(t, res.Done)
	assert.Equal(t, "2026-09-01", sess.MoveInDate)

	res = Step(&sess, "12", model.Preferences{}, now)
	require.True(t, res.Done)
	assert.Equal(t, "Dana Whitfield", res.Inputs.TenantName)
	assert.Equal(t, "B2", res.Inputs.SelectedPlanName)
	assert.Equal(t, "408", res.Inputs.SelectedUnitLabel)
	assert.Equal(t, 1650, res.Inputs.MonthlyRent)
	assert.Equal(t, 12, res.Inputs.LeaseTermMonths)
}

func TestPlanOptionsCarryAvailabilityDepositPerPerson(t *testing.T) {
	listing := &model.Listing{
		Title:    "Campus Edge",
		Location: "12 College Ave, Austin, TX",
		FloorPlans: []model.FloorPlan{
			{
				Name: "A1", Rent: "$1,500", Beds: "4 beds", Baths: "4 baths",
				Availability: "Available Aug 12", Deposit: "$300", PricePerPerson: true,
			},
			{Name: "B2", Rent: "$1,900", Beds: "2 beds", Baths: "2 baths", Availability: "Available Now"},
		},
	}
	var sess model.LeaseSession
	now := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)

	Begin(&sess, listing, model.Preferences{})
	res := Step(&sess, "Dana Whitfield", model.Preferences{}, now)
	assert.Contains(t, res.Reply, "$1,500 per person")
	assert.Contains(t, res.Reply, "Available Aug 12")
	assert.Contains(t, res.Reply, "deposit $300")
	assert.Contains(t, res.Reply, "Available Now")

	Step(&sess, "1", model.Preferences{}, now)
	Step(&sess, "2026-09-01", model.Preferences{}, now)
	res = Step(&sess, "12", model.Preferences{}, now)
	require.True(t, res.Done)
	assert.Equal(t, "Available Aug 12", res.Inputs.SelectedPlanAvailability)
	assert.Equal(t, "$300", res.Inputs.SelectedPlanDeposit)
	assert.Contains(t, res.Inputs.SelectedPlanDetails, "rent quoted per person")
}

func TestStepInvalidInputReprompts(t *testing.T) {
	var sess model.LeaseSession
	now := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)

	Begin(&sess, multiPlanListing(), model.Preferences{})
	Step(&sess, "Dana Whitfield", model.Preferences{}, now)

	res := Step(&sess, "the penthouse", model.Preferences{}, now)
	assert.False(t, res.Done)
	assert.Contains(t, res.Reply, "couldn't match that to one of the floor plans")
	assert.Equal(t, model.LeaseStageAwaitPlan, sess.Stage)

	Step(&sess, "B2", model.Preferences{}, now)
	res = Step(&sess, "the corner one", model.Preferences{}, now)
	assert.Contains(t, res.Reply, "pick a unit by its number")
	assert.Equal(t, model.LeaseStageAwaitUnit, sess.Stage)

	Step(&sess, "1", model.Preferences{}, now)
	res = Step(&sess, "whenever", model.Preferences{}, now)
	assert.Contains(t, res.Reply, "couldn't read that as a date")
	assert.Equal(t, model.LeaseStageAwaitMoveIn, sess.Stage)
}

func TestNextAutoSelectsSinglePlanAndUnit(t *testing.T) {
	listing := &model.Listing{
		Title: "Solo Flat",
		FloorPlans: []model.FloorPlan{
			{Name: "A1", Rent: "$1,300", Units: []model.Unit{{Number: "7", Rent: "$1,300"}}},
		},
	}
	var sess model.LeaseSession
	now := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)

	Begin(&sess, listing, model.Preferences{})
	res := Step(&sess, "Ira Patel", model.Preferences{}, now)

	// one plan with one unit: both chosen without prompting
	require.NotNil(t, sess.ChosenPlan)
	assert.Equal(t, "A1", sess.ChosenPlan.Name)
	require.NotNil(t, sess.ChosenUnit)
	assert.Equal(t, "7", sess.ChosenUnit.Number)
	assert.Contains(t, res.Reply, "When would you like to move in?")
}

func TestExtractTenantName(t *testing.T) {
	cases := map[string]string{
		"my name is casey brooks": "Casey Brooks",
		"I'm avery lane.":         "Avery Lane",
		"this is Sam Ortiz":       "Sam Ortiz",
		"JORDAN RIVERA":           "Jordan Rivera",
	}
	for input, want := range cases {
		assert.Equal(t, want, extractTenantName(input), "input %q", input)
	}
}

func TestDerivePlanOptionsSkipsEmptyAndCaps(t *testing.T) {
	listing := &model.Listing{FloorPlans: []model.FloorPlan{{Name: "", Rent: ""}}}
	for i := 0; i < 10; i++ {
		listing.FloorPlans = append(listing.FloorPlans, model.FloorPlan{Name: "Plan", Rent: "$1,000"})
	}
	opts := DerivePlanOptions(listing)
	require.Len(t, opts, maxPlanOptions)
	assert.Equal(t, 1, opts[0].Index)
	assert.Equal(t, maxPlanOptions, opts[len(opts)-1].Index)
}

func TestMatchPlan(t *testing.T) {
	opts := DerivePlanOptions(multiPlanListing())

	require.NotNil(t, MatchPlan(opts, "2"))
	assert.Equal(t, "B2", MatchPlan(opts, "2").Name)
	assert.Equal(t, "S1", MatchPlan(opts, "the s1 plan sounds right").Name)
	assert.Equal(t, "B2", MatchPlan(opts, "b2").Name)
	assert.Nil(t, MatchPlan(opts, "something else entirely"))
	assert.Nil(t, MatchPlan(opts, ""))
}

func TestMatchUnitByIndexOnly(t *testing.T) {
	opts := DeriveUnitOptions(multiPlanListing(), "B2")
	require.Len(t, opts, 2)

	require.NotNil(t, MatchUnit(opts, "unit 1"))
	assert.Equal(t, "101", MatchUnit(opts, "unit 1").Number)
	assert.Nil(t, MatchUnit(opts, "the one on the fourth floor"))
	// labels are not matched, and out-of-range numbers miss
	assert.Nil(t, MatchUnit(opts, "9"))
}
