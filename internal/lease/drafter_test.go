package lease

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aptiva-ai/rental-platform/internal/model"
)

func sampleInputs() Inputs {
	in := NewInputs()
	in.LandlordName = "Riverbend Management"
	in.TenantName = "Dana Whitfield"
	in.PropertyAddress = "88 River Rd"
	in.City = "Austin"
	in.State = "TX"
	in.MonthlyRent = 1650
	in.LeaseStart = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	in.LeaseTermMonths = 12
	return in
}

func TestGenerateTextContainsAllMandatorySections(t *testing.T) {
	doc := GenerateText(sampleInputs())
	for _, section := range MandatorySections {
		assert.Contains(t, doc, section)
	}
	assert.Contains(t, doc, "Landlord / Property Owner: Riverbend Management")
	assert.Contains(t, doc, "Resident(s): Dana Whitfield")
	assert.Contains(t, doc, "Address: 88 River Rd, Austin, TX")
	assert.Contains(t, doc, "Monthly Rent: $1,650")
}

func TestGenerateTextDeterministic(t *testing.T) {
	in := sampleInputs()
	assert.Equal(t, GenerateText(in), GenerateText(in))
}

func TestGenerateTextSelectionBlock(t *testing.T) {
	in := sampleInputs()
	in.SelectedPlanName = "B2"
	in.SelectedPlanDetails = "2 beds, 2 baths"
	in.SelectedPlanAvailability = "Available Sep 1"
	in.SelectedPlanDeposit = "$300"
	in.SelectedUnitLabel = "408"
	in.SelectedUnitSqft = "960"
	in.SelectedUnitPrice = 1650

	doc := GenerateText(in)
	assert.Contains(t, doc, "Selected floor plan: B2.")
	assert.Contains(t, doc, "Plan details: 2 beds, 2 baths.")
	assert.Contains(t, doc, "Availability reported by community: Available Sep 1.")
	assert.Contains(t, doc, "Plan-specific deposit: $300.")
	assert.Contains(t, doc, "Selected unit: 408 (960 sq ft) at $1,650/month.")
}

func TestGenerateTextRentTBD(t *testing.T) {
	in := sampleInputs()
	in.MonthlyRent = 0
	assert.Contains(t, GenerateText(in), "Monthly Rent: TBD")
}

func TestDepositDefaultsToOneMonth(t *testing.T) {
	in := sampleInputs()
	assert.Equal(t, 1650, in.Deposit())

	explicit := 2000
	in.SecurityDeposit = &explicit
	assert.Equal(t, 2000, in.Deposit())
}

func TestLeaseEnd(t *testing.T) {
	in := sampleInputs()
	want := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 360)
	assert.Equal(t, want, in.LeaseEnd())
}

func TestInferInputsPrecedence(t *testing.T) {
	prefs := model.Preferences{
		City:       model.StringPtr("Austin"),
		State:      model.StringPtr("TX"),
		MaxRent:    model.IntPtr(1500),
		TenantName: model.StringPtr("dana whitfield"),
	}
	listing := &model.Listing{
		Title:    "Riverbend Commons",
		Location: "88 River Rd, Austin, TX",
		FloorPlans: []model.FloorPlan{
			{Name: "S1", Rent: "$1,100"},
			{Name: "B2", Rent: "$1,600"},
		},
	}
	overrides := model.Preferences{
		LeaseStartDate:      model.StringPtr("2026-09-01"),
		LeaseDurationMonths: model.IntPtr(6),
	}

	in := InferInputs(prefs, listing, overrides)

	// listing data beats the budget preference for rent
	assert.Equal(t, 1100, in.MonthlyRent)
	require.NotNil(t, in.RentCap)
	assert.Equal(t, 1500, *in.RentCap)
	assert.Equal(t, "Dana Whitfield", in.TenantName)
	assert.Equal(t, "88 River Rd, Austin, TX", in.PropertyAddress)
	assert.Equal(t, "Austin TX rent cap", in.LocalRentCapLabel)
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), in.LeaseStart)
	assert.Equal(t, 6, in.LeaseTermMonths)
}

func TestInferInputsSplitTenantNameWins(t *testing.T) {
	prefs := model.Preferences{
		TenantName:      model.StringPtr("ignored"),
		TenantFirstName: model.StringPtr("sam"),
		TenantLastName:  model.StringPtr("ortiz"),
	}
	in := InferInputs(prefs, nil, model.Preferences{})
	assert.Equal(t, "Sam Ortiz", in.TenantName)
}

func TestInferInputsDefaults(t *testing.T) {
	in := InferInputs(model.Preferences{}, nil, model.Preferences{})
	assert.Equal(t, "ABC Properties", in.LandlordName)
	assert.Equal(t, "Prospective Tenant", in.TenantName)
	assert.Equal(t, 12, in.LeaseTermMonths)
	assert.Equal(t, 0, in.MonthlyRent)
}

func TestNormalizeResidentName(t *testing.T) {
	assert.Equal(t, "Dana Whitfield", NormalizeResidentName("  dana   WHITFIELD "))
	assert.Equal(t, "", NormalizeResidentName("   "))
}

func TestFormatDollars(t *testing.T) {
	cases := map[int]string{
		5:       "$5",
		950:     "$950",
		1650:    "$1,650",
		12500:   "$12,500",
		1250000: "$1,250,000",
	}
	for v, want := range cases {
		assert.Equal(t, want, formatDollars(v))
	}
}

func TestParseRentNumbers(t *testing.T) {
	assert.Equal(t, []int{1100, 1400}, parseRentNumbers("$1,100 - $1,400"))
	assert.Empty(t, parseRentNumbers("Call for pricing"))
}

func TestListingRent(t *testing.T) {
	listing := &model.Listing{
		Rent: "$1,300 - $2,100",
		FloorPlans: []model.FloorPlan{
			{Rent: "$1,250", Units: []model.Unit{{Rent: "$1,225"}}},
		},
	}
	assert.Equal(t, 1225, ListingRent(listing))
	assert.Equal(t, 0, ListingRent(nil))
	assert.Equal(t, 0, ListingRent(&model.Listing{Rent: "Call for pricing"}))
}
