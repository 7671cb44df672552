package lease

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compliantInputs(state string) Inputs {
	in := sampleInputs()
	in.State = state
	return in
}

func TestCheckComplianceCleanDraft(t *testing.T) {
	in := compliantInputs("TX")
	report := CheckCompliance(in, GenerateText(in))
	assert.True(t, report.Clean())
	assert.Empty(t, report.Issues)
}

func TestCheckComplianceDepositCapCA(t *testing.T) {
	in := compliantInputs("CA")
	deposit := in.MonthlyRent*2 + 1
	in.SecurityDeposit = &deposit

	report := CheckCompliance(in, GenerateText(in))
	require.Len(t, report.Issues, 1)
	assert.Equal(t, "deposit_cap", report.Issues[0].Code)
	assert.False(t, report.Clean())

	// exactly two months is allowed in CA
	deposit = in.MonthlyRent * 2
	report = CheckCompliance(in, GenerateText(in))
	assert.True(t, report.Clean())
}

func TestCheckComplianceLateFeeWarning(t *testing.T) {
	in := compliantInputs("NY")
	in.MonthlyRent = 400
	in.LateFeeInitial = 25
	in.LateFeeDaily = 5

	// $30 combined exceeds 5% of $400
	report := CheckCompliance(in, GenerateText(in))
	found := false
	for _, w := range report.Warnings {
		if w.Code == "late_fee" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestCheckCompliancePetRentWarning(t *testing.T) {
	in := compliantInputs("NY")
	in.PetRent = 60

	report := CheckCompliance(in, GenerateText(in))
	found := false
	for _, w := range report.Warnings {
		if w.Code == "pet_rent" {
			found = true
			assert.Contains(t, w.Message, "$60")
		}
	}
	assert.True(t, found)

	// MA has no pet rent cap
	in = compliantInputs("MA")
	in.PetRent = 200
	report = CheckCompliance(in, GenerateText(in))
	for _, w := range report.Warnings {
		assert.NotEqual(t, "pet_rent", w.Code)
	}
}

func TestCheckComplianceRentCap(t *testing.T) {
	in := compliantInputs("TX")
	cap := in.MonthlyRent - 100
	in.RentCap = &cap

	report := CheckCompliance(in, GenerateText(in))
	require.Len(t, report.Issues, 1)
	assert.Equal(t, "rent_cap", report.Issues[0].Code)
}

func TestCheckComplianceMissingSection(t *testing.T) {
	in := compliantInputs("TX")
	report := CheckCompliance(in, "RESIDENTIAL LEASE AGREEMENT\n1. PARTIES")

	codes := map[string]int{}
	for _, issue := range report.Issues {
		codes[issue.Code]++
	}
	assert.Equal(t, len(MandatorySections)-1, codes["missing_section"])
}

func TestCheckComplianceRentTBDWarning(t *testing.T) {
	in := compliantInputs("TX")
	in.MonthlyRent = 0

	report := CheckCompliance(in, GenerateText(in))
	found := false
	for _, w := range report.Warnings {
		if w.Code == "rent_tbd" {
			found = true
		}
	}
	assert.True(t, found)
	assert.True(t, report.Clean())
}

func TestCheckComplianceAddressIncomplete(t *testing.T) {
	in := compliantInputs("TX")
	in.PropertyAddress = "TBD"

	report := CheckCompliance(in, GenerateText(in))
	found := false
	for _, w := range report.Warnings {
		if w.Code == "address_incomplete" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestCheckComplianceUnknownStateSkipsStateRules(t *testing.T) {
	in := compliantInputs("zz")
	deposit := in.MonthlyRent * 10
	in.SecurityDeposit = &deposit

	report := CheckCompliance(in, GenerateText(in))
	assert.Equal(t, "ZZ", report.State)
	assert.True(t, report.Clean())
}
