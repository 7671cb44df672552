// Package lease assembles residential lease drafts from conversation
// state and checks them against simplified state compliance rules. The
// output is a structured draft for review, not an attorney-reviewed
// lease.
package lease

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/aptiva-ai/rental-platform/internal/model"
)

// MandatorySections are the clauses every draft must contain, in order.
var MandatorySections = []string{
	"1. PARTIES",
	"2. PREMISES",
	"3. TERM AND RENEWAL",
	"4. RENT, ADDITIONAL FEES, AND PAYMENT",
	"5. LATE PAYMENTS AND RETURNED FUNDS",
	"6. SECURITY DEPOSIT",
	"7. CONDITION OF PREMISES",
	"8. USE AND OCCUPANCY",
	"9. VEHICLES AND PARKING",
	"10. UTILITIES AND SERVICES",
	"11. MAINTENANCE, REPAIRS, AND ACCESS",
	"12. INSURANCE AND LIABILITY",
	"13. PETS",
	"14. DEFAULT AND REMEDIES",
	"15. ADDENDA AND RULES",
	"16. COMPLIANCE CONTEXT",
}

// Inputs are the resolved fields a draft is generated from. Construct with
// NewInputs to get defaults, then override as needed.
type Inputs struct {
	LandlordName    string
	TenantName      string
	PropertyAddress string
	City            string
	State           string
	ZipCode         string

	LeaseStart      time.Time
	LeaseTermMonths int

	MonthlyRent     int
	GracePeriodDays int
	LateFeeInitial  int
	LateFeeDaily    int
	PaymentAddress  string
	SecurityDeposit *int
	CleaningFee     int
	VehicleLimit    int
	PetRent         int
	PetsAllowed     bool

	UtilitiesLandlord []string
	UtilitiesTenant   []string

	RentCap           *int
	LocalRentCapLabel string
	AdditionalClauses string

	SelectedPlanName         string
	SelectedPlanDetails      string
	SelectedPlanAvailability string
	SelectedPlanDeposit      string
	SelectedUnitLabel        string
	SelectedUnitSqft         string
	SelectedUnitPrice        int
	SelectedUnitAvailability string
}

// NewInputs returns draft inputs populated with template defaults.
func NewInputs() Inputs {
	return Inputs{
		LandlordName:    "ABC Properties",
		TenantName:      "Prospective Tenant",
		PropertyAddress: "TBD",
		LeaseStart:      time.Now().UTC(),
		LeaseTermMonths: 12,
		GracePeriodDays: 3,
		LateFeeInitial:  25,
		LateFeeDaily:    5,
		PaymentAddress:  "426 Main Street, Anycity, USA",
		CleaningFee:     200,
		VehicleLimit:    1,
		PetRent:         25,
		PetsAllowed:     true,
		UtilitiesLandlord: []string{
			"Water and sewer",
			"Garbage and trash disposal",
		},
		UtilitiesTenant: []string{
			"Electricity", "Gas", "Heating", "Telephone", "Internet", "All other services",
		},
	}
}

// Deposit returns the effective security deposit: the explicit value when
// set, otherwise one month of rent.
func (in *Inputs) Deposit() int {
	if in.SecurityDeposit != nil {
		return *in.SecurityDeposit
	}
	return in.MonthlyRent
}

// LeaseEnd is the end date: start plus thirty days per term month.
func (in *Inputs) LeaseEnd() time.Time {
	return in.LeaseStart.AddDate(0, 0, 30*in.LeaseTermMonths)
}

// LocationLine joins address, city/state, and zip into one line.
func (in *Inputs) LocationLine() string {
	parts := []string{in.PropertyAddress}
	locality := joinNonEmpty([]string{in.City, in.State}, ", ")
	if locality != "" {
		parts = append(parts, locality)
	}
	if in.ZipCode != "" {
		parts = append(parts, in.ZipCode)
	}
	return joinNonEmpty(parts, ", ")
}

func joinNonEmpty(parts []string, sep string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

// NormalizeResidentName collapses whitespace and capitalizes each word.
func NormalizeResidentName(value string) string {
	fields := strings.Fields(value)
	for i, f := range fields {
		fields[i] = capitalizeWord(f)
	}
	return strings.Join(fields, " ")
}

func capitalizeWord(w string) string {
	if w == "" {
		return w
	}
	return strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
}

func formatDollars(v int) string {
	s := strconv.Itoa(v)
	n := len(s)
	if n <= 3 {
		return "$" + s
	}
	var b strings.Builder
	b.WriteByte('$')
	rem := n % 3
	if rem > 0 {
		b.WriteString(s[:rem])
	}
	for i := rem; i < n; i += 3 {
		if b.Len() > 1 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

func formatUtilities(label string, items []string) string {
	if len(items) == 0 {
		return label + ": None specified."
	}
	return label + ": " + strings.Join(items, ", ") + "."
}

// GenerateText assembles the lease draft text from the inputs. It is
// deterministic for a fixed clock: the same inputs always produce the
// same document.
func GenerateText(in Inputs) string {
	executionDate := time.Now().UTC().Format("January 2, 2006")
	leaseStart := in.LeaseStart.Format("January 2, 2006")
	leaseEnd := in.LeaseEnd().Format("January 2, 2006")

	rentLine := "TBD"
	if in.MonthlyRent > 0 {
		rentLine = formatDollars(in.MonthlyRent)
	}

	locationHeader := joinNonEmpty([]string{in.City, in.State}, ", ")
	if locationHeader == "" {
		locationHeader = "City, State"
	}

	capLabel := in.LocalRentCapLabel
	if capLabel == "" {
		capLabel = "local rent guidance"
	}

	address := in.LocationLine()
	if address == "" {
		address = "To be determined"
	}

	var planLines []string
	if in.SelectedPlanName != "" {
		planLines = append(planLines, "   Selected floor plan: "+in.SelectedPlanName+".")
	}
	if in.SelectedPlanDetails != "" {
		planLines = append(planLines, "   Plan details: "+in.SelectedPlanDetails+".")
	}
	if in.SelectedPlanAvailability != "" {
		planLines = append(planLines, "   Availability reported by community: "+in.SelectedPlanAvailability+".")
	}
	if in.SelectedPlanDeposit != "" {
		planLines = append(planLines, "   Plan-specific deposit: "+in.SelectedPlanDeposit+".")
	}
	if in.SelectedUnitLabel != "" {
		unitLine := "   Selected unit: " + in.SelectedUnitLabel
		if in.SelectedUnitSqft != "" {
			unitLine += " (" + in.SelectedUnitSqft + " sq ft)"
		}
		if in.SelectedUnitPrice > 0 {
			unitLine += " at " + formatDollars(in.SelectedUnitPrice) + "/month"
		}
		planLines = append(planLines, unitLine+".")
		if in.SelectedUnitAvailability != "" {
			planLines = append(planLines, "   Unit availability: "+in.SelectedUnitAvailability+".")
		}
	}

	petsSection := "   Pets require prior written approval and a completed pet addendum. When approved, monthly pet rent may apply." +
		" Service and support animals will be reasonably accommodated."
	if !in.PetsAllowed {
		petsSection = "   Pets are not permitted on the Premises without an approved accommodation request."
	}

	lines := []string{
		"RESIDENTIAL LEASE AGREEMENT",
		locationHeader,
		"Effective Date: " + executionDate,
		"",
		`THIS RESIDENTIAL LEASE AGREEMENT ("Lease") is entered into between Landlord and Resident(s).`,
		"Landlord leases the Premises to Resident(s) for the term and consideration described below.",
		"",
		"1. PARTIES",
		"   Landlord / Property Owner: " + in.LandlordName,
		"   Resident(s): " + in.TenantName,
		"   Additional Occupants: None reported (update if minors or roommates will live in the Premises).",
		"",
		"2. PREMISES",
		"   Address: " + address,
		"   Premises are leased as a private residence; storage or business use is not permitted without written consent.",
		"",
		"3. TERM AND RENEWAL",
		fmt.Sprintf("   Initial Term: %d month(s), commencing on %s and ending on %s."+
			" Upon expiration, the Lease converts to a month-to-month tenancy unless either party provides at least"+
			" thirty (30) days' written notice.", in.LeaseTermMonths, leaseStart, leaseEnd),
		"   Any renewal for a specific term must be in writing and signed by both parties.",
		"",
		"4. RENT, ADDITIONAL FEES, AND PAYMENT",
		fmt.Sprintf("   Monthly Rent: %s, due on or before the first day of each month with a %d-day grace period.",
			rentLine, in.GracePeriodDays),
		"   Acceptable payment methods include online payments via Apartments.com, personal check, cashier's check, or money order.",
		"   Prorated rent for partial months will be calculated on a daily basis (monthly rent divided by days in the month).",
	}

	if len(planLines) > 0 {
		lines = append(lines, "", "   Floor plan selection:")
		lines = append(lines, planLines...)
	}

	lines = append(lines,
		"   Utilities & Essentials: Additional fees (utilities packages, parking, pet fees, etc.) may apply per community policies.",
		"",
		"5. LATE PAYMENTS AND RETURNED FUNDS",
		"   Rent received after the grace period may incur late charges under Landlord's policy. Payments returned for insufficient funds"+
			" may require certified funds for future payments.",
		"",
		"6. SECURITY DEPOSIT",
		"   Resident shall pay a refundable security deposit prior to move-in."+
			" The deposit cannot be applied to rent without Landlord's consent and may be used to cover unpaid rent,"+
			" damages beyond normal wear, unpaid utilities, cleaning, and other charges permitted by law."+
			" An itemized disposition will be provided within the statutory time frame after move-out.",
		"",
		"7. CONDITION OF PREMISES",
		"   Resident acknowledges the right to inspect the Premises prior to possession and agrees the Premises"+
			" (including appliances and fixtures) are in clean, safe condition unless otherwise noted in writing within 48 hours of move-in.",
		"   Resident must maintain the Premises in a sanitary condition, refrain from unapproved alterations, and promptly report defects.",
		"",
		"8. USE AND OCCUPANCY",
		"   The Premises shall be occupied solely by the Resident(s) and approved Occupants listed above."+
			" Commercial activity, subletting, or short-term rentals (e.g., STR platforms) are prohibited without written consent.",
		"   Conduct that disturbs neighbors or violates laws/ordinances constitutes a default.",
		"",
		"9. VEHICLES AND PARKING",
		fmt.Sprintf("   Resident may keep up to %d operable, properly registered vehicle(s) in designated spaces.", in.VehicleLimit),
		"   Boats, trailers, or recreational vehicles require prior written permission.",
		"",
		"10. UTILITIES AND SERVICES",
		formatUtilities("   Landlord-provided utilities", in.UtilitiesLandlord),
		formatUtilities("   Resident-responsible utilities", in.UtilitiesTenant),
		"   Resident must keep all utility accounts current throughout the Lease term.",
		"",
		"11. MAINTENANCE, REPAIRS, AND ACCESS",
		"   Resident shall promptly notify Landlord of leaks, pest activity, electrical issues, or other conditions that could damage the property."+
			" Landlord may access the Premises with reasonable notice for inspections, repairs, or as permitted by law.",
		"",
		"12. INSURANCE AND LIABILITY",
		"   Resident is encouraged to maintain renter's insurance to cover personal property and liability losses.",
		"   Landlord is not responsible for Resident's personal belongings, vehicles, or guests, except as required by law.",
		"",
		"13. PETS",
		petsSection,
		"",
		"14. DEFAULT AND REMEDIES",
		"   Failure to pay rent, maintain insurance when required, or comply with Lease obligations constitutes a default."+
			" Landlord may pursue all remedies available under state law, including termination, eviction, and recovery of damages.",
		"",
		"15. ADDENDA AND RULES",
		"   Community policies, HOA rules, or addenda (parking, pet, mold, lead-based paint, etc.) are incorporated by reference."+
			" Resident agrees to follow all published rules and acknowledges receipt of required disclosures.",
		"",
		"16. COMPLIANCE CONTEXT",
		"   This draft references "+capLabel+"."+
			" Verify city- and state-specific statutes (rent caps, notice requirements, deposit limits) prior to execution.",
	)

	if in.AdditionalClauses != "" {
		lines = append(lines, "", "17. ADDITIONAL CLAUSES", in.AdditionalClauses)
	}

	lines = append(lines,
		"",
		"Accepted on ______________________",
		"Resident: ________________________   Date: ____________",
		"Landlord/Manager: ________________   Date: ____________",
		"",
		"This draft was generated with AI assistance and should be reviewed by all parties before signing.",
	)

	return strings.Join(lines, "\n")
}

var rentNumberRE = regexp.MustCompile(`\$?(\d[\d,]*)`)

// parseRentNumbers extracts all dollar amounts from a pricing label.
func parseRentNumbers(label string) []int {
	matches := rentNumberRE.FindAllStringSubmatch(label, -1)
	out := make([]int, 0, len(matches))
	for _, m := range matches {
		v, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
		if err == nil {
			out = append(out, v)
		}
	}
	return out
}

// ListingRent returns the lowest advertised rent across a listing's floor
// plans and units, or zero when none can be parsed.
func ListingRent(l *model.Listing) int {
	if l == nil {
		return 0
	}
	min := 0
	consider := func(vals []int) {
		for _, v := range vals {
			if v > 0 && (min == 0 || v < min) {
				min = v
			}
		}
	}
	consider(parseRentNumbers(l.Rent))
	for _, plan := range l.FloorPlans {
		consider(parseRentNumbers(plan.Rent))
		for _, unit := range plan.Units {
			consider(parseRentNumbers(unit.Rent))
		}
	}
	return min
}

// InferInputs builds draft inputs from accumulated preferences, the
// selected listing, and explicit overrides, in increasing precedence.
func InferInputs(prefs model.Preferences, listing *model.Listing, overrides model.Preferences) Inputs {
	in := NewInputs()

	merged := prefs.Merge(overrides)

	if merged.City != nil {
		in.City = *merged.City
	}
	if merged.State != nil {
		in.State = *merged.State
	}

	if merged.MaxRent != nil {
		in.MonthlyRent = *merged.MaxRent
		in.RentCap = merged.MaxRent
	} else if merged.MinRent != nil {
		in.MonthlyRent = *merged.MinRent
	}

	labelParts := joinNonEmpty([]string{in.City, in.State, "rent cap"}, " ")
	if labelParts != "" {
		in.LocalRentCapLabel = labelParts
	}

	name := ""
	if merged.TenantFirstName != nil || merged.TenantLastName != nil {
		first, last := "", ""
		if merged.TenantFirstName != nil {
			first = *merged.TenantFirstName
		}
		if merged.TenantLastName != nil {
			last = *merged.TenantLastName
		}
		name = joinNonEmpty([]string{first, last}, " ")
	} else if merged.TenantName != nil {
		name = *merged.TenantName
	}
	if name != "" {
		in.TenantName = NormalizeResidentName(name)
	}

	if listing != nil {
		in.LandlordName = InferLandlordName(listing, prefs)
		if listing.Location != "" {
			in.PropertyAddress = listing.Location
		}
		if rent := ListingRent(listing); rent > 0 {
			in.MonthlyRent = rent
		}
	}

	if merged.LeaseStartDate != nil {
		if t, err := time.Parse("2006-01-02", *merged.LeaseStartDate); err == nil {
			in.LeaseStart = t
		}
	}
	if merged.LeaseDurationMonths != nil && *merged.LeaseDurationMonths > 0 {
		in.LeaseTermMonths = *merged.LeaseDurationMonths
	}

	return in
}
