// Package agent implements the conversational rental assistant: topic
// gating, preference extraction, persona selection, listing ranking, and
// the per-turn orchestrator.
package agent

import (
	"regexp"
	"strings"
)

// OffTopicRefusal is the fixed reply for messages outside the rental
// domain.
const OffTopicRefusal = "I am designed only to help with US residential rentals and related topics like property matching, viewings, and leases. " +
	"Please ask me something about finding or evaluating a place to live in the United States."

// DomainGuardMessage is prepended to every LLM call to keep replies
// inside the rental domain.
const DomainGuardMessage = "You are a specialized US residential real estate rental agent. " +
	"You only discuss topics directly related to finding and comparing rental properties in the United States; " +
	"property details, neighborhoods, and local amenities; scheduling viewings and tours; " +
	"lease terms, applications, approvals, move-in logistics, and follow-up questions about scraped listings. " +
	"Politely refuse anything else."

// TopicLists holds the keyword lists used for topic classification. The
// lists are handed to the orchestrator through Config; DefaultTopics
// returns the stock lists.
type TopicLists struct {
	Allow []string
	Deny  []string
}

// DefaultTopics returns the stock topic lists.
func DefaultTopics() TopicLists {
	return TopicLists{Allow: realEstateKeywords, Deny: offTopicPhrases}
}

// realEstateKeywords is the stock allow list for topic classification.
var realEstateKeywords = []string{
	// Core rental vocabulary
	"rent", "rental", "renting", "for rent", "rented",
	"apartment", "apartments", "apt",
	"condo", "condominium",
	"house", "single family home", "single-family",
	"townhouse", "townhome", "rowhouse",
	"loft", "duplex", "triplex", "quadplex", "multi family",
	"multifamily", "property", "unit", "listing", "complex",
	"building", "community", "residence", "residential",

	// Listing attributes
	"bedroom", "bedrooms", "bathroom", "bathrooms",
	"bed", "bath", "beds", "baths", "1br", "2br", "3br", "4br",
	"bd", "ba", "studio", "efficiency unit",
	"floor plan", "layout", "sqft", "square feet", "square ft",
	"flooring", "hardwood floors", "laminate", "vinyl floors",
	"tile floors", "walk in closet", "walk-in closet",
	"open concept", "open layout", "kitchen island",
	"granite countertops", "stainless steel appliances",
	"updated kitchen", "renovated", "newly renovated",

	// Amenities
	"amenities", "pool", "heated pool", "gym", "fitness center",
	"sauna", "steam room", "hot tub", "spa",
	"laundry", "in unit laundry", "in-unit laundry",
	"washer", "dryer", "washer dryer", "laundry room",
	"parking", "garage", "assigned parking", "covered parking",
	"carport", "street parking", "off street parking",
	"elevator", "doorman", "24 hour concierge",
	"door staff", "concierge",
	"balcony", "patio", "yard", "terrace", "porch",
	"rooftop", "rooftop deck", "roof deck",
	"storage", "bike storage", "secure package room",
	"package locker", "mail room", "clubhouse",
	"business center", "coworking space", "coworking",
	"high speed internet", "fiber internet", "wifi included",
	"hvac", "central air", "air conditioning", "heating",
	"fireplace", "ceiling fan", "soundproofing",

	// Pet terminology
	"pet friendly", "pet-friendly", "dog friendly", "cat friendly",
	"pet policy", "dog", "cat", "pets allowed", "pet deposit",
	"breed restrictions", "weight limit",

	// Location / walkability / neighborhood context
	"neighborhood", "walkability", "walk score",
	"bike score", "transit score",
	"commute", "transit", "subway", "metro", "train", "bus",
	"transportation", "bike lane", "bikeable",
	"downtown", "uptown", "midtown",
	"school district", "zoning",
	"safe neighborhood", "quiet neighborhood",
	"crime rate", "low crime", "low noise", "noise level",

	// Viewing / touring
	"viewing", "tour", "schedule a tour", "book a tour",
	"open house", "openhouse", "virtual tour",
	"in person tour", "self guided tour", "self-guided",

	// Leasing / applications
	"application", "apply", "apply now",
	"rental application", "tenant application",
	"credit check", "background check", "criminal check",
	"guarantor", "guardian", "cosigner",
	"pre approval", "pre-approval", "approval process",
	"application fee", "processing fee",
	"income requirement", "income verification",
	"employment verification", "proof of income",
	"pay stubs", "w2", "tax return", "bank statements",

	// Fees & financial terms
	"deposit", "security deposit", "holding deposit",
	"first month rent", "last month rent",
	"move in", "move-in", "move out", "move-out",
	"renters insurance", "utilities included",
	"furnished", "unfurnished",
	"broker fee", "no fee", "one month free",
	"concession", "special offer", "promo",
	"late fee", "rent increase", "rent control",
	"stabilized", "market rent",

	// Rental contract / agreement terminology
	"lease agreement", "lease contract", "rental agreement",
	"lease terms", "sublease", "sublet",
	"lease takeover", "lease break",
	"early termination", "termination fee",
	"month to month", "month-to-month",
	"short term lease", "long term lease",
	"renewal", "lease renewal",

	// Maintenance & building operations
	"maintenance", "maintenance request", "work order",
	"onsite manager", "property manager",
	"property management", "landlord", "tenant", "tenancy",
	"24 hour maintenance", "emergency maintenance",
	"pest control", "trash pickup", "recycling",

	// Special housing categories
	"rooms for rent", "roommate", "shared housing",
	"student housing", "off campus housing",
	"corporate housing", "section 8", "voucher",
	"affordable housing", "low income", "income restricted",
	"senior housing", "55+", "age restricted",

	// Searching / filtering on listing sites
	"apartments.com", "zillow", "trulia", "hotpads",
	"search url", "listing url", "availability",
	"units available", "vacancy", "vacant",
	"move in date", "available now", "available soon",

	// Surrounding points of interest
	"near", "close to", "walking distance", "minutes away",
	"grocery store", "supermarket", "trader joes",
	"whole foods", "schools", "parks", "playground",
	"coffee shop", "cafe", "mall", "shopping center",
	"restaurants", "hospital", "clinic",
	"university", "campus",

	// Maps + geolocation
	"google maps", "distance", "miles", "mile", "minutes",
	"commute time", "directions", "route",
	"geocode", "address lookup", "zip code", "zipcode",

	// Relocation & moving logistics
	"relocate", "relocating", "moving", "moving truck",
	"moving service", "move assistance", "storage unit",
	"pods", "uhaul", "u-haul",

	// Rental market / pricing context
	"market trend", "market rate", "comps", "comparable",
	"price per sqft", "median rent", "average rent",
	"absorption rate", "inventory", "vacancy rate",
	"supply", "demand",

	// Legal terms
	"eviction", "eviction record",
	"fair housing", "fair housing act",
	"tenant rights", "landlord responsibilities",
	"habitability", "rental license", "inspection",

	// General signals of rental intent
	"find a place", "find housing", "looking to rent",
	"searching for an apartment", "new place",
	"place to live", "need housing", "move to",
	"moving to", "housing options",
}

// offTopicPhrases is the stock deny list: non-housing uses of rental
// vocabulary. Checked before the allow list and wins on conflict.
var offTopicPhrases = []string{
	// Vehicle rentals / leasing
	"car rental", "rent a car", "rental car", "car hire",
	"truck rental", "rent a truck", "moving truck rental",
	"box truck rental", "pickup rental", "pickup truck rental",
	"van rental", "cargo van rental", "passenger van rental",
	"sprinter van rental", "minivan rental",
	"motorcycle rental", "scooter rental", "moped rental",
	"bike rental", "bicycle rental", "e bike rental", "e-bike rental",
	"ebike rental", "electric bike rental",
	"boat rental", "kayak rental", "canoe rental",
	"paddleboard rental", "paddle board rental",
	"jet ski rental", "jetski rental",
	"yacht rental", "sailboat rental",
	"rv rental", "camper rental", "camper van rental",
	"motorhome rental", "caravan rental",
	"atv rental", "utv rental", "side by side rental",
	"snowmobile rental", "golf cart rental",
	"limousine rental", "limo rental",

	// Transportation services
	"ride share", "rideshare", "uber", "lyft",
	"taxi rental", "taxi hire", "chauffeur service",
	"airport shuttle", "airport transfer", "car service",
	"black car service", "driver for hire",

	// Entertainment & media rentals
	"dvd rental", "movie rental", "rent a movie",
	"film rental", "video rental", "video store rental",
	"blockbuster rental", "redbox rental",
	"game rental", "video game rental",
	"console game rental", "blu ray rental", "bluray rental",

	// Party / event rentals
	"party rental", "event rental", "wedding rental",
	"wedding tent rental", "marquee rental",
	"tent rental", "canopy rental",
	"chair rental", "table rental",
	"linen rental", "tablecloth rental",
	"glassware rental", "china rental", "flatware rental",
	"decor rental", "wedding decor rental",
	"centerpiece rental",
	"bounce house rental", "bouncy castle rental",
	"inflatable rental", "inflatable slide rental",
	"photo booth rental", "photobooth rental",
	"stage rental", "platform rental", "runway rental",
	"lighting rental", "uplighting rental",
	"sound system rental", "pa system rental",
	"audiovisual rental", "av equipment rental",
	"pipe and drape rental",

	// Tool / equipment rentals
	"tool rental", "power tool rental",
	"generator rental", "portable generator rental",
	"pressure washer rental", "power washer rental",
	"ladder rental", "scaffold rental", "scaffolding rental",
	"chainsaw rental", "jackhammer rental",
	"demolition hammer rental",
	"excavator rental", "mini excavator rental",
	"bobcat rental", "skid steer rental",
	"forklift rental", "pallet jack rental",
	"tractor rental", "backhoe rental",
	"bulldozer rental", "crane rental", "boom lift rental",
	"scissor lift rental", "lift rental",
	"cement mixer rental", "concrete mixer rental",
	"dump trailer rental", "equipment trailer rental",
	"air compressor rental", "nailer rental",
	"tile saw rental", "floor sander rental",
	"carpet cleaner rental", "rug doctor rental",
	"heavy equipment rental", "construction rental",
	"industrial equipment rental",

	// Storage and non-residential spaces
	"storage unit rental", "rent storage unit",
	"self storage rental", "self storage",
	"mini storage rental", "storage locker rental",
	"storage container rental", "pod rental",
	"pods rental", "shipping container rental",
	"warehouse rental", "industrial storage rental",
	"locker rental", "gym locker rental",
	"boat slip rental", "dock rental", "marina slip rental",
	"hangar rental", "airplane hangar rental",

	// Hospitality / short stay travel
	"hotel room", "book a hotel", "hotel booking",
	"motel room", "hostel bed", "hostel booking",
	"resort stay", "all inclusive resort",
	"nightly rental", "weekend rental",
	"airbnb", "vrbo", "vacation rental", "holiday rental",
	"holiday let", "short stay rental",
	"vacation cabin rental", "cabin rental",
	"beach house rental", "lake house rental",
	"ski cabin rental", "ski chalet rental",
	"bnb rental", "bed and breakfast booking",

	// Commercial / non-residential leases
	"commercial lease", "office lease", "office rental",
	"coworking space rental", "coworking membership",
	"shared office rental",
	"warehouse lease", "industrial lease",
	"retail lease", "shopping mall lease",
	"mall kiosk lease", "storefront lease",
	"restaurant space lease", "bar lease",
	"land lease", "ground lease",
	"billboard rental", "ad space rental",
	"advertising space rental", "sign rental",

	// Intellectual property / programming uses of "property"
	"intellectual property", "ip rights",
	"copyright", "patent", "trademark",
	"software license", "license key rental",
	"code property", "class property",
	"javascript property", "css property",
	"object property", "property in python",
	"property decorator",

	// Computing / server / cloud rentals
	"server rental", "rent a server",
	"game server rental", "minecraft server rental",
	"ark server rental",
	"vps rental", "virtual server rental",
	"cloud server rental", "dedicated server rental",
	"gpu server rental", "compute instance rental",
	"web hosting rental",

	// Finance / economics uses of "rent" or "lease"
	"rent seeking", "economic rent",
	"financial lease", "capital lease",
	"operating lease", "sale leaseback",
	"lease financing", "lease accounting",
	"lease liability", "ifrs lease", "asc 842 lease",
	"equipment finance", "fleet lease",
	"business lease", "corporate lease",

	// Social / novelty rentals
	"rent a friend", "rent a girlfriend", "rent a boyfriend",
	"rent a partner", "rent a family",
	"rent a maid", "rent a butler",
	"rent a chef", "rent a clown",
	"rent a santa", "rent an elf",
	"rent a crowd", "rent a fanbase",

	// Fashion / clothing / accessories rentals
	"clothing rental", "clothes rental",
	"fashion rental", "designer dress rental",
	"dress rental", "gown rental", "tuxedo rental",
	"suit rental", "costume rental",
	"cosplay costume rental",
	"handbag rental", "purse rental",
	"jewelry rental", "watch rental",

	// Animal / pet boarding or stalls
	"dog kennel rental", "dog boarding",
	"cat boarding", "pet boarding",
	"horse stable rental", "horse boarding",
	"stall rental", "kennel rental",

	// Sports / recreation equipment and space
	"ski rental", "snowboard rental",
	"golf cart rental", "golf club rental",
	"surfboard rental", "windsurf rental", "kiteboard rental",
	"climbing gear rental", "hiking gear rental",
	"camping gear rental", "tent gear rental",
	"kayak gear rental",
	"tennis court rental", "tennis court booking",
	"basketball court rental", "volleyball court rental",
	"pickleball court rental", "soccer field rental",
	"sports equipment rental", "bowling lane rental",
	"ice rink rental", "skate rental",

	// Medical / health equipment
	"hospital bed rental", "medical bed rental",
	"medical equipment rental", "durable medical equipment rental",
	"wheelchair rental", "mobility scooter rental",
	"walker rental", "crutches rental",
	"oxygen tank rental", "oxygen concentrator rental",
	"cpap rental", "hospital equipment rental",

	// Music / audio / production gear
	"instrument rental", "band instrument rental",
	"guitar rental", "piano rental", "keyboard rental",
	"drum rental", "violin rental", "cello rental",
	"amp rental", "amplifier rental",
	"speaker rental",
	"dj equipment rental", "dj gear rental",
	"microphone rental", "mic rental",
	"recording equipment rental",

	// Film / photography production
	"camera rental", "lens rental", "dslr rental",
	"mirrorless camera rental", "cinema camera rental",
	"video camera rental", "gimbal rental",
	"tripod rental", "slider rental",
	"lighting kit rental", "light kit rental",
	"film equipment rental", "production gear rental",
	"boom mic rental", "lav mic rental",
	"steadicam rental", "drone rental",
	"studio rental", "photo studio rental",
	"soundstage rental",

	// Education / school related rentals
	"school locker rental",
	"lab equipment rental", "scientific equipment rental",

	// Business services / misc kiosks
	"vending machine rental", "atm rental",
	"arcade machine rental", "pinball rental",
	"claw machine rental", "photo kiosk rental",
	"3d printer rental", "laser cutter rental",

	// Agriculture / land equipment
	"farm equipment rental",
	"combine rental", "harvester rental",
	"plow rental", "baler rental",

	// Insurance for non-housing rentals
	"rental car insurance", "car rental insurance",
	"equipment rental insurance",
	"event rental insurance",

	// Metaphorical tenant/landlord uses
	"tenant of life", "landlord metaphor",
	"tenant metaphor", "intellectual tenant",

	// Misc strongly non-housing rentals
	"karaoke machine rental", "slot machine rental",
	"cot rental", "crib rental", "stroller rental",
	"snow cone machine rental", "cotton candy machine rental",
	"popcorn machine rental",
}

var (
	bedBathRE   = regexp.MustCompile(`\b\d+\s*(?:bed|bd|bath|ba|br|bdrm)s?\b`)
	zipRE       = regexp.MustCompile(`\b\d{5}\b`)
	cityStateRE = regexp.MustCompile(`\b[a-z][a-z\s]+,\s*[a-z]{2}\b`)
)

// OnTopic classifies a message as in-domain. The deny list is checked
// first and wins; unmatched messages default to on-topic so that
// conversational follow-ups are not refused.
func (l TopicLists) OnTopic(message string) bool {
	if message == "" {
		return false
	}
	text := strings.ToLower(message)

	for _, phrase := range l.Deny {
		if strings.Contains(text, phrase) {
			return false
		}
	}
	for _, keyword := range l.Allow {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	if bedBathRE.MatchString(text) {
		return true
	}
	if zipRE.MatchString(text) {
		return true
	}
	if cityStateRE.MatchString(text) {
		return true
	}
	if strings.Contains(text, "move") {
		for _, hint := range []string{"city", "state", "apartment", "house", "neighborhood"} {
			if strings.Contains(text, hint) {
				return true
			}
		}
	}
	return true
}

// IsRealEstateRelated classifies against the stock topic lists.
func IsRealEstateRelated(message string) bool {
	return DefaultTopics().OnTopic(message)
}
