package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsRealEstateRelated(t *testing.T) {
	onTopic := []string{
		"I'm looking for a 2 bedroom apartment in Austin, TX",
		"show me pet friendly rentals under $1500",
		"what's the neighborhood like around that listing?",
		"can we schedule a tour for Saturday?",
		"draft a lease for the second option",
		"anything near 78704?",
		"2br with in-unit laundry",
	}
	for _, msg := range onTopic {
		assert.True(t, IsRealEstateRelated(msg), "expected on-topic: %q", msg)
	}

	offTopic := []string{
		"I need a car rental for the weekend",
		"book a hotel room in Vegas",
		"find me an airbnb for next month",
		"what is a javascript property?",
		"looking for office lease downtown Seattle",
		"bounce house rental for a birthday party",
	}
	for _, msg := range offTopic {
		assert.False(t, IsRealEstateRelated(msg), "expected off-topic: %q", msg)
	}
}

func TestTopicListsCustomLists(t *testing.T) {
	lists := TopicLists{Allow: []string{"rental"}, Deny: []string{"houseboat"}}
	assert.False(t, lists.OnTopic("houseboat rental on the lake"))
	assert.True(t, lists.OnTopic("rental near downtown"))
}

func TestIsRealEstateRelatedDenyWinsOverAllow(t *testing.T) {
	// "apartment" is on the allow list but the vacation-rental phrase
	// disqualifies the message first.
	assert.False(t, IsRealEstateRelated("vacation rental apartment on the beach"))
}

func TestIsRealEstateRelatedEmpty(t *testing.T) {
	assert.False(t, IsRealEstateRelated(""))
}

func TestIsRealEstateRelatedHeuristics(t *testing.T) {
	// bed/bath shorthand
	assert.True(t, IsRealEstateRelated("need 3 bd 2 ba asap"))
	// city, state pattern
	assert.True(t, IsRealEstateRelated("thinking about portland, or"))
	// moving language plus a location hint
	assert.True(t, IsRealEstateRelated("we want to move to a smaller city"))
}
