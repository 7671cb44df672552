package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScrubText(t *testing.T) {
	scrubbed := ScrubText("reach me at dana@example.com or 512-555-0142")
	assert.NotContains(t, scrubbed, "dana@example.com")
	assert.NotContains(t, scrubbed, "512-555-0142")
	assert.Contains(t, scrubbed, "[EMAIL_[HASH:")
	assert.Contains(t, scrubbed, "[PHONE_[HASH:")

	assert.Contains(t, ScrubText("ssn 123-45-6789"), "[ID_[HASH:")
	assert.Equal(t, "", ScrubText(""))
	assert.Equal(t, "no pii here", ScrubText("no pii here"))
}

func TestScrubTextStableHashes(t *testing.T) {
	a := ScrubText("dana@example.com")
	b := ScrubText("dana@example.com")
	assert.Equal(t, a, b)
}

func TestScrubFields(t *testing.T) {
	payload := map[string]any{
		"transcript": "full conversation",
		"city":       "Austin",
		"contact":    "dana@example.com",
		"count":      3,
	}
	out := ScrubFields(payload)
	assert.NotContains(t, out, "transcript")
	assert.Equal(t, "Austin", out["city"])
	assert.NotContains(t, out["contact"], "example.com")
	assert.Equal(t, 3, out["count"])

	assert.Nil(t, ScrubFields(nil))
}
