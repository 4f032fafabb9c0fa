package stripe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStripeStatus(t *testing.T) {
	p := func(s string) *string { return &s }

	assert.Equal(t, "none", NormalizeStripeStatus(nil))
	assert.Equal(t, "none", NormalizeStripeStatus(p("  ")))
	assert.Equal(t, "active", NormalizeStripeStatus(p("active")))
	assert.Equal(t, "trialing", NormalizeStripeStatus(p("trialing")))
	assert.Equal(t, "past_due", NormalizeStripeStatus(p("past_due")))
	assert.Equal(t, "past_due", NormalizeStripeStatus(p("unpaid")))
	assert.Equal(t, "past_due", NormalizeStripeStatus(p("incomplete")))
	assert.Equal(t, "canceled", NormalizeStripeStatus(p("canceled")))
	assert.Equal(t, "canceled", NormalizeStripeStatus(p("incomplete_expired")))
	assert.Equal(t, "paused", NormalizeStripeStatus(p(" paused ")))
}
