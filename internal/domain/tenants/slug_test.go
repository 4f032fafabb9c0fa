package tenants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeSlug(t *testing.T) {
	cases := map[string]string{
		"Mama Njeri's Shop":  "mama-njeris-shop",
		"  Duka   Kubwa  ":   "duka-kubwa",
		"Café — Nairobi!":    "caf-nairobi",
		"---":                "shop",
		"":                   "shop",
		"www":                "shop", // reserved
		"ALL CAPS TRADERS":   "all-caps-traders",
		"already-slugged-12": "already-slugged-12",
	}
	for in, want := range cases {
		assert.Equal(t, want, MakeSlug(in), "input %q", in)
	}
}

func TestBuildStoreURL(t *testing.T) {
	assert.Equal(t, "https://duka.vibepos.app", BuildStoreURL("duka", "vibepos.app"))
}
