package tenants

import (
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"
)

var (
	nonSlug   = regexp.MustCompile(`[^a-z0-9\-]+`)
	multiDash = regexp.MustCompile(`-+`)
)

// Subdomains reserved for the platform itself.
var reservedSubdomains = map[string]bool{
	"www":   true,
	"app":   true,
	"api":   true,
	"admin": true,
	"mail":  true,
}

// MakeSlug generates a URL-safe subdomain base from a business name.
// Example: "Mama Njeri's Shop" -> "mama-njeris-shop"
func MakeSlug(name string) string {
	base := strings.ToLower(strings.TrimSpace(name))
	base = strings.ReplaceAll(base, " ", "-")
	base = nonSlug.ReplaceAllString(base, "")
	base = multiDash.ReplaceAllString(base, "-")
	base = strings.Trim(base, "-")

	if base == "" || reservedSubdomains[base] {
		base = "shop"
	}
	return base
}

// UniqueSubdomain returns a subdomain derived from name that is not yet
// taken by any tenant. It appends a numeric suffix on collision.
func UniqueSubdomain(db *gorm.DB, name string) (string, error) {
	base := MakeSlug(name)

	candidate := base
	for i := 0; i < 50; i++ {
		if i > 0 {
			candidate = fmt.Sprintf("%s-%d", base, i+1)
		}
		var count int64
		if err := db.Model(&Tenant{}).Where("subdomain = ?", candidate).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("could not find a free subdomain for %q", base)
}

// BuildStoreURL builds the public storefront URL for a subdomain.
// Example: "mama-njeris-shop" -> "https://mama-njeris-shop.vibepos.app"
func BuildStoreURL(subdomain, baseDomain string) string {
	return "https://" + subdomain + "." + baseDomain
}
