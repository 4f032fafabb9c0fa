package tenants

import (
	"context"
	"errors"
	"log"
	"net"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"github.com/justmurenga/vibe-flow-point-of-sale/internal/infra/cache"
)

// ErrNoTenant is returned for hosts that do not map to any tenant record.
var ErrNoTenant = errors.New("tenants: no tenant for host")

// Store is the lookup backend for the resolver.
type Store interface {
	BySubdomain(ctx context.Context, subdomain string) (*Tenant, error)
	ByCustomDomain(ctx context.Context, domain string) (*Tenant, error)
}

// GormStore implements Store against the tenants table.
type GormStore struct {
	DB *gorm.DB
}

func (s *GormStore) BySubdomain(ctx context.Context, subdomain string) (*Tenant, error) {
	var t Tenant
	err := s.DB.WithContext(ctx).Where("subdomain = ?", subdomain).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoTenant
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *GormStore) ByCustomDomain(ctx context.Context, domain string) (*Tenant, error) {
	var t Tenant
	err := s.DB.WithContext(ctx).Where("custom_domain = ?", domain).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoTenant
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

type cacheEntry struct {
	tenant    *Tenant // nil for negative entries
	expiresAt time.Time
}

// Resolver maps a request hostname to a tenant record.
//
// Lookup order: in-process TTL cache, shared Redis cache (optional),
// database. Concurrent lookups for the same host are collapsed into a
// single backend call. Misses are cached too, with a shorter TTL, so an
// unknown host cannot hammer the database.
type Resolver struct {
	store      Store
	baseDomain string
	shared     *cache.Cache // may be nil

	ttl    time.Duration
	negTTL time.Duration

	group singleflight.Group

	mu      sync.RWMutex
	entries map[string]cacheEntry

	now func() time.Time
}

func NewResolver(store Store, baseDomain string, shared *cache.Cache) *Resolver {
	return &Resolver{
		store:      store,
		baseDomain: strings.ToLower(baseDomain),
		shared:     shared,
		ttl:        5 * time.Minute,
		negTTL:     30 * time.Second,
		entries:    make(map[string]cacheEntry),
		now:        time.Now,
	}
}

// Resolve maps host to a tenant. A (nil, nil) result means the host is the
// platform itself (apex or www) and carries no tenant. ErrNoTenant means
// the host is unknown.
func (r *Resolver) Resolve(ctx context.Context, host string) (*Tenant, error) {
	host = NormalizeHost(host)
	if host == "" {
		return nil, ErrNoTenant
	}

	// Platform hosts never map to a tenant.
	if host == r.baseDomain || host == "www."+r.baseDomain {
		return nil, nil
	}

	if t, ok := r.cached(host); ok {
		if t == nil {
			return nil, ErrNoTenant
		}
		return t, nil
	}

	v, err, _ := r.group.Do(host, func() (interface{}, error) {
		return r.lookup(ctx, host)
	})
	if errors.Is(err, ErrNoTenant) {
		r.put(host, nil, r.negTTL)
		return nil, ErrNoTenant
	}
	if err != nil {
		return nil, err
	}

	t := v.(*Tenant)
	r.put(host, t, r.ttl)
	return t, nil
}

// Invalidate drops host from both cache layers. Called by admin handlers
// after a subdomain or custom-domain change.
func (r *Resolver) Invalidate(ctx context.Context, host string) {
	host = NormalizeHost(host)

	r.mu.Lock()
	delete(r.entries, host)
	r.mu.Unlock()

	if r.shared != nil {
		if err := r.shared.Delete(ctx, sharedKey(host)); err != nil {
			log.Printf("tenant cache invalidate failed for %s: %v", host, err)
		}
	}
}

func (r *Resolver) lookup(ctx context.Context, host string) (*Tenant, error) {
	if r.shared != nil {
		var t Tenant
		err := r.shared.GetJSON(ctx, sharedKey(host), &t)
		if err == nil {
			return &t, nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			log.Printf("tenant cache read failed for %s: %v", host, err)
		}
	}

	var (
		t   *Tenant
		err error
	)
	if sub, ok := r.subdomainOf(host); ok {
		t, err = r.store.BySubdomain(ctx, sub)
	} else {
		t, err = r.store.ByCustomDomain(ctx, host)
	}
	if err != nil {
		return nil, err
	}

	if r.shared != nil {
		if err := r.shared.SetJSON(ctx, sharedKey(host), t, r.ttl); err != nil {
			log.Printf("tenant cache write failed for %s: %v", host, err)
		}
	}
	return t, nil
}

// subdomainOf returns the leftmost label when host is a direct subdomain of
// the base domain. Deeper nesting does not resolve.
func (r *Resolver) subdomainOf(host string) (string, bool) {
	suffix := "." + r.baseDomain
	if !strings.HasSuffix(host, suffix) {
		return "", false
	}
	sub := strings.TrimSuffix(host, suffix)
	if sub == "" || strings.Contains(sub, ".") {
		return "", false
	}
	return sub, true
}

func (r *Resolver) cached(host string) (*Tenant, bool) {
	r.mu.RLock()
	e, ok := r.entries[host]
	r.mu.RUnlock()
	if !ok || r.now().After(e.expiresAt) {
		return nil, false
	}
	return e.tenant, true
}

func (r *Resolver) put(host string, t *Tenant, ttl time.Duration) {
	r.mu.Lock()
	r.entries[host] = cacheEntry{tenant: t, expiresAt: r.now().Add(ttl)}
	r.mu.Unlock()
}

// NormalizeHost lowercases host and strips any port and trailing dot.
func NormalizeHost(host string) string {
	host = strings.TrimSpace(strings.ToLower(host))
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return strings.TrimSuffix(host, ".")
}

func sharedKey(host string) string {
	return "tenant:host:" + host
}
