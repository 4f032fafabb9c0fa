package tenants

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	mu          sync.Mutex
	bySubdomain map[string]*Tenant
	byDomain    map[string]*Tenant
	lookups     int32
	lookupDelay time.Duration
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		bySubdomain: map[string]*Tenant{},
		byDomain:    map[string]*Tenant{},
	}
}

func (s *fakeStore) BySubdomain(ctx context.Context, subdomain string) (*Tenant, error) {
	atomic.AddInt32(&s.lookups, 1)
	time.Sleep(s.lookupDelay)
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.bySubdomain[subdomain]; ok {
		return t, nil
	}
	return nil, ErrNoTenant
}

func (s *fakeStore) ByCustomDomain(ctx context.Context, domain string) (*Tenant, error) {
	atomic.AddInt32(&s.lookups, 1)
	time.Sleep(s.lookupDelay)
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.byDomain[domain]; ok {
		return t, nil
	}
	return nil, ErrNoTenant
}

func TestResolvePlatformHosts(t *testing.T) {
	r := NewResolver(newFakeStore(), "vibepos.app", nil)

	for _, host := range []string{"vibepos.app", "www.vibepos.app", "VIBEPOS.APP", "vibepos.app:8080"} {
		tenant, err := r.Resolve(context.Background(), host)
		require.NoError(t, err, host)
		assert.Nil(t, tenant, host)
	}
}

func TestResolveSubdomain(t *testing.T) {
	store := newFakeStore()
	store.bySubdomain["mama-njeris-shop"] = &Tenant{ID: "t1", Subdomain: "mama-njeris-shop", Status: StatusActive}
	r := NewResolver(store, "vibepos.app", nil)

	tenant, err := r.Resolve(context.Background(), "mama-njeris-shop.vibepos.app")
	require.NoError(t, err)
	require.NotNil(t, tenant)
	assert.Equal(t, "t1", tenant.ID)

	// Second hit comes from cache.
	_, err = r.Resolve(context.Background(), "mama-njeris-shop.vibepos.app:443")
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&store.lookups))
}

func TestResolveCustomDomain(t *testing.T) {
	store := newFakeStore()
	store.byDomain["shop.example.com"] = &Tenant{ID: "t2", Subdomain: "other", Status: StatusActive}
	r := NewResolver(store, "vibepos.app", nil)

	tenant, err := r.Resolve(context.Background(), "shop.example.com")
	require.NoError(t, err)
	require.NotNil(t, tenant)
	assert.Equal(t, "t2", tenant.ID)
}

func TestResolveNestedSubdomainFallsToCustomDomain(t *testing.T) {
	store := newFakeStore()
	r := NewResolver(store, "vibepos.app", nil)

	// a.b.vibepos.app is not a direct subdomain; it goes through the
	// custom-domain lookup and misses.
	_, err := r.Resolve(context.Background(), "a.b.vibepos.app")
	assert.ErrorIs(t, err, ErrNoTenant)
}

func TestResolveUnknownHostIsNegativeCached(t *testing.T) {
	store := newFakeStore()
	r := NewResolver(store, "vibepos.app", nil)

	for i := 0; i < 5; i++ {
		_, err := r.Resolve(context.Background(), "ghost.vibepos.app")
		assert.ErrorIs(t, err, ErrNoTenant)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&store.lookups))
}

func TestResolveCacheExpiry(t *testing.T) {
	store := newFakeStore()
	store.bySubdomain["duka"] = &Tenant{ID: "t3", Subdomain: "duka"}
	r := NewResolver(store, "vibepos.app", nil)

	now := time.Now()
	r.now = func() time.Time { return now }

	_, err := r.Resolve(context.Background(), "duka.vibepos.app")
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&store.lookups))

	// Within TTL: cached.
	now = now.Add(time.Minute)
	_, err = r.Resolve(context.Background(), "duka.vibepos.app")
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&store.lookups))

	// Past TTL: backend hit again.
	now = now.Add(10 * time.Minute)
	_, err = r.Resolve(context.Background(), "duka.vibepos.app")
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&store.lookups))
}

func TestResolveCollapsesConcurrentLookups(t *testing.T) {
	store := newFakeStore()
	store.bySubdomain["duka"] = &Tenant{ID: "t4", Subdomain: "duka"}
	store.lookupDelay = 50 * time.Millisecond
	r := NewResolver(store, "vibepos.app", nil)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tenant, err := r.Resolve(context.Background(), "duka.vibepos.app")
			assert.NoError(t, err)
			assert.NotNil(t, tenant)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&store.lookups))
}

func TestInvalidateDropsEntry(t *testing.T) {
	store := newFakeStore()
	store.bySubdomain["duka"] = &Tenant{ID: "t5", Subdomain: "duka"}
	r := NewResolver(store, "vibepos.app", nil)

	_, err := r.Resolve(context.Background(), "duka.vibepos.app")
	require.NoError(t, err)

	r.Invalidate(context.Background(), "duka.vibepos.app")

	_, err = r.Resolve(context.Background(), "duka.vibepos.app")
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&store.lookups))
}

func TestNormalizeHost(t *testing.T) {
	cases := map[string]string{
		"Shop.Example.COM":      "shop.example.com",
		"shop.example.com:8080": "shop.example.com",
		"shop.example.com.":     "shop.example.com",
		"  duka.vibepos.app ":   "duka.vibepos.app",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeHost(in), in)
	}
}
