package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/justmurenga/vibe-flow-point-of-sale/internal/domain/tenants"
)

type staticStore struct {
	bySub map[string]*tenants.Tenant
}

func (s *staticStore) BySubdomain(ctx context.Context, sub string) (*tenants.Tenant, error) {
	if t, ok := s.bySub[sub]; ok {
		return t, nil
	}
	return nil, tenants.ErrNoTenant
}

func (s *staticStore) ByCustomDomain(ctx context.Context, domain string) (*tenants.Tenant, error) {
	return nil, tenants.ErrNoTenant
}

// tenantRouter wires a minimal chain: seed claims, optionally seed a host
// tenant, then the middleware under test.
func tenantRouter(hostTenant *tenants.Tenant, claims map[string]string, mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if hostTenant != nil {
			c.Set(tenantContextKey, hostTenant)
		}
		for k, v := range claims {
			c.Set(k, v)
		}
	})
	r.Use(mw)
	r.GET("/x", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
	return r
}

func get(r *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	return w
}

func TestRequireTenantMatchAllowsOwnStore(t *testing.T) {
	host := &tenants.Tenant{ID: "t1", Status: tenants.StatusActive}
	r := tenantRouter(host, map[string]string{"jwt_tenant_id": "t1"}, RequireTenantMatch())
	assert.Equal(t, http.StatusOK, get(r).Code)
}

func TestRequireTenantMatchRejectsForeignToken(t *testing.T) {
	host := &tenants.Tenant{ID: "t1", Status: tenants.StatusActive}
	r := tenantRouter(host, map[string]string{"jwt_tenant_id": "t2"}, RequireTenantMatch())
	assert.Equal(t, http.StatusForbidden, get(r).Code)
}

func TestRequireTenantMatchRejectsSuspendedStore(t *testing.T) {
	host := &tenants.Tenant{ID: "t1", Status: tenants.StatusSuspended}
	r := tenantRouter(host, map[string]string{"jwt_tenant_id": "t1"}, RequireTenantMatch())
	assert.Equal(t, http.StatusForbidden, get(r).Code)
}

func TestRequireTenantMatchPassesOnPlatformHost(t *testing.T) {
	// No tenant resolved for the host: the JWT claim scopes everything.
	r := tenantRouter(nil, map[string]string{"jwt_tenant_id": "t1"}, RequireTenantMatch())
	assert.Equal(t, http.StatusOK, get(r).Code)
}

func TestRequireTenantMatchSuperadminOnTenantHost(t *testing.T) {
	host := &tenants.Tenant{ID: "t1", Status: tenants.StatusActive}
	r := tenantRouter(host, map[string]string{"role": "superadmin"}, RequireTenantMatch())
	assert.Equal(t, http.StatusOK, get(r).Code)

	// A tenant-less token without the superadmin role does not pass.
	r = tenantRouter(host, map[string]string{"role": "cashier"}, RequireTenantMatch())
	assert.Equal(t, http.StatusForbidden, get(r).Code)
}

func TestRequireTenant(t *testing.T) {
	r := tenantRouter(nil, nil, RequireTenant())
	assert.Equal(t, http.StatusNotFound, get(r).Code)

	suspended := &tenants.Tenant{ID: "t1", Status: tenants.StatusSuspended}
	r = tenantRouter(suspended, nil, RequireTenant())
	assert.Equal(t, http.StatusForbidden, get(r).Code)

	active := &tenants.Tenant{ID: "t1", Status: tenants.StatusTrial}
	r = tenantRouter(active, nil, RequireTenant())
	assert.Equal(t, http.StatusOK, get(r).Code)
}

func TestResolveTenantMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := &staticStore{bySub: map[string]*tenants.Tenant{
		"duka": {ID: "t1", Subdomain: "duka", Status: tenants.StatusActive},
	}}
	resolver := tenants.NewResolver(store, "vibepos.app", nil)

	r := gin.New()
	r.Use(ResolveTenant(resolver))
	r.GET("/x", func(c *gin.Context) {
		tenant := TenantFrom(c)
		if tenant == nil {
			c.JSON(http.StatusOK, gin.H{"tenant": nil})
			return
		}
		c.JSON(http.StatusOK, gin.H{"tenant": tenant.ID})
	})

	// Tenant host resolves and is set on the context.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "http://duka.vibepos.app/x", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "t1")

	// Unknown host is a 404.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "http://ghost.vibepos.app/x", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Platform apex passes with no tenant.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "http://vibepos.app/x", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
