package access

type AccessState string

const (
	AccessTrial   AccessState = "trial"
	AccessFull    AccessState = "full"
	AccessLimited AccessState = "limited"
	AccessLocked  AccessState = "locked"
)

// RouteGroup names a guarded area of the application.
type RouteGroup string

const (
	GroupSuperadmin RouteGroup = "superadmin"
	GroupAdmin      RouteGroup = "admin"
	GroupPOS        RouteGroup = "pos"
	GroupBilling    RouteGroup = "billing"
	GroupAccount    RouteGroup = "account"
)
