package auth

// DefaultRouteSegment is the segment used for roles missing from the route map.
// Unknown roles land on the admin path; dashboard guards still require an exact role match.
const DefaultRouteSegment = "admin"

// roleRouteMap is the single source of truth for role landing segments.
//
//nolint:gochecknoglobals // static read-only lookup
var roleRouteMap = map[Role]string{
	RoleAdmin:      "admin",
	RoleUser:       "user",
	RoleContractor: "contractor",
}

// RouteSegment returns the path segment for role and whether the role was mapped.
func RouteSegment(role Role) (string, bool) {
	seg, ok := roleRouteMap[role]
	if !ok {
		return DefaultRouteSegment, false
	}
	return seg, true
}

// DashboardPath builds the dashboard path for a route segment.
func DashboardPath(segment string) string {
	return "/" + segment + "/dashboard"
}

// RouteForRole returns the dashboard path for role. It never fails.
func RouteForRole(role Role) string {
	seg, _ := RouteSegment(role)
	return DashboardPath(seg)
}
