package auth

import "facilityassist/internal/model"

// Principal is the resolved identity of the caller for the duration of one
// request. It is passed explicitly (via Fiber locals) instead of living in
// any global security context.
type Principal struct {
	ID       int64      `json:"id"`
	Username string     `json:"username"`
	Name     string     `json:"name"`
	Role     model.Role `json:"role"`
	UnitID   *int64     `json:"unit_id,omitempty"`
	UnitName string     `json:"unit_name,omitempty"`
}

// PrincipalLocalKey is the key under which middleware stores the Principal
// in Fiber's context locals.
const PrincipalLocalKey = "principal"
