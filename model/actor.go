// api/model/actor.go
package model

// Origin describes where a request came from, for the audit trail.
type Origin struct {
	IP        string `json:"ip"`
	UserAgent string `json:"user_agent"`
}

// Actor is the authenticated caller of an operation.
type Actor struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	Origin Origin `json:"-"`
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
