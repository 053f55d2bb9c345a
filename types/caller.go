package types

import "hotelhub/constants"

// Caller is the authenticated principal of a request.
type Caller struct {
	ID             uint                     `json:"id"`
	Email          string                   `json:"email"`
	Role           constants.Role           `json:"role"`
	BusinessStatus constants.BusinessStatus `json:"businessStatus,omitempty"`
}

func (c Caller) IsAdmin() bool {
	return c.Role == constants.RoleAdmin
}

func (c Caller) IsApprovedBusiness() bool {
	return c.Role == constants.RoleBusiness && c.BusinessStatus == constants.BusinessApproved
}
