package dto

// UpdateUserRequest for admin user management (verify, promote, rename)
type UpdateUserRequest struct {
	Name       *string `json:"name" binding:"omitempty,max=255"`
	IsVerified *bool   `json:"is_verified"`
	IsAdmin    *bool   `json:"is_admin"`
}

// StatsResponse is the admin dashboard aggregate. Field names follow the
// dashboard's camelCase contract.
type StatsResponse struct {
	TotalUsers       int64 `json:"totalUsers"`
	VerifiedUsers    int64 `json:"verifiedUsers"`
	AdminUsers       int64 `json:"adminUsers"`
	TotalConfessions int64 `json:"totalConfessions"`
	TotalCategories  int64 `json:"totalCategories"`
}
