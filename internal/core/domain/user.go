package domain

// User is a staff identity used for authentication and audit display.
type User struct {
	UserID       string `json:"userID"`
	CompanyID    string `json:"companyID"`
	BranchID     string `json:"branchID"`
	Name         string `json:"name"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
	IsActive     bool   `json:"isActive"`
	AuditFields
}
