package domain

// User represents an operator of the ledger. Entries and audit records reference
// users through CreatedBy/ChangedBy fields.
type User struct {
	UserID       string `json:"userID"`
	Username     string `json:"username"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
	AuditFields
}
