package domain

import "time"

// BranchType defines the hierarchy level of a branch within the network.
type BranchType string

const (
	BranchTypeMain BranchType = "Main" // At most one Main branch may exist at a time.
	BranchTypeSub  BranchType = "Sub"
)

// BranchStatus defines the operational state of a branch.
type BranchStatus string

const (
	BranchStatusActive   BranchStatus = "Active"
	BranchStatusInactive BranchStatus = "Inactive"
)

// Toggle returns the opposite status.
func (s BranchStatus) Toggle() BranchStatus {
	if s == BranchStatusActive {
		return BranchStatusInactive
	}
	return BranchStatusActive
}

// Branch represents a physical location registered in the branch network.
// BranchID and BranchCode are immutable once the record is persisted.
type Branch struct {
	BranchID   string       `json:"branchID" db:"branch_id"`     // Primary Key (UUID)
	BranchName string       `json:"branchName" db:"branch_name"` // Display name, trimmed, min length 3
	BranchCode string       `json:"branchCode" db:"branch_code"` // Generated unique code, e.g. NX-DO-4821-S
	Address    string       `json:"address" db:"address"`        // Physical address, trimmed, min length 10
	Type       BranchType   `json:"type" db:"type"`
	Status     BranchStatus `json:"status" db:"status"`
	CreatedAt  time.Time    `json:"createdAt" db:"created_at"` // Set once at creation
}

// RegistryStats holds aggregate counts derived from the full branch set.
type RegistryStats struct {
	Total    int `json:"total"`
	Main     int `json:"main"`
	Sub      int `json:"sub"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
}
