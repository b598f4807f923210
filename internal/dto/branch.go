package dto

import (
	"time"

	"github.com/nexusnet/branch_registry_app/internal/core/domain"
)

// --- Branch DTOs ---

// CreateBranchRequest defines data for registering a new branch. The branch
// code is generated server-side and must not be supplied by the client.
type CreateBranchRequest struct {
	BranchName string `json:"branchName" binding:"required"`
	Address    string `json:"address" binding:"required"`
	Type       string `json:"type" binding:"required"`
}

// UpdateBranchRequest defines the editable fields of an existing branch.
// BranchCode is immutable and therefore absent.
type UpdateBranchRequest struct {
	BranchName string `json:"branchName" binding:"required"`
	Address    string `json:"address" binding:"required"`
	Type       string `json:"type" binding:"required"`
	Status     string `json:"status"`
}

// ToggleStatusRequest carries the operator's confirmation for guarded
// transitions (deactivating the Main branch).
type ToggleStatusRequest struct {
	Confirm bool `json:"confirm"`
}

// BranchResponse defines data returned for a single branch.
type BranchResponse struct {
	BranchID   string    `json:"branchID"`
	BranchName string    `json:"branchName"`
	BranchCode string    `json:"branchCode"`
	Address    string    `json:"address"`
	Type       string    `json:"type"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ListBranchesResponse wraps a filtered branch listing.
type ListBranchesResponse struct {
	Branches []BranchResponse `json:"branches"`
	Count    int              `json:"count"`
}

// RegistryStatsResponse mirrors domain.RegistryStats for the stats endpoint.
type RegistryStatsResponse struct {
	Total    int `json:"total"`
	Main     int `json:"main"`
	Sub      int `json:"sub"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
}

// ToBranchResponse converts domain.Branch to DTO.
func ToBranchResponse(b *domain.Branch) BranchResponse {
	return BranchResponse{
		BranchID:   b.BranchID,
		BranchName: b.BranchName,
		BranchCode: b.BranchCode,
		Address:    b.Address,
		Type:       string(b.Type),
		Status:     string(b.Status),
		CreatedAt:  b.CreatedAt,
	}
}

// ToListBranchesResponse converts a slice of domain branches to the list DTO.
func ToListBranchesResponse(branches []domain.Branch) ListBranchesResponse {
	resp := ListBranchesResponse{
		Branches: make([]BranchResponse, 0, len(branches)),
		Count:    len(branches),
	}
	for i := range branches {
		resp.Branches = append(resp.Branches, ToBranchResponse(&branches[i]))
	}
	return resp
}

// ToRegistryStatsResponse converts domain.RegistryStats to DTO.
func ToRegistryStatsResponse(s *domain.RegistryStats) RegistryStatsResponse {
	return RegistryStatsResponse{
		Total:    s.Total,
		Main:     s.Main,
		Sub:      s.Sub,
		Active:   s.Active,
		Inactive: s.Inactive,
	}
}
