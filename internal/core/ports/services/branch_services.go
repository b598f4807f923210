package services

import (
	"context"

	"github.com/nexusnet/branch_registry_app/internal/core/domain"
	"github.com/nexusnet/branch_registry_app/internal/dto"
)

// BranchSvcFacade defines the branch registry operations consumed by handlers.
type BranchSvcFacade interface {
	CreateBranch(ctx context.Context, req dto.CreateBranchRequest) (*domain.Branch, error)
	GetBranchByID(ctx context.Context, branchID string) (*domain.Branch, error)
	// ListBranches returns the branches matching a case-insensitive substring
	// search on name or code, intersected with an optional type filter. Empty
	// arguments match everything.
	ListBranches(ctx context.Context, search string, typeFilter string) ([]domain.Branch, error)
	GetRegistryStats(ctx context.Context) (*domain.RegistryStats, error)
	UpdateBranch(ctx context.Context, branchID string, req dto.UpdateBranchRequest) (*domain.Branch, error)
	// ToggleBranchStatus flips Active/Inactive. Deactivating a Main branch
	// requires confirm=true; otherwise no write is issued.
	ToggleBranchStatus(ctx context.Context, branchID string, confirm bool) (*domain.Branch, error)
	// DeleteBranch removes a branch. Deleting a Main branch requires confirm=true.
	DeleteBranch(ctx context.Context, branchID string, confirm bool) error
	WatchBranches(ctx context.Context) (<-chan []domain.Branch, error)
}
