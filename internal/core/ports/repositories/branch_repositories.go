package repositories

import (
	"context"

	"github.com/nexusnet/branch_registry_app/internal/core/domain"
)

// BranchReader defines read operations against the branch collection.
type BranchReader interface {
	FindBranchByID(ctx context.Context, branchID string) (*domain.Branch, error)
	// FindBranchesByType returns all branches of the given type. Used by the
	// single-Main uniqueness guard before committing a Main-type write.
	FindBranchesByType(ctx context.Context, branchType domain.BranchType) ([]domain.Branch, error)
	ListBranches(ctx context.Context) ([]domain.Branch, error)
}

// BranchWriter defines mutating operations against the branch collection.
type BranchWriter interface {
	SaveBranch(ctx context.Context, branch domain.Branch) error
	// UpdateBranch persists the mutable fields of an existing branch. BranchID,
	// BranchCode and CreatedAt are never written by an update.
	UpdateBranch(ctx context.Context, branch domain.Branch) error
	UpdateBranchStatus(ctx context.Context, branchID string, status domain.BranchStatus) error
	DeleteBranch(ctx context.Context, branchID string) error
}

// BranchWatcher exposes a live subscription to the branch collection. Each
// element on the returned channel is a full replacement snapshot; the first is
// delivered immediately after subscribing. The subscription ends, and the
// channel is closed, when ctx is cancelled.
type BranchWatcher interface {
	WatchBranches(ctx context.Context) (<-chan []domain.Branch, error)
}

// BranchRepositoryFacade is the full document-store boundary for branches.
type BranchRepositoryFacade interface {
	BranchReader
	BranchWriter
	BranchWatcher
}
