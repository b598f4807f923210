package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nexusnet/branch_registry_app/internal/apperrors"
	"github.com/nexusnet/branch_registry_app/internal/core/domain"
	portsrepo "github.com/nexusnet/branch_registry_app/internal/core/ports/repositories"
)

type PgxBranchRepository struct {
	BaseRepository
}

// NewBranchRepository creates a new repository for branch data.
func NewBranchRepository(pool *pgxpool.Pool) portsrepo.BranchRepositoryFacade {
	return &PgxBranchRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxBranchRepository implements portsrepo.BranchRepositoryFacade
var _ portsrepo.BranchRepositoryFacade = (*PgxBranchRepository)(nil)

var FULL_BRANCH_SELECT_QUERY = `
SELECT
	b.branch_id, b.branch_name, b.branch_code, b.address, b.type, b.status, b.created_at
FROM branches b
`

// getBranches runs the full select with the given filter clause and args.
func (r *PgxBranchRepository) getBranches(ctx context.Context, filterQuery string, args ...any) ([]domain.Branch, error) {
	query := FULL_BRANCH_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query branches", err)
	}
	defer rows.Close()
	branches, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Branch])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) { // No rows is not an error for a list.
			return []domain.Branch{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect branch rows", err)
	}

	return branches, nil
}

func (r *PgxBranchRepository) SaveBranch(ctx context.Context, branch domain.Branch) error {
	query := `
		INSERT INTO branches (branch_id, branch_name, branch_code, address, type, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		branch.BranchID,
		branch.BranchName,
		branch.BranchCode,
		branch.Address,
		branch.Type,
		branch.Status,
		branch.CreatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to save branch "+branch.BranchID, err)
	}
	return nil
}

func (r *PgxBranchRepository) FindBranchByID(ctx context.Context, branchID string) (*domain.Branch, error) {
	query := `WHERE b.branch_id = $1`
	branches, err := r.getBranches(ctx, query, branchID)
	if err != nil {
		return nil, err
	}
	if len(branches) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &branches[0], nil
}

func (r *PgxBranchRepository) FindBranchesByType(ctx context.Context, branchType domain.BranchType) ([]domain.Branch, error) {
	query := `WHERE b.type = $1`
	return r.getBranches(ctx, query, branchType)
}

func (r *PgxBranchRepository) ListBranches(ctx context.Context) ([]domain.Branch, error) {
	return r.getBranches(ctx, `ORDER BY b.created_at, b.branch_id`)
}

// UpdateBranch writes the mutable fields of a branch. branch_id, branch_code
// and created_at are deliberately absent from the SET list.
func (r *PgxBranchRepository) UpdateBranch(ctx context.Context, branch domain.Branch) error {
	query := `
		UPDATE branches
		SET branch_name = $1, address = $2, type = $3, status = $4
		WHERE branch_id = $5;
	`
	result, err := r.Pool.Exec(ctx, query,
		branch.BranchName,
		branch.Address,
		branch.Type,
		branch.Status,
		branch.BranchID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update branch "+branch.BranchID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateBranchStatus writes only the status field.
func (r *PgxBranchRepository) UpdateBranchStatus(ctx context.Context, branchID string, status domain.BranchStatus) error {
	query := `UPDATE branches SET status = $1 WHERE branch_id = $2;`
	result, err := r.Pool.Exec(ctx, query, status, branchID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status of branch "+branchID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxBranchRepository) DeleteBranch(ctx context.Context, branchID string) error {
	query := `DELETE FROM branches WHERE branch_id = $1;`
	result, err := r.Pool.Exec(ctx, query, branchID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete branch "+branchID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
