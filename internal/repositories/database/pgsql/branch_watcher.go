package pgsql

import (
	"context"
	"log/slog"

	"github.com/nexusnet/branch_registry_app/internal/apperrors"
	"github.com/nexusnet/branch_registry_app/internal/core/domain"
)

// branchChannel is the Postgres notification channel raised by the
// branches_changed trigger (see migrations) on every committed mutation.
const branchChannel = "branches_changed"

// WatchBranches subscribes to the branch collection. The first snapshot is
// sent right after subscribing; after that, every committed change triggers a
// full re-query and a full replacement snapshot in commit order. There is no
// incremental merge: the consumer's cached set is replaced wholesale.
//
// A dedicated pooled connection is held on LISTEN for the lifetime of the
// subscription. Cancelling ctx tears the subscription down, releases the
// connection and closes the returned channel.
func (r *PgxBranchRepository) WatchBranches(ctx context.Context) (<-chan []domain.Branch, error) {
	conn, err := r.Pool.Acquire(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to acquire connection for branch watch", err)
	}
	if _, err := conn.Exec(ctx, "LISTEN "+branchChannel); err != nil {
		conn.Release()
		return nil, apperrors.NewAppError(500, "failed to listen on "+branchChannel, err)
	}

	snapshots := make(chan []domain.Branch, 1)
	go func() {
		defer close(snapshots)
		defer func() {
			// ctx is likely cancelled here; stop listening with a fresh
			// context so the connection goes back to the pool clean.
			_, _ = conn.Exec(context.Background(), "UNLISTEN "+branchChannel)
			conn.Release()
		}()

		for {
			branches, err := r.ListBranches(ctx)
			if err != nil {
				// A failed re-query never kills the subscription; the
				// consumer keeps its last known-good snapshot.
				if ctx.Err() != nil {
					return
				}
				slog.Error("Failed to refresh branch snapshot",
					slog.String("error", err.Error()))
			} else {
				select {
				case snapshots <- branches:
				case <-ctx.Done():
					return
				}
			}

			if _, err := conn.Conn().WaitForNotification(ctx); err != nil {
				// Cancelled or the connection died; either way the
				// subscription is over.
				return
			}
		}
	}()

	return snapshots, nil
}
