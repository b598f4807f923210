// Package registryview derives presentation views from a branch snapshot.
// Every function is a pure computation over the slice it is given: the result
// is fully determined by the current snapshot plus the filter arguments, so a
// caller can re-derive the view on every store notification without any cached
// state drifting out of sync.
package registryview

import (
	"strings"

	"github.com/nexusnet/branch_registry_app/internal/core/domain"
)

// ComputeStats folds the snapshot into aggregate counts.
func ComputeStats(branches []domain.Branch) domain.RegistryStats {
	stats := domain.RegistryStats{Total: len(branches)}
	for _, b := range branches {
		switch b.Type {
		case domain.BranchTypeMain:
			stats.Main++
		case domain.BranchTypeSub:
			stats.Sub++
		}
		switch b.Status {
		case domain.BranchStatusActive:
			stats.Active++
		case domain.BranchStatusInactive:
			stats.Inactive++
		}
	}
	return stats
}

// Filter returns the branches whose name or code contains the search term
// (case-insensitive), intersected with the type filter. An empty search term
// matches every branch; an empty type filter matches every type.
func Filter(branches []domain.Branch, search string, typeFilter domain.BranchType) []domain.Branch {
	term := strings.ToLower(strings.TrimSpace(search))

	filtered := make([]domain.Branch, 0, len(branches))
	for _, b := range branches {
		if typeFilter != "" && b.Type != typeFilter {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(b.BranchName), term) &&
			!strings.Contains(strings.ToLower(b.BranchCode), term) {
			continue
		}
		filtered = append(filtered, b)
	}
	return filtered
}
