package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/nexusnet/branch_registry_app/internal/apperrors"
	"github.com/nexusnet/branch_registry_app/internal/core/domain"
	portsrepo "github.com/nexusnet/branch_registry_app/internal/core/ports/repositories"
	portssvc "github.com/nexusnet/branch_registry_app/internal/core/ports/services"
	"github.com/nexusnet/branch_registry_app/internal/dto"
	"github.com/nexusnet/branch_registry_app/internal/utils/branchcode"
	"github.com/nexusnet/branch_registry_app/internal/utils/registryview"
)

// branchService implements the BranchSvcFacade interface
type branchService struct {
	BaseService
	branchRepo portsrepo.BranchRepositoryFacade
	validate   *validator.Validate
}

// NewBranchService creates a new branch service with the provided repository.
func NewBranchService(branchRepo portsrepo.BranchRepositoryFacade) portssvc.BranchSvcFacade {
	return &branchService{
		branchRepo: branchRepo,
		validate:   validator.New(),
	}
}

// Ensure branchService implements the BranchSvcFacade interface
var _ portssvc.BranchSvcFacade = (*branchService)(nil)

// branchCandidate is the normalized form a branch write is validated against.
// Validation is field-independent: every violated field is reported, not just
// the first, so a form can display all errors at once.
type branchCandidate struct {
	BranchName string `validate:"required,min=3"`
	Address    string `validate:"required,min=10"`
	Type       string `validate:"required,oneof=Main Sub"`
	Status     string `validate:"omitempty,oneof=Active Inactive"`
}

// validationMessage maps a violated rule to the message shown next to the field.
func validationMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "BranchName":
		if fe.Tag() == "min" {
			return "branch name must be at least 3 characters"
		}
		return "branch name is required"
	case "Address":
		if fe.Tag() == "min" {
			return "please provide a more detailed address"
		}
		return "physical address is required"
	case "Type":
		return "select a valid branch type"
	case "Status":
		return "select a valid status"
	}
	return "invalid value"
}

// fieldKey converts the struct field name to its JSON form.
func fieldKey(fe validator.FieldError) string {
	switch fe.Field() {
	case "BranchName":
		return "branchName"
	case "Address":
		return "address"
	case "Type":
		return "type"
	case "Status":
		return "status"
	}
	return strings.ToLower(fe.Field())
}

// checkCandidate validates a normalized candidate, collecting every violation.
func (s *branchService) checkCandidate(cand branchCandidate) error {
	err := s.validate.Struct(cand)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.NewAppError(500, "branch validation failed unexpectedly", err)
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fieldKey(fe)] = validationMessage(fe)
	}
	return apperrors.NewValidationError(fields)
}

// ensureSingleMain enforces the single-Main invariant with a query-then-write
// check. excludeID is the record being edited, so promoting a branch that is
// already Main does not conflict with itself.
//
// The check and the subsequent write are not atomic across concurrent writers;
// with no cross-document transaction in the store this is a best-effort
// guarantee, acceptable for a small operator population. It never demotes the
// existing Main branch.
func (s *branchService) ensureSingleMain(ctx context.Context, excludeID string) error {
	mains, err := s.branchRepo.FindBranchesByType(ctx, domain.BranchTypeMain)
	if err != nil {
		s.LogError(ctx, err, "Failed to query existing Main branches")
		return err
	}
	for _, b := range mains {
		if b.BranchID != excludeID {
			return apperrors.NewConflictError("main-branch-exists", b.BranchID)
		}
	}
	return nil
}

// CreateBranch registers a new branch: validate, guard the Main invariant,
// generate the immutable code, then persist with Status=Active.
func (s *branchService) CreateBranch(ctx context.Context, req dto.CreateBranchRequest) (*domain.Branch, error) {
	cand := branchCandidate{
		BranchName: strings.TrimSpace(req.BranchName),
		Address:    strings.TrimSpace(req.Address),
		Type:       strings.TrimSpace(req.Type),
	}
	if err := s.checkCandidate(cand); err != nil {
		return nil, err
	}

	branchType := domain.BranchType(cand.Type)
	if branchType == domain.BranchTypeMain {
		if err := s.ensureSingleMain(ctx, ""); err != nil {
			return nil, err
		}
	}

	code, err := branchcode.Generate(cand.BranchName, branchType)
	if err != nil {
		// Unreachable once the name passed its min-3 check; kept as a
		// validation failure so an incomplete code is never persisted.
		return nil, apperrors.NewValidationError(map[string]string{
			"branchCode": "branch code could not be generated from the given name",
		})
	}

	branch := domain.Branch{
		BranchID:   uuid.NewString(),
		BranchName: cand.BranchName,
		BranchCode: code,
		Address:    cand.Address,
		Type:       branchType,
		Status:     domain.BranchStatusActive,
		CreatedAt:  time.Now(),
	}

	if err := s.branchRepo.SaveBranch(ctx, branch); err != nil {
		s.LogError(ctx, err, "Failed to save branch",
			slog.String("branch_id", branch.BranchID))
		return nil, err
	}

	s.LogInfo(ctx, "Branch created successfully",
		slog.String("branch_id", branch.BranchID),
		slog.String("branch_code", branch.BranchCode),
		slog.String("type", string(branch.Type)))
	return &branch, nil
}

// GetBranchByID retrieves a branch by its ID
func (s *branchService) GetBranchByID(ctx context.Context, branchID string) (*domain.Branch, error) {
	branch, err := s.branchRepo.FindBranchByID(ctx, branchID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find branch by ID",
				slog.String("branch_id", branchID))
		}
		return nil, err
	}
	return branch, nil
}

// ListBranches returns the filtered registry view derived from the current
// record set.
func (s *branchService) ListBranches(ctx context.Context, search string, typeFilter string) ([]domain.Branch, error) {
	var filterType domain.BranchType
	switch strings.TrimSpace(typeFilter) {
	case "", "All":
		filterType = ""
	case string(domain.BranchTypeMain):
		filterType = domain.BranchTypeMain
	case string(domain.BranchTypeSub):
		filterType = domain.BranchTypeSub
	default:
		return nil, apperrors.NewValidationError(map[string]string{
			"type": "select a valid branch type",
		})
	}

	branches, err := s.branchRepo.ListBranches(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list branches")
		return nil, err
	}

	return registryview.Filter(branches, search, filterType), nil
}

// GetRegistryStats derives aggregate counts from the current record set.
func (s *branchService) GetRegistryStats(ctx context.Context) (*domain.RegistryStats, error) {
	branches, err := s.branchRepo.ListBranches(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list branches for stats")
		return nil, err
	}
	stats := registryview.ComputeStats(branches)
	return &stats, nil
}

// UpdateBranch edits the mutable fields of an existing branch. The branch code
// and creation timestamp never change. Promoting a branch to Main re-checks
// the single-Main invariant, excluding the branch being edited.
func (s *branchService) UpdateBranch(ctx context.Context, branchID string, req dto.UpdateBranchRequest) (*domain.Branch, error) {
	existing, err := s.branchRepo.FindBranchByID(ctx, branchID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find branch for update",
				slog.String("branch_id", branchID))
		}
		return nil, err
	}

	cand := branchCandidate{
		BranchName: strings.TrimSpace(req.BranchName),
		Address:    strings.TrimSpace(req.Address),
		Type:       strings.TrimSpace(req.Type),
		Status:     strings.TrimSpace(req.Status),
	}
	if err := s.checkCandidate(cand); err != nil {
		return nil, err
	}

	branchType := domain.BranchType(cand.Type)
	if branchType == domain.BranchTypeMain {
		if err := s.ensureSingleMain(ctx, branchID); err != nil {
			return nil, err
		}
	}

	updated := *existing
	updated.BranchName = cand.BranchName
	updated.Address = cand.Address
	updated.Type = branchType
	if cand.Status != "" {
		updated.Status = domain.BranchStatus(cand.Status)
	}

	if err := s.branchRepo.UpdateBranch(ctx, updated); err != nil {
		s.LogError(ctx, err, "Failed to update branch",
			slog.String("branch_id", branchID))
		return nil, err
	}

	s.LogInfo(ctx, "Branch updated successfully",
		slog.String("branch_id", branchID))
	return &updated, nil
}

// ToggleBranchStatus flips the operational status of a branch. Deactivating
// the Main branch is gated behind explicit confirmation: without it no store
// write is issued and the stored status is unchanged.
func (s *branchService) ToggleBranchStatus(ctx context.Context, branchID string, confirm bool) (*domain.Branch, error) {
	existing, err := s.branchRepo.FindBranchByID(ctx, branchID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find branch for status toggle",
				slog.String("branch_id", branchID))
		}
		return nil, err
	}

	newStatus := existing.Status.Toggle()
	if existing.Type == domain.BranchTypeMain && newStatus == domain.BranchStatusInactive && !confirm {
		return nil, apperrors.NewConfirmationRequiredError(
			"deactivating the Main branch may restrict system-wide access")
	}

	if err := s.branchRepo.UpdateBranchStatus(ctx, branchID, newStatus); err != nil {
		s.LogError(ctx, err, "Failed to update branch status",
			slog.String("branch_id", branchID),
			slog.String("status", string(newStatus)))
		return nil, err
	}

	s.LogInfo(ctx, "Branch status toggled",
		slog.String("branch_id", branchID),
		slog.String("status", string(newStatus)))

	updated := *existing
	updated.Status = newStatus
	return &updated, nil
}

// DeleteBranch removes a branch from the registry. Deleting the Main branch
// requires explicit confirmation.
func (s *branchService) DeleteBranch(ctx context.Context, branchID string, confirm bool) error {
	existing, err := s.branchRepo.FindBranchByID(ctx, branchID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find branch for delete",
				slog.String("branch_id", branchID))
		}
		return err
	}

	if existing.Type == domain.BranchTypeMain && !confirm {
		return apperrors.NewConfirmationRequiredError(
			"deleting the Main branch may disrupt the network")
	}

	if err := s.branchRepo.DeleteBranch(ctx, branchID); err != nil {
		s.LogError(ctx, err, "Failed to delete branch",
			slog.String("branch_id", branchID))
		return err
	}

	s.LogInfo(ctx, "Branch deleted",
		slog.String("branch_id", branchID),
		slog.String("type", string(existing.Type)))
	return nil
}

// WatchBranches exposes the store's live snapshot subscription.
func (s *branchService) WatchBranches(ctx context.Context) (<-chan []domain.Branch, error) {
	return s.branchRepo.WatchBranches(ctx)
}
