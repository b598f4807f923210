package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nexusnet/branch_registry_app/internal/apperrors"
	portssvc "github.com/nexusnet/branch_registry_app/internal/core/ports/services"
	"github.com/nexusnet/branch_registry_app/internal/dto"
	"github.com/nexusnet/branch_registry_app/internal/middleware"
)

// branchHandler handles HTTP requests related to branches.
type branchHandler struct {
	branchService portssvc.BranchSvcFacade
}

// newBranchHandler creates a new branchHandler.
func newBranchHandler(bs portssvc.BranchSvcFacade) *branchHandler {
	return &branchHandler{
		branchService: bs,
	}
}

// registerBranchRoutes registers all branch registry routes.
func registerBranchRoutes(rg *gin.RouterGroup, branchService portssvc.BranchSvcFacade) {
	h := newBranchHandler(branchService)

	branches := rg.Group("/branches")
	{
		branches.POST("", h.createBranch)
		branches.GET("", h.listBranches)
		branches.GET("/stats", h.getRegistryStats)
		branches.GET("/watch", h.watchBranches)
		branches.GET("/:branch_id", h.getBranch)
		branches.PUT("/:branch_id", h.updateBranch)
		branches.PATCH("/:branch_id/status", h.toggleBranchStatus)
		branches.DELETE("/:branch_id", h.deleteBranch)
	}
}

// respondWithServiceError translates registry errors to HTTP responses.
// Validation and conflict outcomes always stop at this boundary; only
// unexpected store failures surface as 500s.
func respondWithServiceError(c *gin.Context, logger *slog.Logger, err error) {
	var validationErr *apperrors.ValidationError
	var conflictErr *apperrors.ConflictError
	var confirmationErr *apperrors.ConfirmationRequiredError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "validation failed",
			"fields": validationErr.Fields,
		})
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusConflict, gin.H{
			"error":            "another Main branch already exists; demote the current Main branch first",
			"code":             conflictErr.Code,
			"existingBranchID": conflictErr.ExistingID,
		})
	case errors.As(err, &confirmationErr):
		c.JSON(http.StatusPreconditionRequired, gin.H{
			"error":                confirmationErr.Reason,
			"confirmationRequired": true,
		})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "branch not found"})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": "a branch with this code already exists"})
	default:
		logger.Error("Branch operation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "operation failed"})
	}
}

// createBranch godoc
// @Summary Register a new branch
// @Description Validates the branch, enforces the single-Main invariant, generates the branch code and persists the record with Active status.
// @Tags branches
// @Accept  json
// @Produce  json
// @Param   branch body dto.CreateBranchRequest true "Branch details"
// @Success 201 {object} dto.BranchResponse
// @Failure 400 {object} map[string]interface{} "Validation errors per field"
// @Failure 409 {object} map[string]interface{} "A Main branch already exists"
// @Router /branches [post]
func (h *branchHandler) createBranch(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateBranch", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	branch, err := h.branchService.CreateBranch(c.Request.Context(), req)
	if err != nil {
		respondWithServiceError(c, logger, err)
		return
	}

	logger.Info("Branch created", slog.String("branch_id", branch.BranchID))
	c.JSON(http.StatusCreated, dto.ToBranchResponse(branch))
}

// listBranches godoc
// @Summary List branches
// @Description Returns branches matching a case-insensitive search on name or code, intersected with an optional type filter.
// @Tags branches
// @Produce  json
// @Param   search query string false "Substring matched against name or code"
// @Param   type query string false "Branch type filter (Main|Sub|All)"
// @Success 200 {object} dto.ListBranchesResponse
// @Failure 400 {object} map[string]interface{} "Invalid type filter"
// @Router /branches [get]
func (h *branchHandler) listBranches(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	branches, err := h.branchService.ListBranches(c.Request.Context(), c.Query("search"), c.Query("type"))
	if err != nil {
		respondWithServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListBranchesResponse(branches))
}

// getRegistryStats godoc
// @Summary Registry aggregate counts
// @Description Derives total, per-type and per-status counts from the current branch set.
// @Tags branches
// @Produce  json
// @Success 200 {object} dto.RegistryStatsResponse
// @Router /branches/stats [get]
func (h *branchHandler) getRegistryStats(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	stats, err := h.branchService.GetRegistryStats(c.Request.Context())
	if err != nil {
		respondWithServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToRegistryStatsResponse(stats))
}

// getBranch godoc
// @Summary Get a branch by ID
// @Tags branches
// @Produce  json
// @Param   branch_id path string true "Branch ID"
// @Success 200 {object} dto.BranchResponse
// @Failure 404 {object} map[string]interface{} "Branch not found"
// @Router /branches/{branch_id} [get]
func (h *branchHandler) getBranch(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	branch, err := h.branchService.GetBranchByID(c.Request.Context(), c.Param("branch_id"))
	if err != nil {
		respondWithServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBranchResponse(branch))
}

// updateBranch godoc
// @Summary Edit a branch
// @Description Updates name, address, type and status. The branch code is immutable. Promoting to Main re-checks the single-Main invariant.
// @Tags branches
// @Accept  json
// @Produce  json
// @Param   branch_id path string true "Branch ID"
// @Param   branch body dto.UpdateBranchRequest true "Editable fields"
// @Success 200 {object} dto.BranchResponse
// @Failure 400 {object} map[string]interface{} "Validation errors per field"
// @Failure 404 {object} map[string]interface{} "Branch not found"
// @Failure 409 {object} map[string]interface{} "Another Main branch exists"
// @Router /branches/{branch_id} [put]
func (h *branchHandler) updateBranch(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.UpdateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateBranch", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	branch, err := h.branchService.UpdateBranch(c.Request.Context(), c.Param("branch_id"), req)
	if err != nil {
		respondWithServiceError(c, logger, err)
		return
	}

	logger.Info("Branch updated", slog.String("branch_id", branch.BranchID))
	c.JSON(http.StatusOK, dto.ToBranchResponse(branch))
}

// toggleBranchStatus godoc
// @Summary Toggle a branch's status
// @Description Flips Active/Inactive. Deactivating the Main branch requires confirm=true in the body; without it no write occurs.
// @Tags branches
// @Accept  json
// @Produce  json
// @Param   branch_id path string true "Branch ID"
// @Param   body body dto.ToggleStatusRequest false "Confirmation flag"
// @Success 200 {object} dto.BranchResponse
// @Failure 404 {object} map[string]interface{} "Branch not found"
// @Failure 428 {object} map[string]interface{} "Confirmation required"
// @Router /branches/{branch_id}/status [patch]
func (h *branchHandler) toggleBranchStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.ToggleStatusRequest
	// The body is optional; an absent body means no confirmation given.
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		logger.Warn("Failed to bind JSON for ToggleBranchStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	branch, err := h.branchService.ToggleBranchStatus(c.Request.Context(), c.Param("branch_id"), req.Confirm)
	if err != nil {
		respondWithServiceError(c, logger, err)
		return
	}

	logger.Info("Branch status toggled",
		slog.String("branch_id", branch.BranchID),
		slog.String("status", string(branch.Status)))
	c.JSON(http.StatusOK, dto.ToBranchResponse(branch))
}

// deleteBranch godoc
// @Summary Delete a branch
// @Description Removes a branch from the registry. Deleting the Main branch requires confirm=true.
// @Tags branches
// @Produce  json
// @Param   branch_id path string true "Branch ID"
// @Param   confirm query boolean false "Confirmation for deleting the Main branch"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]interface{} "Branch not found"
// @Failure 428 {object} map[string]interface{} "Confirmation required"
// @Router /branches/{branch_id} [delete]
func (h *branchHandler) deleteBranch(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	confirm := c.Query("confirm") == "true"

	if err := h.branchService.DeleteBranch(c.Request.Context(), c.Param("branch_id"), confirm); err != nil {
		respondWithServiceError(c, logger, err)
		return
	}

	logger.Info("Branch deleted", slog.String("branch_id", c.Param("branch_id")))
	c.Status(http.StatusNoContent)
}
