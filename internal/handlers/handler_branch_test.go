package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nexusnet/branch_registry_app/internal/apperrors"
	"github.com/nexusnet/branch_registry_app/internal/core/domain"
	portssvc "github.com/nexusnet/branch_registry_app/internal/core/ports/services"
	"github.com/nexusnet/branch_registry_app/internal/dto"
	"github.com/nexusnet/branch_registry_app/internal/handlers"
	"github.com/nexusnet/branch_registry_app/pkg/config"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock BranchService ---
type MockBranchService struct {
	mock.Mock
}

func (m *MockBranchService) CreateBranch(ctx context.Context, req dto.CreateBranchRequest) (*domain.Branch, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Branch), args.Error(1)
}

func (m *MockBranchService) GetBranchByID(ctx context.Context, branchID string) (*domain.Branch, error) {
	args := m.Called(ctx, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Branch), args.Error(1)
}

func (m *MockBranchService) ListBranches(ctx context.Context, search string, typeFilter string) ([]domain.Branch, error) {
	args := m.Called(ctx, search, typeFilter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Branch), args.Error(1)
}

func (m *MockBranchService) GetRegistryStats(ctx context.Context) (*domain.RegistryStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RegistryStats), args.Error(1)
}

func (m *MockBranchService) UpdateBranch(ctx context.Context, branchID string, req dto.UpdateBranchRequest) (*domain.Branch, error) {
	args := m.Called(ctx, branchID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Branch), args.Error(1)
}

func (m *MockBranchService) ToggleBranchStatus(ctx context.Context, branchID string, confirm bool) (*domain.Branch, error) {
	args := m.Called(ctx, branchID, confirm)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Branch), args.Error(1)
}

func (m *MockBranchService) DeleteBranch(ctx context.Context, branchID string, confirm bool) error {
	args := m.Called(ctx, branchID, confirm)
	return args.Error(0)
}

func (m *MockBranchService) WatchBranches(ctx context.Context) (<-chan []domain.Branch, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan []domain.Branch), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.BranchSvcFacade = (*MockBranchService)(nil)

// --- Test Suite ---
type BranchHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockBranchService
}

func (suite *BranchHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.mockService = new(MockBranchService)
	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, &config.Config{IsProduction: true}, suite.mockService)
}

func (suite *BranchHandlerTestSuite) perform(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func sampleBranch() *domain.Branch {
	return &domain.Branch{
		BranchID:   uuid.NewString(),
		BranchName: "Westside Hub",
		BranchCode: "NX-WE-4821-S",
		Address:    "12 Long Avenue, District 4",
		Type:       domain.BranchTypeSub,
		Status:     domain.BranchStatusActive,
		CreatedAt:  time.Now(),
	}
}

func (suite *BranchHandlerTestSuite) TestCreateBranch_Created() {
	branch := sampleBranch()
	req := dto.CreateBranchRequest{
		BranchName: "Westside Hub",
		Address:    "12 Long Avenue, District 4",
		Type:       "Sub",
	}

	suite.mockService.On("CreateBranch", mock.Anything, req).Return(branch, nil).Once()

	w := suite.perform(http.MethodPost, "/api/v1/branches", req)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.BranchResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(branch.BranchID, resp.BranchID)
	suite.Equal("NX-WE-4821-S", resp.BranchCode)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *BranchHandlerTestSuite) TestCreateBranch_ValidationErrorsExposedPerField() {
	req := dto.CreateBranchRequest{
		BranchName: "ab",
		Address:    "short",
		Type:       "Sub",
	}

	suite.mockService.On("CreateBranch", mock.Anything, req).Return(nil,
		apperrors.NewValidationError(map[string]string{
			"branchName": "branch name must be at least 3 characters",
			"address":    "please provide a more detailed address",
		})).Once()

	w := suite.perform(http.MethodPost, "/api/v1/branches", req)

	suite.Equal(http.StatusBadRequest, w.Code)
	var resp struct {
		Fields map[string]string `json:"fields"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Fields, 2)
	suite.Contains(resp.Fields, "branchName")
	suite.Contains(resp.Fields, "address")
}

func (suite *BranchHandlerTestSuite) TestCreateBranch_MainConflictNamesExistingBranch() {
	existingID := uuid.NewString()
	req := dto.CreateBranchRequest{
		BranchName: "Second HQ",
		Address:    "99 Rival Street, District 9",
		Type:       "Main",
	}

	suite.mockService.On("CreateBranch", mock.Anything, req).Return(nil,
		apperrors.NewConflictError("main-branch-exists", existingID)).Once()

	w := suite.perform(http.MethodPost, "/api/v1/branches", req)

	suite.Equal(http.StatusConflict, w.Code)
	var resp struct {
		Code             string `json:"code"`
		ExistingBranchID string `json:"existingBranchID"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("main-branch-exists", resp.Code)
	suite.Equal(existingID, resp.ExistingBranchID)
}

func (suite *BranchHandlerTestSuite) TestCreateBranch_MalformedJSON() {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/branches", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "CreateBranch", mock.Anything, mock.Anything)
}

func (suite *BranchHandlerTestSuite) TestListBranches_PassesFilters() {
	branches := []domain.Branch{*sampleBranch()}
	suite.mockService.On("ListBranches", mock.Anything, "west", "Sub").Return(branches, nil).Once()

	w := suite.perform(http.MethodGet, "/api/v1/branches?search=west&type=Sub", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListBranchesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(1, resp.Count)
	suite.Equal("Westside Hub", resp.Branches[0].BranchName)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *BranchHandlerTestSuite) TestGetRegistryStats() {
	stats := &domain.RegistryStats{Total: 3, Main: 1, Sub: 2, Active: 2, Inactive: 1}
	suite.mockService.On("GetRegistryStats", mock.Anything).Return(stats, nil).Once()

	w := suite.perform(http.MethodGet, "/api/v1/branches/stats", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.RegistryStatsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(3, resp.Total)
	suite.Equal(1, resp.Main)
}

func (suite *BranchHandlerTestSuite) TestGetBranch_NotFound() {
	suite.mockService.On("GetBranchByID", mock.Anything, "missing").Return(nil, apperrors.ErrNotFound).Once()

	w := suite.perform(http.MethodGet, "/api/v1/branches/missing", nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *BranchHandlerTestSuite) TestUpdateBranch_OK() {
	branch := sampleBranch()
	req := dto.UpdateBranchRequest{
		BranchName: branch.BranchName,
		Address:    branch.Address,
		Type:       "Sub",
		Status:     "Active",
	}

	suite.mockService.On("UpdateBranch", mock.Anything, branch.BranchID, req).Return(branch, nil).Once()

	w := suite.perform(http.MethodPut, "/api/v1/branches/"+branch.BranchID, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *BranchHandlerTestSuite) TestToggleStatus_ConfirmationRequired() {
	branchID := uuid.NewString()

	suite.mockService.On("ToggleBranchStatus", mock.Anything, branchID, false).Return(nil,
		apperrors.NewConfirmationRequiredError("deactivating the Main branch may restrict system-wide access")).Once()

	w := suite.perform(http.MethodPatch, "/api/v1/branches/"+branchID+"/status", dto.ToggleStatusRequest{Confirm: false})

	suite.Equal(http.StatusPreconditionRequired, w.Code)
	var resp struct {
		ConfirmationRequired bool   `json:"confirmationRequired"`
		Error                string `json:"error"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.ConfirmationRequired)
	suite.NotEmpty(resp.Error)
}

func (suite *BranchHandlerTestSuite) TestToggleStatus_EmptyBodyMeansNoConfirmation() {
	branch := sampleBranch()
	suite.mockService.On("ToggleBranchStatus", mock.Anything, branch.BranchID, false).Return(branch, nil).Once()

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/branches/"+branch.BranchID+"/status", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *BranchHandlerTestSuite) TestToggleStatus_WithConfirmation() {
	branch := sampleBranch()
	branch.Type = domain.BranchTypeMain
	branch.Status = domain.BranchStatusInactive

	suite.mockService.On("ToggleBranchStatus", mock.Anything, branch.BranchID, true).Return(branch, nil).Once()

	w := suite.perform(http.MethodPatch, "/api/v1/branches/"+branch.BranchID+"/status", dto.ToggleStatusRequest{Confirm: true})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.BranchResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("Inactive", resp.Status)
}

func (suite *BranchHandlerTestSuite) TestDeleteBranch_NoContent() {
	branchID := uuid.NewString()
	suite.mockService.On("DeleteBranch", mock.Anything, branchID, false).Return(nil).Once()

	w := suite.perform(http.MethodDelete, "/api/v1/branches/"+branchID, nil)

	suite.Equal(http.StatusNoContent, w.Code)
}

func (suite *BranchHandlerTestSuite) TestDeleteBranch_ConfirmQueryIsForwarded() {
	branchID := uuid.NewString()
	suite.mockService.On("DeleteBranch", mock.Anything, branchID, true).Return(nil).Once()

	w := suite.perform(http.MethodDelete, "/api/v1/branches/"+branchID+"?confirm=true", nil)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *BranchHandlerTestSuite) TestDeleteBranch_MainConfirmationRequired() {
	branchID := uuid.NewString()
	suite.mockService.On("DeleteBranch", mock.Anything, branchID, false).Return(
		apperrors.NewConfirmationRequiredError("deleting the Main branch may disrupt the network")).Once()

	w := suite.perform(http.MethodDelete, "/api/v1/branches/"+branchID, nil)

	suite.Equal(http.StatusPreconditionRequired, w.Code)
}

func (suite *BranchHandlerTestSuite) TestHealth() {
	w := suite.perform(http.MethodGet, "/health", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

func TestBranchHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(BranchHandlerTestSuite))
}
