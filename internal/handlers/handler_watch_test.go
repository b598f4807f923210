package handlers_test

import (
	"context"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/nexusnet/branch_registry_app/internal/apperrors"
	"github.com/nexusnet/branch_registry_app/internal/core/domain"
	"github.com/nexusnet/branch_registry_app/internal/dto"
	"github.com/stretchr/testify/mock"
)

// dialWatch starts a real HTTP server around the suite router and opens a
// websocket to the watch endpoint.
func (suite *BranchHandlerTestSuite) dialWatch() (*httptest.Server, *websocket.Conn) {
	srv := httptest.NewServer(suite.router)
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/branches/watch"
	ws, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	suite.Require().NoError(err)
	return srv, ws
}

func (suite *BranchHandlerTestSuite) TestWatchBranches_StreamsReplacementSnapshots() {
	snapshots := make(chan []domain.Branch, 1)
	snapshots <- []domain.Branch{*sampleBranch()}

	suite.mockService.On("WatchBranches", mock.Anything).
		Return((<-chan []domain.Branch)(snapshots), nil).Once()

	srv, ws := suite.dialWatch()
	defer srv.Close()
	// Ending the subscription lets the handler return before the server shuts down.
	defer close(snapshots)
	defer ws.Close()

	// The first frame arrives right after connecting.
	var first dto.ListBranchesResponse
	suite.Require().NoError(ws.ReadJSON(&first))
	suite.Equal(1, first.Count)
	suite.Equal("Westside Hub", first.Branches[0].BranchName)

	// Each later snapshot replaces the previous one wholesale.
	harbor := sampleBranch()
	harbor.BranchName = "Harbor Point"
	snapshots <- []domain.Branch{*sampleBranch(), *harbor}

	var second dto.ListBranchesResponse
	suite.Require().NoError(ws.ReadJSON(&second))
	suite.Equal(2, second.Count)
	suite.Equal("Harbor Point", second.Branches[1].BranchName)

	suite.mockService.AssertExpectations(suite.T())
}

func (suite *BranchHandlerTestSuite) TestWatchBranches_ClientCloseCancelsSubscription() {
	snapshots := make(chan []domain.Branch, 1)
	snapshots <- []domain.Branch{}

	subscriptionCtx := make(chan context.Context, 1)
	suite.mockService.On("WatchBranches", mock.Anything).
		Run(func(args mock.Arguments) {
			subscriptionCtx <- args.Get(0).(context.Context)
		}).
		Return((<-chan []domain.Branch)(snapshots), nil).Once()

	srv, ws := suite.dialWatch()
	defer srv.Close()
	// Ending the subscription lets the handler return before the server shuts down.
	defer close(snapshots)

	var first dto.ListBranchesResponse
	suite.Require().NoError(ws.ReadJSON(&first))
	watchCtx := <-subscriptionCtx

	// Closing the socket must tear the subscription down so the store-side
	// listener is released.
	suite.Require().NoError(ws.Close())

	select {
	case <-watchCtx.Done():
	case <-time.After(2 * time.Second):
		suite.Fail("subscription context was not cancelled after the client closed")
	}
}

func (suite *BranchHandlerTestSuite) TestWatchBranches_ClosedSubscriptionEndsTheFeed() {
	snapshots := make(chan []domain.Branch, 1)
	snapshots <- []domain.Branch{*sampleBranch()}

	suite.mockService.On("WatchBranches", mock.Anything).
		Return((<-chan []domain.Branch)(snapshots), nil).Once()

	srv, ws := suite.dialWatch()
	defer srv.Close()
	defer ws.Close()

	var first dto.ListBranchesResponse
	suite.Require().NoError(ws.ReadJSON(&first))

	// The store ending the subscription closes the feed toward the client.
	close(snapshots)

	suite.Require().NoError(ws.SetReadDeadline(time.Now().Add(2 * time.Second)))
	suite.Error(ws.ReadJSON(&first))
}

func (suite *BranchHandlerTestSuite) TestWatchBranches_SubscriptionFailureReportedToClient() {
	suite.mockService.On("WatchBranches", mock.Anything).
		Return(nil, apperrors.NewAppError(500, "failed to listen for branch changes", nil)).Once()

	srv, ws := suite.dialWatch()
	defer srv.Close()
	defer ws.Close()

	var resp map[string]string
	suite.Require().NoError(ws.ReadJSON(&resp))
	suite.Equal("subscription failed", resp["error"])
}
