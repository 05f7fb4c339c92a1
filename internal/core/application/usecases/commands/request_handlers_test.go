package commands_test

import (
	"errors"
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/transport"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateRequestCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	callerID := kernel.NewUUID()
	cmd, err := commands.NewCreateRequestCommand(callerID, dhaka(), chattogram(),
		time.Now().Add(48*time.Hour), "Electronics", 120, "online")
	require.NoError(t, err)

	t.Run("stores the request", func(t *testing.T) {
		requests := new(MockRequestRepository)
		uow := uowWith(requests, nil, nil, nil)
		factory := new(MockRequestUoWFactory)

		var stored *transport.Request
		mock.InOrder(
			factory.On("Create").Return(uow).Once(),
			uow.On("Begin", ctx).Return(nil).Once(),
			requests.On("Add", ctx, mock.AnythingOfType("*transport.Request")).
				Run(func(args mock.Arguments) { stored = args.Get(1).(*transport.Request) }).
				Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		id, err := commands.NewCreateRequestCommandHandler(factory).Handle(ctx, cmd)

		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, stored.ID(), id)
		assert.Equal(t, transport.Open, stored.Status())
		assert.Equal(t, callerID, stored.RequesterID())
		require.Len(t, stored.Events(), 1)
		uow.AssertExpectations(t)
		requests.AssertExpectations(t)
	})

	t.Run("add error", func(t *testing.T) {
		requests := new(MockRequestRepository)
		uow := uowWith(requests, nil, nil, nil)
		factory := new(MockRequestUoWFactory)

		mock.InOrder(
			factory.On("Create").Return(uow).Once(),
			uow.On("Begin", ctx).Return(nil).Once(),
			requests.On("Add", ctx, mock.Anything).Return(errors.New("database error")).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		_, err := commands.NewCreateRequestCommandHandler(factory).Handle(ctx, cmd)

		require.EqualError(t, err, "database error")
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("not constructed", func(t *testing.T) {
		factory := new(MockRequestUoWFactory)

		_, err := commands.NewCreateRequestCommandHandler(factory).Handle(ctx, commands.CreateRequestCommand{})

		require.ErrorIs(t, err, commands.ErrCreateRequestCommandIsNotConstructed)
		factory.AssertNotCalled(t, "Create")
	})
}

func TestSubmitBidCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	requesterID := kernel.NewUUID()
	transporterUser := kernel.NewUUID()

	t.Run("first bid moves the request to bidding", func(t *testing.T) {
		profile := newProfile(t, transporterUser)
		request := openRequest(t, requesterID, transport.Cash)
		cmd, err := commands.NewSubmitBidCommand(transporterUser, request.ID(), decimal.NewFromInt(9500), "BDT", "")
		require.NoError(t, err)

		requests := new(MockRequestRepository)
		transporters := new(MockTransporterRepository)
		uow := uowWith(requests, transporters, nil, nil)
		factory := new(MockUoWFactory)

		mock.InOrder(
			factory.On("Create").Return(uow).Once(),
			uow.On("Begin", ctx).Return(nil).Once(),
			transporters.On("GetByUserID", ctx, transporterUser).Return(profile, nil).Once(),
			requests.On("Get", ctx, request.ID()).Return(request, nil).Once(),
			requests.On("Update", ctx, request).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		bidID, err := commands.NewSubmitBidCommandHandler(factory, fastRetrier(), "BDT").Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, transport.Bidding, request.Status())
		bid, ok := request.Bid(bidID)
		require.True(t, ok)
		assert.Equal(t, profile.ID(), bid.TransporterID())
		assert.Equal(t, transport.BidPending, bid.Status())
		uow.AssertExpectations(t)
	})

	t.Run("bid in another currency", func(t *testing.T) {
		cmd, err := commands.NewSubmitBidCommand(transporterUser, kernel.NewUUID(), decimal.NewFromInt(10), "usd", "")
		require.NoError(t, err)
		factory := new(MockUoWFactory)

		_, err = commands.NewSubmitBidCommandHandler(factory, fastRetrier(), "bdt").Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrValidation)
		assert.Equal(t, []string{"currency"}, fieldsOf(t, err))
		factory.AssertNotCalled(t, "Create")
	})

	t.Run("caller without a transporter profile", func(t *testing.T) {
		cmd, err := commands.NewSubmitBidCommand(transporterUser, kernel.NewUUID(), decimal.NewFromInt(9500), "BDT", "")
		require.NoError(t, err)

		transporters := new(MockTransporterRepository)
		uow := uowWith(new(MockRequestRepository), transporters, nil, nil)
		factory := new(MockUoWFactory)

		mock.InOrder(
			factory.On("Create").Return(uow).Once(),
			uow.On("Begin", ctx).Return(nil).Once(),
			transporters.On("GetByUserID", ctx, transporterUser).
				Return(nil, errs.NewObjectNotFoundError("userId", transporterUser)).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		_, err = commands.NewSubmitBidCommandHandler(factory, fastRetrier(), "BDT").Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrUnauthorized)
	})

	t.Run("requester bidding on their own request", func(t *testing.T) {
		profile := newProfile(t, requesterID)
		request := openRequest(t, requesterID, transport.Cash)
		cmd, err := commands.NewSubmitBidCommand(requesterID, request.ID(), decimal.NewFromInt(9500), "BDT", "")
		require.NoError(t, err)

		requests := new(MockRequestRepository)
		transporters := new(MockTransporterRepository)
		uow := uowWith(requests, transporters, nil, nil)
		factory := new(MockUoWFactory)

		mock.InOrder(
			factory.On("Create").Return(uow).Once(),
			uow.On("Begin", ctx).Return(nil).Once(),
			transporters.On("GetByUserID", ctx, requesterID).Return(profile, nil).Once(),
			requests.On("Get", ctx, request.ID()).Return(request, nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		_, err = commands.NewSubmitBidCommandHandler(factory, fastRetrier(), "BDT").Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrUnauthorized)
		assert.Empty(t, request.Bids())
	})

	t.Run("conflict retried against a request accepted meanwhile", func(t *testing.T) {
		profile := newProfile(t, transporterUser)
		rival := newProfile(t, kernel.NewUUID())
		stale, _ := biddingRequest(t, requesterID, rival)
		confirmed := confirmedRequest(t, requesterID, rival)
		cmd, err := commands.NewSubmitBidCommand(transporterUser, stale.ID(), decimal.NewFromInt(9000), "BDT", "")
		require.NoError(t, err)

		firstRequests, secondRequests := new(MockRequestRepository), new(MockRequestRepository)
		transporters := new(MockTransporterRepository)
		first := uowWith(firstRequests, transporters, nil, nil)
		second := uowWith(secondRequests, transporters, nil, nil)
		factory := new(MockUoWFactory)

		transporters.On("GetByUserID", ctx, transporterUser).Return(profile, nil).Twice()
		mock.InOrder(
			factory.On("Create").Return(first).Once(),
			first.On("Begin", ctx).Return(nil).Once(),
			firstRequests.On("Get", ctx, stale.ID()).Return(stale, nil).Once(),
			firstRequests.On("Update", ctx, stale).Return(errs.ErrConflict).Once(),
			first.On("Rollback", ctx).Return(nil).Once(),
			factory.On("Create").Return(second).Once(),
			second.On("Begin", ctx).Return(nil).Once(),
			secondRequests.On("Get", ctx, stale.ID()).Return(confirmed, nil).Once(),
			second.On("Rollback", ctx).Return(nil).Once(),
		)

		_, err = commands.NewSubmitBidCommandHandler(factory, fastRetrier(), "BDT").Handle(ctx, cmd)

		require.ErrorIs(t, err, transport.ErrRequestNotAcceptingBids)
		assert.Nil(t, confirmed.ActiveBidOf(profile.ID()))
		factory.AssertExpectations(t)
		second.AssertNotCalled(t, "Commit", mock.Anything)
	})
}

func TestWithdrawBidCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	requesterID := kernel.NewUUID()
	transporterUser := kernel.NewUUID()
	profile := newProfile(t, transporterUser)
	request, bid := biddingRequest(t, requesterID, profile)

	cmd, err := commands.NewWithdrawBidCommand(transporterUser, request.ID(), bid.ID())
	require.NoError(t, err)

	requests := new(MockRequestRepository)
	transporters := new(MockTransporterRepository)
	uow := uowWith(requests, transporters, nil, nil)
	factory := new(MockUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		transporters.On("GetByUserID", ctx, transporterUser).Return(profile, nil).Once(),
		requests.On("Get", ctx, request.ID()).Return(request, nil).Once(),
		requests.On("Update", ctx, request).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	err = commands.NewWithdrawBidCommandHandler(factory, fastRetrier()).Handle(ctx, cmd)

	require.NoError(t, err)
	withdrawn, ok := request.Bid(bid.ID())
	require.True(t, ok)
	assert.Equal(t, transport.BidWithdrawn, withdrawn.Status())
	assert.Nil(t, request.ActiveBidOf(profile.ID()))
	uow.AssertExpectations(t)
}

func TestAcceptBidCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	requesterID := kernel.NewUUID()

	t.Run("confirms the request", func(t *testing.T) {
		winner := newProfile(t, kernel.NewUUID())
		request, bid := biddingRequest(t, requesterID, winner)
		cmd, err := commands.NewAcceptBidCommand(requesterID, bid.ID())
		require.NoError(t, err)

		requests := new(MockRequestRepository)
		uow := uowWith(requests, nil, nil, nil)
		factory := new(MockRequestUoWFactory)

		mock.InOrder(
			factory.On("Create").Return(uow).Once(),
			uow.On("Begin", ctx).Return(nil).Once(),
			requests.On("GetByBidID", ctx, bid.ID()).Return(request, nil).Once(),
			requests.On("Update", ctx, request).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		err = commands.NewAcceptBidCommandHandler(factory, fastRetrier()).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, transport.Confirmed, request.Status())
		require.NotNil(t, request.WinnerBidID())
		assert.Equal(t, bid.ID(), *request.WinnerBidID())
		uow.AssertExpectations(t)
	})

	t.Run("only the requester may accept", func(t *testing.T) {
		winner := newProfile(t, kernel.NewUUID())
		request, bid := biddingRequest(t, requesterID, winner)
		cmd, err := commands.NewAcceptBidCommand(winner.UserID(), bid.ID())
		require.NoError(t, err)

		requests := new(MockRequestRepository)
		uow := uowWith(requests, nil, nil, nil)
		factory := new(MockRequestUoWFactory)

		mock.InOrder(
			factory.On("Create").Return(uow).Once(),
			uow.On("Begin", ctx).Return(nil).Once(),
			requests.On("GetByBidID", ctx, bid.ID()).Return(request, nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		err = commands.NewAcceptBidCommandHandler(factory, fastRetrier()).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrUnauthorized)
		assert.Equal(t, transport.Bidding, request.Status())
	})

	t.Run("racing loser sees the committed winner", func(t *testing.T) {
		first := newProfile(t, kernel.NewUUID())
		second := newProfile(t, kernel.NewUUID())

		stale, _ := biddingRequest(t, requesterID, first)
		secondBid, err := stale.SubmitBid(second.ID(), bdt(t, 11000), "", time.Now())
		require.NoError(t, err)

		committed := confirmedRequest(t, requesterID, first)
		cmd, err := commands.NewAcceptBidCommand(requesterID, secondBid.ID())
		require.NoError(t, err)

		attempt1, attempt2 := new(MockRequestRepository), new(MockRequestRepository)
		uow1, uow2 := uowWith(attempt1, nil, nil, nil), uowWith(attempt2, nil, nil, nil)
		factory := new(MockRequestUoWFactory)

		mock.InOrder(
			factory.On("Create").Return(uow1).Once(),
			uow1.On("Begin", ctx).Return(nil).Once(),
			attempt1.On("GetByBidID", ctx, secondBid.ID()).Return(stale, nil).Once(),
			attempt1.On("Update", ctx, stale).Return(errs.ErrConflict).Once(),
			uow1.On("Rollback", ctx).Return(nil).Once(),
			factory.On("Create").Return(uow2).Once(),
			uow2.On("Begin", ctx).Return(nil).Once(),
			attempt2.On("GetByBidID", ctx, secondBid.ID()).Return(committed, nil).Once(),
			uow2.On("Rollback", ctx).Return(nil).Once(),
		)

		err = commands.NewAcceptBidCommandHandler(factory, fastRetrier()).Handle(ctx, cmd)

		require.ErrorIs(t, err, transport.ErrRequestNotAcceptingBids)
		require.NotNil(t, committed.WinnerBidID())
		assert.NotEqual(t, secondBid.ID(), *committed.WinnerBidID())
		factory.AssertExpectations(t)
	})

	t.Run("persistent conflicts give up after three attempts", func(t *testing.T) {
		requestID, bidID := kernel.NewUUID(), kernel.NewUUID()
		transporterID := kernel.NewUUID()
		factory := new(MockRequestUoWFactory)

		for range 3 {
			request := storedBiddingRequest(t, requestID, requesterID, bidID, transporterID)
			requests := new(MockRequestRepository)
			uow := uowWith(requests, nil, nil, nil)
			uow.On("Begin", ctx).Return(nil).Once()
			uow.On("Rollback", ctx).Return(nil).Once()
			requests.On("GetByBidID", ctx, bidID).Return(request, nil).Once()
			requests.On("Update", ctx, request).Return(errs.ErrConflict).Once()
			factory.On("Create").Return(uow).Once()
		}

		cmd, err := commands.NewAcceptBidCommand(requesterID, bidID)
		require.NoError(t, err)

		err = commands.NewAcceptBidCommandHandler(factory, fastRetrier()).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Contains(t, err.Error(), "gave up after 3 attempts")
		factory.AssertNumberOfCalls(t, "Create", 3)
	})
}
