package listings

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"freight-exchange/internal/events"
	"freight-exchange/internal/exchangeerrors"
	model "freight-exchange/internal/models"
	"freight-exchange/internal/realtime"
	"freight-exchange/internal/repository"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var (
	t0      = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)
	shipper = model.Caller{Identity: "s", Role: model.RoleShipper, SessionID: "s-tab1"}
	carrier = model.Caller{Identity: "c", Role: model.RoleCarrier, SessionID: "c-tab1"}
)

func validInput() Input {
	return Input{
		Freight: model.Freight{
			Origin:      "Cluj-Napoca",
			Destination: "Bucharest",
			Distance:    450,
			Pallet:      model.Pallet{Type: "europallet", Number: 10},
			Size:        model.Size{Tonnage: 12},
			Truck:       model.Truck{Regime: "FTL", Types: []string{"prelata"}},
		},
		Validity: model.Validity3Days,
	}
}

func newTestService(t *testing.T) (*Service, *repository.MemoryRepo, *realtime.MockBroadcaster) {
	ctrl := gomock.NewController(t)
	repo := repository.NewMemoryRepo()
	fanout := realtime.NewMockBroadcaster(ctrl)
	svc := NewService(repo, fanout, events.NopRecorder{})
	clock := t0
	svc.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return svc, repo, fanout
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(in *Input)
		wantErr bool
	}{
		{name: "valid", mutate: func(in *Input) {}},
		{name: "no_pallet", mutate: func(in *Input) { in.Freight.Pallet = model.Pallet{} }},
		{name: "short_origin", mutate: func(in *Input) { in.Freight.Origin = "ab" }, wantErr: true},
		{name: "blank_destination", mutate: func(in *Input) { in.Freight.Destination = "    " }, wantErr: true},
		{name: "long_details", mutate: func(in *Input) { in.Freight.Details = strings.Repeat("x", 597) }, wantErr: true},
		{name: "pallet_type_without_number", mutate: func(in *Input) { in.Freight.Pallet.Number = 0 }, wantErr: true},
		{name: "pallet_number_without_type", mutate: func(in *Input) { in.Freight.Pallet.Type = "" }, wantErr: true},
		{name: "unknown_pallet_type", mutate: func(in *Input) { in.Freight.Pallet.Type = "crate" }, wantErr: true},
		{name: "missing_tonnage", mutate: func(in *Input) { in.Freight.Size.Tonnage = 0 }, wantErr: true},
		{name: "bad_regime", mutate: func(in *Input) { in.Freight.Truck.Regime = "XL" }, wantErr: true},
		{name: "too_many_truck_types", mutate: func(in *Input) { in.Freight.Truck.Types = []string{"a", "b", "c", "d"} }, wantErr: true},
		{name: "negative_budget", mutate: func(in *Input) { b := decimal.NewFromInt(-1); in.Budget = &b }, wantErr: true},
		{name: "budget_at_max", mutate: func(in *Input) { b := decimal.NewFromInt(1_000_000); in.Budget = &b }},
		{name: "unknown_validity", mutate: func(in *Input) { in.Validity = "2days" }, wantErr: true},
		{name: "payment_deadline", mutate: func(in *Input) { in.Freight.PaymentDeadline = "60days" }},
		{name: "unknown_payment_deadline", mutate: func(in *Input) { in.Freight.PaymentDeadline = "45days" }, wantErr: true},
		{name: "distance_out_of_range", mutate: func(in *Input) { in.Freight.Distance = 40000 }, wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			in := validInput()
			tc.mutate(&in)
			err := Validate(in)
			if tc.wantErr {
				require.ErrorIs(t, err, exchangeerrors.ErrInvalidListing)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestService_Create(t *testing.T) {
	t.Parallel()

	svc, repo, fanout := newTestService(t)

	var announced realtime.Envelope
	fanout.EXPECT().BroadcastExcept("s", "s-tab1", gomock.Any()).Do(func(_, _ string, msg realtime.Envelope) { announced = msg })

	in := validInput()
	in.Freight.Origin = "  Cluj-Napoca "
	listing, err := svc.Create(context.Background(), shipper, in)
	require.NoError(t, err)
	require.Equal(t, "s", listing.OwnerID)
	require.Equal(t, "Cluj-Napoca", listing.Freight.Origin)
	require.Equal(t, realtime.NewListingCreated(listing), announced)

	stored, err := repo.GetListing(context.Background(), listing.ListingID)
	require.NoError(t, err)
	require.Equal(t, listing.Freight, stored.Freight)
}

func TestService_Create_Rejected(t *testing.T) {
	t.Parallel()

	forwarder := model.Caller{Identity: "f", Role: model.RoleForwarder}
	bad := validInput()
	bad.Freight.Truck.Regime = ""

	tests := []struct {
		name    string
		caller  model.Caller
		in      Input
		wantErr error
	}{
		{name: "carrier_cannot_post", caller: carrier, in: validInput(), wantErr: exchangeerrors.ErrForbidden},
		{name: "missing_identity", caller: model.Caller{Role: model.RoleShipper}, in: validInput(), wantErr: exchangeerrors.ErrMissingIdentity},
		{name: "invalid_input", caller: forwarder, in: bad, wantErr: exchangeerrors.ErrInvalidListing},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc, _, _ := newTestService(t)
			_, err := svc.Create(context.Background(), tc.caller, tc.in)
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestService_ListPages(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _, fanout := newTestService(t)
	fanout.EXPECT().BroadcastExcept(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()

	var ids []string
	for i := 0; i < 20; i++ {
		in := validInput()
		in.Freight.Destination = fmt.Sprintf("Town %02d", i)
		if i%4 == 0 {
			in.Freight.Truck.Regime = "LTL"
		}
		l, err := svc.Create(ctx, shipper, in)
		require.NoError(t, err)
		ids = append([]string{l.ListingID}, ids...)
	}

	first, err := svc.List(ctx, Filter{})
	require.NoError(t, err)
	require.Equal(t, 1, first.Page)
	require.Equal(t, 3, first.PagesToShow)
	require.Equal(t, 20, first.Total)
	require.Len(t, first.Listings, PageSize)
	require.Equal(t, ids[0], first.Listings[0].ListingID)

	last, err := svc.List(ctx, Filter{Page: 3})
	require.NoError(t, err)
	require.Len(t, last.Listings, 2)
	require.Equal(t, ids[19], last.Listings[1].ListingID)

	ltl, err := svc.List(ctx, Filter{Regime: "LTL"})
	require.NoError(t, err)
	require.Equal(t, 5, ltl.Total)
	require.Equal(t, 1, ltl.PagesToShow)

	_, err = svc.List(ctx, Filter{Regime: "XL"})
	require.ErrorIs(t, err, exchangeerrors.ErrInvalidListing)
	_, err = svc.List(ctx, Filter{MinTonnage: 10, MaxTonnage: 5})
	require.ErrorIs(t, err, exchangeerrors.ErrInvalidListing)

	found, err := svc.Search(ctx, "town")
	require.NoError(t, err)
	require.Len(t, found, SearchLimit)

	_, err = svc.Search(ctx, "  ")
	require.ErrorIs(t, err, exchangeerrors.ErrInvalidListing)
}

func TestService_Delete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, repo, fanout := newTestService(t)
	repo.AddListing(model.Listing{ListingID: "l1", OwnerID: "s", Validity: model.Validity1Day, CreatedAt: t0})
	_, err := repo.UpsertBid(ctx, model.Bid{BidID: "b1", ListingID: "l1", BidderID: "c", Price: decimal.NewFromInt(5), Validity: model.Validity1Day, CreatedAt: t0})
	require.NoError(t, err)

	// a rejected delete stays silent
	require.ErrorIs(t, svc.Delete(ctx, carrier, "l1"), exchangeerrors.ErrForbidden)

	fanout.EXPECT().BroadcastExcept("s", "s-tab1", realtime.NewListingRemoved("l1", ""))
	require.NoError(t, svc.Delete(ctx, shipper, "l1"))

	_, err = repo.GetBid(ctx, "b1")
	require.ErrorIs(t, err, exchangeerrors.ErrBidNotFound)
	require.ErrorIs(t, svc.Delete(ctx, shipper, "l1"), exchangeerrors.ErrListingNotFound)
}

func TestService_Like(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, repo, fanout := newTestService(t)
	repo.AddListing(model.Listing{ListingID: "l1", OwnerID: "s", Validity: model.Validity1Day, CreatedAt: t0})

	fanout.EXPECT().BroadcastExcept("c", "c-tab1", realtime.NewLikeUpdate("l1", true))
	require.NoError(t, svc.Like(ctx, carrier, "l1", true))

	got, err := svc.Get(ctx, "l1")
	require.NoError(t, err)
	require.True(t, got.IsLiked)

	require.ErrorIs(t, svc.Like(ctx, carrier, "missing", true), exchangeerrors.ErrListingNotFound)
}
