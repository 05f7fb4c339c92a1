package commands_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/transport"
	"marketplace/internal/core/domain/model/transporter"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldsOf(t *testing.T, err error) []string {
	t.Helper()
	var validation *errs.ValidationError
	require.True(t, errors.As(err, &validation), "expected a validation error, got %v", err)
	return validation.Fields()
}

func TestCommandConstructors_RequireCaller(t *testing.T) {
	var nobody kernel.UUID
	id := kernel.NewUUID()
	tomorrow := time.Now().Add(24 * time.Hour)

	constructors := map[string]func() error{
		"CreateRequest": func() error {
			_, err := commands.NewCreateRequestCommand(nobody, dhaka(), chattogram(), tomorrow, "Furniture", 350, "cash")
			return err
		},
		"SubmitBid": func() error {
			_, err := commands.NewSubmitBidCommand(nobody, id, decimal.NewFromInt(100), "BDT", "")
			return err
		},
		"WithdrawBid": func() error {
			_, err := commands.NewWithdrawBidCommand(nobody, id, id)
			return err
		},
		"AcceptBid": func() error {
			_, err := commands.NewAcceptBidCommand(nobody, id)
			return err
		},
		"StartTransit": func() error {
			_, err := commands.NewStartTransitCommand(nobody, id)
			return err
		},
		"UpdateLocation": func() error {
			_, err := commands.NewUpdateLocationCommand(nobody, id, 23.7, 90.4)
			return err
		},
		"CompleteDelivery": func() error {
			_, err := commands.NewCompleteDeliveryCommand(nobody, id, true)
			return err
		},
		"CancelRequest": func() error {
			_, err := commands.NewCancelRequestCommand(nobody, id)
			return err
		},
		"AssignJob": func() error {
			_, err := commands.NewAssignJobCommand(nobody, id, id, id)
			return err
		},
		"RateJob": func() error {
			_, err := commands.NewRateJobCommand(nobody, id, 5)
			return err
		},
		"RegisterTransporter": func() error {
			_, err := commands.NewRegisterTransporterCommand(nobody, "individual",
				transporter.Contact{Name: "Rahim", Phone: "+880"}, "", dhaka(), 0)
			return err
		},
		"VerifyTransporter": func() error {
			_, err := commands.NewVerifyTransporterCommand(nobody, commands.RoleAdmin, id)
			return err
		},
		"AddVehicle": func() error {
			_, err := commands.NewAddVehicleCommand(nobody, "DM-1", "Truck", 1000, tomorrow)
			return err
		},
		"AddDriver": func() error {
			_, err := commands.NewAddDriverCommand(nobody, "Karim", "+880", "DK-1", tomorrow)
			return err
		},
		"RemoveVehicle": func() error {
			_, err := commands.NewRemoveVehicleCommand(nobody, id)
			return err
		},
		"RemoveDriver": func() error {
			_, err := commands.NewRemoveDriverCommand(nobody, id)
			return err
		},
	}

	for name, construct := range constructors {
		t.Run(name, func(t *testing.T) {
			err := construct()
			require.ErrorIs(t, err, errs.ErrUnauthenticated)
		})
	}
}

func TestNewCreateRequestCommand(t *testing.T) {
	callerID := kernel.NewUUID()
	tomorrow := time.Now().Add(24 * time.Hour)

	t.Run("valid input", func(t *testing.T) {
		cmd, err := commands.NewCreateRequestCommand(callerID, dhaka(), chattogram(), tomorrow, "Furniture", 350, "Cash")

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Equal(t, callerID, cmd.CallerID())
		assert.InDelta(t, 23.8103, cmd.Pickup().Latitude(), 1e-9)
		assert.Equal(t, "Chattogram", cmd.Drop().Address().Division())
		assert.Equal(t, transport.Cash, cmd.Details().PaymentMethod)
		assert.Equal(t, "Furniture", cmd.Details().GoodsType)
	})

	t.Run("reports every invalid field with its path", func(t *testing.T) {
		pickup := dhaka()
		pickup.Latitude = 91
		drop := chattogram()
		drop.Thana = ""

		_, err := commands.NewCreateRequestCommand(callerID, pickup, drop, time.Time{}, "Furniture", 350, "cheque")

		require.ErrorIs(t, err, errs.ErrValidation)
		assert.ElementsMatch(t,
			[]string{"pickup.latitude", "drop.thana", "scheduledAt", "paymentMethod"},
			fieldsOf(t, err))
	})

	t.Run("past schedule reported with the other bad values", func(t *testing.T) {
		_, err := commands.NewCreateRequestCommand(callerID, dhaka(), chattogram(),
			time.Now().Add(-time.Hour), "Furniture", 0, "bitcoin")

		require.ErrorIs(t, err, errs.ErrValidation)
		assert.Equal(t, []string{"scheduledAt", "weightKg", "paymentMethod"}, fieldsOf(t, err))
	})

	t.Run("goods type longer than allowed", func(t *testing.T) {
		_, err := commands.NewCreateRequestCommand(callerID, dhaka(), chattogram(), tomorrow,
			strings.Repeat("ক", transport.MaxGoodsTypeLength+1), 350, "cash")

		require.ErrorIs(t, err, errs.ErrValidation)
		assert.Equal(t, []string{"goodsType"}, fieldsOf(t, err))
	})

	t.Run("not constructed", func(t *testing.T) {
		var cmd commands.CreateRequestCommand
		require.ErrorIs(t, cmd.Validate(), commands.ErrCreateRequestCommandIsNotConstructed)
	})
}

func TestNewSubmitBidCommand(t *testing.T) {
	callerID := kernel.NewUUID()
	requestID := kernel.NewUUID()

	t.Run("valid input", func(t *testing.T) {
		cmd, err := commands.NewSubmitBidCommand(callerID, requestID, decimal.RequireFromString("12500.50"), "bdt", "two trips")

		require.NoError(t, err)
		assert.Equal(t, requestID, cmd.RequestID())
		assert.Equal(t, "BDT", cmd.Amount().Currency())
		assert.True(t, decimal.RequireFromString("12500.50").Equal(cmd.Amount().Amount()))
		assert.Equal(t, "two trips", cmd.Note())
	})

	t.Run("zero amount", func(t *testing.T) {
		_, err := commands.NewSubmitBidCommand(callerID, requestID, decimal.Zero, "BDT", "")

		require.ErrorIs(t, err, errs.ErrValidation)
		assert.Equal(t, []string{"amount"}, fieldsOf(t, err))
	})

	t.Run("amount finer than minor units", func(t *testing.T) {
		_, err := commands.NewSubmitBidCommand(callerID, requestID, decimal.RequireFromString("800.125"), "BDT", "")

		require.ErrorIs(t, err, errs.ErrValidation)
		assert.Equal(t, []string{"amount"}, fieldsOf(t, err))
	})

	t.Run("missing request", func(t *testing.T) {
		_, err := commands.NewSubmitBidCommand(callerID, kernel.UUID{}, decimal.NewFromInt(10), "BDT", "")

		require.ErrorIs(t, err, errs.ErrValidation)
		assert.Contains(t, fieldsOf(t, err), "requestId")
	})
}

func TestNewUpdateLocationCommand(t *testing.T) {
	callerID := kernel.NewUUID()
	requestID := kernel.NewUUID()

	cmd, err := commands.NewUpdateLocationCommand(callerID, requestID, 23.75, 90.39)
	require.NoError(t, err)
	assert.InDelta(t, 23.75, cmd.Position().Latitude(), 1e-9)
	assert.InDelta(t, 90.39, cmd.Position().Longitude(), 1e-9)

	_, err = commands.NewUpdateLocationCommand(callerID, requestID, -91, 181)
	require.ErrorIs(t, err, errs.ErrValidation)
	assert.ElementsMatch(t, []string{"position.latitude", "position.longitude"}, fieldsOf(t, err))
}

func TestNewAssignJobCommand_RequiresEveryID(t *testing.T) {
	_, err := commands.NewAssignJobCommand(kernel.NewUUID(), kernel.UUID{}, kernel.UUID{}, kernel.UUID{})

	require.ErrorIs(t, err, errs.ErrValidation)
	assert.Equal(t, []string{"requestId", "vehicleId", "driverId"}, fieldsOf(t, err))
}

func TestNewRegisterTransporterCommand(t *testing.T) {
	callerID := kernel.NewUUID()
	contact := transporter.Contact{Name: "Rahim Uddin", Phone: "+8801711000000"}

	t.Run("valid input", func(t *testing.T) {
		cmd, err := commands.NewRegisterTransporterCommand(callerID, "Agency", contact, "TL-7781", dhaka(), 80)

		require.NoError(t, err)
		assert.Equal(t, transporter.Agency, cmd.Type())
		assert.Equal(t, "TL-7781", cmd.TradeLicense())
		assert.InDelta(t, 80.0, cmd.ServiceRadiusKm(), 1e-9)
		assert.Equal(t, "Gulshan", cmd.Home().Address().Thana())
	})

	t.Run("unknown type and bad home", func(t *testing.T) {
		home := dhaka()
		home.Longitude = 200

		_, err := commands.NewRegisterTransporterCommand(callerID, "fleet", contact, "", home, 0)

		require.ErrorIs(t, err, errs.ErrValidation)
		assert.ElementsMatch(t, []string{"type", "home.longitude"}, fieldsOf(t, err))
	})
}

func TestNewVerifyTransporterCommand_AdminOnly(t *testing.T) {
	_, err := commands.NewVerifyTransporterCommand(kernel.NewUUID(), "transporter", kernel.NewUUID())
	require.ErrorIs(t, err, errs.ErrUnauthorized)

	cmd, err := commands.NewVerifyTransporterCommand(kernel.NewUUID(), commands.RoleAdmin, kernel.NewUUID())
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
}

func TestNewAddVehicleCommand_MissingFields(t *testing.T) {
	_, err := commands.NewAddVehicleCommand(kernel.NewUUID(), " ", "", 1000, time.Time{})

	require.ErrorIs(t, err, errs.ErrValidation)
	assert.Equal(t, []string{"registrationNumber", "vehicleType", "fitnessExpiry"}, fieldsOf(t, err))
}

func TestNewAddDriverCommand_MissingFields(t *testing.T) {
	_, err := commands.NewAddDriverCommand(kernel.NewUUID(), "", "", "", time.Time{})

	require.ErrorIs(t, err, errs.ErrValidation)
	assert.Equal(t, []string{"name", "phone", "licenceNumber", "licenceExpiry"}, fieldsOf(t, err))
}

func TestNewRelayOutboxCommand(t *testing.T) {
	cmd, err := commands.NewRelayOutboxCommand(0)
	require.NoError(t, err)
	assert.Equal(t, commands.DefaultOutboxBatchSize, cmd.BatchSize())

	cmd, err = commands.NewRelayOutboxCommand(25)
	require.NoError(t, err)
	assert.Equal(t, 25, cmd.BatchSize())

	_, err = commands.NewRelayOutboxCommand(-1)
	require.ErrorIs(t, err, errs.ErrValidation)
}
