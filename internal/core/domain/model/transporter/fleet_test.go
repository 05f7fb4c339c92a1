package transporter_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/transporter"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)

func TestNewDriver(t *testing.T) {
	t.Run("should create active driver", func(t *testing.T) {
		d, err := transporter.NewDriver(" Rahim ", "01711000000", "DK-0042", now.AddDate(1, 0, 0), now)

		require.NoError(t, err)
		require.NoError(t, d.Validate())
		assert.False(t, d.ID().IsZero())
		assert.Equal(t, "Rahim", d.Name())
		assert.Equal(t, transporter.DriverActive, d.Status())
		assert.NoError(t, d.CanDriveAt(now))
	})

	t.Run("should reject expired licence", func(t *testing.T) {
		d, err := transporter.NewDriver("Rahim", "01711000000", "DK-0042", now, now)

		require.Error(t, err)
		assert.Nil(t, d)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), transporter.ErrLicenceExpired.Error())
	})

	t.Run("should aggregate missing fields", func(t *testing.T) {
		d, err := transporter.NewDriver("", " ", "", time.Time{}, now)

		require.Error(t, err)
		assert.Nil(t, d)
		for _, field := range []string{"name", "phone", "licenceNumber", "licenceExpiry"} {
			assert.Contains(t, err.Error(), field)
		}
	})
}

func TestDriver_CanDriveAt(t *testing.T) {
	expiry := now.AddDate(0, 1, 0)

	testCases := []struct {
		name   string
		status transporter.DriverStatus
		at     time.Time
		want   error
	}{
		{"active and valid", transporter.DriverActive, now, nil},
		{"licence expires before job", transporter.DriverActive, expiry.Add(time.Minute), transporter.ErrLicenceExpired},
		{"licence expires at the instant", transporter.DriverActive, expiry, transporter.ErrLicenceExpired},
		{"suspended", transporter.DriverSuspended, now, transporter.ErrNotActive},
		{"inactive", transporter.DriverInactive, now, transporter.ErrNotActive},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := transporter.RestoreDriver(kernel.NewUUID(), "Rahim", "017", "DK-1", expiry, tc.status)
			require.NoError(t, err)

			got := d.CanDriveAt(tc.at)
			if tc.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tc.want)
		})
	}
}

func TestRestoreDriver_InvalidStatus(t *testing.T) {
	d, err := transporter.RestoreDriver(kernel.NewUUID(), "Rahim", "017", "DK-1", now, transporter.DriverUnknown)

	require.Error(t, err)
	assert.Nil(t, d)
	assert.Contains(t, err.Error(), "driverStatus")
}

func TestNewVehicle(t *testing.T) {
	t.Run("should normalize registration number", func(t *testing.T) {
		v, err := transporter.NewVehicle("dhaka metro-ta 11-2233", "Covered Van", 3000, now.AddDate(0, 6, 0), now)

		require.NoError(t, err)
		assert.Equal(t, "DHAKA METRO-TA 11-2233", v.RegistrationNumber())
		assert.Equal(t, "Covered Van", v.VehicleType())
		assert.InDelta(t, 3000.0, v.CapacityKg(), 1e-9)
		assert.Equal(t, transporter.VehicleActive, v.Status())
	})

	t.Run("should reject expired fitness certificate", func(t *testing.T) {
		v, err := transporter.NewVehicle("DM-1", "Pickup", 1000, now.Add(-time.Hour), now)

		require.Error(t, err)
		assert.Nil(t, v)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "fitnessExpiry")
	})

	t.Run("should reject non-positive capacity", func(t *testing.T) {
		for _, capacity := range []float64{0, -10} {
			v, err := transporter.NewVehicle("DM-1", "Pickup", capacity, now.AddDate(1, 0, 0), now)

			require.Error(t, err)
			assert.Nil(t, v)
			assert.Contains(t, err.Error(), "capacityKg")
		}
	})
}

func TestVehicle_CanOperateAt(t *testing.T) {
	v, err := transporter.NewVehicle("DM-1", "Pickup", 1000, now.AddDate(0, 1, 0), now)
	require.NoError(t, err)

	require.NoError(t, v.CanOperateAt(now))
	assert.ErrorIs(t, v.CanOperateAt(now.AddDate(0, 2, 0)), transporter.ErrFitnessExpired)

	require.NoError(t, v.ChangeStatus(transporter.VehicleMaintenance))
	assert.ErrorIs(t, v.CanOperateAt(now), transporter.ErrNotActive)

	require.Error(t, v.ChangeStatus(transporter.VehicleUnknown))
	assert.Equal(t, transporter.VehicleMaintenance, v.Status())
}
