// Package pgtest starts throwaway PostgreSQL containers and builds fixtures for the
// repository integration suites.
package pgtest

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/transport"
	"marketplace/internal/core/domain/model/transporter"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Database is a running container and a GORM connection to it.
type Database struct {
	Container *postgres.PostgresContainer
	DB        *gorm.DB
}

// Start runs postgres:15-alpine, connects with duplicate-key translation enabled and
// applies migrate.
func Start(ctx context.Context, migrate func(*gorm.DB) error) (*Database, error) {
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, err
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	if err := migrate(db); err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	return &Database{Container: container, DB: db}, nil
}

// Truncate empties tables between tests.
func (d *Database) Truncate(tables ...string) error {
	for _, table := range tables {
		if err := d.DB.Exec("TRUNCATE TABLE " + table + " CASCADE").Error; err != nil {
			return err
		}
	}
	return nil
}

func (d *Database) Terminate(ctx context.Context) error {
	if d == nil || d.Container == nil {
		return nil
	}
	return d.Container.Terminate(ctx)
}

func Location(t *testing.T, lat, lng float64) kernel.Location {
	t.Helper()
	loc, err := kernel.NewLocation(lat, lng, "Dhaka", "Dhaka", "Gulshan", "1212", "Road 5, House 12")
	require.NoError(t, err)
	return loc
}

func Gulshan(t *testing.T) kernel.Location    { return Location(t, 23.7925, 90.4078) }
func Chattogram(t *testing.T) kernel.Location { return Location(t, 22.3569, 91.7832) }

func BDT(t *testing.T, amount int64) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoney(decimal.NewFromInt(amount), "BDT")
	require.NoError(t, err)
	return m
}

// OpenRequest builds an Open cash request from pickup to Chattogram scheduled for tomorrow.
func OpenRequest(t *testing.T, requesterID kernel.UUID, pickup kernel.Location) *transport.Request {
	t.Helper()
	r, err := transport.NewRequest(requesterID, pickup, Chattogram(t), transport.RequestDetails{
		ScheduledAt:   time.Now().Add(24 * time.Hour),
		GoodsType:     "Furniture",
		WeightKg:      350,
		PaymentMethod: transport.Cash,
	}, time.Now())
	require.NoError(t, err)
	return r
}

// Profile builds an individual transporter living at home with one vehicle and one driver.
func Profile(t *testing.T, userID kernel.UUID, home kernel.Location) *transporter.Profile {
	t.Helper()
	p, err := transporter.NewProfile(
		userID,
		transporter.Individual,
		transporter.Contact{Name: "Rahim Uddin", Phone: "+8801711000000", Email: "rahim@example.com"},
		"",
		home,
		0,
		time.Now(),
	)
	require.NoError(t, err)

	nextYear := time.Now().AddDate(1, 0, 0)
	v, err := transporter.NewVehicle("dhaka metro-ta 11-2233", "Covered Van", 3000, nextYear, time.Now())
	require.NoError(t, err)
	require.NoError(t, p.AddVehicle(v))

	d, err := transporter.NewDriver("Karim Mia", "+8801811000000", "DK-0042", nextYear, time.Now())
	require.NoError(t, err)
	require.NoError(t, p.AddDriver(d))

	return p
}
