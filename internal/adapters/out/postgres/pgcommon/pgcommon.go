// Package pgcommon holds column mappings and error helpers shared by the GORM repositories.
package pgcommon

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

// LocationColumns is embedded into DTOs that persist a kernel.Location.
type LocationColumns struct {
	Latitude   float64 `gorm:"type:double precision;not null"`
	Longitude  float64 `gorm:"type:double precision;not null"`
	Division   string  `gorm:"type:varchar(64);not null"`
	District   string  `gorm:"type:varchar(64);not null"`
	Thana      string  `gorm:"type:varchar(64);not null"`
	PostalCode string  `gorm:"type:varchar(16)"`
	Line       string  `gorm:"type:varchar(255);not null"`
}

func FromLocation(l kernel.Location) LocationColumns {
	a := l.Address()
	return LocationColumns{
		Latitude:   l.Latitude(),
		Longitude:  l.Longitude(),
		Division:   a.Division(),
		District:   a.District(),
		Thana:      a.Thana(),
		PostalCode: a.PostalCode(),
		Line:       a.Line(),
	}
}

func (c LocationColumns) ToDomain() (kernel.Location, error) {
	return kernel.NewLocation(c.Latitude, c.Longitude, c.Division, c.District, c.Thana, c.PostalCode, c.Line)
}

// WithinBox restricts db to rows whose <prefix>latitude/<prefix>longitude fall in box.
func WithinBox(db *gorm.DB, prefix string, box kernel.BoundingBox) *gorm.DB {
	db = db.Where(prefix+"latitude BETWEEN ? AND ?", box.MinLat, box.MaxLat)
	if box.AnyLongitude {
		return db
	}
	return db.Where(prefix+"longitude BETWEEN ? AND ?", box.MinLng, box.MaxLng)
}

// IsUniqueViolation reports a duplicate key, whether or not gorm translated the driver error.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
