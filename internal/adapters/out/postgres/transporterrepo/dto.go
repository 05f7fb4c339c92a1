// Package transporterrepo persists transporter profiles with their drivers and vehicles.
package transporterrepo

import (
	"time"

	"marketplace/internal/adapters/out/postgres/pgcommon"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/transporter"

	"github.com/google/uuid"
)

type ProfileDTO struct {
	ID              uuid.UUID                `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID                `gorm:"type:uuid;not null;uniqueIndex"`
	Type            int                      `gorm:"type:smallint;not null"`
	ContactName     string                   `gorm:"type:varchar(255);not null"`
	ContactPhone    string                   `gorm:"type:varchar(32);not null"`
	ContactEmail    string                   `gorm:"type:varchar(255)"`
	TradeLicense    string                   `gorm:"type:varchar(64)"`
	Home            pgcommon.LocationColumns `gorm:"embedded;embeddedPrefix:home_"`
	ServiceRadiusKm float64                  `gorm:"type:double precision;not null"`
	Verified        bool                     `gorm:"not null;default:false"`
	Rating          float64                  `gorm:"type:double precision;not null;default:0"`
	RatingCount     int                      `gorm:"not null;default:0"`
	CompletedJobs   int                      `gorm:"not null;default:0"`
	CreatedAt       time.Time                `gorm:"not null"`
	Version         int64                    `gorm:"not null;default:0"`
	Drivers         []DriverDTO              `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE"`
	Vehicles        []VehicleDTO             `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE"`
}

func (ProfileDTO) TableName() string {
	return "transporter_profiles"
}

type DriverDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProfileID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Name          string    `gorm:"type:varchar(255);not null"`
	Phone         string    `gorm:"type:varchar(32);not null"`
	LicenceNumber string    `gorm:"type:varchar(64);not null"`
	LicenceExpiry time.Time `gorm:"not null"`
	Status        int       `gorm:"type:smallint;not null"`
}

func (DriverDTO) TableName() string {
	return "drivers"
}

type VehicleDTO struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProfileID          uuid.UUID `gorm:"type:uuid;not null;index"`
	RegistrationNumber string    `gorm:"type:varchar(32);not null"`
	VehicleType        string    `gorm:"type:varchar(64);not null"`
	CapacityKg         float64   `gorm:"type:double precision;not null"`
	FitnessExpiry      time.Time `gorm:"not null"`
	Status             int       `gorm:"type:smallint;not null"`
}

func (VehicleDTO) TableName() string {
	return "vehicles"
}

func fromDomain(p *transporter.Profile) ProfileDTO {
	profileID := p.ID().Bytes()

	drivers := make([]DriverDTO, 0, len(p.Drivers()))
	for _, d := range p.Drivers() {
		drivers = append(drivers, DriverDTO{
			ID:            d.ID().Bytes(),
			ProfileID:     profileID,
			Name:          d.Name(),
			Phone:         d.Phone(),
			LicenceNumber: d.LicenceNumber(),
			LicenceExpiry: d.LicenceExpiry(),
			Status:        int(d.Status()),
		})
	}

	vehicles := make([]VehicleDTO, 0, len(p.Vehicles()))
	for _, v := range p.Vehicles() {
		vehicles = append(vehicles, VehicleDTO{
			ID:                 v.ID().Bytes(),
			ProfileID:          profileID,
			RegistrationNumber: v.RegistrationNumber(),
			VehicleType:        v.VehicleType(),
			CapacityKg:         v.CapacityKg(),
			FitnessExpiry:      v.FitnessExpiry(),
			Status:             int(v.Status()),
		})
	}

	contact := p.Contact()
	return ProfileDTO{
		ID:              profileID,
		UserID:          p.UserID().Bytes(),
		Type:            int(p.Type()),
		ContactName:     contact.Name,
		ContactPhone:    contact.Phone,
		ContactEmail:    contact.Email,
		TradeLicense:    p.TradeLicense(),
		Home:            pgcommon.FromLocation(p.Home()),
		ServiceRadiusKm: p.ServiceRadiusKm(),
		Verified:        p.IsVerified(),
		Rating:          p.Rating(),
		RatingCount:     p.RatingCount(),
		CompletedJobs:   p.CompletedJobs(),
		CreatedAt:       p.CreatedAt(),
		Version:         p.Version(),
		Drivers:         drivers,
		Vehicles:        vehicles,
	}
}

func toDomain(dto ProfileDTO) (*transporter.Profile, error) {
	home, err := dto.Home.ToDomain()
	if err != nil {
		return nil, err
	}

	drivers := make([]*transporter.Driver, 0, len(dto.Drivers))
	for _, d := range dto.Drivers {
		driver, err := transporter.RestoreDriver(
			kernel.UUIDFromGoogle(d.ID), d.Name, d.Phone, d.LicenceNumber, d.LicenceExpiry,
			transporter.DriverStatus(d.Status),
		)
		if err != nil {
			return nil, err
		}
		drivers = append(drivers, driver)
	}

	vehicles := make([]*transporter.Vehicle, 0, len(dto.Vehicles))
	for _, v := range dto.Vehicles {
		vehicle, err := transporter.RestoreVehicle(
			kernel.UUIDFromGoogle(v.ID), v.RegistrationNumber, v.VehicleType, v.CapacityKg, v.FitnessExpiry,
			transporter.VehicleStatus(v.Status),
		)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, vehicle)
	}

	return transporter.RestoreProfile(
		kernel.UUIDFromGoogle(dto.ID),
		kernel.UUIDFromGoogle(dto.UserID),
		transporter.Type(dto.Type),
		transporter.Contact{Name: dto.ContactName, Phone: dto.ContactPhone, Email: dto.ContactEmail},
		dto.TradeLicense,
		home,
		dto.ServiceRadiusKm,
		dto.Verified,
		dto.Rating,
		dto.RatingCount,
		dto.CompletedJobs,
		drivers,
		vehicles,
		dto.CreatedAt,
		dto.Version,
	)
}
