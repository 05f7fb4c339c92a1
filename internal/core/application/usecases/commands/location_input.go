package commands

import (
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// LocationInput is a raw location as received from a caller.
type LocationInput struct {
	Latitude   float64
	Longitude  float64
	Division   string
	District   string
	Thana      string
	PostalCode string
	Line       string
}

// toLocation builds a kernel.Location; violations are reported under param, e.g. "pickup.latitude".
func (in LocationInput) toLocation(param string) (kernel.Location, error) {
	loc, err := kernel.NewLocation(in.Latitude, in.Longitude, in.Division, in.District, in.Thana, in.PostalCode, in.Line)
	if err != nil {
		return kernel.Location{}, errs.WithParamPrefix(param, err)
	}
	return loc, nil
}
