package http

import (
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"

	"github.com/shopspring/decimal"
)

// Request bodies.

// LocationBody and CreateRequestBody carry only shape rules in their tags. The
// values are checked by the command constructors, whose violations the handlers
// report together with these.
type LocationBody struct {
	Latitude   *float64 `json:"latitude" validate:"required"`
	Longitude  *float64 `json:"longitude" validate:"required"`
	Division   string   `json:"division"`
	District   string   `json:"district"`
	Thana      string   `json:"thana"`
	PostalCode string   `json:"postalCode" validate:"omitempty,max=16"`
	Line       string   `json:"line" validate:"omitempty,max=255"`
}

func (b LocationBody) toInput() commands.LocationInput {
	in := commands.LocationInput{
		Division:   b.Division,
		District:   b.District,
		Thana:      b.Thana,
		PostalCode: b.PostalCode,
		Line:       b.Line,
	}
	if b.Latitude != nil {
		in.Latitude = *b.Latitude
	}
	if b.Longitude != nil {
		in.Longitude = *b.Longitude
	}
	return in
}

type CreateRequestBody struct {
	Pickup        LocationBody `json:"pickup"`
	Drop          LocationBody `json:"drop"`
	ScheduledAt   time.Time    `json:"scheduledAt"`
	GoodsType     string       `json:"goodsType"`
	WeightKg      float64      `json:"weightKg"`
	PaymentMethod string       `json:"paymentMethod"`
}

type SubmitBidBody struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency" validate:"omitempty,len=3,alpha"`
	Note     string          `json:"note" validate:"max=500"`
}

type LocationPingBody struct {
	Latitude  *float64 `json:"latitude" validate:"required,latitude"`
	Longitude *float64 `json:"longitude" validate:"required,longitude"`
}

type CompleteDeliveryBody struct {
	CashReceived bool `json:"cashReceived"`
}

type AssignJobBody struct {
	VehicleID string `json:"vehicleId" validate:"required,uuid"`
	DriverID  string `json:"driverId" validate:"required,uuid"`
}

type RateJobBody struct {
	Score int `json:"score" validate:"required,min=1,max=5"`
}

type RegisterTransporterBody struct {
	Type            string       `json:"type"`
	ContactName     string       `json:"contactName" validate:"required,max=120"`
	ContactPhone    string       `json:"contactPhone" validate:"required,max=32"`
	ContactEmail    string       `json:"contactEmail" validate:"omitempty,email"`
	TradeLicense    string       `json:"tradeLicense" validate:"max=64"`
	Home            LocationBody `json:"home"`
	ServiceRadiusKm float64      `json:"serviceRadiusKm" validate:"gte=0"`
}

type AddVehicleBody struct {
	RegistrationNumber string    `json:"registrationNumber" validate:"required,max=32"`
	VehicleType        string    `json:"vehicleType" validate:"required,max=64"`
	CapacityKg         float64   `json:"capacityKg" validate:"gt=0"`
	FitnessExpiry      time.Time `json:"fitnessExpiry" validate:"required"`
}

type AddDriverBody struct {
	Name          string    `json:"name" validate:"required,max=120"`
	Phone         string    `json:"phone" validate:"required,max=32"`
	LicenceNumber string    `json:"licenceNumber" validate:"required,max=64"`
	LicenceExpiry time.Time `json:"licenceExpiry" validate:"required"`
}

// Response bodies.

type IDResponse struct {
	ID string `json:"id"`
}

type LocationResponse struct {
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Division   string  `json:"division"`
	District   string  `json:"district"`
	Thana      string  `json:"thana"`
	PostalCode string  `json:"postalCode,omitempty"`
	Line       string  `json:"line"`
}

type MoneyResponse struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

type BidResponse struct {
	ID            string        `json:"id"`
	TransporterID string        `json:"transporterId"`
	Amount        MoneyResponse `json:"amount"`
	Note          string        `json:"note,omitempty"`
	SubmittedAt   time.Time     `json:"submittedAt"`
	Status        string        `json:"status"`
	Inert         bool          `json:"inert"`
}

type RequestResponse struct {
	ID            string           `json:"id"`
	RequesterID   string           `json:"requesterId"`
	Pickup        LocationResponse `json:"pickup"`
	Drop          LocationResponse `json:"drop"`
	ScheduledAt   time.Time        `json:"scheduledAt"`
	GoodsType     string           `json:"goodsType"`
	WeightKg      float64          `json:"weightKg"`
	PaymentMethod string           `json:"paymentMethod"`
	CashReceived  bool             `json:"cashReceived"`
	Status        string           `json:"status"`
	WinnerBidID   *string          `json:"winnerBidId,omitempty"`
	Rating        *int             `json:"rating,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
	Bids          []BidResponse    `json:"bids"`
}

type RequestSummaryResponse struct {
	ID            string           `json:"id"`
	Pickup        LocationResponse `json:"pickup"`
	Drop          LocationResponse `json:"drop"`
	ScheduledAt   time.Time        `json:"scheduledAt"`
	GoodsType     string           `json:"goodsType"`
	WeightKg      float64          `json:"weightKg"`
	PaymentMethod string           `json:"paymentMethod"`
	Status        string           `json:"status"`
	DistanceKm    float64          `json:"distanceKm"`
	BidCount      int              `json:"bidCount"`
}

type NearbyRequestsResponse struct {
	RadiusKm float64                  `json:"radiusKm"`
	Requests []RequestSummaryResponse `json:"requests"`
}

type CandidateResponse struct {
	ProfileID       string  `json:"profileId"`
	Type            string  `json:"type"`
	ContactName     string  `json:"contactName"`
	ContactPhone    string  `json:"contactPhone"`
	Verified        bool    `json:"verified"`
	Rating          float64 `json:"rating"`
	CompletedJobs   int     `json:"completedJobs"`
	ServiceRadiusKm float64 `json:"serviceRadiusKm"`
	DistanceKm      float64 `json:"distanceKm"`
}

type EarningsJobResponse struct {
	RequestID     string        `json:"requestId"`
	BidID         string        `json:"bidId"`
	Amount        MoneyResponse `json:"amount"`
	PaymentMethod string        `json:"paymentMethod"`
	CashReceived  bool          `json:"cashReceived"`
	ScheduledAt   time.Time     `json:"scheduledAt"`
}

type EarningsResponse struct {
	TotalJobs      int                   `json:"totalJobs"`
	TotalEarnings  MoneyResponse         `json:"totalEarnings"`
	CashEarnings   MoneyResponse         `json:"cashEarnings"`
	OnlineEarnings MoneyResponse         `json:"onlineEarnings"`
	CashReceived   MoneyResponse         `json:"cashReceived"`
	CashPending    MoneyResponse         `json:"cashPending"`
	Jobs           []EarningsJobResponse `json:"jobs"`
}

type PositionResponse struct {
	RequestID     string    `json:"requestId"`
	TransporterID string    `json:"transporterId"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	RecordedAt    time.Time `json:"recordedAt"`
}

func toLocationResponse(l kernel.Location) LocationResponse {
	a := l.Address()
	return LocationResponse{
		Latitude:   l.Latitude(),
		Longitude:  l.Longitude(),
		Division:   a.Division(),
		District:   a.District(),
		Thana:      a.Thana(),
		PostalCode: a.PostalCode(),
		Line:       a.Line(),
	}
}

func toMoneyResponse(m kernel.Money) MoneyResponse {
	return MoneyResponse{Amount: m.Amount().StringFixed(2), Currency: m.Currency()}
}

func toRequestResponse(v queries.RequestView) RequestResponse {
	resp := RequestResponse{
		ID:            v.ID.String(),
		RequesterID:   v.RequesterID.String(),
		Pickup:        toLocationResponse(v.Pickup),
		Drop:          toLocationResponse(v.Drop),
		ScheduledAt:   v.ScheduledAt,
		GoodsType:     v.GoodsType,
		WeightKg:      v.WeightKg,
		PaymentMethod: v.PaymentMethod,
		CashReceived:  v.CashReceived,
		Status:        v.Status,
		Rating:        v.Rating,
		CreatedAt:     v.CreatedAt,
		Bids:          make([]BidResponse, 0, len(v.Bids)),
	}
	if v.WinnerBidID != nil {
		id := v.WinnerBidID.String()
		resp.WinnerBidID = &id
	}
	for _, b := range v.Bids {
		resp.Bids = append(resp.Bids, BidResponse{
			ID:            b.ID.String(),
			TransporterID: b.TransporterID.String(),
			Amount:        toMoneyResponse(b.Amount),
			Note:          b.Note,
			SubmittedAt:   b.SubmittedAt,
			Status:        b.Status,
			Inert:         b.Inert,
		})
	}
	return resp
}

func toNearbyResponse(r queries.GetNearbyRequestsQueryResponse) NearbyRequestsResponse {
	resp := NearbyRequestsResponse{
		RadiusKm: r.RadiusKm,
		Requests: make([]RequestSummaryResponse, 0, len(r.Requests)),
	}
	for _, s := range r.Requests {
		resp.Requests = append(resp.Requests, RequestSummaryResponse{
			ID:            s.ID.String(),
			Pickup:        toLocationResponse(s.Pickup),
			Drop:          toLocationResponse(s.Drop),
			ScheduledAt:   s.ScheduledAt,
			GoodsType:     s.GoodsType,
			WeightKg:      s.WeightKg,
			PaymentMethod: s.PaymentMethod,
			Status:        s.Status,
			DistanceKm:    s.DistanceKm,
			BidCount:      s.BidCount,
		})
	}
	return resp
}

func toCandidateResponses(views []queries.CandidateView) []CandidateResponse {
	resp := make([]CandidateResponse, 0, len(views))
	for _, v := range views {
		resp = append(resp, CandidateResponse{
			ProfileID:       v.ProfileID.String(),
			Type:            v.Type,
			ContactName:     v.ContactName,
			ContactPhone:    v.ContactPhone,
			Verified:        v.Verified,
			Rating:          v.Rating,
			CompletedJobs:   v.CompletedJobs,
			ServiceRadiusKm: v.ServiceRadiusKm,
			DistanceKm:      v.DistanceKm,
		})
	}
	return resp
}

func toEarningsResponse(r services.EarningsReport) EarningsResponse {
	resp := EarningsResponse{
		TotalJobs:      r.TotalJobs,
		TotalEarnings:  toMoneyResponse(r.TotalEarnings),
		CashEarnings:   toMoneyResponse(r.CashEarnings),
		OnlineEarnings: toMoneyResponse(r.OnlineEarnings),
		CashReceived:   toMoneyResponse(r.CashReceived),
		CashPending:    toMoneyResponse(r.CashPending),
		Jobs:           make([]EarningsJobResponse, 0, len(r.Jobs)),
	}
	for _, j := range r.Jobs {
		resp.Jobs = append(resp.Jobs, EarningsJobResponse{
			RequestID:     j.RequestID.String(),
			BidID:         j.BidID.String(),
			Amount:        toMoneyResponse(j.Amount),
			PaymentMethod: j.PaymentMethod.String(),
			CashReceived:  j.CashReceived,
			ScheduledAt:   j.ScheduledAt,
		})
	}
	return resp
}

func toPositionResponse(p ports.Position) PositionResponse {
	return PositionResponse{
		RequestID:     p.RequestID.String(),
		TransporterID: p.TransporterID.String(),
		Latitude:      p.Point.Latitude(),
		Longitude:     p.Point.Longitude(),
		RecordedAt:    p.RecordedAt,
	}
}
