package service

import (
	"context"
	"errors"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/angple/arena-backend/internal/common"
	"github.com/angple/arena-backend/internal/domain"
	"github.com/angple/arena-backend/internal/repository"
	"github.com/angple/arena-backend/pkg/geocode"
)

const (
	DefaultRadiusKm = 50.0
	MaxRadiusKm     = 500.0
	earthRadiusKm   = 6371.0
)

// Geocoder resolves a free-form address to coordinates
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*geocode.Result, error)
}

// EventService defines event listing, editing and geolocation logic
type EventService interface {
	List(upcoming bool, page common.Page) ([]domain.Event, int64, error)
	Get(id uint64) (*domain.Event, error)
	Nearby(lat, lng, radiusKm float64) ([]domain.NearbyEvent, error)
	Create(actor domain.Actor, req *domain.EventRequest) (*domain.Event, error)
	Update(id uint64, req *domain.EventRequest) (*domain.Event, error)
	Delete(id uint64) error
	Geolocate(ctx context.Context, id uint64, address string) (*domain.Event, error)
}

type eventService struct {
	events   repository.EventRepository
	geocoder Geocoder
	now      func() time.Time
}

// NewEventService creates a new EventService
func NewEventService(events repository.EventRepository, geocoder Geocoder) EventService {
	return &eventService{events: events, geocoder: geocoder, now: time.Now}
}

func (s *eventService) List(upcoming bool, page common.Page) ([]domain.Event, int64, error) {
	var from *time.Time
	if upcoming {
		now := s.now()
		from = &now
	}
	return s.events.List(from, page.Offset(), page.Limit)
}

func (s *eventService) Get(id uint64) (*domain.Event, error) {
	event, err := s.events.FindByID(id)
	if err != nil {
		return nil, notFound(err, common.ErrEventNotFound)
	}
	return event, nil
}

// Nearby returns geocoded events within radiusKm of the point, closest first
func (s *eventService) Nearby(lat, lng, radiusKm float64) ([]domain.NearbyEvent, error) {
	if lat < -90 || lat > 90 || math.IsNaN(lat) {
		return nil, common.NewValidationError("lat", "must be between -90 and 90")
	}
	if lng < -180 || lng > 180 || math.IsNaN(lng) {
		return nil, common.NewValidationError("lng", "must be between -180 and 180")
	}
	if radiusKm <= 0 {
		radiusKm = DefaultRadiusKm
	}
	if radiusKm > MaxRadiusKm {
		radiusKm = MaxRadiusKm
	}

	candidates, err := s.events.WithinBounds(BoundingBox(lat, lng, radiusKm))
	if err != nil {
		return nil, err
	}

	result := make([]domain.NearbyEvent, 0, len(candidates))
	for _, e := range candidates {
		if e.Latitude == nil || e.Longitude == nil {
			continue
		}
		d := HaversineKm(lat, lng, *e.Latitude, *e.Longitude)
		if d <= radiusKm {
			result = append(result, domain.NearbyEvent{Event: e, DistanceKm: math.Round(d*100) / 100})
		}
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].DistanceKm < result[j].DistanceKm })
	return result, nil
}

func (s *eventService) Create(actor domain.Actor, req *domain.EventRequest) (*domain.Event, error) {
	if err := validateEvent(req); err != nil {
		return nil, err
	}
	event := &domain.Event{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Game:        strings.TrimSpace(req.Game),
		Address:     strings.TrimSpace(req.Address),
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		CreatedBy:   actor.UserID,
	}
	if err := s.events.Create(event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *eventService) Update(id uint64, req *domain.EventRequest) (*domain.Event, error) {
	if err := validateEvent(req); err != nil {
		return nil, err
	}
	event, err := s.events.FindByID(id)
	if err != nil {
		return nil, notFound(err, common.ErrEventNotFound)
	}
	event.Name = strings.TrimSpace(req.Name)
	event.Description = req.Description
	event.Game = strings.TrimSpace(req.Game)
	event.Address = strings.TrimSpace(req.Address)
	event.StartsAt = req.StartsAt
	event.EndsAt = req.EndsAt
	if err := s.events.Update(event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *eventService) Delete(id uint64) error {
	if _, err := s.events.FindByID(id); err != nil {
		return notFound(err, common.ErrEventNotFound)
	}
	return s.events.Delete(id)
}

// Geolocate resolves the address (or the event's stored one) and stores the coordinates
func (s *eventService) Geolocate(ctx context.Context, id uint64, address string) (*domain.Event, error) {
	event, err := s.events.FindByID(id)
	if err != nil {
		return nil, notFound(err, common.ErrEventNotFound)
	}

	address = strings.TrimSpace(address)
	if address == "" {
		address = strings.TrimSpace(event.Address)
	}
	if address == "" {
		return nil, common.NewValidationError("address", "is required")
	}

	res, err := s.geocoder.Geocode(ctx, address)
	if err != nil {
		if errors.Is(err, geocode.ErrNoResult) {
			return nil, common.ErrAddressNotResolved
		}
		return nil, errors.Join(common.ErrUpstream, err)
	}

	if err := s.events.UpdateLocation(id, address, res.Latitude, res.Longitude); err != nil {
		return nil, err
	}
	event.Address = address
	event.Latitude = &res.Latitude
	event.Longitude = &res.Longitude
	return event, nil
}

func validateEvent(req *domain.EventRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return common.NewValidationError("name", "is required")
	}
	if req.StartsAt.IsZero() {
		return common.NewValidationError("starts_at", "is required")
	}
	if req.EndsAt != nil && req.EndsAt.Before(req.StartsAt) {
		return common.NewValidationError("ends_at", "must not be before starts_at")
	}
	return nil
}

// HaversineKm returns the great-circle distance between two points
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	toRad := func(d float64) float64 { return d * math.Pi / 180 }
	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Asin(math.Min(1, math.Sqrt(a)))
}

// BoundingBox returns a box that contains the circle of radiusKm around the point
func BoundingBox(lat, lng, radiusKm float64) repository.Bounds {
	dLat := radiusKm / earthRadiusKm * 180 / math.Pi
	cosLat := math.Cos(lat * math.Pi / 180)
	dLng := 180.0
	if cosLat > 1e-6 {
		dLng = math.Min(180, dLat/cosLat)
	}
	return repository.Bounds{
		MinLat: math.Max(-90, lat-dLat),
		MaxLat: math.Min(90, lat+dLat),
		MinLng: math.Max(-180, lng-dLng),
		MaxLng: math.Min(180, lng+dLng),
	}
}
