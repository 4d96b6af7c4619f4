package pincode

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"sync"
	"time"

	"eversol-backend/internal/kvstore"
)

var pincodePattern = regexp.MustCompile(`^[1-9][0-9]{5}$`)

// directoryEntry is a known pincode; serviceable entries additionally carry
// delivery terms.
type directoryEntry struct {
	city             string
	state            string
	serviceable      bool
	deliveryEstimate string
	codAvailable     bool
}

// The resolution directory. Entries without delivery terms are known but not
// serviceable.
var directory = map[string]directoryEntry{
	"560001": {city: "Bengaluru", state: "Karnataka", serviceable: true, deliveryEstimate: "Next business day", codAvailable: true},
	"560038": {city: "Bengaluru", state: "Karnataka", serviceable: true, deliveryEstimate: "1-2 business days", codAvailable: true},
	"571401": {city: "Mandya", state: "Karnataka", serviceable: true, deliveryEstimate: "Next business day", codAvailable: false},
	"110001": {city: "New Delhi", state: "Delhi", serviceable: true, deliveryEstimate: "2-3 business days", codAvailable: true},
	"400001": {city: "Mumbai", state: "Maharashtra", serviceable: true, deliveryEstimate: "2-3 business days", codAvailable: true},
	"800001": {city: "Patna", state: "Bihar"},
	"700001": {city: "Kolkata", state: "West Bengal"},
}

// fallbackPincode is returned when reverse geocoding matches no known city.
const fallbackPincode = "110001"

// Coordinates of the city centers used for proximity bucketing.
type cityCenter struct {
	lat, lon, radius float64
	pincode          string
}

var cityCenters = []cityCenter{
	{lat: 12.97, lon: 77.59, radius: 1.0, pincode: "560001"}, // Bengaluru
	{lat: 12.52, lon: 76.89, radius: 0.5, pincode: "571401"}, // Mandya
}

// Geolocator provides the current position. Implementations map their
// platform failures onto the sentinel errors below.
type Geolocator interface {
	Current(ctx context.Context) (lat, lon float64, err error)
}

// Sentinel errors a Geolocator reports; DetectLocation translates them into
// the tagged taxonomy.
var (
	ErrPermissionDenied    = &ServiceError{Kind: KindGeolocationPermission, Message: "Location access was denied. Please enable it in your browser settings."}
	ErrPositionUnavailable = &ServiceError{Kind: KindGeolocationError, Message: "Location information is unavailable."}
	ErrLocationTimeout     = &ServiceError{Kind: KindGeolocationError, Message: "The request to get user location timed out."}
)

// Service resolves pincodes to serviceability details. The lookup cache is
// owned by the instance and lives for the process; InvalidateCache is the
// only eviction.
type Service struct {
	durable kvstore.Store
	session kvstore.Store
	geo     Geolocator
	delay   time.Duration

	mu    sync.RWMutex
	cache map[string]Details
}

// Option configures a Service.
type Option func(*Service)

// WithGeolocator installs the position provider used by DetectLocation.
func WithGeolocator(geo Geolocator) Option {
	return func(s *Service) { s.geo = geo }
}

// WithResolveDelay overrides the simulated resolution latency (tests pass 0).
func WithResolveDelay(d time.Duration) Option {
	return func(s *Service) { s.delay = d }
}

// NewService builds a Service persisting the last-used pincode to durable
// and mirroring it into session.
func NewService(durable, session kvstore.Store, opts ...Option) *Service {
	s := &Service{
		durable: durable,
		session: session,
		delay:   500 * time.Millisecond,
		cache:   make(map[string]Details),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ValidatePincode reports whether code is exactly six digits with a non-zero
// first digit.
func ValidatePincode(code string) bool {
	return pincodePattern.MatchString(code)
}

// LookupDetails resolves code to its full details: Validate → cache →
// Resolve → Classify. Results are cached by pincode for the life of the
// instance.
func (s *Service) LookupDetails(ctx context.Context, code string) (Details, error) {
	if !ValidatePincode(code) {
		return Details{}, &ServiceError{
			Kind:    KindValidation,
			Message: "Invalid pincode format. Please enter a 6-digit pincode.",
		}
	}

	s.mu.RLock()
	cached, hit := s.cache[code]
	s.mu.RUnlock()
	if hit {
		return cached, nil
	}

	if err := s.simulateLatency(ctx); err != nil {
		return Details{}, err
	}

	entry, known := directory[code]
	if !known {
		return Details{}, &ServiceError{
			Kind:    KindAPIService,
			Message: "Pincode not found. Please check and try again.",
		}
	}

	details := Details{
		Pincode:          code,
		City:             entry.city,
		State:            entry.state,
		Serviceable:      entry.serviceable,
		DeliveryEstimate: entry.deliveryEstimate,
		CODAvailable:     entry.codAvailable,
	}

	s.mu.Lock()
	s.cache[code] = details
	s.mu.Unlock()

	return details, nil
}

// CheckDeliveryAvailability resolves code and fails with NotServiceable,
// naming the resolved city, when delivery is not offered there.
func (s *Service) CheckDeliveryAvailability(ctx context.Context, code string) (Availability, error) {
	details, err := s.LookupDetails(ctx, code)
	if err != nil {
		return Availability{}, err
	}

	if !details.Serviceable {
		return Availability{}, &ServiceError{
			Kind:    KindNotServiceable,
			Message: fmt.Sprintf("Sorry, delivery is not available for %s (%s) yet.", details.City, code),
		}
	}

	return Availability{
		Serviceable:      details.Serviceable,
		DeliveryEstimate: details.DeliveryEstimate,
		CODAvailable:     details.CODAvailable,
		City:             details.City,
		State:            details.State,
	}, nil
}

// ResolveAddress is the city/state projection of LookupDetails.
func (s *Service) ResolveAddress(ctx context.Context, code string) (Location, error) {
	details, err := s.LookupDetails(ctx, code)
	if err != nil {
		return Location{}, err
	}
	return Location{City: details.City, State: details.State}, nil
}

// SavePincode persists the last-used pincode to both storage tiers,
// best-effort.
func (s *Service) SavePincode(ctx context.Context, code string) {
	s.durable.Set(ctx, StorageKey, code)
	s.session.Set(ctx, StorageKey, code)
}

// SavedPincode returns the last-used pincode, or "" when none is stored.
func (s *Service) SavedPincode(ctx context.Context) string {
	code, _ := s.durable.Get(ctx, StorageKey)
	return code
}

// DetectLocation resolves the current position to a pincode by proximity
// bucketing against known city centers, falling back to New Delhi when no
// bucket matches.
func (s *Service) DetectLocation(ctx context.Context) (string, error) {
	if s.geo == nil {
		return "", &ServiceError{
			Kind:    KindGeolocationError,
			Message: "Geolocation is not supported in this environment.",
		}
	}

	lat, lon, err := s.geo.Current(ctx)
	if err != nil {
		if se, ok := err.(*ServiceError); ok {
			return "", se
		}
		return "", &ServiceError{
			Kind:    KindGeolocationError,
			Message: "An unknown error occurred while detecting location.",
		}
	}

	return s.BucketLocation(lat, lon), nil
}

// BucketLocation maps coordinates to the nearest known city's pincode,
// falling back to New Delhi when no bucket matches.
func (s *Service) BucketLocation(lat, lon float64) string {
	for _, center := range cityCenters {
		if math.Abs(lat-center.lat) < center.radius && math.Abs(lon-center.lon) < center.radius {
			return center.pincode
		}
	}
	return fallbackPincode
}

// InvalidateCache drops every cached lookup result.
func (s *Service) InvalidateCache() {
	s.mu.Lock()
	s.cache = make(map[string]Details)
	s.mu.Unlock()
}

// simulateLatency stands in for the upstream lookup call. The caller
// abandons the lookup by cancelling ctx.
func (s *Service) simulateLatency(ctx context.Context) error {
	if s.delay <= 0 {
		return nil
	}
	select {
	case <-time.After(s.delay):
		return nil
	case <-ctx.Done():
		return &ServiceError{Kind: KindAPIService, Message: "Pincode lookup cancelled."}
	}
}
