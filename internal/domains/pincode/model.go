package pincode

import "fmt"

// StorageKey is where the last-used pincode is persisted, in both the
// durable and session tiers.
const StorageKey = "eversol_pincode"

// Details is the derived serviceability record for one pincode. Cached per
// service instance; never written to durable storage.
type Details struct {
	Pincode          string `json:"pincode"`
	City             string `json:"city"`
	State            string `json:"state"`
	Serviceable      bool   `json:"serviceable"`
	DeliveryEstimate string `json:"deliveryEstimate,omitempty"`
	CODAvailable     bool   `json:"codAvailable"`
}

// Availability is the projection returned by CheckDeliveryAvailability.
type Availability struct {
	Serviceable      bool   `json:"serviceable"`
	DeliveryEstimate string `json:"deliveryEstimate,omitempty"`
	CODAvailable     bool   `json:"codAvailable"`
	City             string `json:"city"`
	State            string `json:"state"`
}

// Location is the projection returned by ResolveAddress.
type Location struct {
	City  string `json:"city"`
	State string `json:"state"`
}

// ErrorKind is the closed error taxonomy. Callers branch on the kind, never
// on the message text.
type ErrorKind string

const (
	KindValidation            ErrorKind = "Validation"
	KindAPIService            ErrorKind = "ApiService"
	KindNotServiceable        ErrorKind = "NotServiceable"
	KindGeolocationPermission ErrorKind = "GeolocationPermission"
	KindGeolocationError      ErrorKind = "GeolocationError"
)

// ServiceError is the tagged error returned by all lookups.
type ServiceError struct {
	Kind    ErrorKind `json:"type"`
	Message string    `json:"message"`
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// KindOf extracts the kind from any error this package returned.
func KindOf(err error) (ErrorKind, bool) {
	se, ok := err.(*ServiceError)
	if !ok {
		return "", false
	}
	return se.Kind, true
}
