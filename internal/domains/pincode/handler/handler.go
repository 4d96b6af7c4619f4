package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"eversol-backend/internal/domains/pincode"
	"eversol-backend/internal/kvstore"
	"eversol-backend/internal/shared/middleware"
	"eversol-backend/internal/shared/response"
)

// Handler serves the pincode serviceability endpoints. Lookups are
// customer-independent; the saved pincode is scoped to the authenticated
// customer.
type Handler struct {
	service *pincode.Service
	stores  kvstore.Scoper
}

func NewHandler(service *pincode.Service, stores kvstore.Scoper) *Handler {
	return &Handler{service: service, stores: stores}
}

// RegisterPublicRoutes mounts the lookup routes, which need no
// authentication.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/:code", h.Lookup)
	rg.GET("/:code/availability", h.CheckAvailability)
	rg.GET("/:code/address", h.ResolveAddress)
	rg.POST("/detect", h.DetectLocation)
}

// RegisterCustomerRoutes mounts the saved-pincode routes on an authenticated
// group.
func (h *Handler) RegisterCustomerRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.GetSaved)
	rg.PUT("", h.Save)
}

func (h *Handler) Lookup(c *gin.Context) {
	details, err := h.service.LookupDetails(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, details)
}

func (h *Handler) CheckAvailability(c *gin.Context) {
	availability, err := h.service.CheckDeliveryAvailability(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, availability)
}

func (h *Handler) ResolveAddress(c *gin.Context) {
	location, err := h.service.ResolveAddress(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, location)
}

type detectRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// DetectLocation resolves coordinates to a pincode. Coordinates supplied by
// the client take precedence over the server-side geolocator.
func (h *Handler) DetectLocation(c *gin.Context) {
	var req detectRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(c, "Invalid request body")
		return
	}

	var (
		code string
		err  error
	)
	if req.Latitude != nil && req.Longitude != nil {
		code = h.service.BucketLocation(*req.Latitude, *req.Longitude)
	} else {
		code, err = h.service.DetectLocation(c.Request.Context())
	}
	if err != nil {
		h.fail(c, err)
		return
	}

	details, err := h.service.LookupDetails(c.Request.Context(), code)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, details)
}

func (h *Handler) GetSaved(c *gin.Context) {
	store := h.stores.Scoped("customer:" + middleware.GetUserID(c))
	code, ok := store.Get(c.Request.Context(), pincode.StorageKey)
	if !ok {
		response.NotFound(c, "No saved pincode")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"pincode": code})
}

type saveRequest struct {
	Pincode string `json:"pincode"`
}

func (h *Handler) Save(c *gin.Context) {
	var req saveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if !pincode.ValidatePincode(req.Pincode) {
		response.BadRequest(c, "Invalid pincode format. Please enter a 6-digit pincode.")
		return
	}

	store := h.stores.Scoped("customer:" + middleware.GetUserID(c))
	store.Set(c.Request.Context(), pincode.StorageKey, req.Pincode)
	response.SuccessWithMessage(c, http.StatusOK, "Pincode saved", gin.H{"pincode": req.Pincode})
}

// fail maps the tagged error taxonomy onto HTTP statuses.
func (h *Handler) fail(c *gin.Context, err error) {
	kind, ok := pincode.KindOf(err)
	if !ok {
		response.InternalServerError(c, "Pincode lookup failed")
		return
	}

	switch kind {
	case pincode.KindAPIService:
		response.ErrorResponse(c, http.StatusNotFound, string(kind), err.Error())
	case pincode.KindValidation, pincode.KindNotServiceable,
		pincode.KindGeolocationPermission, pincode.KindGeolocationError:
		response.ErrorResponse(c, http.StatusBadRequest, string(kind), err.Error())
	default:
		response.InternalServerError(c, err.Error())
	}
}
