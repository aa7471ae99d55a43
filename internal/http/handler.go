package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"fleet-admin-service/internal/client"
	"fleet-admin-service/internal/model"
	"fleet-admin-service/internal/repository"
	"fleet-admin-service/internal/service"
)

type Handler struct {
	locationService *service.LocationService
	driverService   *service.DriverService
	truckService    *service.TruckService
	seedService     *service.SeedService
	rollbackService *service.RollbackService
	pathfinder      *client.PathfinderClient
	log             zerolog.Logger
}

func NewHandler(
	locationService *service.LocationService,
	driverService *service.DriverService,
	truckService *service.TruckService,
	seedService *service.SeedService,
	rollbackService *service.RollbackService,
	pathfinder *client.PathfinderClient,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		locationService: locationService,
		driverService:   driverService,
		truckService:    truckService,
		seedService:     seedService,
		rollbackService: rollbackService,
		pathfinder:      pathfinder,
		log:             log,
	}
}

func (h *Handler) Register(r *gin.Engine, authMiddleware gin.HandlerFunc) {
	locations := r.Group("/locations")
	{
		locations.GET("", h.listLocations)
		locations.GET("/locate", h.locateLocation)
		locations.POST("", authMiddleware, h.createLocation)
		locations.PUT("", authMiddleware, h.updateLocation)
		locations.DELETE("", authMiddleware, h.deleteLocation)
		locations.POST("/seed", authMiddleware, h.seedLocations)
		locations.POST("/seed/rollback", authMiddleware, h.rollbackSeeding)
	}

	drivers := r.Group("/drivers")
	{
		drivers.GET("", h.getDrivers)
		drivers.POST("", authMiddleware, h.createDriver)
		drivers.PUT("", authMiddleware, h.updateDriver)
		drivers.DELETE("", authMiddleware, h.deleteDriver)
	}

	trucks := r.Group("/trucks")
	{
		trucks.GET("", h.getTrucks)
		trucks.POST("", authMiddleware, h.createTruck)
		trucks.PUT("", authMiddleware, h.updateTruck)
		trucks.DELETE("", authMiddleware, h.deleteTruck)
	}

	r.GET("/truckpath/status", h.pathfinderStatus)
}

// Location handlers

func (h *Handler) listLocations(c *gin.Context) {
	if id := strings.TrimSpace(c.Query("id")); id != "" {
		loc, err := h.locationService.Get(c.Request.Context(), id)
		if err != nil {
			h.handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, loc)
		return
	}

	filter := repository.LocationListFilter{}
	if raw := strings.TrimSpace(c.Query("airport")); raw != "" {
		airport := model.Airport(raw)
		filter.Airport = &airport
	}
	if raw := strings.TrimSpace(c.Query("type")); raw != "" {
		locType := model.LocationType(raw)
		filter.Type = &locType
	}

	locations, err := h.locationService.List(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}
	if locations == nil {
		locations = []model.Location{}
	}

	c.JSON(http.StatusOK, locations)
}

func (h *Handler) createLocation(c *gin.Context) {
	var req struct {
		Name        string             `json:"name"`
		Airport     model.Airport      `json:"airport"`
		Type        model.LocationType `json:"type"`
		Description *string            `json:"description"`
		Latitude    *float64           `json:"latitude"`
		Longitude   *float64           `json:"longitude"`
		Geofence    []model.GeoPoint   `json:"geofence"`
		IsActive    *bool              `json:"isActive"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}
	if req.Name == "" || req.Airport == "" || req.Type == "" {
		c.JSON(http.StatusBadRequest, errorResponse("missing required fields: name, airport, type"))
		return
	}

	loc, err := h.locationService.Create(c.Request.Context(), service.CreateLocationInput{
		Name:        req.Name,
		Airport:     req.Airport,
		Type:        req.Type,
		Description: req.Description,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Geofence:    req.Geofence,
		IsActive:    req.IsActive,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"id":       loc.ID,
		"message":  "location created",
		"location": loc,
	})
}

func (h *Handler) updateLocation(c *gin.Context) {
	id := strings.TrimSpace(c.Query("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, errorResponse("location id is required"))
		return
	}

	var patch model.LocationPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	loc, err := h.locationService.Update(c.Request.Context(), id, patch)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "location updated",
		"location": loc,
	})
}

func (h *Handler) deleteLocation(c *gin.Context) {
	id := strings.TrimSpace(c.Query("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, errorResponse("location id is required"))
		return
	}

	if err := h.locationService.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "location deleted"})
}

func (h *Handler) locateLocation(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
	if latErr != nil || lngErr != nil {
		c.JSON(http.StatusBadRequest, errorResponse("lat and lng query params are required"))
		return
	}

	var airport *model.Airport
	if raw := strings.TrimSpace(c.Query("airport")); raw != "" {
		a := model.Airport(raw)
		airport = &a
	}

	loc, err := h.locationService.Locate(c.Request.Context(), lat, lng, airport)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, loc)
}

func (h *Handler) seedLocations(c *gin.Context) {
	var req struct {
		Locations []service.SeedItem `json:"locations"`
		Options   struct {
			DryRun *bool `json:"dryRun"`
		} `json:"options"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}
	if len(req.Locations) == 0 {
		c.JSON(http.StatusBadRequest, errorResponse("no locations provided"))
		return
	}

	// Seeding is a dry run unless explicitly disabled.
	dryRun := req.Options.DryRun == nil || *req.Options.DryRun

	result, err := h.seedService.Seed(c.Request.Context(), req.Locations, dryRun)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// rollbackSeeding always answers 200 once the audit resolves, even when
// individual items failed. Callers must inspect the items array.
func (h *Handler) rollbackSeeding(c *gin.Context) {
	var req struct {
		AuditID string `json:"auditId"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}
	if strings.TrimSpace(req.AuditID) == "" {
		c.JSON(http.StatusBadRequest, errorResponse("auditId is required"))
		return
	}

	items, err := h.rollbackService.Rollback(c.Request.Context(), req.AuditID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Driver handlers

func (h *Handler) getDrivers(c *gin.Context) {
	if driverID := strings.TrimSpace(c.Query("driverId")); driverID != "" {
		driver, err := h.driverService.Get(c.Request.Context(), driverID)
		if err != nil {
			h.handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, driver)
		return
	}

	drivers, err := h.driverService.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	if drivers == nil {
		drivers = []model.Driver{}
	}

	c.JSON(http.StatusOK, drivers)
}

func (h *Handler) createDriver(c *gin.Context) {
	var req struct {
		DriverID         string             `json:"driverId"`
		FullName         string             `json:"fullName"`
		PhoneNumber      string             `json:"phoneNumber"`
		Email            string             `json:"email"`
		LicenseNumber    string             `json:"licenseNumber"`
		AssignedTruckID  *string            `json:"assignedTruckId"`
		CurrentStatus    model.DriverStatus `json:"currentStatus"`
		LastGpsUpdate    *time.Time         `json:"lastGpsUpdate"`
		CurrentLatitude  *float64           `json:"currentLatitude"`
		CurrentLongitude *float64           `json:"currentLongitude"`
		SpeedKmh         *float64           `json:"speedKmh"`
		BatteryLevel     *float64           `json:"batteryLevel"`
		LastAssignmentID *string            `json:"lastAssignmentId"`
		Notes            *string            `json:"notes"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	driver, err := h.driverService.Create(c.Request.Context(), service.CreateDriverInput{
		DriverID:         req.DriverID,
		FullName:         req.FullName,
		PhoneNumber:      req.PhoneNumber,
		Email:            req.Email,
		LicenseNumber:    req.LicenseNumber,
		AssignedTruckID:  req.AssignedTruckID,
		CurrentStatus:    req.CurrentStatus,
		LastGpsUpdate:    req.LastGpsUpdate,
		CurrentLatitude:  req.CurrentLatitude,
		CurrentLongitude: req.CurrentLongitude,
		SpeedKmh:         req.SpeedKmh,
		BatteryLevel:     req.BatteryLevel,
		LastAssignmentID: req.LastAssignmentID,
		Notes:            req.Notes,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, driver)
}

func (h *Handler) updateDriver(c *gin.Context) {
	var req struct {
		DriverID string `json:"driverId"`
		model.DriverPatch
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}
	if strings.TrimSpace(req.DriverID) == "" {
		c.JSON(http.StatusBadRequest, errorResponse("driverId is required"))
		return
	}

	driver, err := h.driverService.Update(c.Request.Context(), req.DriverID, req.DriverPatch)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, driver)
}

func (h *Handler) deleteDriver(c *gin.Context) {
	driverID := strings.TrimSpace(c.Query("driverId"))
	if driverID == "" {
		c.JSON(http.StatusBadRequest, errorResponse("driverId query param is required"))
		return
	}

	if err := h.driverService.Delete(c.Request.Context(), driverID); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Truck handlers

func (h *Handler) getTrucks(c *gin.Context) {
	expandDriver := c.Query("expand") == "driver"

	if truckID := strings.TrimSpace(c.Query("truckId")); truckID != "" {
		if expandDriver {
			truck, err := h.truckService.GetExpanded(c.Request.Context(), truckID)
			if err != nil {
				h.handleError(c, err)
				return
			}
			c.JSON(http.StatusOK, truck)
			return
		}

		truck, err := h.truckService.Get(c.Request.Context(), truckID)
		if err != nil {
			h.handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, truck)
		return
	}

	if expandDriver {
		trucks, err := h.truckService.ListExpanded(c.Request.Context())
		if err != nil {
			h.handleError(c, err)
			return
		}
		if trucks == nil {
			trucks = []service.ExpandedTruck{}
		}
		c.JSON(http.StatusOK, trucks)
		return
	}

	trucks, err := h.truckService.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	if trucks == nil {
		trucks = []model.Truck{}
	}

	c.JSON(http.StatusOK, trucks)
}

func (h *Handler) createTruck(c *gin.Context) {
	var req struct {
		TruckID             string            `json:"truckId"`
		PlateNumber         string            `json:"plateNumber"`
		Type                string            `json:"type"`
		Model               *string           `json:"model"`
		Capacity            *string           `json:"capacity"`
		Status              model.TruckStatus `json:"status"`
		AssignedDriverID    *string           `json:"assignedDriverId"`
		CurrentAssignmentID *string           `json:"currentAssignmentId"`
		CurrentLatitude     *float64          `json:"currentLatitude"`
		CurrentLongitude    *float64          `json:"currentLongitude"`
		OdometerKm          *float64          `json:"odometerKm"`
		FuelLevelPercent    *float64          `json:"fuelLevelPercent"`
		LastMaintenanceDate *time.Time        `json:"lastMaintenanceDate"`
		NextMaintenanceDate *time.Time        `json:"nextMaintenanceDate"`
		Notes               *string           `json:"notes"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	truck, err := h.truckService.Create(c.Request.Context(), service.CreateTruckInput{
		TruckID:             req.TruckID,
		PlateNumber:         req.PlateNumber,
		Type:                req.Type,
		Model:               req.Model,
		Capacity:            req.Capacity,
		Status:              req.Status,
		AssignedDriverID:    req.AssignedDriverID,
		CurrentAssignmentID: req.CurrentAssignmentID,
		CurrentLatitude:     req.CurrentLatitude,
		CurrentLongitude:    req.CurrentLongitude,
		OdometerKm:          req.OdometerKm,
		FuelLevelPercent:    req.FuelLevelPercent,
		LastMaintenanceDate: req.LastMaintenanceDate,
		NextMaintenanceDate: req.NextMaintenanceDate,
		Notes:               req.Notes,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, truck)
}

func (h *Handler) updateTruck(c *gin.Context) {
	var req struct {
		TruckID string `json:"truckId"`
		model.TruckPatch
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}
	if strings.TrimSpace(req.TruckID) == "" {
		c.JSON(http.StatusBadRequest, errorResponse("truckId is required"))
		return
	}

	truck, err := h.truckService.Update(c.Request.Context(), req.TruckID, req.TruckPatch)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, truck)
}

func (h *Handler) deleteTruck(c *gin.Context) {
	truckID := strings.TrimSpace(c.Query("truckId"))
	if truckID == "" {
		c.JSON(http.StatusBadRequest, errorResponse("truckId query param is required"))
		return
	}

	if err := h.truckService.Delete(c.Request.Context(), truckID); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// pathfinderStatus is a pure reverse proxy: upstream status and body are
// forwarded verbatim.
func (h *Handler) pathfinderStatus(c *gin.Context) {
	status, body, err := h.pathfinder.Status(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("pathfinder proxy error")
		c.JSON(http.StatusInternalServerError, errorResponse("failed to communicate with backend"))
		return
	}

	c.Data(status, "application/json", body)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse(err.Error()))
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
	default:
		h.log.Error().Err(err).Msg("handler error")
		c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
	}
}

func errorResponse(message string) gin.H {
	return gin.H{"error": message}
}
