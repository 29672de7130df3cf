package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rosa-mystica-tuntang/web/internal/config"
	"github.com/rosa-mystica-tuntang/web/internal/models"
	"github.com/rosa-mystica-tuntang/web/internal/service"
	"github.com/rosa-mystica-tuntang/web/internal/validation"
	"github.com/rs/zerolog"
)

const donationNotFound = "Donation not found"

// DonationHandler handles donation endpoints
type DonationHandler struct {
	services *service.Services
	cfg      *config.Config
	log      zerolog.Logger
}

// NewDonationHandler creates a new DonationHandler
func NewDonationHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *DonationHandler {
	return &DonationHandler{
		services: services,
		cfg:      cfg,
		log:      log.With().Str("handler", "donation").Logger(),
	}
}

// Create handles POST /api/donations
// Multipart fields: name, city, amount, proofFile
func (h *DonationHandler) Create(c *gin.Context) {
	var in models.DonationInput
	if err := c.ShouldBind(&in); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			respondError(c, h.log, formError(err), donationNotFound, "Failed to save donation")
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
		return
	}
	proof, err := readUpload(c, "proofFile", h.cfg.Storage.MaxProofSize)
	if err != nil {
		respondError(c, h.log, err, donationNotFound, "Failed to save donation")
		return
	}

	d, err := h.services.Donation.Create(c.Request.Context(), &in, proof)
	if err != nil {
		respondError(c, h.log, err, donationNotFound, "Failed to save donation")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Donation submitted successfully",
		"donation": gin.H{
			"id":        d.ID,
			"name":      d.Name,
			"city":      d.City,
			"amount":    d.Amount,
			"status":    d.Status,
			"createdAt": d.CreatedAt,
		},
	})
}

// List handles GET /api/donations?status=&page=&limit=
func (h *DonationHandler) List(c *gin.Context) {
	filter := models.DonationFilter{
		Page:  queryInt(c, "page", 1),
		Limit: queryInt(c, "limit", 10),
	}
	if raw := c.Query("status"); raw != "" {
		status, err := validation.ParseDonationStatus(raw)
		if err != nil {
			respondError(c, h.log, err, donationNotFound, "Failed to fetch donations")
			return
		}
		filter.Status = status
	}

	page, err := h.services.Donation.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.log, err, donationNotFound, "Failed to fetch donations")
		return
	}
	c.JSON(http.StatusOK, page)
}

// Get handles GET /api/donations/:id
func (h *DonationHandler) Get(c *gin.Context) {
	d, err := h.services.Donation.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err, donationNotFound, "Failed to fetch donation")
		return
	}
	c.JSON(http.StatusOK, gin.H{"donation": d})
}

// UpdateStatus handles PUT /api/donations/:id
func (h *DonationHandler) UpdateStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" form:"status"`
	}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	d, err := h.services.Donation.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, h.log, err, donationNotFound, "Failed to update donation status")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Donation status updated successfully",
		"donation": d,
	})
}

// queryInt reads a positive integer query parameter
func queryInt(c *gin.Context, key string, def int) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil || n < 1 {
		return def
	}
	return n
}
