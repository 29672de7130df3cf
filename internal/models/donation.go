package models

import (
	"time"
)

// DonationStatus represents the verification state of a donation
type DonationStatus string

const (
	DonationStatusPending  DonationStatus = "PENDING"
	DonationStatusVerified DonationStatus = "VERIFIED"
	DonationStatusRejected DonationStatus = "REJECTED"
)

// ValidDonationStatuses defines allowed donation statuses
var ValidDonationStatuses = map[DonationStatus]bool{
	DonationStatusPending:  true,
	DonationStatusVerified: true,
	DonationStatusRejected: true,
}

// CanTransitionTo reports whether an admin may move a donation from s to next.
// Only pending donations can be decided, and only to a final state.
func (s DonationStatus) CanTransitionTo(next DonationStatus) bool {
	if s != DonationStatusPending {
		return false
	}
	return next == DonationStatusVerified || next == DonationStatusRejected
}

// Donation represents a donor pledge with its proof of transfer
type Donation struct {
	ID             string         `json:"id" db:"id"`
	Name           string         `json:"name" db:"name"`
	City           string         `json:"city" db:"city"`
	Amount         int64          `json:"amount" db:"amount"`
	ProofImagePath string         `json:"proofImagePath" db:"proof_image_path"`
	Status         DonationStatus `json:"status" db:"status"`
	CreatedAt      time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time      `json:"updatedAt" db:"updated_at"`
}

// DonationInput is the text part of a donor submission
type DonationInput struct {
	Name   string `form:"name" binding:"required"`
	City   string `form:"city" binding:"required"`
	Amount string `form:"amount" binding:"required"`
}

// DonationFilter narrows donation listings
type DonationFilter struct {
	Status DonationStatus
	Page   int
	Limit  int
}

// Offset returns the row offset of the requested page
func (f DonationFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// Pagination describes a page of results
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// DonationPage is a page of donations with its pagination info
type DonationPage struct {
	Donations  []*Donation `json:"donations"`
	Pagination Pagination  `json:"pagination"`
}
