package models

// DashboardStats counts what the admin dashboard and /metrics report
type DashboardStats struct {
	Articles         int `json:"articles"`
	Images           int `json:"images"`
	Published        int `json:"published"`
	PendingDonations int `json:"pendingDonations"`
	PendingComments  int `json:"pendingComments"`
}
