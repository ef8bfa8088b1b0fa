// Package models pkg/models/device.go
package models

// APStats is the live statistics snapshot for an access point.
type APStats struct {
	Status     string  `json:"status"`
	Uptime     int64   `json:"uptime"` // seconds since boot
	NumClients int     `json:"num_clients"`
	CPUUtil    float64 `json:"cpu_util"`
	MemUtil    float64 `json:"mem_util"`
	IP         string  `json:"ip"`
	Version    string  `json:"version"`
}

// APStatusConnected is the stats status value for an online AP.
const APStatusConnected = "connected"

// Online reports whether the AP is currently connected to the cloud.
func (s *APStats) Online() bool {
	return s != nil && s.Status == APStatusConnected
}

// APDetails is the configuration/metadata record for an access point.
type APDetails struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Model    string `json:"model"`
	Serial   string `json:"serial,omitempty"`
	SiteID   string `json:"site_id,omitempty"`
	MAC      string `json:"mac,omitempty"`
	HwRev    string `json:"hw_rev,omitempty"`
	Notes    string `json:"notes,omitempty"`
	Disabled bool   `json:"disabled,omitempty"`
}

// WLAN is a wireless network configured on a site.
type WLAN struct {
	ID      string `json:"id"`
	SSID    string `json:"ssid"`
	Enabled bool   `json:"enabled"`
}
