package models

import "time"

type Equipment struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	AssetTag     string    `json:"asset_tag"`
	Location     string    `json:"location"`
	Manufacturer string    `json:"manufacturer"`
	Model        string    `json:"model"`
	CreatedAt    time.Time `json:"created_at"`
}
