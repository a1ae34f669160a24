package domain

import "time"

// Building is a street address that owns housing units and building features.
type Building struct {
	ID       int64     `json:"id"`
	Address  string    `json:"address"`
	City     string    `json:"city"`
	State    string    `json:"state"`
	ZipCode  string    `json:"zip_code"`
	CDate    time.Time `json:"created_datetime"`
	MDate    time.Time `json:"modified_datetime"`
	Features []string  `json:"features,omitempty"`
}

// HousingUnit is a single rentable unit inside a Building.
type HousingUnit struct {
	ID         int64     `json:"id"`
	BuildingID int64     `json:"building_id"`
	UnitNumber string    `json:"unit_number"`
	CDate      time.Time `json:"created_datetime"`
	MDate      time.Time `json:"modified_datetime"`
	Building   *Building `json:"building,omitempty"`
	Features   []string  `json:"housing_unit_features,omitempty"`
}

// BuildingFilter narrows a building listing. The first non-empty field wins.
type BuildingFilter struct {
	Address string
	City    string
	State   string
}
