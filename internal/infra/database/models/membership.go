package models

import (
	"time"
)

type BuildingUserMapping struct {
	UserID     int64     `json:"userID" gorm:"primaryKey"`
	User       User      `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE;"`
	BuildingID int64     `json:"buildingID" gorm:"primaryKey;index"`
	Building   Building  `json:"building" gorm:"foreignKey:BuildingID;references:ID;constraint:OnDelete:CASCADE;"`
	CDate      time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}

type HousingUnitUserMapping struct {
	UserID        int64       `json:"userID" gorm:"primaryKey"`
	User          User        `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE;"`
	HousingUnitID int64       `json:"housingUnitID" gorm:"primaryKey;index"`
	HousingUnit   HousingUnit `json:"housingUnit" gorm:"foreignKey:HousingUnitID;references:ID;constraint:OnDelete:CASCADE;"`
	CDate         time.Time   `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}
