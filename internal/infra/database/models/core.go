package models

import (
	"time"
)

type Building struct {
	ID      int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Address string    `json:"address" gorm:"type:text;not null;uniqueIndex:uniq_building_address"`
	City    string    `json:"city" gorm:"type:text;not null;index;uniqueIndex:uniq_building_address"`
	State   string    `json:"state" gorm:"type:text;not null;index;uniqueIndex:uniq_building_address"`
	ZipCode string    `json:"zipCode" gorm:"type:text;not null;uniqueIndex:uniq_building_address"`
	CDate   time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
	MDate   time.Time `json:"mdate" gorm:"type:timestamp with time zone;not null;default:clock_timestamp()"`
}

type HousingUnit struct {
	ID         int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	BuildingID int64     `json:"buildingID" gorm:"not null;uniqueIndex:uniq_housing_unit_number"`
	Building   Building  `json:"building" gorm:"foreignKey:BuildingID;references:ID;constraint:OnDelete:CASCADE;"`
	UnitNumber string    `json:"unitNumber" gorm:"type:text;not null;uniqueIndex:uniq_housing_unit_number"`
	CDate      time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
	MDate      time.Time `json:"mdate" gorm:"type:timestamp with time zone;not null;default:clock_timestamp()"`
}

type User struct {
	ID           int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	FirstName    string    `json:"firstName" gorm:"type:text"`
	LastName     string    `json:"lastName" gorm:"type:text"`
	EmailAddress string    `json:"emailAddress" gorm:"type:text;not null;uniqueIndex"`
	Password     string    `json:"-" gorm:"type:text;not null"`
	CDate        time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
	MDate        time.Time `json:"mdate" gorm:"type:timestamp with time zone;not null;default:clock_timestamp()"`
}

type Client struct {
	ID    int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name  string    `json:"name" gorm:"type:text;not null;uniqueIndex"`
	CDate time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}

type Token struct {
	ID       int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	Token    string     `json:"token" gorm:"type:text;not null;uniqueIndex"`
	UserID   int64      `json:"userID" gorm:"not null;index"`
	User     User       `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE;"`
	ClientID int64      `json:"clientID" gorm:"not null"`
	Client   Client     `json:"-" gorm:"foreignKey:ClientID;references:ID;constraint:OnDelete:CASCADE;"`
	Expires  *time.Time `json:"expires" gorm:"type:timestamp with time zone"`
	CDate    time.Time  `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}
