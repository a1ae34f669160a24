package models

import (
	"time"
)

const (
	BuildingFeatureTable           = "building_features"
	BuildingFeatureMappingTable    = "building_feature_mappings"
	HousingUnitFeatureTable        = "housing_unit_features"
	HousingUnitFeatureMappingTable = "housing_unit_feature_mappings"
)

type BuildingFeature struct {
	ID    int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name  string    `json:"name" gorm:"type:text;not null;uniqueIndex:uniq_building_feature_name"`
	CDate time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
	MDate time.Time `json:"mdate" gorm:"type:timestamp with time zone;not null;default:clock_timestamp()"`
}

func (BuildingFeature) TableName() string { return BuildingFeatureTable }

type HousingUnitFeature struct {
	ID    int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name  string    `json:"name" gorm:"type:text;not null;uniqueIndex:uniq_housing_unit_feature_name"`
	CDate time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
	MDate time.Time `json:"mdate" gorm:"type:timestamp with time zone;not null;default:clock_timestamp()"`
}

func (HousingUnitFeature) TableName() string { return HousingUnitFeatureTable }

// The (parent, feature) unique index backs the engine's check-then-create.
type BuildingFeatureMapping struct {
	ID        int64           `json:"id" gorm:"primaryKey;autoIncrement"`
	ParentID  int64           `json:"buildingID" gorm:"column:building_id;not null;uniqueIndex:uniq_building_feature_mapping"`
	Parent    Building        `json:"-" gorm:"foreignKey:ParentID;references:ID;constraint:OnDelete:CASCADE;"`
	FeatureID int64           `json:"featureID" gorm:"column:feature_id;not null;index;uniqueIndex:uniq_building_feature_mapping"`
	Feature   BuildingFeature `json:"-" gorm:"foreignKey:FeatureID;references:ID;constraint:OnDelete:CASCADE;"`
	CDate     time.Time       `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
	MDate     time.Time       `json:"mdate" gorm:"type:timestamp with time zone;not null;default:clock_timestamp()"`
}

func (BuildingFeatureMapping) TableName() string { return BuildingFeatureMappingTable }

type HousingUnitFeatureMapping struct {
	ID        int64              `json:"id" gorm:"primaryKey;autoIncrement"`
	ParentID  int64              `json:"housingUnitID" gorm:"column:housing_unit_id;not null;uniqueIndex:uniq_housing_unit_feature_mapping"`
	Parent    HousingUnit        `json:"-" gorm:"foreignKey:ParentID;references:ID;constraint:OnDelete:CASCADE;"`
	FeatureID int64              `json:"featureID" gorm:"column:feature_id;not null;index;uniqueIndex:uniq_housing_unit_feature_mapping"`
	Feature   HousingUnitFeature `json:"-" gorm:"foreignKey:FeatureID;references:ID;constraint:OnDelete:CASCADE;"`
	CDate     time.Time          `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
	MDate     time.Time          `json:"mdate" gorm:"type:timestamp with time zone;not null;default:clock_timestamp()"`
}

func (HousingUnitFeatureMapping) TableName() string { return HousingUnitFeatureMappingTable }

// FeatureRow and MappingRow scan either catalog's tables.
type FeatureRow struct {
	ID    int64
	Name  string
	CDate time.Time
	MDate time.Time
}

type MappingRow struct {
	ID        int64
	ParentID  int64
	FeatureID int64
	CDate     time.Time
	MDate     time.Time
}
