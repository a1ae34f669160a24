package rest

import (
	"github.com/kebabcase/housing/internal/usecase"
)

type createUserRequest struct {
	FirstName    string `json:"first_name" validate:"required,max=100"`
	LastName     string `json:"last_name" validate:"required,max=100"`
	EmailAddress string `json:"email_address" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8"`
}

type authenticateRequest struct {
	EmailAddress string `json:"email_address" validate:"required,email"`
	Password     string `json:"password" validate:"required"`
	Client       string `json:"client" validate:"required"`
}

type createFeatureRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

type createBuildingRequest struct {
	Address  string   `json:"address" validate:"required"`
	City     string   `json:"city" validate:"required"`
	State    string   `json:"state" validate:"required"`
	ZipCode  string   `json:"zip_code" validate:"required"`
	Features *[]int64 `json:"features"`
}

func (r createBuildingRequest) input() usecase.BuildingCreateInput {
	return usecase.BuildingCreateInput{
		Address:  r.Address,
		City:     r.City,
		State:    r.State,
		ZipCode:  r.ZipCode,
		Features: r.Features,
	}
}

// A nil list was not supplied. An empty list was supplied and is empty.
type updateBuildingRequest struct {
	Address        *string  `json:"address" validate:"omitnil,min=1"`
	City           *string  `json:"city" validate:"omitnil,min=1"`
	State          *string  `json:"state" validate:"omitnil,min=1"`
	ZipCode        *string  `json:"zip_code" validate:"omitnil,min=1"`
	AddFeatures    *[]int64 `json:"add_features"`
	RemoveFeatures *[]int64 `json:"remove_features"`
}

func (r updateBuildingRequest) input(id int64) usecase.BuildingUpdateInput {
	return usecase.BuildingUpdateInput{
		ID:             id,
		Address:        r.Address,
		City:           r.City,
		State:          r.State,
		ZipCode:        r.ZipCode,
		AddFeatures:    r.AddFeatures,
		RemoveFeatures: r.RemoveFeatures,
	}
}

type createHousingUnitRequest struct {
	BuildingID int64    `json:"building_id" validate:"required,gt=0"`
	UnitNumber string   `json:"unit_number" validate:"required"`
	Features   *[]int64 `json:"features"`
}

type updateHousingUnitRequest struct {
	UnitNumber     *string  `json:"unit_number" validate:"omitnil,min=1"`
	AddFeatures    *[]int64 `json:"add_features"`
	RemoveFeatures *[]int64 `json:"remove_features"`
}

func (r updateHousingUnitRequest) input(id int64) usecase.HousingUnitUpdateInput {
	return usecase.HousingUnitUpdateInput{
		ID:             id,
		UnitNumber:     r.UnitNumber,
		AddFeatures:    r.AddFeatures,
		RemoveFeatures: r.RemoveFeatures,
	}
}
