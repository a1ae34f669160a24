package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kebabcase/housing/internal/domain"
	"github.com/kebabcase/housing/internal/infra/database/models"
)

type HousingUnitRepository struct {
	db *gorm.DB
}

func NewHousingUnitRepository(db *gorm.DB) *HousingUnitRepository {
	return &HousingUnitRepository{db: db}
}

func (r *HousingUnitRepository) Get(ctx context.Context, id int64) (domain.HousingUnit, error) {
	var unit models.HousingUnit
	err := r.db.WithContext(ctx).
		Preload("Building").
		Where("id = ?", id).
		Take(&unit).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.HousingUnit{}, domain.NotFoundError{Resource: "housing unit"}
	}
	if err != nil {
		return domain.HousingUnit{}, errors.Wrap(err, "HousingUnitRepository.Get")
	}
	return toHousingUnit(unit), nil
}

func (r *HousingUnitRepository) Create(ctx context.Context, u domain.HousingUnit) (domain.HousingUnit, error) {
	now := time.Now()
	unit := models.HousingUnit{
		BuildingID: u.BuildingID,
		UnitNumber: u.UnitNumber,
		CDate:      now,
		MDate:      now,
	}

	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&unit).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.HousingUnit{}, domain.AlreadyExistsError{Message: "A housing unit in the same building already exists."}
	}
	if err != nil {
		return domain.HousingUnit{}, errors.Wrap(err, "HousingUnitRepository.Create")
	}
	return toHousingUnit(unit), nil
}

func (r *HousingUnitRepository) Update(ctx context.Context, u domain.HousingUnit) (domain.HousingUnit, error) {
	u.MDate = time.Now()
	err := r.db.WithContext(ctx).
		Model(&models.HousingUnit{}).
		Where("id = ?", u.ID).
		Updates(map[string]any{
			"unit_number": u.UnitNumber,
			"m_date":      u.MDate,
		}).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.HousingUnit{}, domain.AlreadyExistsError{Message: "A housing unit in the same building already exists."}
	}
	if err != nil {
		return domain.HousingUnit{}, errors.Wrap(err, "HousingUnitRepository.Update")
	}
	return u, nil
}

func (r *HousingUnitRepository) Touch(ctx context.Context, id int64) error {
	err := r.db.WithContext(ctx).
		Model(&models.HousingUnit{}).
		Where("id = ?", id).
		Update("m_date", time.Now()).Error
	return errors.Wrap(err, "HousingUnitRepository.Touch")
}

func (r *HousingUnitRepository) ListByBuilding(ctx context.Context, buildingID int64) ([]domain.HousingUnit, error) {
	var units []models.HousingUnit
	err := r.db.WithContext(ctx).
		Where("building_id = ?", buildingID).
		Order("id ASC").
		Find(&units).Error
	if err != nil {
		return nil, errors.Wrap(err, "HousingUnitRepository.ListByBuilding")
	}

	out := make([]domain.HousingUnit, len(units))
	for i, u := range units {
		out[i] = toHousingUnit(u)
	}
	return out, nil
}

func (r *HousingUnitRepository) ListForUser(ctx context.Context, userID int64) ([]domain.HousingUnit, error) {
	var mappings []models.HousingUnitUserMapping
	err := r.db.WithContext(ctx).
		Preload("HousingUnit.Building").
		Where("user_id = ?", userID).
		Order("housing_unit_id ASC").
		Find(&mappings).Error
	if err != nil {
		return nil, errors.Wrap(err, "HousingUnitRepository.ListForUser")
	}

	out := make([]domain.HousingUnit, len(mappings))
	for i, m := range mappings {
		out[i] = toHousingUnit(m.HousingUnit)
	}
	return out, nil
}

func (r *HousingUnitRepository) LinkUser(ctx context.Context, userID, unitID int64) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&models.HousingUnitUserMapping{
		UserID:        userID,
		HousingUnitID: unitID,
	}).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.AlreadyExistsError{Message: "This housing unit is already linked to the user."}
	}
	return errors.Wrap(err, "HousingUnitRepository.LinkUser")
}

func (r *HousingUnitRepository) UnlinkUser(ctx context.Context, userID, unitID int64) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND housing_unit_id = ?", userID, unitID).
		Delete(&models.HousingUnitUserMapping{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "HousingUnitRepository.UnlinkUser")
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundError{Resource: fmt.Sprintf("link between user %d and housing unit %d", userID, unitID)}
	}
	return nil
}

func toHousingUnit(m models.HousingUnit) domain.HousingUnit {
	unit := domain.HousingUnit{
		ID:         m.ID,
		BuildingID: m.BuildingID,
		UnitNumber: m.UnitNumber,
		CDate:      m.CDate,
		MDate:      m.MDate,
	}
	if m.Building.ID != 0 {
		building := toBuilding(m.Building)
		unit.Building = &building
	}
	return unit
}
