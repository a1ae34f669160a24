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

type BuildingRepository struct {
	db *gorm.DB
}

func NewBuildingRepository(db *gorm.DB) *BuildingRepository {
	return &BuildingRepository{db: db}
}

func (r *BuildingRepository) Get(ctx context.Context, id int64) (domain.Building, error) {
	var building models.Building
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Take(&building).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Building{}, domain.NotFoundError{Resource: "building"}
	}
	if err != nil {
		return domain.Building{}, errors.Wrap(err, "BuildingRepository.Get")
	}
	return toBuilding(building), nil
}

func (r *BuildingRepository) Create(ctx context.Context, b domain.Building) (domain.Building, error) {
	now := time.Now()
	building := models.Building{
		Address: b.Address,
		City:    b.City,
		State:   b.State,
		ZipCode: b.ZipCode,
		CDate:   now,
		MDate:   now,
	}

	err := r.db.WithContext(ctx).Create(&building).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.Building{}, domain.AlreadyExistsError{Message: "A building with the same address already exists."}
	}
	if err != nil {
		return domain.Building{}, errors.Wrap(err, "BuildingRepository.Create")
	}
	return toBuilding(building), nil
}

func (r *BuildingRepository) Update(ctx context.Context, b domain.Building) (domain.Building, error) {
	b.MDate = time.Now()
	err := r.db.WithContext(ctx).
		Model(&models.Building{}).
		Where("id = ?", b.ID).
		Updates(map[string]any{
			"address":  b.Address,
			"city":     b.City,
			"state":    b.State,
			"zip_code": b.ZipCode,
			"m_date":   b.MDate,
		}).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.Building{}, domain.AlreadyExistsError{Message: "A building with the same address already exists."}
	}
	if err != nil {
		return domain.Building{}, errors.Wrap(err, "BuildingRepository.Update")
	}
	return b, nil
}

// Touch bumps the modification time of a building whose features changed.
func (r *BuildingRepository) Touch(ctx context.Context, id int64) error {
	err := r.db.WithContext(ctx).
		Model(&models.Building{}).
		Where("id = ?", id).
		Update("m_date", time.Now()).Error
	return errors.Wrap(err, "BuildingRepository.Touch")
}

func (r *BuildingRepository) List(ctx context.Context, filter domain.BuildingFilter) ([]domain.Building, error) {
	query := r.db.WithContext(ctx).Model(&models.Building{})
	switch {
	case filter.Address != "":
		query = query.Where("address = ?", filter.Address)
	case filter.City != "":
		query = query.Where("city = ?", filter.City)
	case filter.State != "":
		query = query.Where("state = ?", filter.State)
	}

	var buildings []models.Building
	if err := query.Order("id ASC").Find(&buildings).Error; err != nil {
		return nil, errors.Wrap(err, "BuildingRepository.List")
	}
	return toBuildings(buildings), nil
}

func (r *BuildingRepository) ListByIDs(ctx context.Context, ids []int64) ([]domain.Building, error) {
	if len(ids) == 0 {
		return []domain.Building{}, nil
	}
	var buildings []models.Building
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("id ASC").
		Find(&buildings).Error
	if err != nil {
		return nil, errors.Wrap(err, "BuildingRepository.ListByIDs")
	}
	return toBuildings(buildings), nil
}

func (r *BuildingRepository) ListForUser(ctx context.Context, userID int64) ([]domain.Building, error) {
	var mappings []models.BuildingUserMapping
	err := r.db.WithContext(ctx).
		Preload("Building").
		Where("user_id = ?", userID).
		Order("building_id ASC").
		Find(&mappings).Error
	if err != nil {
		return nil, errors.Wrap(err, "BuildingRepository.ListForUser")
	}

	buildings := make([]domain.Building, len(mappings))
	for i, m := range mappings {
		buildings[i] = toBuilding(m.Building)
	}
	return buildings, nil
}

func (r *BuildingRepository) LinkUser(ctx context.Context, userID, buildingID int64) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&models.BuildingUserMapping{
		UserID:     userID,
		BuildingID: buildingID,
	}).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.AlreadyExistsError{Message: "This building is already linked to the user."}
	}
	return errors.Wrap(err, "BuildingRepository.LinkUser")
}

func (r *BuildingRepository) UnlinkUser(ctx context.Context, userID, buildingID int64) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND building_id = ?", userID, buildingID).
		Delete(&models.BuildingUserMapping{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "BuildingRepository.UnlinkUser")
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundError{Resource: fmt.Sprintf("link between user %d and building %d", userID, buildingID)}
	}
	return nil
}

func toBuilding(m models.Building) domain.Building {
	return domain.Building{
		ID:      m.ID,
		Address: m.Address,
		City:    m.City,
		State:   m.State,
		ZipCode: m.ZipCode,
		CDate:   m.CDate,
		MDate:   m.MDate,
	}
}

func toBuildings(ms []models.Building) []domain.Building {
	out := make([]domain.Building, len(ms))
	for i, m := range ms {
		out[i] = toBuilding(m)
	}
	return out
}
