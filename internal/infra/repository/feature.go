package repository

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kebabcase/housing/internal/domain"
	"github.com/kebabcase/housing/internal/infra/database/models"
)

// catalog describes where one ParentKind keeps its features and mappings.
type catalog struct {
	kind         domain.ParentKind
	features     string
	mappings     string
	parentColumn string
}

var catalogs = map[domain.ParentKind]catalog{
	domain.KindBuilding: {
		kind:         domain.KindBuilding,
		features:     models.BuildingFeatureTable,
		mappings:     models.BuildingFeatureMappingTable,
		parentColumn: "building_id",
	},
	domain.KindHousingUnit: {
		kind:         domain.KindHousingUnit,
		features:     models.HousingUnitFeatureTable,
		mappings:     models.HousingUnitFeatureMappingTable,
		parentColumn: "housing_unit_id",
	},
}

// FeatureRepository is the gorm-backed store for one feature catalog.
type FeatureRepository struct {
	db      *gorm.DB
	catalog catalog
}

func NewFeatureRepository(db *gorm.DB, kind domain.ParentKind) *FeatureRepository {
	c, ok := catalogs[kind]
	if !ok {
		panic(fmt.Sprintf("no feature catalog for kind %d", kind))
	}
	return &FeatureRepository{db: db, catalog: c}
}

func (r *FeatureRepository) Kind() domain.ParentKind {
	return r.catalog.kind
}

func (r *FeatureRepository) FindFeature(ctx context.Context, id int64) (domain.Feature, bool, error) {
	var row models.FeatureRow
	err := r.db.WithContext(ctx).
		Table(r.catalog.features).
		Where("id = ?", id).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Feature{}, false, nil
	}
	if err != nil {
		return domain.Feature{}, false, errors.Wrap(err, "FeatureRepository.FindFeature")
	}
	return r.toFeature(row), true, nil
}

func (r *FeatureRepository) FindAssociation(ctx context.Context, parentID, featureID int64) (domain.Association, bool, error) {
	var row models.MappingRow
	err := r.db.WithContext(ctx).
		Table(r.catalog.mappings).
		Select(fmt.Sprintf("id, %s AS parent_id, feature_id, c_date, m_date", r.catalog.parentColumn)).
		Where(fmt.Sprintf("%s = ? AND feature_id = ?", r.catalog.parentColumn), parentID, featureID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Association{}, false, nil
	}
	if err != nil {
		return domain.Association{}, false, errors.Wrap(err, "FeatureRepository.FindAssociation")
	}
	return domain.Association{
		ID:        row.ID,
		Kind:      r.catalog.kind,
		ParentID:  row.ParentID,
		FeatureID: row.FeatureID,
		CDate:     row.CDate,
		MDate:     row.MDate,
	}, true, nil
}

// CreateAssociation relies on the unique (parent, feature) index so that two
// racing reconciles end with a single row.
func (r *FeatureRepository) CreateAssociation(ctx context.Context, parentID, featureID int64) error {
	var mapping any
	switch r.catalog.kind {
	case domain.KindBuilding:
		mapping = &models.BuildingFeatureMapping{ParentID: parentID, FeatureID: featureID}
	case domain.KindHousingUnit:
		mapping = &models.HousingUnitFeatureMapping{ParentID: parentID, FeatureID: featureID}
	}

	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(mapping).Error
	if err != nil {
		return errors.Wrap(err, "FeatureRepository.CreateAssociation")
	}
	return nil
}

func (r *FeatureRepository) DeleteAssociation(ctx context.Context, association domain.Association) error {
	err := r.db.WithContext(ctx).
		Table(r.catalog.mappings).
		Where("id = ?", association.ID).
		Delete(&models.MappingRow{}).Error
	if err != nil {
		return errors.Wrap(err, "FeatureRepository.DeleteAssociation")
	}
	return nil
}

func (r *FeatureRepository) List(ctx context.Context) ([]domain.Feature, error) {
	var rows []models.FeatureRow
	err := r.db.WithContext(ctx).
		Table(r.catalog.features).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "FeatureRepository.List")
	}

	features := make([]domain.Feature, len(rows))
	for i, row := range rows {
		features[i] = r.toFeature(row)
	}
	return features, nil
}

func (r *FeatureRepository) Create(ctx context.Context, name string) (domain.Feature, error) {
	var row models.FeatureRow
	var err error

	switch r.catalog.kind {
	case domain.KindBuilding:
		feature := models.BuildingFeature{Name: name}
		err = r.db.WithContext(ctx).Create(&feature).Error
		row = models.FeatureRow{ID: feature.ID, Name: feature.Name, CDate: feature.CDate, MDate: feature.MDate}
	case domain.KindHousingUnit:
		feature := models.HousingUnitFeature{Name: name}
		err = r.db.WithContext(ctx).Create(&feature).Error
		row = models.FeatureRow{ID: feature.ID, Name: feature.Name, CDate: feature.CDate, MDate: feature.MDate}
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.Feature{}, domain.AlreadyExistsError{Message: fmt.Sprintf("feature %q already exists", name)}
	}
	if err != nil {
		return domain.Feature{}, errors.Wrap(err, "FeatureRepository.Create")
	}
	return r.toFeature(row), nil
}

// Names returns the feature names attached to a parent, alphabetically.
func (r *FeatureRepository) Names(ctx context.Context, parentID int64) ([]string, error) {
	names := []string{}
	err := r.db.WithContext(ctx).
		Table(r.catalog.features+" AS f").
		Joins(fmt.Sprintf("JOIN %s m ON m.feature_id = f.id", r.catalog.mappings)).
		Where(fmt.Sprintf("m.%s = ?", r.catalog.parentColumn), parentID).
		Order("f.name ASC").
		Pluck("f.name", &names).Error
	if err != nil {
		return nil, errors.Wrap(err, "FeatureRepository.Names")
	}
	return names, nil
}

// ParentIDs returns the ids of every parent carrying the feature.
func (r *FeatureRepository) ParentIDs(ctx context.Context, featureID int64) ([]int64, error) {
	ids := []int64{}
	err := r.db.WithContext(ctx).
		Table(r.catalog.mappings).
		Where("feature_id = ?", featureID).
		Order(r.catalog.parentColumn+" ASC").
		Pluck(r.catalog.parentColumn, &ids).Error
	if err != nil {
		return nil, errors.Wrap(err, "FeatureRepository.ParentIDs")
	}
	return ids, nil
}

func (r *FeatureRepository) toFeature(row models.FeatureRow) domain.Feature {
	return domain.Feature{
		ID:    row.ID,
		Kind:  r.catalog.kind,
		Name:  row.Name,
		CDate: row.CDate,
		MDate: row.MDate,
	}
}
