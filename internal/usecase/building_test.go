package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kebabcase/housing/internal/domain"
	"github.com/kebabcase/housing/internal/reconcile"
)

type buildingFixture struct {
	repo      *mockBuildingRepo
	units     *mockUnitRepo
	users     *mockUserRepo
	catalog   *mockCatalog
	publisher *mockPublisher
	uc        *BuildingUsecase
}

func newBuildingFixture() *buildingFixture {
	f := &buildingFixture{
		repo: newMockBuildingRepo(domain.Building{
			ID: 1, Address: "1 Main St", City: "Springfield", State: "IL", ZipCode: "62701",
		}),
		units:     newMockUnitRepo(),
		users:     &mockUserRepo{users: map[int64]domain.User{7: {ID: 7, EmailAddress: "a@example.com"}}},
		catalog:   newMockCatalog(domain.KindBuilding, map[int64]string{1: "Elevator", 2: "Gym", 5: "Pool", 6: "Roof deck"}),
		publisher: &mockPublisher{},
	}
	f.uc = NewBuildingUsecase(f.repo, f.units, f.users, f.catalog, f.publisher, zap.NewNop())
	return f
}

func TestBuildingUpdateAddsFeatures(t *testing.T) {
	f := newBuildingFixture()

	result, err := f.uc.Update(context.Background(), BuildingUpdateInput{ID: 1, AddFeatures: ids(1, 2)})
	require.NoError(t, err)

	assert.Equal(t, reconcile.StatusOK, result.Status)
	assert.Equal(t, "Building info has been successfully updated!", result.Message)
	assert.Equal(t, []int64{1, 2}, f.catalog.linked(1))
	assert.Equal(t, 0, f.repo.updates)
	assert.Equal(t, 1, f.repo.touches)

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, "building", f.publisher.events[0].Kind)
	assert.Equal(t, []int64{1, 2}, f.publisher.events[0].Added)
}

func TestBuildingUpdateParentNotFound(t *testing.T) {
	f := newBuildingFixture()

	result, err := f.uc.Update(context.Background(), BuildingUpdateInput{ID: 42, AddFeatures: ids(1)})
	require.NoError(t, err)

	assert.Equal(t, reconcile.StatusNotFound, result.Status)
	assert.Equal(t, "Building not found", result.Message)
	assert.Empty(t, f.catalog.associations)
}

func TestBuildingUpdateNothingSupplied(t *testing.T) {
	f := newBuildingFixture()

	result, err := f.uc.Update(context.Background(), BuildingUpdateInput{ID: 1})
	require.NoError(t, err)

	assert.Equal(t, reconcile.StatusBadRequest, result.Status)
	assert.Equal(t, "No fields provided for update", result.Message)
	assert.Equal(t, 0, f.repo.updates)
}

func TestBuildingUpdateConflictWritesNothing(t *testing.T) {
	f := newBuildingFixture()

	result, err := f.uc.Update(context.Background(), BuildingUpdateInput{
		ID:             1,
		City:           str("Shelbyville"),
		AddFeatures:    ids(5, 6, 1),
		RemoveFeatures: ids(6, 5),
	})
	require.NoError(t, err)

	assert.Equal(t, reconcile.StatusBadRequest, result.Status)
	assert.Equal(t, "Conflict: Feature IDs present in both add and remove lists: [5, 6]", result.Message)
	assert.Equal(t, 0, f.repo.updates)
	assert.Equal(t, "Springfield", f.repo.buildings[1].City)
	assert.Empty(t, f.catalog.associations)
}

func TestBuildingUpdatePlainFieldsOnly(t *testing.T) {
	f := newBuildingFixture()

	result, err := f.uc.Update(context.Background(), BuildingUpdateInput{ID: 1, ZipCode: str("62702")})
	require.NoError(t, err)

	assert.Equal(t, reconcile.StatusOK, result.Status)
	assert.Equal(t, 1, f.repo.updates)
	assert.Equal(t, "62702", f.repo.buildings[1].ZipCode)
	assert.Equal(t, "1 Main St", f.repo.buildings[1].Address)
	assert.Empty(t, f.publisher.events)
}

func TestBuildingUpdatePartial(t *testing.T) {
	f := newBuildingFixture()

	result, err := f.uc.Update(context.Background(), BuildingUpdateInput{ID: 1, AddFeatures: ids(1, 99)})
	require.NoError(t, err)

	assert.Equal(t, reconcile.StatusPartialContent, result.Status)
	assert.Equal(t, "Building updated, but the following feature IDs were not found: [99]", result.Message)
	assert.Equal(t, []int64{1}, f.catalog.linked(1))
}

func TestBuildingUpdateAllInvalid(t *testing.T) {
	f := newBuildingFixture()

	result, err := f.uc.Update(context.Background(), BuildingUpdateInput{ID: 1, AddFeatures: ids(98, 99)})
	require.NoError(t, err)
	assert.Equal(t, reconcile.StatusNotFound, result.Status)
	assert.Equal(t, "Could not find any of the requested features", result.Message)
	assert.Equal(t, 0, f.repo.touches)

	result, err = f.uc.Update(context.Background(), BuildingUpdateInput{ID: 1, State: str("WI"), AddFeatures: ids(98, 99)})
	require.NoError(t, err)
	assert.Equal(t, reconcile.StatusPartialContent, result.Status)
	assert.Equal(t, "WI", f.repo.buildings[1].State)
}

func TestBuildingUpdateEmptyListsSucceed(t *testing.T) {
	f := newBuildingFixture()

	result, err := f.uc.Update(context.Background(), BuildingUpdateInput{ID: 1, AddFeatures: ids(), RemoveFeatures: ids()})
	require.NoError(t, err)
	assert.Equal(t, reconcile.StatusOK, result.Status)
	assert.Empty(t, f.publisher.events)
}

func TestBuildingUpdateStoreFailure(t *testing.T) {
	f := newBuildingFixture()
	f.catalog.failCreate = true

	_, err := f.uc.Update(context.Background(), BuildingUpdateInput{ID: 1, AddFeatures: ids(1)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestBuildingUpdatePublishFailureIsNotReturned(t *testing.T) {
	f := newBuildingFixture()
	f.publisher.err = errors.New("redis down")

	result, err := f.uc.Update(context.Background(), BuildingUpdateInput{ID: 1, AddFeatures: ids(2)})
	require.NoError(t, err)
	assert.Equal(t, reconcile.StatusOK, result.Status)
	assert.Len(t, f.publisher.events, 1)
}

func TestBuildingCreate(t *testing.T) {
	f := newBuildingFixture()

	created, err := f.uc.Create(context.Background(), BuildingCreateInput{
		Address: "2 Oak Ave", City: "Springfield", State: "IL", ZipCode: "62701",
		Features: ids(5, 77),
	})
	require.NoError(t, err)

	assert.True(t, created.Partial())
	assert.Equal(t, int64(2), created.ID)
	assert.Equal(t, []int64{77}, created.InvalidIDs)
	assert.Equal(t, "Building created, but the following feature IDs were not found: [77]", created.Message)
	assert.Equal(t, []int64{5}, f.catalog.linked(2))

	created, err = f.uc.Create(context.Background(), BuildingCreateInput{Address: "3 Elm", City: "X", State: "IL", ZipCode: "1"})
	require.NoError(t, err)
	assert.False(t, created.Partial())
	assert.Equal(t, "Building was added successfully! Building ID: 3", created.Message)

	_, err = f.uc.Create(context.Background(), BuildingCreateInput{Address: "1 Main St", City: "Springfield", State: "IL", ZipCode: "62701"})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestBuildingGetIncludesFeatureNames(t *testing.T) {
	f := newBuildingFixture()
	_, err := f.uc.Update(context.Background(), BuildingUpdateInput{ID: 1, AddFeatures: ids(5, 2)})
	require.NoError(t, err)

	building, err := f.uc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Gym", "Pool"}, building.Features)

	_, err = f.uc.Get(context.Background(), 9)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBuildingListByFeature(t *testing.T) {
	f := newBuildingFixture()
	_, err := f.uc.Update(context.Background(), BuildingUpdateInput{ID: 1, AddFeatures: ids(6)})
	require.NoError(t, err)

	buildings, err := f.uc.ListByFeature(context.Background(), 6)
	require.NoError(t, err)
	require.Len(t, buildings, 1)
	assert.Equal(t, int64(1), buildings[0].ID)

	buildings, err = f.uc.ListByFeature(context.Background(), 2)
	require.NoError(t, err)
	assert.Empty(t, buildings)

	_, err = f.uc.ListByFeature(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBuildingUserLinks(t *testing.T) {
	f := newBuildingFixture()
	ctx := context.Background()

	require.NoError(t, f.uc.LinkUser(ctx, 7, 1))
	assert.ErrorIs(t, f.uc.LinkUser(ctx, 7, 1), domain.ErrAlreadyExists)
	assert.ErrorIs(t, f.uc.LinkUser(ctx, 8, 1), domain.ErrNotFound)
	assert.ErrorIs(t, f.uc.LinkUser(ctx, 7, 3), domain.ErrNotFound)

	buildings, err := f.uc.ListForUser(ctx, 7)
	require.NoError(t, err)
	require.Len(t, buildings, 1)

	require.NoError(t, f.uc.UnlinkUser(ctx, 7, 1))
	assert.ErrorIs(t, f.uc.UnlinkUser(ctx, 7, 1), domain.ErrNotFound)
}

func TestBuildingListHousingUnits(t *testing.T) {
	f := newBuildingFixture()
	f.units.units[3] = domain.HousingUnit{ID: 3, BuildingID: 1, UnitNumber: "1A"}

	units, err := f.uc.ListHousingUnits(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, "1A", units[0].UnitNumber)

	_, err = f.uc.ListHousingUnits(context.Background(), 2)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
