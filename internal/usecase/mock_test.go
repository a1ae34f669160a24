package usecase

import (
	"context"
	"errors"
	"sort"

	"github.com/kebabcase/housing/internal/domain"
	"github.com/kebabcase/housing/internal/service"
)

type mockBuildingRepo struct {
	buildings map[int64]domain.Building
	links     map[[2]int64]bool
	nextID    int64
	updates   int
	touches   int
}

func newMockBuildingRepo(buildings ...domain.Building) *mockBuildingRepo {
	m := &mockBuildingRepo{buildings: map[int64]domain.Building{}, links: map[[2]int64]bool{}}
	for _, b := range buildings {
		m.buildings[b.ID] = b
		if b.ID > m.nextID {
			m.nextID = b.ID
		}
	}
	return m
}

func (m *mockBuildingRepo) Get(ctx context.Context, id int64) (domain.Building, error) {
	b, ok := m.buildings[id]
	if !ok {
		return domain.Building{}, domain.NotFoundError{Resource: "building"}
	}
	return b, nil
}

func (m *mockBuildingRepo) Create(ctx context.Context, b domain.Building) (domain.Building, error) {
	for _, existing := range m.buildings {
		if existing.Address == b.Address && existing.City == b.City && existing.State == b.State && existing.ZipCode == b.ZipCode {
			return domain.Building{}, domain.AlreadyExistsError{Message: "A building with the same address already exists."}
		}
	}
	m.nextID++
	b.ID = m.nextID
	m.buildings[b.ID] = b
	return b, nil
}

func (m *mockBuildingRepo) Update(ctx context.Context, b domain.Building) (domain.Building, error) {
	m.updates++
	m.buildings[b.ID] = b
	return b, nil
}

func (m *mockBuildingRepo) Touch(ctx context.Context, id int64) error {
	m.touches++
	return nil
}

func (m *mockBuildingRepo) List(ctx context.Context, filter domain.BuildingFilter) ([]domain.Building, error) {
	var out []domain.Building
	for _, b := range m.buildings {
		if filter.City != "" && b.City != filter.City {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockBuildingRepo) ListByIDs(ctx context.Context, ids []int64) ([]domain.Building, error) {
	var out []domain.Building
	for _, id := range ids {
		if b, ok := m.buildings[id]; ok {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *mockBuildingRepo) ListForUser(ctx context.Context, userID int64) ([]domain.Building, error) {
	var out []domain.Building
	for k := range m.links {
		if k[0] == userID {
			out = append(out, m.buildings[k[1]])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockBuildingRepo) LinkUser(ctx context.Context, userID, buildingID int64) error {
	key := [2]int64{userID, buildingID}
	if m.links[key] {
		return domain.AlreadyExistsError{Message: "This building is already linked to the user."}
	}
	m.links[key] = true
	return nil
}

func (m *mockBuildingRepo) UnlinkUser(ctx context.Context, userID, buildingID int64) error {
	key := [2]int64{userID, buildingID}
	if !m.links[key] {
		return domain.NotFoundError{Resource: "link"}
	}
	delete(m.links, key)
	return nil
}

type mockUnitRepo struct {
	units   map[int64]domain.HousingUnit
	nextID  int64
	updates int
	touches int
}

func newMockUnitRepo(units ...domain.HousingUnit) *mockUnitRepo {
	m := &mockUnitRepo{units: map[int64]domain.HousingUnit{}}
	for _, u := range units {
		m.units[u.ID] = u
		if u.ID > m.nextID {
			m.nextID = u.ID
		}
	}
	return m
}

func (m *mockUnitRepo) Get(ctx context.Context, id int64) (domain.HousingUnit, error) {
	u, ok := m.units[id]
	if !ok {
		return domain.HousingUnit{}, domain.NotFoundError{Resource: "housing unit"}
	}
	return u, nil
}

func (m *mockUnitRepo) Create(ctx context.Context, u domain.HousingUnit) (domain.HousingUnit, error) {
	for _, existing := range m.units {
		if existing.BuildingID == u.BuildingID && existing.UnitNumber == u.UnitNumber {
			return domain.HousingUnit{}, domain.AlreadyExistsError{Message: "A housing unit in the same building already exists."}
		}
	}
	m.nextID++
	u.ID = m.nextID
	m.units[u.ID] = u
	return u, nil
}

func (m *mockUnitRepo) Update(ctx context.Context, u domain.HousingUnit) (domain.HousingUnit, error) {
	m.updates++
	m.units[u.ID] = u
	return u, nil
}

func (m *mockUnitRepo) Touch(ctx context.Context, id int64) error {
	m.touches++
	return nil
}

func (m *mockUnitRepo) ListByBuilding(ctx context.Context, buildingID int64) ([]domain.HousingUnit, error) {
	var out []domain.HousingUnit
	for _, u := range m.units {
		if u.BuildingID == buildingID {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockUnitRepo) ListForUser(ctx context.Context, userID int64) ([]domain.HousingUnit, error) {
	return nil, nil
}

func (m *mockUnitRepo) LinkUser(ctx context.Context, userID, unitID int64) error {
	return nil
}

func (m *mockUnitRepo) UnlinkUser(ctx context.Context, userID, unitID int64) error {
	return nil
}

type mockCatalog struct {
	kind         domain.ParentKind
	features     map[int64]string
	associations map[[2]int64]domain.Association
	nextID       int64
	failCreate   bool
}

func newMockCatalog(kind domain.ParentKind, features map[int64]string) *mockCatalog {
	return &mockCatalog{
		kind:         kind,
		features:     features,
		associations: map[[2]int64]domain.Association{},
	}
}

func (m *mockCatalog) Kind() domain.ParentKind { return m.kind }

func (m *mockCatalog) FindFeature(ctx context.Context, id int64) (domain.Feature, bool, error) {
	name, ok := m.features[id]
	if !ok {
		return domain.Feature{}, false, nil
	}
	return domain.Feature{ID: id, Kind: m.kind, Name: name}, true, nil
}

func (m *mockCatalog) FindAssociation(ctx context.Context, parentID, featureID int64) (domain.Association, bool, error) {
	a, ok := m.associations[[2]int64{parentID, featureID}]
	return a, ok, nil
}

func (m *mockCatalog) CreateAssociation(ctx context.Context, parentID, featureID int64) error {
	if m.failCreate {
		return errors.New("connection refused")
	}
	m.nextID++
	m.associations[[2]int64{parentID, featureID}] = domain.Association{
		ID: m.nextID, Kind: m.kind, ParentID: parentID, FeatureID: featureID,
	}
	return nil
}

func (m *mockCatalog) DeleteAssociation(ctx context.Context, a domain.Association) error {
	delete(m.associations, [2]int64{a.ParentID, a.FeatureID})
	return nil
}

func (m *mockCatalog) List(ctx context.Context) ([]domain.Feature, error) {
	var out []domain.Feature
	for id, name := range m.features {
		out = append(out, domain.Feature{ID: id, Kind: m.kind, Name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *mockCatalog) Create(ctx context.Context, name string) (domain.Feature, error) {
	for _, existing := range m.features {
		if existing == name {
			return domain.Feature{}, domain.AlreadyExistsError{Message: "duplicate feature"}
		}
	}
	id := int64(len(m.features) + 1)
	m.features[id] = name
	return domain.Feature{ID: id, Kind: m.kind, Name: name}, nil
}

func (m *mockCatalog) Names(ctx context.Context, parentID int64) ([]string, error) {
	var out []string
	for k := range m.associations {
		if k[0] == parentID {
			out = append(out, m.features[k[1]])
		}
	}
	sort.Strings(out)
	return out, nil
}

func (m *mockCatalog) ParentIDs(ctx context.Context, featureID int64) ([]int64, error) {
	var out []int64
	for k := range m.associations {
		if k[1] == featureID {
			out = append(out, k[0])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

func (m *mockCatalog) linked(parentID int64) []int64 {
	var out []int64
	for k := range m.associations {
		if k[0] == parentID {
			out = append(out, k[1])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

type mockUserRepo struct {
	users map[int64]domain.User
}

func (m *mockUserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	for _, existing := range m.users {
		if existing.EmailAddress == u.EmailAddress {
			return domain.User{}, domain.AlreadyExistsError{Message: "There is an account already associated with " + u.EmailAddress}
		}
	}
	u.ID = int64(len(m.users) + 1)
	m.users[u.ID] = u
	return u, nil
}

func (m *mockUserRepo) Get(ctx context.Context, id int64) (domain.User, error) {
	u, ok := m.users[id]
	if !ok {
		return domain.User{}, domain.NotFoundError{Resource: "user"}
	}
	return u, nil
}

type mockPublisher struct {
	events []domain.FeatureEvent
	err    error
}

func (m *mockPublisher) Publish(ctx context.Context, event domain.FeatureEvent) error {
	m.events = append(m.events, event)
	return m.err
}

type mockAuth struct {
	email string
}

func (m *mockAuth) HashPassword(password string) (string, error) {
	return "hashed:" + password, nil
}

func (m *mockAuth) Authenticate(ctx context.Context, email, password, clientName string) (service.AuthResult, error) {
	m.email = email
	if password != "secret" {
		return service.AuthResult{}, domain.ErrUnauthorized
	}
	return service.AuthResult{Token: "TOKEN", UserID: 1}, nil
}

func ids(v ...int64) *[]int64 {
	out := append([]int64{}, v...)
	return &out
}

func str(s string) *string {
	return &s
}
