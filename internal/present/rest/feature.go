package rest

import (
	"github.com/labstack/echo/v4"

	"github.com/kebabcase/housing/internal/domain"
	"github.com/kebabcase/housing/internal/present/rest/presenter"
)

func (h *Handler) listFeatures(c echo.Context, kind domain.ParentKind) error {
	ctx := c.Request().Context()

	features, err := h.feature.List(ctx, kind)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, features)
}

func (h *Handler) createFeature(c echo.Context, kind domain.ParentKind) error {
	ctx := c.Request().Context()

	var req createFeatureRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	feature, err := h.feature.Create(ctx, kind, req.Name)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.Created(c, feature)
}

func (h *Handler) handleListBuildingFeatures(c echo.Context) error {
	return h.listFeatures(c, domain.KindBuilding)
}

func (h *Handler) handleCreateBuildingFeature(c echo.Context) error {
	return h.createFeature(c, domain.KindBuilding)
}

func (h *Handler) handleListHousingUnitFeatures(c echo.Context) error {
	return h.listFeatures(c, domain.KindHousingUnit)
}

func (h *Handler) handleCreateHousingUnitFeature(c echo.Context) error {
	return h.createFeature(c, domain.KindHousingUnit)
}
