package rest

import (
	"github.com/labstack/echo/v4"

	"github.com/kebabcase/housing/internal/present/rest/presenter"
	"github.com/kebabcase/housing/internal/usecase"
)

func (h *Handler) handleCreateHousingUnit(c echo.Context) error {
	ctx := c.Request().Context()

	var req createHousingUnitRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	result, err := h.housingUnit.Create(ctx, usecase.HousingUnitCreateInput{
		BuildingID: req.BuildingID,
		UnitNumber: req.UnitNumber,
		Features:   req.Features,
	})
	if err != nil {
		return presenter.Error(c, err)
	}
	return writeCreated(c, result)
}

func (h *Handler) handleGetHousingUnit(c echo.Context) error {
	ctx := c.Request().Context()

	id, ok := pathID(c, "id")
	if !ok {
		return presenter.BadRequestMessage(c, "invalid housing unit id")
	}

	unit, err := h.housingUnit.Get(ctx, id)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, unit)
}

func (h *Handler) handleUpdateHousingUnit(c echo.Context) error {
	ctx := c.Request().Context()

	id, ok := pathID(c, "id")
	if !ok {
		return presenter.BadRequestMessage(c, "invalid housing unit id")
	}

	var req updateHousingUnitRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	result, err := h.housingUnit.Update(ctx, req.input(id))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.Result(c, result)
}

func (h *Handler) handleListHousingUnitsByFeature(c echo.Context) error {
	ctx := c.Request().Context()

	id, ok := pathID(c, "id")
	if !ok {
		return presenter.BadRequestMessage(c, "invalid feature id")
	}

	units, err := h.housingUnit.ListByFeature(ctx, id)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, units)
}
