package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kebabcase/housing/internal/domain"
	"github.com/kebabcase/housing/internal/present/rest/presenter"
	"github.com/kebabcase/housing/internal/usecase"
)

func (h *Handler) handleListBuildings(c echo.Context) error {
	ctx := c.Request().Context()

	filter := domain.BuildingFilter{
		Address: c.QueryParam("address"),
		City:    c.QueryParam("city"),
		State:   c.QueryParam("state"),
	}

	buildings, err := h.building.List(ctx, filter)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, buildings)
}

func (h *Handler) handleCreateBuilding(c echo.Context) error {
	ctx := c.Request().Context()

	var req createBuildingRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	result, err := h.building.Create(ctx, req.input())
	if err != nil {
		return presenter.Error(c, err)
	}
	return writeCreated(c, result)
}

func (h *Handler) handleGetBuilding(c echo.Context) error {
	ctx := c.Request().Context()

	id, ok := pathID(c, "id")
	if !ok {
		return presenter.BadRequestMessage(c, "invalid building id")
	}

	building, err := h.building.Get(ctx, id)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, building)
}

func (h *Handler) handleUpdateBuilding(c echo.Context) error {
	ctx := c.Request().Context()

	id, ok := pathID(c, "id")
	if !ok {
		return presenter.BadRequestMessage(c, "invalid building id")
	}

	var req updateBuildingRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	result, err := h.building.Update(ctx, req.input(id))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.Result(c, result)
}

func (h *Handler) handleListBuildingUnits(c echo.Context) error {
	ctx := c.Request().Context()

	id, ok := pathID(c, "id")
	if !ok {
		return presenter.BadRequestMessage(c, "invalid building id")
	}

	units, err := h.building.ListHousingUnits(ctx, id)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, units)
}

func (h *Handler) handleListBuildingsByFeature(c echo.Context) error {
	ctx := c.Request().Context()

	id, ok := pathID(c, "id")
	if !ok {
		return presenter.BadRequestMessage(c, "invalid feature id")
	}

	buildings, err := h.building.ListByFeature(ctx, id)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, buildings)
}

func writeCreated(c echo.Context, result usecase.CreateResult) error {
	if result.Partial() {
		return c.JSON(http.StatusPartialContent, result)
	}
	return presenter.Created(c, result)
}
