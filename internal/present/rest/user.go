package rest

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kebabcase/housing/internal/present/rest/presenter"
	"github.com/kebabcase/housing/internal/usecase"
)

func (h *Handler) handleCreateUser(c echo.Context) error {
	ctx := c.Request().Context()

	var req createUserRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	user, err := h.user.Create(ctx, usecase.UserCreateInput{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		EmailAddress: req.EmailAddress,
		Password:     req.Password,
	})
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.Created(c, user)
}

func (h *Handler) handleAuthenticate(c echo.Context) error {
	ctx := c.Request().Context()

	var req authenticateRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	result, err := h.user.Authenticate(ctx, req.EmailAddress, req.Password, req.Client)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, result)
}

func (h *Handler) handleListUserBuildings(c echo.Context) error {
	ctx := c.Request().Context()

	id, ok := pathID(c, "id")
	if !ok {
		return presenter.BadRequestMessage(c, "invalid user id")
	}

	buildings, err := h.building.ListForUser(ctx, id)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, buildings)
}

func (h *Handler) handleListUserHousingUnits(c echo.Context) error {
	ctx := c.Request().Context()

	id, ok := pathID(c, "id")
	if !ok {
		return presenter.BadRequestMessage(c, "invalid user id")
	}

	units, err := h.housingUnit.ListForUser(ctx, id)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, units)
}

// userPair reads the user id and the named target id from the path.
func userPair(c echo.Context, target string) (int64, int64, bool) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return 0, 0, false
	}
	targetID, ok := pathID(c, target)
	if !ok {
		return 0, 0, false
	}
	return userID, targetID, true
}

func (h *Handler) handleLinkUserBuilding(c echo.Context) error {
	ctx := c.Request().Context()

	userID, buildingID, ok := userPair(c, "buildingId")
	if !ok {
		return presenter.BadRequestMessage(c, "invalid user or building id")
	}

	if err := h.building.LinkUser(ctx, userID, buildingID); err != nil {
		return presenter.Error(c, err)
	}
	return presenter.Message(c, http.StatusCreated, fmt.Sprintf("Building %d linked to user %d", buildingID, userID))
}

func (h *Handler) handleUnlinkUserBuilding(c echo.Context) error {
	ctx := c.Request().Context()

	userID, buildingID, ok := userPair(c, "buildingId")
	if !ok {
		return presenter.BadRequestMessage(c, "invalid user or building id")
	}

	if err := h.building.UnlinkUser(ctx, userID, buildingID); err != nil {
		return presenter.Error(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) handleLinkUserHousingUnit(c echo.Context) error {
	ctx := c.Request().Context()

	userID, unitID, ok := userPair(c, "unitId")
	if !ok {
		return presenter.BadRequestMessage(c, "invalid user or housing unit id")
	}

	if err := h.housingUnit.LinkUser(ctx, userID, unitID); err != nil {
		return presenter.Error(c, err)
	}
	return presenter.Message(c, http.StatusCreated, fmt.Sprintf("Housing unit %d linked to user %d", unitID, userID))
}

func (h *Handler) handleUnlinkUserHousingUnit(c echo.Context) error {
	ctx := c.Request().Context()

	userID, unitID, ok := userPair(c, "unitId")
	if !ok {
		return presenter.BadRequestMessage(c, "invalid user or housing unit id")
	}

	if err := h.housingUnit.UnlinkUser(ctx, userID, unitID); err != nil {
		return presenter.Error(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
