package rest

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/kebabcase/housing/internal/present/rest/middleware"
	"github.com/kebabcase/housing/internal/present/rest/presenter"
	"github.com/kebabcase/housing/internal/service"
	"github.com/kebabcase/housing/internal/usecase"
)

type Handler struct {
	building    *usecase.BuildingUsecase
	housingUnit *usecase.HousingUnitUsecase
	feature     *usecase.FeatureUsecase
	user        *usecase.UserUsecase
	signal      *service.SignalService
	auth        *middleware.AuthMiddleware
	logger      *zap.Logger
}

func NewHandler(
	building *usecase.BuildingUsecase,
	housingUnit *usecase.HousingUnitUsecase,
	feature *usecase.FeatureUsecase,
	user *usecase.UserUsecase,
	signal *service.SignalService,
	auth *middleware.AuthMiddleware,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		building:    building,
		housingUnit: housingUnit,
		feature:     feature,
		user:        user,
		signal:      signal,
		auth:        auth,
		logger:      logger.Named("rest"),
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.handleWelcome)
	e.GET("/index", h.handleWelcome)
	e.GET("/home", h.handleWelcome)
	e.GET("/_ah/warmup", h.handleWarmup)
	e.GET("/realtime", h.handleRealtime)

	e.POST("/users", h.handleCreateUser)
	e.POST("/authenticate", h.handleAuthenticate)

	g := e.Group("", h.auth.IdentifyIdentity)
	write := h.auth.RequireUser

	g.GET("/buildings", h.handleListBuildings)
	g.POST("/building", h.handleCreateBuilding, write)
	g.GET("/building/:id", h.handleGetBuilding)
	g.PATCH("/building/:id", h.handleUpdateBuilding, write)
	g.GET("/building/:id/housing-units", h.handleListBuildingUnits)
	g.GET("/building-features", h.handleListBuildingFeatures)
	g.POST("/building-features", h.handleCreateBuildingFeature, write)
	g.GET("/building-feature/:id/buildings", h.handleListBuildingsByFeature)

	g.POST("/housing-unit", h.handleCreateHousingUnit, write)
	g.GET("/housing-unit/:id", h.handleGetHousingUnit)
	g.PATCH("/housing-unit/:id", h.handleUpdateHousingUnit, write)
	g.GET("/housing-unit-features", h.handleListHousingUnitFeatures)
	g.POST("/housing-unit-features", h.handleCreateHousingUnitFeature, write)
	g.GET("/housing-unit-feature/:id/housing-units", h.handleListHousingUnitsByFeature)

	g.GET("/user/:id/buildings", h.handleListUserBuildings)
	g.POST("/user/:userId/buildings/:buildingId", h.handleLinkUserBuilding, write)
	g.DELETE("/user/:userId/building/:buildingId", h.handleUnlinkUserBuilding, write)
	g.GET("/user/:id/housing-units", h.handleListUserHousingUnits)
	g.POST("/user/:userId/housing-unit/:unitId", h.handleLinkUserHousingUnit, write)
	g.DELETE("/user/:userId/housing-unit/:unitId", h.handleUnlinkUserHousingUnit, write)
}

func (h *Handler) handleWelcome(c echo.Context) error {
	return presenter.Message(c, http.StatusOK, "Welcome to the housing API")
}

func (h *Handler) handleWarmup(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func pathID(c echo.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// bindAndValidate binds the request body into req and runs its validate tags.
// When it returns false the error response has already been written.
func bindAndValidate(c echo.Context, req any) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, presenter.BadRequestMessage(c, "invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return false, presenter.BadRequest(c, err)
	}
	return true, nil
}
