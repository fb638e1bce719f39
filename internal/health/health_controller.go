package health

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/romashorodok/room-token-server/pkg/protocol"
)

type pingResponse struct {
	Message string `json:"message"`
}

type healthController struct{}

func (*healthController) Ping(c echo.Context) error {
	return c.JSON(http.StatusOK, &pingResponse{Message: "pong"})
}

func (ctrl *healthController) Resolve(router *echo.Echo) error {
	router.GET("/ping", ctrl.Ping)
	return nil
}

var _ protocol.HttpResolvable = (*healthController)(nil)

func NewHealthController() *healthController {
	return &healthController{}
}
