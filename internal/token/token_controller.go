package token

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/romashorodok/room-token-server/internal/identity"
	"github.com/romashorodok/room-token-server/internal/room"
	"github.com/romashorodok/room-token-server/pkg/protocol"
	"github.com/romashorodok/room-token-server/pkg/variables"
	"go.uber.org/fx"
)

const MissingRoomNameMessage = "Must include room_name argument."

type roomProvisioner interface {
	EnsureRoom(ctx context.Context, roomName protocol.RoomName) error
}

type tokenIssuer interface {
	IssueToken(roomName protocol.RoomName) (*identity.AccessToken, error)
}

type tokenRequest struct {
	RoomName string `json:"room_name" validate:"required"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type tokenController struct {
	rooms            roomProvisioner
	tokens           tokenIssuer
	logger           *slog.Logger
	provisionTimeout time.Duration
}

// Token provisions the room and only then issues a token for it, so a room
// that failed to provision never gets a token.
func (ctrl *tokenController) Token(c echo.Context) error {
	req := new(tokenRequest)
	if err := c.Bind(req); err != nil {
		return c.String(http.StatusBadRequest, MissingRoomNameMessage)
	}
	if err := c.Validate(req); err != nil {
		return c.String(http.StatusBadRequest, MissingRoomNameMessage)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), ctrl.provisionTimeout)
	defer cancel()

	if err := ctrl.rooms.EnsureRoom(ctx, req.RoomName); err != nil {
		return err
	}

	accessToken, err := ctrl.tokens.IssueToken(req.RoomName)
	if err != nil {
		return err
	}

	ctrl.logger.Info("token issued",
		slog.String("room", accessToken.RoomName),
		slog.String("identity", accessToken.Identity),
	)

	return c.JSON(http.StatusOK, &tokenResponse{
		Token: accessToken.JWT,
	})
}

func (ctrl *tokenController) Resolve(router *echo.Echo) error {
	router.POST("/token", ctrl.Token)
	return nil
}

var _ protocol.HttpResolvable = (*tokenController)(nil)

type newTokenControllerParams struct {
	fx.In

	RoomService  *room.RoomService
	TokenService *identity.TokenService
	Logger       *slog.Logger
	Config       *variables.Config
}

func NewTokenController(params newTokenControllerParams) *tokenController {
	return &tokenController{
		rooms:            params.RoomService,
		tokens:           params.TokenService,
		logger:           params.Logger,
		provisionTimeout: params.Config.ProvisionTimeout,
	}
}
