package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/go-playground/validator/v10"
	echo "github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/romashorodok/room-token-server/pkg/protocol"
	"github.com/romashorodok/room-token-server/pkg/variables"
	"go.uber.org/fx"
)

type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i any) error {
	return v.validate.Struct(i)
}

// Anything that is not an *echo.HTTPError is a failure behind the boundary.
// Its detail is logged and never sent to the client.
func httpErrorHandler(e *echo.Echo, logger *slog.Logger) func(err error, c echo.Context) {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			if httpErr.Code >= http.StatusInternalServerError {
				logger.Error(err.Error(), slog.String("uri", c.Request().RequestURI))
			}
			e.DefaultHTTPErrorHandler(err, c)
			return
		}

		status := http.StatusInternalServerError
		if errors.Is(err, context.DeadlineExceeded) {
			status = http.StatusGatewayTimeout
		}

		logger.Error(err.Error(),
			slog.Int("status", status),
			slog.String("uri", c.Request().RequestURI),
			slog.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
		)

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, protocol.ErrorResponse{Message: http.StatusText(status)})
		}
		if err != nil {
			logger.Error("unable write error response", slog.String("err", err.Error()))
		}
	}
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info("request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", v.RequestID),
			)
			return nil
		},
	})
}

type NewRouterParams struct {
	fx.In

	Controllers []protocol.HttpResolvable `group:"http.controller"`
	Logger      *slog.Logger
}

func NewRouter(params NewRouterParams) (*echo.Echo, error) {
	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.Validator = &requestValidator{validate: validator.New()}
	router.HTTPErrorHandler = httpErrorHandler(router, params.Logger)

	router.Use(
		middleware.Recover(),
		middleware.RequestID(),
		requestLogger(params.Logger),
		middleware.CORS(),
	)

	for _, controller := range params.Controllers {
		if err := controller.Resolve(router); err != nil {
			return nil, err
		}
	}
	return router, nil
}

type httpServer_Params struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Router     *echo.Echo
	Config     *variables.Config
	Logger     *slog.Logger
}

func httpServer(params httpServer_Params) {
	router := params.Router
	addr := params.Config.HTTPAddr()

	params.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			listener, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("unable listen %s. Err: %w", addr, err)
			}
			router.Listener = listener

			go func() {
				if err := router.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
					params.Logger.Error("http server stopped", slog.String("err", err.Error()))
					_ = params.Shutdowner.Shutdown()
				}
			}()

			params.Logger.Info("token server running", slog.String("addr", listener.Addr().String()))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, params.Config.ShutdownTimeout)
			defer cancel()
			return router.Shutdown(ctx)
		},
	})
}

var HttpModule = fx.Module("http",
	fx.Provide(NewRouter),
	fx.Invoke(httpServer),
)
