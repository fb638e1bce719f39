package static

import (
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"github.com/labstack/echo/v4"
	"github.com/romashorodok/room-token-server/pkg/protocol"
	"github.com/romashorodok/room-token-server/pkg/variables"
	"go.uber.org/fx"
)

const (
	indexFile         = "index.html"
	cacheNoCache      = "no-cache"
	cacheImmutableAge = "max-age=31536000"
)

// staticController serves the bundled client. Known files are cached for a
// year, everything else falls back to the uncached index document.
type staticController struct {
	root   string
	logger *slog.Logger
}

func (ctrl *staticController) index(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderCacheControl, cacheNoCache)
	return c.File(filepath.Join(ctrl.root, indexFile))
}

func (ctrl *staticController) Serve(c echo.Context) error {
	urlPath := path.Clean("/" + c.Request().URL.Path)
	if urlPath == "/" || urlPath == "/"+indexFile {
		return ctrl.index(c)
	}

	name := filepath.Join(ctrl.root, filepath.FromSlash(urlPath))
	info, err := os.Stat(name)
	if err != nil || info.IsDir() {
		return ctrl.index(c)
	}

	c.Response().Header().Set(echo.HeaderCacheControl, cacheImmutableAge)
	return c.File(name)
}

func (ctrl *staticController) Resolve(router *echo.Echo) error {
	if ctrl.root == "" {
		ctrl.logger.Warn("static dir not set, serving api only")
		return nil
	}

	if _, err := os.Stat(filepath.Join(ctrl.root, indexFile)); err != nil {
		ctrl.logger.Warn("static client not found, serving api only",
			slog.String("dir", ctrl.root),
			slog.String("err", err.Error()),
		)
		return nil
	}

	router.GET("/*", ctrl.Serve)
	return nil
}

var _ protocol.HttpResolvable = (*staticController)(nil)

type newStaticControllerParams struct {
	fx.In

	Config *variables.Config
	Logger *slog.Logger
}

func NewStaticController(params newStaticControllerParams) *staticController {
	return &staticController{
		root:   params.Config.StaticDir,
		logger: params.Logger,
	}
}
