package handler

import (
	"log/slog"
	"mime"
	"net/http"
	"path"
	"strings"

	"accounts/config"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"
)

// StaticHandlerParams holds dependencies for StaticHandler, injected by Fx.
type StaticHandlerParams struct {
	fx.In

	Bucket *blob.Bucket
	Config *config.Config
	Logger *slog.Logger
}

// StaticHandler serves files from the static document root.
type StaticHandler struct {
	bucket *blob.Bucket
	prefix string
	logger *slog.Logger
}

// NewStaticHandler is the constructor for StaticHandler
func NewStaticHandler(params StaticHandlerParams) *StaticHandler {
	return &StaticHandler{
		bucket: params.Bucket,
		prefix: normalizePrefix(params.Config.Static.URL),
		logger: params.Logger,
	}
}

// normalizePrefix returns prefix with exactly one leading and trailing slash.
func normalizePrefix(prefix string) string {
	trimmed := strings.Trim(prefix, "/")
	if trimmed == "" {
		return "/"
	}

	return "/" + trimmed + "/"
}

// Prefix is the URL path the files are served under, e.g. "/static/".
func (h *StaticHandler) Prefix() string {
	return h.prefix
}

// Favicon permanently redirects /favicon.ico into the static tree.
func (h *StaticHandler) Favicon(c echo.Context) error {
	return c.Redirect(http.StatusMovedPermanently, h.prefix+"favicon.ico")
}

// Serve streams the object named by the wildcard path. Range and conditional
// requests are handled by http.ServeContent.
func (h *StaticHandler) Serve(c echo.Context) error {
	key, ok := objectKey(c.Param("*"))
	if !ok {
		return echo.ErrNotFound
	}

	ctx := c.Request().Context()
	reader, err := h.bucket.NewReader(ctx, key, nil)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return echo.ErrNotFound
		}
		h.logger.ErrorContext(ctx, "Failed to open static object", slog.String("key", key), slog.Any("error", err))

		return echo.ErrInternalServerError
	}
	defer reader.Close()

	contentType := mime.TypeByExtension(path.Ext(key))
	if contentType == "" {
		contentType = reader.ContentType()
	}
	c.Response().Header().Set(echo.HeaderContentType, contentType)

	http.ServeContent(c.Response(), c.Request(), path.Base(key), reader.ModTime(), reader)

	return nil
}

// objectKey maps a request path onto a bucket key, refusing traversal and directories.
func objectKey(raw string) (string, bool) {
	if raw == "" || strings.HasSuffix(raw, "/") {
		return "", false
	}
	for segment := range strings.SplitSeq(raw, "/") {
		if segment == ".." || segment == "." || segment == "" {
			return "", false
		}
	}

	return raw, true
}
