package compare

import (
	"bytes"
	"errors"
	"io"
	"mime/multipart"

	"dataset-reconciler/core/logger"
	"dataset-reconciler/core/reconcile"
	"dataset-reconciler/core/source"
	"dataset-reconciler/core/table"
	"dataset-reconciler/core/utils"
	"dataset-reconciler/feature/report"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for dataset comparisons.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the compare routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/compare")
	group.Post("/", h.HandleCompareTables)
	group.Post("/upload", h.HandleCompareUpload)
	group.Post("/sources", h.HandleCompareSources)
	group.Get("/profiles", h.HandleListProfiles)
	group.Get("/datasets", h.HandleListDatasets)
}

// HandleCompareTables compares two inline tables.
// @Summary Compare Inline Tables
// @Description Reconciles two tables sent in the request body by a composite key. Use format=xlsx or format=text to download a report instead of JSON.
// @Tags compare
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body TablesRequest true "Tables and comparison options"
// @Param format query string false "Report format (json, xlsx, text)"
// @Success 200 {object} report.Document "Comparison result"
// @Failure 400 {object} ErrorResponse "Malformed request"
// @Failure 422 {object} ErrorResponse "Invalid key or table"
// @Router /compare [post]
func (h *Handler) HandleCompareTables(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req TablesRequest
	if err := c.BodyParser(&req); err != nil {
		return h.fail(c, l, badRequest("invalid request body: %v", err))
	}

	out, err := h.service.CompareTables(c.Context(), req.Old, req.New, req.Options)
	if err != nil {
		return h.fail(c, l, err)
	}
	return h.render(c, l, out)
}

// HandleCompareUpload compares two uploaded files.
// @Summary Compare Uploaded Files
// @Description Reconciles two uploaded CSV, XLSX or JSON files. List fields accept one comma separated value or repeated values; repeated values are kept whole.
// @Tags compare
// @Security ApiKeyAuth
// @Accept multipart/form-data
// @Produce json
// @Param old formData file true "Old table"
// @Param new formData file true "New table"
// @Param keys formData string false "Key columns"
// @Param alignment formData string false "by_name or positional"
// @Param columns formData string false "Canonical column names for positional alignment"
// @Param ignore formData string false "Columns excluded from comparison"
// @Param trim_space formData boolean false "Trim whitespace before comparing"
// @Param profile formData string false "Comparison profile"
// @Param format query string false "Report format (json, xlsx, text)"
// @Success 200 {object} report.Document "Comparison result"
// @Failure 400 {object} ErrorResponse "Malformed request"
// @Failure 422 {object} ErrorResponse "Invalid key or table"
// @Router /compare/upload [post]
func (h *Handler) HandleCompareUpload(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	form, err := c.MultipartForm()
	if err != nil {
		return h.fail(c, l, badRequest("expected a multipart form: %v", err))
	}

	oldT, err := h.readFormFile(c, form, "old")
	if err != nil {
		return h.fail(c, l, err)
	}
	newT, err := h.readFormFile(c, form, "new")
	if err != nil {
		return h.fail(c, l, err)
	}

	opts := Options{
		Keys:      utils.FieldList(form.Value["keys"]),
		Columns:   utils.FieldList(form.Value["columns"]),
		Ignore:    utils.FieldList(form.Value["ignore"]),
		Alignment: firstValue(form, "alignment"),
		Profile:   firstValue(form, "profile"),
		TrimSpace: utils.ToBool(firstValue(form, "trim_space")),
	}

	out, err := h.service.CompareTables(c.Context(), oldT, newT, opts)
	if err != nil {
		return h.fail(c, l, err)
	}
	return h.render(c, l, out)
}

// HandleCompareSources compares two stored datasets.
// @Summary Compare Stored Datasets
// @Description Loads two datasets by reference (s3://bucket/object or db:table) and reconciles them. With publish set, the rendered report is also uploaded to that s3:// location.
// @Tags compare
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body SourcesRequest true "References and comparison options"
// @Param format query string false "Report format (json, xlsx, text)"
// @Param publish query string false "s3:// location to upload the report to"
// @Success 200 {object} report.Document "Comparison result"
// @Failure 400 {object} ErrorResponse "Malformed request"
// @Failure 422 {object} ErrorResponse "Invalid key or table"
// @Failure 502 {object} ErrorResponse "Dataset could not be loaded"
// @Router /compare/sources [post]
func (h *Handler) HandleCompareSources(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req SourcesRequest
	if err := c.BodyParser(&req); err != nil {
		return h.fail(c, l, badRequest("invalid request body: %v", err))
	}

	out, err := h.service.CompareSources(c.Context(), req.Old, req.New, req.Options)
	if err != nil {
		return h.fail(c, l, err)
	}

	if target := c.Query("publish"); target != "" {
		w, err := report.ForFormat(c.Query("format"))
		if err != nil {
			return h.fail(c, l, &RequestError{Msg: err.Error()})
		}
		var buf bytes.Buffer
		if err := w.Write(&buf, out.Result, out.Meta); err != nil {
			return h.fail(c, l, err)
		}
		if err := h.service.Publish(c.Context(), target, buf.Bytes(), w.ContentType()); err != nil {
			return h.fail(c, l, err)
		}
		l.Info("Report published", zap.String("target", target), zap.String("id", out.Meta.ID))
		c.Set("Location", target)
	}

	return h.render(c, l, out)
}

// HandleListProfiles lists the comparison profiles.
// @Summary List Profiles
// @Description Returns the built-in and configured comparison profiles.
// @Tags compare
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {array} profile.Profile "Profiles"
// @Router /compare/profiles [get]
func (h *Handler) HandleListProfiles(c *fiber.Ctx) error {
	return c.JSON(h.service.Profiles())
}

// HandleListDatasets lists datasets in object storage.
// @Summary List Datasets
// @Description Lists the CSV, XLSX and JSON objects that can be used as compare sources.
// @Tags compare
// @Security ApiKeyAuth
// @Produce json
// @Param bucket query string false "Bucket (defaults to the configured bucket)"
// @Param prefix query string false "Object prefix"
// @Success 200 {array} source.ObjectEntry "Datasets"
// @Failure 502 {object} ErrorResponse "Storage unavailable"
// @Router /compare/datasets [get]
func (h *Handler) HandleListDatasets(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	entries, err := h.service.ListDatasets(c.Context(), c.Query("bucket"), c.Query("prefix"))
	if err != nil {
		return h.fail(c, l, err)
	}
	if entries == nil {
		entries = []source.ObjectEntry{}
	}
	return c.JSON(entries)
}

// render writes the outcome as JSON or as a downloadable report.
func (h *Handler) render(c *fiber.Ctx, l *zap.Logger, out *Outcome) error {
	format := c.Query("format")
	if format == "" || format == report.FormatJSON {
		return c.JSON(report.Document{Meta: out.Meta, Result: out.Result})
	}

	w, err := report.ForFormat(format)
	if err != nil {
		return h.fail(c, l, &RequestError{Msg: err.Error()})
	}

	var buf bytes.Buffer
	if err := w.Write(&buf, out.Result, out.Meta); err != nil {
		return h.fail(c, l, err)
	}

	c.Attachment(report.Filename(w, out.Meta))
	c.Set(fiber.HeaderContentType, w.ContentType())
	return c.Send(buf.Bytes())
}

// fail maps an error to its status code and JSON body.
func (h *Handler) fail(c *fiber.Ctx, l *zap.Logger, err error) error {
	status, body := classify(err)
	if status >= fiber.StatusInternalServerError {
		l.Error("Comparison failed", zap.Error(err))
	} else {
		l.Warn("Comparison rejected", zap.Int("status", status), zap.Error(err))
	}
	return c.Status(status).JSON(body)
}

func classify(err error) (int, ErrorResponse) {
	var (
		keyErr   *reconcile.InvalidKeyError
		tableErr *reconcile.InvalidTableError
		reqErr   *RequestError
		srcErr   *source.Error
	)

	switch {
	case errors.As(err, &keyErr):
		return fiber.StatusUnprocessableEntity, ErrorResponse{Error: err.Error(), Kind: KindInvalidKey, Suggestion: keyErr.Suggestion()}
	case errors.As(err, &tableErr):
		return fiber.StatusUnprocessableEntity, ErrorResponse{Error: err.Error(), Kind: KindInvalidTable, Suggestion: tableErr.Suggestion()}
	case errors.As(err, &reqErr):
		return fiber.StatusBadRequest, ErrorResponse{Error: err.Error(), Kind: KindBadRequest}
	case errors.Is(err, source.ErrLocalDisabled):
		return fiber.StatusBadRequest, ErrorResponse{Error: err.Error(), Kind: KindSource}
	case errors.As(err, &srcErr):
		return fiber.StatusBadGateway, ErrorResponse{Error: err.Error(), Kind: KindSource}
	default:
		return fiber.StatusInternalServerError, ErrorResponse{Error: err.Error(), Kind: KindInternal}
	}
}

func (h *Handler) readFormFile(c *fiber.Ctx, form *multipart.Form, field string) (*table.Table, error) {
	files := form.File[field]
	if len(files) == 0 {
		return nil, badRequest("missing file %q", field)
	}
	fh := files[0]

	f, err := fh.Open()
	if err != nil {
		return nil, badRequest("cannot open %q: %v", field, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, badRequest("cannot read %q: %v", field, err)
	}
	return h.service.ReadUpload(c.Context(), fh.Filename, data)
}

func firstValue(form *multipart.Form, field string) string {
	if v := form.Value[field]; len(v) > 0 {
		return v[0]
	}
	return ""
}
