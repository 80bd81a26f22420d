package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"

	"report-validator/core/database"
	"report-validator/core/logger"
	"report-validator/core/reconcile"
	"report-validator/core/storage"
	"report-validator/core/table"
	"report-validator/core/tableio"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for report validation.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the validation routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/validation")
	group.Post("/", h.HandleValidate)
	group.Post("/upload", h.HandleUpload)
	group.Get("/storage", h.HandleStorage)
	group.Get("/extracts", h.HandleExtracts)
	if h.service.QueryEnabled() {
		group.Post("/query", h.HandleQuery)
	} else {
		h.service.logger.Warn("Query validation not served: a database is connected but no API key is configured")
	}
	group.Get("/checklist", h.HandleChecklist)
	group.Get("/tables/:name/columns", h.HandleTableColumns)
}

// HandleValidate reconciles two inline tables.
// @Summary Validate Inline Tables
// @Description Reconciles a source and a target table sent as JSON and returns the validation report.
// @Tags validation
// @Accept json
// @Produce json,application/vnd.openxmlformats-officedocument.spreadsheetml.sheet,application/zip,text/csv
// @Param request body ValidationRequest true "Source and target tables"
// @Param format query string false "Output format (json, xlsx, zip, csv, parquet)" default(json)
// @Success 200 {object} Response "Validation report"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 422 {object} map[string]string "Unprocessable tables"
// @Router /validation [post]
func (h *Handler) HandleValidate(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req ValidationRequest
	dec := json.NewDecoder(bytes.NewReader(c.Body()))
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil {
		return h.fail(c, l, fmt.Errorf("%w: %v", ErrInvalidRequest, err))
	}

	source, err := req.Source.Table("source")
	if err != nil {
		return h.fail(c, l, err)
	}
	target, err := req.Target.Table("target")
	if err != nil {
		return h.fail(c, l, err)
	}

	rep, err := h.service.Validate(source, target, req.Options)
	if err != nil {
		return h.fail(c, l, err)
	}
	return h.respond(c, l, rep, c.Query("format", "json"), "")
}

// HandleUpload reconciles uploaded files.
// @Summary Validate Uploaded Files
// @Description Reconciles either one workbook holding a source and a target sheet, or separate source and target files (csv, xlsx, parquet, optionally .gz/.zst/.lz4 compressed).
// @Tags validation
// @Accept multipart/form-data
// @Produce json,application/vnd.openxmlformats-officedocument.spreadsheetml.sheet,application/zip,text/csv
// @Param workbook formData file false "Workbook with one sheet per side"
// @Param source formData file false "Source extract"
// @Param target formData file false "Target extract"
// @Param mode formData string false "Key mode (dimensional, hash)"
// @Param exclude formData string false "Comma separated columns to drop"
// @Param as_id formData string false "Comma separated columns to force into the identity role"
// @Param source_name formData string false "Source platform name (also the workbook source sheet)"
// @Param target_name formData string false "Target platform name (also the workbook target sheet)"
// @Param format formData string false "Output format" default(xlsx)
// @Success 200 {file} file "Validation report"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 422 {object} map[string]string "Unprocessable tables"
// @Router /validation/upload [post]
func (h *Handler) HandleUpload(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	run := RunOptions{
		Mode:             c.FormValue("mode"),
		ExcludeColumns:   reconcile.SplitNames(c.FormValue("exclude")),
		RenameToIdentity: reconcile.SplitNames(c.FormValue("as_id")),
		SourceName:       c.FormValue("source_name"),
		TargetName:       c.FormValue("target_name"),
	}

	source, target, err := h.readUpload(c, run)
	if err != nil {
		return h.fail(c, l, err)
	}

	rep, err := h.service.Validate(source, target, run)
	if err != nil {
		return h.fail(c, l, err)
	}
	return h.respond(c, l, rep, c.FormValue("format", "xlsx"), "")
}

func (h *Handler) readUpload(c *fiber.Ctx, run RunOptions) (table.Table, table.Table, error) {
	if fh, err := c.FormFile("workbook"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return table.Table{}, table.Table{}, fmt.Errorf("failed to open %s: %w", fh.Filename, err)
		}
		defer f.Close()
		names, err := h.service.Names(run)
		if err != nil {
			return table.Table{}, table.Table{}, err
		}
		return tableio.ReadWorkbook(f, names.Source, names.Target, nil)
	}

	source, err := readFormTable(c, "source")
	if err != nil {
		return table.Table{}, table.Table{}, err
	}
	target, err := readFormTable(c, "target")
	if err != nil {
		return table.Table{}, table.Table{}, err
	}
	return source, target, nil
}

func readFormTable(c *fiber.Ctx, field string) (table.Table, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return table.Table{}, fmt.Errorf("%w: missing %s file (or a workbook)", ErrInvalidRequest, field)
	}
	return openUpload(fh)
}

func openUpload(fh *multipart.FileHeader) (table.Table, error) {
	f, err := fh.Open()
	if err != nil {
		return table.Table{}, fmt.Errorf("failed to open %s: %w", fh.Filename, err)
	}
	defer f.Close()
	return tableio.Open(fh.Filename, f, tableio.ReadOptions{})
}

// HandleStorage reconciles two extracts stored in the bucket.
// @Summary Validate Stored Extracts
// @Description Reconciles two objects from the report bucket. Results are cached per object version and options. With save=true the workbook is written under the report prefix.
// @Tags validation
// @Produce json,application/vnd.openxmlformats-officedocument.spreadsheetml.sheet,application/zip,text/csv
// @Param source query string true "Source object key"
// @Param target query string true "Target object key"
// @Param mode query string false "Key mode (dimensional, hash)"
// @Param exclude query string false "Comma separated columns to drop"
// @Param as_id query string false "Comma separated columns to force into the identity role"
// @Param source_name query string false "Source platform name"
// @Param target_name query string false "Target platform name"
// @Param save query boolean false "Save the xlsx workbook to the bucket"
// @Param format query string false "Output format" default(json)
// @Success 200 {object} Response "Validation report"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 413 {object} map[string]string "Extract too large"
// @Failure 422 {object} map[string]string "Unprocessable tables"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /validation/storage [get]
func (h *Handler) HandleStorage(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	run := RunOptions{
		Mode:             c.Query("mode"),
		ExcludeColumns:   reconcile.SplitNames(c.Query("exclude")),
		RenameToIdentity: reconcile.SplitNames(c.Query("as_id")),
		SourceName:       c.Query("source_name"),
		TargetName:       c.Query("target_name"),
	}

	rep, err := h.service.ValidateStorage(c.UserContext(), c.Query("source"), c.Query("target"), run)
	if err != nil {
		return h.fail(c, l, err)
	}

	var saved string
	if c.QueryBool("save") {
		saved, err = h.service.SaveReport(c.UserContext(), rep, tableio.OutputXLSX)
		if err != nil {
			return h.fail(c, l, err)
		}
	}
	return h.respond(c, l, rep, c.Query("format", "json"), saved)
}

// HandleExtracts lists the readable extracts in the bucket.
// @Summary List Stored Extracts
// @Description Lists objects under a prefix that can be used as validation inputs. Saved reports are skipped.
// @Tags validation
// @Produce json
// @Param prefix query string false "Key prefix"
// @Success 200 {object} map[string]interface{} "Object keys"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /validation/extracts [get]
func (h *Handler) HandleExtracts(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	keys, err := h.service.ListExtracts(c.UserContext(), c.Query("prefix"))
	if err != nil {
		return h.fail(c, l, err)
	}
	return c.JSON(fiber.Map{"keys": keys})
}

// HandleQuery reconciles two query result sets.
// @Summary Validate Queries
// @Description Runs a source and a target read query (SELECT or WITH, in a read-only transaction) against the configured database and reconciles the result sets. Only served when an API key is configured.
// @Tags validation
// @Accept json
// @Produce json,application/vnd.openxmlformats-officedocument.spreadsheetml.sheet,application/zip,text/csv
// @Param request body QueryRequest true "Queries"
// @Param format query string false "Output format" default(json)
// @Success 200 {object} Response "Validation report"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 422 {object} map[string]string "Unprocessable tables"
// @Failure 503 {object} map[string]string "Database not configured"
// @Router /validation/query [post]
func (h *Handler) HandleQuery(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req QueryRequest
	if err := c.BodyParser(&req); err != nil {
		return h.fail(c, l, fmt.Errorf("%w: %v", ErrInvalidRequest, err))
	}

	rep, err := h.service.ValidateQuery(c.UserContext(), req)
	if err != nil {
		return h.fail(c, l, err)
	}
	return h.respond(c, l, rep, c.Query("format", "json"), "")
}

// HandleChecklist returns the audit checklist.
// @Summary Get Checklist
// @Description Returns the audit checklist placed as the first sheet of every report.
// @Tags validation
// @Produce json
// @Success 200 {object} report.Checklist "Checklist"
// @Router /validation/checklist [get]
func (h *Handler) HandleChecklist(c *fiber.Ctx) error {
	return c.JSON(h.service.Checklist())
}

// HandleTableColumns lists the columns of a warehouse table.
// @Summary List Table Columns
// @Description Lists the columns of a database table, to help writing validation queries.
// @Tags validation
// @Produce json
// @Param name path string true "Table name"
// @Success 200 {array} database.ColumnInfo "Columns"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 503 {object} map[string]string "Database not configured"
// @Router /validation/tables/{name}/columns [get]
func (h *Handler) HandleTableColumns(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	cols, err := h.service.TableColumns(c.Params("name"))
	if err != nil {
		return h.fail(c, l, err)
	}
	return c.JSON(cols)
}

// respond renders the report in the requested format. Non-JSON formats are sent as attachments.
func (h *Handler) respond(c *fiber.Ctx, l *zap.Logger, rep *Report, rawFormat, savedKey string) error {
	format, err := tableio.ParseOutputFormat(rawFormat)
	if err != nil {
		return h.fail(c, l, err)
	}

	if savedKey != "" {
		c.Set("X-Report-Key", savedKey)
	}
	if format == tableio.OutputJSON {
		resp := NewResponse(rep)
		resp.SavedKey = savedKey
		return c.JSON(resp)
	}

	var buf bytes.Buffer
	if err := tableio.WriteReport(&buf, rep.Workbook, format); err != nil {
		return h.fail(c, l, err)
	}
	c.Attachment("validation_" + rep.RunID + format.Extension())
	c.Set(fiber.HeaderContentType, format.ContentType())
	c.Set("X-Validation-Passed", fmt.Sprint(rep.Result.Summary.Passed))
	return c.Send(buf.Bytes())
}

// fail maps err to a status code and writes the error body.
func (h *Handler) fail(c *fiber.Ctx, l *zap.Logger, err error) error {
	status := StatusFor(err)
	if status >= fiber.StatusInternalServerError {
		l.Error("Validation failed", zap.Error(err))
	} else {
		l.Warn("Validation rejected", zap.Int("status", status), zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// StatusFor maps an error to its HTTP status code.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, reconcile.ErrConfiguration),
		errors.Is(err, reconcile.ErrSchemaMismatch),
		errors.Is(err, table.ErrInvalidTable):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, tableio.ErrUnsupportedFormat),
		errors.Is(err, database.ErrInvalidTableName),
		errors.Is(err, database.ErrReadOnlyQuery):
		return fiber.StatusBadRequest
	case errors.Is(err, storage.ErrObjectTooLarge):
		return fiber.StatusRequestEntityTooLarge
	case errors.Is(err, ErrDatabaseDisabled):
		return fiber.StatusServiceUnavailable
	case isMissingObject(err):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

func isMissingObject(err error) bool {
	var resp minio.ErrorResponse
	if errors.As(err, &resp) {
		return resp.Code == "NoSuchKey" || resp.Code == "NoSuchBucket"
	}
	return false
}
