// Package server exposes the amortization engine over an HTTP JSON API.
package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/iwvelando/amortize/internal/cache"
	"github.com/iwvelando/amortize/internal/config"
	"github.com/iwvelando/amortize/pkg/constants"
	"github.com/iwvelando/amortize/pkg/loans"
	"github.com/iwvelando/amortize/pkg/output"
	"go.uber.org/zap"
)

// Options tunes the handler returned by NewHandler.
type Options struct {
	MaxUploadSize int64
	MaxPeriods    int
	Version       string
	// Cache stores computed schedule responses; nil disables caching.
	Cache    cache.Cache
	CacheTTL time.Duration
}

type handler struct {
	logger        *zap.Logger
	generator     *loans.ScheduleGenerator
	maxUploadSize int64
	maxPeriods    int
	version       string
	cache         cache.Cache
	cacheTTL      time.Duration
}

// NewHandler constructs the HTTP handler that serves the schedule API.
func NewHandler(logger *zap.Logger, opts Options) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if opts.MaxUploadSize <= 0 {
		opts.MaxUploadSize = constants.DefaultMaxUploadSizeBytes
	}
	if opts.MaxPeriods <= 0 {
		opts.MaxPeriods = constants.DefaultMaxPeriods
	}

	trimmedVersion := strings.TrimSpace(opts.Version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:        logger,
		generator:     loans.NewScheduleGenerator(logger),
		maxUploadSize: opts.MaxUploadSize,
		maxPeriods:    opts.MaxPeriods,
		version:       trimmedVersion,
		cache:         opts.Cache,
		cacheTTL:      opts.CacheTTL,
	}

	mux := http.NewServeMux()

	// Single loan schedule
	mux.HandleFunc("/api/schedule", h.handleSchedule)

	// Single loan schedule as a spreadsheet download
	mux.HandleFunc("/api/schedule/export", h.handleExport)

	// Every loan of an uploaded YAML configuration
	mux.HandleFunc("/api/config", h.handleConfigUpload)

	// Version endpoint for client metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	return withRequestID(logger, mux)
}

type scheduleRequest struct {
	Principal       float64 `json:"principal"`
	AnnualRate      float64 `json:"annualRate"`
	TermYears       float64 `json:"termYears"`
	PaymentsPerYear float64 `json:"paymentsPerYear"`
	Method          string  `json:"method"`
}

type scheduleResponse struct {
	Name    string         `json:"name,omitempty"`
	Method  loans.Method   `json:"method"`
	Title   string         `json:"title"`
	Terms   loans.Terms    `json:"terms"`
	Periods []loans.Period `json:"periods"`
	Totals  loans.Totals   `json:"totals"`
}

type configResponse struct {
	Loans    []scheduleResponse `json:"loans"`
	Warnings []string           `json:"warnings,omitempty"`
	Duration string             `json:"duration"`
}

type errorResponse struct {
	Error  string   `json:"error"`
	Errors []string `json:"errors,omitempty"`
}

// requestError carries the HTTP status a failed request maps to.
type requestError struct {
	status int
	msg    string
	errs   []string
}

func (e *requestError) Error() string {
	return e.msg
}

func newScheduleResponse(name string, schedule loans.Schedule) scheduleResponse {
	return scheduleResponse{
		Name:    name,
		Method:  schedule.Method,
		Title:   output.Title(schedule.Method),
		Terms:   schedule.Terms,
		Periods: schedule.Periods,
		Totals:  schedule.Totals,
	}
}

func (h *handler) handleSchedule(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSchedule"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	terms, method, err := h.decodeScheduleRequest(w, r)
	if err != nil {
		h.respondRequestError(w, err, op)
		return
	}

	key := cache.Key(terms, method)
	if cached, ok := h.cacheGet(r, key, op); ok {
		w.Header().Set("X-Cache", "HIT")
		h.writeRawJSON(w, http.StatusOK, cached)
		return
	}

	schedule, err := h.generator.GenerateFromTerms(terms, method)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	body, err := json.Marshal(newScheduleResponse("", schedule))
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode schedule: %v", err), op)
		return
	}
	h.cacheSet(r, key, body, op)

	w.Header().Set("X-Cache", "MISS")
	h.writeRawJSON(w, http.StatusOK, body)
}

func (h *handler) handleExport(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleExport"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = constants.OutputFormatXLSX
	}
	exporter, err := output.NewExporter(format)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	terms, method, err := h.decodeScheduleRequest(w, r)
	if err != nil {
		h.respondRequestError(w, err, op)
		return
	}

	schedule, err := h.generator.GenerateFromTerms(terms, method)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	data, err := output.ExportSchedule(exporter, schedule)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to export schedule: %v", err), op)
		return
	}

	w.Header().Set("Content-Type", exporter.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", output.FileName(exporter)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.Warn("failed to write export",
			zap.String("op", op),
			zap.Error(err),
		)
	}
}

func (h *handler) handleConfigUpload(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleConfigUpload"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	if r.ContentLength > h.maxUploadSize {
		h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), op)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), op)
			return
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), op)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, "missing configuration file", op)
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", op),
				zap.Error(closeErr),
			)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to read configuration: %v", err), op)
		return
	}

	cfg, err := config.LoadConfigurationFromReader(&buf)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	if len(cfg.Loans) == 0 {
		h.respondErrorWithOp(w, http.StatusBadRequest, "configuration contains no loans", op)
		return
	}

	for _, loan := range cfg.Loans {
		if periods := math.Round(loan.TermYears * loan.PaymentsPerYear); periods > float64(h.maxPeriods) {
			h.respondErrorWithOp(w, http.StatusBadRequest,
				fmt.Sprintf("loan %s: schedule of %.0f periods exceeds limit of %d", loan.Name, periods, h.maxPeriods), op)
			return
		}
	}

	warnings := cfg.ValidateConfiguration()
	if err := cfg.ProcessLoans(h.logger); err != nil {
		var validationErrs loans.ValidationErrors
		if errors.As(err, &validationErrs) {
			h.writeError(w, http.StatusBadRequest, err.Error(), validationErrs.Messages(), op)
			return
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	response := configResponse{Warnings: warnings}
	for _, result := range cfg.Schedules() {
		response.Loans = append(response.Loans, newScheduleResponse(result.Name, result.Schedule))
	}
	elapsed := time.Since(start)
	response.Duration = elapsed.String()

	h.logger.Info("config schedules computed",
		zap.String("op", op),
		zap.Int("loans", len(response.Loans)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// decodeScheduleRequest parses and validates a single loan request body.
func (h *handler) decodeScheduleRequest(w http.ResponseWriter, r *http.Request) (loans.Terms, loans.Method, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return loans.Terms{}, "", &requestError{
			status: http.StatusBadRequest,
			msg:    fmt.Sprintf("failed to decode request: %v", err),
		}
	}

	method := loans.MethodFrench
	if req.Method != "" {
		parsed, err := loans.ParseMethod(req.Method)
		if err != nil {
			return loans.Terms{}, "", &requestError{status: http.StatusBadRequest, msg: err.Error()}
		}
		method = parsed
	}

	terms, err := loans.NewTerms(req.Principal, req.AnnualRate, req.TermYears, req.PaymentsPerYear)
	if err != nil {
		var validationErrs loans.ValidationErrors
		if errors.As(err, &validationErrs) {
			return loans.Terms{}, "", &requestError{
				status: http.StatusBadRequest,
				msg:    "invalid loan parameters",
				errs:   validationErrs.Messages(),
			}
		}
		return loans.Terms{}, "", &requestError{status: http.StatusBadRequest, msg: err.Error()}
	}

	if n := terms.PeriodCount(); n > h.maxPeriods {
		return loans.Terms{}, "", &requestError{
			status: http.StatusBadRequest,
			msg:    fmt.Sprintf("schedule of %d periods exceeds limit of %d", n, h.maxPeriods),
		}
	}

	return terms, method, nil
}

func (h *handler) cacheGet(r *http.Request, key, op string) ([]byte, bool) {
	if h.cache == nil {
		return nil, false
	}
	value, ok, err := h.cache.Get(r.Context(), key)
	if err != nil {
		h.logger.Warn("schedule cache lookup failed",
			zap.String("op", op),
			zap.String("key", key),
			zap.Error(err),
		)
		return nil, false
	}
	return value, ok
}

func (h *handler) cacheSet(r *http.Request, key string, value []byte, op string) {
	if h.cache == nil {
		return
	}
	if err := h.cache.Set(r.Context(), key, value, h.cacheTTL); err != nil {
		h.logger.Warn("schedule cache store failed",
			zap.String("op", op),
			zap.String("key", key),
			zap.Error(err),
		)
	}
}

func (h *handler) respondRequestError(w http.ResponseWriter, err error, op string) {
	var reqErr *requestError
	if errors.As(err, &reqErr) {
		h.writeError(w, reqErr.status, reqErr.msg, reqErr.errs, op)
		return
	}
	h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), op)
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.writeError(w, status, msg, nil, op)
}

func (h *handler) writeError(w http.ResponseWriter, status int, msg string, errs []string, op string) {
	h.logger.Error("schedule request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
		zap.Strings("errors", errs),
	)

	h.writeJSON(w, status, errorResponse{Error: msg, Errors: errs})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("failed to encode JSON response", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	h.writeRawJSON(w, status, body)
}

func (h *handler) writeRawJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
