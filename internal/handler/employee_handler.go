package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/employee-roster-api/internal/domain"
	"github.com/employee-roster-api/internal/dto"
	"github.com/employee-roster-api/internal/middleware"
	"github.com/employee-roster-api/internal/query"
	"github.com/employee-roster-api/internal/service"
)

// persistenceWarning отправляется, когда изменение применено, но снимок не сохранён
const persistenceWarning = `199 - "snapshot not persisted"`

type EmployeeHandler struct {
	service   service.EmployeeService
	validator *validator.Validate
	logger    *slog.Logger
}

func NewEmployeeHandler(svc service.EmployeeService, logger *slog.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		service:   svc,
		validator: domain.NewValidator(),
		logger:    logger,
	}
}

func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	q, err := h.parseListQuery(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid query parameter", err.Error())
		return
	}

	if err := h.validator.Struct(&q); err != nil {
		h.respondError(w, http.StatusBadRequest, "validation error", domain.ToValidationError(err).Error())
		return
	}

	res, err := h.service.Query(query.Params{
		Search:    q.Search,
		SortField: query.Field(q.Sort),
		Direction: query.Direction(q.Order),
		Page:      q.Page,
		PageSize:  q.PageSize,
	})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	items := make([]dto.EmployeeResponse, len(res.Items))
	for i, e := range res.Items {
		items[i] = dto.NewEmployeeResponse(e)
	}

	h.respondJSON(w, http.StatusOK, dto.ListEmployeesResponse{
		Items:      items,
		Total:      res.Total,
		Page:       res.Page,
		PageSize:   res.PageSize,
		TotalPages: res.TotalPages,
		Pages:      res.Window,
	})
}

func (h *EmployeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := h.extractID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid employee id", err.Error())
		return
	}

	emp, err := h.service.Get(id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, dto.NewEmployeeResponse(emp))
}

func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}

	emp, err := h.service.Add(r.Context(), req.ToEmployee(id))
	if err != nil && !h.warnIfNotPersisted(w, r, err) {
		h.handleServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, dto.NewEmployeeResponse(emp))
}

func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := h.extractID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid employee id", err.Error())
		return
	}

	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	if req.ID != "" && req.ID != id {
		h.respondError(w, http.StatusBadRequest, "employee id cannot be changed", "")
		return
	}

	emp, err := h.service.Edit(r.Context(), req.ToEmployee(id))
	if err != nil && !h.warnIfNotPersisted(w, r, err) {
		h.handleServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, dto.NewEmployeeResponse(emp))
}

// Delete отвечает 204 и в том случае, когда записи с таким ID не было
func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := h.extractID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid employee id", err.Error())
		return
	}

	if _, err := h.service.Delete(r.Context(), id); err != nil && !h.warnIfNotPersisted(w, r, err) {
		h.handleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *EmployeeHandler) decodeRequest(w http.ResponseWriter, r *http.Request) (dto.EmployeeRequest, bool) {
	var req dto.EmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return req, false
	}

	if err := h.validator.Struct(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "validation error", domain.ToValidationError(err).Error())
		return req, false
	}

	return req, true
}

func (h *EmployeeHandler) extractID(r *http.Request) (string, error) {
	path := strings.TrimPrefix(r.URL.Path, "/employees/")
	path = strings.TrimSuffix(path, "/")

	if path == "" {
		return "", errors.New("id is required")
	}
	if strings.Contains(path, "/") {
		return "", errors.New("id must not contain '/'")
	}
	return path, nil
}

func (h *EmployeeHandler) parseListQuery(r *http.Request) (dto.ListEmployeesQuery, error) {
	values := r.URL.Query()
	q := dto.ListEmployeesQuery{
		Search: values.Get("search"),
		Sort:   values.Get("sort"),
		Order:  values.Get("order"),
	}

	if pageStr := values.Get("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil {
			return q, errors.New("page must be an integer")
		}
		q.Page = page
	}

	if sizeStr := values.Get("page_size"); sizeStr != "" {
		size, err := strconv.Atoi(sizeStr)
		if err != nil {
			return q, errors.New("page_size must be an integer")
		}
		q.PageSize = size
	}

	return q, nil
}

// warnIfNotPersisted помечает ответ заголовком Warning, если изменение
// применено, но не сохранено. Возвращает false для прочих ошибок.
func (h *EmployeeHandler) warnIfNotPersisted(w http.ResponseWriter, r *http.Request, err error) bool {
	if !errors.Is(err, domain.ErrPersistence) {
		return false
	}

	h.logger.Warn("change applied but not persisted",
		slog.String("request_id", middleware.RequestIDFromContext(r.Context())),
		slog.Any("error", err),
	)
	w.Header().Set("Warning", persistenceWarning)
	return true
}

func (h *EmployeeHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		h.respondError(w, http.StatusBadRequest, "validation error", err.Error())
	case errors.Is(err, query.ErrInvalidSortField):
		h.respondError(w, http.StatusBadRequest, "invalid sort field", "")
	case errors.Is(err, query.ErrInvalidSortDirection):
		h.respondError(w, http.StatusBadRequest, "invalid sort order, use 'asc' or 'desc'", "")
	case errors.Is(err, query.ErrInvalidPage), errors.Is(err, query.ErrInvalidPageSize):
		h.respondError(w, http.StatusBadRequest, "invalid pagination", err.Error())
	case errors.Is(err, domain.ErrEmployeeNotFound):
		h.respondError(w, http.StatusNotFound, "employee not found", "")
	case errors.Is(err, domain.ErrDuplicateID):
		h.respondError(w, http.StatusConflict, "employee with this id already exists", "")
	default:
		h.logger.Error("internal error",
			slog.String("request_id", middleware.RequestIDFromContext(r.Context())),
			slog.Any("error", err),
		)
		h.respondError(w, http.StatusInternalServerError, "internal server error", "")
	}
}

func (h *EmployeeHandler) respondJSON(w http.ResponseWriter, status int, data any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", slog.Any("error", err))
	}
}

func (h *EmployeeHandler) respondError(w http.ResponseWriter, status int, errMsg, details string) {
	w.WriteHeader(status)
	resp := dto.ErrorResponse{Error: errMsg}
	if details != "" {
		resp.Message = details
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("failed to encode error response", slog.Any("error", err))
	}
}
