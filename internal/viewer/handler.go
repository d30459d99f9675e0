package viewer

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/EthanLatimerGB/Exercise-PatientorFEModified/internal/domain/patient"
	"github.com/EthanLatimerGB/Exercise-PatientorFEModified/internal/form"
	"github.com/EthanLatimerGB/Exercise-PatientorFEModified/internal/platform/apiclient"
	"github.com/EthanLatimerGB/Exercise-PatientorFEModified/internal/platform/middleware"
	"github.com/EthanLatimerGB/Exercise-PatientorFEModified/internal/state"
	"github.com/EthanLatimerGB/Exercise-PatientorFEModified/pkg/pagination"
)

// msgUnavailable is shown in a form banner when the service could not be
// reached at all.
const msgUnavailable = "the patient service is unavailable"

type Handler struct {
	loader        *Loader
	store         *state.Store
	logger        zerolog.Logger
	pageSize      int
	resetOnSubmit bool
}

type HandlerOption func(*Handler)

func WithPageSize(n int) HandlerOption {
	return func(h *Handler) { h.pageSize = n }
}

// WithResetOnSubmit makes the entry type selector return to unselected after
// a successful submission.
func WithResetOnSubmit(reset bool) HandlerOption {
	return func(h *Handler) { h.resetOnSubmit = reset }
}

func NewHandler(loader *Loader, store *state.Store, logger zerolog.Logger, opts ...HandlerOption) *Handler {
	h := &Handler{
		loader:   loader,
		store:    store,
		logger:   logger,
		pageSize: pagination.DefaultLimit,
	}
	for _, o := range opts {
		o(h)
	}
	return h
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.ListPatients)
	e.GET("/health", h.Health)

	e.GET("/patients/new", h.NewPatient)
	e.POST("/patients", h.CreatePatient)
	e.GET("/patients/", h.MissingPatient)
	e.GET("/patients/:id", h.ShowPatient)

	e.GET("/patients/:id/entries/new", h.NewEntry)
	e.POST("/patients/:id/entries", h.CreateEntry)
	e.POST("/patients/:id/entries/cancel", h.CancelEntry)
}

// requestContext carries the request id on to the service.
func requestContext(c echo.Context) context.Context {
	return apiclient.ContextWithRequestID(c.Request().Context(), middleware.GetRequestID(c))
}

// -- Patient list --

func (h *Handler) ListPatients(c echo.Context) error {
	ctx := requestContext(c)
	h.loader.RefreshPatients(ctx)
	return h.renderList(c, http.StatusOK, nil)
}

func (h *Handler) NewPatient(c echo.Context) error {
	return h.renderList(c, http.StatusOK, newPatientModal(form.NewPatientForm(form.PatientHandlers{})))
}

func (h *Handler) CreatePatient(c echo.Context) error {
	ctx := requestContext(c)
	var created patient.Patient
	f := form.NewPatientForm(form.PatientHandlers{
		OnSubmit: func(ctx context.Context, np patient.NewPatient) error {
			p, err := h.loader.AddPatient(ctx, np)
			created = p
			return err
		},
	})
	for _, fs := range f.Fields() {
		f.Set(fs.Name, c.FormValue(string(fs.Name)))
	}

	err := f.Submit(ctx)
	if err == nil {
		return c.Redirect(http.StatusSeeOther, "/patients/"+url.PathEscape(created.ID))
	}
	modal := newPatientModal(f)
	status := h.submitFailure(err, &modal.Error)
	return h.renderList(c, status, modal)
}

func (h *Handler) renderList(c echo.Context, status int, modal *PatientModal) error {
	st := h.store.State()
	p := pagination.FromContext(c, h.pageSize)
	page := newListPage(pagination.Slice(SortedPatients(st.Patients), p, "/"))
	page.Modal = modal
	return c.Render(status, "list", page)
}

// -- Patient detail --

func (h *Handler) ShowPatient(c echo.Context) error {
	return h.renderDetail(c, http.StatusOK, nil)
}

// MissingPatient serves the detail route without an id. The gap is logged
// and an empty page is shown.
func (h *Handler) MissingPatient(c echo.Context) error {
	h.loader.LoadPatient(requestContext(c), "")
	return c.Render(http.StatusOK, "detail", DetailPage{Title: "Patient"})
}

func (h *Handler) renderDetail(c echo.Context, status int, modal *EntryModal) error {
	id := c.Param("id")
	page := DetailPage{Title: "Patient", Modal: modal, EntryType: c.QueryParam("type")}
	if modal != nil && modal.Selected != "" {
		page.EntryType = modal.Selected
	}

	p, err := h.loader.LoadPatient(requestContext(c), id)
	if err == nil {
		view, verr := NewPatientView(p, h.store.State().Diagnoses())
		if verr != nil {
			h.logger.Error().Err(verr).Str("patient_id", id).Msg("cannot render patient")
			return echo.NewHTTPError(http.StatusBadGateway, "patient record contains an unsupported entry")
		}
		page.Patient = view
		page.Title = p.Name
	}
	var se *apiclient.ServiceError
	if errors.As(err, &se) && se.StatusCode == http.StatusNotFound && status == http.StatusOK {
		status = http.StatusNotFound
	}
	return c.Render(status, "detail", page)
}

// -- Add entry --

func (h *Handler) selector(c echo.Context) (*form.Selector, error) {
	s := form.NewSelector(h.resetOnSubmit)
	if err := s.Restore(c.QueryParam("type")); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return s, nil
}

func (h *Handler) NewEntry(c echo.Context) error {
	s, err := h.selector(c)
	if err != nil {
		return err
	}
	f, err := s.Form(h.store.State().DiagnosisList, form.EntryHandlers{})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	selected, _ := s.Current()
	return h.renderDetail(c, http.StatusOK, newEntryModal(c.Param("id"), selected, f))
}

func (h *Handler) CreateEntry(c echo.Context) error {
	id := c.Param("id")
	s, err := h.selector(c)
	if err != nil {
		return err
	}
	selected, ok := s.Current()
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, form.SelectorPrompt)
	}

	ctx := requestContext(c)
	f, err := s.Form(h.store.State().DiagnosisList, form.EntryHandlers{
		OnSubmit: func(ctx context.Context, e patient.Entry) error {
			return h.loader.SubmitEntry(ctx, id, e)
		},
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := applyEntryForm(c, f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err = f.Submit(ctx)
	if err == nil {
		s.Submitted()
		return c.Redirect(http.StatusSeeOther, detailURL(id, s))
	}
	modal := newEntryModal(id, selected, f)
	status := h.submitFailure(err, &modal.Error)
	return h.renderDetail(c, status, modal)
}

// CancelEntry discards the form. The selector keeps its choice.
func (h *Handler) CancelEntry(c echo.Context) error {
	s, err := h.selector(c)
	if err != nil {
		return err
	}
	if f, _ := s.Form(h.store.State().DiagnosisList, form.EntryHandlers{OnCancel: s.Cancelled}); f != nil {
		f.Cancel()
	}
	return c.Redirect(http.StatusSeeOther, detailURL(c.Param("id"), s))
}

func applyEntryForm(c echo.Context, f form.EntryForm) error {
	values, err := c.FormParams()
	if err != nil {
		return err
	}
	for _, fs := range f.Fields() {
		if fs.Kind == form.KindMultiSelect {
			f.SetDiagnosisCodes(values[string(fs.Name)])
			continue
		}
		f.Set(fs.Name, values.Get(string(fs.Name)))
	}
	return nil
}

func detailURL(id string, s *form.Selector) string {
	u := "/patients/" + url.PathEscape(id)
	if t, ok := s.Current(); ok {
		u += "?type=" + url.QueryEscape(string(t))
	}
	return u
}

// submitFailure maps a failed Submit to a status and the banner text. Field
// errors are already on the form and get no banner.
func (h *Handler) submitFailure(err error, banner *string) int {
	switch {
	case errors.Is(err, form.ErrNotSubmittable):
		return http.StatusUnprocessableEntity
	case RejectionMessage(err) != "":
		*banner = RejectionMessage(err)
		return http.StatusUnprocessableEntity
	default:
		h.logger.Error().Err(err).Msg("submission failed")
		*banner = msgUnavailable
		return http.StatusBadGateway
	}
}

// -- Health --

func (h *Handler) Health(c echo.Context) error {
	if err := h.loader.svc.Ping(requestContext(c)); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status":   "degraded",
			"upstream": err.Error(),
		})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// ErrorHandler renders HTTP errors as the error page. Non-HTTP errors become
// a 500 without leaking their text.
func ErrorHandler(logger zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		code := http.StatusInternalServerError
		msg := http.StatusText(code)
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			if m, ok := he.Message.(string); ok {
				msg = m
			} else {
				msg = http.StatusText(code)
			}
		} else {
			logger.Error().Err(err).Str("request_id", middleware.GetRequestID(c)).Msg("unhandled error")
		}

		var rerr error
		if c.Request().Method == http.MethodHead {
			rerr = c.NoContent(code)
		} else {
			rerr = c.Render(code, "error", map[string]any{
				"Title":   http.StatusText(code),
				"Message": msg,
			})
		}
		if rerr != nil {
			logger.Error().Err(rerr).Msg("failed to render error page")
		}
	}
}
