package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Raymond9734/customer-admin-portal/internal/backend"
	"github.com/Raymond9734/customer-admin-portal/internal/models"
	"github.com/Raymond9734/customer-admin-portal/internal/session"
	"github.com/Raymond9734/customer-admin-portal/internal/view"
)

// CustomerHandler serves the customer management screen: the paginated
// table plus the add, edit and delete dialogs.
type CustomerHandler struct {
	backend         backend.Client
	sessions        session.Store
	loader          *view.Loader
	renderer        *Renderer
	defaultPageSize int
	logger          *slog.Logger
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(
	backendClient backend.Client,
	sessions session.Store,
	loader *view.Loader,
	renderer *Renderer,
	defaultPageSize int,
	logger *slog.Logger,
) *CustomerHandler {
	if defaultPageSize < 1 {
		defaultPageSize = models.DefaultPageSize
	}
	return &CustomerHandler{
		backend:         backendClient,
		sessions:        sessions,
		loader:          loader,
		renderer:        renderer,
		defaultPageSize: defaultPageSize,
		logger:          logger,
	}
}

// customersData is the management screen template payload
type customersData struct {
	Query       models.ListQuery
	QueryString string
	Customers   []models.Customer
	Total       int64
	Dialog      view.Dialog
	Error       string
	Flash       *session.Flash
	HasPrev     bool
	HasNext     bool
	PrevURL     string
	NextURL     string
	RangeLabel  string
	PageSizes   []pageSizeOption
}

type pageSizeOption struct {
	Size   int
	URL    string
	Active bool
}

// List handles GET /customers
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	q := h.parseQuery(r)
	page, err := h.loader.Load(r.Context(), tokenFromContext(r.Context()), q)

	errMsg := ""
	if err != nil {
		errMsg = "Failed to fetch customers"
	}

	flash := h.popFlash(r)
	h.render(w, http.StatusOK, q, page, view.Closed(), errMsg, flash)
}

// ShowAdd handles GET /customers/add
func (h *CustomerHandler) ShowAdd(w http.ResponseWriter, r *http.Request) {
	q := h.parseQuery(r)
	page, err := h.loader.Load(r.Context(), tokenFromContext(r.Context()), q)

	errMsg := ""
	if err != nil {
		errMsg = "Failed to fetch customers"
	}

	h.render(w, http.StatusOK, q, page, view.OpenAdd(), errMsg, h.popFlash(r))
}

// SubmitAdd handles POST /customers/add. All three fields are required;
// on success the dialog closes and the current page reloads, on failure
// the dialog stays open with the entered values intact.
func (h *CustomerHandler) SubmitAdd(w http.ResponseWriter, r *http.Request) {
	q := h.parseQuery(r)
	form := formFromRequest(r)

	req, err := form.CreateRequest()
	if err == nil {
		_, err = h.backend.CreateCustomer(r.Context(), tokenFromContext(r.Context()), req)
	}
	if err != nil {
		dialog := view.RetryAdd(form, models.UserMessage(err, "Add failed"))
		flash := &session.Flash{Level: session.LevelError, Message: "Failed to add customer"}
		page, _ := h.loader.Load(r.Context(), tokenFromContext(r.Context()), q)
		h.render(w, http.StatusOK, q, page, dialog, "", flash)
		return
	}

	h.setFlash(r, session.Flash{Level: session.LevelSuccess, Message: "Customer added successfully!"})
	http.Redirect(w, r, h.listURL(q), http.StatusSeeOther)
}

// ShowEdit handles GET /customers/edit/{id}. The form is prefilled from
// the selected row's current values.
func (h *CustomerHandler) ShowEdit(w http.ResponseWriter, r *http.Request) {
	h.showSelected(w, r, view.OpenEdit)
}

// SubmitEdit handles POST /customers/edit/{id}. Only non-blank fields
// are sent to the backend.
func (h *CustomerHandler) SubmitEdit(w http.ResponseWriter, r *http.Request) {
	q := h.parseQuery(r)
	id, err := parseID(r)
	if err != nil {
		http.Redirect(w, r, h.listURL(q), http.StatusSeeOther)
		return
	}

	form := formFromRequest(r)
	_, err = h.backend.UpdateCustomer(r.Context(), tokenFromContext(r.Context()), id, form.UpdateRequest())
	if err != nil {
		page, _ := h.loader.Load(r.Context(), tokenFromContext(r.Context()), q)
		selected := h.selectedOrStub(page, id)
		dialog := view.RetryEdit(selected, form, models.UserMessage(err, "Update failed"))
		flash := &session.Flash{Level: session.LevelError, Message: "Failed to update customer"}
		h.render(w, http.StatusOK, q, page, dialog, "", flash)
		return
	}

	h.setFlash(r, session.Flash{Level: session.LevelSuccess, Message: "Customer updated successfully!"})
	http.Redirect(w, r, h.listURL(q), http.StatusSeeOther)
}

// ShowDelete handles GET /customers/delete/{id}
func (h *CustomerHandler) ShowDelete(w http.ResponseWriter, r *http.Request) {
	h.showSelected(w, r, view.OpenDelete)
}

// SubmitDelete handles POST /customers/delete/{id}. On failure the
// confirmation dialog stays open and the error shows in the panel, not
// inside the dialog.
func (h *CustomerHandler) SubmitDelete(w http.ResponseWriter, r *http.Request) {
	q := h.parseQuery(r)
	id, err := parseID(r)
	if err != nil {
		http.Redirect(w, r, h.listURL(q), http.StatusSeeOther)
		return
	}

	if err := h.backend.DeleteCustomer(r.Context(), tokenFromContext(r.Context()), id); err != nil {
		page, _ := h.loader.Load(r.Context(), tokenFromContext(r.Context()), q)
		dialog := view.OpenDelete(h.selectedOrStub(page, id))
		flash := &session.Flash{Level: session.LevelError, Message: "Failed to delete customer"}
		h.render(w, http.StatusOK, q, page, dialog, "Delete failed", flash)
		return
	}

	h.setFlash(r, session.Flash{Level: session.LevelSuccess, Message: "Customer deleted successfully!"})
	http.Redirect(w, r, h.listURL(q), http.StatusSeeOther)
}

// showSelected loads the current page, resolves the selected customer
// and opens the given dialog for it. When the record is not on the
// current page the dialog stays closed and an error flash is shown.
func (h *CustomerHandler) showSelected(w http.ResponseWriter, r *http.Request, open func(*models.Customer) view.Dialog) {
	q := h.parseQuery(r)
	id, err := parseID(r)
	if err != nil {
		http.Redirect(w, r, h.listURL(q), http.StatusSeeOther)
		return
	}

	page, err := h.loader.Load(r.Context(), tokenFromContext(r.Context()), q)
	if err != nil {
		h.render(w, http.StatusOK, q, page, view.Closed(), "Failed to fetch customers", h.popFlash(r))
		return
	}

	selected := page.FindByID(id)
	if selected == nil {
		h.setFlash(r, session.Flash{Level: session.LevelError, Message: "Customer not found"})
		http.Redirect(w, r, h.listURL(q), http.StatusSeeOther)
		return
	}

	h.render(w, http.StatusOK, q, page, open(selected), "", h.popFlash(r))
}

// render builds the template payload for the management screen.
func (h *CustomerHandler) render(
	w http.ResponseWriter,
	status int,
	q models.ListQuery,
	page *models.CustomerPage,
	dialog view.Dialog,
	errMsg string,
	flash *session.Flash,
) {
	data := customersData{
		Query:       q,
		QueryString: h.queryString(q),
		Dialog:      dialog,
		Error:       errMsg,
		Flash:       flash,
	}

	if page != nil {
		data.Customers = page.Customers
		data.Total = page.Total
		data.HasPrev = q.HasPrev()
		data.HasNext = q.HasNext(page.Total)
		data.RangeLabel = rangeLabel(q, page.Total)

		if data.HasPrev {
			prev := q
			prev.Page--
			data.PrevURL = h.listURL(prev)
		}
		if data.HasNext {
			next := q
			next.Page++
			data.NextURL = h.listURL(next)
		}
	}

	for _, size := range models.PageSizeOptions {
		resized := q
		resized.PageSize = size
		resized.Page = 0
		data.PageSizes = append(data.PageSizes, pageSizeOption{
			Size:   size,
			URL:    h.listURL(resized),
			Active: size == q.PageSize,
		})
	}

	h.renderer.Render(w, status, "customers", data)
}

// parseQuery reads page, pageSize and search from the request. The page
// parameter is 0-based throughout the portal.
func (h *CustomerHandler) parseQuery(r *http.Request) models.ListQuery {
	params := r.URL.Query()

	page, _ := strconv.Atoi(params.Get("page"))

	pageSize := h.defaultPageSize
	if raw := params.Get("pageSize"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			pageSize = parsed
		}
	}

	q := models.ListQuery{
		Page:     page,
		PageSize: pageSize,
		Search:   params.Get("search"),
	}
	q.Normalize()
	return q
}

// queryString encodes the list query for embedding in route URLs.
func (h *CustomerHandler) queryString(q models.ListQuery) string {
	params := url.Values{}
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("pageSize", strconv.Itoa(q.PageSize))
	if q.Search != "" {
		params.Set("search", q.Search)
	}
	return params.Encode()
}

// listURL is the management screen URL for the given query.
func (h *CustomerHandler) listURL(q models.ListQuery) string {
	return "/customers?" + h.queryString(q)
}

// selectedOrStub resolves the selected customer from the loaded page,
// falling back to an ID-only record when the page no longer contains it.
func (h *CustomerHandler) selectedOrStub(page *models.CustomerPage, id int64) *models.Customer {
	if page != nil {
		if c := page.FindByID(id); c != nil {
			return c
		}
	}
	return &models.Customer{ID: id}
}

func (h *CustomerHandler) popFlash(r *http.Request) *session.Flash {
	flash, err := h.sessions.PopFlash(r.Context(), sessionIDFromContext(r.Context()))
	if err != nil {
		h.logger.Error("failed to pop flash", slog.String("error", err.Error()))
		return nil
	}
	return flash
}

func (h *CustomerHandler) setFlash(r *http.Request, flash session.Flash) {
	if err := h.sessions.SetFlash(r.Context(), sessionIDFromContext(r.Context()), flash); err != nil {
		h.logger.Error("failed to set flash", slog.String("error", err.Error()))
	}
}

// formFromRequest reads the dialog form fields as entered.
func formFromRequest(r *http.Request) view.FormState {
	return view.FormState{
		Name:        r.PostFormValue("name"),
		Email:       r.PostFormValue("email"),
		PhoneNumber: r.PostFormValue("phoneNumber"),
	}
}

// parseID extracts the customer ID route parameter.
func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// rangeLabel describes the visible slice, e.g. "11-20 of 53".
func rangeLabel(q models.ListQuery, total int64) string {
	if total == 0 {
		return "0 of 0"
	}
	from := int64(q.Page*q.PageSize) + 1
	to := int64((q.Page + 1) * q.PageSize)
	if to > total {
		to = total
	}
	return fmt.Sprintf("%d-%d of %d", from, to, total)
}
