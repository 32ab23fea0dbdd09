package web

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"

	"checkin/internal/domain/record"
	"checkin/internal/domain/view"

	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// Тексты интерфейса, одна локаль.
const (
	landingTitle   = "בדיקת מצב"
	landingMessage = "יש להיכנס עם מספר אישי בכתובת"
	recordTitle    = "פרטי חייל"
	nameFallback   = "לא זמין"
	roleAdmin      = "מנהל"
	roleRegular    = "משתמש רגיל"
	noticeUpdated  = "החייל עודכן בהצלחה"
	noticeFailed   = "אירעה שגיאה בעדכון החייל"
)

type Handler struct {
	views    view.Servicer
	sentinel string
	theme    Theme
	pages    map[string]*template.Template
	static   http.Handler
	log      *slog.Logger
}

func NewHandler(views view.Servicer, sentinel string, theme Theme, log *slog.Logger) (*Handler, error) {
	pages, err := parsePages("landing", "record")
	if err != nil {
		return nil, err
	}

	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("static assets: %w", err)
	}

	return &Handler{
		views:    views,
		sentinel: sentinel,
		theme:    theme,
		pages:    pages,
		static:   http.StripPrefix("/static/", http.FileServer(http.FS(static))),
		log:      log.With(slog.String("component", "web")),
	}, nil
}

func parsePages(names ...string) (map[string]*template.Template, error) {
	pages := make(map[string]*template.Template, len(names))
	for _, name := range names {
		t, err := template.ParseFS(templatesFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = t
	}

	return pages, nil
}

func (h *Handler) SetupRoutes(r chi.Router) {
	r.Handle("/static/*", h.static)
	r.Get("/favicon.ico", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	r.Get("/", h.landing)
	r.Get("/{id}", h.recordPage)
	r.Post("/{id}/status", h.updateStatus)
	r.Post("/{id}/dialog/close", h.closeDialog)
}

type pageData struct {
	Title   string
	Theme   Theme
	Refresh bool
	Notices []noticeView
	Message string
	Record  *recordView
}

type noticeView struct {
	Kind string
	Text string
}

type recordView struct {
	Token          string
	ID             string
	State          string
	ErrMessage     string
	Name           string
	City           string
	Phone          string
	EmergencyPhone string
	Status         string
	StatusTone     string
	HasRole        bool
	Admin          bool
	RoleLabel      string
	DialogOpen     bool
	Sentinel       string
	UpdateURL      string
	CloseURL       string
}

func (h *Handler) landing(w http.ResponseWriter, _ *http.Request) {
	h.render(w, "landing", http.StatusOK, pageData{
		Title:   landingTitle,
		Theme:   h.theme,
		Message: landingMessage,
	})
}

func (h *Handler) recordPage(w http.ResponseWriter, r *http.Request) {
	id := recordID(r)

	if token := r.URL.Query().Get("view"); token != "" {
		snap, err := h.views.Render(token, id)
		if err == nil {
			h.renderRecord(w, snap)
			return
		}
		if !errors.Is(err, view.ErrNotFound) {
			h.fail(w, "render view", err)
			return
		}
		// Просроченный или чужой токен - монтируем заново.
	}

	snap, err := h.views.Mount(r.Context(), id)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	h.renderRecord(w, snap)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id := recordID(r)
	token := r.PostFormValue("view")

	outcome, err := h.views.RequestUpdate(r.Context(), token, id)
	switch {
	case errors.Is(err, view.ErrNotFound):
		http.Redirect(w, r, recordPath(id), http.StatusSeeOther)
		return
	case err != nil && outcome == view.OutcomeFailed:
		h.log.Warn("status update failed", slog.String("id", id), slog.String("error", err.Error()))
	case err != nil:
		h.fail(w, "update status", err)
		return
	}

	http.Redirect(w, r, viewPath(id, token), http.StatusSeeOther)
}

func (h *Handler) closeDialog(w http.ResponseWriter, r *http.Request) {
	id := recordID(r)
	token := r.PostFormValue("view")

	if err := h.views.CloseDialog(token, id); err != nil {
		if errors.Is(err, view.ErrNotFound) {
			http.Redirect(w, r, recordPath(id), http.StatusSeeOther)
			return
		}
		h.fail(w, "close dialog", err)
		return
	}

	http.Redirect(w, r, viewPath(id, token), http.StatusSeeOther)
}

func (h *Handler) renderRecord(w http.ResponseWriter, snap view.Snapshot) {
	data := pageData{
		Title:   recordTitle,
		Theme:   h.theme,
		Refresh: snap.State == view.StatePending,
		Notices: noticeViews(snap.Notices),
		Record:  h.newRecordView(snap),
	}

	status := http.StatusOK
	if snap.State == view.StateFailed {
		status = http.StatusBadGateway
	}

	w.Header().Set("Cache-Control", "no-store")
	h.render(w, "record", status, data)
}

func (h *Handler) newRecordView(snap view.Snapshot) *recordView {
	rv := &recordView{
		Token:      snap.Token,
		ID:         snap.RecordID,
		State:      snap.State.String(),
		DialogOpen: snap.DialogOpen,
		Sentinel:   h.sentinel,
		UpdateURL:  recordPath(snap.RecordID) + "/status",
		CloseURL:   recordPath(snap.RecordID) + "/dialog/close",
	}
	if snap.Err != nil {
		rv.ErrMessage = record.Reason(snap.Err)
	}

	rec := snap.Record
	if rec == nil {
		return rv
	}

	rv.Name = rec.Name
	if rv.Name == "" {
		rv.Name = nameFallback
	}
	rv.City = rec.City
	rv.Phone = rec.Phone
	rv.EmergencyPhone = rec.EmergencyPhone
	rv.Status = rec.Status
	rv.StatusTone = string(rec.StatusTone(h.sentinel))
	rv.HasRole = rec.HasRole()
	rv.Admin = rec.Admin()
	rv.RoleLabel = roleRegular
	if rv.Admin {
		rv.RoleLabel = roleAdmin
	}

	return rv
}

func noticeViews(notices []view.Notice) []noticeView {
	out := make([]noticeView, 0, len(notices))
	for _, n := range notices {
		text := noticeFailed
		if n.Kind == view.NoticeSuccess {
			text = noticeUpdated
		}
		out = append(out, noticeView{Kind: string(n.Kind), Text: text})
	}

	return out
}

func (h *Handler) render(w http.ResponseWriter, page string, status int, data pageData) {
	var buf bytes.Buffer
	if err := h.pages[page].ExecuteTemplate(&buf, "layout", data); err != nil {
		h.fail(w, "execute template "+page, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (h *Handler) fail(w http.ResponseWriter, op string, err error) {
	h.log.Error(op, slog.String("error", err.Error()))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// recordID returns the decoded path segment. chi hands out the raw form
// when the request path carried escapes.
func recordID(r *http.Request) string {
	id := chi.URLParam(r, "id")
	if r.URL.RawPath != "" {
		if dec, err := url.PathUnescape(id); err == nil {
			id = dec
		}
	}

	return id
}

func recordPath(id string) string {
	return "/" + url.PathEscape(id)
}

func viewPath(id, token string) string {
	return recordPath(id) + "?view=" + url.QueryEscape(token)
}
