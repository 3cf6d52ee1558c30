package results

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"agriboost-backend/internal/i18n"
	"agriboost-backend/internal/session"
	"agriboost-backend/internal/shared/server/respond"
)

//go:embed templates/*.html
var templateFS embed.FS

// Handler renders the result page and serves its JSON form.
type Handler struct {
	Sessions    *session.Store
	I18n        *i18n.Bundle
	UploadRoute string

	tmpl *template.Template
}

func NewHandler(sessions *session.Store, bundle *i18n.Bundle, uploadRoute string) (*Handler, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Handler{
		Sessions:    sessions,
		I18n:        bundle,
		UploadRoute: uploadRoute,
		tmpl:        tmpl,
	}, nil
}

// RegisterPage attaches the HTML route to the root router.
func (h *Handler) RegisterPage(r *gin.Engine) {
	r.GET("/results", h.page)
}

// RegisterAPI attaches the JSON route to the API group.
func (h *Handler) RegisterAPI(rg *gin.RouterGroup) {
	rg.GET("/results", h.api)
}

type pageData struct {
	View        View
	T           func(string) string
	Display     func(string) string
	UploadRoute string
}

func (h *Handler) page(c *gin.Context) {
	view := Resolve(h.Sessions, session.IDFromContext(c))
	tr := h.I18n.Translator(c.Query("lang"))

	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	err := h.tmpl.ExecuteTemplate(c.Writer, "results.html", pageData{
		View: view,
		T:    tr,
		Display: func(v string) string {
			if v == NotAvailable {
				return tr("soilHealth.notAvailable")
			}
			return v
		},
		UploadRoute: h.UploadRoute,
	})
	if err != nil {
		_ = c.Error(err)
	}
}

func (h *Handler) api(c *gin.Context) {
	view := Resolve(h.Sessions, session.IDFromContext(c))

	body := gin.H{"state": view.State.String()}
	switch view.State {
	case StatePopulated:
		body["soil"] = view.Soil
		body["recommendations"] = view.Recommendations
	default:
		body["uploadRoute"] = h.UploadRoute
	}
	respond.OK(c, body)
}
