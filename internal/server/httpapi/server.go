// Package httpapi is the JSON-over-HTTP transport of the folio server.
// Protected routes sit behind RequireAuth; handlers translate service
// errors into the {"code","message"} envelope.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/folio/internal/common"
	"github.com/dmitrijs2005/folio/internal/logging"
	"github.com/dmitrijs2005/folio/internal/server/models"
	"github.com/dmitrijs2005/folio/internal/server/services"
	"github.com/gorilla/mux"
)

type AccountService interface {
	Register(ctx context.Context, email, password string) (*services.AuthResult, error)
	Login(ctx context.Context, email, password string) (*services.AuthResult, error)
	Verify(ctx context.Context, raw string) (*models.Account, error)
	UpdateProfile(ctx context.Context, accountID string, upd models.ProfileUpdate) (*models.Account, error)
	UpdateBio(ctx context.Context, accountID, bio string) (*models.Account, error)
	PictureUploadURL(ctx context.Context, accountID string) (string, string, error)
	PictureDownloadURL(ctx context.Context, account *models.Account) (string, error)
}

type PortfolioService interface {
	ListAcademic(ctx context.Context, ownerID string) ([]*models.Academic, error)
	CreateAcademic(ctx context.Context, ownerID string, rec *models.Academic) (*models.Academic, error)
	UpdateAcademic(ctx context.Context, ownerID string, rec *models.Academic) (*models.Academic, error)
	DeleteAcademic(ctx context.Context, ownerID, id string) error
	ListProjects(ctx context.Context, ownerID string) ([]*models.Project, error)
	CreateProject(ctx context.Context, ownerID string, rec *models.Project) (*models.Project, error)
	UpdateProject(ctx context.Context, ownerID string, rec *models.Project) (*models.Project, error)
	DeleteProject(ctx context.Context, ownerID, id string) error
}

type ContactService interface {
	Submit(ctx context.Context, msg *models.Message) (*models.Message, error)
	List(ctx context.Context) ([]*models.Message, error)
}

// Handler holds the services behind the routes.
type Handler struct {
	accounts  AccountService
	portfolio PortfolioService
	contact   ContactService
	logger    logging.Logger
}

func NewHandler(accounts AccountService, portfolio PortfolioService, contact ContactService, logger logging.Logger) *Handler {
	return &Handler{accounts: accounts, portfolio: portfolio, contact: contact, logger: logger}
}

// Router builds the route table.
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(Recoverer(h.logger), RequestLogger(h.logger))

	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	r.HandleFunc("/auth/register", h.Register).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", h.Login).Methods(http.MethodPost)
	r.HandleFunc("/contact", h.SubmitContact).Methods(http.MethodPost)

	protected := r.NewRoute().Subrouter()
	protected.Use(RequireAuth(h.accounts, h.logger))

	protected.HandleFunc("/auth/user", h.CurrentUser).Methods(http.MethodGet)
	protected.HandleFunc("/auth/user", h.UpdateProfile).Methods(http.MethodPut)
	protected.HandleFunc("/auth/user/picture", h.PictureUpload).Methods(http.MethodPost)
	protected.HandleFunc("/auth/user/picture", h.PictureDownload).Methods(http.MethodGet)

	protected.HandleFunc("/portfolio/bio", h.UpdateBio).Methods(http.MethodPut)
	protected.HandleFunc("/portfolio/academic", h.ListAcademic).Methods(http.MethodGet)
	protected.HandleFunc("/portfolio/academic", h.CreateAcademic).Methods(http.MethodPost)
	protected.HandleFunc("/portfolio/academic/{id}", h.UpdateAcademic).Methods(http.MethodPut)
	protected.HandleFunc("/portfolio/academic/{id}", h.DeleteAcademic).Methods(http.MethodDelete)
	protected.HandleFunc("/portfolio/project", h.ListProjects).Methods(http.MethodGet)
	protected.HandleFunc("/portfolio/project", h.CreateProject).Methods(http.MethodPost)
	protected.HandleFunc("/portfolio/project/{id}", h.UpdateProject).Methods(http.MethodPut)
	protected.HandleFunc("/portfolio/project/{id}", h.DeleteProject).Methods(http.MethodDelete)

	protected.HandleFunc("/contact", h.ListContact).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		SendError(w, http.StatusNotFound, common.CodeNotFound, "no such route")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		SendError(w, http.StatusMethodNotAllowed, common.CodeMethodNotAllowed, r.Method+" is not allowed on "+r.URL.Path)
	})
	return r
}

// fail writes the envelope for err and logs anything unexpected.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, code, msg := classify(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	}
	SendError(w, status, code, msg)
}

// Server runs the router until its context is cancelled.
type Server struct {
	srv    *http.Server
	logger logging.Logger
}

func NewServer(addr string, handler http.Handler, logger logging.Logger) *Server {
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "http server listening", "addr", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.logger.Info(ctx, "http server stopping")
	return s.srv.Shutdown(shutdownCtx)
}
