package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/folio/internal/client/client"
	"github.com/dmitrijs2005/folio/internal/client/config"
	"github.com/dmitrijs2005/folio/internal/client/guard"
	"github.com/dmitrijs2005/folio/internal/client/models"
	"github.com/dmitrijs2005/folio/internal/client/session"
	"github.com/dmitrijs2005/folio/internal/filex"
	"github.com/dmitrijs2005/folio/internal/logging"
)

// PortfolioAPI is the part of the folio API the commands use directly.
// Authentication goes through the session manager instead.
type PortfolioAPI interface {
	UpdateProfile(ctx context.Context, token string, upd models.ProfileUpdate) (*models.Account, error)
	UpdateBio(ctx context.Context, token, bio string) (*models.Account, error)
	UploadPicture(ctx context.Context, token, contentType string, data []byte) (*models.Account, error)
	PictureDownloadURL(ctx context.Context, token string) (string, error)

	ListAcademic(ctx context.Context, token string) ([]models.Academic, error)
	CreateAcademic(ctx context.Context, token string, rec models.Academic) (*models.Academic, error)
	UpdateAcademic(ctx context.Context, token string, rec models.Academic) (*models.Academic, error)
	DeleteAcademic(ctx context.Context, token, id string) error

	ListProjects(ctx context.Context, token string) ([]models.Project, error)
	CreateProject(ctx context.Context, token string, rec models.Project) (*models.Project, error)
	UpdateProject(ctx context.Context, token string, rec models.Project) (*models.Project, error)
	DeleteProject(ctx context.Context, token, id string) error

	SubmitContact(ctx context.Context, msg models.Message) (string, error)
	ListMessages(ctx context.Context, token string) ([]models.Message, error)
}

type App struct {
	api     PortfolioAPI
	session *session.Manager
	guard   guard.Guard
	reader  *bufio.Reader
	out     io.Writer
	logger  logging.Logger
	closeFn func() error
}

// NewApp opens local storage and wires the client together. The session is
// not restored until Run.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	path, err := filex.EnsureParentDir(c.StoragePath)
	if err != nil {
		return nil, err
	}

	storage, err := client.InitDatabase(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	api := client.NewHTTPClient(c.ServerURL, c.RequestTimeout)
	manager := session.NewManager(api, client.NewTokenStore(storage.Metadata), logger)

	a := newApp(api, manager, bufio.NewReader(os.Stdin), os.Stdout, logger)
	a.closeFn = storage.Close
	return a, nil
}

func newApp(api PortfolioAPI, manager *session.Manager, reader *bufio.Reader, out io.Writer, logger logging.Logger) *App {
	return &App{
		api:     api,
		session: manager,
		guard:   guard.New("login"),
		reader:  reader,
		out:     out,
		logger:  logger,
	}
}

// Run restores the stored session and serves the REPL until exit or EOF.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	if err := a.session.Start(ctx); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Welcome to folio CLI (type 'help' for commands)")
	runREPL(ctx, a, a.status, a.reader)
	return nil
}

func (a *App) Close() error {
	if a.closeFn == nil {
		return nil
	}
	err := a.closeFn()
	a.closeFn = nil
	return err
}

func (a *App) isLoggedIn() bool {
	return a.session.State().Status == session.Authenticated
}

func (a *App) status() string {
	st := a.session.State()
	if st.Identity != nil {
		return fmt.Sprintf("(%s)", st.Identity.Label())
	}
	if st.Status == session.Resolving {
		return "(" + st.Status.String() + ")"
	}
	return ""
}

// maxGuardRounds bounds wait/login rounds before a protected command gives up.
const maxGuardRounds = 3

// authorize applies the route guard. It waits out a resolving session and
// offers the login prompt when there is no session. It returns the token to
// use when the route may render.
func (a *App) authorize(ctx context.Context, route guard.Route) (string, bool) {
	for range maxGuardRounds {
		st := a.session.State()
		switch d := a.guard.Decide(st, route); d.Action {
		case guard.Render:
			return st.Token, true
		case guard.Pending:
			printlnFn("Restoring session...")
			if _, err := a.session.Wait(ctx); err != nil {
				return "", false
			}
		case guard.Redirect:
			printlnFn(fmt.Sprintf("'%s' requires a session, please %s first", route.Name, d.Target))
			if err := a.Login(ctx); err != nil {
				report(err)
				return "", false
			}
		}
	}
	return "", false
}
