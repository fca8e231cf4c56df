package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/dmitrijs2005/folio/internal/client/client"
	"github.com/dmitrijs2005/folio/internal/client/models"
	"github.com/dmitrijs2005/folio/internal/common"
)

// getSimpleText, getMultiline and getPassword are indirections used to
// facilitate testing.
var (
	getSimpleText = GetSimpleText
	getMultiline  = GetMultiline
	getList       = GetList
	getPassword   = GetPassword
)

func (a *App) ask(prompt string) (string, error) {
	return getSimpleText(a.reader, prompt, a.out)
}

func (a *App) askPassword(prompt string) (string, error) {
	pw, err := getPassword(a.out, prompt)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(pw)
	return string(pw), nil
}

// Register prompts for email, password and confirmation and creates the
// account. On success the new session is active.
func (a *App) Register(ctx context.Context) error {
	email, err := a.ask("Enter email")
	if err != nil {
		return err
	}
	password, err := a.askPassword("Enter password")
	if err != nil {
		return err
	}
	confirm, err := a.askPassword("Confirm password")
	if err != nil {
		return err
	}

	if err := a.session.Register(ctx, email, password, confirm); err != nil {
		return err
	}
	printlnFn("Registered and logged in as", email)
	return nil
}

// Login prompts for credentials and replaces the current session.
func (a *App) Login(ctx context.Context) error {
	email, err := a.ask("Enter email")
	if err != nil {
		return err
	}
	password, err := a.askPassword("Enter password")
	if err != nil {
		return err
	}

	if err := a.session.Login(ctx, email, password); err != nil {
		return err
	}
	a.logger.Info(ctx, "login successful")
	printlnFn("Logged in as", email)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	printlnFn("Logged out")
	return nil
}

// Contact sends the public contact form.
func (a *App) Contact(ctx context.Context) error {
	name, err := a.ask("Your name")
	if err != nil {
		return err
	}
	email, err := a.ask("Your email")
	if err != nil {
		return err
	}
	body, err := getMultiline(a.reader, "Message", a.out)
	if err != nil {
		return err
	}

	id, err := a.api.SubmitContact(ctx, models.Message{Name: name, Email: email, Body: body})
	if err != nil {
		return err
	}
	printlnFn("Message received, id", id)
	return nil
}

// WhoAmI re-resolves the session identity and prints it.
func (a *App) WhoAmI(ctx context.Context) error {
	if err := a.session.RefreshIdentity(ctx); err != nil {
		return err
	}
	acc := a.session.State().Identity
	if acc == nil {
		return client.ErrUnauthorized
	}

	printlnFn(fmt.Sprintf("%s <%s>", acc.Label(), acc.Email))
	printlnFn("  id:     ", acc.ID)
	printlnFn("  since:  ", acc.CreatedAt.Format("2006-01-02"))
	if acc.Bio != "" {
		printlnFn("  bio:    ", acc.Bio)
	}
	if acc.Picture != "" {
		printlnFn("  picture:", acc.Picture)
	}
	return nil
}

// Profile updates the display name. An empty answer keeps it.
func (a *App) Profile(ctx context.Context, token string) error {
	name, err := a.ask("Display name (empty keeps the current one)")
	if err != nil {
		return err
	}
	if name == "" {
		return nil
	}

	if _, err := a.api.UpdateProfile(ctx, token, models.ProfileUpdate{DisplayName: &name}); err != nil {
		return a.afterCall(ctx, err)
	}
	printlnFn("Profile updated")
	return a.session.RefreshIdentity(ctx)
}

func (a *App) Bio(ctx context.Context, token string) error {
	bio, err := getMultiline(a.reader, "Biography", a.out)
	if err != nil {
		return err
	}

	if _, err := a.api.UpdateBio(ctx, token, bio); err != nil {
		return a.afterCall(ctx, err)
	}
	printlnFn("Biography updated")
	return a.session.RefreshIdentity(ctx)
}

func (a *App) Academic(ctx context.Context, token string, args []string) error {
	sub, id := subcommand(args)

	switch sub {
	case "list":
		list, err := a.api.ListAcademic(ctx, token)
		if err != nil {
			return a.afterCall(ctx, err)
		}
		if len(list) == 0 {
			printlnFn("No academic entries")
		}
		for _, r := range list {
			printlnFn(fmt.Sprintf("%s  %s, %s (%s)", r.ID, r.Degree, r.Institution, r.Year))
		}
		return nil

	case "add", "edit":
		if sub == "edit" && id == "" {
			printlnFn("Usage: academic edit <id>")
			return nil
		}
		rec, err := a.askAcademic()
		if err != nil {
			return err
		}
		rec.ID = id

		var saved *models.Academic
		if sub == "add" {
			saved, err = a.api.CreateAcademic(ctx, token, rec)
		} else {
			saved, err = a.api.UpdateAcademic(ctx, token, rec)
		}
		if err != nil {
			return a.afterCall(ctx, err)
		}
		printlnFn("Saved academic entry", saved.ID)
		return nil

	case "rm":
		if id == "" {
			printlnFn("Usage: academic rm <id>")
			return nil
		}
		if err := a.api.DeleteAcademic(ctx, token, id); err != nil {
			return a.afterCall(ctx, err)
		}
		printlnFn("Deleted", id)
		return nil
	}

	printlnFn("Usage: academic [list | add | edit <id> | rm <id>]")
	return nil
}

func (a *App) askAcademic() (models.Academic, error) {
	var rec models.Academic
	var err error
	if rec.Degree, err = a.ask("Degree"); err != nil {
		return rec, err
	}
	if rec.Institution, err = a.ask("Institution"); err != nil {
		return rec, err
	}
	if rec.Year, err = a.ask("Year"); err != nil {
		return rec, err
	}
	rec.Description, err = getMultiline(a.reader, "Description", a.out)
	return rec, err
}

func (a *App) Projects(ctx context.Context, token string, args []string) error {
	sub, id := subcommand(args)

	switch sub {
	case "list":
		list, err := a.api.ListProjects(ctx, token)
		if err != nil {
			return a.afterCall(ctx, err)
		}
		if len(list) == 0 {
			printlnFn("No projects")
		}
		for _, p := range list {
			printlnFn(fmt.Sprintf("%s  %s [%s] %s", p.ID, p.Title, strings.Join(p.Technologies, ", "), p.Link))
		}
		return nil

	case "add", "edit":
		if sub == "edit" && id == "" {
			printlnFn("Usage: projects edit <id>")
			return nil
		}
		rec, err := a.askProject()
		if err != nil {
			return err
		}
		rec.ID = id

		var saved *models.Project
		if sub == "add" {
			saved, err = a.api.CreateProject(ctx, token, rec)
		} else {
			saved, err = a.api.UpdateProject(ctx, token, rec)
		}
		if err != nil {
			return a.afterCall(ctx, err)
		}
		printlnFn("Saved project", saved.ID)
		return nil

	case "rm":
		if id == "" {
			printlnFn("Usage: projects rm <id>")
			return nil
		}
		if err := a.api.DeleteProject(ctx, token, id); err != nil {
			return a.afterCall(ctx, err)
		}
		printlnFn("Deleted", id)
		return nil
	}

	printlnFn("Usage: projects [list | add | edit <id> | rm <id>]")
	return nil
}

func (a *App) askProject() (models.Project, error) {
	var rec models.Project
	var err error
	if rec.Title, err = a.ask("Title"); err != nil {
		return rec, err
	}
	if rec.Link, err = a.ask("Link"); err != nil {
		return rec, err
	}
	if rec.Technologies, err = getList(a.reader, "Technologies", a.out); err != nil {
		return rec, err
	}
	rec.Description, err = getMultiline(a.reader, "Description", a.out)
	return rec, err
}

// Messages lists contact submissions, newest first.
func (a *App) Messages(ctx context.Context, token string) error {
	list, err := a.api.ListMessages(ctx, token)
	if err != nil {
		return a.afterCall(ctx, err)
	}
	if len(list) == 0 {
		printlnFn("No messages")
	}
	for _, m := range list {
		printlnFn(fmt.Sprintf("%s  %s <%s>", m.CreatedAt.Format("2006-01-02 15:04"), m.Name, m.Email))
		printlnFn("   ", m.Body)
	}
	return nil
}

func (a *App) Picture(ctx context.Context, token string, args []string) error {
	sub, path := subcommand(args)

	switch sub {
	case "url", "list":
		u, err := a.api.PictureDownloadURL(ctx, token)
		if err != nil {
			return a.afterCall(ctx, err)
		}
		printlnFn(u)
		return nil

	case "upload":
		if path == "" {
			printlnFn("Usage: picture upload <path>")
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		acc, err := a.api.UploadPicture(ctx, token, http.DetectContentType(data), data)
		if err != nil {
			return a.afterCall(ctx, err)
		}
		printlnFn("Picture stored as", acc.Picture)
		return a.session.RefreshIdentity(ctx)
	}

	printlnFn("Usage: picture [url | upload <path>]")
	return nil
}

// afterCall lets the session manager notice a token the server stopped
// accepting, so the guard redirects on the next protected command.
func (a *App) afterCall(ctx context.Context, err error) error {
	if errors.Is(err, client.ErrUnauthorized) {
		_ = a.session.RefreshIdentity(ctx)
	}
	return err
}

// subcommand splits "verb [arg]" with "list" as the default verb.
func subcommand(args []string) (string, string) {
	if len(args) == 0 {
		return "list", ""
	}
	if len(args) == 1 {
		return args[0], ""
	}
	return args[0], args[1]
}
