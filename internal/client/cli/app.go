// Package cli implements the interactive jobdeck client: a small REPL
// over the session manager and the user-state synchronizer.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jobdeck/jobdeck/config"
	"github.com/jobdeck/jobdeck/internal/client"
	"github.com/jobdeck/jobdeck/internal/logging"
)

// App wires the client components behind the REPL commands.
type App struct {
	session *client.SessionManager
	syncer  *client.Syncer
	reader  *bufio.Reader
	out     io.Writer
}

// NewApp builds the client stack from config: HTTP API client, session
// cache, session manager, and synchronizer.
func NewApp(cfg config.ClientConfig, log logging.Logger, in io.Reader, out io.Writer) *App {
	api := client.NewHTTPClient(cfg.APIBaseURL)
	cache := client.NewSessionCache(cfg.SessionFile, cfg.SessionSecret, cfg.SessionTTL)

	session := client.NewSessionManager(api, cache, log)
	syncer := client.NewSyncer(api, log)
	syncer.Attach(session)

	return &App{
		session: session,
		syncer:  syncer,
		reader:  bufio.NewReader(in),
		out:     out,
	}
}

// Run restores any persisted session and enters the REPL. It returns
// when the user exits or input reaches EOF.
func (a *App) Run(ctx context.Context) {
	a.session.Restore(ctx)
	a.repl(ctx)
	a.syncer.Close()
}

func (a *App) isLoggedIn() bool {
	_, ok := a.session.Current()
	return ok
}

func (a *App) status() string {
	if user, ok := a.session.Current(); ok {
		return user.Email
	}
	return "not logged in"
}

func (a *App) login(ctx context.Context) {
	email, err := a.prompt("Email")
	if err != nil {
		return
	}
	password, err := a.prompt("Password")
	if err != nil {
		return
	}
	if a.session.Login(ctx, email, password) {
		a.println("Logged in.")
	} else {
		a.println("Login failed.")
	}
}

func (a *App) signup(ctx context.Context) {
	name, err := a.prompt("Name")
	if err != nil {
		return
	}
	email, err := a.prompt("Email")
	if err != nil {
		return
	}
	password, err := a.prompt("Password")
	if err != nil {
		return
	}
	dob, err := a.prompt("Date of birth (YYYY-MM-DD)")
	if err != nil {
		return
	}
	if a.session.Signup(ctx, name, email, password, dob) {
		a.println("Account created.")
	} else {
		a.println("Signup failed.")
	}
}

func (a *App) apply(jobID int64) {
	if a.syncer.HasApplied(jobID) {
		a.println("Already applied to job", jobID)
		return
	}
	a.syncer.Apply(jobID)
	a.println("Applied to job", jobID)
}

func (a *App) withdraw(jobID int64) {
	a.syncer.Withdraw(jobID)
	a.println("Withdrew application for job", jobID)
}

func (a *App) toggleBookmark(jobID int64) {
	a.syncer.ToggleBookmark(jobID)
	if a.syncer.IsBookmarked(jobID) {
		a.println("Bookmarked job", jobID)
	} else {
		a.println("Removed bookmark for job", jobID)
	}
}

func (a *App) showApplied() {
	a.printIDs("Applied jobs:", a.syncer.Applied())
}

func (a *App) showBookmarks() {
	a.printIDs("Bookmarked jobs:", a.syncer.Bookmarked())
}

func (a *App) whoami() {
	user, ok := a.session.Current()
	if !ok {
		a.println("Not logged in.")
		return
	}
	a.println(fmt.Sprintf("%s <%s>, age %d", user.Name, user.Email, user.Age))
}

func (a *App) logout() {
	a.session.Logout()
	a.println("Logged out.")
}

func (a *App) printIDs(header string, ids []int64) {
	if len(ids) == 0 {
		a.println(header, "none")
		return
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	a.println(header, strings.Join(parts, ", "))
}

// prompt prints a prompt and reads one trimmed line. EOF with partial
// input returns the partial line.
func (a *App) prompt(label string) (string, error) {
	fmt.Fprint(a.out, label+"\n> ")
	line, err := a.reader.ReadString('\n')
	if err != nil {
		if err == io.EOF && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}
