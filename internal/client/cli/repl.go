package cli

import (
	"context"
	"strconv"
	"strings"
)

// repl runs the read-eval-print loop. It reads one line per iteration,
// parses the first token as the command, and dispatches to App methods.
// The loop exits on EOF or when the user types "exit" or "quit".
func (a *App) repl(ctx context.Context) {
	a.println("jobdeck client (type 'help' for commands)")

	for {
		a.printPrompt()
		line, ok := a.readLine()
		if !ok {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				a.println("Available commands: apply <id>, withdraw <id>, bookmark <id>, applied, bookmarks, whoami, logout, exit")
			} else {
				a.println("Available commands: signup, login, exit")
			}

		case "signup":
			a.signup(ctx)

		case "login":
			a.login(ctx)

		case "apply":
			if jobID, ok := parseJobID(args); ok {
				a.apply(jobID)
			} else {
				a.println("Usage: apply <job-id>")
			}

		case "withdraw":
			if jobID, ok := parseJobID(args); ok {
				a.withdraw(jobID)
			} else {
				a.println("Usage: withdraw <job-id>")
			}

		case "bookmark":
			if jobID, ok := parseJobID(args); ok {
				a.toggleBookmark(jobID)
			} else {
				a.println("Usage: bookmark <job-id>")
			}

		case "applied":
			a.showApplied()

		case "bookmarks":
			a.showBookmarks()

		case "whoami":
			a.whoami()

		case "logout":
			a.logout()

		case "exit", "quit":
			a.println("Bye!")
			return

		default:
			a.println("Unknown command:", cmd)
		}
	}
}

func (a *App) printPrompt() {
	a.println("jobdeck", a.status(), ">")
}

func (a *App) readLine() (string, bool) {
	line, err := a.reader.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	return strings.TrimSpace(line), true
}

func parseJobID(args []string) (int64, bool) {
	if len(args) != 1 {
		return 0, false
	}
	jobID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || jobID < 0 {
		return 0, false
	}
	return jobID, true
}
