package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
)

func (a *App) getStatus() string {
	session := a.sessions.Current()
	if session == nil {
		return ""
	}
	return fmt.Sprintf("(%s %s)", session.Identity.Username, session.Identity.Role)
}

func (a *App) printHelp() {
	caps := a.capabilities()

	fmt.Println("Available commands:")
	if !a.isLoggedIn() {
		fmt.Println("  login                authenticate")
	}
	fmt.Println("  list                 list incidents")
	fmt.Println("  show <id>            show one incident")
	fmt.Println("  find tipo <id>       incidents of one type")
	fmt.Println("  find fecha <date>    incidents on a date (YYYY-MM-DD)")
	if caps.CanCreate {
		fmt.Println("  new                  record a new incident")
	}
	if caps.CanEdit {
		fmt.Println("  edit <id>            edit an incident")
	}
	if caps.CanDelete {
		fmt.Println("  delete <id>          delete an incident")
	}
	if caps.CanViewReports {
		fmt.Println("  bulletin <id>        generate a bulletin document")
	}
	if caps.CanViewStatistics {
		fmt.Println("  stats [general|tipo|sucursal]")
	}
	if caps.CanManageUsers {
		fmt.Println("  users                list user accounts")
	}
	if a.isLoggedIn() {
		fmt.Println("  whoami               show the current session")
		fmt.Println("  logout               end the session")
	}
	fmt.Println("  ping                 check server reachability")
	fmt.Println("  exit | quit          leave the program")
}

// Root runs the interactive command loop. Commands are gated by the current
// role's capabilities; a command outside them is refused with a message
// rather than hidden behind an error.
func (a *App) Root(ctx context.Context) {
	fmt.Println("Siniestros console (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Printf("siniestros %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]
		caps := a.capabilities()

		switch cmd {
		case "help":
			a.printHelp()

		case "login":
			a.login(ctx)

		case "logout":
			a.logout(ctx)

		case "whoami":
			a.whoami()

		case "ping":
			pingCtx, cancel := context.WithTimeout(ctx, a.config.RequestTimeout)
			if err := a.client.Ping(pingCtx); err != nil {
				fmt.Println("Server unreachable:", err)
			} else {
				fmt.Println("Server is up")
			}
			cancel()

		case "l", "list":
			a.listIncidents(ctx)

		case "show":
			id, ok := parseID(args, "Usage: show <id>")
			if ok {
				a.showIncident(ctx, id)
			}

		case "find":
			a.findIncidents(ctx, args)

		case "new":
			if !caps.CanCreate {
				fmt.Println("Your role cannot record incidents")
				continue
			}
			a.newIncident(ctx)

		case "edit":
			if !caps.CanEdit {
				fmt.Println("Your role cannot edit incidents")
				continue
			}
			id, ok := parseID(args, "Usage: edit <id>")
			if ok {
				a.editIncident(ctx, id)
			}

		case "delete":
			if !caps.CanDelete {
				fmt.Println("Your role cannot delete incidents")
				continue
			}
			id, ok := parseID(args, "Usage: delete <id>")
			if ok {
				a.deleteIncident(ctx, id)
			}

		case "bulletin":
			if !caps.CanViewReports {
				fmt.Println("Your role cannot generate bulletins")
				continue
			}
			id, ok := parseID(args, "Usage: bulletin <id>")
			if ok {
				a.generateBulletin(ctx, id)
			}

		case "stats":
			if !caps.CanViewStatistics {
				fmt.Println("Your role cannot view statistics")
				continue
			}
			a.showStats(ctx, args)

		case "users":
			if !caps.CanManageUsers {
				fmt.Println("Your role cannot manage users")
				continue
			}
			a.listUsers(ctx)

		case "exit", "quit":
			fmt.Println("Bye!")
			return

		default:
			fmt.Println("Unknown command:", cmd)
		}
	}
}

func parseID(args []string, usage string) (int, bool) {
	if len(args) == 0 {
		fmt.Println(usage)
		return 0, false
	}
	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		fmt.Println("Not a valid id:", args[0])
		return 0, false
	}
	return id, true
}
