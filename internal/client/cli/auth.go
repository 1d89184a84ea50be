package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/Loth-Lorien/SiniestrosAPI-sub000/internal/client/client"
	"github.com/Loth-Lorien/SiniestrosAPI-sub000/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// login prompts for credentials and establishes a session through the store.
func (a *App) login(ctx context.Context) {
	if a.isLoggedIn() {
		fmt.Println("Already logged in; 'logout' first to switch users")
		return
	}

	userName, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	session, err := a.sessions.Login(ctx, userName, string(password))
	if err != nil {
		switch {
		case errors.Is(err, common.ErrInvalidCredentials):
			fmt.Println("Invalid username or password")
		case errors.Is(err, client.ErrUnavailable):
			fmt.Println("Server unavailable, try again later")
		default:
			log.Printf("Login unsuccessful: %v", err)
		}
		return
	}

	fmt.Printf("Logged in as %s (%s)\n", session.Identity.Username, session.Identity.Role)
}

func (a *App) logout(ctx context.Context) {
	if !a.isLoggedIn() {
		fmt.Println("Not logged in")
		return
	}
	_ = a.sessions.Logout(ctx)
	fmt.Println("Logged out")
}

func (a *App) whoami() {
	session := a.sessions.Current()
	if session == nil {
		fmt.Println("Not logged in")
		return
	}
	fmt.Printf("User: %s\nName: %s\nRole: %s\n",
		session.Identity.Username, session.Identity.DisplayName, session.Identity.Role)
}
