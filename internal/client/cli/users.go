package cli

import (
	"context"
	"fmt"
	"log"
)

func (a *App) listUsers(ctx context.Context) {
	users, err := a.client.Users(ctx)
	if err != nil {
		log.Printf("Listing users failed: %v", err)
		return
	}

	fmt.Printf("%5s  %-20s  %-15s  %s\n", "ID", "USERNAME", "ROLE", "STATUS")
	for _, u := range users {
		role := roleNameForLevel(u.LevelID)
		status := "inactive"
		if u.Status == 1 {
			status = "active"
		}
		fmt.Printf("%5d  %-20s  %-15s  %s\n", u.ID, u.Username, role, status)
	}
}

// roleNameForLevel mirrors the session store's level mapping for display.
func roleNameForLevel(level int) string {
	switch level {
	case 1:
		return "administrador"
	case 2:
		return "coordinador"
	default:
		return "operador"
	}
}
