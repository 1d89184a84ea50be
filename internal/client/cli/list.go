package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/Loth-Lorien/SiniestrosAPI-sub000/internal/client/losses"
	"github.com/Loth-Lorien/SiniestrosAPI-sub000/internal/client/models"
	"github.com/Loth-Lorien/SiniestrosAPI-sub000/internal/common"
)

func (a *App) listIncidents(ctx context.Context) {
	items, err := a.incidents.List(ctx)
	if err != nil {
		log.Printf("Listing incidents failed: %v", err)
		return
	}
	printSummaryTable(items)
}

// findIncidents handles "find tipo <id>" and "find fecha <date>".
func (a *App) findIncidents(ctx context.Context, args []string) {
	if len(args) < 2 {
		fmt.Println("Usage: find tipo <id> | find fecha <YYYY-MM-DD>")
		return
	}

	var (
		items []models.Incident
		err   error
	)
	switch args[0] {
	case "tipo":
		var typeID int
		typeID, err = strconv.Atoi(args[1])
		if err != nil {
			fmt.Println("Not a valid type id:", args[1])
			return
		}
		items, err = a.incidents.ListByType(ctx, typeID)
	case "fecha":
		items, err = a.incidents.ListByDate(ctx, args[1])
	default:
		fmt.Println("Usage: find tipo <id> | find fecha <YYYY-MM-DD>")
		return
	}

	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			fmt.Println("No incidents found")
			return
		}
		log.Printf("Searching incidents failed: %v", err)
		return
	}
	printIncidentTable(items)
}

func (a *App) showIncident(ctx context.Context, id int) {
	inc, err := a.incidents.Get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			fmt.Println("Incident not found:", id)
			return
		}
		log.Printf("Loading incident %d failed: %v", id, err)
		return
	}

	status := "consumado"
	if inc.Thwarted {
		status = "frustrado"
	}
	fmt.Printf("Incident %d\n", inc.ID)
	fmt.Printf("  Date:     %s\n", inc.Date)
	fmt.Printf("  Branch:   %s\n", inc.Branch)
	fmt.Printf("  Type:     %s (%s)\n", inc.IncidentType, status)
	fmt.Printf("  Recorded: %s\n", inc.RecordedBy)

	if len(inc.Losses) > 0 {
		fmt.Println("  Losses:")
		for _, l := range inc.Losses {
			mark := ""
			if l.Recovered {
				mark = " (recovered)"
			}
			fmt.Printf("    %-20s %10.2f%s\n", l.LossType, l.Amount, mark)
		}
		summary := losses.Summarize(inc.LossDetails())
		fmt.Printf("  Total loss: %.2f (recovered %.2f of %.2f)\n",
			summary.Net, summary.Recovered, summary.Gross)
	}

	if len(inc.Involved) > 0 {
		fmt.Println("  Involved:")
		for _, p := range inc.Involved {
			fmt.Printf("    %s, %s", p.Sex, p.AgeRange)
			if p.Note != "" {
				fmt.Printf(", %s", p.Note)
			}
			fmt.Println()
		}
	}
}

func (a *App) deleteIncident(ctx context.Context, id int) {
	confirmed, err := GetYesNo(a.reader, fmt.Sprintf("Delete incident %d?", id), false, os.Stdout)
	if err != nil || !confirmed {
		return
	}

	msg, err := a.incidents.Delete(ctx, id)
	if err != nil {
		log.Printf("Deleting incident %d failed: %v", id, err)
		return
	}
	fmt.Println(msg)
}

func (a *App) generateBulletin(ctx context.Context, id int) {
	text, err := GetMultiline(a.reader, "Bulletin text", os.Stdout)
	if err != nil {
		return
	}

	doc, err := a.incidents.Bulletin(ctx, id, text)
	if err != nil {
		log.Printf("Generating bulletin failed: %v", err)
		return
	}
	a.saveBulletin(id, doc)
}

// printSummaryTable renders the full listing, which already carries the
// aggregated loss amount per incident.
func printSummaryTable(items []models.IncidentSummary) {
	if len(items) == 0 {
		fmt.Println("No incidents")
		return
	}

	fmt.Printf("%5s  %-10s  %-20s  %-20s  %10s  %6s\n", "ID", "DATE", "BRANCH", "TYPE", "LOSS", "LINES")
	for _, inc := range items {
		fmt.Printf("%5d  %-10s  %-20s  %-20s  %10.2f  %6d\n",
			inc.ID, inc.Date, inc.Branch, inc.IncidentType, inc.TotalLoss, inc.LossCount)
	}
	fmt.Printf("%d incident(s)\n", len(items))
}

func printIncidentTable(items []models.Incident) {
	if len(items) == 0 {
		fmt.Println("No incidents")
		return
	}

	fmt.Printf("%5s  %-19s  %-20s  %-20s  %10s\n", "ID", "DATE", "BRANCH", "TYPE", "LOSS")
	for _, inc := range items {
		net := losses.NetLossTotal(inc.LossDetails())
		fmt.Printf("%5d  %-19s  %-20s  %-20s  %10.2f\n",
			inc.ID, inc.Date, inc.Branch, inc.IncidentType, net)
	}
	fmt.Printf("%d incident(s)\n", len(items))
}
