package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/Loth-Lorien/SiniestrosAPI-sub000/internal/client/models"
)

// showStats dispatches "stats [general|tipo|sucursal]", prompting for an
// optional date range first. A bare "stats" shows the general report.
func (a *App) showStats(ctx context.Context, args []string) {
	report := "general"
	if len(args) > 0 {
		report = args[0]
	}

	filter, ok := a.promptStatsFilter()
	if !ok {
		return
	}

	switch report {
	case "general":
		a.showGeneralStats(ctx, filter)
	case "tipo":
		a.showStatsByType(ctx, filter)
	case "sucursal":
		a.showStatsByBranch(ctx, filter)
	default:
		fmt.Println("Usage: stats [general|tipo|sucursal]")
	}
}

func (a *App) promptStatsFilter() (models.StatsFilter, bool) {
	from, err := getSimpleText(a.reader, "From date YYYY-MM-DD (empty for all)", os.Stdout)
	if err != nil {
		return models.StatsFilter{}, false
	}
	to, err := getSimpleText(a.reader, "To date YYYY-MM-DD (empty for all)", os.Stdout)
	if err != nil {
		return models.StatsFilter{}, false
	}
	return models.StatsFilter{From: from, To: to}, true
}

func (a *App) showGeneralStats(ctx context.Context, filter models.StatsFilter) {
	s, err := a.stats.General(ctx, filter)
	if err != nil {
		log.Printf("Loading statistics failed: %v", err)
		return
	}

	fmt.Printf("Incidents:       %d\n", s.TotalIncidents)
	fmt.Printf("  Thwarted:      %d (%.1f%%)\n", s.Thwarted, s.ThwartedPct)
	fmt.Printf("  Consummated:   %d\n", s.Consummated)
	fmt.Printf("Total losses:    %.2f\n", s.TotalLossAmount)
	fmt.Printf("  Recovered:     %.2f (%.1f%%)\n", s.RecoveredAmount, s.RecoveryPct)
}

func (a *App) showStatsByType(ctx context.Context, filter models.StatsFilter) {
	rows, err := a.stats.ByType(ctx, filter)
	if err != nil {
		log.Printf("Loading statistics failed: %v", err)
		return
	}

	fmt.Printf("%-25s %8s %12s %8s\n", "TYPE", "COUNT", "AMOUNT", "SHARE")
	for _, r := range rows {
		fmt.Printf("%-25s %8d %12.2f %7.1f%%\n", r.IncidentType, r.Count, r.TotalAmount, r.ShareOfTotal)
	}
}

func (a *App) showStatsByBranch(ctx context.Context, filter models.StatsFilter) {
	rows, err := a.stats.ByBranch(ctx, filter)
	if err != nil {
		log.Printf("Loading statistics failed: %v", err)
		return
	}

	fmt.Printf("%-20s %-10s %8s %12s %-19s\n", "BRANCH", "ZONE", "COUNT", "AMOUNT", "LAST")
	for _, r := range rows {
		fmt.Printf("%-20s %-10s %8d %12.2f %-19s\n", r.Branch, r.Zone, r.Count, r.TotalAmount, r.LastIncident)
	}
}
