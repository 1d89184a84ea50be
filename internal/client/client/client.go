// Package client defines the remote API surface consumed by the console and
// its REST implementation. The siniestros API is HTTP/JSON with Basic auth;
// lookup-table endpoints are public, everything else is protected.
package client

import (
	"context"
	"io"

	"github.com/Loth-Lorien/SiniestrosAPI-sub000/internal/client/models"
)

// Client is the remote siniestros API.
//
// Contract:
//   - Login probes a protected endpoint with the given credentials and
//     returns the user listing on success; it never touches the session.
//   - Every other protected call authenticates through the registered
//     credentials provider, and reports a 401 through the unauthorized hook
//     before surfacing ErrUnauthorized.
//   - All methods honor context cancellation/timeouts.
type Client interface {
	Close() error
	Ping(ctx context.Context) error
	Login(ctx context.Context, username, password string) ([]models.User, error)
	Users(ctx context.Context) ([]models.User, error)

	IncidentTypes(ctx context.Context) ([]models.IncidentType, error)
	LossTypes(ctx context.Context) ([]models.LossType, error)
	Sexes(ctx context.Context) ([]models.Sex, error)
	AgeRanges(ctx context.Context) ([]models.AgeRange, error)
	Branches(ctx context.Context) ([]models.Branch, error)
	Zones(ctx context.Context) ([]models.Zone, error)

	Incidents(ctx context.Context) ([]models.IncidentSummary, error)
	Incident(ctx context.Context, id int) (*models.Incident, error)
	IncidentsByType(ctx context.Context, typeID int) ([]models.Incident, error)
	IncidentsByDate(ctx context.Context, date string) ([]models.Incident, error)
	CreateIncident(ctx context.Context, req models.CreateIncident) (models.SimpleResponse, error)
	UpdateIncident(ctx context.Context, id int, req models.UpdateIncident) (models.SimpleResponse, error)
	DeleteIncident(ctx context.Context, id int) (models.SimpleResponse, error)

	UploadPhoto(ctx context.Context, id int, filename string, photo io.Reader) error
	CreateBulletin(ctx context.Context, id int, text string) ([]byte, error)

	GeneralStats(ctx context.Context, f models.StatsFilter) (*models.GeneralStats, error)
	StatsByType(ctx context.Context, f models.StatsFilter) ([]models.TypeStats, error)
	StatsByBranch(ctx context.Context, f models.StatsFilter) ([]models.BranchStats, error)
}
