package services

import (
	"context"
	"errors"

	"github.com/Loth-Lorien/SiniestrosAPI-sub000/internal/client/client"
	"github.com/Loth-Lorien/SiniestrosAPI-sub000/internal/client/models"
)

// IncidentService exposes read and delete operations over stored
// siniestros. Creation and editing go through the submission service.
type IncidentService struct {
	client client.Client
}

func NewIncidentService(apiClient client.Client) *IncidentService {
	return &IncidentService{client: apiClient}
}

func (s *IncidentService) List(ctx context.Context) ([]models.IncidentSummary, error) {
	return s.client.Incidents(ctx)
}

func (s *IncidentService) Get(ctx context.Context, id int) (*models.Incident, error) {
	return s.client.Incident(ctx, id)
}

func (s *IncidentService) ListByType(ctx context.Context, typeID int) ([]models.Incident, error) {
	return s.client.IncidentsByType(ctx, typeID)
}

func (s *IncidentService) ListByDate(ctx context.Context, date string) ([]models.Incident, error) {
	return s.client.IncidentsByDate(ctx, date)
}

// Delete removes an incident and returns the server's confirmation message.
func (s *IncidentService) Delete(ctx context.Context, id int) (string, error) {
	resp, err := s.client.DeleteIncident(ctx, id)
	if err != nil {
		return "", err
	}
	if !resp.Status {
		return "", errors.New(resp.Message)
	}
	return resp.Message, nil
}

// Bulletin requests the rendered bulletin document for a stored incident.
func (s *IncidentService) Bulletin(ctx context.Context, id int, text string) ([]byte, error) {
	return s.client.CreateBulletin(ctx, id, text)
}
