package services

import (
	"context"

	"github.com/Loth-Lorien/SiniestrosAPI-sub000/internal/client/client"
	"github.com/Loth-Lorien/SiniestrosAPI-sub000/internal/client/models"
)

// StatsService surfaces the server's pre-aggregated statistics. The client
// never recomputes these numbers.
type StatsService struct {
	client client.Client
}

func NewStatsService(apiClient client.Client) *StatsService {
	return &StatsService{client: apiClient}
}

func (s *StatsService) General(ctx context.Context, f models.StatsFilter) (*models.GeneralStats, error) {
	return s.client.GeneralStats(ctx, f)
}

func (s *StatsService) ByType(ctx context.Context, f models.StatsFilter) ([]models.TypeStats, error) {
	return s.client.StatsByType(ctx, f)
}

func (s *StatsService) ByBranch(ctx context.Context, f models.StatsFilter) ([]models.BranchStats, error) {
	return s.client.StatsByBranch(ctx, f)
}
