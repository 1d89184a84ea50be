package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Loth-Lorien/SiniestrosAPI-sub000/internal/client/client"
	"github.com/Loth-Lorien/SiniestrosAPI-sub000/internal/client/models"
)

// CatalogService loads the lookup tables the editor resolves enum
// references against.
type CatalogService struct {
	client client.Client
}

func NewCatalogService(apiClient client.Client) *CatalogService {
	return &CatalogService{client: apiClient}
}

// Load fetches all lookup tables. Any single failure fails the load; the
// editor must not open against a partial catalog.
func (c *CatalogService) Load(ctx context.Context) (*models.Catalog, error) {
	cat := &models.Catalog{}
	var err error

	if cat.IncidentTypes, err = c.client.IncidentTypes(ctx); err != nil {
		return nil, fmt.Errorf("loading incident types: %w", err)
	}
	if cat.LossTypes, err = c.client.LossTypes(ctx); err != nil {
		return nil, fmt.Errorf("loading loss types: %w", err)
	}
	if cat.Sexes, err = c.client.Sexes(ctx); err != nil {
		return nil, fmt.Errorf("loading sexes: %w", err)
	}
	if cat.AgeRanges, err = c.client.AgeRanges(ctx); err != nil {
		return nil, fmt.Errorf("loading age ranges: %w", err)
	}
	if cat.Branches, err = c.client.Branches(ctx); err != nil {
		return nil, fmt.Errorf("loading branches: %w", err)
	}
	if cat.Zones, err = c.client.Zones(ctx); err != nil {
		return nil, fmt.Errorf("loading zones: %w", err)
	}

	for i := range cat.IncidentTypes {
		t := &cat.IncidentTypes[i]
		if !t.RequiresPhoto {
			t.RequiresPhoto = photoRequiredByName(t.Name)
		}
	}
	return cat, nil
}

// photoRequiredByName is the fallback for servers that do not yet send the
// requiereFoto attribute on incident types. The comparison is folded so
// spelling variants like "Extorsión"/"extorsion" match. All name-based
// knowledge lives here; nothing else in the client inspects type names.
func photoRequiredByName(name string) bool {
	switch foldTypeName(name) {
	case "asalto", "extorsion", "fardero", "intruso", "sospechoso":
		return true
	}
	return false
}

var diacriticFolder = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ü", "u", "ñ", "n",
)

func foldTypeName(name string) string {
	return diacriticFolder.Replace(strings.ToLower(strings.TrimSpace(name)))
}
