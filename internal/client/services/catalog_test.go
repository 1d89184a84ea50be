package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Loth-Lorien/SiniestrosAPI-sub000/internal/client/models"
)

func catalogFake() *fakeClient {
	return &fakeClient{
		incidentTypesFn: func(ctx context.Context) ([]models.IncidentType, error) {
			return []models.IncidentType{
				{ID: 1, Name: "Asalto"},
				{ID: 2, Name: "Extorsión"},
				{ID: 3, Name: "Fraude"},
			}, nil
		},
		lossTypesFn: func(ctx context.Context) ([]models.LossType, error) {
			return []models.LossType{{ID: 1, Name: "Efectivo"}}, nil
		},
		sexesFn: func(ctx context.Context) ([]models.Sex, error) {
			return []models.Sex{{ID: "M", Name: "Masculino"}}, nil
		},
		ageRangesFn: func(ctx context.Context) ([]models.AgeRange, error) {
			return []models.AgeRange{{ID: 1, Name: "18-25"}}, nil
		},
		branchesFn: func(ctx context.Context) ([]models.Branch, error) {
			return []models.Branch{{ID: "S001", Name: "Centro", ZoneID: 1}}, nil
		},
		zonesFn: func(ctx context.Context) ([]models.Zone, error) {
			return []models.Zone{{ID: 1, Name: "Norte"}}, nil
		},
	}
}

func TestCatalogLoadFillsPhotoRequirementByName(t *testing.T) {
	svc := NewCatalogService(catalogFake())

	cat, err := svc.Load(context.Background())
	require.NoError(t, err)

	assert.True(t, cat.IncidentTypeByID(1).RequiresPhoto)  // Asalto
	assert.True(t, cat.IncidentTypeByID(2).RequiresPhoto)  // Extorsión, accented
	assert.False(t, cat.IncidentTypeByID(3).RequiresPhoto) // Fraude
}

func TestCatalogLoadKeepsServerAttribute(t *testing.T) {
	api := catalogFake()
	api.incidentTypesFn = func(ctx context.Context) ([]models.IncidentType, error) {
		return []models.IncidentType{
			{ID: 9, Name: "Vandalismo", RequiresPhoto: true},
		}, nil
	}

	cat, err := NewCatalogService(api).Load(context.Background())
	require.NoError(t, err)

	assert.True(t, cat.IncidentTypeByID(9).RequiresPhoto)
}

func TestCatalogLoadFailsOnAnyTable(t *testing.T) {
	api := catalogFake()
	api.branchesFn = func(ctx context.Context) ([]models.Branch, error) {
		return nil, errors.New("boom")
	}

	cat, err := NewCatalogService(api).Load(context.Background())
	require.Error(t, err)
	assert.Nil(t, cat)
	assert.Contains(t, err.Error(), "branches")
}

func TestPhotoRequiredByNameFolding(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"Asalto", true},
		{"ASALTO", true},
		{"extorsión", true},
		{"Extorsion", true},
		{"Fardero", true},
		{"Intruso", true},
		{"Sospechoso ", true},
		{"Fraude", false},
		{"Robo hormiga", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, photoRequiredByName(tt.name), tt.name)
	}
}
