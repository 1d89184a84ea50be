package editor

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Loth-Lorien/SiniestrosAPI-sub000/internal/client/models"
	"github.com/Loth-Lorien/SiniestrosAPI-sub000/internal/common"
)

func testCatalog() *models.Catalog {
	return &models.Catalog{
		IncidentTypes: []models.IncidentType{
			{ID: 1, Name: "Asalto", RequiresPhoto: true},
			{ID: 2, Name: "Fraude"},
		},
		LossTypes: []models.LossType{
			{ID: 1, Name: "Efectivo"},
			{ID: 2, Name: "Mercancía"},
		},
		Sexes: []models.Sex{
			{ID: "M", Name: "Masculino"},
			{ID: "F", Name: "Femenino"},
		},
		AgeRanges: []models.AgeRange{
			{ID: 1, Name: "18-25"},
			{ID: 2, Name: "26-40"},
		},
		Branches: []models.Branch{
			{ID: "S001", Name: "Centro", ZoneID: 1},
			{ID: "S002", Name: "Reforma", ZoneID: 2},
		},
		Zones: []models.Zone{
			{ID: 1, Name: "Norte"},
			{ID: 2, Name: "Sur"},
		},
	}
}

func validDraft(t *testing.T) *Draft {
	t.Helper()
	d := New(testCatalog(), 7)
	require.NoError(t, d.UpdateField("branch", "S001"))
	require.NoError(t, d.UpdateField("date", "2024-05-10"))
	require.NoError(t, d.UpdateField("time", "14:30"))
	require.NoError(t, d.UpdateField("type", 1))
	require.NoError(t, d.UpdateField("losses.0.type", 1))
	require.NoError(t, d.UpdateField("losses.0.amount", 1500.0))
	require.NoError(t, d.UpdateField("involved.0.sex", "M"))
	require.NoError(t, d.UpdateField("involved.0.age", 2))
	return d
}

func TestNewStartsWithOneBlankRowPerCollection(t *testing.T) {
	d := New(testCatalog(), 7)
	assert.Len(t, d.Losses, 1)
	assert.Len(t, d.Involved, 1)
	assert.Equal(t, 7, d.RecordedByID)
}

func TestRemoveLastEntryRejected(t *testing.T) {
	d := New(testCatalog(), 7)
	assert.ErrorIs(t, d.RemoveLoss(0), ErrLastEntry)
	assert.ErrorIs(t, d.RemoveInvolvedParty(0), ErrLastEntry)

	d.AddLoss()
	require.NoError(t, d.RemoveLoss(0))
	assert.Len(t, d.Losses, 1)
}

func TestRemoveOutOfRange(t *testing.T) {
	d := New(testCatalog(), 7)
	assert.Error(t, d.RemoveLoss(3))
	assert.Error(t, d.RemoveInvolvedParty(-1))
}

func TestUpdateFieldPaths(t *testing.T) {
	d := New(testCatalog(), 7)

	require.NoError(t, d.UpdateField("branch", "S002"))
	assert.Equal(t, "S002", d.BranchID)

	require.NoError(t, d.UpdateField("thwarted", true))
	assert.True(t, d.Thwarted)

	require.NoError(t, d.UpdateField("losses.0.amount", "2500.50"))
	assert.Equal(t, 2500.50, d.Losses[0].Amount)

	require.NoError(t, d.UpdateField("involved.0.sex", "F"))
	assert.Equal(t, "F", d.Involved[0].SexID)
}

func TestUpdateFieldErrors(t *testing.T) {
	d := New(testCatalog(), 7)

	assert.Error(t, d.UpdateField("nope", "x"))
	assert.Error(t, d.UpdateField("losses.5.amount", 1.0))
	assert.Error(t, d.UpdateField("losses.0.nope", 1.0))
	assert.Error(t, d.UpdateField("losses.0.amount", "abc"))
	assert.Error(t, d.UpdateField("thwarted", "maybe"))
}

func TestValidateReportsFirstFailure(t *testing.T) {
	d := New(testCatalog(), 7)
	err := d.Validate()
	require.ErrorIs(t, err, common.ErrValidation)
	assert.Contains(t, err.Error(), "branch")
}

func TestValidateUnknownEnum(t *testing.T) {
	d := validDraft(t)
	require.NoError(t, d.UpdateField("type", 99))
	err := d.Validate()
	require.ErrorIs(t, err, common.ErrValidation)
	assert.Contains(t, err.Error(), "incident type")
}

func TestValidateLossAmountMustBePositive(t *testing.T) {
	d := validDraft(t)
	require.NoError(t, d.UpdateField("losses.0.amount", 0.0))
	err := d.Validate()
	require.ErrorIs(t, err, common.ErrValidation)
	assert.Contains(t, err.Error(), "loss 1")
}

func TestValidateInvolvedNeedsSexAndAge(t *testing.T) {
	d := validDraft(t)
	d.AddInvolvedParty()
	require.NoError(t, d.UpdateField("involved.1.sex", "F"))
	err := d.Validate()
	require.ErrorIs(t, err, common.ErrValidation)
	assert.Contains(t, err.Error(), "involved party 2")
}

func TestValidateOK(t *testing.T) {
	d := validDraft(t)
	assert.NoError(t, d.Validate())
}

func TestRequiresPhoto(t *testing.T) {
	d := New(testCatalog(), 7)

	require.NoError(t, d.UpdateField("type", 1))
	assert.True(t, d.RequiresPhoto())

	require.NoError(t, d.UpdateField("type", 2))
	assert.False(t, d.RequiresPhoto())
}

func TestCreatePayloadCombinesDateAndTime(t *testing.T) {
	d := validDraft(t)
	p := d.CreatePayload()

	assert.Equal(t, "2024-05-10 14:30:00", p.Date)
	assert.Equal(t, "S001", p.BranchID)
	assert.Equal(t, 7, p.RecordedByID)
	require.Len(t, p.Losses, 1)
	assert.Equal(t, 1500.0, p.Losses[0].Amount)
}

func TestUpdatePayloadSendsEveryScalar(t *testing.T) {
	d := validDraft(t)
	d.ID = 42
	p := d.UpdatePayload()

	require.NotNil(t, p.Date)
	assert.Equal(t, "2024-05-10 14:30:00", *p.Date)
	require.NotNil(t, p.BranchID)
	assert.Equal(t, "S001", *p.BranchID)
	require.NotNil(t, p.Thwarted)
}

func TestLoadResolvesNamesThroughCatalog(t *testing.T) {
	inc := &models.Incident{
		ID:           42,
		Date:         "2024-05-10 14:30:00",
		Thwarted:     true,
		Branch:       "Centro",
		IncidentType: "Asalto",
		Losses: []models.IncidentLoss{
			{LossTypeID: 2, LossType: "Mercancía", Amount: 900, Recovered: true},
		},
		Involved: []models.IncidentInvolved{
			{ID: 1, Sex: "Femenino", AgeRange: "26-40", Note: "sospechosa"},
		},
	}

	d := Load(testCatalog(), inc, 7)

	assert.Equal(t, 42, d.ID)
	assert.Equal(t, "2024-05-10", d.Date)
	assert.Equal(t, "14:30", d.Time)
	assert.Equal(t, "S001", d.BranchID)
	assert.Equal(t, 1, d.IncidentTypeID)
	assert.True(t, d.Thwarted)

	require.Len(t, d.Losses, 1)
	assert.Equal(t, 2, d.Losses[0].LossTypeID)
	assert.True(t, d.Losses[0].Recovered)

	require.Len(t, d.Involved, 1)
	assert.Equal(t, "F", d.Involved[0].SexID)
	assert.Equal(t, 2, d.Involved[0].AgeRangeID)
	assert.Equal(t, "sospechosa", d.Involved[0].Note)
}

func TestStoredLinesAreImmutable(t *testing.T) {
	inc := &models.Incident{
		ID:           42,
		Date:         "2024-05-10 14:30:00",
		Branch:       "Centro",
		IncidentType: "Asalto",
		Losses: []models.IncidentLoss{
			{LossTypeID: 1, Amount: 500},
			{LossTypeID: 2, Amount: 900},
		},
		Involved: []models.IncidentInvolved{
			{ID: 5, Sex: "Masculino", AgeRange: "18-25"},
		},
	}
	d := Load(testCatalog(), inc, 7)

	assert.True(t, d.IsStoredLoss(0))
	assert.Error(t, d.UpdateField("losses.0.amount", 999.0))
	assert.Error(t, d.UpdateField("involved.0.note", "x"))
	assert.Error(t, d.RemoveLoss(0))
	assert.Len(t, d.Losses, 2)

	idx := d.AddLoss()
	assert.False(t, d.IsStoredLoss(idx))
	require.NoError(t, d.UpdateField(fmt.Sprintf("losses.%d.type", idx), 1))
	require.NoError(t, d.UpdateField(fmt.Sprintf("losses.%d.amount", idx), 250.0))
}

func TestUpdatePayloadSendsOnlyNewLinesAndRemovals(t *testing.T) {
	inc := &models.Incident{
		ID:           42,
		Date:         "2024-05-10 14:30:00",
		Branch:       "Centro",
		IncidentType: "Asalto",
		Losses: []models.IncidentLoss{
			{LossTypeID: 1, Amount: 500},
			{LossTypeID: 2, Amount: 900},
		},
		Involved: []models.IncidentInvolved{
			{ID: 5, Sex: "Masculino", AgeRange: "18-25"},
			{ID: 6, Sex: "Femenino", AgeRange: "26-40"},
		},
	}
	d := Load(testCatalog(), inc, 7)

	idx := d.AddLoss()
	require.NoError(t, d.UpdateField(fmt.Sprintf("losses.%d.type", idx), 1))
	require.NoError(t, d.UpdateField(fmt.Sprintf("losses.%d.amount", idx), 250.0))
	require.NoError(t, d.RemoveInvolvedParty(0))

	require.NoError(t, d.Validate())
	p := d.UpdatePayload()

	require.Len(t, p.Losses, 1)
	assert.Equal(t, 250.0, p.Losses[0].Amount)
	assert.Empty(t, p.RemoveLosses)
	assert.Empty(t, p.Involved)
	assert.Equal(t, []int{5}, p.RemoveInvolved)
}

// A stored incident decoded straight off the wire carries no ids on its
// loss lines; they must still count as stored so an update never re-sends
// them as additions.
func TestLoadedLossesFromWireAreStored(t *testing.T) {
	body := `{
		"idSiniestro": 42,
		"fecha": "2024-05-10 14:30:00",
		"frustrado": false,
		"centro": "Centro",
		"tipoSiniestro": "Asalto",
		"perdidas": [
			{"idTipoPerdida": 1, "tipoPerdida": "Efectivo", "monto": 500.0, "recuperado": false}
		],
		"implicados": [
			{"idImplicado": 5, "sexo": "Masculino", "rangoEdad": "18-25"}
		]
	}`
	var inc models.Incident
	require.NoError(t, json.Unmarshal([]byte(body), &inc))

	d := Load(testCatalog(), &inc, 7)

	assert.True(t, d.IsStoredLoss(0))
	assert.True(t, d.IsStoredParty(0))

	require.NoError(t, d.Validate())
	p := d.UpdatePayload()
	assert.Empty(t, p.Losses)
	assert.Empty(t, p.Involved)
}

func TestLoadEmptyCollectionsGetBlankRow(t *testing.T) {
	inc := &models.Incident{ID: 9, Date: "2024-01-01T08:00:00"}
	d := Load(testCatalog(), inc, 7)

	assert.Len(t, d.Losses, 1)
	assert.Len(t, d.Involved, 1)
	assert.Equal(t, "2024-01-01", d.Date)
	assert.Equal(t, "08:00", d.Time)
}
