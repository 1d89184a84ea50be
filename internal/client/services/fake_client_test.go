package services

import (
	"context"
	"errors"
	"io"

	"github.com/Loth-Lorien/SiniestrosAPI-sub000/internal/client/client"
	"github.com/Loth-Lorien/SiniestrosAPI-sub000/internal/client/models"
)

// fakeClient implements client.Client with overridable behaviors. Methods
// without an override return a "not faked" error so a test fails loudly
// when it reaches an endpoint it did not expect to touch.
type fakeClient struct {
	loginFn          func(ctx context.Context, username, password string) ([]models.User, error)
	incidentTypesFn  func(ctx context.Context) ([]models.IncidentType, error)
	lossTypesFn      func(ctx context.Context) ([]models.LossType, error)
	sexesFn          func(ctx context.Context) ([]models.Sex, error)
	ageRangesFn      func(ctx context.Context) ([]models.AgeRange, error)
	branchesFn       func(ctx context.Context) ([]models.Branch, error)
	zonesFn          func(ctx context.Context) ([]models.Zone, error)
	createIncidentFn func(ctx context.Context, req models.CreateIncident) (models.SimpleResponse, error)
	updateIncidentFn func(ctx context.Context, id int, req models.UpdateIncident) (models.SimpleResponse, error)
	uploadPhotoFn    func(ctx context.Context, id int, filename string, photo io.Reader) error
	createBulletinFn func(ctx context.Context, id int, text string) ([]byte, error)
}

var errNotFaked = errors.New("endpoint not faked")

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) Close() error                   { return nil }
func (f *fakeClient) Ping(ctx context.Context) error { return nil }

func (f *fakeClient) Login(ctx context.Context, username, password string) ([]models.User, error) {
	if f.loginFn == nil {
		return nil, errNotFaked
	}
	return f.loginFn(ctx, username, password)
}

func (f *fakeClient) Users(ctx context.Context) ([]models.User, error) {
	return nil, errNotFaked
}

func (f *fakeClient) IncidentTypes(ctx context.Context) ([]models.IncidentType, error) {
	if f.incidentTypesFn == nil {
		return nil, errNotFaked
	}
	return f.incidentTypesFn(ctx)
}

func (f *fakeClient) LossTypes(ctx context.Context) ([]models.LossType, error) {
	if f.lossTypesFn == nil {
		return nil, errNotFaked
	}
	return f.lossTypesFn(ctx)
}

func (f *fakeClient) Sexes(ctx context.Context) ([]models.Sex, error) {
	if f.sexesFn == nil {
		return nil, errNotFaked
	}
	return f.sexesFn(ctx)
}

func (f *fakeClient) AgeRanges(ctx context.Context) ([]models.AgeRange, error) {
	if f.ageRangesFn == nil {
		return nil, errNotFaked
	}
	return f.ageRangesFn(ctx)
}

func (f *fakeClient) Branches(ctx context.Context) ([]models.Branch, error) {
	if f.branchesFn == nil {
		return nil, errNotFaked
	}
	return f.branchesFn(ctx)
}

func (f *fakeClient) Zones(ctx context.Context) ([]models.Zone, error) {
	if f.zonesFn == nil {
		return nil, errNotFaked
	}
	return f.zonesFn(ctx)
}

func (f *fakeClient) Incidents(ctx context.Context) ([]models.IncidentSummary, error) {
	return nil, errNotFaked
}

func (f *fakeClient) Incident(ctx context.Context, id int) (*models.Incident, error) {
	return nil, errNotFaked
}

func (f *fakeClient) IncidentsByType(ctx context.Context, typeID int) ([]models.Incident, error) {
	return nil, errNotFaked
}

func (f *fakeClient) IncidentsByDate(ctx context.Context, date string) ([]models.Incident, error) {
	return nil, errNotFaked
}

func (f *fakeClient) CreateIncident(ctx context.Context, req models.CreateIncident) (models.SimpleResponse, error) {
	if f.createIncidentFn == nil {
		return models.SimpleResponse{}, errNotFaked
	}
	return f.createIncidentFn(ctx, req)
}

func (f *fakeClient) UpdateIncident(ctx context.Context, id int, req models.UpdateIncident) (models.SimpleResponse, error) {
	if f.updateIncidentFn == nil {
		return models.SimpleResponse{}, errNotFaked
	}
	return f.updateIncidentFn(ctx, id, req)
}

func (f *fakeClient) DeleteIncident(ctx context.Context, id int) (models.SimpleResponse, error) {
	return models.SimpleResponse{}, errNotFaked
}

func (f *fakeClient) UploadPhoto(ctx context.Context, id int, filename string, photo io.Reader) error {
	if f.uploadPhotoFn == nil {
		return errNotFaked
	}
	return f.uploadPhotoFn(ctx, id, filename, photo)
}

func (f *fakeClient) CreateBulletin(ctx context.Context, id int, text string) ([]byte, error) {
	if f.createBulletinFn == nil {
		return nil, errNotFaked
	}
	return f.createBulletinFn(ctx, id, text)
}

func (f *fakeClient) GeneralStats(ctx context.Context, flt models.StatsFilter) (*models.GeneralStats, error) {
	return nil, errNotFaked
}

func (f *fakeClient) StatsByType(ctx context.Context, flt models.StatsFilter) ([]models.TypeStats, error) {
	return nil, errNotFaked
}

func (f *fakeClient) StatsByBranch(ctx context.Context, flt models.StatsFilter) ([]models.BranchStats, error) {
	return nil, errNotFaked
}
