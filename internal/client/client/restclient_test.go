package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Loth-Lorien/SiniestrosAPI-sub000/internal/client/models"
	"github.com/Loth-Lorien/SiniestrosAPI-sub000/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *RESTClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewRESTClient(srv.URL, 5*time.Second)
}

func withCreds(c *RESTClient, username, password string) {
	c.SetCredentialsProvider(func() (models.Credentials, bool) {
		return models.Credentials{Username: username, Password: password}, true
	})
}

func TestLogin_SendsBasicAuthAndDecodesUsers(t *testing.T) {
	var gotUser, gotPass string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/usuarios", r.URL.Path)
		u, p, ok := r.BasicAuth()
		require.True(t, ok)
		gotUser, gotPass = u, p
		_ = json.NewEncoder(w).Encode([]models.User{
			{ID: 7, Username: "mmedina", LevelID: 1, Status: 1},
		})
	}))

	users, err := c.Login(context.Background(), "mmedina", "secreto")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, 7, users[0].ID)
	assert.Equal(t, "mmedina", gotUser)
	assert.Equal(t, "secreto", gotPass)
}

func TestLogin_401MapsToErrUnauthorized_WithoutHook(t *testing.T) {
	hookCalled := false
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	c.SetUnauthorizedHook(func(ctx context.Context) { hookCalled = true })

	_, err := c.Login(context.Background(), "x", "bad")
	require.ErrorIs(t, err, ErrUnauthorized)
	// Failed login must not clear an existing session.
	assert.False(t, hookCalled)
}

func TestProtectedCall_401TriggersUnauthorizedHook(t *testing.T) {
	hookCalled := false
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	withCreds(c, "u", "p")
	c.SetUnauthorizedHook(func(ctx context.Context) { hookCalled = true })

	_, err := c.Incidents(context.Background())
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.True(t, hookCalled)
}

func TestPublicEndpoints_OmitAuthorization(t *testing.T) {
	var sawAuth bool
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			sawAuth = true
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	withCreds(c, "u", "p")

	_, err := c.IncidentTypes(context.Background())
	require.NoError(t, err)
	assert.False(t, sawAuth)
}

func TestProtectedEndpoints_CarryAuthorizationAndRequestID(t *testing.T) {
	var auth, requestID string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		requestID = r.Header.Get("X-Request-ID")
		_ = json.NewEncoder(w).Encode(models.IncidentSummaryResponse{Success: true})
	}))
	withCreds(c, "u", "p")

	_, err := c.Incidents(context.Background())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(auth, "Basic "))
	assert.NotEmpty(t, requestID)
}

func TestZones_DecodesLookupRows(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/zonas", r.URL.Path)
		_, _ = w.Write([]byte(`[{"idZona":1,"zona":"Norte"},{"idZona":2,"zona":"Bajío"}]`))
	}))

	zones, err := c.Zones(context.Background())
	require.NoError(t, err)
	require.Len(t, zones, 2)
	assert.Equal(t, 1, zones[0].ID)
	assert.Equal(t, "Norte", zones[0].Name)
	assert.Equal(t, "Bajío", zones[1].Name)
}

func TestBranches_CarryZoneID(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/sucursales", r.URL.Path)
		_, _ = w.Write([]byte(`[{"IdCentro":"C182","Sucursales":"Centro Histórico","idZona":2,"idEstado":9}]`))
	}))

	bb, err := c.Branches(context.Background())
	require.NoError(t, err)
	require.Len(t, bb, 1)
	assert.Equal(t, "C182", bb[0].ID)
	assert.Equal(t, 2, bb[0].ZoneID)
}

func TestIncidents_DecodesFullListingEnvelope(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/siniestros", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"success": true,
			"data": [{
				"IdSiniestro": 482,
				"IdCentro": "C182",
				"Fecha": "2024-10-07",
				"TipoSiniestro": "Asalto",
				"IdTipoCuenta": 3,
				"Frustrado": false,
				"Contemplar": true,
				"Sucursal": "Centro Histórico",
				"Usuario": "mmedina",
				"MontoTotal": 500.0,
				"CantidadDetalles": 1,
				"CantidadImplicados": 1
			}],
			"total": 1
		}`))
	}))
	withCreds(c, "u", "p")

	items, err := c.Incidents(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 482, items[0].ID)
	assert.Equal(t, "Asalto", items[0].IncidentType)
	assert.Equal(t, "mmedina", items[0].RecordedBy)
	assert.InDelta(t, 500, items[0].TotalLoss, 1e-9)
	assert.Equal(t, 1, items[0].LossCount)
}

func TestCreateIncident_RoundTrip(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/siniestros", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req models.CreateIncident
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "C182", req.BranchID)
		assert.Equal(t, "2024-10-07 09:00:00", req.Date)
		require.Len(t, req.Losses, 1)

		_ = json.NewEncoder(w).Encode(models.SimpleResponse{
			Status:  true,
			Message: "Siniestro creado con Id 482, 1 pérdida(s) y 1 implicado(s) registrado(s)",
		})
	}))
	withCreds(c, "u", "p")

	resp, err := c.CreateIncident(context.Background(), models.CreateIncident{
		BranchID:       "C182",
		Date:           "2024-10-07 09:00:00",
		IncidentTypeID: 3,
		RecordedByID:   1,
		Losses:         []models.LossDetail{{LossTypeID: 1, Amount: 500}},
		Involved:       []models.InvolvedDetail{{SexID: "M", AgeRangeID: 2}},
	})
	require.NoError(t, err)
	assert.True(t, resp.Status)
	assert.Contains(t, resp.Message, "Id 482")
}

func TestServerError_SurfacesMessageVerbatim(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"estatus": false,
			"mensaje": "La sucursal X99 no existe",
		})
	}))
	withCreds(c, "u", "p")

	_, err := c.CreateIncident(context.Background(), models.CreateIncident{})
	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "La sucursal X99 no existe", apiErr.Message)
}

func TestNetworkFailure_MapsToErrUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close() // nothing listens any more

	c := NewRESTClient(addr, 500*time.Millisecond)
	_, err := c.Incidents(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestUploadPhoto_MultipartWithBoundary(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/siniestros/482/foto/subir", r.URL.Path)
		ct := r.Header.Get("Content-Type")
		require.True(t, strings.HasPrefix(ct, "multipart/form-data; boundary="))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		assert.Equal(t, "evidencia.jpg", hdr.Filename)

		_ = json.NewEncoder(w).Encode(models.SimpleResponse{Status: true, Message: "Foto guardada"})
	}))
	withCreds(c, "u", "p")

	err := c.UploadPhoto(context.Background(), 482, "evidencia.jpg", strings.NewReader("jpegdata"))
	require.NoError(t, err)
}

func TestCreateBulletin_TextAsQueryParam(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/siniestros/482/boletin/generar", r.URL.Path)
		assert.Equal(t, "pdf", r.URL.Query().Get("formato"))
		assert.Equal(t, "sujeto con gorra negra", r.URL.Query().Get("texto"))
		_, _ = w.Write([]byte("%PDF-1.4"))
	}))
	withCreds(c, "u", "p")

	doc, err := c.CreateBulletin(context.Background(), 482, "sujeto con gorra negra")
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(doc))
}

func TestGeneralStats_FilterEncoding(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2024-01-01", r.URL.Query().Get("fecha_inicio"))
		assert.Equal(t, "2024-12-31", r.URL.Query().Get("fecha_fin"))
		_ = json.NewEncoder(w).Encode(models.GeneralStats{TotalIncidents: 12, TotalLossAmount: 34500})
	}))
	withCreds(c, "u", "p")

	stats, err := c.GeneralStats(context.Background(), models.StatsFilter{From: "2024-01-01", To: "2024-12-31"})
	require.NoError(t, err)
	assert.Equal(t, 12, stats.TotalIncidents)
	assert.InDelta(t, 34500, stats.TotalLossAmount, 1e-9)
}

func TestIncident_NotFound(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"estatus": false, "mensaje": "Siniestro no encontrado"}`))
	}))
	withCreds(c, "mmedina", "secreto")

	_, err := c.Incident(context.Background(), 999)
	require.ErrorIs(t, err, common.ErrorNotFound)
}
