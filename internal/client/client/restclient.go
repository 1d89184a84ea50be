package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Loth-Lorien/SiniestrosAPI-sub000/internal/client/models"
	"github.com/Loth-Lorien/SiniestrosAPI-sub000/internal/common"
	"github.com/google/uuid"
)

// publicPaths do not require authentication; mirrors the server's open
// lookup endpoints.
var publicPaths = map[string]struct{}{
	"/":              {},
	"/inicio":        {},
	"/tiposiniestro": {},
	"/tiposperdida":  {},
	"/sexos":         {},
	"/rangosedad":    {},
	"/sucursales":    {},
	"/zonas":         {},
}

// CredentialsProvider supplies the current Basic credentials, if any.
// The session store registers itself here so the transport never holds
// credential state of its own.
type CredentialsProvider func() (models.Credentials, bool)

// RESTClient is the HTTP implementation of Client. The credentials provider
// and unauthorized hook are wired after construction, since the session
// store that supplies them needs the client first.
type RESTClient struct {
	baseURL        string
	http           *http.Client
	credentials    CredentialsProvider
	onUnauthorized func(ctx context.Context)
}

// NewRESTClient creates a client for the API at baseURL. A trailing slash
// on baseURL is stripped.
func NewRESTClient(baseURL string, timeout time.Duration) *RESTClient {
	return &RESTClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// SetCredentialsProvider registers the source of Basic credentials for
// protected endpoints.
func (c *RESTClient) SetCredentialsProvider(p CredentialsProvider) {
	c.credentials = p
}

// SetUnauthorizedHook registers a callback invoked whenever a protected call
// observes a 401, before the error is surfaced. The session store uses it to
// clear the session so client and server agree on authentication state.
func (c *RESTClient) SetUnauthorizedHook(hook func(ctx context.Context)) {
	c.onUnauthorized = hook
}

var _ Client = (*RESTClient)(nil)

func (c *RESTClient) Close() error { return nil }

func isPublic(path string) bool {
	_, ok := publicPaths[path]
	return ok
}

func (c *RESTClient) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.credentials != nil && !isPublic(path) {
		if creds, ok := c.credentials(); ok {
			req.SetBasicAuth(creds.Username, creds.Password)
		}
	}
	return req, nil
}

// decodeAPIError turns a non-2xx response into an APIError carrying the
// server's own message. The API answers either {estatus,mensaje} or, for
// FastAPI-level failures, {detail}.
func decodeAPIError(resp *http.Response) error {
	data, _ := io.ReadAll(resp.Body)

	var envelope struct {
		Message string `json:"mensaje"`
		Detail  string `json:"detail"`
	}
	msg := ""
	if err := json.Unmarshal(data, &envelope); err == nil {
		if envelope.Message != "" {
			msg = envelope.Message
		} else {
			msg = envelope.Detail
		}
	}
	if msg == "" {
		msg = strings.TrimSpace(string(data))
	}
	if msg == "" {
		msg = resp.Status
	}
	return &APIError{StatusCode: resp.StatusCode, Message: msg}
}

// do executes a JSON round trip. A nil out discards the response body.
func (c *RESTClient) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := c.newRequest(ctx, method, path, query, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		if c.onUnauthorized != nil {
			c.onUnauthorized(ctx)
		}
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s %s: %w", method, path, err)
	}
	return nil
}

func (c *RESTClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/inicio", nil, nil, nil)
}

// Login probes the protected user listing with the supplied credentials.
// A 401 here means the credentials are wrong, not that an existing session
// expired, so the unauthorized hook is deliberately not involved.
func (c *RESTClient) Login(ctx context.Context, username, password string) ([]models.User, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/usuarios", nil, nil)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(username, password)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, decodeAPIError(resp)
	}

	var users []models.User
	if err := json.NewDecoder(resp.Body).Decode(&users); err != nil {
		return nil, fmt.Errorf("decoding login response: %w", err)
	}
	return users, nil
}

func (c *RESTClient) Users(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.do(ctx, http.MethodGet, "/usuarios", nil, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *RESTClient) IncidentTypes(ctx context.Context) ([]models.IncidentType, error) {
	var tt []models.IncidentType
	if err := c.do(ctx, http.MethodGet, "/tiposiniestro", nil, nil, &tt); err != nil {
		return nil, err
	}
	return tt, nil
}

func (c *RESTClient) LossTypes(ctx context.Context) ([]models.LossType, error) {
	var tt []models.LossType
	if err := c.do(ctx, http.MethodGet, "/tiposperdida", nil, nil, &tt); err != nil {
		return nil, err
	}
	return tt, nil
}

func (c *RESTClient) Sexes(ctx context.Context) ([]models.Sex, error) {
	var ss []models.Sex
	if err := c.do(ctx, http.MethodGet, "/sexos", nil, nil, &ss); err != nil {
		return nil, err
	}
	return ss, nil
}

func (c *RESTClient) AgeRanges(ctx context.Context) ([]models.AgeRange, error) {
	var rr []models.AgeRange
	if err := c.do(ctx, http.MethodGet, "/rangosedad", nil, nil, &rr); err != nil {
		return nil, err
	}
	return rr, nil
}

func (c *RESTClient) Branches(ctx context.Context) ([]models.Branch, error) {
	var bb []models.Branch
	if err := c.do(ctx, http.MethodGet, "/sucursales", nil, nil, &bb); err != nil {
		return nil, err
	}
	return bb, nil
}

func (c *RESTClient) Zones(ctx context.Context) ([]models.Zone, error) {
	var zz []models.Zone
	if err := c.do(ctx, http.MethodGet, "/zonas", nil, nil, &zz); err != nil {
		return nil, err
	}
	return zz, nil
}

func (c *RESTClient) Incidents(ctx context.Context) ([]models.IncidentSummary, error) {
	var resp models.IncidentSummaryResponse
	if err := c.do(ctx, http.MethodGet, "/siniestros", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

func (c *RESTClient) Incident(ctx context.Context, id int) (*models.Incident, error) {
	var resp models.IncidentResponse
	if err := c.do(ctx, http.MethodGet, "/siniestros/"+strconv.Itoa(id), nil, nil, &resp); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: siniestro %d", common.ErrorNotFound, id)
		}
		return nil, err
	}
	if resp.Incident == nil {
		return nil, fmt.Errorf("%w: siniestro %d", common.ErrorNotFound, id)
	}
	return resp.Incident, nil
}

func (c *RESTClient) IncidentsByType(ctx context.Context, typeID int) ([]models.Incident, error) {
	var resp models.IncidentListResponse
	if err := c.do(ctx, http.MethodGet, "/siniestros/tipo/"+strconv.Itoa(typeID), nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Incidents, nil
}

func (c *RESTClient) IncidentsByDate(ctx context.Context, date string) ([]models.Incident, error) {
	var resp models.IncidentListResponse
	if err := c.do(ctx, http.MethodGet, "/siniestros/fecha/"+url.PathEscape(date), nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Incidents, nil
}

func (c *RESTClient) CreateIncident(ctx context.Context, req models.CreateIncident) (models.SimpleResponse, error) {
	var resp models.SimpleResponse
	if err := c.do(ctx, http.MethodPost, "/siniestros", nil, req, &resp); err != nil {
		return models.SimpleResponse{}, err
	}
	return resp, nil
}

func (c *RESTClient) UpdateIncident(ctx context.Context, id int, req models.UpdateIncident) (models.SimpleResponse, error) {
	var resp models.SimpleResponse
	if err := c.do(ctx, http.MethodPut, "/siniestros/"+strconv.Itoa(id), nil, req, &resp); err != nil {
		return models.SimpleResponse{}, err
	}
	return resp, nil
}

func (c *RESTClient) DeleteIncident(ctx context.Context, id int) (models.SimpleResponse, error) {
	var resp models.SimpleResponse
	if err := c.do(ctx, http.MethodDelete, "/siniestros/"+strconv.Itoa(id), nil, nil, &resp); err != nil {
		return models.SimpleResponse{}, err
	}
	return resp, nil
}

// UploadPhoto sends the photographic evidence as a multipart form. The
// Content-Type header comes from the multipart writer so the boundary is
// set correctly; only the Authorization header is added on top.
func (c *RESTClient) UploadPhoto(ctx context.Context, id int, filename string, photo io.Reader) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, photo); err != nil {
		return fmt.Errorf("reading photo: %w", err)
	}
	if err := w.Close(); err != nil {
		return err
	}

	path := fmt.Sprintf("/siniestros/%d/foto/subir", id)
	req, err := c.newRequest(ctx, http.MethodPost, path, nil, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		if c.onUnauthorized != nil {
			c.onUnauthorized(ctx)
		}
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}
	return nil
}

// CreateBulletin requests the rendered incident bulletin. The free text
// travels as a query parameter; the response body is the document itself.
func (c *RESTClient) CreateBulletin(ctx context.Context, id int, text string) ([]byte, error) {
	query := url.Values{}
	query.Set("formato", "pdf")
	if text != "" {
		query.Set("texto", text)
	}

	path := fmt.Sprintf("/siniestros/%d/boletin/generar", id)
	req, err := c.newRequest(ctx, http.MethodPost, path, query, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		if c.onUnauthorized != nil {
			c.onUnauthorized(ctx)
		}
		return nil, ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, decodeAPIError(resp)
	}
	return io.ReadAll(resp.Body)
}

func statsQuery(f models.StatsFilter) url.Values {
	query := url.Values{}
	if f.From != "" {
		query.Set("fecha_inicio", f.From)
	}
	if f.To != "" {
		query.Set("fecha_fin", f.To)
	}
	return query
}

func (c *RESTClient) GeneralStats(ctx context.Context, f models.StatsFilter) (*models.GeneralStats, error) {
	var stats models.GeneralStats
	if err := c.do(ctx, http.MethodGet, "/estadisticas/generales", statsQuery(f), nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *RESTClient) StatsByType(ctx context.Context, f models.StatsFilter) ([]models.TypeStats, error) {
	var stats []models.TypeStats
	if err := c.do(ctx, http.MethodGet, "/estadisticas/por-tipo", statsQuery(f), nil, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

func (c *RESTClient) StatsByBranch(ctx context.Context, f models.StatsFilter) ([]models.BranchStats, error) {
	var stats []models.BranchStats
	if err := c.do(ctx, http.MethodGet, "/estadisticas/por-sucursal", statsQuery(f), nil, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}
