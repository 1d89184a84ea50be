package models

// SimpleResponse is the server's envelope for mutating calls. On creation
// the message embeds the new record's numeric id in free text.
type SimpleResponse struct {
	Status  bool   `json:"estatus"`
	Message string `json:"mensaje"`
}

// IncidentResponse wraps a single incident lookup.
type IncidentResponse struct {
	Status   bool      `json:"estatus"`
	Message  string    `json:"mensaje"`
	Incident *Incident `json:"siniestro,omitempty"`
}

// IncidentListResponse wraps filtered incident queries.
type IncidentListResponse struct {
	Status    bool       `json:"estatus"`
	Message   string     `json:"mensaje"`
	Incidents []Incident `json:"siniestros"`
}

// IncidentSummary is one row of the full GET /siniestros listing. That
// endpoint uses Pascal-case keys and a different envelope than the
// filtered queries, and pre-aggregates the nested collections.
type IncidentSummary struct {
	ID             int     `json:"IdSiniestro"`
	BranchID       string  `json:"IdCentro"`
	Date           string  `json:"Fecha"`
	IncidentType   string  `json:"TipoSiniestro"`
	IncidentTypeID int     `json:"IdTipoCuenta"`
	Thwarted       bool    `json:"Frustrado"`
	Considered     bool    `json:"Contemplar"`
	Branch         string  `json:"Sucursal"`
	RecordedBy     string  `json:"Usuario"`
	TotalLoss      float64 `json:"MontoTotal"`
	LossCount      int     `json:"CantidadDetalles"`
	InvolvedCount  int     `json:"CantidadImplicados"`
}

// IncidentSummaryResponse wraps the full listing.
type IncidentSummaryResponse struct {
	Success bool              `json:"success"`
	Items   []IncidentSummary `json:"data"`
	Total   int               `json:"total"`
}

// User is a row of the usuarios listing.
type User struct {
	ID       int    `json:"IdUsuarios"`
	Username string `json:"NombreUsuario"`
	LevelID  int    `json:"NivelUsuarioId"`
	Status   int    `json:"Estatus"`
}
