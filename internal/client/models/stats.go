package models

// StatsFilter narrows statistics queries to a date range. Empty fields are
// omitted from the query string. Dates are "YYYY-MM-DD".
type StatsFilter struct {
	From string
	To   string
}

// GeneralStats mirrors /estadisticas/generales. The numbers come back
// pre-aggregated; the client never recomputes them.
type GeneralStats struct {
	TotalIncidents  int     `json:"total_siniestros"`
	Thwarted        int     `json:"siniestros_frustrados"`
	Consummated     int     `json:"siniestros_consumados"`
	ThwartedPct     float64 `json:"porcentaje_frustrados"`
	TotalLossAmount float64 `json:"monto_total_perdidas"`
	RecoveredAmount float64 `json:"monto_total_recuperado"`
	RecoveryPct     float64 `json:"porcentaje_recuperacion"`
}

// TypeStats mirrors one row of /estadisticas/por-tipo.
type TypeStats struct {
	IncidentType string  `json:"tipo_siniestro"`
	Count        int     `json:"cantidad"`
	TotalAmount  float64 `json:"monto_total"`
	ShareOfTotal float64 `json:"porcentaje_del_total"`
}

// BranchStats mirrors one row of /estadisticas/por-sucursal.
type BranchStats struct {
	Branch       string  `json:"sucursal"`
	Zone         string  `json:"zona"`
	Count        int     `json:"cantidad_siniestros"`
	TotalAmount  float64 `json:"monto_total"`
	LastIncident string  `json:"ultimo_siniestro,omitempty"`
}
