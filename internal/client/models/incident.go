package models

// LossDetail is one loss line of a create/update request.
type LossDetail struct {
	LossTypeID int     `json:"idTipoPerdida"`
	Amount     float64 `json:"monto"`
	Recovered  bool    `json:"recuperado"`
	Note       string  `json:"detalle,omitempty"`
}

// InvolvedDetail is one involved-party line of a create/update request.
type InvolvedDetail struct {
	SexID      string `json:"idSexo"`
	AgeRangeID int    `json:"idRangoEdad"`
	Note       string `json:"detalle,omitempty"`
}

// CreateIncident is the POST /siniestros request body. Date carries the
// combined "YYYY-MM-DD HH:MM:00" timestamp.
type CreateIncident struct {
	BranchID       string           `json:"idCentro"`
	Date           string           `json:"fecha"`
	IncidentTypeID int              `json:"idTipoCuenta"`
	Thwarted       bool             `json:"frustrado"`
	Finalized      bool             `json:"finalizado"`
	Narrative      string           `json:"detalle,omitempty"`
	RecordedByID   int              `json:"idRealizo"`
	Losses         []LossDetail     `json:"perdidas"`
	Involved       []InvolvedDetail `json:"implicados"`
}

// UpdateIncident is the PUT /siniestros/{id} request body. Nil pointers
// mean "leave unchanged". Losses/Involved carry only lines added during the
// edit; the Remove slices delete stored lines by their server id. Stored
// lines themselves are immutable, matching the server's update semantics.
// The read model exposes ids only for involved parties, so RemoveLosses is
// part of the contract but never has an id to carry.
type UpdateIncident struct {
	BranchID       *string          `json:"idCentro,omitempty"`
	Date           *string          `json:"fecha,omitempty"`
	IncidentTypeID *int             `json:"idTipoCuenta,omitempty"`
	Thwarted       *bool            `json:"frustrado,omitempty"`
	Finalized      *bool            `json:"finalizado,omitempty"`
	Narrative      *string          `json:"detalle,omitempty"`
	RecordedByID   *int             `json:"idRealizo,omitempty"`
	Losses         []LossDetail     `json:"perdidas,omitempty"`
	Involved       []InvolvedDetail `json:"implicados,omitempty"`
	RemoveLosses   []int            `json:"eliminar_perdidas,omitempty"`
	RemoveInvolved []int            `json:"eliminar_implicados,omitempty"`
}

// IncidentLoss is a loss line as returned by the server. Unlike involved
// parties, loss lines carry no server id.
type IncidentLoss struct {
	LossTypeID int     `json:"idTipoPerdida"`
	LossType   string  `json:"tipoPerdida"`
	Amount     float64 `json:"monto"`
	Recovered  bool    `json:"recuperado"`
	Note       string  `json:"detalle,omitempty"`
}

// IncidentInvolved is an involved-party line as returned by the server.
type IncidentInvolved struct {
	ID       int    `json:"idImplicado"`
	Sex      string `json:"sexo"`
	AgeRange string `json:"rangoEdad"`
	Note     string `json:"detalle,omitempty"`
}

// Incident is the read model of a stored siniestro.
type Incident struct {
	ID            int                `json:"idSiniestro"`
	Date          string             `json:"fecha"`
	Thwarted      bool               `json:"frustrado"`
	EstimatedLoss float64            `json:"montoEstimado"`
	RecordedBy    string             `json:"realizo"`
	Branch        string             `json:"centro"`
	IncidentType  string             `json:"tipoSiniestro"`
	Losses        []IncidentLoss     `json:"perdidas"`
	Involved      []IncidentInvolved `json:"implicados"`
}

// LossDetails converts the read model's loss lines into request-shape lines
// so the loss-accounting helpers apply to stored incidents too.
func (s *Incident) LossDetails() []LossDetail {
	out := make([]LossDetail, 0, len(s.Losses))
	for _, l := range s.Losses {
		out = append(out, LossDetail{
			LossTypeID: l.LossTypeID,
			Amount:     l.Amount,
			Recovered:  l.Recovered,
			Note:       l.Note,
		})
	}
	return out
}
