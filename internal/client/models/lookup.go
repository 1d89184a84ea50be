package models

// IncidentType is a row of the tiposiniestro lookup table. RequiresPhoto
// marks types whose bulletins need photographic evidence; the catalog
// service fills it in when the server does not send the attribute.
type IncidentType struct {
	ID            int    `json:"idTipoSiniestro"`
	Name          string `json:"Cuenta"`
	RequiresPhoto bool   `json:"requiereFoto"`
}

// LossType is a row of the tiposperdida lookup table.
type LossType struct {
	ID   int    `json:"idTipoPerdida"`
	Name string `json:"TipoPerdida"`
}

// Sex is a row of the sexos lookup table. Its identifier is a letter code
// ("M", "F"), not a number.
type Sex struct {
	ID   string `json:"idSexo"`
	Name string `json:"Sexo"`
}

// AgeRange is a row of the rangosedad lookup table.
type AgeRange struct {
	ID   int    `json:"idRangoEdad"`
	Name string `json:"RangoEdad"`
}

// Branch is a row of the sucursales lookup table.
type Branch struct {
	ID     string `json:"IdCentro"`
	Name   string `json:"Sucursales"`
	ZoneID int    `json:"idZona"`
}

// Zone is a row of the zonas lookup table.
type Zone struct {
	ID   int    `json:"idZona"`
	Name string `json:"zona"`
}

// Catalog bundles the lookup tables the editor resolves enum references
// against. All slices are loaded together before the editor opens.
type Catalog struct {
	IncidentTypes []IncidentType
	LossTypes     []LossType
	Sexes         []Sex
	AgeRanges     []AgeRange
	Branches      []Branch
	Zones         []Zone
}

// IncidentTypeByID returns the incident type with the given id, or nil.
func (c *Catalog) IncidentTypeByID(id int) *IncidentType {
	for i := range c.IncidentTypes {
		if c.IncidentTypes[i].ID == id {
			return &c.IncidentTypes[i]
		}
	}
	return nil
}

// LossTypeByID returns the loss type with the given id, or nil.
func (c *Catalog) LossTypeByID(id int) *LossType {
	for i := range c.LossTypes {
		if c.LossTypes[i].ID == id {
			return &c.LossTypes[i]
		}
	}
	return nil
}

// SexByID returns the sex entry with the given letter code, or nil.
func (c *Catalog) SexByID(id string) *Sex {
	for i := range c.Sexes {
		if c.Sexes[i].ID == id {
			return &c.Sexes[i]
		}
	}
	return nil
}

// AgeRangeByID returns the age range with the given id, or nil.
func (c *Catalog) AgeRangeByID(id int) *AgeRange {
	for i := range c.AgeRanges {
		if c.AgeRanges[i].ID == id {
			return &c.AgeRanges[i]
		}
	}
	return nil
}

// ZoneByID returns the zone with the given id, or nil.
func (c *Catalog) ZoneByID(id int) *Zone {
	for i := range c.Zones {
		if c.Zones[i].ID == id {
			return &c.Zones[i]
		}
	}
	return nil
}

// BranchByID returns the branch with the given centre code, or nil.
func (c *Catalog) BranchByID(id string) *Branch {
	for i := range c.Branches {
		if c.Branches[i].ID == id {
			return &c.Branches[i]
		}
	}
	return nil
}
