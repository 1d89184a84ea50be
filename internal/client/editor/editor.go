// Package editor holds the in-memory draft of one siniestro together with
// its nested loss and involved-party collections. The draft is mutated by
// the CLI's editing commands, validated client-side, and serialized into
// the API's request shapes by the submission service.
package editor

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Loth-Lorien/SiniestrosAPI-sub000/internal/client/models"
	"github.com/Loth-Lorien/SiniestrosAPI-sub000/internal/common"
)

// ErrLastEntry is returned when a removal would leave a nested collection
// empty. The editing UI always keeps at least one row per collection.
var ErrLastEntry = errors.New("at least one entry is required")

// Attachment is transient photographic evidence selected for upload. It is
// never part of the serialized payloads.
type Attachment struct {
	Filename string
	Data     []byte
}

// Draft is the editable aggregate: the incident root plus its ordered loss
// and involved-party collections. Losses and Involved are never nil and
// never empty while the draft is open.
type Draft struct {
	ID             int // 0 until created, or the id of the incident being edited
	BranchID       string
	Date           string // YYYY-MM-DD
	Time           string // HH:MM
	IncidentTypeID int
	Thwarted       bool
	Finalized      bool
	Narrative      string
	RecordedByID   int
	Losses         []models.LossDetail
	Involved       []models.InvolvedDetail
	BulletinText   string

	// Photo is transient and not serialized.
	Photo *Attachment

	// Line provenance aligned with Losses/Involved. Lines loaded from the
	// server are stored and immutable on the wire; only involved parties
	// carry a server id, so only their removals can travel in the update
	// payload's eliminar list.
	lossLines       []line
	involvedLines   []line
	removedInvolved []int

	catalog *models.Catalog
}

// line tracks where one nested row came from. id is set only for involved
// parties; the read model exposes no ids for loss lines.
type line struct {
	stored bool
	id     int
}

// New opens an empty draft recorded by the given user, with one blank row
// in each nested collection.
func New(catalog *models.Catalog, recordedByID int) *Draft {
	return &Draft{
		RecordedByID:  recordedByID,
		Losses:        []models.LossDetail{{}},
		Involved:      []models.InvolvedDetail{{}},
		lossLines:     []line{{}},
		involvedLines: []line{{}},
		catalog:       catalog,
	}
}

// Load populates the draft from a previously fetched incident. Names in the
// read model are resolved back to identifiers through the catalog; anything
// that no longer resolves is left blank for the user to re-pick. Empty
// nested collections are replaced with a single blank row.
func Load(catalog *models.Catalog, inc *models.Incident, recordedByID int) *Draft {
	d := New(catalog, recordedByID)
	d.ID = inc.ID
	d.Thwarted = inc.Thwarted
	d.Date, d.Time = splitTimestamp(inc.Date)

	if b := branchByName(catalog, inc.Branch); b != nil {
		d.BranchID = b.ID
	}
	for _, t := range catalog.IncidentTypes {
		if strings.EqualFold(t.Name, inc.IncidentType) {
			d.IncidentTypeID = t.ID
			break
		}
	}

	if len(inc.Losses) > 0 {
		d.Losses = inc.LossDetails()
		d.lossLines = d.lossLines[:0]
		for range inc.Losses {
			d.lossLines = append(d.lossLines, line{stored: true})
		}
	}
	if len(inc.Involved) > 0 {
		d.Involved = d.Involved[:0]
		d.involvedLines = d.involvedLines[:0]
		for _, p := range inc.Involved {
			entry := models.InvolvedDetail{Note: p.Note}
			for _, sx := range catalog.Sexes {
				if strings.EqualFold(sx.Name, p.Sex) {
					entry.SexID = sx.ID
					break
				}
			}
			for _, ar := range catalog.AgeRanges {
				if strings.EqualFold(ar.Name, p.AgeRange) {
					entry.AgeRangeID = ar.ID
					break
				}
			}
			d.Involved = append(d.Involved, entry)
			d.involvedLines = append(d.involvedLines, line{stored: true, id: p.ID})
		}
	}
	return d
}

// AddLoss appends a blank loss row and returns its index.
func (d *Draft) AddLoss() int {
	d.Losses = append(d.Losses, models.LossDetail{})
	d.lossLines = append(d.lossLines, line{})
	return len(d.Losses) - 1
}

// RemoveLoss deletes the loss row at index. Removing the last remaining row
// is rejected with ErrLastEntry. Stored loss rows cannot be removed: the
// read model carries no ids for them, so a removal could never be expressed
// in the update payload.
func (d *Draft) RemoveLoss(index int) error {
	if index < 0 || index >= len(d.Losses) {
		return fmt.Errorf("loss index %d out of range", index)
	}
	if len(d.Losses) == 1 {
		return ErrLastEntry
	}
	if d.lossLines[index].stored {
		return fmt.Errorf("loss %d is stored on the server and cannot be removed from here", index+1)
	}
	d.Losses = append(d.Losses[:index], d.Losses[index+1:]...)
	d.lossLines = append(d.lossLines[:index], d.lossLines[index+1:]...)
	return nil
}

// AddInvolvedParty appends a blank involved-party row and returns its index.
func (d *Draft) AddInvolvedParty() int {
	d.Involved = append(d.Involved, models.InvolvedDetail{})
	d.involvedLines = append(d.involvedLines, line{})
	return len(d.Involved) - 1
}

// RemoveInvolvedParty deletes the involved-party row at index, keeping at
// least one row. Removing a stored line records its server id for the
// update payload.
func (d *Draft) RemoveInvolvedParty(index int) error {
	if index < 0 || index >= len(d.Involved) {
		return fmt.Errorf("involved index %d out of range", index)
	}
	if len(d.Involved) == 1 {
		return ErrLastEntry
	}
	if l := d.involvedLines[index]; l.stored {
		d.removedInvolved = append(d.removedInvolved, l.id)
	}
	d.Involved = append(d.Involved[:index], d.Involved[index+1:]...)
	d.involvedLines = append(d.involvedLines[:index], d.involvedLines[index+1:]...)
	return nil
}

// IsStoredLoss reports whether the loss row at index came from the server.
// Stored loss lines can neither be edited nor removed on the wire.
func (d *Draft) IsStoredLoss(index int) bool {
	return index >= 0 && index < len(d.lossLines) && d.lossLines[index].stored
}

// IsStoredParty reports whether the involved-party row at index came from
// the server. Stored parties cannot be edited on the wire, only removed.
func (d *Draft) IsStoredParty(index int) bool {
	return index >= 0 && index < len(d.involvedLines) && d.involvedLines[index].stored
}

// UpdateField is the generic setter across the root draft and nested
// entries. Paths are dotted: "branch", "date", "time", "type", "thwarted",
// "finalized", "narrative", "bulletin", "losses.N.type",
// "losses.N.amount", "losses.N.recovered", "losses.N.note",
// "involved.N.sex", "involved.N.age", "involved.N.note".
func (d *Draft) UpdateField(path string, value any) error {
	parts := strings.Split(path, ".")

	switch parts[0] {
	case "branch":
		return setString(&d.BranchID, value)
	case "date":
		return setString(&d.Date, value)
	case "time":
		return setString(&d.Time, value)
	case "type":
		return setInt(&d.IncidentTypeID, value)
	case "thwarted":
		return setBool(&d.Thwarted, value)
	case "finalized":
		return setBool(&d.Finalized, value)
	case "narrative":
		return setString(&d.Narrative, value)
	case "bulletin":
		return setString(&d.BulletinText, value)

	case "losses":
		if len(parts) != 3 {
			return fmt.Errorf("invalid path %q", path)
		}
		index, err := strconv.Atoi(parts[1])
		if err != nil || index < 0 || index >= len(d.Losses) {
			return fmt.Errorf("invalid loss index in path %q", path)
		}
		if d.IsStoredLoss(index) {
			return fmt.Errorf("loss %d is already stored and cannot be changed", index+1)
		}
		l := &d.Losses[index]
		switch parts[2] {
		case "type":
			return setInt(&l.LossTypeID, value)
		case "amount":
			return setFloat(&l.Amount, value)
		case "recovered":
			return setBool(&l.Recovered, value)
		case "note":
			return setString(&l.Note, value)
		}
		return fmt.Errorf("unknown loss field %q", parts[2])

	case "involved":
		if len(parts) != 3 {
			return fmt.Errorf("invalid path %q", path)
		}
		index, err := strconv.Atoi(parts[1])
		if err != nil || index < 0 || index >= len(d.Involved) {
			return fmt.Errorf("invalid involved index in path %q", path)
		}
		if d.IsStoredParty(index) {
			return fmt.Errorf("involved party %d is already stored; remove it and add a new line", index+1)
		}
		p := &d.Involved[index]
		switch parts[2] {
		case "sex":
			return setString(&p.SexID, value)
		case "age":
			return setInt(&p.AgeRangeID, value)
		case "note":
			return setString(&p.Note, value)
		}
		return fmt.Errorf("unknown involved field %q", parts[2])
	}

	return fmt.Errorf("unknown field %q", path)
}

// Validate checks the required-field rules and enum resolution. It returns
// nil when the draft is submittable, otherwise an error wrapping
// common.ErrValidation whose message names the first failure. Submission is
// blocked while any failure exists; validation never touches the network.
func (d *Draft) Validate() error {
	fail := func(msg string) error {
		return fmt.Errorf("%w: %s", common.ErrValidation, msg)
	}

	if d.BranchID == "" {
		return fail("a branch must be selected")
	}
	if d.catalog.BranchByID(d.BranchID) == nil {
		return fail(fmt.Sprintf("branch %q is not in the catalog", d.BranchID))
	}
	if d.Date == "" {
		return fail("a date must be set")
	}
	if d.Time == "" {
		return fail("a time must be set")
	}
	if d.IncidentTypeID == 0 {
		return fail("an incident type must be selected")
	}
	if d.catalog.IncidentTypeByID(d.IncidentTypeID) == nil {
		return fail(fmt.Sprintf("incident type %d is not in the catalog", d.IncidentTypeID))
	}

	for i, l := range d.Losses {
		if d.IsStoredLoss(i) {
			// Stored lines were validated when first saved and cannot
			// change in this session.
			continue
		}
		if l.LossTypeID == 0 || l.Amount <= 0 {
			return fail(fmt.Sprintf("loss %d needs a type and an amount greater than 0", i+1))
		}
		if d.catalog.LossTypeByID(l.LossTypeID) == nil {
			return fail(fmt.Sprintf("loss %d has unknown type %d", i+1, l.LossTypeID))
		}
	}
	for i, p := range d.Involved {
		if d.IsStoredParty(i) {
			continue
		}
		if p.SexID == "" || p.AgeRangeID == 0 {
			return fail(fmt.Sprintf("involved party %d needs a sex and an age range", i+1))
		}
		if d.catalog.SexByID(p.SexID) == nil {
			return fail(fmt.Sprintf("involved party %d has unknown sex %q", i+1, p.SexID))
		}
		if d.catalog.AgeRangeByID(p.AgeRangeID) == nil {
			return fail(fmt.Sprintf("involved party %d has unknown age range %d", i+1, p.AgeRangeID))
		}
	}
	return nil
}

// RequiresPhoto reports whether the selected incident type calls for
// photographic evidence. A missing photo is a warning for the user, never
// a blocking validation failure.
func (d *Draft) RequiresPhoto() bool {
	t := d.catalog.IncidentTypeByID(d.IncidentTypeID)
	return t != nil && t.RequiresPhoto
}

// CreatePayload serializes the draft for POST /siniestros, combining the
// separate date and time fields into one timestamp.
func (d *Draft) CreatePayload() models.CreateIncident {
	return models.CreateIncident{
		BranchID:       d.BranchID,
		Date:           fmt.Sprintf("%s %s:00", d.Date, d.Time),
		IncidentTypeID: d.IncidentTypeID,
		Thwarted:       d.Thwarted,
		Finalized:      d.Finalized,
		Narrative:      d.Narrative,
		RecordedByID:   d.RecordedByID,
		Losses:         d.Losses,
		Involved:       d.Involved,
	}
}

// UpdatePayload serializes the draft for PUT /siniestros/{id}. The console
// edits the whole record, so every scalar is sent. The server appends every
// line it receives, so the nested collections carry only the lines added in
// this session; removed stored parties travel in the eliminar list by
// server id.
func (d *Draft) UpdatePayload() models.UpdateIncident {
	date := fmt.Sprintf("%s %s:00", d.Date, d.Time)

	var newLosses []models.LossDetail
	for i, l := range d.Losses {
		if !d.lossLines[i].stored {
			newLosses = append(newLosses, l)
		}
	}
	var newInvolved []models.InvolvedDetail
	for i, p := range d.Involved {
		if !d.involvedLines[i].stored {
			newInvolved = append(newInvolved, p)
		}
	}

	return models.UpdateIncident{
		BranchID:       &d.BranchID,
		Date:           &date,
		IncidentTypeID: &d.IncidentTypeID,
		Thwarted:       &d.Thwarted,
		Finalized:      &d.Finalized,
		Narrative:      &d.Narrative,
		RecordedByID:   &d.RecordedByID,
		Losses:         newLosses,
		Involved:       newInvolved,
		RemoveInvolved: d.removedInvolved,
	}
}

// Catalog exposes the lookup tables the CLI renders display names from.
func (d *Draft) Catalog() *models.Catalog { return d.catalog }

func setString(dst *string, value any) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected string, got %T", value)
	}
	*dst = s
	return nil
}

func setInt(dst *int, value any) error {
	switch v := value.(type) {
	case int:
		*dst = v
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("expected number, got %q", v)
		}
		*dst = n
	default:
		return fmt.Errorf("expected int, got %T", value)
	}
	return nil
}

func setFloat(dst *float64, value any) error {
	switch v := value.(type) {
	case float64:
		*dst = v
	case int:
		*dst = float64(v)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("expected amount, got %q", v)
		}
		*dst = f
	default:
		return fmt.Errorf("expected float, got %T", value)
	}
	return nil
}

func setBool(dst *bool, value any) error {
	switch v := value.(type) {
	case bool:
		*dst = v
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("expected boolean, got %q", v)
		}
		*dst = b
	default:
		return fmt.Errorf("expected bool, got %T", value)
	}
	return nil
}

// splitTimestamp separates a stored "YYYY-MM-DD HH:MM:SS" (or ISO 8601)
// timestamp into the editor's date and time fields.
func splitTimestamp(ts string) (date, clock string) {
	ts = strings.ReplaceAll(ts, "T", " ")
	parts := strings.SplitN(ts, " ", 2)
	date = parts[0]
	if len(parts) == 2 && len(parts[1]) >= 5 {
		clock = parts[1][:5]
	}
	return date, clock
}

func branchByName(catalog *models.Catalog, name string) *models.Branch {
	for i := range catalog.Branches {
		if strings.EqualFold(catalog.Branches[i].Name, name) || catalog.Branches[i].ID == name {
			return &catalog.Branches[i]
		}
	}
	return nil
}
