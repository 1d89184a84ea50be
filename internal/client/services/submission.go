package services

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Loth-Lorien/SiniestrosAPI-sub000/internal/client/client"
	"github.com/Loth-Lorien/SiniestrosAPI-sub000/internal/client/editor"
	"github.com/Loth-Lorien/SiniestrosAPI-sub000/internal/common"
	"github.com/Loth-Lorien/SiniestrosAPI-sub000/internal/logging"
)

// Submission stages, in execution order.
const (
	StageCreate   = "create"
	StageUpdate   = "update"
	StagePhoto    = "photo"
	StageBulletin = "bulletin"
)

// StageError is a non-fatal failure of one submission stage.
type StageError struct {
	Stage   string
	Message string
}

func (e StageError) Error() string {
	return fmt.Sprintf("%s: %s", e.Stage, e.Message)
}

// Outcome reports what a submission achieved. A saved record with a failed
// photo or bulletin stage is still a success; Errors carries what went
// wrong on the way.
type Outcome struct {
	IncidentID      int
	Message         string
	PhotoUploaded   bool
	BulletinCreated bool
	Bulletin        []byte
	Errors          []StageError
}

// SubmissionService drives the save flow: persist the incident record,
// then upload the photo, then generate the bulletin. Only the record save
// is fatal; later stages degrade into Outcome.Errors so a flaky photo
// upload never loses a saved siniestro.
type SubmissionService struct {
	client client.Client
	log    logging.Logger
}

func NewSubmissionService(apiClient client.Client, log logging.Logger) *SubmissionService {
	return &SubmissionService{client: apiClient, log: log}
}

var incidentIDPattern = regexp.MustCompile(`Id (\d+)`)

// ExtractIncidentID pulls the new record's id out of the server's creation
// message ("Siniestro creado con Id 482, ..."). The id travels only inside
// that human-readable sentence, so a reworded message makes extraction
// fail with common.ErrIDExtractionFailed rather than yield a bogus id.
func ExtractIncidentID(message string) (int, error) {
	m := incidentIDPattern.FindStringSubmatch(message)
	if m == nil {
		return 0, fmt.Errorf("%w: no id in %q", common.ErrIDExtractionFailed, message)
	}
	id, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", common.ErrIDExtractionFailed, m[1])
	}
	return id, nil
}

// Submit creates a new incident from the draft and runs the follow-up
// stages. It returns an error only when the record itself could not be
// saved; photo and bulletin failures are reported through the outcome.
func (s *SubmissionService) Submit(ctx context.Context, draft *editor.Draft) (*Outcome, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	resp, err := s.client.CreateIncident(ctx, draft.CreatePayload())
	if err != nil {
		return nil, fmt.Errorf("creating incident: %w", err)
	}
	if !resp.Status {
		return nil, fmt.Errorf("creating incident: %s", resp.Message)
	}

	out := &Outcome{Message: resp.Message}

	id, err := ExtractIncidentID(resp.Message)
	if err != nil {
		// The record is saved; without its id the follow-up stages are
		// skipped and the user finishes them from the incident list.
		s.log.Warn(ctx, "incident saved but id extraction failed", "message", resp.Message)
		out.Errors = append(out.Errors, StageError{Stage: StageCreate, Message: err.Error()})
		return out, nil
	}
	out.IncidentID = id
	s.log.Info(ctx, "incident created", "id", id)

	s.runFollowUps(ctx, draft, out)
	return out, nil
}

// Update saves changes to an existing incident and runs the same follow-up
// stages as Submit.
func (s *SubmissionService) Update(ctx context.Context, id int, draft *editor.Draft) (*Outcome, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	resp, err := s.client.UpdateIncident(ctx, id, draft.UpdatePayload())
	if err != nil {
		return nil, fmt.Errorf("updating incident %d: %w", id, err)
	}
	if !resp.Status {
		return nil, fmt.Errorf("updating incident %d: %s", id, resp.Message)
	}

	out := &Outcome{IncidentID: id, Message: resp.Message}
	s.log.Info(ctx, "incident updated", "id", id)

	s.runFollowUps(ctx, draft, out)
	return out, nil
}

func (s *SubmissionService) runFollowUps(ctx context.Context, draft *editor.Draft, out *Outcome) {
	if draft.Photo != nil && out.IncidentID != 0 {
		err := s.client.UploadPhoto(ctx, out.IncidentID, draft.Photo.Filename,
			bytes.NewReader(draft.Photo.Data))
		if err != nil {
			s.log.Warn(ctx, "photo upload failed", "id", out.IncidentID, "error", err)
			out.Errors = append(out.Errors, StageError{Stage: StagePhoto, Message: err.Error()})
		} else {
			out.PhotoUploaded = true
		}
	}

	if strings.TrimSpace(draft.BulletinText) != "" && out.IncidentID != 0 {
		doc, err := s.client.CreateBulletin(ctx, out.IncidentID, draft.BulletinText)
		if err != nil {
			s.log.Warn(ctx, "bulletin generation failed", "id", out.IncidentID, "error", err)
			out.Errors = append(out.Errors, StageError{Stage: StageBulletin, Message: err.Error()})
		} else {
			out.BulletinCreated = true
			out.Bulletin = doc
		}
	}
}
