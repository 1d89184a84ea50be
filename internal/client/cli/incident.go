package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Loth-Lorien/SiniestrosAPI-sub000/internal/client/editor"
	"github.com/Loth-Lorien/SiniestrosAPI-sub000/internal/client/losses"
	"github.com/Loth-Lorien/SiniestrosAPI-sub000/internal/client/models"
	"github.com/Loth-Lorien/SiniestrosAPI-sub000/internal/client/services"
	"github.com/Loth-Lorien/SiniestrosAPI-sub000/internal/common"
)

// loadCatalog fetches the lookup tables. The editor never opens against a
// partial catalog, so a failed load aborts the command.
func (a *App) loadCatalog(ctx context.Context) (*models.Catalog, bool) {
	cat, err := a.catalogs.Load(ctx)
	if err != nil {
		log.Printf("Loading catalogs failed: %v", err)
		return nil, false
	}
	return cat, true
}

func (a *App) recordedByID() int {
	session := a.sessions.Current()
	if session == nil {
		return 0
	}
	return session.Identity.ID
}

// newIncident walks the user through recording a siniestro and submits it.
func (a *App) newIncident(ctx context.Context) {
	cat, ok := a.loadCatalog(ctx)
	if !ok {
		return
	}

	draft := editor.New(cat, a.recordedByID())
	if !a.promptDraft(draft) {
		return
	}

	a.finishSubmission(func() (*services.Outcome, error) {
		return a.submissions.Submit(ctx, draft)
	}, draft)
}

// editIncident loads a stored siniestro into the editor and saves changes.
func (a *App) editIncident(ctx context.Context, id int) {
	cat, ok := a.loadCatalog(ctx)
	if !ok {
		return
	}

	inc, err := a.incidents.Get(ctx, id)
	if err != nil {
		log.Printf("Loading incident %d failed: %v", id, err)
		return
	}

	draft := editor.Load(cat, inc, a.recordedByID())
	fmt.Printf("Editing incident %d; press Enter to keep a current value\n", id)
	if !a.promptDraft(draft) {
		return
	}

	a.finishSubmission(func() (*services.Outcome, error) {
		return a.submissions.Update(ctx, id, draft)
	}, draft)
}

// promptDraft runs the interactive field sequence over the draft. Empty
// answers keep the current value. Returns false when the user aborts.
func (a *App) promptDraft(draft *editor.Draft) bool {
	cat := draft.Catalog()

	fmt.Println("Branches:")
	for _, b := range cat.Branches {
		zone := strconv.Itoa(b.ZoneID)
		if z := cat.ZoneByID(b.ZoneID); z != nil {
			zone = z.Name
		}
		fmt.Printf("  %-6s %s (%s)\n", b.ID, b.Name, zone)
	}
	if !a.promptField(draft, "branch", fmt.Sprintf("Branch code [%s]", draft.BranchID)) {
		return false
	}
	if !a.promptField(draft, "date", fmt.Sprintf("Date YYYY-MM-DD [%s]", draft.Date)) {
		return false
	}
	if !a.promptField(draft, "time", fmt.Sprintf("Time HH:MM [%s]", draft.Time)) {
		return false
	}

	fmt.Println("Incident types:")
	for _, t := range cat.IncidentTypes {
		marker := ""
		if t.RequiresPhoto {
			marker = " (photo required)"
		}
		fmt.Printf("  %3d %s%s\n", t.ID, t.Name, marker)
	}
	if !a.promptField(draft, "type", fmt.Sprintf("Incident type id [%d]", draft.IncidentTypeID)) {
		return false
	}

	thwarted, err := GetYesNo(a.reader, "Was the incident thwarted?", draft.Thwarted, os.Stdout)
	if err != nil {
		return false
	}
	_ = draft.UpdateField("thwarted", thwarted)

	finalized, err := GetYesNo(a.reader, "Is the record final?", draft.Finalized, os.Stdout)
	if err != nil {
		return false
	}
	_ = draft.UpdateField("finalized", finalized)

	narrative, err := GetMultiline(a.reader, "Narrative (empty to keep current)", os.Stdout)
	if err != nil {
		return false
	}
	if narrative != "" {
		_ = draft.UpdateField("narrative", narrative)
	}

	if !a.promptLosses(draft) || !a.promptInvolved(draft) {
		return false
	}

	a.promptPhoto(draft)

	bulletin, err := GetMultiline(a.reader, "Bulletin text (empty to skip)", os.Stdout)
	if err != nil {
		return false
	}
	if bulletin != "" {
		_ = draft.UpdateField("bulletin", bulletin)
	}

	return true
}

// promptField reads one answer and routes it through the draft's setter.
// An empty answer keeps the current value.
func (a *App) promptField(draft *editor.Draft, path, prompt string) bool {
	for {
		text, err := getSimpleText(a.reader, prompt, os.Stdout)
		if err != nil {
			return false
		}
		if text == "" {
			return true
		}
		if err := draft.UpdateField(path, text); err != nil {
			fmt.Println(err)
			continue
		}
		return true
	}
}

func (a *App) promptLosses(draft *editor.Draft) bool {
	cat := draft.Catalog()

	fmt.Println("Loss types:")
	for _, t := range cat.LossTypes {
		fmt.Printf("  %3d %s\n", t.ID, t.Name)
	}

	for i := 0; ; i++ {
		if i >= len(draft.Losses) {
			more, err := GetYesNo(a.reader, "Add another loss?", false, os.Stdout)
			if err != nil {
				return false
			}
			if !more {
				break
			}
			draft.AddLoss()
		}

		if draft.IsStoredLoss(i) {
			// Stored loss lines have no server id, so the API can neither
			// change nor remove them.
			l := draft.Losses[i]
			fmt.Printf("Loss %d: type %d, amount %.2f (stored, unchangeable)\n", i+1, l.LossTypeID, l.Amount)
			continue
		}

		l := draft.Losses[i]
		fmt.Printf("Loss %d:\n", i+1)
		if !a.promptField(draft, fmt.Sprintf("losses.%d.type", i), fmt.Sprintf("  Loss type id [%d]", l.LossTypeID)) {
			return false
		}
		if !a.promptField(draft, fmt.Sprintf("losses.%d.amount", i), fmt.Sprintf("  Amount [%.2f]", l.Amount)) {
			return false
		}
		recovered, err := GetYesNo(a.reader, "  Was it recovered?", l.Recovered, os.Stdout)
		if err != nil {
			return false
		}
		_ = draft.UpdateField(fmt.Sprintf("losses.%d.recovered", i), recovered)
		if !a.promptField(draft, fmt.Sprintf("losses.%d.note", i), "  Note (optional)") {
			return false
		}
	}
	return true
}

func (a *App) promptInvolved(draft *editor.Draft) bool {
	cat := draft.Catalog()

	fmt.Println("Sexes:")
	for _, s := range cat.Sexes {
		fmt.Printf("  %-3s %s\n", s.ID, s.Name)
	}
	fmt.Println("Age ranges:")
	for _, r := range cat.AgeRanges {
		fmt.Printf("  %3d %s\n", r.ID, r.Name)
	}

	for i := 0; ; i++ {
		if i >= len(draft.Involved) {
			more, err := GetYesNo(a.reader, "Add another involved party?", false, os.Stdout)
			if err != nil {
				return false
			}
			if !more {
				break
			}
			draft.AddInvolvedParty()
		}

		if draft.IsStoredParty(i) {
			p := draft.Involved[i]
			remove, err := GetYesNo(a.reader,
				fmt.Sprintf("Involved party %d: %s, age range %d (stored). Remove it?", i+1, p.SexID, p.AgeRangeID),
				false, os.Stdout)
			if err != nil {
				return false
			}
			if remove {
				if err := draft.RemoveInvolvedParty(i); err != nil {
					fmt.Println(err)
				} else {
					i--
				}
			}
			continue
		}

		p := draft.Involved[i]
		fmt.Printf("Involved party %d:\n", i+1)
		if !a.promptField(draft, fmt.Sprintf("involved.%d.sex", i), fmt.Sprintf("  Sex code [%s]", p.SexID)) {
			return false
		}
		if !a.promptField(draft, fmt.Sprintf("involved.%d.age", i), fmt.Sprintf("  Age range id [%d]", p.AgeRangeID)) {
			return false
		}
		if !a.promptField(draft, fmt.Sprintf("involved.%d.note", i), "  Note (optional)") {
			return false
		}
	}
	return true
}

// promptPhoto offers to attach photographic evidence, insisting (but not
// blocking) when the selected incident type requires it.
func (a *App) promptPhoto(draft *editor.Draft) {
	prompt := "Photo file path (empty to skip)"
	if draft.RequiresPhoto() {
		fmt.Println("This incident type requires photographic evidence.")
		prompt = "Photo file path"
	}

	path, err := getSimpleText(a.reader, prompt, os.Stdout)
	if err != nil || path == "" {
		if draft.RequiresPhoto() && draft.Photo == nil {
			fmt.Println("Warning: submitting without the required photo")
		}
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Reading photo failed: %v", err)
		return
	}
	draft.Photo = &editor.Attachment{Filename: photoFilename(path), Data: data}
	fmt.Printf("Attached %s (%d bytes)\n", draft.Photo.Filename, len(data))
}

// finishSubmission validates, confirms and runs the submission, then
// reports the outcome including any non-fatal stage failures.
func (a *App) finishSubmission(run func() (*services.Outcome, error), draft *editor.Draft) {
	if err := draft.Validate(); err != nil {
		fmt.Println(err)
		return
	}

	summary := losses.Summarize(draft.Losses)
	fmt.Printf("Total loss: %.2f (gross %.2f, recovered %.2f)\n",
		summary.Net, summary.Gross, summary.Recovered)

	confirmed, err := GetYesNo(a.reader, "Save this incident?", true, os.Stdout)
	if err != nil || !confirmed {
		fmt.Println("Discarded")
		return
	}

	out, err := run()
	if err != nil {
		if errors.Is(err, common.ErrValidation) {
			fmt.Println(err)
			return
		}
		log.Printf("Saving incident failed: %v", err)
		return
	}

	fmt.Println(out.Message)
	if out.PhotoUploaded {
		fmt.Println("Photo uploaded")
	}
	if out.BulletinCreated {
		a.saveBulletin(out.IncidentID, out.Bulletin)
	}
	for _, stageErr := range out.Errors {
		fmt.Printf("Warning (%s): %s\n", stageErr.Stage, stageErr.Message)
	}
}

func (a *App) saveBulletin(id int, doc []byte) {
	name := fmt.Sprintf("boletin_%d.pdf", id)
	if err := os.WriteFile(name, doc, 0o600); err != nil {
		log.Printf("Writing bulletin failed: %v", err)
		return
	}
	fmt.Printf("Bulletin saved to %s\n", name)
}

// photoFilename keeps only the base name so the upload never leaks the
// local directory layout.
func photoFilename(path string) string {
	return filepath.Base(path)
}
