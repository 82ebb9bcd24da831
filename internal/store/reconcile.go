// internal/store/reconcile.go
package store

import (
	"context"

	"workbridge-workers/internal/common/logger"
	"workbridge-workers/internal/overlay"
	"workbridge-workers/internal/recruitment"
)

// ApplicationLister is the slice of ApplicationStore the reconciler needs.
type ApplicationLister interface {
	ListByJob(ctx context.Context, jobID string) ([]Application, error)
}

// ApplicationView is one application merged with its overlay state, ready for
// list rendering.
type ApplicationView struct {
	Application
	DisplayStatus          recruitment.Status
	Tab                    recruitment.FilterTab
	Saved                  bool
	HasProposal            bool
	ProposalStatus         recruitment.ProposalStatus
	ProposalUnread         bool
	GuideSent              bool
	FirstWorkDateConfirmed bool
}

// Reconciler merges the database rows with the overlay documents. The server
// rows win on status except where an overlay proposal advances a still-applied
// application to reviewed.
type Reconciler struct {
	apps    ApplicationLister
	overlay overlay.Store
	logger  logger.Logger
}

func NewReconciler(apps ApplicationLister, ov overlay.Store, log logger.Logger) *Reconciler {
	return &Reconciler{apps: apps, overlay: ov, logger: log}
}

// Reconcile builds the merged view for one job's applicant list. Failures
// degrade instead of failing the job: a list-fetch error yields an empty
// view, and overlay read failures on individual documents degrade that
// application to its server state.
func (r *Reconciler) Reconcile(ctx context.Context, jobID string) ([]ApplicationView, error) {
	apps, err := r.apps.ListByJob(ctx, jobID)
	if err != nil {
		r.logger.WithError(err).Warn("application list unavailable, rendering empty view", map[string]interface{}{
			"job_id": jobID,
		})
		apps = nil
	}

	saved, err := overlay.LoadSavedApplicants(ctx, r.overlay)
	if err != nil {
		r.logger.WithError(err).Warn("saved applicants unavailable, rendering without saved flags", map[string]interface{}{
			"job_id": jobID,
		})
		saved = map[string]bool{}
	}

	views := make([]ApplicationView, 0, len(apps))
	for _, app := range apps {
		view := ApplicationView{
			Application: app,
			Saved:       saved[app.SeekerID],
		}

		proposal, hasProposal, err := overlay.LoadProposal(ctx, r.overlay, app.ID)
		if err != nil {
			r.logger.WithError(err).Warn("proposal overlay unreadable", map[string]interface{}{
				"application_id": app.ID,
			})
		} else if hasProposal {
			view.HasProposal = true
			view.ProposalStatus = proposal.Status
			view.ProposalUnread = !proposal.IsRead

			if resp, ok, err := overlay.LoadResponse(ctx, r.overlay, app.ID); err == nil && ok {
				view.ProposalStatus = resp.Status
			}
		}

		if _, ok, err := overlay.LoadGuide(ctx, r.overlay, app.ID); err == nil && ok {
			view.GuideSent = true
		}
		if confirmed, err := overlay.IsFirstWorkDateConfirmed(ctx, r.overlay, app.ID); err == nil && confirmed {
			view.FirstWorkDateConfirmed = true
		}

		view.DisplayStatus = recruitment.DeriveDisplayStatus(app.Status, view.HasProposal)
		view.Tab = recruitment.TabFor(view.DisplayStatus)
		views = append(views, view)
	}
	return views, nil
}

// Filter keeps the views belonging to tab. The saved tab cuts across statuses;
// the interview_result tab accepts an optional result sub-filter.
func Filter(views []ApplicationView, tab recruitment.FilterTab, result recruitment.InterviewResult) []ApplicationView {
	if tab == recruitment.TabAll {
		return views
	}
	out := make([]ApplicationView, 0, len(views))
	for _, v := range views {
		switch tab {
		case recruitment.TabSaved:
			if v.Saved {
				out = append(out, v)
			}
		case recruitment.TabInterviewResult:
			r, ok := recruitment.ResultFor(v.DisplayStatus)
			if ok && (result == "" || r == result) {
				out = append(out, v)
			}
		default:
			if v.Tab == tab {
				out = append(out, v)
			}
		}
	}
	return out
}

// Counts tallies views per tab for the filter badges. Every view lands in all
// plus exactly one status tab; saved counts independently.
func Counts(views []ApplicationView) map[recruitment.FilterTab]int {
	counts := map[recruitment.FilterTab]int{
		recruitment.TabAll:             len(views),
		recruitment.TabNew:             0,
		recruitment.TabInProgress:      0,
		recruitment.TabInterviewResult: 0,
		recruitment.TabSaved:           0,
	}
	for _, v := range views {
		counts[v.Tab]++
		if v.Saved {
			counts[recruitment.TabSaved]++
		}
	}
	return counts
}
