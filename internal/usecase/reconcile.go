package usecase

import (
	"context"

	"github.com/you/staticman-prhook/internal/domain"
	"github.com/you/staticman-prhook/internal/infra"
	"github.com/you/staticman-prhook/internal/merge"
	"github.com/you/staticman-prhook/internal/notification"
	"github.com/you/staticman-prhook/internal/repository"
	"github.com/you/staticman-prhook/internal/telemetry"
)

// Reconciler brings an automation pull request in line with its merged or
// closed state. It keeps no state between calls.
type Reconciler struct {
	Host      repository.Host
	Processor merge.Processor
	Cleaner   BranchCleaner
	Sink      telemetry.Sink
	Log       infra.Logger
}

func NewReconciler(host repository.Host, proc merge.Processor, sink telemetry.Sink, log infra.Logger) *Reconciler {
	if sink == nil {
		sink = telemetry.Nop{}
	}
	if log == nil {
		log = infra.NewNopLogger()
	}
	return &Reconciler{
		Host:      host,
		Processor: proc,
		Cleaner:   BranchCleaner{Host: host},
		Sink:      sink,
		Log:       log,
	}
}

func (r *Reconciler) Reconcile(ctx context.Context, ev domain.PullRequestEvent) (domain.Outcome, error) {
	if ev.Number == 0 {
		return domain.NotApplicable(), nil
	}

	out, err := r.reconcile(ctx, ev)
	if err != nil {
		r.Log.Errorf("reconcile %s/%s#%d: %v", ev.Owner, ev.Repo, ev.Number, err)
		r.emit(telemetry.ActionDeleteBranchError)
		return domain.Outcome{}, err
	}
	r.emit(telemetry.ActionDeleteBranch)
	return out, nil
}

func (r *Reconciler) reconcile(ctx context.Context, ev domain.PullRequestEvent) (domain.Outcome, error) {
	pr, err := r.Host.GetPullRequest(ctx, ev.Owner, ev.Repo, ev.Number)
	if err != nil {
		return domain.Outcome{}, err
	}
	if !IsAutomationBranch(pr.HeadBranch) {
		return domain.NotApplicable(), nil
	}

	out := domain.Outcome{Status: domain.OutcomeCompleted}

	if pr.Merged {
		n, found, err := notification.Decode(pr.Body)
		if err != nil {
			return domain.Outcome{}, err
		}
		if found {
			err := merge.WithSession(ctx, r.Processor, n.Parameters, n.ConfigPath, func(s merge.Session) error {
				return s.ProcessMerge(ctx, n.Fields, n.Options)
			})
			if err != nil {
				return domain.Outcome{}, err
			}
			out.MergeProcessed = true
			r.Log.Infof("merge processed for %s/%s#%d (%s)", ev.Owner, ev.Repo, ev.Number, n.ConfigPath)
		}
	}

	if pr.State == domain.StateClosed {
		if err := r.Cleaner.Delete(ctx, ev.Owner, ev.Repo, pr.HeadBranch); err != nil {
			return domain.Outcome{}, err
		}
		out.BranchDeleted = true
		r.Log.Infof("deleted branch %s on %s/%s", pr.HeadBranch, ev.Owner, ev.Repo)
	}
	return out, nil
}

// emit never lets a sink failure reach the caller.
func (r *Reconciler) emit(action string) {
	defer func() {
		if rec := recover(); rec != nil {
			r.Log.Errorf("telemetry %s/%s: %v", telemetry.CategoryHooks, action, rec)
		}
	}()
	r.Sink.Emit(telemetry.CategoryHooks, action)
}
