package usecase

import (
	"context"
	"strings"

	"github.com/you/staticman-prhook/internal/repository"
)

const AutomationBranchPrefix = "staticman_"

// IsAutomationBranch reports whether name was created by the commenting automation.
func IsAutomationBranch(name string) bool {
	return strings.HasPrefix(name, AutomationBranchPrefix)
}

type BranchCleaner struct {
	Host repository.Host
}

// Delete removes heads/<branch>. Failures are returned to the caller without retry.
func (c BranchCleaner) Delete(ctx context.Context, owner, repo, branch string) error {
	return c.Host.DeleteReference(ctx, owner, repo, "heads/"+branch)
}
