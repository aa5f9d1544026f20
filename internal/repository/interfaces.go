package repository

import (
	"context"
	"errors"

	"github.com/you/staticman-prhook/internal/domain"
)

var ErrNotFound = errors.New("not found")

// Host is the remote repository host holding the pull requests.
type Host interface {
	GetPullRequest(ctx context.Context, owner, repo string, number int) (domain.PullRequestSnapshot, error)
	DeleteReference(ctx context.Context, owner, repo, ref string) error
}

type DeliveryLog interface {
	RecordDelivery(ctx context.Context, d domain.Delivery) error
	GetDelivery(ctx context.Context, id string) (domain.Delivery, error)
}
