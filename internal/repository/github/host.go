package github

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/go-github/v61/github"
	"golang.org/x/oauth2"

	"github.com/you/staticman-prhook/internal/domain"
	"github.com/you/staticman-prhook/internal/repository"
)

var _ repository.Host = (*Host)(nil)

type Host struct {
	client *github.Client
}

func NewHost(client *github.Client) *Host {
	return &Host{client: client}
}

// NewClient builds a token-authenticated client. A non-empty baseURL points it
// at a GitHub Enterprise instance.
func NewClient(ctx context.Context, token, baseURL string) (*github.Client, error) {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	client := github.NewClient(oauth2.NewClient(ctx, ts))
	if baseURL == "" {
		return client, nil
	}
	return client.WithEnterpriseURLs(baseURL, baseURL)
}

func (h *Host) GetPullRequest(ctx context.Context, owner, repo string, number int) (domain.PullRequestSnapshot, error) {
	pr, _, err := h.client.PullRequests.Get(ctx, owner, repo, number)
	if err != nil {
		return domain.PullRequestSnapshot{}, mapErr(err)
	}
	return domain.PullRequestSnapshot{
		HeadBranch: pr.GetHead().GetRef(),
		Body:       pr.GetBody(),
		Merged:     pr.GetMerged(),
		State:      domain.PRState(pr.GetState()),
	}, nil
}

func (h *Host) DeleteReference(ctx context.Context, owner, repo, ref string) error {
	_, err := h.client.Git.DeleteRef(ctx, owner, repo, ref)
	return mapErr(err)
}

func mapErr(err error) error {
	var rerr *github.ErrorResponse
	if errors.As(err, &rerr) && rerr.Response != nil && rerr.Response.StatusCode == http.StatusNotFound {
		return errors.Join(repository.ErrNotFound, err)
	}
	return err
}
