package pastebins

import (
	"context"
	"fmt"

	"github.com/google/go-github/v74/github"
	"github.com/qastetray/cli/internal/backend"
)

// Gist creates private GitHub gists. The API requires a token; without one
// every paste fails with the API's authentication error.
type Gist struct {
	client *github.Client
}

func NewGist(opts Options) *Gist {
	client := github.NewClient(opts.client())
	if opts.GitHubToken != "" {
		client = client.WithAuthToken(opts.GitHubToken)
	}
	if opts.UserAgent != "" {
		client.UserAgent = opts.UserAgent
	}
	return &Gist{client: client}
}

func (g *Gist) Descriptor() backend.Descriptor {
	return backend.Descriptor{
		Name:       "GitHub Gist",
		URL:        "https://gist.github.com/",
		ExpiryDays: []int{backend.NeverExpires},
		PasteArgs:  []backend.Param{backend.ParamContent, backend.ParamTitle},
	}
}

func (g *Gist) Paste(ctx context.Context, args backend.Args) (string, error) {
	title, _ := args.Title()
	gist := &github.Gist{
		Description: github.Ptr(title),
		Public:      github.Ptr(false),
		Files: map[github.GistFilename]github.GistFile{
			"file.txt": {Content: github.Ptr(args.Content())},
		},
	}

	created, _, err := g.client.Gists.Create(ctx, gist)
	if err != nil {
		return "", fmt.Errorf("failed to create gist: %w", err)
	}
	if created.GetHTMLURL() == "" {
		return "", fmt.Errorf("gist response has no html_url")
	}
	return created.GetHTMLURL(), nil
}
