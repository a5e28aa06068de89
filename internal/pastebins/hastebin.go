package pastebins

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/qastetray/cli/internal/backend"
)

const hastebinBase = "https://hastebin.com/"

// Hastebin posts the raw content and builds the URL from the returned key.
type Hastebin struct {
	base      string
	client    *http.Client
	userAgent string
}

func NewHastebin(opts Options) *Hastebin {
	return &Hastebin{base: hastebinBase, client: opts.client(), userAgent: opts.UserAgent}
}

func (h *Hastebin) Descriptor() backend.Descriptor {
	return backend.Descriptor{
		Name:       "hastebin",
		URL:        h.base,
		ExpiryDays: []int{30},
		PasteArgs:  []backend.Param{backend.ParamContent},
	}
}

func (h *Hastebin) Paste(ctx context.Context, args backend.Args) (string, error) {
	body, err := send(ctx, h.client, http.MethodPost, h.base+"documents", "text/plain; charset=utf-8", h.userAgent, nil, strings.NewReader(args.Content()))
	if err != nil {
		return "", err
	}

	var doc struct {
		Key string `json:"key"`
	}
	if err := json.Unmarshal(body, &doc); err != nil {
		return "", fmt.Errorf("failed to parse hastebin response: %w", err)
	}
	if doc.Key == "" {
		return "", fmt.Errorf("hastebin response has no key")
	}
	return h.base + doc.Key, nil
}
