package backend

import (
	"context"
	"slices"
	"strconv"
	"strings"
)

// BuildArgs adapts req to the arguments d declared. Parameters the backend
// does not take are dropped even when req sets them.
func BuildArgs(d Descriptor, req Request) Args {
	args := Args{ParamContent: req.Content}

	if d.Supports(ParamExpiry) {
		if req.Expiry != nil {
			args[ParamExpiry] = *req.Expiry
		} else {
			args[ParamExpiry] = d.DefaultExpiry()
		}
	}
	if d.Supports(ParamSyntax) {
		syntax := req.Syntax
		if syntax == "" {
			syntax = d.SyntaxDefault
		}
		if code, ok := d.SyntaxChoices[syntax]; ok {
			syntax = code
		}
		args[ParamSyntax] = syntax
	}
	if d.Supports(ParamTitle) {
		args[ParamTitle] = req.Title
	}
	if d.Supports(ParamUsername) {
		args[ParamUsername] = req.Username
	}
	return args
}

// Paste sends req to b and returns the URL the backend produced. Failures
// come back as *PasteSubmissionError; nothing is retried.
func Paste(ctx context.Context, b Backend, req Request) (string, error) {
	d := b.Descriptor()
	url, err := b.Paste(ctx, BuildArgs(d, req))
	if err != nil {
		return "", &PasteSubmissionError{Backend: d.Name, Err: err}
	}
	return url, nil
}

// ParseExpiry validates a user-supplied expiry against d.ExpiryDays. An empty
// string selects the default expiry.
func ParseExpiry(d Descriptor, raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return d.DefaultExpiry(), nil
	}
	days, err := strconv.Atoi(raw)
	if err != nil || !slices.Contains(d.ExpiryDays, days) {
		return 0, &InvalidExpiryError{Value: raw, Choices: d.ExpiryDays}
	}
	return days, nil
}

// SyntaxLabels returns the syntax choice labels sorted case-insensitively.
func SyntaxLabels(d Descriptor) []string {
	labels := make([]string, 0, len(d.SyntaxChoices))
	for label := range d.SyntaxChoices {
		labels = append(labels, label)
	}
	slices.SortFunc(labels, func(a, b string) int {
		return strings.Compare(strings.ToLower(a), strings.ToLower(b))
	})
	return labels
}
