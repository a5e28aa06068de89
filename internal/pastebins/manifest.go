package pastebins

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/qastetray/cli/internal/backend"
)

// Request encodings a manifest can choose from.
const (
	EncodingRaw  = "raw"
	EncodingForm = "form"
	EncodingJSON = "json"
)

// Response types a manifest can choose from.
const (
	ResponseText = "text"
	ResponseJSON = "json"
)

// Manifest is a declarative backend: a descriptor plus a recipe for
// building the HTTP request and reading the URL back out of the response.
type Manifest struct {
	backend.Descriptor `yaml:",inline"`
	Request            RequestSpec  `json:"request" yaml:"request"`
	Response           ResponseSpec `json:"response" yaml:"response"`
}

type RequestSpec struct {
	Method   string            `json:"method" yaml:"method"`
	Endpoint string            `json:"endpoint" yaml:"endpoint"`
	Encoding string            `json:"encoding" yaml:"encoding"`
	Fields   map[string]string `json:"fields" yaml:"fields"`
	Headers  map[string]string `json:"headers" yaml:"headers"`
}

type ResponseSpec struct {
	Type   string `json:"type" yaml:"type"`
	Field  string `json:"field" yaml:"field"`
	Prefix string `json:"prefix" yaml:"prefix"`
}

func (m *Manifest) applyDefaults() {
	if m.Request.Method == "" {
		m.Request.Method = http.MethodPost
	}
	if m.Request.Encoding == "" {
		m.Request.Encoding = EncodingRaw
	}
	if m.Response.Type == "" {
		m.Response.Type = ResponseText
	}
}

// Validate checks the descriptor and the request recipe.
func (m *Manifest) Validate() error {
	if err := m.Descriptor.Validate(); err != nil {
		return err
	}
	if m.Request.Endpoint == "" {
		return fmt.Errorf("request.endpoint is required")
	}
	switch m.Request.Encoding {
	case EncodingRaw, EncodingForm, EncodingJSON:
	default:
		return fmt.Errorf("unknown request encoding %q", m.Request.Encoding)
	}
	switch m.Response.Type {
	case ResponseText:
	case ResponseJSON:
		if m.Response.Field == "" {
			return fmt.Errorf("response.field is required for json responses")
		}
	default:
		return fmt.Errorf("unknown response type %q", m.Response.Type)
	}
	return nil
}

// ManifestBackend sends pastes as described by a Manifest.
type ManifestBackend struct {
	manifest  Manifest
	client    *http.Client
	userAgent string
}

func NewManifestBackend(m Manifest, opts Options) (*ManifestBackend, error) {
	m.applyDefaults()
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &ManifestBackend{manifest: m, client: opts.client(), userAgent: opts.UserAgent}, nil
}

func (b *ManifestBackend) Descriptor() backend.Descriptor {
	return b.manifest.Descriptor
}

func (b *ManifestBackend) Paste(ctx context.Context, args backend.Args) (string, error) {
	req := b.manifest.Request
	contentType, body, err := b.encode(args)
	if err != nil {
		return "", err
	}

	data, err := send(ctx, b.client, strings.ToUpper(req.Method), req.Endpoint, contentType, b.userAgent, req.Headers, body)
	if err != nil {
		return "", err
	}
	return b.extract(data)
}

// fieldName returns the wire name of p. Unmapped params keep their own name.
func (b *ManifestBackend) fieldName(p backend.Param) string {
	if name, ok := b.manifest.Request.Fields[string(p)]; ok {
		return name
	}
	return string(p)
}

func (b *ManifestBackend) encode(args backend.Args) (string, io.Reader, error) {
	switch b.manifest.Request.Encoding {
	case EncodingForm:
		form := url.Values{}
		for p, v := range args {
			form.Set(b.fieldName(p), formatValue(v))
		}
		return "application/x-www-form-urlencoded", strings.NewReader(form.Encode()), nil
	case EncodingJSON:
		doc := make(map[string]any, len(args))
		for p, v := range args {
			doc[b.fieldName(p)] = v
		}
		data, err := json.Marshal(doc)
		if err != nil {
			return "", nil, fmt.Errorf("failed to encode request: %w", err)
		}
		return "application/json", bytes.NewReader(data), nil
	default:
		return "text/plain; charset=utf-8", strings.NewReader(args.Content()), nil
	}
}

func (b *ManifestBackend) extract(data []byte) (string, error) {
	resp := b.manifest.Response
	value := strings.TrimSpace(string(data))
	if resp.Type == ResponseJSON {
		var doc map[string]any
		if err := json.Unmarshal(data, &doc); err != nil {
			return "", fmt.Errorf("failed to parse response: %w", err)
		}
		v, ok := doc[resp.Field]
		if !ok {
			return "", fmt.Errorf("response has no %q field", resp.Field)
		}
		value = formatValue(v)
	}
	if value == "" {
		return "", fmt.Errorf("empty response")
	}
	return resp.Prefix + value, nil
}

func formatValue(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	default:
		return fmt.Sprint(v)
	}
}

// YAMLLoader returns a backend.Loader for .yaml and .yml manifests.
func YAMLLoader(opts Options) backend.Loader {
	return func(path string) (backend.Backend, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read manifest: %w", err)
		}
		var m Manifest
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("failed to parse manifest: %w", err)
		}
		return NewManifestBackend(m, opts)
	}
}

// JSONLoader returns a backend.Loader for .json manifests.
func JSONLoader(opts Options) backend.Loader {
	return func(path string) (backend.Backend, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read manifest: %w", err)
		}
		var m Manifest
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("failed to parse manifest: %w", err)
		}
		return NewManifestBackend(m, opts)
	}
}
