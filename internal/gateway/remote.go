package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/alexanderramin/pinboard/internal/domain"
	"github.com/alexanderramin/pinboard/internal/dto"
)

// Remote talks JSON to a pinboard server. Each call gets its own timeout
// and is never retried; the caller decides what a failure means.
type Remote struct {
	baseURL string
	author  string
	timeout time.Duration
	http    *http.Client
}

func NewRemote(baseURL, author string, timeout time.Duration) *Remote {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Remote{
		baseURL: baseURL,
		author:  author,
		timeout: timeout,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
	}
}

func notePath(id string) string {
	return "/api/v1/notes/" + url.PathEscape(id)
}

func (r *Remote) ListNotes(ctx context.Context) ([]*domain.Note, error) {
	var out []dto.NoteResponse
	if err := r.do(ctx, http.MethodGet, "/api/v1/notes", nil, &out); err != nil {
		return nil, err
	}
	notes := make([]*domain.Note, 0, len(out))
	for _, n := range out {
		notes = append(notes, n.ToDomain())
	}
	return notes, nil
}

func (r *Remote) CreateNote(ctx context.Context, n *domain.Note) (*domain.Note, error) {
	var out dto.NoteResponse
	if err := r.do(ctx, http.MethodPost, "/api/v1/notes", dto.NewCreateNoteRequest(n), &out); err != nil {
		return nil, err
	}
	return out.ToDomain(), nil
}

func (r *Remote) UpdateNote(ctx context.Context, id string, patch domain.NotePatch) (*domain.Note, error) {
	var out dto.NoteResponse
	if err := r.do(ctx, http.MethodPatch, notePath(id), dto.NewUpdateNoteRequest(patch), &out); err != nil {
		return nil, err
	}
	return out.ToDomain(), nil
}

func (r *Remote) UpdatePosition(ctx context.Context, id string, x, y float64) (*domain.Note, error) {
	var out dto.NoteResponse
	body := dto.MoveNoteRequest{X: &x, Y: &y}
	if err := r.do(ctx, http.MethodPut, notePath(id)+"/position", body, &out); err != nil {
		return nil, err
	}
	return out.ToDomain(), nil
}

func (r *Remote) DeleteNote(ctx context.Context, id string) error {
	return r.do(ctx, http.MethodDelete, notePath(id), nil, nil)
}

func (r *Remote) ListTags(ctx context.Context) ([]domain.Tag, error) {
	var out []dto.TagResponse
	if err := r.do(ctx, http.MethodGet, "/api/v1/tags", nil, &out); err != nil {
		return nil, err
	}
	tags := make([]domain.Tag, 0, len(out))
	for _, t := range out {
		tags = append(tags, t.ToDomain())
	}
	return tags, nil
}

func (r *Remote) CreateTag(ctx context.Context, t *domain.Tag) (*domain.Tag, error) {
	var out dto.TagResponse
	req := dto.CreateTagRequest{ID: t.ID, Name: t.Name, Color: t.Color}
	if err := r.do(ctx, http.MethodPost, "/api/v1/tags", req, &out); err != nil {
		return nil, err
	}
	tag := out.ToDomain()
	return &tag, nil
}

func (r *Remote) DeleteTag(ctx context.Context, id string) error {
	return r.do(ctx, http.MethodDelete, "/api/v1/tags/"+url.PathEscape(id), nil, nil)
}

// Available checks whether the server answers its health probe.
func (r *Remote) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/healthz", nil)
	if err != nil {
		return false
	}
	resp, err := r.http.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func (r *Remote) do(ctx context.Context, method, path string, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if r.author != "" {
		req.Header.Set(dto.AuthorHeader, r.author)
	}

	resp, err := r.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	var env dto.Response[json.RawMessage]
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := env.Message
		if decodeErr != nil || msg == "" {
			msg = string(bytes.TrimSpace(raw))
		}
		return &StatusError{Code: resp.StatusCode, Message: msg}
	}
	if decodeErr != nil {
		return fmt.Errorf("decoding response: %w", decodeErr)
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decoding %s %s data: %w", method, path, err)
		}
	}
	return nil
}
