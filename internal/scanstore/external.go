package scanstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ferrylab/tagmind/internal/model"
)

// wireLayout is the timestamp format the state holder accepts: whole seconds,
// no fractional part, no timezone offset. 19 characters.
const wireLayout = "2006-01-02T15:04:05"

// unsetSentinel marks an entity whose value has never been set. The state
// holder reports it in more than one capitalization, so comparisons are
// case-insensitive.
const unsetSentinel = "unknown"

// Entity name suffixes, one pair of entities per reminder.
const (
	suffixLastScan  = "_last_scan"
	suffixCleanedBy = "_last_cleaned_by"
)

// ExternalStore is the external-authority backend. Timestamps and actor
// attribution live in named entities of a remote state-holder service; this
// adapter only reads and forwards, it owns no state. Consistency across the
// service boundary is whatever the remote service guarantees.
type ExternalStore struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

var _ Store = (*ExternalStore)(nil)

// stateEntity is the wire shape of one remote entity.
type stateEntity struct {
	EntityID string `json:"entity_id,omitempty"`
	State    string `json:"state"`
}

// NewExternalStore creates an adapter for the state-holder service at
// baseURL (e.g. "http://hub.local:8123"). When token is non-empty it is sent
// as a bearer token on every request.
func NewExternalStore(baseURL, token string) *ExternalStore {
	return &ExternalStore{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *ExternalStore) Get(ctx context.Context, name string) (model.Record, error) {
	var rec model.Record

	state, ok, err := s.getState(ctx, name+suffixLastScan)
	if err != nil {
		return model.Record{}, err
	}
	if ok && !strings.EqualFold(state, unsetSentinel) {
		if t, perr := time.Parse(wireLayout, state); perr == nil {
			rec.LastScan = &t
		}
		// An unparseable state degrades to never-scanned.
	}

	// Actor attribution is optional; a missing entity or an unset sentinel
	// both read as no actor.
	if actor, ok, err := s.getState(ctx, name+suffixCleanedBy); err == nil && ok {
		if actor != "" && !strings.EqualFold(actor, unsetSentinel) {
			rec.Actor = actor
		}
	}

	return rec, nil
}

func (s *ExternalStore) Set(ctx context.Context, name string, t time.Time) error {
	return s.putState(ctx, name+suffixLastScan, t.Format(wireLayout))
}

// SetActor forwards who performed the scan to the actor entity.
func (s *ExternalStore) SetActor(ctx context.Context, name, actor string) error {
	if actor == "" {
		return nil
	}
	return s.putState(ctx, name+suffixCleanedBy, actor)
}

// Ensure provisions the pair of state-holder entities for a reminder if they
// do not exist yet, seeding both with the unset sentinel.
func (s *ExternalStore) Ensure(ctx context.Context, name string) error {
	for _, entity := range []string{name + suffixLastScan, name + suffixCleanedBy} {
		_, ok, err := s.getState(ctx, entity)
		if err != nil {
			return err
		}
		if ok {
			continue
		}
		if err := s.putState(ctx, entity, unsetSentinel); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes both entities. Missing entities are not an error.
func (s *ExternalStore) Delete(ctx context.Context, name string) error {
	for _, entity := range []string{name + suffixLastScan, name + suffixCleanedBy} {
		req, err := http.NewRequestWithContext(ctx, http.MethodDelete, s.stateURL(entity), nil)
		if err != nil {
			return err
		}
		resp, err := s.do(req)
		if err != nil {
			return fmt.Errorf("delete state %s: %w", entity, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNotFound {
			return fmt.Errorf("delete state %s: unexpected status %d", entity, resp.StatusCode)
		}
	}
	return nil
}

func (s *ExternalStore) Close() error { return nil }

func (s *ExternalStore) stateURL(entity string) string {
	return s.baseURL + "/api/states/" + url.PathEscape(entity)
}

// getState reads one entity. The second return value is false when the
// entity does not exist.
func (s *ExternalStore) getState(ctx context.Context, entity string) (string, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.stateURL(entity), nil)
	if err != nil {
		return "", false, err
	}
	resp, err := s.do(req)
	if err != nil {
		return "", false, fmt.Errorf("get state %s: %w", entity, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return "", false, fmt.Errorf("get state %s: unexpected status %d", entity, resp.StatusCode)
	}

	var ent stateEntity
	if err := json.NewDecoder(resp.Body).Decode(&ent); err != nil {
		// Treat an unreadable body like a missing entity.
		return "", false, nil
	}
	return ent.State, true, nil
}

func (s *ExternalStore) putState(ctx context.Context, entity, state string) error {
	body, err := json.Marshal(stateEntity{State: state})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.stateURL(entity), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.do(req)
	if err != nil {
		return fmt.Errorf("set state %s: %w", entity, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("set state %s: status %d: %s", entity, resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	return nil
}

func (s *ExternalStore) do(req *http.Request) (*http.Response, error) {
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	return s.httpClient.Do(req)
}
