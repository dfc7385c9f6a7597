package store

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	postgrest "github.com/supabase-community/postgrest-go"

	"sangamam/backend/models"
)

const (
	projectsTable    = "projects"
	highlightsTable  = "highlights"
	powerStonesTable = "power_stones"
	bulletinsTable   = "bulletins"
	leaderboardTable = "leaderboard_entries"
)

// DocumentStore talks to the hosted document database over PostgREST. The
// client is built on first use; PostgREST is plain HTTP, so "connecting" is
// cheap and there is nothing to keep alive between calls.
type DocumentStore struct {
	url    string
	key    string
	schema string
	log    *logrus.Logger

	once   sync.Once
	client *postgrest.Client
}

// NewDocumentStore wires a store against the configured PostgREST endpoint.
// The second return is false when the URL or service key is missing; the
// caller then falls through to another backend.
func NewDocumentStore(opts Options, log *logrus.Logger) (*DocumentStore, bool) {
	if opts.SupabaseURL == "" || opts.SupabaseKey == "" {
		return nil, false
	}
	schema := opts.Schema
	if schema == "" {
		schema = "public"
	}
	return &DocumentStore{url: opts.SupabaseURL, key: opts.SupabaseKey, schema: schema, log: log}, true
}

func (s *DocumentStore) rest() *postgrest.Client {
	s.once.Do(func() {
		s.client = postgrest.NewClient(s.url+"/rest/v1", s.schema, map[string]string{
			"apikey":        s.key,
			"Authorization": fmt.Sprintf("Bearer %s", s.key),
		})
		s.ensureIndexes()
	})
	return s.client
}

// ensureIndexes asks the database to make sure each collection has its
// natural-key index. The RPC is optional: a database without the function, or
// an unreachable one, only costs a debug line. Nothing here may fail a
// request.
func (s *DocumentStore) ensureIndexes() {
	indexes := []struct {
		table string
		key   string
	}{
		{projectsTable, "id"},
		{highlightsTable, "id"},
		{powerStonesTable, "slot"},
		{bulletinsTable, "id"},
		{leaderboardTable, "id"},
	}
	for _, ix := range indexes {
		s.client.Rpc("ensure_content_indexes", "", map[string]string{
			"table":      ix.table,
			"key_column": ix.key,
		})
		if s.client.ClientError != nil {
			s.log.WithFields(logrus.Fields{
				"table": ix.table,
				"error": s.client.ClientError.Error(),
			}).Debug("Index bootstrap skipped")
			s.client.ClientError = nil
		}
	}
}

// Provider names the backend.
func (s *DocumentStore) Provider() string { return "supabase" }

// Health probes the database with a head-only count of projects.
func (s *DocumentStore) Health() Health {
	h := Health{Provider: s.Provider()}
	n, err := s.CountProjects()
	if err != nil {
		return h
	}
	h.Connected = true
	h.Count = n
	return h
}

func (s *DocumentStore) ListProjects(projectType string) ([]models.Project, error) {
	q := s.rest().From(projectsTable).Select("*", "", false)
	if projectType != "" {
		q = q.Eq("type", projectType)
	}
	var out []models.Project
	if _, err := q.Order("title", &postgrest.OrderOpts{Ascending: true}).ExecuteTo(&out); err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	models.SortProjects(out)
	return out, nil
}

func (s *DocumentStore) UpsertProject(p models.Project) (models.Project, error) {
	var out []models.Project
	_, err := s.rest().From(projectsTable).Insert(p, true, "id", "representation", "").ExecuteTo(&out)
	if err != nil {
		if isDuplicateKey(err) {
			return models.Project{}, ErrDuplicateKey
		}
		return models.Project{}, fmt.Errorf("failed to upsert project: %w", err)
	}
	if len(out) > 0 {
		return out[0], nil
	}
	return p, nil
}

func (s *DocumentStore) DeleteProject(id string) (bool, error) {
	var out []models.Project
	_, err := s.rest().From(projectsTable).Delete("representation", "").Eq("id", id).ExecuteTo(&out)
	if err != nil {
		return false, fmt.Errorf("failed to delete project: %w", err)
	}
	return len(out) > 0, nil
}

func (s *DocumentStore) CountProjects() (int64, error) {
	_, n, err := s.rest().From(projectsTable).Select("*", "exact", true).Execute()
	if err != nil {
		return 0, fmt.Errorf("failed to count projects: %w", err)
	}
	return n, nil
}

func (s *DocumentStore) ListHighlights() ([]models.Highlight, error) {
	var out []models.Highlight
	_, err := s.rest().From(highlightsTable).Select("*", "", false).
		Order("order", &postgrest.OrderOpts{Ascending: true}).ExecuteTo(&out)
	if err != nil {
		return nil, fmt.Errorf("failed to list highlights: %w", err)
	}
	models.SortHighlights(out)
	return out, nil
}

func (s *DocumentStore) UpsertHighlight(h models.Highlight) (models.Highlight, error) {
	var out []models.Highlight
	_, err := s.rest().From(highlightsTable).Insert(h, true, "id", "representation", "").ExecuteTo(&out)
	if err != nil {
		if isDuplicateKey(err) {
			return models.Highlight{}, ErrDuplicateKey
		}
		return models.Highlight{}, fmt.Errorf("failed to upsert highlight: %w", err)
	}
	if len(out) > 0 {
		return out[0], nil
	}
	return h, nil
}

func (s *DocumentStore) DeleteHighlight(id string) (bool, error) {
	var out []models.Highlight
	_, err := s.rest().From(highlightsTable).Delete("representation", "").Eq("id", id).ExecuteTo(&out)
	if err != nil {
		return false, fmt.Errorf("failed to delete highlight: %w", err)
	}
	return len(out) > 0, nil
}

func (s *DocumentStore) CountHighlights() (int64, error) {
	_, n, err := s.rest().From(highlightsTable).Select("*", "exact", true).Execute()
	if err != nil {
		return 0, fmt.Errorf("failed to count highlights: %w", err)
	}
	return n, nil
}

func (s *DocumentStore) ListPowerStones() ([]models.PowerStone, error) {
	var out []models.PowerStone
	_, err := s.rest().From(powerStonesTable).Select("*", "", false).
		Order("slot", &postgrest.OrderOpts{Ascending: true}).ExecuteTo(&out)
	if err != nil {
		return nil, fmt.Errorf("failed to list power stones: %w", err)
	}
	models.SortPowerStones(out)
	return out, nil
}

func (s *DocumentStore) UpsertPowerStone(stone models.PowerStone) (models.PowerStone, error) {
	var out []models.PowerStone
	_, err := s.rest().From(powerStonesTable).Insert(stone, true, "slot", "representation", "").ExecuteTo(&out)
	if err != nil {
		if isDuplicateKey(err) {
			return models.PowerStone{}, ErrDuplicateKey
		}
		return models.PowerStone{}, fmt.Errorf("failed to upsert power stone: %w", err)
	}
	if len(out) > 0 {
		return out[0], nil
	}
	return stone, nil
}

func (s *DocumentStore) DeletePowerStone(slot int) (bool, error) {
	var out []models.PowerStone
	_, err := s.rest().From(powerStonesTable).Delete("representation", "").
		Eq("slot", fmt.Sprintf("%d", slot)).ExecuteTo(&out)
	if err != nil {
		return false, fmt.Errorf("failed to delete power stone: %w", err)
	}
	return len(out) > 0, nil
}

func (s *DocumentStore) ListBulletins(lang string) ([]models.Bulletin, error) {
	q := s.rest().From(bulletinsTable).Select("*", "", false)
	if lang != "" {
		q = q.Eq("lang", lang)
	}
	var out []models.Bulletin
	if _, err := q.Order("date", &postgrest.OrderOpts{Ascending: false}).ExecuteTo(&out); err != nil {
		return nil, fmt.Errorf("failed to list bulletins: %w", err)
	}
	models.SortBulletins(out)
	return out, nil
}

func (s *DocumentStore) UpsertBulletin(b models.Bulletin) (models.Bulletin, error) {
	var out []models.Bulletin
	_, err := s.rest().From(bulletinsTable).Insert(b, true, "id", "representation", "").ExecuteTo(&out)
	if err != nil {
		if isDuplicateKey(err) {
			return models.Bulletin{}, ErrDuplicateKey
		}
		return models.Bulletin{}, fmt.Errorf("failed to upsert bulletin: %w", err)
	}
	if len(out) > 0 {
		return out[0], nil
	}
	return b, nil
}

func (s *DocumentStore) DeleteBulletin(id string) (bool, error) {
	var out []models.Bulletin
	_, err := s.rest().From(bulletinsTable).Delete("representation", "").Eq("id", id).ExecuteTo(&out)
	if err != nil {
		return false, fmt.Errorf("failed to delete bulletin: %w", err)
	}
	return len(out) > 0, nil
}

func (s *DocumentStore) ListLeaderboard(game string, limit int) ([]models.LeaderboardEntry, error) {
	q := s.rest().From(leaderboardTable).Select("*", "", false)
	if game != "" {
		q = q.Eq("game", game)
	}
	fb := q.Order("score", &postgrest.OrderOpts{Ascending: false})
	if limit > 0 {
		fb = fb.Limit(limit, "")
	}
	var out []models.LeaderboardEntry
	if _, err := fb.ExecuteTo(&out); err != nil {
		return nil, fmt.Errorf("failed to list leaderboard: %w", err)
	}
	models.SortLeaderboard(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *DocumentStore) InsertLeaderboardEntry(e models.LeaderboardEntry) (models.LeaderboardEntry, error) {
	var out []models.LeaderboardEntry
	_, err := s.rest().From(leaderboardTable).Insert(e, false, "", "representation", "").ExecuteTo(&out)
	if err != nil {
		if isDuplicateKey(err) {
			return models.LeaderboardEntry{}, ErrDuplicateKey
		}
		return models.LeaderboardEntry{}, fmt.Errorf("failed to insert leaderboard entry: %w", err)
	}
	if len(out) > 0 {
		return out[0], nil
	}
	return e, nil
}
