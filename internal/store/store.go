// Package store is the persistence layer behind the API handlers. Records
// live either in a remote Supabase/PostgREST database or in local JSON files,
// behind one Store interface so the handlers never branch on the backend.
package store

import (
	"github.com/sirupsen/logrus"

	"sangamam/backend/models"
)

// Store is implemented by every persistence backend. List filters take the
// zero value ("" or 0) to mean "no filter"; callers are expected to have
// normalized unrecognized enum values to the zero value already. Upserts are
// keyed by the entity's natural key (id, or slot for power stones) and
// replace any existing record with that key.
type Store interface {
	// Provider names the backend ("supabase", "file" or "none").
	Provider() string
	// Health reports the triple served by GET /api/health/db.
	Health() Health

	ListProjects(projectType string) ([]models.Project, error)
	UpsertProject(p models.Project) (models.Project, error)
	DeleteProject(id string) (bool, error)
	CountProjects() (int64, error)

	ListHighlights() ([]models.Highlight, error)
	UpsertHighlight(h models.Highlight) (models.Highlight, error)
	DeleteHighlight(id string) (bool, error)
	CountHighlights() (int64, error)

	ListPowerStones() ([]models.PowerStone, error)
	UpsertPowerStone(s models.PowerStone) (models.PowerStone, error)
	DeletePowerStone(slot int) (bool, error)

	ListBulletins(lang string) ([]models.Bulletin, error)
	UpsertBulletin(b models.Bulletin) (models.Bulletin, error)
	DeleteBulletin(id string) (bool, error)

	ListLeaderboard(game string, limit int) ([]models.LeaderboardEntry, error)
	InsertLeaderboardEntry(e models.LeaderboardEntry) (models.LeaderboardEntry, error)
}

// Health is the payload of GET /api/health/db. Connected is true only when
// the remote document store is configured and answering; in file mode it is
// false even though reads and writes work.
type Health struct {
	Connected bool   `json:"connected"`
	Provider  string `json:"provider"`
	Count     int64  `json:"count"`
}

// Options selects and configures the backend. The caller builds this from
// the process configuration; the store package never reads the environment
// itself.
type Options struct {
	// SupabaseURL and SupabaseKey configure the document store. When either
	// is empty the document store is unavailable and the file store is used.
	SupabaseURL string
	SupabaseKey string
	// Schema is the PostgREST schema, "public" when empty.
	Schema string
	// DataDir is the directory for the JSON file fallback. Empty disables
	// the file store.
	DataDir string
	// ProjectsFileFallback additionally consults the file store when a
	// projects read against the document store comes back empty. Off by
	// default; see DESIGN.md.
	ProjectsFileFallback bool
}

// New picks the backend once, at startup. Precedence: document store when
// configured, otherwise the local file store, otherwise a stub that serves
// empty reads and refuses writes.
func New(opts Options, log *logrus.Logger) Store {
	var file *FileStore
	if opts.DataDir != "" {
		file = NewFileStore(opts.DataDir, log)
	}

	if doc, ok := NewDocumentStore(opts, log); ok {
		if opts.ProjectsFileFallback && file != nil {
			log.Info("store: using document store with projects file fallback")
			return &fallbackStore{Store: doc, file: file, log: log}
		}
		log.Info("store: using document store")
		return doc
	}

	if file != nil {
		log.WithField("dir", opts.DataDir).Info("store: document store not configured, using local file store")
		return file
	}

	log.Warn("store: no backend configured; reads are empty and writes will fail")
	return unavailableStore{}
}
