package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"

	"sangamam/backend/models"
)

// FileStore keeps each entity in one pretty-printed JSON file under dir,
// shaped as {"<entityName>": [ ...records ]}. Reads absorb every failure: a
// missing or corrupt file is an empty store, never an error. Writes rewrite
// the whole file; there is no partial-write protection, and concurrent
// processes still race with last-write-wins. Within this process a mutex
// serializes access.
type FileStore struct {
	dir string
	log *logrus.Logger
	mu  sync.Mutex
}

// NewFileStore returns a store rooted at dir. The directory is created on
// first write, not here.
func NewFileStore(dir string, log *logrus.Logger) *FileStore {
	return &FileStore{dir: dir, log: log}
}

const (
	projectsFileName    = "projects.json"
	highlightsFileName  = "highlights.json"
	powerStonesFileName = "power-stones.json"
	bulletinsFileName   = "bulletins.json"
	leaderboardFileName = "leaderboard.json"
)

type projectsFile struct {
	Projects []models.Project `json:"projects"`
}

type highlightsFile struct {
	Highlights []models.Highlight `json:"highlights"`
}

type powerStonesFile struct {
	PowerStones []models.PowerStone `json:"powerStones"`
}

type bulletinsFile struct {
	Bulletins []models.Bulletin `json:"bulletins"`
}

type leaderboardFile struct {
	Leaderboard []models.LeaderboardEntry `json:"leaderboard"`
}

// read loads name into v. Any failure leaves v untouched so the caller sees
// the empty default.
func (s *FileStore) read(name string, v interface{}) {
	path := filepath.Join(s.dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	if err := json.Unmarshal(data, v); err != nil {
		s.log.WithFields(logrus.Fields{"file": path, "error": err.Error()}).
			Debug("file store: unreadable document, treating as empty")
	}
}

func (s *FileStore) write(name string, v interface{}) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// Provider names the backend.
func (s *FileStore) Provider() string { return "file" }

// Health reports connected=false: the remote document store is what
// "connected" means, even though the file store is serving.
func (s *FileStore) Health() Health {
	n, _ := s.CountProjects()
	return Health{Connected: false, Provider: s.Provider(), Count: n}
}

func (s *FileStore) ListProjects(projectType string) ([]models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var doc projectsFile
	s.read(projectsFileName, &doc)
	out := doc.Projects
	if projectType != "" {
		out = nil
		for _, p := range doc.Projects {
			if p.Type == projectType {
				out = append(out, p)
			}
		}
	}
	models.SortProjects(out)
	return out, nil
}

func (s *FileStore) UpsertProject(p models.Project) (models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var doc projectsFile
	s.read(projectsFileName, &doc)
	doc.Projects = replaceByKey(doc.Projects, p, func(r models.Project) string { return r.ID })
	if err := s.write(projectsFileName, &doc); err != nil {
		return models.Project{}, err
	}
	return p, nil
}

func (s *FileStore) DeleteProject(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var doc projectsFile
	s.read(projectsFileName, &doc)
	kept := doc.Projects[:0:0]
	for _, p := range doc.Projects {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(doc.Projects) {
		return false, nil
	}
	doc.Projects = kept
	if err := s.write(projectsFileName, &doc); err != nil {
		return false, err
	}
	return true, nil
}

func (s *FileStore) CountProjects() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var doc projectsFile
	s.read(projectsFileName, &doc)
	return int64(len(doc.Projects)), nil
}

func (s *FileStore) ListHighlights() ([]models.Highlight, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var doc highlightsFile
	s.read(highlightsFileName, &doc)
	models.SortHighlights(doc.Highlights)
	return doc.Highlights, nil
}

func (s *FileStore) UpsertHighlight(h models.Highlight) (models.Highlight, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var doc highlightsFile
	s.read(highlightsFileName, &doc)
	doc.Highlights = replaceByKey(doc.Highlights, h, func(r models.Highlight) string { return r.ID })
	if err := s.write(highlightsFileName, &doc); err != nil {
		return models.Highlight{}, err
	}
	return h, nil
}

func (s *FileStore) DeleteHighlight(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var doc highlightsFile
	s.read(highlightsFileName, &doc)
	kept := doc.Highlights[:0:0]
	for _, h := range doc.Highlights {
		if h.ID != id {
			kept = append(kept, h)
		}
	}
	if len(kept) == len(doc.Highlights) {
		return false, nil
	}
	doc.Highlights = kept
	if err := s.write(highlightsFileName, &doc); err != nil {
		return false, err
	}
	return true, nil
}

func (s *FileStore) CountHighlights() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var doc highlightsFile
	s.read(highlightsFileName, &doc)
	return int64(len(doc.Highlights)), nil
}

func (s *FileStore) ListPowerStones() ([]models.PowerStone, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var doc powerStonesFile
	s.read(powerStonesFileName, &doc)
	models.SortPowerStones(doc.PowerStones)
	return doc.PowerStones, nil
}

func (s *FileStore) UpsertPowerStone(stone models.PowerStone) (models.PowerStone, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var doc powerStonesFile
	s.read(powerStonesFileName, &doc)
	// The slot is the upsert key, but ids stay unique store-wide: a stone in
	// another slot already holding this id mirrors a primary-key violation
	// in the document store.
	for _, existing := range doc.PowerStones {
		if existing.ID == stone.ID && existing.Slot != stone.Slot {
			return models.PowerStone{}, ErrDuplicateKey
		}
	}
	replaced := false
	for i, existing := range doc.PowerStones {
		if existing.Slot == stone.Slot {
			doc.PowerStones[i] = stone
			replaced = true
			break
		}
	}
	if !replaced {
		doc.PowerStones = append(doc.PowerStones, stone)
	}
	if err := s.write(powerStonesFileName, &doc); err != nil {
		return models.PowerStone{}, err
	}
	return stone, nil
}

func (s *FileStore) DeletePowerStone(slot int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var doc powerStonesFile
	s.read(powerStonesFileName, &doc)
	kept := doc.PowerStones[:0:0]
	for _, stone := range doc.PowerStones {
		if stone.Slot != slot {
			kept = append(kept, stone)
		}
	}
	if len(kept) == len(doc.PowerStones) {
		return false, nil
	}
	doc.PowerStones = kept
	if err := s.write(powerStonesFileName, &doc); err != nil {
		return false, err
	}
	return true, nil
}

func (s *FileStore) ListBulletins(lang string) ([]models.Bulletin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var doc bulletinsFile
	s.read(bulletinsFileName, &doc)
	out := doc.Bulletins
	if lang != "" {
		out = nil
		for _, b := range doc.Bulletins {
			if b.Lang == lang {
				out = append(out, b)
			}
		}
	}
	models.SortBulletins(out)
	return out, nil
}

func (s *FileStore) UpsertBulletin(b models.Bulletin) (models.Bulletin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var doc bulletinsFile
	s.read(bulletinsFileName, &doc)
	doc.Bulletins = replaceByKey(doc.Bulletins, b, func(r models.Bulletin) string { return r.ID })
	if err := s.write(bulletinsFileName, &doc); err != nil {
		return models.Bulletin{}, err
	}
	return b, nil
}

func (s *FileStore) DeleteBulletin(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var doc bulletinsFile
	s.read(bulletinsFileName, &doc)
	kept := doc.Bulletins[:0:0]
	for _, b := range doc.Bulletins {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	if len(kept) == len(doc.Bulletins) {
		return false, nil
	}
	doc.Bulletins = kept
	if err := s.write(bulletinsFileName, &doc); err != nil {
		return false, err
	}
	return true, nil
}

func (s *FileStore) ListLeaderboard(game string, limit int) ([]models.LeaderboardEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var doc leaderboardFile
	s.read(leaderboardFileName, &doc)
	out := doc.Leaderboard
	if game != "" {
		out = nil
		for _, e := range doc.Leaderboard {
			if e.Game == game {
				out = append(out, e)
			}
		}
	}
	models.SortLeaderboard(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *FileStore) InsertLeaderboardEntry(e models.LeaderboardEntry) (models.LeaderboardEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var doc leaderboardFile
	s.read(leaderboardFileName, &doc)
	doc.Leaderboard = append(doc.Leaderboard, e)
	if err := s.write(leaderboardFileName, &doc); err != nil {
		return models.LeaderboardEntry{}, err
	}
	return e, nil
}

// replaceByKey swaps the record whose key matches rec's, or appends rec when
// no record has that key yet.
func replaceByKey[T any](records []T, rec T, key func(T) string) []T {
	for i, existing := range records {
		if key(existing) == key(rec) {
			records[i] = rec
			return records
		}
	}
	return append(records, rec)
}
