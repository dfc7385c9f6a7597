package store

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sangamam/backend/models"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestFileStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(t.TempDir(), quietLogger())
}

func TestFileStoreProjects(t *testing.T) {
	s := newTestFileStore(t)

	empty, err := s.ListProjects("")
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = s.UpsertProject(models.Project{
		ID: "p-youth", Type: models.ProjectTypeUpcoming,
		Title: "Youth Wing", Description: "d", Image: "/uploads/youth.jpg",
	})
	require.NoError(t, err)
	_, err = s.UpsertProject(models.Project{
		ID: "p-camp", Type: models.ProjectTypeFlagship,
		Title: "Annual Camp", Description: "d", Image: "/uploads/camp.jpg",
	})
	require.NoError(t, err)

	all, err := s.ListProjects("")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Annual Camp", all[0].Title, "projects sort by title")
	assert.Equal(t, "Youth Wing", all[1].Title)

	flagship, err := s.ListProjects(models.ProjectTypeFlagship)
	require.NoError(t, err)
	require.Len(t, flagship, 1)
	assert.Equal(t, "p-camp", flagship[0].ID)

	n, err := s.CountProjects()
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestFileStoreUpsertReplacesByID(t *testing.T) {
	s := newTestFileStore(t)

	_, err := s.UpsertProject(models.Project{ID: "p1", Type: "flagship", Title: "First", Description: "d", Image: "i"})
	require.NoError(t, err)
	_, err = s.UpsertProject(models.Project{ID: "p1", Type: "existing", Title: "Second", Description: "d", Image: "i"})
	require.NoError(t, err)

	all, err := s.ListProjects("")
	require.NoError(t, err)
	require.Len(t, all, 1, "same id must replace, not duplicate")
	assert.Equal(t, "Second", all[0].Title)
	assert.Equal(t, "existing", all[0].Type)
}

func TestFileStoreDeleteProject(t *testing.T) {
	s := newTestFileStore(t)

	_, err := s.UpsertProject(models.Project{ID: "p1", Type: "flagship", Title: "T", Description: "d", Image: "i"})
	require.NoError(t, err)

	removed, err := s.DeleteProject("p1")
	require.NoError(t, err)
	assert.True(t, removed)

	all, err := s.ListProjects("")
	require.NoError(t, err)
	assert.Empty(t, all)

	removed, err = s.DeleteProject("p1")
	require.NoError(t, err)
	assert.False(t, removed, "deleting an absent id reports false, not an error")
}

func TestFileStoreOnDiskLayout(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir, quietLogger())

	_, err := s.UpsertProject(models.Project{ID: "p1", Type: "flagship", Title: "T", Description: "d", Image: "i"})
	require.NoError(t, err)
	_, err = s.UpsertPowerStone(models.PowerStone{ID: "stone-1", Slot: 1, Src: "/s.png"})
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(dir, "projects.json"))
	require.NoError(t, err)
	var projectsDoc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &projectsDoc))
	assert.Contains(t, projectsDoc, "projects")

	raw, err = os.ReadFile(filepath.Join(dir, "power-stones.json"))
	require.NoError(t, err)
	var stonesDoc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &stonesDoc))
	assert.Contains(t, stonesDoc, "powerStones")
}

func TestFileStoreCorruptFileTreatedAsEmpty(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir, quietLogger())
	require.NoError(t, os.WriteFile(filepath.Join(dir, highlightsFileName), []byte("{not json"), 0o644))

	highlights, err := s.ListHighlights()
	require.NoError(t, err)
	assert.Empty(t, highlights)

	// The next write starts the collection over.
	_, err = s.UpsertHighlight(models.Highlight{ID: "h1", Src: "/a.jpg", Title: "A", Order: 1})
	require.NoError(t, err)
	highlights, err = s.ListHighlights()
	require.NoError(t, err)
	assert.Len(t, highlights, 1)
}

func TestFileStoreHighlightsOrdering(t *testing.T) {
	s := newTestFileStore(t)

	_, err := s.UpsertHighlight(models.Highlight{ID: "h2", Src: "/b.jpg", Title: "Beta", Order: 2})
	require.NoError(t, err)
	_, err = s.UpsertHighlight(models.Highlight{ID: "h3", Src: "/c.jpg", Title: "Alpha", Order: 2})
	require.NoError(t, err)
	_, err = s.UpsertHighlight(models.Highlight{ID: "h1", Src: "/a.jpg", Title: "Gamma", Order: 1})
	require.NoError(t, err)

	highlights, err := s.ListHighlights()
	require.NoError(t, err)
	require.Len(t, highlights, 3)
	assert.Equal(t, "h1", highlights[0].ID, "lowest order first")
	assert.Equal(t, "h3", highlights[1].ID, "order ties break by title")
	assert.Equal(t, "h2", highlights[2].ID)

	n, err := s.CountHighlights()
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
}

func TestFileStorePowerStones(t *testing.T) {
	s := newTestFileStore(t)

	_, err := s.UpsertPowerStone(models.PowerStone{ID: "stone-2", Slot: 2, Src: "/2.png", Title: "Service"})
	require.NoError(t, err)
	_, err = s.UpsertPowerStone(models.PowerStone{ID: "stone-1", Slot: 1, Src: "/1.png", Title: "Unity"})
	require.NoError(t, err)

	stones, err := s.ListPowerStones()
	require.NoError(t, err)
	require.Len(t, stones, 2)
	assert.Equal(t, 1, stones[0].Slot, "stones sort by slot")
	assert.Equal(t, 2, stones[1].Slot)

	// Re-filling a slot replaces its stone.
	_, err = s.UpsertPowerStone(models.PowerStone{ID: "stone-1", Slot: 1, Src: "/1-new.png", Title: "Unity"})
	require.NoError(t, err)
	stones, err = s.ListPowerStones()
	require.NoError(t, err)
	require.Len(t, stones, 2)
	assert.Equal(t, "/1-new.png", stones[0].Src)

	// An id already held by another slot is a uniqueness violation.
	_, err = s.UpsertPowerStone(models.PowerStone{ID: "stone-1", Slot: 3, Src: "/3.png"})
	assert.ErrorIs(t, err, ErrDuplicateKey)

	removed, err := s.DeletePowerStone(2)
	require.NoError(t, err)
	assert.True(t, removed)
	removed, err = s.DeletePowerStone(5)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestFileStoreBulletins(t *testing.T) {
	s := newTestFileStore(t)
	base := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)

	_, err := s.UpsertBulletin(models.Bulletin{ID: "en-jul", Lang: "en", Title: "July", PDF: "/jul.pdf", Date: "2025-07-01", CreatedAt: base})
	require.NoError(t, err)
	_, err = s.UpsertBulletin(models.Bulletin{ID: "en-aug", Lang: "en", Title: "August", PDF: "/aug.pdf", Date: "2025-08-01", CreatedAt: base})
	require.NoError(t, err)
	_, err = s.UpsertBulletin(models.Bulletin{ID: "ta-aug", Lang: "ta", Title: "Avani", PDF: "/ta.pdf", Date: "2025-08-15", CreatedAt: base})
	require.NoError(t, err)

	all, err := s.ListBulletins("")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "ta-aug", all[0].ID, "newest date first")
	assert.Equal(t, "en-aug", all[1].ID)
	assert.Equal(t, "en-jul", all[2].ID)

	english, err := s.ListBulletins("en")
	require.NoError(t, err)
	require.Len(t, english, 2)
	assert.Equal(t, "en-aug", english[0].ID)

	// Same date: the later upload wins the tie.
	_, err = s.UpsertBulletin(models.Bulletin{ID: "en-aug-2", Lang: "en", Title: "August Special", PDF: "/aug2.pdf", Date: "2025-08-01", CreatedAt: base.Add(time.Hour)})
	require.NoError(t, err)
	english, err = s.ListBulletins("en")
	require.NoError(t, err)
	require.Len(t, english, 3)
	assert.Equal(t, "en-aug-2", english[0].ID)
	assert.Equal(t, "en-aug", english[1].ID)
}

func TestFileStoreLeaderboard(t *testing.T) {
	s := newTestFileStore(t)
	now := time.Date(2025, 8, 20, 9, 0, 0, 0, time.UTC)

	_, err := s.InsertLeaderboardEntry(models.LeaderboardEntry{ID: "a", Game: "snake", Nickname: "Anu", Score: 50, CreatedAt: now})
	require.NoError(t, err)
	_, err = s.InsertLeaderboardEntry(models.LeaderboardEntry{ID: "b", Game: "whack", Nickname: "Bala", Score: 300, CreatedAt: now})
	require.NoError(t, err)
	_, err = s.InsertLeaderboardEntry(models.LeaderboardEntry{ID: "c", Game: "snake", Nickname: "Devi", Score: 50, CreatedAt: now.Add(time.Minute)})
	require.NoError(t, err)

	all, err := s.ListLeaderboard("", 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "b", all[0].ID, "highest score first")
	assert.Equal(t, "c", all[1].ID, "score ties rank the newer entry higher")
	assert.Equal(t, "a", all[2].ID)

	snake, err := s.ListLeaderboard("snake", 0)
	require.NoError(t, err)
	require.Len(t, snake, 2)

	capped, err := s.ListLeaderboard("", 2)
	require.NoError(t, err)
	assert.Len(t, capped, 2)
}

func TestFileStoreHealth(t *testing.T) {
	s := newTestFileStore(t)
	_, err := s.UpsertProject(models.Project{ID: "p1", Type: "flagship", Title: "T", Description: "d", Image: "i"})
	require.NoError(t, err)

	h := s.Health()
	assert.False(t, h.Connected, "the file store never reports a database connection")
	assert.Equal(t, "file", h.Provider)
	assert.EqualValues(t, 1, h.Count)
}
