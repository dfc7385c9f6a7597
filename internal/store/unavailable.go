package store

import "sangamam/backend/models"

// unavailableStore stands in when neither backend is configured. Reads come
// back empty so public pages still render (the handlers layer seeds); writes
// fail with ErrUnavailable, which the handlers map to 503.
type unavailableStore struct{}

func (unavailableStore) Provider() string { return "none" }

func (unavailableStore) Health() Health { return Health{Provider: "none"} }

func (unavailableStore) ListProjects(string) ([]models.Project, error) { return nil, nil }

func (unavailableStore) UpsertProject(models.Project) (models.Project, error) {
	return models.Project{}, ErrUnavailable
}

func (unavailableStore) DeleteProject(string) (bool, error) { return false, ErrUnavailable }

func (unavailableStore) CountProjects() (int64, error) { return 0, nil }

func (unavailableStore) ListHighlights() ([]models.Highlight, error) { return nil, nil }

func (unavailableStore) UpsertHighlight(models.Highlight) (models.Highlight, error) {
	return models.Highlight{}, ErrUnavailable
}

func (unavailableStore) DeleteHighlight(string) (bool, error) { return false, ErrUnavailable }

func (unavailableStore) CountHighlights() (int64, error) { return 0, nil }

func (unavailableStore) ListPowerStones() ([]models.PowerStone, error) { return nil, nil }

func (unavailableStore) UpsertPowerStone(models.PowerStone) (models.PowerStone, error) {
	return models.PowerStone{}, ErrUnavailable
}

func (unavailableStore) DeletePowerStone(int) (bool, error) { return false, ErrUnavailable }

func (unavailableStore) ListBulletins(string) ([]models.Bulletin, error) { return nil, nil }

func (unavailableStore) UpsertBulletin(models.Bulletin) (models.Bulletin, error) {
	return models.Bulletin{}, ErrUnavailable
}

func (unavailableStore) DeleteBulletin(string) (bool, error) { return false, ErrUnavailable }

func (unavailableStore) ListLeaderboard(string, int) ([]models.LeaderboardEntry, error) {
	return nil, nil
}

func (unavailableStore) InsertLeaderboardEntry(models.LeaderboardEntry) (models.LeaderboardEntry, error) {
	return models.LeaderboardEntry{}, ErrUnavailable
}
