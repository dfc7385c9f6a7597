package store

import (
	"github.com/sirupsen/logrus"

	"sangamam/backend/models"
)

// fallbackStore decorates the document store so project reads survive an
// unreachable or empty database by consulting the local JSON files. Only the
// projects read path is decorated; every other operation, including writes,
// goes straight to the primary.
type fallbackStore struct {
	Store
	file *FileStore
	log  *logrus.Logger
}

func (s *fallbackStore) ListProjects(projectType string) ([]models.Project, error) {
	projects, err := s.Store.ListProjects(projectType)
	if err != nil {
		s.log.WithField("error", err.Error()).Warn("Projects read failed, serving local file copy")
		return s.file.ListProjects(projectType)
	}
	if len(projects) == 0 {
		return s.file.ListProjects(projectType)
	}
	return projects, nil
}
