package audit

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/mrlokans/librarian/internal/entities"
	"github.com/mrlokans/librarian/internal/storage"
)

// Snapshot is the single-document form of a dataset, keyed like the
// collection files.
type Snapshot struct {
	Members      map[string]*entities.Member `json:"users"`
	Books        map[string]*entities.Book   `json:"books"`
	Transactions []entities.Transaction      `json:"transactions"`
}

// Snapshotter writes point-in-time copies of the dataset.
type Snapshotter struct {
	Dir string
	now func() time.Time
}

func NewSnapshotter(dir string) *Snapshotter {
	return &Snapshotter{
		Dir: dir,
		now: time.Now,
	}
}

// Save writes ds as one indented JSON file named <timestamp>-<uuid>.json
// and returns its path.
func (s *Snapshotter) Save(ds *entities.Dataset) (string, error) {
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	data, err := storage.Encode(Snapshot{
		Members:      ds.Members,
		Books:        ds.Books,
		Transactions: ds.Transactions,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	filename := fmt.Sprintf("%s-%s.json", s.now().Format("20060102-150405"), uuid.New().String())
	path := filepath.Join(s.Dir, filename)
	if err := storage.WriteAtomic(path, data); err != nil {
		return "", fmt.Errorf("failed to write snapshot: %w", err)
	}

	return path, nil
}
