package store

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"sort"
	"sync"
	"time"

	"complaint-portal/services/complaint-service/models"
)

// FileStore keeps every complaint in memory and mirrors the full list to a
// single JSON file after each mutation. The in-memory list is the source of
// truth for the lifetime of the process; a failed write only costs
// durability, never the request.
type FileStore struct {
	mu      sync.Mutex
	path    string
	records []models.Complaint
}

func NewFileStore(path string) *FileStore {
	fs := &FileStore{path: path}
	fs.load()
	return fs
}

func (fs *FileStore) load() {
	data, err := os.ReadFile(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("[INFO] Data file %s not found, starting with empty store", fs.path)
		} else {
			log.Printf("[WARN] Failed to read data file %s: %v, starting with empty store", fs.path, err)
		}
		fs.records = []models.Complaint{}
		return
	}

	var records []models.Complaint
	if err := json.Unmarshal(data, &records); err != nil {
		log.Printf("[WARN] Failed to parse data file %s: %v, starting with empty store", fs.path, err)
		fs.records = []models.Complaint{}
		return
	}

	fs.records = records
	log.Printf("[OK] Loaded %d complaints from %s", len(records), fs.path)
}

// persist rewrites the whole file. Callers hold fs.mu.
func (fs *FileStore) persist() {
	data, err := json.MarshalIndent(fs.records, "", "  ")
	if err != nil {
		log.Printf("[ERROR] Failed to serialize complaints: %v", err)
		return
	}
	if err := os.WriteFile(fs.path, data, 0644); err != nil {
		log.Printf("[ERROR] Failed to persist complaints to %s: %v", fs.path, err)
	}
}

func (fs *FileStore) List(ctx context.Context) ([]models.Complaint, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	out := make([]models.Complaint, len(fs.records))
	copy(out, fs.records)

	// Stable: equal timestamps keep insertion order.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (fs *FileStore) FindByID(ctx context.Context, id string) (*models.Complaint, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	for i := range fs.records {
		if fs.records[i].ID == id {
			c := cloneComplaint(&fs.records[i])
			return c, nil
		}
	}
	return nil, ErrNotFound
}

func (fs *FileStore) Append(ctx context.Context, c *models.Complaint) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.records = append(fs.records, *cloneComplaint(c))
	fs.persist()
	return nil
}

func (fs *FileStore) Upvote(ctx context.Context, id, addr string) (*models.Complaint, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	for i := range fs.records {
		rec := &fs.records[i]
		if rec.ID != id {
			continue
		}
		if !rec.HasUpvoted(addr) {
			rec.Upvoters = append(rec.Upvoters, addr)
			rec.Upvotes = len(rec.Upvoters)
			rec.UpdatedAt = time.Now().UTC()
			fs.persist()
		}
		return cloneComplaint(rec), nil
	}
	return nil, ErrNotFound
}

func (fs *FileStore) SetStatus(ctx context.Context, id, status string) (*models.Complaint, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	for i := range fs.records {
		rec := &fs.records[i]
		if rec.ID != id {
			continue
		}
		rec.Status = status
		rec.UpdatedAt = time.Now().UTC()
		fs.persist()
		return cloneComplaint(rec), nil
	}
	return nil, ErrNotFound
}

func (fs *FileStore) Ping(ctx context.Context) error {
	return nil
}

func cloneComplaint(c *models.Complaint) *models.Complaint {
	out := *c
	if c.Upvoters != nil {
		out.Upvoters = append([]string(nil), c.Upvoters...)
	}
	return &out
}
