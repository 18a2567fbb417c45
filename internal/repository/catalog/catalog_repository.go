package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"ai-bookrec-be/pkg/store"
)

// Repository is the read-only book catalog. Loaded once at process start and
// safe for unsynchronized concurrent reads afterwards.
type Repository struct {
	books   []*store.Book
	byTitle map[string]*store.Book
	titles  []string
}

// Load reads the catalog JSON file (array of book records)
func Load(path string) (*Repository, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	return FromReader(f)
}

// FromReader builds a repository from a JSON stream
func FromReader(r io.Reader) (*Repository, error) {
	var books []*store.Book
	if err := json.NewDecoder(r).Decode(&books); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return New(books), nil
}

// New builds a repository from already-parsed records
func New(books []*store.Book) *Repository {
	byTitle := make(map[string]*store.Book, len(books))
	titles := make([]string, 0, len(books))
	kept := make([]*store.Book, 0, len(books))
	for _, b := range books {
		if _, dup := byTitle[b.Title]; dup {
			continue // first record wins on duplicate titles
		}
		byTitle[b.Title] = b
		titles = append(titles, b.Title)
		kept = append(kept, b)
	}
	return &Repository{
		books:   kept,
		byTitle: byTitle,
		titles:  titles,
	}
}

func (r *Repository) Len() int {
	return len(r.titles)
}

// Titles returns the canonical title list, in catalog order
func (r *Repository) Titles() []string {
	return r.titles
}

// FindByTitle looks up a record by its exact canonical title
func (r *Repository) FindByTitle(title string) (*store.Book, bool) {
	b, found := r.byTitle[title]
	return b, found
}

// FindByCandidate resolves a validated candidate string to the first catalog
// record whose canonical title contains it.
func (r *Repository) FindByCandidate(candidate string) (*store.Book, bool) {
	if b, found := r.byTitle[candidate]; found {
		return b, true
	}
	for _, title := range r.titles {
		if strings.Contains(title, candidate) {
			return r.byTitle[title], true
		}
	}
	return nil, false
}

// Vectors returns the per-record embedding matrix, in catalog order. Records
// without an embedding contribute a nil row (scored 0 by the matcher).
func (r *Repository) Vectors() [][]float32 {
	vectors := make([][]float32, len(r.books))
	for i, b := range r.books {
		vectors[i] = b.Embedding
	}
	return vectors
}

// BookAt returns the record at the given catalog index
func (r *Repository) BookAt(index int) (*store.Book, bool) {
	if index < 0 || index >= len(r.books) {
		return nil, false
	}
	return r.books[index], true
}
