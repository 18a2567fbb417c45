package store

import (
	"fmt"
	"strings"
)

// BookKeyword is one weighted keyword attached to a catalog record
type BookKeyword struct {
	Word   string `json:"word"`
	Weight int    `json:"weight"`
}

// Book is a read-only catalog record. Loaded once at startup, never mutated.
type Book struct {
	Title           string        `json:"title"`
	Authors         string        `json:"authors,omitempty"`
	Publisher       string        `json:"publisher,omitempty"`
	PublicationYear string        `json:"publication_year,omitempty"`
	ISBN13          string        `json:"isbn13,omitempty"`
	Summary         string        `json:"summary"`
	ClassName       string        `json:"class_nm"`
	Keywords        []BookKeyword `json:"keywords"`
	ImageURL        string        `json:"imageUrl"`
	BookURL         string        `json:"bookUrl"`
	AgeGroups       []string      `json:"age,omitempty"`
	Embedding       []float32     `json:"embedding,omitempty"`
}

// KeywordWords returns up to limit keyword words, in catalog order
func (b *Book) KeywordWords(limit int) []string {
	n := len(b.Keywords)
	if limit > 0 && n > limit {
		n = limit
	}
	words := make([]string, 0, n)
	for _, kw := range b.Keywords[:n] {
		words = append(words, kw.Word)
	}
	return words
}

// Document renders the record as retrieval context. Keywords are repeated by
// weight so that heavier terms dominate downstream ranking.
func (b *Book) Document() string {
	var weighted []string
	for _, kw := range b.Keywords {
		w := kw.Weight
		if w < 1 {
			w = 1
		}
		for i := 0; i < w; i++ {
			weighted = append(weighted, kw.Word)
		}
	}

	return fmt.Sprintf("제목: %s\n분류: %s\n요약: %s\n키워드: %s",
		b.Title,
		b.ClassName,
		b.Summary,
		strings.Join(weighted, " "),
	)
}
