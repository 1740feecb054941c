package service

import (
	"encoding/json"
	"fmt"
	"html"
	"log"
	"strings"

	"github.com/fanbaselab/fanbase/internal/model"
	"github.com/meilisearch/meilisearch-go"
	"github.com/microcosm-cc/bluemonday"
)

// SearchService maintains the post and poll indexes. Every method is safe to
// call when search is unconfigured; indexing is best-effort and never blocks
// the write path that triggered it.
type SearchService interface {
	IndexPost(post *model.Post) error
	DeletePost(id string) error
	IndexPoll(poll *model.Poll) error
	DeletePoll(id string) error
	Search(query string, limit int64) ([]SearchHit, error)
}

type SearchHit struct {
	Type    string `json:"type"`
	ID      string `json:"id"`
	Author  string `json:"author"`
	Excerpt string `json:"excerpt"`
}

type meiliPostDoc struct {
	ID        string `json:"id"`
	Author    string `json:"author"`
	Content   string `json:"content"`
	CreatedAt int64  `json:"created_at"`
}

type meiliPollDoc struct {
	ID        string `json:"id"`
	Author    string `json:"author"`
	Question  string `json:"question"`
	Category  string `json:"category"`
	CreatedAt int64  `json:"created_at"`
}

type searchService struct {
	client    meilisearch.ServiceManager
	sanitizer *bluemonday.Policy
}

// NewSearchService builds the meilisearch-backed SearchService. A nil client
// yields a no-op service.
func NewSearchService(client meilisearch.ServiceManager) SearchService {
	s := &searchService{
		client:    client,
		sanitizer: bluemonday.StrictPolicy(),
	}
	if client != nil {
		s.initIndexes()
	}
	return s
}

func (s *searchService) initIndexes() {
	sortable := []string{"created_at"}
	if _, err := s.client.Index("posts").UpdateSortableAttributes(&sortable); err != nil {
		log.Printf("failed to configure posts index: %v", err)
	}
	if _, err := s.client.Index("polls").UpdateSortableAttributes(&sortable); err != nil {
		log.Printf("failed to configure polls index: %v", err)
	}
}

func (s *searchService) enabled() bool {
	return s != nil && s.client != nil
}

// cleanContent strips markup, unescapes entities and collapses whitespace so
// the index only carries plain text.
func (s *searchService) cleanContent(content string) string {
	content = strings.ReplaceAll(content, "</p>", " ")
	content = strings.ReplaceAll(content, "<br>", " ")
	cleaned := html.UnescapeString(s.sanitizer.Sanitize(content))
	return strings.Join(strings.Fields(cleaned), " ")
}

func (s *searchService) IndexPost(post *model.Post) error {
	if !s.enabled() {
		return nil
	}
	doc := meiliPostDoc{
		ID:        post.ID,
		Author:    post.Author,
		Content:   s.cleanContent(post.Content),
		CreatedAt: post.Timestamp.Unix(),
	}
	_, err := s.client.Index("posts").AddDocuments([]meiliPostDoc{doc}, strPtr("id"))
	return err
}

func (s *searchService) DeletePost(id string) error {
	if !s.enabled() {
		return nil
	}
	_, err := s.client.Index("posts").DeleteDocument(id)
	return err
}

func (s *searchService) IndexPoll(poll *model.Poll) error {
	if !s.enabled() {
		return nil
	}
	doc := meiliPollDoc{
		ID:        poll.ID,
		Author:    poll.Author,
		Question:  s.cleanContent(poll.Question),
		Category:  poll.Category,
		CreatedAt: poll.Timestamp.Unix(),
	}
	_, err := s.client.Index("polls").AddDocuments([]meiliPollDoc{doc}, strPtr("id"))
	return err
}

func (s *searchService) DeletePoll(id string) error {
	if !s.enabled() {
		return nil
	}
	_, err := s.client.Index("polls").DeleteDocument(id)
	return err
}

func (s *searchService) Search(query string, limit int64) ([]SearchHit, error) {
	if !s.enabled() {
		return nil, nil
	}
	if limit <= 0 || limit > 50 {
		limit = 20
	}

	var hits []SearchHit

	postRes, err := s.client.Index("posts").Search(query, &meilisearch.SearchRequest{Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("post search failed: %w", err)
	}
	for _, h := range postRes.Hits {
		var doc meiliPostDoc
		if err := decodeHit(h, &doc); err != nil {
			continue
		}
		hits = append(hits, SearchHit{Type: "post", ID: doc.ID, Author: doc.Author, Excerpt: doc.Content})
	}

	pollRes, err := s.client.Index("polls").Search(query, &meilisearch.SearchRequest{Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("poll search failed: %w", err)
	}
	for _, h := range pollRes.Hits {
		var doc meiliPollDoc
		if err := decodeHit(h, &doc); err != nil {
			continue
		}
		hits = append(hits, SearchHit{Type: "poll", ID: doc.ID, Author: doc.Author, Excerpt: doc.Question})
	}

	return hits, nil
}

// decodeHit round-trips a raw search hit into a typed document.
func decodeHit(hit any, out any) error {
	raw, err := json.Marshal(hit)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func strPtr(s string) *string {
	return &s
}
