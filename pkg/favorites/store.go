package favorites

import (
	"encoding/json"
	"os"
	"sort"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Store is the file-backed favorite-markets set: loaded once on start,
// persisted on every change. An absent or corrupt file yields an empty set.
// Writes are last-write-wins.
type Store struct {
	path  string
	pairs map[string]bool

	mu     sync.Mutex
	logger *log.Entry
}

func New(path string) *Store {
	s := &Store{
		path:   path,
		pairs:  make(map[string]bool),
		logger: log.WithFields(log.Fields{"comp": "favorites"}),
	}
	s.load()
	return s
}

func (s *Store) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return // absent file: empty set
	}
	var pairs []string
	if err := json.Unmarshal(data, &pairs); err != nil {
		s.logger.Warnf("fail to parse favorites file '%v', starting empty: %v", s.path, err)
		return
	}
	for _, pair := range pairs {
		s.pairs[pair] = true
	}
}

func (s *Store) persist() {
	data, err := json.Marshal(s.list())
	if err != nil {
		s.logger.Errorf("fail to marshal favorites: %v", err)
		return
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		s.logger.Errorf("fail to write favorites file '%v': %v", s.path, err)
	}
}

// list assumes s.mu is held.
func (s *Store) list() []string {
	pairs := make([]string, 0, len(s.pairs))
	for pair := range s.pairs {
		pairs = append(pairs, pair)
	}
	sort.Strings(pairs)
	return pairs
}

func (s *Store) List() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list()
}

func (s *Store) IsFavorite(pair string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pairs[pair]
}

func (s *Store) Add(pair string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pairs[pair] {
		return
	}
	s.pairs[pair] = true
	s.persist()
}

func (s *Store) Remove(pair string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.pairs[pair] {
		return
	}
	delete(s.pairs, pair)
	s.persist()
}

// Toggle flips a pair and reports the new state.
func (s *Store) Toggle(pair string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pairs[pair] {
		delete(s.pairs, pair)
	} else {
		s.pairs[pair] = true
	}
	s.persist()
	return s.pairs[pair]
}
