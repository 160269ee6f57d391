// Package memory is the in-process chunk store. All vectors live on the
// heap and die with the process, which fits a corpus rebuilt at startup.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/boardbot/boardbot/index"
)

type memoryStore struct {
	chunks []index.Chunk
	mtx    sync.RWMutex
}

// Add replaces the store's contents with the build's chunk set.
func (s *memoryStore) Add(ctx context.Context, chunks []index.Chunk) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	next := make([]index.Chunk, 0, len(chunks))

	for _, chunk := range chunks {
		cpy := make([]float32, len(chunk.Embedding))
		copy(cpy, chunk.Embedding)

		chunk.Id = uuid.New().String()
		chunk.Embedding = cpy

		next = append(next, chunk)
	}

	s.chunks = next

	return nil
}

func (s *memoryStore) Search(ctx context.Context, vector []float32, limit int) ([]index.Chunk, error) {
	if limit < 1 {
		return nil, nil
	}

	s.mtx.RLock()
	defer s.mtx.RUnlock()

	candidates := make([]index.Chunk, 0, len(s.chunks))

	for _, chunk := range s.chunks {
		chunk.Score = float32(index.CosineSimilarity(vector, chunk.Embedding))
		candidates = append(candidates, chunk)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	return candidates, nil
}

func NewStore() index.Store {
	return &memoryStore{}
}
