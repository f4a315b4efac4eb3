package registry

import (
	"bitwise74/file-api/internal/apperr"
	"bitwise74/file-api/internal/model"
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Memory is a map-backed Registry. It backs tests and carries no
// durability guarantees.
type Memory struct {
	mu    sync.RWMutex
	files map[string]model.File
	links map[string]model.FileUser
}

func NewMemory() *Memory {
	return &Memory{
		files: map[string]model.File{},
		links: map[string]model.FileUser{},
	}
}

func (m *Memory) Get(_ context.Context, id string) (*model.File, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	f, ok := m.files[id]
	if !ok {
		return nil, apperr.New(apperr.FileNotFound)
	}

	return &f, nil
}

func (m *Memory) Create(_ context.Context, f *model.File) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.files[f.ID] = *f

	link := model.FileUser{
		ID:     uuid.NewString(),
		UserID: f.OwnerID,
		FileID: f.ID,
	}
	m.links[link.ID] = link

	return nil
}

func (m *Memory) Update(_ context.Context, f *model.File) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cur, ok := m.files[f.ID]
	if !ok {
		return apperr.New(apperr.FileNotFound)
	}

	cur.Name = f.Name
	cur.Public = f.Public
	m.files[f.ID] = cur

	return nil
}

func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.files[id]; !ok {
		return apperr.New(apperr.FileNotFound)
	}

	delete(m.files, id)

	for lid, l := range m.links {
		if l.FileID == id {
			delete(m.links, lid)
		}
	}

	return nil
}

func (m *Memory) ListByOwner(_ context.Context, ownerID string, limit, offset int) ([]model.File, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var owned []model.File
	for _, f := range m.files {
		if f.OwnerID == ownerID {
			owned = append(owned, f)
		}
	}

	sort.Slice(owned, func(i, j int) bool {
		return owned[i].CreatedAt > owned[j].CreatedAt
	})

	count := int64(len(owned))

	if offset >= len(owned) {
		return nil, count, nil
	}

	owned = owned[offset:]
	if limit < len(owned) {
		owned = owned[:limit]
	}

	return owned, count, nil
}

func (m *Memory) ListOrphans(_ context.Context) ([]model.File, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	linked := map[string]bool{}
	for _, l := range m.links {
		linked[l.FileID] = true
	}

	var orphans []model.File
	for id, f := range m.files {
		if !linked[id] {
			orphans = append(orphans, f)
		}
	}

	return orphans, nil
}

func (m *Memory) CountOwnershipLinks(_ context.Context, id string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var count int64
	for _, l := range m.links {
		if l.FileID == id {
			count++
		}
	}

	return count, nil
}

func (m *Memory) UsedStorage(_ context.Context, ownerID string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var used int64
	for _, f := range m.files {
		if f.OwnerID == ownerID {
			used += f.Size
		}
	}

	return used, nil
}

// Unlink drops every ownership link of a file, leaving its record
// orphaned. Test helper.
func (m *Memory) Unlink(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for lid, l := range m.links {
		if l.FileID == id {
			delete(m.links, lid)
		}
	}
}
