// Package memstore is an in-memory RecordRepository for tests and for
// running the engine on data loaded from files instead of a database.
package memstore

import (
	"context"
	"sort"
	"sync"

	"setlstat/domain/plate"
	"setlstat/ports"
)

type speciesRecord struct {
	speciesID int64
	record    plate.Record
}

// RecordStore implements ports.RecordRepository over in-memory data.
type RecordStore struct {
	mu         sync.RWMutex
	localities map[int64]string
	species    map[int64]string
	plates     map[int64]int64 // plate ID to locality ID
	records    []speciesRecord
}

// NewRecordStore creates an empty in-memory record store.
func NewRecordStore() *RecordStore {
	return &RecordStore{
		localities: make(map[int64]string),
		species:    make(map[int64]string),
		plates:     make(map[int64]int64),
	}
}

// AddLocality registers a locality.
func (s *RecordStore) AddLocality(id int64, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.localities[id] = name
}

// AddSpecies registers a species.
func (s *RecordStore) AddSpecies(id int64, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.species[id] = name
}

// AddRecord stores one plate observation for a species at a locality.
func (s *RecordStore) AddRecord(localityID, speciesID int64, rec plate.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plates[rec.PlateID] = localityID
	s.records = append(s.records, speciesRecord{speciesID: speciesID, record: rec})
}

// SpotRecords loads the presence/absence records matching a selection
func (s *RecordStore) SpotRecords(ctx context.Context, sel ports.Selection) ([]plate.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wantLocality := idSet(sel.LocalityIDs)
	wantSpecies := idSet(sel.SpeciesIDs)

	var out []plate.Record
	for _, sr := range s.records {
		if !wantSpecies[sr.speciesID] {
			continue
		}
		if !wantLocality[s.plates[sr.record.PlateID]] {
			continue
		}
		out = append(out, sr.record)
	}
	return out, nil
}

// PlateIDs lists the distinct plate IDs matching a selection
func (s *RecordStore) PlateIDs(ctx context.Context, sel ports.Selection) ([]int64, error) {
	records, err := s.SpotRecords(ctx, sel)
	if err != nil {
		return nil, err
	}
	seen := make(map[int64]bool)
	var ids []int64
	for _, rec := range records {
		if !seen[rec.PlateID] {
			seen[rec.PlateID] = true
			ids = append(ids, rec.PlateID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// Localities lists the known locality IDs and names
func (s *RecordStore) Localities(ctx context.Context) (map[int64]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyNames(s.localities), nil
}

// Species lists the known species IDs and names
func (s *RecordStore) Species(ctx context.Context) (map[int64]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyNames(s.species), nil
}

func idSet(ids []int64) map[int64]bool {
	set := make(map[int64]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func copyNames(m map[int64]string) map[int64]string {
	out := make(map[int64]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
