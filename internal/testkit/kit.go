// Package testkit provides deterministic fixtures for the analysis tests.
package testkit

import (
	"math/rand"

	"setlstat/adapters/memstore"
	"setlstat/domain/plate"
)

// Fixed IDs of the fixture dataset.
const (
	LocalityID = int64(1)
	SpeciesA   = int64(101)
	SpeciesB   = int64(102)
)

// RecordWithSpots builds a record with exactly the given positive spots.
func RecordWithSpots(plateID int64, spots ...int) plate.Record {
	rec := plate.Record{PlateID: plateID}
	for _, s := range spots {
		rec.Spots[s-1] = true
	}
	return rec
}

// ClusteredRecord builds a record whose n positive spots sit in one packed
// block starting at the top-left corner, the strongest attraction signal a
// plate can carry.
func ClusteredRecord(plateID int64, n int) plate.Record {
	rec := plate.Record{PlateID: plateID}
	for i := 0; i < n; i++ {
		rec.Spots[(i/plate.GridSize)*plate.GridSize+i%plate.GridSize] = true
	}
	return rec
}

// CornerRecord builds a record occupying only the four corner spots, a
// strong area preference signal.
func CornerRecord(plateID int64) plate.Record {
	return RecordWithSpots(plateID, 1, 5, 21, 25)
}

// RandomRecords builds count records with n positive spots each, drawn
// from a fixed seed so test runs are reproducible.
func RandomRecords(seed int64, count, n int) []plate.Record {
	rng := rand.New(rand.NewSource(seed))
	records := make([]plate.Record, count)
	for i := range records {
		rec, err := plate.RandomRecord(rng, int64(i+1), n)
		if err != nil {
			panic(err)
		}
		records[i] = rec
	}
	return records
}

// Store builds an in-memory record store preloaded with one locality, two
// species and the given records per species.
func Store(speciesARecords, speciesBRecords []plate.Record) *memstore.RecordStore {
	store := memstore.NewRecordStore()
	store.AddLocality(LocalityID, "Test locality")
	store.AddSpecies(SpeciesA, "Species alpha")
	store.AddSpecies(SpeciesB, "Species beta")
	for _, rec := range speciesARecords {
		store.AddRecord(LocalityID, SpeciesA, rec)
	}
	for _, rec := range speciesBRecords {
		store.AddRecord(LocalityID, SpeciesB, rec)
	}
	return store
}
