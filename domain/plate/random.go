package plate

import (
	"math/rand"

	"setlstat/domain/core"
)

// RandomPositiveSpots draws n distinct spot numbers uniformly without
// replacement from 1..25. This models a null plate: where the spots would
// sit if the species had settled completely at random with the same total
// count of occupied spots as observed. n outside 0..25 is a caller error.
func RandomPositiveSpots(rng *rand.Rand, n int) ([]int, error) {
	if n < 0 || n > SpotCount {
		return nil, core.NewOutOfRangeError("sample size", n, 0, SpotCount)
	}

	perm := rng.Perm(SpotCount)
	spots := make([]int, n)
	for i := 0; i < n; i++ {
		spots[i] = perm[i] + 1
	}
	return spots, nil
}

// RandomRecord builds a record with n random positive spots for a plate.
func RandomRecord(rng *rand.Rand, plateID int64, n int) (Record, error) {
	spots, err := RandomPositiveSpots(rng, n)
	if err != nil {
		return Record{}, err
	}
	rec := Record{PlateID: plateID}
	for _, s := range spots {
		rec.Spots[s-1] = true
	}
	return rec, nil
}
