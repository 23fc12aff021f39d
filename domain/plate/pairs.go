package plate

// SpotPair is a pair of spot numbers, either two positive spots within one
// record (intra-specific) or one positive spot from each of two records
// (inter-specific).
type SpotPair struct {
	A int
	B int
}

// SpotPairs returns all unordered pairs of positive spots within a record.
// A record with k positive spots yields C(k,2) pairs; fewer than two
// positive spots yield an empty slice, never an error.
func SpotPairs(r Record) []SpotPair {
	spots := r.PositiveSpots()
	if len(spots) < 2 {
		return nil
	}

	pairs := make([]SpotPair, 0, len(spots)*(len(spots)-1)/2)
	for i := 0; i < len(spots)-1; i++ {
		for j := i + 1; j < len(spots); j++ {
			pairs = append(pairs, SpotPair{A: spots[i], B: spots[j]})
		}
	}
	return pairs
}

// SpotPairsBetween returns the full Cartesian product of the positive spots
// of two records: k_a * k_b pairs. Either record without positive spots
// yields an empty slice.
func SpotPairsBetween(a, b Record) []SpotPair {
	spotsA := a.PositiveSpots()
	spotsB := b.PositiveSpots()
	if len(spotsA) == 0 || len(spotsB) == 0 {
		return nil
	}

	pairs := make([]SpotPair, 0, len(spotsA)*len(spotsB))
	for _, sa := range spotsA {
		for _, sb := range spotsB {
			pairs = append(pairs, SpotPair{A: sa, B: sb})
		}
	}
	return pairs
}

// PairDistances maps spot pairs to their rounded grid distances.
func PairDistances(pairs []SpotPair) ([]float64, error) {
	distances := make([]float64, 0, len(pairs))
	for _, p := range pairs {
		d, err := SpotDistance(p.A, p.B)
		if err != nil {
			return nil, err
		}
		distances = append(distances, d)
	}
	return distances, nil
}
