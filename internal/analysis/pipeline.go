package analysis

import (
	"context"
	"math/rand"
	"strconv"

	"setlstat/domain/stats"
	"setlstat/internal"
	"setlstat/internal/config"
	"setlstat/ports"
)

// Pipeline wires the shared dependencies of the three analyses.
type Pipeline struct {
	records ports.RecordRepository
	rng     ports.RNGPort
	logger  *internal.Logger
	cfg     config.AnalysisConfig
}

// NewPipeline creates an analysis pipeline.
func NewPipeline(records ports.RecordRepository, rng ports.RNGPort, logger *internal.Logger, cfg config.AnalysisConfig) *Pipeline {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Pipeline{records: records, rng: rng, logger: logger, cfg: cfg}
}

// stream draws a deterministic RNG stream for one stage of one analysis run.
func (p *Pipeline) stream(ctx context.Context, analysisID, stage string, iteration int) (*rand.Rand, error) {
	return p.rng.Stream(ctx, analysisID, stage, iteration, p.cfg.RandomSeed)
}

// selectionLabels resolves locality and species IDs to display names for
// the report. Unresolvable IDs fall back to their numeric form; lookup
// failures only degrade the labels, never the analysis.
func (p *Pipeline) selectionLabels(ctx context.Context, localityIDs, speciesIDs []int64) (localities, species []string) {
	localityNames, err := p.records.Localities(ctx)
	if err != nil {
		p.logger.Warn("failed to resolve locality names: %v", err)
	}
	speciesNames, err := p.records.Species(ctx)
	if err != nil {
		p.logger.Warn("failed to resolve species names: %v", err)
	}
	return labels(localityIDs, localityNames), labels(speciesIDs, speciesNames)
}

func labels(ids []int64, names map[int64]string) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		if name, ok := names[id]; ok {
			out[i] = name
		} else {
			out[i] = strconv.FormatInt(id, 10)
		}
	}
	return out
}

// expectedDistanceMean is the mean of the analytic null distance
// distribution, used as the reference mean in chi-squared report lines.
func expectedDistanceMean(probabilities map[float64]float64) float64 {
	mean := 0.0
	for value, prob := range probabilities {
		mean += value * prob
	}
	return mean
}

// lowExpectedFrequency reports whether any chi-squared expected count falls
// below the conventional reliability threshold of 5.
func lowExpectedFrequency(expected []float64) bool {
	for _, e := range expected {
		if e < 5 {
			return true
		}
	}
	return false
}

func sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}

// probabilityVector aligns a probability table with an ordered value set.
func probabilityVector(values []float64, probabilities map[float64]float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = probabilities[v]
	}
	return out
}

// frequencyVector aligns a frequency map with an ordered value set.
func frequencyVector(values []float64, freq map[float64]int) []int {
	out := make([]int, len(values))
	for i, v := range values {
		out[i] = freq[v]
	}
	return out
}

// spotGroupNames renders the group list once so report sections and repeat
// tallies agree on keys.
func spotGroupNames(groups []stats.SpotGroup) []string {
	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = g.String()
	}
	return names
}
