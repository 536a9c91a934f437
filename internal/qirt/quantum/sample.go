package quantum

import (
	"fmt"
	"math/rand/v2"
	"sort"
)

// Counts maps an outcome bit pattern (measurement order, see FormatBits) to the number
// of times it was observed
type Counts map[string]int

// Total returns the number of shots recorded
func (c Counts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// Frequencies converts counts to observed relative frequencies
func (c Counts) Frequencies() map[string]float64 {
	total := c.Total()
	freqs := make(map[string]float64, len(c))
	if total == 0 {
		return freqs
	}
	for outcome, n := range c {
		freqs[outcome] = float64(n) / float64(total)
	}
	return freqs
}

// Sample draws shots independent outcomes from the distribution computed by Measure.
// Each call uses its own generator: src when given, otherwise a fresh PCG source
// seeded from the runtime's random generator.
func Sample(st *State, measured []int, target Assignment, shots int, src rand.Source) (Counts, error) {
	if shots < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidShots, shots)
	}
	set, err := Measure(st, measured, target)
	if err != nil {
		return nil, err
	}
	return SampleOutcomes(set, shots, src)
}

// SampleOutcomes draws shots outcomes from an already computed outcome set
func SampleOutcomes(set *OutcomeSet, shots int, src rand.Source) (Counts, error) {
	if shots < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidShots, shots)
	}
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	rng := rand.New(src)

	cdf := make([]float64, len(set.Outcomes))
	last := -1
	total := 0.0
	for j, o := range set.Outcomes {
		if o.Possible() {
			total += o.Probability
			last = j
		}
		cdf[j] = total
	}
	if last < 0 {
		return nil, fmt.Errorf("%w: no possible outcome", ErrZeroState)
	}

	draws := make([]int, len(cdf))
	for s := 0; s < shots; s++ {
		u := rng.Float64() * total
		j := sort.Search(len(cdf), func(i int) bool { return cdf[i] > u })
		if j >= len(cdf) {
			j = last
		}
		draws[j]++
	}

	counts := make(Counts)
	for j, n := range draws {
		if n > 0 {
			counts[FormatBits(set.Outcomes[j].Bits)] = n
		}
	}
	return counts, nil
}
