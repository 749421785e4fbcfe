package testkit

import (
	"math/rand"
	"time"

	"lotogen/adapters/excel"
	"lotogen/domain/lottery"
)

// DrawGeneratorConfig configures the synthetic draw history generator
type DrawGeneratorConfig struct {
	Draws        int       `json:"draws"`
	StartContest int       `json:"start_contest"`
	StartDate    time.Time `json:"start_date"`
	IntervalDays int       `json:"interval_days"`
	HotNumbers   []int     `json:"hot_numbers"` // drawn more often than the rest
	HotWeight    float64   `json:"hot_weight"`  // relative weight of hot numbers, 1 = uniform
	Seed         int64     `json:"seed"`
}

// DefaultDrawConfig returns sensible defaults for synthetic history generation
func DefaultDrawConfig() DrawGeneratorConfig {
	return DrawGeneratorConfig{
		Draws:        200,
		StartContest: 1,
		StartDate:    time.Date(2003, 9, 29, 0, 0, 0, 0, time.UTC),
		IntervalDays: 2,
		HotWeight:    1,
		Seed:         42,
	}
}

// DrawGenerator generates reproducible draw histories
type DrawGenerator struct {
	config DrawGeneratorConfig
	rng    *rand.Rand
}

// NewDrawGenerator creates a new draw generator
func NewDrawGenerator(config DrawGeneratorConfig) *DrawGenerator {
	if config.HotWeight <= 0 {
		config.HotWeight = 1
	}
	return &DrawGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// GenerateDraws generates the configured number of draws, oldest first
func (g *DrawGenerator) GenerateDraws() ([]lottery.Draw, error) {
	weights := g.weights()
	draws := make([]lottery.Draw, 0, g.config.Draws)
	for i := 0; i < g.config.Draws; i++ {
		var date time.Time
		if !g.config.StartDate.IsZero() {
			date = g.config.StartDate.AddDate(0, 0, i*g.config.IntervalDays)
		}
		contest := 0
		if g.config.StartContest > 0 {
			contest = g.config.StartContest + i
		}
		d, err := lottery.NewDraw(contest, date, g.pick(weights))
		if err != nil {
			return nil, err
		}
		draws = append(draws, d)
	}
	return draws, nil
}

// GenerateCorpus wraps GenerateDraws in a validated corpus
func (g *DrawGenerator) GenerateCorpus() (lottery.Corpus, error) {
	draws, err := g.GenerateDraws()
	if err != nil {
		return lottery.Corpus{}, err
	}
	return lottery.NewCorpus(draws)
}

// WriteToFile generates draws and saves them as xlsx or csv
func (g *DrawGenerator) WriteToFile(path string) ([]lottery.Draw, error) {
	draws, err := g.GenerateDraws()
	if err != nil {
		return nil, err
	}
	return draws, excel.WriteDraws(path, draws)
}

func (g *DrawGenerator) weights() [lottery.UniverseSize]float64 {
	var w [lottery.UniverseSize]float64
	for i := range w {
		w[i] = 1
	}
	for _, n := range g.config.HotNumbers {
		if n >= lottery.MinNumber && n <= lottery.MaxNumber {
			w[n-1] = g.config.HotWeight
		}
	}
	return w
}

// pick samples fifteen distinct numbers proportionally to weight
func (g *DrawGenerator) pick(weights [lottery.UniverseSize]float64) []int {
	numbers := make([]int, 0, lottery.DrawSize)
	for len(numbers) < lottery.DrawSize {
		total := 0.0
		for _, w := range weights {
			total += w
		}
		r := g.rng.Float64() * total
		chosen := -1
		for i, w := range weights {
			if w == 0 {
				continue
			}
			chosen = i
			if r < w {
				break
			}
			r -= w
		}
		numbers = append(numbers, chosen+1)
		weights[chosen] = 0
	}
	return numbers
}
