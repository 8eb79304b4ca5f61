package seed

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/rs/zerolog/log"

	"github.com/ifplan/ifplan/internal/models"
	"github.com/ifplan/ifplan/internal/services/simulations"
)

// Creator stores a new simulation. Satisfied by *simulations.Service.
type Creator interface {
	Create(ctx context.Context, input simulations.CreateInput) (*models.Simulation, error)
}

// Config configures the demo data generator.
type Config struct {
	Count      int
	RandomSeed int64
	Base       models.Input
}

// DefaultConfig returns a default seed configuration built on base.
func DefaultConfig(base models.Input) Config {
	return Config{
		Count:      6,
		RandomSeed: 2024,
		Base:       base,
	}
}

// Generator generates demo simulations.
type Generator struct {
	store Creator
	cfg   Config
	rng   *rand.Rand

	usedNames map[string]bool
}

// NewGenerator creates a new demo data generator.
func NewGenerator(store Creator, cfg Config) *Generator {
	return &Generator{
		store:     store,
		cfg:       cfg,
		rng:       rand.New(rand.NewSource(cfg.RandomSeed)),
		usedNames: make(map[string]bool),
	}
}

// Generate creates cfg.Count simulations. The same seed always produces the
// same scenarios.
func (g *Generator) Generate(ctx context.Context) ([]*models.Simulation, error) {
	log.Info().Int("count", g.cfg.Count).Int64("seed", g.cfg.RandomSeed).Msg("starting demo data generation")

	if g.cfg.Count < 1 || g.cfg.Count > len(FarmNames)*len(FarmPrefixes) {
		return nil, fmt.Errorf("count must be between 1 and %d, got %d", len(FarmNames)*len(FarmPrefixes), g.cfg.Count)
	}

	sims := make([]*models.Simulation, 0, g.cfg.Count)
	for range g.cfg.Count {
		input, name, description := g.scenario()

		sim, err := g.store.Create(ctx, simulations.CreateInput{
			Name:        name,
			Description: description,
			Input:       input,
		})
		if err != nil {
			return sims, fmt.Errorf("creating %q: %w", name, err)
		}
		sims = append(sims, sim)
	}

	log.Info().Int("simulations", len(sims)).Msg("demo data generation complete")
	return sims, nil
}

// scenario combines a climate, a herd and a farm size on top of the base
// input. Economic parameters and multipliers come from the base unchanged.
func (g *Generator) scenario() (models.Input, string, string) {
	climate := Climates[g.rng.Intn(len(Climates))]
	herd := Herds[g.rng.Intn(len(Herds))]

	in := g.cfg.Base
	in.TemperaturaMinima = climate.TemperaturaMinima
	in.TemperaturaMaxima = climate.TemperaturaMaxima
	in.Precipitacao = climate.Precipitacao
	in.UmidadeRelativa = climate.UmidadeRelativa
	in.VelocidadeDoVento = climate.VelocidadeDoVento

	in.PesoCorporal = herd.PesoCorporal
	in.ProducaoDeLeite = g.jitter(herd.ProducaoDeLeite, 0.1, 1)
	in.TeorDeGorduraNoLeite = herd.Gordura
	in.TeorDePBNoLeite = herd.Proteina

	in.Area = float64(5 + g.rng.Intn(16)*5)
	in.NumeroDePiquetes = float64(12 + g.rng.Intn(5)*6)
	in.VacasEmLactacao = g.jitter(in.VacasEmLactacao, 0.08, 1)
	in.DoseDeN = float64(200 + g.rng.Intn(11)*100)
	in.AguaDisponivelParaIrrigacao = math.Round(in.Area * float64(20+g.rng.Intn(41)))

	name := g.farmName()
	description := fmt.Sprintf("%s, %s, %.0f ha", climate.Region, herd.Description, in.Area)
	return in, name, description
}

func (g *Generator) farmName() string {
	for {
		name := FarmPrefixes[g.rng.Intn(len(FarmPrefixes))] + " " + FarmNames[g.rng.Intn(len(FarmNames))]
		if !g.usedNames[name] {
			g.usedNames[name] = true
			return name
		}
	}
}

// jitter moves v by up to ±frac, rounded to digits decimals.
func (g *Generator) jitter(v, frac float64, digits int) float64 {
	p := math.Pow10(digits)
	return math.Round(v*(1+frac*(2*g.rng.Float64()-1))*p) / p
}
