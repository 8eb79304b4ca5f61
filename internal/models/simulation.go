package models

import (
	"time"
)

// Simulation is a named, persisted run: the inputs a user entered and the
// indicators computed from them.
type Simulation struct {
	ID          string    `json:"id" yaml:"id" validate:"required"`
	Name        string    `json:"name" yaml:"name" validate:"notblank,max=120"`
	Description string    `json:"description" yaml:"description" validate:"max=2000"`
	Date        time.Time `json:"date" yaml:"date"`
	UpdatedAt   time.Time `json:"updatedAt" yaml:"updatedAt"`
	Inputs      Input     `json:"inputs" yaml:"inputs"`
	Results     Output    `json:"results" yaml:"results"`
}

// Validate checks the identity fields and the inputs. Results are not
// validated: non-finite indicators are legal.
func (s *Simulation) Validate() error {
	return validateStruct(s)
}

// Clone returns an independent copy.
func (s *Simulation) Clone() *Simulation {
	c := *s
	return &c
}

// SimulationList is one page of simulations, newest first.
type SimulationList struct {
	Simulations []*Simulation
	Total       int
	Page        int
	PageSize    int
	TotalPages  int
}
