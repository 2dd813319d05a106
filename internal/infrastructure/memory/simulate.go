package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/rimselmen123/stock-gestion-de-produit/internal/domain"
	"github.com/rimselmen123/stock-gestion-de-produit/pkg/config"
)

// Simulator reproduce las condiciones de un backend real sobre los stores en
// memoria: latencia uniforme en [DelayMin, DelayMax] e inyección de errores
// con probabilidad ErrorRate. Un Simulator nil no hace nada, lo que permite
// tests deterministas sin configuración extra.
type Simulator struct {
	delayMin  time.Duration
	delayMax  time.Duration
	errorRate float64

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewSimulator construye el simulador a partir de la configuración mock.
func NewSimulator(cfg config.MockConfig) *Simulator {
	return &Simulator{
		delayMin:  cfg.DelayMin,
		delayMax:  cfg.DelayMax,
		errorRate: cfg.ErrorRate,
		rnd:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Wait espera la latencia artificial respetando la cancelación del ctx.
func (s *Simulator) Wait(ctx context.Context) error {
	if s == nil || s.delayMax <= 0 {
		return nil
	}
	span := s.delayMax - s.delayMin
	delay := s.delayMin
	if span > 0 {
		s.mu.Lock()
		delay += time.Duration(s.rnd.Int63n(int64(span)))
		s.mu.Unlock()
	}
	select {
	case <-ctx.Done():
		return domain.NetworkError(ctx.Err().Error())
	case <-time.After(delay):
		return nil
	}
}

// Inject falla con probabilidad ErrorRate.
func (s *Simulator) Inject() error {
	if s == nil || s.errorRate <= 0 {
		return nil
	}
	s.mu.Lock()
	p := s.rnd.Float64()
	s.mu.Unlock()
	if p < s.errorRate {
		return domain.SimulatedError()
	}
	return nil
}

// Simulate aplica latencia y luego la inyección de error, en ese orden.
func (s *Simulator) Simulate(ctx context.Context) error {
	if err := s.Wait(ctx); err != nil {
		return err
	}
	return s.Inject()
}
