package health

import (
	"math"
	"sync"
)

// Store owns the process-wide health snapshot. All access goes through the mutex;
// each call is an independent read-modify-write with no cross-call transaction.
type Store struct {
	mu        sync.RWMutex
	metrics   Metrics
	stepsGoal int
}

// NewStore creates a store with zeroed metrics and the given steps goal (clamped to >= 1).
func NewStore(stepsGoal int) *Store {
	s := &Store{stepsGoal: clampMin(stepsGoal, 1)}
	s.metrics = s.defaults()
	return s
}

func (s *Store) defaults() Metrics {
	return Metrics{StepsGoal: s.stepsGoal}
}

// Get returns a copy of the current snapshot.
func (s *Store) Get() Metrics {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.metrics
}

// Update applies every present field, each clamped into its legal range.
func (s *Store) Update(u Update) Metrics {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u.Steps != nil {
		s.metrics.Steps = clampMin(*u.Steps, 0)
	}
	if u.StepsGoal != nil {
		s.metrics.StepsGoal = clampMin(*u.StepsGoal, 1)
	}
	if u.HeartRate != nil {
		s.metrics.HeartRate = clampHeartRate(*u.HeartRate)
	}
	if u.SleepHours != nil {
		s.metrics.SleepHours = clampSleep(*u.SleepHours)
	}
	if u.ActiveMinutes != nil {
		s.metrics.ActiveMinutes = clampMin(*u.ActiveMinutes, 0)
	}
	return s.metrics
}

func (s *Store) SetSteps(steps int) Metrics {
	return s.Update(Update{Steps: &steps})
}

func (s *Store) SetHeartRate(bpm int) Metrics {
	return s.Update(Update{HeartRate: &bpm})
}

func (s *Store) SetSleep(hours float64) Metrics {
	return s.Update(Update{SleepHours: &hours})
}

func (s *Store) SetActiveMinutes(minutes int) Metrics {
	return s.Update(Update{ActiveMinutes: &minutes})
}

// Reset restores the startup defaults.
func (s *Store) Reset() Metrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metrics = s.defaults()
	return s.metrics
}

func clampMin(v, lo int) int {
	if v < lo {
		return lo
	}
	return v
}

func clampHeartRate(v int) int {
	if v < 0 {
		return 0
	}
	if v > MaxHeartRate {
		return MaxHeartRate
	}
	return v
}

func clampSleep(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > MaxSleepHours {
		return MaxSleepHours
	}
	return v
}
