// Package analysis holds the contract shared by the risk, anomaly and pattern engines.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/anshc022/suraksha-ai-service/internal/models"
)

// Gateway is the data access contract the engines depend on.
// Reads may fail; writes are fire-and-forget and never report back.
type Gateway interface {
	GetIncidentsInArea(ctx context.Context, q models.AreaQuery) ([]models.Incident, error)
	GetPanicAlertsInArea(ctx context.Context, q models.AreaQuery) ([]models.PanicAlert, error)
	// GetUserLocationHistory returns points in ascending time order.
	GetUserLocationHistory(ctx context.Context, userID string, hoursBack int) ([]models.TelemetryPoint, error)
	StoreRiskPrediction(ctx context.Context, rec models.RiskPredictionRecord)
	StoreAnomalyDetection(ctx context.Context, rec models.AnomalyDetectionRecord)
}

// Outcome tells a computed result apart from a documented default.
type Outcome string

const (
	OutcomeComputed Outcome = "computed"
	OutcomeFallback Outcome = "fallback"
)

// ErrInsufficientData marks inputs too small to analyse.
var ErrInsufficientData = errors.New("insufficient data")

// Result carries an engine value together with how it was obtained.
// Err is set only for fallbacks and names the cause.
type Result[T any] struct {
	Value   T
	Outcome Outcome
	Err     error
}

// Computed wraps a normally computed value.
func Computed[T any](v T) Result[T] {
	return Result[T]{Value: v, Outcome: OutcomeComputed}
}

// Fallback wraps a default, or a value computed from partly degraded inputs,
// produced because of err.
func Fallback[T any](v T, err error) Result[T] {
	return Result[T]{Value: v, Outcome: OutcomeFallback, Err: err}
}

// IsFallback reports whether the value is a default or degraded.
func (r Result[T]) IsFallback() bool {
	return r.Outcome == OutcomeFallback
}

// PanicError is returned by Guard when fn panicked.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Guard runs fn and converts a panic into a *PanicError.
func Guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	return fn()
}

// GuardValue is Guard for functions that produce a value.
func GuardValue[T any](fn func() (T, error)) (v T, err error) {
	err = Guard(func() error {
		var inner error
		v, inner = fn()
		return inner
	})
	return v, err
}
