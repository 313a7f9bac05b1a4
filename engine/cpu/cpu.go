// Package cpu exposes the reference CPU compute engine.
package cpu

import (
	internalcpu "github.com/rjkoch/diffpy.srfit/internal/engine/cpu"
	"github.com/rjkoch/diffpy.srfit/ufunc"
)

// Engine executes elementwise kernels in pure Go.
type Engine = internalcpu.Engine

// Compile-time check that Engine implements ufunc.Engine.
var _ ufunc.Engine = (*Engine)(nil)

// New creates a new CPU engine.
//
// Example:
//
//	op := ufunc.NewOperator(cpu.New())
func New() *Engine {
	return internalcpu.New()
}
