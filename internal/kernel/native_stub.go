//go:build !native

package kernel

import (
	"context"

	"github.com/akoven/enslab/internal/ensemble"
)

type Native struct{}

func NewNative() *Native {
	return &Native{}
}

func (k *Native) Name() string    { return "native (not built)" }
func (k *Native) Available() bool { return false }

func (k *Native) Evaluate(ctx context.Context, configs []ensemble.Configuration) ([]float64, [][]ensemble.Vec3, error) {
	return nil, nil, ErrBridgeUnavailable
}
