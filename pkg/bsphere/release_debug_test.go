//go:build bspheredebug

package bsphere_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chazu/meshfit/pkg/bsphere"
	"github.com/chazu/meshfit/pkg/geom"
)

func TestReleaseWhileStalePanics(t *testing.T) {
	b := bsphere.New()
	b.AddPoint(geom.V3(1, 1, 1))
	assert.PanicsWithValue(t, bsphere.ErrReleaseWhileDirty, b.ReleaseMemoryWithoutUpdate)

	b.Update()
	assert.NotPanics(t, b.ReleaseMemoryWithoutUpdate)
}
