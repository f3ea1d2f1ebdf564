package advanced

import (
	"strings"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLoadConfig(t *testing.T) {
	config, err := LoadConfig(strings.NewReader(`
predicates: exact
duplicates: reject
super_triangle_scale: 500
spatial_index: false
`))
	require.NoError(t, err)
	assert.Equal(t, "exact", config.Predicates)
	assert.Equal(t, 500.0, config.SuperTriangleScale)
	require.NotNil(t, config.SpatialIndex)
	assert.False(t, *config.SpatialIndex)

	opts, err := config.Options()
	require.NoError(t, err)
	mesh, err := NewMesh(r2.RectFromPoints(unitSquare...), opts...)
	require.NoError(t, err)

	assert.Equal(t, ExactPredicates{}, mesh.pred)
	assert.Equal(t, DuplicateReject, mesh.options.Duplicates)
	assert.Equal(t, 500.0, mesh.options.SuperTriangleScale)
	assert.Nil(t, mesh.index)
}

func TestLoadConfigDefaults(t *testing.T) {
	config, err := LoadConfig(strings.NewReader(""))
	require.NoError(t, err)

	opts, err := config.Options()
	require.NoError(t, err)
	mesh, err := NewMesh(r2.RectFromPoints(unitSquare...), opts...)
	require.NoError(t, err)

	assert.Equal(t, FloatPredicates{}, mesh.pred)
	assert.Equal(t, DuplicateIgnore, mesh.options.Duplicates)
	assert.Equal(t, float64(DefaultSuperTriangleScale), mesh.options.SuperTriangleScale)
	assert.NotNil(t, mesh.index)
}

func TestLoadConfigEpsilonAndLogLevel(t *testing.T) {
	config, err := LoadConfig(strings.NewReader("epsilon: 1e-9\nlog_level: warn\n"))
	require.NoError(t, err)

	opts, err := config.Options()
	require.NoError(t, err)
	mesh, err := NewMesh(r2.RectFromPoints(unitSquare...), opts...)
	require.NoError(t, err)
	assert.Equal(t, FloatPredicates{Epsilon: 1e-9}, mesh.pred)
	assert.NotNil(t, mesh.log.Check(zapcore.WarnLevel, "skipped point"))
	assert.Nil(t, mesh.log.Check(zapcore.InfoLevel, "inserted vertex"))
}

func TestLoadConfigErrors(t *testing.T) {
	for name, yaml := range map[string]string{
		"unknown predicates": "predicates: fuzzy\n",
		"unknown duplicates": "duplicates: perturb\n",
		"negative epsilon":   "epsilon: -1\n",
		"unknown field":      "scale: 3\n",
		"bad log level":      "log_level: chatty\n",
		"not yaml":           "predicates: [\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(strings.NewReader(yaml))
			assert.ErrorIs(t, err, ErrConfiguration)
		})
	}
}
