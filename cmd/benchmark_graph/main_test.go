package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedScenarios(t *testing.T) {
	scenarios, err := loadScenarios("")
	require.NoError(t, err)
	require.Len(t, scenarios, 6)
	assert.Equal(t, "simple component", scenarios[0].Name)
	assert.Equal(t, int64(600000), scenarios[0].Iterations)
	assert.Equal(t, 25, scenarios[3].Sources)
}

func TestLoadScenariosRejectsBadInput(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
		return path
	}

	_, err := loadScenarios(write("empty.yaml", "scenarios: []\n"))
	assert.ErrorContains(t, err, "no scenarios")

	_, err = loadScenarios(write("wide.yaml", `
scenarios:
  - name: too wide
    width: 100
    layers: 3
    static_fraction: 1
    sources: 65
    read_fraction: 1
    iterations: 1
`))
	assert.ErrorContains(t, err, "sources must be within 1..64")

	_, err = loadScenarios(write("broken.yaml", "scenarios: [\n"))
	assert.ErrorContains(t, err, "parsing scenarios")

	_, err = loadScenarios(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestRunGraphSmall(t *testing.T) {
	cfg := scenario{
		Name:           "tiny",
		Width:          2,
		Layers:         2,
		StaticFraction: 1,
		Sources:        2,
		ReadFraction:   1,
		Iterations:     2,
	}
	counter := new(int64)
	graph, err := makeGraph(cfg, counter)
	require.NoError(t, err)
	assert.Zero(t, *counter, "derived stores are lazy until subscribed")

	// sources start at 0 and 1; iteration 1 writes 2 into the second one
	sum := runGraph(graph, cfg)
	assert.Equal(t, 4, sum)
	assert.Equal(t, int64(4), *counter)
}

func TestRunScenarioReportsBestRun(t *testing.T) {
	best, err := runScenario(scenario{
		Name:           "small",
		Width:          4,
		Layers:         3,
		StaticFraction: 0.5,
		Sources:        3,
		ReadFraction:   0.5,
		Iterations:     20,
	}, 2)
	require.NoError(t, err)
	assert.Positive(t, best.count)
	assert.Less(t, best.duration.Nanoseconds(), int64(3600e9))
	assert.Equal(t, "4x3 3 sources dynamic read 50.00%", title(scenario{
		Width: 4, Layers: 3, Sources: 3, StaticFraction: 0.5, ReadFraction: 0.5,
	}))
}
