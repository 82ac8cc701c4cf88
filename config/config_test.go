package config_test

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/eak1mov/go-libfragments/config"
	"github.com/eak1mov/go-libfragments/layer"
	"github.com/eak1mov/go-libfragments/tile"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := config.Parse(nil)
	require.NoError(t, err)
	require.Equal(t, config.Defaults(), cfg)
	require.Equal(t, tile.DefaultSize, cfg.FragmentSize())

	r, err := cfg.Registry()
	require.NoError(t, err)
	require.Equal(t, len(layer.DefaultSpecs()), r.Len())

	logger, err := cfg.Logger()
	require.NoError(t, err)
	require.NotNil(t, logger)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.toml")
	data := `
[map]
fragment_size = 256
pick_radius = 12.5

[generation]
workers = 2

[logging]
level = "debug"
format = "json"

[[layers]]
id = 3
name = "Ocean Monuments"
visible = true

[[layers]]
id = 6
name = "World Spawn"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, tile.Size(256), cfg.FragmentSize())
	require.EqualValues(t, 1, cfg.Map.ViewMargin)
	require.Equal(t, 12.5, cfg.Map.PickRadius)
	require.Equal(t, 2, cfg.Generation.Workers)
	require.Equal(t, 256, cfg.Generation.QueueCapacity)
	require.Equal(t, []layer.Spec{
		{ID: 3, Name: "Ocean Monuments", Visible: true},
		{ID: 6, Name: "World Spawn"},
	}, cfg.Layers)

	_, err = cfg.Logger()
	require.NoError(t, err)
}

func TestLayersFile(t *testing.T) {
	dir := t.TempDir()
	layersPath := filepath.Join(dir, "layers.yaml")
	require.NoError(t, os.WriteFile(layersPath, []byte("- id: 8\n  name: Players\n  visible: true\n"), 0o644))

	cfg, err := config.Parse([]byte("layers_file = " + strconv.Quote(layersPath) + "\n"))
	require.NoError(t, err)

	r, err := cfg.Registry()
	require.NoError(t, err)
	require.Equal(t, []int{layer.Player}, r.IDs())

	cfg.LayersFile = filepath.Join(dir, "missing.yaml")
	_, err = cfg.Registry()
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadMissing(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestInvalid(t *testing.T) {
	testCases := map[string]string{
		"fragment size": "[map]\nfragment_size = 0\n",
		"margin":        "[map]\nview_margin = -1\n",
		"radius":        "[map]\npick_radius = -3.0\n",
		"workers":       "[generation]\nworkers = 0\n",
		"format":        "[logging]\nformat = \"xml\"\n",
		"level":         "[logging]\nlevel = \"loud\"\n",
		"layers":        "[[layers]]\nid = 1\nname = \"a\"\n[[layers]]\nid = 1\nname = \"b\"\n",
	}
	for name, data := range testCases {
		t.Run(name, func(t *testing.T) {
			_, err := config.Parse([]byte(data))
			require.ErrorIs(t, err, config.ErrInvalidConfig)
		})
	}

	_, err := config.Parse([]byte("[map\n"))
	require.Error(t, err)
	require.NotErrorIs(t, err, config.ErrInvalidConfig)
}
