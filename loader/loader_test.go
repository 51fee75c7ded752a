package loader

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/stevegt/goadapt"
	"github.com/stevegt/perceptron"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, txt string) (path string) {
	path = filepath.Join(t.TempDir(), name)
	err := os.WriteFile(path, []byte(txt), 0644)
	require.NoError(t, err)
	return
}

func TestLoadConfiguration(t *testing.T) {
	path := writeFile(t, "config.json", `{
		"NumberOfInputUnits": 1,
		"LayersInfo": [
			{"NumberOfUnits": 2, "ActivationFunction": "tanh"},
			{"NumberOfUnits": 2, "ActivationFunction": "tanh"},
			{"NumberOfUnits": 1, "ActivationFunction": "linear"}
		]
	}`)
	cfg, err := LoadConfiguration(path)
	require.NoError(t, err)
	Tassert(t, cfg.NumberOfInputUnits == 1, cfg)
	Tassert(t, len(cfg.LayersInfo) == 3, cfg)
	Tassert(t, cfg.LayersInfo[2].ActivationFunction == "linear", cfg)

	sexp := writeFile(t, "config"+ShapeExt, "(curve 1 (tanh 2) (tanh 2) (linear 1))\n")
	fromShape, err := LoadConfiguration(sexp)
	require.NoError(t, err)
	require.Equal(t, cfg, fromShape)

	_, err = perceptron.NewNetwork(cfg)
	require.NoError(t, err)
}

func TestLoadConfigurationErrors(t *testing.T) {
	cases := map[string]string{
		"corrupted":     `{"NumberOfInputUnits": 1,`,
		"no inputs key": `{"LayersInfo": [{"NumberOfUnits": 1, "ActivationFunction": "linear"}]}`,
		"no layers key": `{"NumberOfInputUnits": 1}`,
		"wrong type":    `{"NumberOfInputUnits": "one", "LayersInfo": []}`,
		"zero inputs":   `{"NumberOfInputUnits": 0, "LayersInfo": [{"NumberOfUnits": 1, "ActivationFunction": "linear"}]}`,
		"empty layer":   `{"NumberOfInputUnits": 1, "LayersInfo": [{"NumberOfUnits": 0, "ActivationFunction": "linear"}]}`,
		"unknown act":   `{"NumberOfInputUnits": 1, "LayersInfo": [{"NumberOfUnits": 1, "ActivationFunction": "relu"}]}`,
		"not an object": `[1, 2]`,
	}
	for name, txt := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfiguration(writeFile(t, "config.json", txt))
			require.ErrorIs(t, err, ErrInvalid)
		})
	}

	_, err := LoadConfiguration(writeFile(t, "bad"+ShapeExt, "(curve 1 (tanh 2)"))
	require.ErrorIs(t, err, ErrInvalid)

	_, err = LoadConfiguration(writeFile(t, "relu"+ShapeExt, "(curve 1 (relu 2) (linear 1))"))
	require.ErrorIs(t, err, ErrInvalid)
	require.Contains(t, err.Error(), "unknown activation function relu")

	_, err = LoadConfiguration(writeFile(t, "empty"+ShapeExt, ""))
	require.ErrorIs(t, err, ErrInvalid)

	_, err = LoadConfiguration(filepath.Join(t.TempDir(), "missing.json"))
	require.ErrorIs(t, err, ErrInvalid)
	require.Contains(t, err.Error(), "file does not exist")

	_, err = LoadConfiguration(t.TempDir())
	require.ErrorIs(t, err, ErrInvalid)
	require.Contains(t, err.Error(), "not a file")
}

func TestLoadTrainData(t *testing.T) {
	path := writeFile(t, "data.json", `{"Data": [[-0.5, -0.5], [0.5, 0.5], [1, -1]]}`)
	data, err := LoadTrainData(path)
	require.NoError(t, err)
	require.Equal(t, perceptron.Pairs([][2]float64{{-0.5, -0.5}, {0.5, 0.5}, {1, -1}}), data)
}

func TestLoadTrainDataErrors(t *testing.T) {
	cases := map[string]struct {
		txt, msg string
	}{
		"corrupted":    {`{"Data": [[0.1, 0.2]`, "file is corrupted"},
		"no data":      {`{"Samples": [[0.1, 0.2]]}`, `the file has no "Data"`},
		"empty data":   {`{"Data": []}`, `the file has no "Data"`},
		"short sample": {`{"Data": [[0.1, 0.2], [0.3]]}`, "wrong number of elements in sample 1"},
		"long sample":  {`{"Data": [[0.1, 0.2, 0.3]]}`, "wrong number of elements in sample 0"},
		"string":       {`{"Data": [[0.1, 0.2], [0.1, 0.2], ["a", 0.2]]}`, "wrong type of element in sample 2"},
		"null target":  {`{"Data": [[0.1, null]]}`, "wrong type of element in sample 0"},
		"null input":   {`{"Data": [[0.1, 0.2], [null, 0.2]]}`, "wrong type of element in sample 1"},
		"input range":  {`{"Data": [[1.5, 0.2]]}`, "wrong range of element in sample 0"},
		"target range": {`{"Data": [[0.1, 0.2], [0.1, -1.01]]}`, "wrong range of element in sample 1"},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			data, err := LoadTrainData(writeFile(t, "data.json", c.txt))
			require.ErrorIs(t, err, ErrInvalid)
			require.Contains(t, err.Error(), c.msg)
			Tassert(t, data == nil, data)
		})
	}
}
