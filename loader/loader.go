// Package loader reads network configurations and training data from
// files, rejecting anything a Network could not use.
package loader

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	. "github.com/stevegt/goadapt"
	"github.com/stevegt/perceptron"
	"github.com/stevegt/perceptron/shape"
)

// ErrInvalid is the cause of every error returned for a file that
// cannot be loaded.
var ErrInvalid = errors.New("invalid file")

// ShapeExt is the extension of configuration files written as shape
// expressions rather than JSON.
const ShapeExt = ".sexp"

func invalidf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalid, format, args...)
}

// readFile returns the contents of path after checking that it names
// an existing regular file.
func readFile(path string) (buf []byte, err error) {
	defer Return(&err)
	abs, err := filepath.Abs(path)
	Ck(err)
	info, err := os.Stat(abs)
	if os.IsNotExist(err) {
		return nil, invalidf("%s: file does not exist", path)
	}
	Ck(err)
	if !info.Mode().IsRegular() {
		return nil, invalidf("%s: not a file", path)
	}
	buf, err = os.ReadFile(abs)
	Ck(err)
	return
}

// LoadConfiguration reads a configuration from path.  Files ending in
// ShapeExt hold a shape expression; anything else must be a JSON
// object with NumberOfInputUnits and LayersInfo.
func LoadConfiguration(path string) (cfg perceptron.Configuration, err error) {
	buf, err := readFile(path)
	if err != nil {
		return
	}

	if filepath.Ext(path) == ShapeExt {
		var s *shape.Shape
		s, err = shape.Parse(string(buf))
		if err != nil {
			return cfg, errors.Wrapf(ErrInvalid, "%s: %v", path, err)
		}
		cfg, err = s.Configuration()
		if err != nil {
			return cfg, errors.Wrapf(ErrInvalid, "%s: %v", path, err)
		}
		return
	}

	var fields map[string]json.RawMessage
	err = json.Unmarshal(buf, &fields)
	if err != nil {
		return cfg, invalidf("%s: file is corrupted: %v", path, err)
	}
	for _, key := range []string{"NumberOfInputUnits", "LayersInfo"} {
		if _, ok := fields[key]; !ok {
			return cfg, invalidf("%s: the file has no %q", path, key)
		}
	}
	err = json.Unmarshal(buf, &cfg)
	if err != nil {
		return cfg, invalidf("%s: wrong type of element: %v", path, err)
	}
	err = cfg.Validate()
	if err != nil {
		return perceptron.Configuration{}, errors.Wrapf(ErrInvalid, "%s: %v", path, err)
	}
	return
}

// trainData is the on-disk form of a training set.
type trainData struct {
	Data []json.RawMessage
}

// LoadTrainData reads a one-input, one-output training set from path:
//
//	{"Data": [[x, t], ...]}
//
// Every value must lie in [-1, 1].
func LoadTrainData(path string) (data perceptron.DataSet, err error) {
	buf, err := readFile(path)
	if err != nil {
		return
	}

	var td trainData
	err = json.Unmarshal(buf, &td)
	if err != nil {
		return nil, invalidf("%s: file is corrupted: %v", path, err)
	}
	if len(td.Data) == 0 {
		return nil, invalidf("%s: the file has no \"Data\"", path)
	}

	pairs := make([][2]float64, len(td.Data))
	for i, raw := range td.Data {
		// pointers tell null apart from 0
		var sample []*float64
		err = json.Unmarshal(raw, &sample)
		if err != nil {
			return nil, invalidf("%s: wrong type of element in sample %d", path, i)
		}
		if len(sample) != 2 {
			return nil, invalidf("%s: wrong number of elements in sample %d", path, i)
		}
		for _, v := range sample {
			if v == nil {
				return nil, invalidf("%s: wrong type of element in sample %d", path, i)
			}
			if math.IsNaN(*v) || *v < -1 || *v > 1 {
				return nil, invalidf("%s: wrong range of element in sample %d", path, i)
			}
		}
		pairs[i] = [2]float64{*sample[0], *sample[1]}
	}
	return perceptron.Pairs(pairs), nil
}
