package pipeline

import (
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/oceanplot/pkg/errors"
)

// LoadConfig reads figure options from a TOML file. Keys use the snake_case
// names of the Options json tags, and boxes are an array of tables:
//
//	title = "Equatorial Pacific"
//	formats = ["svg", "png"]
//
//	[[boxes]]
//	name = "Niño 3.4"
//	lon = [-170, -120]
//	lat = [-5, 5]
//
// Unknown keys are rejected.
func LoadConfig(path string) (Options, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Options{}, errors.New(errors.ErrCodeFileNotFound, "config file not found: %s", path)
		}
		return Options{}, errors.Wrap(errors.ErrCodeInternal, err, "open config")
	}
	defer f.Close()

	o, err := DecodeConfig(f)
	if err != nil {
		return Options{}, errors.Wrap(errors.GetCode(err), err, "%s", path)
	}
	return o, nil
}

// DecodeConfig decodes TOML figure options from r. See [LoadConfig].
func DecodeConfig(r io.Reader) (Options, error) {
	var o Options
	md, err := toml.NewDecoder(r).Decode(&o)
	if err != nil {
		return Options{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Options{}, errors.New(errors.ErrCodeInvalidInput, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	return o, nil
}
