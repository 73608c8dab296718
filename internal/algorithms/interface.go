// Named algorithms the batch pipeline can run
package algorithms

import (
	"fmt"
	"io"
	"strings"

	"gocv.io/x/gocv"
)

// Algorithm is an image operation driven by a loose parameter map, the shape
// in which flags and config files hand parameters over
type Algorithm interface {
	Name() string
	Description() string
	Params() []Param
	Validate(params map[string]interface{}) error
	Apply(input gocv.Mat, params map[string]interface{}) (gocv.Mat, error)
}

// Param documents one accepted parameter key
type Param struct {
	Key         string
	Kind        string // "int" or "enum"
	Default     interface{}
	Description string
	Options     []string // enum values
}

var registry = map[string]Algorithm{}

// Register makes a available under key. A second registration replaces the first.
func Register(key string, a Algorithm) {
	registry[key] = a
}

// Lookup returns the algorithm registered under key
func Lookup(key string) (Algorithm, error) {
	a, ok := registry[key]
	if !ok {
		return nil, fmt.Errorf("algorithm not found: %s", key)
	}
	return a, nil
}

func IsValidAlgorithm(key string) bool {
	_, ok := registry[key]
	return ok
}

func Apply(key string, input gocv.Mat, params map[string]interface{}) (gocv.Mat, error) {
	a, err := Lookup(key)
	if err != nil {
		return gocv.NewMat(), err
	}
	return a.Apply(input, params)
}

func ValidateParameters(key string, params map[string]interface{}) error {
	a, err := Lookup(key)
	if err != nil {
		return err
	}
	return a.Validate(params)
}

// Defaults maps every parameter key of a to its default value
func Defaults(a Algorithm) map[string]interface{} {
	defaults := make(map[string]interface{}, len(a.Params()))
	for _, p := range a.Params() {
		defaults[p.Key] = p.Default
	}
	return defaults
}

// WriteUsage writes a parameter reference for the algorithm under key
func WriteUsage(w io.Writer, key string) error {
	a, err := Lookup(key)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s (%s): %s\n", a.Name(), key, a.Description())
	for _, p := range a.Params() {
		line := fmt.Sprintf("  %-12s %-5s default %-11v %s", p.Key, p.Kind, p.Default, p.Description)
		if len(p.Options) > 0 {
			line += " [" + strings.Join(p.Options, ", ") + "]"
		}
		fmt.Fprintln(w, line)
	}
	return nil
}

func init() {
	Register(MotionBlurName, NewMotionBlur())
}
