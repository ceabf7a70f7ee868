// Package tab chains the parsing pipeline: preprocess, analyze,
// validate, build. Each stage is a pure function over its input and the
// whole parse fails fast on the first error with its source location.
package tab

import (
	"os"

	"github.com/tabscribe/tabscribe/analyze"
	"github.com/tabscribe/tabscribe/build"
	"github.com/tabscribe/tabscribe/model"
	"github.com/tabscribe/tabscribe/preprocess"
	"github.com/tabscribe/tabscribe/validate"
)

// Parse converts tab notation text into a validated score graph.
func Parse(text string) (*model.Score, error) {
	raw, err := analyze.Run(preprocess.Run(text))
	if err != nil {
		return nil, err
	}
	if err := validate.Run(raw); err != nil {
		return nil, err
	}
	return build.Run(raw)
}

func ParseFile(path string) (*model.Score, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(string(data))
}
