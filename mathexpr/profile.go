package mathexpr

import (
	"fmt"
	"maps"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/midbel/exprs/parse"
)

// Profile describes an arithmetic dialect: its operators grouped by
// precedence (lowest first), its unary operators, the functions that can be
// called and the constants bound before evaluation.
type Profile struct {
	Levels    [][]string         `yaml:"levels" toml:"levels"`
	Unary     []string           `yaml:"unary" toml:"unary"`
	Functions []string           `yaml:"functions" toml:"functions"`
	MaxDepth  int                `yaml:"max-depth" toml:"max-depth"`
	Constants map[string]float64 `yaml:"constants" toml:"constants"`
}

func DefaultProfile() Profile {
	return Profile{
		Levels: [][]string{
			{"+", "-"},
			{"*", "/", "%"},
			{"^"},
		},
		Unary:     []string{"-", "+"},
		Functions: Builtins(),
		Constants: map[string]float64{
			"pi": math.Pi,
			"e":  math.E,
		},
	}
}

// LoadProfile reads a profile from a YAML or a TOML file, the format being
// given by the extension of the file. Fields missing from the file keep their
// default value.
func LoadProfile(file string) (Profile, error) {
	buf, err := os.ReadFile(file)
	if err != nil {
		return Profile{}, err
	}
	var p Profile
	switch ext := strings.ToLower(filepath.Ext(file)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(buf, &p)
	case ".toml":
		err = toml.Unmarshal(buf, &p)
	default:
		return p, fmt.Errorf("%s: unsupported profile format %q", file, ext)
	}
	if err != nil {
		return p, fmt.Errorf("%s: %w", file, err)
	}
	return p.merge(DefaultProfile()), nil
}

func (p Profile) merge(def Profile) Profile {
	if len(p.Levels) == 0 {
		p.Levels = def.Levels
	}
	if p.Unary == nil {
		p.Unary = def.Unary
	}
	if p.Functions == nil {
		p.Functions = def.Functions
	}
	if p.Constants == nil {
		p.Constants = def.Constants
	}
	return p
}

func (p Profile) clone() Profile {
	c := p
	c.Levels = make([][]string, len(p.Levels))
	for i := range p.Levels {
		c.Levels[i] = slices.Clone(p.Levels[i])
	}
	c.Unary = slices.Clone(p.Unary)
	c.Functions = slices.Clone(p.Functions)
	c.Constants = maps.Clone(p.Constants)
	return c
}

func (p Profile) grammar() (parse.Grammar[string], error) {
	g := parse.Grammar[string]{
		LeftParen:   Lparen,
		RightParen:  Rparen,
		Comma:       Comma,
		Identifiers: []parse.Type{Number, Ident},
	}
	for i, ops := range p.Levels {
		var list []parse.Type
		for _, o := range ops {
			k, ok := kindOf(o)
			if !ok {
				return g, fmt.Errorf("%w: level %d: unknown operator %q", parse.ErrConfig, i, o)
			}
			list = append(list, k)
		}
		g.Binaries = append(g.Binaries, list)
	}
	for _, o := range p.Unary {
		k, ok := kindOf(o)
		if !ok {
			return g, fmt.Errorf("%w: unknown unary operator %q", parse.ErrConfig, o)
		}
		g.Unaries = append(g.Unaries, k)
	}
	funcs := make(map[string]struct{})
	for _, f := range p.Functions {
		if _, ok := builtins[f]; !ok {
			return g, fmt.Errorf("%w: unknown function %q", parse.ErrConfig, f)
		}
		funcs[f] = struct{}{}
	}
	g.Functions = func(name string) bool {
		_, ok := funcs[name]
		return ok
	}
	return g, nil
}

// levels maps each binary operator to its precedence level.
func (p Profile) levels() map[string]int {
	set := make(map[string]int)
	for i, ops := range p.Levels {
		for _, o := range ops {
			set[o] = i
		}
	}
	return set
}
