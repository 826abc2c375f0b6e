// Package model reads a frame description (YAML, or JSON which is a subset
// of it) and turns it into a project.
package model

import (
	"bytes"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/alexiusacademia/goframe/internal/errors"
)

// Model is the file layout.
type Model struct {
	Supports     []Support     `yaml:"supports"`
	Nodes        []Node        `yaml:"nodes"`
	Bars         []Bar         `yaml:"bars"`
	Actions      []Action      `yaml:"actions"`
	Combinations []Combination `yaml:"combinations"`
}

type Support struct {
	Name     string   `yaml:"name"`
	Restrain []string `yaml:"restrain"` // any of ux, uy, uz, rx, ry, rz
}

type Node struct {
	Name       string     `yaml:"name"`
	Position   [3]float64 `yaml:"position"`
	RelativeTo string     `yaml:"relative_to"`
	Support    string     `yaml:"support"`
}

type Bar struct {
	Name         string   `yaml:"name"`
	Start        string   `yaml:"start"`
	End          string   `yaml:"end"`
	Intermediate []string `yaml:"intermediate"`
}

type Action struct {
	Name     string     `yaml:"name"`
	Category *int       `yaml:"category"`
	Psi      Psi        `yaml:"psi"`
	Loads    []LoadSpec `yaml:"loads"`
	Results  *Results   `yaml:"results"`
}

// Psi holds user overrides of the category factors.
type Psi struct {
	Psi0 *float64 `yaml:"psi0"`
	Psi1 *float64 `yaml:"psi1"`
	Psi2 *float64 `yaml:"psi2"`
}

// LoadSpec is a tagged union; Type selects which fields apply.
//
//	uniform: bar, start, end (defaults to the bar length), q, direction
//	point:   bar, at, p, direction
//	nodal:   node, force
type LoadSpec struct {
	Type      string     `yaml:"type"`
	Bar       string     `yaml:"bar"`
	Node      string     `yaml:"node"`
	Start     float64    `yaml:"start"`
	End       *float64   `yaml:"end"`
	At        float64    `yaml:"at"`
	Q         float64    `yaml:"q"`
	P         float64    `yaml:"p"`
	Direction string     `yaml:"direction"`
	Force     [6]float64 `yaml:"force"`
}

// Results are precomputed solver outputs, DOF-major per node.
type Results struct {
	NodalEfforts  []float64 `yaml:"nodal_efforts"`
	Displacements []float64 `yaml:"displacements"`
	Forces        []float64 `yaml:"forces"`
}

type Combination struct {
	Name    string  `yaml:"name"`
	Entries []Entry `yaml:"entries"`
}

type Entry struct {
	Action string  `yaml:"action"`
	Psi    string  `yaml:"psi"`
	Weight float64 `yaml:"weight"`
}

// Parse decodes a model. Unknown keys are rejected.
func Parse(r io.Reader) (*Model, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var m Model
	if err := dec.Decode(&m); err != nil {
		if err == io.EOF {
			return &m, nil
		}
		return nil, errors.WithCode(err, errors.CodeInvalidArgument, "failed to decode model")
	}
	return &m, nil
}

// Load reads and decodes the model at path.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithCode(err, errors.CodeInvalidArgument, "failed to read model")
	}
	m, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return m, nil
}
