package network

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/MHowells/ciw/dists"
	"github.com/MHowells/ciw/routing"
)

// Config is the YAML representation of a network, used by the CLI.
//
// Example:
//
//	classes: [Customer]
//	nodes:
//	  - name: Entry
//	    servers: inf
//	    arrivals:
//	      Customer: {kind: exponential, rate: 1.5}
//	    services:
//	      Customer: {kind: deterministic, value: 0}
//	    routing:
//	      Customer: {kind: jsq, candidates: [2, 3, 4]}
type Config struct {
	Classes []string     `yaml:"classes"`
	Nodes   []NodeConfig `yaml:"nodes"`
}

// NodeConfig is the YAML representation of one service node.
type NodeConfig struct {
	Name          string                 `yaml:"name"`
	Servers       IntOrInf               `yaml:"servers"`
	QueueCapacity IntOrInf               `yaml:"queue_capacity"`
	Discipline    string                 `yaml:"discipline"`
	Arrivals      map[string]DistConfig  `yaml:"arrivals"`
	Services      map[string]DistConfig  `yaml:"services"`
	Routing       map[string]RouteConfig `yaml:"routing"`
}

// DistConfig selects a distribution by kind and parameters.
type DistConfig struct {
	Kind string `yaml:"kind"`

	Value  float64   `yaml:"value"`
	Rate   float64   `yaml:"rate"`
	Lower  float64   `yaml:"lower"`
	Mode   float64   `yaml:"mode"`
	Upper  float64   `yaml:"upper"`
	Shape  float64   `yaml:"shape"`
	Scale  float64   `yaml:"scale"`
	Mu     float64   `yaml:"mu"`
	Sigma  float64   `yaml:"sigma"`
	Mean   float64   `yaml:"mean"`
	Std    float64   `yaml:"std"`
	Values []float64 `yaml:"values"`
	Probs  []float64 `yaml:"probs"`
}

// RouteConfig selects a router by kind and parameters.
type RouteConfig struct {
	Kind       string    `yaml:"kind"`
	To         int       `yaml:"to"`
	Probs      []float64 `yaml:"probs"`
	Candidates []int     `yaml:"candidates"`
}

// IntOrInf is an integer that may be spelled "inf" in YAML.
type IntOrInf int

// UnmarshalYAML parses either an integer or the string "inf".
func (v *IntOrInf) UnmarshalYAML(node *yaml.Node) error {
	if strings.EqualFold(node.Value, "inf") {
		*v = Inf
		return nil
	}

	var i int
	if err := node.Decode(&i); err != nil {
		return fmt.Errorf("expected an integer or \"inf\", got %q", node.Value)
	}

	*v = IntOrInf(i)
	return nil
}

// LoadFile reads a YAML network description and builds the Network.
func LoadFile(path string) (*Network, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read network config: %w", err)
	}

	return LoadConfig(data)
}

// LoadConfig parses YAML bytes and builds the Network.
func LoadConfig(data []byte) (*Network, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse network config: %w", err)
	}

	return cfg.Build()
}

// Build converts the config into a validated Network.
func (c Config) Build() (*Network, error) {
	b := MakeBuilder().WithClasses(c.Classes...)

	for i, nc := range c.Nodes {
		node, err := nc.build()
		if err != nil {
			return nil, fmt.Errorf("node %d: %w", i+1, err)
		}

		b = b.WithNode(node)
	}

	return b.Build()
}

func (nc NodeConfig) build() (Node, error) {
	node := Node{
		Name:          nc.Name,
		Servers:       int(nc.Servers),
		QueueCapacity: int(nc.QueueCapacity),
		Arrivals:      map[string]dists.Distribution{},
		Services:      map[string]dists.Distribution{},
		Routing:       map[string]routing.Router{},
	}

	switch strings.ToLower(nc.Discipline) {
	case "", "fifo":
		node.Discipline = FIFO
	case "ps", "processor_sharing", "processor-sharing":
		node.Discipline = ProcessorSharing
	default:
		return Node{}, fmt.Errorf("unknown discipline %q", nc.Discipline)
	}

	for class, dc := range nc.Arrivals {
		d, err := dc.build()
		if err != nil {
			return Node{}, fmt.Errorf("arrivals for class %q: %w", class, err)
		}
		node.Arrivals[class] = d
	}

	for class, dc := range nc.Services {
		d, err := dc.build()
		if err != nil {
			return Node{}, fmt.Errorf("services for class %q: %w", class, err)
		}
		node.Services[class] = d
	}

	for class, rc := range nc.Routing {
		r, err := rc.build()
		if err != nil {
			return Node{}, fmt.Errorf("routing for class %q: %w", class, err)
		}
		node.Routing[class] = r
	}

	return node, nil
}

func (dc DistConfig) build() (dists.Distribution, error) {
	switch strings.ToLower(dc.Kind) {
	case "deterministic":
		return dists.NewDeterministic(dc.Value)
	case "exponential":
		return dists.NewExponential(dc.Rate)
	case "uniform":
		return dists.NewUniform(dc.Lower, dc.Upper)
	case "triangular":
		return dists.NewTriangular(dc.Lower, dc.Mode, dc.Upper)
	case "gamma":
		return dists.NewGamma(dc.Shape, dc.Scale)
	case "lognormal":
		return dists.NewLognormal(dc.Mu, dc.Sigma)
	case "weibull":
		return dists.NewWeibull(dc.Shape, dc.Scale)
	case "normal":
		return dists.NewNormal(dc.Mean, dc.Std)
	case "empirical":
		return dists.NewEmpirical(dc.Values)
	case "sequential":
		return dists.NewSequential(dc.Values)
	case "pmf":
		return dists.NewPmf(dc.Values, dc.Probs)
	case "none":
		return dists.NoArrivals{}, nil
	default:
		return nil, fmt.Errorf("unknown distribution kind %q", dc.Kind)
	}
}

func (rc RouteConfig) build() (routing.Router, error) {
	switch strings.ToLower(rc.Kind) {
	case "probabilities":
		return routing.NewProbabilistic(rc.Probs)
	case "direct":
		return routing.NewDirect(rc.To)
	case "jsq", "join_shortest_queue":
		return routing.NewJoinShortestQueue(rc.Candidates)
	case "", "exit":
		return routing.Exit{}, nil
	default:
		return nil, fmt.Errorf("unknown routing kind %q", rc.Kind)
	}
}
