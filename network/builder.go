package network

import (
	"fmt"

	"github.com/MHowells/ciw/sim"
)

// Builder builds a Network.
type Builder struct {
	classes []string
	nodes   []Node
}

// MakeBuilder creates a Builder with no classes and no nodes.
func MakeBuilder() Builder {
	return Builder{}
}

// WithClasses sets the customer class names.
func (b Builder) WithClasses(classes ...string) Builder {
	b.classes = classes
	return b
}

// WithNode appends a service node. Nodes are numbered in the order they are
// added, starting from 1. A zero QueueCapacity is treated as unbounded;
// use an explicit non-zero value for a finite waiting room.
func (b Builder) WithNode(node Node) Builder {
	b.nodes = append(b.nodes, node)
	return b
}

// Build validates the description and returns the Network.
func (b Builder) Build() (*Network, error) {
	if len(b.classes) == 0 {
		// Single-class networks do not have to name their class.
		b.classes = []string{"Customer"}
	}

	classIndex := make(map[string]int, len(b.classes))
	for i, c := range b.classes {
		if c == "" {
			return nil, fmt.Errorf("class %d has an empty name", i)
		}
		if _, dup := classIndex[c]; dup {
			return nil, fmt.Errorf("duplicate class name %q", c)
		}
		classIndex[c] = i
	}

	if len(b.nodes) == 0 {
		return nil, fmt.Errorf("a network needs at least one node")
	}

	seenNames := make(map[string]bool, len(b.nodes))
	nodes := make([]Node, len(b.nodes))
	for i, node := range b.nodes {
		if node.Name == "" {
			node.Name = fmt.Sprintf("Node[%d]", i+1)
		}
		sim.NameMustBeValid(node.Name)

		if seenNames[node.Name] {
			return nil, fmt.Errorf("duplicate node name %q", node.Name)
		}
		seenNames[node.Name] = true

		if node.QueueCapacity == 0 {
			node.QueueCapacity = Inf
		}

		if err := b.validateNode(node, classIndex); err != nil {
			return nil, err
		}

		nodes[i] = node
	}

	net := &Network{
		classes:    b.classes,
		classIndex: classIndex,
		nodes:      nodes,
	}

	if err := b.validateRoutingTargets(net); err != nil {
		return nil, err
	}

	return net, nil
}

func (b Builder) validateNode(
	node Node,
	classIndex map[string]int,
) error {
	if node.Servers != Inf && node.Servers < 1 {
		return fmt.Errorf(
			"node %q: servers must be positive or Inf, got %d",
			node.Name, node.Servers)
	}

	if node.QueueCapacity != Inf && node.QueueCapacity < 0 {
		return fmt.Errorf(
			"node %q: queue capacity must be non-negative or Inf, got %d",
			node.Name, node.QueueCapacity)
	}

	if node.Discipline == ProcessorSharing && node.Servers == Inf {
		return fmt.Errorf(
			"node %q: a processor-sharing node needs a finite capacity",
			node.Name)
	}

	for class := range node.Arrivals {
		if _, ok := classIndex[class]; !ok {
			return fmt.Errorf(
				"node %q: arrival distribution for unknown class %q",
				node.Name, class)
		}
	}

	for class := range node.Routing {
		if _, ok := classIndex[class]; !ok {
			return fmt.Errorf(
				"node %q: routing for unknown class %q", node.Name, class)
		}
	}

	for class := range classIndex {
		if node.Services[class] == nil {
			return fmt.Errorf(
				"node %q: class %q has no service distribution",
				node.Name, class)
		}
	}

	return nil
}

// validateRoutingTargets checks the static routers that name an explicit
// destination. State-dependent routers are only checkable at run time.
func (b Builder) validateRoutingTargets(net *Network) error {
	n := net.NumNodes()
	for i := 1; i <= n; i++ {
		node := net.Node(i)
		for class, r := range node.Routing {
			checker, ok := r.(interface{ Destinations() []int })
			if !ok {
				continue
			}

			for _, dest := range checker.Destinations() {
				if dest < 0 || dest > n {
					return fmt.Errorf(
						"node %q: class %q routes to unknown node %d",
						node.Name, class, dest)
				}
			}
		}
	}

	return nil
}
