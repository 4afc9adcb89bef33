package migrate

import "fmt"

// Catalog is the fixed set of schema steps. Base steps create the legacy
// tables and run first, in declaration order, with fatal semantics. The
// remaining steps declare their prerequisites by name and are ordered by a
// stable topological sort, so a reordered declaration cannot silently break
// a foreign-key-bearing step.
type Catalog struct {
	Base  []Step
	Steps []Step
}

// Ordered returns Steps sorted so every step follows its requirements.
// Ties keep declaration order, which keeps runs deterministic. Names
// satisfied by Base steps count as always-present.
func (c *Catalog) Ordered() ([]Step, error) {
	known := make(map[string]bool, len(c.Base)+len(c.Steps))
	for _, s := range c.Base {
		known[s.Name()] = true
	}

	index := make(map[string]int, len(c.Steps))
	for i, s := range c.Steps {
		if known[s.Name()] {
			return nil, fmt.Errorf("duplicate step name %q", s.Name())
		}
		index[s.Name()] = i
		known[s.Name()] = true
	}

	// Kahn's algorithm over declaration order.
	indegree := make([]int, len(c.Steps))
	dependents := make([][]int, len(c.Steps))
	for i, s := range c.Steps {
		for _, req := range s.Requires() {
			if !known[req] {
				return nil, fmt.Errorf("step %q requires unknown step %q", s.Name(), req)
			}
			j, inGraph := index[req]
			if !inGraph {
				continue // satisfied by a base step
			}
			indegree[i]++
			dependents[j] = append(dependents[j], i)
		}
	}

	ordered := make([]Step, 0, len(c.Steps))
	ready := make([]int, 0, len(c.Steps))
	for i := range c.Steps {
		if indegree[i] == 0 {
			ready = append(ready, i)
		}
	}

	for len(ready) > 0 {
		// Lowest declaration index first keeps the order stable.
		min := 0
		for k := range ready {
			if ready[k] < ready[min] {
				min = k
			}
		}
		i := ready[min]
		ready = append(ready[:min], ready[min+1:]...)

		ordered = append(ordered, c.Steps[i])
		for _, dep := range dependents[i] {
			indegree[dep]--
			if indegree[dep] == 0 {
				ready = append(ready, dep)
			}
		}
	}

	if len(ordered) != len(c.Steps) {
		return nil, fmt.Errorf("dependency cycle in step catalog")
	}
	return ordered, nil
}
