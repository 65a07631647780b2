package scene

import (
	"fmt"
	"sort"
)

// ValidationSeverity indicates whether a validation finding blocks evaluation
// or is merely informational.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // blocks evaluation
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding.
type ValidationError struct {
	NodeID   NodeID             // which node has the problem (zero if graph-level)
	Message  string             // human-readable description
	Severity ValidationSeverity // error or warning
}

func (e ValidationError) Error() string {
	if e.NodeID.IsZero() {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] node %s: %s", e.Severity, e.NodeID.Short(), e.Message)
}

// Validate runs all structural and geometric checks on the scene graph and
// returns the findings. An empty slice means the graph is valid. Validate
// never mutates the graph.
func Validate(g *Graph) []ValidationError {
	var errs []ValidationError
	errs = append(errs, validateDAG(g)...)
	errs = append(errs, validateReferences(g)...)
	errs = append(errs, validateNames(g)...)
	errs = append(errs, validateRoots(g)...)
	errs = append(errs, validateDimensions(g)...)
	errs = append(errs, validatePoints(g)...)
	errs = append(errs, validateTransforms(g)...)
	errs = append(errs, validateBooleans(g)...)
	return errs
}

// Errors returns only the error-severity findings of errs.
func Errors(errs []ValidationError) []ValidationError {
	var out []ValidationError
	for _, e := range errs {
		if e.Severity == SeverityError {
			out = append(out, e)
		}
	}
	return out
}

// Warnings returns only the warning-severity findings of errs.
func Warnings(errs []ValidationError) []ValidationError {
	var out []ValidationError
	for _, e := range errs {
		if e.Severity == SeverityWarning {
			out = append(out, e)
		}
	}
	return out
}

// sortedIDs returns the node IDs of g in a stable order so findings are
// reported deterministically.
func sortedIDs(g *Graph) []NodeID {
	ids := make([]NodeID, 0, len(g.Nodes))
	for id := range g.Nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// validateDAG checks for cycles using DFS with 3-color marking.
// White (0) = unvisited, gray (1) = in current DFS path, black (2) = fully explored.
func validateDAG(g *Graph) []ValidationError {
	const (
		white = iota
		gray
		black
	)

	color := make(map[NodeID]int)
	var errs []ValidationError

	var visit func(id NodeID) bool // returns true if cycle found
	visit = func(id NodeID) bool {
		switch color[id] {
		case black:
			return false
		case gray:
			errs = append(errs, ValidationError{
				NodeID:   id,
				Message:  fmt.Sprintf("cycle detected: node %s is part of a cycle", id.Short()),
				Severity: SeverityError,
			})
			return true
		}

		color[id] = gray

		node, ok := g.Nodes[id]
		if !ok {
			// Dangling reference; handled by validateReferences.
			color[id] = black
			return false
		}

		for _, childID := range node.Children {
			if visit(childID) {
				return true
			}
		}

		color[id] = black
		return false
	}

	for _, id := range sortedIDs(g) {
		if color[id] == white && visit(id) {
			// One cycle error is sufficient.
			break
		}
	}

	return errs
}

// validateReferences checks that every child reference points to a node that
// exists in g.Nodes.
func validateReferences(g *Graph) []ValidationError {
	var errs []ValidationError
	for _, id := range sortedIDs(g) {
		node := g.Nodes[id]
		for _, childID := range node.Children {
			if _, ok := g.Nodes[childID]; !ok {
				errs = append(errs, ValidationError{
					NodeID:   node.ID,
					Message:  fmt.Sprintf("child reference %s does not exist", childID.Short()),
					Severity: SeverityError,
				})
			}
		}
	}
	return errs
}

// validateNames checks that no two nodes share a name and that every
// NameIndex entry points to an existing node.
func validateNames(g *Graph) []ValidationError {
	var errs []ValidationError

	for name, id := range g.NameIndex {
		if _, ok := g.Nodes[id]; !ok {
			errs = append(errs, ValidationError{
				Message:  fmt.Sprintf("name index entry %q references non-existent node %s", name, id.Short()),
				Severity: SeverityError,
			})
		}
	}

	nameToNodes := make(map[string][]NodeID)
	for _, id := range sortedIDs(g) {
		if n := g.Nodes[id]; n.Name != "" {
			nameToNodes[n.Name] = append(nameToNodes[n.Name], id)
		}
	}
	names := make([]string, 0, len(nameToNodes))
	for name := range nameToNodes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if ids := nameToNodes[name]; len(ids) > 1 {
			errs = append(errs, ValidationError{
				Message:  fmt.Sprintf("duplicate name %q assigned to %d nodes", name, len(ids)),
				Severity: SeverityError,
			})
		}
	}

	return errs
}

// validateRoots checks that every root exists and warns about nodes that are
// unreachable from any root.
func validateRoots(g *Graph) []ValidationError {
	var errs []ValidationError

	for _, rid := range g.Roots {
		if _, ok := g.Nodes[rid]; !ok {
			errs = append(errs, ValidationError{
				Message:  fmt.Sprintf("root reference %s does not exist", rid.Short()),
				Severity: SeverityError,
			})
		}
	}

	if len(g.Nodes) == 0 {
		return errs
	}

	reachable := make(map[NodeID]bool)
	queue := make([]NodeID, 0, len(g.Roots))
	for _, rid := range g.Roots {
		if _, ok := g.Nodes[rid]; ok && !reachable[rid] {
			reachable[rid] = true
			queue = append(queue, rid)
		}
	}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		node := g.Nodes[current]
		if node == nil {
			continue
		}
		for _, childID := range node.Children {
			if !reachable[childID] {
				reachable[childID] = true
				queue = append(queue, childID)
			}
		}
	}

	for _, id := range sortedIDs(g) {
		if reachable[id] {
			continue
		}
		node := g.Nodes[id]
		name := node.Name
		if name == "" {
			name = id.Short()
		}
		errs = append(errs, ValidationError{
			NodeID:   id,
			Message:  fmt.Sprintf("node %q is not reachable from any root (orphan)", name),
			Severity: SeverityWarning,
		})
	}

	return errs
}

// validateDimensions checks that every primitive has positive, finite
// dimensions.
func validateDimensions(g *Graph) []ValidationError {
	var errs []ValidationError
	bad := func(id NodeID, what string, v float64) {
		errs = append(errs, ValidationError{
			NodeID:   id,
			Message:  fmt.Sprintf("%s is %.4f, must be positive", what, v),
			Severity: SeverityError,
		})
	}

	for _, id := range sortedIDs(g) {
		switch d := g.Nodes[id].Data.(type) {
		case CuboidData:
			if !(d.Size.X > 0) {
				bad(id, "cuboid size X", d.Size.X)
			}
			if !(d.Size.Y > 0) {
				bad(id, "cuboid size Y", d.Size.Y)
			}
			if !(d.Size.Z > 0) {
				bad(id, "cuboid size Z", d.Size.Z)
			}
		case CylinderData:
			if !(d.Height > 0) {
				bad(id, "cylinder height", d.Height)
			}
			if !(d.Radius > 0) {
				bad(id, "cylinder radius", d.Radius)
			}
		case SphereData:
			if !(d.Radius > 0) {
				bad(id, "sphere radius", d.Radius)
			}
		}
	}
	return errs
}

// validatePoints checks that point clouds are non-empty and finite.
func validatePoints(g *Graph) []ValidationError {
	var errs []ValidationError
	for _, id := range sortedIDs(g) {
		d, ok := g.Nodes[id].Data.(PointsData)
		if !ok {
			continue
		}
		if len(d.Points) == 0 {
			errs = append(errs, ValidationError{
				NodeID:   id,
				Message:  "point set is empty",
				Severity: SeverityError,
			})
			continue
		}
		for i, p := range d.Points {
			if !p.IsFinite() {
				errs = append(errs, ValidationError{
					NodeID:   id,
					Message:  fmt.Sprintf("point %d %s is not finite", i, p),
					Severity: SeverityError,
				})
			}
		}
	}
	return errs
}

// validateTransforms warns about transforms and groups that wrap nothing.
func validateTransforms(g *Graph) []ValidationError {
	var errs []ValidationError
	for _, id := range sortedIDs(g) {
		n := g.Nodes[id]
		if (n.Kind == NodeTransform || n.Kind == NodeGroup) && len(n.Children) == 0 {
			errs = append(errs, ValidationError{
				NodeID:   id,
				Message:  fmt.Sprintf("%s has no children", n.Kind),
				Severity: SeverityWarning,
			})
		}
	}
	return errs
}

// IsSolid reports whether n resolves to a single solid: a primitive, a
// boolean, or a transform whose children are all solids. Points and groups
// never do.
func IsSolid(g *Graph, n *Node) bool {
	return isSolid(g, n, make(map[NodeID]bool))
}

func isSolid(g *Graph, n *Node, seen map[NodeID]bool) bool {
	if n == nil || seen[n.ID] {
		return false
	}
	seen[n.ID] = true
	defer delete(seen, n.ID)

	switch n.Kind {
	case NodePrimitive, NodeBoolean:
		return true
	case NodeTransform:
		if len(n.Children) == 0 {
			return false
		}
		for _, cid := range n.Children {
			if !isSolid(g, g.Nodes[cid], seen) {
				return false
			}
		}
		return true
	}
	return false
}

// validateBooleans checks that boolean nodes have at least two children and
// that every child resolves to a solid.
func validateBooleans(g *Graph) []ValidationError {
	var errs []ValidationError
	for _, id := range sortedIDs(g) {
		n := g.Nodes[id]
		d, ok := n.Data.(BooleanData)
		if !ok {
			continue
		}
		if len(n.Children) < 2 {
			errs = append(errs, ValidationError{
				NodeID:   id,
				Message:  fmt.Sprintf("%s needs at least 2 operands, got %d", d.Op, len(n.Children)),
				Severity: SeverityError,
			})
		}
		for i, cid := range n.Children {
			c := g.Nodes[cid]
			if c == nil {
				// Dangling reference; handled by validateReferences.
				continue
			}
			if !IsSolid(g, c) {
				errs = append(errs, ValidationError{
					NodeID:   id,
					Message:  fmt.Sprintf("%s operand %d is a %s, not a solid", d.Op, i+1, c.Kind),
					Severity: SeverityError,
				})
			}
		}
	}
	return errs
}
