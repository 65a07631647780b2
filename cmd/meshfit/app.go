package main

import (
	"github.com/chazu/meshfit/pkg/bsphere"
	"github.com/chazu/meshfit/pkg/config"
	"github.com/chazu/meshfit/pkg/engine"
	"github.com/chazu/meshfit/pkg/geom"
	"github.com/chazu/meshfit/pkg/kernel"
	"github.com/chazu/meshfit/pkg/kernel/sdfx"
	"github.com/chazu/meshfit/pkg/logging"
	"github.com/chazu/meshfit/pkg/tessellate"
)

// App ties the scene pipeline together: source → graph → meshes → sphere.
type App struct {
	engine    *engine.Engine
	kernel    kernel.Kernel
	tolerance float64
	maxPasses int
	log       logging.Logger
}

// PartData summarizes one tessellated mesh.
type PartData struct {
	Name      string `json:"name"`
	Group     string `json:"group"` // slash-separated assembly path
	Vertices  int    `json:"vertices"`
	Triangles int    `json:"triangles"`
}

// ErrorData is a JSON-serializable eval error or warning.
type ErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// SphereData is the fitted bounding sphere.
type SphereData struct {
	Center   geom.Vec3 `json:"center"`
	Radius   float64   `json:"radius"`
	Diameter float64   `json:"diameter"`
	Points   int       `json:"points"`
}

// Result is the full outcome of one run.
type Result struct {
	Parts    []PartData  `json:"parts"`
	Errors   []ErrorData `json:"errors"`
	Warnings []ErrorData `json:"warnings"`
	Sphere   *SphereData `json:"sphere,omitempty"`
}

// NewApp creates an App from cfg. A nil cfg means defaults; a nil logger
// discards output.
func NewApp(cfg *config.Config, log logging.Logger) *App {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = logging.NewNop()
	}
	return &App{
		engine:    engine.NewEngine(engine.WithTimeout(cfg.Engine.Timeout)),
		kernel:    sdfx.NewWithCells(cfg.Kernel.MeshCells),
		tolerance: cfg.Sphere.Tolerance,
		maxPasses: cfg.Sphere.MaxPasses,
		log:       log,
	}
}

// Evaluate runs a scene source through the pipeline and fits a sphere to
// the resulting geometry.
func (a *App) Evaluate(source string) Result {
	return a.Fit(source, nil)
}

// Fit evaluates source (which may be empty), adds the extra points, and
// fits a sphere to everything. No sphere is reported when there are errors
// or no points at all.
func (a *App) Fit(source string, extra []geom.Vec3) Result {
	result := Result{
		Parts:    []PartData{},
		Errors:   []ErrorData{},
		Warnings: []ErrorData{},
	}

	bf := bsphere.New(bsphere.WithTolerance(a.tolerance), bsphere.WithMaxPasses(a.maxPasses))

	// Step 1: Evaluate the source into a scene graph.
	res, err := a.engine.EvaluateResult(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		a.log.Error("evaluation failed", logging.Err(err))
		result.Errors = append(result.Errors, ErrorData{Message: err.Error()})
		return result
	}
	for _, w := range res.Warnings {
		a.log.Warn("scene warning", logging.String("message", w.Message), logging.String("node", w.NodeID.Short()))
		result.Warnings = append(result.Warnings, ErrorData{Line: w.Line, Col: w.Col, Message: w.Message})
	}
	if len(res.Errors) > 0 {
		for _, e := range res.Errors {
			result.Errors = append(result.Errors, ErrorData{Line: e.Line, Col: e.Col, Message: e.Message})
		}
		return result
	}
	a.log.Debug("scene evaluated", logging.Int("nodes", res.Graph.NodeCount()), logging.Int("roots", len(res.Graph.Roots)))

	// Step 2: Tessellate the scene into a mesh hierarchy.
	root, err := tessellate.Tessellate(res.Graph, a.kernel)
	if err != nil {
		a.log.Error("tessellation failed", logging.Err(err))
		result.Errors = append(result.Errors, ErrorData{Message: "tessellation failed: " + err.Error()})
		return result
	}
	result.Parts = collectParts(root)
	a.log.Debug("scene tessellated", logging.Int("meshes", len(result.Parts)), logging.Int("vertices", root.VertexCount()))

	// Step 3: Accumulate geometry and fit the sphere.
	bf.AddMeshGroup(root)
	bsphere.AddPoints(bf, extra)

	if bf.NumPoints() == 0 {
		return result
	}
	ball := bf.Ball()
	result.Sphere = &SphereData{
		Center:   ball.Center,
		Radius:   ball.Radius,
		Diameter: ball.Diameter(),
		Points:   bf.NumPoints(),
	}
	a.log.Info("sphere fitted",
		logging.Any("center", ball.Center),
		logging.Float64("radius", ball.Radius),
		logging.Int("points", bf.NumPoints()),
	)
	return result
}

// collectParts flattens a mesh hierarchy into part summaries. Meshes owned
// by the root group have an empty group path.
func collectParts(root *kernel.MeshGroup) []PartData {
	parts := []PartData{}
	var visit func(grp *kernel.MeshGroup, path string)
	visit = func(grp *kernel.MeshGroup, path string) {
		for _, m := range grp.OwnMeshes() {
			parts = append(parts, PartData{
				Name:      m.PartName,
				Group:     path,
				Vertices:  m.VertexCount(),
				Triangles: m.TriangleCount(),
			})
		}
		for _, c := range grp.ChildGroups() {
			p := c.Name
			if path != "" {
				p = path + "/" + c.Name
			}
			visit(c, p)
		}
	}
	visit(root, "")
	return parts
}
