// Package scene defines the scene graph that the DSL evaluator produces and
// the tessellator consumes. A scene is a DAG of primitives, point clouds,
// transforms and groups; parts may be referenced from several places, and
// each reference contributes its own geometry.
package scene
