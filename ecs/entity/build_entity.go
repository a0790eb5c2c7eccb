package entity

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/milk9111/wordtitan/ecs"
	"github.com/milk9111/wordtitan/ecs/component"
	"github.com/milk9111/wordtitan/prefabs"
)

type buildContext struct {
	PrefabPath string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":   addPlayerTag,
	"camera_tag":   addCameraTag,
	"boss_tag":     addBossTag,
	"transform":    addTransform,
	"render_layer": addRenderLayer,
	"shape":        addShape,
	"label":        addLabel,
	"health_bar":   addHealthBar,
	"camera":       addCamera,
}

var componentBuildOrder = []string{
	"player_tag",
	"camera_tag",
	"boss_tag",
	"transform",
	"render_layer",
	"shape",
	"label",
	"health_bar",
	"camera",
}

// BuildEntity creates an entity from a prefab yaml. Components are added in
// componentBuildOrder, then any others alphabetically. On error the entity is
// destroyed.
func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	apply := func(name string) error {
		builder, ok := componentRegistry[name]
		if !ok {
			return fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, name)
		}
		if err := builder(w, e, remaining[name], ctx); err != nil {
			return fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
		delete(remaining, name)
		return nil
	}

	for _, name := range componentBuildOrder {
		if _, ok := remaining[name]; !ok {
			continue
		}
		if err := apply(name); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, err
		}
	}

	names := make([]string, 0, len(remaining))
	for name := range remaining {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := apply(name); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, err
		}
	}

	return e, nil
}

func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{ScaleX: 1, ScaleY: 1}
	}
	t.X = x
	t.Y = y
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addCameraTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.CameraTagComponent.Kind(), &component.CameraTag{})
}

func addBossTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.BossTagComponent.Kind(), &component.BossTag{})
}

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TransformComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	if spec.ScaleX == 0 {
		spec.ScaleX = 1
	}
	if spec.ScaleY == 0 {
		spec.ScaleY = 1
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:        spec.X,
		Y:        spec.Y,
		ScaleX:   spec.ScaleX,
		ScaleY:   spec.ScaleY,
		Rotation: spec.Rotation,
	})
}

func addRenderLayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.RenderLayerComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode render_layer spec: %w", err)
	}
	return ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: spec.Index})
}

func addShape(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ShapeComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode shape spec: %w", err)
	}
	shape := &component.Shape{
		Radius: spec.Radius,
		Width:  spec.Width,
		Height: spec.Height,
		Color:  spec.Color.Or(color.White),
	}
	switch strings.ToLower(spec.Kind) {
	case "", "circle":
		shape.Kind = component.ShapeCircle
		if shape.Radius <= 0 {
			return fmt.Errorf("circle needs a positive radius")
		}
	case "rect":
		shape.Kind = component.ShapeRect
		if shape.Width <= 0 || shape.Height <= 0 {
			return fmt.Errorf("rect needs a positive width and height")
		}
	default:
		return fmt.Errorf("unknown shape kind %q", spec.Kind)
	}
	return ecs.Add(w, e, component.ShapeComponent.Kind(), shape)
}

func addLabel(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.LabelComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode label spec: %w", err)
	}
	return ecs.Add(w, e, component.LabelComponent.Kind(), &component.Label{
		Text:    spec.Text,
		OffsetX: spec.OffsetX,
		OffsetY: spec.OffsetY,
		Color:   spec.Color.Or(color.White),
	})
}

func addHealthBar(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.HealthBarComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode health_bar spec: %w", err)
	}
	return ecs.Add(w, e, component.HealthBarComponent.Kind(), &component.HealthBar{
		Width:   spec.Width,
		Height:  spec.Height,
		OffsetY: spec.OffsetY,
		Color:   spec.Color.Or(color.NRGBA{R: 0xe7, G: 0x4c, B: 0x3c, A: 0xff}),
	})
}

func addCamera(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.CameraComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode camera spec: %w", err)
	}
	zoom := spec.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	smooth := spec.Smoothness
	if smooth == 0 {
		smooth = 0.15
	}
	return ecs.Add(w, e, component.CameraComponent.Kind(), &component.Camera{Zoom: zoom, Smoothness: smooth})
}
