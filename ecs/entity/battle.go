package entity

import (
	"fmt"
	"image/color"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/wordtitan/ecs"
	"github.com/milk9111/wordtitan/ecs/component"
)

func NewBoss(w *ecs.World) (ecs.Entity, error) {
	return BuildEntity(w, "boss.yaml")
}

func NewPlayer(w *ecs.World) (ecs.Entity, error) {
	return BuildEntity(w, "player.yaml")
}

func NewCamera(w *ecs.World) (ecs.Entity, error) {
	e, err := BuildEntity(w, "camera.yaml")
	if err != nil {
		return 0, err
	}
	if !ecs.Has(w, e, component.CameraTagComponent.Kind()) {
		if err := ecs.Add(w, e, component.CameraTagComponent.Kind(), &component.CameraTag{}); err != nil {
			return 0, fmt.Errorf("camera: add camera tag: %w", err)
		}
	}
	return e, nil
}

// NewBomb creates the drawable mirror of a live bomb.
func NewBomb(w *ecs.World, pos cp.Vector, word string, fill color.Color) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: pos.X, Y: pos.Y, ScaleX: 1, ScaleY: 1}); err != nil {
		return 0, fmt.Errorf("bomb: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: 3}); err != nil {
		return 0, fmt.Errorf("bomb: add render layer: %w", err)
	}
	if err := ecs.Add(w, e, component.ShapeComponent.Kind(), &component.Shape{Kind: component.ShapeCircle, Radius: 0.25, Color: fill}); err != nil {
		return 0, fmt.Errorf("bomb: add shape: %w", err)
	}
	if err := ecs.Add(w, e, component.BombViewComponent.Kind(), &component.BombView{Word: word}); err != nil {
		return 0, fmt.Errorf("bomb: add bomb view: %w", err)
	}
	if err := ecs.Add(w, e, component.LabelComponent.Kind(), &component.Label{Text: word, OffsetY: 0.45, Color: color.White}); err != nil {
		return 0, fmt.Errorf("bomb: add label: %w", err)
	}
	return e, nil
}

// NewExplosion leaves a short-lived ring where a bomb resolved.
func NewExplosion(w *ecs.World, pos cp.Vector, success bool, frames int) (ecs.Entity, error) {
	if frames < 1 {
		frames = 1
	}
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: pos.X, Y: pos.Y, ScaleX: 1, ScaleY: 1}); err != nil {
		return 0, fmt.Errorf("explosion: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: 4}); err != nil {
		return 0, fmt.Errorf("explosion: add render layer: %w", err)
	}
	if err := ecs.Add(w, e, component.ExplosionComponent.Kind(), &component.Explosion{MaxRadius: 0.9, Success: success}); err != nil {
		return 0, fmt.Errorf("explosion: add explosion: %w", err)
	}
	if err := ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Frames: frames}); err != nil {
		return 0, fmt.Errorf("explosion: add ttl: %w", err)
	}
	return e, nil
}

// NewTypingLine creates the HUD entity holding the player's input buffer.
func NewTypingLine(w *ecs.World) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.HUDTagComponent.Kind(), &component.HUDTag{}); err != nil {
		return 0, fmt.Errorf("typing line: add hud tag: %w", err)
	}
	if err := ecs.Add(w, e, component.TypingBufferComponent.Kind(), &component.TypingBuffer{}); err != nil {
		return 0, fmt.Errorf("typing line: add buffer: %w", err)
	}
	return e, nil
}
