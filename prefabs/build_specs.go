package prefabs

import "gopkg.in/yaml.v3"

// EntityBuildSpec is an entity prefab: a name and a map of component name to
// that component's yaml body.
type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

// DecodeComponentSpec re-decodes one generic component body into T.
func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type TransformComponentSpec = TransformSpec

type RenderLayerComponentSpec struct {
	Index int `yaml:"index"`
}

type ShapeComponentSpec struct {
	Kind   string    `yaml:"kind"`
	Radius float64   `yaml:"radius"`
	Width  float64   `yaml:"width"`
	Height float64   `yaml:"height"`
	Color  YAMLColor `yaml:"color"`
}

type LabelComponentSpec struct {
	Text    string    `yaml:"text"`
	OffsetX float64   `yaml:"offset_x"`
	OffsetY float64   `yaml:"offset_y"`
	Color   YAMLColor `yaml:"color"`
}

type CameraComponentSpec struct {
	Zoom       float64 `yaml:"zoom"`
	Smoothness float64 `yaml:"smoothness"`
}

type HealthBarComponentSpec struct {
	Width   float64   `yaml:"width"`
	Height  float64   `yaml:"height"`
	OffsetY float64   `yaml:"offset_y"`
	Color   YAMLColor `yaml:"color"`
}
