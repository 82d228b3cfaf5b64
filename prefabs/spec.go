package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/thirdperson/component"
)

const (
	CharacterFile = "character.yaml"
	CameraFile    = "camera.yaml"
)

// LoadSpec reads a prefab and decodes it into a zero T.
func LoadSpec[T any](filename string) (T, error) {
	var zero T
	return LoadSpecOver(filename, zero)
}

// LoadSpecOver reads a prefab and decodes it over base, so keys the file
// omits keep base's values.
func LoadSpecOver[T any](filename string, base T) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	spec, err := decodeOver(data, base)
	if err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return spec, nil
}

func decodeOver[T any](data []byte, base T) (T, error) {
	spec := base
	if err := yaml.Unmarshal(data, &spec); err != nil {
		var zero T
		return zero, err
	}
	return spec, nil
}

type CharacterSpec struct {
	Name     string             `yaml:"name"`
	Movement component.Movement `yaml:"movement"`
}

func DefaultCharacterSpec() CharacterSpec {
	return CharacterSpec{Name: "player", Movement: component.DefaultMovement()}
}

func LoadCharacterSpec() (*CharacterSpec, error) {
	spec, err := LoadSpecOver(CharacterFile, DefaultCharacterSpec())
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type CameraSpec struct {
	Name   string                 `yaml:"name"`
	Follow component.FollowCamera `yaml:"follow"`
	// Zoom is the debug view scale in pixels per world unit.
	Zoom       float64 `yaml:"zoom"`
	Smoothness float64 `yaml:"smoothness"`
}

func DefaultCameraSpec() CameraSpec {
	return CameraSpec{
		Name:       "camera",
		Follow:     component.DefaultFollowCamera(),
		Zoom:       32,
		Smoothness: 4,
	}
}

func LoadCameraSpec() (*CameraSpec, error) {
	spec, err := LoadSpecOver(CameraFile, DefaultCameraSpec())
	if err != nil {
		return nil, err
	}
	return &spec, nil
}
