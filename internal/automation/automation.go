package automation

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/clothsim/internal/config"
	"github.com/san-kum/clothsim/internal/metrics"
	"github.com/san-kum/clothsim/internal/sim"
	"gopkg.in/yaml.v3"
)

var ErrInvalidScript = errors.New("automation: invalid script")

// Script is a recorded sequence of input snapshots.
type Script struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Preset      string  `yaml:"preset"`
	Dt          float64 `yaml:"dt"`
	Steps       []Step  `yaml:"steps"`
}

// Step holds the input levels for Repeat consecutive frames. If To is set
// the pointer moves linearly from Pointer to To over those frames. A step
// without Pointer keeps the previous pointer position.
type Step struct {
	Pointer   *config.Vec2 `yaml:"pointer"`
	To        *config.Vec2 `yaml:"to"`
	Primary   bool         `yaml:"primary"`
	Secondary bool         `yaml:"secondary"`
	Toggle    bool         `yaml:"toggle"`
	Modifier  bool         `yaml:"modifier"`
	Dt        float64      `yaml:"dt"`
	Repeat    int          `yaml:"repeat"`
}

func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var script Script
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, err
	}
	if err := script.Validate(); err != nil {
		return nil, err
	}
	return &script, nil
}

func (s *Script) Validate() error {
	if s.Dt < 0 {
		return fmt.Errorf("%w: negative dt", ErrInvalidScript)
	}
	for i, step := range s.Steps {
		if step.Repeat < 0 {
			return fmt.Errorf("%w: step %d: negative repeat", ErrInvalidScript, i+1)
		}
		if step.Dt < 0 {
			return fmt.Errorf("%w: step %d: negative dt", ErrInvalidScript, i+1)
		}
		if step.To != nil && step.Pointer == nil {
			return fmt.Errorf("%w: step %d: 'to' needs 'pointer'", ErrInvalidScript, i+1)
		}
	}
	return nil
}

// Expand flattens the script into one input per frame.
func (s *Script) Expand() []sim.Input {
	var (
		inputs  []sim.Input
		pointer config.Vec2
	)
	for _, step := range s.Steps {
		n := step.Repeat
		if n == 0 {
			n = 1
		}
		dt := step.Dt
		if dt == 0 {
			dt = s.Dt
		}
		if step.Pointer != nil {
			pointer = *step.Pointer
		}
		from := pointer
		for i := 0; i < n; i++ {
			pos := from
			if step.To != nil {
				t := 1.0
				if n > 1 {
					t = float64(i) / float64(n-1)
				}
				pos = config.Vec2{
					from[0] + (step.To[0]-from[0])*t,
					from[1] + (step.To[1]-from[1])*t,
				}
			}
			inputs = append(inputs, sim.Input{
				Pointer:   pos.R2(),
				Primary:   step.Primary,
				Secondary: step.Secondary,
				Toggle:    step.Toggle,
				Modifier:  step.Modifier,
				Elapsed:   dt,
			})
			pointer = pos
		}
	}
	return inputs
}

func (s *Script) Source() sim.InputSource {
	return sim.NewInputs(s.Expand())
}

// Replay builds a controller from cfg (or the script's preset when cfg is
// nil) and feeds it every frame of the script.
func Replay(ctx context.Context, s *Script, cfg *config.Config) (*sim.Controller, *sim.Result, error) {
	if cfg == nil {
		name := s.Preset
		if name == "" {
			name = "default"
		}
		cfg = config.GetPreset(name)
		if cfg == nil {
			return nil, nil, fmt.Errorf("%w: unknown preset %q", ErrInvalidScript, name)
		}
	}
	if s.Dt == 0 {
		s.Dt = cfg.Run.Dt
	}

	ctrl, _, err := sim.Build(cfg)
	if err != nil {
		return nil, nil, err
	}
	runner := sim.NewRunner(ctrl)
	for _, m := range metrics.Defaults() {
		runner.AddMetric(m)
	}

	fmt.Printf("Replaying %s (%d frames)\n", s.Name, len(s.Expand()))
	result, err := runner.Run(ctx, s.Source(), 0)
	if err != nil {
		return ctrl, result, fmt.Errorf("replay %s: %w", s.Name, err)
	}
	return ctrl, result, nil
}
