package grasp

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

// ErrInvalidScript is wrapped by every Script validation failure.
var ErrInvalidScript = errors.New("grasp: invalid script")

// scriptStep is one action of a replay script.
type scriptStep struct {
	Action string `yaml:"action"`

	// tip, move
	At     []float64 `yaml:"at,omitempty"`
	From   []float64 `yaml:"from,omitempty"`
	To     []float64 `yaml:"to,omitempty"`
	Frames int       `yaml:"frames,omitempty"`

	// ray
	Origin    []float64 `yaml:"origin,omitempty"`
	Direction []float64 `yaml:"direction,omitempty"`

	// set
	Select    *float64  `yaml:"select,omitempty"`
	Secondary *float64  `yaml:"secondary,omitempty"`
	Context   *float64  `yaml:"context,omitempty"`
	Grab      *float64  `yaml:"grab,omitempty"`
	Scroll    []float64 `yaml:"scroll,omitempty"`
}

type scriptFile struct {
	Steps []scriptStep `yaml:"steps"`
}

// Script replays synthetic input into one InputMethod, one frame per Step
// call. Actions:
//
//	tip        place a tip at `at`
//	move       move the tip from `from` (or its last position) to `to` over `frames` ticks
//	ray        set a ray from `origin` along `direction`
//	set        set any of select/secondary/context/grab/scroll; unset channels keep their value
//	wait       hold everything for `frames` ticks
//	activate   mark the method active
//	deactivate mark the method inactive
//
// tip, ray, set, activate and deactivate take effect without consuming a tick.
type Script struct {
	steps  []scriptStep
	cursor int
	wait   int
	queue  []mgl64.Vec3
	last   mgl64.Vec3
	done   bool
}

// LoadScript reads and validates a YAML script file.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("grasp: read script %s: %w", path, err)
	}
	s, err := ParseScript(data)
	if err != nil {
		return nil, fmt.Errorf("grasp: script %s: %w", path, err)
	}
	return s, nil
}

// ParseScript decodes and validates a YAML script.
func ParseScript(data []byte) (*Script, error) {
	var f scriptFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode script: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("%w: no steps", ErrInvalidScript)
	}
	for i, st := range f.Steps {
		if err := st.validate(); err != nil {
			return nil, fmt.Errorf("%w: step %d (%s): %v", ErrInvalidScript, i, st.Action, err)
		}
	}
	return &Script{steps: f.Steps}, nil
}

func (st scriptStep) validate() error {
	switch st.Action {
	case "tip":
		return vecLen(st.At, 3, "at")
	case "move":
		if st.From != nil {
			if err := vecLen(st.From, 3, "from"); err != nil {
				return err
			}
		}
		if st.Frames < 1 {
			return fmt.Errorf("frames must be at least 1, got %d", st.Frames)
		}
		return vecLen(st.To, 3, "to")
	case "ray":
		if err := vecLen(st.Origin, 3, "origin"); err != nil {
			return err
		}
		if err := vecLen(st.Direction, 3, "direction"); err != nil {
			return err
		}
		if toVec3(st.Direction).Len() == 0 {
			return errors.New("direction must be non-zero")
		}
	case "set":
		if st.Scroll != nil {
			return vecLen(st.Scroll, 2, "scroll")
		}
	case "wait":
		if st.Frames < 1 {
			return fmt.Errorf("frames must be at least 1, got %d", st.Frames)
		}
	case "activate", "deactivate":
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
	return nil
}

func vecLen(v []float64, n int, name string) error {
	if len(v) != n {
		return fmt.Errorf("%s needs %d components, got %d", name, n, len(v))
	}
	return nil
}

func toVec3(v []float64) mgl64.Vec3 { return mgl64.Vec3{v[0], v[1], v[2]} }

// Done reports whether every step has been replayed.
func (s *Script) Done() bool { return s.done }

// Step advances the script by one tick, writing into m. Call once per tick
// before Registry.Tick.
func (s *Script) Step(m *InputMethod) {
	if s.done {
		return
	}
	for {
		if len(s.queue) > 0 {
			s.last = s.queue[0]
			s.queue = s.queue[1:]
			m.Spatial = Tip{Position: s.last, Orientation: mgl64.QuatIdent()}
			break
		}
		if s.wait > 0 {
			s.wait--
			break
		}
		if s.cursor >= len(s.steps) {
			s.done = true
			return
		}
		st := s.steps[s.cursor]
		s.cursor++
		s.apply(st, m)
	}
	if len(s.queue) == 0 && s.wait == 0 && s.cursor >= len(s.steps) {
		s.done = true
	}
}

func (s *Script) apply(st scriptStep, m *InputMethod) {
	switch st.Action {
	case "tip":
		s.last = toVec3(st.At)
		m.Spatial = Tip{Position: s.last, Orientation: mgl64.QuatIdent()}
	case "move":
		from := s.last
		if st.From != nil {
			from = toVec3(st.From)
		}
		to := toVec3(st.To)
		for i := 1; i <= st.Frames; i++ {
			t := float64(i) / float64(st.Frames)
			s.queue = append(s.queue, from.Add(to.Sub(from).Mul(t)))
		}
	case "ray":
		m.Spatial = NewRay(toVec3(st.Origin), toVec3(st.Direction))
	case "set":
		ns := &m.NonSpatial
		setChannel(&ns.Select, st.Select)
		setChannel(&ns.Secondary, st.Secondary)
		setChannel(&ns.Context, st.Context)
		setChannel(&ns.Grab, st.Grab)
		if st.Scroll != nil {
			ns.Scroll = mgl64.Vec2{st.Scroll[0], st.Scroll[1]}
			ns.HasScroll = true
		}
	case "wait":
		s.wait = st.Frames
	case "activate":
		m.Active = true
	case "deactivate":
		m.Active = false
	}
}

func setChannel(dst *float64, v *float64) {
	if v != nil {
		*dst = clamp01(*v)
	}
}
