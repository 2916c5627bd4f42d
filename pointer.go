package grasp

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

// pointerSource is the subset of Ebitengine's input API the window pointer
// reads. Tests substitute a fake.
type pointerSource interface {
	CursorPosition() (x, y int)
	IsMouseButtonPressed(b ebiten.MouseButton) bool
	Wheel() (xoff, yoff float64)
}

type ebitenSource struct{}

func (ebitenSource) CursorPosition() (int, int) { return ebiten.CursorPosition() }

func (ebitenSource) IsMouseButtonPressed(b ebiten.MouseButton) bool {
	return ebiten.IsMouseButtonPressed(b)
}

func (ebitenSource) Wheel() (float64, float64) { return ebiten.Wheel() }

// syntheticPointerEvent is one injected pointer frame in screen coordinates.
type syntheticPointerEvent struct {
	screenX, screenY float64
	pressed          bool
	button           ebiten.MouseButton
}

// WindowPointer drives a Ray input method from the mouse cursor. Left, right,
// middle and the fifth mouse button map to Select, Secondary, Context and
// Grab. The method goes inactive while the cursor is outside the camera
// viewport.
type WindowPointer struct {
	Camera *Camera
	Method *InputMethod
	// ScrollMultiplier scales wheel offsets into Scroll.
	ScrollMultiplier float64

	src         pointerSource
	injectQueue []syntheticPointerEvent
}

// NewWindowPointer spawns a ray method in r and binds it to the Ebitengine
// cursor.
func NewWindowPointer(r *Registry, cam *Camera, cfg PointerConfig) *WindowPointer {
	return newWindowPointer(r, cam, cfg, ebitenSource{})
}

func newWindowPointer(r *Registry, cam *Camera, cfg PointerConfig, src pointerSource) *WindowPointer {
	vp := cam.Viewport
	ray := cam.ViewportRay(vp.X+vp.Width/2, vp.Y+vp.Height/2)
	return &WindowPointer{
		Camera:           cam,
		Method:           r.SpawnMethod(ray),
		ScrollMultiplier: cfg.ScrollMultiplier,
		src:              src,
	}
}

// Update samples the cursor, or the next injected event if any, and writes
// the method's ray and channels. Call once per tick before Registry.Tick.
func (p *WindowPointer) Update() {
	var (
		x, y    float64
		buttons [4]bool
		scroll  mgl64.Vec2
	)
	if evt, ok := p.popInjected(); ok {
		x, y = evt.screenX, evt.screenY
		if idx, mapped := buttonChannel(evt.button); mapped {
			buttons[idx] = evt.pressed
		}
	} else {
		cx, cy := p.src.CursorPosition()
		x, y = float64(cx), float64(cy)
		for i, b := range pointerButtons {
			buttons[i] = p.src.IsMouseButtonPressed(b)
		}
		wx, wy := p.src.Wheel()
		scroll = mgl64.Vec2{wx, wy}.Mul(p.ScrollMultiplier)
	}

	m := p.Method
	m.Active = p.Camera.Viewport.Contains(x, y)
	if !m.Active {
		return
	}
	m.Spatial = p.Camera.ViewportRay(x, y)
	m.NonSpatial = NonSpatialInput{
		Select:    pressValue(buttons[0]),
		Secondary: pressValue(buttons[1]),
		Context:   pressValue(buttons[2]),
		Grab:      pressValue(buttons[3]),
		Scroll:    scroll,
		HasScroll: true,
		Pos:       mgl64.Vec2{x, y},
		HasPos:    true,
	}
}

// pointerButtons lists the mouse buttons in channel order.
var pointerButtons = [4]ebiten.MouseButton{
	ebiten.MouseButtonLeft,
	ebiten.MouseButtonRight,
	ebiten.MouseButtonMiddle,
	ebiten.MouseButton4,
}

func buttonChannel(b ebiten.MouseButton) (int, bool) {
	for i, pb := range pointerButtons {
		if pb == b {
			return i, true
		}
	}
	return 0, false
}

func pressValue(down bool) float64 {
	if down {
		return 1
	}
	return 0
}

// InjectPress queues a button press at the given screen coordinates. The
// event is consumed by the next Update instead of real mouse input.
func (p *WindowPointer) InjectPress(x, y float64, button ebiten.MouseButton) {
	p.injectQueue = append(p.injectQueue, syntheticPointerEvent{
		screenX: x, screenY: y,
		pressed: true,
		button:  button,
	})
}

// InjectMove queues a cursor move with button held down.
func (p *WindowPointer) InjectMove(x, y float64, button ebiten.MouseButton) {
	p.InjectPress(x, y, button)
}

// InjectRelease queues a cursor frame at the given coordinates with no
// button held.
func (p *WindowPointer) InjectRelease(x, y float64, button ebiten.MouseButton) {
	p.injectQueue = append(p.injectQueue, syntheticPointerEvent{
		screenX: x, screenY: y,
		pressed: false,
		button:  button,
	})
}

// InjectDrag queues a press at (fromX, fromY), linearly interpolated moves and
// a release at (toX, toY), spanning frames Updates. Minimum frames is 2.
func (p *WindowPointer) InjectDrag(fromX, fromY, toX, toY float64, frames int, button ebiten.MouseButton) {
	if frames < 2 {
		frames = 2
	}
	p.InjectPress(fromX, fromY, button)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		p.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t, button)
	}
	p.InjectRelease(toX, toY, button)
}

// Pending returns the number of queued injected events.
func (p *WindowPointer) Pending() int { return len(p.injectQueue) }

func (p *WindowPointer) popInjected() (syntheticPointerEvent, bool) {
	if len(p.injectQueue) == 0 {
		return syntheticPointerEvent{}, false
	}
	evt := p.injectQueue[0]
	copy(p.injectQueue, p.injectQueue[1:])
	p.injectQueue = p.injectQueue[:len(p.injectQueue)-1]
	return evt, true
}
