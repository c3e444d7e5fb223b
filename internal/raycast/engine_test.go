package raycast

import (
	"math"
	"testing"

	"ironmaze/internal/config"
	"ironmaze/internal/world"
)

// boxMap builds a w×h map with solid edges and an open interior.
func boxMap(w, h int) *world.Map {
	m := &world.Map{Width: w, Height: h}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x == 0 || y == 0 || x == w-1 || y == h-1 {
				m.Tiles[y][x] = 1
			}
		}
	}
	return m
}

func testEngine(t *testing.T, m *world.Map, width int) *Engine {
	t.Helper()
	return NewEngine(m, config.Default(), width)
}

func testState(width int, x, y, dirX, dirY float64) *State {
	spawn := world.Spawn{X: x, Y: y, DirX: dirX, DirY: dirY}
	return NewState(width, spawn, config.Default().GetCameraFOV())
}

// tick runs the given number of fixed 60 Hz simulation steps.
func tick(e *Engine, st *State, in Input, steps int) {
	const dt = 1.0 / 60.0
	for i := 0; i < steps; i++ {
		e.Update(st, in, dt)
	}
}

func TestUpdate_ForwardSpeed(t *testing.T) {
	m := boxMap(20, 5)
	e := testEngine(t, m, 100)
	st := testState(100, 2.5, 2.5, 1, 0)

	tick(e, st, Input{Forward: true}, 60) // one simulated second

	moved := st.Player.X - 2.5
	if math.Abs(moved-3.0) > 0.01 {
		t.Errorf("one second forward should cover 3.0 units, covered %v", moved)
	}
	if st.Player.Y != 2.5 {
		t.Errorf("straight eastward walk should not drift, y = %v", st.Player.Y)
	}
}

func TestUpdate_BackwardAndStrafe(t *testing.T) {
	m := boxMap(20, 20)
	e := testEngine(t, m, 100)

	st := testState(100, 10.5, 10.5, 1, 0)
	tick(e, st, Input{Back: true}, 30)
	if st.Player.X >= 10.5 {
		t.Errorf("backing up while facing east should decrease x, got %v", st.Player.X)
	}

	st = testState(100, 10.5, 10.5, 1, 0)
	tick(e, st, Input{StrafeRight: true}, 30)
	if st.Player.Y <= 10.5 {
		t.Errorf("strafing right while facing east should increase y (south), got %v", st.Player.Y)
	}

	st = testState(100, 10.5, 10.5, 1, 0)
	tick(e, st, Input{StrafeLeft: true}, 30)
	if st.Player.Y >= 10.5 {
		t.Errorf("strafing left while facing east should decrease y (north), got %v", st.Player.Y)
	}
}

func TestUpdate_WallStopsMovement(t *testing.T) {
	m := boxMap(10, 5)
	e := testEngine(t, m, 100)
	st := testState(100, 8.0, 2.5, 1, 0)

	tick(e, st, Input{Forward: true}, 120)

	// The wall starts at x=9; the collision margin keeps the player out
	// of the last 0.15 units.
	if st.Player.X > 9.0-0.15+1e-9 {
		t.Errorf("player pushed into the wall margin, x = %v", st.Player.X)
	}
	if st.Player.X < 8.0 {
		t.Errorf("player should have advanced toward the wall, x = %v", st.Player.X)
	}
}

func TestUpdate_WallSliding(t *testing.T) {
	m := boxMap(10, 10)
	e := testEngine(t, m, 100)

	// Walk diagonally northeast into the east wall: x gets pinned, y
	// keeps decreasing.
	d := math.Sqrt(2) / 2
	st := testState(100, 8.5, 7.5, d, -d)

	tick(e, st, Input{Forward: true}, 60)

	if st.Player.X > 9.0-0.15+1e-9 {
		t.Errorf("x should be pinned at the wall margin, got %v", st.Player.X)
	}
	if st.Player.Y >= 7.5-1.0 {
		t.Errorf("y should keep sliding along the wall, got %v", st.Player.Y)
	}
}

func TestRotate_PreservesCameraShape(t *testing.T) {
	cfg := config.Default()
	st := testState(100, 5, 5, 1, 0)
	wantPlane := math.Tan(cfg.GetCameraFOV() / 2)

	for i := 0; i < 100; i++ {
		st.Player.Rotate(0.137)
	}

	p := &st.Player
	dirLen := math.Hypot(p.DirX, p.DirY)
	if math.Abs(dirLen-1) > 1e-9 {
		t.Errorf("direction should stay unit length, got %v", dirLen)
	}
	planeLen := math.Hypot(p.PlaneX, p.PlaneY)
	if math.Abs(planeLen-wantPlane) > 1e-9 {
		t.Errorf("plane length should stay tan(fov/2) = %v, got %v", wantPlane, planeLen)
	}
	dot := p.DirX*p.PlaneX + p.DirY*p.PlaneY
	if math.Abs(dot) > 1e-9 {
		t.Errorf("plane should stay perpendicular to direction, dot = %v", dot)
	}
}

func TestUpdate_TurnDirections(t *testing.T) {
	m := boxMap(10, 10)
	e := testEngine(t, m, 100)

	// Facing east, turning right must swing the camera south (y grows
	// south), turning left north.
	st := testState(100, 5, 5, 1, 0)
	e.Update(st, Input{TurnRight: true}, 0.1)
	if st.Player.DirY <= 0 {
		t.Errorf("turning right from east should face south of east, dirY = %v", st.Player.DirY)
	}

	st = testState(100, 5, 5, 1, 0)
	e.Update(st, Input{TurnLeft: true}, 0.1)
	if st.Player.DirY >= 0 {
		t.Errorf("turning left from east should face north of east, dirY = %v", st.Player.DirY)
	}
}

func TestUpdate_TriggerRequiresCellCenter(t *testing.T) {
	m := boxMap(10, 5)
	m.Info[2][5] = world.InfoTriggerEnd
	e := testEngine(t, m, 100)

	// Standing in the trigger cell but off-center: not finished.
	st := testState(100, 5.1, 2.5, 1, 0)
	e.Update(st, Input{}, 1.0/60.0)
	if st.GoalReached {
		t.Error("trigger should not fire away from the cell center")
	}

	// Within the margin radius of the center: finished.
	st = testState(100, 5.5+0.1, 2.5, 1, 0)
	e.Update(st, Input{}, 1.0/60.0)
	if !st.GoalReached {
		t.Error("trigger should fire within the margin of the cell center")
	}
}

func TestUpdate_TriggerCellIsWalkable(t *testing.T) {
	m := boxMap(10, 5)
	m.Info[2][5] = world.InfoTriggerEnd
	e := testEngine(t, m, 100)
	st := testState(100, 2.5, 2.5, 1, 0)

	tick(e, st, Input{Forward: true}, 72)

	if st.Player.X <= 5.0 {
		t.Errorf("player should walk through the trigger cell, x = %v", st.Player.X)
	}
	if !st.GoalReached {
		t.Error("walking through the cell center should fire the trigger")
	}
}
