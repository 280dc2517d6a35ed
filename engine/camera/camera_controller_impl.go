package camera

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-showreel/common"
	"github.com/go-gl/mathgl/mgl32"
)

// pendingEpsilon is the magnitude below which queued input counts as consumed.
const pendingEpsilon = 1e-5

// cameraControllerImpl is the single implementation of CameraController.
// Orbit input is queued and applied by Update; planar methods translate both
// position and target immediately along local camera axes.
type cameraControllerImpl struct {
	mu *sync.Mutex

	position mgl32.Vec3
	target   mgl32.Vec3

	// Spherical coordinates (offset from target)
	radius    float32
	azimuth   float32 // Horizontal angle around Y axis
	elevation float32 // Vertical angle from horizontal plane

	// Queued input consumed by Update
	pendingAzimuth   float32
	pendingElevation float32
	pendingRadius    float32

	// Orbit constraints
	minRadius    float32
	maxRadius    float32
	minElevation float32
	maxElevation float32

	mouseSensitivity float32
	zoomSpeed        float32
	panSpeed         float32
	damping          float32

	initialPosition *mgl32.Vec3
}

var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a new camera controller with sensible defaults.
// The returned controller supports both orbit and planar controls simultaneously.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu: &sync.Mutex{},

		radius:    5.0,
		azimuth:   0.0,
		elevation: float32(math.Pi / 12),

		minRadius:    0.5,
		maxRadius:    50.0,
		minElevation: float32(-math.Pi/2 + 0.05),
		maxElevation: float32(math.Pi/2 - 0.05),

		mouseSensitivity: 0.005,
		zoomSpeed:        0.5,
		panSpeed:         0.05,
		damping:          0.05,
	}

	for _, option := range options {
		option(cc)
	}

	if cc.initialPosition != nil {
		cc.position = *cc.initialPosition
		cc.updateSpherical()
		cc.initialPosition = nil
	} else {
		cc.updatePosition()
	}
	return cc
}

// --- internal helpers ---

// updatePosition recomputes the camera position from spherical coordinates.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) updatePosition() {
	cc.position = cc.target.Add(common.FromSpherical(cc.radius, cc.azimuth, cc.elevation))
}

// updateSpherical re-derives spherical coordinates from position and target.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) updateSpherical() {
	cc.radius, cc.azimuth, cc.elevation = common.ToSpherical(cc.position.Sub(cc.target))
}

// localAxes computes the camera's local right and up axes consistent with the LookAt matrix.
// If position and target coincide, zero vectors are returned.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) localAxes() (right, up mgl32.Vec3) {
	backward := cc.position.Sub(cc.target)
	if backward.Len() < 1e-8 {
		return
	}
	backward = backward.Normalize()
	right = mgl32.Vec3{0, 1, 0}.Cross(backward)
	if right.Len() < 1e-8 {
		return mgl32.Vec3{}, mgl32.Vec3{}
	}
	right = right.Normalize()
	up = backward.Cross(right)
	return right, up
}

func (cc *cameraControllerImpl) clampOrbit() {
	cc.radius = mgl32.Clamp(cc.radius, cc.minRadius, cc.maxRadius)
	cc.elevation = mgl32.Clamp(cc.elevation, cc.minElevation, cc.maxElevation)
}

// --- CameraController shared methods ---

func (cc *cameraControllerImpl) Position() (x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.position.X(), cc.position.Y(), cc.position.Z()
}

func (cc *cameraControllerImpl) SetPosition(x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.position = mgl32.Vec3{x, y, z}
	cc.updateSpherical()
}

func (cc *cameraControllerImpl) Target() (x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.target.X(), cc.target.Y(), cc.target.Z()
}

func (cc *cameraControllerImpl) SetTarget(x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.target = mgl32.Vec3{x, y, z}
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Zoom(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.pendingRadius -= delta * cc.zoomSpeed
}

func (cc *cameraControllerImpl) Update(deltaTime float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	if abs32(cc.pendingAzimuth) < pendingEpsilon &&
		abs32(cc.pendingElevation) < pendingEpsilon &&
		abs32(cc.pendingRadius) < pendingEpsilon {
		cc.pendingAzimuth, cc.pendingElevation, cc.pendingRadius = 0, 0, 0
		return
	}

	step := float32(1)
	if cc.damping > 0 && deltaTime > 0 {
		// Frame-rate independent: d per 1/60 s.
		step = 1 - float32(math.Pow(float64(1-cc.damping), float64(deltaTime*60)))
	} else if cc.damping > 0 {
		return
	}

	da, de, dr := cc.pendingAzimuth*step, cc.pendingElevation*step, cc.pendingRadius*step
	cc.azimuth += da
	cc.elevation += de
	cc.radius += dr
	cc.pendingAzimuth -= da
	cc.pendingElevation -= de
	cc.pendingRadius -= dr

	cc.clampOrbit()
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Damping() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.damping
}

// --- orbitCameraController implementation ---

func (cc *cameraControllerImpl) Rotate(dAzimuth, dElevation float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.pendingAzimuth += dAzimuth
	cc.pendingElevation += dElevation
}

func (cc *cameraControllerImpl) Radius() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.radius
}

func (cc *cameraControllerImpl) MinRadius() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.minRadius
}

func (cc *cameraControllerImpl) MaxRadius() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.maxRadius
}

func (cc *cameraControllerImpl) Azimuth() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.azimuth
}

func (cc *cameraControllerImpl) Elevation() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.elevation
}

func (cc *cameraControllerImpl) MouseSensitivity() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.mouseSensitivity
}

func (cc *cameraControllerImpl) ZoomSpeed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.zoomSpeed
}

// --- planarCameraController implementation ---

func (cc *cameraControllerImpl) PanRight(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	right, _ := cc.localAxes()
	offset := right.Mul(delta * cc.panSpeed)
	cc.target = cc.target.Add(offset)
	cc.position = cc.position.Add(offset)
}

func (cc *cameraControllerImpl) PanUp(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	_, up := cc.localAxes()
	offset := up.Mul(delta * cc.panSpeed)
	cc.target = cc.target.Add(offset)
	cc.position = cc.position.Add(offset)
}

func (cc *cameraControllerImpl) PanSpeed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.panSpeed
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
