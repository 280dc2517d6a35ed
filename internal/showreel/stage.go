package showreel

import (
	"github.com/Carmen-Shannon/oxy-showreel/common"
	"github.com/Carmen-Shannon/oxy-showreel/engine/camera"
	"github.com/Carmen-Shannon/oxy-showreel/engine/game_object"
	"github.com/Carmen-Shannon/oxy-showreel/engine/light"
	"github.com/Carmen-Shannon/oxy-showreel/engine/model"
	"github.com/Carmen-Shannon/oxy-showreel/engine/scene"
	"github.com/Carmen-Shannon/oxy-showreel/engine/viewpoint"
	"github.com/Carmen-Shannon/oxy-showreel/internal/config"
)

// NewStage builds the static part of the scene: background, floor, ambient light and the
// shadow-casting sun. The character is added later by the showreel.
//
// Parameters:
//   - cfg: a validated configuration
//   - cam: the scene camera
//
// Returns:
//   - scene.Scene: the stage
func NewStage(cfg *config.Config, cam camera.Camera) scene.Scene {
	st := cfg.Stage

	// The plane mesh is generated in the XZ plane, so the floor needs no rotation.
	floorModel := model.NewModel(
		model.WithName("floor"),
		model.WithMeshes(model.NewPlaneMesh("floor", st.Floor.Width, st.Floor.Depth)),
	)
	floor := game_object.NewGameObject(
		game_object.WithModel(floorModel),
		game_object.WithColor(config.Color(st.Floor.Color)),
	)
	floor.EnableShadows(false, true)

	ambientColor := config.Color(st.Ambient.Color)
	ambient := light.NewLight(light.LightTypeAmbient,
		light.WithColor(ambientColor[0], ambientColor[1], ambientColor[2]),
		light.WithIntensity(st.Ambient.Intensity),
	)

	sunColor := config.Color(st.Sun.Color)
	sun := light.NewLight(light.LightTypeDirectional,
		light.WithColor(sunColor[0], sunColor[1], sunColor[2]),
		light.WithIntensity(st.Sun.Intensity),
		light.WithPosition(st.Sun.Position[0], st.Sun.Position[1], st.Sun.Position[2]),
		light.WithTarget(0, 0, 0),
		light.WithCastsShadows(true),
		light.WithShadow(light.Shadow{
			MapSize:    st.Sun.Shadow.MapSize,
			HalfExtent: st.Sun.Shadow.Extent,
			Far:        st.Sun.Shadow.Far,
			Bias:       st.Sun.Shadow.Bias,
		}),
	)

	return scene.NewScene("showreel",
		scene.WithCamera(cam),
		scene.WithBackground(config.Color(st.Background)),
		scene.WithObjects(floor),
		scene.WithLights(ambient, sun),
	)
}

// Viewpoints converts the configured tour into sequencer stops.
func Viewpoints(cfg *config.Config) []viewpoint.Viewpoint {
	out := make([]viewpoint.Viewpoint, len(cfg.Viewpoints))
	for i, vp := range cfg.Viewpoints {
		out[i] = viewpoint.Viewpoint{
			Name:     vp.Name,
			Position: common.Vec3(vp.Position),
			Duration: vp.Duration,
			Delay:    vp.Delay,
		}
	}
	return out
}
