// Package heartscene renders an animated 3D heart scene with [Ebitengine].
//
// The scene holds a breathing, slowly turning extruded heart, rings of
// orbiting text labels, a twinkling starfield, a cloud of glow points, a lit
// ground plane and particle bursts launched by clicks or taps.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	scene, err := heartscene.NewScene(heartscene.DefaultConfig(), nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	heartscene.Run(scene, heartscene.RunConfig{
//		Title: "Heart", Width: 1024, Height: 768,
//	})
//
// For full control, implement [ebiten.Game] yourself and call
// [Scene.Update] and [Scene.Draw] directly.
//
// # Stepping
//
// All animation advances through [Scene.Step], which takes the elapsed time
// in seconds. [Scene.Update] measures wall-clock time and calls it; tests
// call it with synthetic steps. Randomness comes from the *rand.Rand passed
// to [NewScene], so a fixed seed gives a reproducible scene.
//
// # Scene graph
//
// Every element is a [Node] with a position, quaternion rotation and scale.
// Children inherit their parent's transform and alpha. Labels are sprites
// that always face the camera; their size and opacity follow the camera
// distance and direction.
//
// # Configuration
//
// [DefaultConfig] describes the stock scene. [LoadConfig] merges a YAML file
// over it and [ConfigFromEnv] reads HEARTSCENE_* variables, optionally from
// a .env file loaded with [LoadEnv].
//
// [Ebitengine]: https://ebitengine.org
package heartscene
