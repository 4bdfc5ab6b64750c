// Package willowxr is the interaction model for placing and manipulating
// virtual "browser window" panels in an augmented-reality scene.
//
// A viewer spawns panels in front of them, selects one, and moves, rotates
// or resizes it by pointing. Pointers come from a tracked controller ray, a
// touch screen or a mouse; all three are reduced to the same [PointerSample]
// so the rest of the package never cares which device produced it.
//
// # Quick start
//
// The simplest way to try the model on a desktop is [Run], which opens a
// preview window where the mouse and touch screen stand in for the
// controller:
//
//	scene := willowxr.NewScene()
//	scene.NewPanel("Docs")
//	willowxr.Run(scene, willowxr.RunConfig{
//		Title: "Panels", Width: 1280, Height: 720,
//	})
//
// An AR host instead copies the viewer pose into [Scene.Camera] every frame,
// forwards controller or touch events, and calls [Scene.Update]:
//
//	scene.Camera().SetPose(headPose)
//	scene.ControllerSelectStart(controllerPose)
//	scene.Update()
//
// # Scene graph
//
// Every element is a [Node]. Panels, buttons, handles and keys carry a
// [Role]; the meshes that make them up are decorations attached with
// [Node.AddPart], which records the owning entity so a hit on an icon
// resolves to its button without walking the parent chain.
//
// # Hit testing
//
// [Scene.Pick] resolves a ray in two passes. Buttons, handles and keys are
// tested first; panels are tested only when no control was struck. The
// nearest accepted hit wins.
//
// # Interaction modes
//
// The [Controller] is a small state machine over [InteractionMode]: Idle,
// Placing, Moving, Rotating and Resizing. The Move and Rotate buttons on the
// control surface form a [ToggleGroup], so at most one is armed. Pressing a
// panel while Move is armed drags it on a camera-facing plane; while Rotate
// is armed the pointer's angular change turns it. Handles start their
// gesture directly. Each frame the target eases toward the pointer; release
// commits the exact goal.
//
// # Configuration
//
// Gesture constants live in [Config]. [DefaultConfig] returns the stock
// values and [LoadConfig] reads JSON over them:
//
//	cfg, err := willowxr.LoadConfig([]byte(`{"placement": "immediate"}`))
//
// # Callbacks and ECS
//
// [Scene.OnButtonAction], [Scene.OnSelect], [Scene.OnModeChange] and
// [Scene.OnKey] register callbacks that return a [CallbackHandle]. The same
// events are forwarded to an optional [EntityStore]; a [Donburi] adapter
// lives in willowxr/ecs.
//
// # Tweens and notifications
//
// Button flashes, the panel scale-in and toast fades run on [TweenGroup]
// (via [gween]). Messages go through a [Notifier]; the default
// [ToastQueue] shows them in front of the camera.
//
// [Donburi]: https://github.com/yohamta/donburi
// [gween]: https://github.com/tanema/gween
package willowxr
