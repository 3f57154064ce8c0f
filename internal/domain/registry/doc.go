// Package registry holds the apps shown in the dock.
//
// Components:
//   - Manager: registration (unique ids, order preserved), lookup and launch
//   - Seeder: loads extra app manifests (.yaml, .yml, .toml, .json) from disk
//
// Each app carries a launch function. Launching an app opens its window
// and returns the window id.
//
// Example manifest (YAML):
//
//	id: weather
//	name: Weather
//	icon: "☀"
//	title: Weather
//	window:
//	  width: 480
//	  height: 360
package registry
