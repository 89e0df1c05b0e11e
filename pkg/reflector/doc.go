// Package reflector provides a drop-in scene explorer and frame profiler
// server for real-time Go applications.
//
// The embedding application implements the PerfProvider, SceneProvider and
// EntityProvider interfaces, creates a Server and drives the profiler from
// its main loop. The server exposes a JSON REST API (plus a websocket
// stream) consumed by the Reflector inspector UI.
package reflector
