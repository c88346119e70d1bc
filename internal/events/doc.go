// Package events lets services announce changes to recipes and pantries
// without knowing who listens.
//
// The primary components are:
//   - Event: a typed notification with a JSON payload
//   - EventHandler: implemented by anything that reacts to events
//   - EventEmitter: implemented by anything that publishes events
package events
