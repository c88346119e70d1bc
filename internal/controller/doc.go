// Package controller exposes create, read, update and delete operations over
// an injected document store.
//
// The Controller is a thin facade: every operation is forwarded to the store
// exactly once and the store's result and error are returned unchanged. Error
// translation belongs to the store adapters, not here.
package controller
