// Package service provides the application-level operations of the pantry:
// storing recipes and pantries as documents and scoring how ready each recipe
// is to cook against a pantry's stock.
package service
