// Command pantry stores recipes and pantries and reports how ready each
// recipe is to cook with what is on hand.
//
// Usage:
//
//	pantry <command> [arguments]
//
// Common commands:
//
//	pantry classify vegan                       Print the diet category of a label
//	pantry evaluate --ingredient Flour=500 --item Flour=250
//	pantry migrate up                           Apply database migrations
//	pantry recipe add --name Bread --ingredient Flour=500
//	pantry readiness <recipe-id> <pantry-id>
//	pantry rank <pantry-id> --diet vegan
//
// Without database.url (PANTRY_DATABASE_URL) documents live in memory and are
// discarded when the command exits.
package main

import "os"

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}
