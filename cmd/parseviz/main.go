// Package main is the parseviz CLI: raid participation analytics from
// Warcraft Logs parse count exports.
package main

func main() {
	Execute()
}
