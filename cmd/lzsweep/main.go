// Command lzsweep runs transition probability experiments described by
// YAML files and prints or reports the results.
package main

func main() {
	Execute()
}
