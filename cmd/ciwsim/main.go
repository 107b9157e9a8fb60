// Ciwsim simulates queueing networks described in YAML configuration
// files and reports queue performance and state probabilities.
package main

func main() {
	Execute()
}
