// Command vmsim runs workloads against a simulated virtual memory.
package main

import "github.com/sarchlab/vmsim/cmd/vmsim/cmd"

func main() {
	cmd.Execute()
}
