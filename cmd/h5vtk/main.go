// Command h5vtk inspects HDF5 files holding vtk datasets and converts
// datasets between HDF5 and the YAML mesh format.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
