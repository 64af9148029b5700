// Comando cierrez: parsea reportes de Cierre Z sin pasar por la API ni la base.
//
//	cierrez parse z4821.txt --format xlsx --output z4821.xlsx --station EST01
//	cierrez validate z4821.json
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
