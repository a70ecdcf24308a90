// Command docguard-vet runs the docguard analyzer as a standalone vet tool.
//
//	go vet -vettool=$(which docguard-vet) ./...
//	docguard-vet -config docguard.yaml ./...
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"mercator-hq/docguard/pkg/vet"
)

func main() {
	singlechecker.Main(vet.Analyzer)
}
