// Package vet exposes docguard as a golang.org/x/tools/go/analysis
// analyzer, so the same rules and severity configuration run under
// go vet, gopls or any multichecker.
//
// Each diagnostic carries the resolved severity and the rule id:
//
//	shop/client.go:12:1: [ERROR] Missing doc comment: shop.Client (docguard)
//
// The analyzer sees one package at a time, so scan.include_inherited only
// promotes methods of embedded types declared in the same package, which is
// the same limit the directory scanner has.
package vet
