// Command leptstubs is a link unit, not a program. Built as a C archive it provides the TIFF, WebP,
// PNG, JPEG, zlib and cURL symbols Leptonica expects, each answering with the "not available"
// value of its library:
//
//	go build -buildmode=c-archive -o libleptstubs.a ./cmd/leptstubs
//
// Link libleptstubs.a after liblept.a. The values themselves are defined in package abi.
package main

func main() {}
