// Package abi defines the codec and transport symbols Leptonica links against when it is built
// without libtiff, libwebp, libpng, libjpeg, zlib and libcurl.
//
// Every function ignores its arguments and returns the value the mimicked library uses to report
// that an operation is not possible. Nothing here keeps state, so all functions are safe to call
// from any number of goroutines. The cgo link unit in cmd/leptstubs exports each of them under its C
// name.
package abi

// Sentinel spellings used by the symbol table.
const (
	SentinelNull = "NULL"
	SentinelVoid = "void"
)

// Library names
const (
	LibTIFF = "libtiff"
	LibWebP = "libwebp"
	LibPNG  = "libpng"
	LibJPEG = "libjpeg"
	LibZ    = "zlib"
	LibCURL = "libcurl"
)

// Stubbed library and the image formats Leptonica loses because of it.
type Library struct {
	Name      string   `json:"name"`
	MimeTypes []string `json:"mimeTypes"`
}

// Stubbed symbol.
type Symbol struct {
	Library string `json:"library"`
	// Exact C symbol name
	Name string `json:"name"`
	// Value returned by every call. `void` for functions without result.
	Sentinel string `json:"sentinel"`
}

var libraries = []Library{
	{Name: LibTIFF, MimeTypes: []string{"image/tiff"}},
	{Name: LibWebP, MimeTypes: []string{"image/webp"}},
	{Name: LibPNG, MimeTypes: []string{"image/png"}},
	{Name: LibJPEG, MimeTypes: []string{"image/jpeg"}},
	{Name: LibZ},
	{Name: LibCURL},
}

var symbols = concatSymbols(tiffSymbols, webpSymbols, pngSymbols, jpegSymbols, zlibSymbols, curlSymbols)

func concatSymbols(groups ...[]Symbol) []Symbol {
	var all []Symbol
	for _, g := range groups {
		all = append(all, g...)
	}
	return all
}

// Returns every stubbed symbol in declaration order
func Symbols() []Symbol {
	out := make([]Symbol, len(symbols))
	copy(out, symbols)
	return out
}

// Returns stubbed libraries
func Libraries() []Library {
	out := make([]Library, 0, len(libraries))
	for _, l := range libraries {
		out = append(out, Library{Name: l.Name, MimeTypes: append([]string(nil), l.MimeTypes...)})
	}
	return out
}

// Returns symbols of a single library. Nil if library is unknown.
func LibrarySymbols(library string) []Symbol {
	var out []Symbol
	for _, s := range symbols {
		if s.Library == library {
			out = append(out, s)
		}
	}
	return out
}

// Looks up symbol by its C name
func Lookup(name string) (Symbol, bool) {
	for _, s := range symbols {
		if s.Name == name {
			return s, true
		}
	}
	return Symbol{}, false
}

// Image formats Leptonica cannot read or write when linked against these stubs.
func StubbedMimeTypes() []string {
	var out []string
	for _, l := range libraries {
		out = append(out, l.MimeTypes...)
	}
	return out
}

// Reports whether Leptonica linked against these stubs can still handle the format natively.
func IsNativeMimeType(mimeType string) bool {
	switch mimeType {
	case "image/bmp", "image/x-portable-anymap", "image/x-portable-pixmap", "image/x-portable-graymap", "image/gif":
		return true
	}
	return false
}
