package abi

import (
	"sync"
	"testing"
	"unsafe"

	"github.com/google/go-cmp/cmp"
)

var junk = unsafe.Pointer(&[64]byte{})

// Calls every stub once with arbitrary arguments and returns results keyed by C name.
// Void functions are reported as SentinelVoid.
func callAll() map[string]any {
	var handle unsafe.Pointer
	return map[string]any{
		"TIFFOpen":                  TIFFOpen(junk, junk),
		"TIFFClose":                 voidCall(func() { TIFFClose(handle) }),
		"TIFFCleanup":               voidCall(func() { TIFFCleanup(junk) }),
		"TIFFClientOpen":            TIFFClientOpen(junk, junk, junk, junk, junk, junk, junk, junk, junk, junk),
		"TIFFGetField":              TIFFGetField(junk, 256),
		"TIFFGetFieldDefaulted":     TIFFGetFieldDefaulted(junk, 257),
		"TIFFSetField":              TIFFSetField(junk, 258),
		"TIFFReadDirectory":         TIFFReadDirectory(junk),
		"TIFFSetDirectory":          TIFFSetDirectory(junk, 3),
		"TIFFSetSubDirectory":       TIFFSetSubDirectory(junk, 1024),
		"TIFFCurrentDirOffset":      TIFFCurrentDirOffset(junk),
		"TIFFReadRGBAImageOriented": TIFFReadRGBAImageOriented(junk, 10, 10, junk, 1, 1),
		"TIFFReadScanline":          TIFFReadScanline(junk, junk, 7, 0),
		"TIFFWriteScanline":         TIFFWriteScanline(junk, junk, 7, 0),
		"TIFFScanlineSize":          TIFFScanlineSize(junk),
		"TIFFIsTiled":               TIFFIsTiled(junk),
		"TIFFPrintDirectory":        voidCall(func() { TIFFPrintDirectory(junk, junk, 0) }),
		"TIFFSetErrorHandler":       TIFFSetErrorHandler(junk),
		"TIFFSetWarningHandler":     TIFFSetWarningHandler(junk),

		"WebPGetFeaturesInternal": WebPGetFeaturesInternal(junk, 64, junk, 0x0209),
		"WebPDecodeRGBAInto":      WebPDecodeRGBAInto(junk, 64, junk, 64, 16),
		"WebPEncodeLosslessRGBA":  WebPEncodeLosslessRGBA(junk, 4, 4, 16, junk),
		"WebPEncodeRGBA":          WebPEncodeRGBA(junk, 4, 4, 16, 75, junk),

		"png_sig_cmp":              PNGSigCmp(junk, 0, 8),
		"png_create_read_struct":   PNGCreateReadStruct(junk, nil, nil, nil),
		"png_create_write_struct":  PNGCreateWriteStruct(junk, nil, nil, nil),
		"png_create_info_struct":   PNGCreateInfoStruct(handle),
		"png_destroy_read_struct":  voidCall(func() { PNGDestroyReadStruct(nil, nil, nil) }),
		"png_destroy_write_struct": voidCall(func() { PNGDestroyWriteStruct(nil, nil) }),
		"png_set_IHDR":             voidCall(func() { PNGSetIHDR(nil, nil, 4, 4, 8, 6, 0, 0, 0) }),
		"png_get_IHDR":             PNGGetIHDR(nil, nil, junk, junk, junk, junk, junk, junk, junk),
		"png_set_read_fn":          voidCall(func() { PNGSetReadFn(nil, junk, junk) }),
		"png_set_write_fn":         voidCall(func() { PNGSetWriteFn(nil, junk, junk, junk) }),
		"png_read_info":            voidCall(func() { PNGReadInfo(nil, nil) }),
		"png_write_info":           voidCall(func() { PNGWriteInfo(nil, nil) }),
		"png_read_image":           voidCall(func() { PNGReadImage(nil, junk) }),
		"png_write_image":          voidCall(func() { PNGWriteImage(nil, junk) }),
		"png_write_end":            voidCall(func() { PNGWriteEnd(nil, nil) }),
		"png_get_valid":            PNGGetValid(nil, nil, 0x0010),

		"jpeg_CreateCompress":         voidCall(func() { JPEGCreateCompress(junk, 80, 584) }),
		"jpeg_CreateDecompress":       voidCall(func() { JPEGCreateDecompress(junk, 80, 632) }),
		"jpeg_destroy_compress":       voidCall(func() { JPEGDestroyCompress(junk) }),
		"jpeg_destroy_decompress":     voidCall(func() { JPEGDestroyDecompress(junk) }),
		"jpeg_destroy":                voidCall(func() { JPEGDestroy(junk) }),
		"jpeg_finish_compress":        voidCall(func() { JPEGFinishCompress(junk) }),
		"jpeg_finish_decompress":      JPEGFinishDecompress(junk),
		"jpeg_calc_output_dimensions": voidCall(func() { JPEGCalcOutputDimensions(junk) }),

		"deflateInit_": ZDeflateInit(junk, 6, junk, 112),
		"deflate":      ZDeflate(junk, 4),
		"deflateEnd":   ZDeflateEnd(junk),
		"inflateInit_": ZInflateInit(junk, junk, 112),
		"inflate":      ZInflate(junk, 0),
		"inflateEnd":   ZInflateEnd(junk),

		"curl_easy_init":     CurlEasyInit(),
		"curl_easy_cleanup":  voidCall(func() { CurlEasyCleanup(handle) }),
		"curl_easy_setopt":   CurlEasySetopt(junk, 10002),
		"curl_easy_perform":  CurlEasyPerform(junk),
		"curl_easy_strerror": CurlEasyStrerror(7),
	}
}

func voidCall(f func()) string {
	f()
	return SentinelVoid
}

// Renders a stub result the way the symbol table spells it.
func sentinelString(v any) string {
	switch r := v.(type) {
	case unsafe.Pointer:
		if r == nil {
			return SentinelNull
		}
		return "non-NULL"
	case string:
		if r == SentinelVoid {
			return SentinelVoid
		}
		return `"` + r + `"`
	case int32:
		return itoa(int64(r))
	case uint32:
		return itoa(int64(r))
	case uint64:
		return itoa(int64(r))
	case uintptr:
		return itoa(int64(r))
	}
	return "unknown"
}

func itoa(v int64) string {
	switch v {
	case -1:
		return "-1"
	case 0:
		return "0"
	case 1:
		return "1"
	}
	return "other"
}

func TestEveryStubReturnsItsSentinel(t *testing.T) {
	results := callAll()
	if len(results) != len(Symbols()) {
		t.Fatalf("called %d stubs, table has %d symbols", len(results), len(Symbols()))
	}

	for _, s := range Symbols() {
		result, ok := results[s.Name]
		if !ok {
			t.Errorf("symbol %s is in the table but was not called", s.Name)
			continue
		}
		if got := sentinelString(result); got != s.Sentinel {
			t.Errorf("%s returned %s, expected %s", s.Name, got, s.Sentinel)
		}
	}
}

func TestOpenStubsYieldNullHandlesThatCloseSafely(t *testing.T) {
	tif := TIFFOpen(junk, junk)
	if tif != nil {
		t.Fatal("TIFFOpen returned a handle")
	}
	TIFFClose(tif)
	TIFFCleanup(tif)

	png := PNGCreateReadStruct(junk, nil, nil, nil)
	info := PNGCreateInfoStruct(png)
	if png != nil || info != nil {
		t.Fatal("png create functions returned a handle")
	}
	PNGDestroyReadStruct(unsafe.Pointer(&png), unsafe.Pointer(&info), nil)

	curl := CurlEasyInit()
	if curl != nil {
		t.Fatal("curl_easy_init returned a handle")
	}
	if CurlEasySetopt(curl, 10002) != CURLEOK {
		t.Fail()
	}
	if CurlEasyPerform(curl) != CURLPerformFailed {
		t.Fail()
	}
	CurlEasyCleanup(curl)
}

func TestCurlStrerrorIsFixed(t *testing.T) {
	for _, code := range []int32{-1, 0, 1, 6, 7, 28, 1 << 20} {
		if got := CurlEasyStrerror(code); got != "Stub implementation" {
			t.Errorf("code %d: got %q", code, got)
		}
	}
}

func TestJPEGFinishDecompressIsTrue(t *testing.T) {
	// A zero result would make libjpeg callers retry forever.
	for range 3 {
		if JPEGFinishDecompress(nil) == 0 {
			t.Fatal("jpeg_finish_decompress reported suspension")
		}
	}
}

func TestStubsAreSafeConcurrently(t *testing.T) {
	want := callAll()
	var wg sync.WaitGroup
	errs := make(chan string, 64)
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got := callAll()
			for name, v := range got {
				if sentinelString(v) != sentinelString(want[name]) {
					errs <- name
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for name := range errs {
		t.Errorf("%s changed its result under concurrency", name)
	}
}

func TestSymbolNamesAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, s := range Symbols() {
		if seen[s.Name] {
			t.Errorf("duplicate symbol %s", s.Name)
		}
		seen[s.Name] = true
	}
}

func TestSymbolsReturnsCopy(t *testing.T) {
	s := Symbols()
	s[0].Name = "mutated"
	if Symbols()[0].Name != "TIFFOpen" {
		t.Fatal("symbol table was mutated through returned slice")
	}
}

func TestLookupAndLibrarySymbols(t *testing.T) {
	s, ok := Lookup("curl_easy_strerror")
	if !ok || s.Library != LibCURL {
		t.Fatalf("unexpected lookup result %+v %v", s, ok)
	}
	if _, ok := Lookup("TIFFReadEncodedStrip"); ok {
		t.Fatal("unknown symbol found")
	}

	for _, l := range Libraries() {
		if len(LibrarySymbols(l.Name)) == 0 {
			t.Errorf("library %s has no symbols", l.Name)
		}
	}
	if LibrarySymbols("libgif") != nil {
		t.Fatal("unknown library has symbols")
	}
}

func TestStubbedMimeTypes(t *testing.T) {
	want := []string{"image/tiff", "image/webp", "image/png", "image/jpeg"}
	if diff := cmp.Diff(want, StubbedMimeTypes()); diff != "" {
		t.Fatalf("stubbed mime types mismatch (-want +got):\n%s", diff)
	}
	for _, mt := range want {
		if IsNativeMimeType(mt) {
			t.Errorf("%s is stubbed but reported native", mt)
		}
	}
	if !IsNativeMimeType("image/bmp") {
		t.Fatal("bmp must stay native")
	}
}
