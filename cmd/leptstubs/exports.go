package main

/*
#include <stddef.h>
*/
import "C"

import (
	"unsafe"

	"github.com/opengs/tesswrap/abi"
)

// Allocated once and never freed: curl_easy_strerror hands out a pointer callers must not free.
var curlStrerror = C.CString(abi.CurlEasyStrerror(0))

//export TIFFOpen
func TIFFOpen(name, mode *C.char) unsafe.Pointer {
	return abi.TIFFOpen(unsafe.Pointer(name), unsafe.Pointer(mode))
}

//export TIFFClose
func TIFFClose(tif unsafe.Pointer) { abi.TIFFClose(tif) }

//export TIFFCleanup
func TIFFCleanup(tif unsafe.Pointer) { abi.TIFFCleanup(tif) }

//export TIFFClientOpen
func TIFFClientOpen(name, mode *C.char, clientData, readProc, writeProc, seekProc, closeProc, sizeProc, mapProc, unmapProc unsafe.Pointer) unsafe.Pointer {
	return abi.TIFFClientOpen(unsafe.Pointer(name), unsafe.Pointer(mode), clientData, readProc, writeProc, seekProc, closeProc, sizeProc, mapProc, unmapProc)
}

// Targets of the variadic wrappers in variadic.c

//export tiffGetField
func tiffGetField(tif unsafe.Pointer, tag C.uint) C.int {
	return C.int(abi.TIFFGetField(tif, uint32(tag)))
}

//export tiffGetFieldDefaulted
func tiffGetFieldDefaulted(tif unsafe.Pointer, tag C.uint) C.int {
	return C.int(abi.TIFFGetFieldDefaulted(tif, uint32(tag)))
}

//export tiffSetField
func tiffSetField(tif unsafe.Pointer, tag C.uint) C.int {
	return C.int(abi.TIFFSetField(tif, uint32(tag)))
}

//export TIFFReadDirectory
func TIFFReadDirectory(tif unsafe.Pointer) C.int { return C.int(abi.TIFFReadDirectory(tif)) }

//export TIFFSetDirectory
func TIFFSetDirectory(tif unsafe.Pointer, dirNum C.ushort) C.int {
	return C.int(abi.TIFFSetDirectory(tif, uint16(dirNum)))
}

//export TIFFSetSubDirectory
func TIFFSetSubDirectory(tif unsafe.Pointer, dirOffset C.ulong) C.int {
	return C.int(abi.TIFFSetSubDirectory(tif, uint64(dirOffset)))
}

//export TIFFCurrentDirOffset
func TIFFCurrentDirOffset(tif unsafe.Pointer) C.ulong {
	return C.ulong(abi.TIFFCurrentDirOffset(tif))
}

//export TIFFReadRGBAImageOriented
func TIFFReadRGBAImageOriented(tif unsafe.Pointer, width, height C.uint, raster *C.uint, orientation, stopOnError C.int) C.int {
	return C.int(abi.TIFFReadRGBAImageOriented(tif, uint32(width), uint32(height), unsafe.Pointer(raster), int32(orientation), int32(stopOnError)))
}

//export TIFFReadScanline
func TIFFReadScanline(tif, buf unsafe.Pointer, row C.uint, sample C.ushort) C.int {
	return C.int(abi.TIFFReadScanline(tif, buf, uint32(row), uint16(sample)))
}

//export TIFFWriteScanline
func TIFFWriteScanline(tif, buf unsafe.Pointer, row C.uint, sample C.ushort) C.int {
	return C.int(abi.TIFFWriteScanline(tif, buf, uint32(row), uint16(sample)))
}

//export TIFFScanlineSize
func TIFFScanlineSize(tif unsafe.Pointer) C.ulong { return C.ulong(abi.TIFFScanlineSize(tif)) }

//export TIFFIsTiled
func TIFFIsTiled(tif unsafe.Pointer) C.int { return C.int(abi.TIFFIsTiled(tif)) }

//export TIFFPrintDirectory
func TIFFPrintDirectory(tif, fd unsafe.Pointer, flags C.long) {
	abi.TIFFPrintDirectory(tif, fd, int64(flags))
}

//export TIFFSetErrorHandler
func TIFFSetErrorHandler(handler unsafe.Pointer) unsafe.Pointer {
	return abi.TIFFSetErrorHandler(handler)
}

//export TIFFSetWarningHandler
func TIFFSetWarningHandler(handler unsafe.Pointer) unsafe.Pointer {
	return abi.TIFFSetWarningHandler(handler)
}

//export WebPGetFeaturesInternal
func WebPGetFeaturesInternal(data *C.uchar, dataSize C.size_t, features unsafe.Pointer, version C.int) C.int {
	return C.int(abi.WebPGetFeaturesInternal(unsafe.Pointer(data), uintptr(dataSize), features, int32(version)))
}

//export WebPDecodeRGBAInto
func WebPDecodeRGBAInto(data *C.uchar, dataSize C.size_t, output *C.uchar, outputSize C.size_t, outputStride C.int) *C.uchar {
	return (*C.uchar)(abi.WebPDecodeRGBAInto(unsafe.Pointer(data), uintptr(dataSize), unsafe.Pointer(output), uintptr(outputSize), int32(outputStride)))
}

//export WebPEncodeLosslessRGBA
func WebPEncodeLosslessRGBA(rgba *C.uchar, width, height, stride C.int, output **C.uchar) C.size_t {
	return C.size_t(abi.WebPEncodeLosslessRGBA(unsafe.Pointer(rgba), int32(width), int32(height), int32(stride), unsafe.Pointer(output)))
}

//export WebPEncodeRGBA
func WebPEncodeRGBA(rgba *C.uchar, width, height, stride C.int, quality C.float, output **C.uchar) C.size_t {
	return C.size_t(abi.WebPEncodeRGBA(unsafe.Pointer(rgba), int32(width), int32(height), int32(stride), float32(quality), unsafe.Pointer(output)))
}

//export png_sig_cmp
func png_sig_cmp(sig *C.uchar, start, numToCheck C.size_t) C.int {
	return C.int(abi.PNGSigCmp(unsafe.Pointer(sig), uintptr(start), uintptr(numToCheck)))
}

//export png_create_read_struct
func png_create_read_struct(version *C.char, errorPtr, errorFn, warnFn unsafe.Pointer) unsafe.Pointer {
	return abi.PNGCreateReadStruct(unsafe.Pointer(version), errorPtr, errorFn, warnFn)
}

//export png_create_write_struct
func png_create_write_struct(version *C.char, errorPtr, errorFn, warnFn unsafe.Pointer) unsafe.Pointer {
	return abi.PNGCreateWriteStruct(unsafe.Pointer(version), errorPtr, errorFn, warnFn)
}

//export png_create_info_struct
func png_create_info_struct(png unsafe.Pointer) unsafe.Pointer {
	return abi.PNGCreateInfoStruct(png)
}

//export png_destroy_read_struct
func png_destroy_read_struct(pngPtrPtr, infoPtrPtr, endInfoPtrPtr unsafe.Pointer) {
	abi.PNGDestroyReadStruct(pngPtrPtr, infoPtrPtr, endInfoPtrPtr)
}

//export png_destroy_write_struct
func png_destroy_write_struct(pngPtrPtr, infoPtrPtr unsafe.Pointer) {
	abi.PNGDestroyWriteStruct(pngPtrPtr, infoPtrPtr)
}

//export png_set_IHDR
func png_set_IHDR(png, info unsafe.Pointer, width, height C.uint, bitDepth, colorType, interlace, compression, filter C.int) {
	abi.PNGSetIHDR(png, info, uint32(width), uint32(height), int32(bitDepth), int32(colorType), int32(interlace), int32(compression), int32(filter))
}

//export png_get_IHDR
func png_get_IHDR(png, info, width, height, bitDepth, colorType, interlace, compression, filter unsafe.Pointer) C.uint {
	return C.uint(abi.PNGGetIHDR(png, info, width, height, bitDepth, colorType, interlace, compression, filter))
}

//export png_set_read_fn
func png_set_read_fn(png, ioPtr, readFn unsafe.Pointer) { abi.PNGSetReadFn(png, ioPtr, readFn) }

//export png_set_write_fn
func png_set_write_fn(png, ioPtr, writeFn, flushFn unsafe.Pointer) {
	abi.PNGSetWriteFn(png, ioPtr, writeFn, flushFn)
}

//export png_read_info
func png_read_info(png, info unsafe.Pointer) { abi.PNGReadInfo(png, info) }

//export png_write_info
func png_write_info(png, info unsafe.Pointer) { abi.PNGWriteInfo(png, info) }

//export png_read_image
func png_read_image(png, rows unsafe.Pointer) { abi.PNGReadImage(png, rows) }

//export png_write_image
func png_write_image(png, rows unsafe.Pointer) { abi.PNGWriteImage(png, rows) }

//export png_write_end
func png_write_end(png, info unsafe.Pointer) { abi.PNGWriteEnd(png, info) }

//export png_get_valid
func png_get_valid(png, info unsafe.Pointer, flag C.uint) C.uint {
	return C.uint(abi.PNGGetValid(png, info, uint32(flag)))
}

//export jpeg_CreateCompress
func jpeg_CreateCompress(cinfo unsafe.Pointer, version C.int, structSize C.size_t) {
	abi.JPEGCreateCompress(cinfo, int32(version), uintptr(structSize))
}

//export jpeg_CreateDecompress
func jpeg_CreateDecompress(cinfo unsafe.Pointer, version C.int, structSize C.size_t) {
	abi.JPEGCreateDecompress(cinfo, int32(version), uintptr(structSize))
}

//export jpeg_destroy_compress
func jpeg_destroy_compress(cinfo unsafe.Pointer) { abi.JPEGDestroyCompress(cinfo) }

//export jpeg_destroy_decompress
func jpeg_destroy_decompress(cinfo unsafe.Pointer) { abi.JPEGDestroyDecompress(cinfo) }

//export jpeg_destroy
func jpeg_destroy(cinfo unsafe.Pointer) { abi.JPEGDestroy(cinfo) }

//export jpeg_finish_compress
func jpeg_finish_compress(cinfo unsafe.Pointer) { abi.JPEGFinishCompress(cinfo) }

//export jpeg_finish_decompress
func jpeg_finish_decompress(cinfo unsafe.Pointer) C.int {
	return C.int(abi.JPEGFinishDecompress(cinfo))
}

//export jpeg_calc_output_dimensions
func jpeg_calc_output_dimensions(cinfo unsafe.Pointer) { abi.JPEGCalcOutputDimensions(cinfo) }

//export deflateInit_
func deflateInit_(strm unsafe.Pointer, level C.int, version *C.char, streamSize C.int) C.int {
	return C.int(abi.ZDeflateInit(strm, int32(level), unsafe.Pointer(version), int32(streamSize)))
}

//export deflate
func deflate(strm unsafe.Pointer, flush C.int) C.int { return C.int(abi.ZDeflate(strm, int32(flush))) }

//export deflateEnd
func deflateEnd(strm unsafe.Pointer) C.int { return C.int(abi.ZDeflateEnd(strm)) }

//export inflateInit_
func inflateInit_(strm unsafe.Pointer, version *C.char, streamSize C.int) C.int {
	return C.int(abi.ZInflateInit(strm, unsafe.Pointer(version), int32(streamSize)))
}

//export inflate
func inflate(strm unsafe.Pointer, flush C.int) C.int { return C.int(abi.ZInflate(strm, int32(flush))) }

//export inflateEnd
func inflateEnd(strm unsafe.Pointer) C.int { return C.int(abi.ZInflateEnd(strm)) }

//export curl_easy_init
func curl_easy_init() unsafe.Pointer { return abi.CurlEasyInit() }

//export curl_easy_cleanup
func curl_easy_cleanup(curl unsafe.Pointer) { abi.CurlEasyCleanup(curl) }

//export curlEasySetopt
func curlEasySetopt(curl unsafe.Pointer, option C.int) C.int {
	return C.int(abi.CurlEasySetopt(curl, int32(option)))
}

//export curl_easy_perform
func curl_easy_perform(curl unsafe.Pointer) C.int { return C.int(abi.CurlEasyPerform(curl)) }

//export curl_easy_strerror
func curl_easy_strerror(code C.int) *C.char { return curlStrerror }
