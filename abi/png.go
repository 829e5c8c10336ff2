package abi

import "unsafe"

// Returned by png_sig_cmp for every input
const PNGSignatureMismatch int32 = -1

var pngSymbols = []Symbol{
	{LibPNG, "png_sig_cmp", "-1"},
	{LibPNG, "png_create_read_struct", SentinelNull},
	{LibPNG, "png_create_write_struct", SentinelNull},
	{LibPNG, "png_create_info_struct", SentinelNull},
	{LibPNG, "png_destroy_read_struct", SentinelVoid},
	{LibPNG, "png_destroy_write_struct", SentinelVoid},
	{LibPNG, "png_set_IHDR", SentinelVoid},
	{LibPNG, "png_get_IHDR", "0"},
	{LibPNG, "png_set_read_fn", SentinelVoid},
	{LibPNG, "png_set_write_fn", SentinelVoid},
	{LibPNG, "png_read_info", SentinelVoid},
	{LibPNG, "png_write_info", SentinelVoid},
	{LibPNG, "png_read_image", SentinelVoid},
	{LibPNG, "png_write_image", SentinelVoid},
	{LibPNG, "png_write_end", SentinelVoid},
	{LibPNG, "png_get_valid", "0"},
}

// png_sig_cmp. Every signature mismatches, so Leptonica never picks the PNG reader.
func PNGSigCmp(sig unsafe.Pointer, start, numToCheck uintptr) int32 {
	return PNGSignatureMismatch
}

// png_create_read_struct
func PNGCreateReadStruct(version, errorPtr, errorFn, warnFn unsafe.Pointer) unsafe.Pointer {
	return nil
}

// png_create_write_struct
func PNGCreateWriteStruct(version, errorPtr, errorFn, warnFn unsafe.Pointer) unsafe.Pointer {
	return nil
}

// png_create_info_struct
func PNGCreateInfoStruct(png unsafe.Pointer) unsafe.Pointer { return nil }

// png_destroy_read_struct. Accepts the NULL handles produced by the create stubs.
func PNGDestroyReadStruct(pngPtrPtr, infoPtrPtr, endInfoPtrPtr unsafe.Pointer) {}

// png_destroy_write_struct
func PNGDestroyWriteStruct(pngPtrPtr, infoPtrPtr unsafe.Pointer) {}

// png_set_IHDR
func PNGSetIHDR(png, info unsafe.Pointer, width, height uint32, bitDepth, colorType, interlace, compression, filter int32) {
}

// png_get_IHDR
func PNGGetIHDR(png, info, width, height, bitDepth, colorType, interlace, compression, filter unsafe.Pointer) uint32 {
	return 0
}

func PNGSetReadFn(png, ioPtr, readFn unsafe.Pointer) {}

func PNGSetWriteFn(png, ioPtr, writeFn, flushFn unsafe.Pointer) {}

func PNGReadInfo(png, info unsafe.Pointer) {}

func PNGWriteInfo(png, info unsafe.Pointer) {}

func PNGReadImage(png, rows unsafe.Pointer) {}

func PNGWriteImage(png, rows unsafe.Pointer) {}

func PNGWriteEnd(png, info unsafe.Pointer) {}

// png_get_valid. No chunk is ever valid.
func PNGGetValid(png, info unsafe.Pointer, flag uint32) uint32 { return 0 }
