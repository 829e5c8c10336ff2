package abi

import "unsafe"

// Returned by TIFFReadScanline and TIFFWriteScanline
const TIFFScanlineError int32 = -1

var tiffSymbols = []Symbol{
	{LibTIFF, "TIFFOpen", SentinelNull},
	{LibTIFF, "TIFFClose", SentinelVoid},
	{LibTIFF, "TIFFCleanup", SentinelVoid},
	{LibTIFF, "TIFFClientOpen", SentinelNull},
	{LibTIFF, "TIFFGetField", "0"},
	{LibTIFF, "TIFFGetFieldDefaulted", "0"},
	{LibTIFF, "TIFFSetField", "0"},
	{LibTIFF, "TIFFReadDirectory", "0"},
	{LibTIFF, "TIFFSetDirectory", "0"},
	{LibTIFF, "TIFFSetSubDirectory", "0"},
	{LibTIFF, "TIFFCurrentDirOffset", "0"},
	{LibTIFF, "TIFFReadRGBAImageOriented", "0"},
	{LibTIFF, "TIFFReadScanline", "-1"},
	{LibTIFF, "TIFFWriteScanline", "-1"},
	{LibTIFF, "TIFFScanlineSize", "0"},
	{LibTIFF, "TIFFIsTiled", "0"},
	{LibTIFF, "TIFFPrintDirectory", SentinelVoid},
	{LibTIFF, "TIFFSetErrorHandler", SentinelNull},
	{LibTIFF, "TIFFSetWarningHandler", SentinelNull},
}

// NULL: file could not be opened.
func TIFFOpen(name, mode unsafe.Pointer) unsafe.Pointer { return nil }

func TIFFClose(tif unsafe.Pointer) {}

func TIFFCleanup(tif unsafe.Pointer) {}

// NULL: client stream could not be opened.
func TIFFClientOpen(name, mode, clientData, readProc, writeProc, seekProc, closeProc, sizeProc, mapProc, unmapProc unsafe.Pointer) unsafe.Pointer {
	return nil
}

// 0: tag is not set. The C version is variadic, the trailing arguments are ignored.
func TIFFGetField(tif unsafe.Pointer, tag uint32) int32 { return 0 }

func TIFFGetFieldDefaulted(tif unsafe.Pointer, tag uint32) int32 { return 0 }

func TIFFSetField(tif unsafe.Pointer, tag uint32) int32 { return 0 }

func TIFFReadDirectory(tif unsafe.Pointer) int32 { return 0 }

func TIFFSetDirectory(tif unsafe.Pointer, dirNum uint16) int32 { return 0 }

func TIFFSetSubDirectory(tif unsafe.Pointer, dirOffset uint64) int32 { return 0 }

func TIFFCurrentDirOffset(tif unsafe.Pointer) uint64 { return 0 }

func TIFFReadRGBAImageOriented(tif unsafe.Pointer, width, height uint32, raster unsafe.Pointer, orientation, stopOnError int32) int32 {
	return 0
}

func TIFFReadScanline(tif, buf unsafe.Pointer, row uint32, sample uint16) int32 {
	return TIFFScanlineError
}

func TIFFWriteScanline(tif, buf unsafe.Pointer, row uint32, sample uint16) int32 {
	return TIFFScanlineError
}

func TIFFScanlineSize(tif unsafe.Pointer) uint64 { return 0 }

func TIFFIsTiled(tif unsafe.Pointer) int32 { return 0 }

func TIFFPrintDirectory(tif, fd unsafe.Pointer, flags int64) {}

// Returns the previous handler, which never exists.
func TIFFSetErrorHandler(handler unsafe.Pointer) unsafe.Pointer { return nil }

func TIFFSetWarningHandler(handler unsafe.Pointer) unsafe.Pointer { return nil }
