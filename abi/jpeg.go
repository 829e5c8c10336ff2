package abi

import "unsafe"

// jpeg_finish_decompress result. TRUE tells the caller decompression is complete, so suspension
// loops terminate.
const JPEGFinished int32 = 1

var jpegSymbols = []Symbol{
	{LibJPEG, "jpeg_CreateCompress", SentinelVoid},
	{LibJPEG, "jpeg_CreateDecompress", SentinelVoid},
	{LibJPEG, "jpeg_destroy_compress", SentinelVoid},
	{LibJPEG, "jpeg_destroy_decompress", SentinelVoid},
	{LibJPEG, "jpeg_destroy", SentinelVoid},
	{LibJPEG, "jpeg_finish_compress", SentinelVoid},
	{LibJPEG, "jpeg_finish_decompress", "1"},
	{LibJPEG, "jpeg_calc_output_dimensions", SentinelVoid},
}

// jpeg_CreateCompress
func JPEGCreateCompress(cinfo unsafe.Pointer, version int32, structSize uintptr) {}

// jpeg_CreateDecompress
func JPEGCreateDecompress(cinfo unsafe.Pointer, version int32, structSize uintptr) {}

func JPEGDestroyCompress(cinfo unsafe.Pointer) {}

func JPEGDestroyDecompress(cinfo unsafe.Pointer) {}

func JPEGDestroy(cinfo unsafe.Pointer) {}

func JPEGFinishCompress(cinfo unsafe.Pointer) {}

// jpeg_finish_decompress
func JPEGFinishDecompress(cinfo unsafe.Pointer) int32 { return JPEGFinished }

func JPEGCalcOutputDimensions(cinfo unsafe.Pointer) {}
