package abi

import "unsafe"

var webpSymbols = []Symbol{
	{LibWebP, "WebPGetFeaturesInternal", "0"},
	{LibWebP, "WebPDecodeRGBAInto", SentinelNull},
	{LibWebP, "WebPEncodeLosslessRGBA", "0"},
	{LibWebP, "WebPEncodeRGBA", "0"},
}

// Reports VP8_STATUS_OK but leaves features untouched, so Leptonica reads whatever the caller's
// struct held. A non-zero VP8 status would fail earlier as "unsupported".
func WebPGetFeaturesInternal(data unsafe.Pointer, dataSize uintptr, features unsafe.Pointer, version int32) int32 {
	return 0
}

func WebPDecodeRGBAInto(data unsafe.Pointer, dataSize uintptr, output unsafe.Pointer, outputSize uintptr, outputStride int32) unsafe.Pointer {
	return nil
}

// 0 bytes written
func WebPEncodeLosslessRGBA(rgba unsafe.Pointer, width, height, stride int32, output unsafe.Pointer) uintptr {
	return 0
}

func WebPEncodeRGBA(rgba unsafe.Pointer, width, height, stride int32, quality float32, output unsafe.Pointer) uintptr {
	return 0
}
