package abi

import "unsafe"

const (
	CURLEOK             int32 = 0
	CURLPerformFailed   int32 = -1
	CURLStubErrorString       = "Stub implementation"
)

var curlSymbols = []Symbol{
	{LibCURL, "curl_easy_init", SentinelNull},
	{LibCURL, "curl_easy_cleanup", SentinelVoid},
	{LibCURL, "curl_easy_setopt", "0"},
	{LibCURL, "curl_easy_perform", "-1"},
	{LibCURL, "curl_easy_strerror", `"` + CURLStubErrorString + `"`},
}

// curl_easy_init
func CurlEasyInit() unsafe.Pointer { return nil }

// curl_easy_cleanup
func CurlEasyCleanup(curl unsafe.Pointer) {}

// curl_easy_setopt. Options are accepted and dropped; the failure shows up on perform.
func CurlEasySetopt(curl unsafe.Pointer, option int32) int32 { return CURLEOK }

// curl_easy_perform
func CurlEasyPerform(curl unsafe.Pointer) int32 { return CURLPerformFailed }

// curl_easy_strerror
func CurlEasyStrerror(code int32) string { return CURLStubErrorString }
