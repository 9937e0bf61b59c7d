package provider

import (
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

// decodeGBK converts a GBK-encoded payload to UTF-8. Sina and Tencent both
// serve quote text in GBK. Falls back to the raw bytes on decode failure.
func decodeGBK(raw []byte) string {
	out, _, err := transform.Bytes(simplifiedchinese.GBK.NewDecoder(), raw)
	if err != nil {
		return string(raw)
	}
	return string(out)
}
