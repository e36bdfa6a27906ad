package classifier

import (
	"bytes"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"github.com/gabriel-vasile/mimetype"
)

const jpegQuality = 95

var decodable = []string{"image/jpeg", "image/png", "image/gif"}

// ToJPEG re-encodes a decodable image as JPEG so the detector always sees one
// format. Anything it cannot decode is returned unchanged.
func ToJPEG(data []byte) []byte {
	if !isDecodable(data) {
		return data
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return data
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return data
	}
	return buf.Bytes()
}

func isDecodable(data []byte) bool {
	mt := mimetype.Detect(data)
	for _, m := range decodable {
		if mt.Is(m) {
			return true
		}
	}
	return false
}
