package refresh

import (
	"encoding/hex"
	"time"

	"github.com/zeebo/blake3"

	"github.com/inkframe/inkframe"
)

// Frame is one rendered, encoded panel image.
type Frame struct {
	Image      []byte
	Format     inkframe.Format
	ETag       string
	Layout     string
	RenderedAt time.Time
}

// ContentType returns the MIME type of the image.
func (f *Frame) ContentType() string {
	if f.Format == inkframe.FormatBMP {
		return "image/bmp"
	}
	return "image/png"
}

// frameDomainKey keys frame digests so they never collide with digests of
// the same bytes taken elsewhere.
var frameDomainKey = [32]byte{
	'i', 'n', 'k', 'f', 'r', 'a', 'm', 'e', '.', 'f', 'r', 'a', 'm', 'e',
}

// digest returns the ETag of an encoded frame: the first 16 bytes of its
// keyed BLAKE3 hash, hex encoded. Identical images get identical tags, so
// a panel can skip redrawing an unchanged frame.
func digest(image []byte) string {
	hasher, err := blake3.NewKeyed(frameDomainKey[:])
	if err != nil {
		panic("refresh: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	_, _ = hasher.Write(image)
	sum := hasher.Sum(nil)
	return hex.EncodeToString(sum[:16])
}
