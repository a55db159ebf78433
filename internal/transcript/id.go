package transcript

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
)

// GenerateID derives the content-addressed identifier for a (video, segment)
// pair: the hex SHA-256 of "{videoID}:{start}:{end}". Seconds are rendered
// with strconv's shortest representation so repeated runs over the same
// segment hash identical bytes.
func GenerateID(videoID string, start, end float64) string {
	payload := fmt.Sprintf("%s:%s:%s",
		videoID,
		strconv.FormatFloat(start, 'g', -1, 64),
		strconv.FormatFloat(end, 'g', -1, 64),
	)
	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])
}
