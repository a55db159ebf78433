// Package timecode parses operator-supplied time strings into seconds and
// formats seconds back into readable clock time.
package timecode
