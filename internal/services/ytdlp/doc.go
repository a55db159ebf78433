// Package ytdlp drives the yt-dlp binary to fetch video metadata and to
// download loudness-normalized mono FLAC audio for a bounded time segment.
package ytdlp
