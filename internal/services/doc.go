// Package services defines the error taxonomy and context annotations shared
// by the external collaborators (media source, transcription, normalization)
// and the pipeline that sequences them.
package services
