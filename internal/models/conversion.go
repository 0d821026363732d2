package models

import "time"

// FileInfo is metadata for an uploaded legacy source file.
type FileInfo struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploadedAt"`
	Status     string    `json:"status"` // "uploaded", "converted", "error"
}

// ConversionRecord is one completed conversion as stored in history.
type ConversionRecord struct {
	ID            string    `json:"id" msgpack:"id"`
	ClassName     string    `json:"className" msgpack:"className"`
	Namespace     string    `json:"namespace,omitempty" msgpack:"namespace"`
	Archetype     Archetype `json:"archetype" msgpack:"archetype"`
	PartCount     int       `json:"partCount" msgpack:"partCount"`
	SourceSize    int       `json:"sourceSize" msgpack:"sourceSize"`
	OutputSize    int       `json:"outputSize" msgpack:"outputSize"`
	ConvertedCode string    `json:"convertedCode,omitempty" msgpack:"convertedCode"`
	Notes         []string  `json:"notes,omitempty" msgpack:"notes"`
	CreatedAt     time.Time `json:"createdAt" msgpack:"createdAt"`
}
