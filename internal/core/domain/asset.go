package domain

import (
	"io"
	"time"
)

// Upload is a binary file received from a client, not yet stored.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// Asset is an opened stored file.
type Asset struct {
	Name        string
	ContentType string
	Size        int64
	ModTime     time.Time
	Content     io.ReadCloser
}
