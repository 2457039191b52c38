package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsWebURL(t *testing.T) {
	tests := []struct {
		href string
		want bool
	}{
		{"https://host/path/to/image.png", true},
		{"http://localhost:9000/bucket/key", true},
		{"https://www.adobe.com", true},
		{"/path/to/file", false},
		{"path/to/file", false},
		{"ftp://host/file.png", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.href, func(t *testing.T) {
			assert.Equal(t, tt.want, IsWebURL(tt.href))
		})
	}
}

func TestInferStorageFromURL(t *testing.T) {
	tests := []struct {
		href string
		want Storage
	}{
		{"https://accountName.blob.core.windows.net/containerName", StorageAzure},
		{"https://accountName.blob.core.windows.net/containerName/file.png?sig=abc", StorageAzure},
		{"https://endpoint.azureedge.net/containerName/file.png", StorageAzure},
		{"https://content.dropboxapi.com/xyz", StorageDropbox},
		{"https://www.dropbox.com/xyz", StorageExternal},
		{"https://www.adobe.com", StorageExternal},
		{"https://bucket.s3.amazonaws.com/key?X-Amz-Signature=abc", StorageExternal},
	}

	for _, tt := range tests {
		t.Run(tt.href, func(t *testing.T) {
			assert.Equal(t, tt.want, InferStorageFromURL(tt.href))
		})
	}
}

func TestInferMimeTypeFromPath(t *testing.T) {
	tests := []struct {
		href string
		want MimeType
	}{
		{"/path/to/file.dng", MimeTypeDNG},
		{"/path/to/file.jpg", MimeTypeJPEG},
		{"/path/to/file.jpeg", MimeTypeJPEG},
		{"/path/to/file.png", MimeTypePNG},
		{"/path/to/file.psb", MimeTypePSD},
		{"/path/to/file.psd", MimeTypePSD},
		{"/path/to/file.tif", MimeTypeTIFF},
		{"/path/to/file.tiff", MimeTypeTIFF},
		{"/path/to/file.xxx", MimeTypePNG},
		{"/path/to/file", MimeTypePNG},
		{"/path/to/.psd", MimeTypePNG},
		{"https://host/path/to/file.jpg?X-Amz-Expires=3600&name=x.png", MimeTypeJPEG},
		{"https://host/path/to/my%20file.tiff#frag", MimeTypeTIFF},
		{"https://host/path.psd/file", MimeTypePNG},
	}

	for _, tt := range tests {
		t.Run(tt.href, func(t *testing.T) {
			assert.Equal(t, tt.want, InferMimeTypeFromPath(tt.href))
		})
	}
}
