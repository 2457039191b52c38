package client

import (
	"net/url"
	"path"
	"strings"
)

var extensionMimeTypes = map[string]MimeType{
	".dng":  MimeTypeDNG,
	".jpg":  MimeTypeJPEG,
	".jpeg": MimeTypeJPEG,
	".png":  MimeTypePNG,
	".psb":  MimeTypePSD,
	".psd":  MimeTypePSD,
	".tif":  MimeTypeTIFF,
	".tiff": MimeTypeTIFF,
}

// IsWebURL reports whether href is an absolute http or https URL.
func IsWebURL(href string) bool {
	if href == "" {
		return false
	}
	return validate.Var(href, "http_url") == nil
}

// InferStorageFromURL detects the storage behind an absolute URL from its hostname.
// Azure blob and CDN hosts map to azure, the Dropbox content API to dropbox,
// and everything else to external.
func InferStorageFromURL(href string) Storage {
	u, err := url.Parse(href)
	if err != nil {
		return StorageExternal
	}

	hostname := u.Hostname()
	switch {
	case strings.HasSuffix(hostname, ".blob.core.windows.net"), strings.HasSuffix(hostname, ".azureedge.net"):
		return StorageAzure
	case hostname == "content.dropboxapi.com":
		return StorageDropbox
	default:
		return StorageExternal
	}
}

// InferMimeTypeFromPath maps the extension of a path or URL to a mime type,
// defaulting to PNG when the extension is missing or unknown.
func InferMimeTypeFromPath(href string) MimeType {
	pathname := href
	if IsWebURL(href) {
		if u, err := url.Parse(href); err == nil {
			// Path is already percent-decoded and excludes query and fragment.
			pathname = u.Path
		}
	}

	if mimeType, ok := extensionMimeTypes[extname(pathname)]; ok {
		return mimeType
	}
	return MimeTypePNG
}

// extname returns the extension of the last path element. Dotfiles such as
// ".png" have no extension.
func extname(p string) string {
	base := path.Base(p)
	idx := strings.LastIndex(base, ".")
	if idx <= 0 {
		return ""
	}
	return base[idx:]
}
