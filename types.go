package client

// Storage enumerates where an href points to.
type Storage string

const (
	StorageAIO      Storage = "aio"      // path in an attached file storage, sent as a presigned URL
	StorageAdobe    Storage = "adobe"    // path in Creative Cloud
	StorageExternal Storage = "external" // presigned GET/PUT URL, e.g. AWS S3
	StorageAzure    Storage = "azure"    // Azure SAS URL
	StorageDropbox  Storage = "dropbox"  // temporary Dropbox upload/download link
)

// MimeType enumerates the output formats the service can produce.
type MimeType string

const (
	MimeTypeDNG  MimeType = "image/x-adobe-dng"
	MimeTypeJPEG MimeType = "image/jpeg"
	MimeTypePNG  MimeType = "image/png"
	MimeTypePSD  MimeType = "image/vnd.adobe.photoshop"
	MimeTypeTIFF MimeType = "image/tiff"
)

// JobStatus enumerates the states of a single job output.
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusUploading JobStatus = "uploading"
	JobStatusSucceeded JobStatus = "succeeded"
	JobStatusFailed    JobStatus = "failed"
)

// Terminal reports whether no further transitions are expected.
func (s JobStatus) Terminal() bool {
	return s == JobStatusSucceeded || s == JobStatusFailed
}

// PngCompression enumerates PNG compression levels.
type PngCompression string

const (
	PngCompressionSmall  PngCompression = "small"
	PngCompressionMedium PngCompression = "medium"
	PngCompressionLarge  PngCompression = "large"
)

// MaskFormat enumerates the masks produced by cutout and mask operations.
type MaskFormat string

const (
	MaskFormatBinary MaskFormat = "binary"
	MaskFormatSoft   MaskFormat = "soft"
)

// Permissions requested for a presigned URL.
type Permissions string

const (
	PermissionsRead      Permissions = "r"
	PermissionsReadWrite Permissions = "rwd"
)

// Input references a file read by the service.
type Input struct {
	Href    string  `json:"href"`              // Creative Cloud path or presigned GET URL
	Storage Storage `json:"storage,omitempty"` // Detected from Href when empty
}

// Output references a file written by the service.
type Output struct {
	Href         string           `json:"href"`                   // Creative Cloud path or presigned PUT URL
	Storage      Storage          `json:"storage,omitempty"`      // Detected from Href when empty
	Type         MimeType         `json:"type,omitempty"`         // Detected from the Href extension when empty
	Overwrite    *bool            `json:"overwrite,omitempty"`    // Only applies to Creative Cloud storage
	Mask         *MaskOptions     `json:"mask,omitempty"`         // cutout and mask only
	Width        int              `json:"width,omitempty"`        // Rendition width in pixels, 0 for full size
	Quality      int              `json:"quality,omitempty"`      // JPEG quality 1-7
	Compression  PngCompression   `json:"compression,omitempty"`  // PNG compression level
	TrimToCanvas *bool            `json:"trimToCanvas,omitempty"` // Size renditions to the canvas
	Layers       []LayerReference `json:"layers,omitempty"`       // Render only these layers
	IccProfile   *IccProfile      `json:"iccProfile,omitempty"`   // Convert to this profile
}

// MaskOptions selects the mask flavour for cutout and mask operations.
type MaskOptions struct {
	Format MaskFormat `json:"format"`
}

// LayerReference points to a layer by id or by name.
type LayerReference struct {
	ID   int    `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// IccProfile references either a standard profile by name or a custom profile input.
type IccProfile struct {
	ImageMode   string `json:"imageMode"`
	Input       *Input `json:"input,omitempty"`
	ProfileName string `json:"profileName,omitempty"`
}

// Links holds the artifact references of a job output.
type Links struct {
	Self       any   `json:"self,omitempty"`
	Renditions []any `json:"renditions,omitempty"`
}

// JobOutput is the status of a single output of a job.
type JobOutput struct {
	Input    string    `json:"input,omitempty"`
	Status   JobStatus `json:"status"`
	Created  string    `json:"created,omitempty"`
	Modified string    `json:"modified,omitempty"`
	Links    *Links    `json:"_links,omitempty"`
	Errors   any       `json:"errors,omitempty"` // Only set when Status is failed
	Error    any       `json:"error,omitempty"`  // Document operations report a single error
}
