package client

import "time"

const (
	ServiceName           = "photoshop-api"
	DefaultBaseURL        = "https://image.adobe.io"
	DefaultTimeout        = 5 * time.Minute
	DefaultPollInterval   = 2 * time.Second
	DefaultPresignExpiry  = time.Hour
	APIVersion            = "v1"
	RequestIDHeader       = "x-request-id"
	APIKeyHeader          = "x-api-key"
	OrgIDHeader           = "x-gw-ims-org-id"
	retryCount            = 3
	retryWaitTime         = 1 * time.Second
	retryMaxWaitTime      = 5 * time.Second
	maxLoggedPayloadBytes = 4096
)

// Operation names a service call in errors, logs and metrics.
type Operation string

const (
	OperationCreateCutout         Operation = "create cutout"
	OperationCreateMask           Operation = "create mask"
	OperationStraighten           Operation = "straighten"
	OperationAutoTone             Operation = "auto tone"
	OperationEditPhoto            Operation = "edit photo"
	OperationApplyPreset          Operation = "apply preset"
	OperationApplyPresetXmp       Operation = "apply preset xmp"
	OperationCreateDocument       Operation = "create document"
	OperationGetDocumentManifest  Operation = "get document manifest"
	OperationModifyDocument       Operation = "modify document"
	OperationCreateRendition      Operation = "create rendition"
	OperationReplaceSmartObject   Operation = "replace smart object"
	OperationPlayPhotoshopActions Operation = "photoshop actions"
	OperationGetJobStatus         Operation = "get job status"
)

// API endpoints
const (
	EndpointCutout             = "/sensei/cutout"
	EndpointMask               = "/sensei/mask"
	EndpointAutoStraighten     = "/lrService/autoStraighten"
	EndpointAutoTone           = "/lrService/autoTone"
	EndpointEdit               = "/lrService/edit"
	EndpointPresets            = "/lrService/presets"
	EndpointXmp                = "/lrService/xmp"
	EndpointDocumentCreate     = "/pie/psdService/documentCreate"
	EndpointDocumentManifest   = "/pie/psdService/documentManifest"
	EndpointDocumentOperations = "/pie/psdService/documentOperations"
	EndpointRenditionCreate    = "/pie/psdService/renditionCreate"
	EndpointSmartObject        = "/pie/psdService/smartObject"
	EndpointPhotoshopActions   = "/pie/psdService/photoshopActions"
)
