package client

// WhiteBalance enumerates white balance presets for EditPhoto.
type WhiteBalance string

const (
	WhiteBalanceAsShot WhiteBalance = "As Shot"
	WhiteBalanceAuto   WhiteBalance = "Auto"
	WhiteBalanceCloudy WhiteBalance = "Cloudy"
	WhiteBalanceCustom WhiteBalance = "Custom"
)

// EditPhotoOptions are the Lightroom edit parameters. Zero values are omitted.
type EditPhotoOptions struct {
	Contrast            int          `json:"Contrast,omitempty" validate:"min=-100,max=100"`
	Saturation          int          `json:"Saturation,omitempty" validate:"min=-100,max=100"`
	VignetteAmount      int          `json:"VignetteAmount,omitempty" validate:"min=-100,max=100"`
	Vibrance            int          `json:"Vibrance,omitempty" validate:"min=-100,max=100"`
	Highlights          int          `json:"Highlights,omitempty" validate:"min=-100,max=100"`
	Shadows             int          `json:"Shadows,omitempty" validate:"min=-100,max=100"`
	Whites              int          `json:"Whites,omitempty" validate:"min=-100,max=100"`
	Blacks              int          `json:"Blacks,omitempty" validate:"min=-100,max=100"`
	Clarity             int          `json:"Clarity,omitempty" validate:"min=-100,max=100"`
	Dehaze              int          `json:"Dehaze,omitempty" validate:"min=-100,max=100"`
	Texture             int          `json:"Texture,omitempty" validate:"min=-100,max=100"`
	Sharpness           int          `json:"Sharpness,omitempty" validate:"min=0,max=150"`
	ColorNoiseReduction int          `json:"ColorNoiseReduction,omitempty" validate:"min=0,max=100"`
	NoiseReduction      int          `json:"NoiseReduction,omitempty" validate:"min=0,max=100"`
	SharpenDetail       int          `json:"SharpenDetail,omitempty" validate:"min=0,max=100"`
	SharpenEdgeMasking  int          `json:"SharpenEdgeMasking,omitempty" validate:"min=0,max=10"`
	Exposure            float64      `json:"Exposure,omitempty" validate:"min=-5,max=5"`
	SharpenRadius       float64      `json:"SharpenRadius,omitempty" validate:"omitempty,min=0.5,max=3"`
	WhiteBalance        WhiteBalance `json:"WhiteBalance,omitempty"`
}

// ManageMissingFonts selects what happens when a document references missing fonts.
type ManageMissingFonts string

const (
	ManageMissingFontsUseDefault ManageMissingFonts = "useDefault"
	ManageMissingFontsFail       ManageMissingFonts = "fail"
)

// Bounds of a layer or crop, in pixels.
type Bounds struct {
	Top    int `json:"top"`
	Left   int `json:"left"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// DocumentAttributes describe the canvas of a created or modified document.
type DocumentAttributes struct {
	Width      int            `json:"width,omitempty" validate:"omitempty,min=1"`
	Height     int            `json:"height,omitempty" validate:"omitempty,min=1"`
	Resolution int            `json:"resolution,omitempty" validate:"omitempty,min=72,max=300"`
	Fill       string         `json:"fill,omitempty" validate:"omitempty,oneof=white backgroundColor transparent"`
	Mode       string         `json:"mode,omitempty"`
	Depth      int            `json:"depth,omitempty" validate:"omitempty,oneof=8 16 32"`
	CanvasSize map[string]any `json:"canvasSize,omitempty"`
	ImageSize  map[string]any `json:"imageSize,omitempty"`
	Trim       map[string]any `json:"trim,omitempty"`
}

// Layer describes a layer to create, edit, move, add or delete. Nested
// attributes the client does not interpret are passed through as-is.
type Layer struct {
	Type            string         `json:"type,omitempty"`
	ID              int            `json:"id,omitempty"`
	Index           *int           `json:"index,omitempty"`
	Name            string         `json:"name,omitempty"`
	Locked          *bool          `json:"locked,omitempty"`
	Visible         *bool          `json:"visible,omitempty"`
	Input           *Input         `json:"input,omitempty"`
	Bounds          *Bounds        `json:"bounds,omitempty"`
	Mask            map[string]any `json:"mask,omitempty"`
	SmartObject     map[string]any `json:"smartObject,omitempty"`
	Adjustments     map[string]any `json:"adjustments,omitempty"`
	Fill            map[string]any `json:"fill,omitempty"`
	Text            map[string]any `json:"text,omitempty"`
	BlendOptions    map[string]any `json:"blendOptions,omitempty"`
	FillToCanvas    *bool          `json:"fillToCanvas,omitempty"`
	HorizontalAlign string         `json:"horizontalAlign,omitempty"`
	VerticalAlign   string         `json:"verticalAlign,omitempty"`
	Edit            map[string]any `json:"edit,omitempty"`
	Move            map[string]any `json:"move,omitempty"`
	Add             map[string]any `json:"add,omitempty"`
	Delete          map[string]any `json:"delete,omitempty"`
}

// DocumentOptions are shared by CreateDocument, ModifyDocument and ReplaceSmartObject.
type DocumentOptions struct {
	ManageMissingFonts ManageMissingFonts  `json:"manageMissingFonts,omitempty" validate:"omitempty,oneof=useDefault fail"`
	GlobalFont         string              `json:"globalFont,omitempty"`
	Fonts              []Input             `json:"fonts,omitempty"`
	Document           *DocumentAttributes `json:"document,omitempty"`
	Layers             []Layer             `json:"layers,omitempty"`
}

// PhotoshopActionsOptions reference the action files and their resources.
type PhotoshopActionsOptions struct {
	Actions          []Input `json:"actions,omitempty"`
	Fonts            []Input `json:"fonts,omitempty"`
	Patterns         []Input `json:"patterns,omitempty"`
	Brushes          []Input `json:"brushes,omitempty"`
	AdditionalImages []Input `json:"additionalImages,omitempty"`
}

// ManifestOptions tune GetDocumentManifest.
type ManifestOptions struct {
	Thumbnails *ThumbnailOptions `json:"thumbnails,omitempty"`
}

// ThumbnailOptions request presigned preview thumbnails for renderable layers.
type ThumbnailOptions struct {
	Type MimeType `json:"type" validate:"oneof=image/jpeg image/png image/tiff"`
}
