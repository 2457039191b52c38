package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoFileProvided   = errors.New("no file provided")
	ErrMissingHref      = errors.New("missing href")
	ErrStatusURLMissing = errors.New("status url is missing in the response")
	ErrUnsupportedFile  = errors.New("unsupported file reference")
	ErrEmptyXMP         = errors.New("xmp cannot be empty")
	ErrNilOptions       = errors.New("options cannot be nil")
	ErrNilStatusFetcher = errors.New("status fetcher cannot be nil")
)

// ErrorCode identifies a class of service or SDK failure.
type ErrorCode string

const (
	ErrorCodeSDKInitialization  ErrorCode = "sdk_initialization"
	ErrorCodeStatusURLMissing   ErrorCode = "status_url_missing"
	ErrorCodeInputValidation    ErrorCode = "input_validation"
	ErrorCodePayloadValidation  ErrorCode = "payload_validation"
	ErrorCodeRequestBody        ErrorCode = "request_body"
	ErrorCodeBadRequest         ErrorCode = "bad_request"
	ErrorCodeUnauthorized       ErrorCode = "unauthorized"
	ErrorCodeAuthForbidden      ErrorCode = "auth_forbidden"
	ErrorCodeFileExists         ErrorCode = "file_exists"
	ErrorCodeInputFileExists    ErrorCode = "input_file_exists"
	ErrorCodeResourceNotFound   ErrorCode = "resource_not_found"
	ErrorCodeInvalidContentType ErrorCode = "invalid_content_type"
	ErrorCodeUndefined          ErrorCode = "undefined"
	ErrorCodeUnknown            ErrorCode = "unknown"
)

// Error is returned for failures reported by the service and for SDK misuse
// that has to carry diagnostic detail.
type Error struct {
	Code       ErrorCode
	Operation  Operation
	StatusCode int
	RequestID  string
	Detail     string
}

func (e *Error) Error() string {
	msg := e.Code.format(e.Detail)
	if e.Operation != "" {
		msg = fmt.Sprintf("%s: %s", e.Operation, msg)
	}
	if e.RequestID != "" {
		msg = fmt.Sprintf("%s (request-id: %s)", msg, e.RequestID)
	}
	return msg
}

// Is lets errors.Is match SDK errors against the sentinel values they correspond to.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrStatusURLMissing:
		return e.Code == ErrorCodeStatusURLMissing
	}
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

func (c ErrorCode) format(detail string) string {
	switch c {
	case ErrorCodeSDKInitialization:
		return "SDK initialization error(s). Missing arguments: " + detail
	case ErrorCodeStatusURLMissing:
		return "Status URL is missing in the response: " + detail
	case ErrorCodeUnknown:
		return "Unknown Error: " + detail
	default:
		if detail == "" {
			return string(c)
		}
		return detail
	}
}

// IsErrorCode reports whether err is an *Error with the given code.
func IsErrorCode(err error, code ErrorCode) bool {
	var sdkErr *Error
	return errors.As(err, &sdkErr) && sdkErr.Code == code
}

func errInitialization(missing []string) error {
	return &Error{Code: ErrorCodeSDKInitialization, Detail: strings.Join(missing, ", ")}
}

func errStatusURLMissing(payload []byte) error {
	detail := strings.TrimSpace(string(payload))
	if detail == "" {
		detail = "undefined"
	}
	return &Error{Code: ErrorCodeStatusURLMissing, Detail: detail}
}

func errMissingHref(file any) error {
	content, err := json.Marshal(file)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMissingHref, file)
	}
	return fmt.Errorf("%w: %s", ErrMissingHref, content)
}

// errorTypeBody is the part of a service error body used to classify it.
type errorTypeBody struct {
	Type string `json:"type"`
}

// errStatus translates a non-2xx service response into an *Error.
func errStatus(operation Operation, statusCode int, status string, body []byte, requestID string) error {
	var typed errorTypeBody
	_ = json.Unmarshal(body, &typed)

	return &Error{
		Code:       classifyStatus(statusCode, typed.Type),
		Operation:  operation,
		StatusCode: statusCode,
		RequestID:  requestID,
		Detail:     reduceStatus(statusCode, status, body),
	}
}

func classifyStatus(statusCode int, errType string) ErrorCode {
	switch statusCode {
	case 400:
		switch errType {
		case "InputValidationError":
			return ErrorCodeInputValidation
		case "PayloadValidationError":
			return ErrorCodePayloadValidation
		case "RequestBodyError":
			return ErrorCodeRequestBody
		default:
			return ErrorCodeBadRequest
		}
	case 401:
		return ErrorCodeUnauthorized
	case 403:
		return ErrorCodeAuthForbidden
	case 404:
		switch errType {
		case "FileExistsErrors":
			return ErrorCodeFileExists
		case "InputFileExistsErrors":
			return ErrorCodeInputFileExists
		default:
			return ErrorCodeResourceNotFound
		}
	case 415:
		return ErrorCodeInvalidContentType
	case 500:
		return ErrorCodeUndefined
	default:
		return ErrorCodeUnknown
	}
}

// reduceStatus renders a response as "<status code> - <status text> (<body>)".
func reduceStatus(statusCode int, status string, body []byte) string {
	text := strings.TrimSpace(strings.TrimPrefix(status, fmt.Sprint(statusCode)))
	if text == "" {
		text = "unknown"
	}
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return fmt.Sprintf("%d - %s", statusCode, text)
	}
	return fmt.Sprintf("%d - %s (%s)", statusCode, text, trimmed)
}
