package api

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
)

//stringify print the contents of the obj
func stringify(data interface{}) string {
	if data == nil {
		return "null"
	}
	var p []byte
	type d struct {
		Arguments interface{}
	}
	p, err := json.MarshalIndent(d{Arguments: data}, "", "\t")
	if err != nil {
		return err.Error()
	}
	return string(p)
}

//ErrorStack bas class for providers error management
type ErrorStack struct {
	Cause   error
	Message string
}

//Error format error message
func (e *ErrorStack) Error() string {
	if e.Cause != nil {
		if e.Message != "" {
			return fmt.Sprintf("%s\nCaused by: %s", e.Message, e.Cause.Error())
		}
		return e.Cause.Error()
	}
	return e.Message
}

//NewErrorStack create a new provider error
func NewErrorStack(cause error, message string, args ...interface{}) *ErrorStack {
	msg := message
	if args != nil {
		msg = fmt.Sprintf("%s :\n%s", message, stringify(args))
	}
	return &ErrorStack{
		Cause:   cause,
		Message: msg,
	}
}

//RemoteError the provider rejected the request
type RemoteError struct {
	ErrorStack
	//HTTP status code returned by the provider, 0 if unknown
	StatusCode int
	//Code provider error code, if any
	Code string
}

//NewRemoteError creates a RemoteError
func NewRemoteError(cause error, statusCode int, code string, message string) *RemoteError {
	return &RemoteError{
		ErrorStack: ErrorStack{Cause: cause, Message: message},
		StatusCode: statusCode,
		Code:       code,
	}
}

//Error format error message
func (e *RemoteError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("provider error (status: %d, code: %s): %s", e.StatusCode, e.Code, e.ErrorStack.Error())
	}
	return fmt.Sprintf("provider error (status: %d): %s", e.StatusCode, e.ErrorStack.Error())
}

//MappingError a provider response does not have the expected shape
type MappingError struct {
	ErrorStack
	//Field missing or malformed field
	Field string
}

//NewMappingError creates a MappingError
func NewMappingError(field string, message string, args ...interface{}) *MappingError {
	return &MappingError{
		ErrorStack: *NewErrorStack(nil, message, args...),
		Field:      field,
	}
}

//Error format error message
func (e *MappingError) Error() string {
	return fmt.Sprintf("unexpected provider response, field %q: %s", e.Field, e.ErrorStack.Error())
}

//NotFoundError a targeted resource does not exist
type NotFoundError struct {
	ErrorStack
	ResourceID string
}

//NewNotFoundError creates a NotFoundError
func NewNotFoundError(resource string, id string) *NotFoundError {
	return &NotFoundError{
		ErrorStack: ErrorStack{Message: fmt.Sprintf("%s %s not found", resource, id)},
		ResourceID: id,
	}
}

//UnsupportedError the provider does not offer the feature
type UnsupportedError struct {
	ErrorStack
	Feature string
}

//NewUnsupportedError creates an UnsupportedError
func NewUnsupportedError(feature string, provider string) *UnsupportedError {
	return &UnsupportedError{
		ErrorStack: ErrorStack{Message: fmt.Sprintf("%s not supported by provider %s", feature, provider)},
		Feature:    feature,
	}
}

//InvalidArgumentError an argument was rejected before any request was sent
type InvalidArgumentError struct {
	ErrorStack
	Argument string
}

//NewInvalidArgumentError creates an InvalidArgumentError
func NewInvalidArgumentError(argument string, message string) *InvalidArgumentError {
	return &InvalidArgumentError{
		ErrorStack: ErrorStack{Message: message},
		Argument:   argument,
	}
}

//IsRemote tells if the root cause of err is a RemoteError
func IsRemote(err error) bool {
	_, ok := errors.Cause(err).(*RemoteError)
	return ok
}

//IsMapping tells if the root cause of err is a MappingError
func IsMapping(err error) bool {
	_, ok := errors.Cause(err).(*MappingError)
	return ok
}

//IsNotFound tells if the root cause of err is a NotFoundError
func IsNotFound(err error) bool {
	_, ok := errors.Cause(err).(*NotFoundError)
	return ok
}

//IsUnsupported tells if the root cause of err is an UnsupportedError
func IsUnsupported(err error) bool {
	_, ok := errors.Cause(err).(*UnsupportedError)
	return ok
}

//IsInvalidArgument tells if the root cause of err is an InvalidArgumentError
func IsInvalidArgument(err error) bool {
	_, ok := errors.Cause(err).(*InvalidArgumentError)
	return ok
}

//StatusCode returns the provider status code carried by err, 0 if err is not a RemoteError
func StatusCode(err error) int {
	if e, ok := errors.Cause(err).(*RemoteError); ok {
		return e.StatusCode
	}
	return 0
}
