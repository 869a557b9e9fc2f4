/*
Copyright 2023.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package errors holds the failure kinds a reconciliation can end with.
// Every failure path below the driver produces exactly one of these; the driver
// is the only place that turns them into a retry decision.
package errors

import (
	"errors"
	"fmt"
)

// Reasons are stable identifiers used in logs, events and metric labels.
const (
	ReasonClusterAPI   = "ClusterAPI"
	ReasonUserInput    = "UserInput"
	ReasonAuthIssuance = "AuthIssuance"
	ReasonExternalAPI  = "ExternalAPI"
	ReasonDecoding     = "Decoding"
	ReasonUnknown      = "Unknown"
)

// ClusterAPIError indicates that talking to the Kubernetes API failed.
type ClusterAPIError struct {
	Operation string
	Cause     error
}

func (e *ClusterAPIError) Error() string {
	return fmt.Sprintf("kubernetes reported error during %s: %v", e.Operation, e.Cause)
}

func (e *ClusterAPIError) Unwrap() error {
	return e.Cause
}

// NewClusterAPIError creates a ClusterAPIError.
func NewClusterAPIError(operation string, cause error) *ClusterAPIError {
	return &ClusterAPIError{Operation: operation, Cause: cause}
}

// IsClusterAPIError returns true if the error is a ClusterAPIError.
func IsClusterAPIError(err error) bool {
	var target *ClusterAPIError
	return errors.As(err, &target)
}

// UserInputError indicates a structurally invalid resource, typically missing fields.
type UserInputError struct {
	Field   string
	Message string
}

func (e *UserInputError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid resource: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid resource: %s", e.Message)
}

// NewUserInputError creates a UserInputError.
func NewUserInputError(field, message string) *UserInputError {
	return &UserInputError{Field: field, Message: message}
}

// IsUserInputError returns true if the error is a UserInputError.
func IsUserInputError(err error) bool {
	var target *UserInputError
	return errors.As(err, &target)
}

// AuthIssuanceError indicates the token endpoint was unreachable or rejected the credentials.
type AuthIssuanceError struct {
	Endpoint   string
	StatusCode int
	Cause      error
}

func (e *AuthIssuanceError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("token issuance at %s failed with status %d: %v", e.Endpoint, e.StatusCode, e.Cause)
	}
	return fmt.Sprintf("token issuance at %s failed: %v", e.Endpoint, e.Cause)
}

func (e *AuthIssuanceError) Unwrap() error {
	return e.Cause
}

// NewAuthIssuanceError creates an AuthIssuanceError.
func NewAuthIssuanceError(endpoint string, statusCode int, cause error) *AuthIssuanceError {
	return &AuthIssuanceError{Endpoint: endpoint, StatusCode: statusCode, Cause: cause}
}

// IsAuthIssuanceError returns true if the error is an AuthIssuanceError.
func IsAuthIssuanceError(err error) bool {
	var target *AuthIssuanceError
	return errors.As(err, &target)
}

// ExternalAPIError indicates the managed backend rejected a request.
type ExternalAPIError struct {
	Operation  string
	StatusCode int
	Cause      error
}

func (e *ExternalAPIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s failed with status %d: %v", e.Operation, e.StatusCode, e.Cause)
	}
	return fmt.Sprintf("%s failed: %v", e.Operation, e.Cause)
}

func (e *ExternalAPIError) Unwrap() error {
	return e.Cause
}

// NewExternalAPIError creates an ExternalAPIError.
func NewExternalAPIError(operation string, statusCode int, cause error) *ExternalAPIError {
	return &ExternalAPIError{Operation: operation, StatusCode: statusCode, Cause: cause}
}

// IsExternalAPIError returns true if the error is an ExternalAPIError.
func IsExternalAPIError(err error) bool {
	var target *ExternalAPIError
	return errors.As(err, &target)
}

// DecodingError indicates a malformed secret or payload encoding.
type DecodingError struct {
	Subject string
	Cause   error
}

func (e *DecodingError) Error() string {
	return fmt.Sprintf("failed to decode %s: %v", e.Subject, e.Cause)
}

func (e *DecodingError) Unwrap() error {
	return e.Cause
}

// NewDecodingError creates a DecodingError.
func NewDecodingError(subject string, cause error) *DecodingError {
	return &DecodingError{Subject: subject, Cause: cause}
}

// IsDecodingError returns true if the error is a DecodingError.
func IsDecodingError(err error) bool {
	var target *DecodingError
	return errors.As(err, &target)
}

// Reason returns the reason of the outermost known kind in the chain.
func Reason(err error) string {
	for err != nil {
		switch err.(type) {
		case *ClusterAPIError:
			return ReasonClusterAPI
		case *UserInputError:
			return ReasonUserInput
		case *AuthIssuanceError:
			return ReasonAuthIssuance
		case *ExternalAPIError:
			return ReasonExternalAPI
		case *DecodingError:
			return ReasonDecoding
		}
		err = errors.Unwrap(err)
	}
	return ReasonUnknown
}
