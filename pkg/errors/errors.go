package errors

import (
	"fmt"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeNetwork represents unlocker API / network errors
	ErrorTypeNetwork ErrorType = "network"
	// ErrorTypeParsing represents HTML parsing errors
	ErrorTypeParsing ErrorType = "parsing"
	// ErrorTypeInput represents keyword input table errors
	ErrorTypeInput ErrorType = "input"
	// ErrorTypeCache represents cache-related errors
	ErrorTypeCache ErrorType = "cache"
	// ErrorTypePublisher represents publisher-related errors
	ErrorTypePublisher ErrorType = "publisher"
	// ErrorTypeConfiguration represents configuration errors
	ErrorTypeConfiguration ErrorType = "configuration"
)

// CrawlerError represents a crawler-specific error
type CrawlerError struct {
	Type    ErrorType
	Keyword string
	Message string
	Err     error
	Time    time.Time
}

// Error implements the error interface
func (e *CrawlerError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s - %v", e.Type, e.Keyword, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Type, e.Keyword, e.Message)
}

// Unwrap returns the underlying error
func (e *CrawlerError) Unwrap() error {
	return e.Err
}

// IsRetryable returns true if the error is retryable
func (e *CrawlerError) IsRetryable() bool {
	return e.Type == ErrorTypeNetwork
}

// New creates a new CrawlerError
func New(errType ErrorType, keyword, message string, err error) *CrawlerError {
	return &CrawlerError{
		Type:    errType,
		Keyword: keyword,
		Message: message,
		Err:     err,
		Time:    time.Now(),
	}
}

// NewNetwork creates a new network error
func NewNetwork(keyword, message string, err error) *CrawlerError {
	return New(ErrorTypeNetwork, keyword, message, err)
}

// NewParsing creates a new parsing error
func NewParsing(keyword, message string, err error) *CrawlerError {
	return New(ErrorTypeParsing, keyword, message, err)
}

// NewInput creates a new input table error
func NewInput(message string, err error) *CrawlerError {
	return New(ErrorTypeInput, "", message, err)
}

// NewCache creates a new cache error
func NewCache(keyword, message string, err error) *CrawlerError {
	return New(ErrorTypeCache, keyword, message, err)
}

// NewPublisher creates a new publisher error
func NewPublisher(keyword, message string, err error) *CrawlerError {
	return New(ErrorTypePublisher, keyword, message, err)
}

// NewConfiguration creates a new configuration error
func NewConfiguration(message string, err error) *CrawlerError {
	return New(ErrorTypeConfiguration, "", message, err)
}
