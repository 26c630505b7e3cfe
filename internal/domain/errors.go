package domain

import (
	"errors"
	"fmt"
)

// User-facing messages. Diagnostics never end up in these.
const (
	MsgEmptyIngredients = "냉장고 속 재료를 입력해주세요!"
	MsgInvalidMealTime  = "식사 시간을 아침, 점심, 저녁 중에서 골라주세요!"
	MsgGenerationFailed = "레시피를 생성하는 중 오류가 발생했습니다. 잠시 후 다시 시도해주세요."
)

// Sentinel errors used across layers.
var (
	ErrEmptyIngredients = errors.New("no ingredients given")
	ErrInvalidMealTime  = errors.New("invalid meal time")
	ErrEmptyResponse    = errors.New("empty response body")
	ErrNullResponse     = errors.New("response is null, want a recipe array")
)

// FailureKind tags why a generation did not produce recipes.
type FailureKind int

const (
	// KindValidation is a blocking input problem, caught before any
	// state transition.
	KindValidation FailureKind = iota + 1
	// KindTransport means the service call itself failed.
	KindTransport
	// KindFormat means the service answered with something unusable.
	KindFormat
)

// String returns a human-readable failure kind.
func (k FailureKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindTransport:
		return "transport"
	case KindFormat:
		return "format"
	default:
		return "unknown"
	}
}

// Failure is the tagged result of a generation that did not succeed.
// Err carries the internal diagnostic; Message is what the user sees.
type Failure struct {
	Kind FailureKind
	Err  error
}

// Message returns the fixed user-facing message for the failure kind.
func (f *Failure) Message() string {
	if f.Kind != KindValidation {
		return MsgGenerationFailed
	}
	if errors.Is(f.Err, ErrInvalidMealTime) {
		return MsgInvalidMealTime
	}
	return MsgEmptyIngredients
}

func (f *Failure) Error() string {
	if f.Err == nil {
		return f.Kind.String() + " error"
	}
	return fmt.Sprintf("%s error: %v", f.Kind, f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }

// NewValidationError tags err as a blocking input problem.
func NewValidationError(err error) *Failure {
	return &Failure{Kind: KindValidation, Err: err}
}

// NewTransportError tags err as a failed service call.
func NewTransportError(err error) *Failure {
	return &Failure{Kind: KindTransport, Err: err}
}

// NewFormatError tags err as an unusable service response.
func NewFormatError(err error) *Failure {
	return &Failure{Kind: KindFormat, Err: err}
}

// KindOf returns the failure kind carried by err, or 0 if err is not
// a *Failure.
func KindOf(err error) FailureKind {
	var f *Failure
	if errors.As(err, &f) {
		return f.Kind
	}
	return 0
}
