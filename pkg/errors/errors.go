package errors

import (
	"fmt"
	"net/http"
	"strings"
)

type CustomizedError struct {
	cause   error
	message string
	trace   []string
	wrap    error
	code    int
}

func (e *CustomizedError) Code(c int) *CustomizedError {
	e.code = c
	return e
}

func (e *CustomizedError) GetCode() int {
	return e.code
}

func New(trace, message string, err error) *CustomizedError {
	return &CustomizedError{
		cause:   err,
		message: message,
		trace:   []string{trace},
		code:    http.StatusInternalServerError,
	}
}

// InvalidInput 参数错误，调用方可修正
func InvalidInput(trace, message string, err error) *CustomizedError {
	return New(trace, message, err).Code(http.StatusBadRequest)
}

// Timeout 整体预算超时，边界层转 504
func Timeout(trace, message string, err error) *CustomizedError {
	return New(trace, message, err).Code(http.StatusGatewayTimeout)
}

// Upstream 远端返回异常，重试耗尽后降级
func Upstream(trace, message string, err error) *CustomizedError {
	return New(trace, message, err).Code(http.StatusBadGateway)
}

func Wrap(err error, trace, message string) *CustomizedError {
	ce := &CustomizedError{
		cause:   err,
		message: message,
		trace:   []string{trace},
		wrap:    err,
	}
	if income, ok := err.(*CustomizedError); ok {
		ce.code = income.code
	}
	return ce
}

func Trace(trace string, err error) *CustomizedError {
	if ce, ok := err.(*CustomizedError); ok {
		ce.trace = append(ce.trace, trace)
		return ce
	}
	return Wrap(err, trace, err.Error())
}

// IsTimeout 判断错误链上是否存在超时类错误
func IsTimeout(err error) bool {
	ce, ok := err.(*CustomizedError)
	if !ok {
		return false
	}
	if ce.code == http.StatusGatewayTimeout {
		return true
	}
	if ce.wrap != nil {
		return IsTimeout(ce.wrap)
	}
	return false
}

func (e *CustomizedError) Message() string {
	if e.message == "" {
		return e.cause.Error()
	}
	return e.message
}

func (e *CustomizedError) Unwrap() error {
	return e.wrap
}

func (e *CustomizedError) Error() string {
	otherDetails := `""`
	if ce, ok := e.wrap.(*CustomizedError); ok {
		otherDetails = ce.Error()
	} else if e.wrap != nil {
		otherDetails = fmt.Sprint("\"", e.wrap.Error(), "\"")
	}
	return fmt.Sprintf(`{"trace":"%s","code":%d,"msg":"%s","error":"%v","wrapd":%s}`, strings.Join(e.trace, "->"), e.code, e.message, e.cause, otherDetails)
}
