// Package mocks provides function-field fakes of the service interfaces for
// handler and middleware tests.
//
// Each fake calls its XxxFn field when set and otherwise returns the default
// values stored on the struct.
package mocks
