// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package report

import "fmt"

// Diagnose is an error that can be rendered as a diagnostic.
type Diagnose interface {
	error

	// Diagnose writes out this error to the given diagnostic.
	//
	// This function should not set Level nor Err; those are set by the
	// diagnostics framework.
	Diagnose(*Diagnostic)
}

// Report is a collection of diagnostics.
//
// The zero value is ready to use.
type Report struct {
	Diagnostics []Diagnostic
}

// Error pushes an error diagnostic onto this report.
func (r *Report) Error(err Diagnose) *Diagnostic {
	d := r.push(err, Error)
	err.Diagnose(d)
	return d
}

// Warn pushes a warning diagnostic onto this report.
func (r *Report) Warn(err Diagnose) *Diagnostic {
	d := r.push(err, Warning)
	err.Diagnose(d)
	return d
}

// Errorf creates a new error diagnostic with an unspecified error type;
// analogous to [fmt.Errorf].
func (r *Report) Errorf(format string, args ...any) *Diagnostic {
	return r.push(fmt.Errorf(format, args...), Error)
}

// Warnf creates a new warning diagnostic with an unspecified error type;
// analogous to [fmt.Errorf].
func (r *Report) Warnf(format string, args ...any) *Diagnostic {
	return r.push(fmt.Errorf(format, args...), Warning)
}

// Remarkf creates a new remark diagnostic with an unspecified error type;
// analogous to [fmt.Errorf].
func (r *Report) Remarkf(format string, args ...any) *Diagnostic {
	return r.push(fmt.Errorf(format, args...), Remark)
}

// HasErrors returns whether this report contains any diagnostics at the
// [Error] level.
func (r *Report) HasErrors() bool {
	if r == nil {
		return false
	}
	for i := range r.Diagnostics {
		if r.Diagnostics[i].Level == Error {
			return true
		}
	}
	return false
}

// AsError returns this report as an error if it has any errors, and nil
// otherwise.
func (r *Report) AsError() error {
	if !r.HasErrors() {
		return nil
	}
	return &AsError{Report: r}
}

func (r *Report) push(err error, level Level) *Diagnostic {
	r.Diagnostics = append(r.Diagnostics, Diagnostic{Err: err, Level: level})
	return &r.Diagnostics[len(r.Diagnostics)-1]
}

// AsError wraps a [Report] as an [error].
type AsError struct {
	Report *Report
}

// Error implements [error].
func (e *AsError) Error() string {
	return Renderer{Compact: true}.RenderString(e.Report)
}

// Unwrap returns the errors of every diagnostic in the report, so that
// [errors.As] can find a specific diagnostic type.
func (e *AsError) Unwrap() []error {
	errs := make([]error, 0, len(e.Report.Diagnostics))
	for _, d := range e.Report.Diagnostics {
		errs = append(errs, d.Err)
	}
	return errs
}

// ErrInFile wraps an [error] into a diagnostic on the given file.
type ErrInFile struct {
	Err  error
	Path string
}

var _ Diagnose = &ErrInFile{}

// Error implements [error].
func (e *ErrInFile) Error() string {
	return e.Err.Error()
}

// Unwrap implements [errors.Unwrap].
func (e *ErrInFile) Unwrap() error {
	return e.Err
}

// Diagnose implements [Diagnose].
func (e *ErrInFile) Diagnose(d *Diagnostic) {
	d.With(InFile(e.Path))
}
