// SPDX-License-Identifier: Apache-2.0
package gdcm

import "fmt"

// StateError reports a builder call that is invalid in the current
// accumulation state, e.g. promoting a flag before any flag exists.
type StateError struct {
	Msg string
}

func (e *StateError) Error() string {
	return "❌ invalid builder state: " + e.Msg
}

// InvalidPackageError wraps the execution failure raised when the
// toolkit rejects a package during validation.
type InvalidPackageError struct {
	Path string
	Err  error
}

func (e *InvalidPackageError) Error() string {
	return fmt.Sprintf("❌ invalid package %s: %v", e.Path, e.Err)
}

func (e *InvalidPackageError) Unwrap() error { return e.Err }
