// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"errors"
	"fmt"

	"github.com/invowk/grouprun/pkg/types"
)

// Diagnostic codes produced by Resolve.
const (
	CodeManifestNotFound = "manifest_not_found"
	CodeManifestInvalid  = "manifest_invalid"
)

// Resolve loads the manifest at path and never fails: a missing file yields
// an info diagnostic, any other problem a warning, and in both cases the
// returned manifest is Empty so every command falls back to the sentinel
// description.
func Resolve(path string) (*Manifest, []types.Diagnostic) {
	m, err := Load(path)
	if err == nil {
		return m, nil
	}

	d := types.Diagnostic{
		Severity: types.SeverityWarning,
		Code:     CodeManifestInvalid,
		Message:  fmt.Sprintf("ignoring command manifest: %v", err),
		Path:     path,
		Cause:    err,
	}
	if errors.Is(err, ErrManifestNotFound) {
		d.Severity = types.SeverityInfo
		d.Code = CodeManifestNotFound
		d.Message = fmt.Sprintf("no command manifest at %s; descriptions are unavailable", path)
	}

	empty := Empty()
	empty.path = path
	return empty, []types.Diagnostic{d}
}
