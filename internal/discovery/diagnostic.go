// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"fmt"

	"github.com/invowk/grouprun/pkg/types"
)

// Diagnostic codes produced by discovery.
const (
	CodeRootNotFound     = "root_not_found"
	CodeRootNotDirectory = "root_not_directory"
	CodeDirUnreadable    = "group_scan_skipped"
	CodeDuplicateGroup   = "duplicate_group"
)

func warning(code, path string, cause error, format string, args ...any) types.Diagnostic {
	return types.Diagnostic{
		Severity: types.SeverityWarning,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Path:     path,
		Cause:    cause,
	}
}

func failure(code, path string, cause error, format string, args ...any) types.Diagnostic {
	d := warning(code, path, cause, format, args...)
	d.Severity = types.SeverityError
	return d
}
