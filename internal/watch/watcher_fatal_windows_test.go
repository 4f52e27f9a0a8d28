// SPDX-License-Identifier: MPL-2.0

//go:build windows

package watch

import (
	"fmt"
	"syscall"
	"testing"
)

func TestIsFatalFsnotifyError(t *testing.T) {
	t.Parallel()

	for err, want := range map[error]bool{
		syscall.Errno(4):                         true,
		fmt.Errorf("rdcw: %w", syscall.Errno(6)): true,
		syscall.Errno(8):                         true,
		syscall.Errno(5):                         false,
		fmt.Errorf("transient"):                  false,
	} {
		if got := isFatalFsnotifyError(err); got != want {
			t.Errorf("isFatalFsnotifyError(%v) = %v, want %v", err, got, want)
		}
	}
}
