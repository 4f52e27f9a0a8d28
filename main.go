// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/invowk/grouprun/cmd/grouprun"

func main() {
	cmd.Execute()
}
