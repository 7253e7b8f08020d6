// SPDX-License-Identifier: MPL-2.0

package main

import (
	cmd "drills-cli/cmd/drills"
)

func main() {
	cmd.Execute()
}
