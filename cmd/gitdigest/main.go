// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Gitdigest - Gitdigest collects commits across local and GitHub repositories, builds daily or range development reports, and delivers them to a Discord webhook.

Copyright (C) 2025  Gitdigest contributors

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

package main

import (
	"fmt"
	"os"

	"github.com/digestkit/gitdigest/cmd/gitdigest/commands"
	"github.com/digestkit/gitdigest/cmd/gitdigest/internal/clierr"
)

func main() {
	if err := commands.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(clierr.ExitCodeOf(err))
	}
}
