// Command seqcalc lists and verifies terms of integer and real sequences,
// and solves the Pascal, Josephus and Hanoi problems, from the command
// line, an interactive session or an HTTP API.
package main

import (
	"context"
	"os"

	"github.com/agbru/seqcalc/internal/app"
	apperrors "github.com/agbru/seqcalc/internal/errors"
)

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	if app.HasVersionFlag(args[1:]) {
		if err := app.PrintVersion(os.Stdout, app.HasJSONFlag(args[1:])); err != nil {
			return apperrors.ExitErrorGeneric
		}
		return apperrors.ExitSuccess
	}

	application, err := app.New(args, os.Stderr)
	if err != nil {
		if app.IsHelpError(err) {
			return apperrors.ExitSuccess
		}
		return apperrors.ExitErrorConfig
	}
	defer application.Close()

	return application.Run(context.Background(), os.Stdout)
}
