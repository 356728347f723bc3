package cli

import (
	"io"

	"github.com/epfl-cs212/imgstore/pkg/imgstore"
)

func cmdGC() *Command {
	return &Command{
		Usage: "gc <imgstore_filename> <tmp imgstore_filename>",
		Short: "performs garbage collecting on imgStore.",
		Help: []string{
			"Requires a temporary filename for copying the imgStore.",
		},
		Exec: func(_ io.Writer, args []string) error {
			if len(args) < 2 {
				return imgstore.ErrNotEnoughArguments
			}

			return imgstore.GarbageCollect(args[0], args[1])
		},
	}
}
