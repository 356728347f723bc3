package cli

import (
	"io"

	"github.com/epfl-cs212/imgstore/pkg/imgstore"
)

func cmdList() *Command {
	return &Command{
		Usage: "list <imgstore_filename>",
		Short: "list imgStore content.",
		Exec: func(out io.Writer, args []string) error {
			if len(args) < 1 {
				return imgstore.ErrNotEnoughArguments
			}

			s, err := imgstore.Open(args[0], imgstore.ReadOnly)
			if err != nil {
				return err
			}
			defer s.Close()

			return s.List(out, imgstore.ListHuman)
		},
	}
}
