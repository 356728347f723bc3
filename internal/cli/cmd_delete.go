package cli

import (
	"io"

	"github.com/epfl-cs212/imgstore/pkg/imgstore"
)

func cmdDelete() *Command {
	return &Command{
		Usage: "delete <imgstore_filename> <imgID>",
		Short: "delete image imgID from imgStore.",
		Exec: func(_ io.Writer, args []string) error {
			if len(args) < 2 {
				return imgstore.ErrNotEnoughArguments
			}

			if len(args[1]) == 0 || len(args[1]) > imgstore.MaxImgIDLen {
				return imgstore.ErrInvalidImgID
			}

			s, err := imgstore.Open(args[0], imgstore.ReadWrite)
			if err != nil {
				return err
			}
			defer s.Close()

			return s.Delete(args[1])
		},
	}
}
