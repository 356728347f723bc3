package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/epfl-cs212/imgstore/pkg/imgstore"
)

func cmdInsert() *Command {
	return &Command{
		Usage: "insert <imgstore_filename> <imgID> <filename>",
		Short: "insert a new image in the imgStore.",
		Exec: func(_ io.Writer, args []string) error {
			if len(args) < 3 {
				return imgstore.ErrNotEnoughArguments
			}

			storePath, imgID, imgPath := args[0], args[1], args[2]

			img, err := os.ReadFile(imgPath)
			if err != nil {
				return fmt.Errorf("%w: read %s: %v", imgstore.ErrIO, imgPath, err)
			}

			s, err := imgstore.Open(storePath, imgstore.ReadWrite)
			if err != nil {
				return err
			}
			defer s.Close()

			return s.Insert(img, imgID)
		},
	}
}
