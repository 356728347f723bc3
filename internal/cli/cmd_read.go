package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/epfl-cs212/imgstore/pkg/imgstore"
)

func cmdRead() *Command {
	return &Command{
		Usage: "read <imgstore_filename> <imgID> [original|orig|thumbnail|thumb|small]",
		Short: "read an image from the imgStore and save it to a file.",
		Help: []string{
			`default resolution is "original".`,
		},
		Exec: func(_ io.Writer, args []string) error {
			if len(args) < 2 {
				return imgstore.ErrNotEnoughArguments
			}

			storePath, imgID := args[0], args[1]

			resName := "orig"
			if len(args) >= 3 {
				resName = args[2]
			}

			res, err := imgstore.ParseResolution(resName)
			if err != nil {
				return err
			}

			// Read-write: reading a reduced variant may materialise it.
			s, err := imgstore.Open(storePath, imgstore.ReadWrite)
			if err != nil {
				return err
			}
			defer s.Close()

			img, err := s.Read(imgID, res)
			if err != nil {
				return err
			}

			outName := fmt.Sprintf("%s_%s.jpg", imgID, res)
			if err := os.WriteFile(outName, img, 0o644); err != nil {
				return fmt.Errorf("%w: write %s: %v", imgstore.ErrIO, outName, err)
			}

			return nil
		},
	}
}
