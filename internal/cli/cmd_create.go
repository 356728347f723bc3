package cli

import (
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/epfl-cs212/imgstore/pkg/imgstore"
)

func cmdCreate() *Command {
	flags := flag.NewFlagSet("create", flag.ContinueOnError)
	flags.SetOutput(&strings.Builder{}) // discard pflag output
	flags.Usage = func() {}

	maxFiles := flags.Uint32("max_files", imgstore.DefaultMaxFiles,
		"Maximum number of files")
	thumbRes := flags.UintSlice("thumb_res", []uint{imgstore.DefaultResThumb, imgstore.DefaultResThumb},
		"Resolution `X,Y` for thumbnail images")
	smallRes := flags.UintSlice("small_res", []uint{imgstore.DefaultResSmall, imgstore.DefaultResSmall},
		"Resolution `X,Y` for small images")

	cmd := &Command{
		Flags: flags,
		Usage: "create <imgstore_filename> [options]",
		Short: "create a new imgStore.",
	}

	cmd.Exec = func(out io.Writer, args []string) error {
		if len(args) < 1 {
			return imgstore.ErrNotEnoughArguments
		}

		filename := args[0]

		if err := flags.Parse(args[1:]); err != nil {
			return createParseError(err)
		}

		if flags.NArg() > 0 {
			return imgstore.ErrInvalidArgument
		}

		if *maxFiles == 0 || *maxFiles > imgstore.MaxMaxFiles {
			return imgstore.ErrMaxFiles
		}

		var tmpl imgstore.Header
		tmpl.MaxFiles = *maxFiles

		for _, box := range []struct {
			res   imgstore.Resolution
			value []uint
			max   uint
		}{
			{res: imgstore.ResThumb, value: *thumbRes, max: imgstore.MaxResThumb},
			{res: imgstore.ResSmall, value: *smallRes, max: imgstore.MaxResSmall},
		} {
			if len(box.value) != 2 {
				return imgstore.ErrResolutions
			}

			for k, v := range box.value {
				if v == 0 || v > box.max {
					return imgstore.ErrResolutions
				}

				tmpl.Resized[2*int(box.res)+k] = uint16(v)
			}
		}

		fprintln(out, "Create")

		s, err := imgstore.Create(filename, tmpl)
		if err != nil {
			return err
		}
		defer s.Close()

		fprintf(out, "%d item(s) written\n", tmpl.MaxFiles+1)

		h := s.Header()
		_, _ = h.WriteTo(out)

		return nil
	}

	return cmd
}

// createParseError maps a pflag parse failure onto the error taxonomy by
// the flag it concerns.
func createParseError(err error) error {
	msg := err.Error()

	if strings.Contains(msg, "needs an argument") {
		return imgstore.ErrNotEnoughArguments
	}

	switch {
	case strings.Contains(msg, "max_files"):
		return imgstore.ErrMaxFiles
	case strings.Contains(msg, "thumb_res"), strings.Contains(msg, "small_res"):
		return imgstore.ErrResolutions
	default:
		return imgstore.ErrInvalidArgument
	}
}
