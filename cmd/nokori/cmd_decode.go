package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dhamidi/nokori/framing"
	"github.com/dhamidi/nokori/stream"
	"github.com/spf13/cobra"
)

func newDecodeCmd() *cobra.Command {
	var chunkSize int

	cmd := &cobra.Command{
		Use:   "decode [file]",
		Short: "Decode a framed message stream and print each payload",
		Long: "Decode reads Content-Length framed messages from a file (or stdin " +
			"when no file is given) and prints one payload per frame. The stream " +
			"is parsed incrementally: frames are emitted as soon as they are " +
			"complete, without waiting for the rest of the input.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := os.Stdin
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open input: %w", err)
				}
				defer f.Close()
				in = f
			}
			return runDecode(in, os.Stdout, chunkSize)
		},
	}

	cmd.Flags().IntVarP(&chunkSize, "chunk", "c", 4096, "read chunk size in bytes")

	return cmd
}

func runDecode(in io.Reader, out io.Writer, chunkSize int) error {
	dec := stream.NewDecoderSize(in, framing.Message(), chunkSize)
	frames := 0
	for {
		frame, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			fmt.Fprintf(out, "-- %d frames, %d bytes\n", frames, dec.Offset())
			return nil
		}
		if err != nil {
			return fmt.Errorf("decode frame %d: %w", frames+1, err)
		}
		frames++
		fmt.Fprintf(out, "[%d] %d bytes\n", frames, frame.Length)
		out.Write(frame.Payload)
		fmt.Fprintln(out)
	}
}
