package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Reu7en/Intervision-sub000/file"
)

// readJSON decodes the document in name, or stdin for "-".
func readJSON[T any](name string) (*T, error) {
	f, err := file.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return file.Decode[T](f)
}

func writeJSON(cmd *cobra.Command, v any) error {
	return file.Encode(cmd.OutOrStdout(), v)
}

func argOrStdin(args []string) string {
	if len(args) == 0 {
		return "-"
	}
	return args[0]
}
