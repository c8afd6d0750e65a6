package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

func newUploadCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "upload <path-or-url>",
		Short: "Upload a file",
		Long:  "Upload a local file, or ask the server to fetch an http(s) URL. The stored file descriptor is printed; attach it to a file field with record create/update.",
		Args:  cobra.ExactArgs(1),
		Example: `  baserow upload ./invoice.pdf
  baserow upload https://example.com/logo.png`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpload(cmd, args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "json", "Output format: json or yaml")

	return cmd
}

func runUpload(cmd *cobra.Command, source, output string) error {
	client, err := authedClient(cmd.Context())
	if err != nil {
		return err
	}

	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		file, err := client.UploadFileViaURL(cmd.Context(), source)
		if err != nil {
			return fmt.Errorf("upload via url: %w", err)
		}
		return render(cmd.OutOrStdout(), file, output)
	}

	f, err := os.Open(source)
	if err != nil {
		return err
	}
	defer f.Close()

	file, err := client.UploadFile(cmd.Context(), f, filepath.Base(source))
	if err != nil {
		return fmt.Errorf("upload %s: %w", source, err)
	}
	return render(cmd.OutOrStdout(), file, output)
}
