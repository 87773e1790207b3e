package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/turtacn/LienDeadline/internal/domain/lien"
	"github.com/turtacn/LienDeadline/pkg/errors"
)

func newBatchCmd() *cobra.Command {
	var dumpMetrics bool

	cmd := &cobra.Command{
		Use:   "batch [file]",
		Short: "Calculate deadlines for many invoices",
		Long: `Calculate deadlines for every request of a JSON array, read from file or
from stdin when the file is omitted or "-".  Files ending in .yaml or .yml
are read as YAML.  Each element has the fields invoice_date, jurisdiction,
role, project_type, notice_of_completion_date and notice_of_commencement_filed.

Results keep input order.  The command exits non-zero when any request fails.`,
		Example: `  liencalc batch invoices.json -o table
  cat invoices.json | liencalc batch --metrics`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			if dumpMetrics && cliCtx.Metrics == nil {
				return errors.New(errors.ErrCodeFeatureDisabled, "metrics are disabled by configuration")
			}

			path := ""
			if len(args) == 1 && args[0] != "-" {
				path = args[0]
			}
			reqs, err := readBatch(cmd.InOrStdin(), path)
			if err != nil {
				return err
			}

			items, err := cliCtx.Service.CalculateBatch(cmd.Context(), reqs)
			if err != nil {
				return err
			}
			view := batchView{items: items}
			if err := PrintResult(cmd, view); err != nil {
				return err
			}
			if dumpMetrics {
				if err := cliCtx.Metrics.WriteText(cmd.ErrOrStderr()); err != nil {
					return err
				}
			}
			if n := view.failed(); n > 0 {
				return errors.Newf(errors.ErrCodeBadRequest, "%d of %d requests failed", n, len(items))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dumpMetrics, "metrics", false, "write calculation metrics to stderr in the Prometheus text format")
	return cmd
}

// readBatch decodes the requests from path, or from stdin when path is empty.
func readBatch(stdin io.Reader, path string) ([]*lien.RawRequest, error) {
	var (
		data []byte
		err  error
	)
	if path == "" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeBadRequest, "read batch input")
	}

	var reqs []*lien.RawRequest
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&reqs)
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&reqs)
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "decode batch input")
	}
	return reqs, nil
}
