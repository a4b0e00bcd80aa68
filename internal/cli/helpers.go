package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/ifcmodel/internal/model"
	"github.com/mesh-intelligence/ifcmodel/internal/snapshot"
	"github.com/mesh-intelligence/ifcmodel/pkg/types"
)

// newLogger builds a console zap logger at level writing to w.
func newLogger(level string, w io.Writer) (logr.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return logr.Logger{}, fmt.Errorf("log level %q: %w", level, err)
	}
	enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	core := zapcore.NewCore(enc, zapcore.AddSync(w), lvl)
	return zapr.NewLogger(zap.New(core)), nil
}

// newEngine returns the engine named by the configuration.
func newEngine(name string) (types.Engine, error) {
	switch name {
	case types.EngineSnapshot:
		return snapshot.New(), nil
	default:
		return nil, fmt.Errorf("engine %q: %w", name, types.ErrEngineUnknown)
	}
}

// openModel reads path and opens it through a new handle. The caller must
// close the returned handle.
func openModel(cmd *cobra.Command, path string) (*model.Handle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}
	engine, err := newEngine(current.config.Engine)
	if err != nil {
		return nil, err
	}
	opts := []model.Option{model.WithLogger(current.logger.WithValues("file", path))}
	if current.recorder != nil {
		opts = append(opts, model.WithMetrics(current.recorder))
	}
	h, err := model.New(engine, current.config, opts...)
	if err != nil {
		return nil, err
	}
	if _, err := h.Open(cmd.Context(), data); err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return h, nil
}

// closeModel closes h and logs a failure.
func closeModel(h *model.Handle) {
	if err := h.Close(); err != nil {
		current.logger.Error(err, "close model")
	}
}

// parseID parses a positive express ID argument.
func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("express id %q must be a positive integer: %w", arg, types.ErrInvalidArgument)
	}
	return id, nil
}

// printResult writes v to the command's output in the selected format.
func printResult(cmd *cobra.Command, v any) error {
	w := cmd.OutOrStdout()
	switch flags.output {
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		out, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		fmt.Fprintln(w, string(out))
		return nil
	}
}

// writeMetrics writes every metric family in g to w in text exposition format.
func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	mfs, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range mfs {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("encode metrics: %w", err)
		}
	}
	return nil
}
