package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/botgrid/internal/config"
	"github.com/vk/botgrid/internal/ctxlog"
	"github.com/vk/botgrid/internal/fsutil"
)

// Loader implements config.Loader for HCL grid files.
type Loader struct{}

// NewLoader creates a Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file found under the given paths and merges the
// declared robots into one model.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	parser := hclparse.NewParser()
	model := &config.Model{}

	for _, path := range paths {
		filePaths, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", path, err)
		}
		if len(filePaths) == 0 {
			logger.Warn("No .hcl grid files found in path.", "path", path)
			continue
		}

		for _, filePath := range filePaths {
			file, diags := parser.ParseHCLFile(filePath)
			if diags.HasErrors() {
				return nil, fmt.Errorf("failed to parse %s: %w", filePath, diags)
			}

			var grid GridConfig
			if diags := gohcl.DecodeBody(file.Body, nil, &grid); diags.HasErrors() {
				return nil, fmt.Errorf("failed to decode %s: %w", filePath, diags)
			}

			for _, rb := range grid.Robots {
				spec, err := l.translateRobot(rb)
				if err != nil {
					return nil, fmt.Errorf("robot %q in %s: %w", rb.Name, filePath, err)
				}
				model.Robots = append(model.Robots, spec)
			}
			logger.Debug("Grid file loaded.", "file", filePath, "robots", len(grid.Robots))
		}
	}

	logger.Info("Grid model loaded.", "robots", len(model.Robots))
	return model, nil
}

func (l *Loader) translateRobot(rb *RobotBlock) (*config.RobotSpec, error) {
	spec := &config.RobotSpec{Name: rb.Name}

	for _, cb := range rb.Connections {
		params, err := bodyToParams(cb.Params)
		if err != nil {
			return nil, fmt.Errorf("connection %q: %w", cb.Name, err)
		}
		spec.Connections = append(spec.Connections, &config.ConnectionSpec{
			Name:    cb.Name,
			Adaptor: cb.Adaptor,
			Module:  cb.Module,
			Params:  params,
		})
	}

	for _, db := range rb.Devices {
		params, err := bodyToParams(db.Params)
		if err != nil {
			return nil, fmt.Errorf("device %q: %w", db.Name, err)
		}
		spec.Devices = append(spec.Devices, &config.DeviceSpec{
			Name:       db.Name,
			Driver:     db.Driver,
			Module:     db.Module,
			Connection: db.Connection,
			Params:     params,
		})
	}

	extra, err := bodyToParams(rb.Extra)
	if err != nil {
		return nil, err
	}
	spec.Extra = extra
	return spec, nil
}

// bodyToParams evaluates every leftover attribute of a block into native Go
// values. Grid files are static configuration, so expressions are evaluated
// without a variable scope.
func bodyToParams(body hcl.Body) (map[string]any, error) {
	if body == nil {
		return nil, nil
	}
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("reading attributes: %w", diags)
	}
	if len(attrs) == 0 {
		return nil, nil
	}

	params := make(map[string]any, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("evaluating %q: %w", name, diags)
		}
		goVal, err := ctyToGo(val)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", name, err)
		}
		params[name] = goVal
	}
	return params, nil
}
