package rig

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/beamkit/beamctl/internal/ctxlog"
)

// fileContent is the gohcl shape of one rig file, minus locals blocks,
// which are peeled off and evaluated first.
type fileContent struct {
	Motors         []Motor         `hcl:"motor,block"`
	Shutters       []Shutter       `hcl:"shutter,block"`
	Monochromators []Monochromator `hcl:"monochromator,block"`
	Gateways       []Gateway       `hcl:"gateway,block"`
}

var localsSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{{Type: "locals"}},
}

// Load reads the rig at path, a single .hcl file or a directory searched
// recursively, and returns the merged, validated model.
func Load(ctx context.Context, path string) (*Model, error) {
	logger := ctxlog.FromContext(ctx)

	paths, err := collectFiles(path)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no .hcl rig files found at %s", path)
	}
	logger.Debug("Rig files discovered.", "count", len(paths))

	parser := hclparse.NewParser()
	model := &Model{}

	for _, filePath := range paths {
		hclFile, diags := parser.ParseHCLFile(filePath)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse rig file %s: %w", filePath, diags)
		}

		content, remain, diags := hclFile.Body.PartialContent(localsSchema)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to read rig file %s: %w", filePath, diags)
		}

		evalCtx, err := localsContext(content.Blocks)
		if err != nil {
			return nil, fmt.Errorf("rig file %s: %w", filePath, err)
		}

		var fc fileContent
		if diags := gohcl.DecodeBody(remain, evalCtx, &fc); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode rig file %s: %w", filePath, diags)
		}

		model.Motors = append(model.Motors, fc.Motors...)
		model.Shutters = append(model.Shutters, fc.Shutters...)
		model.Monochromators = append(model.Monochromators, fc.Monochromators...)
		for _, gw := range fc.Gateways {
			if model.Gateway != nil {
				return nil, fmt.Errorf("rig file %s: more than one gateway block declared", filePath)
			}
			g := gw
			model.Gateway = &g
		}
		logger.Debug("Rig file loaded.", "file", filePath)
	}

	if err := model.normalize(); err != nil {
		return nil, fmt.Errorf("invalid rig: %w", err)
	}

	logger.Debug("Rig model loaded.",
		"motors", len(model.Motors),
		"shutters", len(model.Shutters),
		"monochromators", len(model.Monochromators),
		"gateway", model.Gateway != nil)
	return model, nil
}

// localsContext evaluates every attribute of the given locals blocks into
// an EvalContext exposing them as 'local.<name>'.
func localsContext(blocks hcl.Blocks) (*hcl.EvalContext, error) {
	vars := make(map[string]cty.Value)
	for _, block := range blocks {
		attrs, diags := block.Body.JustAttributes()
		if diags.HasErrors() {
			return nil, fmt.Errorf("invalid locals block: %w", diags)
		}
		for name, attr := range attrs {
			val, diags := attr.Expr.Value(nil)
			if diags.HasErrors() {
				return nil, fmt.Errorf("local %q: %w", name, diags)
			}
			vars[name] = val
		}
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"local": cty.ObjectVal(vars)},
	}, nil
}

// collectFiles resolves path to the sorted list of rig files it names: the
// file itself, or every .hcl file under the directory.
func collectFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("rig path: %w", err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".hcl") {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("rig path: %w", err)
	}
	sort.Strings(files)
	return files, nil
}
