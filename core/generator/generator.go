// Copyright (c) 2018 Yandex LLC. All rights reserved.
// Use of this source code is governed by a MPL 2.0
// license that can be found in the LICENSE file.

package generator

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/yandex/qpsgen/core/scenario"
	"github.com/yandex/qpsgen/lib/errutil"
	"github.com/yandex/qpsgen/lib/monitoring"
)

// Stats are counters of Generator work.
type Stats struct {
	// Generated is number of written scenario files.
	Generated monitoring.Counter
	// Failed is number of matched files that were not written.
	Failed monitoring.Counter
	// Skipped is number of input files not matched by naming convention.
	Skipped monitoring.Counter
	// Removed is number of files removed by Clear.
	Removed monitoring.Counter
}

// Generator writes patched scenario variants of matched InputDir files to OutputDir.
// Generator is not goroutine safe.
type Generator struct {
	fs      afero.Afero
	log     *zap.Logger
	conf    Config
	matcher scenario.Matcher
	patcher scenario.Patcher
	stats   Stats
}

func New(fs afero.Fs, log *zap.Logger, conf Config) *Generator {
	return &Generator{
		fs:      afero.Afero{Fs: fs},
		log:     log,
		conf:    conf,
		matcher: scenario.NewMatcher(conf.Match),
		patcher: conf.Patcher(),
	}
}

func (g *Generator) Stats() *Stats { return &g.stats }

// Run clears output dir if Clear set, or generates scenarios otherwise.
func (g *Generator) Run() error {
	if g.conf.Clear {
		return g.Clear()
	}
	return g.Generate()
}

// Generate processes every matched file of input dir.
// File failure doesn't stop others, unless FailFast set. All failures are
// returned joined.
func (g *Generator) Generate() error {
	if g.patcher.Policy == nil {
		return errors.New("limit mode is not set")
	}
	err := g.fs.MkdirAll(g.conf.OutputDir, 0755)
	if err != nil {
		return scenario.NewIOError("mkdir", g.conf.OutputDir, err)
	}
	infos, err := g.fs.ReadDir(g.conf.InputDir)
	if err != nil {
		return scenario.NewIOError("readdir", g.conf.InputDir, err)
	}
	var result error
	for _, info := range infos {
		if info.IsDir() {
			continue
		}
		match, ok := g.matcher.Match(info.Name())
		if !ok {
			g.stats.Skipped.Inc()
			g.log.Debug("File doesn't match naming convention. Skip.", zap.String("file", info.Name()))
			continue
		}
		src := filepath.Join(g.conf.InputDir, info.Name())
		_, err := g.GenerateFile(src, match)
		if err != nil {
			g.stats.Failed.Inc()
			g.log.Error("Scenario generation failed", zap.String("source", src), zap.Error(err))
			if g.conf.FailFast {
				return err
			}
			result = errutil.Join(result, err)
			continue
		}
		g.stats.Generated.Inc()
	}
	g.log.Info("Scenarios generated",
		zap.Stringer("generated", &g.stats.Generated),
		zap.Stringer("failed", &g.stats.Failed),
		zap.Stringer("skipped", &g.stats.Skipped))
	return result
}

// GenerateFile writes patched variant of src into output dir and returns its path.
// Nothing is written on error.
func (g *Generator) GenerateFile(src string, match scenario.Match) (dest string, err error) {
	data, err := g.fs.ReadFile(src)
	if err != nil {
		return "", scenario.NewIOError("read", src, err)
	}
	f, err := scenario.Unmarshal(src, data)
	if err != nil {
		return "", err
	}
	policy := g.patcher.Policy
	patched, err := g.patcher.Patch(f)
	if err != nil {
		return "", err
	}
	desc, err := scenario.Derive(patched, policy)
	if err != nil {
		return "", err
	}
	if match.Descriptor != nil && *match.Descriptor != desc.Descriptor {
		g.log.Warn("Scenario client config doesn't match file name",
			zap.String("source", src),
			zap.Stringer("name", match.Descriptor),
			zap.Stringer("content", desc.Descriptor))
	}
	out, err := scenario.Marshal(patched)
	if err != nil {
		return "", err
	}
	dest = filepath.Join(g.conf.OutputDir, desc.Filename())
	g.log.Info("Generate scenario", zap.String("source", src), zap.String("dest", dest))
	err = g.fs.WriteFile(dest, out, 0644)
	if err != nil {
		return "", scenario.NewIOError("write", dest, err)
	}
	return dest, nil
}

// Clear removes every file of output dir. Output dir is created if absent.
// Input files are never touched: when output dir is input dir, only
// generated scenario names are removed.
func (g *Generator) Clear() error {
	dir := g.conf.OutputDir
	shared := samePath(dir, g.conf.InputDir)
	err := g.fs.MkdirAll(dir, 0755)
	if err != nil {
		return scenario.NewIOError("mkdir", dir, err)
	}
	infos, err := g.fs.ReadDir(dir)
	if err != nil {
		return scenario.NewIOError("readdir", dir, err)
	}
	var result error
	for _, info := range infos {
		path := filepath.Join(dir, info.Name())
		if info.IsDir() {
			g.log.Warn("Directory in output dir. Skip.", zap.String("dir", path))
			continue
		}
		if shared && !scenario.IsOutputName(info.Name()) {
			g.log.Debug("Not generated file in shared input and output dir. Skip.", zap.String("file", path))
			continue
		}
		err := g.fs.Remove(path)
		if err != nil && !os.IsNotExist(err) {
			result = errutil.Join(result, scenario.NewIOError("remove", path, err))
			continue
		}
		g.stats.Removed.Inc()
		g.log.Debug("Generated scenario removed", zap.String("file", path))
	}
	g.log.Info("Generated scenarios cleared", zap.String("dir", dir), zap.Stringer("removed", &g.stats.Removed))
	return result
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
