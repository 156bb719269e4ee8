// Copyright (c) 2018 Yandex LLC. All rights reserved.
// Use of this source code is governed by a MPL 2.0
// license that can be found in the LICENSE file.

package cli

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/yandex/qpsgen/core/config"
	"github.com/yandex/qpsgen/core/generator"
	"github.com/yandex/qpsgen/lib/zaputil"
)

const Version = "0.1.0"
const defaultConfigFile = "qpsgen"

var configSearchDirs = []string{"./", "./config"}

// configFlags binds config keys to command line flags.
var configFlags = []struct{ key, flag string }{
	{"mode", "mode"},
	{"unary-limit", "unary"},
	{"stream-limit", "stream"},
	{"benchmark-time", "time"},
	{"warmup", "warmup"},
	{"input-dir", "input"},
	{"output-dir", "output"},
	{"match", "match"},
	{"fail-fast", "fail-fast"},
	{"clear", "clear"},
}

func Run() {
	flags := newFlagSet(pflag.ExitOnError)
	_ = flags.Parse(os.Args[1:])

	if example, _ := flags.GetBool("example"); example {
		fmt.Print(exampleConfig())
		return
	}
	verbose, _ := flags.GetBool("verbose")
	log := newLogger(verbose)
	log.Info("Scenario generator started", zap.String("version", Version))

	fs := afero.NewOsFs()
	conf, err := readConfig(fs, flags)
	if err != nil {
		log.Fatal("Config read failed", zap.Error(err))
	}
	err = generator.New(fs, log, conf).Run()
	if err != nil {
		log.Error("Run failed", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
	log.Info("Run successfully finished")
}

func newFlagSet(errorHandling pflag.ErrorHandling) *pflag.FlagSet {
	def := generator.DefaultConfig()
	flags := pflag.NewFlagSet("qpsgen", errorHandling)
	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of qpsgen: qpsgen [flags] [<config_filename>]\n"+
			"<config_filename> is './%s.(yaml|json|...)' by default\n", defaultConfigFile)
		flags.PrintDefaults()
	}
	flags.StringP("mode", "m", "", "limit mode: time or message")
	flags.IntP("unary", "u", int(def.UnaryLimit), "unary message limit")
	flags.IntP("stream", "s", int(def.StreamLimit), "streaming message limit")
	flags.DurationP("time", "t", def.BenchmarkTime, "benchmark time limit")
	flags.DurationP("warmup", "w", def.Warmup, "warmup period")
	flags.StringP("input", "i", def.InputDir, "directory with scenario dumps")
	flags.StringP("output", "o", def.OutputDir, "directory for generated scenarios")
	flags.String("match", def.Match.String(), "input naming convention: dump or json")
	flags.Bool("fail-fast", false, "abort on first failed file")
	flags.BoolP("clear", "c", false, "remove generated scenarios and exit")
	flags.Bool("example", false, "print example config to STDOUT and exit")
	flags.BoolP("verbose", "v", false, "enable debug logging")
	return flags
}

func readConfig(fs afero.Fs, flags *pflag.FlagSet) (generator.Config, error) {
	conf := generator.DefaultConfig()
	v := newViper(fs)
	for _, f := range configFlags {
		err := v.BindPFlag(f.key, flags.Lookup(f.flag))
		if err != nil {
			return conf, errors.WithStack(err)
		}
	}
	explicit := flags.NArg() > 0
	if explicit {
		v.SetConfigFile(flags.Arg(0))
	}
	err := v.ReadInConfig()
	if err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); explicit || !notFound {
			return conf, errors.Wrap(err, "config file read failed")
		}
	} else {
		zap.L().Info("Config file read", zap.String("file", v.ConfigFileUsed()))
	}
	err = config.DecodeAndValidate(v.AllSettings(), &conf)
	if err != nil {
		return conf, errors.Wrap(err, "config decode failed")
	}
	return conf, nil
}

func newViper(fs afero.Fs) *viper.Viper {
	v := viper.New()
	v.SetFs(fs)
	v.SetConfigName(defaultConfigFile)
	for _, dir := range configSearchDirs {
		v.AddConfigPath(dir)
	}
	return v
}

func newLogger(verbose bool) *zap.Logger {
	conf := zap.NewDevelopmentConfig()
	if !verbose {
		conf.Level.SetLevel(zap.InfoLevel)
	}
	log, err := conf.Build(zap.AddCaller(), zap.WrapCore(zaputil.NewStackExtractCore))
	if err != nil {
		panic(err)
	}
	zap.ReplaceGlobals(log)
	zap.RedirectStdLog(log)
	return log
}
