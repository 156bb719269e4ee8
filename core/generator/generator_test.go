// Copyright (c) 2018 Yandex LLC. All rights reserved.
// Use of this source code is governed by a MPL 2.0
// license that can be found in the LICENSE file.

package generator

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/yandex/qpsgen/core/scenario"
	"github.com/yandex/qpsgen/lib/errutil"
	"github.com/yandex/qpsgen/lib/ginkgoutil"
	"github.com/yandex/qpsgen/lib/testutil"
)

const (
	inputDir  = "/scenarios"
	outputDir = "/scenarios/gen"
)

func dumpName(client, rpc, tls string, size int) string {
	return fmt.Sprintf("scenario_dump_cpp_protobuf_%s_%s_qps_unconstrained_%s_%db.json", client, rpc, tls, size)
}

func dumpJSON(clientType, rpcType string, secure bool, size int) string {
	security := "null"
	if secure {
		security = `{"use_test_ca": true, "server_host_override": "foo.test.google.fr"}`
	}
	return fmt.Sprintf(`{"scenarios": [{
  "name": "cpp_protobuf_dump",
  "warmup_seconds": 30,
  "benchmark_seconds": 30,
  "num_servers": 1,
  "client_config": {
    "client_type": %q,
    "rpc_type": %q,
    "security_params": %s,
    "payload_config": {"simple_params": {"req_size": %d, "resp_size": %d}}
  }
}]}`, clientType, rpcType, security, size, size)
}

func readOutput(fs afero.Fs, name string) scenario.Entry {
	data, err := afero.ReadFile(fs, filepath.Join(outputDir, name))
	Expect(err).NotTo(HaveOccurred())
	f, err := scenario.Unmarshal(name, data)
	Expect(err).NotTo(HaveOccurred())
	Expect(f.Scenarios).To(HaveLen(1))
	return f.Scenarios[0]
}

func outputNames(fs afero.Fs) []string {
	infos, err := afero.ReadDir(fs, outputDir)
	Expect(err).NotTo(HaveOccurred())
	var names []string
	for _, info := range infos {
		names = append(names, info.Name())
	}
	return names
}

var _ = Describe("Generator", func() {
	var (
		fs   afero.Fs
		conf Config
		log  *zap.Logger
	)

	write := func(name, data string) {
		Expect(afero.WriteFile(fs, filepath.Join(inputDir, name), []byte(data), 0644)).To(Succeed())
	}

	newGenerator := func() *Generator {
		return New(fs, log, conf)
	}

	BeforeEach(func() {
		fs = afero.NewMemMapFs()
		Expect(fs.MkdirAll(inputDir, 0755)).To(Succeed())
		log = ginkgoutil.NewLogger()
		conf = DefaultConfig()
		conf.Mode = scenario.MessageLimit
		conf.InputDir = inputDir
		conf.OutputDir = outputDir
	})

	It("generates message limited variant", func() {
		write(dumpName("sync", "unary", "secure", 1024), dumpJSON("SYNC_CLIENT", "UNARY", true, 1024))
		g := newGenerator()
		Expect(g.Run()).To(Succeed())

		Expect(outputNames(fs)).To(ConsistOf("qps_sync_unary_secure_1024b_200K.json"))
		entry := readOutput(fs, "qps_sync_unary_secure_1024b_200K.json")
		Expect(entry).To(HaveKeyWithValue(scenario.MessageLimitKey, json.Number("200000")))
		Expect(entry).To(HaveKeyWithValue(scenario.WarmupSecondsKey, json.Number("5")))
		Expect(entry).NotTo(HaveKey(scenario.BenchmarkSecondsKey))
		Expect(entry).To(HaveKeyWithValue("num_servers", json.Number("1")))
		Expect(g.Stats().Generated.Get()).To(BeEquivalentTo(1))
	})

	It("uses stream limit for streaming scenarios", func() {
		conf.StreamLimit = 1000000
		write(dumpName("async", "streaming", "insecure", 0), dumpJSON("ASYNC_CLIENT", "STREAMING", false, 0))
		Expect(newGenerator().Run()).To(Succeed())

		entry := readOutput(fs, "qps_async_streaming_insecure_0b_1M.json")
		Expect(entry).To(HaveKeyWithValue(scenario.MessageLimitKey, json.Number("1000000")))
	})

	It("generates time limited variant", func() {
		conf.Mode = scenario.TimeLimit
		write(dumpName("sync", "unary", "insecure", 64), dumpJSON("SYNC_CLIENT", "UNARY", false, 64))
		Expect(newGenerator().Run()).To(Succeed())

		entry := readOutput(fs, "qps_sync_unary_insecure_64b_30s.json")
		Expect(entry).To(HaveKeyWithValue(scenario.BenchmarkSecondsKey, json.Number("30")))
		Expect(entry).NotTo(HaveKey(scenario.MessageLimitKey))
	})

	It("doesn't modify input files", func() {
		name := dumpName("sync", "unary", "secure", 1024)
		data := dumpJSON("SYNC_CLIENT", "UNARY", true, 1024)
		write(name, data)
		Expect(newGenerator().Run()).To(Succeed())
		testutil.AssertFileEqual(GinkgoT(), fs, filepath.Join(inputDir, name), data)
	})

	It("skips unmatched files and directories", func() {
		write("README.md", "# scenarios")
		write("custom.json", dumpJSON("SYNC_CLIENT", "UNARY", false, 1))
		Expect(fs.MkdirAll(filepath.Join(inputDir, "scenario_dump_cpp_protobuf_sync_unary_qps_unconstrained_secure_1b.json"), 0755)).To(Succeed())
		g := newGenerator()
		Expect(g.Run()).To(Succeed())
		Expect(outputNames(fs)).To(BeEmpty())
		Expect(g.Stats().Skipped.Get()).To(BeEquivalentTo(2))
	})

	It("overwrites existing output", func() {
		Expect(fs.MkdirAll(outputDir, 0755)).To(Succeed())
		Expect(afero.WriteFile(fs, filepath.Join(outputDir, "qps_sync_unary_secure_1024b_200K.json"), []byte("stale"), 0644)).To(Succeed())
		write(dumpName("sync", "unary", "secure", 1024), dumpJSON("SYNC_CLIENT", "UNARY", true, 1024))
		Expect(newGenerator().Run()).To(Succeed())
		entry := readOutput(fs, "qps_sync_unary_secure_1024b_200K.json")
		Expect(entry).To(HaveKey(scenario.MessageLimitKey))
	})

	Context("file fails", func() {
		BeforeEach(func() {
			write(dumpName("async", "unary", "insecure", 1), `{"scenarios": [`)
			write(dumpName("sync", "streaming", "secure", 2), `{"scenarios": [{"client_config": {"client_type": "SYNC_CLIENT"}}]}`)
			write(dumpName("sync", "unary", "secure", 1024), dumpJSON("SYNC_CLIENT", "UNARY", true, 1024))
		})

		It("reports every failure and processes other files", func() {
			g := newGenerator()
			err := g.Run()
			Expect(err).To(HaveOccurred())

			errs := errutil.Errors(err)
			Expect(errs).To(HaveLen(2))
			Expect(scenario.IsParseError(errs[0])).To(BeTrue())
			Expect(errs[0].Error()).To(ContainSubstring(dumpName("async", "unary", "insecure", 1)))
			Expect(scenario.IsSchemaError(errs[1])).To(BeTrue())
			Expect(errs[1].Error()).To(ContainSubstring(dumpName("sync", "streaming", "secure", 2)))

			Expect(outputNames(fs)).To(ConsistOf("qps_sync_unary_secure_1024b_200K.json"))
			Expect(g.Stats().Failed.Get()).To(BeEquivalentTo(2))
			Expect(g.Stats().Generated.Get()).To(BeEquivalentTo(1))
		})

		It("aborts on first failure in fail fast mode", func() {
			conf.FailFast = true
			g := newGenerator()
			err := g.Run()
			Expect(scenario.IsParseError(err)).To(BeTrue())
			Expect(outputNames(fs)).To(BeEmpty())
			Expect(g.Stats().Failed.Get()).To(BeEquivalentTo(1))
		})
	})

	It("doesn't write partially patched file", func() {
		write(dumpName("sync", "unary", "secure", 8), `{"scenarios": [
			{"client_config": {"client_type": "SYNC_CLIENT", "rpc_type": "UNARY", "security_params": null,
				"payload_config": {"simple_params": {"req_size": 8}}}},
			{"name": "no client config"}
		]}`)
		err := newGenerator().Run()
		Expect(scenario.IsSchemaError(err)).To(BeTrue())
		Expect(outputNames(fs)).To(BeEmpty())
	})

	It("warns when file name doesn't match content", func() {
		var logs *observer.ObservedLogs
		log, logs = testutil.NewObservedLogger(zap.WarnLevel)
		write(dumpName("sync", "unary", "secure", 1024), dumpJSON("ASYNC_CLIENT", "UNARY", true, 1024))
		Expect(newGenerator().Run()).To(Succeed())
		Expect(outputNames(fs)).To(ConsistOf("qps_async_unary_secure_1024b_200K.json"))
		Expect(logs.FilterMessage("Scenario client config doesn't match file name").Len()).To(Equal(1))
	})

	It("json matcher ignores generated outputs", func() {
		conf.Match = scenario.JSONMatch
		conf.OutputDir = inputDir
		write("custom.json", dumpJSON("SYNC_CLIENT", "UNARY", false, 16))
		write("qps_sync_unary_secure_1024b_200K.json", dumpJSON("SYNC_CLIENT", "UNARY", true, 1024))
		g := newGenerator()
		Expect(g.Run()).To(Succeed())
		Expect(g.Stats().Generated.Get()).To(BeEquivalentTo(1))
		Expect(g.Stats().Skipped.Get()).To(BeEquivalentTo(1))
		exists, err := afero.Exists(fs, filepath.Join(inputDir, "qps_sync_unary_insecure_16b_200K.json"))
		Expect(err).NotTo(HaveOccurred())
		Expect(exists).To(BeTrue())
	})

	It("fails without limit mode", func() {
		conf.Mode = scenario.UnsetLimit
		write(dumpName("sync", "unary", "secure", 1024), dumpJSON("SYNC_CLIENT", "UNARY", true, 1024))
		Expect(newGenerator().Run()).NotTo(Succeed())
		exists, err := afero.DirExists(fs, outputDir)
		Expect(err).NotTo(HaveOccurred())
		Expect(exists).To(BeFalse())
	})

	It("fails on absent input dir", func() {
		conf.InputDir = "/absent"
		log = testutil.NewNullLogger()
		err := newGenerator().Run()
		Expect(scenario.IsIOError(err)).To(BeTrue())
	})

	Context("clear", func() {
		BeforeEach(func() {
			conf.Clear = true
			conf.Mode = scenario.UnsetLimit
		})

		It("removes generated files", func() {
			input := dumpName("sync", "unary", "secure", 1024)
			write(input, dumpJSON("SYNC_CLIENT", "UNARY", true, 1024))
			Expect(fs.MkdirAll(outputDir, 0755)).To(Succeed())
			for _, name := range []string{"qps_sync_unary_secure_1024b_200K.json", "other.txt"} {
				Expect(afero.WriteFile(fs, filepath.Join(outputDir, name), []byte("{}"), 0644)).To(Succeed())
			}

			g := newGenerator()
			Expect(g.Run()).To(Succeed())
			Expect(outputNames(fs)).To(BeEmpty())
			Expect(g.Stats().Removed.Get()).To(BeEquivalentTo(2))
			Expect(g.Stats().Generated.Get()).To(BeZero())

			exists, err := afero.Exists(fs, filepath.Join(inputDir, input))
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeTrue())
		})

		It("keeps input files when output dir is input dir", func() {
			conf.OutputDir = inputDir
			generated := "qps_sync_unary_secure_1024b_200K.json"
			inputs := []string{dumpName("sync", "unary", "secure", 1024), "custom.json", "README.md"}
			for _, name := range append(inputs, generated) {
				write(name, "{}")
			}

			g := newGenerator()
			Expect(g.Run()).To(Succeed())
			Expect(testutil.DirNames(GinkgoT(), fs, inputDir)).To(ConsistOf(inputs))
			Expect(g.Stats().Removed.Get()).To(BeEquivalentTo(1))
		})

		It("treats equivalent paths as the same dir", func() {
			conf.OutputDir = inputDir + "/./"
			input := dumpName("async", "streaming", "insecure", 0)
			write(input, "{}")
			Expect(newGenerator().Run()).To(Succeed())
			exists, err := afero.Exists(fs, filepath.Join(inputDir, input))
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeTrue())
		})

		It("creates absent output dir", func() {
			Expect(newGenerator().Run()).To(Succeed())
			exists, err := afero.DirExists(fs, outputDir)
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeTrue())
			Expect(outputNames(fs)).To(BeEmpty())
		})
	})
})
