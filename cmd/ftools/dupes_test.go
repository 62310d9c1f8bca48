// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"testing"

	"ftools-cli/internal/config"
	"ftools-cli/internal/hashing"
)

func resetDupesFlags(t *testing.T) {
	t.Helper()
	orig := []string{dupesMinSize, dupesExtensions, dupesAlgorithm}
	origWorkers := dupesWorkers
	t.Cleanup(func() {
		dupesMinSize, dupesExtensions, dupesAlgorithm = orig[0], orig[1], orig[2]
		dupesWorkers = origWorkers
		config.Reset()
	})
	config.SetConfigDirOverride(t.TempDir())
}

func TestDupesOptionsDefaults(t *testing.T) {
	resetDupesFlags(t)
	dupesMinSize, dupesExtensions, dupesAlgorithm, dupesWorkers = "", "", "", 0

	opts, err := dupesOptions()
	if err != nil {
		t.Fatalf("dupesOptions: %v", err)
	}
	if opts.MinSize != 1 {
		t.Errorf("MinSize = %d, want 1 (config default)", opts.MinSize)
	}
	if opts.Algorithm != hashing.SHA256 {
		t.Errorf("Algorithm = %v, want SHA256", opts.Algorithm)
	}
	if len(opts.Extensions) != 0 {
		t.Errorf("Extensions = %v, want none", opts.Extensions)
	}
}

func TestDupesOptionsFlagsWin(t *testing.T) {
	resetDupesFlags(t)
	dupesMinSize = "4KB"
	dupesExtensions = "jpg, PNG"
	dupesAlgorithm = "md5"
	dupesWorkers = 3

	opts, err := dupesOptions()
	if err != nil {
		t.Fatalf("dupesOptions: %v", err)
	}
	if opts.MinSize != 4096 {
		t.Errorf("MinSize = %d, want 4096", opts.MinSize)
	}
	if opts.Algorithm != hashing.MD5 {
		t.Errorf("Algorithm = %v, want MD5", opts.Algorithm)
	}
	if opts.Workers != 3 {
		t.Errorf("Workers = %d, want 3", opts.Workers)
	}
	if len(opts.Extensions) != 2 || opts.Extensions[0] != "jpg" || opts.Extensions[1] != "png" {
		t.Errorf("Extensions = %v, want [jpg png]", opts.Extensions)
	}
}

func TestDupesOptionsInvalidInput(t *testing.T) {
	t.Run("bad size", func(t *testing.T) {
		resetDupesFlags(t)
		dupesMinSize = "not-a-size"
		if _, err := dupesOptions(); err == nil {
			t.Fatal("expected error for invalid --min-size")
		}
	})

	t.Run("bad algorithm", func(t *testing.T) {
		resetDupesFlags(t)
		dupesMinSize = ""
		dupesAlgorithm = "crc32"
		_, err := dupesOptions()
		if !errors.Is(err, hashing.ErrUnknownAlgorithm) {
			t.Fatalf("err = %v, want ErrUnknownAlgorithm", err)
		}
	})
}
