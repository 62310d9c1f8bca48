// SPDX-License-Identifier: MPL-2.0

package hashing

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseAlgorithm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      string
		want    Algorithm
		wantErr bool
	}{
		{"sha256", "sha256", SHA256, false},
		{"sha512 uppercase", "SHA512", SHA512, false},
		{"md5 padded", " md5 ", MD5, false},
		{"unknown", "sha1", SHA256, true},
		{"empty", "", SHA256, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseAlgorithm(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseAlgorithm(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownAlgorithm) {
					t.Errorf("error = %v, want ErrUnknownAlgorithm", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseAlgorithm(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSumFileKnownVectors(t *testing.T) {
	t.Parallel()

	// Standard test vectors for the empty input and "abc".
	tests := []struct {
		name string
		alg  Algorithm
		data []byte
		want string
	}{
		{
			"sha256 empty", SHA256, nil,
			"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		},
		{
			"sha256 abc", SHA256, []byte("abc"),
			"ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		},
		{
			"sha512 abc", SHA512, []byte("abc"),
			"ddaf35a193617abacc417349ae20413112e6fa4e89a97ea20a9eeee64b55d39a" +
				"2192992a274fc1a836ba3c23a3feebbd454d4423643ce80e2a9ac94fa54ca49f",
		},
		{
			"md5 abc", MD5, []byte("abc"),
			"900150983cd24fb0d6963f7d28e17f72",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			path := filepath.Join(t.TempDir(), "input")
			if err := os.WriteFile(path, tt.data, 0o644); err != nil {
				t.Fatalf("write: %v", err)
			}
			got, err := SumFile(path, tt.alg)
			if err != nil {
				t.Fatalf("SumFile: %v", err)
			}
			if got != tt.want {
				t.Errorf("SumFile = %s, want %s", got, tt.want)
			}
			if got != strings.ToLower(got) {
				t.Errorf("digest %s is not lowercase", got)
			}
		})
	}
}

func TestSumFileLargerThanBuffer(t *testing.T) {
	t.Parallel()

	// Content spanning multiple read chunks must hash identically to the
	// same content hashed in one shot.
	data := bytes.Repeat([]byte("0123456789abcdef"), 200_000) // ~3.2 MiB
	path := filepath.Join(t.TempDir(), "big")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	fromFile, err := SumFile(path, SHA256)
	if err != nil {
		t.Fatalf("SumFile: %v", err)
	}
	fromReader, err := SumReader(bytes.NewReader(data), SHA256)
	if err != nil {
		t.Fatalf("SumReader: %v", err)
	}
	if fromFile != fromReader {
		t.Errorf("streamed digest %s != one-shot digest %s", fromFile, fromReader)
	}
}

func TestSumFileMissing(t *testing.T) {
	t.Parallel()

	if _, err := SumFile(filepath.Join(t.TempDir(), "nope"), SHA256); err == nil {
		t.Error("SumFile on missing file succeeded, want error")
	}
}

func TestQuickSum(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	write := func(name string, data []byte) string {
		t.Helper()
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, data, 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		return p
	}

	t.Run("identical prefixes collide", func(t *testing.T) {
		// Files identical in the first 4 KiB must get the same quick sum
		// even when their tails differ.
		prefix := bytes.Repeat([]byte("p"), 8192)
		a := write("a", append(append([]byte{}, prefix...), []byte("tail-one")...))
		b := write("b", append(append([]byte{}, prefix...), []byte("tail-two")...))

		sa, err := QuickSum(a)
		if err != nil {
			t.Fatalf("QuickSum(a): %v", err)
		}
		sb, err := QuickSum(b)
		if err != nil {
			t.Fatalf("QuickSum(b): %v", err)
		}
		if sa != sb {
			t.Errorf("quick sums differ for identical prefixes: %x vs %x", sa, sb)
		}
	})

	t.Run("different prefixes separate", func(t *testing.T) {
		a := write("c", []byte("first contents"))
		b := write("d", []byte("second contents"))

		sa, _ := QuickSum(a)
		sb, _ := QuickSum(b)
		if sa == sb {
			t.Error("quick sums collide for different contents")
		}
	})

	t.Run("short file", func(t *testing.T) {
		p := write("e", []byte("xy"))
		if _, err := QuickSum(p); err != nil {
			t.Errorf("QuickSum on short file: %v", err)
		}
	})
}
